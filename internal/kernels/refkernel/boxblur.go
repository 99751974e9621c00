package refkernel

import (
	"fmt"

	"paperscan/internal/imaging"
)

// BoxBlur implements the separable two-pass box filter of spec §4.2: each
// output sample is the rounded mean of a 1D window of size k, border
// positions clamped to the valid range.
func BoxBlur(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if k < 1 || k%2 == 0 {
		return nil, fmt.Errorf("refkernel: box blur kernel size must be odd and >= 1, got %d", k)
	}

	horizontal := boxBlurHorizontal(src, k)
	return boxBlurVertical(horizontal, k), nil
}

func boxBlurHorizontal(src *imaging.Gray, k int) *imaging.Gray {
	radius := k / 2
	w, h := src.Width, src.Height
	out := imaging.New(w, h)

	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			sum := 0
			for dx := -radius; dx <= radius; dx++ {
				sum += int(src.Pix[row+clampIdx(x+dx, w)])
			}
			out.Pix[row+x] = roundMean(sum, k)
		}
	}
	return out
}

func boxBlurVertical(src *imaging.Gray, k int) *imaging.Gray {
	radius := k / 2
	w, h := src.Width, src.Height
	out := imaging.New(w, h)

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			sum := 0
			for dy := -radius; dy <= radius; dy++ {
				sum += int(src.Pix[clampIdx(y+dy, h)*w+x])
			}
			out.Pix[y*w+x] = roundMean(sum, k)
		}
	}
	return out
}

func clampIdx(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit-1 {
		return limit - 1
	}
	return v
}

func roundMean(sum, k int) byte {
	mean := float64(sum) / float64(k)
	return clampRoundByte(mean)
}
