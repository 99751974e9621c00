package refkernel

import (
	"fmt"

	"paperscan/internal/imaging"
)

// Dilate implements spec §4.4: a separable horizontal-then-vertical max
// filter over an odd window of size k, border-clamped.
func Dilate(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if err := validateKernelSize(src, k); err != nil {
		return nil, err
	}
	return separableFilter(src, k, maxAccumulator{}), nil
}

// Erode implements spec §4.4: the same separable structure as Dilate but
// taking the min, with an initial accumulator of 255.
func Erode(src *imaging.Gray, k int) (*imaging.Gray, error) {
	if err := validateKernelSize(src, k); err != nil {
		return nil, err
	}
	return separableFilter(src, k, minAccumulator{}), nil
}

// MorphologicalClose runs `iterations` rounds of dilate-then-erode with
// kernel size k (spec §4.4), closing gaps up to roughly
// (k-1)/2 * iterations pixels.
func MorphologicalClose(src *imaging.Gray, k, iterations int) (*imaging.Gray, error) {
	if err := validateKernelSize(src, k); err != nil {
		return nil, err
	}
	if iterations < 0 {
		return nil, fmt.Errorf("refkernel: iterations must be >= 0, got %d", iterations)
	}

	current := src
	for i := 0; i < iterations; i++ {
		dilated, err := Dilate(current, k)
		if err != nil {
			return nil, err
		}
		eroded, err := Erode(dilated, k)
		if err != nil {
			return nil, err
		}
		current = eroded
	}

	if current == src {
		return cloneGray(src), nil
	}
	return current, nil
}

func validateKernelSize(src *imaging.Gray, k int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if k < 1 || k%2 == 0 {
		return fmt.Errorf("refkernel: morphology kernel size must be odd and >= 1, got %d", k)
	}
	return nil
}

func cloneGray(src *imaging.Gray) *imaging.Gray {
	out := imaging.New(src.Width, src.Height)
	copy(out.Pix, src.Pix)
	return out
}

// accumulator abstracts the max/min reduction shared by Dilate and Erode
// so both reuse the same separable-window scan.
type accumulator interface {
	initial() int
	combine(acc, v int) int
}

type maxAccumulator struct{}

func (maxAccumulator) initial() int        { return 0 }
func (maxAccumulator) combine(acc, v int) int {
	if v > acc {
		return v
	}
	return acc
}

type minAccumulator struct{}

func (minAccumulator) initial() int        { return 255 }
func (minAccumulator) combine(acc, v int) int {
	if v < acc {
		return v
	}
	return acc
}

func separableFilter(src *imaging.Gray, k int, acc accumulator) *imaging.Gray {
	radius := k / 2
	w, h := src.Width, src.Height

	horizontal := imaging.New(w, h)
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			v := acc.initial()
			for dx := -radius; dx <= radius; dx++ {
				v = acc.combine(v, int(src.Pix[row+clampIdx(x+dx, w)]))
			}
			horizontal.Pix[row+x] = byte(v)
		}
	}

	out := imaging.New(w, h)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			v := acc.initial()
			for dy := -radius; dy <= radius; dy++ {
				v = acc.combine(v, int(horizontal.Pix[clampIdx(y+dy, h)*w+x]))
			}
			out.Pix[y*w+x] = byte(v)
		}
	}

	return out
}
