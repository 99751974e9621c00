package refkernel

import (
	"fmt"

	"paperscan/internal/imaging"
)

// AdaptiveThreshold implements spec §4.3: each pixel is compared against
// its local blurred mean minus a constant offset, producing a strictly
// binary (0/255) output. With invert=true the document becomes the
// white (255) foreground and the lighter background becomes black.
func AdaptiveThreshold(enhanced, blurred *imaging.Gray, c float64, invert bool) (*imaging.Gray, error) {
	if err := enhanced.Validate(); err != nil {
		return nil, err
	}
	if err := blurred.Validate(); err != nil {
		return nil, err
	}
	if enhanced.Width != blurred.Width || enhanced.Height != blurred.Height {
		return nil, fmt.Errorf("refkernel: adaptive threshold dimension mismatch %dx%d vs %dx%d",
			enhanced.Width, enhanced.Height, blurred.Width, blurred.Height)
	}

	out := imaging.New(enhanced.Width, enhanced.Height)
	for i, e := range enhanced.Pix {
		b := blurred.Pix[i]
		above := float64(e) > float64(b)-c
		if above != invert {
			out.Pix[i] = 0
		} else {
			out.Pix[i] = 255
		}
	}
	return out, nil
}
