// Package imaging holds the grayscale image data model the detection core
// operates on (spec §3: "a rectangular grid of single-byte luminance
// samples... row-major, no padding. Immutable once produced; consumers
// read, never write").
package imaging

import (
	"fmt"
	"image"
	"image/color"
)

// Gray is a row-major, unpadded single-channel byte image. Once returned
// from a constructor it should be treated as read-only; kernels that
// transform it always allocate a new Gray rather than mutating in place.
type Gray struct {
	Pix    []byte
	Width  int
	Height int
}

// New allocates a zeroed Gray of the given dimensions.
func New(width, height int) *Gray {
	return &Gray{
		Pix:    make([]byte, width*height),
		Width:  width,
		Height: height,
	}
}

// FromImage converts a standard library image.Image to Gray using the
// Rec. 601 luma transform for color inputs (matches image.Gray semantics).
func FromImage(img image.Image) *Gray {
	if g, ok := img.(*image.Gray); ok {
		return fromStdGray(g)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
			out.Pix[y*w+x] = c.Y
		}
	}
	return out
}

func fromStdGray(img *image.Gray) *Gray {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := New(w, h)
	for y := 0; y < h; y++ {
		srcOff := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(out.Pix[y*w:(y+1)*w], img.Pix[srcOff:srcOff+w])
	}
	return out
}

// ToImage returns a standard-library image.Gray view of the data, useful
// for debug rendering and for callers that want to re-use the stdlib image
// pipeline downstream.
func (g *Gray) ToImage() *image.Gray {
	out := image.NewGray(image.Rect(0, 0, g.Width, g.Height))
	for y := 0; y < g.Height; y++ {
		dstOff := out.PixOffset(0, y)
		copy(out.Pix[dstOff:dstOff+g.Width], g.Pix[y*g.Width:(y+1)*g.Width])
	}
	return out
}

// At returns the luminance sample at (x, y). Coordinates outside the image
// clamp to the nearest valid pixel, matching the border policy used
// throughout the preprocessing kernels (§4.1, §4.4).
func (g *Gray) At(x, y int) byte {
	x = clampInt(x, 0, g.Width-1)
	y = clampInt(y, 0, g.Height-1)
	return g.Pix[y*g.Width+x]
}

// Validate rejects degenerate dimensions per §7: "Inputs with degenerate
// dimensions (W < 1 or H < 1) are rejected at the boundary before any
// strategy runs."
func (g *Gray) Validate() error {
	if g == nil {
		return fmt.Errorf("imaging: nil image")
	}
	if g.Width < 1 || g.Height < 1 {
		return fmt.Errorf("imaging: degenerate dimensions %dx%d", g.Width, g.Height)
	}
	if len(g.Pix) < g.Width*g.Height {
		return fmt.Errorf("imaging: pixel buffer too small for %dx%d", g.Width, g.Height)
	}
	return nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
