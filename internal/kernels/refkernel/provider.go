// Package refkernel is the pure-Go reference implementation of every
// kernel in the provider capability set (spec §4.1-4.5, §6). It has no
// dependency on gocv and is always available, making it the fallback
// target whenever the accelerated provider's kernel call fails (§7).
package refkernel

import (
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
)

// Provider implements kernels.Provider entirely in Go.
type Provider struct{}

// New returns the reference kernel provider.
func New() Provider {
	return Provider{}
}

func (Provider) Clahe(src *imaging.Gray, cfg kernels.ClaheConfig) (*imaging.Gray, error) {
	return Clahe(src, cfg)
}

func (Provider) BoxBlur(src *imaging.Gray, k int) (*imaging.Gray, error) {
	return BoxBlur(src, k)
}

func (Provider) AdaptiveThreshold(enhanced, blurred *imaging.Gray, c float64, invert bool) (*imaging.Gray, error) {
	return AdaptiveThreshold(enhanced, blurred, c, invert)
}

func (Provider) Dilate(src *imaging.Gray, k int) (*imaging.Gray, error) {
	return Dilate(src, k)
}

func (Provider) Erode(src *imaging.Gray, k int) (*imaging.Gray, error) {
	return Erode(src, k)
}

func (Provider) MorphologicalClose(src *imaging.Gray, k, iterations int) (*imaging.Gray, error) {
	return MorphologicalClose(src, k, iterations)
}

func (Provider) UnsharpMask(src *imaging.Gray, amount float64, radius int) (*imaging.Gray, error) {
	return UnsharpMask(src, amount, radius)
}

func (Provider) UnsharpMaskAndDownscale(src *imaging.Gray, amount float64, radius, dstW, dstH int) (*imaging.Gray, error) {
	return UnsharpMaskAndDownscale(src, amount, radius, dstW, dstH)
}

func (Provider) ClaheAndDownscale(src *imaging.Gray, cfg kernels.ClaheConfig, dstW, dstH int) (*imaging.Gray, error) {
	return ClaheAndDownscale(src, cfg, dstW, dstH)
}

var _ kernels.Provider = Provider{}
