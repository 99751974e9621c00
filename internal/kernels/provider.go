// Package kernels defines the capability-set boundary (spec §6, Design
// Notes §9) between the detection core and the numeric preprocessing
// kernels: CLAHE, box blur, adaptive threshold, morphology, unsharp mask,
// and their downscale-fused variants. A Provider is a
// record-of-function-pointers rather than a reflective plugin registry,
// per the Design Notes' preference.
//
// Two providers satisfy this interface: refkernel.Provider, a pure-Go
// implementation of the exact contracts in spec §4.1-4.5, and
// opencvkernel.Provider, a gocv-accelerated implementation. The driver
// falls back from the latter to the former whenever a given kernel call
// fails (§7: "kernel unavailable — silently fall back to the reference
// implementation").
package kernels

import "paperscan/internal/imaging"

// TileGrid is the CLAHE tile grid (gx, gy), both >= 1.
type TileGrid struct {
	GX, GY int
}

// ClaheConfig groups CLAHE's tunables (§4.1, §6).
type ClaheConfig struct {
	ClipLimit float64
	TileGrid  TileGrid
}

// DefaultClaheConfig matches the §6 configuration-surface defaults.
func DefaultClaheConfig() ClaheConfig {
	return ClaheConfig{ClipLimit: 2.0, TileGrid: TileGrid{GX: 8, GY: 8}}
}

// Provider is the kernel capability set a strategy consumes. Every method
// returns a newly allocated image of the stated dimensions; inputs are
// never mutated.
type Provider interface {
	// Clahe applies contrast-limited adaptive histogram equalization
	// (§4.1).
	Clahe(src *imaging.Gray, cfg ClaheConfig) (*imaging.Gray, error)

	// BoxBlur applies a separable box blur with odd kernel size k (§4.2).
	BoxBlur(src *imaging.Gray, k int) (*imaging.Gray, error)

	// AdaptiveThreshold thresholds enhanced against its blurred version
	// minus offset c, producing a strictly binary image (§4.3).
	AdaptiveThreshold(enhanced, blurred *imaging.Gray, c float64, invert bool) (*imaging.Gray, error)

	// Dilate applies a separable max-filter of odd size k (§4.4).
	Dilate(src *imaging.Gray, k int) (*imaging.Gray, error)

	// Erode applies a separable min-filter of odd size k (§4.4).
	Erode(src *imaging.Gray, k int) (*imaging.Gray, error)

	// MorphologicalClose applies `iterations` rounds of dilate-then-erode
	// with kernel size k (§4.4).
	MorphologicalClose(src *imaging.Gray, k, iterations int) (*imaging.Gray, error)

	// UnsharpMask sharpens src using a box blur of radius `radius` (§4.5).
	UnsharpMask(src *imaging.Gray, amount float64, radius int) (*imaging.Gray, error)

	// UnsharpMaskAndDownscale fuses unsharp masking with a bilinear
	// downscale to dstW x dstH (§4.5).
	UnsharpMaskAndDownscale(src *imaging.Gray, amount float64, radius, dstW, dstH int) (*imaging.Gray, error)

	// ClaheAndDownscale fuses CLAHE at source resolution with a bilinear
	// downscale to dstW x dstH (§4.5).
	ClaheAndDownscale(src *imaging.Gray, cfg ClaheConfig, dstW, dstH int) (*imaging.Gray, error)
}
