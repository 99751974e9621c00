// Package strategy implements the three independent document-detection
// pipelines (Enhanced, Canny-Fallback, Canny-Default) the driver
// orchestrates (spec §4.7).
package strategy

import (
	"paperscan/internal/contourfilter"
	"paperscan/internal/kernels"
)

// ThresholdConfig groups the adaptive-threshold tunables (spec §6).
type ThresholdConfig struct {
	BlockSize int
	Offset    float64
}

// MorphologyConfig groups the morphological close tunables (spec §6).
type MorphologyConfig struct {
	KernelSize int
	Iterations int
}

// CannyConfig groups one Canny strategy's thresholds (spec §6).
type CannyConfig struct {
	LowThreshold  float64
	HighThreshold float64
}

// Config is the nested configuration record covering every strategy
// tunable (spec §6, §9's "configuration sprawl" note): the ~25 options
// cluster into five groups instead of scattering through call sites.
type Config struct {
	MinArea       float64
	UseFallback   bool
	SkipClahe     bool
	Clahe         kernels.ClaheConfig
	Threshold     ThresholdConfig
	Morphology    MorphologyConfig
	ContourFilter contourfilter.Config
	FallbackCanny CannyConfig
	DefaultCanny  CannyConfig

	// DilationKernelSize/DilationIterations close small Canny gaps
	// before tracing (spec §6's canny() contract); the spec leaves
	// these untuned, so both Canny strategies share one default.
	DilationKernelSize int
	DilationIterations int
}

// DefaultConfig returns every default named in spec §6.
func DefaultConfig() Config {
	return Config{
		MinArea:     1000,
		UseFallback: true,
		SkipClahe:   false,
		Clahe:       kernels.DefaultClaheConfig(),
		Threshold: ThresholdConfig{
			BlockSize: 21,
			Offset:    12,
		},
		Morphology: MorphologyConfig{
			KernelSize: 5,
			Iterations: 2,
		},
		ContourFilter: contourfilter.DefaultConfig(),
		FallbackCanny: CannyConfig{
			LowThreshold:  30,
			HighThreshold: 90,
		},
		DefaultCanny: CannyConfig{
			LowThreshold:  75,
			HighThreshold: 200,
		},
		DilationKernelSize: 3,
		DilationIterations: 1,
	}
}
