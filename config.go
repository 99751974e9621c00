package paperscan

import (
	"fmt"

	"paperscan/internal/contourfilter"
	"paperscan/internal/kernels"
	"paperscan/internal/strategy"
)

// Config is the single nested configuration record covering every
// tunable across the preprocessing kernels, the contour filter, and
// both Canny strategies (spec §6, §9's "configuration sprawl" note).
type Config struct {
	MinArea       float64
	UseFallback   bool
	SkipClahe     bool
	Clahe         kernels.ClaheConfig
	Threshold     strategy.ThresholdConfig
	Morphology    strategy.MorphologyConfig
	ContourFilter contourfilter.Config
	FallbackCanny strategy.CannyConfig
	DefaultCanny  strategy.CannyConfig

	DilationKernelSize int
	DilationIterations int
}

// DefaultConfig returns the defaults documented in spec §6.
func DefaultConfig() Config {
	sc := strategy.DefaultConfig()
	return Config{
		MinArea:            sc.MinArea,
		UseFallback:        sc.UseFallback,
		SkipClahe:          sc.SkipClahe,
		Clahe:              sc.Clahe,
		Threshold:          sc.Threshold,
		Morphology:         sc.Morphology,
		ContourFilter:      sc.ContourFilter,
		FallbackCanny:      sc.FallbackCanny,
		DefaultCanny:       sc.DefaultCanny,
		DilationKernelSize: sc.DilationKernelSize,
		DilationIterations: sc.DilationIterations,
	}
}

// Validate rejects configuration values that would make every strategy
// degenerate (e.g. a non-positive kernel size) before a scan begins.
func (c Config) Validate() error {
	if c.Clahe.TileGrid.GX < 1 || c.Clahe.TileGrid.GY < 1 {
		return fmt.Errorf("paperscan: clahe tile grid must be >= 1x1, got %dx%d", c.Clahe.TileGrid.GX, c.Clahe.TileGrid.GY)
	}
	if c.Threshold.BlockSize < 1 || c.Threshold.BlockSize%2 == 0 {
		return fmt.Errorf("paperscan: threshold block size must be odd and >= 1, got %d", c.Threshold.BlockSize)
	}
	if c.Morphology.KernelSize < 1 || c.Morphology.KernelSize%2 == 0 {
		return fmt.Errorf("paperscan: morphology kernel size must be odd and >= 1, got %d", c.Morphology.KernelSize)
	}
	if c.Morphology.Iterations < 0 {
		return fmt.Errorf("paperscan: morphology iterations must be >= 0, got %d", c.Morphology.Iterations)
	}
	if c.ContourFilter.AreaWeight+c.ContourFilter.AngleWeight == 0 {
		return fmt.Errorf("paperscan: contour filter area/angle weights must not both be zero")
	}
	if c.MinArea < 0 {
		return fmt.Errorf("paperscan: minArea must be >= 0, got %f", c.MinArea)
	}
	return nil
}

func (c Config) toStrategyConfig() strategy.Config {
	return strategy.Config{
		MinArea:            c.MinArea,
		UseFallback:        c.UseFallback,
		SkipClahe:          c.SkipClahe,
		Clahe:              c.Clahe,
		Threshold:          c.Threshold,
		Morphology:         c.Morphology,
		ContourFilter:      c.ContourFilter,
		FallbackCanny:      c.FallbackCanny,
		DefaultCanny:       c.DefaultCanny,
		DilationKernelSize: c.DilationKernelSize,
		DilationIterations: c.DilationIterations,
	}
}
