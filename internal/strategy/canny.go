package strategy

import (
	"context"
	"fmt"

	"paperscan/internal/contourfilter"
	"paperscan/internal/imaging"
)

// Canny is strategies 2 and 3 of spec §4.7: run the external Canny
// detector at a fixed threshold pair, trace, filter. Fallback and
// Default differ only in their threshold pair and display name.
type Canny struct {
	StrategyName string
	Thresholds   func(cfg Config) CannyConfig
}

// NewCannyFallback is strategy 2: thresholds (30, 90).
func NewCannyFallback() Canny {
	return Canny{
		StrategyName: "canny-fallback",
		Thresholds:   func(cfg Config) CannyConfig { return cfg.FallbackCanny },
	}
}

// NewCannyDefault is strategy 3: thresholds (75, 200).
func NewCannyDefault() Canny {
	return Canny{
		StrategyName: "canny-default",
		Thresholds:   func(cfg Config) CannyConfig { return cfg.DefaultCanny },
	}
}

func (c Canny) Name() string { return c.StrategyName }

func (c Canny) Run(ctx context.Context, src *imaging.Gray, cfg Config, minAreaThreshold float64, deps Dependencies) (Result, error) {
	result := Result{StrategyName: c.StrategyName}

	thresholds := c.Thresholds(cfg)
	binary, err := deps.Detector.Canny(src, thresholds.LowThreshold, thresholds.HighThreshold, cfg.DilationKernelSize, cfg.DilationIterations)
	if err != nil {
		return result, fmt.Errorf("%s strategy: canny failed: %w", c.StrategyName, err)
	}

	select {
	case <-ctx.Done():
		return result, ctx.Err()
	default:
	}

	contours, err := deps.Tracer.Trace(binary, minAreaThreshold)
	if err != nil {
		return result, fmt.Errorf("%s strategy: contour tracing failed: %w", c.StrategyName, err)
	}
	contours = filterContoursByArea(contours, minAreaThreshold)
	result.Contours = contours

	quad, err := contourfilter.Filter(contours, binary.Width, binary.Height, deps.Approximator, cfg.ContourFilter)
	if err != nil {
		return result, fmt.Errorf("%s strategy: contour filtering failed: %w", c.StrategyName, err)
	}
	result.Quad = quad
	return result, nil
}

var _ Strategy = Canny{}
