package strategy

import (
	"context"

	"paperscan/internal/edge"
	"paperscan/internal/geometry"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/logger"
)

// Dependencies bundles the external collaborators every strategy needs:
// the kernel provider (pure-Go or gocv-backed) and the three edge
// collaborators spec §1 treats as out of scope.
type Dependencies struct {
	Kernels      kernels.Provider
	Detector     edge.Detector
	Tracer       edge.Tracer
	Approximator edge.Approximator
	Logger       logger.Logger
}

// Result is one strategy's output: the best surviving candidate (nil if
// none survived the filter) plus every raw contour traced, which the
// driver needs for the last-resort "largest raw contour" fallback (spec
// §4.7).
type Result struct {
	StrategyName string
	Quad         *geometry.Quad
	Contours     []edge.Contour
}

// Strategy is one complete preprocessing+filtering branch (spec §9:
// "Per-strategy candidate independence... must be callable in
// isolation"). minAreaThreshold is the already-scaled pixel-area
// prefilter from spec §4.7 ("minArea / scaleFactor^2").
type Strategy interface {
	Name() string
	Run(ctx context.Context, src *imaging.Gray, cfg Config, minAreaThreshold float64, deps Dependencies) (Result, error)
}

func filterContoursByArea(contours []edge.Contour, minAreaThreshold float64) []edge.Contour {
	if minAreaThreshold <= 0 {
		return contours
	}
	kept := make([]edge.Contour, 0, len(contours))
	for _, c := range contours {
		if contourPixelArea(c) >= minAreaThreshold {
			kept = append(kept, c)
		}
	}
	return kept
}

// contourPixelArea computes the shoelace area of a raw integer contour
// directly, without routing through the geometry package's float Point
// type, since this is purely a prefilter threshold and not a scored
// candidate.
func contourPixelArea(c edge.Contour) float64 {
	n := len(c)
	if n < 3 {
		return 0
	}
	sum := 0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	if sum < 0 {
		sum = -sum
	}
	return float64(sum) / 2.0
}
