// Package paperscan locates a rectangular paper document inside a
// photograph and returns its four corner coordinates, robust to
// low-contrast scenes via a multi-strategy detection pipeline (see
// SPEC_FULL.md).
package paperscan

import (
	"context"
	"fmt"
	"sort"
	"time"

	"paperscan/internal/debug/timing"
	"paperscan/internal/edge"
	"paperscan/internal/geometry"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/logger"
	"paperscan/internal/scancontext"
	"paperscan/internal/strategy"
)

// Scanner runs the multi-strategy driver (spec §4.7) over one grayscale
// image per call. Apart from an optionally attached timing tracker, whose
// samples accumulate across scans, it holds no mutable state between
// scans; the same
// Scanner can be reused concurrently across goroutines (spec §5: "the
// caller is free to run multiple scans in parallel... the core must not
// assume a shared thread pool").
type Scanner struct {
	config     Config
	deps       strategy.Dependencies
	strategies []strategy.Strategy
	tracker    *timing.Tracker
}

// WithTracker attaches an optional per-strategy timing tracker (spec §1's
// "timing/debug bookkeeping" external collaborator). A nil tracker
// disables timing; Scan never requires one. Returns s for chaining.
func (s *Scanner) WithTracker(t *timing.Tracker) *Scanner {
	s.tracker = t
	return s
}

// New builds a Scanner from a configuration and the external
// collaborators the core treats as out of scope (spec §1, §6): the
// kernel provider and the Canny/trace/approximate edge interfaces.
func New(cfg Config, kernelProvider kernels.Provider, detector edge.Detector, tracer edge.Tracer, approximator edge.Approximator, log logger.Logger) (*Scanner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NoOp{}
	}

	deps := strategy.Dependencies{
		Kernels:      kernelProvider,
		Detector:     detector,
		Tracer:       tracer,
		Approximator: approximator,
		Logger:       log,
	}

	strategies := []strategy.Strategy{strategy.NewEnhanced()}
	if cfg.UseFallback {
		strategies = append(strategies, strategy.NewCannyFallback(), strategy.NewCannyDefault())
	}

	return &Scanner{config: cfg, deps: deps, strategies: strategies}, nil
}

// Scan runs every configured strategy over src in order (spec §4.7),
// pools the surviving candidates, and returns the best. scaleFactor is
// the downscale ratio from the caller's source resolution to src's
// resolution; pass 1.0 if src is already at source resolution. The
// returned quadrilateral is mapped back to the source frame with
// Result.ToSourceFrame(scaleFactor). cancel may be nil.
func (s *Scanner) Scan(ctx context.Context, src *imaging.Gray, scaleFactor float64, cancel *scancontext.CancellationToken) (Result, error) {
	if err := src.Validate(); err != nil {
		return Result{}, fmt.Errorf("paperscan: %w", err)
	}
	if scaleFactor <= 0 {
		scaleFactor = 1
	}
	minAreaThreshold := s.config.MinArea / (scaleFactor * scaleFactor)
	strategyCfg := s.config.toStrategyConfig()

	type pooled struct {
		quad geometry.Quad
		name string
	}
	var pool []pooled
	var cannyResults []strategy.Result

	for _, strat := range s.strategies {
		if cancel.IsCancelled() {
			return Result{Cancelled: true}, nil
		}

		stratCtx := ctx
		if s.tracker != nil {
			stratCtx = s.tracker.StartTiming(ctx, strat.Name())
		}
		result, err := strat.Run(stratCtx, src, strategyCfg, minAreaThreshold, s.deps)
		if s.tracker != nil {
			s.tracker.EndTiming(stratCtx)
		}
		if err != nil {
			s.deps.Logger.Error(strat.Name(), err, nil)
			continue
		}

		if strat.Name() != "enhanced" {
			cannyResults = append(cannyResults, result)
		}

		if result.Quad != nil {
			pool = append(pool, pooled{quad: *result.Quad, name: result.StrategyName})
		}
	}

	timings := s.collectTimings()

	if len(pool) > 0 {
		sort.SliceStable(pool, func(i, j int) bool {
			return pool[i].quad.Score > pool[j].quad.Score
		})
		best := pool[0]
		quad := best.quad.Ordered()
		return Result{
			Success:    true,
			Quad:       &quad,
			Strategy:   best.name,
			Candidates: len(pool),
			Timings:    timings,
		}.ToSourceFrame(scaleFactor), nil
	}

	for _, cr := range cannyResults {
		if len(cr.Contours) == 0 {
			continue
		}
		raw := largestRawContour(cr.Contours)
		quad := quadFromRawContour(raw, s.deps.Approximator, s.config.ContourFilter.Epsilons()[0]).Ordered()
		return Result{
			Success:     true,
			Quad:        &quad,
			Strategy:    cr.StrategyName,
			FallbackRaw: true,
			Timings:     timings,
		}.ToSourceFrame(scaleFactor), nil
	}

	return Result{Success: false, Timings: timings}, nil
}

// collectTimings flattens the attached tracker's per-strategy timings
// into one duration per strategy name (the most recent sample), or nil
// when no tracker is attached.
func (s *Scanner) collectTimings() map[string]time.Duration {
	if s.tracker == nil {
		return nil
	}
	all := s.tracker.GetAllTimings()
	out := make(map[string]time.Duration, len(all))
	for name, durations := range all {
		if len(durations) > 0 {
			out[name] = durations[len(durations)-1]
		}
	}
	return out
}

func largestRawContour(contours []edge.Contour) edge.Contour {
	best := contours[0]
	bestArea := contourArea(best)
	for _, c := range contours[1:] {
		if a := contourArea(c); a > bestArea {
			bestArea = a
			best = c
		}
	}
	return best
}

func contourArea(c edge.Contour) float64 {
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

// quadFromRawContour turns the degenerate last-resort contour into a
// four-point quadrilateral: it first tries the normal polygon
// approximation at one epsilon, then falls back to the contour's
// axis-aligned bounding box. This resolves spec §9's open question that
// the fallback "has not been corner-ordered" by always returning
// something geometry.Quad.Ordered can act on.
func quadFromRawContour(raw edge.Contour, approximator edge.Approximator, epsilon float64) geometry.Quad {
	rawPoints := make([]geometry.Point, len(raw))
	for i, p := range raw {
		rawPoints[i] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
	}

	if approximator != nil {
		if approx, err := approximator.Approximate(raw, epsilon); err == nil && len(approx) == 4 {
			var pts [4]geometry.Point
			for i, p := range approx {
				pts[i] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
			}
			return geometry.Quad{Points: pts, RawContour: rawPoints, Area: geometry.ShoelaceArea(pts[:])}
		}
	}

	minX, minY := raw[0].X, raw[0].Y
	maxX, maxY := raw[0].X, raw[0].Y
	for _, p := range raw[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	pts := [4]geometry.Point{
		{X: float64(minX), Y: float64(minY)},
		{X: float64(maxX), Y: float64(minY)},
		{X: float64(maxX), Y: float64(maxY)},
		{X: float64(minX), Y: float64(maxY)},
	}
	return geometry.Quad{Points: pts, RawContour: rawPoints, Area: geometry.ShoelaceArea(pts[:])}
}
