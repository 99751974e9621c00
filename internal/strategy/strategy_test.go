package strategy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperscan/internal/edge"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
)

// passthroughKernels implements kernels.Provider by returning its input
// unchanged (the enhanced image, for AdaptiveThreshold), letting strategy tests exercise the chain wiring without depending on
// the reference kernel math.
type passthroughKernels struct{}

func (passthroughKernels) Clahe(src *imaging.Gray, _ kernels.ClaheConfig) (*imaging.Gray, error) {
	return src, nil
}
func (passthroughKernels) BoxBlur(src *imaging.Gray, _ int) (*imaging.Gray, error) { return src, nil }
func (passthroughKernels) AdaptiveThreshold(enhanced, _ *imaging.Gray, _ float64, _ bool) (*imaging.Gray, error) {
	return enhanced, nil
}
func (passthroughKernels) Dilate(src *imaging.Gray, _ int) (*imaging.Gray, error) { return src, nil }
func (passthroughKernels) Erode(src *imaging.Gray, _ int) (*imaging.Gray, error)  { return src, nil }
func (passthroughKernels) MorphologicalClose(src *imaging.Gray, _, _ int) (*imaging.Gray, error) {
	return src, nil
}
func (passthroughKernels) UnsharpMask(src *imaging.Gray, _ float64, _ int) (*imaging.Gray, error) {
	return src, nil
}
func (passthroughKernels) UnsharpMaskAndDownscale(src *imaging.Gray, _ float64, _, _, _ int) (*imaging.Gray, error) {
	return src, nil
}
func (passthroughKernels) ClaheAndDownscale(src *imaging.Gray, _ kernels.ClaheConfig, _, _ int) (*imaging.Gray, error) {
	return src, nil
}

var _ kernels.Provider = passthroughKernels{}

type fakeDetector struct {
	out *imaging.Gray
	err error
}

func (f fakeDetector) Canny(src *imaging.Gray, _, _ float64, _, _ int) (*imaging.Gray, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.out != nil {
		return f.out, nil
	}
	return src, nil
}

type fakeTracer struct {
	contours []edge.Contour
	err      error
}

func (f fakeTracer) Trace(_ *imaging.Gray, _ float64) ([]edge.Contour, error) {
	return f.contours, f.err
}

type fakeApproximator struct {
	points []edge.Point
}

func (f fakeApproximator) Approximate(_ edge.Contour, _ float64) ([]edge.Point, error) {
	return f.points, nil
}

func rectImage(w, h int) *imaging.Gray {
	return imaging.New(w, h)
}

func rectContourStrategy() edge.Contour {
	return edge.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func TestEnhancedStrategyProducesCandidateOnGoodRectangle(t *testing.T) {
	deps := Dependencies{
		Kernels:      passthroughKernels{},
		Tracer:       fakeTracer{contours: []edge.Contour{rectContourStrategy()}},
		Approximator: fakeApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
	}
	cfg := DefaultConfig()

	result, err := NewEnhanced().Run(context.Background(), rectImage(200, 200), cfg, 0, deps)
	require.NoError(t, err)
	require.NotNil(t, result.Quad)
	assert.Equal(t, "enhanced", result.StrategyName)
}

func TestEnhancedStrategyNoCandidateWhenContoursEmpty(t *testing.T) {
	deps := Dependencies{
		Kernels:      passthroughKernels{},
		Tracer:       fakeTracer{},
		Approximator: fakeApproximator{},
	}
	cfg := DefaultConfig()

	result, err := NewEnhanced().Run(context.Background(), rectImage(200, 200), cfg, 0, deps)
	require.NoError(t, err)
	assert.Nil(t, result.Quad)
}

func TestCannyFallbackUsesConfiguredThresholds(t *testing.T) {
	strat := NewCannyFallback()
	cfg := DefaultConfig()
	assert.Equal(t, cfg.FallbackCanny, strat.Thresholds(cfg))
	assert.Equal(t, "canny-fallback", strat.Name())
}

func TestCannyDefaultUsesConfiguredThresholds(t *testing.T) {
	strat := NewCannyDefault()
	cfg := DefaultConfig()
	assert.Equal(t, cfg.DefaultCanny, strat.Thresholds(cfg))
	assert.Equal(t, "canny-default", strat.Name())
}

func TestCannyStrategyPropagatesDetectorError(t *testing.T) {
	deps := Dependencies{
		Kernels:  passthroughKernels{},
		Detector: fakeDetector{err: assertErr{}},
		Tracer:   fakeTracer{},
	}
	cfg := DefaultConfig()

	_, err := NewCannyFallback().Run(context.Background(), rectImage(50, 50), cfg, 0, deps)
	assert.Error(t, err)
}

type assertErr struct{}

func (assertErr) Error() string { return "canny unavailable" }

func TestMinAreaPrefilterDropsSmallContours(t *testing.T) {
	small := edge.Contour{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 2}, {X: 0, Y: 2}}
	kept := filterContoursByArea([]edge.Contour{small, rectContourStrategy()}, 50)
	require.Len(t, kept, 1)
	assert.Equal(t, rectContourStrategy(), kept[0])
}
