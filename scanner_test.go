package paperscan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperscan/internal/debug/timing"
	"paperscan/internal/edge"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/scancontext"
)

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

type fixedDetector struct{}

func (fixedDetector) Canny(src *imaging.Gray, _, _ float64, _, _ int) (*imaging.Gray, error) {
	return src, nil
}

type fixedTracer struct {
	contours []edge.Contour
}

func (f fixedTracer) Trace(_ *imaging.Gray, _ float64) ([]edge.Contour, error) {
	return f.contours, nil
}

type fixedApproximator struct {
	points []edge.Point
}

func (f fixedApproximator) Approximate(_ edge.Contour, _ float64) ([]edge.Point, error) {
	return f.points, nil
}

func rectContourDoc() edge.Contour {
	return edge.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func TestScanSucceedsOnGoodRectangle(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{},
		fixedTracer{contours: []edge.Contour{rectContourDoc()}},
		fixedApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
		nil)
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Quad)
	assert.False(t, result.FallbackRaw)
}

func TestScanNoDocumentOnUniformImage(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{}, fixedTracer{}, fixedApproximator{}, nil)
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Nil(t, result.Quad)
}

func TestScanRejectsDegenerateInput(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{}, fixedTracer{}, fixedApproximator{}, nil)
	require.NoError(t, err)

	_, err = scanner.Scan(context.Background(), &imaging.Gray{Width: 0, Height: 0}, 1, nil)
	assert.Error(t, err)
}

func TestScanHonoursCancellation(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{},
		fixedTracer{contours: []edge.Contour{rectContourDoc()}},
		fixedApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
		nil)
	require.NoError(t, err)

	token := scancontext.NewCancellationToken()
	token.Cancel()

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, token)
	require.NoError(t, err)
	assert.True(t, result.Cancelled)
	assert.False(t, result.Success)
}

func TestScanFallsBackToLargestRawContourWhenNoCandidatesSurvive(t *testing.T) {
	cfg := DefaultConfig()
	// A non-convex/degenerate "contour" that will never pass the filter
	// but is still returned by the tracer, forcing the raw-contour
	// fallback path.
	badQuad := []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{},
		fixedTracer{contours: []edge.Contour{rectContourDoc()}},
		fixedApproximator{points: badQuad},
		nil)
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	require.NotNil(t, result.Quad)
	assert.True(t, result.FallbackRaw)
}

func TestResultToSourceFrameScalesQuad(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{},
		fixedTracer{contours: []edge.Contour{rectContourDoc()}},
		fixedApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
		nil)
	require.NoError(t, err)

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, nil)
	require.NoError(t, err)
	require.NotNil(t, result.Quad)

	scaled := result.ToSourceFrame(2.0)
	assert.InDelta(t, result.Quad.Points[0].X*2, scaled.Quad.Points[0].X, 1e-9)
}

func TestScanRecordsTimingsWhenTrackerAttached(t *testing.T) {
	cfg := DefaultConfig()
	scanner, err := New(cfg, passthroughKernels{}, fixedDetector{},
		fixedTracer{contours: []edge.Contour{rectContourDoc()}},
		fixedApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}},
		nil)
	require.NoError(t, err)
	scanner.WithTracker(timing.NewTracker())

	result, err := scanner.Scan(context.Background(), imaging.New(200, 200), 1, nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Contains(t, result.Timings, "enhanced")
}
