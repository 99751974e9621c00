package contourfilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperscan/internal/edge"
)

// identityApproximator returns its configured points, ignoring both the
// contour and epsilon, so tests can control the approximated polygon
// directly.
type identityApproximator struct {
	points []edge.Point
	err    error
}

func (a identityApproximator) Approximate(_ edge.Contour, _ float64) ([]edge.Point, error) {
	if a.err != nil {
		return nil, a.err
	}
	return a.points, nil
}

func rectContour() edge.Contour {
	return edge.Contour{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}
}

func TestFilterAcceptsAxisAlignedRectangle(t *testing.T) {
	cfg := DefaultConfig()
	approx := identityApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 100, Y: 100}, {X: 0, Y: 100}}}

	quads, err := FilterContour(rectContour(), 200, 200, approx, cfg)
	require.NoError(t, err)
	require.Len(t, quads, 1)
	assert.InDelta(t, 1.0, quads[0].AngleScore, 1e-9)
	assert.Greater(t, quads[0].Score, 0.5)
}

func TestFilterRejectsTooSmallArea(t *testing.T) {
	cfg := DefaultConfig()
	approx := identityApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}}

	quads, err := FilterContour(rectContour(), 1000, 1000, approx, cfg)
	require.NoError(t, err)
	assert.Empty(t, quads)
}

func TestFilterRejectsBowtie(t *testing.T) {
	cfg := DefaultConfig()
	approx := identityApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 100}, {X: 100, Y: 100}}}

	quads, err := FilterContour(rectContour(), 200, 200, approx, cfg)
	require.NoError(t, err)
	assert.Empty(t, quads)
}

func TestFilterRejectsAcuteAngles(t *testing.T) {
	cfg := DefaultConfig()
	// A thin sliver parallelogram with 45/135 degree angles. The 80x80
	// image keeps its area ratio (1000/6400) inside the allowed range, so
	// the angle check is what rejects it.
	approx := identityApproximator{points: []edge.Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 110, Y: 10}, {X: 10, Y: 10}}}

	quads, err := FilterContour(rectContour(), 80, 80, approx, cfg)
	require.NoError(t, err)
	assert.Empty(t, quads)
}

func TestFilterSkipsShortContours(t *testing.T) {
	cfg := DefaultConfig()
	approx := identityApproximator{}

	quads, err := FilterContour(edge.Contour{{X: 0, Y: 0}, {X: 1, Y: 1}}, 100, 100, approx, cfg)
	require.NoError(t, err)
	assert.Empty(t, quads)
}

func TestFilterPoolsAcrossContoursAndPicksHighestScore(t *testing.T) {
	cfg := DefaultConfig()

	good := rectContour()
	smaller := edge.Contour{{X: 0, Y: 0}, {X: 80, Y: 0}, {X: 80, Y: 80}, {X: 0, Y: 80}}

	// Both contours survive the filter (area ratios 0.25 and 0.16, scores
	// 0.7 and 0.664), so Filter must pool them and return the larger one.
	best, err := Filter([]edge.Contour{smaller, good}, 200, 200, contourApproximator{}, cfg)
	require.NoError(t, err)
	require.NotNil(t, best)
	assert.InDelta(t, 10000.0, best.Area, 1e-9)
	assert.InDelta(t, 0.4*0.25+0.6*1.0, best.Score, 1e-9)
}

// contourApproximator returns each contour's own points unchanged.
type contourApproximator struct{}

func (contourApproximator) Approximate(c edge.Contour, _ float64) ([]edge.Point, error) {
	return []edge.Point(c), nil
}

func TestFilterReturnsNilWhenNoContours(t *testing.T) {
	cfg := DefaultConfig()
	approx := identityApproximator{}

	best, err := Filter(nil, 100, 100, approx, cfg)
	require.NoError(t, err)
	assert.Nil(t, best)
}

func TestConfigEpsilonsDerivedWhenUnset(t *testing.T) {
	cfg := Config{Epsilon: 0.02}
	eps := cfg.Epsilons()
	require.Len(t, eps, 5)
	assert.InDelta(t, 0.01, eps[0], 1e-9)
	assert.InDelta(t, 0.04, eps[4], 1e-9)
}

func TestConfigEpsilonsExplicitOverride(t *testing.T) {
	cfg := Config{Epsilon: 0.02, EpsilonValues: []float64{0.1}}
	assert.Equal(t, []float64{0.1}, cfg.Epsilons())
}
