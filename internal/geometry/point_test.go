package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShoelaceAreaRectangle(t *testing.T) {
	poly := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	area := ShoelaceArea(poly)
	require.InDelta(t, 50.0, area, 1e-6)
}

func TestShoelaceAreaWindingIndependent(t *testing.T) {
	cw := []Point{{0, 0}, {0, 5}, {10, 5}, {10, 0}}
	ccw := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	assert.InDelta(t, ShoelaceArea(cw), ShoelaceArea(ccw), 1e-6)
}

func TestIsConvexRectangle(t *testing.T) {
	poly := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	assert.True(t, IsConvex(poly))
}

func TestIsConvexBowtieRejected(t *testing.T) {
	bowtie := []Point{{0, 0}, {100, 0}, {0, 100}, {100, 100}}
	assert.False(t, IsConvex(bowtie))
}

func TestInteriorAngleAxisAlignedRectangleIs90(t *testing.T) {
	poly := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	for i := range poly {
		angle := InteriorAngleDegrees(poly, i)
		assert.InDelta(t, 90.0, angle, 1e-6)
	}
}

func TestInteriorAngleParallelogram60Degrees(t *testing.T) {
	// A parallelogram with 60/120 degree interior angles.
	h := 10.0
	shift := h / math.Tan(60.0*math.Pi/180.0)
	poly := []Point{{0, 0}, {10, 0}, {10 + shift, h}, {shift, h}}
	angle := InteriorAngleDegrees(poly, 0)
	assert.InDelta(t, 60.0, angle, 1e-3)
}

func TestOrderCornersProducesTLTRBRBL(t *testing.T) {
	quad := [4]Point{{10, 10}, {0, 0}, {10, 0}, {0, 10}} // BR, TL, TR, BL, shuffled
	ordered := OrderCorners(quad)

	assert.InDelta(t, 0, ordered[0].X, 1e-9)
	assert.InDelta(t, 0, ordered[0].Y, 1e-9)
	assert.InDelta(t, 10, ordered[1].X, 1e-9)
	assert.InDelta(t, 0, ordered[1].Y, 1e-9)
	assert.InDelta(t, 10, ordered[2].X, 1e-9)
	assert.InDelta(t, 10, ordered[2].Y, 1e-9)
	assert.InDelta(t, 0, ordered[3].X, 1e-9)
	assert.InDelta(t, 10, ordered[3].Y, 1e-9)
}

func TestEdgeLengthsRectangle(t *testing.T) {
	poly := []Point{{0, 0}, {10, 0}, {10, 5}, {0, 5}}
	edges := EdgeLengths(poly)
	require.InDelta(t, 10, edges[0], 1e-9)
	require.InDelta(t, 5, edges[1], 1e-9)
	require.InDelta(t, 10, edges[2], 1e-9)
	require.InDelta(t, 5, edges[3], 1e-9)
}
