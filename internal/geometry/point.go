// Package geometry implements the polygon math the contour filter and
// driver depend on: shoelace area, convexity, interior angles, aspect
// ratio, and corner ordering (spec §4.6, §8, §9's open question on corner
// ordering of the degenerate fallback quadrilateral).
package geometry

import "math"

// Point is a floating-point coordinate in the processing-resolution frame
// (spec §3: "floating-point coordinates in the processing-resolution
// frame").
type Point struct {
	X, Y float64
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Dot returns the dot product of p and q treated as vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component) of p and q treated as
// vectors.
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Norm returns the Euclidean length of p treated as a vector.
func (p Point) Norm() float64 {
	return math.Hypot(p.X, p.Y)
}

// ShoelaceArea computes the polygon area via the shoelace formula. The
// result is always non-negative regardless of winding direction.
func ShoelaceArea(poly []Point) float64 {
	n := len(poly)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += poly[i].X*poly[j].Y - poly[j].X*poly[i].Y
	}
	return math.Abs(sum) / 2.0
}

// IsConvex reports whether poly is a convex simple polygon: the cross
// products of consecutive edge pairs are either all non-negative or all
// non-positive (zero cross products, i.e. collinear edges, are ignored).
// A self-intersecting "bowtie" quadrilateral is rejected by this test.
func IsConvex(poly []Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}

	sign := 0
	for i := 0; i < n; i++ {
		a := poly[i]
		b := poly[(i+1)%n]
		c := poly[(i+2)%n]

		cross := b.Sub(a).Cross(c.Sub(b))
		if cross == 0 {
			continue
		}

		s := 1
		if cross < 0 {
			s = -1
		}

		if sign == 0 {
			sign = s
		} else if sign != s {
			return false
		}
	}

	return sign != 0
}

// InteriorAngleDegrees returns the interior angle, in degrees, at vertex i
// of poly computed from the dot product of the two incident edge vectors
// (spec §4.6 step 4).
func InteriorAngleDegrees(poly []Point, i int) float64 {
	n := len(poly)
	prev := poly[(i-1+n)%n]
	cur := poly[i]
	next := poly[(i+1)%n]

	v1 := prev.Sub(cur)
	v2 := next.Sub(cur)

	n1 := v1.Norm()
	n2 := v2.Norm()
	if n1 == 0 || n2 == 0 {
		return 0
	}

	cosTheta := v1.Dot(v2) / (n1 * n2)
	cosTheta = math.Max(-1, math.Min(1, cosTheta))
	return math.Acos(cosTheta) * 180.0 / math.Pi
}

// EdgeLengths returns the four edge lengths of a quadrilateral in winding
// order: e[k] is the length from poly[k] to poly[(k+1)%4].
func EdgeLengths(poly []Point) [4]float64 {
	var edges [4]float64
	n := len(poly)
	for i := 0; i < 4 && i < n; i++ {
		j := (i + 1) % n
		edges[i] = poly[i].Sub(poly[j]).Norm()
	}
	return edges
}

// Centroid returns the arithmetic mean of poly's vertices.
func Centroid(poly []Point) Point {
	var c Point
	for _, p := range poly {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(poly))
	if n == 0 {
		return c
	}
	return Point{X: c.X / n, Y: c.Y / n}
}

// OrderCorners returns the four points of quad re-ordered as
// TL, TR, BR, BL. It sorts by angle from the centroid and then picks the
// starting point nearest the top-left (smallest y, then smallest x),
// which keeps the ordering stable for near-degenerate rectangles.
//
// This resolves spec §9's open question that the last-resort raw-contour
// fallback "has not been corner-ordered": callers always get corners in
// the same winding and starting position, whether the quad passed the
// geometric filter or not.
func OrderCorners(quad [4]Point) [4]Point {
	c := Centroid(quad[:])

	type angled struct {
		p     Point
		angle float64
	}
	pts := make([]angled, 4)
	for i, p := range quad {
		pts[i] = angled{p: p, angle: math.Atan2(p.Y-c.Y, p.X-c.X)}
	}

	for i := 1; i < 4; i++ {
		j := i
		for j > 0 && pts[j-1].angle > pts[j].angle {
			pts[j-1], pts[j] = pts[j], pts[j-1]
			j--
		}
	}

	startIdx := 0
	for i := 1; i < 4; i++ {
		if pts[i].p.Y < pts[startIdx].p.Y ||
			(pts[i].p.Y == pts[startIdx].p.Y && pts[i].p.X < pts[startIdx].p.X) {
			startIdx = i
		}
	}

	var ordered [4]Point
	for i := 0; i < 4; i++ {
		ordered[i] = pts[(startIdx+i)%4].p
	}
	return ordered
}
