package contourfilter

import (
	"math"
	"sort"

	"paperscan/internal/edge"
	"paperscan/internal/geometry"
)

// candidateFromPoints validates one approximated four-point polygon
// against every geometric rule in spec §4.6 steps 2-5 and, if it
// survives, scores it (steps 6-7). ok is false when the polygon is
// rejected by any rule.
func candidateFromPoints(points []geometry.Point, imageArea float64, cfg Config) (geometry.Quad, bool) {
	if len(points) != 4 {
		return geometry.Quad{}, false
	}

	area := geometry.ShoelaceArea(points)
	if imageArea <= 0 {
		return geometry.Quad{}, false
	}
	ratio := area / imageArea
	if ratio < cfg.MinAreaRatio || ratio > cfg.MaxAreaRatio {
		return geometry.Quad{}, false
	}

	if !geometry.IsConvex(points) {
		return geometry.Quad{}, false
	}

	angles := make([]float64, 4)
	devSum := 0.0
	for i := range points {
		a := geometry.InteriorAngleDegrees(points, i)
		if a < cfg.MinAngle || a > cfg.MaxAngle {
			return geometry.Quad{}, false
		}
		angles[i] = a
		devSum += math.Abs(a - 90)
	}

	edges := geometry.EdgeLengths(points)
	width := (edges[0] + edges[2]) / 2
	height := (edges[1] + edges[3]) / 2
	if height == 0 {
		return geometry.Quad{}, false
	}
	aspect := width / height
	if aspect < cfg.MinAspectRatio || aspect > cfg.MaxAspectRatio {
		return geometry.Quad{}, false
	}

	avgDev := devSum / 4
	angleScore := math.Max(0, 1-avgDev/30)
	score := cfg.AreaWeight*ratio + cfg.AngleWeight*angleScore

	var pts [4]geometry.Point
	copy(pts[:], points)

	return geometry.Quad{
		Points:     pts,
		Area:       area,
		AngleScore: angleScore,
		Score:      score,
	}, true
}

func toGeometryPoints(pts []edge.Point) []geometry.Point {
	out := make([]geometry.Point, len(pts))
	for i, p := range pts {
		out[i] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

func contourToGeometryPoints(c edge.Contour) []geometry.Point {
	out := make([]geometry.Point, len(c))
	for i, p := range c {
		out[i] = geometry.Point{X: float64(p.X), Y: float64(p.Y)}
	}
	return out
}

// FilterContour runs the per-contour procedure of spec §4.6 against one
// raw contour, trying each configured epsilon in order and early-exiting
// once a candidate scores above 0.5 (spec §9's documented source
// behaviour: biases the first admissible epsilon over the best one).
func FilterContour(contour edge.Contour, imgW, imgH int, approximator edge.Approximator, cfg Config) ([]geometry.Quad, error) {
	if len(contour) < 4 {
		return nil, nil
	}
	imageArea := float64(imgW) * float64(imgH)

	var candidates []geometry.Quad
	for _, eps := range cfg.Epsilons() {
		approx, err := approximator.Approximate(contour, eps)
		if err != nil {
			continue
		}
		if len(approx) != 4 {
			continue
		}

		quad, ok := candidateFromPoints(toGeometryPoints(approx), imageArea, cfg)
		if !ok {
			continue
		}
		quad.RawContour = contourToGeometryPoints(contour)
		quad.Epsilon = eps
		candidates = append(candidates, quad)

		if quad.Score > 0.5 {
			break
		}
	}
	return candidates, nil
}

// Filter runs FilterContour over every raw contour, pools every
// surviving candidate, and returns the single highest-scoring one (spec
// §4.6's "Output" step). It returns (nil, nil) when no contour yields a
// valid candidate — callers treat that as "no candidate from this
// strategy", not an error.
func Filter(contours []edge.Contour, imgW, imgH int, approximator edge.Approximator, cfg Config) (*geometry.Quad, error) {
	var pool []geometry.Quad
	for _, c := range contours {
		quads, err := FilterContour(c, imgW, imgH, approximator, cfg)
		if err != nil {
			return nil, err
		}
		pool = append(pool, quads...)
	}
	if len(pool) == 0 {
		return nil, nil
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Score > pool[j].Score
	})
	best := pool[0]
	return &best, nil
}
