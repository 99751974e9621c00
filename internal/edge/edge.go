// Package edge defines the external collaborators the detection
// pipeline treats as pre-existing building blocks (Canny edge detection,
// contour tracing, polygon approximation) and a gocv-backed
// implementation of each.
package edge

import "paperscan/internal/imaging"

// Point is an integer pixel coordinate in a raw traced contour.
type Point struct {
	X, Y int
}

// Contour is an ordered outer-boundary point list with no holes.
type Contour []Point

// Detector runs Canny edge detection, optionally dilating the result to
// close small gaps before tracing.
type Detector interface {
	Canny(src *imaging.Gray, lowThreshold, highThreshold float64, dilationKernelSize, dilationIterations int) (*imaging.Gray, error)
}

// Tracer extracts outer-boundary contours from a binary image. minArea
// is a hint the tracer may use to skip obviously-too-small contours
// early; it is not a correctness requirement.
type Tracer interface {
	Trace(binary *imaging.Gray, minArea float64) ([]Contour, error)
}

// Approximator reduces a contour to a simplified polygon via a
// Douglas-Peucker-style algorithm, where epsilon is a fraction of the
// contour's perimeter.
type Approximator interface {
	Approximate(contour Contour, epsilon float64) ([]Point, error)
}
