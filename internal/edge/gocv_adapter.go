package edge

import (
	"fmt"

	"gocv.io/x/gocv"

	img "paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/opencv/conversion"
	"paperscan/internal/opencv/safe"
)

// GocvDetector runs gocv.Canny, then an optional post-dilation through a
// kernels.Provider to close small gaps before tracing — mirroring the
// teacher's pattern of layering OpenCV primitives with the shared
// morphology kernel rather than hand-rolling a second dilation path.
type GocvDetector struct {
	Kernels kernels.Provider
}

func NewGocvDetector(provider kernels.Provider) GocvDetector {
	return GocvDetector{Kernels: provider}
}

func (d GocvDetector) Canny(src *img.Gray, lowThreshold, highThreshold float64, dilationKernelSize, dilationIterations int) (*img.Gray, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	srcMat, err := conversion.ImageToMat(src.ToImage())
	if err != nil {
		return nil, fmt.Errorf("edge: canny input conversion failed: %w", err)
	}
	defer srcMat.Close()

	dstMat := gocv.NewMat()
	defer dstMat.Close()

	gocv.Canny(srcMat.GetMat(), &dstMat, float32(lowThreshold), float32(highThreshold))

	dst, err := safe.NewMatFromMat(dstMat)
	if err != nil {
		return nil, fmt.Errorf("edge: canny output wrap failed: %w", err)
	}
	defer dst.Close()

	out, err := conversion.MatToImage(dst)
	if err != nil {
		return nil, fmt.Errorf("edge: canny output conversion failed: %w", err)
	}
	binary := img.FromImage(out)

	if dilationKernelSize <= 1 || dilationIterations <= 0 {
		return binary, nil
	}

	current := binary
	for i := 0; i < dilationIterations; i++ {
		dilated, err := d.Kernels.Dilate(current, dilationKernelSize)
		if err != nil {
			return nil, fmt.Errorf("edge: post-canny dilation failed: %w", err)
		}
		current = dilated
	}
	return current, nil
}

// GocvTracer traces outer-boundary contours via gocv.FindContours,
// discarding the hierarchy (the filter never needs nested contours).
type GocvTracer struct{}

func NewGocvTracer() GocvTracer { return GocvTracer{} }

func (GocvTracer) Trace(binary *img.Gray, minArea float64) ([]Contour, error) {
	if err := binary.Validate(); err != nil {
		return nil, err
	}

	mat, err := conversion.ImageToMat(binary.ToImage())
	if err != nil {
		return nil, fmt.Errorf("edge: trace input conversion failed: %w", err)
	}
	defer mat.Close()

	pvs := gocv.FindContours(mat.GetMat(), gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer pvs.Close()

	contours := make([]Contour, 0, pvs.Size())
	for i := 0; i < pvs.Size(); i++ {
		pv := pvs.At(i)
		if minArea > 0 && gocv.ContourArea(pv) < minArea {
			continue
		}
		points := pv.ToPoints()
		contour := make(Contour, len(points))
		for j, p := range points {
			contour[j] = Point{X: p.X, Y: p.Y}
		}
		contours = append(contours, contour)
	}
	return contours, nil
}

// GocvApproximator wraps gocv.ApproxPolyDP, converting the fractional
// epsilon (a fraction of perimeter, per the contract) into the absolute
// pixel epsilon OpenCV expects.
type GocvApproximator struct{}

func NewGocvApproximator() GocvApproximator { return GocvApproximator{} }

func (GocvApproximator) Approximate(contour Contour, epsilon float64) ([]Point, error) {
	if len(contour) < 3 {
		return nil, fmt.Errorf("edge: contour too short to approximate (%d points)", len(contour))
	}

	pv := gocv.NewPointVectorFromPoints(toIntPoints(contour))
	defer pv.Close()

	perimeter := gocv.ArcLength(pv, true)
	absoluteEpsilon := epsilon * perimeter

	approx := gocv.ApproxPolyDP(pv, absoluteEpsilon, true)
	defer approx.Close()

	result := approx.ToPoints()
	out := make([]Point, len(result))
	for i, p := range result {
		out[i] = Point{X: p.X, Y: p.Y}
	}
	return out, nil
}

func toIntPoints(contour Contour) []gocv.Point {
	pts := make([]gocv.Point, len(contour))
	for i, p := range contour {
		pts[i] = gocv.Point{X: p.X, Y: p.Y}
	}
	return pts
}

var (
	_ Detector     = GocvDetector{}
	_ Tracer       = GocvTracer{}
	_ Approximator = GocvApproximator{}
)
