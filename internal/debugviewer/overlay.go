// Package debugviewer is the optional Fyne-based demonstration surface
// for paperscan (spec §1: "timing/debug bookkeeping" and the user-facing
// invocation surface are explicitly out of scope for the core). It is
// grounded in the teacher's internal/gui/widgets image display pattern:
// an original image in a canvas.Image, overlaid with the detected
// quadrilateral drawn as four canvas.Line segments.
package debugviewer

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"paperscan/internal/geometry"
)

// QuadColor is the overlay stroke colour for an accepted detection.
var QuadColor = color.RGBA{R: 255, G: 64, B: 64, A: 255}

// ImageDisplay shows one source image with an optional detected
// quadrilateral overlaid on top, matching the teacher's
// canvas.Image-inside-container.NewStack layering (internal/gui/widgets
// .ImageDisplay.setupLayout).
type ImageDisplay struct {
	container *fyne.Container
	image     *canvas.Image
	lines     [4]*canvas.Line
	imgW      int
	imgH      int
}

// NewImageDisplay builds an empty display; call SetImage before SetQuad.
func NewImageDisplay() *ImageDisplay {
	id := &ImageDisplay{
		image: canvas.NewImageFromImage(nil),
	}
	id.image.FillMode = canvas.ImageFillContain
	id.image.ScaleMode = canvas.ImageScaleSmooth

	overlay := []fyne.CanvasObject{id.image}
	for i := range id.lines {
		line := canvas.NewLine(QuadColor)
		line.StrokeWidth = 3
		line.Hidden = true
		id.lines[i] = line
		overlay = append(overlay, line)
	}
	id.container = container.NewStack(overlay...)
	return id
}

// Container returns the renderable Fyne object for this display.
func (id *ImageDisplay) Container() fyne.CanvasObject {
	return id.container
}

// SetImage loads a new source image and clears any existing overlay.
func (id *ImageDisplay) SetImage(img image.Image) {
	bounds := img.Bounds()
	id.imgW, id.imgH = bounds.Dx(), bounds.Dy()
	id.image.Image = img
	id.image.Refresh()
	id.hideQuad()
}

// SetQuad positions the four overlay line segments over quad's corners,
// already ordered TL, TR, BR, BL (geometry.Quad.Ordered). Coordinates are
// in the source image's pixel frame; SetImage must be called first.
func (id *ImageDisplay) SetQuad(quad *geometry.Quad) {
	if quad == nil || id.imgW == 0 || id.imgH == 0 {
		id.hideQuad()
		return
	}

	size := id.image.Size()
	sx := size.Width / float32(id.imgW)
	sy := size.Height / float32(id.imgH)

	pts := quad.Points
	for i, line := range id.lines {
		a := pts[i]
		b := pts[(i+1)%4]
		line.Position1 = fyne.NewPos(float32(a.X)*sx, float32(a.Y)*sy)
		line.Position2 = fyne.NewPos(float32(b.X)*sx, float32(b.Y)*sy)
		line.Hidden = false
		line.Refresh()
	}
}

func (id *ImageDisplay) hideQuad() {
	for _, line := range id.lines {
		line.Hidden = true
		line.Refresh()
	}
}
