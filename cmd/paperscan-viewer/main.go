// Command paperscan-viewer is the optional Fyne-based debug surface
// named in SPEC_FULL.md §2: it loads a photograph, runs one scan, and
// draws the winning quadrilateral over the original image so the
// detection result can be inspected visually. It is ambient
// demonstration tooling, not part of the scored detection core (spec
// §1), grounded in the teacher's fyne.io/fyne/v2 application layer
// (app_core.go, internal/gui).
package main

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"paperscan"
	"paperscan/internal/debugviewer"
	"paperscan/internal/edge"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/kernels/opencvkernel"
	"paperscan/internal/kernels/refkernel"
	"paperscan/internal/logger"
)

const (
	appID        = "com.paperscan.viewer"
	windowWidth  = 1000
	windowHeight = 700
)

type viewerApp struct {
	window  fyne.Window
	display *debugviewer.ImageDisplay
	status  *debugviewer.StatusBar
	scanner *paperscan.Scanner
	log     logger.Logger
}

func main() {
	log := logger.NewConsoleLogger(zerolog.InfoLevel)

	provider := kernels.NewFallbackProvider(opencvkernel.New(), refkernel.New(), log)
	detector := edge.NewGocvDetector(provider)
	tracer := edge.NewGocvTracer()
	approximator := edge.NewGocvApproximator()

	scanner, err := paperscan.New(paperscan.DefaultConfig(), provider, detector, tracer, approximator, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "paperscan-viewer: invalid configuration:", err)
		os.Exit(1)
	}

	fyneApp := app.NewWithID(appID)
	window := fyneApp.NewWindow("paperscan viewer")
	window.Resize(fyne.NewSize(windowWidth, windowHeight))

	va := &viewerApp{
		window:  window,
		display: debugviewer.NewImageDisplay(),
		status:  debugviewer.NewStatusBar(),
		scanner: scanner,
		log:     log,
	}

	openButton := widget.NewButton("Open image...", va.onOpen)
	toolbar := container.NewHBox(openButton)

	content := container.NewBorder(toolbar, va.status.Container(), nil, nil, va.display.Container())
	window.SetContent(content)
	window.ShowAndRun()
}

func (va *viewerApp) onOpen() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		defer reader.Close()
		va.loadAndScan(reader)
	}, va.window)
}

func (va *viewerApp) loadAndScan(reader fyne.URIReadCloser) {
	decoded, _, err := image.Decode(reader)
	if err != nil {
		dialog.ShowError(fmt.Errorf("decoding image: %w", err), va.window)
		return
	}

	va.display.SetImage(decoded)
	va.status.SetStatus("Scanning...")

	gray := imaging.FromImage(decoded)
	result, err := va.scanner.Scan(context.Background(), gray, 1.0, nil)
	if err != nil {
		dialog.ShowError(err, va.window)
		return
	}

	if !result.Success {
		va.status.SetNoDocument()
		return
	}

	va.display.SetQuad(result.Quad)
	va.status.SetResult(result.Strategy, result.Candidates, result.FallbackRaw)
}
