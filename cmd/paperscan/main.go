// Command paperscan is the thin invocation surface around the
// detection core (spec §1 explicitly places the "user-facing invocation
// surface" out of scope for the core itself): load an image, run a
// scan, print the result.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rs/zerolog"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"paperscan"
	"paperscan/internal/edge"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/kernels/opencvkernel"
	"paperscan/internal/kernels/refkernel"
	"paperscan/internal/logger"
)

func main() {
	path := flag.String("image", "", "path to the input image")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: paperscan -image path/to/photo.jpg")
		os.Exit(2)
	}

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := logger.NewConsoleLogger(level)

	if err := run(*path, log); err != nil {
		log.Error("main", err, nil)
		os.Exit(1)
	}
}

func run(path string, log logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("paperscan: opening %s: %w", path, err)
	}
	defer f.Close()

	decoded, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("paperscan: decoding %s: %w", path, err)
	}
	gray := imaging.FromImage(decoded)

	provider := kernels.NewFallbackProvider(opencvkernel.New(), refkernel.New(), log)
	detector := edge.NewGocvDetector(provider)
	tracer := edge.NewGocvTracer()
	approximator := edge.NewGocvApproximator()

	cfg := paperscan.DefaultConfig()
	scanner, err := paperscan.New(cfg, provider, detector, tracer, approximator, log)
	if err != nil {
		return fmt.Errorf("paperscan: invalid configuration: %w", err)
	}

	result, err := scanner.Scan(context.Background(), gray, 1.0, nil)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("paperscan: encoding result: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
