package strategy

import (
	"context"
	"fmt"

	"paperscan/internal/contourfilter"
	"paperscan/internal/imaging"
	"paperscan/internal/kernels"
	"paperscan/internal/processing/chain"
)

// Enhanced is strategy 1 of spec §4.7: CLAHE, box blur, adaptive
// threshold, morphological close, then trace and filter. It is the only
// strategy that can be configured to skip its own enhancement step
// (skipClahe) when the caller already equalized the image upstream.
type Enhanced struct{}

func NewEnhanced() Enhanced { return Enhanced{} }

func (Enhanced) Name() string { return "enhanced" }

func (Enhanced) Run(ctx context.Context, src *imaging.Gray, cfg Config, minAreaThreshold float64, deps Dependencies) (Result, error) {
	result := Result{StrategyName: "enhanced"}

	pc := chain.NewProcessingChain([]chain.ProcessingStep{
		claheStep{kernels: deps.Kernels, cfg: cfg.Clahe},
		blurStep{kernels: deps.Kernels, blockSize: cfg.Threshold.BlockSize},
		thresholdStep{kernels: deps.Kernels, offset: cfg.Threshold.Offset},
		closeStep{kernels: deps.Kernels, kernelSize: cfg.Morphology.KernelSize, iterations: cfg.Morphology.Iterations},
	})

	params := map[string]interface{}{"skipClahe": cfg.SkipClahe}

	binary, err := pc.Execute(ctx, src, params)
	if err != nil {
		return result, fmt.Errorf("enhanced strategy: preprocessing failed: %w", err)
	}

	contours, err := deps.Tracer.Trace(binary, minAreaThreshold)
	if err != nil {
		return result, fmt.Errorf("enhanced strategy: contour tracing failed: %w", err)
	}
	contours = filterContoursByArea(contours, minAreaThreshold)
	result.Contours = contours

	quad, err := contourfilter.Filter(contours, binary.Width, binary.Height, deps.Approximator, cfg.ContourFilter)
	if err != nil {
		return result, fmt.Errorf("enhanced strategy: contour filtering failed: %w", err)
	}
	result.Quad = quad
	return result, nil
}

type claheStep struct {
	kernels kernels.Provider
	cfg     kernels.ClaheConfig
}

func (s claheStep) Name() string { return "clahe" }
func (s claheStep) ShouldExecute(params map[string]interface{}) bool {
	skip, _ := params["skipClahe"].(bool)
	return !skip
}
func (s claheStep) Apply(_ context.Context, input *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error) {
	out, err := s.kernels.Clahe(input, s.cfg)
	if err != nil {
		return nil, err
	}
	params["enhanced"] = out
	return out, nil
}

type blurStep struct {
	kernels   kernels.Provider
	blockSize int
}

func (s blurStep) Name() string                                  { return "boxBlur" }
func (s blurStep) ShouldExecute(params map[string]interface{}) bool { return true }
func (s blurStep) Apply(_ context.Context, input *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error) {
	if _, ok := params["enhanced"]; !ok {
		params["enhanced"] = input
	}
	return s.kernels.BoxBlur(input, s.blockSize)
}

type thresholdStep struct {
	kernels kernels.Provider
	offset  float64
}

func (s thresholdStep) Name() string                                  { return "adaptiveThreshold" }
func (s thresholdStep) ShouldExecute(params map[string]interface{}) bool { return true }
func (s thresholdStep) Apply(_ context.Context, blurred *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error) {
	enhanced, _ := params["enhanced"].(*imaging.Gray)
	if enhanced == nil {
		enhanced = blurred
	}
	return s.kernels.AdaptiveThreshold(enhanced, blurred, s.offset, true)
}

type closeStep struct {
	kernels    kernels.Provider
	kernelSize int
	iterations int
}

func (s closeStep) Name() string                                  { return "morphologicalClose" }
func (s closeStep) ShouldExecute(params map[string]interface{}) bool { return true }
func (s closeStep) Apply(_ context.Context, input *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error) {
	return s.kernels.MorphologicalClose(input, s.kernelSize, s.iterations)
}

var _ Strategy = Enhanced{}
