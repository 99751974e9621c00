// Package chain sequences preprocessing steps over a grayscale buffer;
// the same step-list pattern used elsewhere for Mat pipelines, adapted
// here to the kernel provider's plain *imaging.Gray buffers (which,
// unlike gocv Mats, need no manual Close).
package chain

import (
	"context"
	"fmt"

	"paperscan/internal/imaging"
)

// ProcessingStep is one stage of a preprocessing pipeline (e.g. CLAHE,
// blur, threshold, close). ShouldExecute lets a step opt out based on
// params, matching skipClahe-style configuration switches.
type ProcessingStep interface {
	Apply(ctx context.Context, input *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error)
	Name() string
	ShouldExecute(params map[string]interface{}) bool
}

// ProcessingChain runs a fixed ordered list of steps, threading each
// step's output into the next.
type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps []ProcessingStep) *ProcessingChain {
	return &ProcessingChain{steps: steps}
}

func (pc *ProcessingChain) Execute(ctx context.Context, input *imaging.Gray, params map[string]interface{}) (*imaging.Gray, error) {
	current := input
	for _, step := range pc.steps {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !step.ShouldExecute(params) {
			continue
		}

		result, err := step.Apply(ctx, current, params)
		if err != nil {
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
		current = result
	}
	return current, nil
}

func (pc *ProcessingChain) AddStep(step ProcessingStep) {
	pc.steps = append(pc.steps, step)
}

func (pc *ProcessingChain) InsertStep(index int, step ProcessingStep) error {
	if index < 0 || index > len(pc.steps) {
		return fmt.Errorf("index out of range: %d", index)
	}
	pc.steps = append(pc.steps[:index], append([]ProcessingStep{step}, pc.steps[index:]...)...)
	return nil
}

func (pc *ProcessingChain) RemoveStep(index int) error {
	if index < 0 || index >= len(pc.steps) {
		return fmt.Errorf("index out of range: %d", index)
	}
	pc.steps = append(pc.steps[:index], pc.steps[index+1:]...)
	return nil
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) GetStepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
