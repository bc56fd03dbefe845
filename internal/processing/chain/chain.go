package chain

import (
	"fmt"

	"realtime-edge/internal/opencv/memory"
	"realtime-edge/internal/opencv/safe"
)

type ProcessingStep interface {
	Apply(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error)
	Name() string
}

// ProcessingChain runs its steps in a fixed order. Every step always runs.
type ProcessingChain struct {
	steps []ProcessingStep
}

func NewProcessingChain(steps ...ProcessingStep) *ProcessingChain {
	return &ProcessingChain{
		steps: steps,
	}
}

// Execute feeds input through every step. Intermediates are closed as soon as
// the next step has consumed them; input is never closed.
func (pc *ProcessingChain) Execute(input *safe.Mat, alloc memory.Allocator) (*safe.Mat, error) {
	if len(pc.steps) == 0 {
		return nil, fmt.Errorf("processing chain has no steps")
	}

	current := input
	for _, step := range pc.steps {
		result, err := step.Apply(current, alloc)
		if err != nil {
			if current != input {
				current.Close()
			}
			return nil, fmt.Errorf("step %s failed: %w", step.Name(), err)
		}
		if result == nil {
			if current != input {
				current.Close()
			}
			return nil, fmt.Errorf("step %s returned no result", step.Name())
		}

		if current != input {
			current.Close()
		}
		current = result
	}

	return current, nil
}

func (pc *ProcessingChain) StepCount() int {
	return len(pc.steps)
}

func (pc *ProcessingChain) StepNames() []string {
	names := make([]string, len(pc.steps))
	for i, step := range pc.steps {
		names[i] = step.Name()
	}
	return names
}
