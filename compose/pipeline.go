package compose

import (
	"context"
	"fmt"
)

// Stage is one named step of a pipeline.
type Stage struct {
	Name string
	Step Step
}

// Pipeline chains stages sequentially: each stage's output becomes the next
// stage's input. The first failing stage aborts the pipeline; there is no
// partial pipeline result.
type Pipeline struct {
	name   string
	stages []Stage
}

// NewPipeline creates a sequential pipeline from the given stages.
func NewPipeline(name string, stages ...Stage) *Pipeline {
	return &Pipeline{name: name, stages: stages}
}

// Name returns the pipeline name used in error wrapping.
func (p *Pipeline) Name() string { return p.name }

// Run feeds input through every stage in order and returns the final output.
func (p *Pipeline) Run(ctx context.Context, input string) (string, error) {
	current := input
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		out, err := stage.Step(ctx, current)
		if err != nil {
			return "", fmt.Errorf("pipeline %s failed at stage %s: %w", p.name, stage.Name, err)
		}
		current = out
	}
	return current, nil
}
