package compose

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Branch is one named concurrent unit of a fan-out.
type Branch struct {
	Name string
	Step Step
}

// BranchResult pairs a branch with its output.
type BranchResult struct {
	Name   string
	Output string
}

// FanOutResult is the joined outcome of a fan-out run.
type FanOutResult struct {
	// Branches holds every branch output in declaration order.
	Branches []BranchResult
	// Text is the synthesized answer when a synthesizer is configured,
	// otherwise the branch outputs joined as labeled sections.
	Text string
}

// FanOut launches all branches concurrently on the same input, waits for
// every one of them, and joins the outputs in declaration order. Wall-clock
// time tracks the slowest branch, not the sum. Any branch failure fails the
// join; the first error encountered (after all branches finish) is returned.
//
// An optional synthesizer step consumes the combined branch outputs and
// produces the final text, which is itself an ordinary Step (usually another
// model call).
type FanOut struct {
	name        string
	branches    []Branch
	synthesizer Step
}

// NewFanOut creates a fan-out/fan-in composition over the given branches.
func NewFanOut(name string, branches ...Branch) *FanOut {
	return &FanOut{name: name, branches: branches}
}

// WithSynthesizer sets the synthesis step run over the joined branch outputs.
func (f *FanOut) WithSynthesizer(s Step) *FanOut {
	f.synthesizer = s
	return f
}

// Run executes all branches concurrently and joins their results.
func (f *FanOut) Run(ctx context.Context, input string) (*FanOutResult, error) {
	n := len(f.branches)
	if n == 0 {
		return &FanOutResult{}, nil
	}

	outputs := make([]string, n)
	errs := make([]error, n)
	var wg sync.WaitGroup

	for i := range f.branches {
		wg.Add(1)
		go func(idx int, br Branch) {
			defer wg.Done()
			out, err := br.Step(ctx, input)
			if err != nil {
				errs[idx] = fmt.Errorf("fan-out %s branch %s failed: %w", f.name, br.Name, err)
				return
			}
			outputs[idx] = out
		}(i, f.branches[i])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	result := &FanOutResult{Branches: make([]BranchResult, n)}
	for i, br := range f.branches {
		result.Branches[i] = BranchResult{Name: br.Name, Output: outputs[i]}
	}
	result.Text = joinBranchOutputs(result.Branches)

	if f.synthesizer != nil {
		text, err := f.synthesizer(ctx, result.Text)
		if err != nil {
			return nil, fmt.Errorf("fan-out %s synthesis failed: %w", f.name, err)
		}
		result.Text = text
	}

	return result, nil
}

func joinBranchOutputs(branches []BranchResult) string {
	var b strings.Builder
	for i, br := range branches {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "### %s\n%s", br.Name, br.Output)
	}
	return b.String()
}
