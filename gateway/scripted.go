package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/zeeshanalimughal/ai-agents-guide/core"
)

// ScriptStep is one canned gateway turn: either a Response or an error that
// simulates a transport-level fault.
type ScriptStep struct {
	Response *Response
	Err      error
}

// TextStep scripts a final text answer.
func TextStep(text string) ScriptStep {
	return ScriptStep{Response: &Response{
		Content:      core.NewAssistantMessage(text),
		FinishReason: "stop",
	}}
}

// CallsStep scripts a turn requesting the given tool invocations.
func CallsStep(calls ...core.FunctionCall) ScriptStep {
	parts := make([]core.Part, 0, len(calls))
	for _, fc := range calls {
		if fc.ID == "" {
			fc.ID = core.NewID()
		}
		parts = append(parts, core.FunctionCallPart{FunctionCall: fc})
	}
	return ScriptStep{Response: &Response{
		Content:      core.Content{Role: "assistant", Parts: parts},
		FinishReason: "tool_calls",
	}}
}

// TextAndCallsStep scripts a mixed turn carrying both text fragments and tool
// invocation requests. The agent loop must treat such a turn as not final.
func TextAndCallsStep(text string, calls ...core.FunctionCall) ScriptStep {
	step := CallsStep(calls...)
	step.Response.Content.Parts = append(
		[]core.Part{core.TextPart{Text: text}}, step.Response.Content.Parts...)
	return step
}

// ErrorStep scripts a gateway fault (network, auth, quota).
func ErrorStep(err error) ScriptStep { return ScriptStep{Err: err} }

// ScriptedGateway is a deterministic in-memory Gateway for tests and examples.
// It plays its steps in order and records every request it receives so tests
// can assert on the exact history and tool manifest handed to the model.
type ScriptedGateway struct {
	mu       sync.Mutex
	steps    []ScriptStep
	pos      int
	loop     bool
	requests []Request
}

// NewScriptedGateway constructs a gateway that plays the given steps once.
func NewScriptedGateway(steps ...ScriptStep) *ScriptedGateway {
	return &ScriptedGateway{steps: steps}
}

// NewLoopingGateway constructs a gateway that replays its steps forever.
// Useful for exercising step-budget enforcement.
func NewLoopingGateway(steps ...ScriptStep) *ScriptedGateway {
	return &ScriptedGateway{steps: steps, loop: true}
}

// Complete implements Gateway by returning the next scripted step.
func (g *ScriptedGateway) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.requests = append(g.requests, req)

	if g.pos >= len(g.steps) {
		if !g.loop || len(g.steps) == 0 {
			return nil, fmt.Errorf("scripted gateway exhausted after %d steps", len(g.steps))
		}
		g.pos = 0
	}

	step := g.steps[g.pos]
	g.pos++

	if step.Err != nil {
		return nil, step.Err
	}

	// Copy so callers cannot mutate the script.
	resp := *step.Response
	return &resp, nil
}

// Requests returns a snapshot of every request received so far.
func (g *ScriptedGateway) Requests() []Request {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Request, len(g.requests))
	copy(out, g.requests)
	return out
}

// Calls returns how many times Complete has been invoked.
func (g *ScriptedGateway) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.requests)
}

// Info implements Gateway.
func (g *ScriptedGateway) Info() Info {
	return Info{Name: "scripted", Provider: "scripted", SupportsTools: true}
}
