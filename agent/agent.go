// Package agent implements the tool-calling loop that drives one
// conversational session to a final answer: send the conversation to the
// gateway, execute any requested tool invocations, feed the results back, and
// repeat until the model answers in plain text or the step budget runs out.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/zeeshanalimughal/ai-agents-guide/core"
	"github.com/zeeshanalimughal/ai-agents-guide/gateway"
	"github.com/zeeshanalimughal/ai-agents-guide/logging"
	"github.com/zeeshanalimughal/ai-agents-guide/tool"
)

// DefaultMaxSteps bounds tool-executing round-trips per Run call.
const DefaultMaxSteps = 15

// Options configures an Agent instance. Use functional options with New to
// override defaults.
type Options struct {
	// SystemPrompt establishes persona and policy. It is forwarded to the
	// gateway on every call and is opaque to the runtime.
	SystemPrompt string

	// MaxSteps is the maximum number of tool-executing round-trips per Run.
	MaxSteps int

	// MaxParallel bounds concurrent tool invocations within one turn.
	// Values below 1 mean no limit beyond the batch size.
	MaxParallel int

	// Tools to register. Duplicate names surface as an error from New.
	Tools []tool.Tool

	// Logger receives step and tool traces. Defaults to NoOpLogger.
	Logger logging.Logger
}

// WithSystemPrompt sets the agent's system prompt.
func WithSystemPrompt(prompt string) func(*Options) {
	return func(o *Options) { o.SystemPrompt = prompt }
}

// WithMaxSteps sets the step budget.
func WithMaxSteps(n int) func(*Options) {
	return func(o *Options) { o.MaxSteps = n }
}

// WithMaxParallel bounds per-turn tool concurrency.
func WithMaxParallel(n int) func(*Options) {
	return func(o *Options) { o.MaxParallel = n }
}

// WithTools registers tools with the agent.
func WithTools(tools ...tool.Tool) func(*Options) {
	return func(o *Options) { o.Tools = append(o.Tools, tools...) }
}

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) func(*Options) {
	return func(o *Options) { o.Logger = logger }
}

// Agent owns one conversation and drives it through the gateway until the
// model produces a final answer. An Agent supports one Run at a time;
// concurrent Run calls on the same instance are unsupported. Start a fresh
// session with Reset, or construct a new Agent per logical session.
type Agent struct {
	name         string
	gw           gateway.Gateway
	registry     *tool.Registry
	executor     *Executor
	conversation *core.Conversation
	systemPrompt string
	maxSteps     int
	logger       logging.Logger
}

// New constructs an Agent bound to a gateway. The tool set and system prompt
// are fixed for the agent's lifetime.
func New(name string, gw gateway.Gateway, optFns ...func(*Options)) (*Agent, error) {
	opts := Options{
		SystemPrompt: fmt.Sprintf("You are %s, a helpful AI assistant.", name),
		MaxSteps:     DefaultMaxSteps,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxSteps < 0 {
		return nil, fmt.Errorf("max steps must not be negative, got %d", opts.MaxSteps)
	}

	registry := tool.NewRegistry()
	for _, t := range opts.Tools {
		if err := registry.Register(t); err != nil {
			return nil, err
		}
	}

	return &Agent{
		name:         name,
		gw:           gw,
		registry:     registry,
		executor:     NewExecutor(registry, opts.MaxParallel, opts.Logger),
		conversation: core.NewConversation(),
		systemPrompt: opts.SystemPrompt,
		maxSteps:     opts.MaxSteps,
		logger:       opts.Logger,
	}, nil
}

// MustNew is New that panics on configuration errors. Intended for examples
// and tests where the tool set is static.
func MustNew(name string, gw gateway.Gateway, optFns ...func(*Options)) *Agent {
	a, err := New(name, gw, optFns...)
	if err != nil {
		panic(err)
	}
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string { return a.name }

// History returns a snapshot of the conversation so far. It remains available
// after a step-budget failure for logging and diagnosis.
func (a *Agent) History() []core.Content { return a.conversation.Messages() }

// Reset clears the conversation so the next Run starts a fresh session with
// the same tools and system prompt.
func (a *Agent) Reset() { a.conversation.Reset() }

// Result is the outcome of a successful run.
type Result struct {
	// Text is the model's final answer with all text fragments concatenated.
	Text string
	// Steps counts the tool-executing round-trips taken. A run answered on
	// the first gateway call reports zero steps.
	Steps int
}

// StepLimitError reports that a run performed its full step budget of tool
// round-trips without reaching a final answer. The conversation up to that
// point stays inspectable via Agent.History.
type StepLimitError struct {
	Steps int // round-trips taken, equal to the configured budget
}

func (e *StepLimitError) Error() string {
	return fmt.Sprintf("step budget exhausted after %d tool round-trips", e.Steps)
}

// RunOption adjusts a single Run call.
type RunOption func(*runConfig)

type runConfig struct {
	context map[string]any
}

// WithContext injects structured context into the user message. The record is
// serialized into a readable block appended to the message body; it is a
// prompt construction convenience, not a structural turn field.
func WithContext(contextData map[string]any) RunOption {
	return func(c *runConfig) { c.context = contextData }
}

// Run appends the user message and drives the gateway/execute cycle until the
// model emits a final text answer.
//
// Error semantics: tool-level failures (unknown tool, bad arguments, a tool
// returning an error or panicking) are data fed back to the model and never
// abort the run. Gateway failures are fatal and propagate wrapped. Exhausting
// the step budget returns a *StepLimitError; match it with errors.As.
func (a *Agent) Run(ctx context.Context, message string, opts ...RunOption) (*Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.context != nil {
		message = message + "\n\n" + formatContext(cfg.context)
	}

	a.conversation.Append(core.NewUserMessage(message))

	runStart := time.Now()
	steps := 0
	for {
		resp, err := a.gw.Complete(ctx, a.buildRequest())
		if err != nil {
			return nil, fmt.Errorf("gateway call failed: %w", err)
		}

		// Any requested invocation means the turn is not final; accompanying
		// text is kept in history for the provider but never returned as the
		// answer.
		assistantTurn := withCallIDs(resp.Content)
		calls := assistantTurn.FunctionCalls()
		a.conversation.Append(assistantTurn)

		if len(calls) == 0 {
			text := resp.Text()
			a.logger.Info("agent.run.complete",
				"agent", a.name,
				"steps", steps,
				"duration_ms", time.Since(runStart).Milliseconds(),
			)
			return &Result{Text: text, Steps: steps}, nil
		}

		if steps >= a.maxSteps {
			a.logger.Warn("agent.run.step_limit",
				"agent", a.name,
				"steps", steps,
				"pending_calls", len(calls),
			)
			return nil, &StepLimitError{Steps: steps}
		}
		steps++

		a.logger.Debug("agent.step", "agent", a.name, "step", steps, "calls", len(calls))

		responses := a.executor.Execute(ctx, calls)
		a.conversation.Append(core.NewToolResults(responses))
	}
}

func (a *Agent) buildRequest() gateway.Request {
	req := gateway.Request{
		Instructions: a.systemPrompt,
		Messages:     a.conversation.Messages(),
	}
	if a.registry.Len() > 0 {
		req.Tools = a.registry.Definitions()
	}
	return req
}

// withCallIDs returns the content with correlation ids assigned to any
// function call part that arrived without one.
func withCallIDs(content core.Content) core.Content {
	needsIDs := false
	for _, p := range content.Parts {
		if fc, ok := p.(core.FunctionCallPart); ok && fc.FunctionCall.ID == "" {
			needsIDs = true
			break
		}
	}
	if !needsIDs {
		return content
	}

	parts := make([]core.Part, len(content.Parts))
	for i, p := range content.Parts {
		if fc, ok := p.(core.FunctionCallPart); ok && fc.FunctionCall.ID == "" {
			fc.FunctionCall.ID = core.NewID()
			parts[i] = fc
			continue
		}
		parts[i] = p
	}
	return core.Content{Role: content.Role, Parts: parts}
}

// formatContext renders an injected context record as a human-readable block
// with deterministic key order.
func formatContext(contextData map[string]any) string {
	keys := make([]string, 0, len(contextData))
	for k := range contextData {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("Context:")
	for _, k := range keys {
		b.WriteString("\n")
		b.WriteString(k)
		b.WriteString(": ")
		switch v := contextData[k].(type) {
		case string:
			b.WriteString(v)
		default:
			if encoded, err := json.Marshal(v); err == nil {
				b.Write(encoded)
			} else {
				fmt.Fprintf(&b, "%v", v)
			}
		}
	}
	return b.String()
}

// SingleShot returns a stateless worker performing one plain-text gateway
// call per task. Workers built this way are the usual payload for
// tool.NewAgentTool in orchestrator/worker setups and for compose branches:
// they carry no conversation, so any number can run concurrently.
func SingleShot(gw gateway.Gateway, systemPrompt string) tool.Worker {
	return func(ctx context.Context, task string) (string, error) {
		resp, err := gw.Complete(ctx, gateway.Request{
			Instructions: systemPrompt,
			Messages:     []core.Content{core.NewUserMessage(task)},
		})
		if err != nil {
			return "", fmt.Errorf("gateway call failed: %w", err)
		}
		return resp.Text(), nil
	}
}
