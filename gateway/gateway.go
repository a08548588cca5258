// Package gateway defines the model gateway boundary: the single external
// interface of the runtime. A Gateway accepts instructions, conversation
// history and tool schemas and returns either a final text answer, one or more
// requested tool invocations, or both. Vendor adapters live in subpackages;
// tests and examples use the in-memory ScriptedGateway.
package gateway

import (
	"context"

	"github.com/zeeshanalimughal/ai-agents-guide/core"
)

// ToolDefinition declaratively exposes a callable tool to the model.
type ToolDefinition struct {
	Type     string             `json:"type"` // "function"
	Function FunctionDefinition `json:"function"`
}

// FunctionDefinition describes an individual tool exposed to the model.
// Parameters is a minimal JSON Schema object.
type FunctionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// Request captures the normalized model input produced by the agent loop.
type Request struct {
	Instructions string           `json:"instructions"` // System prompt, forwarded opaquely
	Messages     []core.Content   `json:"messages"`     // Conversation history snapshot
	Tools        []ToolDefinition `json:"tools,omitempty"`
}

// TokenUsage captures token accounting for a completed call.
type TokenUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// Response is a complete model turn. Content may hold text parts, function
// call parts, or a mix of both; the presence of any function call means the
// turn is not final and the loop must continue.
type Response struct {
	Content      core.Content `json:"content"`
	FinishReason string       `json:"finish_reason"` // "stop", "length", "tool_calls", ...
	Usage        *TokenUsage  `json:"usage,omitempty"`
}

// Text returns the concatenated text fragments of the response.
func (r *Response) Text() string { return r.Content.Text() }

// FunctionCalls returns the tool invocations requested by this turn, in order.
func (r *Response) FunctionCalls() []core.FunctionCall { return r.Content.FunctionCalls() }

// Info contains metadata about a gateway implementation.
type Info struct {
	Name          string `json:"name"`
	Provider      string `json:"provider"` // "openai", "anthropic", "scripted", ...
	SupportsTools bool   `json:"supports_tools"`
}

// Gateway is the minimal interface the agent loop requires from a model
// provider. Complete performs one full round-trip; transport, auth and quota
// failures are returned as errors and are fatal to the enclosing run; the
// runtime never retries on the caller's behalf.
type Gateway interface {
	Complete(ctx context.Context, req Request) (*Response, error)

	// Info returns metadata about the gateway implementation.
	Info() Info
}
