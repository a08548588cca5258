// Package tool implements the tool-calling subsystem: the Tool interface an
// agent exposes to its model, a FunctionTool adapter for plain Go functions
// with schema-validated arguments, and the Registry that maps tool names to
// implementations and produces the schema manifest handed to the gateway.
package tool

import (
	"context"
	"fmt"
)

// Tool is a named, schema-described callable the model may request. It is the
// runtime's sole unit of capability extension: a tool can wrap an API call, a
// computation, a store lookup, or another model call (see AgentTool).
//
// Implementations should:
//   - use snake_case names unique within a registry
//   - describe themselves clearly; the description guides model selection
//   - return errors rather than panicking (panics are still recovered by the
//     executor and converted into error payloads)
//   - be safe for concurrent use: independent invocations in one model turn
//     execute in parallel
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns the natural-language description shown to the model.
	Description() string

	// Parameters returns a minimal JSON schema describing accepted arguments.
	Parameters() map[string]any

	// Call executes the tool with arguments parsed from the model's JSON
	// payload. The context carries cancellation from the enclosing run.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// ToolError is the uniform error shape for failed tool invocations.
type ToolError struct {
	Tool    string `json:"tool"`              // Name of the tool that failed
	Message string `json:"message"`           // Error message
	Code    string `json:"code"`              // Error code for categorization
	Details any    `json:"details,omitempty"` // Additional error details
}

// Error codes used by the built-in tool adapters. Custom tools may introduce
// their own codes; they pass through unchanged.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeExecution  = "EXECUTION_ERROR"
	CodeBadArgs    = "ARGUMENT_DECODE_ERROR"
)

func (e *ToolError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("tool error [%s] in %s: %s", e.Code, e.Tool, e.Message)
	}
	return fmt.Sprintf("tool error in %s: %s", e.Tool, e.Message)
}

// NewToolError creates a ToolError with the given details.
func NewToolError(tool, message, code string) *ToolError {
	return &ToolError{Tool: tool, Message: message, Code: code}
}
