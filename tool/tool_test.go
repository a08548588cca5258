package tool

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionToolValidatesArguments(t *testing.T) {
	add := NewFunctionTool("add", "Add two numbers",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"a": map[string]any{"type": "number"},
				"b": map[string]any{"type": "number"},
			},
			"required": []string{"a", "b"},
		},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["a"].(float64) + args["b"].(float64), nil
		},
	)

	result, err := add.Call(context.Background(), map[string]any{"a": 2.0, "b": 3.0})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result)

	_, err = add.Call(context.Background(), map[string]any{"a": 2.0})
	require.Error(t, err)
	toolErr, ok := err.(*ToolError)
	require.True(t, ok)
	assert.Equal(t, CodeValidation, toolErr.Code)
	assert.Equal(t, "add", toolErr.Tool)

	_, err = add.Call(context.Background(), map[string]any{"a": "two", "b": 3.0})
	require.Error(t, err)
	toolErr = err.(*ToolError)
	assert.Equal(t, CodeValidation, toolErr.Code)
}

func TestFunctionToolWrapsExecutionErrors(t *testing.T) {
	failing := NewFunctionTool("broken", "Always fails",
		map[string]any{"type": "object"},
		func(context.Context, map[string]any) (any, error) {
			return nil, fmt.Errorf("backend down")
		},
	)

	_, err := failing.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	toolErr := err.(*ToolError)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Equal(t, "backend down", toolErr.Message)
}

func TestFunctionToolPassesThroughToolErrors(t *testing.T) {
	custom := NewToolError("custom", "order not found", "NOT_FOUND")
	failing := NewFunctionTool("custom", "Custom code",
		map[string]any{"type": "object"},
		func(context.Context, map[string]any) (any, error) {
			return nil, custom
		},
	)

	_, err := failing.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Same(t, custom, err)
}

func TestNewFunctionToolFromStruct(t *testing.T) {
	type LookupArgs struct {
		OrderID string  `json:"order_id" description:"Order identifier"`
		Limit   float64 `json:"limit,omitempty"`
	}

	lookup := NewFunctionToolFromStruct("lookup_order", "Look up an order", LookupArgs{},
		func(_ context.Context, args map[string]any) (any, error) {
			return args["order_id"], nil
		},
	)

	params := lookup.Parameters()
	properties := params["properties"].(map[string]any)
	assert.Contains(t, properties, "order_id")
	assert.Contains(t, properties, "limit")
	assert.Equal(t, []string{"order_id"}, params["required"])

	_, err := lookup.Call(context.Background(), map[string]any{})
	require.Error(t, err, "order_id is required")

	result, err := lookup.Call(context.Background(), map[string]any{"order_id": "A1"})
	require.NoError(t, err)
	assert.Equal(t, "A1", result)
}

func TestToolErrorFormatting(t *testing.T) {
	withCode := NewToolError("t", "msg", "CODE")
	assert.Equal(t, "tool error [CODE] in t: msg", withCode.Error())

	noCode := &ToolError{Tool: "t", Message: "msg"}
	assert.Equal(t, "tool error in t: msg", noCode.Error())
}

func TestAgentToolDelegatesTask(t *testing.T) {
	var receivedTask string
	worker := func(_ context.Context, task string) (string, error) {
		receivedTask = task
		return "done: " + task, nil
	}

	at := NewAgentTool("researcher", "Delegate research tasks", worker)
	assert.Equal(t, "researcher", at.Name())

	result, err := at.Call(context.Background(), map[string]any{"task": "find sources"})
	require.NoError(t, err)
	assert.Equal(t, "done: find sources", result)
	assert.Equal(t, "find sources", receivedTask)
}

func TestAgentToolValidatesTask(t *testing.T) {
	at := NewAgentTool("worker", "d", func(context.Context, string) (string, error) {
		return "", nil
	})

	_, err := at.Call(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, err.(*ToolError).Code)

	_, err = at.Call(context.Background(), map[string]any{"task": 7})
	require.Error(t, err)
	assert.Equal(t, CodeValidation, err.(*ToolError).Code)
}

func TestAgentToolWrapsWorkerFailure(t *testing.T) {
	at := NewAgentTool("worker", "d", func(context.Context, string) (string, error) {
		return "", fmt.Errorf("worker crashed")
	})

	_, err := at.Call(context.Background(), map[string]any{"task": "x"})
	require.Error(t, err)
	toolErr := err.(*ToolError)
	assert.Equal(t, CodeExecution, toolErr.Code)
	assert.Contains(t, toolErr.Message, "worker crashed")
}
