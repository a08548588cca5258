package tool

import (
	"context"
	"fmt"
)

// Worker is a single-shot task handler: typically a closure over another
// agent's Run method or a bare gateway call.
type Worker func(ctx context.Context, task string) (string, error)

// AgentTool exposes a Worker as an ordinary tool, enabling the
// orchestrator/worker pattern: an orchestrating agent delegates subtasks by
// requesting worker tools, and because the executor runs a turn's invocations
// concurrently, simultaneous delegations dispatch in parallel with no extra
// mechanism.
type AgentTool struct {
	name        string
	description string
	worker      Worker
}

// NewAgentTool wraps a worker under the given tool name. The description
// should tell the orchestrating model what kind of task to delegate.
func NewAgentTool(name, description string, worker Worker) *AgentTool {
	return &AgentTool{name: name, description: description, worker: worker}
}

// Name returns the tool name the orchestrator requests.
func (t *AgentTool) Name() string { return t.name }

// Description returns the delegation guidance shown to the orchestrator.
func (t *AgentTool) Description() string { return t.description }

// Parameters declares the single "task" argument workers receive.
func (t *AgentTool) Parameters() map[string]any {
	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"task": map[string]any{
				"type":        "string",
				"description": "The task or question to delegate to this worker",
			},
		},
		"required": []string{"task"},
	}
}

// Call extracts the task argument and runs the worker. Worker failures come
// back as EXECUTION_ERROR payloads so the orchestrator can re-plan.
func (t *AgentTool) Call(ctx context.Context, args map[string]any) (any, error) {
	raw, ok := args["task"]
	if !ok {
		return nil, NewToolError(t.name, "missing required field 'task'", CodeValidation)
	}
	task, ok := raw.(string)
	if !ok || task == "" {
		return nil, NewToolError(t.name, "field 'task' must be a non-empty string", CodeValidation)
	}

	out, err := t.worker(ctx, task)
	if err != nil {
		return nil, NewToolError(t.name, fmt.Sprintf("worker failed: %v", err), CodeExecution)
	}
	return out, nil
}
