package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/zeeshanalimughal/ai-agents-guide/core"
	"github.com/zeeshanalimughal/ai-agents-guide/logging"
	"github.com/zeeshanalimughal/ai-agents-guide/tool"
)

// Executor runs one model turn's batch of tool invocations. Invocations are
// causally independent within a turn, so the executor runs them concurrently
// (bounded by MaxParallel) while preserving request order in the returned
// results regardless of completion order.
//
// Failure stays local to each invocation: an unknown tool name, a malformed
// argument payload, an implementation error or a panic all become error-shaped
// FunctionResponses fed back to the model. Execute itself never fails and
// never lets one invocation abort its siblings.
type Executor struct {
	registry    *tool.Registry
	maxParallel int // <1 means no limit beyond batch size
	logger      logging.Logger
}

// NewExecutor constructs an executor over the given registry.
func NewExecutor(registry *tool.Registry, maxParallel int, logger logging.Logger) *Executor {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &Executor{registry: registry, maxParallel: maxParallel, logger: logger}
}

// Execute resolves and invokes every requested call, returning one response
// per request in request order.
func (e *Executor) Execute(ctx context.Context, calls []core.FunctionCall) []core.FunctionResponse {
	n := len(calls)
	if n == 0 {
		return nil
	}

	// Fast path: single call, execute inline.
	if n == 1 {
		return []core.FunctionResponse{e.executeOne(ctx, calls[0])}
	}

	maxPar := e.maxParallel
	if maxPar < 1 || maxPar > n {
		maxPar = n
	}

	results := make([]core.FunctionResponse, n)
	sem := make(chan struct{}, maxPar)
	var wg sync.WaitGroup

	batchStart := time.Now()
	for i := range calls {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int, fc core.FunctionCall) {
			defer wg.Done()
			defer func() { <-sem }()
			results[idx] = e.executeOne(ctx, fc)
		}(i, calls[i])
	}
	wg.Wait()

	e.logger.Debug("executor.batch.complete",
		"count", n,
		"parallelism", maxPar,
		"duration_ms", time.Since(batchStart).Milliseconds(),
	)

	return results
}

func (e *Executor) executeOne(ctx context.Context, fc core.FunctionCall) core.FunctionResponse {
	resp := core.FunctionResponse{ID: fc.ID, Name: fc.Name}

	impl, ok := e.registry.Resolve(fc.Name)
	if !ok {
		resp.Error = fmt.Sprintf("unknown tool: %s", fc.Name)
		e.logger.Warn("executor.unknown_tool", "tool", fc.Name, "call_id", fc.ID)
		return resp
	}

	args, err := decodeArguments(fc.Arguments)
	if err != nil {
		resp.Error = tool.NewToolError(fc.Name, err.Error(), tool.CodeBadArgs).Error()
		e.logger.Warn("executor.bad_arguments", "tool", fc.Name, "error", err.Error())
		return resp
	}

	start := time.Now()
	var result any
	func() { // panic safety: a crashing tool must not take down the batch
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic in tool %s: %v", fc.Name, r)
				e.logger.Error("executor.tool.panic", "tool", fc.Name, "recover", fmt.Sprint(r))
			}
		}()
		result, err = impl.Call(ctx, args)
	}()

	e.logger.Info("executor.tool.executed",
		"tool", fc.Name,
		"call_id", fc.ID,
		"duration_ms", time.Since(start).Milliseconds(),
		"error", err != nil,
	)

	if err != nil {
		resp.Error = err.Error()
		return resp
	}
	resp.Response = result
	return resp
}

// decodeArguments parses the serialized JSON argument payload. An empty
// payload decodes to an empty argument map.
func decodeArguments(raw string) (map[string]any, error) {
	if raw == "" {
		return map[string]any{}, nil
	}
	var args map[string]any
	if err := json.Unmarshal([]byte(raw), &args); err != nil {
		return nil, fmt.Errorf("failed to decode arguments: %w", err)
	}
	return args, nil
}
