package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeeshanalimughal/ai-agents-guide/core"
	"github.com/zeeshanalimughal/ai-agents-guide/logging"
	"github.com/zeeshanalimughal/ai-agents-guide/tool"
)

// stubTool is a minimal Tool with configurable delay and behavior.
type stubTool struct {
	name  string
	delay time.Duration
	fn    func(ctx context.Context, args map[string]any) (any, error)
}

func (s *stubTool) Name() string               { return s.name }
func (s *stubTool) Description() string        { return "stub tool " + s.name }
func (s *stubTool) Parameters() map[string]any { return map[string]any{"type": "object"} }
func (s *stubTool) Call(ctx context.Context, args map[string]any) (any, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.fn != nil {
		return s.fn(ctx, args)
	}
	return s.name + "-result", nil
}

func newTestExecutor(t *testing.T, tools ...tool.Tool) *Executor {
	t.Helper()
	registry := tool.NewRegistry(tools...)
	return NewExecutor(registry, 0, logging.NoOpLogger{})
}

func call(name, args string) core.FunctionCall {
	return core.FunctionCall{ID: core.NewID(), Name: name, Arguments: args}
}

func TestExecutorEmptyBatch(t *testing.T) {
	e := newTestExecutor(t)
	assert.Nil(t, e.Execute(context.Background(), nil))
}

func TestExecutorPreservesRequestOrder(t *testing.T) {
	// B is much slower than A and C; results must still come back as [A B C].
	a := &stubTool{name: "a", delay: 10 * time.Millisecond}
	b := &stubTool{name: "b", delay: 120 * time.Millisecond}
	c := &stubTool{name: "c", delay: 10 * time.Millisecond}

	e := newTestExecutor(t, a, b, c)
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("a", ""), call("b", ""), call("c", ""),
	})

	require.Len(t, results, 3)
	assert.Equal(t, "a", results[0].Name)
	assert.Equal(t, "b", results[1].Name)
	assert.Equal(t, "c", results[2].Name)
	assert.Equal(t, "a-result", results[0].Response)
	assert.Equal(t, "b-result", results[1].Response)
	assert.Equal(t, "c-result", results[2].Response)
}

func TestExecutorRunsBatchConcurrently(t *testing.T) {
	// Three 100ms tools executed as one batch should take near 100ms, not 300ms.
	mk := func(name string) tool.Tool { return &stubTool{name: name, delay: 100 * time.Millisecond} }
	e := newTestExecutor(t, mk("a"), mk("b"), mk("c"))

	start := time.Now()
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("a", ""), call("b", ""), call("c", ""),
	})
	elapsed := time.Since(start)

	require.Len(t, results, 3)
	assert.Less(t, elapsed, 250*time.Millisecond, "batch should run concurrently, took %v", elapsed)
}

func TestExecutorFaultIsolation(t *testing.T) {
	a := &stubTool{name: "a"}
	b := &stubTool{name: "b", fn: func(context.Context, map[string]any) (any, error) {
		return nil, fmt.Errorf("boom")
	}}
	c := &stubTool{name: "c"}

	e := newTestExecutor(t, a, b, c)
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("a", ""), call("b", ""), call("c", ""),
	})

	require.Len(t, results, 3)
	assert.Equal(t, "a-result", results[0].Response)
	assert.True(t, results[1].Failed())
	assert.Contains(t, results[1].Error, "boom")
	assert.Equal(t, "c-result", results[2].Response)
}

func TestExecutorRecoversPanics(t *testing.T) {
	a := &stubTool{name: "a"}
	p := &stubTool{name: "p", fn: func(context.Context, map[string]any) (any, error) {
		panic("tool exploded")
	}}

	e := newTestExecutor(t, a, p)
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("p", ""), call("a", ""),
	})

	require.Len(t, results, 2)
	assert.True(t, results[0].Failed())
	assert.Contains(t, results[0].Error, "panic in tool p")
	assert.Equal(t, "a-result", results[1].Response)
}

func TestExecutorUnknownTool(t *testing.T) {
	e := newTestExecutor(t, &stubTool{name: "known"})
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("missing", ""),
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Failed())
	assert.Equal(t, "unknown tool: missing", results[0].Error)
}

func TestExecutorMalformedArguments(t *testing.T) {
	e := newTestExecutor(t, &stubTool{name: "a"})
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("a", "{not json"),
	})

	require.Len(t, results, 1)
	assert.True(t, results[0].Failed())
	assert.Contains(t, results[0].Error, tool.CodeBadArgs)
}

func TestExecutorEchoesCallIDs(t *testing.T) {
	e := newTestExecutor(t, &stubTool{name: "a"})
	fc := call("a", "")
	results := e.Execute(context.Background(), []core.FunctionCall{fc})

	require.Len(t, results, 1)
	assert.Equal(t, fc.ID, results[0].ID)
}

func TestExecutorMaxParallelBound(t *testing.T) {
	// With MaxParallel=1, four 40ms tools run serially: well over 150ms total.
	mk := func(name string) tool.Tool { return &stubTool{name: name, delay: 40 * time.Millisecond} }
	registry := tool.NewRegistry(mk("a"), mk("b"), mk("c"), mk("d"))
	e := NewExecutor(registry, 1, logging.NoOpLogger{})

	start := time.Now()
	results := e.Execute(context.Background(), []core.FunctionCall{
		call("a", ""), call("b", ""), call("c", ""), call("d", ""),
	})
	elapsed := time.Since(start)

	require.Len(t, results, 4)
	assert.GreaterOrEqual(t, elapsed, 150*time.Millisecond)
}

func TestDecodeArguments(t *testing.T) {
	args, err := decodeArguments(`{"a": 1, "b": "x"}`)
	require.NoError(t, err)
	assert.Equal(t, float64(1), args["a"])
	assert.Equal(t, "x", args["b"])

	args, err = decodeArguments("")
	require.NoError(t, err)
	assert.Empty(t, args)

	_, err = decodeArguments("[1,2]")
	assert.Error(t, err)
}

func TestExecutorPassesDecodedArgs(t *testing.T) {
	var got map[string]any
	echo := &stubTool{name: "echo", fn: func(_ context.Context, args map[string]any) (any, error) {
		got = args
		return args, nil
	}}

	e := newTestExecutor(t, echo)
	payload, _ := json.Marshal(map[string]any{"order_id": "A100", "amount": 2.5})
	results := e.Execute(context.Background(), []core.FunctionCall{call("echo", string(payload))})

	require.Len(t, results, 1)
	require.NotNil(t, got)
	assert.Equal(t, "A100", got["order_id"])
	assert.Equal(t, 2.5, got["amount"])
}
