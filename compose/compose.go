// Package compose provides reusable multi-agent shapes built from independent
// agent invocations: sequential pipelines, parallel fan-out/fan-in with an
// optional synthesis step, and adversarial debate with a judge. Each shape
// treats its participants as plain Steps, so full agents, stateless
// single-shot workers and test stubs compose interchangeably. Composition
// never shares mutable conversation state across participants.
package compose

import (
	"context"

	"github.com/zeeshanalimughal/ai-agents-guide/agent"
	"github.com/zeeshanalimughal/ai-agents-guide/tool"
)

// Step is one composable unit of work: text in, text out.
type Step func(ctx context.Context, input string) (string, error)

// AgentStep adapts a full Agent into a Step. The agent keeps its conversation
// across invocations; use a fresh agent or Reset between unrelated sessions.
func AgentStep(a *agent.Agent) Step {
	return func(ctx context.Context, input string) (string, error) {
		res, err := a.Run(ctx, input)
		if err != nil {
			return "", err
		}
		return res.Text, nil
	}
}

// WorkerStep adapts a stateless worker into a Step.
func WorkerStep(w tool.Worker) Step { return Step(w) }
