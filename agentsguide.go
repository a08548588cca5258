// Package agentsguide provides a small façade over the agent tool-calling
// runtime: conversation state (core), the model gateway boundary (gateway and
// its provider subpackages), schema-described tools (tool), the tool-calling
// loop (agent) and multi-agent combinators (compose). Most applications:
//  1. Construct a gateway (openai, anthropic, or a scripted one for tests)
//  2. Build an agent with agent.New, registering tools
//  3. Call Run, or wire agents into compose pipelines, fan-outs and debates
//
// FromConfig builds a ready-to-run agent from a YAML agent declaration,
// wiring the right provider gateway and logger.
package agentsguide

import (
	"fmt"
	"log/slog"

	sdkanthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/zeeshanalimughal/ai-agents-guide/agent"
	"github.com/zeeshanalimughal/ai-agents-guide/config"
	"github.com/zeeshanalimughal/ai-agents-guide/gateway"
	"github.com/zeeshanalimughal/ai-agents-guide/gateway/anthropic"
	"github.com/zeeshanalimughal/ai-agents-guide/gateway/openai"
	"github.com/zeeshanalimughal/ai-agents-guide/logging"
	"github.com/zeeshanalimughal/ai-agents-guide/tool"
)

// FromConfig constructs an agent from a declarative configuration entry,
// wiring the provider gateway, step budgets and logging. Tools are supplied
// by the caller; configuration declares everything else.
func FromConfig(cfg *config.AgentConfig, tools ...tool.Tool) (*agent.Agent, error) {
	gw, err := gatewayFor(cfg)
	if err != nil {
		return nil, err
	}

	var logger logging.Logger = logging.NoOpLogger{}
	if cfg.Verbose {
		logger = logging.NewTextLogger(nil, slog.LevelDebug)
	}

	optFns := []func(*agent.Options){
		agent.WithMaxSteps(cfg.MaxSteps),
		agent.WithMaxParallel(cfg.MaxParallel),
		agent.WithTools(tools...),
		agent.WithLogger(logger),
	}
	if cfg.SystemPrompt != "" {
		optFns = append(optFns, agent.WithSystemPrompt(cfg.SystemPrompt))
	}

	return agent.New(cfg.Name, gw, optFns...)
}

func gatewayFor(cfg *config.AgentConfig) (gateway.Gateway, error) {
	switch cfg.Provider {
	case "openai":
		return openai.New(func(o *openai.Options) {
			if cfg.Model != "" {
				o.Model = cfg.Model
			}
		}), nil
	case "anthropic":
		return anthropic.New(func(o *anthropic.Options) {
			if cfg.Model != "" {
				o.Model = sdkanthropic.Model(cfg.Model)
			}
		}), nil
	case "scripted":
		return nil, fmt.Errorf("agent %s: scripted gateways must be constructed in code", cfg.Name)
	default:
		return nil, fmt.Errorf("agent %s: unknown provider %q", cfg.Name, cfg.Provider)
	}
}
