// Package config loads agent definitions from YAML so demos and applications
// can declare their agents (provider, model, prompt, budgets) outside code.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default budgets applied when a field is omitted.
const (
	DefaultMaxSteps = 15
)

// AgentConfig declares one agent.
type AgentConfig struct {
	Name         string `yaml:"name"`
	Provider     string `yaml:"provider"` // "openai", "anthropic" or "scripted"
	Model        string `yaml:"model,omitempty"`
	SystemPrompt string `yaml:"system_prompt,omitempty"`
	MaxSteps     int    `yaml:"max_steps,omitempty"`
	MaxParallel  int    `yaml:"max_parallel,omitempty"`
	Verbose      bool   `yaml:"verbose,omitempty"`
}

// Config is the top-level configuration document.
type Config struct {
	Agents []AgentConfig `yaml:"agents"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document, applies defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(cfg.Agents))
	for i := range cfg.Agents {
		a := &cfg.Agents[i]
		if a.Name == "" {
			return nil, fmt.Errorf("agent at index %d: name is required", i)
		}
		if seen[a.Name] {
			return nil, fmt.Errorf("duplicate agent name %q", a.Name)
		}
		seen[a.Name] = true

		switch a.Provider {
		case "openai", "anthropic", "scripted":
		case "":
			return nil, fmt.Errorf("agent %s: provider is required", a.Name)
		default:
			return nil, fmt.Errorf("agent %s: unknown provider %q", a.Name, a.Provider)
		}

		if a.MaxSteps < 0 {
			return nil, fmt.Errorf("agent %s: max_steps must not be negative", a.Name)
		}
		if a.MaxSteps == 0 {
			a.MaxSteps = DefaultMaxSteps
		}
	}

	return &cfg, nil
}

// Agent returns the configuration for the named agent.
func (c *Config) Agent(name string) (*AgentConfig, bool) {
	for i := range c.Agents {
		if c.Agents[i].Name == name {
			return &c.Agents[i], true
		}
	}
	return nil, false
}
