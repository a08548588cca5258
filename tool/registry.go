package tool

import (
	"fmt"
	"sort"

	"github.com/zeeshanalimughal/ai-agents-guide/gateway"
)

// Registry maps tool names to implementations for one agent. It is populated
// at agent construction and immutable afterwards, so lookups during a run need
// no locking. Duplicate names are a configuration error detected at Register
// time, not at call time.
type Registry struct {
	tools map[string]Tool
	order []string // registration order, for a stable manifest
}

// NewRegistry constructs a registry holding the given tools. It panics on a
// duplicate name: a registry literal with colliding tools is a programming
// error on par with a duplicate map key.
func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	for _, t := range tools {
		if err := r.Register(t); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a tool, failing if the name is already present.
func (r *Registry) Register(t Tool) error {
	name := t.Name()
	if name == "" {
		return fmt.Errorf("tool name must not be empty")
	}
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("duplicate tool name %q", name)
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

// Resolve looks up a tool by name. A missing name is not an error here; the
// executor converts it into an error payload mirrored back to the model.
func (r *Registry) Resolve(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.tools) }

// Names returns the registered tool names sorted alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definitions returns the schema manifest handed to the gateway verbatim, in
// registration order.
func (r *Registry) Definitions() []gateway.ToolDefinition {
	defs := make([]gateway.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		defs = append(defs, gateway.ToolDefinition{
			Type: "function",
			Function: gateway.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		})
	}
	return defs
}
