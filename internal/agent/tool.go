// Package agent runs LLM-driven automation over the EC2 and GitHub services.
//
// Tools expose service operations as function declarations; a Runner drives
// the model loop and screens both the user input and the final output
// through the guardrail package.
package agent

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"google.golang.org/genai"
)

// Tool is a single callable capability exposed to the model.
type Tool struct {
	Name        string
	Description string
	Parameters  *genai.Schema

	// Run executes the tool. The returned map is serialized back to the
	// model as the function response.
	Run func(ctx context.Context, args map[string]any) (map[string]any, error)
}

// Declaration returns the genai function declaration for this tool.
func (t *Tool) Declaration() *genai.FunctionDeclaration {
	return &genai.FunctionDeclaration{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// Registry holds tools by name. Safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*Tool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]*Tool)}
}

// Register adds a tool. Registering a duplicate name is an error.
func (r *Registry) Register(t *Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if t == nil || t.Name == "" {
		return fmt.Errorf("tool must have a name")
	}
	if _, exists := r.tools[t.Name]; exists {
		return fmt.Errorf("tool %q already registered", t.Name)
	}
	r.tools[t.Name] = t
	return nil
}

// Get returns the named tool, or false if absent.
func (r *Registry) Get(name string) (*Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// List returns all tools sorted by name.
func (r *Registry) List() []*Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*Tool, 0, len(r.tools))
	for _, t := range r.tools {
		list = append(list, t)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
