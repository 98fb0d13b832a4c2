package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Agent is a named persona with its own instructions and tool set. Handoffs
// name other agents this one may transfer control to.
type Agent struct {
	Name         string
	Instructions string
	Tools        []*Tool
	Handoffs     []*Agent
}

// handoffToolPrefix marks synthetic tools that transfer the conversation to
// another agent.
const handoffToolPrefix = "transfer_to_"

// allTools returns the agent's tools plus one synthetic handoff tool per
// target agent.
func (a *Agent) allTools() []*Tool {
	tools := make([]*Tool, 0, len(a.Tools)+len(a.Handoffs))
	tools = append(tools, a.Tools...)
	for _, target := range a.Handoffs {
		tools = append(tools, handoffTool(target))
	}
	return tools
}

func handoffTool(target *Agent) *Tool {
	return &Tool{
		Name:        handoffToolPrefix + target.Name,
		Description: fmt.Sprintf("Transfer the conversation to the %s agent.", target.Name),
		Parameters: &genai.Schema{
			Type:       genai.TypeObject,
			Properties: map[string]*genai.Schema{},
		},
		Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
			return map[string]any{"transferred_to": target.Name}, nil
		},
	}
}

// findHandoff resolves a handoff tool call to its target agent.
func (a *Agent) findHandoff(toolName string) *Agent {
	for _, target := range a.Handoffs {
		if toolName == handoffToolPrefix+target.Name {
			return target
		}
	}
	return nil
}

// lookupTool returns the agent's own tool with the given name.
func (a *Agent) lookupTool(name string) (*Tool, bool) {
	for _, t := range a.Tools {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}
