package agent

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"google.golang.org/genai"

	"github.com/srbarik25/opsagent/internal/devops"
	"github.com/srbarik25/opsagent/internal/guardrail"
)

// Guardrail stages.
const (
	StageInput  = "input"
	StageOutput = "output"
)

// GuardrailError aborts a run when the input or the final output is flagged.
type GuardrailError struct {
	Stage   string
	Verdict guardrail.Verdict
}

func (e *GuardrailError) Error() string {
	return fmt.Sprintf("%s guardrail tripped: %s", e.Stage, e.Verdict.Reasoning)
}

// Model generates one turn of agent output. Abstracted so tests can run the
// loop against a scripted fake.
type Model interface {
	Generate(ctx context.Context, instructions string, tools []*genai.Tool, history []*genai.Content) (*genai.Content, error)
}

// Runner drives the guarded model loop for one agent conversation.
type Runner struct {
	model Model
	agent *Agent

	// Context is the operating context (region, org, environment) shared
	// with every agent in the run.
	Context devops.Context

	// MaxTurns bounds the model round trips per Run. Zero means the
	// default of 10.
	MaxTurns int

	// Trace, when non-nil, receives a line per tool call and handoff.
	Trace io.Writer
}

// NewRunner creates a Runner for the given starting agent.
func NewRunner(model Model, agent *Agent) *Runner {
	return &Runner{model: model, agent: agent}
}

// Run screens the input, loops the model until it produces a final text
// answer, executing any requested tool calls along the way, then screens the
// answer before returning it.
func (r *Runner) Run(ctx context.Context, input string) (string, error) {
	if v := guardrail.CheckDangerousInput(input); v.Flagged {
		return "", &GuardrailError{Stage: StageInput, Verdict: v}
	}

	maxTurns := r.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 10
	}

	current := r.agent
	history := []*genai.Content{genai.NewContentFromText(input, genai.RoleUser)}

	for turn := 0; turn < maxTurns; turn++ {
		content, err := r.model.Generate(ctx, r.instructionsFor(current), declarations(current.allTools()), history)
		if err != nil {
			return "", err
		}
		history = append(history, content)

		calls := functionCalls(content)
		if len(calls) == 0 {
			text := textOf(content)
			if v := guardrail.CheckSensitiveOutput(text); v.Flagged {
				return "", &GuardrailError{Stage: StageOutput, Verdict: v}
			}
			return text, nil
		}

		var parts []*genai.Part
		for _, call := range calls {
			parts = append(parts, r.execute(ctx, &current, call))
		}
		history = append(history, genai.NewContentFromParts(parts, genai.RoleUser))
	}

	return "", fmt.Errorf("no final answer after %d turns", maxTurns)
}

// execute runs one function call against the current agent, switching
// current on handoff.
func (r *Runner) execute(ctx context.Context, current **Agent, call *genai.FunctionCall) *genai.Part {
	agent := *current

	if target := agent.findHandoff(call.Name); target != nil {
		r.tracef("handoff: %s -> %s", agent.Name, target.Name)
		*current = target
		return genai.NewPartFromFunctionResponse(call.Name, map[string]any{
			"transferred_to": target.Name,
		})
	}

	tool, ok := agent.lookupTool(call.Name)
	if !ok {
		return genai.NewPartFromFunctionResponse(call.Name, map[string]any{
			"error": fmt.Sprintf("unknown tool %q", call.Name),
		})
	}

	r.tracef("tool: %s(%v)", call.Name, call.Args)
	result, err := tool.Run(ctx, call.Args)
	if err != nil {
		// Tool failures go back to the model as data so it can adjust
		// or report, matching how service errors carry suggestions.
		return genai.NewPartFromFunctionResponse(call.Name, map[string]any{
			"error": err.Error(),
		})
	}
	if result == nil {
		result = map[string]any{}
	}
	return genai.NewPartFromFunctionResponse(call.Name, result)
}

// instructionsFor appends the shared operating context to the agent's own
// instructions.
func (r *Runner) instructionsFor(a *Agent) string {
	var details []string
	if r.Context.AWSRegion != "" {
		details = append(details, "AWS region: "+r.Context.AWSRegion)
	}
	if r.Context.GitHubOrg != "" {
		details = append(details, "GitHub owner: "+r.Context.GitHubOrg)
	}
	if r.Context.Environment != "" {
		details = append(details, "environment: "+r.Context.Environment)
	}
	if len(details) == 0 {
		return a.Instructions
	}
	return a.Instructions + "\n\nOperating context: " + strings.Join(details, ", ") + "."
}

func (r *Runner) tracef(format string, args ...any) {
	if r.Trace != nil {
		fmt.Fprintf(r.Trace, format+"\n", args...)
	}
}

func declarations(tools []*Tool) []*genai.Tool {
	if len(tools) == 0 {
		return nil
	}
	decls := make([]*genai.FunctionDeclaration, 0, len(tools))
	for _, t := range tools {
		decls = append(decls, t.Declaration())
	}
	return []*genai.Tool{{FunctionDeclarations: decls}}
}

func functionCalls(content *genai.Content) []*genai.FunctionCall {
	var calls []*genai.FunctionCall
	for _, part := range content.Parts {
		if part.FunctionCall != nil {
			calls = append(calls, part.FunctionCall)
		}
	}
	return calls
}

func textOf(content *genai.Content) string {
	var text string
	for _, part := range content.Parts {
		text += part.Text
	}
	return text
}

// GenAIModel adapts the Gemini API to the Model interface.
type GenAIModel struct {
	client *genai.Client
	model  string
}

// NewGenAIModel creates a Gemini-backed model. The API key comes from the
// environment (GEMINI_API_KEY) when apiKey is empty.
func NewGenAIModel(ctx context.Context, apiKey, model string) (*GenAIModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}
	return &GenAIModel{client: client, model: model}, nil
}

// Generate runs one model turn.
func (m *GenAIModel) Generate(ctx context.Context, instructions string, tools []*genai.Tool, history []*genai.Content) (*genai.Content, error) {
	cfg := &genai.GenerateContentConfig{Tools: tools}
	if instructions != "" {
		cfg.SystemInstruction = genai.NewContentFromText(instructions, genai.RoleUser)
	}

	resp, err := m.client.Models.GenerateContent(ctx, m.model, history, cfg)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, errors.New("model returned no candidates")
	}
	return resp.Candidates[0].Content, nil
}
