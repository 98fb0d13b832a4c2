package agent

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"google.golang.org/genai"

	agentcore "github.com/srbarik25/opsagent/internal/agent"
)

type cannedModel struct {
	reply string
}

func (m *cannedModel) Generate(ctx context.Context, instructions string, tools []*genai.Tool, history []*genai.Content) (*genai.Content, error) {
	return genai.NewContentFromText(m.reply, genai.RoleModel), nil
}

func useCannedRunner(t *testing.T, reply string) {
	t.Helper()
	orig := newRunner
	t.Cleanup(func() { newRunner = orig })
	newRunner = func(cmd *cobra.Command) (*agentcore.Runner, error) {
		return agentcore.NewRunner(&cannedModel{reply: reply}, &agentcore.Agent{Name: "devops"}), nil
	}
}

func execAgent(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewCommand()
	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestRunCommand_PrintsAnswer(t *testing.T) {
	useCannedRunner(t, "you have 3 running instances")

	stdout, _, err := execAgent(t, "run", "how many instances are running")
	if err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !strings.Contains(stdout, "you have 3 running instances") {
		t.Errorf("stdout = %q", stdout)
	}
}

func TestRunCommand_DangerousPromptBlocked(t *testing.T) {
	useCannedRunner(t, "should never be reached")

	_, stderr, err := execAgent(t, "run", "run rm -rf / on prod")
	if err == nil {
		t.Fatal("expected guardrail error")
	}
	if !strings.Contains(stderr, "Blocked by input guardrail") {
		t.Errorf("stderr = %q", stderr)
	}
}
