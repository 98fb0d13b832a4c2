package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	agentcore "github.com/srbarik25/opsagent/internal/agent"
	"github.com/srbarik25/opsagent/internal/config"
	"github.com/srbarik25/opsagent/internal/credentials"
	"github.com/srbarik25/opsagent/internal/devops"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
	ghsvc "github.com/srbarik25/opsagent/internal/gh"
)

const defaultModel = "gemini-2.0-flash"

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Run DevOps tasks through an LLM agent",
	}

	cmd.AddCommand(RunCommand())

	return cmd
}

func RunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <prompt>",
		Short: "Run a single agent task",
		Long: `Run a natural-language DevOps task through the agent. The agent can call
EC2 and GitHub operations as tools; input and output are screened by the
guardrails.

Examples:
  opsagent agent run "list my running instances in us-east-1"
  opsagent agent run "open an issue on octocat/hello about the flaky build"`,
		Args: cobra.MinimumNArgs(1),
		RunE: runAgent,
	}

	cmd.Flags().String("model", "", "Model name (overrides config)")
	cmd.Flags().Bool("trace", false, "Print tool calls and handoffs to stderr")

	return cmd
}

// newRunner builds the runner with its agents and tools. Overridable in
// tests.
var newRunner = func(cmd *cobra.Command) (*agentcore.Runner, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	modelName, _ := cmd.Flags().GetString("model")
	if modelName == "" {
		modelName = cfg.Model
	}
	if modelName == "" {
		modelName = defaultModel
	}

	model, err := agentcore.NewGenAIModel(cmd.Context(), "", modelName)
	if err != nil {
		return nil, err
	}

	mgr := credentials.NewManager(credentials.NewKeyringStore(""))

	region := cmd.Flag("region").Value.String()
	if region == "" {
		region = cfg.DefaultRegion
	}

	owner := cmd.Flag("owner").Value.String()
	if owner == "" {
		owner = cfg.DefaultOwner
	}

	root := &agentcore.Agent{
		Name: "devops",
		Instructions: "You are a DevOps assistant. Route EC2 work to the ec2 agent " +
			"and GitHub work to the github agent. Answer directly when no tool is needed.",
	}

	if awsCfg, err := mgr.AWSConfig(cmd.Context(), region, cmd.Flag("profile").Value.String()); err == nil {
		root.Handoffs = append(root.Handoffs, &agentcore.Agent{
			Name:         "ec2",
			Instructions: "You manage EC2 instances, security groups, key pairs, and AMIs. Use the tools to answer precisely.",
			Tools:        agentcore.EC2Tools(ec2svc.NewService(awsCfg)),
		})
	} else if !errors.Is(err, devops.ErrNoCredentials) {
		return nil, err
	}

	token, err := mgr.GitHubToken()
	if err != nil && !errors.Is(err, devops.ErrNoCredentials) {
		return nil, err
	}
	root.Handoffs = append(root.Handoffs, &agentcore.Agent{
		Name:         "github",
		Instructions: "You manage GitHub repositories, issues, pull requests, branches, and files. Use the tools to answer precisely.",
		Tools:        agentcore.GitHubTools(ghsvc.NewService(token, owner)),
	})

	runner := agentcore.NewRunner(model, root)
	runner.Context = devops.Context{
		AWSRegion:   region,
		GitHubOrg:   owner,
		Environment: cfg.Environment,
	}
	return runner, nil
}

func runAgent(cmd *cobra.Command, args []string) error {
	runner, err := newRunner(cmd)
	if err != nil {
		return err
	}

	if trace, _ := cmd.Flags().GetBool("trace"); trace {
		runner.Trace = cmd.ErrOrStderr()
	}

	prompt := strings.Join(args, " ")
	answer, err := runner.Run(cmd.Context(), prompt)
	if err != nil {
		var ge *agentcore.GuardrailError
		if errors.As(err, &ge) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Blocked by %s guardrail: %s\n", ge.Stage, ge.Verdict.Reasoning)
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), answer)
	return nil
}
