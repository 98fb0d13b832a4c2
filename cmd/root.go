package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"

	agentcmd "github.com/srbarik25/opsagent/cmd/commands/agent"
	auditcmd "github.com/srbarik25/opsagent/cmd/commands/audit"
	"github.com/srbarik25/opsagent/cmd/commands/auth"
	cfgcmd "github.com/srbarik25/opsagent/cmd/commands/config"
	ec2cmd "github.com/srbarik25/opsagent/cmd/commands/ec2"
	ghcmd "github.com/srbarik25/opsagent/cmd/commands/gh"
	"github.com/srbarik25/opsagent/internal/auditlog"
	"github.com/srbarik25/opsagent/internal/classify"
	"github.com/srbarik25/opsagent/internal/ux"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "opsagent",
		Short: "A CLI and LLM agent for AWS EC2 and GitHub operations",
		Long: `opsagent manages EC2 instances and GitHub repositories from the command
line, and can also drive the same operations through an LLM agent with
guardrails against dangerous commands and credential leaks.

Quick start:
  opsagent auth login github         # Store your GitHub token
  opsagent ec2 list --region us-east-1
  opsagent gh repos --owner octocat
  opsagent agent run "stop the staging web server"`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("region", "", "AWS region (overrides config default)")
	cmd.PersistentFlags().String("profile", "", "AWS shared config profile")
	cmd.PersistentFlags().String("owner", "", "GitHub repository owner (overrides config default)")
	cmd.PersistentFlags().Bool("json", false, "Output JSON instead of tables")

	cmd.AddCommand(agentcmd.NewCommand())
	cmd.AddCommand(auditcmd.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(ec2cmd.NewCommand())
	cmd.AddCommand(ghcmd.NewCommand())

	return cmd
}

// Execute runs the root command, records the invocation in the audit log,
// and exits non-zero on error.
func Execute() {
	root := rootCmd()
	err := root.Execute()
	record(os.Args[1:], err)

	if err != nil {
		ux.PrintError(os.Stderr, err)
		os.Exit(1)
	}
}

// record appends the invocation to the local audit log. Audit failures are
// deliberately swallowed so they never mask the command outcome.
func record(args []string, cmdErr error) {
	if len(args) == 0 {
		return
	}

	repo, err := auditlog.Open()
	if err != nil {
		return
	}
	defer repo.Close()

	rec := &auditlog.OperationRecord{
		Command:  commandPath(args),
		Args:     auditlog.SanitizeArgs(args),
		Provider: providerFor(args[0]),
	}
	if cmdErr != nil {
		rec.Outcome = auditlog.OutcomeError
		var classified *classify.Error
		if errors.As(cmdErr, &classified) {
			rec.ErrorKind = classified.Kind.String()
		}
	}
	_ = repo.Save(rec)
}

// commandPath extracts the subcommand words (up to two) from raw args.
func commandPath(args []string) string {
	var words []string
	for _, a := range args {
		if strings.HasPrefix(a, "-") {
			break
		}
		words = append(words, a)
		if len(words) == 2 {
			break
		}
	}
	return strings.Join(words, " ")
}

func providerFor(group string) string {
	switch group {
	case "ec2":
		return "aws"
	case "gh":
		return "github"
	default:
		return ""
	}
}
