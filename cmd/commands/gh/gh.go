package gh

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/config"
	"github.com/srbarik25/opsagent/internal/credentials"
	"github.com/srbarik25/opsagent/internal/devops"
	ghsvc "github.com/srbarik25/opsagent/internal/gh"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gh",
		Short: "Manage GitHub repositories, issues, pull requests, and branches",
	}

	cmd.AddCommand(ReposCommand())
	cmd.AddCommand(IssuesCommand())
	cmd.AddCommand(PRsCommand())
	cmd.AddCommand(BranchesCommand())
	cmd.AddCommand(FilesCommand())

	return cmd
}

// newService builds the GitHub service. Overridable in tests. A missing
// token is not fatal: unauthenticated clients still read public data.
var newService = func(cmd *cobra.Command) (*ghsvc.Service, error) {
	owner := cmd.Flag("owner").Value.String()
	if owner == "" {
		cfg, err := config.Load()
		if err != nil {
			return nil, err
		}
		owner = cfg.DefaultOwner
	}

	mgr := credentials.NewManager(credentials.NewKeyringStore(""))
	token, err := mgr.GitHubToken()
	if err != nil && !errors.Is(err, devops.ErrNoCredentials) {
		return nil, err
	}

	return ghsvc.NewService(token, owner), nil
}

func jsonOutput(cmd *cobra.Command) bool {
	js, _ := cmd.Flags().GetBool("json")
	return js
}

// printJSON encodes any value as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

func ownerFlag(cmd *cobra.Command) string {
	return cmd.Flag("owner").Value.String()
}
