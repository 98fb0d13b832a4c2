package gh

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func BranchesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches <repo>",
		Short: "List branches of a repository",
		Args:  cobra.ExactArgs(1),
		RunE:  runBranchesList,
	}

	cmd.AddCommand(branchesCreateCommand())

	return cmd
}

func runBranchesList(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	branches, err := svc.ListBranches(cmd.Context(), ownerFlag(cmd), args[0])
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		printJSON(cmd, branches)
		return nil
	}

	if len(branches) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No branches found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tSHA\tPROTECTED")
	fmt.Fprintln(w, "----\t---\t---------")
	for _, b := range branches {
		sha := b.SHA
		if len(sha) > 12 {
			sha = sha[:12]
		}
		fmt.Fprintf(w, "%s\t%s\t%t\n", b.Name, sha, b.Protected)
	}
	w.Flush()
	return nil
}

func branchesCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <repo> <name>",
		Short: "Create a branch from a source branch",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			source, _ := cmd.Flags().GetString("from")
			branch, err := svc.CreateBranch(cmd.Context(), ownerFlag(cmd), args[0], args[1], source)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created branch %s at %s.\n", branch.Name, branch.SHA)
			return nil
		},
	}

	cmd.Flags().String("from", "", "Source branch (defaults to the repository default branch)")
	return cmd
}
