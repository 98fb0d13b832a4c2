package gh

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func PRsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prs <repo>",
		Short: "List pull requests on a repository",
		Args:  cobra.ExactArgs(1),
		RunE:  runPRsList,
	}

	cmd.Flags().String("state", "open", "PR state: open, closed, or all")
	cmd.AddCommand(prsShowCommand())
	cmd.AddCommand(prsCreateCommand())

	return cmd
}

func runPRsList(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	state, _ := cmd.Flags().GetString("state")
	pulls, err := svc.ListPullRequests(cmd.Context(), ownerFlag(cmd), args[0], state)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		printJSON(cmd, pulls)
		return nil
	}

	if len(pulls) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No pull requests found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATE\tHEAD -> BASE\tTITLE")
	fmt.Fprintln(w, "------\t-----\t------------\t-----")
	for _, pr := range pulls {
		fmt.Fprintf(w, "#%d\t%s\t%s -> %s\t%s\n", pr.Number, pr.State, pr.Head, pr.Base, pr.Title)
	}
	w.Flush()
	return nil
}

func prsShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <repo> <number>",
		Short: "Show a single pull request",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid pull request number %q", args[1])
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			pr, err := svc.GetPullRequest(cmd.Context(), ownerFlag(cmd), args[0], number)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, pr)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%s)\n", pr.Number, pr.Title, pr.State)
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", pr.Head, pr.Base)
			if pr.Body != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", pr.Body)
			}
			return nil
		},
	}
}

func prsCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <repo>",
		Short: "Open a pull request",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("body")
			head, _ := cmd.Flags().GetString("head")
			base, _ := cmd.Flags().GetString("base")

			pr, err := svc.CreatePullRequest(cmd.Context(), ownerFlag(cmd), args[0], title, body, head, base)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created pull request #%d: %s\n", pr.Number, pr.URL)
			return nil
		},
	}

	cmd.Flags().String("title", "", "Pull request title (required)")
	cmd.Flags().String("body", "", "Pull request body")
	cmd.Flags().String("head", "", "Branch with your changes (required)")
	cmd.Flags().String("base", "main", "Branch to merge into")
	cmd.MarkFlagRequired("title")
	cmd.MarkFlagRequired("head")
	return cmd
}
