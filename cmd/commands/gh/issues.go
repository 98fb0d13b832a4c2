package gh

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func IssuesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "issues <repo>",
		Short: "List issues on a repository",
		Args:  cobra.ExactArgs(1),
		RunE:  runIssuesList,
	}

	cmd.Flags().String("state", "open", "Issue state: open, closed, or all")
	cmd.AddCommand(issuesShowCommand())
	cmd.AddCommand(issuesCreateCommand())

	return cmd
}

func runIssuesList(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	state, _ := cmd.Flags().GetString("state")
	issues, err := svc.ListIssues(cmd.Context(), ownerFlag(cmd), args[0], state)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		printJSON(cmd, issues)
		return nil
	}

	if len(issues) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No issues found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NUMBER\tSTATE\tAUTHOR\tTITLE")
	fmt.Fprintln(w, "------\t-----\t------\t-----")
	for _, issue := range issues {
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\n", issue.Number, issue.State, issue.Author, issue.Title)
	}
	w.Flush()
	return nil
}

func issuesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <repo> <number>",
		Short: "Show a single issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid issue number %q", args[1])
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			issue, err := svc.GetIssue(cmd.Context(), ownerFlag(cmd), args[0], number)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, issue)
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "#%d %s (%s)\n", issue.Number, issue.Title, issue.State)
			if issue.Author != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "by %s\n", issue.Author)
			}
			if issue.Body != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", issue.Body)
			}
			return nil
		},
	}
}

func issuesCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <repo>",
		Short: "Open a new issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			title, _ := cmd.Flags().GetString("title")
			body, _ := cmd.Flags().GetString("body")
			labels, _ := cmd.Flags().GetStringSlice("label")

			issue, err := svc.CreateIssue(cmd.Context(), ownerFlag(cmd), args[0], title, body, labels)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created issue #%d: %s\n", issue.Number, issue.URL)
			return nil
		},
	}

	cmd.Flags().String("title", "", "Issue title (required)")
	cmd.Flags().String("body", "", "Issue body")
	cmd.Flags().StringSlice("label", nil, "Labels to apply (repeatable)")
	cmd.MarkFlagRequired("title")
	return cmd
}
