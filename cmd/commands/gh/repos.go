package gh

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	ghsvc "github.com/srbarik25/opsagent/internal/gh"
)

func ReposCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repos",
		Short: "List and inspect repositories",
		RunE:  runReposList,
	}

	cmd.AddCommand(reposShowCommand())
	cmd.AddCommand(reposCreateCommand())
	cmd.AddCommand(reposReadmeCommand())

	return cmd
}

func runReposList(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	repos, err := svc.ListRepositories(cmd.Context(), ownerFlag(cmd))
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		printJSON(cmd, repos)
		return nil
	}

	if len(repos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No repositories found.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tPRIVATE\tSTARS\tDESCRIPTION")
	fmt.Fprintln(w, "----\t-------\t-----\t-----------")
	for _, r := range repos {
		fmt.Fprintf(w, "%s\t%t\t%d\t%s\n", r.FullName, r.Private, r.Stars, r.Description)
	}
	w.Flush()
	return nil
}

func reposShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <repo>",
		Short: "Show details of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			repo, err := svc.GetRepository(cmd.Context(), ownerFlag(cmd), args[0])
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, repo)
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "  Name:\t%s\n", repo.FullName)
			if repo.Description != "" {
				fmt.Fprintf(w, "  Description:\t%s\n", repo.Description)
			}
			fmt.Fprintf(w, "  Private:\t%t\n", repo.Private)
			fmt.Fprintf(w, "  Default branch:\t%s\n", repo.DefaultBranch)
			fmt.Fprintf(w, "  Stars:\t%d\n", repo.Stars)
			fmt.Fprintf(w, "  Forks:\t%d\n", repo.Forks)
			if repo.URL != "" {
				fmt.Fprintf(w, "  URL:\t%s\n", repo.URL)
			}
			w.Flush()
			return nil
		},
	}
}

func reposCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a repository for the authenticated user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			desc, _ := cmd.Flags().GetString("description")
			private, _ := cmd.Flags().GetBool("private")

			repo, err := svc.CreateRepository(cmd.Context(), ghsvc.CreateRepositoryOpts{
				Name:        args[0],
				Description: desc,
				Private:     private,
				AutoInit:    true,
			})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created repository %s.\n", repo.FullName)
			return nil
		},
	}

	cmd.Flags().String("description", "", "Repository description")
	cmd.Flags().Bool("private", false, "Create as a private repository")
	return cmd
}

func reposReadmeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "readme <repo>",
		Short: "Print the README of a repository",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			readme, err := svc.GetReadme(cmd.Context(), ownerFlag(cmd), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), readme.Content)
			return nil
		},
	}
}
