package gh

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func FilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "files",
		Short: "Read and write repository files",
	}

	cmd.AddCommand(filesGetCommand())
	cmd.AddCommand(filesPutCommand())
	cmd.AddCommand(filesDeleteCommand())

	return cmd
}

func filesGetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <repo> <path>",
		Short: "Print a file from a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			ref, _ := cmd.Flags().GetString("ref")
			file, err := svc.GetFile(cmd.Context(), ownerFlag(cmd), args[0], args[1], ref)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, file)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), file.Content)
			return nil
		},
	}

	cmd.Flags().String("ref", "", "Branch, tag, or commit SHA (defaults to the default branch)")
	return cmd
}

func filesPutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "put <repo> <path> <local-file>",
		Short: "Create or update a file in a repository",
		Long: `Create or update a file in a repository from a local file.

When the remote file already exists, pass --sha with its current blob SHA
(shown by 'opsagent gh files get --json') to update it.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			content, err := os.ReadFile(args[2])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[2], err)
			}

			branch, _ := cmd.Flags().GetString("branch")
			message, _ := cmd.Flags().GetString("message")
			sha, _ := cmd.Flags().GetString("sha")

			if sha == "" {
				file, err := svc.CreateFile(cmd.Context(), ownerFlag(cmd), args[0], args[1], branch, message, content)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created %s (%s).\n", file.Path, file.SHA)
				return nil
			}

			file, err := svc.UpdateFile(cmd.Context(), ownerFlag(cmd), args[0], args[1], branch, message, sha, content)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s).\n", file.Path, file.SHA)
			return nil
		},
	}

	cmd.Flags().String("branch", "", "Target branch (defaults to the default branch)")
	cmd.Flags().String("message", "Update via opsagent", "Commit message")
	cmd.Flags().String("sha", "", "Blob SHA of the existing file when updating")
	return cmd
}

func filesDeleteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <repo> <path>",
		Short: "Delete a file from a repository",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			branch, _ := cmd.Flags().GetString("branch")
			message, _ := cmd.Flags().GetString("message")
			sha, _ := cmd.Flags().GetString("sha")

			if err := svc.DeleteFile(cmd.Context(), ownerFlag(cmd), args[0], args[1], branch, message, sha); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[1])
			return nil
		},
	}

	cmd.Flags().String("branch", "", "Target branch (defaults to the default branch)")
	cmd.Flags().String("message", "Delete via opsagent", "Commit message")
	cmd.Flags().String("sha", "", "Blob SHA of the file (required)")
	cmd.MarkFlagRequired("sha")
	return cmd
}
