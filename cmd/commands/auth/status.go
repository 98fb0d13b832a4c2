package auth

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/credentials"
)

func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which credentials are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch {
			case os.Getenv("AWS_ACCESS_KEY_ID") != "" && os.Getenv("AWS_SECRET_ACCESS_KEY") != "":
				fmt.Fprintln(out, "AWS:    environment variables set")
			case os.Getenv("AWS_PROFILE") != "":
				fmt.Fprintf(out, "AWS:    profile %q via shared config\n", os.Getenv("AWS_PROFILE"))
			default:
				fmt.Fprintln(out, "AWS:    no explicit credentials (shared config chain will be tried)")
			}

			if os.Getenv("GITHUB_TOKEN") != "" {
				fmt.Fprintln(out, "GitHub: GITHUB_TOKEN environment variable set")
				return nil
			}
			if _, err := defaultStore().GetToken(credentials.GitHubService); err == nil {
				fmt.Fprintln(out, "GitHub: token stored in keychain")
				return nil
			}
			fmt.Fprintln(out, "GitHub: no token (run 'opsagent auth login github')")
			return nil
		},
	}
}
