package auth

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/credentials"
)

// defaultStore builds the token store. Overridable in tests.
var defaultStore = func() credentials.TokenStore {
	return credentials.NewKeyringStore("")
}

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <service>",
		Short: "Store an API token in the local keychain",
		Long: `Store an API token for a service using the local keychain.

Currently the only supported service is github. AWS credentials come from
the standard environment variables or shared config files instead.

Example:
  opsagent auth login github`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := strings.TrimSpace(args[0])
			if service != credentials.GitHubService {
				return fmt.Errorf("unsupported service %q (only %q tokens are stored here)",
					service, credentials.GitHubService)
			}

			token, err := cmd.Flags().GetString("token")
			if err != nil {
				return err
			}

			token = strings.TrimSpace(token)
			if token == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Enter API token: ")
				bytes, err := term.ReadPassword(int(os.Stdin.Fd()))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				token = strings.TrimSpace(string(bytes))
			}

			if token == "" {
				return fmt.Errorf("token cannot be empty")
			}

			if err := defaultStore().SetToken(service, token); err != nil {
				return fmt.Errorf("store token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Token for %s stored.\n", service)
			return nil
		},
	}

	cmd.Flags().String("token", "", "Token value (prompted interactively when omitted)")
	return cmd
}

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <service>",
		Short: "Remove a stored API token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := strings.TrimSpace(args[0])
			if err := defaultStore().DeleteToken(service); err != nil {
				return fmt.Errorf("delete token: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Token for %s removed.\n", service)
			return nil
		},
	}
}
