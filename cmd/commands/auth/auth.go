package auth

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage stored provider credentials",
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
