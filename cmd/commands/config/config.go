package config

import (
	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Read and write opsagent configuration",
	}

	cmd.AddCommand(GetCommand())
	cmd.AddCommand(SetCommand())

	return cmd
}
