package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/config"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print a config value, or all values when no key is given",
		Long: fmt.Sprintf(`Print configuration values.

Known keys: %s.`, strings.Join(config.Keys(), ", ")),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if len(args) == 1 {
				value, err := cfg.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)
				return nil
			}

			for _, key := range config.Keys() {
				value, _ := cfg.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
			}
			return nil
		},
	}
}
