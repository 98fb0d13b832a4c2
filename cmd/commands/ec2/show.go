package ec2

import (
	"github.com/spf13/cobra"
)

func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <instance-id>",
		Short: "Show details of an EC2 instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			inst, err := svc.GetInstance(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, inst)
				return nil
			}
			printInstanceDetail(cmd, inst)
			return nil
		},
	}

	return cmd
}
