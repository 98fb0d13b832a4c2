package ec2

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func TerminateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "terminate <instance-id>",
		Short: "Permanently terminate an EC2 instance",
		Long: `Terminate an EC2 instance. Termination cannot be undone; the instance
and its instance-store volumes are destroyed.

A confirmation prompt is shown unless --yes is passed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			yes, _ := cmd.Flags().GetBool("yes")
			if !yes {
				confirmed, err := confirmTerminate(cmd, id)
				if err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.ErrOrStderr(), "Termination cancelled.")
					return nil
				}
			}

			svc, err := newService(cmd)
			if err != nil {
				return err
			}
			if err := svc.TerminateInstance(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Instance %s is terminating.\n", id)
			return nil
		},
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")
	return cmd
}

func confirmTerminate(cmd *cobra.Command, id string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(fmt.Sprintf("Terminate instance %s?", id)).
			Description("This permanently destroys the instance and cannot be undone.").
			Affirmative("Terminate").
			Negative("Cancel").
			Value(&confirmed),
	)).WithAccessible(os.Getenv("ACCESSIBLE") != "")

	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
