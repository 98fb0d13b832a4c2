package ec2

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/devops"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
)

func StartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start <instance-id>",
		Short: "Start a stopped EC2 instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			if err := svc.StartInstance(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting instance %s...\n", id)

			return finish(cmd, svc, id, devops.InstanceStateRunning, "started")
		},
	}

	cmd.Flags().Bool("wait", false, "Wait until the instance is running")
	return cmd
}

func StopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop <instance-id>",
		Short: "Stop a running EC2 instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			force, _ := cmd.Flags().GetBool("force")
			if err := svc.StopInstance(cmd.Context(), id, force); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Stopping instance %s...\n", id)

			return finish(cmd, svc, id, devops.InstanceStateStopped, "stopped")
		},
	}

	cmd.Flags().Bool("force", false, "Stop without waiting for a clean OS shutdown")
	cmd.Flags().Bool("wait", false, "Wait until the instance is stopped")
	return cmd
}

func RebootCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reboot <instance-id>",
		Short: "Reboot an EC2 instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			id := args[0]
			if err := svc.RebootInstance(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Instance %s is rebooting.\n", id)
			return nil
		},
	}
}

// finish optionally polls for the target state before reporting success.
func finish(cmd *cobra.Command, svc *ec2svc.Service, id, target, verb string) error {
	wait, _ := cmd.Flags().GetBool("wait")
	if !wait {
		fmt.Fprintf(cmd.OutOrStdout(), "Instance %s state change requested.\n", id)
		return nil
	}

	inst, err := svc.WaitForState(cmd.Context(), id, target)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Instance %s %s.\n", inst.ID, verb)
	return nil
}
