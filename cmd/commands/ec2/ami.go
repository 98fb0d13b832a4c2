package ec2

import (
	"fmt"

	"github.com/spf13/cobra"
)

func AMICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ami",
		Short: "Manage AMIs",
	}

	cmd.AddCommand(amiListCommand())
	cmd.AddCommand(amiShowCommand())
	cmd.AddCommand(amiCreateCommand())
	cmd.AddCommand(amiDeregisterCommand())

	return cmd
}

func amiListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List AMIs owned by the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			owners, _ := cmd.Flags().GetStringSlice("owner-id")
			images, err := svc.ListImages(cmd.Context(), owners)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, images)
				return nil
			}
			if len(images) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No images found.")
				return nil
			}
			printImages(cmd, images)
			return nil
		},
	}

	cmd.Flags().StringSlice("owner-id", nil, "Image owners to list (defaults to self)")
	return cmd
}

func amiShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <ami-id>",
		Short: "Show details of an AMI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			image, err := svc.GetImage(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printJSON(cmd, image)
			return nil
		},
	}
}

func amiCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <instance-id>",
		Short: "Create an AMI from an instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			name, _ := cmd.Flags().GetString("name")
			desc, _ := cmd.Flags().GetString("description")
			noReboot, _ := cmd.Flags().GetBool("no-reboot")

			id, err := svc.CreateImage(cmd.Context(), args[0], name, desc, noReboot)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Creating image %s from %s.\n", id, args[0])
			return nil
		},
	}

	cmd.Flags().String("name", "", "Name for the new image (required)")
	cmd.Flags().String("description", "", "Image description")
	cmd.Flags().Bool("no-reboot", false, "Do not reboot the instance before imaging")
	cmd.MarkFlagRequired("name")
	return cmd
}

func amiDeregisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "deregister <ami-id>",
		Short: "Deregister an AMI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			if err := svc.DeregisterImage(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Image %s deregistered.\n", args[0])
			return nil
		},
	}
}
