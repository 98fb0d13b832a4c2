package ec2

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/devops"
)

func SGCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sg",
		Short: "Manage security groups",
	}

	cmd.AddCommand(sgListCommand())
	cmd.AddCommand(sgShowCommand())
	cmd.AddCommand(sgCreateCommand())
	cmd.AddCommand(sgAllowCommand())
	cmd.AddCommand(sgDeleteCommand())

	return cmd
}

func sgListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List security groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			vpc, _ := cmd.Flags().GetString("vpc")
			groups, err := svc.ListSecurityGroups(cmd.Context(), vpc)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, groups)
				return nil
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No security groups found.")
				return nil
			}
			printSecurityGroups(cmd, groups)
			return nil
		},
	}

	cmd.Flags().String("vpc", "", "Restrict to a VPC ID")
	return cmd
}

func sgShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <group-id>",
		Short: "Show a security group and its rules",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			group, err := svc.GetSecurityGroup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			printJSON(cmd, group)
			return nil
		},
	}
}

func sgCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a security group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			desc, _ := cmd.Flags().GetString("description")
			vpc, _ := cmd.Flags().GetString("vpc")

			group, err := svc.CreateSecurityGroup(cmd.Context(), args[0], desc, vpc)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created security group %s (%s).\n", group.Name, group.ID)
			return nil
		},
	}

	cmd.Flags().String("description", "Managed by opsagent", "Group description")
	cmd.Flags().String("vpc", "", "VPC ID to create the group in")
	return cmd
}

func sgAllowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allow <group-id>",
		Short: "Add an inbound rule to a security group",
		Long: `Add an inbound rule to a security group.

Example:
  opsagent ec2 sg allow sg-0abc123 --protocol tcp --port 443 --cidr 0.0.0.0/0`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			protocol, _ := cmd.Flags().GetString("protocol")
			port, _ := cmd.Flags().GetInt32("port")
			cidr, _ := cmd.Flags().GetString("cidr")

			rule := devops.IPPermission{
				Protocol: protocol,
				FromPort: port,
				ToPort:   port,
				CIDRs:    []string{cidr},
			}
			if err := svc.AuthorizeIngress(cmd.Context(), args[0], rule); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Allowed %s port %d from %s on %s.\n",
				protocol, port, cidr, args[0])
			return nil
		},
	}

	cmd.Flags().String("protocol", "tcp", "IP protocol (tcp, udp, icmp)")
	cmd.Flags().Int32("port", 0, "Port to open (required)")
	cmd.Flags().String("cidr", "0.0.0.0/0", "Source CIDR block")
	cmd.MarkFlagRequired("port")
	return cmd
}

func sgDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <group-id>",
		Short: "Delete a security group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			if err := svc.DeleteSecurityGroup(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Security group %s deleted.\n", args[0])
			return nil
		},
	}
}
