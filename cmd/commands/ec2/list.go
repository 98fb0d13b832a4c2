package ec2

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/devops"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
)

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List EC2 instances",
		Long: `List EC2 instances in the current region.

Examples:
  opsagent ec2 list
  opsagent ec2 list --state running
  opsagent ec2 list --all-regions`,
		RunE: runList,
	}

	cmd.Flags().String("state", "", "Filter by instance state (pending, running, stopping, stopped, terminated)")
	cmd.Flags().Bool("all-regions", false, "List instances in every enabled region")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	state, _ := cmd.Flags().GetString("state")
	allRegions, _ := cmd.Flags().GetBool("all-regions")

	instances, err := listInstances(cmd, svc, state, allRegions)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		printJSON(cmd, instances)
		return nil
	}

	if len(instances) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No instances found.")
		return nil
	}
	printInstances(cmd, instances)
	return nil
}

func listInstances(cmd *cobra.Command, svc *ec2svc.Service, state string, allRegions bool) ([]devops.Instance, error) {
	if !allRegions {
		return svc.ListInstances(cmd.Context(), state)
	}

	regions, err := svc.ListRegions(cmd.Context())
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}

	return ec2svc.ListInstancesAcrossRegions(cmd.Context(), names, state,
		func(region string) (*ec2svc.Service, error) {
			return serviceFor(cmd, region)
		})
}
