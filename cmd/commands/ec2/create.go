package ec2

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/devops"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
)

func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Launch a new EC2 instance",
		Long: `Launch a new EC2 instance from an AMI.

Examples:
  opsagent ec2 create --image ami-0abc123 --type t3.micro --name web-1
  opsagent ec2 create --image ami-0abc123 --type t3.micro --key deploy --wait`,
		RunE: runCreate,
	}

	cmd.Flags().String("image", "", "AMI ID to launch from (required)")
	cmd.Flags().String("type", "t3.micro", "Instance type")
	cmd.Flags().String("key", "", "Key pair name for SSH access")
	cmd.Flags().String("name", "", "Name tag for the instance")
	cmd.Flags().String("subnet", "", "Subnet ID to launch into")
	cmd.Flags().StringSlice("sg", nil, "Security group IDs (repeatable)")
	cmd.Flags().Bool("wait", false, "Wait until the instance is running")
	cmd.MarkFlagRequired("image")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	svc, err := newService(cmd)
	if err != nil {
		return err
	}

	image, _ := cmd.Flags().GetString("image")
	instType, _ := cmd.Flags().GetString("type")
	key, _ := cmd.Flags().GetString("key")
	name, _ := cmd.Flags().GetString("name")
	subnet, _ := cmd.Flags().GetString("subnet")
	sgs, _ := cmd.Flags().GetStringSlice("sg")

	inst, err := svc.CreateInstance(cmd.Context(), ec2svc.CreateInstanceOpts{
		ImageID:          image,
		Type:             instType,
		KeyName:          key,
		Name:             name,
		SubnetID:         subnet,
		SecurityGroupIDs: sgs,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Launched instance %s...\n", inst.ID)

	if wait, _ := cmd.Flags().GetBool("wait"); wait {
		inst, err = svc.WaitForState(cmd.Context(), inst.ID, devops.InstanceStateRunning)
		if err != nil {
			return err
		}
	}

	if jsonOutput(cmd) {
		printJSON(cmd, inst)
		return nil
	}
	printInstanceDetail(cmd, inst)
	return nil
}
