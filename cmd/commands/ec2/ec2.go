package ec2

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/config"
	"github.com/srbarik25/opsagent/internal/credentials"
	ec2svc "github.com/srbarik25/opsagent/internal/ec2"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ec2",
		Short: "Manage EC2 instances, security groups, key pairs, and AMIs",
		Long:  `List, inspect, and control EC2 resources in your AWS account.`,
		PersistentPreRunE: resolveRegion,
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(StartCommand())
	cmd.AddCommand(StopCommand())
	cmd.AddCommand(RebootCommand())
	cmd.AddCommand(TerminateCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(SGCommand())
	cmd.AddCommand(KeypairCommand())
	cmd.AddCommand(AMICommand())

	return cmd
}

// resolveRegion ensures the --region flag has a value, falling back to the
// configured default when the flag was not explicitly passed.
func resolveRegion(cmd *cobra.Command, args []string) error {
	if cmd.Flag("region").Changed {
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cfg.DefaultRegion != "" {
		return cmd.Flag("region").Value.Set(cfg.DefaultRegion)
	}

	return fmt.Errorf("no region specified: use --region or set a default with 'opsagent config set default_region <region>'")
}

// newService builds the regional EC2 service. Overridable in tests.
var newService = func(cmd *cobra.Command) (*ec2svc.Service, error) {
	return serviceFor(cmd, cmd.Flag("region").Value.String())
}

// serviceFor builds an EC2 service bound to the given region.
var serviceFor = func(cmd *cobra.Command, region string) (*ec2svc.Service, error) {
	profile := cmd.Flag("profile").Value.String()

	mgr := credentials.NewManager(credentials.NewKeyringStore(""))
	cfg, err := mgr.AWSConfig(cmd.Context(), region, profile)
	if err != nil {
		return nil, err
	}
	return ec2svc.NewService(cfg), nil
}

func jsonOutput(cmd *cobra.Command) bool {
	json, _ := cmd.Flags().GetBool("json")
	return json
}
