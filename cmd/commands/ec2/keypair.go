package ec2

import (
	"fmt"

	"github.com/spf13/cobra"
)

func KeypairCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keypair",
		Short: "Manage EC2 key pairs",
	}

	cmd.AddCommand(keypairListCommand())
	cmd.AddCommand(keypairCreateCommand())
	cmd.AddCommand(keypairDeleteCommand())

	return cmd
}

func keypairListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List key pairs",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			pairs, err := svc.ListKeyPairs(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				printJSON(cmd, pairs)
				return nil
			}
			if len(pairs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No key pairs found.")
				return nil
			}
			printKeyPairs(cmd, pairs)
			return nil
		},
	}
}

func keypairCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Create a key pair and print the private key",
		Long: `Create a new key pair. The private key material is printed exactly once;
AWS never returns it again. Pipe it to a file:

  opsagent ec2 keypair create deploy > deploy.pem && chmod 600 deploy.pem`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			pair, err := svc.CreateKeyPair(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.ErrOrStderr(), "Created key pair %s (fingerprint %s).\n",
				pair.Name, pair.Fingerprint)
			fmt.Fprintln(cmd.OutOrStdout(), pair.Material)
			return nil
		},
	}
}

func keypairDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd)
			if err != nil {
				return err
			}

			if err := svc.DeleteKeyPair(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Key pair %s deleted.\n", args[0])
			return nil
		},
	}
}
