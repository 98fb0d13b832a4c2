package ec2

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/devops"
)

// printJSON encodes any value as indented JSON to the command's stdout.
func printJSON(cmd *cobra.Command, v any) {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

// printInstances prints a table of instances.
func printInstances(cmd *cobra.Command, instances []devops.Instance) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATE\tTYPE\tREGION\tPUBLIC IP")
	fmt.Fprintln(w, "--\t----\t-----\t----\t------\t---------")

	for _, inst := range instances {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			inst.ID,
			inst.Name,
			inst.State,
			inst.Type,
			inst.Region,
			inst.PublicIP,
		)
	}

	w.Flush()
}

// printInstanceDetail prints a vertical key-value table of instance fields.
func printInstanceDetail(cmd *cobra.Command, inst *devops.Instance) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "  ID:\t%s\n", inst.ID)
	if inst.Name != "" {
		fmt.Fprintf(w, "  Name:\t%s\n", inst.Name)
	}
	fmt.Fprintf(w, "  State:\t%s\n", inst.State)
	fmt.Fprintf(w, "  Type:\t%s\n", inst.Type)
	fmt.Fprintf(w, "  Region:\t%s\n", inst.Region)

	if inst.ImageID != "" {
		fmt.Fprintf(w, "  Image:\t%s\n", inst.ImageID)
	}
	if inst.KeyName != "" {
		fmt.Fprintf(w, "  Key pair:\t%s\n", inst.KeyName)
	}
	if inst.PublicIP != "" {
		fmt.Fprintf(w, "  Public IP:\t%s\n", inst.PublicIP)
	}
	if inst.PrivateIP != "" {
		fmt.Fprintf(w, "  Private IP:\t%s\n", inst.PrivateIP)
	}
	if inst.VpcID != "" {
		fmt.Fprintf(w, "  VPC:\t%s\n", inst.VpcID)
	}
	if inst.SubnetID != "" {
		fmt.Fprintf(w, "  Subnet:\t%s\n", inst.SubnetID)
	}
	if !inst.LaunchedAt.IsZero() {
		fmt.Fprintf(w, "  Launched:\t%s\n", inst.LaunchedAt.UTC().Format("2006-01-02 15:04:05 UTC"))
	}

	w.Flush()
}

// printSecurityGroups prints a table of security groups.
func printSecurityGroups(cmd *cobra.Command, groups []devops.SecurityGroup) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tVPC\tDESCRIPTION")
	fmt.Fprintln(w, "--\t----\t---\t-----------")

	for _, g := range groups {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, g.Name, g.VpcID, g.Description)
	}

	w.Flush()
}

// printKeyPairs prints a table of key pairs.
func printKeyPairs(cmd *cobra.Command, pairs []devops.KeyPair) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "NAME\tID\tFINGERPRINT")
	fmt.Fprintln(w, "----\t--\t-----------")

	for _, kp := range pairs {
		fmt.Fprintf(w, "%s\t%s\t%s\n", kp.Name, kp.ID, kp.Fingerprint)
	}

	w.Flush()
}

// printImages prints a table of AMIs.
func printImages(cmd *cobra.Command, images []devops.Image) {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATE\tARCH\tCREATED")
	fmt.Fprintln(w, "--\t----\t-----\t----\t-------")

	for _, img := range images {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			img.ID, img.Name, img.State, img.Architecture, img.CreatedAt)
	}

	w.Flush()
}
