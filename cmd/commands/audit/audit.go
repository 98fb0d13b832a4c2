package audit

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/srbarik25/opsagent/internal/auditlog"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the local operation audit log",
	}

	cmd.AddCommand(ListCommand())
	cmd.AddCommand(PruneCommand())

	return cmd
}

// openRepo opens the audit repository. Overridable in tests.
var openRepo = func() (auditlog.Repository, error) {
	return auditlog.Open()
}

func ListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			limit, _ := cmd.Flags().GetInt("limit")
			records, err := repo.ListRecent(limit)
			if err != nil {
				return err
			}

			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No recorded operations.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "TIME\tCOMMAND\tOUTCOME\tERROR KIND\tARGS")
			fmt.Fprintln(w, "----\t-------\t-------\t----------\t----")
			for _, rec := range records {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
					rec.Command,
					rec.Outcome,
					rec.ErrorKind,
					strings.Join(rec.Args, " "),
				)
			}
			w.Flush()
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum number of records to show")
	return cmd
}

func PruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete audit records older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			days, _ := cmd.Flags().GetInt("days")
			removed, err := repo.DeleteOlderThan(time.Duration(days) * 24 * time.Hour)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d records older than %d days.\n", removed, days)
			return nil
		},
	}

	cmd.Flags().Int("days", 30, "Retention window in days")
	return cmd
}
