package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/report"
)

func newPMCostCommand() *cobra.Command {
	var dir string
	var projectID string
	var asOf string

	cmd := &cobra.Command{
		Use:   "pm-cost",
		Short: "Derive the project-management fee accrual statement",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			end, err := parseDateFlag(asOf)
			if err != nil {
				return err
			}

			scope := ledger.Scope{End: end, ProjectID: projectID}.Normalize()
			st := report.BuildPMCost(b.acc, scope, b.cfg.Engine.PMCostPercentage)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Total expense\t%s\n", st.TotalExpense.StringFixed(2))
			fmt.Fprintf(w, "Excluded categories\t%s\n", st.ExcludedTotal.StringFixed(2))
			fmt.Fprintf(w, "Net fee base\t%s\n", st.NetBase.StringFixed(2))
			fmt.Fprintf(w, "Fee rate\t%s%%\n", st.Percentage.String())
			fmt.Fprintf(w, "Accrued fee\t%s\n", st.AccruedFee.StringFixed(2))
			fmt.Fprintf(w, "Paid\t%s\n", st.Paid.StringFixed(2))
			fmt.Fprintf(w, "Balance\t%s\n", st.Balance.StringFixed(2))
			w.Flush()

			b.audit("pm-cost", describeScope(scope), "balance="+st.Balance.StringFixed(2), "")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "books directory")
	cmd.Flags().StringVar(&projectID, "project", ledger.ScopeAll, "project id, or 'all'")
	cmd.Flags().StringVar(&asOf, "as-of", "", "cutoff date (YYYY-MM-DD)")

	return cmd
}
