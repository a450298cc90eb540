package commands

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/report"
)

func newBudgetCommand() *cobra.Command {
	var dir string
	var year int
	var projectID string

	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Derive the budget-vs-actual matrix for one year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}
			if year == 0 {
				year = time.Now().Year()
			}

			rep := report.BuildBudgetReport(b.acc, year, projectID)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "Category\tBudgeted\tSpent\tVariance\tUsed\tStatus")
			for _, row := range rep.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t%s\n",
					row.CategoryName, row.Budgeted.StringFixed(2), row.TotalSpent.StringFixed(2),
					row.Variance.StringFixed(2), row.PercentUsed.StringFixed(2), row.Status)
			}
			w.Flush()

			scope := ledger.Scope{ProjectID: projectID}.Normalize()
			b.audit("budget", describeScope(scope), fmt.Sprintf("year=%d rows=%d", year, len(rep.Rows)), "")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "books directory")
	cmd.Flags().IntVar(&year, "year", 0, "budget year (default: current year)")
	cmd.Flags().StringVar(&projectID, "project", ledger.ScopeAll, "project id, or 'all'")

	return cmd
}

// zeroBlank renders a zero amount as blank so credit/debit columns stay
// readable.
func zeroBlank(v decimal.Decimal) string {
	if v.IsZero() {
		return ""
	}
	return v.StringFixed(2)
}
