package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/report"
)

func newBalanceSheetCommand() *cobra.Command {
	var dir string
	var asOf string
	var projectID string

	cmd := &cobra.Command{
		Use:   "balance-sheet",
		Short: "Derive the balance sheet and run the consistency check",
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
			bs := report.BuildBalanceSheet(b.acc, scope, report.BalanceSheetOptions{
				Links:     b.cfg.Engine.PoolLinks,
				Tolerance: b.cfg.Engine.BalanceTolerance,
			})

			printBalanceSheet(bs)
			b.audit("balance-sheet", describeScope(scope), "", bs.Discrepancy.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "books directory")
	cmd.Flags().StringVar(&asOf, "as-of", "", "cutoff date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&projectID, "project", ledger.ScopeAll, "project id, or 'all'")

	return cmd
}

func printBalanceSheet(bs *report.BalanceSheet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	section := func(label string, s report.Section) {
		fmt.Fprintf(w, "%s\t\n", label)
		for _, line := range s.Lines {
			fmt.Fprintf(w, "  %s\t%s\n", line.Label, line.Amount.StringFixed(2))
		}
		fmt.Fprintf(w, "  Total %s\t%s\n", label, s.Total.StringFixed(2))
		fmt.Fprintln(w, "\t")
	}

	section("Assets", bs.Assets)
	section("Liabilities", bs.Liabilities)
	section("Equity", bs.Equity)

	if !bs.MarketInventory.IsZero() {
		fmt.Fprintf(w, "Potential revenue (unsold inventory, memo)\t%s\n", bs.MarketInventory.StringFixed(2))
	}
	if bs.IsBalanced {
		fmt.Fprintf(w, "Balanced\tyes\n")
	} else {
		fmt.Fprintf(w, "Balanced\tNO (discrepancy %s)\n", bs.Discrepancy.StringFixed(2))
	}
}
