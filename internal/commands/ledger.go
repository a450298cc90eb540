package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/report"
)

func newLedgerCommand() *cobra.Command {
	var dir string
	var contactID string
	var from, to string

	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Derive the running-balance ledger for one counterparty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			start, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag(to)
			if err != nil {
				return err
			}

			rep := report.BuildLedgerReport(b.acc, contactID, start, end)

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Ledger for %s\t\t\t\t\n", rep.Contact)
			fmt.Fprintln(w, "Date\tParticulars\tCredit\tDebit\tBalance")
			for _, row := range rep.Rows {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					row.Date.Format(dateFlagFormat), row.Particulars,
					zeroBlank(row.Credit), zeroBlank(row.Debit), row.Balance.StringFixed(2))
			}
			fmt.Fprintf(w, "\t\t\t\t%s\n", rep.Balance.StringFixed(2))
			w.Flush()

			scope := ledger.Scope{Start: start, End: end, ContactID: contactID}
			b.audit("ledger", describeScope(scope), fmt.Sprintf("rows=%d", len(rep.Rows)), "")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "books directory")
	cmd.Flags().StringVar(&contactID, "contact", "", "contact id (required)")
	_ = cmd.MarkFlagRequired("contact")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")

	return cmd
}
