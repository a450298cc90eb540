package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/report"
)

func newCategoriesCommand() *cobra.Command {
	var dir string
	var ctype string
	var from, to string
	var projectID string
	var sortBy string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Derive the hierarchical category report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := openBooks(dir)
			if err != nil {
				return err
			}

			var categoryType model.CategoryType
			switch ctype {
			case "income":
				categoryType = model.CategoryIncome
			case "expense":
				categoryType = model.CategoryExpense
			default:
				return fmt.Errorf("invalid --type %q (want income or expense)", ctype)
			}

			sort := report.CategorySort(sortBy)
			if sort != report.SortByName && sort != report.SortByValue {
				return fmt.Errorf("invalid --sort %q (want name or value)", sortBy)
			}

			start, err := parseDateFlag(from)
			if err != nil {
				return err
			}
			end, err := parseDateFlag(to)
			if err != nil {
				return err
			}

			scope := ledger.Scope{Start: start, End: end, ProjectID: projectID}.Normalize()
			rep := report.BuildCategoryReport(b.acc, scope, categoryType, sort)

			printCategoryReport(rep)
			b.audit("categories", describeScope(scope), fmt.Sprintf("type=%s rows=%d", ctype, len(rep.Rows)), "")
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "books directory")
	cmd.Flags().StringVar(&ctype, "type", "expense", "category type: income or expense")
	cmd.Flags().StringVar(&from, "from", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&projectID, "project", ledger.ScopeAll, "project id, or 'all'")
	cmd.Flags().StringVar(&sortBy, "sort", string(report.SortByName), "sort: name or value")

	return cmd
}

func printCategoryReport(rep *report.CategoryReport) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintln(w, "Category\tCount\tAmount\t%")
	for _, row := range rep.Rows {
		indent := strings.Repeat("  ", row.Level)
		fmt.Fprintf(w, "%s%s\t%d\t%s\t%s%%\n",
			indent, row.CategoryName, row.Count, row.Amount.StringFixed(2), row.Percentage.StringFixed(2))
	}
	fmt.Fprintf(w, "Total\t\t%s\t\n", rep.Total.StringFixed(2))

	if len(rep.CycleDetected) > 0 {
		fmt.Fprintf(w, "warning: category parent cycle: %s\n", strings.Join(rep.CycleDetected, ", "))
	}
}
