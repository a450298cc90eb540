package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// BudgetStatus grades actual spend against the budgeted amount.
type BudgetStatus string

const (
	BudgetUnder   BudgetStatus = "under"
	BudgetOnTrack BudgetStatus = "on-track"
	BudgetOver    BudgetStatus = "over"
)

// BudgetRow is one category's budget-vs-actual line across a year.
type BudgetRow struct {
	CategoryID      string
	CategoryName    string
	Budgeted        decimal.Decimal
	TotalSpent      decimal.Decimal
	Variance        decimal.Decimal
	PercentUsed     decimal.Decimal
	Status          BudgetStatus
	MonthlySpending map[time.Month]decimal.Decimal
}

// BudgetReport is the per-category per-month variance matrix for one
// year.
type BudgetReport struct {
	Year int
	Rows []BudgetRow
}

// BuildBudgetReport compares each configured budget against actual
// category spending in its year. Rows come out sorted by category name.
func BuildBudgetReport(acc *ledger.Accumulator, year int, projectID string) *BudgetReport {
	scope := ledger.Scope{
		Start:     time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:       time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC),
		ProjectID: projectID,
	}.Normalize()
	agg := acc.Accumulate(scope)
	idx := acc.Index()

	report := &BudgetReport{Year: year}
	for _, b := range acc.Snapshot().Budgets {
		if b.Year != year {
			continue
		}
		if scope.ProjectScoped() && b.ProjectID != "" && b.ProjectID != scope.ProjectID {
			continue
		}

		spent := agg.CategoryTotals[b.CategoryID]
		row := BudgetRow{
			CategoryID:      b.CategoryID,
			Budgeted:        b.Amount,
			TotalSpent:      spent,
			Variance:        b.Amount.Sub(spent),
			MonthlySpending: monthlyFor(agg, b.CategoryID),
		}
		if cat, ok := idx.Categories[b.CategoryID]; ok {
			row.CategoryName = cat.Name
		}
		row.PercentUsed, row.Status = gradeBudget(b.Amount, spent)
		report.Rows = append(report.Rows, row)
	}

	sort.Slice(report.Rows, func(i, j int) bool {
		return report.Rows[i].CategoryName < report.Rows[j].CategoryName
	})
	return report
}

// gradeBudget returns percent used and the status band: under below 90%,
// over past 100%, on-track between.
func gradeBudget(budgeted, spent decimal.Decimal) (decimal.Decimal, BudgetStatus) {
	if model.AmountIsZero(budgeted) {
		if spent.GreaterThan(model.Epsilon) {
			return decimal.Zero, BudgetOver
		}
		return decimal.Zero, BudgetUnder
	}

	percent := spent.Mul(decimal.NewFromInt(100)).Div(budgeted).Round(2)
	switch {
	case percent.GreaterThan(decimal.NewFromInt(100)):
		return percent, BudgetOver
	case percent.LessThan(decimal.NewFromInt(90)):
		return percent, BudgetUnder
	default:
		return percent, BudgetOnTrack
	}
}

func monthlyFor(agg *ledger.Aggregates, categoryID string) map[time.Month]decimal.Decimal {
	out := make(map[time.Month]decimal.Decimal, 12)
	for month, amount := range agg.CategoryMonthly[categoryID] {
		out[month] = amount
	}
	return out
}
