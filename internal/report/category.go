package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// CategorySort selects the row ordering of a category report.
type CategorySort string

const (
	// SortByName orders siblings alphabetically and keeps the tree
	// indentation.
	SortByName CategorySort = "name"
	// SortByValue flattens the tree and orders rows by rolled-up amount,
	// largest first.
	SortByValue CategorySort = "value"
)

// CategoryRow is one line of the hierarchical category report. Amount is
// the node's own total plus all descendant totals.
type CategoryRow struct {
	CategoryID   string
	CategoryName string
	Count        int
	Amount       decimal.Decimal
	Percentage   decimal.Decimal
	Level        int
	HasChildren  bool
}

// CategoryReport is the rolled-up view of one transaction type's
// categories.
type CategoryReport struct {
	Type  model.CategoryType
	Rows  []CategoryRow
	Total decimal.Decimal

	// CycleDetected lists category ids whose parent chain loops. The
	// affected categories are left out of the rows rather than walked
	// forever; a non-empty list is a data error for the caller to show.
	CycleDetected []string
}

// BuildCategoryReport rolls category totals up their tree for one
// transaction type. Rental-flagged categories are excluded from
// project-scoped runs.
func BuildCategoryReport(acc *ledger.Accumulator, scope ledger.Scope, ctype model.CategoryType, sortBy CategorySort) *CategoryReport {
	scope = scope.Normalize()
	agg := acc.Accumulate(scope)
	idx := acc.Index()

	included := make(map[string]model.Category)
	for id, cat := range idx.Categories {
		if cat.Type != ctype {
			continue
		}
		if scope.ProjectScoped() && cat.Rental {
			continue
		}
		included[id] = cat
	}

	children := make(map[string][]string)
	var roots []string
	for id, cat := range included {
		if _, hasParent := included[cat.ParentID]; hasParent {
			children[cat.ParentID] = append(children[cat.ParentID], id)
		} else {
			roots = append(roots, id)
		}
	}
	sortByName := func(ids []string) {
		sort.Slice(ids, func(i, j int) bool { return included[ids[i]].Name < included[ids[j]].Name })
	}
	sortByName(roots)
	for _, ids := range children {
		sortByName(ids)
	}

	report := &CategoryReport{Type: ctype}
	visited := make(map[string]bool)

	var walk func(id string, level int) (decimal.Decimal, int)
	walk = func(id string, level int) (decimal.Decimal, int) {
		if visited[id] {
			report.CycleDetected = append(report.CycleDetected, id)
			return decimal.Zero, 0
		}
		visited[id] = true

		total := agg.CategoryTotals[id]
		count := agg.CategoryCounts[id]
		rowIdx := len(report.Rows)
		report.Rows = append(report.Rows, CategoryRow{
			CategoryID:   id,
			CategoryName: included[id].Name,
			Level:        level,
			HasChildren:  len(children[id]) > 0,
		})
		for _, child := range children[id] {
			childTotal, childCount := walk(child, level+1)
			total = total.Add(childTotal)
			count += childCount
		}
		report.Rows[rowIdx].Amount = total
		report.Rows[rowIdx].Count = count
		return total, count
	}

	for _, root := range roots {
		total, _ := walk(root, 0)
		report.Total = report.Total.Add(total)
	}

	// Anything of this type never reached from a root sits on a parent
	// cycle.
	for id := range included {
		if !visited[id] {
			report.CycleDetected = append(report.CycleDetected, id)
		}
	}
	sort.Strings(report.CycleDetected)

	for i := range report.Rows {
		report.Rows[i].Percentage = percentage(report.Rows[i].Amount, report.Total)
	}

	if sortBy == SortByValue {
		for i := range report.Rows {
			report.Rows[i].Level = 0
		}
		sort.SliceStable(report.Rows, func(i, j int) bool {
			return report.Rows[i].Amount.GreaterThan(report.Rows[j].Amount)
		})
	}

	return report
}

func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if model.AmountIsZero(whole) {
		return decimal.Zero
	}
	return part.Mul(decimal.NewFromInt(100)).Div(whole).Round(2)
}
