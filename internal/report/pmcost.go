package report

import (
	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// PMCostStatement is the percentage-of-base accrual for project
// management fees: what the manager has earned against what has been
// paid out.
type PMCostStatement struct {
	ProjectID string

	// TotalExpense is everything spent against expense categories in
	// scope; NetBase strips the excluded categories back out.
	TotalExpense  decimal.Decimal
	ExcludedTotal decimal.Decimal
	NetBase       decimal.Decimal

	Percentage decimal.Decimal
	AccruedFee decimal.Decimal
	Paid       decimal.Decimal
	Balance    decimal.Decimal
}

// pmExcludedRoles are stripped from the fee base so it reflects only
// real project cost: commissions, rebates, discounts, payouts, and the
// management fee itself.
var pmExcludedRoles = map[model.CategoryRole]bool{
	model.RoleCommission:  true,
	model.RoleRebate:      true,
	model.RoleDiscount:    true,
	model.RoleOwnerPayout: true,
	model.RolePMCost:      true,
}

// BuildPMCost derives the accrued management fee for a scope.
// percentage is expressed as a percent (10 means 10%).
func BuildPMCost(acc *ledger.Accumulator, scope ledger.Scope, percentage decimal.Decimal) *PMCostStatement {
	scope = scope.Normalize()
	agg := acc.Accumulate(scope)
	idx := acc.Index()
	roles := acc.Roles()

	st := &PMCostStatement{ProjectID: scope.ProjectID, Percentage: percentage}

	for id, total := range agg.CategoryTotals {
		cat, ok := idx.Categories[id]
		if !ok || cat.Type != model.CategoryExpense {
			continue
		}
		st.TotalExpense = st.TotalExpense.Add(total)
		role := roles.Role(id)
		if pmExcludedRoles[role] {
			st.ExcludedTotal = st.ExcludedTotal.Add(total)
		}
		if role == model.RolePMCost {
			st.Paid = st.Paid.Add(total)
		}
	}

	st.NetBase = st.TotalExpense.Sub(st.ExcludedTotal)
	st.AccruedFee = st.NetBase.Mul(percentage).Div(decimal.NewFromInt(100)).Round(2)
	st.Balance = st.AccruedFee.Sub(st.Paid)
	return st
}
