// Package ledger streams every transaction in a snapshot through the
// resolver and classifier, folding signed amounts into running totals.
// One Accumulate call produces everything the statement builders project
// from: account balances, category/project sums, liability pools, equity
// totals, and the accrual figures.
package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/classify"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/resolver"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

// ScopeAll is the caller-facing sentinel for an unscoped project filter.
const ScopeAll = "all"

// Scope is the filter a statement derivation runs under. Zero values
// leave that dimension unbounded.
type Scope struct {
	Start     time.Time
	End       time.Time
	ProjectID string
	ContactID string
}

// Normalize maps the "all" project sentinel to unscoped so the engine
// only ever deals with empty-or-concrete project ids.
func (s Scope) Normalize() Scope {
	if s.ProjectID == ScopeAll {
		s.ProjectID = ""
	}
	return s
}

// ProjectScoped reports whether a concrete project filter is in force.
func (s Scope) ProjectScoped() bool {
	return s.ProjectID != ""
}

// Aggregates holds every running total one accumulation pass produces.
// Engine-owned, recomputed per run, never persisted.
type Aggregates struct {
	// Cash ledger.
	AccountBalances map[string]decimal.Decimal
	AccountTxCounts map[string]int

	// Per-category signed totals and contribution counts. An expense
	// booked against an income category subtracts.
	CategoryTotals map[string]decimal.Decimal
	CategoryCounts map[string]int

	// CategoryMonthly breaks category totals down by calendar month for
	// the budget matrix.
	CategoryMonthly map[string]map[time.Month]decimal.Decimal

	// Classification buckets.
	Revenue            decimal.Decimal
	RevenueReduction   decimal.Decimal
	Expense            decimal.Decimal
	EquityContribution decimal.Decimal
	EquityWithdrawal   decimal.Decimal

	// Liability pools.
	SecurityDepositPool decimal.Decimal
	OwnerFundsPool      decimal.Decimal
	LoanPool            decimal.Decimal

	// Accruals.
	AccountsReceivable decimal.Decimal
	AccountsPayable    decimal.Decimal

	// Memo-only potential revenue from unsold inventory.
	MarketInventory decimal.Decimal

	// ExcludedCount tallies internal-clearing transactions dropped from
	// classification.
	ExcludedCount int
}

// NetRevenue is company revenue after revenue reductions.
func (a *Aggregates) NetRevenue() decimal.Decimal {
	return a.Revenue.Sub(a.RevenueReduction)
}

// RetainedEarnings is the accrual-basis result for the selected scope.
func (a *Aggregates) RetainedEarnings() decimal.Decimal {
	return a.NetRevenue().Sub(a.Expense).Add(a.AccountsReceivable).Sub(a.AccountsPayable)
}

// OwnerContribution is net contributed equity.
func (a *Aggregates) OwnerContribution() decimal.Decimal {
	return a.EquityContribution.Sub(a.EquityWithdrawal)
}

// Accumulator runs the resolve-classify-fold pipeline. It is read-only
// over the snapshot: identical inputs always yield identical aggregates.
type Accumulator struct {
	snap       *snapshot.Snapshot
	idx        *snapshot.Index
	roles      *classify.RoleTable
	classifier *classify.Classifier
}

// NewAccumulator wires an accumulator for one snapshot.
func NewAccumulator(snap *snapshot.Snapshot, idx *snapshot.Index, roles *classify.RoleTable, classifier *classify.Classifier) *Accumulator {
	return &Accumulator{snap: snap, idx: idx, roles: roles, classifier: classifier}
}

// New builds the index, role table and classifier for a snapshot and
// returns a ready accumulator. Most callers want this.
func New(snap *snapshot.Snapshot, kw classify.Keywords, clearingAccountName string) *Accumulator {
	idx := snapshot.NewIndex(snap)
	roles := classify.BuildRoleTable(snap.Categories, kw)
	cls := classify.NewClassifier(idx, roles, clearingAccountName)
	return NewAccumulator(snap, idx, roles, cls)
}

// Index exposes the entity index so statement builders can share it.
func (a *Accumulator) Index() *snapshot.Index { return a.idx }

// Roles exposes the role table built for this run.
func (a *Accumulator) Roles() *classify.RoleTable { return a.roles }

// Snapshot exposes the snapshot under derivation.
func (a *Accumulator) Snapshot() *snapshot.Snapshot { return a.snap }

// Accumulate folds the snapshot into aggregates for one scope. Two
// passes: transactions for cash-basis effects, then documents for
// accruals. Unscopable transactions are dropped from project-scoped
// runs, never reported as errors.
func (a *Accumulator) Accumulate(scope Scope) *Aggregates {
	scope = scope.Normalize()
	agg := &Aggregates{
		AccountBalances: make(map[string]decimal.Decimal),
		AccountTxCounts: make(map[string]int),
		CategoryTotals:  make(map[string]decimal.Decimal),
		CategoryCounts:  make(map[string]int),
		CategoryMonthly: make(map[string]map[time.Month]decimal.Decimal),
	}

	for _, tx := range a.snap.Transactions {
		if !tx.InPeriod(scope.Start, scope.End) {
			continue
		}
		rtx := resolver.Resolve(tx, a.idx)
		if !a.inScope(rtx, scope) {
			continue
		}

		a.applyCash(agg, rtx)
		a.applyEffects(agg, rtx)
	}

	a.accrue(agg, scope)
	a.inventory(agg, scope)
	return agg
}

// inScope applies the project and counterparty filters to a resolved
// transaction. Rental-flagged categories are excluded from
// project-scoped statements.
func (a *Accumulator) inScope(rtx resolver.ResolvedTransaction, scope Scope) bool {
	if scope.ContactID != "" && rtx.ContactID != scope.ContactID {
		return false
	}
	if !scope.ProjectScoped() {
		return true
	}
	if rtx.ProjectID != scope.ProjectID {
		return false
	}
	if cat, ok := a.idx.Categories[rtx.CategoryID]; ok && cat.Rental {
		return false
	}
	return true
}

func (a *Accumulator) applyCash(agg *Aggregates, rtx resolver.ResolvedTransaction) {
	add := func(accountID string, delta decimal.Decimal) {
		if accountID == "" {
			return
		}
		agg.AccountBalances[accountID] = agg.AccountBalances[accountID].Add(delta)
		agg.AccountTxCounts[accountID]++
	}

	switch rtx.Type {
	case model.TxIncome:
		add(rtx.AccountID, rtx.Amount)
	case model.TxExpense:
		add(rtx.AccountID, rtx.Amount.Neg())
	case model.TxTransfer:
		add(rtx.FromAccountID, rtx.Amount.Neg())
		add(rtx.ToAccountID, rtx.Amount)
	case model.TxLoan:
		if rtx.Subtype == model.LoanRepay {
			add(rtx.AccountID, rtx.Amount.Neg())
		} else {
			add(rtx.AccountID, rtx.Amount)
		}
	}
}

func (a *Accumulator) applyEffects(agg *Aggregates, rtx resolver.ResolvedTransaction) {
	for _, eff := range a.classifier.Classify(rtx) {
		switch eff.Bucket {
		case classify.BucketRevenue:
			agg.Revenue = agg.Revenue.Add(eff.Amount)
		case classify.BucketRevenueReduction:
			agg.RevenueReduction = agg.RevenueReduction.Add(eff.Amount)
		case classify.BucketExpense:
			agg.Expense = agg.Expense.Add(eff.Amount)
		case classify.BucketEquityContribution:
			agg.EquityContribution = agg.EquityContribution.Add(eff.Amount)
		case classify.BucketEquityWithdrawal:
			agg.EquityWithdrawal = agg.EquityWithdrawal.Add(eff.Amount)
		case classify.BucketLiabilityIncrease:
			a.applyPool(agg, eff.Liability, eff.Amount)
		case classify.BucketLiabilityDecrease:
			a.applyPool(agg, eff.Liability, eff.Amount.Neg())
		case classify.BucketExcluded:
			agg.ExcludedCount++
			continue
		}

		a.applyCategory(agg, rtx, eff)
	}
}

func (a *Accumulator) applyPool(agg *Aggregates, kind classify.LiabilityKind, delta decimal.Decimal) {
	switch kind {
	case classify.LiabilitySecurityDeposit:
		agg.SecurityDepositPool = agg.SecurityDepositPool.Add(delta)
	case classify.LiabilityOwnerFunds:
		agg.OwnerFundsPool = agg.OwnerFundsPool.Add(delta)
	case classify.LiabilityLoan:
		agg.LoanPool = agg.LoanPool.Add(delta)
	}
}

// applyCategory folds an effect into its category's signed total. A
// transaction whose type disagrees with the category's declared type
// subtracts, so refunds shrink the category they refund.
func (a *Accumulator) applyCategory(agg *Aggregates, rtx resolver.ResolvedTransaction, eff classify.Effect) {
	if eff.CategoryID == "" {
		return
	}
	cat, ok := a.idx.Categories[eff.CategoryID]
	if !ok {
		return
	}

	delta := eff.Amount
	sameSide := (rtx.Type == model.TxIncome && cat.Type == model.CategoryIncome) ||
		(rtx.Type == model.TxExpense && cat.Type == model.CategoryExpense)
	if !sameSide {
		delta = delta.Neg()
	}
	agg.CategoryTotals[eff.CategoryID] = agg.CategoryTotals[eff.CategoryID].Add(delta)
	agg.CategoryCounts[eff.CategoryID]++

	monthly := agg.CategoryMonthly[eff.CategoryID]
	if monthly == nil {
		monthly = make(map[time.Month]decimal.Decimal)
		agg.CategoryMonthly[eff.CategoryID] = monthly
	}
	month := rtx.Date.Month()
	monthly[month] = monthly[month].Add(delta)
}

// accrue runs the document pass: open invoice balances into receivables,
// open bill balances into payables, and agreement balances for
// agreements no invoice has been issued against. Owner-borne bills
// (property link, no project) stay out of company payables.
func (a *Accumulator) accrue(agg *Aggregates, scope Scope) {
	invoiced := make(map[string]bool)
	for _, inv := range a.snap.Invoices {
		if inv.AgreementID != "" {
			invoiced[inv.AgreementID] = true
		}
		if !model.Open(inv.Status) || !inDocScope(inv.Date, inv.ProjectID, scope) {
			continue
		}
		agg.AccountsReceivable = agg.AccountsReceivable.Add(model.DueAmount(inv.Amount, inv.PaidAmount))
	}

	for _, agr := range a.snap.Agreements {
		if agr.Status == model.AgreementCancelled || invoiced[agr.ID] {
			continue
		}
		if !inDocScope(agr.Date, agr.ProjectID, scope) {
			continue
		}
		agg.AccountsReceivable = agg.AccountsReceivable.Add(model.DueAmount(agr.SellingPrice(), agr.PaidAmount))
	}

	for _, bill := range a.snap.Bills {
		if !model.Open(bill.Status) || !inDocScope(bill.Date, bill.ProjectID, scope) {
			continue
		}
		if a.ownerBorneBill(bill) {
			continue
		}
		agg.AccountsPayable = agg.AccountsPayable.Add(model.DueAmount(bill.Amount, bill.PaidAmount))
	}
}

// ownerBorneBill reports whether a bill is carried on a property owner's
// behalf rather than owed by the company.
func (a *Accumulator) ownerBorneBill(bill model.Bill) bool {
	if bill.PropertyID != "" && bill.ProjectID == "" {
		return true
	}
	return a.roles.Role(bill.CategoryID) == model.RoleOwnerPayout
}

// inventory sums list prices of unsold units for the memo-only potential
// revenue line.
func (a *Accumulator) inventory(agg *Aggregates, scope Scope) {
	for _, u := range a.snap.Units {
		if u.Status == model.UnitSold {
			continue
		}
		if scope.ProjectScoped() && u.ProjectID != scope.ProjectID {
			continue
		}
		agg.MarketInventory = agg.MarketInventory.Add(u.ListPrice)
	}
}

func inDocScope(date time.Time, projectID string, scope Scope) bool {
	if !scope.Start.IsZero() && date.Before(scope.Start) {
		return false
	}
	if !scope.End.IsZero() && date.After(scope.End) {
		return false
	}
	if scope.ProjectScoped() && projectID != scope.ProjectID {
		return false
	}
	return true
}
