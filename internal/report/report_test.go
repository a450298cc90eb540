package report

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/classify"
	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(d int) time.Time { return time.Date(2025, 4, d, 0, 0, 0, 0, time.UTC) }

func newAccumulator(snap *snapshot.Snapshot) *ledger.Accumulator {
	return ledger.New(snap, classify.DefaultKeywords(), "Internal Clearing")
}

func findLine(t *testing.T, s Section, label string) Line {
	t.Helper()
	for _, l := range s.Lines {
		if l.Label == label {
			return l
		}
	}
	t.Fatalf("no line labeled %q in %+v", label, s.Lines)
	return Line{}
}

func hasLine(s Section, label string) bool {
	for _, l := range s.Lines {
		if l.Label == label {
			return true
		}
	}
	return false
}

func TestBalanceSheetEndToEnd(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{
			{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank},
			{ID: "idle", Name: "Dormant Savings", Type: model.AccountTypeBank},
		},
		Categories: []model.Category{
			{ID: "dep", Name: "Security Deposit", Type: model.CategoryIncome},
			{ID: "pm", Name: "Project Management Cost", Type: model.CategoryExpense},
		},
		Projects: []model.Project{{ID: "p1", Name: "Hill Towers"}},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxIncome, Amount: amount("1000"), AccountID: "bank", CategoryID: "dep", ProjectID: "p1"},
			{ID: "t2", Date: day(2), Type: model.TxExpense, Amount: amount("1000"), AccountID: "bank", CategoryID: "pm", ProjectID: "p1"},
		},
	}
	acc := newAccumulator(snap)

	bs := BuildBalanceSheet(acc, ledger.Scope{ProjectID: "p1"}, BalanceSheetOptions{})

	// Bank netted to zero and the dormant account never moved: both
	// suppressed.
	assert.Empty(t, bs.Assets.Lines)
	assert.True(t, bs.Assets.Total.IsZero())

	deposits := findLine(t, bs.Liabilities, "Security Deposits Held")
	assert.True(t, deposits.Amount.Equal(amount("1000")))

	retained := findLine(t, bs.Equity, "Retained Earnings")
	assert.True(t, retained.Amount.Equal(amount("-1000")))

	assert.True(t, bs.IsBalanced, "discrepancy = %s", bs.Discrepancy)
	assert.True(t, bs.Discrepancy.IsZero())

	// Same snapshot, PM side of the scenario: nothing accrues on an
	// empty base while the fee category already paid out 1000.
	pm := BuildPMCost(acc, ledger.Scope{ProjectID: "p1"}, amount("10"))
	assert.True(t, pm.NetBase.IsZero(), "net base = %s", pm.NetBase)
	assert.True(t, pm.AccruedFee.IsZero())
	assert.True(t, pm.Paid.Equal(amount("1000")))
	assert.True(t, pm.Balance.Equal(amount("-1000")))
}

func TestBalanceSheetPoolLinkedAccount(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{
			{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank},
			// Linked by keyword; has no transactions of its own but must
			// still show because the pool is non-zero.
			{ID: "rl", Name: "Rental Liability", Type: model.AccountTypeLiability},
		},
		Categories: []model.Category{
			{ID: "rent", Name: "Rental Income", Type: model.CategoryIncome},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxIncome, Amount: amount("900"), AccountID: "bank", CategoryID: "rent"},
		},
	}
	acc := newAccumulator(snap)

	bs := BuildBalanceSheet(acc, ledger.Scope{}, BalanceSheetOptions{Links: DefaultPoolLinks()})

	linked := findLine(t, bs.Liabilities, "Rental Liability")
	assert.True(t, linked.Amount.Equal(amount("900")), "pool value overrides the ledger balance")
	assert.False(t, hasLine(bs.Liabilities, "Owner Funds Held"), "linked pool must not repeat as a derived line")
	assert.True(t, bs.IsBalanced, "discrepancy = %s", bs.Discrepancy)
}

func TestBalanceSheetDiscrepancyReported(t *testing.T) {
	check := CheckBalance(amount("1000"), amount("300"), amount("200"), decimal.Zero)
	assert.False(t, check.IsBalanced)
	assert.True(t, check.Discrepancy.Equal(amount("500")))

	check = CheckBalance(amount("1000.50"), amount("800"), amount("200"), decimal.Zero)
	assert.True(t, check.IsBalanced, "half a unit is inside the default slack")
	assert.True(t, check.Discrepancy.Equal(amount("0.50")))
}

func TestCategoryReportRollup(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "parent", Name: "Maintenance", Type: model.CategoryExpense},
			{ID: "childA", Name: "Electrical", Type: model.CategoryExpense, ParentID: "parent"},
			{ID: "childB", Name: "Plumbing", Type: model.CategoryExpense, ParentID: "parent"},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxExpense, Amount: amount("100"), AccountID: "bank", CategoryID: "childA"},
			{ID: "t2", Date: day(2), Type: model.TxExpense, Amount: amount("50"), AccountID: "bank", CategoryID: "childB"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildCategoryReport(acc, ledger.Scope{}, model.CategoryExpense, SortByName)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "Maintenance", rep.Rows[0].CategoryName)
	assert.True(t, rep.Rows[0].Amount.Equal(amount("150")), "parent rollup = %s", rep.Rows[0].Amount)
	assert.Equal(t, 0, rep.Rows[0].Level)
	assert.True(t, rep.Rows[0].HasChildren)
	assert.Equal(t, 1, rep.Rows[1].Level)
	assert.True(t, rep.Total.Equal(amount("150")), "report total = %s", rep.Total)
	assert.True(t, rep.Rows[0].Percentage.Equal(amount("100")))
	assert.Empty(t, rep.CycleDetected)
}

func TestCategoryReportSortByValueFlattens(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "parent", Name: "Maintenance", Type: model.CategoryExpense},
			{ID: "childA", Name: "Electrical", Type: model.CategoryExpense, ParentID: "parent"},
			{ID: "solo", Name: "Zoning Fees", Type: model.CategoryExpense},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxExpense, Amount: amount("40"), AccountID: "bank", CategoryID: "childA"},
			{ID: "t2", Date: day(2), Type: model.TxExpense, Amount: amount("300"), AccountID: "bank", CategoryID: "solo"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildCategoryReport(acc, ledger.Scope{}, model.CategoryExpense, SortByValue)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "Zoning Fees", rep.Rows[0].CategoryName)
	for _, row := range rep.Rows {
		assert.Equal(t, 0, row.Level, "value sort flattens indentation")
	}
}

func TestCategoryReportCycleDetected(t *testing.T) {
	snap := &snapshot.Snapshot{
		Categories: []model.Category{
			{ID: "a", Name: "A", Type: model.CategoryExpense, ParentID: "b"},
			{ID: "b", Name: "B", Type: model.CategoryExpense, ParentID: "a"},
			{ID: "ok", Name: "Fine", Type: model.CategoryExpense},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildCategoryReport(acc, ledger.Scope{}, model.CategoryExpense, SortByName)

	assert.ElementsMatch(t, []string{"a", "b"}, rep.CycleDetected)
	require.Len(t, rep.Rows, 1)
	assert.Equal(t, "Fine", rep.Rows[0].CategoryName)
}

func TestCategoryReportMultiCategoryBillSplit(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "catA", Name: "Concrete", Type: model.CategoryExpense},
			{ID: "catB", Name: "Steel", Type: model.CategoryExpense},
		},
		Bills: []model.Bill{
			{ID: "b1", Date: day(1), Amount: amount("100"), Status: model.DocPaid, PaidAmount: amount("100"), CategoryItems: []model.ExpenseCategoryItem{
				{CategoryID: "catA", NetValue: amount("60")},
				{CategoryID: "catB", NetValue: amount("40")},
			}},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(2), Type: model.TxExpense, Amount: amount("100"), AccountID: "bank", BillID: "b1"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildCategoryReport(acc, ledger.Scope{}, model.CategoryExpense, SortByName)

	require.Len(t, rep.Rows, 2)
	concrete := rep.Rows[0]
	steel := rep.Rows[1]
	assert.True(t, concrete.Amount.Equal(amount("60")), "concrete = %s", concrete.Amount)
	assert.True(t, steel.Amount.Equal(amount("40")), "steel = %s", steel.Amount)
	assert.True(t, rep.Total.Equal(amount("100")), "split must sum exactly to the payment")
}

func TestLedgerReportRunningBalanceTieOrder(t *testing.T) {
	snap := &snapshot.Snapshot{
		Contacts: []model.Contact{{ID: "v1", Name: "Acme Builders", Type: model.ContactVendor}},
		Bills: []model.Bill{
			{ID: "b1", Date: day(5), Amount: amount("200"), Status: model.DocIssued, ContactID: "v1"},
		},
		Transactions: []model.Transaction{
			// Same date as the bill: the credit must come first.
			{ID: "t1", Date: day(5), Type: model.TxExpense, Amount: amount("50"), AccountID: "bank", ContactID: "v1"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildLedgerReport(acc, "v1", time.Time{}, time.Time{})

	require.Len(t, rep.Rows, 2)
	assert.True(t, rep.Rows[0].Credit.Equal(amount("200")))
	assert.True(t, rep.Rows[0].Balance.Equal(amount("200")))
	assert.True(t, rep.Rows[1].Debit.Equal(amount("50")))
	assert.True(t, rep.Rows[1].Balance.Equal(amount("150")))
	assert.Equal(t, "Acme Builders", rep.Rows[0].Counterparty)
}

func TestLedgerReportChronology(t *testing.T) {
	snap := &snapshot.Snapshot{
		Contacts: []model.Contact{{ID: "buyer", Name: "J. Santos", Type: model.ContactCustomer}},
		Invoices: []model.Invoice{
			{ID: "i1", Number: "INV-7", Date: day(1), Amount: amount("1000"), Status: model.DocIssued, ContactID: "buyer"},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(10), Type: model.TxIncome, Amount: amount("400"), AccountID: "bank", ContactID: "buyer"},
			{ID: "t2", Date: day(20), Type: model.TxIncome, Amount: amount("600"), AccountID: "bank", ContactID: "buyer"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildLedgerReport(acc, "buyer", time.Time{}, time.Time{})

	require.Len(t, rep.Rows, 3)
	assert.True(t, rep.Rows[2].Balance.IsZero(), "fully paid invoice nets to zero")
	for i := 1; i < len(rep.Rows); i++ {
		assert.False(t, rep.Rows[i].Date.Before(rep.Rows[i-1].Date), "rows must be chronological")
	}
}

func TestBudgetReportBands(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "marketing", Name: "Marketing", Type: model.CategoryExpense},
			{ID: "legal", Name: "Legal", Type: model.CategoryExpense},
			{ID: "site", Name: "Site Works", Type: model.CategoryExpense},
		},
		Budgets: []model.Budget{
			{ID: "bg1", CategoryID: "marketing", Year: 2025, Amount: amount("1000")},
			{ID: "bg2", CategoryID: "legal", Year: 2025, Amount: amount("1000")},
			{ID: "bg3", CategoryID: "site", Year: 2025, Amount: amount("1000")},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxExpense, Amount: amount("500"), AccountID: "bank", CategoryID: "marketing"},
			{ID: "t2", Date: day(2), Type: model.TxExpense, Amount: amount("950"), AccountID: "bank", CategoryID: "legal"},
			{ID: "t3", Date: day(3), Type: model.TxExpense, Amount: amount("1200"), AccountID: "bank", CategoryID: "site"},
		},
	}
	acc := newAccumulator(snap)

	rep := BuildBudgetReport(acc, 2025, "")

	require.Len(t, rep.Rows, 3)
	byName := map[string]BudgetRow{}
	for _, r := range rep.Rows {
		byName[r.CategoryName] = r
	}

	assert.Equal(t, BudgetUnder, byName["Marketing"].Status)
	assert.True(t, byName["Marketing"].PercentUsed.Equal(amount("50")))
	assert.Equal(t, BudgetOnTrack, byName["Legal"].Status)
	assert.Equal(t, BudgetOver, byName["Site Works"].Status)
	assert.True(t, byName["Site Works"].Variance.Equal(amount("-200")))

	april := byName["Marketing"].MonthlySpending[time.April]
	assert.True(t, april.Equal(amount("500")), "april spend = %s", april)
}

func TestPMCostExcludesPassThroughCategories(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "site", Name: "Site Works", Type: model.CategoryExpense},
			{ID: "comm", Name: "Broker Fee", Type: model.CategoryExpense},
			{ID: "pm", Name: "Project Management Cost", Type: model.CategoryExpense},
		},
		Transactions: []model.Transaction{
			{ID: "t1", Date: day(1), Type: model.TxExpense, Amount: amount("10000"), AccountID: "bank", CategoryID: "site"},
			{ID: "t2", Date: day(2), Type: model.TxExpense, Amount: amount("2000"), AccountID: "bank", CategoryID: "comm"},
			{ID: "t3", Date: day(3), Type: model.TxExpense, Amount: amount("300"), AccountID: "bank", CategoryID: "pm"},
		},
	}
	acc := newAccumulator(snap)

	st := BuildPMCost(acc, ledger.Scope{}, amount("10"))

	assert.True(t, st.TotalExpense.Equal(amount("12300")))
	assert.True(t, st.ExcludedTotal.Equal(amount("2300")), "broker fee and the PM fee itself are excluded")
	assert.True(t, st.NetBase.Equal(amount("10000")))
	assert.True(t, st.AccruedFee.Equal(amount("1000")))
	assert.True(t, st.Paid.Equal(amount("300")))
	assert.True(t, st.Balance.Equal(amount("700")))
}
