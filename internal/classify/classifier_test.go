package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/resolver"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

func testSnapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Accounts: []model.Account{
			{ID: "acct-bank", Name: "Operating Bank", Type: model.AccountTypeBank},
			{ID: "acct-clear", Name: "Internal Clearing", Type: model.AccountTypeAsset},
		},
		Categories: []model.Category{
			{ID: "cat-rent", Name: "Rental Income", Type: model.CategoryIncome},
			{ID: "cat-dep", Name: "Security Deposit", Type: model.CategoryIncome},
			{ID: "cat-equity", Name: "Owner Equity", Type: model.CategoryIncome},
			{ID: "cat-draw", Name: "Owner Withdrawn", Type: model.CategoryExpense},
			{ID: "cat-payout", Name: "Owner Payout", Type: model.CategoryExpense},
			{ID: "cat-refund", Name: "Security Refund", Type: model.CategoryExpense},
			{ID: "cat-sales", Name: "Unit Sales", Type: model.CategoryIncome},
			{ID: "cat-repairs", Name: "Repairs", Type: model.CategoryExpense},
			{ID: "cat-tagged", Name: "Member Draw", Type: model.CategoryExpense, Role: model.RoleEquityWithdrawal},
		},
		Contacts: []model.Contact{
			{ID: "tenant-1", Name: "A Tenant", Type: model.ContactTenant},
			{ID: "vendor-1", Name: "A Vendor", Type: model.ContactVendor},
		},
		Properties: []model.Property{
			{ID: "prop-1", OwnerID: "owner-1"},
		},
	}
}

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	snap := testSnapshot()
	idx := snapshot.NewIndex(snap)
	roles := BuildRoleTable(snap.Categories, DefaultKeywords())
	return NewClassifier(idx, roles, "Internal Clearing")
}

func resolved(tx model.Transaction) resolver.ResolvedTransaction {
	return resolver.ResolvedTransaction{
		Transaction: tx,
		Allocations: []resolver.Allocation{{CategoryID: tx.CategoryID, Amount: tx.Amount}},
	}
}

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestClassifyBuckets(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		name      string
		tx        model.Transaction
		bucket    Bucket
		liability LiabilityKind
	}{
		{
			name:   "plain income is revenue",
			tx:     model.Transaction{Type: model.TxIncome, Amount: amount("100"), CategoryID: "cat-sales", AccountID: "acct-bank"},
			bucket: BucketRevenue,
		},
		{
			name:   "plain expense is expense",
			tx:     model.Transaction{Type: model.TxExpense, Amount: amount("100"), CategoryID: "cat-repairs", AccountID: "acct-bank", ContactID: "vendor-1"},
			bucket: BucketExpense,
		},
		{
			name:      "security deposit income is a liability increase",
			tx:        model.Transaction{Type: model.TxIncome, Amount: amount("500"), CategoryID: "cat-dep", AccountID: "acct-bank"},
			bucket:    BucketLiabilityIncrease,
			liability: LiabilitySecurityDeposit,
		},
		{
			name:      "rental income is owner funds held, not revenue",
			tx:        model.Transaction{Type: model.TxIncome, Amount: amount("900"), CategoryID: "cat-rent", AccountID: "acct-bank"},
			bucket:    BucketLiabilityIncrease,
			liability: LiabilityOwnerFunds,
		},
		{
			name:      "owner payout draws down owner funds",
			tx:        model.Transaction{Type: model.TxExpense, Amount: amount("800"), CategoryID: "cat-payout", AccountID: "acct-bank"},
			bucket:    BucketLiabilityDecrease,
			liability: LiabilityOwnerFunds,
		},
		{
			name:      "security refund draws down the deposit pool",
			tx:        model.Transaction{Type: model.TxExpense, Amount: amount("500"), CategoryID: "cat-refund", AccountID: "acct-bank"},
			bucket:    BucketLiabilityDecrease,
			liability: LiabilitySecurityDeposit,
		},
		{
			name:   "equity named income is a contribution",
			tx:     model.Transaction{Type: model.TxIncome, Amount: amount("10000"), CategoryID: "cat-equity", AccountID: "acct-bank"},
			bucket: BucketEquityContribution,
		},
		{
			name:   "withdrawal named expense reduces equity",
			tx:     model.Transaction{Type: model.TxExpense, Amount: amount("2000"), CategoryID: "cat-draw", AccountID: "acct-bank"},
			bucket: BucketEquityWithdrawal,
		},
		{
			name:   "explicit role tag wins without keyword match",
			tx:     model.Transaction{Type: model.TxExpense, Amount: amount("300"), CategoryID: "cat-tagged", AccountID: "acct-bank"},
			bucket: BucketEquityWithdrawal,
		},
		{
			name:   "expense against a revenue category reduces revenue",
			tx:     model.Transaction{Type: model.TxExpense, Amount: amount("150"), CategoryID: "cat-sales", AccountID: "acct-bank", ContactID: "vendor-1"},
			bucket: BucketRevenueReduction,
		},
		{
			name:   "clearing account transactions are excluded",
			tx:     model.Transaction{Type: model.TxExpense, Amount: amount("70"), CategoryID: "cat-repairs", AccountID: "acct-clear", ContactID: "vendor-1"},
			bucket: BucketExcluded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			effects := c.Classify(resolved(tt.tx))
			require.Len(t, effects, 1)
			assert.Equal(t, tt.bucket, effects[0].Bucket)
			assert.Equal(t, tt.liability, effects[0].Liability)
		})
	}
}

func TestClassifyLoanBypassesCategories(t *testing.T) {
	c := newTestClassifier(t)

	receive := resolved(model.Transaction{Type: model.TxLoan, Subtype: model.LoanReceive, Amount: amount("5000"), AccountID: "acct-bank"})
	effects := c.Classify(receive)
	require.Len(t, effects, 1)
	assert.Equal(t, BucketLiabilityIncrease, effects[0].Bucket)
	assert.Equal(t, LiabilityLoan, effects[0].Liability)

	repay := resolved(model.Transaction{Type: model.TxLoan, Subtype: model.LoanRepay, Amount: amount("1000"), AccountID: "acct-bank"})
	effects = c.Classify(repay)
	require.Len(t, effects, 1)
	assert.Equal(t, BucketLiabilityDecrease, effects[0].Bucket)
	assert.Equal(t, LiabilityLoan, effects[0].Liability)
}

func TestClassifyTransferHasNoEffect(t *testing.T) {
	c := newTestClassifier(t)
	tx := resolved(model.Transaction{Type: model.TxTransfer, Amount: amount("100"), FromAccountID: "acct-bank", ToAccountID: "acct-clear"})
	assert.Empty(t, c.Classify(tx))
}

// A tenant-linked expense on a project-less property must hit the
// security-deposit pool, not owner funds: the tenant-deduction rule
// outranks the owner-borne heuristic.
func TestClassifyTenantDeductionOutranksOwnerExpense(t *testing.T) {
	c := newTestClassifier(t)

	tx := resolver.ResolvedTransaction{
		Transaction: model.Transaction{
			Type:       model.TxExpense,
			Amount:     amount("250"),
			CategoryID: "cat-repairs",
			ContactID:  "tenant-1",
			PropertyID: "prop-1",
			AccountID:  "acct-bank",
		},
		Allocations: []resolver.Allocation{{CategoryID: "cat-repairs", Amount: amount("250")}},
	}

	effects := c.Classify(tx)
	require.Len(t, effects, 1)
	assert.Equal(t, BucketLiabilityDecrease, effects[0].Bucket)
	assert.Equal(t, LiabilitySecurityDeposit, effects[0].Liability)
}

func TestClassifyOwnerBorneExpense(t *testing.T) {
	c := newTestClassifier(t)

	tx := resolver.ResolvedTransaction{
		Transaction: model.Transaction{
			Type:       model.TxExpense,
			Amount:     amount("120"),
			CategoryID: "cat-repairs",
			ContactID:  "vendor-1",
			PropertyID: "prop-1",
			AccountID:  "acct-bank",
		},
		Allocations: []resolver.Allocation{{CategoryID: "cat-repairs", Amount: amount("120")}},
	}

	effects := c.Classify(tx)
	require.Len(t, effects, 1)
	assert.Equal(t, BucketLiabilityDecrease, effects[0].Bucket)
	assert.Equal(t, LiabilityOwnerFunds, effects[0].Liability)
}

// Without a Security Deposit category in the snapshot, deposit income has
// nothing to match and falls through to plain revenue.
func TestClassifyMissingNamedCategoryDegrades(t *testing.T) {
	snap := &snapshot.Snapshot{
		Accounts: []model.Account{{ID: "acct-bank", Name: "Operating Bank", Type: model.AccountTypeBank}},
		Categories: []model.Category{
			{ID: "cat-misc", Name: "Miscellaneous Income", Type: model.CategoryIncome},
		},
	}
	idx := snapshot.NewIndex(snap)
	roles := BuildRoleTable(snap.Categories, DefaultKeywords())
	c := NewClassifier(idx, roles, "Internal Clearing")

	tx := resolved(model.Transaction{Type: model.TxIncome, Amount: amount("500"), CategoryID: "cat-misc", AccountID: "acct-bank"})
	effects := c.Classify(tx)
	require.Len(t, effects, 1)
	assert.Equal(t, BucketRevenue, effects[0].Bucket)
}

func TestRoleTableLookups(t *testing.T) {
	snap := testSnapshot()
	roles := BuildRoleTable(snap.Categories, DefaultKeywords())

	assert.Equal(t, model.RoleSecurityDeposit, roles.Role("cat-dep"))
	assert.Equal(t, model.RoleNone, roles.Role("cat-repairs"))

	id, ok := roles.CategoryFor(model.RoleOwnerPayout)
	assert.True(t, ok)
	assert.Equal(t, "cat-payout", id)

	_, ok = roles.CategoryFor(model.RolePMCost)
	assert.False(t, ok, "no PM cost category in this snapshot")
}
