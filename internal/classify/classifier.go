package classify

import (
	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/resolver"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

// Bucket is the accounting destination of a classified amount.
type Bucket string

const (
	BucketRevenue            Bucket = "revenue"
	BucketExpense            Bucket = "expense"
	BucketRevenueReduction   Bucket = "revenue-reduction"
	BucketEquityContribution Bucket = "equity-contribution"
	BucketEquityWithdrawal   Bucket = "equity-withdrawal"
	BucketLiabilityIncrease  Bucket = "liability-increase"
	BucketLiabilityDecrease  Bucket = "liability-decrease"
	BucketExcluded           Bucket = "excluded"
)

// LiabilityKind names the pool a liability movement belongs to.
type LiabilityKind string

const (
	LiabilityNone            LiabilityKind = ""
	LiabilitySecurityDeposit LiabilityKind = "security-deposit"
	LiabilityOwnerFunds      LiabilityKind = "owner-funds"
	LiabilityLoan            LiabilityKind = "loan"
)

// Effect is one classified amount. Multi-category transactions produce
// one effect per allocation.
type Effect struct {
	Bucket     Bucket
	Liability  LiabilityKind
	CategoryID string
	Amount     decimal.Decimal
}

// Classifier applies the bucket rules to resolved transactions. It holds
// only run-scoped lookups, never state between transactions.
type Classifier struct {
	idx               *snapshot.Index
	roles             *RoleTable
	clearingAccountID string
}

// NewClassifier builds a classifier for one derivation run.
// clearingAccountName names the internal-clearing account whose
// transactions are treated as internal adjustments, not economic events.
func NewClassifier(idx *snapshot.Index, roles *RoleTable, clearingAccountName string) *Classifier {
	c := &Classifier{idx: idx, roles: roles}
	if clearingAccountName != "" {
		if acct, ok := idx.AccountByName(clearingAccountName); ok {
			c.clearingAccountID = acct.ID
		}
	}
	return c
}

// Classify routes each allocation of a resolved transaction into a
// bucket. Rules apply in priority order: the specific liability and
// equity matches always outrank the generic revenue/expense fallback.
func (c *Classifier) Classify(tx resolver.ResolvedTransaction) []Effect {
	// Transfers move cash between accounts with no economic effect.
	if tx.Type == model.TxTransfer {
		return nil
	}

	// Loans bypass category classification entirely.
	if tx.Type == model.TxLoan {
		bucket := BucketLiabilityIncrease
		if tx.Subtype == model.LoanRepay {
			bucket = BucketLiabilityDecrease
		}
		return []Effect{{Bucket: bucket, Liability: LiabilityLoan, Amount: tx.Amount}}
	}

	effects := make([]Effect, 0, len(tx.Allocations))
	for _, alloc := range tx.Allocations {
		effects = append(effects, c.classifyAllocation(tx, alloc))
	}
	return effects
}

func (c *Classifier) classifyAllocation(tx resolver.ResolvedTransaction, alloc resolver.Allocation) Effect {
	eff := Effect{CategoryID: alloc.CategoryID, Amount: alloc.Amount}
	role := c.roles.Role(alloc.CategoryID)

	switch {
	case tx.Type == model.TxIncome && role == model.RoleEquityContribution:
		eff.Bucket = BucketEquityContribution
	case tx.Type == model.TxExpense && role == model.RoleEquityWithdrawal:
		eff.Bucket = BucketEquityWithdrawal
	case tx.Type == model.TxIncome && role == model.RoleSecurityDeposit:
		eff.Bucket = BucketLiabilityIncrease
		eff.Liability = LiabilitySecurityDeposit
	case tx.Type == model.TxIncome && role == model.RoleOwnerFunds:
		eff.Bucket = BucketLiabilityIncrease
		eff.Liability = LiabilityOwnerFunds
	case tx.Type == model.TxExpense && role == model.RoleSecurityRefund:
		eff.Bucket = BucketLiabilityDecrease
		eff.Liability = LiabilitySecurityDeposit
	case tx.Type == model.TxExpense && role == model.RoleOwnerPayout:
		eff.Bucket = BucketLiabilityDecrease
		eff.Liability = LiabilityOwnerFunds
	case tx.Type == model.TxExpense && c.categoryType(alloc.CategoryID) == model.CategoryIncome:
		// A refund entered as an expense against a revenue category
		// reduces revenue rather than adding expense.
		eff.Bucket = BucketRevenueReduction
	default:
		eff.Bucket, eff.Liability = c.classifyGeneric(tx, role)
	}
	return eff
}

// classifyGeneric applies the fallback rules. The internal-clearing
// exclusion happens here, after every specific match has had its chance.
func (c *Classifier) classifyGeneric(tx resolver.ResolvedTransaction, role model.CategoryRole) (Bucket, LiabilityKind) {
	if c.isClearing(tx.Transaction) {
		return BucketExcluded, LiabilityNone
	}

	if tx.Type == model.TxIncome {
		return BucketRevenue, LiabilityNone
	}

	if c.isTenantDeduction(tx, role) {
		return BucketLiabilityDecrease, LiabilitySecurityDeposit
	}
	if c.isOwnerBorne(tx) {
		return BucketLiabilityDecrease, LiabilityOwnerFunds
	}
	return BucketExpense, LiabilityNone
}

func (c *Classifier) categoryType(categoryID string) model.CategoryType {
	if cat, ok := c.idx.Categories[categoryID]; ok {
		return cat.Type
	}
	return ""
}

func (c *Classifier) isClearing(tx model.Transaction) bool {
	if c.clearingAccountID == "" {
		return false
	}
	return tx.AccountID == c.clearingAccountID ||
		tx.FromAccountID == c.clearingAccountID ||
		tx.ToAccountID == c.clearingAccountID
}

// isTenantDeduction reports whether the expense draws down a tenant's
// security deposit. The tenant-contact rule outranks the owner-expense
// heuristic.
func (c *Classifier) isTenantDeduction(tx resolver.ResolvedTransaction, role model.CategoryRole) bool {
	if role == model.RoleTenantDeduction {
		return true
	}
	if contact, ok := c.idx.Contacts[tx.ContactID]; ok && contact.Type == model.ContactTenant {
		return true
	}
	return false
}

// isOwnerBorne reports whether an expense linked to a property outside
// any project is carried on the owner's funds rather than the company.
func (c *Classifier) isOwnerBorne(tx resolver.ResolvedTransaction) bool {
	return tx.PropertyID != "" && tx.ProjectID == ""
}
