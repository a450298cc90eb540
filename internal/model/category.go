package model

// CategoryType ties a category to the transaction type it classifies.
type CategoryType string

const (
	CategoryIncome  CategoryType = "income"
	CategoryExpense CategoryType = "expense"
)

// CategoryRole is the explicit accounting role a category can be tagged
// with. An empty role means the classifier falls back to name-keyword
// matching, which is the historical behavior.
type CategoryRole string

const (
	RoleNone               CategoryRole = ""
	RoleEquityContribution CategoryRole = "equity-contribution"
	RoleEquityWithdrawal   CategoryRole = "equity-withdrawal"
	RoleSecurityDeposit    CategoryRole = "security-deposit"
	RoleSecurityRefund     CategoryRole = "security-refund"
	RoleTenantDeduction    CategoryRole = "tenant-deduction"
	RoleOwnerFunds         CategoryRole = "owner-funds"
	RoleOwnerPayout        CategoryRole = "owner-payout"
	RolePMCost             CategoryRole = "pm-cost"
	RoleCommission         CategoryRole = "commission"
	RoleRebate             CategoryRole = "rebate"
	RoleDiscount           CategoryRole = "discount"
)

// Category represents a row in categories.csv. ParentID forms a tree;
// traversal must guard against cycles in the data.
type Category struct {
	ID       string
	Name     string
	Type     CategoryType
	ParentID string // empty = root
	Rental   bool   // excluded from project-scoped statements
	Role     CategoryRole
}
