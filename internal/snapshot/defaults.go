package snapshot

import "github.com/propbooks-dev/propbooks/internal/model"

// DefaultAccounts returns the starter chart of accounts for a new books
// directory.
func DefaultAccounts() []model.Account {
	return []model.Account{
		{ID: "1010", Name: "Operating Bank", Type: model.AccountTypeBank, Description: "Primary bank account"},
		{ID: "1020", Name: "Petty Cash", Type: model.AccountTypeCash, Description: "Cash on hand"},
		{ID: "1510", Name: "Internal Clearing", Type: model.AccountTypeAsset, Description: "Internal adjustments, excluded from statements"},
		{ID: "2010", Name: "Security Liability", Type: model.AccountTypeLiability, Description: "Tenant security deposits held"},
		{ID: "2020", Name: "Rental Liability", Type: model.AccountTypeLiability, Description: "Owner rental proceeds held"},
		{ID: "3010", Name: "Owner Equity", Type: model.AccountTypeEquity, Description: "Contributed capital"},
	}
}

// DefaultCategories returns the starter category set, including every
// named category the classifier's keyword rules depend on.
func DefaultCategories() []model.Category {
	return []model.Category{
		{ID: "inc-sales", Name: "Unit Sales", Type: model.CategoryIncome},
		{ID: "inc-rent", Name: "Rental Income", Type: model.CategoryIncome, Rental: true},
		{ID: "inc-deposit", Name: "Security Deposit", Type: model.CategoryIncome},
		{ID: "inc-equity", Name: "Owner Equity", Type: model.CategoryIncome},
		{ID: "exp-construction", Name: "Construction", Type: model.CategoryExpense},
		{ID: "exp-materials", Name: "Materials", Type: model.CategoryExpense, ParentID: "exp-construction"},
		{ID: "exp-labor", Name: "Labor", Type: model.CategoryExpense, ParentID: "exp-construction"},
		{ID: "exp-maintenance", Name: "Maintenance", Type: model.CategoryExpense, Rental: true},
		{ID: "exp-pm", Name: "Project Management Cost", Type: model.CategoryExpense},
		{ID: "exp-broker", Name: "Broker Fee", Type: model.CategoryExpense},
		{ID: "exp-rebate", Name: "Rebate", Type: model.CategoryExpense},
		{ID: "exp-discount", Name: "Discount", Type: model.CategoryExpense},
		{ID: "exp-payout", Name: "Owner Payout", Type: model.CategoryExpense},
		{ID: "exp-deduction", Name: "Tenant Deduction", Type: model.CategoryExpense, Rental: true},
		{ID: "exp-refund", Name: "Security Refund", Type: model.CategoryExpense},
		{ID: "exp-withdrawn", Name: "Owner Withdrawn", Type: model.CategoryExpense},
	}
}
