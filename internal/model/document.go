package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentStatus is the lifecycle state shared by invoices and bills.
type DocumentStatus string

const (
	DocDraft     DocumentStatus = "draft"
	DocIssued    DocumentStatus = "issued"
	DocPartial   DocumentStatus = "partial"
	DocPaid      DocumentStatus = "paid"
	DocVoided    DocumentStatus = "voided"
	DocCancelled DocumentStatus = "cancelled"
)

// Invoice is an accrual document for money owed to the company. The unpaid
// portion feeds accounts receivable.
type Invoice struct {
	ID          string
	Number      string
	Date        time.Time
	Amount      decimal.Decimal
	PaidAmount  decimal.Decimal
	Status      DocumentStatus
	ProjectID   string
	CategoryID  string
	ContactID   string
	AgreementID string
	Description string
}

// ExpenseCategoryItem is one line of a multi-category bill. NetValue is
// the line's share of the bill used for proportional allocation.
type ExpenseCategoryItem struct {
	CategoryID string
	Quantity   decimal.Decimal
	Unit       string
	NetValue   decimal.Decimal
}

// Bill is an accrual document for money the company owes. The unpaid
// portion feeds accounts payable, except bills carried on behalf of a
// property owner.
type Bill struct {
	ID            string
	Number        string
	Date          time.Time
	Amount        decimal.Decimal
	PaidAmount    decimal.Decimal
	Status        DocumentStatus
	ProjectID     string
	PropertyID    string
	CategoryID    string
	ContactID     string
	AgreementID   string
	CategoryItems []ExpenseCategoryItem
	Description   string
}

// DueAmount returns the open balance, clamped at zero so an overpaid
// document never produces a negative receivable or payable.
func DueAmount(amount, paid decimal.Decimal) decimal.Decimal {
	due := amount.Sub(paid)
	if due.IsNegative() {
		return decimal.Zero
	}
	return due
}

// Open reports whether the document still counts toward accruals.
func Open(status DocumentStatus) bool {
	return status != DocVoided && status != DocCancelled
}
