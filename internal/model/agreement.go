package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// AgreementStatus controls whether an agreement contributes receivables.
type AgreementStatus string

const (
	AgreementActive    AgreementStatus = "active"
	AgreementCompleted AgreementStatus = "completed"
	AgreementCancelled AgreementStatus = "cancelled"
)

// Agreement is a unit sales agreement, the economic source of a project
// receivable. SellingPrice is list price less all discount components.
type Agreement struct {
	ID          string
	Date        time.Time
	ProjectID   string
	ContactID   string
	UnitIDs     []string
	ListPrice   decimal.Decimal
	Discounts   decimal.Decimal
	PaidAmount  decimal.Decimal
	Status      AgreementStatus
	Description string
}

// SellingPrice is the agreed price after discounts.
func (a Agreement) SellingPrice() decimal.Decimal {
	return a.ListPrice.Sub(a.Discounts)
}

// Contract is a rental or property-management contract tying transactions
// to a property and its owner.
type Contract struct {
	ID         string
	Date       time.Time
	PropertyID string
	ProjectID  string
	ContactID  string
	Rent       decimal.Decimal
	Deposit    decimal.Decimal
	Status     AgreementStatus
}
