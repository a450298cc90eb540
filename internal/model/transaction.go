package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the single-sided record type entered by the forms.
type TransactionType string

const (
	TxIncome   TransactionType = "income"
	TxExpense  TransactionType = "expense"
	TxTransfer TransactionType = "transfer"
	TxLoan     TransactionType = "loan"
)

// LoanSubtype distinguishes the direction of a loan transaction.
type LoanSubtype string

const (
	LoanReceive LoanSubtype = "receive"
	LoanRepay   LoanSubtype = "repay"
)

// Transaction represents a row in transactions.csv. It is read-only to the
// engine: derivation never mutates it. Link ids (invoice, bill, agreement,
// contract) let the resolver fill in project/category fields the entry form
// left blank.
type Transaction struct {
	ID            string
	Date          time.Time
	Type          TransactionType
	Subtype       LoanSubtype // loan transactions only
	Amount        decimal.Decimal
	AccountID     string
	FromAccountID string // transfer source
	ToAccountID   string // transfer destination
	CategoryID    string
	ContactID     string
	ProjectID     string
	PropertyID    string
	BuildingID    string
	InvoiceID     string
	BillID        string
	AgreementID   string
	ContractID    string
	PayslipID     string
	Description   string
}

// InPeriod reports whether the transaction falls inside [start, end].
// A zero start or end leaves that side unbounded.
func (t Transaction) InPeriod(start, end time.Time) bool {
	if !start.IsZero() && t.Date.Before(start) {
		return false
	}
	if !end.IsZero() && t.Date.After(end) {
		return false
	}
	return true
}
