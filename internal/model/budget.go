package model

import "github.com/shopspring/decimal"

// Budget is a per-category spending budget, optionally scoped to a
// project and a calendar year.
type Budget struct {
	ID         string
	CategoryID string
	ProjectID  string
	Year       int
	Amount     decimal.Decimal
}
