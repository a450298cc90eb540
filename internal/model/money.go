package model

import "github.com/shopspring/decimal"

// Epsilon is the tolerance under which a monetary value counts as zero.
// Record-level rounding means derived figures can drift by a cent; every
// "has balance" or "fully paid" decision uses this same tolerance.
var Epsilon = decimal.RequireFromString("0.01")

// AmountIsZero reports whether v is zero within Epsilon.
func AmountIsZero(v decimal.Decimal) bool {
	return v.Abs().Cmp(Epsilon) <= 0
}
