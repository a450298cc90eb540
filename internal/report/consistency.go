package report

import "github.com/shopspring/decimal"

// DefaultTolerance is the slack allowed on the balance check: one full
// currency unit, since source records are rounded at the cent.
var DefaultTolerance = decimal.NewFromInt(1)

// Consistency is the verdict of the double-entry check. A non-zero
// discrepancy is a reported condition pointing at upstream data quality,
// never an engine error; the checker surfaces it and repairs nothing.
type Consistency struct {
	IsBalanced  bool
	Discrepancy decimal.Decimal
}

// CheckBalance recomputes Assets - (Liabilities + Equity). A zero
// tolerance selects DefaultTolerance.
func CheckBalance(assets, liabilities, equity, tolerance decimal.Decimal) Consistency {
	if tolerance.IsZero() {
		tolerance = DefaultTolerance
	}
	discrepancy := assets.Sub(liabilities.Add(equity))
	return Consistency{
		IsBalanced:  discrepancy.Abs().Cmp(tolerance) < 0,
		Discrepancy: discrepancy,
	}
}
