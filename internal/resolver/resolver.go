// Package resolver fills in the project/category/building/property fields
// a transaction left blank by walking its document links. Entry forms link
// transactions to bills, invoices, agreements and contracts without
// copying those records' scoping fields; derivation needs them resolved.
package resolver

import (
	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

// Allocation is one category's share of a transaction amount. A
// transaction paying a multi-category bill resolves to several
// allocations; everything else resolves to exactly one.
type Allocation struct {
	CategoryID string
	Amount     decimal.Decimal
}

// ResolvedTransaction is a Transaction with link-derived fields filled in.
// Explicit fields on the source transaction are never overwritten.
type ResolvedTransaction struct {
	model.Transaction

	// Allocations carries the per-category amount split. Single-category
	// transactions get one entry covering the full amount.
	Allocations []Allocation
}

// Resolve enriches a transaction from its linked documents. Sources are
// consulted in order (bill first, then invoice, then agreement, then
// contract) and the first non-empty value wins. A dangling link id is
// ignored; the transaction proceeds with whatever fields it has.
func Resolve(tx model.Transaction, idx *snapshot.Index) ResolvedTransaction {
	out := ResolvedTransaction{Transaction: tx}

	var billItems []model.ExpenseCategoryItem
	if tx.BillID != "" {
		if bill, ok := idx.Bills[tx.BillID]; ok {
			fill(&out.ProjectID, bill.ProjectID)
			fill(&out.CategoryID, bill.CategoryID)
			fill(&out.PropertyID, bill.PropertyID)
			fill(&out.ContactID, bill.ContactID)
			billItems = bill.CategoryItems
		}
	}
	if tx.InvoiceID != "" {
		if inv, ok := idx.Invoices[tx.InvoiceID]; ok {
			fill(&out.ProjectID, inv.ProjectID)
			fill(&out.CategoryID, inv.CategoryID)
			fill(&out.ContactID, inv.ContactID)
		}
	}
	if tx.AgreementID != "" {
		if agr, ok := idx.Agreements[tx.AgreementID]; ok {
			fill(&out.ProjectID, agr.ProjectID)
			fill(&out.ContactID, agr.ContactID)
		}
	}
	if tx.ContractID != "" {
		if c, ok := idx.Contracts[tx.ContractID]; ok {
			fill(&out.ProjectID, c.ProjectID)
			fill(&out.PropertyID, c.PropertyID)
			fill(&out.ContactID, c.ContactID)
		}
	}

	// Derive building/project through the property when still missing.
	if out.PropertyID != "" {
		if prop, ok := idx.Properties[out.PropertyID]; ok {
			fill(&out.ProjectID, prop.ProjectID)
		}
	}
	if out.BuildingID != "" {
		if b, ok := idx.Buildings[out.BuildingID]; ok {
			fill(&out.ProjectID, b.ProjectID)
		}
	}

	out.Allocations = allocate(out, billItems)
	return out
}

// allocate splits the transaction amount across the bill's category items
// in proportion to net value. Without items (or with a zero item total)
// the whole amount goes to the resolved category.
func allocate(tx ResolvedTransaction, items []model.ExpenseCategoryItem) []Allocation {
	if len(items) > 0 {
		total := decimal.Zero
		for _, it := range items {
			total = total.Add(it.NetValue)
		}
		if !model.AmountIsZero(total) {
			allocs := make([]Allocation, 0, len(items))
			remaining := tx.Amount
			for i, it := range items {
				share := tx.Amount.Mul(it.NetValue).Div(total).Round(2)
				if i == len(items)-1 {
					// Last item absorbs rounding so shares sum exactly.
					share = remaining
				}
				remaining = remaining.Sub(share)
				allocs = append(allocs, Allocation{CategoryID: it.CategoryID, Amount: share})
			}
			return allocs
		}
	}
	return []Allocation{{CategoryID: tx.CategoryID, Amount: tx.Amount}}
}

func fill(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}
