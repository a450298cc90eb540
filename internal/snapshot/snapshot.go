// Package snapshot loads a read-only copy of the books and indexes it for
// derivation. The engine never writes through a Snapshot; every statement
// run re-derives its aggregates from one.
package snapshot

import (
	"github.com/propbooks-dev/propbooks/internal/model"
)

// Snapshot is the full set of entity collections a derivation runs over.
type Snapshot struct {
	Accounts     []model.Account
	Categories   []model.Category
	Transactions []model.Transaction
	Projects     []model.Project
	Properties   []model.Property
	Buildings    []model.Building
	Contacts     []model.Contact
	Invoices     []model.Invoice
	Bills        []model.Bill
	Agreements   []model.Agreement
	Contracts    []model.Contract
	Units        []model.Unit
	Budgets      []model.Budget
}

// Index provides by-id lookup over a Snapshot. Pure indexing, built once
// per derivation run.
type Index struct {
	Accounts   map[string]model.Account
	Categories map[string]model.Category
	Projects   map[string]model.Project
	Properties map[string]model.Property
	Buildings  map[string]model.Building
	Contacts   map[string]model.Contact
	Invoices   map[string]model.Invoice
	Bills      map[string]model.Bill
	Agreements map[string]model.Agreement
	Contracts  map[string]model.Contract
	Units      map[string]model.Unit

	// CategoryChildren maps a category id to its direct children ids.
	CategoryChildren map[string][]string
}

// NewIndex builds lookup maps over the snapshot's collections.
func NewIndex(s *Snapshot) *Index {
	idx := &Index{
		Accounts:         make(map[string]model.Account, len(s.Accounts)),
		Categories:       make(map[string]model.Category, len(s.Categories)),
		Projects:         make(map[string]model.Project, len(s.Projects)),
		Properties:       make(map[string]model.Property, len(s.Properties)),
		Buildings:        make(map[string]model.Building, len(s.Buildings)),
		Contacts:         make(map[string]model.Contact, len(s.Contacts)),
		Invoices:         make(map[string]model.Invoice, len(s.Invoices)),
		Bills:            make(map[string]model.Bill, len(s.Bills)),
		Agreements:       make(map[string]model.Agreement, len(s.Agreements)),
		Contracts:        make(map[string]model.Contract, len(s.Contracts)),
		Units:            make(map[string]model.Unit, len(s.Units)),
		CategoryChildren: make(map[string][]string),
	}
	for _, a := range s.Accounts {
		idx.Accounts[a.ID] = a
	}
	for _, c := range s.Categories {
		idx.Categories[c.ID] = c
		if c.ParentID != "" {
			idx.CategoryChildren[c.ParentID] = append(idx.CategoryChildren[c.ParentID], c.ID)
		}
	}
	for _, p := range s.Projects {
		idx.Projects[p.ID] = p
	}
	for _, p := range s.Properties {
		idx.Properties[p.ID] = p
	}
	for _, b := range s.Buildings {
		idx.Buildings[b.ID] = b
	}
	for _, c := range s.Contacts {
		idx.Contacts[c.ID] = c
	}
	for _, inv := range s.Invoices {
		idx.Invoices[inv.ID] = inv
	}
	for _, b := range s.Bills {
		idx.Bills[b.ID] = b
	}
	for _, a := range s.Agreements {
		idx.Agreements[a.ID] = a
	}
	for _, c := range s.Contracts {
		idx.Contracts[c.ID] = c
	}
	for _, u := range s.Units {
		idx.Units[u.ID] = u
	}
	return idx
}

// AccountByName returns the first account whose name matches exactly.
func (idx *Index) AccountByName(name string) (model.Account, bool) {
	for _, a := range idx.Accounts {
		if a.Name == name {
			return a, true
		}
	}
	return model.Account{}, false
}
