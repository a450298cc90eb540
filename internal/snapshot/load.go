package snapshot

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// Records holds the low-volume document entities persisted in
// records.yaml.
type Records struct {
	Projects   []model.Project
	Properties []model.Property
	Buildings  []model.Building
	Contacts   []model.Contact
	Invoices   []model.Invoice
	Bills      []model.Bill
	Agreements []model.Agreement
	Contracts  []model.Contract
	Units      []model.Unit
	Budgets    []model.Budget
}

// Load reads a books directory into a Snapshot. A missing file yields an
// empty collection; a malformed row fails the load (bad shapes are
// rejected here, never inside the engine).
func Load(dir string) (*Snapshot, error) {
	snap := &Snapshot{}

	accounts, err := readCSVFile(filepath.Join(dir, "accounts.csv"), ReadAccounts)
	if err != nil {
		return nil, err
	}
	snap.Accounts = accounts

	categories, err := readCSVFile(filepath.Join(dir, "categories.csv"), ReadCategories)
	if err != nil {
		return nil, err
	}
	snap.Categories = categories

	txs, err := readCSVFile(filepath.Join(dir, "transactions.csv"), ReadTransactions)
	if err != nil {
		return nil, err
	}
	snap.Transactions = txs

	rec, err := LoadRecords(filepath.Join(dir, "records.yaml"))
	if err != nil {
		return nil, err
	}
	snap.Projects = rec.Projects
	snap.Properties = rec.Properties
	snap.Buildings = rec.Buildings
	snap.Contacts = rec.Contacts
	snap.Invoices = rec.Invoices
	snap.Bills = rec.Bills
	snap.Agreements = rec.Agreements
	snap.Contracts = rec.Contracts
	snap.Units = rec.Units
	snap.Budgets = rec.Budgets

	return snap, nil
}

// LoadRecords reads records.yaml. A missing file yields empty Records.
func LoadRecords(path string) (*Records, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Records{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var f recordsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	rec, err := f.toRecords()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rec, nil
}

// SaveRecords writes records.yaml.
func SaveRecords(path string, rec *Records) error {
	data, err := yaml.Marshal(fileFromRecords(rec))
	if err != nil {
		return fmt.Errorf("marshaling records: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func readCSVFile[T any](path string, read func(r io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return items, nil
}
