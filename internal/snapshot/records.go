package snapshot

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

// recordsFile is the on-disk shape of records.yaml. yaml.v3 never calls
// UnmarshalText, so amounts cross the YAML boundary as strings and are
// parsed into decimals here, at the load boundary.
type recordsFile struct {
	Projects   []model.Project   `yaml:"projects,omitempty"`
	Properties []model.Property  `yaml:"properties,omitempty"`
	Buildings  []model.Building  `yaml:"buildings,omitempty"`
	Contacts   []model.Contact   `yaml:"contacts,omitempty"`
	Invoices   []invoiceRecord   `yaml:"invoices,omitempty"`
	Bills      []billRecord      `yaml:"bills,omitempty"`
	Agreements []agreementRecord `yaml:"agreements,omitempty"`
	Contracts  []contractRecord  `yaml:"contracts,omitempty"`
	Units      []unitRecord      `yaml:"units,omitempty"`
	Budgets    []budgetRecord    `yaml:"budgets,omitempty"`
}

type invoiceRecord struct {
	ID          string    `yaml:"id"`
	Number      string    `yaml:"number,omitempty"`
	Date        time.Time `yaml:"date"`
	Amount      string    `yaml:"amount"`
	PaidAmount  string    `yaml:"paid_amount,omitempty"`
	Status      string    `yaml:"status"`
	ProjectID   string    `yaml:"project_id,omitempty"`
	CategoryID  string    `yaml:"category_id,omitempty"`
	ContactID   string    `yaml:"contact_id,omitempty"`
	AgreementID string    `yaml:"agreement_id,omitempty"`
	Description string    `yaml:"description,omitempty"`
}

type billItemRecord struct {
	CategoryID string `yaml:"category_id"`
	Quantity   string `yaml:"quantity,omitempty"`
	Unit       string `yaml:"unit,omitempty"`
	NetValue   string `yaml:"net_value"`
}

type billRecord struct {
	ID            string           `yaml:"id"`
	Number        string           `yaml:"number,omitempty"`
	Date          time.Time        `yaml:"date"`
	Amount        string           `yaml:"amount"`
	PaidAmount    string           `yaml:"paid_amount,omitempty"`
	Status        string           `yaml:"status"`
	ProjectID     string           `yaml:"project_id,omitempty"`
	PropertyID    string           `yaml:"property_id,omitempty"`
	CategoryID    string           `yaml:"category_id,omitempty"`
	ContactID     string           `yaml:"contact_id,omitempty"`
	AgreementID   string           `yaml:"agreement_id,omitempty"`
	CategoryItems []billItemRecord `yaml:"expense_category_items,omitempty"`
	Description   string           `yaml:"description,omitempty"`
}

type agreementRecord struct {
	ID          string    `yaml:"id"`
	Date        time.Time `yaml:"date"`
	ProjectID   string    `yaml:"project_id"`
	ContactID   string    `yaml:"contact_id"`
	UnitIDs     []string  `yaml:"unit_ids,omitempty"`
	ListPrice   string    `yaml:"list_price"`
	Discounts   string    `yaml:"discounts,omitempty"`
	PaidAmount  string    `yaml:"paid_amount,omitempty"`
	Status      string    `yaml:"status"`
	Description string    `yaml:"description,omitempty"`
}

type contractRecord struct {
	ID         string    `yaml:"id"`
	Date       time.Time `yaml:"date"`
	PropertyID string    `yaml:"property_id"`
	ProjectID  string    `yaml:"project_id,omitempty"`
	ContactID  string    `yaml:"contact_id"`
	Rent       string    `yaml:"rent,omitempty"`
	Deposit    string    `yaml:"deposit,omitempty"`
	Status     string    `yaml:"status"`
}

type unitRecord struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	BuildingID string `yaml:"building_id,omitempty"`
	ProjectID  string `yaml:"project_id"`
	ListPrice  string `yaml:"list_price"`
	Status     string `yaml:"status"`
}

type budgetRecord struct {
	ID         string `yaml:"id"`
	CategoryID string `yaml:"category_id"`
	ProjectID  string `yaml:"project_id,omitempty"`
	Year       int    `yaml:"year"`
	Amount     string `yaml:"amount"`
}

func (f *recordsFile) toRecords() (*Records, error) {
	rec := &Records{
		Projects:   f.Projects,
		Properties: f.Properties,
		Buildings:  f.Buildings,
		Contacts:   f.Contacts,
	}

	for _, r := range f.Invoices {
		amount, err := parseAmount("amount", r.Amount)
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", r.ID, err)
		}
		paid, err := parseAmount("paid_amount", r.PaidAmount)
		if err != nil {
			return nil, fmt.Errorf("invoice %s: %w", r.ID, err)
		}
		rec.Invoices = append(rec.Invoices, model.Invoice{
			ID:          r.ID,
			Number:      r.Number,
			Date:        r.Date,
			Amount:      amount,
			PaidAmount:  paid,
			Status:      model.DocumentStatus(r.Status),
			ProjectID:   r.ProjectID,
			CategoryID:  r.CategoryID,
			ContactID:   r.ContactID,
			AgreementID: r.AgreementID,
			Description: r.Description,
		})
	}

	for _, r := range f.Bills {
		amount, err := parseAmount("amount", r.Amount)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", r.ID, err)
		}
		paid, err := parseAmount("paid_amount", r.PaidAmount)
		if err != nil {
			return nil, fmt.Errorf("bill %s: %w", r.ID, err)
		}
		var items []model.ExpenseCategoryItem
		for _, it := range r.CategoryItems {
			qty, err := parseAmount("quantity", it.Quantity)
			if err != nil {
				return nil, fmt.Errorf("bill %s: %w", r.ID, err)
			}
			net, err := parseAmount("net_value", it.NetValue)
			if err != nil {
				return nil, fmt.Errorf("bill %s: %w", r.ID, err)
			}
			items = append(items, model.ExpenseCategoryItem{
				CategoryID: it.CategoryID,
				Quantity:   qty,
				Unit:       it.Unit,
				NetValue:   net,
			})
		}
		rec.Bills = append(rec.Bills, model.Bill{
			ID:            r.ID,
			Number:        r.Number,
			Date:          r.Date,
			Amount:        amount,
			PaidAmount:    paid,
			Status:        model.DocumentStatus(r.Status),
			ProjectID:     r.ProjectID,
			PropertyID:    r.PropertyID,
			CategoryID:    r.CategoryID,
			ContactID:     r.ContactID,
			AgreementID:   r.AgreementID,
			CategoryItems: items,
			Description:   r.Description,
		})
	}

	for _, r := range f.Agreements {
		listPrice, err := parseAmount("list_price", r.ListPrice)
		if err != nil {
			return nil, fmt.Errorf("agreement %s: %w", r.ID, err)
		}
		discounts, err := parseAmount("discounts", r.Discounts)
		if err != nil {
			return nil, fmt.Errorf("agreement %s: %w", r.ID, err)
		}
		paid, err := parseAmount("paid_amount", r.PaidAmount)
		if err != nil {
			return nil, fmt.Errorf("agreement %s: %w", r.ID, err)
		}
		rec.Agreements = append(rec.Agreements, model.Agreement{
			ID:          r.ID,
			Date:        r.Date,
			ProjectID:   r.ProjectID,
			ContactID:   r.ContactID,
			UnitIDs:     r.UnitIDs,
			ListPrice:   listPrice,
			Discounts:   discounts,
			PaidAmount:  paid,
			Status:      model.AgreementStatus(r.Status),
			Description: r.Description,
		})
	}

	for _, r := range f.Contracts {
		rent, err := parseAmount("rent", r.Rent)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", r.ID, err)
		}
		deposit, err := parseAmount("deposit", r.Deposit)
		if err != nil {
			return nil, fmt.Errorf("contract %s: %w", r.ID, err)
		}
		rec.Contracts = append(rec.Contracts, model.Contract{
			ID:         r.ID,
			Date:       r.Date,
			PropertyID: r.PropertyID,
			ProjectID:  r.ProjectID,
			ContactID:  r.ContactID,
			Rent:       rent,
			Deposit:    deposit,
			Status:     model.AgreementStatus(r.Status),
		})
	}

	for _, r := range f.Units {
		listPrice, err := parseAmount("list_price", r.ListPrice)
		if err != nil {
			return nil, fmt.Errorf("unit %s: %w", r.ID, err)
		}
		rec.Units = append(rec.Units, model.Unit{
			ID:         r.ID,
			Name:       r.Name,
			BuildingID: r.BuildingID,
			ProjectID:  r.ProjectID,
			ListPrice:  listPrice,
			Status:     model.UnitStatus(r.Status),
		})
	}

	for _, r := range f.Budgets {
		amount, err := parseAmount("amount", r.Amount)
		if err != nil {
			return nil, fmt.Errorf("budget %s: %w", r.ID, err)
		}
		rec.Budgets = append(rec.Budgets, model.Budget{
			ID:         r.ID,
			CategoryID: r.CategoryID,
			ProjectID:  r.ProjectID,
			Year:       r.Year,
			Amount:     amount,
		})
	}

	return rec, nil
}

func fileFromRecords(rec *Records) *recordsFile {
	f := &recordsFile{
		Projects:   rec.Projects,
		Properties: rec.Properties,
		Buildings:  rec.Buildings,
		Contacts:   rec.Contacts,
	}

	for _, inv := range rec.Invoices {
		f.Invoices = append(f.Invoices, invoiceRecord{
			ID:          inv.ID,
			Number:      inv.Number,
			Date:        inv.Date,
			Amount:      inv.Amount.String(),
			PaidAmount:  amountOrBlank(inv.PaidAmount),
			Status:      string(inv.Status),
			ProjectID:   inv.ProjectID,
			CategoryID:  inv.CategoryID,
			ContactID:   inv.ContactID,
			AgreementID: inv.AgreementID,
			Description: inv.Description,
		})
	}

	for _, bill := range rec.Bills {
		var items []billItemRecord
		for _, it := range bill.CategoryItems {
			items = append(items, billItemRecord{
				CategoryID: it.CategoryID,
				Quantity:   amountOrBlank(it.Quantity),
				Unit:       it.Unit,
				NetValue:   it.NetValue.String(),
			})
		}
		f.Bills = append(f.Bills, billRecord{
			ID:            bill.ID,
			Number:        bill.Number,
			Date:          bill.Date,
			Amount:        bill.Amount.String(),
			PaidAmount:    amountOrBlank(bill.PaidAmount),
			Status:        string(bill.Status),
			ProjectID:     bill.ProjectID,
			PropertyID:    bill.PropertyID,
			CategoryID:    bill.CategoryID,
			ContactID:     bill.ContactID,
			AgreementID:   bill.AgreementID,
			CategoryItems: items,
			Description:   bill.Description,
		})
	}

	for _, agr := range rec.Agreements {
		f.Agreements = append(f.Agreements, agreementRecord{
			ID:          agr.ID,
			Date:        agr.Date,
			ProjectID:   agr.ProjectID,
			ContactID:   agr.ContactID,
			UnitIDs:     agr.UnitIDs,
			ListPrice:   agr.ListPrice.String(),
			Discounts:   amountOrBlank(agr.Discounts),
			PaidAmount:  amountOrBlank(agr.PaidAmount),
			Status:      string(agr.Status),
			Description: agr.Description,
		})
	}

	for _, c := range rec.Contracts {
		f.Contracts = append(f.Contracts, contractRecord{
			ID:         c.ID,
			Date:       c.Date,
			PropertyID: c.PropertyID,
			ProjectID:  c.ProjectID,
			ContactID:  c.ContactID,
			Rent:       amountOrBlank(c.Rent),
			Deposit:    amountOrBlank(c.Deposit),
			Status:     string(c.Status),
		})
	}

	for _, u := range rec.Units {
		f.Units = append(f.Units, unitRecord{
			ID:         u.ID,
			Name:       u.Name,
			BuildingID: u.BuildingID,
			ProjectID:  u.ProjectID,
			ListPrice:  u.ListPrice.String(),
			Status:     string(u.Status),
		})
	}

	for _, b := range rec.Budgets {
		f.Budgets = append(f.Budgets, budgetRecord{
			ID:         b.ID,
			CategoryID: b.CategoryID,
			ProjectID:  b.ProjectID,
			Year:       b.Year,
			Amount:     b.Amount.String(),
		})
	}

	return f
}

func parseAmount(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
	return d, nil
}

func amountOrBlank(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}
