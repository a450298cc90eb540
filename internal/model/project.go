package model

import "github.com/shopspring/decimal"

// Project is a real-estate development project. Statements can be scoped
// to a single project.
type Project struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

// Property is a rental property managed on behalf of an owner. A property
// without a project marks owner-borne costs in the classifier.
type Property struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	OwnerID   string `yaml:"owner_id"`
	ProjectID string `yaml:"project_id,omitempty"`
}

// Building groups units inside a project.
type Building struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	ProjectID string `yaml:"project_id"`
}

// UnitStatus tracks whether a unit has been sold.
type UnitStatus string

const (
	UnitAvailable UnitStatus = "available"
	UnitReserved  UnitStatus = "reserved"
	UnitSold      UnitStatus = "sold"
)

// Unit is a sellable unit inside a building. Unsold units contribute the
// memo-only potential revenue line on the balance sheet.
type Unit struct {
	ID         string
	Name       string
	BuildingID string
	ProjectID  string
	ListPrice  decimal.Decimal
	Status     UnitStatus
}
