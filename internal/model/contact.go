package model

// ContactType classifies counterparties. Tenant contacts drive the
// security-deposit deduction heuristic in the classifier.
type ContactType string

const (
	ContactTenant   ContactType = "tenant"
	ContactOwner    ContactType = "owner"
	ContactVendor   ContactType = "vendor"
	ContactCustomer ContactType = "customer"
	ContactBroker   ContactType = "broker"
)

// Contact is a counterparty on transactions, invoices and bills.
type Contact struct {
	ID   string      `yaml:"id"`
	Name string      `yaml:"name"`
	Type ContactType `yaml:"type"`
}
