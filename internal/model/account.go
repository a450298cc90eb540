package model

// AccountType classifies accounts held in the books.
type AccountType string

const (
	AccountTypeBank      AccountType = "bank"
	AccountTypeCash      AccountType = "cash"
	AccountTypeAsset     AccountType = "asset"
	AccountTypeLiability AccountType = "liability"
	AccountTypeEquity    AccountType = "equity"
)

// Account represents a row in accounts.csv. Its balance is never stored;
// the ledger recomputes it from transactions on every derivation.
type Account struct {
	ID          string
	Name        string
	Type        AccountType
	Description string
}

// IsAssetSide reports whether the account's derived balance belongs on the
// asset side of the balance sheet (bank and cash roll up under assets).
func (a Account) IsAssetSide() bool {
	return a.Type == AccountTypeBank || a.Type == AccountTypeCash || a.Type == AccountTypeAsset
}
