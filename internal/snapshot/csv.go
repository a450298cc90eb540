package snapshot

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/model"
)

const dateFormat = "2006-01-02"

// AccountsHeader is the CSV header for accounts.csv.
const AccountsHeader = "id,name,type,description"

const (
	acctNumFields = 4
	acctColID     = 0
	acctColName   = 1
	acctColType   = 2
	acctColDesc   = 3
)

// ReadAccounts reads all accounts from an accounts.csv reader.
func ReadAccounts(r io.Reader) ([]model.Account, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = acctNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading accounts CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var accounts []model.Account
	for i, rec := range records[1:] {
		a, err := unmarshalAccount(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		accounts = append(accounts, a)
	}
	return accounts, nil
}

// WriteAccounts writes accounts to an accounts.csv writer (with header).
func WriteAccounts(w io.Writer, accounts []model.Account) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(AccountsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, a := range accounts {
		row := []string{a.ID, a.Name, string(a.Type), a.Description}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalAccount(record []string) (model.Account, error) {
	t := model.AccountType(record[acctColType])
	switch t {
	case model.AccountTypeBank, model.AccountTypeCash, model.AccountTypeAsset,
		model.AccountTypeLiability, model.AccountTypeEquity:
	default:
		return model.Account{}, fmt.Errorf("unknown account type %q", record[acctColType])
	}
	return model.Account{
		ID:          record[acctColID],
		Name:        record[acctColName],
		Type:        t,
		Description: record[acctColDesc],
	}, nil
}

// CategoriesHeader is the CSV header for categories.csv.
const CategoriesHeader = "id,name,type,parent_id,rental,role"

const (
	catNumFields = 6
	catColID     = 0
	catColName   = 1
	catColType   = 2
	catColParent = 3
	catColRental = 4
	catColRole   = 5
)

// ReadCategories reads all categories from a categories.csv reader.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = catNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var categories []model.Category
	for i, rec := range records[1:] {
		c, err := unmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		categories = append(categories, c)
	}
	return categories, nil
}

// WriteCategories writes categories to a categories.csv writer (with header).
func WriteCategories(w io.Writer, categories []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(CategoriesHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range categories {
		rental := ""
		if c.Rental {
			rental = "true"
		}
		row := []string{c.ID, c.Name, string(c.Type), c.ParentID, rental, string(c.Role)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalCategory(record []string) (model.Category, error) {
	t := model.CategoryType(record[catColType])
	if t != model.CategoryIncome && t != model.CategoryExpense {
		return model.Category{}, fmt.Errorf("unknown category type %q", record[catColType])
	}
	return model.Category{
		ID:       record[catColID],
		Name:     record[catColName],
		Type:     t,
		ParentID: record[catColParent],
		Rental:   record[catColRental] == "true",
		Role:     model.CategoryRole(record[catColRole]),
	}, nil
}

// TransactionsHeader is the CSV header for transactions.csv.
const TransactionsHeader = "id,date,type,subtype,amount,account_id,from_account_id,to_account_id,category_id,contact_id,project_id,property_id,building_id,invoice_id,bill_id,agreement_id,contract_id,payslip_id,description"

const (
	txNumFields   = 19
	txColID       = 0
	txColDate     = 1
	txColType     = 2
	txColSubtype  = 3
	txColAmount   = 4
	txColAcct     = 5
	txColFromAcct = 6
	txColToAcct   = 7
	txColCategory = 8
	txColContact  = 9
	txColProject  = 10
	txColProperty = 11
	txColBuilding = 12
	txColInvoice  = 13
	txColBill     = 14
	txColAgrmt    = 15
	txColContract = 16
	txColPayslip  = 17
	txColDesc     = 18
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = txNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var txs []model.Transaction
	for i, rec := range records[1:] {
		tx, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// WriteTransactions writes transactions to a transactions.csv writer
// (with header).
func WriteTransactions(w io.Writer, txs []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(TransactionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, tx := range txs {
		if err := cw.Write(MarshalTransaction(tx)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(tx model.Transaction) []string {
	row := make([]string, txNumFields)
	row[txColID] = tx.ID
	row[txColDate] = tx.Date.Format(dateFormat)
	row[txColType] = string(tx.Type)
	row[txColSubtype] = string(tx.Subtype)
	row[txColAmount] = tx.Amount.StringFixed(2)
	row[txColAcct] = tx.AccountID
	row[txColFromAcct] = tx.FromAccountID
	row[txColToAcct] = tx.ToAccountID
	row[txColCategory] = tx.CategoryID
	row[txColContact] = tx.ContactID
	row[txColProject] = tx.ProjectID
	row[txColProperty] = tx.PropertyID
	row[txColBuilding] = tx.BuildingID
	row[txColInvoice] = tx.InvoiceID
	row[txColBill] = tx.BillID
	row[txColAgrmt] = tx.AgreementID
	row[txColContract] = tx.ContractID
	row[txColPayslip] = tx.PayslipID
	row[txColDesc] = tx.Description
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction. Negative
// amounts are rejected here, at the load boundary, so the engine never
// sees one.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != txNumFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", txNumFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[txColDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[txColDate], err)
	}

	txType := model.TransactionType(record[txColType])
	switch txType {
	case model.TxIncome, model.TxExpense, model.TxTransfer, model.TxLoan:
	default:
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q", record[txColType])
	}

	amount, err := decimal.NewFromString(record[txColAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[txColAmount], err)
	}
	if amount.IsNegative() {
		return model.Transaction{}, fmt.Errorf("negative amount %s", amount)
	}

	return model.Transaction{
		ID:            record[txColID],
		Date:          date,
		Type:          txType,
		Subtype:       model.LoanSubtype(record[txColSubtype]),
		Amount:        amount,
		AccountID:     record[txColAcct],
		FromAccountID: record[txColFromAcct],
		ToAccountID:   record[txColToAcct],
		CategoryID:    record[txColCategory],
		ContactID:     record[txColContact],
		ProjectID:     record[txColProject],
		PropertyID:    record[txColProperty],
		BuildingID:    record[txColBuilding],
		InvoiceID:     record[txColInvoice],
		BillID:        record[txColBill],
		AgreementID:   record[txColAgrmt],
		ContractID:    record[txColContract],
		PayslipID:     record[txColPayslip],
		Description:   record[txColDesc],
	}, nil
}
