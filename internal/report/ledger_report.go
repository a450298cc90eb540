package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/resolver"
)

// LedgerRow is one event in a counterparty ledger: a credit (document
// issued) or a debit (payment), with the balance after the event.
type LedgerRow struct {
	Date         time.Time
	Counterparty string
	Particulars  string
	Credit       decimal.Decimal
	Debit        decimal.Decimal
	Balance      decimal.Decimal
}

// LedgerReport is the chronological statement for one counterparty.
type LedgerReport struct {
	ContactID string
	Contact   string
	Rows      []LedgerRow
	Balance   decimal.Decimal
}

// BuildLedgerReport lists bills, invoices and uninvoiced agreements for
// a contact as credits and their payments as debits, with a running
// balance. Events on the same date keep credits before debits so a
// same-day document-and-payment pair never shows a negative balance.
func BuildLedgerReport(acc *ledger.Accumulator, contactID string, start, end time.Time) *LedgerReport {
	snap := acc.Snapshot()
	idx := acc.Index()

	report := &LedgerReport{ContactID: contactID}
	if contact, ok := idx.Contacts[contactID]; ok {
		report.Contact = contact.Name
	}

	type event struct {
		date        time.Time
		particulars string
		credit      decimal.Decimal
		debit       decimal.Decimal
		seq         int
	}
	var events []event
	inRange := func(d time.Time) bool {
		if !start.IsZero() && d.Before(start) {
			return false
		}
		if !end.IsZero() && d.After(end) {
			return false
		}
		return true
	}

	seq := 0
	credit := func(date time.Time, particulars string, amount decimal.Decimal) {
		events = append(events, event{date: date, particulars: particulars, credit: amount, seq: seq})
		seq++
	}
	debit := func(date time.Time, particulars string, amount decimal.Decimal) {
		events = append(events, event{date: date, particulars: particulars, debit: amount, seq: seq})
		seq++
	}

	invoiced := make(map[string]bool)
	for _, inv := range snap.Invoices {
		if inv.AgreementID != "" {
			invoiced[inv.AgreementID] = true
		}
		if inv.ContactID != contactID || !model.Open(inv.Status) || !inRange(inv.Date) {
			continue
		}
		credit(inv.Date, label("Invoice", inv.Number, inv.Description), inv.Amount)
	}
	for _, bill := range snap.Bills {
		if bill.ContactID != contactID || !model.Open(bill.Status) || !inRange(bill.Date) {
			continue
		}
		credit(bill.Date, label("Bill", bill.Number, bill.Description), bill.Amount)
	}
	for _, agr := range snap.Agreements {
		if agr.ContactID != contactID || agr.Status == model.AgreementCancelled || invoiced[agr.ID] || !inRange(agr.Date) {
			continue
		}
		credit(agr.Date, label("Agreement", agr.ID, agr.Description), agr.SellingPrice())
	}
	for _, tx := range snap.Transactions {
		rtx := resolver.Resolve(tx, idx)
		if rtx.ContactID != contactID || !inRange(tx.Date) {
			continue
		}
		if tx.Type != model.TxIncome && tx.Type != model.TxExpense {
			continue
		}
		debit(tx.Date, label("Payment", "", tx.Description), tx.Amount)
	}

	// Stable chronological order; same-date ties put credits first.
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].date.Equal(events[j].date) {
			return events[i].date.Before(events[j].date)
		}
		iCredit := !events[i].credit.IsZero()
		jCredit := !events[j].credit.IsZero()
		if iCredit != jCredit {
			return iCredit
		}
		return events[i].seq < events[j].seq
	})

	balance := decimal.Zero
	for _, ev := range events {
		balance = balance.Add(ev.credit).Sub(ev.debit)
		report.Rows = append(report.Rows, LedgerRow{
			Date:         ev.date,
			Counterparty: report.Contact,
			Particulars:  ev.particulars,
			Credit:       ev.credit,
			Debit:        ev.debit,
			Balance:      balance,
		})
	}
	report.Balance = balance
	return report
}

func label(kind, number, description string) string {
	switch {
	case number != "" && description != "":
		return kind + " " + number + " - " + description
	case number != "":
		return kind + " " + number
	case description != "":
		return kind + " - " + description
	default:
		return kind
	}
}
