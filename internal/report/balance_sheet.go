// Package report projects accumulated ledger aggregates into statement
// shapes: balance sheet, category rollup, counterparty ledger, budget
// variance, and PM-cost accrual. Builders are thin views over one
// Accumulate run; none of them re-resolve or re-classify.
package report

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/propbooks-dev/propbooks/internal/classify"
	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/model"
)

// Line is one row of a balance sheet section. AccountID is empty for
// derived lines (receivables, pools, retained earnings).
type Line struct {
	AccountID string
	Label     string
	Amount    decimal.Decimal
}

// Section groups balance sheet lines under one side of the equation.
type Section struct {
	Lines []Line
	Total decimal.Decimal
}

func (s *Section) add(line Line) {
	s.Lines = append(s.Lines, line)
	s.Total = s.Total.Add(line.Amount)
}

// PoolLinks names the account-name keywords that materialize a liability
// pool as a real account. A matched account shows the pool's computed
// value in place of its ledger-derived balance.
type PoolLinks struct {
	SecurityDeposit string `yaml:"security_deposit,omitempty"`
	OwnerFunds      string `yaml:"owner_funds,omitempty"`
}

// DefaultPoolLinks returns the historical keyword configuration.
func DefaultPoolLinks() PoolLinks {
	return PoolLinks{
		SecurityDeposit: "security liability",
		OwnerFunds:      "rental liability",
	}
}

// BalanceSheet is the derived statement of financial position.
type BalanceSheet struct {
	AsOf        time.Time
	ProjectID   string
	Assets      Section
	Liabilities Section
	Equity      Section

	// MarketInventory is memo-only potential revenue from unsold units,
	// excluded from the balance check.
	MarketInventory decimal.Decimal

	IsBalanced  bool
	Discrepancy decimal.Decimal
}

// BalanceSheetOptions tunes presentation and checking.
type BalanceSheetOptions struct {
	Links     PoolLinks
	Tolerance decimal.Decimal // zero means the default one-unit slack
}

// BuildBalanceSheet partitions derived balances into assets, liabilities
// and equity, appends the accrual and pool lines, and runs the
// consistency check. Accounts with no contributing transaction or a
// zero balance are suppressed, except accounts linked to a non-zero
// pool.
func BuildBalanceSheet(acc *ledger.Accumulator, scope ledger.Scope, opts BalanceSheetOptions) *BalanceSheet {
	scope = scope.Normalize()
	agg := acc.Accumulate(scope)
	idx := acc.Index()

	bs := &BalanceSheet{AsOf: scope.End, ProjectID: scope.ProjectID, MarketInventory: agg.MarketInventory}

	accounts := make([]model.Account, 0, len(idx.Accounts))
	for _, a := range idx.Accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })

	linked := linkPools(accounts, opts.Links)

	for _, a := range accounts {
		balance := agg.AccountBalances[a.ID]
		pool, isLinked := linked[a.ID]
		if isLinked {
			// The pool's computed value is authoritative for its
			// materialized account.
			balance = poolValue(agg, pool)
			if model.AmountIsZero(balance) {
				continue
			}
		} else if agg.AccountTxCounts[a.ID] == 0 || model.AmountIsZero(balance) {
			continue
		}

		line := Line{AccountID: a.ID, Label: a.Name, Amount: balance}
		switch {
		case a.IsAssetSide():
			bs.Assets.add(line)
		case a.Type == model.AccountTypeLiability:
			bs.Liabilities.add(line)
		case a.Type == model.AccountTypeEquity:
			bs.Equity.add(line)
		}
	}

	if !model.AmountIsZero(agg.AccountsReceivable) {
		bs.Assets.add(Line{Label: "Accounts Receivable", Amount: agg.AccountsReceivable})
	}

	if !model.AmountIsZero(agg.AccountsPayable) {
		bs.Liabilities.add(Line{Label: "Accounts Payable", Amount: agg.AccountsPayable})
	}
	if _, taken := poolAccount(linked, classify.LiabilitySecurityDeposit); !taken && !model.AmountIsZero(agg.SecurityDepositPool) {
		bs.Liabilities.add(Line{Label: "Security Deposits Held", Amount: agg.SecurityDepositPool})
	}
	if _, taken := poolAccount(linked, classify.LiabilityOwnerFunds); !taken && !model.AmountIsZero(agg.OwnerFundsPool) {
		bs.Liabilities.add(Line{Label: "Owner Funds Held", Amount: agg.OwnerFundsPool})
	}
	if !model.AmountIsZero(agg.LoanPool) {
		bs.Liabilities.add(Line{Label: "Outstanding Loans", Amount: agg.LoanPool})
	}

	if contribution := agg.OwnerContribution(); !model.AmountIsZero(contribution) {
		bs.Equity.add(Line{Label: "Owner Contribution", Amount: contribution})
	}
	if retained := agg.RetainedEarnings(); !model.AmountIsZero(retained) {
		bs.Equity.add(Line{Label: "Retained Earnings", Amount: retained})
	}

	check := CheckBalance(bs.Assets.Total, bs.Liabilities.Total, bs.Equity.Total, opts.Tolerance)
	bs.IsBalanced = check.IsBalanced
	bs.Discrepancy = check.Discrepancy
	return bs
}

// linkPools matches accounts to pools by name keyword. Each pool links
// to at most one account; first match in sorted account order wins.
func linkPools(accounts []model.Account, links PoolLinks) map[string]classify.LiabilityKind {
	linked := make(map[string]classify.LiabilityKind)
	taken := make(map[classify.LiabilityKind]bool)
	match := func(a model.Account, keyword string, kind classify.LiabilityKind) {
		if keyword == "" || taken[kind] {
			return
		}
		if _, already := linked[a.ID]; already {
			return
		}
		if strings.Contains(strings.ToLower(a.Name), keyword) {
			linked[a.ID] = kind
			taken[kind] = true
		}
	}
	for _, a := range accounts {
		if a.Type != model.AccountTypeLiability {
			continue
		}
		match(a, strings.ToLower(links.SecurityDeposit), classify.LiabilitySecurityDeposit)
		match(a, strings.ToLower(links.OwnerFunds), classify.LiabilityOwnerFunds)
	}
	return linked
}

func poolAccount(linked map[string]classify.LiabilityKind, kind classify.LiabilityKind) (string, bool) {
	for id, k := range linked {
		if k == kind {
			return id, true
		}
	}
	return "", false
}

func poolValue(agg *ledger.Aggregates, kind classify.LiabilityKind) decimal.Decimal {
	switch kind {
	case classify.LiabilitySecurityDeposit:
		return agg.SecurityDepositPool
	case classify.LiabilityOwnerFunds:
		return agg.OwnerFundsPool
	default:
		return decimal.Zero
	}
}
