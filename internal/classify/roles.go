// Package classify routes resolved transactions into accounting buckets:
// company revenue/expense, revenue reductions, equity movements, and
// liability-pool movements. Category roles are resolved once per run into
// a lookup table so classification never re-scans category names.
package classify

import (
	"strings"

	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

// Keywords maps each category role to the name substrings that assign it.
// Matching is case-insensitive. An empty keyword list disables that
// role's name matching; categories then only get the role via an explicit
// tag.
type Keywords struct {
	EquityContribution []string `yaml:"equity_contribution,omitempty"`
	EquityWithdrawal   []string `yaml:"equity_withdrawal,omitempty"`
	SecurityDeposit    []string `yaml:"security_deposit,omitempty"`
	SecurityRefund     []string `yaml:"security_refund,omitempty"`
	TenantDeduction    []string `yaml:"tenant_deduction,omitempty"`
	OwnerFunds         []string `yaml:"owner_funds,omitempty"`
	OwnerPayout        []string `yaml:"owner_payout,omitempty"`
	PMCost             []string `yaml:"pm_cost,omitempty"`
	Commission         []string `yaml:"commission,omitempty"`
	Rebate             []string `yaml:"rebate,omitempty"`
	Discount           []string `yaml:"discount,omitempty"`
}

// DefaultKeywords returns the historical name-matching rules.
func DefaultKeywords() Keywords {
	return Keywords{
		EquityContribution: []string{"owner equity", "equity contribution"},
		EquityWithdrawal:   []string{"owner withdrawn", "owner withdrawal", "drawings"},
		SecurityDeposit:    []string{"security deposit"},
		SecurityRefund:     []string{"security refund", "deposit refund"},
		TenantDeduction:    []string{"tenant deduction", "damage deduction"},
		OwnerFunds:         []string{"rental income"},
		OwnerPayout:        []string{"owner payout", "rental payout"},
		PMCost:             []string{"project management cost", "pm cost"},
		Commission:         []string{"commission", "broker fee"},
		Rebate:             []string{"rebate"},
		Discount:           []string{"discount"},
	}
}

// RoleTable resolves category ids to roles. Built once at the start of a
// derivation run.
type RoleTable struct {
	roles  map[string]model.CategoryRole
	byRole map[model.CategoryRole]string
}

// BuildRoleTable assigns a role to every category. An explicit role tag on
// the category wins; otherwise the first matching keyword assigns one. A
// category matching nothing stays role-less and classifies into the
// generic revenue/expense buckets.
func BuildRoleTable(categories []model.Category, kw Keywords) *RoleTable {
	ordered := []struct {
		role model.CategoryRole
		subs []string
	}{
		{model.RoleEquityContribution, kw.EquityContribution},
		{model.RoleEquityWithdrawal, kw.EquityWithdrawal},
		{model.RoleSecurityDeposit, kw.SecurityDeposit},
		{model.RoleSecurityRefund, kw.SecurityRefund},
		{model.RoleTenantDeduction, kw.TenantDeduction},
		{model.RoleOwnerFunds, kw.OwnerFunds},
		{model.RoleOwnerPayout, kw.OwnerPayout},
		{model.RolePMCost, kw.PMCost},
		{model.RoleCommission, kw.Commission},
		{model.RoleRebate, kw.Rebate},
		{model.RoleDiscount, kw.Discount},
	}

	t := &RoleTable{
		roles:  make(map[string]model.CategoryRole, len(categories)),
		byRole: make(map[model.CategoryRole]string),
	}
	for _, c := range categories {
		role := c.Role
		if role == model.RoleNone {
			name := strings.ToLower(c.Name)
			for _, entry := range ordered {
				if matchAny(name, entry.subs) {
					role = entry.role
					break
				}
			}
		}
		if role == model.RoleNone {
			continue
		}
		t.roles[c.ID] = role
		if _, taken := t.byRole[role]; !taken {
			t.byRole[role] = c.ID
		}
	}
	return t
}

// Role returns the role of a category id, or RoleNone.
func (t *RoleTable) Role(categoryID string) model.CategoryRole {
	return t.roles[categoryID]
}

// CategoryFor returns the first category id carrying a role. The second
// return is false when no category in the snapshot has the role, which
// silently disables the classification branch depending on it.
func (t *RoleTable) CategoryFor(role model.CategoryRole) (string, bool) {
	id, ok := t.byRole[role]
	return id, ok
}

// RolesFromIndex is a convenience for building a table straight off a
// snapshot index's category set.
func RolesFromIndex(idx *snapshot.Index, kw Keywords) *RoleTable {
	categories := make([]model.Category, 0, len(idx.Categories))
	for _, c := range idx.Categories {
		categories = append(categories, c)
	}
	return BuildRoleTable(categories, kw)
}

func matchAny(name string, subs []string) bool {
	for _, s := range subs {
		if s != "" && strings.Contains(name, s) {
			return true
		}
	}
	return false
}
