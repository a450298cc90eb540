package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/propbooks-dev/propbooks/internal/classify"
	"github.com/propbooks-dev/propbooks/internal/report"
)

// Config represents the top-level propbooks.yaml configuration. It is
// the explicit configuration object handed into every derivation: the
// engine carries no ambient settings.
type Config struct {
	Business   BusinessConfig   `yaml:"business"`
	Engine     EngineConfig     `yaml:"engine"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Git        GitConfig        `yaml:"git"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	EntityType string `yaml:"entity_type"`
}

// EngineConfig tunes derivation behavior.
type EngineConfig struct {
	// PMCostPercentage is the management fee percent applied to the net
	// project cost base.
	PMCostPercentage decimal.Decimal
	// BalanceTolerance is the slack allowed on the balance check. Zero
	// selects the engine default of one currency unit.
	BalanceTolerance decimal.Decimal
	// ClearingAccount names the internal-clearing account whose
	// transactions are excluded from classification.
	ClearingAccount string
	// PoolLinks matches liability accounts to pools by name keyword.
	PoolLinks report.PoolLinks
}

// engineConfigFile is the YAML shape of EngineConfig. yaml.v3 never
// calls UnmarshalText, so the decimal fields cross the boundary as
// strings.
type engineConfigFile struct {
	PMCostPercentage string           `yaml:"pm_cost_percentage"`
	BalanceTolerance string           `yaml:"balance_tolerance,omitempty"`
	ClearingAccount  string           `yaml:"clearing_account"`
	PoolLinks        report.PoolLinks `yaml:"pool_links"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (e *EngineConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw engineConfigFile
	if err := value.Decode(&raw); err != nil {
		return err
	}

	pct, err := parsePercent("pm_cost_percentage", raw.PMCostPercentage)
	if err != nil {
		return err
	}
	tol, err := parsePercent("balance_tolerance", raw.BalanceTolerance)
	if err != nil {
		return err
	}

	e.PMCostPercentage = pct
	e.BalanceTolerance = tol
	e.ClearingAccount = raw.ClearingAccount
	e.PoolLinks = raw.PoolLinks
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (e EngineConfig) MarshalYAML() (interface{}, error) {
	raw := engineConfigFile{
		PMCostPercentage: e.PMCostPercentage.String(),
		ClearingAccount:  e.ClearingAccount,
		PoolLinks:        e.PoolLinks,
	}
	if !e.BalanceTolerance.IsZero() {
		raw.BalanceTolerance = e.BalanceTolerance.String()
	}
	return raw, nil
}

func parsePercent(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parsing %s %q: %w", field, value, err)
	}
	return d, nil
}

// ClassifierConfig overrides the category-role name keywords. Empty
// lists fall back to the defaults.
type ClassifierConfig struct {
	Keywords classify.Keywords `yaml:"keywords,omitempty"`
}

// GitConfig controls git integration for the books directory.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a propbooks.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new books
// directory.
func Default(businessName, entityType string) *Config {
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			EntityType: entityType,
		},
		Engine: EngineConfig{
			PMCostPercentage: decimal.NewFromInt(10),
			ClearingAccount:  "Internal Clearing",
			PoolLinks:        report.DefaultPoolLinks(),
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Propbooks",
			AuthorEmail: "books@propbooks.dev",
		},
	}
}

// Keywords returns the classifier keywords with defaults applied for
// any list the config leaves empty.
func (c *Config) Keywords() classify.Keywords {
	kw := c.Classifier.Keywords
	def := classify.DefaultKeywords()
	merge := func(dst *[]string, fallback []string) {
		if len(*dst) == 0 {
			*dst = fallback
		}
	}
	merge(&kw.EquityContribution, def.EquityContribution)
	merge(&kw.EquityWithdrawal, def.EquityWithdrawal)
	merge(&kw.SecurityDeposit, def.SecurityDeposit)
	merge(&kw.SecurityRefund, def.SecurityRefund)
	merge(&kw.TenantDeduction, def.TenantDeduction)
	merge(&kw.OwnerFunds, def.OwnerFunds)
	merge(&kw.OwnerPayout, def.OwnerPayout)
	merge(&kw.PMCost, def.PMCost)
	merge(&kw.Commission, def.Commission)
	merge(&kw.Rebate, def.Rebate)
	merge(&kw.Discount, def.Discount)
	return kw
}
