package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "propbooks.yaml")

	cfg := Default("Crestview Estates", "llc")
	cfg.Engine.PMCostPercentage = decimal.RequireFromString("12.5")
	cfg.Engine.BalanceTolerance = decimal.NewFromInt(2)

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Crestview Estates", loaded.Business.Name)
	assert.True(t, loaded.Engine.PMCostPercentage.Equal(decimal.RequireFromString("12.5")))
	assert.True(t, loaded.Engine.BalanceTolerance.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, "Internal Clearing", loaded.Engine.ClearingAccount)
	assert.Equal(t, "security liability", loaded.Engine.PoolLinks.SecurityDeposit)
	assert.True(t, loaded.Git.AutoCommit)
}

func TestLoadUnquotedPercentage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "propbooks.yaml")
	content := "business:\n  name: X\nengine:\n  pm_cost_percentage: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Engine.PMCostPercentage.Equal(decimal.NewFromInt(10)))
	assert.True(t, cfg.Engine.BalanceTolerance.IsZero())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestKeywordsMergeDefaults(t *testing.T) {
	cfg := Default("X", "llc")
	cfg.Classifier.Keywords.OwnerPayout = []string{"proprietor payout"}

	kw := cfg.Keywords()

	assert.Equal(t, []string{"proprietor payout"}, kw.OwnerPayout, "override replaces the default")
	assert.Contains(t, kw.SecurityDeposit, "security deposit", "untouched lists keep their defaults")
}
