package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/propbooks-dev/propbooks/internal/auditlog"
	"github.com/propbooks-dev/propbooks/internal/config"
	"github.com/propbooks-dev/propbooks/internal/ledger"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

const dateFlagFormat = "2006-01-02"

// books bundles everything a statement command derives from.
type books struct {
	dir string
	cfg *config.Config
	acc *ledger.Accumulator
}

// openBooks loads the config and snapshot from a books directory and
// wires the accumulator for one derivation run.
func openBooks(dir string) (*books, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := config.Load(filepath.Join(absDir, "propbooks.yaml"))
	if err != nil {
		return nil, err
	}

	snap, err := snapshot.Load(absDir)
	if err != nil {
		return nil, err
	}

	acc := ledger.New(snap, cfg.Keywords(), cfg.Engine.ClearingAccount)
	return &books{dir: absDir, cfg: cfg, acc: acc}, nil
}

// audit appends one derivation row. Logging failures never fail the
// statement; the caller already has the result.
func (b *books) audit(statement, scope, details, discrepancy string) {
	entry := auditlog.Entry{
		Timestamp:   time.Now().UTC(),
		Statement:   statement,
		Scope:       scope,
		Details:     details,
		Discrepancy: discrepancy,
	}
	if err := auditlog.Append(b.dir, []auditlog.Entry{entry}); err != nil {
		fmt.Printf("warning: audit log: %v\n", err)
	}
}

func parseDateFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateFlagFormat, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", value)
	}
	return t, nil
}

func describeScope(scope ledger.Scope) string {
	var parts []string
	if !scope.Start.IsZero() {
		parts = append(parts, "from="+scope.Start.Format(dateFlagFormat))
	}
	if !scope.End.IsZero() {
		parts = append(parts, "to="+scope.End.Format(dateFlagFormat))
	}
	if scope.ProjectID != "" && scope.ProjectID != ledger.ScopeAll {
		parts = append(parts, "project="+scope.ProjectID)
	}
	if scope.ContactID != "" {
		parts = append(parts, "contact="+scope.ContactID)
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}
