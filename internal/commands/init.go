package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/config"
	"github.com/propbooks-dev/propbooks/internal/gitops"
	"github.com/propbooks-dev/propbooks/internal/model"
	"github.com/propbooks-dev/propbooks/internal/snapshot"
)

func newInitCommand() *cobra.Command {
	var name string
	var entityType string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new books directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, entityType)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "business name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&entityType, "entity-type", "llc", "entity type")

	return cmd
}

func runInit(dir, name, entityType string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	cfg := config.Default(name, entityType)
	if err := config.Save(filepath.Join(dir, "propbooks.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "accounts.csv"), snapshot.DefaultAccounts(), snapshot.WriteAccounts); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "categories.csv"), snapshot.DefaultCategories(), snapshot.WriteCategories); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "transactions.csv"), nil, snapshot.WriteTransactions); err != nil {
		return err
	}

	records := starterRecords(name)
	if err := snapshot.SaveRecords(filepath.Join(dir, "records.yaml"), records); err != nil {
		return err
	}

	gitignore := "exports/\n.propbooks-cache/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if err := gitops.Init(dir); err != nil {
		return fmt.Errorf("git init: %w", err)
	}

	if cfg.Git.AutoCommit {
		hash, err := gitops.CommitAll(dir, "init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		fmt.Printf("Initialized books for %s at %s (%s)\n", name, dir, hash)
		return nil
	}

	fmt.Printf("Initialized books for %s at %s\n", name, dir)
	return nil
}

// starterRecords scaffolds one project and one contact so the first
// statements have something to scope against.
func starterRecords(businessName string) *snapshot.Records {
	return &snapshot.Records{
		Projects: []model.Project{
			{ID: uuid.NewString(), Name: businessName + " - First Project"},
		},
		Contacts: []model.Contact{
			{ID: uuid.NewString(), Name: "Walk-in Customer", Type: model.ContactCustomer},
		},
	}
}

func writeCSV[T any](path string, items []T, write func(w io.Writer, items []T) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := write(f, items); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
