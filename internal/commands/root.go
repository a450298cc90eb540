package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propbooks-dev/propbooks/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands
// registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "propbooks",
		Short:   "Real-estate project and rental accounting statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newBalanceSheetCommand())
	rootCmd.AddCommand(newCategoriesCommand())
	rootCmd.AddCommand(newLedgerCommand())
	rootCmd.AddCommand(newBudgetCommand())
	rootCmd.AddCommand(newPMCostCommand())

	return rootCmd
}
