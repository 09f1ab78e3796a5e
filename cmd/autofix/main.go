package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/cli"
	"github.com/example/autofix/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "autofix",
		Short:   "autofix - batch repair for design-rule violations",
		Version: version.String(),
		Long: `autofix previews, applies, and rolls back fixes for design-rule
violations in a design file. Every executed batch is recorded in history
with enough before-state to reverse it later.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.PreviewCmd())
	rootCmd.AddCommand(cli.ExecuteCmd())
	rootCmd.AddCommand(cli.RollbackCmd())
	rootCmd.AddCommand(cli.HistoryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
