package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/wire"
)

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [project-id]",
		Short: "List executed batches for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")
			offset, _ := cmd.Flags().GetInt("offset")

			if limit <= 0 {
				limit = 50
			}

			entries, err := wire.AutofixService().ListHistory(context.Background(), primary.HistoryFilters{
				ProjectID: args[0],
				Status:    status,
				Limit:     limit,
				Offset:    offset,
			})
			if err != nil {
				return fmt.Errorf("failed to fetch history: %w", err)
			}

			renderHistory(os.Stdout, entries)
			return nil
		},
	}

	cmd.Flags().String("status", "", "Filter by status (EXECUTING, COMPLETED, FAILED, ROLLED_BACK)")
	cmd.Flags().Int("limit", 50, "Maximum entries to show")
	cmd.Flags().Int("offset", 0, "Entries to skip")
	return cmd
}
