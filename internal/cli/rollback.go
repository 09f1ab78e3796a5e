package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/wire"
)

// RollbackCmd returns the rollback command
func RollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rollback [history-id...]",
		Short: "Reverse previously executed batches",
		Long: `Replay the stored before-state of each batch, newest change first.
Only COMPLETED batches can be rolled back; each history id gets its own
outcome, so one bad id never aborts the rest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes, err := wire.AutofixService().RollbackFixes(context.Background(), primary.RollbackRequest{
				HistoryIDs: args,
			})
			if err != nil {
				return fmt.Errorf("failed to roll back: %w", err)
			}

			renderRollback(os.Stdout, outcomes)

			for _, out := range outcomes {
				if !out.Success {
					return fmt.Errorf("%d batch(es) could not be rolled back", countFailed(outcomes))
				}
			}
			return nil
		},
	}
}

func countFailed(outcomes []*primary.RollbackOutcome) int {
	n := 0
	for _, out := range outcomes {
		if !out.Success {
			n++
		}
	}
	return n
}
