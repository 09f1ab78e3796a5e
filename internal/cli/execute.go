package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/wire"
)

// ExecuteCmd returns the execute command
func ExecuteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "execute [project-id] [violation-id...]",
		Short: "Apply fixes to the live design file",
		Long: `Apply a batch of fixes against the live design file. Failures are
isolated per item; the batch is recorded in history and can be rolled
back with 'autofix rollback'.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleteComments, _ := cmd.Flags().GetBool("delete-comments")
			actor, _ := cmd.Flags().GetString("actor")
			if actor == "" {
				actor = wire.Configuration().ActorID
			}

			result, err := wire.AutofixService().ExecuteFixes(context.Background(), primary.ExecuteRequest{
				ProjectID:    args[0],
				ActorID:      actor,
				ViolationIDs: args[1:],
				Options:      primary.FixOptions{DeleteComments: deleteComments},
			})
			if err != nil {
				return fmt.Errorf("failed to execute fixes: %w", err)
			}

			renderExecute(os.Stdout, result)
			return nil
		},
	}

	cmd.Flags().Bool("delete-comments", false, "Also clear node annotations with each fix")
	cmd.Flags().String("actor", "", "Actor recorded on the history entry (defaults to config)")
	return cmd
}
