package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/wire"
)

// PreviewCmd returns the preview command
func PreviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview [project-id] [violation-id...]",
		Short: "Preview fixes without mutating anything",
		Long:  "Simulate a batch of fixes: planned property changes, estimated duration, and score impact. Nothing is mutated and nothing is persisted.",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deleteComments, _ := cmd.Flags().GetBool("delete-comments")

			result, err := wire.AutofixService().PreviewFixes(context.Background(), primary.PreviewRequest{
				ProjectID:    args[0],
				ViolationIDs: args[1:],
				Options:      primary.FixOptions{DeleteComments: deleteComments},
			})
			if err != nil {
				return fmt.Errorf("failed to preview fixes: %w", err)
			}

			renderPreview(os.Stdout, result)
			return nil
		},
	}

	cmd.Flags().Bool("delete-comments", false, "Also clear node annotations with each fix")
	return cmd
}
