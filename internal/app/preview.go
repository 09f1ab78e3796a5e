package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/autofix/internal/core/fix"
	"github.com/example/autofix/internal/ports/primary"
)

// PreviewFixes simulates a batch of fixes without mutating anything.
// It takes no lock: preview is read-only and must never block or be
// blocked by an in-flight execution.
func (s *AutofixServiceImpl) PreviewFixes(ctx context.Context, req primary.PreviewRequest) (*primary.PreviewResult, error) {
	planned, err := s.resolveAndPlan(ctx, req.ProjectID, req.ViolationIDs,
		fix.PlanOptions{DeleteComments: req.Options.DeleteComments})
	if err != nil {
		return nil, err
	}

	current, err := s.scores.Score(ctx, req.ProjectID, req.ViolationIDs, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute current score: %w", err)
	}
	estimated, err := s.scores.Score(ctx, req.ProjectID, req.ViolationIDs, req.ViolationIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to compute estimated score: %w", err)
	}

	result := &primary.PreviewResult{
		TotalCount: len(planned),
		Items:      make([]primary.PlannedFix, len(planned)),
		ScoreImpact: primary.ScoreImpact{
			Current:     current,
			Estimated:   estimated,
			Improvement: estimated - current,
		},
	}
	for i, item := range planned {
		result.Items[i] = primary.PlannedFix{
			ViolationID:     item.op.ViolationID,
			Category:        string(item.op.Category),
			Type:            string(item.op.Type),
			NodeID:          item.op.NodeID,
			Before:          item.op.Before,
			After:           item.op.After,
			EstimatedMillis: item.op.EstimatedMillis,
		}
		result.EstimatedMillis += item.op.EstimatedMillis
	}

	s.logger.Debug("preview generated",
		zap.String("project", req.ProjectID),
		zap.Int("items", result.TotalCount),
		zap.Float64("improvement", result.ScoreImpact.Improvement))

	return result, nil
}
