package app

import (
	"context"
	"fmt"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/history"
	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/ports/secondary"
)

// ListHistory lists executed batches for a project, newest first.
func (s *AutofixServiceImpl) ListHistory(ctx context.Context, filters primary.HistoryFilters) ([]*primary.HistoryEntry, error) {
	if filters.ProjectID == "" {
		return nil, faults.New(faults.CodeValidation, "project id is required")
	}
	if filters.Status != "" && !history.Valid(history.Status(filters.Status)) {
		return nil, faults.Newf(faults.CodeValidation, "unknown history status %q", filters.Status)
	}

	records, err := s.histories.List(ctx, secondary.HistoryFilters{
		ProjectID: filters.ProjectID,
		Status:    filters.Status,
		Limit:     filters.Limit,
		Offset:    filters.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	entries := make([]*primary.HistoryEntry, len(records))
	for i, r := range records {
		entries[i] = &primary.HistoryEntry{
			ID:                r.ID,
			ProjectID:         r.ProjectID,
			ActorID:           r.ActorID,
			BatchKind:         r.BatchKind,
			ViolationIDs:      r.ViolationIDs,
			FixedViolationIDs: r.FixedViolationIDs,
			BeforeScore:       r.BeforeScore,
			AfterScore:        r.AfterScore,
			ScoreDelta:        r.ScoreDelta,
			Status:            r.Status,
			ExecutedAt:        r.ExecutedAt,
			CompletedAt:       r.CompletedAt,
			RolledBackAt:      r.RolledBackAt,
		}
	}
	return entries, nil
}
