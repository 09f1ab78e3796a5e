package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/history"
	"github.com/example/autofix/internal/ports/primary"
)

// RollbackFixes reverses previously completed batches. Each history id
// gets its own outcome, independent of the others; a bad id never aborts
// the rest of the call.
func (s *AutofixServiceImpl) RollbackFixes(ctx context.Context, req primary.RollbackRequest) ([]*primary.RollbackOutcome, error) {
	if len(req.HistoryIDs) == 0 {
		return nil, faults.New(faults.CodeValidation, "no history ids provided")
	}

	outcomes := make([]*primary.RollbackOutcome, len(req.HistoryIDs))
	for i, id := range req.HistoryIDs {
		outcomes[i] = s.rollbackOne(ctx, id)
	}
	return outcomes, nil
}

// rollbackOne reverts one history record. Stored diffs are replayed in
// reverse application order with per-item isolation; the record flips to
// ROLLED_BACK only when every item reverted, so a partial rollback stays
// visible as COMPLETED.
func (s *AutofixServiceImpl) rollbackOne(ctx context.Context, historyID string) *primary.RollbackOutcome {
	out := &primary.RollbackOutcome{HistoryID: historyID}

	record, err := s.histories.GetByID(ctx, historyID)
	if err != nil {
		out.Error = faults.AsFault(err).Error()
		return out
	}

	if record.Status != string(history.StatusCompleted) {
		out.Error = faults.Newf(faults.CodeInvalidState,
			"history record is %s, only COMPLETED records can be rolled back", record.Status).
			WithIDs(historyID).Error()
		return out
	}

	release, err := s.locks.TryAcquire(record.ProjectID)
	if err != nil {
		out.Error = faults.AsFault(err).Error()
		return out
	}
	defer release()

	canceled := false
	for i := len(record.Changes) - 1; i >= 0; i-- {
		change := record.Changes[i]

		// Same cancellation discipline as execution: only between items.
		if canceled || ctx.Err() != nil {
			canceled = true
			out.FailedItems = append(out.FailedItems, primary.FailedRevert{
				ViolationID: change.ViolationID,
				NodeID:      change.NodeID,
				Error:       faults.New(faults.CodeCanceled, "rollback canceled before item was attempted").Error(),
			})
			continue
		}

		if _, err := s.mutations.Mutate(ctx, change.NodeID, change.Before); err != nil {
			fe := faults.AsFault(err)
			s.logger.Warn("revert item failed",
				zap.String("history", historyID),
				zap.String("node", change.NodeID),
				zap.String("code", string(fe.Code)))
			out.FailedItems = append(out.FailedItems, primary.FailedRevert{
				ViolationID: change.ViolationID,
				NodeID:      change.NodeID,
				Error:       fe.Error(),
			})
			continue
		}
		out.RevertedCount++
	}

	if len(out.FailedItems) > 0 {
		out.Error = fmt.Sprintf("%d of %d items failed to revert", len(out.FailedItems), len(record.Changes))
		return out
	}

	bctx := context.WithoutCancel(ctx)
	if err := s.histories.MarkRolledBack(bctx, historyID, time.Now().UTC()); err != nil {
		out.Error = faults.AsFault(err).Error()
		return out
	}
	if err := s.violations.SetFixed(bctx, record.FixedViolationIDs, false); err != nil {
		s.logger.Error("failed to clear fixed flags after rollback",
			zap.String("history", historyID), zap.Error(err))
	}

	s.logger.Info("batch rolled back",
		zap.String("history", historyID),
		zap.Int("reverted", out.RevertedCount))

	out.Success = true
	return out
}
