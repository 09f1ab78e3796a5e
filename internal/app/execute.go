package app

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/example/autofix/internal/core/batch"
	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/fix"
	"github.com/example/autofix/internal/core/history"
	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/ports/secondary"
)

// itemOutcome is the internal result of one attempted item.
type itemOutcome struct {
	status batch.ItemStatus
	after  map[string]any
	fault  *faults.Error
}

// ExecuteFixes applies a batch of fixes against the live design file.
//
// The project lock is held for the whole mutation phase and released on
// every exit path. Failures after the lock is taken are isolated per
// item; only an UNAVAILABLE fault from the mutation oracle short-circuits
// the remaining unattempted items. One history record is persisted per
// call: COMPLETED when at least one item succeeded, FAILED otherwise.
func (s *AutofixServiceImpl) ExecuteFixes(ctx context.Context, req primary.ExecuteRequest) (*primary.ExecuteResult, error) {
	release, err := s.locks.TryAcquire(req.ProjectID)
	if err != nil {
		return nil, err
	}
	defer release()

	planned, err := s.resolveAndPlan(ctx, req.ProjectID, req.ViolationIDs,
		fix.PlanOptions{DeleteComments: req.Options.DeleteComments})
	if err != nil {
		return nil, err
	}

	beforeScore, err := s.scores.Score(ctx, req.ProjectID, req.ViolationIDs, []string{})
	if err != nil {
		return nil, fmt.Errorf("failed to compute before score: %w", err)
	}

	actor := req.ActorID
	if actor == "" {
		actor = "system"
	}

	executedAt := time.Now().UTC()
	record := &secondary.HistoryRecord{
		ID:           uuid.NewString(),
		ProjectID:    req.ProjectID,
		ActorID:      actor,
		BatchKind:    string(batch.KindOf(len(planned))),
		ViolationIDs: req.ViolationIDs,
		BeforeScore:  beforeScore,
		Status:       string(history.StatusExecuting),
		ExecutedAt:   executedAt.Format(time.RFC3339),
	}
	if err := s.histories.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create history record: %w", err)
	}

	outcomes, canceled := s.applyAll(ctx, planned)

	// Bookkeeping must finish even when the caller canceled mid-batch:
	// mutations that already happened may not be discarded silently.
	bctx := context.WithoutCancel(ctx)

	statuses := make([]batch.ItemStatus, len(outcomes))
	var fixedIDs []string
	var changes []secondary.ChangeRecord
	for i, out := range outcomes {
		statuses[i] = out.status
		if out.status == batch.ItemCompleted {
			fixedIDs = append(fixedIDs, planned[i].violation.ID)
			changes = append(changes, secondary.ChangeRecord{
				ViolationID: planned[i].violation.ID,
				NodeID:      planned[i].op.NodeID,
				Before:      planned[i].op.Before,
			})
		}
	}
	summary := batch.Summarize(statuses)

	if len(fixedIDs) > 0 {
		if err := s.violations.SetFixed(bctx, fixedIDs, true); err != nil {
			s.logger.Error("failed to mark violations fixed", zap.Error(err))
		}
	}

	var afterScore *float64
	var scoreDelta float64
	if summary.Success == 0 {
		// Nothing changed, so the score did not move.
		afterScore = &beforeScore
	} else if after, err := s.scores.Score(bctx, req.ProjectID, req.ViolationIDs, fixedIDs); err != nil {
		// Mutations already succeeded; persist the record with the
		// after-score unknown rather than discarding them.
		s.logger.Warn("score oracle failed after execution, after-score unknown",
			zap.String("history", record.ID), zap.Error(err))
	} else {
		afterScore = &after
		scoreDelta = after - beforeScore
	}

	completedAt := time.Now().UTC()
	status := history.Outcome(summary.Success)
	err = s.histories.Finalize(bctx, record.ID, secondary.Finalization{
		Status:            status,
		FixedViolationIDs: fixedIDs,
		AfterScore:        afterScore,
		ScoreDelta:        scoreDelta,
		Changes:           changes,
		CompletedAt:       completedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to finalize history record: %w", err)
	}

	s.logger.Info("batch executed",
		zap.String("history", record.ID),
		zap.String("project", req.ProjectID),
		zap.String("status", string(status)),
		zap.Int("success", summary.Success),
		zap.Int("failed", summary.Failed),
		zap.Bool("canceled", canceled))

	result := &primary.ExecuteResult{
		HistoryID:    record.ID,
		TotalCount:   summary.Total,
		SuccessCount: summary.Success,
		FailedCount:  summary.Failed,
		Canceled:     canceled,
		Items:        make([]primary.ItemResult, len(outcomes)),
	}
	for i, out := range outcomes {
		item := primary.ItemResult{
			ViolationID: planned[i].violation.ID,
			Category:    string(planned[i].op.Category),
			Type:        string(planned[i].op.Type),
			NodeID:      planned[i].op.NodeID,
			Status:      string(out.status),
			Before:      planned[i].op.Before,
			After:       planned[i].op.After,
			ExecutedAt:  executedAt.Format(time.RFC3339),
		}
		if out.fault != nil {
			item.Error = out.fault.Error()
		}
		result.Items[i] = item
	}
	return result, nil
}

// applyAll attempts every planned item with bounded parallelism.
// Outcomes are collected positionally, so the returned slice is in input
// order regardless of scheduling.
func (s *AutofixServiceImpl) applyAll(ctx context.Context, planned []plannedItem) ([]itemOutcome, bool) {
	outcomes := make([]itemOutcome, len(planned))
	var systemic atomic.Pointer[faults.Error]
	var canceled atomic.Bool

	var g errgroup.Group
	g.SetLimit(s.parallelism)
	for i := range planned {
		i := i
		g.Go(func() error {
			outcomes[i] = s.applyOne(ctx, planned[i], &systemic, &canceled)
			return nil
		})
	}
	g.Wait()

	return outcomes, canceled.Load()
}

// applyOne attempts a single item. Cancellation is honored only here, at
// the item boundary: an in-flight mutation is never interrupted, so a
// node cannot be left half-patched.
func (s *AutofixServiceImpl) applyOne(ctx context.Context, item plannedItem, systemic *atomic.Pointer[faults.Error], canceled *atomic.Bool) itemOutcome {
	if canceled.Load() || ctx.Err() != nil {
		canceled.Store(true)
		return failedOutcome(faults.New(faults.CodeCanceled, "batch canceled before item was attempted"))
	}
	if f := systemic.Load(); f != nil {
		return failedOutcome(f)
	}

	live, err := s.mutations.Inspect(ctx, item.op.NodeID)
	if err != nil {
		return s.mutationFailure(item, err, systemic)
	}

	// A preview may have gone stale while no lock was held. Divergence
	// is an isolated per-item failure, not a silent wrong mutation.
	if key, stale := staleProperty(live, item.op.Before); stale {
		return failedOutcome(faults.Newf(faults.CodeStaleState,
			"node %s diverged from preview on %q", item.op.NodeID, key).WithIDs(item.violation.ID))
	}

	after, err := s.mutations.Mutate(ctx, item.op.NodeID, item.op.After)
	if err != nil {
		return s.mutationFailure(item, err, systemic)
	}

	return itemOutcome{status: batch.ItemCompleted, after: after}
}

// mutationFailure records a per-item oracle failure. UNAVAILABLE is
// systemic: it flips the short-circuit flag so remaining unattempted
// items fail fast with the same fault.
func (s *AutofixServiceImpl) mutationFailure(item plannedItem, err error, systemic *atomic.Pointer[faults.Error]) itemOutcome {
	fe := faults.AsFault(err)
	if fe.Code == faults.CodeUnavailable {
		systemic.CompareAndSwap(nil, fe)
	}
	s.logger.Warn("fix item failed",
		zap.String("violation", item.violation.ID),
		zap.String("node", item.op.NodeID),
		zap.String("code", string(fe.Code)))
	return failedOutcome(fe)
}

func failedOutcome(fe *faults.Error) itemOutcome {
	return itemOutcome{status: batch.ItemFailed, fault: fe}
}

// staleProperty compares the live node against the planned before-state
// and returns the first diverging property.
func staleProperty(live, before map[string]any) (string, bool) {
	for key, want := range before {
		if !reflect.DeepEqual(live[key], want) {
			return key, true
		}
	}
	return "", false
}
