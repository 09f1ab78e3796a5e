package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/ports/secondary"
)

func TestPreviewFixes_TwoItems(t *testing.T) {
	service, deps := newTestService(1)
	ctx := context.Background()

	result, err := service.PreviewFixes(ctx, primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1", "v2"},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if result.TotalCount != 2 || len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got total=%d len=%d", result.TotalCount, len(result.Items))
	}
	// Items follow the input id order.
	if result.Items[0].ViolationID != "v1" || result.Items[1].ViolationID != "v2" {
		t.Errorf("expected input order [v1 v2], got [%s %s]",
			result.Items[0].ViolationID, result.Items[1].ViolationID)
	}
	if result.ScoreImpact.Current != 72 || result.ScoreImpact.Estimated != 81 {
		t.Errorf("expected scores 72/81, got %v/%v",
			result.ScoreImpact.Current, result.ScoreImpact.Estimated)
	}
	if result.ScoreImpact.Improvement != 9 {
		t.Errorf("expected improvement 9, got %v", result.ScoreImpact.Improvement)
	}
	if result.EstimatedMillis != 300+80 {
		t.Errorf("expected estimated duration 380, got %d", result.EstimatedMillis)
	}
	if result.Items[0].After["layoutMode"] != "VERTICAL" {
		t.Errorf("expected planned layoutMode VERTICAL, got %v", result.Items[0].After["layoutMode"])
	}

	// Preview must never touch the mutation oracle.
	if deps.mutations.inspectCalls != 0 || len(deps.mutations.calls()) != 0 {
		t.Error("preview touched the mutation oracle")
	}
}

func TestPreviewFixes_UnknownIDsAllOrNothing(t *testing.T) {
	service, _ := newTestService(1)

	_, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1", "ghost-1", "ghost-2"},
	})
	if err == nil {
		t.Fatal("expected validation error, got nil")
	}
	if !faults.IsValidation(err) {
		t.Fatalf("expected VALIDATION fault, got %v", err)
	}

	var fe *faults.Error
	errors.As(err, &fe)
	if len(fe.IDs) != 2 || fe.IDs[0] != "ghost-1" || fe.IDs[1] != "ghost-2" {
		t.Errorf("expected offending ids [ghost-1 ghost-2], got %v", fe.IDs)
	}
}

func TestPreviewFixes_ForeignProjectID(t *testing.T) {
	service, _ := newTestService(1)

	_, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "other-project",
		ViolationIDs: []string{"v1"},
	})
	if !faults.IsValidation(err) {
		t.Fatalf("expected VALIDATION fault for foreign project, got %v", err)
	}
}

func TestPreviewFixes_AlreadyFixed(t *testing.T) {
	service, deps := newTestService(1)
	deps.violations.violations["v1"].Fixed = true

	_, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1", "v2"},
	})
	if !faults.IsValidation(err) {
		t.Fatalf("expected VALIDATION fault, got %v", err)
	}
	if !strings.Contains(err.Error(), "already fixed") {
		t.Errorf("expected already-fixed message, got %q", err.Error())
	}
}

func TestPreviewFixes_UnsupportedType(t *testing.T) {
	service, deps := newTestService(1)
	deps.violations.add(&secondary.ViolationRecord{
		ID: "v3", ProjectID: "proj-1",
		Category: "AUTO_LAYOUT", Type: "REMOVE_ABSOLUTE_POSITION",
		NodeID: "node-3", Snapshot: map[string]any{"type": "FRAME"},
	})

	_, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1", "v3"},
	})
	if !faults.IsUnsupportedFix(err) {
		t.Fatalf("expected UNSUPPORTED_FIX fault, got %v", err)
	}
}

func TestPreviewFixes_EmptyAndDuplicateIDs(t *testing.T) {
	service, _ := newTestService(1)
	ctx := context.Background()

	_, err := service.PreviewFixes(ctx, primary.PreviewRequest{ProjectID: "proj-1"})
	if !faults.IsValidation(err) {
		t.Fatalf("expected VALIDATION fault for empty ids, got %v", err)
	}

	_, err = service.PreviewFixes(ctx, primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1", "v1"},
	})
	if !faults.IsValidation(err) {
		t.Fatalf("expected VALIDATION fault for duplicate ids, got %v", err)
	}
}

func TestPreviewFixes_ScoreOracleFailureIsFatal(t *testing.T) {
	service, deps := newTestService(1)
	deps.scores.scoreFn = func(projectID string, violationIDs, fixedIDs []string) (float64, error) {
		return 0, faults.New(faults.CodeScoreOracle, "scorer down")
	}

	_, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1"},
	})
	if faults.CodeOf(err) != faults.CodeScoreOracle {
		t.Fatalf("expected SCORE_ORACLE fault, got %v", err)
	}
}

func TestPreviewFixes_DeleteCommentsOption(t *testing.T) {
	service, deps := newTestService(1)
	deps.violations.violations["v2"].Snapshot["annotation"] = "needs rename"

	result, err := service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v2"},
		Options:      primary.FixOptions{DeleteComments: true},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if result.Items[0].After["annotation"] != "" {
		t.Errorf("expected annotation cleared in after-state, got %v", result.Items[0].After["annotation"])
	}
	if result.Items[0].Before["annotation"] != "needs rename" {
		t.Errorf("expected annotation captured in before-state, got %v", result.Items[0].Before["annotation"])
	}
}

func TestPreviewFixes_TakesNoLock(t *testing.T) {
	service, deps := newTestService(1)

	release, err := deps.locks.TryAcquire("proj-1")
	if err != nil {
		t.Fatalf("failed to acquire lock: %v", err)
	}
	defer release()

	// Preview proceeds even while an execution holds the project lock.
	_, err = service.PreviewFixes(context.Background(), primary.PreviewRequest{
		ProjectID:    "proj-1",
		ViolationIDs: []string{"v1"},
	})
	if err != nil {
		t.Fatalf("expected preview to ignore the lock, got %v", err)
	}
}
