// Package primary defines the primary ports (driving adapters) for the
// autofix engine. These are the interfaces through which the outside
// world drives the application.
package primary

import "context"

// AutofixService defines the primary port for fix operations.
// Implementations live in the application layer; adapters in CLI/API layers.
type AutofixService interface {
	// PreviewFixes simulates a batch of fixes without mutating anything.
	PreviewFixes(ctx context.Context, req PreviewRequest) (*PreviewResult, error)

	// ExecuteFixes applies a batch of fixes with per-item failure
	// isolation and persists one history record.
	ExecuteFixes(ctx context.Context, req ExecuteRequest) (*ExecuteResult, error)

	// RollbackFixes reverses previously completed batches, one
	// outcome per history id.
	RollbackFixes(ctx context.Context, req RollbackRequest) ([]*RollbackOutcome, error)

	// ListHistory lists executed batches for a project.
	ListHistory(ctx context.Context, filters HistoryFilters) ([]*HistoryEntry, error)
}

// FixOptions carries caller options shared by preview and execute.
type FixOptions struct {
	// DeleteComments clears node annotations alongside each fix.
	DeleteComments bool
}

// PreviewRequest contains parameters for previewing a batch.
type PreviewRequest struct {
	ProjectID    string
	ViolationIDs []string
	Options      FixOptions
}

// PlannedFix is one planned mutation in a preview.
type PlannedFix struct {
	ViolationID     string
	Category        string
	Type            string
	NodeID          string
	Before          map[string]any
	After           map[string]any
	EstimatedMillis int64
}

// ScoreImpact is the estimated compliance-score effect of a batch.
type ScoreImpact struct {
	Current     float64
	Estimated   float64
	Improvement float64
}

// PreviewResult is the read-only simulation of a batch. Never persisted;
// recomputed on demand.
type PreviewResult struct {
	TotalCount      int
	Items           []PlannedFix // stable order of the requested violation ids
	EstimatedMillis int64
	ScoreImpact     ScoreImpact
}

// ExecuteRequest contains parameters for executing a batch.
type ExecuteRequest struct {
	ProjectID    string
	ActorID      string
	ViolationIDs []string
	Options      FixOptions
}

// ItemResult is the outcome of one attempted fix item.
type ItemResult struct {
	ViolationID string
	Category    string
	Type        string
	NodeID      string
	Status      string // COMPLETED or FAILED
	Before      map[string]any
	After       map[string]any
	Error       string // empty on success
	ExecutedAt  string
}

// ExecuteResult is the outcome of one executed batch.
type ExecuteResult struct {
	HistoryID    string
	TotalCount   int
	SuccessCount int
	FailedCount  int
	Canceled     bool
	Items        []ItemResult // same order as the requested violation ids
}

// RollbackRequest contains parameters for rolling back batches.
type RollbackRequest struct {
	HistoryIDs []string
}

// FailedRevert describes one sub-item that could not be reverted.
type FailedRevert struct {
	ViolationID string
	NodeID      string
	Error       string
}

// RollbackOutcome is the per-history-id result of a rollback call.
type RollbackOutcome struct {
	HistoryID     string
	Success       bool
	Error         string
	RevertedCount int
	FailedItems   []FailedRevert
}

// HistoryFilters contains filter options for listing history.
type HistoryFilters struct {
	ProjectID string
	Status    string
	Limit     int
	Offset    int
}

// HistoryEntry represents a history record at the port boundary.
type HistoryEntry struct {
	ID                string
	ProjectID         string
	ActorID           string
	BatchKind         string
	ViolationIDs      []string
	FixedViolationIDs []string
	BeforeScore       float64
	AfterScore        *float64
	ScoreDelta        float64
	Status            string
	ExecutedAt        string
	CompletedAt       string
	RolledBackAt      string
}
