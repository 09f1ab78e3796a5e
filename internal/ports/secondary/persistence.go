// Package secondary defines the secondary ports (driven adapters) for the
// autofix engine. These are the interfaces through which the engine drives
// persistence and the external design-tool services.
package secondary

import (
	"context"
	"time"

	"github.com/example/autofix/internal/core/history"
)

// HistoryRepository defines the secondary port for batch history
// persistence. The store is the only component allowed to transition a
// record's status, and it enforces the forward-only state machine.
type HistoryRepository interface {
	// Create persists a new history record. The record must arrive
	// with status EXECUTING pre-populated by the execution engine.
	Create(ctx context.Context, record *HistoryRecord) error

	// GetByID retrieves a history record by its ID.
	GetByID(ctx context.Context, id string) (*HistoryRecord, error)

	// List retrieves history records matching the given filters,
	// newest first.
	List(ctx context.Context, filters HistoryFilters) ([]*HistoryRecord, error)

	// Finalize transitions a record from EXECUTING to its terminal
	// execution status and stores the execution outcome.
	Finalize(ctx context.Context, id string, fin Finalization) error

	// MarkRolledBack transitions a record from COMPLETED to
	// ROLLED_BACK and stamps the rollback time.
	MarkRolledBack(ctx context.Context, id string, at time.Time) error
}

// HistoryRecord represents one executed fix batch as stored in persistence.
// Immutable after Finalize except for Status and RolledBackAt, which only
// the rollback path may set.
type HistoryRecord struct {
	ID                string
	ProjectID         string
	ActorID           string
	BatchKind         string
	ViolationIDs      []string
	FixedViolationIDs []string
	BeforeScore       float64
	AfterScore        *float64 // nil when the score oracle failed after mutation
	ScoreDelta        float64
	Status            string
	Changes           []ChangeRecord
	ExecutedAt        string
	CompletedAt       string
	RolledBackAt      string
}

// ChangeRecord is one reversible diff: the before-snapshot of a node
// that a succeeded item mutated. Failed items never produce one.
type ChangeRecord struct {
	ViolationID string
	NodeID      string
	Before      map[string]any
}

// Finalization carries the outcome written when execution finishes.
type Finalization struct {
	Status            history.Status
	FixedViolationIDs []string
	AfterScore        *float64
	ScoreDelta        float64
	Changes           []ChangeRecord
	CompletedAt       time.Time
}

// HistoryFilters contains filter options for querying history records.
type HistoryFilters struct {
	ProjectID string
	Status    string
	Limit     int
	Offset    int
}
