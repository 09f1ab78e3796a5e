// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/history"
	"github.com/example/autofix/internal/ports/secondary"
)

// HistoryRepository implements secondary.HistoryRepository with SQLite.
// Status transitions are guarded in the UPDATE's WHERE clause, so an
// illegal transition touches zero rows and surfaces INVALID_STATE.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new SQLite history repository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Create persists a new history record.
// The record must have ID and status EXECUTING pre-populated by the
// execution engine.
func (r *HistoryRepository) Create(ctx context.Context, record *secondary.HistoryRecord) error {
	if record.ID == "" {
		return fmt.Errorf("history ID must be pre-populated by service layer")
	}
	if record.Status != string(history.StatusExecuting) {
		return fmt.Errorf("new history records must be created in EXECUTING status, got %q", record.Status)
	}

	violationIDs, err := json.Marshal(record.ViolationIDs)
	if err != nil {
		return fmt.Errorf("failed to encode violation ids: %w", err)
	}
	fixedIDs, err := json.Marshal(record.FixedViolationIDs)
	if err != nil {
		return fmt.Errorf("failed to encode fixed violation ids: %w", err)
	}
	changes, err := json.Marshal(record.Changes)
	if err != nil {
		return fmt.Errorf("failed to encode changes: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO fix_history
		 (id, project_id, actor_id, batch_kind, violation_ids, fixed_violation_ids,
		  before_score, after_score, score_delta, status, changes, executed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.ProjectID, record.ActorID, record.BatchKind,
		string(violationIDs), string(fixedIDs),
		record.BeforeScore, nullFloat(record.AfterScore), record.ScoreDelta,
		record.Status, string(changes), record.ExecutedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create history record: %w", err)
	}

	return nil
}

// GetByID retrieves a history record by its ID.
func (r *HistoryRepository) GetByID(ctx context.Context, id string) (*secondary.HistoryRecord, error) {
	row := r.db.QueryRowContext(ctx, selectHistory+" WHERE id = ?", id)
	record, err := scanHistory(row)
	if err == sql.ErrNoRows {
		return nil, faults.Newf(faults.CodeNotFound, "history record %s not found", id).WithIDs(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history record: %w", err)
	}
	return record, nil
}

// List retrieves history records matching the given filters, newest first.
func (r *HistoryRepository) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	query := selectHistory + " WHERE project_id = ?"
	args := []any{filters.ProjectID}

	if filters.Status != "" {
		query += " AND status = ?"
		args = append(args, filters.Status)
	}

	query += " ORDER BY executed_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
		if filters.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filters.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list history records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.HistoryRecord
	for rows.Next() {
		record, err := scanHistory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan history record: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Finalize transitions a record from EXECUTING to its terminal execution
// status and stores the execution outcome.
func (r *HistoryRepository) Finalize(ctx context.Context, id string, fin secondary.Finalization) error {
	if !history.CanTransition(history.StatusExecuting, fin.Status) {
		return faults.Newf(faults.CodeInvalidState, "cannot finalize history record to %s", fin.Status).WithIDs(id)
	}

	fixedIDs, err := json.Marshal(fin.FixedViolationIDs)
	if err != nil {
		return fmt.Errorf("failed to encode fixed violation ids: %w", err)
	}
	changes, err := json.Marshal(fin.Changes)
	if err != nil {
		return fmt.Errorf("failed to encode changes: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE fix_history
		 SET status = ?, fixed_violation_ids = ?, after_score = ?, score_delta = ?,
		     changes = ?, completed_at = ?
		 WHERE id = ? AND status = ?`,
		string(fin.Status), string(fixedIDs), nullFloat(fin.AfterScore), fin.ScoreDelta,
		string(changes), fin.CompletedAt.UTC().Format(time.RFC3339),
		id, string(history.StatusExecuting),
	)
	if err != nil {
		return fmt.Errorf("failed to finalize history record: %w", err)
	}

	return r.requireTransitioned(ctx, result, id, history.StatusExecuting)
}

// MarkRolledBack transitions a record from COMPLETED to ROLLED_BACK.
func (r *HistoryRepository) MarkRolledBack(ctx context.Context, id string, at time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE fix_history SET status = ?, rolled_back_at = ? WHERE id = ? AND status = ?`,
		string(history.StatusRolledBack), at.UTC().Format(time.RFC3339),
		id, string(history.StatusCompleted),
	)
	if err != nil {
		return fmt.Errorf("failed to mark history record rolled back: %w", err)
	}

	return r.requireTransitioned(ctx, result, id, history.StatusCompleted)
}

// requireTransitioned distinguishes a missing record from an illegal
// transition when a guarded UPDATE touched zero rows.
func (r *HistoryRepository) requireTransitioned(ctx context.Context, result sql.Result, id string, requiredFrom history.Status) error {
	affected, _ := result.RowsAffected()
	if affected > 0 {
		return nil
	}

	var current string
	err := r.db.QueryRowContext(ctx, "SELECT status FROM fix_history WHERE id = ?", id).Scan(&current)
	if err == sql.ErrNoRows {
		return faults.Newf(faults.CodeNotFound, "history record %s not found", id).WithIDs(id)
	}
	if err != nil {
		return fmt.Errorf("failed to read history status: %w", err)
	}
	return faults.Newf(faults.CodeInvalidState,
		"history record is %s, expected %s", current, requiredFrom).WithIDs(id)
}

const selectHistory = `SELECT id, project_id, actor_id, batch_kind, violation_ids,
	fixed_violation_ids, before_score, after_score, score_delta, status, changes,
	executed_at, completed_at, rolled_back_at FROM fix_history`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(row rowScanner) (*secondary.HistoryRecord, error) {
	var (
		record       secondary.HistoryRecord
		violationIDs string
		fixedIDs     string
		changes      string
		afterScore   sql.NullFloat64
		completedAt  sql.NullString
		rolledBackAt sql.NullString
	)

	err := row.Scan(&record.ID, &record.ProjectID, &record.ActorID, &record.BatchKind,
		&violationIDs, &fixedIDs, &record.BeforeScore, &afterScore, &record.ScoreDelta,
		&record.Status, &changes, &record.ExecutedAt, &completedAt, &rolledBackAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(violationIDs), &record.ViolationIDs); err != nil {
		return nil, fmt.Errorf("failed to decode violation ids: %w", err)
	}
	if err := json.Unmarshal([]byte(fixedIDs), &record.FixedViolationIDs); err != nil {
		return nil, fmt.Errorf("failed to decode fixed violation ids: %w", err)
	}
	if err := json.Unmarshal([]byte(changes), &record.Changes); err != nil {
		return nil, fmt.Errorf("failed to decode changes: %w", err)
	}

	if afterScore.Valid {
		record.AfterScore = &afterScore.Float64
	}
	record.CompletedAt = completedAt.String
	record.RolledBackAt = rolledBackAt.String

	return &record, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

// Ensure HistoryRepository implements the interface
var _ secondary.HistoryRepository = (*HistoryRepository)(nil)
