package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/ports/secondary"
)

// ViolationRepository implements secondary.ViolationSource with SQLite.
// The violations table is written by the import pipeline; this adapter
// only reads it and flips the fixed flag.
type ViolationRepository struct {
	db *sql.DB
}

// NewViolationRepository creates a new SQLite violation source.
func NewViolationRepository(db *sql.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

// GetByID retrieves one violation scoped to a project.
func (r *ViolationRepository) GetByID(ctx context.Context, projectID, id string) (*secondary.ViolationRecord, error) {
	var (
		record   secondary.ViolationRecord
		nodeName sql.NullString
		snapshot string
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, category, type, node_id, node_name, snapshot, fixed
		 FROM violations WHERE id = ? AND project_id = ?`,
		id, projectID,
	).Scan(&record.ID, &record.ProjectID, &record.Category, &record.Type,
		&record.NodeID, &nodeName, &snapshot, &record.Fixed)

	if err == sql.ErrNoRows {
		return nil, faults.Newf(faults.CodeNotFound, "violation %s not found in project %s", id, projectID).WithIDs(id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get violation: %w", err)
	}

	record.NodeName = nodeName.String
	if err := json.Unmarshal([]byte(snapshot), &record.Snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode violation snapshot: %w", err)
	}

	return &record, nil
}

// SetFixed marks the given violations fixed or unfixed.
func (r *ViolationRepository) SetFixed(ctx context.Context, ids []string, fixed bool) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?, ", len(ids)-1) + "?"
	args := make([]any, 0, len(ids)+1)
	args = append(args, fixed)
	for _, id := range ids {
		args = append(args, id)
	}

	_, err := r.db.ExecContext(ctx,
		"UPDATE violations SET fixed = ? WHERE id IN ("+placeholders+")", args...)
	if err != nil {
		return fmt.Errorf("failed to update fixed flags: %w", err)
	}

	return nil
}

// Ensure ViolationRepository implements the interface
var _ secondary.ViolationSource = (*ViolationRepository)(nil)
