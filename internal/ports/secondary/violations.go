package secondary

import "context"

// ViolationSource defines the secondary port for reading detected
// violations. Violations are created by the external detection pipeline;
// this engine only reads them and flips their fixed flag.
type ViolationSource interface {
	// GetByID retrieves one violation scoped to a project.
	GetByID(ctx context.Context, projectID, id string) (*ViolationRecord, error)

	// SetFixed marks the given violations fixed or unfixed.
	SetFixed(ctx context.Context, ids []string, fixed bool) error
}

// ViolationRecord represents a violation as stored by the detection
// pipeline.
type ViolationRecord struct {
	ID        string
	ProjectID string
	Category  string
	Type      string
	NodeID    string
	NodeName  string
	Snapshot  map[string]any
	Fixed     bool
}
