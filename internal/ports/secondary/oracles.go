package secondary

import "context"

// ScoreOracle defines the secondary port for the external compliance
// scorer. Score is a pure function of its inputs: the violation set and
// the subset assumed fixed. Failures surface as SCORE_ORACLE faults.
type ScoreOracle interface {
	Score(ctx context.Context, projectID string, violationIDs, fixedIDs []string) (float64, error)
}

// MutationOracle defines the secondary port for the live design file.
// All node mutation goes through here; the engine never touches the
// design document directly.
//
// Mutate failures map onto the fault taxonomy: NOT_FOUND when the node
// no longer exists, PERMISSION when the caller lacks write access, and
// UNAVAILABLE for systemic failures, which short-circuit the remainder
// of an executing batch.
type MutationOracle interface {
	// Inspect returns the node's current properties without mutating
	// anything. Used for the pre-mutation staleness check.
	Inspect(ctx context.Context, nodeID string) (map[string]any, error)

	// Mutate applies a property patch and returns the resulting
	// node state.
	Mutate(ctx context.Context, nodeID string, patch map[string]any) (map[string]any, error)
}
