// Package history contains the pure business logic for batch history
// status transitions. This is part of the Functional Core - no I/O,
// only pure functions.
package history

// Status represents the lifecycle state of an executed fix batch.
type Status string

const (
	// StatusPending is reserved for future asynchronous execution.
	StatusPending Status = "PENDING"
	// StatusExecuting is held only while the execution engine is
	// writing the record.
	StatusExecuting Status = "EXECUTING"
	// StatusCompleted means at least one item succeeded. The only
	// state a rollback may start from.
	StatusCompleted Status = "COMPLETED"
	// StatusFailed means no item succeeded. Terminal.
	StatusFailed Status = "FAILED"
	// StatusRolledBack means every item was reverted. Terminal.
	StatusRolledBack Status = "ROLLED_BACK"
)

// transitions is the forward-only state machine. A status never moves
// back to an earlier state.
var transitions = map[Status][]Status{
	StatusPending:    {StatusExecuting},
	StatusExecuting:  {StatusCompleted, StatusFailed},
	StatusCompleted:  {StatusRolledBack},
	StatusFailed:     {},
	StatusRolledBack: {},
}

// CanTransition reports whether moving from one status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no further status change is ever applied.
func Terminal(s Status) bool {
	return s == StatusFailed || s == StatusRolledBack
}

// Valid reports whether s names a known status. Used to validate
// caller-supplied history filters.
func Valid(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// Outcome derives the terminal execution status from the success count.
// A batch with any succeeded item completes; best-effort semantics.
func Outcome(successCount int) Status {
	if successCount > 0 {
		return StatusCompleted
	}
	return StatusFailed
}
