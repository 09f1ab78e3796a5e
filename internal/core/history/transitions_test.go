package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionsMoveForwardOnly(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to executing", StatusPending, StatusExecuting, true},
		{"executing to completed", StatusExecuting, StatusCompleted, true},
		{"executing to failed", StatusExecuting, StatusFailed, true},
		{"completed to rolled back", StatusCompleted, StatusRolledBack, true},
		{"completed back to executing", StatusCompleted, StatusExecuting, false},
		{"failed to rolled back", StatusFailed, StatusRolledBack, false},
		{"rolled back to completed", StatusRolledBack, StatusCompleted, false},
		{"rolled back again", StatusRolledBack, StatusRolledBack, false},
		{"pending straight to completed", StatusPending, StatusCompleted, false},
		{"unknown status", Status("UNKNOWN"), StatusCompleted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestTerminalStates(t *testing.T) {
	assert.True(t, Terminal(StatusFailed))
	assert.True(t, Terminal(StatusRolledBack))
	assert.False(t, Terminal(StatusPending))
	assert.False(t, Terminal(StatusExecuting))
	assert.False(t, Terminal(StatusCompleted))
}

func TestOutcomeBestEffort(t *testing.T) {
	assert.Equal(t, StatusCompleted, Outcome(1))
	assert.Equal(t, StatusCompleted, Outcome(7))
	assert.Equal(t, StatusFailed, Outcome(0))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(StatusCompleted))
	assert.True(t, Valid(StatusPending))
	assert.False(t, Valid(Status("DONE")))
	assert.False(t, Valid(Status("")))
}
