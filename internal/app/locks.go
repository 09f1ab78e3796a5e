package app

import (
	"sync"

	"github.com/example/autofix/internal/core/faults"
)

// BatchLocks serializes mutating batches per project. Execution and
// rollback both acquire the project lock before touching the mutation
// oracle; preview never takes it. The lock scope is the project rather
// than the target node set - coarser, but two batches in one project
// overlap often enough that the finer grain buys little.
type BatchLocks struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewBatchLocks creates an empty lock table.
func NewBatchLocks() *BatchLocks {
	return &BatchLocks{held: make(map[string]struct{})}
}

// TryAcquire takes the exclusive lock for a project, failing immediately
// with a CONFLICT fault when another batch holds it. The returned release
// function is safe to call more than once and must run on every exit
// path of the caller.
func (l *BatchLocks) TryAcquire(projectID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, busy := l.held[projectID]; busy {
		return nil, faults.Newf(faults.CodeConflict,
			"another batch is mutating project %s; retry later", projectID).WithIDs(projectID)
	}
	l.held[projectID] = struct{}{}

	var once sync.Once
	release := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, projectID)
			l.mu.Unlock()
		})
	}
	return release, nil
}
