package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/fix"
	"github.com/example/autofix/internal/core/history"
	"github.com/example/autofix/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// mockViolationSource implements secondary.ViolationSource for testing.
type mockViolationSource struct {
	mu          sync.Mutex
	violations  map[string]*secondary.ViolationRecord
	setFixedErr error
}

func newMockViolationSource() *mockViolationSource {
	return &mockViolationSource{violations: make(map[string]*secondary.ViolationRecord)}
}

func (m *mockViolationSource) add(record *secondary.ViolationRecord) {
	m.violations[record.ID] = record
}

func (m *mockViolationSource) GetByID(ctx context.Context, projectID, id string) (*secondary.ViolationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.violations[id]
	if !ok || record.ProjectID != projectID {
		return nil, faults.Newf(faults.CodeNotFound, "violation %s not found in project %s", id, projectID).WithIDs(id)
	}
	clone := *record
	return &clone, nil
}

func (m *mockViolationSource) SetFixed(ctx context.Context, ids []string, fixed bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setFixedErr != nil {
		return m.setFixedErr
	}
	for _, id := range ids {
		if record, ok := m.violations[id]; ok {
			record.Fixed = fixed
		}
	}
	return nil
}

// mockHistoryRepo implements secondary.HistoryRepository in memory,
// enforcing the same status guards as the SQLite adapter.
type mockHistoryRepo struct {
	mu        sync.Mutex
	records   map[string]*secondary.HistoryRecord
	createErr error
}

func newMockHistoryRepo() *mockHistoryRepo {
	return &mockHistoryRepo{records: make(map[string]*secondary.HistoryRecord)}
}

func (m *mockHistoryRepo) Create(ctx context.Context, record *secondary.HistoryRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	clone := *record
	m.records[record.ID] = &clone
	return nil
}

func (m *mockHistoryRepo) GetByID(ctx context.Context, id string) (*secondary.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return nil, faults.Newf(faults.CodeNotFound, "history record %s not found", id).WithIDs(id)
	}
	clone := *record
	return &clone, nil
}

func (m *mockHistoryRepo) List(ctx context.Context, filters secondary.HistoryFilters) ([]*secondary.HistoryRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*secondary.HistoryRecord
	for _, record := range m.records {
		if record.ProjectID != filters.ProjectID {
			continue
		}
		if filters.Status != "" && record.Status != filters.Status {
			continue
		}
		clone := *record
		result = append(result, &clone)
	}
	return result, nil
}

func (m *mockHistoryRepo) Finalize(ctx context.Context, id string, fin secondary.Finalization) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return faults.Newf(faults.CodeNotFound, "history record %s not found", id).WithIDs(id)
	}
	if record.Status != string(history.StatusExecuting) {
		return faults.Newf(faults.CodeInvalidState, "history record is %s, expected EXECUTING", record.Status).WithIDs(id)
	}
	record.Status = string(fin.Status)
	record.FixedViolationIDs = fin.FixedViolationIDs
	record.AfterScore = fin.AfterScore
	record.ScoreDelta = fin.ScoreDelta
	record.Changes = fin.Changes
	record.CompletedAt = fin.CompletedAt.Format(time.RFC3339)
	return nil
}

func (m *mockHistoryRepo) MarkRolledBack(ctx context.Context, id string, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[id]
	if !ok {
		return faults.Newf(faults.CodeNotFound, "history record %s not found", id).WithIDs(id)
	}
	if record.Status != string(history.StatusCompleted) {
		return faults.Newf(faults.CodeInvalidState, "history record is %s, expected COMPLETED", record.Status).WithIDs(id)
	}
	record.Status = string(history.StatusRolledBack)
	record.RolledBackAt = at.Format(time.RFC3339)
	return nil
}

// mockScoreOracle implements secondary.ScoreOracle for testing.
// The default scoring: 72 with nothing fixed, 81 with any fixed subset.
type mockScoreOracle struct {
	mu      sync.Mutex
	calls   int
	scoreFn func(projectID string, violationIDs, fixedIDs []string) (float64, error)
}

func newMockScoreOracle() *mockScoreOracle {
	return &mockScoreOracle{
		scoreFn: func(projectID string, violationIDs, fixedIDs []string) (float64, error) {
			if len(fixedIDs) == 0 {
				return 72, nil
			}
			return 81, nil
		},
	}
}

func (m *mockScoreOracle) Score(ctx context.Context, projectID string, violationIDs, fixedIDs []string) (float64, error) {
	m.mu.Lock()
	m.calls++
	fn := m.scoreFn
	m.mu.Unlock()
	return fn(projectID, violationIDs, fixedIDs)
}

type mutateCall struct {
	nodeID string
	patch  map[string]any
}

// mockMutationOracle implements secondary.MutationOracle over an
// in-memory node graph.
type mockMutationOracle struct {
	mu           sync.Mutex
	nodes        map[string]map[string]any
	inspectErrs  map[string]error
	mutateErrs   map[string]error
	mutateCalls  []mutateCall
	inspectCalls int
	onMutate     func(nodeID string) // invoked while the mutation is in flight
}

func newMockMutationOracle() *mockMutationOracle {
	return &mockMutationOracle{
		nodes:       make(map[string]map[string]any),
		inspectErrs: make(map[string]error),
		mutateErrs:  make(map[string]error),
	}
}

func (m *mockMutationOracle) addNode(nodeID string, props map[string]any) {
	clone := make(map[string]any, len(props))
	for k, v := range props {
		clone[k] = v
	}
	m.nodes[nodeID] = clone
}

func (m *mockMutationOracle) node(nodeID string) map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.nodes[nodeID]
}

func (m *mockMutationOracle) Inspect(ctx context.Context, nodeID string) (map[string]any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inspectCalls++
	if err, ok := m.inspectErrs[nodeID]; ok {
		return nil, err
	}
	props, ok := m.nodes[nodeID]
	if !ok {
		return nil, faults.Newf(faults.CodeNotFound, "node %s no longer exists", nodeID).WithIDs(nodeID)
	}
	clone := make(map[string]any, len(props))
	for k, v := range props {
		clone[k] = v
	}
	return clone, nil
}

func (m *mockMutationOracle) Mutate(ctx context.Context, nodeID string, patch map[string]any) (map[string]any, error) {
	m.mu.Lock()
	hook := m.onMutate
	m.mu.Unlock()
	if hook != nil {
		hook(nodeID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.mutateErrs[nodeID]; ok {
		return nil, err
	}
	props, ok := m.nodes[nodeID]
	if !ok {
		return nil, faults.Newf(faults.CodeNotFound, "node %s no longer exists", nodeID).WithIDs(nodeID)
	}
	for k, v := range patch {
		props[k] = v
	}
	m.mutateCalls = append(m.mutateCalls, mutateCall{nodeID: nodeID, patch: patch})
	clone := make(map[string]any, len(props))
	for k, v := range props {
		clone[k] = v
	}
	return clone, nil
}

func (m *mockMutationOracle) calls() []mutateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]mutateCall{}, m.mutateCalls...)
}

// ============================================================================
// Test Fixtures
// ============================================================================

type testDeps struct {
	violations *mockViolationSource
	histories  *mockHistoryRepo
	scores     *mockScoreOracle
	mutations  *mockMutationOracle
	locks      *BatchLocks
}

// newTestService builds a service over fresh mocks with two seeded
// violations: v1 (AUTO_LAYOUT/ADD_AUTO_LAYOUT on node-1) and
// v2 (NAMING/RENAME_SEMANTIC on node-2).
func newTestService(parallelism int) (*AutofixServiceImpl, *testDeps) {
	deps := &testDeps{
		violations: newMockViolationSource(),
		histories:  newMockHistoryRepo(),
		scores:     newMockScoreOracle(),
		mutations:  newMockMutationOracle(),
		locks:      NewBatchLocks(),
	}

	v1Snapshot := map[string]any{"type": "FRAME", "layoutMode": "NONE"}
	v2Snapshot := map[string]any{"type": "FRAME", "name": "Frame 12"}

	deps.violations.add(&secondary.ViolationRecord{
		ID: "v1", ProjectID: "proj-1",
		Category: string(fix.CategoryAutoLayout), Type: string(fix.TypeAddAutoLayout),
		NodeID: "node-1", NodeName: "Card", Snapshot: v1Snapshot,
	})
	deps.violations.add(&secondary.ViolationRecord{
		ID: "v2", ProjectID: "proj-1",
		Category: string(fix.CategoryNaming), Type: string(fix.TypeRenameSemantic),
		NodeID: "node-2", NodeName: "Frame 12", Snapshot: v2Snapshot,
	})
	deps.mutations.addNode("node-1", v1Snapshot)
	deps.mutations.addNode("node-2", v2Snapshot)

	service := NewAutofixService(
		deps.violations, deps.histories, deps.scores, deps.mutations,
		fix.DefaultCatalog(), deps.locks, zap.NewNop(), parallelism,
	)
	return service, deps
}
