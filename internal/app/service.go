// Package app implements the primary ports of the autofix engine: the
// preview planner, the execution engine, and the rollback coordinator.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/example/autofix/internal/core/faults"
	"github.com/example/autofix/internal/core/fix"
	"github.com/example/autofix/internal/ports/primary"
	"github.com/example/autofix/internal/ports/secondary"
)

// AutofixServiceImpl implements the AutofixService interface.
type AutofixServiceImpl struct {
	violations  secondary.ViolationSource
	histories   secondary.HistoryRepository
	scores      secondary.ScoreOracle
	mutations   secondary.MutationOracle
	catalog     *fix.Catalog
	locks       *BatchLocks
	logger      *zap.Logger
	parallelism int
}

// NewAutofixService creates a new AutofixService with injected dependencies.
// parallelism bounds how many items of one batch mutate concurrently;
// values below 1 are treated as sequential execution.
func NewAutofixService(
	violations secondary.ViolationSource,
	histories secondary.HistoryRepository,
	scores secondary.ScoreOracle,
	mutations secondary.MutationOracle,
	catalog *fix.Catalog,
	locks *BatchLocks,
	logger *zap.Logger,
	parallelism int,
) *AutofixServiceImpl {
	if parallelism < 1 {
		parallelism = 1
	}
	return &AutofixServiceImpl{
		violations:  violations,
		histories:   histories,
		scores:      scores,
		mutations:   mutations,
		catalog:     catalog,
		locks:       locks,
		logger:      logger,
		parallelism: parallelism,
	}
}

// plannedItem pairs a resolved violation with its planned fix.
type plannedItem struct {
	violation *secondary.ViolationRecord
	op        fix.FixOperation
}

// resolveAndPlan resolves every requested violation id and plans its fix.
// All-or-nothing: any unresolvable, foreign, or already-fixed id fails
// the whole call with a VALIDATION fault naming the offending ids, and
// any id without an applicable catalog handler fails with UNSUPPORTED_FIX.
// Items come back in the stable order of the input id sequence.
func (s *AutofixServiceImpl) resolveAndPlan(ctx context.Context, projectID string, violationIDs []string, opts fix.PlanOptions) ([]plannedItem, error) {
	if projectID == "" {
		return nil, faults.New(faults.CodeValidation, "project id is required")
	}
	if len(violationIDs) == 0 {
		return nil, faults.New(faults.CodeValidation, "no violation ids provided")
	}

	seen := make(map[string]struct{}, len(violationIDs))
	for _, id := range violationIDs {
		if _, dup := seen[id]; dup {
			return nil, faults.New(faults.CodeValidation, "duplicate violation ids in request").WithIDs(id)
		}
		seen[id] = struct{}{}
	}

	var (
		unresolvable []string
		alreadyFixed []string
		resolved     = make([]*secondary.ViolationRecord, 0, len(violationIDs))
	)
	for _, id := range violationIDs {
		record, err := s.violations.GetByID(ctx, projectID, id)
		if err != nil {
			if faults.CodeOf(err) == faults.CodeNotFound {
				unresolvable = append(unresolvable, id)
				continue
			}
			return nil, fmt.Errorf("failed to resolve violation %s: %w", id, err)
		}
		if record.Fixed {
			alreadyFixed = append(alreadyFixed, id)
			continue
		}
		resolved = append(resolved, record)
	}

	if len(unresolvable) > 0 {
		return nil, faults.New(faults.CodeValidation,
			"violations not found in project").WithIDs(unresolvable...)
	}
	if len(alreadyFixed) > 0 {
		return nil, faults.New(faults.CodeValidation,
			"violations already fixed").WithIDs(alreadyFixed...)
	}

	planned := make([]plannedItem, 0, len(resolved))
	for _, record := range resolved {
		v := toViolation(record)

		handler, err := s.catalog.Lookup(v.Category, v.Type)
		if err != nil {
			return nil, faults.AsFault(err).WithIDs(record.ID)
		}
		if !handler.Applies(v) {
			return nil, faults.Newf(faults.CodeUnsupportedFix,
				"fix (%s, %s) does not apply to the node's current shape", v.Category, v.Type).WithIDs(record.ID)
		}

		op, err := handler.Plan(v, v.Snapshot, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to plan fix for violation %s: %w", record.ID, err)
		}

		planned = append(planned, plannedItem{violation: record, op: op})
	}

	return planned, nil
}

func toViolation(record *secondary.ViolationRecord) fix.Violation {
	return fix.Violation{
		ID:        record.ID,
		ProjectID: record.ProjectID,
		Category:  fix.Category(record.Category),
		Type:      fix.Type(record.Type),
		NodeID:    record.NodeID,
		NodeName:  record.NodeName,
		Snapshot:  record.Snapshot,
		Fixed:     record.Fixed,
	}
}

// Ensure AutofixServiceImpl implements the interface
var _ primary.AutofixService = (*AutofixServiceImpl)(nil)
