// Package batch contains the pure per-item result model for fix batches.
// Item outcomes are plain values collected into a list; the aggregate
// view is derived by a fold over that list, never tracked separately.
package batch

// ItemStatus is the outcome of one attempted item.
type ItemStatus string

const (
	ItemCompleted ItemStatus = "COMPLETED"
	ItemFailed    ItemStatus = "FAILED"
)

// Kind distinguishes single-violation batches from bulk ones.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindBulk       Kind = "bulk"
)

// KindOf derives the batch kind from the number of requested items.
func KindOf(itemCount int) Kind {
	if itemCount == 1 {
		return KindIndividual
	}
	return KindBulk
}

// Summary aggregates item outcomes. Total always equals
// Success + Failed; the reducer admits no third state.
type Summary struct {
	Total   int
	Success int
	Failed  int
}

// Summarize folds item statuses into a Summary.
func Summarize(statuses []ItemStatus) Summary {
	s := Summary{Total: len(statuses)}
	for _, st := range statuses {
		if st == ItemCompleted {
			s.Success++
		} else {
			s.Failed++
		}
	}
	return s
}
