package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/fatih/color"

	"github.com/example/autofix/internal/ports/primary"
)

// renderPreview prints the planned fixes with their score impact.
func renderPreview(w io.Writer, result *primary.PreviewResult) {
	fmt.Fprintf(w, "Preview: %d fix(es) planned\n\n", result.TotalCount)

	for _, planned := range result.Items {
		fmt.Fprintf(w, "  %s  %s/%s\n", planned.ViolationID, planned.Category, planned.Type)
		fmt.Fprintf(w, "    node: %s\n", planned.NodeID)
		for _, key := range sortedKeys(planned.After) {
			fmt.Fprintf(w, "    %s: %v -> %v\n", key, planned.Before[key], planned.After[key])
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-20s %.1f\n", "Current score:", result.ScoreImpact.Current)
	fmt.Fprintf(w, "  %-20s %.1f\n", "Estimated score:", result.ScoreImpact.Estimated)
	fmt.Fprintf(w, "  %-20s %+.1f\n", "Improvement:", result.ScoreImpact.Improvement)
	fmt.Fprintf(w, "  %-20s %dms\n", "Estimated duration:", result.EstimatedMillis)
}

// renderExecute prints per-item outcomes and the batch summary.
func renderExecute(w io.Writer, result *primary.ExecuteResult) {
	for _, item := range result.Items {
		if item.Status == "COMPLETED" {
			fmt.Fprintf(w, "%s %s  %s/%s on %s\n",
				okMark(), item.ViolationID, item.Category, item.Type, item.NodeID)
			continue
		}
		fmt.Fprintf(w, "%s %s  %s/%s on %s\n",
			failMark(), item.ViolationID, item.Category, item.Type, item.NodeID)
		fmt.Fprintf(w, "    %s\n", item.Error)
	}

	fmt.Fprintln(w)
	if result.Canceled {
		fmt.Fprintln(w, "Batch canceled before all items were attempted.")
	}
	fmt.Fprintf(w, "Batch %s: %d succeeded, %d failed (%d total)\n",
		result.HistoryID, result.SuccessCount, result.FailedCount, result.TotalCount)
}

// renderRollback prints one block per rolled-back batch.
func renderRollback(w io.Writer, outcomes []*primary.RollbackOutcome) {
	for _, out := range outcomes {
		if out.Success {
			fmt.Fprintf(w, "%s %s  reverted %d item(s)\n", okMark(), out.HistoryID, out.RevertedCount)
			continue
		}
		fmt.Fprintf(w, "%s %s  %s\n", failMark(), out.HistoryID, out.Error)
		for _, failed := range out.FailedItems {
			fmt.Fprintf(w, "    %s (node %s): %s\n", failed.ViolationID, failed.NodeID, failed.Error)
		}
	}
}

// renderHistory prints the batch table, newest first.
func renderHistory(w io.Writer, entries []*primary.HistoryEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No batches recorded.")
		return
	}

	fmt.Fprintf(w, "%-38s %-12s %-12s %-8s %-8s %s\n",
		"ID", "STATUS", "KIND", "FIXED", "DELTA", "EXECUTED")
	for _, entry := range entries {
		delta := "-"
		if entry.AfterScore != nil {
			delta = fmt.Sprintf("%+.1f", entry.ScoreDelta)
		}
		fmt.Fprintf(w, "%-38s %-12s %-12s %-8s %-8s %s\n",
			entry.ID, entry.Status, entry.BatchKind,
			fmt.Sprintf("%d/%d", len(entry.FixedViolationIDs), len(entry.ViolationIDs)),
			delta, entry.ExecutedAt)
	}
}

func okMark() string {
	return color.New(color.FgGreen).Sprint("✓")
}

func failMark() string {
	return color.New(color.FgRed).Sprint("✗")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
