// Package desk carries the waiting-for-parts roster semantics layered on
// the tabular pipeline: the status vocabulary, display ordering, and the
// weekly sync merge against the Miracle export.
package desk

import (
	"sort"

	"bearpath/domain/tabular"
)

// Status values used by the waiting-for-parts roster.
const (
	StatusBackordered       = "Backordered"
	StatusOrderedRecently   = "Ordered Recently"
	StatusHasTrackingInfo   = "Has Tracking Info"
	StatusUpholstery        = "Upholstery"
	StatusDirectShipped     = "Direct Shipped"
	StatusNeedToEmailVendor = "Need to Email Vendor"
	StatusNeedToEmailTeam   = "Need to Email Team"
	StatusOther             = "Other"
	StatusReady             = "Ready"
)

// StatusOrder is the dashboard display order. Ready sorts last so finished
// work drops to the bottom of the grid.
var StatusOrder = []string{
	StatusBackordered,
	StatusOrderedRecently,
	StatusHasTrackingInfo,
	StatusUpholstery,
	StatusDirectShipped,
	StatusNeedToEmailVendor,
	StatusNeedToEmailTeam,
	StatusOther,
	StatusReady,
}

// StatusColors maps statuses to the chip colors the dashboard renders.
var StatusColors = map[string]string{
	StatusBackordered:       "#3B82F6",
	StatusOrderedRecently:   "#6EE7B7",
	StatusHasTrackingInfo:   "#10B981",
	StatusReady:             "#065F46",
	StatusUpholstery:        "#FB923C",
	StatusDirectShipped:     "#F472B6",
	StatusNeedToEmailVendor: "#8B5CF6",
	StatusNeedToEmailTeam:   "#FCA5A5",
	StatusOther:             "#9CA3AF",
	"":                      "#D1D5DB",
}

// StatusRank returns the sort weight of a status. Unknown statuses land in
// the middle; Ready is forced last regardless of list position.
func StatusRank(status string) int {
	if status == StatusReady {
		return 999
	}
	for i, s := range StatusOrder {
		if s == status {
			return i
		}
	}
	return 500
}

// IsKnownStatus reports whether a status belongs to the fixed vocabulary.
// Imports accept free text; the vocabulary binds the edit surface only.
func IsKnownStatus(status string) bool {
	for _, s := range StatusOrder {
		if s == status {
			return true
		}
	}
	return false
}

// CountByStatus tallies roster rows per known status.
func CountByStatus(b tabular.Batch) map[string]int {
	counts := make(map[string]int, len(StatusOrder))
	for _, s := range StatusOrder {
		counts[s] = 0
	}
	for _, r := range b.Rows() {
		if IsKnownStatus(r.Status) {
			counts[r.Status]++
		}
	}
	return counts
}

// SortForDisplay returns a batch ordered by status rank, then name, then
// identifier. The stored batch order is untouched.
func SortForDisplay(b tabular.Batch) tabular.Batch {
	rows := b.Rows()
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := StatusRank(rows[i].Status), StatusRank(rows[j].Status)
		if ri != rj {
			return ri < rj
		}
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].Identifier < rows[j].Identifier
	})
	return tabular.NewBatch(rows)
}
