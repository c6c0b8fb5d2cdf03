package desk

import (
	"strconv"
	"time"

	"bearpath/domain/tabular"
)

// Tracking holds per-identifier bookkeeping that survives weekly syncs but
// is not part of the canonical export schema.
type Tracking struct {
	FirstSeen time.Time `json:"first_seen"`
	LastSeen  time.Time `json:"last_seen"`
	ThisWeek  bool      `json:"this_week"`
}

// SyncResult is the merged roster plus accounting for the operator toast.
type SyncResult struct {
	Roster      tabular.Batch
	Tracking    map[string]Tracking
	Added       int
	CarriedOver int
	Removed     int
	Retained    int // rows absent from the upload but kept (not Ready)
}

// WeeklySync merges an imported batch into the current roster, keyed by
// identifier.
//
// New identifiers are added. Carry-overs keep status, notes, and contact
// fields unless the upload provides a non-blank value. Rows missing from
// the upload are removed only when their status is Ready; anything still
// waiting stays on the roster with its carry-over flag cleared.
// weeks_on_list is recomputed for every surviving row from its first-seen
// date.
//
// Upload order wins for synced rows; retained absentees follow in their
// existing order.
func WeeklySync(current tabular.Batch, tracking map[string]Tracking, incoming tabular.Batch, asOf time.Time) SyncResult {
	asOf = truncateToDay(asOf)

	inUpload := make(map[string]bool, incoming.Len())
	for _, r := range incoming.Rows() {
		inUpload[r.Identifier] = true
	}

	result := SyncResult{Tracking: make(map[string]Tracking)}
	var rows []tabular.Row

	for _, in := range incoming.Rows() {
		old, existed := current.Find(in.Identifier)
		track := tracking[in.Identifier]
		if track.FirstSeen.IsZero() {
			track.FirstSeen = asOf
		}
		track.LastSeen = asOf
		track.ThisWeek = true

		merged := in
		if existed {
			merged.Name = coalesce(in.Name, old.Name)
			merged.Address = coalesce(in.Address, old.Address)
			merged.Email = coalesce(in.Email, old.Email)
			merged.Status = coalesce(in.Status, old.Status)
			merged.Notes = coalesce(in.Notes, old.Notes)
			result.CarriedOver++
		} else {
			result.Added++
		}
		merged.WeeksOnList = strconv.Itoa(weeksSince(track.FirstSeen, asOf))

		result.Tracking[merged.Identifier] = track
		rows = append(rows, merged)
	}

	for _, old := range current.Rows() {
		if inUpload[old.Identifier] {
			continue
		}
		if old.Status == StatusReady {
			result.Removed++
			continue
		}
		track := tracking[old.Identifier]
		if track.FirstSeen.IsZero() {
			track.FirstSeen = asOf
		}
		track.ThisWeek = false
		old.WeeksOnList = strconv.Itoa(weeksSince(track.FirstSeen, asOf))

		result.Tracking[old.Identifier] = track
		rows = append(rows, old)
		result.Retained++
	}

	result.Roster = tabular.NewBatch(rows)
	return result
}

// RecomputeWeeks rewrites weeks_on_list for every roster row from its
// first-seen date as of the given day. Rows with no tracking keep their
// stored value.
func RecomputeWeeks(roster tabular.Batch, tracking map[string]Tracking, asOf time.Time) tabular.Batch {
	asOf = truncateToDay(asOf)
	rows := roster.Rows()
	for i, r := range rows {
		track, ok := tracking[r.Identifier]
		if !ok || track.FirstSeen.IsZero() {
			continue
		}
		rows[i].WeeksOnList = strconv.Itoa(weeksSince(track.FirstSeen, asOf))
	}
	return tabular.NewBatch(rows)
}

// weeksSince counts elapsed calendar weeks, starting at 1 the week an
// identifier first appears.
func weeksSince(firstSeen, asOf time.Time) int {
	days := int(asOf.Sub(truncateToDay(firstSeen)).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days/7 + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func coalesce(incoming, existing string) string {
	if incoming != "" {
		return incoming
	}
	return existing
}
