// Package phonelog models the service-desk phone call log: an append-only
// list of calls taken at the desk, exported in the same deterministic CSV
// style as the roster.
package phonelog

import (
	"sort"
	"strings"
	"time"

	"bearpath/domain/core"
)

// NeededOptions is the fixed action-needed vocabulary for a logged call.
var NeededOptions = []string{
	"Estimate",
	"Quote",
	"Parts list",
	"Schedule PM",
	"Check on Parts",
	"Tech Support",
	"Other",
}

// Entry is one logged phone call.
type Entry struct {
	ID          core.EntryID `json:"id" db:"id"`
	Date        string       `json:"date" db:"call_date"` // YYYY-MM-DD
	TakenBy     string       `json:"taken_by" db:"taken_by"`
	Property    string       `json:"company_property" db:"property"`
	Address     string       `json:"address" db:"address"`
	CallerName  string       `json:"caller_name" db:"caller_name"`
	CallerPhone string       `json:"caller_phone" db:"caller_phone"`
	CallerEmail string       `json:"caller_email" db:"caller_email"`
	Problem     string       `json:"problem" db:"problem"`
	Needed      string       `json:"needed" db:"needed"`
	Done        bool         `json:"done" db:"done"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
}

// Normalize trims free-text fields, defaults the call date to today, and
// snaps an out-of-vocabulary action to the first option.
func (e Entry) Normalize(now time.Time) Entry {
	e.TakenBy = strings.TrimSpace(e.TakenBy)
	e.Property = strings.TrimSpace(e.Property)
	e.Address = strings.TrimSpace(e.Address)
	e.CallerName = strings.TrimSpace(e.CallerName)
	e.CallerPhone = strings.TrimSpace(e.CallerPhone)
	e.CallerEmail = strings.TrimSpace(e.CallerEmail)
	e.Problem = strings.TrimSpace(e.Problem)

	e.Date = strings.TrimSpace(e.Date)
	if e.Date == "" {
		e.Date = now.Format("2006-01-02")
	}

	known := false
	for _, opt := range NeededOptions {
		if e.Needed == opt {
			known = true
			break
		}
	}
	if !known {
		e.Needed = NeededOptions[0]
	}
	return e
}

// SortNewestFirst orders entries by call date descending, then creation
// time descending, so the latest call tops the log.
func SortNewestFirst(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
