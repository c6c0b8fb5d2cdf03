// Package ports defines the persistence interfaces the application layer
// depends on. Adapters implement them; services accept the interface.
package ports

import (
	"context"

	"bearpath/domain/core"
	"bearpath/domain/desk"
	"bearpath/domain/phonelog"
	"bearpath/domain/tabular"
)

// RosterRepository persists the waiting-for-parts roster between sessions.
// Save replaces the whole roster snapshot; message is an audit note
// recorded alongside the save ("weekly sync 2026-08-17", "edit T-1", ...).
type RosterRepository interface {
	Load(ctx context.Context) (tabular.Batch, map[string]desk.Tracking, error)
	Save(ctx context.Context, roster tabular.Batch, tracking map[string]desk.Tracking, message string) error
}

// PhoneLogRepository persists logged phone calls.
type PhoneLogRepository interface {
	List(ctx context.Context) ([]phonelog.Entry, error)
	Append(ctx context.Context, entry phonelog.Entry) error
	Update(ctx context.Context, entry phonelog.Entry) error
	Delete(ctx context.Context, id core.EntryID) error
}
