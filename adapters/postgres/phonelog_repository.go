package postgres

import (
	"context"
	"fmt"

	"bearpath/domain/core"
	"bearpath/domain/phonelog"
	"bearpath/ports"

	"github.com/jmoiron/sqlx"
)

// phoneLogRepository implements the PhoneLogRepository interface
type phoneLogRepository struct {
	db *sqlx.DB
}

// NewPhoneLogRepository creates a new phone log repository
func NewPhoneLogRepository(db *sqlx.DB) ports.PhoneLogRepository {
	return &phoneLogRepository{db: db}
}

// List returns every logged call, newest insert first.
func (r *phoneLogRepository) List(ctx context.Context) ([]phonelog.Entry, error) {
	query := `SELECT id, call_date, taken_by, property, address,
		caller_name, caller_phone, caller_email, problem, needed, done, created_at
	FROM phone_log
	ORDER BY created_at DESC`

	var entries []phonelog.Entry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list phone log: %w", err)
	}
	return entries, nil
}

// Append inserts one logged call.
func (r *phoneLogRepository) Append(ctx context.Context, entry phonelog.Entry) error {
	query := `INSERT INTO phone_log (
		id, call_date, taken_by, property, address,
		caller_name, caller_phone, caller_email, problem, needed, done, created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Date, entry.TakenBy, entry.Property, entry.Address,
		entry.CallerName, entry.CallerPhone, entry.CallerEmail,
		entry.Problem, entry.Needed, entry.Done, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append phone log entry: %w", err)
	}
	return nil
}

// Update rewrites one logged call in place.
func (r *phoneLogRepository) Update(ctx context.Context, entry phonelog.Entry) error {
	query := `UPDATE phone_log SET
		call_date = $2, taken_by = $3, property = $4, address = $5,
		caller_name = $6, caller_phone = $7, caller_email = $8,
		problem = $9, needed = $10, done = $11
	WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Date, entry.TakenBy, entry.Property, entry.Address,
		entry.CallerName, entry.CallerPhone, entry.CallerEmail,
		entry.Problem, entry.Needed, entry.Done,
	)
	if err != nil {
		return fmt.Errorf("failed to update phone log entry: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrEntryNotFound, entry.ID)
	}
	return nil
}

// Delete removes one logged call.
func (r *phoneLogRepository) Delete(ctx context.Context, id core.EntryID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM phone_log WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete phone log entry: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", core.ErrEntryNotFound, id)
	}
	return nil
}
