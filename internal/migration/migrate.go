package migration

import (
	"context"

	"bearpath/internal/errors"

	"github.com/jmoiron/sqlx"
)

// MigrationRunner handles database schema migrations
type MigrationRunner struct {
	version string
}

// NewRunner creates a new migration runner
func NewRunner() *MigrationRunner {
	return &MigrationRunner{version: "1.0.0"}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createRosterTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create roster_rows table")
	}
	if err := r.createRosterAuditTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create roster_audit table")
	}
	if err := r.createPhoneLogTable(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create phone_log table")
	}
	if err := r.createIndexes(ctx, db); err != nil {
		return errors.Wrap(err, "failed to create indexes")
	}
	return nil
}

func (r *MigrationRunner) createRosterTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS roster_rows (
			identifier VARCHAR(100) PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			status VARCHAR(100) NOT NULL DEFAULT '',
			weeks_on_list VARCHAR(20) NOT NULL DEFAULT '',
			notes TEXT NOT NULL DEFAULT '',
			first_seen TIMESTAMP WITH TIME ZONE,
			last_seen TIMESTAMP WITH TIME ZONE,
			this_week BOOLEAN NOT NULL DEFAULT false,
			position INTEGER NOT NULL
		)
	`)
	return err
}

func (r *MigrationRunner) createRosterAuditTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS roster_audit (
			id SERIAL PRIMARY KEY,
			message TEXT NOT NULL,
			row_count INTEGER NOT NULL,
			saved_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createPhoneLogTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS phone_log (
			id UUID PRIMARY KEY,
			call_date VARCHAR(10) NOT NULL DEFAULT '',
			taken_by TEXT NOT NULL DEFAULT '',
			property TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			caller_name TEXT NOT NULL DEFAULT '',
			caller_phone TEXT NOT NULL DEFAULT '',
			caller_email TEXT NOT NULL DEFAULT '',
			problem TEXT NOT NULL DEFAULT '',
			needed VARCHAR(50) NOT NULL DEFAULT '',
			done BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`)
	return err
}

func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) error {
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_roster_rows_status ON roster_rows(status)`,
		`CREATE INDEX IF NOT EXISTS idx_roster_rows_position ON roster_rows(position)`,
		`CREATE INDEX IF NOT EXISTS idx_phone_log_call_date ON phone_log(call_date)`,
	}
	for _, idx := range indexes {
		if _, err := db.ExecContext(ctx, idx); err != nil {
			return err
		}
	}
	return nil
}
