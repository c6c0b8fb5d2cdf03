package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"bearpath/domain/desk"
	"bearpath/domain/tabular"
	"bearpath/ports"

	"github.com/jmoiron/sqlx"
)

// rosterRepository implements the RosterRepository interface
type rosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *sqlx.DB) ports.RosterRepository {
	return &rosterRepository{db: db}
}

// rosterRow is the database shape of one roster record plus its tracking
// sidecar. Tracking dates are nullable; the domain treats zero as unset.
type rosterRow struct {
	Identifier  string       `db:"identifier"`
	Name        string       `db:"name"`
	Address     string       `db:"address"`
	Email       string       `db:"email"`
	Status      string       `db:"status"`
	WeeksOnList string       `db:"weeks_on_list"`
	Notes       string       `db:"notes"`
	FirstSeen   sql.NullTime `db:"first_seen"`
	LastSeen    sql.NullTime `db:"last_seen"`
	ThisWeek    bool         `db:"this_week"`
	Position    int          `db:"position"`
}

// Load reads the roster snapshot in stored order.
func (r *rosterRepository) Load(ctx context.Context) (tabular.Batch, map[string]desk.Tracking, error) {
	query := `SELECT identifier, name, address, email, status, weeks_on_list, notes,
		first_seen, last_seen, this_week, position
	FROM roster_rows
	ORDER BY position`

	var dbRows []rosterRow
	if err := r.db.SelectContext(ctx, &dbRows, query); err != nil {
		return tabular.Batch{}, nil, fmt.Errorf("failed to load roster: %w", err)
	}

	rows := make([]tabular.Row, 0, len(dbRows))
	tracking := make(map[string]desk.Tracking, len(dbRows))
	for _, dr := range dbRows {
		rows = append(rows, tabular.Row{
			Identifier:  dr.Identifier,
			Name:        dr.Name,
			Address:     dr.Address,
			Email:       dr.Email,
			Status:      dr.Status,
			WeeksOnList: dr.WeeksOnList,
			Notes:       dr.Notes,
		})
		track := desk.Tracking{ThisWeek: dr.ThisWeek}
		if dr.FirstSeen.Valid {
			track.FirstSeen = dr.FirstSeen.Time
		}
		if dr.LastSeen.Valid {
			track.LastSeen = dr.LastSeen.Time
		}
		tracking[dr.Identifier] = track
	}

	return tabular.NewBatch(rows), tracking, nil
}

// Save replaces the stored roster with the given snapshot and records an
// audit note. The replace runs in one transaction so a failed save never
// leaves a partial roster.
func (r *rosterRepository) Save(ctx context.Context, roster tabular.Batch, tracking map[string]desk.Tracking, message string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM roster_rows`); err != nil {
		return fmt.Errorf("failed to clear roster: %w", err)
	}

	insert := `INSERT INTO roster_rows (
		identifier, name, address, email, status, weeks_on_list, notes,
		first_seen, last_seen, this_week, position
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for i, row := range roster.Rows() {
		track := tracking[row.Identifier]
		firstSeen := sql.NullTime{Time: track.FirstSeen, Valid: !track.FirstSeen.IsZero()}
		lastSeen := sql.NullTime{Time: track.LastSeen, Valid: !track.LastSeen.IsZero()}

		if _, err := tx.ExecContext(ctx, insert,
			row.Identifier, row.Name, row.Address, row.Email, row.Status, row.WeeksOnList, row.Notes,
			firstSeen, lastSeen, track.ThisWeek, i,
		); err != nil {
			return fmt.Errorf("failed to insert roster row %s: %w", row.Identifier, err)
		}
	}

	audit := `INSERT INTO roster_audit (message, row_count) VALUES ($1, $2)`
	if _, err := tx.ExecContext(ctx, audit, message, roster.Len()); err != nil {
		return fmt.Errorf("failed to record audit note: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit roster save: %w", err)
	}
	return nil
}
