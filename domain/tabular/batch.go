package tabular

import (
	"fmt"

	"bearpath/domain/core"
)

// Batch is an ordered collection of rows produced by one import. Batches
// have value semantics: Edit returns a new Batch and callers re-assign; the
// original is never mutated in place.
type Batch struct {
	rows []Row
}

// NewBatch builds a batch from rows, copying the slice so the caller's
// backing array cannot alias the batch.
func NewBatch(rows []Row) Batch {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return Batch{rows: cp}
}

// Len returns the number of rows.
func (b Batch) Len() int {
	return len(b.rows)
}

// Rows returns a copy of the rows in batch order.
func (b Batch) Rows() []Row {
	cp := make([]Row, len(b.rows))
	copy(cp, b.rows)
	return cp
}

// Find returns the row with the given identifier.
func (b Batch) Find(identifier string) (Row, bool) {
	for _, r := range b.rows {
		if r.Identifier == identifier {
			return r, true
		}
	}
	return Row{}, false
}

// Edit returns a batch with a single field on the matching row replaced.
// All other rows and fields are unchanged; on error the receiver is
// returned untouched.
func (b Batch) Edit(rowID string, field Field, value string) (Batch, error) {
	if _, err := ParseField(string(field)); err != nil {
		return b, err
	}
	for i, r := range b.rows {
		if r.Identifier != rowID {
			continue
		}
		edited, err := r.WithField(field, value)
		if err != nil {
			return b, err
		}
		next := NewBatch(b.rows)
		next.rows[i] = edited
		return next, nil
	}
	return b, fmt.Errorf("%w: %s", core.ErrRowNotFound, rowID)
}
