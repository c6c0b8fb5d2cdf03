package tabular

import (
	"fmt"
	"strings"

	"bearpath/domain/core"
)

// RawTable is tabular source data as read from a Miracle or spreadsheet
// export: a header row plus string records in arbitrary column order.
type RawTable struct {
	Headers []string
	Records [][]string
}

// SkippedRow records one source row the import dropped, with the 1-based
// data row number for operator display.
type SkippedRow struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ImportResult carries the normalized batch plus per-row skip accounting.
// Skips are reported, never raised: a bad row should not sink the upload.
type ImportResult struct {
	Batch   Batch
	Skipped []SkippedRow
	Dropped []string // source columns with no canonical mapping
}

// Import normalizes a raw table into a batch of canonical rows.
//
// Known source columns are mapped through the synonym table; unrecognized
// columns are dropped and reported. Rows with a blank identifier, and rows
// that repeat an identifier already seen in this batch, are skipped and
// counted. A table in which no column matches any canonical field fails
// with core.ErrNoCanonicalColumns - that is a format mismatch, not bad data.
func Import(raw RawTable) (ImportResult, error) {
	if len(raw.Headers) == 0 {
		return ImportResult{}, fmt.Errorf("import: %w", core.ErrEmptyTable)
	}

	mapping := make(map[int]Field)
	var dropped []string
	for i, h := range raw.Headers {
		f, ok := MatchColumn(h)
		if !ok {
			dropped = append(dropped, strings.TrimSpace(h))
			continue
		}
		// First matching source column wins when two headers map to the
		// same canonical field.
		taken := false
		for _, existing := range mapping {
			if existing == f {
				taken = true
				break
			}
		}
		if taken {
			dropped = append(dropped, strings.TrimSpace(h))
			continue
		}
		mapping[i] = f
	}
	if len(mapping) == 0 {
		return ImportResult{}, fmt.Errorf("import: %w", core.ErrNoCanonicalColumns)
	}

	var (
		rows    []Row
		skipped []SkippedRow
		seen    = make(map[string]bool)
	)
	for n, record := range raw.Records {
		var row Row
		for i, f := range mapping {
			if i >= len(record) {
				continue // ragged row, missing cells stay ""
			}
			row, _ = row.WithField(f, strings.TrimSpace(record[i]))
		}
		line := n + 1
		if row.Identifier == "" {
			skipped = append(skipped, SkippedRow{Line: line, Reason: "blank identifier"})
			continue
		}
		if seen[row.Identifier] {
			skipped = append(skipped, SkippedRow{Line: line, Reason: fmt.Sprintf("duplicate identifier %q", row.Identifier)})
			continue
		}
		seen[row.Identifier] = true
		rows = append(rows, row)
	}

	return ImportResult{
		Batch:   NewBatch(rows),
		Skipped: skipped,
		Dropped: dropped,
	}, nil
}
