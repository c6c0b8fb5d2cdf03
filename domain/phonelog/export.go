package phonelog

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// exportColumns is the fixed call-log export order.
var exportColumns = []string{
	"date", "taken_by", "company_property", "address",
	"caller_name", "caller_phone", "caller_email",
	"problem", "needed", "done",
}

// ExportCSV serializes entries to deterministic CSV in the fixed column
// order. Done renders as Yes/No for the shared-sheet consumers.
func ExportCSV(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, e := range entries {
		done := "No"
		if e.Done {
			done = "Yes"
		}
		record := []string{
			e.Date, e.TakenBy, e.Property, e.Address,
			e.CallerName, e.CallerPhone, e.CallerEmail,
			e.Problem, e.Needed, done,
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write entry %s: %w", e.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
