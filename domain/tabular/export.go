package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// Export serializes a batch snapshot to CSV bytes: UTF-8, comma-delimited,
// header row in canonical column order, RFC 4180 quoting. Exporting the
// same batch state twice yields byte-identical output.
func Export(b Batch) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(CanonicalFields))
	for i, f := range CanonicalFields {
		header[i] = string(f)
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range b.Rows() {
		if err := w.Write(r.Values()); err != nil {
			return nil, fmt.Errorf("failed to write row %s: %w", r.Identifier, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
