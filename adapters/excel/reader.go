// Package excel reads Miracle and spreadsheet exports (XLSX or CSV) into
// the raw table shape the import pipeline consumes.
package excel

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bearpath/domain/tabular"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV export files.
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewDataReader creates a reader for the given file; the extension picks
// the format, anything that is not .csv is treated as a workbook.
func NewDataReader(filePath string) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &DataReader{filePath: filePath, fileType: fileType}
}

// ReadTable reads the file into a raw header+records table.
func (r *DataReader) ReadTable() (tabular.RawTable, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return tabular.RawTable{}, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSV()
	case "xlsx":
		return r.readWorkbook()
	default:
		return tabular.RawTable{}, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *DataReader) readCSV() (tabular.RawTable, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return tabular.RawTable{}, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	// Miracle exports are occasionally ragged; the importer pads short rows.
	reader.FieldsPerRecord = -1

	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return tabular.RawTable{}, fmt.Errorf("failed to read CSV file: %w", err)
	}
	log.Printf("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.toTable(rows)
}

func (r *DataReader) readWorkbook() (tabular.RawTable, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return tabular.RawTable{}, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return tabular.RawTable{}, fmt.Errorf("Excel file has no sheets")
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return tabular.RawTable{}, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	log.Printf("[DataReader] Sheet %q read in %.2fms (%d rows)",
		sheets[0], float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.toTable(rows)
}

// toTable splits raw rows into header and records, trimming header cells.
func (r *DataReader) toTable(rows [][]string) (tabular.RawTable, error) {
	if len(rows) == 0 {
		return tabular.RawTable{}, fmt.Errorf("%s file must have at least a header row", strings.ToUpper(r.fileType))
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	log.Printf("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(rows)-1)

	return tabular.RawTable{
		Headers: headers,
		Records: rows[1:],
	}, nil
}
