package main

import (
	"flag"
	"log"
	"os"

	"bearpath/adapters/excel"
	"bearpath/domain/tabular"
)

// convert normalizes a Miracle export (CSV or XLSX) into the canonical
// CSV layout without touching the database.
func main() {
	inPath := flag.String("in", "", "input file (.csv or .xlsx)")
	outPath := flag.String("out", "", "output CSV file (defaults to stdout)")
	flag.Parse()

	if *inPath == "" {
		log.Fatal("usage: convert -in <file> [-out <file>]")
	}

	raw, err := excel.NewDataReader(*inPath).ReadTable()
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inPath, err)
	}

	result, err := tabular.Import(raw)
	if err != nil {
		log.Fatalf("Failed to import %s: %v", *inPath, err)
	}

	for _, skipped := range result.Skipped {
		log.Printf("Skipped line %d: %s", skipped.Line, skipped.Reason)
	}
	if len(result.Dropped) > 0 {
		log.Printf("Dropped unrecognized columns: %v", result.Dropped)
	}

	out, err := tabular.Export(result.Batch)
	if err != nil {
		log.Fatalf("Failed to export: %v", err)
	}

	if *outPath == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", *outPath, err)
	}
	log.Printf("Wrote %d rows to %s", result.Batch.Len(), *outPath)
}
