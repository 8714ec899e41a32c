// Package output persists scrape results: the tabular results file and the
// optional per-page markdown archive.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Columns is the fixed column order of the results file.
var Columns = []string{"address", "display_name", "headline", "location", "summary"}

// PersistenceError means the output file could not be written. It is fatal
// for the run, surfaced after all in-memory processing completes.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to persist %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// WriteCSV writes the header plus the given rows to path, overwriting any
// existing file. An empty row set still produces a correctly-headered file.
func WriteCSV(path string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	defer file.Close()

	writer := csv.NewWriter(file)

	if err := writer.Write(Columns); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return &PersistenceError{Path: path, Err: err}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return &PersistenceError{Path: path, Err: err}
	}
	return nil
}
