// Package ingest loads CSV files into grid datasets.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-theft-auto/grid"
)

var (
	// ErrEmptyInput is returned when the input has no records.
	ErrEmptyInput = errors.New("ingest: empty input")
	// ErrTooManyRows is returned when the input exceeds Options.MaxRows.
	ErrTooManyRows = errors.New("ingest: too many rows")
)

// Options controls CSV parsing.
type Options struct {
	MaxRows  int  // Maximum data rows (0 = unlimited)
	Comma    rune // Field delimiter (0 = ',')
	NoHeader bool // First record is data; columns get positional names
}

// Table is a parsed CSV file.
type Table struct {
	Columns []grid.Column
	Rows    grid.Dataset
}

// Read parses CSV from r. Records may have any number of fields: missing
// cells are absent values and cells past the last column are not shown.
func Read(r io.Reader, opts Options) (Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	var t Table
	var header []string
	widest := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("reading CSV: %w", err)
		}
		if header == nil && !opts.NoHeader {
			header = rec
			continue
		}
		if opts.MaxRows > 0 && len(t.Rows) >= opts.MaxRows {
			return Table{}, fmt.Errorf("%w: limit is %d", ErrTooManyRows, opts.MaxRows)
		}
		widest = max(widest, len(rec))
		t.Rows = append(t.Rows, rec)
	}

	if header == nil && len(t.Rows) == 0 {
		return Table{}, ErrEmptyInput
	}
	if opts.NoHeader {
		header = make([]string, widest)
	}
	t.Columns = grid.ColumnsFromHeader(header, 0)
	if t.Rows == nil {
		t.Rows = grid.Dataset{}
	}
	return t, nil
}

// ReadFile parses the CSV file at path.
func ReadFile(path string, opts Options) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return Table{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := Read(f, opts)
	if err != nil {
		return Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}
