package grid

import (
	"fmt"
	"reflect"
)

// Dataset is an ordered sequence of rows, each an ordered sequence of cell
// values. A cell index past the end of its row is an absent value.
type Dataset [][]string

// Len returns the number of rows.
func (d Dataset) Len() int {
	return len(d)
}

// Cell returns the text of cell (row, col), or "" when the row or cell is
// absent.
func (d Dataset) Cell(row, col int) string {
	if row < 0 || row >= len(d) {
		return ""
	}
	r := d[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// DatasetFromValues converts arbitrary cell values to a Dataset. nil, typed
// nil pointers and other nil references become the empty string; everything
// else is formatted with fmt.Sprint.
func DatasetFromValues(rows [][]any) Dataset {
	out := make(Dataset, len(rows))
	for i, row := range rows {
		cells := make([]string, len(row))
		for j, v := range row {
			if isNil(v) {
				continue
			}
			if s, ok := v.(string); ok {
				cells[j] = s
				continue
			}
			cells[j] = fmt.Sprint(v)
		}
		out[i] = cells
	}
	return out
}

// isNil reports whether v is nil or a nil value of a nillable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// Column defines one grid column.
type Column struct {
	ID    string
	Label string
	Width float64 // Fixed width (0 = ViewportConfig.CellWidth)
}

// ColumnsFromHeader derives columns from a header row. Identifiers are the
// header labels; blank labels get a positional identifier.
func ColumnsFromHeader(header []string, width float64) []Column {
	cols := make([]Column, len(header))
	for i, label := range header {
		id := label
		if id == "" {
			id = fmt.Sprintf("col%d", i+1)
		}
		cols[i] = Column{ID: id, Label: label, Width: width}
	}
	return cols
}

// ActiveDataset is the dataset the window indexes into: either the whole
// source dataset or the ordered subset of its rows selected by a filter.
type ActiveDataset struct {
	src   Dataset
	index []uint32 // nil means every source row
}

// Len returns the number of active rows.
func (a ActiveDataset) Len() int {
	if a.index == nil {
		return len(a.src)
	}
	return len(a.index)
}

// Filtered reports whether a filter narrowed the dataset.
func (a ActiveDataset) Filtered() bool {
	return a.index != nil
}

// SourceRow maps an active row to its index in the source dataset, or -1.
func (a ActiveDataset) SourceRow(i int) int {
	if i < 0 || i >= a.Len() {
		return -1
	}
	if a.index == nil {
		return i
	}
	return int(a.index[i])
}

// Cell returns the text of cell (i, col) of the active dataset.
func (a ActiveDataset) Cell(i, col int) string {
	return a.src.Cell(a.SourceRow(i), col)
}
