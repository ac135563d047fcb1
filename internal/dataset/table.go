package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ColumnKind is the inferred type of a column.
type ColumnKind string

const (
	KindString   ColumnKind = "string"
	KindNumeric  ColumnKind = "numeric"
	KindDateTime ColumnKind = "datetime"
)

// Column describes one column of a loaded table.
type Column struct {
	Name string
	Kind ColumnKind
}

// Schema is the ordered column descriptor produced by the loader.
type Schema struct {
	Columns []Column
}

// Index returns the position of the named column, or -1. Matching is
// case-insensitive and ignores surrounding whitespace.
func (s Schema) Index(name string) int {
	want := strings.ToLower(strings.TrimSpace(name))
	for i, c := range s.Columns {
		if strings.ToLower(strings.TrimSpace(c.Name)) == want {
			return i
		}
	}
	return -1
}

// Names returns the column names in order.
func (s Schema) Names() []string {
	out := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		out[i] = c.Name
	}
	return out
}

// Cell holds one value: the raw string plus any parsed forms. A cell with
// Missing set has no usable value; Raw may still carry a fill marker.
type Cell struct {
	Raw          string
	Num          *float64
	Time         *time.Time
	Missing      bool
	InvalidEmail bool
}

// SetNum replaces the parsed numeric form.
func (c *Cell) SetNum(v float64) {
	c.Num = &v
	c.Missing = false
}

// ClearNum drops the parsed numeric form, leaving the cell null.
func (c *Cell) ClearNum() {
	c.Num = nil
}

// Row is one record of the table.
type Row []Cell

// Table is the in-memory lead dataset. The loader creates it, the cleaner
// mutates it in place, and everything downstream reads it.
type Table struct {
	Source string
	Schema Schema
	Rows   []Row

	// Truncated counts rows that carried more cells than the header; the
	// extra cells are dropped to keep the table uniform width.
	Truncated int
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.Rows) }

// Preview returns up to n rows rendered as strings, for the data summary view.
func (t *Table) Preview(n int) [][]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	out := make([][]string, 0, n)
	for _, row := range t.Rows[:n] {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Raw
		}
		out = append(out, rec)
	}
	return out
}

// Records renders every row as strings, header excluded. Used by exporters.
func (t *Table) Records() [][]string {
	out := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make([]string, len(row))
		for i, c := range row {
			rec[i] = c.Raw
		}
		out = append(out, rec)
	}
	return out
}

// LoadError indicates the input file was missing, unreadable, or not tabular.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string { return fmt.Sprintf("load %s: %v", e.Path, e.Err) }
func (e *LoadError) Unwrap() error { return e.Err }

// ValidationError indicates the loaded schema does not match expectations,
// e.g. a required column is absent.
type ValidationError struct {
	Column Column
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Column.Name != "" {
		return fmt.Sprintf("column %q: %s", e.Column.Name, e.Reason)
	}
	return e.Reason
}

// ErrUnsupported indicates a file format no loader can handle.
var ErrUnsupported = errors.New("unsupported file format")
