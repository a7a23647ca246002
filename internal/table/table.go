package table

import (
	"errors"
	"fmt"
)

var (
	// ErrWidthMismatch is returned when a row does not have the header's width
	ErrWidthMismatch = errors.New("row width does not match header")

	// ErrUnknownColumn is returned when a named column is not in the header
	ErrUnknownColumn = errors.New("unknown column")
)

// Table is an ordered header with rows of the same width
type Table struct {
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Record is one row of a Table viewed as an ordered column -> value mapping
type Record struct {
	columns []string
	values  []string
}

// New creates a Table, rejecting rows whose width differs from the header
func New(header []string, rows [][]string) (*Table, error) {
	for i, row := range rows {
		if len(row) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, header has %d: %w", i, len(row), len(header), ErrWidthMismatch)
		}
	}
	if rows == nil {
		rows = make([][]string, 0)
	}
	return &Table{Header: header, Rows: rows}, nil
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of a column in the header, or -1
func (t *Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Record returns row i as a Record
func (t *Table) Record(i int) Record {
	return Record{columns: t.Header, values: t.Rows[i]}
}

// Records returns every row as a Record
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for i := range t.Rows {
		records = append(records, t.Record(i))
	}
	return records
}

// Column returns all values of the named column in row order
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	values := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		values = append(values, row[idx])
	}
	return values, nil
}

// DropColumns returns a copy of the table without the named columns.
// Names that are not present are ignored, so dropping is idempotent.
func (t *Table) DropColumns(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}

	keep := make([]int, 0, len(t.Header))
	header := make([]string, 0, len(t.Header))
	for i, h := range t.Header {
		if drop[h] {
			continue
		}
		keep = append(keep, i)
		header = append(header, h)
	}

	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		out := make([]string, 0, len(keep))
		for _, i := range keep {
			out = append(out, row[i])
		}
		rows = append(rows, out)
	}

	return &Table{Header: header, Rows: rows}
}

// Filter returns a table holding only the rows for which keep returns true
func (t *Table) Filter(keep func(Record) bool) *Table {
	rows := make([][]string, 0, len(t.Rows))
	for i, row := range t.Rows {
		if keep(t.Record(i)) {
			rows = append(rows, row)
		}
	}
	return &Table{Header: t.Header, Rows: rows}
}

// Get returns the value of the named column
func (r Record) Get(name string) (string, bool) {
	for i, c := range r.columns {
		if c == name {
			return r.values[i], true
		}
	}
	return "", false
}

// Columns returns the record's column names in order
func (r Record) Columns() []string {
	return r.columns
}

// Values returns the record's values in column order
func (r Record) Values() []string {
	return r.values
}
