// Package export serialises listing results as CSV or XLSX.
package export

import "fmt"

// Table is a rendered listing: a header row and string cells.
// Cells are text unless their column is marked numeric.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
	numeric map[int]bool
}

// NewTable creates an empty table with the given headers
func NewTable(name string, headers ...string) *Table {
	return &Table{Name: name, Headers: headers, Rows: [][]string{}}
}

// Numeric marks the named columns as numbers for typed exports.
// Unknown header names are ignored.
func (t *Table) Numeric(headers ...string) *Table {
	if t.numeric == nil {
		t.numeric = make(map[int]bool, len(headers))
	}
	for _, h := range headers {
		for i, name := range t.Headers {
			if name == h {
				t.numeric[i] = true
			}
		}
	}
	return t
}

// IsNumeric reports whether column i holds numbers
func (t *Table) IsNumeric(i int) bool {
	return t.numeric[i]
}

// Append adds one row. Every row must be as wide as the header.
func (t *Table) Append(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Validate checks that every row matches the header width
func (t *Table) Validate() error {
	if len(t.Headers) == 0 {
		return fmt.Errorf("table %q has no columns", t.Name)
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return fmt.Errorf("table %q row %d has %d cells, want %d", t.Name, i+1, len(row), len(t.Headers))
		}
	}
	return nil
}
