// Package table implements the ordered-column tabular model that the
// conversion pipeline threads through each stage. Cells hold string,
// float64, time.Time or nil values.
package table

import (
	"strings"

	"github.com/statementkit/csv2sheet/pkg/errors"
)

// Table is an ordered sequence of named columns by an ordered sequence of
// rows. Column names are unique and their order is significant.
type Table struct {
	cols []string
	rows [][]interface{}
}

// New creates a table with the given column names and no rows.
func New(cols []string) *Table {
	return &Table{cols: append([]string(nil), cols...)}
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.cols...)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.cols)
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.rows)
}

// Cell returns the value at the given row and column.
func (t *Table) Cell(row, col int) interface{} {
	return t.rows[row][col]
}

// SetCell sets the value at the given row and column.
func (t *Table) SetCell(row, col int, v interface{}) {
	t.rows[row][col] = v
}

// AppendRow adds a data row. Short rows are padded with empty strings so
// every row spans all columns.
func (t *Table) AppendRow(row []interface{}) {
	padded := make([]interface{}, len(t.cols))
	for i := range padded {
		if i < len(row) {
			padded[i] = row[i]
		} else {
			padded[i] = ""
		}
	}
	t.rows = append(t.rows, padded)
}

// Lookup resolves a column reference against the current column order.
func (t *Table) Lookup(r ColumnRef) (int, bool) {
	if r.ByIndex() {
		if r.index < 0 || r.index >= len(t.cols) {
			return 0, false
		}
		return r.index, true
	}
	for i, name := range t.cols {
		if name == r.name {
			return i, true
		}
	}
	return 0, false
}

// AddColumn appends a new column filled with empty strings and returns its
// index.
func (t *Table) AddColumn(name string) int {
	t.cols = append(t.cols, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], "")
	}
	return len(t.cols) - 1
}

// RenamePair maps an existing column, by name or index, to a new name.
type RenamePair struct {
	Old ColumnRef
	New string
}

// Rename renames columns in place. Column order and count are unchanged.
// Every old reference must resolve; failures are collected into one error.
func (t *Table) Rename(pairs []RenamePair) error {
	var missing []string
	for _, p := range pairs {
		i, ok := t.Lookup(p.Old)
		if !ok {
			missing = append(missing, p.Old.String())
			continue
		}
		t.cols[i] = p.New
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrorTypeColumn,
			"'%s': cannot rename: column(s) not CSV file", strings.Join(missing, "', '"))
	}
	return nil
}

// Delete removes the referenced columns. All references are resolved before
// anything is removed; if any fail, nothing is deleted and the error lists
// every unresolved reference.
func (t *Table) Delete(refs []ColumnRef) error {
	drop := make(map[int]bool, len(refs))
	var missing []string
	for _, r := range refs {
		i, ok := t.Lookup(r)
		if !ok {
			missing = append(missing, r.String())
			continue
		}
		drop[i] = true
	}
	if len(missing) > 0 {
		return errors.Newf(errors.ErrorTypeColumn,
			"'%s': cannot delete: column(s) not CSV file", strings.Join(missing, "', '"))
	}

	cols := t.cols[:0:0]
	for i, name := range t.cols {
		if !drop[i] {
			cols = append(cols, name)
		}
	}
	for ri, row := range t.rows {
		kept := row[:0:0]
		for i, v := range row {
			if !drop[i] {
				kept = append(kept, v)
			}
		}
		t.rows[ri] = kept
	}
	t.cols = cols
	return nil
}
