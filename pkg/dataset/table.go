// Package dataset holds the in-memory tabular model the enricher operates on,
// plus the thin CSV read/write collaborator around it.
package dataset

import (
	"fmt"
)

// Required input columns. Their absence is a fatal precondition failure for
// the whole run, not a per-row error.
const (
	ColCompany = "Company"
	ColWebsite = "Website"
)

// Ledger columns added to every table before processing.
const (
	ColDescription = "Description"
	ColUIStatus    = "UI_status"
	ColLastChecked = "Last_checked"
	ColError       = "Error"
)

// LedgerColumns lists the status-tracking columns in output order.
var LedgerColumns = []string{ColDescription, ColUIStatus, ColLastChecked, ColError}

// Table is an ordered set of named columns over string cells. Row identity is
// positional; missing cells read as "".
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(columns []string) *Table {
	t := &Table{}
	for _, c := range columns {
		t.addColumn(c)
	}
	return t
}

func (t *Table) addColumn(name string) {
	if t.index == nil {
		t.index = make(map[string]int)
	}
	if _, ok := t.index[name]; ok {
		return
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adds a row of cells in column order. Short rows are padded.
func (t *Table) AppendRow(cells []string) {
	row := make([]string, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Get returns the cell at (row, column), or "" when the column does not
// exist or the cell was never set.
func (t *Table) Get(row int, column string) string {
	idx, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return ""
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		return ""
	}
	return cells[idx]
}

// Set writes the cell at (row, column). Setting an unknown column is a
// programming error and panics, matching slice index misuse.
func (t *Table) Set(row int, column, value string) {
	idx, ok := t.index[column]
	if !ok {
		panic(fmt.Sprintf("dataset: unknown column %q", column))
	}
	cells := t.rows[row]
	if idx >= len(cells) {
		grown := make([]string, len(t.columns))
		copy(grown, cells)
		t.rows[row] = grown
		cells = grown
	}
	cells[idx] = value
}

// EnsureColumns appends any of the given columns that are missing,
// initialized empty for every row. Running it twice is a no-op: existing
// columns and their values are untouched.
func (t *Table) EnsureColumns(columns []string) {
	for _, c := range columns {
		t.addColumn(c)
	}
}

// RequireColumns verifies the given columns exist, returning an error naming
// the first one missing.
func (t *Table) RequireColumns(columns []string) error {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return fmt.Errorf("required column %q not found in input", c)
		}
	}
	return nil
}

// Project returns a new table holding only the given columns, in the given
// order, for every row. Columns absent from the source are skipped.
func (t *Table) Project(columns []string) *Table {
	var kept []string
	for _, c := range columns {
		if t.HasColumn(c) {
			kept = append(kept, c)
		}
	}
	out := NewTable(kept)
	for i := range t.rows {
		cells := make([]string, len(kept))
		for j, c := range kept {
			cells[j] = t.Get(i, c)
		}
		out.AppendRow(cells)
	}
	return out
}

// Filter returns a new table with the same columns holding only the rows for
// which keep returns true.
func (t *Table) Filter(keep func(row int) bool) *Table {
	out := NewTable(t.columns)
	for i := range t.rows {
		if keep(i) {
			cells := make([]string, len(t.columns))
			for j, c := range t.columns {
				cells[j] = t.Get(i, c)
			}
			out.AppendRow(cells)
		}
	}
	return out
}

// Issues returns the derived problem-rows view: rows where the Error ledger
// column is set, projected to the audit columns.
func (t *Table) Issues() *Table {
	issues := t.Filter(func(row int) bool {
		return t.Get(row, ColError) != ""
	})
	return issues.Project([]string{ColCompany, ColWebsite, ColUIStatus, ColError, ColLastChecked})
}

// Business returns the output view limited to business-relevant columns.
func (t *Table) Business() *Table {
	return t.Project([]string{ColCompany, ColWebsite, ColDescription})
}
