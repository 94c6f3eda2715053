package tabular

import (
	"fmt"

	"github.com/equiref/diverso/pkg/errors"
)

// Table is an ordered collection of named columns and rows of values.
type Table struct {
	path    string
	columns []string
	index   map[string]int
	rows    [][]Value
}

// New creates an empty table with the given columns. Column names must be
// unique and non-empty.
func New(columns ...string) (*Table, error) {
	if len(columns) == 0 {
		return nil, errors.NewMalformedTableError("", "table has no columns")
	}
	index := make(map[string]int, len(columns))
	for i, name := range columns {
		if name == "" {
			return nil, &errors.MalformedTableError{
				Message: fmt.Sprintf("column %d has an empty name", i+1),
			}
		}
		if _, ok := index[name]; ok {
			return nil, &errors.MalformedTableError{
				Column:  name,
				Message: "duplicate column name",
			}
		}
		index[name] = i
	}
	return &Table{
		columns: append([]string(nil), columns...),
		index:   index,
	}, nil
}

// Path returns the source file the table was loaded from, when known.
func (t *Table) Path() string {
	return t.path
}

// SetPath records the source file the table was loaded from.
func (t *Table) SetPath(path string) {
	t.path = path
}

// Columns returns the column names in order.
func (t *Table) Columns() []string {
	return append([]string(nil), t.columns...)
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// AppendRow adds a row. The cell count must match the column count.
func (t *Table) AppendRow(cells ...Value) error {
	if len(cells) != len(t.columns) {
		return &errors.MalformedTableError{
			Path:    t.path,
			Row:     len(t.rows) + 1,
			Message: fmt.Sprintf("row has %d cells, want %d", len(cells), len(t.columns)),
		}
	}
	t.rows = append(t.rows, append([]Value(nil), cells...))
	return nil
}

// AppendEmptyRow adds a row of missing values and returns its index.
func (t *Table) AppendEmptyRow() int {
	t.rows = append(t.rows, make([]Value, len(t.columns)))
	return len(t.rows) - 1
}

// Value returns the cell at the given row and column. It returns the
// missing value when the column does not exist.
func (t *Table) Value(row int, column string) Value {
	i, ok := t.index[column]
	if !ok || row < 0 || row >= len(t.rows) {
		return Missing()
	}
	return t.rows[row][i]
}

// Set stores a cell at the given row and column.
func (t *Table) Set(row int, column string, v Value) error {
	i, ok := t.index[column]
	if !ok {
		return fmt.Errorf("unknown column %q", column)
	}
	if row < 0 || row >= len(t.rows) {
		return fmt.Errorf("row %d out of range", row)
	}
	t.rows[row][i] = v
	return nil
}

// RowValues returns a copy of the cells of the given row in column order.
func (t *Table) RowValues(row int) []Value {
	return append([]Value(nil), t.rows[row]...)
}

// AddColumn appends a column and fills it with missing values.
func (t *Table) AddColumn(name string) error {
	if name == "" {
		return &errors.MalformedTableError{Path: t.path, Message: "column has an empty name"}
	}
	if _, ok := t.index[name]; ok {
		return &errors.MalformedTableError{Path: t.path, Column: name, Message: "duplicate column name"}
	}
	t.index[name] = len(t.columns)
	t.columns = append(t.columns, name)
	for i := range t.rows {
		t.rows[i] = append(t.rows[i], Missing())
	}
	return nil
}

// Key returns the canonical string form of the cell in the given key
// column, for use as a patient join key.
func (t *Table) Key(row int, column string) (string, error) {
	if !t.HasColumn(column) {
		return "", &errors.MalformedTableError{
			Path:    t.path,
			Column:  column,
			Message: "column not present",
		}
	}
	v := t.Value(row, column)
	if v.IsMissing() {
		return "", &errors.MalformedTableError{
			Path:    t.path,
			Column:  column,
			Row:     row + 1,
			Message: "patient key is empty",
		}
	}
	return v.Format(), nil
}

// Project returns a new table keeping only the named columns, in the
// table's own column order. Names that do not exist are ignored. Row
// order and the source path carry over.
func (t *Table) Project(columns []string) *Table {
	keep := make(map[string]bool, len(columns))
	for _, name := range columns {
		keep[name] = true
	}

	var kept []string
	for _, name := range t.columns {
		if keep[name] {
			kept = append(kept, name)
		}
	}

	out := &Table{
		path:    t.path,
		columns: kept,
		index:   make(map[string]int, len(kept)),
	}
	for i, name := range kept {
		out.index[name] = i
	}
	for _, row := range t.rows {
		cells := make([]Value, len(kept))
		for i, name := range kept {
			cells[i] = row[t.index[name]]
		}
		out.rows = append(out.rows, cells)
	}
	return out
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := &Table{
		path:    t.path,
		columns: append([]string(nil), t.columns...),
		index:   make(map[string]int, len(t.index)),
	}
	for name, i := range t.index {
		out.index[name] = i
	}
	out.rows = make([][]Value, len(t.rows))
	for i, row := range t.rows {
		out.rows[i] = append([]Value(nil), row...)
	}
	return out
}

// Equal reports whether two tables have the same columns in the same
// order, the same number of rows, and equal cells. Source paths are not
// compared.
func (t *Table) Equal(other *Table) bool {
	if other == nil || len(t.columns) != len(other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, name := range t.columns {
		if other.columns[i] != name {
			return false
		}
	}
	for i, row := range t.rows {
		for j, cell := range row {
			if other.rows[i][j] != cell {
				return false
			}
		}
	}
	return true
}
