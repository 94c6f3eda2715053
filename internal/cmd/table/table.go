// Package table provides common table formatting utilities for CLI commands.
package table

import (
	"fmt"
	"strconv"

	"github.com/equiref/diverso/pkg/tabular"
)

// Align represents column alignment in tables.
type Align int

const (
	// AlignDefault uses the default alignment (skip).
	AlignDefault Align = iota
	// AlignLeft aligns content to the left.
	AlignLeft
	// AlignCenter centers content.
	AlignCenter
	// AlignRight aligns content to the right.
	AlignRight
)

// Data represents table formatting data to avoid import cycles.
type Data struct {
	Headers         []string   `json:"headers" yaml:"headers"`
	Rows            [][]string `json:"rows" yaml:"rows"`
	ColumnAlignment []Align    `json:"-" yaml:"-"`
}

// Preview converts the first limit rows of a patient table to table data.
// A limit of 0 includes every row.
func Preview(t *tabular.Table, limit int) Data {
	if limit <= 0 || limit > t.Len() {
		limit = t.Len()
	}

	rows := make([][]string, 0, limit)
	for i := 0; i < limit; i++ {
		row := make([]string, 0, len(t.Columns()))
		for _, column := range t.Columns() {
			row = append(row, FormatCell(t.Value(i, column)))
		}
		rows = append(rows, row)
	}

	return Data{
		Headers: t.Columns(),
		Rows:    rows,
	}
}

// FormatCell renders one cell for display, with a dash for missing values.
func FormatCell(v tabular.Value) string {
	if v.IsMissing() {
		return "-"
	}
	return v.Format()
}

// FormatCount renders a count with its share of a total, like "3 (25%)".
func FormatCount(count, total int) string {
	if total == 0 {
		return strconv.Itoa(count)
	}
	return fmt.Sprintf("%d (%.0f%%)", count, float64(count)/float64(total)*100)
}
