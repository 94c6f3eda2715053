package inspect

import (
	"strconv"

	"github.com/equiref/diverso/internal/cmd/table"
	"github.com/equiref/diverso/pkg/tabular"
)

// Report describes one table for the output formatter.
type Report struct {
	Path    string       `json:"path" yaml:"path"`
	Rows    int          `json:"rows" yaml:"rows"`
	Columns []ColumnStat `json:"columns" yaml:"columns"`
}

// ColumnStat holds per-column cell statistics.
type ColumnStat struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Numbers int    `json:"numbers" yaml:"numbers"`
	Text    int    `json:"text" yaml:"text"`
	Missing int    `json:"missing" yaml:"missing"`
}

// newReport computes column statistics for a loaded table.
func newReport(path string, t *tabular.Table) *Report {
	report := &Report{
		Path:    path,
		Rows:    t.Len(),
		Columns: make([]ColumnStat, 0, len(t.Columns())),
	}

	for _, column := range t.Columns() {
		stat := ColumnStat{Name: column}
		for i := 0; i < t.Len(); i++ {
			switch t.Value(i, column).Kind() {
			case tabular.KindNumber:
				stat.Numbers++
			case tabular.KindString:
				stat.Text++
			default:
				stat.Missing++
			}
		}
		stat.Kind = inferKind(stat)
		report.Columns = append(report.Columns, stat)
	}

	return report
}

// inferKind names the dominant cell kind of a column. A column with any
// text cell is text; an all-missing column is empty.
func inferKind(stat ColumnStat) string {
	switch {
	case stat.Text > 0:
		return "text"
	case stat.Numbers > 0:
		return "number"
	default:
		return "empty"
	}
}

// TableData renders the report with one row per column.
func (r *Report) TableData() table.Data {
	rows := make([][]string, 0, len(r.Columns))
	for _, stat := range r.Columns {
		rows = append(rows, []string{
			stat.Name,
			stat.Kind,
			table.FormatCount(stat.Numbers, r.Rows),
			table.FormatCount(stat.Text, r.Rows),
			table.FormatCount(stat.Missing, r.Rows),
		})
	}

	return table.Data{
		Headers: []string{
			"Column",
			"Kind",
			"Numbers",
			"Text",
			"Missing (" + strconv.Itoa(r.Rows) + " rows)",
		},
		Rows: rows,
	}
}
