package codec

import (
	stderrors "errors"
	"strings"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// tableFromRecords assembles a table from decoded raw records. The first
// record is the header; remaining records are data rows. Records whose
// cells are all blank are skipped, as spreadsheet exports often end with
// them. Rows wider than the header always fail. Rows narrower than the
// header fail unless padShort is set, which Excel input needs because the
// workbook format drops trailing empty cells.
func tableFromRecords(path string, records [][]string, padShort bool) (*tabular.Table, error) {
	if len(records) == 0 {
		return nil, errors.NewSourceReadError(path, "no header row", nil)
	}

	header := make([]string, 0, len(records[0]))
	for _, name := range records[0] {
		header = append(header, strings.TrimSpace(name))
	}

	tbl, err := tabular.New(header...)
	if err != nil {
		return nil, attachPath(err, path)
	}
	tbl.SetPath(path)

	for i, record := range records[1:] {
		if blankRecord(record) {
			continue
		}
		if len(record) > len(header) || (len(record) < len(header) && !padShort) {
			return nil, &errors.MalformedTableError{
				Path:    path,
				Row:     i + 1,
				Message: "row does not match header width",
			}
		}

		cells := make([]tabular.Value, 0, len(header))
		for _, raw := range record {
			cells = append(cells, tabular.Parse(raw))
		}
		for len(cells) < len(header) {
			cells = append(cells, tabular.Missing())
		}
		if err := tbl.AppendRow(cells...); err != nil {
			return nil, attachPath(err, path)
		}
	}
	return tbl, nil
}

// blankRecord reports whether every cell of a record is empty or
// whitespace.
func blankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// attachPath stamps the source path onto structural errors raised while
// building the table.
func attachPath(err error, path string) error {
	var malErr *errors.MalformedTableError
	if stderrors.As(err, &malErr) && malErr.Path == "" {
		malErr.Path = path
	}
	return err
}
