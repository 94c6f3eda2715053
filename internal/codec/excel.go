package codec

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// excelCodec reads and writes Excel workbooks. Only the first sheet takes
// part; further sheets are ignored on read and never produced on write.
type excelCodec struct{}

func (excelCodec) Read(path string) (*tabular.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, errors.NewSourceReadError(path, "workbook has no sheets", nil)
	}

	records, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}
	// The workbook format drops trailing empty cells, so short rows are
	// padded rather than rejected.
	return tableFromRecords(path, records, true)
}

func (excelCodec) Write(path string, t *tabular.Table) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	columns := t.Columns()

	header := make([]any, 0, len(columns))
	for _, name := range columns {
		header = append(header, name)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return errors.WrapIO("write", path, err)
	}

	for i := 0; i < t.Len(); i++ {
		cells := make([]any, 0, len(columns))
		for _, name := range columns {
			cells = append(cells, excelCell(t.Value(i, name)))
		}
		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.WrapIO("write", path, err)
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return errors.WrapIO("write", path, err)
		}
	}

	return writeAtomic(path, func(w io.Writer) error {
		return f.Write(w)
	})
}

// excelCell maps a table value onto the cell type excelize expects:
// numbers stay numeric, missing cells stay empty.
func excelCell(v tabular.Value) any {
	if v.IsMissing() {
		return nil
	}
	if n, ok := v.AsNumber(); ok {
		return n
	}
	return v.Format()
}
