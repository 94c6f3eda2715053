package codec

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// textCodec reads and writes delimiter separated text files.
type textCodec struct {
	comma rune
}

func (c textCodec) Read(path string) (*tabular.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.Comma = c.comma
	r.LazyQuotes = true
	// Width against the header is checked when the table is built, so the
	// error can name the offending row.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}
	return tableFromRecords(path, records, false)
}

func (c textCodec) Write(path string, t *tabular.Table) error {
	return writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		cw.Comma = c.comma

		if err := cw.Write(t.Columns()); err != nil {
			return err
		}
		row := make([]string, len(t.Columns()))
		for i := 0; i < t.Len(); i++ {
			for j, name := range t.Columns() {
				row[j] = t.Value(i, name).Format()
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	})
}

// utf8BOM is the byte order mark Windows tools prepend to UTF-8 text.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText returns the buffer as UTF-8 text. A byte order mark is
// stripped, and buffers that are not valid UTF-8 are decoded as
// Windows-1252, the encoding spreadsheet CSV exports commonly carry.
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}
	return charmap.Windows1252.NewDecoder().Bytes(data)
}
