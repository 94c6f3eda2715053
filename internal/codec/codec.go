// Package codec reads and writes patient tables in the supported file
// formats. The format is chosen by file extension: comma and tab separated
// text and Excel workbooks. Writers go through a temporary file in the
// target directory and rename into place, so a destination file is never
// observed half written.
package codec

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// ErrUnsupportedFormat reports a path whose extension maps to no codec.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extensions returns the supported file extensions in display order.
func Extensions() []string {
	return []string{".csv", ".tsv", ".xlsx"}
}

// Supported reports whether the file at path can be read and written.
func Supported(path string) bool {
	_, err := ForPath(path)
	return err == nil
}

// ForPath returns the codec handling the file at path, chosen by
// extension.
func ForPath(path string) (tabular.ReadWriter, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		return textCodec{comma: ','}, nil
	case ".tsv":
		return textCodec{comma: '\t'}, nil
	case ".xlsx":
		return excelCodec{}, nil
	default:
		return nil, fmt.Errorf("%w %q (supported: %s)",
			ErrUnsupportedFormat, ext, strings.Join(Extensions(), ", "))
	}
}

// New returns a ReadWriter that selects the codec from the path extension
// on every call, so each file of a run may use a different format.
func New() tabular.ReadWriter {
	return auto{}
}

type auto struct{}

func (auto) Read(path string) (*tabular.Table, error) {
	c, err := ForPath(path)
	if err != nil {
		return nil, errors.WrapSourceRead(path, err)
	}
	return c.Read(path)
}

func (auto) Write(path string, t *tabular.Table) error {
	c, err := ForPath(path)
	if err != nil {
		return errors.WrapIO("write", path, err)
	}
	return c.Write(path, t)
}
