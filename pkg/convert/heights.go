package convert

import (
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// Height plausibility range in centimeters. Values outside (0, MaxHeightCm]
// fail conversion.
const (
	MaxHeightCm = 300.0

	cmPerMeter = 100.0
)

// Heights converts a centimeter height column to meters and returns the
// converted table, leaving the input untouched.
//
// Missing cells pass through unchanged. Every other cell must hold a number
// inside the plausibility range, else conversion stops at the first
// offending row with an ImplausibleHeightError naming the patient and the
// raw value. Nothing marks a table as already converted, so callers must
// apply this exactly once per dataset.
func Heights(t *tabular.Table, column, keyColumn string) (*tabular.Table, error) {
	if !t.HasColumn(column) {
		return nil, &errors.MalformedTableError{
			Path:    t.Path(),
			Column:  column,
			Message: "height column not present",
		}
	}
	if !t.HasColumn(keyColumn) {
		return nil, &errors.MalformedTableError{
			Path:    t.Path(),
			Column:  keyColumn,
			Message: "patient key column not present",
		}
	}

	out := t.Clone()
	for i := 0; i < t.Len(); i++ {
		v := t.Value(i, column)
		if v.IsMissing() {
			continue
		}

		n, ok := v.AsNumber()
		if !ok || n <= 0 || n > MaxHeightCm {
			key, err := t.Key(i, keyColumn)
			if err != nil {
				return nil, err
			}
			return nil, errors.NewImplausibleHeightError(key, column, v.Format())
		}

		if err := out.Set(i, column, tabular.Number(n/cmPerMeter)); err != nil {
			return nil, err
		}
	}
	return out, nil
}
