package reconcile

import (
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// Dataset names a table taking part in reconciliation, used in errors and
// log entries.
type Dataset string

// String returns the string representation of a dataset name.
func (d Dataset) String() string {
	return string(d)
}

// Datasets taking part in reconciliation.
const (
	DatasetSurvey      Dataset = "survey"
	DatasetRecruitment Dataset = "recruitment"
	DatasetPrior       Dataset = "prior output"
	DatasetFresh       Dataset = "fresh output"
)

// keyIndex maps each patient key of a table to its row, preserving first
// appearance order. A key seen twice fails with DuplicatePatientError; a
// missing key column or empty key cell fails with MalformedTableError.
type keyIndex struct {
	rows map[string]int
	keys []string
}

func indexKeys(t *tabular.Table, keyColumn string, dataset Dataset) (*keyIndex, error) {
	if !t.HasColumn(keyColumn) {
		return nil, &errors.MalformedTableError{
			Path:    t.Path(),
			Column:  keyColumn,
			Message: "patient key column not present",
		}
	}

	idx := &keyIndex{rows: make(map[string]int, t.Len())}
	for i := 0; i < t.Len(); i++ {
		key, err := t.Key(i, keyColumn)
		if err != nil {
			return nil, err
		}
		if _, seen := idx.rows[key]; seen {
			return nil, errors.NewDuplicatePatientError(dataset.String(), key)
		}
		idx.rows[key] = i
		idx.keys = append(idx.keys, key)
	}
	return idx, nil
}

// has reports whether the key is present.
func (k *keyIndex) has(key string) bool {
	_, ok := k.rows[key]
	return ok
}

// row returns the row index for a key, or -1 when absent.
func (k *keyIndex) row(key string) int {
	if i, ok := k.rows[key]; ok {
		return i
	}
	return -1
}
