package reconcile

import (
	"sort"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/tabular"
)

// Accumulate folds a freshly produced table into the output of earlier
// runs.
//
// The tables must agree on their significant columns first: with a
// non-empty whitelist those are the whitelisted names present in each
// table, otherwise every column counts. A mismatch fails with
// SchemaIncompatibleError and no merge is attempted.
//
// The result keeps the prior table's rows in their original order. For
// patients present in both tables the fresh values replace the prior ones
// for every column the fresh table carries; prior-only columns keep their
// old values. Patients only in the fresh table are appended after all
// prior rows, in fresh order. Columns are the prior columns followed by
// fresh-only columns.
func Accumulate(prior, fresh *tabular.Table, keyColumn string, whitelist []string) (*tabular.Table, *AccumulateStats, error) {
	if err := compatible(prior, fresh, whitelist); err != nil {
		return nil, nil, err
	}

	priorIdx, err := indexKeys(prior, keyColumn, DatasetPrior)
	if err != nil {
		return nil, nil, err
	}
	freshIdx, err := indexKeys(fresh, keyColumn, DatasetFresh)
	if err != nil {
		return nil, nil, err
	}

	columns := unionColumns(prior.Columns(), fresh.Columns())
	out, err := tabular.New(columns...)
	if err != nil {
		return nil, nil, err
	}

	stats := &AccumulateStats{}

	for _, key := range priorIdx.keys {
		prow := priorIdx.row(key)
		frow := freshIdx.row(key)
		if frow >= 0 {
			stats.Updated++
		} else {
			stats.Carried++
		}

		cells := make([]tabular.Value, 0, len(columns))
		for _, col := range columns {
			if frow >= 0 && fresh.HasColumn(col) {
				cells = append(cells, fresh.Value(frow, col))
				continue
			}
			cells = append(cells, prior.Value(prow, col))
		}
		if err := out.AppendRow(cells...); err != nil {
			return nil, nil, err
		}
	}

	for _, key := range freshIdx.keys {
		if priorIdx.has(key) {
			continue
		}
		stats.Added++
		frow := freshIdx.row(key)

		cells := make([]tabular.Value, 0, len(columns))
		for _, col := range columns {
			cells = append(cells, fresh.Value(frow, col))
		}
		if err := out.AppendRow(cells...); err != nil {
			return nil, nil, err
		}
	}

	return out, stats, nil
}

// compatible enforces the schema gate between a prior output and a fresh
// table.
func compatible(prior, fresh *tabular.Table, whitelist []string) error {
	priorSet := significantColumns(prior.Columns(), whitelist)
	freshSet := significantColumns(fresh.Columns(), whitelist)

	var missing, unexpected []string
	for name := range priorSet {
		if !freshSet[name] {
			missing = append(missing, name)
		}
	}
	for name := range freshSet {
		if !priorSet[name] {
			unexpected = append(unexpected, name)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(unexpected)
	return errors.NewSchemaIncompatibleError(prior.Path(), missing, unexpected)
}

// significantColumns reduces a column list to the set that participates in
// the compatibility check. An empty whitelist makes every column
// significant.
func significantColumns(columns, whitelist []string) map[string]bool {
	set := make(map[string]bool, len(columns))
	if len(whitelist) == 0 {
		for _, c := range columns {
			set[c] = true
		}
		return set
	}

	allowed := make(map[string]bool, len(whitelist))
	for _, c := range whitelist {
		allowed[c] = true
	}
	for _, c := range columns {
		if allowed[c] {
			set[c] = true
		}
	}
	return set
}
