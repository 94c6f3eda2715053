package reconcile

import (
	"github.com/equiref/diverso/pkg/tabular"
)

// Patients joins the survey and recruitment tables into one table with a
// single row per patient.
//
// The result contains one row for every patient key found in either input,
// ordered by first appearance scanning the survey first. Columns are the
// survey's columns followed by recruitment-only columns. Where both tables
// carry a value for the same patient and column the survey's value is kept;
// missing survey cells are filled from the recruitment row. A duplicate key
// inside either input fails with DuplicatePatientError before any row is
// produced.
func Patients(survey, recruitment *tabular.Table, keyColumn string) (*tabular.Table, *MergeStats, error) {
	surveyIdx, err := indexKeys(survey, keyColumn, DatasetSurvey)
	if err != nil {
		return nil, nil, err
	}
	recruitIdx, err := indexKeys(recruitment, keyColumn, DatasetRecruitment)
	if err != nil {
		return nil, nil, err
	}

	columns := unionColumns(survey.Columns(), recruitment.Columns())
	out, err := tabular.New(columns...)
	if err != nil {
		return nil, nil, err
	}

	stats := &MergeStats{}

	emit := func(key string) error {
		srow := surveyIdx.row(key)
		rrow := recruitIdx.row(key)
		switch {
		case srow >= 0 && rrow >= 0:
			stats.Matched++
		case srow >= 0:
			stats.SurveyOnly++
		default:
			stats.RecruitmentOnly++
		}

		cells := make([]tabular.Value, 0, len(columns))
		for _, col := range columns {
			sv := tabular.Missing()
			if srow >= 0 {
				sv = survey.Value(srow, col)
			}
			rv := tabular.Missing()
			if rrow >= 0 {
				rv = recruitment.Value(rrow, col)
			}

			v := sv
			if sv.IsMissing() {
				v = rv
			} else if !rv.IsMissing() && rv != sv {
				stats.Conflicts++
			}
			cells = append(cells, v)
		}
		return out.AppendRow(cells...)
	}

	for _, key := range surveyIdx.keys {
		if err := emit(key); err != nil {
			return nil, nil, err
		}
	}
	for _, key := range recruitIdx.keys {
		if surveyIdx.has(key) {
			continue
		}
		if err := emit(key); err != nil {
			return nil, nil, err
		}
	}

	return out, stats, nil
}

// unionColumns returns the primary columns followed by secondary columns
// not already present, preserving both orders.
func unionColumns(primary, secondary []string) []string {
	seen := make(map[string]bool, len(primary))
	out := make([]string, 0, len(primary)+len(secondary))
	for _, c := range primary {
		seen[c] = true
		out = append(out, c)
	}
	for _, c := range secondary {
		if !seen[c] {
			out = append(out, c)
		}
	}
	return out
}
