package reconcile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/reconcile"
	"github.com/equiref/diverso/pkg/tabular"
)

// buildTable constructs a table from a header and raw cell values, parsing
// each cell the way the file readers do.
func buildTable(t *testing.T, columns []string, rows ...[]string) *tabular.Table {
	t.Helper()

	tbl, err := tabular.New(columns...)
	require.NoError(t, err)
	for _, row := range rows {
		cells := make([]tabular.Value, 0, len(row))
		for _, raw := range row {
			cells = append(cells, tabular.Parse(raw))
		}
		require.NoError(t, tbl.AppendRow(cells...))
	}
	return tbl
}

// cell returns the formatted content of one cell, "" for missing.
func cell(tbl *tabular.Table, row int, column string) string {
	return tbl.Value(row, column).Format()
}

// keyColumnValues returns the formatted key column of every row in order.
func keyColumnValues(tbl *tabular.Table, column string) []string {
	keys := make([]string, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		keys = append(keys, cell(tbl, i, column))
	}
	return keys
}

func TestPatientsMergeCompleteness(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "pat_height"},
		[]string{"1", "170"},
		[]string{"2", "165"},
	)
	recruitment := buildTable(t, []string{"pat_id", "weight"},
		[]string{"2", "60"},
		[]string{"3", "80"},
	)

	merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	assert.Equal(t, 3, merged.Len())
	assert.Equal(t, []string{"1", "2", "3"}, keyColumnValues(merged, "pat_id"))
	assert.Equal(t, 3, stats.Rows())
}

func TestPatientsSurveyPrecedence(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "F"},
	)
	recruitment := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "M"},
	)

	merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	assert.Equal(t, "F", cell(merged, 0, "sex"))
	assert.Equal(t, 1, stats.Conflicts)
}

func TestPatientsRecruitmentFillsMissingCells(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "sex", "site"},
		[]string{"1", "", "berlin"},
	)
	recruitment := buildTable(t, []string{"pat_id", "sex", "site"},
		[]string{"1", "F", "munich"},
	)

	merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	// The empty survey cell is filled from recruitment and does not count
	// as a conflict; the populated one keeps the survey value and does.
	assert.Equal(t, "F", cell(merged, 0, "sex"))
	assert.Equal(t, "berlin", cell(merged, 0, "site"))
	assert.Equal(t, 1, stats.Conflicts)
}

func TestPatientsEqualValuesAreNotConflicts(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "F"},
	)
	recruitment := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "F"},
	)

	_, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Conflicts)
}

func TestPatientsRowAndColumnOrder(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "pat_height", "sex"},
		[]string{"7", "170", "F"},
		[]string{"2", "180", "M"},
	)
	recruitment := buildTable(t, []string{"pat_id", "weight", "sex"},
		[]string{"9", "70", "F"},
		[]string{"2", "85", "M"},
		[]string{"4", "90", "M"},
	)

	merged, _, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	// Survey rows first in survey order, then recruitment-only rows in
	// recruitment order. Columns follow the survey, then recruitment-only.
	assert.Equal(t, []string{"7", "2", "9", "4"}, keyColumnValues(merged, "pat_id"))
	assert.Equal(t, []string{"pat_id", "pat_height", "sex", "weight"}, merged.Columns())
}

func TestPatientsRecruitmentRowConsumedByMerge(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "pat_height", "sex"},
		[]string{"1", "170", "F"},
	)
	recruitment := buildTable(t, []string{"pat_id", "weight"},
		[]string{"1", "60"},
		[]string{"2", "80"},
	)

	merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	// Patient 1 appears once, carrying columns from both inputs.
	require.Equal(t, 2, merged.Len())
	assert.Equal(t, "170", cell(merged, 0, "pat_height"))
	assert.Equal(t, "F", cell(merged, 0, "sex"))
	assert.Equal(t, "60", cell(merged, 0, "weight"))

	// Patient 2 has no survey row, so survey-only columns stay missing.
	assert.Equal(t, "2", cell(merged, 1, "pat_id"))
	assert.Equal(t, "80", cell(merged, 1, "weight"))
	assert.True(t, merged.Value(1, "pat_height").IsMissing())
	assert.True(t, merged.Value(1, "sex").IsMissing())

	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 0, stats.SurveyOnly)
	assert.Equal(t, 1, stats.RecruitmentOnly)
}

func TestPatientsNumericKeysMatchAcrossFormats(t *testing.T) {
	// Sources frequently disagree on numeric formatting; "1.0" and "1"
	// identify the same patient.
	survey := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1.0", "F"},
	)
	recruitment := buildTable(t, []string{"pat_id", "weight"},
		[]string{"1", "60"},
	)

	merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	require.Equal(t, 1, merged.Len())
	assert.Equal(t, "60", cell(merged, 0, "weight"))
	assert.Equal(t, 1, stats.Matched)
}

func TestPatientsDuplicateKeys(t *testing.T) {
	tests := []struct {
		name    string
		survey  *tabular.Table
		recruit *tabular.Table
		dataset string
	}{
		{
			name: "duplicate in survey",
			survey: buildTable(t, []string{"pat_id", "sex"},
				[]string{"1", "F"},
				[]string{"1", "M"},
			),
			recruit: buildTable(t, []string{"pat_id", "weight"}),
			dataset: "survey",
		},
		{
			name:   "duplicate in recruitment",
			survey: buildTable(t, []string{"pat_id", "sex"}),
			recruit: buildTable(t, []string{"pat_id", "weight"},
				[]string{"2", "70"},
				[]string{"2", "71"},
			),
			dataset: "recruitment",
		},
		{
			name: "duplicate by numeric equivalence",
			survey: buildTable(t, []string{"pat_id", "sex"},
				[]string{"3", "F"},
				[]string{"3.0", "M"},
			),
			recruit: buildTable(t, []string{"pat_id", "weight"}),
			dataset: "survey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			merged, stats, err := reconcile.Patients(tt.survey, tt.recruit, "pat_id")
			require.Error(t, err)
			assert.Nil(t, merged)
			assert.Nil(t, stats)
			assert.True(t, errors.IsDuplicatePatient(err))

			var dupErr *errors.DuplicatePatientError
			require.ErrorAs(t, err, &dupErr)
			assert.Equal(t, tt.dataset, dupErr.Dataset)
		})
	}
}

func TestPatientsKeyColumnValidation(t *testing.T) {
	t.Run("key column absent", func(t *testing.T) {
		survey := buildTable(t, []string{"name", "sex"},
			[]string{"ada", "F"},
		)
		recruitment := buildTable(t, []string{"pat_id", "weight"})

		_, _, err := reconcile.Patients(survey, recruitment, "pat_id")
		require.Error(t, err)
		assert.True(t, errors.IsMalformedTable(err))

		var malErr *errors.MalformedTableError
		require.ErrorAs(t, err, &malErr)
		assert.Equal(t, "pat_id", malErr.Column)
	})

	t.Run("key cell empty", func(t *testing.T) {
		survey := buildTable(t, []string{"pat_id", "sex"},
			[]string{"1", "F"},
			[]string{"", "M"},
		)
		recruitment := buildTable(t, []string{"pat_id", "weight"})

		_, _, err := reconcile.Patients(survey, recruitment, "pat_id")
		require.Error(t, err)
		assert.True(t, errors.IsMalformedTable(err))

		var malErr *errors.MalformedTableError
		require.ErrorAs(t, err, &malErr)
		assert.Equal(t, 2, malErr.Row)
	})
}

func TestPatientsEmptyInputs(t *testing.T) {
	t.Run("empty recruitment", func(t *testing.T) {
		survey := buildTable(t, []string{"pat_id", "sex"},
			[]string{"1", "F"},
		)
		recruitment := buildTable(t, []string{"pat_id", "weight"})

		merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
		require.NoError(t, err)
		assert.Equal(t, 1, merged.Len())
		assert.Equal(t, 1, stats.SurveyOnly)
	})

	t.Run("both empty", func(t *testing.T) {
		survey := buildTable(t, []string{"pat_id", "sex"})
		recruitment := buildTable(t, []string{"pat_id", "weight"})

		merged, stats, err := reconcile.Patients(survey, recruitment, "pat_id")
		require.NoError(t, err)
		assert.Equal(t, 0, merged.Len())
		assert.Equal(t, 0, stats.Rows())
	})
}

func TestPatientsDoesNotMutateInputs(t *testing.T) {
	survey := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "F"},
	)
	recruitment := buildTable(t, []string{"pat_id", "sex"},
		[]string{"1", "M"},
	)
	surveyCopy := survey.Clone()
	recruitCopy := recruitment.Clone()

	_, _, err := reconcile.Patients(survey, recruitment, "pat_id")
	require.NoError(t, err)

	assert.True(t, survey.Equal(surveyCopy))
	assert.True(t, recruitment.Equal(recruitCopy))
}

func TestMergeStatsSummary(t *testing.T) {
	stats := &reconcile.MergeStats{Matched: 2, SurveyOnly: 1, RecruitmentOnly: 3, Conflicts: 4}
	assert.Equal(t, 6, stats.Rows())
	assert.Equal(t, "6 patients (2 matched, 1 survey only, 3 recruitment only), 4 conflicts resolved", stats.Summary())
}
