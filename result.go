package diverso

import (
	"fmt"
	"time"

	"github.com/equiref/diverso/pkg/reconcile"
)

// Result describes the outcome of one reconciliation run.
type Result struct {
	// RunID identifies the run in logs and reports
	RunID string

	// SurveyRows is the number of data rows read from the survey table
	SurveyRows int

	// RecruitmentRows is the number of data rows read from the
	// recruitment table
	RecruitmentRows int

	// Merge describes the patient merge of the two input tables
	Merge *reconcile.MergeStats

	// Accumulate describes the fold into the prior output; nil when no
	// prior output existed
	Accumulate *reconcile.AccumulateStats

	// Rows and Columns describe the final table
	Rows    int
	Columns []string

	// OutputPath is where the table was (or would have been) written
	OutputPath string

	// BackupPath is where the prior output was copied, empty when no
	// backup was made
	BackupPath string

	// DryRun reports whether the write was skipped
	DryRun bool

	// Duration is the wall clock time of the run
	Duration time.Duration
}

// FirstRun reports whether the run started a fresh output file rather than
// accumulating into a prior one.
func (r *Result) FirstRun() bool {
	return r.Accumulate == nil
}

// Summary returns a one-line description of the run.
func (r *Result) Summary() string {
	verb := "wrote"
	if r.DryRun {
		verb = "would write"
	}
	s := fmt.Sprintf("%s %d patients to %s", verb, r.Rows, r.OutputPath)
	if r.Merge != nil {
		s += "; merged " + r.Merge.Summary()
	}
	if r.Accumulate != nil {
		s += "; accumulated " + r.Accumulate.Summary()
	}
	return s
}
