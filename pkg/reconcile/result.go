package reconcile

import "fmt"

// MergeStats describes the outcome of a patient merge.
type MergeStats struct {
	// Matched counts patients present in both tables
	Matched int

	// SurveyOnly counts patients only present in the survey
	SurveyOnly int

	// RecruitmentOnly counts patients only present in the recruitment table
	RecruitmentOnly int

	// Conflicts counts shared cells where both sides carried a value and
	// the survey's value was kept
	Conflicts int
}

// Rows returns the total number of merged patient rows.
func (s *MergeStats) Rows() int {
	return s.Matched + s.SurveyOnly + s.RecruitmentOnly
}

// Summary returns a human-readable summary of the merge.
func (s *MergeStats) Summary() string {
	return fmt.Sprintf("%d patients (%d matched, %d survey only, %d recruitment only), %d conflicts resolved",
		s.Rows(), s.Matched, s.SurveyOnly, s.RecruitmentOnly, s.Conflicts)
}

// AccumulateStats describes the outcome of folding a fresh table into a
// prior output.
type AccumulateStats struct {
	// Carried counts prior patients untouched by the fresh table
	Carried int

	// Updated counts patients replaced by fresh values
	Updated int

	// Added counts fresh patients appended after the prior rows
	Added int
}

// Rows returns the total number of accumulated patient rows.
func (s *AccumulateStats) Rows() int {
	return s.Carried + s.Updated + s.Added
}

// Summary returns a human-readable summary of the accumulation.
func (s *AccumulateStats) Summary() string {
	return fmt.Sprintf("%d patients (%d carried, %d updated, %d added)",
		s.Rows(), s.Carried, s.Updated, s.Added)
}
