package run

import (
	"strconv"
	"strings"

	"github.com/equiref/diverso"
	"github.com/equiref/diverso/internal/cmd/table"
)

// Report is the run result shaped for the output formatter.
type Report struct {
	RunID           string   `json:"run_id" yaml:"run_id"`
	Output          string   `json:"output" yaml:"output"`
	DryRun          bool     `json:"dry_run" yaml:"dry_run"`
	FirstRun        bool     `json:"first_run" yaml:"first_run"`
	Patients        int      `json:"patients" yaml:"patients"`
	Columns         []string `json:"columns" yaml:"columns"`
	SurveyRows      int      `json:"survey_rows" yaml:"survey_rows"`
	RecruitmentRows int      `json:"recruitment_rows" yaml:"recruitment_rows"`
	Matched         int      `json:"matched" yaml:"matched"`
	SurveyOnly      int      `json:"survey_only" yaml:"survey_only"`
	RecruitmentOnly int      `json:"recruitment_only" yaml:"recruitment_only"`
	Conflicts       int      `json:"conflicts_resolved" yaml:"conflicts_resolved"`
	Carried         int      `json:"carried,omitempty" yaml:"carried,omitempty"`
	Updated         int      `json:"updated,omitempty" yaml:"updated,omitempty"`
	Added           int      `json:"added,omitempty" yaml:"added,omitempty"`
	Backup          string   `json:"backup,omitempty" yaml:"backup,omitempty"`
	Duration        string   `json:"duration" yaml:"duration"`
	Summary         string   `json:"summary" yaml:"summary"`
}

// newReport flattens a pipeline result into a Report.
func newReport(result *diverso.Result) *Report {
	report := &Report{
		RunID:           result.RunID,
		Output:          result.OutputPath,
		DryRun:          result.DryRun,
		FirstRun:        result.FirstRun(),
		Patients:        result.Rows,
		Columns:         result.Columns,
		SurveyRows:      result.SurveyRows,
		RecruitmentRows: result.RecruitmentRows,
		Backup:          result.BackupPath,
		Duration:        result.Duration.String(),
		Summary:         result.Summary(),
	}
	if result.Merge != nil {
		report.Matched = result.Merge.Matched
		report.SurveyOnly = result.Merge.SurveyOnly
		report.RecruitmentOnly = result.Merge.RecruitmentOnly
		report.Conflicts = result.Merge.Conflicts
	}
	if result.Accumulate != nil {
		report.Carried = result.Accumulate.Carried
		report.Updated = result.Accumulate.Updated
		report.Added = result.Accumulate.Added
	}
	return report
}

// TableData renders the report as a property/value table.
func (r *Report) TableData() table.Data {
	rows := [][]string{
		{"Run ID", r.RunID},
		{"Output", r.Output},
		{"Patients", strconv.Itoa(r.Patients)},
		{"Columns", strings.Join(r.Columns, ", ")},
		{"Survey rows", strconv.Itoa(r.SurveyRows)},
		{"Recruitment rows", strconv.Itoa(r.RecruitmentRows)},
		{"Matched", strconv.Itoa(r.Matched)},
		{"Survey only", strconv.Itoa(r.SurveyOnly)},
		{"Recruitment only", strconv.Itoa(r.RecruitmentOnly)},
		{"Conflicts resolved", strconv.Itoa(r.Conflicts)},
	}
	if !r.FirstRun {
		rows = append(rows,
			[]string{"Carried", strconv.Itoa(r.Carried)},
			[]string{"Updated", strconv.Itoa(r.Updated)},
			[]string{"Added", strconv.Itoa(r.Added)},
		)
	}
	if r.Backup != "" {
		rows = append(rows, []string{"Backup", r.Backup})
	}
	if r.DryRun {
		rows = append(rows, []string{"Dry run", "yes, nothing written"})
	}
	rows = append(rows, []string{"Duration", r.Duration})

	return table.Data{
		Headers: []string{"Property", "Value"},
		Rows:    rows,
	}
}
