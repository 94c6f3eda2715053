package run

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/equiref/diverso/internal/appcontext"
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/logging"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func newMockApp() *appcontext.Mock {
	return &appcontext.Mock{
		OutputFormatFunc: func() string { return "json" },
		LogConfigFunc: func() *logging.Config {
			return &logging.Config{Level: "info", Format: "json", Output: "discard"}
		},
	}
}

// execute runs the command with the given arguments and returns whatever
// it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewCommand(newMockApp())
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeStudy creates a small survey/recruitment pair and returns the
// three paths used by most tests.
func writeStudy(t *testing.T, dir string) (survey, recruitment, output string) {
	t.Helper()
	survey = filepath.Join(dir, "survey.csv")
	recruitment = filepath.Join(dir, "recruitment.csv")
	output = filepath.Join(dir, "out.csv")
	writeFixture(t, survey, "pat_id,pat_height,sex\n1,170,F\n")
	writeFixture(t, recruitment, "pat_id,weight\n1,60\n2,80\n")
	return survey, recruitment, output
}

func TestRunCommandWritesOutputAndReport(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)

	stdout, err := execute(t, "--survey", survey, "--recruitment", recruitment, "--output", output)
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "pat_id,pat_height,sex,weight\n1,1.7,F,60\n2,,,80\n", string(raw))

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, output, report.Output)
	assert.True(t, report.FirstRun)
	assert.Equal(t, 2, report.Patients)
	assert.Equal(t, []string{"pat_id", "pat_height", "sex", "weight"}, report.Columns)
	assert.Equal(t, 1, report.Matched)
	assert.Equal(t, 1, report.RecruitmentOnly)
	assert.Contains(t, report.Summary, "wrote 2 patients")

	// The run log lands next to the output file.
	logRaw, err := os.ReadFile(filepath.Join(dir, "out.log"))
	require.NoError(t, err)
	assert.Contains(t, string(logRaw), "Logging run to file")
}

func TestRunCommandShortFlagsAndWhitelist(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)

	_, err := execute(t, "-s", survey, "-r", recruitment, "--output", output,
		"-c", "pat_id", "-c", "sex")
	require.NoError(t, err)

	raw, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "pat_id,sex\n1,F\n2,\n", string(raw))
}

func TestRunCommandAccumulatesAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)

	_, err := execute(t, "--survey", survey, "--recruitment", recruitment, "--output", output)
	require.NoError(t, err)

	// Patient 1 grew, patient 2 left the sources, patient 3 joined.
	writeFixture(t, survey, "pat_id,pat_height,sex\n1,172,F\n")
	writeFixture(t, recruitment, "pat_id,weight\n1,60\n3,90\n")

	stdout, err := execute(t, "--survey", survey, "--recruitment", recruitment, "--output", output)
	require.NoError(t, err)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.False(t, report.FirstRun)
	assert.Equal(t, 1, report.Carried)
	assert.Equal(t, 1, report.Updated)
	assert.Equal(t, 1, report.Added)
	assert.Equal(t, filepath.Join(dir, "out.backup.csv"), report.Backup)
	assert.FileExists(t, report.Backup)
}

func TestRunCommandProfile(t *testing.T) {
	dir := t.TempDir()
	writeStudy(t, dir)

	profilePath := filepath.Join(dir, "study.yaml")
	writeFixture(t, profilePath, `survey: survey.csv
recruitment: recruitment.csv
output: out.csv
backup: false
`)

	_, err := execute(t, "--profile", profilePath)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out.csv"))

	// Second run honors the profile's backup setting.
	_, err = execute(t, "--profile", profilePath)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "out.backup.csv"))
}

func TestRunCommandFlagsWinOverProfile(t *testing.T) {
	dir := t.TempDir()
	writeStudy(t, dir)

	profilePath := filepath.Join(dir, "study.yaml")
	writeFixture(t, profilePath, `survey: survey.csv
recruitment: recruitment.csv
output: out.csv
`)

	override := filepath.Join(dir, "elsewhere.csv")
	_, err := execute(t, "--profile", profilePath, "--output", override)
	require.NoError(t, err)

	assert.FileExists(t, override)
	assert.NoFileExists(t, filepath.Join(dir, "out.csv"))
}

func TestRunCommandRequiresPaths(t *testing.T) {
	_, err := execute(t)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Contains(t, err.Error(), "survey")

	dir := t.TempDir()
	survey, _, _ := writeStudy(t, dir)
	_, err = execute(t, "--survey", survey)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "recruitment")
}

func TestRunCommandRejectsUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	_, recruitment, output := writeStudy(t, dir)

	_, err := execute(t, "--survey", filepath.Join(dir, "survey.parquet"),
		"--recruitment", recruitment, "--output", output)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidConfig(err))
	assert.Contains(t, err.Error(), ".parquet")
}

func TestRunCommandDryRun(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)

	stdout, err := execute(t, "--survey", survey, "--recruitment", recruitment,
		"--output", output, "--dry-run")
	require.NoError(t, err)

	assert.NoFileExists(t, output)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	assert.True(t, report.DryRun)
	assert.Contains(t, report.Summary, "would write")
}

func TestRunCommandLogFileFlag(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)
	logPath := filepath.Join(dir, "custom.log")

	_, err := execute(t, "--survey", survey, "--recruitment", recruitment,
		"--output", output, "--log-file", logPath)
	require.NoError(t, err)

	assert.FileExists(t, logPath)
	assert.NoFileExists(t, filepath.Join(dir, "out.log"))
}

func TestRunCommandPipelineErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	survey, recruitment, output := writeStudy(t, dir)
	writeFixture(t, survey, "pat_id,pat_height\n1,170\n1,180\n")

	_, err := execute(t, "--survey", survey, "--recruitment", recruitment, "--output", output)
	require.Error(t, err)
	assert.True(t, errors.IsDuplicatePatient(err))
	assert.NoFileExists(t, output)
}

func TestReportTableData(t *testing.T) {
	report := &Report{
		RunID:    "abc",
		Output:   "out.csv",
		FirstRun: false,
		Patients: 3,
		Columns:  []string{"pat_id", "sex"},
		Carried:  1,
		Updated:  1,
		Added:    1,
		DryRun:   true,
		Duration: "12ms",
	}

	data := report.TableData()
	assert.Equal(t, []string{"Property", "Value"}, data.Headers)

	flat := map[string]string{}
	for _, row := range data.Rows {
		flat[row[0]] = row[1]
	}
	assert.Equal(t, "abc", flat["Run ID"])
	assert.Equal(t, "pat_id, sex", flat["Columns"])
	assert.Equal(t, "1", flat["Added"])
	assert.Equal(t, "yes, nothing written", flat["Dry run"])
}
