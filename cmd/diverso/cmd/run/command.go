// Package run implements the run command, which executes one full
// reconciliation: merge the survey and recruitment tables, convert
// heights, and fold the result into the output file.
package run

import (
	"github.com/spf13/cobra"

	"github.com/equiref/diverso/internal/appcontext"
)

// Flags holds the run command's flag values.
type Flags struct {
	Survey        string
	Recruitment   string
	Output        string
	Profile       string
	PatientColumn string
	HeightColumn  string
	Whitelist     []string
	DryRun        bool
	NoBackup      bool
	LogFile       string
}

// NewCommand creates the run command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var flags *Flags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Merge the study tables into the output file",
		Long: `Run executes one reconciliation.

The survey and recruitment tables are merged into one row per patient,
with survey values winning conflicts. Heights are converted from
centimeters to meters. If the output file already exists, it is treated
as the result of earlier runs: its rows are updated in place, new
patients are appended, and a backup copy of the previous file is kept
next to it.

Any error (an unreadable input, a duplicated patient, an implausible
height, a column set that no longer matches the output file) aborts the
run before anything is written.`,
		Example: `  diverso run --survey survey.xlsx --recruitment recruitment.xlsx --output merged.xlsx
  diverso run -s survey.csv -r recruitment.csv --output out.csv -c pat_id -c pat_height
  diverso run --profile study.yaml --dry-run`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ExecuteRun(cmd, app, flags)
		},
	}

	flags = addRunFlags(cmd)

	return cmd
}

// addRunFlags registers the run command's flags and returns the struct
// their values land in.
func addRunFlags(cmd *cobra.Command) *Flags {
	flags := &Flags{}

	cmd.Flags().StringVarP(&flags.Survey, "survey", "s", "", "path to the survey table (csv, tsv, or xlsx)")
	cmd.Flags().StringVarP(&flags.Recruitment, "recruitment", "r", "", "path to the recruitment table (csv, tsv, or xlsx)")
	cmd.Flags().StringVar(&flags.Output, "output", "", "path of the accumulated output file")
	cmd.Flags().StringVar(&flags.Profile, "profile", "", "YAML profile with paths and column settings")
	cmd.Flags().StringVar(&flags.PatientColumn, "patient-column", "", "column holding the patient identifier (default pat_id)")
	cmd.Flags().StringVar(&flags.HeightColumn, "height-column", "", "centimeter height column to convert (default pat_height)")
	cmd.Flags().StringArrayVarP(&flags.Whitelist, "whitelist", "c", nil, "column to keep in the output; repeat for each column")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "compute and report the result without writing anything")
	cmd.Flags().BoolVar(&flags.NoBackup, "no-backup", false, "do not keep a backup copy of the previous output file")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", "", "run log location (default <output>.log next to the output file)")

	return flags
}
