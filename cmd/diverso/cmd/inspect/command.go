// Package inspect implements the inspect command, which loads a single
// table and reports its schema and per-column statistics.
package inspect

import (
	"github.com/spf13/cobra"

	"github.com/equiref/diverso/internal/appcontext"
	"github.com/equiref/diverso/internal/cmd/output"
	"github.com/equiref/diverso/internal/cmd/table"
	"github.com/equiref/diverso/internal/codec"
)

// NewCommand creates the inspect command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	var preview int

	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show the schema and column statistics of a table",
		Long: `Inspect loads one table (csv, tsv, or xlsx) and reports its shape:
row count, columns in order, and per-column counts of numeric, text,
and missing cells with the inferred column kind.

This is useful for checking an export before running a reconciliation,
or for looking at what an earlier run accumulated.`,
		Example: `  diverso inspect survey.xlsx
  diverso inspect out.csv --preview 5
  diverso inspect recruitment.csv -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			tbl, err := codec.New().Read(path)
			if err != nil {
				return err
			}

			app.Logger().Debug().
				Str("path", path).
				Int("rows", tbl.Len()).
				Int("columns", len(tbl.Columns())).
				Msg("Table loaded for inspection")

			formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
			if preview > 0 {
				return formatter.Format(cmd.OutOrStdout(), table.Preview(tbl, preview))
			}
			return formatter.Format(cmd.OutOrStdout(), newReport(path, tbl))
		},
	}

	cmd.Flags().IntVar(&preview, "preview", 0, "show the first N data rows instead of column statistics")

	return cmd
}
