package diverso

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/equiref/diverso/pkg/constants"
	"github.com/equiref/diverso/pkg/convert"
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/reconcile"
	"github.com/equiref/diverso/pkg/tabular"
)

// Run executes the full reconciliation sequence. Every read happens before
// any write, and the first failure aborts the run with the output file
// untouched.
func (p *pipeline) Run(ctx context.Context) (*Result, error) {
	// Step 0: set context
	if ctx == nil {
		ctx = context.Background()
	}

	started := time.Now()
	result := &Result{
		RunID:      uuid.New().String(),
		OutputPath: p.outputPath,
		DryRun:     p.dryRun,
	}
	logger := p.logger.With().Str("run_id", result.RunID).Logger()

	logger.Info().
		Str("survey", p.surveyPath).
		Str("recruitment", p.recruitmentPath).
		Str("output", p.outputPath).
		Msg("Starting reconciliation run")

	// Step 1: the output location must be usable before any work starts
	if err := checkOutputDir(p.outputPath); err != nil {
		return nil, err
	}

	// Step 2: read both input tables
	survey, err := p.readTable(&logger, reconcile.DatasetSurvey, p.surveyPath)
	if err != nil {
		return nil, err
	}
	result.SurveyRows = survey.Len()

	recruitment, err := p.readTable(&logger, reconcile.DatasetRecruitment, p.recruitmentPath)
	if err != nil {
		return nil, err
	}
	result.RecruitmentRows = recruitment.Len()

	// Step 3: merge into one row per patient, survey values first
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	merged, mergeStats, err := reconcile.Patients(survey, recruitment, p.patientColumn)
	if err != nil {
		return nil, err
	}
	result.Merge = mergeStats
	logger.Info().
		Int("patients", mergeStats.Rows()).
		Int("matched", mergeStats.Matched).
		Int("conflicts", mergeStats.Conflicts).
		Msg("Patients merged")

	// Step 4: convert the height column from centimeters to meters
	converted, err := convert.Heights(merged, p.heightColumn, p.patientColumn)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("column", p.heightColumn).Msg("Heights converted to meters")

	// Step 5: keep only whitelisted columns
	fresh := converted
	if len(p.whitelist) > 0 {
		fresh = converted.Project(p.whitelist)
		logger.Debug().
			Int("kept", len(fresh.Columns())).
			Int("dropped", len(converted.Columns())-len(fresh.Columns())).
			Msg("Whitelist applied")
	}

	// Step 6: fold into the prior output when one exists
	final := fresh
	prior, err := p.readPrior(&logger)
	if err != nil {
		return nil, err
	}
	if prior != nil {
		accumulated, accStats, err := reconcile.Accumulate(prior, fresh, p.patientColumn, p.whitelist)
		if err != nil {
			return nil, err
		}
		final = accumulated
		result.Accumulate = accStats
		logger.Info().
			Int("carried", accStats.Carried).
			Int("updated", accStats.Updated).
			Int("added", accStats.Added).
			Msg("Accumulated into prior output")
	}

	result.Rows = final.Len()
	result.Columns = final.Columns()

	// Step 7: a dry run stops before anything touches the filesystem
	if p.dryRun {
		result.Duration = time.Since(started)
		logger.Info().
			Bool("dry_run", true).
			Int("rows", result.Rows).
			Msg("Dry run completed, nothing written")
		return result, nil
	}

	// Step 8: keep a copy of the prior output before replacing it
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if prior != nil && p.backup {
		backup := backupPath(p.outputPath)
		if err := copyFile(p.outputPath, backup); err != nil {
			return nil, err
		}
		result.BackupPath = backup
		logger.Info().Str("path", backup).Msg("Prior output backed up")
	}

	// Step 9: write the final table
	if err := p.writer.Write(p.outputPath, final); err != nil {
		return nil, err
	}

	result.Duration = time.Since(started)
	logger.Info().
		Int("rows", result.Rows).
		Int("columns", len(result.Columns)).
		Dur("duration", result.Duration).
		Str("path", p.outputPath).
		Msg("Run completed")
	return result, nil
}

// readTable loads one input table and logs its shape.
func (p *pipeline) readTable(logger *zerolog.Logger, dataset reconcile.Dataset, path string) (*tabular.Table, error) {
	t, err := p.reader.Read(path)
	if err != nil {
		return nil, err
	}
	logger.Debug().
		Str("dataset", dataset.String()).
		Str("path", path).
		Int("rows", t.Len()).
		Int("columns", len(t.Columns())).
		Msg("Table loaded")
	return t, nil
}

// readPrior loads the table already at the output path. A missing file
// means a first run and is not an error.
func (p *pipeline) readPrior(logger *zerolog.Logger) (*tabular.Table, error) {
	if _, err := os.Stat(p.outputPath); err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", p.outputPath).Msg("No prior output, starting fresh")
			return nil, nil
		}
		return nil, errors.WrapSourceRead(p.outputPath, err)
	}
	return p.readTable(logger, reconcile.DatasetPrior, p.outputPath)
}

// checkOutputDir verifies the output's parent directory up front, so a run
// cannot do all of its work and then fail to place the file.
func checkOutputDir(path string) error {
	dir := filepath.Dir(path)
	info, err := os.Stat(dir)
	if err != nil {
		return errors.NewConfigError("output", fmt.Sprintf("directory %s does not exist", dir), err)
	}
	if !info.IsDir() {
		return errors.NewConfigError("output", fmt.Sprintf("%s is not a directory", dir), nil)
	}
	return nil
}

// backupPath inserts the backup infix between the file stem and its
// extension: out.xlsx becomes out.backup.xlsx.
func backupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + constants.BackupInfix + ext
}

// copyFile copies src to dst, replacing dst. The prior output is copied
// rather than moved so a failed write still leaves the original in place.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.WrapIO("backup", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("backup", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.WrapIO("backup", dst, err)
	}
	if err := out.Sync(); err != nil {
		_ = out.Close()
		return errors.WrapIO("backup", dst, err)
	}
	if err := out.Close(); err != nil {
		return errors.WrapIO("backup", dst, err)
	}
	return nil
}
