package run

import (
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/equiref/diverso"
	"github.com/equiref/diverso/internal/appcontext"
	"github.com/equiref/diverso/internal/cmd/output"
	"github.com/equiref/diverso/internal/codec"
	"github.com/equiref/diverso/internal/profile"
	"github.com/equiref/diverso/pkg/constants"
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/logging"
)

// ExecuteRun resolves the effective settings, builds the pipeline, and
// executes it with the command's context.
func ExecuteRun(cmd *cobra.Command, app appcontext.Interface, flags *Flags) error {
	settings, err := resolveSettings(cmd, flags)
	if err != nil {
		return err
	}

	// Fail unsupported formats before any work happens.
	for _, path := range []string{settings.Survey, settings.Recruitment, settings.Output} {
		if !codec.Supported(path) {
			return errors.NewConfigError("path",
				"unsupported file format "+filepath.Ext(path)+" (supported: "+strings.Join(codec.Extensions(), ", ")+")", nil)
		}
	}

	runLogger, cleanup := openRunLogger(app, settings)
	defer cleanup()

	opts := []diverso.Option{
		diverso.WithSurveyPath(settings.Survey),
		diverso.WithRecruitmentPath(settings.Recruitment),
		diverso.WithOutputPath(settings.Output),
		diverso.WithBackup(settings.Backup),
		diverso.WithDryRun(settings.DryRun),
		diverso.WithLogger(runLogger),
	}
	if settings.PatientColumn != "" {
		opts = append(opts, diverso.WithPatientColumn(settings.PatientColumn))
	}
	if settings.HeightColumn != "" {
		opts = append(opts, diverso.WithHeightColumn(settings.HeightColumn))
	}
	if len(settings.Whitelist) > 0 {
		opts = append(opts, diverso.WithWhitelist(settings.Whitelist...))
	}

	pipeline, err := diverso.New(opts...)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(cmd.Context())
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(output.DetectFormat(app.OutputFormat()))
	return formatter.Format(cmd.OutOrStdout(), newReport(result))
}

// settings are the effective run parameters after merging flags over the
// optional profile file.
type settings struct {
	Survey        string
	Recruitment   string
	Output        string
	PatientColumn string
	HeightColumn  string
	Whitelist     []string
	Backup        bool
	DryRun        bool
	LogFile       string
}

// resolveSettings merges the profile file (if any) under the flag values.
// Flags always win over profile entries.
func resolveSettings(cmd *cobra.Command, flags *Flags) (*settings, error) {
	s := &settings{
		Survey:        flags.Survey,
		Recruitment:   flags.Recruitment,
		Output:        flags.Output,
		PatientColumn: flags.PatientColumn,
		HeightColumn:  flags.HeightColumn,
		Whitelist:     flags.Whitelist,
		Backup:        !flags.NoBackup,
		DryRun:        flags.DryRun,
		LogFile:       flags.LogFile,
	}

	if flags.Profile != "" {
		prof, err := profile.Load(flags.Profile)
		if err != nil {
			return nil, err
		}
		if s.Survey == "" {
			s.Survey = prof.Survey
		}
		if s.Recruitment == "" {
			s.Recruitment = prof.Recruitment
		}
		if s.Output == "" {
			s.Output = prof.Output
		}
		if s.PatientColumn == "" {
			s.PatientColumn = prof.PatientColumn
		}
		if s.HeightColumn == "" {
			s.HeightColumn = prof.HeightColumn
		}
		if len(s.Whitelist) == 0 {
			s.Whitelist = prof.Whitelist
		}
		if prof.Backup != nil && !cmd.Flags().Changed("no-backup") {
			s.Backup = *prof.Backup
		}
	}

	switch {
	case s.Survey == "":
		return nil, errors.NewConfigError("survey", "path is required (flag --survey or profile)", nil)
	case s.Recruitment == "":
		return nil, errors.NewConfigError("recruitment", "path is required (flag --recruitment or profile)", nil)
	case s.Output == "":
		return nil, errors.NewConfigError("output", "path is required (flag --output or profile)", nil)
	}

	return s, nil
}

// openRunLogger builds the logger for this run. Next to the console
// logger, every entry is duplicated into a per-run log file beside the
// output (or at --log-file). When the file cannot be created the run
// proceeds with the console logger alone.
func openRunLogger(app appcontext.Interface, s *settings) (logger zerolog.Logger, cleanup func()) {
	logPath := s.LogFile
	if logPath == "" {
		ext := filepath.Ext(s.Output)
		logPath = strings.TrimSuffix(s.Output, ext) + constants.RunLogExtension
	}

	fileLogger, closer, err := logging.NewLoggerWithFile(app.LogConfig(), logPath)
	if err != nil {
		app.Logger().Warn().Err(err).Str("path", logPath).Msg("Cannot open run log file, continuing without it")
		return *app.Logger(), func() {}
	}

	fileLogger.Info().Str("path", logPath).Msg("Logging run to file")
	return fileLogger, func() { _ = closer.Close() }
}
