package diverso

import (
	"github.com/rs/zerolog"

	"github.com/equiref/diverso/internal/codec"
	"github.com/equiref/diverso/pkg/constants"
	"github.com/equiref/diverso/pkg/errors"
	"github.com/equiref/diverso/pkg/logging"
	"github.com/equiref/diverso/pkg/tabular"
)

// options configures a pipeline.
type options struct {
	surveyPath      string
	recruitmentPath string
	outputPath      string
	patientColumn   string
	heightColumn    string
	whitelist       []string
	backup          bool
	dryRun          bool
	logger          zerolog.Logger
	reader          tabular.Reader
	writer          tabular.Writer
}

func defaultOptions() *options {
	fileIO := codec.New()
	return &options{
		patientColumn: constants.DefaultPatientColumn,
		heightColumn:  constants.DefaultHeightColumn,
		backup:        true,
		logger:        *logging.Default(),
		reader:        fileIO,
		writer:        fileIO,
	}
}

// Option is a function that configures a Pipeline.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns pipeline options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// validate checks that the applied options form a runnable configuration.
func (options *options) validate() error {
	if options.surveyPath == "" {
		return errors.NewConfigError("survey", "path is required", nil)
	}
	if options.recruitmentPath == "" {
		return errors.NewConfigError("recruitment", "path is required", nil)
	}
	if options.outputPath == "" {
		return errors.NewConfigError("output", "path is required", nil)
	}
	if len(options.whitelist) > 0 && !contains(options.whitelist, options.patientColumn) {
		return errors.NewConfigError("whitelist",
			"must include the patient key column "+options.patientColumn, nil)
	}
	return nil
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// WithSurveyPath sets the path of the survey dataset.
func WithSurveyPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewConfigError("survey", "path cannot be empty", nil)
		}
		o.surveyPath = path
		return nil
	}
}

// WithRecruitmentPath sets the path of the recruitment dataset.
func WithRecruitmentPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewConfigError("recruitment", "path cannot be empty", nil)
		}
		o.recruitmentPath = path
		return nil
	}
}

// WithOutputPath sets the path the accumulated table is written to. A file
// already present there is treated as the output of earlier runs and
// merged with the fresh result.
func WithOutputPath(path string) Option {
	return func(o *options) error {
		if path == "" {
			return errors.NewConfigError("output", "path cannot be empty", nil)
		}
		o.outputPath = path
		return nil
	}
}

// WithPatientColumn names the column holding the patient identifier in
// every table taking part in the run.
func WithPatientColumn(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.NewConfigError("patient-column", "column name cannot be empty", nil)
		}
		o.patientColumn = name
		return nil
	}
}

// WithHeightColumn names the centimeter height column to convert.
func WithHeightColumn(name string) Option {
	return func(o *options) error {
		if name == "" {
			return errors.NewConfigError("height-column", "column name cannot be empty", nil)
		}
		o.heightColumn = name
		return nil
	}
}

// WithWhitelist restricts the output to the named columns and limits the
// cross-run schema check to them. The patient key column must be included.
// An empty whitelist keeps every column and requires the full column sets
// to match between runs.
func WithWhitelist(columns ...string) Option {
	return func(o *options) error {
		o.whitelist = append([]string(nil), columns...)
		return nil
	}
}

// WithBackup controls whether a prior output file is copied aside before
// it is replaced. Enabled by default.
func WithBackup(enabled bool) Option {
	return func(o *options) error {
		o.backup = enabled
		return nil
	}
}

// WithDryRun computes the full result but skips the backup and the final
// write.
func WithDryRun(enabled bool) Option {
	return func(o *options) error {
		o.dryRun = enabled
		return nil
	}
}

// WithLogger sets the logger the run reports to.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithReader replaces the file reader, normally the extension-dispatching
// codec.
func WithReader(r tabular.Reader) Option {
	return func(o *options) error {
		if r == nil {
			return errors.NewConfigError("reader", "cannot be nil", nil)
		}
		o.reader = r
		return nil
	}
}

// WithWriter replaces the file writer, normally the extension-dispatching
// codec.
func WithWriter(w tabular.Writer) Option {
	return func(o *options) error {
		if w == nil {
			return errors.NewConfigError("writer", "cannot be nil", nil)
		}
		o.writer = w
		return nil
	}
}
