package diverso

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/equiref/diverso/pkg/tabular"
)

// Pipeline is the main interface for running a reconciliation.
type Pipeline interface {
	// Run executes one reconciliation run: read, merge, convert,
	// accumulate, write. The returned result describes what was (or, in
	// a dry run, would have been) written.
	Run(ctx context.Context) (*Result, error)
}

// pipeline is the default implementation of Pipeline.
type pipeline struct {
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

// New creates a new Pipeline with options. The survey, recruitment and
// output paths are required; everything else has defaults.
func New(opts ...Option) (Pipeline, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}
	if err := options.validate(); err != nil {
		return nil, err
	}

	return &pipeline{
		surveyPath:      options.surveyPath,
		recruitmentPath: options.recruitmentPath,
		outputPath:      options.outputPath,
		patientColumn:   options.patientColumn,
		heightColumn:    options.heightColumn,
		whitelist:       options.whitelist,
		backup:          options.backup,
		dryRun:          options.dryRun,
		logger:          options.logger,
		reader:          options.reader,
		writer:          options.writer,
	}, nil
}
