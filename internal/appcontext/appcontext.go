// Package appcontext provides the shared application context interface
// used by all CLI commands, so command packages depend on one small
// contract instead of the concrete app type.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/equiref/diverso/pkg/logging"
)

// Interface is the application context commands receive. The App struct
// from cmd/diverso/app implements it; tests can use Mock instead.
type Interface interface {
	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// LogConfig returns the logging configuration in effect, for commands
	// that build derived loggers (such as a per-run log file).
	LogConfig() *logging.Config

	// OutputFormat returns the configured output format (table, json, yaml).
	OutputFormat() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
