package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/equiref/diverso/pkg/logging"
)

// Mock implements Interface for tests. Each method can be customized by
// setting the corresponding function field; nil fields return zero values.
type Mock struct {
	LoggerFunc       func() *zerolog.Logger
	LogConfigFunc    func() *logging.Config
	OutputFormatFunc func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Logger returns the mock logger or a disabled one.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	nop := zerolog.Nop()
	return &nop
}

// LogConfig returns the mock logging config or a quiet default.
func (m *Mock) LogConfig() *logging.Config {
	if m.LogConfigFunc != nil {
		return m.LogConfigFunc()
	}
	cfg := logging.DefaultConfig()
	cfg.Level = "error"
	return cfg
}

// OutputFormat returns the mock output format or "".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// Version returns the mock version or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the mock commit or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the mock build date or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the mock builder or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
