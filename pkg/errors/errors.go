// Package errors provides custom error types for the diverso system.
// These errors enable better error handling, programmatic error checking,
// and improved debugging throughout the application.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Common sentinel errors for the diverso system
var (
	// ErrSourceRead indicates that a tabular source file could not be read or decoded
	ErrSourceRead = errors.New("source read failed")

	// ErrMalformedTable indicates that a table violates structural requirements
	ErrMalformedTable = errors.New("malformed table")

	// ErrDuplicatePatient indicates that a patient key appears more than once within a dataset
	ErrDuplicatePatient = errors.New("duplicate patient")

	// ErrImplausibleHeight indicates a height value outside the plausible range
	ErrImplausibleHeight = errors.New("implausible height")

	// ErrSchemaIncompatible indicates that two outputs disagree on their significant columns
	ErrSchemaIncompatible = errors.New("schema incompatible")

	// ErrInvalidConfig indicates that provided configuration was invalid
	ErrInvalidConfig = errors.New("invalid configuration")
)

// SourceReadError represents a failure to read or decode a tabular source file.
// It covers missing files, undecodable content, and structurally broken
// records that prevent a table from being produced at all.
type SourceReadError struct {
	Path    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *SourceReadError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("cannot read source %s: %s", e.Path, e.Message)
	}
	return fmt.Sprintf("cannot read source %s: %v", e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *SourceReadError) Is(target error) bool {
	return target == ErrSourceRead
}

// NewSourceReadError creates a new SourceReadError
func NewSourceReadError(path, message string, err error) *SourceReadError {
	return &SourceReadError{Path: path, Message: message, Err: err}
}

// MalformedTableError represents a table that parsed but violates structural
// requirements: duplicate or blank column names, rows not covering the column
// set, or a missing patient key.
type MalformedTableError struct {
	Path    string
	Column  string
	Row     int // 1-based data row index; 0 when not row-specific
	Message string
}

// Error implements the error interface
func (e *MalformedTableError) Error() string {
	var b strings.Builder
	b.WriteString("malformed table")
	if e.Path != "" {
		fmt.Fprintf(&b, " %s", e.Path)
	}
	b.WriteString(": ")
	if e.Column != "" {
		fmt.Fprintf(&b, "column %q: ", e.Column)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, "row %d: ", e.Row)
	}
	b.WriteString(e.Message)
	return b.String()
}

// Is implements errors.Is support
func (e *MalformedTableError) Is(target error) bool {
	return target == ErrMalformedTable
}

// NewMalformedTableError creates a new MalformedTableError
func NewMalformedTableError(path, message string) *MalformedTableError {
	return &MalformedTableError{Path: path, Message: message}
}

// DuplicatePatientError represents a patient key that appears more than once
// within a single dataset. Dataset names the offending input ("survey",
// "recruitment", "prior output").
type DuplicatePatientError struct {
	Dataset string
	Key     string
}

// Error implements the error interface
func (e *DuplicatePatientError) Error() string {
	return fmt.Sprintf("duplicate patient %q in %s dataset", e.Key, e.Dataset)
}

// Is implements errors.Is support
func (e *DuplicatePatientError) Is(target error) bool {
	return target == ErrDuplicatePatient
}

// NewDuplicatePatientError creates a new DuplicatePatientError
func NewDuplicatePatientError(dataset, key string) *DuplicatePatientError {
	return &DuplicatePatientError{Dataset: dataset, Key: key}
}

// ImplausibleHeightError represents a height cell that is not a number or
// falls outside the accepted centimeter range. Value carries the raw cell
// content as read from the source.
type ImplausibleHeightError struct {
	Key    string // patient key of the offending row
	Column string
	Value  string
}

// Error implements the error interface
func (e *ImplausibleHeightError) Error() string {
	return fmt.Sprintf("implausible %s value %q for patient %q", e.Column, e.Value, e.Key)
}

// Is implements errors.Is support
func (e *ImplausibleHeightError) Is(target error) bool {
	return target == ErrImplausibleHeight
}

// NewImplausibleHeightError creates a new ImplausibleHeightError
func NewImplausibleHeightError(key, column, value string) *ImplausibleHeightError {
	return &ImplausibleHeightError{Key: key, Column: column, Value: value}
}

// SchemaIncompatibleError represents a significant-column mismatch between a
// prior output table and a freshly produced one. Missing lists columns the
// prior output has that the fresh table lacks; Unexpected lists the reverse.
type SchemaIncompatibleError struct {
	Path       string
	Missing    []string
	Unexpected []string
}

// Error implements the error interface
func (e *SchemaIncompatibleError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing columns %v", e.Missing))
	}
	if len(e.Unexpected) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected columns %v", e.Unexpected))
	}
	detail := strings.Join(parts, ", ")
	if detail == "" {
		detail = "column sets differ"
	}
	if e.Path != "" {
		return fmt.Sprintf("schema of %s incompatible with fresh output: %s", e.Path, detail)
	}
	return fmt.Sprintf("schema incompatible: %s", detail)
}

// Is implements errors.Is support
func (e *SchemaIncompatibleError) Is(target error) bool {
	return target == ErrSchemaIncompatible
}

// NewSchemaIncompatibleError creates a new SchemaIncompatibleError
func NewSchemaIncompatibleError(path string, missing, unexpected []string) *SchemaIncompatibleError {
	return &SchemaIncompatibleError{Path: path, Missing: missing, Unexpected: unexpected}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// NewConfigError creates a new ConfigError
func NewConfigError(field, message string, err error) *ConfigError {
	return &ConfigError{Field: field, Message: message, Err: err}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "rename", "backup"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// Helper functions for error checking

// IsSourceRead checks if an error is a source read error
func IsSourceRead(err error) bool {
	return errors.Is(err, ErrSourceRead)
}

// IsMalformedTable checks if an error is a malformed table error
func IsMalformedTable(err error) bool {
	return errors.Is(err, ErrMalformedTable)
}

// IsDuplicatePatient checks if an error is a duplicate patient error
func IsDuplicatePatient(err error) bool {
	return errors.Is(err, ErrDuplicatePatient)
}

// IsImplausibleHeight checks if an error is an implausible height error
func IsImplausibleHeight(err error) bool {
	return errors.Is(err, ErrImplausibleHeight)
}

// IsSchemaIncompatible checks if an error is a schema incompatibility error
func IsSchemaIncompatible(err error) bool {
	return errors.Is(err, ErrSchemaIncompatible)
}

// IsInvalidConfig checks if an error is a configuration error
func IsInvalidConfig(err error) bool {
	return errors.Is(err, ErrInvalidConfig)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapSourceRead wraps an error as a SourceReadError
func WrapSourceRead(path string, err error) error {
	if err == nil {
		return nil
	}
	return &SourceReadError{Path: path, Message: err.Error(), Err: err}
}
