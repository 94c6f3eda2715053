// Package constants provides shared constants used throughout the diverso
// codebase. This includes column defaults, file permissions, and file naming
// conventions that should be consistent across the application.
package constants

// Dataset defaults
const (
	// DefaultPatientColumn is the column holding the patient identifier
	DefaultPatientColumn = "pat_id"

	// DefaultHeightColumn is the column holding body height in centimeters
	DefaultHeightColumn = "pat_height"
)

// File permission constants define standard Unix file permissions
const (
	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// File naming constants
const (
	// BackupInfix is inserted between the output file's stem and extension
	// when the prior output is preserved before an accumulate run
	BackupInfix = ".backup"

	// RunLogExtension replaces the output file's extension to name the
	// per-run log file written next to it
	RunLogExtension = ".log"
)
