// Package constants provides shared constants used throughout the rollcall codebase.
// This includes timeouts, limits, file permissions, and other configuration values
// that should be consistent across the application.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for requests to the kindergarten API
	DefaultHTTPTimeout = 30 * time.Second

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 2 * time.Minute

	// ShutdownTimeout bounds graceful shutdown after a failed command
	ShutdownTimeout = 5 * time.Second
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644

	// SecureDirPermissions is for directories holding credentials (rwx------)
	SecureDirPermissions = 0700

	// SecureFilePermissions is for sensitive files like access tokens (rw-------)
	SecureFilePermissions = 0600
)

// Limit constants define various limits and capacities
const (
	// RosterPageSize caps how many children are requested for one group.
	// Rosters larger than this are truncated by the backend.
	RosterPageSize = 200

	// DefaultPageSize is the default number of items per page for list endpoints
	DefaultPageSize = 100

	// MaxAbsenceReasonLength is the longest absence reason the backend
	// accepts, counted in characters
	MaxAbsenceReasonLength = 200
)

// Format constants
const (
	// DateLayout is the wire and CLI layout for calendar dates
	DateLayout = "2006-01-02"
)

// Application constants
const (
	// AppName is used for config file names and the user agent
	AppName = "rollcall"

	// EnvPrefix prefixes environment variables read by the config layer
	EnvPrefix = "ROLLCALL"
)
