// Package emoji provides symbol constants for CLI output.
// These symbols keep status markers consistent across commands.
package emoji

const (
	// Success marks a completed operation or a confirmed row.
	Success = "✓"

	// Error marks a failed operation.
	Error = "✗"

	// Warning marks a non-fatal problem, such as a row the server did not confirm.
	Warning = "!"

	// Pending marks a row with local changes not yet saved.
	Pending = "*"

	// Present and Absent mark a child's attendance in roster tables.
	Present = "✓"
	Absent  = "-"

	// Info represents informational messages.
	Info = "i"
)
