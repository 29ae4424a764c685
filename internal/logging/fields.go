// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldWidth  = "width"
	FieldWrite  = "write"
	FieldCheck  = "check"
	FieldJobs   = "jobs"
	FieldConfig = "config"

	// Formatting fields.
	FieldChanged     = "changed"
	FieldFallbacks   = "fallbacks"
	FieldCacheHits   = "cache_hits"
	FieldCacheMisses = "cache_misses"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesFailed     = "files_failed"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
