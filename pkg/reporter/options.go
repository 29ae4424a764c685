package reporter

import (
	"io"
	"os"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	Format Format

	// Color controls colorized output: "auto" (default), "always" or "never".
	Color string

	// ShowSummary adds aggregate statistics after the per-file output.
	ShowSummary bool

	// Write reports changed files as reformatted rather than pending.
	Write bool

	// Verbose lists unchanged files too.
	Verbose bool

	// Compact disables indentation of JSON output.
	Compact bool

	// TermWidth is the terminal width for tables; 0 uses a default.
	TermWidth int

	// WorkingDir is the directory paths are shown relative to. Empty keeps
	// them as they are.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ShowSummary: true,
	}
}
