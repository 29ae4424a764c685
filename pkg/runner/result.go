package runner

import (
	"time"

	"github.com/yaklabco/gomdfmt/pkg/format"
)

// FileOutcome is the result of formatting one discovered file.
type FileOutcome struct {
	// Path is the absolute path of the file.
	Path string

	// Result is nil when Error is set.
	Result *format.PipelineResult

	Error error
}

// Stats aggregates the outcomes of a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int

	// FilesChanged counts files whose formatted content differs, whether or
	// not they were written.
	FilesChanged int

	FilesWritten  int
	FilesSkipped  int
	FilesUnstable int
	FilesErrored  int

	// Fallbacks counts top-level blocks kept as written across all files.
	Fallbacks int
}

// Result is the outcome of a run, with Files in discovery order.
type Result struct {
	Files    []FileOutcome
	Stats    Stats
	Duration time.Duration
}

// HasChanges reports whether any file needs formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file could not be processed.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	res := outcome.Result
	if res == nil {
		return
	}

	r.Stats.FilesProcessed++
	if res.Skipped {
		r.Stats.FilesSkipped++
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.NeedsFormatting() {
		r.Stats.FilesChanged++
	}
	if res.FileResult != nil {
		r.Stats.Fallbacks += res.Fallbacks
		if res.Unstable {
			r.Stats.FilesUnstable++
		}
	}
}
