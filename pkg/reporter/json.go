package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// jsonVersion is the version of the JSON output schema.
const jsonVersion = "1.0.0"

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path      string `json:"path"`
	Status    string `json:"status"`
	Changed   bool   `json:"changed"`
	Written   bool   `json:"written,omitempty"`
	Fallbacks int    `json:"fallbacks,omitempty"`
	Unstable  bool   `json:"unstable,omitempty"`
	Additions int    `json:"additions,omitempty"`
	Deletions int    `json:"deletions,omitempty"`
	Diff      string `json:"diff,omitempty"`
	Error     string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesChecked  int   `json:"filesChecked"`
	FilesChanged  int   `json:"filesChanged"`
	FilesWritten  int   `json:"filesWritten"`
	FilesSkipped  int   `json:"filesSkipped"`
	FilesErrored  int   `json:"filesErrored"`
	Fallbacks     int   `json:"fallbacks"`
	DurationMilli int64 `json:"durationMs"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: jsonVersion,
		Files:   []JSONFileResult{},
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{
			Path:   displayPath(file.Path, r.opts.WorkingDir),
			Status: string(statusOf(file, r.opts.Write)),
		}

		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if res := file.Result; res != nil {
			entry.Changed = res.NeedsFormatting()
			entry.Written = res.Written
			if res.FileResult != nil {
				entry.Fallbacks = res.Fallbacks
				entry.Unstable = res.Unstable
			}
			if res.Diff.HasChanges() {
				entry.Additions = res.Diff.Additions
				entry.Deletions = res.Diff.Deletions
				entry.Diff = res.Diff.String()
			}
		}

		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesChecked:  stats.FilesProcessed,
		FilesChanged:  stats.FilesChanged,
		FilesWritten:  stats.FilesWritten,
		FilesSkipped:  stats.FilesSkipped,
		FilesErrored:  stats.FilesErrored,
		Fallbacks:     stats.Fallbacks,
		DurationMilli: result.Duration.Milliseconds(),
	}

	return output
}
