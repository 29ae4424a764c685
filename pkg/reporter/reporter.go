// Package reporter writes the outcome of a formatting run as text, JSON,
// unified diffs, or a summary table.
package reporter

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes output for result and returns the number of files that
	// need formatting or were formatted.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// statusOf classifies the outcome of one file.
func statusOf(outcome runner.FileOutcome, write bool) pretty.Status {
	res := outcome.Result
	switch {
	case outcome.Error != nil || res == nil:
		return pretty.StatusError
	case res.Skipped:
		return pretty.StatusSkipped
	case res.FileResult != nil && res.Unstable:
		return pretty.StatusUnstable
	case res.Written:
		return pretty.StatusFormatted
	case res.NeedsFormatting() && write:
		return pretty.StatusFormatted
	case res.NeedsFormatting():
		return pretty.StatusWouldReformat
	default:
		return pretty.StatusUnchanged
	}
}

// detailOf returns the explanation shown next to a status.
func detailOf(outcome runner.FileOutcome) string {
	switch {
	case outcome.Error != nil:
		return outcome.Error.Error()
	case outcome.Result != nil && outcome.Result.Skipped:
		return outcome.Result.SkipReason
	default:
		return ""
	}
}

func fallbacksOf(outcome runner.FileOutcome) int {
	if outcome.Result == nil || outcome.Result.FileResult == nil {
		return 0
	}
	return outcome.Result.Fallbacks
}

// displayPath shows path relative to workDir when it lies below it.
func displayPath(path, workDir string) string {
	if workDir == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
