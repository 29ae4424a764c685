package reporter

import (
	"context"
	"fmt"
	"io"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// SummaryReporter writes a table of the files that changed, failed or kept
// blocks as written, followed by aggregate statistics.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:    opts.Writer,
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil || len(result.Files) == 0 {
		_, err := fmt.Fprintln(r.out, r.styles.Success.Render("No files to format."))
		return 0, err
	}

	var (
		rows    []pretty.TableRow
		changed int
	)
	for _, file := range result.Files {
		status := statusOf(file, r.opts.Write)
		if status == pretty.StatusFormatted || status == pretty.StatusWouldReformat {
			changed++
		}

		fallbacks := fallbacksOf(file)
		if status == pretty.StatusUnchanged && fallbacks == 0 && !r.opts.Verbose {
			continue
		}

		row := pretty.TableRow{
			File:      displayPath(file.Path, r.opts.WorkingDir),
			Status:    status,
			Fallbacks: fallbacks,
		}
		if file.Result != nil && file.Result.Diff.HasChanges() {
			row.Additions = file.Result.Diff.Additions
			row.Deletions = file.Result.Diff.Deletions
		}
		rows = append(rows, row)
	}

	table := pretty.NewTableFormatter(r.styles, r.opts.TermWidth).FormatTable(rows)
	if _, err := fmt.Fprint(r.out, table); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}
	if _, err := fmt.Fprint(r.out, r.styles.FormatSummary(result.Stats, result.Duration)); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return changed, nil
}
