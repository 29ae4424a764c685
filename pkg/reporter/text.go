package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// TextReporter lists the files that need or received formatting, one per
// line, followed by a one-line summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	var changed int
	for _, file := range result.Files {
		status := statusOf(file, r.opts.Write)
		if status == pretty.StatusFormatted || status == pretty.StatusWouldReformat {
			changed++
		}
		if status == pretty.StatusUnchanged && !r.opts.Verbose {
			continue
		}

		fmt.Fprint(r.bw, r.styles.FormatFileLine(
			displayPath(file.Path, r.opts.WorkingDir), status, fallbacksOf(file), detailOf(file)))
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats, r.opts.Write))
	}

	return changed, nil
}
