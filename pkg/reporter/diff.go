package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/gomdfmt/internal/ui/pretty"
	"github.com/yaklabco/gomdfmt/pkg/diff"
	"github.com/yaklabco/gomdfmt/pkg/runner"
)

// DiffReporter writes a git-style unified diff for every file that formatting
// changes.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprint(r.bw, r.styles.FormatFileLine(
				displayPath(file.Path, r.opts.WorkingDir), pretty.StatusError, 0, file.Error.Error()))
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		d := *file.Result.Diff
		d.Path = displayPath(d.Path, r.opts.WorkingDir)

		files++
		additions += d.Additions
		deletions += d.Deletions
		r.writeDiff(&d)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(files, additions, deletions)
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(d *diff.Diff) {
	fmt.Fprintln(r.bw, r.styles.DiffHeader.Render(d.GitHeader()))

	for _, line := range strings.Split(strings.TrimSuffix(d.String(), "\n"), "\n") {
		style := r.styles.DiffContext
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			style = r.styles.DiffHeader
		case strings.HasPrefix(line, "@@"):
			style = r.styles.DiffHunk
		case strings.HasPrefix(line, "+"):
			style = r.styles.DiffAdd
		case strings.HasPrefix(line, "-"):
			style = r.styles.DiffRemove
		}
		fmt.Fprintln(r.bw, style.Render(line))
	}

	fmt.Fprintln(r.bw)
}

func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}
	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}
	fmt.Fprintln(r.bw, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
