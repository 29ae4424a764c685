package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/gomdfmt/pkg/runner"
)

const summaryDividerWidth = 40

// FormatSummaryOneLine formats run statistics as a single line, for example
// "2 files would be reformatted, 5 files unchanged". With write set, changed
// files are reported as reformatted.
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, write bool) string {
	unchanged := stats.FilesProcessed - stats.FilesChanged

	var parts []string
	switch {
	case stats.FilesChanged == 0:
		parts = append(parts, s.Success.Render("All files formatted")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesProcessed, plural(stats.FilesProcessed, "file", "files"))))
	case write:
		parts = append(parts,
			s.Success.Render(fmt.Sprintf("%d %s reformatted", stats.FilesWritten, plural(stats.FilesWritten, "file", "files"))),
			fmt.Sprintf("%d %s unchanged", unchanged, plural(unchanged, "file", "files")))
	default:
		parts = append(parts,
			s.Failure.Render(fmt.Sprintf("%d %s would be reformatted", stats.FilesChanged,
				plural(stats.FilesChanged, "file", "files"))),
			fmt.Sprintf("%d %s unchanged", unchanged, plural(unchanged, "file", "files")))
	}

	if stats.FilesSkipped > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d skipped", stats.FilesSkipped)))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d failed", stats.FilesErrored)))
	}

	return strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats run statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats, duration time.Duration) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	row := func(label string, value int, style func(...string) string) {
		builder.WriteString(fmt.Sprintf("  %-19s%s\n", label+":", style(strconv.Itoa(value))))
	}

	row("Files checked", stats.FilesProcessed, s.SummaryValue.Render)
	row("Files changed", stats.FilesChanged, s.SummaryValue.Render)
	if stats.FilesWritten > 0 {
		row("Files written", stats.FilesWritten, s.Success.Render)
	}
	if stats.Fallbacks > 0 {
		row("Blocks kept", stats.Fallbacks, s.Dim.Render)
	}
	if stats.FilesSkipped > 0 {
		row("Files skipped", stats.FilesSkipped, s.Warning.Render)
	}
	if stats.FilesUnstable > 0 {
		row("Unstable files", stats.FilesUnstable, s.Warning.Render)
	}
	if stats.FilesErrored > 0 {
		row("Files failed", stats.FilesErrored, s.Error.Render)
	}
	if duration > 0 {
		builder.WriteString("  " + s.Dim.Render("Finished in "+duration.Round(time.Millisecond).String()) + "\n")
	}

	return builder.String()
}
