// Package pretty renders the terminal report of a formatting run with
// lipgloss: per-file status lines, colored diffs and the closing summary.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ANSI palette indexes, readable on dark and light backgrounds.
const (
	colorRed    = "9"
	colorGreen  = "10"
	colorYellow = "11"
	colorCyan   = "14"
	colorGray   = "8"
	colorWhite  = "7"
)

// Styles holds one style per role in the report. With color disabled every
// style is plain, apart from table cell padding.
type Styles struct {
	Error    lipgloss.Style
	Warning  lipgloss.Style
	FilePath lipgloss.Style

	// File statuses.
	Formatted lipgloss.Style
	Pending   lipgloss.Style
	Unchanged lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader lipgloss.Style
	TableBorder lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles returns the report styles, colored or plain.
func NewStyles(colorEnabled bool) *Styles {
	fg := func(color string) lipgloss.Style {
		if !colorEnabled {
			return lipgloss.NewStyle()
		}
		return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	bold := func(style lipgloss.Style) lipgloss.Style {
		return style.Bold(colorEnabled)
	}
	plain := lipgloss.NewStyle()

	return &Styles{
		Error:    bold(fg(colorRed)),
		Warning:  bold(fg(colorYellow)),
		FilePath: bold(plain),

		Formatted: fg(colorGreen),
		Pending:   fg(colorYellow),
		Unchanged: fg(colorGray),

		DiffHeader:  bold(plain),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: bold(plain),
		SummaryValue: plain,
		Success:      bold(fg(colorGreen)),
		Failure:      bold(fg(colorRed)),

		TableHeader: bold(fg(colorWhite)).Padding(0, 1),
		TableBorder: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: bold(plain),
	}
}

// IsColorEnabled resolves a color mode ("auto", "always" or "never") for
// writer. Auto enables color only for terminals, and NO_COLOR turns it off.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
