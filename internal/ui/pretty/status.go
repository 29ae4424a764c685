package pretty

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Status is what happened to one file.
type Status string

// File statuses.
const (
	StatusFormatted     Status = "formatted"
	StatusWouldReformat Status = "would reformat"
	StatusUnchanged     Status = "unchanged"
	StatusSkipped       Status = "skipped"
	StatusUnstable      Status = "unstable"
	StatusError         Status = "error"
)

// StatusStyle returns the style a status is rendered with.
func (s *Styles) StatusStyle(status Status) lipgloss.Style {
	switch status {
	case StatusFormatted:
		return s.Formatted
	case StatusWouldReformat:
		return s.Pending
	case StatusSkipped, StatusUnstable:
		return s.Warning
	case StatusError:
		return s.Error
	case StatusUnchanged:
		return s.Unchanged
	default:
		return s.Unchanged
	}
}

// FormatFileLine formats one file's outcome as "path: status". Fallbacks are
// appended when some blocks were kept as written; detail follows errors and
// skips.
func (s *Styles) FormatFileLine(path string, status Status, fallbacks int, detail string) string {
	line := s.FilePath.Render(path) + ": " + s.StatusStyle(status).Render(string(status))
	if detail != "" {
		line += " " + s.Dim.Render("("+detail+")")
	}
	if fallbacks > 0 {
		line += s.Dim.Render(fmt.Sprintf(", %d %s kept as written", fallbacks, plural(fallbacks, "block", "blocks")))
	}
	return line + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
