package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Width returns the display width of s in terminal columns.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// LastLine returns the text after the final newline of s.
func LastLine(s string) string {
	if idx := strings.LastIndexByte(s, '\n'); idx >= 0 {
		return s[idx+1:]
	}
	return s
}

// FirstLine returns the text before the first newline of s.
func FirstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}

// LastLineWidth returns the display width of the last line of s.
func LastLineWidth(s string) int {
	return Width(LastLine(s))
}

// Fits reports whether the last line of s fits in width columns.
func Fits(s string, width int) bool {
	return width >= 0 && LastLineWidth(s) <= width
}

// MaxLineWidth returns the display width of the widest line of s.
func MaxLineWidth(s string) int {
	widest := 0
	for line := range strings.SplitSeq(s, "\n") {
		widest = max(widest, Width(line))
	}
	return widest
}

// Indent returns n spaces.
func Indent(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

// LeadingSpaces counts the spaces at the start of line.
func LeadingSpaces(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
