// Package diff renders unified diffs between the original and the formatted
// content of a file.
package diff

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Diff represents a unified diff between original and modified content.
type Diff struct {
	// Path is the file path for the diff header.
	Path string

	// Hunks contains the diff hunks.
	Hunks []Hunk

	// Additions is the number of lines added.
	Additions int

	// Deletions is the number of lines deleted.
	Deletions int
}

// Hunk is a group of changed lines with their surrounding context.
type Hunk struct {
	// OriginalStart is the 1-based line number where the hunk starts in the original.
	OriginalStart int

	// OriginalCount is the number of lines from the original in this hunk.
	OriginalCount int

	// ModifiedStart is the 1-based line number where the hunk starts in the modified.
	ModifiedStart int

	// ModifiedCount is the number of lines from the modified in this hunk.
	ModifiedCount int

	// Lines contains the diff lines in this hunk.
	Lines []Line
}

// Line is a single line in a diff hunk.
type Line struct {
	Kind    LineKind
	Content string
}

// LineKind indicates the type of diff line.
type LineKind int

const (
	// LineContext is an unchanged context line.
	LineContext LineKind = iota

	// LineAdd is a line added in the modified version.
	LineAdd

	// LineRemove is a line removed from the original version.
	LineRemove
)

// ContextLines is the number of unchanged lines shown around each change.
const ContextLines = 3

// Generate creates a unified diff between original and modified content.
// Returns nil if the contents are equal.
func Generate(path string, original, modified []byte) *Diff {
	if string(original) == string(modified) {
		return nil
	}

	origLines := splitLines(original)
	modLines := splitLines(modified)

	matcher := difflib.NewMatcher(origLines, modLines)

	result := &Diff{Path: path}
	for _, group := range matcher.GetGroupedOpCodes(ContextLines) {
		hunk := buildHunk(group, origLines, modLines)
		for _, line := range hunk.Lines {
			switch line.Kind {
			case LineAdd:
				result.Additions++
			case LineRemove:
				result.Deletions++
			case LineContext:
			}
		}
		result.Hunks = append(result.Hunks, hunk)
	}

	// Only a trailing newline differs; show it as a change of the last line.
	if len(result.Hunks) == 0 {
		result.Hunks = append(result.Hunks, newlineHunk(origLines, modLines))
		result.Additions++
		result.Deletions++
	}

	return result
}

func buildHunk(group []difflib.OpCode, orig, mod []string) Hunk {
	first, last := group[0], group[len(group)-1]

	hunk := Hunk{
		OriginalStart: first.I1 + 1,
		OriginalCount: last.I2 - first.I1,
		ModifiedStart: first.J1 + 1,
		ModifiedCount: last.J2 - first.J1,
	}
	if hunk.OriginalCount == 0 {
		hunk.OriginalStart--
	}
	if hunk.ModifiedCount == 0 {
		hunk.ModifiedStart--
	}

	for _, op := range group {
		switch op.Tag {
		case 'e':
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineContext, Content: line})
			}
		case 'r', 'd':
			for _, line := range orig[op.I1:op.I2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineRemove, Content: line})
			}
		}
		if op.Tag == 'r' || op.Tag == 'i' {
			for _, line := range mod[op.J1:op.J2] {
				hunk.Lines = append(hunk.Lines, Line{Kind: LineAdd, Content: line})
			}
		}
	}

	return hunk
}

func newlineHunk(orig, mod []string) Hunk {
	lastOrig, lastMod := "", ""
	if len(orig) > 0 {
		lastOrig = orig[len(orig)-1]
	}
	if len(mod) > 0 {
		lastMod = mod[len(mod)-1]
	}
	return Hunk{
		OriginalStart: len(orig),
		OriginalCount: 1,
		ModifiedStart: len(mod),
		ModifiedCount: 1,
		Lines: []Line{
			{Kind: LineRemove, Content: lastOrig},
			{Kind: LineAdd, Content: lastMod},
		},
	}
}

// GitHeader returns the "diff --git" header line.
func (d *Diff) GitHeader() string {
	if d == nil {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	return fmt.Sprintf("diff --git a/%s b/%s", path, path)
}

// String returns the diff in unified diff format (without the git header).
func (d *Diff) String() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}

	path := strings.TrimPrefix(d.Path, "/")

	var builder strings.Builder
	fmt.Fprintf(&builder, "--- a/%s\n", path)
	fmt.Fprintf(&builder, "+++ b/%s\n", path)

	for _, hunk := range d.Hunks {
		fmt.Fprintf(&builder, "@@ -%d,%d +%d,%d @@\n",
			hunk.OriginalStart, hunk.OriginalCount,
			hunk.ModifiedStart, hunk.ModifiedCount)

		for _, line := range hunk.Lines {
			builder.WriteString(line.Kind.prefix())
			builder.WriteString(line.Content)
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}

// FullString returns the complete diff including the git header.
func (d *Diff) FullString() string {
	if d == nil || len(d.Hunks) == 0 {
		return ""
	}
	return d.GitHeader() + "\n" + d.String()
}

// HasChanges returns true if the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

func (k LineKind) prefix() string {
	switch k {
	case LineAdd:
		return "+"
	case LineRemove:
		return "-"
	case LineContext:
		return " "
	default:
		return " "
	}
}

// splitLines splits content into lines without their line endings.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for idx, line := range lines {
		lines[idx] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
