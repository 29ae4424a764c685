// Package mdast provides the Markdown syntax tree the formatter works on.
// It defines:
//   - FileSnapshot: the source bytes, their line index and the tree root
//   - Node: a closed, Kind-tagged variant for every block and inline construct
//   - spans and segments tying every node back to the exact source bytes
package mdast

import (
	"fmt"
	"unicode/utf8"

	"github.com/yaklabco/gomdfmt/pkg/layout"
)

// FileSnapshot is an immutable view of a Markdown file at a specific time.
// It holds the raw content, line metadata and the AST root.
//
// A FileSnapshot is the source map of a formatting run: it resolves node spans
// back to their original text and is safe for concurrent readers.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the AST root node (Document).
	Root *Node
}

var _ layout.SourceMap = (*FileSnapshot)(nil)

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// NewFileSnapshot creates a new FileSnapshot from content.
// It builds the line index but does not parse (that requires a Parser).
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
		Root:    nil,
	}
}

// Snippet returns the exact source text covered by span.
// It fails for spans outside the content and for spans that cut a UTF-8
// sequence in half, which can only come from a tree built for other content.
func (f *FileSnapshot) Snippet(span SourceRange) (string, error) {
	if !span.Valid(len(f.Content)) {
		return "", fmt.Errorf("%w: %s in %d bytes", layout.ErrSpanOutOfRange, span, len(f.Content))
	}
	if !onRuneBoundary(f.Content, span.Start) || !onRuneBoundary(f.Content, span.End) {
		return "", fmt.Errorf("span %s splits a UTF-8 sequence", span)
	}
	return string(f.Content[span.Start:span.End]), nil
}

// Describe renders span as a "path:line:col" location for diagnostics.
func (f *FileSnapshot) Describe(span SourceRange) string {
	line, col := f.LineAt(span.Start)
	path := f.Path
	if path == "" {
		path = "<input>"
	}
	return fmt.Sprintf("%s:%d:%d", path, line, col)
}

func onRuneBoundary(content []byte, offset int) bool {
	if offset == 0 || offset == len(content) {
		return true
	}
	return utf8.RuneStart(content[offset])
}
