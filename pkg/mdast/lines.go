package mdast

import (
	"bytes"
	"sort"
)

// BuildLines indexes the lines of content. A "\r\n" pair counts as one line
// ending whose NewlineStart is the '\r'. Content that does not end with a
// newline still gets a final, unterminated line; empty content has no lines.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, bytes.Count(content, []byte{'\n'})+1)
	for start := 0; ; {
		nl := bytes.IndexByte(content[start:], '\n')
		if nl < 0 {
			lines = append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
			return lines
		}

		end := start + nl
		body := end
		if body > start && content[body-1] == '\r' {
			body--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: body, EndOffset: end + 1})
		start = end + 1
	}
}

// LineIndex returns the 0-based index of the line holding offset. Offsets
// before the content map to the first line and offsets past it to the last.
func (f *FileSnapshot) LineIndex(offset int) int {
	if len(f.Lines) == 0 || offset <= 0 {
		return 0
	}
	idx := sort.Search(len(f.Lines), func(i int) bool {
		return f.Lines[i].EndOffset > offset
	})
	return min(idx, len(f.Lines)-1)
}

// LineAt returns the 1-based line and byte column of offset, or zeros when
// offset is negative or the file has no lines. Offsets at or past the end
// resolve against the last line.
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}
	idx := f.LineIndex(offset)
	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// LineSpan returns the byte range of the 0-based line idx, newline
// excluded. Out of range indexes give an empty span.
func (f *FileSnapshot) LineSpan(idx int) SourceRange {
	if idx < 0 || idx >= len(f.Lines) {
		return SourceRange{}
	}
	return SourceRange{Start: f.Lines[idx].StartOffset, End: f.Lines[idx].NewlineStart}
}

// LineContent returns the text of the 1-based line, newline excluded, or nil
// when the line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	span := f.LineSpan(line - 1)
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	return f.Content[span.Start:span.End]
}
