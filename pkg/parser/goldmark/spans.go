package goldmark

import (
	"bytes"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// spanAssigner gives every block node a line-aligned span: from the start of
// its first source line, container prefixes included, to the end of its last
// line without the newline.
//
// Leaf blocks are located from their content segments. Lines that carry no
// segment of their own (fences, setext underlines, thematic breaks) are found
// by scanning forward from a cursor that tracks the first line not yet
// claimed by an earlier sibling.
type spanAssigner struct {
	file *mdast.FileSnapshot
}

func newSpanAssigner(file *mdast.FileSnapshot) *spanAssigner {
	return &spanAssigner{file: file}
}

// assign computes spans for root and all of its block descendants.
func (a *spanAssigner) assign(root *mdast.Node) {
	root.Span = mdast.SourceRange{Start: 0, End: len(a.file.Content)}
	a.assignChildren(root, 0)
}

// assignChildren assigns spans to the block children of parent and returns
// the cursor after the last of them.
func (a *spanAssigner) assignChildren(parent *mdast.Node, cursor int) int {
	for child := parent.FirstChild; child != nil; child = child.Next {
		if !child.IsBlock() {
			continue
		}
		cursor = a.assignBlock(child, cursor)
	}
	return cursor
}

// assignBlock assigns the span of one block and returns the next free line.
func (a *spanAssigner) assignBlock(node *mdast.Node, cursor int) int {
	if len(a.file.Lines) == 0 {
		node.Span = mdast.SourceRange{}
		return cursor
	}

	var first, last int
	switch {
	case node.Kind == mdast.NodeFrontMatter:
		first = a.file.LineIndex(node.Span.Start)
		last = a.file.LineIndex(node.Span.End)

	case node.IsContainer():
		first, last = a.containerLines(node, cursor)

	default:
		first, last = a.leafLines(node, cursor)
	}

	node.Span = mdast.SourceRange{
		Start: a.file.Lines[first].StartOffset,
		End:   a.file.Lines[last].NewlineStart,
	}
	return last + 1
}

// containerLines locates a list, list item or block quote from its children.
func (a *spanAssigner) containerLines(node *mdast.Node, cursor int) (int, int) {
	a.assignChildren(node, cursor)

	var firstChild, lastChild *mdast.Node
	for child := node.FirstChild; child != nil; child = child.Next {
		if !child.IsBlock() {
			continue
		}
		if firstChild == nil {
			firstChild = child
		}
		lastChild = child
	}

	if firstChild == nil {
		line := a.nextLine(cursor, isMarkerOnly)
		return line, line
	}

	first := a.file.LineIndex(firstChild.Span.Start)
	last := a.file.LineIndex(lastChild.Span.End)

	// A marker may sit alone on the line above the first child.
	for first > cursor && isMarkerOnly(a.line(first-1)) {
		first--
	}

	// Trailing ">" lines still belong to the quote.
	if node.Kind == mdast.NodeBlockquote {
		for last+1 < len(a.file.Lines) && isEmptyQuoteLine(a.line(last+1)) {
			last++
		}
	}

	return first, last
}

// leafLines locates a leaf block from its segments, adding the lines that
// belong to its syntax rather than its content.
func (a *spanAssigner) leafLines(node *mdast.Node, cursor int) (int, int) {
	if node.Kind == mdast.NodeTable {
		return a.tableLines(node, cursor)
	}

	segments := node.Segments
	if len(segments) == 0 {
		return a.segmentlessLines(node, cursor)
	}

	first := a.file.LineIndex(segments[0].Start)
	lastSeg := segments[len(segments)-1]
	lastOffset := lastSeg.Start
	if lastSeg.End > lastSeg.Start {
		lastOffset = lastSeg.End - 1
	}
	last := a.file.LineIndex(lastOffset)

	switch node.Kind {
	case mdast.NodeCodeBlock:
		if attrs := node.Block.CodeBlock; !attrs.Indented && first > 0 {
			first--
			a.readFence(attrs, first)
			if a.isClosingFence(attrs, last+1) {
				last++
				attrs.Closed = true
			}
		}

	case mdast.NodeHeading:
		if node.Block.Setext && last+1 < len(a.file.Lines) && isSetextUnderline(a.line(last+1)) {
			last++
		}

	default:
	}

	return first, last
}

// segmentlessLines locates blocks that have no content segments: thematic
// breaks, empty headings and empty fenced code blocks. Lines consumed by link
// reference definitions may sit between the cursor and the block, so the
// scan looks for the block's own syntax.
func (a *spanAssigner) segmentlessLines(node *mdast.Node, cursor int) (int, int) {
	match := hasContent
	switch node.Kind {
	case mdast.NodeThematicBreak:
		match = isThematicBreakLine
	case mdast.NodeHeading:
		match = isEmptyATXLine
	case mdast.NodeCodeBlock:
		match = func(line []byte) bool {
			_, _, ok := findFence(line)
			return ok
		}
	default:
	}

	first := a.nextLine(cursor, match)
	last := first

	if node.Kind == mdast.NodeCodeBlock && !node.Block.CodeBlock.Indented {
		attrs := node.Block.CodeBlock
		a.readFence(attrs, first)
		if a.isClosingFence(attrs, first+1) {
			last++
			attrs.Closed = true
		}
	}

	return first, last
}

// tableLines locates a table. Every row takes exactly one line, with the
// delimiter row after the header, so any located cell fixes the whole table.
func (a *spanAssigner) tableLines(node *mdast.Node, cursor int) (int, int) {
	table := node.Block.Table
	rows := append([][]mdast.Segment{table.Header}, table.Rows...)

	first := -1
	for idx, row := range rows {
		for _, cell := range row {
			if cell.Start < 0 {
				continue
			}
			first = a.file.LineIndex(cell.Start) - idx
			if idx > 0 {
				first--
			}
			break
		}
		if first >= 0 {
			break
		}
	}
	if first < cursor {
		first = a.nextLine(cursor, hasContent)
	}

	last := min(first+1+len(table.Rows), len(a.file.Lines)-1)
	return first, last
}

// readFence records the fence character and length of an opening fence line.
func (a *spanAssigner) readFence(attrs *mdast.CodeBlockAttrs, line int) {
	if char, length, ok := findFence(a.line(line)); ok {
		attrs.FenceChar = char
		attrs.FenceLength = length
	}
}

// isClosingFence reports whether line closes a fence opened with attrs.
func (a *spanAssigner) isClosingFence(attrs *mdast.CodeBlockAttrs, line int) bool {
	if line >= len(a.file.Lines) {
		return false
	}

	rest := bytes.TrimLeft(a.line(line), " \t>")
	run := 0
	for run < len(rest) && rest[run] == attrs.FenceChar {
		run++
	}
	return run >= attrs.FenceLength && len(bytes.TrimSpace(rest[run:])) == 0
}

// nextLine returns the first line at or after cursor that matches, or the
// last line of the file.
func (a *spanAssigner) nextLine(cursor int, match func([]byte) bool) int {
	for line := cursor; line < len(a.file.Lines); line++ {
		if match(a.line(line)) {
			return line
		}
	}
	return len(a.file.Lines) - 1
}

// line returns the bytes of a 0-based line without its newline.
func (a *spanAssigner) line(idx int) []byte {
	return a.file.LineContent(idx + 1)
}

// findFence returns the first run of three or more backticks or tildes.
func findFence(line []byte) (byte, int, bool) {
	for i := 0; i < len(line); i++ {
		char := line[i]
		if char != '`' && char != '~' {
			continue
		}
		run := i
		for run < len(line) && line[run] == char {
			run++
		}
		if run-i >= 3 {
			return char, run - i, true
		}
		i = run - 1
	}
	return 0, 0, false
}

func isBlankLine(line []byte) bool {
	return len(bytes.TrimSpace(line)) == 0
}

// isContentBlank reports whether a line holds nothing but quote markers.
func isContentBlank(line []byte) bool {
	return len(bytes.Trim(line, " \t>")) == 0
}

func hasContent(line []byte) bool {
	return !isContentBlank(line)
}

// stripMarkers removes quote markers and one list marker from a line.
func stripMarkers(line []byte) []byte {
	rest := bytes.TrimLeft(line, " \t>")
	if marker := listMarkerLen(rest); marker > 0 && (marker == len(rest) || rest[marker] == ' ' || rest[marker] == '\t') {
		rest = bytes.TrimLeft(rest[marker:], " \t>")
	}
	return rest
}

// isThematicBreakLine reports whether a line, with or without its container
// markers, is a run of three or more '-', '*' or '_'.
func isThematicBreakLine(line []byte) bool {
	return isThematicBreak(bytes.TrimLeft(line, " \t>")) || isThematicBreak(stripMarkers(line))
}

func isThematicBreak(text []byte) bool {
	var char byte
	count := 0
	for _, b := range text {
		switch {
		case b == ' ' || b == '\t':
		case char == 0 && (b == '-' || b == '*' || b == '_'):
			char = b
			count++
		case b == char:
			count++
		default:
			return false
		}
	}
	return count >= 3
}

// isEmptyATXLine reports whether a line is an ATX heading without content.
func isEmptyATXLine(line []byte) bool {
	rest := stripMarkers(line)
	level := 0
	for level < len(rest) && rest[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return false
	}
	return len(bytes.Trim(rest[level:], " \t#")) == 0
}

// isEmptyQuoteLine reports whether a line is a quote marker with no content.
func isEmptyQuoteLine(line []byte) bool {
	return bytes.ContainsRune(line, '>') && isContentBlank(line)
}

// isMarkerOnly reports whether a line holds only container markers: any
// number of '>' and at most one list marker.
func isMarkerOnly(line []byte) bool {
	rest := bytes.TrimLeft(line, " \t>")
	if len(rest) == 0 {
		return isEmptyQuoteLine(line)
	}

	marker := listMarkerLen(rest)
	if marker == 0 {
		return false
	}
	return len(bytes.Trim(rest[marker:], " \t>")) == 0
}

// listMarkerLen returns the length of a list marker at the start of s.
func listMarkerLen(s []byte) int {
	if len(s) == 0 {
		return 0
	}
	switch s[0] {
	case '-', '+', '*':
		return 1
	default:
	}

	digits := 0
	for digits < len(s) && digits < 9 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits == 0 || digits >= len(s) || (s[digits] != '.' && s[digits] != ')') {
		return 0
	}
	return digits + 1
}

// isSetextUnderline reports whether a line is a run of '=' or '-'.
func isSetextUnderline(line []byte) bool {
	rest := bytes.TrimSpace(bytes.TrimLeft(line, " \t>"))
	if len(rest) == 0 {
		return false
	}
	return len(bytes.Trim(rest, "=")) == 0 || len(bytes.Trim(rest, "-")) == 0
}
