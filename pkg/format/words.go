package format

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
)

// word is an unbreakable unit of paragraph text.
type word struct {
	text string

	// hardBreak is set on the last word of a line that ends in a hard break.
	hardBreak bool

	// backslash records that the hard break was written as a backslash.
	backslash bool
}

// sourceLine is one content line of a paragraph with its line ending removed.
type sourceLine struct {
	text      string
	hardBreak bool
	backslash bool
}

// splitWords splits the lines of a paragraph into words.
//
// Code spans, raw HTML, autolinks and angle-bracket link destinations stay in
// one word even when they contain spaces. A line break inside one of them
// becomes a single space, which is how Markdown reads it anyway.
func splitWords(lines []sourceLine) []word {
	texts := make([]string, len(lines))
	for idx, line := range lines {
		texts[idx] = line.text
	}
	text := strings.Join(texts, "\n")

	lex := lexer{text: text, lines: lines}
	return lex.run()
}

type lexer struct {
	text    string
	lines   []sourceLine
	line    int
	words   []word
	current strings.Builder
}

func (l *lexer) run() []word {
	text := l.text
	for pos := 0; pos < len(text); {
		c := text[pos]
		switch {
		case c == '\\' && pos+1 < len(text) && isASCIIPunct(text[pos+1]):
			l.current.WriteString(text[pos : pos+2])
			pos += 2
		case c == '\n':
			l.flush()
			l.endLine()
			pos++
		case c == ' ' || c == '\t':
			l.flush()
			pos++
		case c == '`':
			run := countRun(text[pos:], '`')
			end := codeSpanEnd(text, pos, run)
			if end < 0 {
				l.current.WriteString(text[pos : pos+run])
				pos += run
				continue
			}
			l.writeAtom(text[pos:end])
			pos = end
		case c == '(' && pos > 0 && text[pos-1] == ']':
			end := l.parenEnd(pos)
			if end < 0 {
				l.current.WriteByte(c)
				pos++
				continue
			}
			l.writeAtom(text[pos:end])
			pos = end
		case c == '<':
			end := l.angleEnd(pos)
			if end < 0 {
				l.current.WriteByte(c)
				pos++
				continue
			}
			l.writeAtom(text[pos:end])
			pos = end
		default:
			l.current.WriteByte(c)
			pos++
		}
	}
	l.flush()

	return l.words
}

func (l *lexer) flush() {
	if l.current.Len() == 0 {
		return
	}
	l.words = append(l.words, word{text: l.current.String()})
	l.current.Reset()
}

// endLine records a hard break at the end of the current source line on the
// last word produced so far.
func (l *lexer) endLine() {
	if l.line < len(l.lines) && l.lines[l.line].hardBreak && len(l.words) > 0 {
		last := &l.words[len(l.words)-1]
		last.hardBreak = true
		last.backslash = l.lines[l.line].backslash
	}
	l.line++
}

// writeAtom appends text that must stay in one word, counting the lines it
// spans.
func (l *lexer) writeAtom(atom string) {
	l.line += strings.Count(atom, "\n")
	l.current.WriteString(lineBreakInAtom.ReplaceAllString(atom, " "))
}

var lineBreakInAtom = regexp.MustCompile(`\n[ \t]*`)

// angleEnd returns the end of an HTML tag, autolink or angle-bracket link
// destination starting at pos, or -1.
func (l *lexer) angleEnd(pos int) int {
	text := l.text
	if pos+1 >= len(text) {
		return -1
	}

	destination := pos >= 2 && text[pos-2:pos] == "]("
	next := text[pos+1]
	if !destination && !isASCIILetter(next) && next != '/' && next != '!' && next != '?' {
		return -1
	}

	line := l.line
	for idx := pos + 1; idx < len(text); idx++ {
		switch text[idx] {
		case '>':
			return idx + 1
		case '\n':
			// Hard breaks are never part of a tag.
			if line < len(l.lines) && l.lines[line].hardBreak {
				return -1
			}
			line++
		}
	}

	return -1
}

// parenEnd returns the end of the parenthesized destination and title of an
// inline link starting at pos, or -1.
func (l *lexer) parenEnd(pos int) int {
	text := l.text
	var (
		depth int
		quote byte
		line  = l.line
	)
	for idx := pos; idx < len(text); idx++ {
		c := text[idx]
		switch {
		case c == '\\':
			idx++
		case c == '\n':
			if line < len(l.lines) && l.lines[line].hardBreak {
				return -1
			}
			line++
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case (c == '"' || c == '\'') && (text[idx-1] == ' ' || text[idx-1] == '\n'):
			quote = c
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return idx + 1
			}
		}
	}
	return -1
}

// codeSpanEnd returns the end of the code span whose opening backtick run of
// length run starts at pos, or -1 if the run is never closed.
func codeSpanEnd(text string, pos, run int) int {
	for idx := pos + run; idx < len(text); {
		if text[idx] != '`' {
			idx++
			continue
		}
		closing := countRun(text[idx:], '`')
		if closing == run {
			return idx + closing
		}
		idx += closing
	}
	return -1
}

func countRun(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

func isASCIIPunct(c byte) bool {
	return strings.IndexByte("!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~", c) >= 0
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// blockOpener matches words that start a different block when they begin a
// line: ATX heading markers, list markers, setext underlines, thematic break
// runs and table delimiter rows.
var blockOpener = regexp.MustCompile(`^(#{1,6}|\+|\d{1,9}[.)]|=+|\*+|_+|[|:-]+)$`)

// opensBlock reports whether w would change the meaning of a line it starts.
func opensBlock(w string) bool {
	if w == "" {
		return false
	}
	if blockOpener.MatchString(w) {
		return true
	}
	switch w[0] {
	case '>', '<':
		return true
	}
	return strings.HasPrefix(w, "```") || strings.HasPrefix(w, "~~~")
}

// endsWithEscape reports whether w ends in an odd number of backslashes, in
// which case a line break after it would become a hard break.
func endsWithEscape(w string) bool {
	n := 0
	for idx := len(w) - 1; idx >= 0 && w[idx] == '\\'; idx-- {
		n++
	}
	return n%2 == 1
}

// filler packs words into lines.
type filler struct {
	words []word

	// suffix renders the hard break after a word.
	suffix func(word) string

	// indent is the width of the indentation of every line after the first.
	indent int
}

// breakable reports whether a new line may start before words[idx].
func (f filler) breakable(idx int) bool {
	prev := f.words[idx-1]
	if prev.hardBreak {
		return true
	}
	return !opensBlock(f.words[idx].text) && !endsWithEscape(prev.text)
}

// fill packs words greedily so that the first line fits first and every later
// line, indentation included, fits edge. A word that is wider than its line on
// its own gets a line of its own. When the last line does not fit last it is
// split once more at its latest break.
func (f filler) fill(first, edge, last int) [][]word {
	var (
		lines   [][]word
		current []word
		width   int
	)

	limit := first
	for idx, w := range f.words {
		if idx == 0 {
			current = []word{w}
			width = layout.Width(w.text)
			continue
		}

		candidate := width + 1 + layout.Width(w.text)
		if f.words[idx-1].hardBreak || (candidate > limit && f.breakable(idx)) {
			lines = append(lines, current)
			current = []word{w}
			width = layout.Width(w.text)
			limit = edge - f.indent
			continue
		}

		current = append(current, w)
		width = candidate
	}
	if len(current) > 0 {
		lines = append(lines, current)
	}

	return f.splitLast(lines, last)
}

func (f filler) splitLast(lines [][]word, last int) [][]word {
	if len(lines) == 0 {
		return lines
	}

	tail := lines[len(lines)-1]
	if f.lineWidth(tail, len(lines) == 1) <= last {
		return lines
	}

	// Index of tail[0] in f.words.
	base := 0
	for _, line := range lines[:len(lines)-1] {
		base += len(line)
	}

	for cut := len(tail) - 1; cut > 0; cut-- {
		if !f.breakable(base + cut) {
			continue
		}
		if f.lineWidth(tail[cut:], false) <= last {
			head := append([][]word{}, lines[:len(lines)-1]...)
			return append(head, tail[:cut], tail[cut:])
		}
	}

	return lines
}

// lineWidth is the width of a line, including indentation on all lines but
// the first.
func (f filler) lineWidth(line []word, first bool) int {
	width := 0
	if !first {
		width = f.indent
	}
	for idx, w := range line {
		if idx > 0 {
			width++
		}
		width += layout.Width(w.text)
	}
	if len(line) > 0 {
		width += layout.Width(f.suffix(line[len(line)-1]))
	}
	return width
}

// render joins lines, writing indent before every line after the first.
func (f filler) render(lines [][]word, indent string) string {
	var b strings.Builder
	for lineIdx, line := range lines {
		if lineIdx > 0 {
			b.WriteByte('\n')
			b.WriteString(indent)
		}
		for idx, w := range line {
			if idx > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w.text)
		}
		if len(line) > 0 {
			b.WriteString(f.suffix(line[len(line)-1]))
		}
	}
	return b.String()
}
