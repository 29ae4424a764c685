package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// paragraph lays out the words of a paragraph. It prefers the whole paragraph
// on the current line and otherwise fills lines up to the right edge of the
// region, offset + width, splitting the last line once more when it is wider
// than width. The fill fails only when the paragraph ends in an unbreakable
// run of words wider than width.
func (f *Formatter) paragraph(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	words := splitWords(f.paragraphLines(node, ctx))
	if len(words) == 0 {
		return layout.Some("")
	}

	fill := filler{
		words:  words,
		suffix: f.hardBreakSuffix,
		indent: layout.Width(ctx.ContinuationIndent()),
	}

	return layout.FirstFit(ctx, width, offset,
		func(layout.Context, int, int) layout.Result {
			for _, w := range words[:len(words)-1] {
				if w.hardBreak {
					return layout.None()
				}
			}
			return layout.Some(fill.render([][]word{words}, ""))
		},
		func(ctx layout.Context, width, offset int) layout.Result {
			lines := fill.fill(width, offset+width, width)
			return layout.Some(fill.render(lines, ctx.ContinuationIndent()))
		},
	)
}

// paragraphLines returns the trimmed content lines of a paragraph and marks
// the ones that end in a hard break.
func (f *Formatter) paragraphLines(node *mdast.Node, ctx layout.Context) []sourceLine {
	lines := make([]sourceLine, 0, len(node.Segments))
	for _, seg := range node.Segments {
		raw := strings.TrimRight(ctx.Snippet(seg.SourceRange), "\r\n")
		lines = append(lines, sourceLine{text: strings.Trim(raw, " \t")})
	}

	for child := range mdast.Inlines(node) {
		if child.Kind != mdast.NodeHardBreak {
			continue
		}
		idx := segmentAt(node.Segments, child.Span.Start)
		if idx < 0 || idx == len(lines)-1 {
			continue
		}

		line := &lines[idx]
		line.hardBreak = true
		if !strings.HasSuffix(line.text, "\\") {
			continue
		}

		raw := strings.TrimRight(ctx.Snippet(node.Segments[idx].SourceRange), "\r\n")
		if !strings.HasSuffix(raw, " ") && !strings.HasSuffix(raw, "\t") {
			line.backslash = true
			line.text = strings.TrimRight(strings.TrimSuffix(line.text, "\\"), " \t")
		}
	}

	return lines
}

// segmentAt returns the index of the segment containing offset, or -1.
func segmentAt(segments []mdast.Segment, offset int) int {
	for idx, seg := range segments {
		if seg.Start <= offset && offset <= seg.End {
			return idx
		}
	}
	return -1
}

// hardBreakSuffix renders the hard break that follows w, if any.
func (f *Formatter) hardBreakSuffix(w word) string {
	if !w.hardBreak {
		return ""
	}

	switch f.cfg.HardBreak {
	case config.HardBreakBackslash:
		if endsWithEscape(w.text) {
			return "  "
		}
		return "\\"
	case config.HardBreakSpaces:
		return "  "
	case config.HardBreakPreserve:
	}

	if w.backslash {
		return "\\"
	}
	return "  "
}
