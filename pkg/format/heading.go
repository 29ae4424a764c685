package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// heading writes an ATX heading on a single line, or returns None when that
// line is wider than width. Setext headings are converted.
func (f *Formatter) heading(node *mdast.Node, ctx layout.Context, width, _ int) layout.Result {
	level := node.Block.HeadingLevel
	if level < 1 || level > 6 {
		return layout.None()
	}

	var lines []sourceLine
	for _, seg := range node.Segments {
		raw := strings.TrimRight(ctx.Snippet(seg.SourceRange), "\r\n")
		lines = append(lines, sourceLine{text: strings.Trim(raw, " \t")})
	}

	for child := range mdast.Inlines(node) {
		if child.Kind == mdast.NodeHardBreak {
			return layout.None()
		}
	}

	marker := strings.Repeat("#", level)
	words := splitWords(lines)
	if len(words) == 0 {
		return fitting(marker, width)
	}

	// A trailing run of '#' would be read as a closing sequence.
	if strings.Trim(words[len(words)-1].text, "#") == "" {
		return layout.None()
	}

	texts := make([]string, len(words))
	for idx, w := range words {
		texts[idx] = w.text
	}
	return fitting(marker+" "+strings.Join(texts, " "), width)
}

// fitting returns text when its last line fits width, and None otherwise.
func fitting(text string, width int) layout.Result {
	if !layout.Fits(text, width) {
		return layout.None()
	}
	return layout.Some(text)
}
