package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// Document lays out the top-level blocks of root at the configured width,
// separated by one blank line, and terminates the output with a newline.
//
// A block without a layout is written as it appeared in the source. The
// second result counts those blocks; blocks excluded by an ignore directive
// are not counted.
func (f *Formatter) Document(root *mdast.Node, ctx layout.Context) (string, int) {
	var (
		blocks    []string
		fallbacks int
	)

	width := ctx.MaxWidth()
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Flag(mdast.ExtIgnored) {
			blocks = append(blocks, normalizeNewlines(ctx.Snippet(child.Span)))
			continue
		}

		text, ok := f.Rewrite(child, ctx, width, 0).Get()
		if !ok {
			text = normalizeNewlines(ctx.Snippet(child.Span))
		}
		if !ok || child.Flag(mdast.ExtVerbatim) {
			fallbacks++
		}
		blocks = append(blocks, text)
	}

	if len(blocks) == 0 {
		return "", 0
	}
	return strings.Join(blocks, "\n\n") + "\n", fallbacks
}
