package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

const (
	quoteMarker      = ">"
	quotePrefix      = "> "
	quotePrefixWidth = len(quotePrefix)
)

// blockquote lays out its blocks without any indentation of their own and
// puts the quote marker in front of every line they produce.
func (f *Formatter) blockquote(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	indent := ctx.BlockIndent()
	if offset < indent {
		return layout.None()
	}
	if node.FirstChild == nil {
		return layout.Some(quoteMarker)
	}

	inner := ctx.Detached()
	innerOffset := offset - indent
	innerEdge := offset + width - indent - quotePrefixWidth

	// lastWidth bounds the last line of the last block in inner columns.
	render := func(lastWidth int) layout.RewriteFunc {
		return func(layout.Context, int, int) layout.Result {
			var blocks []string
			for block := node.FirstChild; block != nil; block = block.Next {
				blockOffset := 0
				if block == node.FirstChild {
					blockOffset = innerOffset
				}
				blockWidth := innerEdge - blockOffset
				if block.Next == nil {
					blockWidth = min(blockWidth, lastWidth)
				}

				text, ok := f.Rewrite(block, inner, blockWidth, blockOffset).Get()
				if !ok {
					return layout.None()
				}
				blocks = append(blocks, text)
			}
			return layout.Some(quoteLines(strings.Join(blocks, "\n\n"), layout.Indent(indent)))
		}
	}

	return layout.FirstFit(ctx, width, offset,
		render(innerEdge),
		render(width-indent-quotePrefixWidth),
	)
}

// quoteLines prefixes every line of text with the quote marker.
func quoteLines(text, indent string) string {
	lines := strings.Split(text, "\n")
	for idx, line := range lines {
		prefix := quotePrefix
		if line == "" {
			prefix = quoteMarker
		}
		if idx > 0 {
			prefix = indent + prefix
		}
		lines[idx] = prefix + line
	}
	return strings.Join(lines, "\n")
}
