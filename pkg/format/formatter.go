// Package format lays out Markdown syntax trees within a maximum line width.
//
// Every node kind has a rewrite rule. Rules compose through the layout
// protocol of package layout: a parent derives contexts for its children,
// asks them for a layout and falls back to another layout of its own when a
// child answers None. At the top of the tree a block without any layout is
// written back exactly as it appeared in the source.
package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// Formatter holds the rewrite rules of every node kind.
// A Formatter is safe for concurrent use if its Memo is.
type Formatter struct {
	cfg  *config.Config
	memo *layout.Memo
}

// NewFormatter creates a formatter. A nil cfg uses the defaults; a nil memo
// disables caching.
func NewFormatter(cfg *config.Config, memo *layout.Memo) *Formatter {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Formatter{cfg: cfg, memo: memo}
}

// Rewrite lays out node. It returns None when no layout of node respects
// width and offset under ctx, and for nodes nested deeper than the
// configured maximum depth. A returned layout always has a last line no
// wider than width.
func (f *Formatter) Rewrite(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	if node == nil || width < 0 {
		return layout.None()
	}
	if f.cfg.MaxDepth > 0 && node.Depth() > f.cfg.MaxDepth {
		return layout.None()
	}

	return f.memo.Do(node, ctx, width, offset, func(ctx layout.Context, width, offset int) layout.Result {
		result := f.rewrite(node, ctx, width, offset)
		if text, ok := result.Get(); ok && !layout.Fits(text, width) {
			return layout.None()
		}
		return result
	})
}

// RewriteFunc returns the rewrite of node as a layout.RewriteFunc.
func (f *Formatter) RewriteFunc(node *mdast.Node) layout.RewriteFunc {
	return func(ctx layout.Context, width, offset int) layout.Result {
		return f.Rewrite(node, ctx, width, offset)
	}
}

func (f *Formatter) rewrite(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	if node.Flag(mdast.ExtVerbatim) || node.Flag(mdast.ExtIgnored) {
		return f.verbatim(node, ctx, width, offset)
	}

	switch node.Kind {
	case mdast.NodeDocument:
		text, _ := f.Document(node, ctx)
		return layout.Some(text)
	case mdast.NodeParagraph:
		return f.paragraph(node, ctx, width, offset)
	case mdast.NodeHeading:
		return f.heading(node, ctx, width, offset)
	case mdast.NodeList:
		return f.list(node, ctx, width, offset)
	case mdast.NodeListItem:
		return f.listItem(node, ctx, width, offset)
	case mdast.NodeBlockquote:
		return f.blockquote(node, ctx, width, offset)
	case mdast.NodeCodeBlock:
		return f.codeBlock(node, ctx, width, offset)
	case mdast.NodeThematicBreak:
		return f.thematicBreak(node, ctx, width, offset)
	case mdast.NodeHTMLBlock:
		return f.htmlBlock(node, ctx, width, offset)
	case mdast.NodeTable:
		return f.table(node, ctx, width, offset)
	case mdast.NodeLinkDefinition:
		return f.linkDefinition(node, ctx, width, offset)
	case mdast.NodeFrontMatter, mdast.NodeRaw:
		return f.verbatim(node, ctx, width, offset)
	case mdast.NodeText, mdast.NodeEmphasis, mdast.NodeStrong, mdast.NodeStrikethrough,
		mdast.NodeCodeSpan, mdast.NodeLink, mdast.NodeImage, mdast.NodeAutoLink,
		mdast.NodeSoftBreak, mdast.NodeHardBreak, mdast.NodeHTMLInline, mdast.NodeTaskCheckbox:
		return f.inline(node, ctx, width, offset)
	default:
		return layout.None()
	}
}

// verbatim returns the source text of node. Source text carries its own
// indentation, so it is only usable at the start of an unindented line.
func (f *Formatter) verbatim(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	if ctx.BlockIndent() != 0 || offset != 0 {
		return layout.None()
	}

	return fitting(normalizeNewlines(ctx.Snippet(node.Span)), width)
}

// normalizeNewlines turns CRLF line endings into LF. The engine restores
// CRLF for files that use it.
func normalizeNewlines(text string) string {
	return strings.ReplaceAll(text, "\r\n", "\n")
}

// joinLines joins lines, writing indent before every non-empty line after the
// first.
func joinLines(lines []string, indent string) string {
	var b strings.Builder
	for idx, line := range lines {
		if idx > 0 {
			b.WriteByte('\n')
			if line != "" {
				b.WriteString(indent)
			}
		}
		b.WriteString(line)
	}
	return b.String()
}

// indentBlock writes indent before every non-empty line of text after the
// first.
func indentBlock(text, indent string) string {
	if indent == "" {
		return text
	}
	return joinLines(strings.Split(text, "\n"), indent)
}
