package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/langdetect"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// indentedCodeWidth is the indentation that makes a line indented code.
const indentedCodeWidth = 4

// minFenceLength is the shortest fence Markdown accepts.
const minFenceLength = 3

func (f *Formatter) codeBlock(node *mdast.Node, ctx layout.Context, _, offset int) layout.Result {
	attrs := node.Block.CodeBlock
	if attrs == nil {
		return layout.None()
	}
	if attrs.Indented {
		return f.indentedCode(node, ctx, offset)
	}
	return f.fencedCode(node, ctx)
}

// codeLines returns the content lines of a code block without line endings.
func codeLines(node *mdast.Node, ctx layout.Context) []string {
	lines := make([]string, 0, len(node.Segments))
	for _, seg := range node.Segments {
		text := strings.TrimRight(ctx.Snippet(seg.SourceRange), "\r\n")
		if text == "" {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, layout.Indent(seg.Padding)+text)
	}
	return lines
}

// fencedCode writes a fenced code block with its content unchanged. The fence
// grows when the content holds a line that would otherwise close it.
func (f *Formatter) fencedCode(node *mdast.Node, ctx layout.Context) layout.Result {
	attrs := node.Block.CodeBlock
	lines := codeLines(node, ctx)

	char := attrs.FenceChar
	if char != '`' && char != '~' {
		char = '`'
	}

	length := max(attrs.FenceLength, minFenceLength)
	for _, line := range lines {
		length = max(length, countRun(strings.TrimLeft(line, " \t"), char)+1)
	}
	fence := strings.Repeat(string(char), length)

	info := attrs.Info
	if info == "" && f.cfg.InferFenceLanguage && len(lines) > 0 {
		if lang, ok := langdetect.Detect([]byte(strings.Join(lines, "\n"))); ok {
			info = lang
		}
	}
	if char == '`' && strings.ContainsRune(info, '`') {
		return layout.None()
	}

	out := make([]string, 0, len(lines)+2)
	out = append(out, fence+info)
	out = append(out, lines...)
	out = append(out, fence)

	return layout.Some(joinLines(out, layout.Indent(ctx.BlockIndent())))
}

// indentedCode writes an indented code block four columns past the block
// indentation.
func (f *Formatter) indentedCode(node *mdast.Node, ctx layout.Context, offset int) layout.Result {
	if offset != ctx.BlockIndent() {
		return layout.None()
	}

	// After a list the block would be read as a continuation of the last item;
	// as the first block of an item it would change the item's indentation.
	if prev := node.Prev; prev != nil && prev.Kind == mdast.NodeList {
		return layout.None()
	}
	if node.Parent != nil && node.Parent.Kind == mdast.NodeListItem && node.Prev == nil {
		return layout.None()
	}

	lines := codeLines(node, ctx)
	if len(lines) == 0 {
		return layout.None()
	}

	pad := layout.Indent(indentedCodeWidth)
	out := make([]string, len(lines))
	for idx, line := range lines {
		if line != "" {
			out[idx] = pad + line
		}
	}

	return layout.Some(joinLines(out, layout.Indent(ctx.BlockIndent())))
}

// htmlBlock writes the lines of an HTML block unchanged apart from the
// indentation of the first line. Its last line cannot be rewrapped, so it
// fails when that line is wider than width.
func (f *Formatter) htmlBlock(node *mdast.Node, ctx layout.Context, width, _ int) layout.Result {
	lines := make([]string, 0, len(node.Segments))
	for _, seg := range node.Segments {
		lines = append(lines, strings.TrimRight(ctx.Snippet(seg.SourceRange), "\r\n"))
	}
	if len(lines) == 0 {
		return layout.None()
	}
	lines[0] = strings.TrimLeft(lines[0], " ")

	return fitting(joinLines(lines, layout.Indent(ctx.BlockIndent())), width)
}

// thematicBreak writes the configured thematic break, switching to another
// character where the configured one would be read as something else.
func (f *Formatter) thematicBreak(node *mdast.Node, ctx layout.Context, _, _ int) layout.Result {
	text := f.cfg.ThematicBreak
	if text == "" {
		text = "---"
	}

	forbidden := map[byte]bool{}
	if parent := node.Parent; parent != nil && parent.Kind == mdast.NodeListItem {
		// Dashes under a paragraph make a setext heading.
		if node.Prev != nil && node.Prev.Kind == mdast.NodeParagraph {
			forbidden['-'] = true
		}
		// A break sharing the item's bullet reads as a break of its own.
		if node.Prev == nil {
			if marker := f.itemMarker(parent, ctx); marker != "" {
				forbidden[marker[0]] = true
			}
		}
	}

	if !forbidden[breakChar(text)] {
		return layout.Some(text)
	}
	for _, alt := range []string{"***", "---", "___"} {
		if !forbidden[alt[0]] {
			return layout.Some(alt)
		}
	}
	return layout.None()
}

func breakChar(text string) byte {
	trimmed := strings.TrimLeft(text, " ")
	if trimmed == "" {
		return 0
	}
	return trimmed[0]
}
