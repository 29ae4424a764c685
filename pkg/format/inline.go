package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// inline renders an inline node on a single line. Paragraphs lay out their
// source text directly; this rule serves callers that rewrite inline nodes on
// their own.
func (f *Formatter) inline(node *mdast.Node, _ layout.Context, width, _ int) layout.Result {
	text, ok := renderInline(node)
	if !ok || strings.Contains(text, "\n") {
		return layout.None()
	}
	return fitting(text, width)
}

func renderInline(node *mdast.Node) (string, bool) {
	switch node.Kind {
	case mdast.NodeText, mdast.NodeHTMLInline:
		return inlineText(node), true
	case mdast.NodeSoftBreak:
		return " ", true
	case mdast.NodeHardBreak:
		return "", false
	case mdast.NodeEmphasis:
		return wrapChildren(node, "*")
	case mdast.NodeStrong:
		return wrapChildren(node, "**")
	case mdast.NodeStrikethrough:
		return wrapChildren(node, "~~")
	case mdast.NodeCodeSpan:
		return codeSpan(inlineText(node)), true
	case mdast.NodeLink, mdast.NodeImage:
		return renderLink(node)
	case mdast.NodeAutoLink:
		if node.Inline == nil || node.Inline.Link == nil {
			return "", false
		}
		return "<" + node.Inline.Link.Destination + ">", true
	case mdast.NodeTaskCheckbox:
		if node.Inline != nil && node.Inline.Checked {
			return "[x]", true
		}
		return "[ ]", true
	case mdast.NodeDocument, mdast.NodeParagraph, mdast.NodeHeading, mdast.NodeList,
		mdast.NodeListItem, mdast.NodeBlockquote, mdast.NodeCodeBlock, mdast.NodeThematicBreak,
		mdast.NodeHTMLBlock, mdast.NodeTable, mdast.NodeLinkDefinition, mdast.NodeFrontMatter,
		mdast.NodeRaw:
		return "", false
	default:
		return "", false
	}
}

func inlineText(node *mdast.Node) string {
	if node.Inline == nil {
		return ""
	}
	return string(node.Inline.Text)
}

func renderChildren(node *mdast.Node) (string, bool) {
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.Next {
		text, ok := renderInline(child)
		if !ok {
			return "", false
		}
		b.WriteString(text)
	}
	return b.String(), true
}

func wrapChildren(node *mdast.Node, delimiter string) (string, bool) {
	text, ok := renderChildren(node)
	if !ok {
		return "", false
	}
	return delimiter + text + delimiter, true
}

func renderLink(node *mdast.Node) (string, bool) {
	if node.Inline == nil || node.Inline.Link == nil {
		return "", false
	}

	label, ok := renderChildren(node)
	if !ok {
		return "", false
	}

	dest, ok := linkDestination(node.Inline.Link.Destination)
	if !ok {
		return "", false
	}
	target := dest
	if node.Inline.Link.Title != "" {
		title, ok := linkTitle(node.Inline.Link.Title)
		if !ok {
			return "", false
		}
		target += " " + title
	}

	prefix := "["
	if node.Kind == mdast.NodeImage {
		prefix = "!["
	}
	return prefix + label + "](" + target + ")", true
}

// codeSpan wraps text in a backtick run longer than any run inside it.
func codeSpan(text string) string {
	longest := 0
	for idx := 0; idx < len(text); {
		if text[idx] != '`' {
			idx++
			continue
		}
		run := countRun(text[idx:], '`')
		longest = max(longest, run)
		idx += run
	}

	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") ||
		(strings.HasPrefix(text, " ") && strings.HasSuffix(text, " ") && strings.Trim(text, " ") != "") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}
