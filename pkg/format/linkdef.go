package format

import (
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// linkDefinition writes a link reference definition on one line, or with the
// title on an overflow line below it.
func (f *Formatter) linkDefinition(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	attrs := node.Block.LinkDefinition
	if attrs == nil || attrs.Label == "" {
		return layout.None()
	}

	destination, ok := linkDestination(attrs.Destination)
	if !ok {
		return layout.None()
	}
	head := "[" + attrs.Label + "]: " + destination

	if attrs.Title == "" {
		return fitting(head, width)
	}

	title, ok := linkTitle(attrs.Title)
	if !ok {
		return layout.None()
	}

	return layout.FirstFit(ctx, width, offset,
		func(layout.Context, int, int) layout.Result {
			return layout.Some(head + " " + title)
		},
		func(ctx layout.Context, _, _ int) layout.Result {
			overflow := ctx.Overflow(ctx.IndentUnit())
			return layout.Some(head + "\n" + overflow.ContinuationIndent() + title)
		},
	)
}

// linkDestination writes a destination, in angle brackets when it is empty or
// holds characters a bare destination cannot.
func linkDestination(dest string) (string, bool) {
	if dest != "" && !strings.ContainsAny(dest, " \t()") {
		return dest, true
	}
	if strings.ContainsAny(dest, "<>\n") {
		return "", false
	}
	return "<" + dest + ">", true
}

// linkTitle quotes a title with the first delimiter it does not contain.
func linkTitle(title string) (string, bool) {
	switch {
	case !strings.Contains(title, `"`):
		return `"` + title + `"`, true
	case !strings.Contains(title, "'"):
		return "'" + title + "'", true
	case !strings.ContainsAny(title, "()"):
		return "(" + title + ")", true
	default:
		return "", false
	}
}
