package format

import (
	"regexp"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// Ignore directives are HTML comments between top-level blocks.
//
//	<!-- gomdfmt-ignore -->        keeps the next block as written
//	<!-- gomdfmt-ignore-start -->  keeps every block up to the matching
//	<!-- gomdfmt-ignore-end -->    end directive, or to the end of the file
var ignoreDirective = regexp.MustCompile(`^<!--\s*gomdfmt-ignore(-start|-end)?\s*-->$`)

type directive int

const (
	directiveNone directive = iota
	directiveNext
	directiveStart
	directiveEnd
)

// MarkIgnored flags the top-level blocks covered by ignore directives with
// mdast.ExtIgnored and returns how many were flagged.
func MarkIgnored(root *mdast.Node) int {
	if root == nil {
		return 0
	}

	var (
		count    int
		inRegion bool
		skipNext bool
	)
	for child := root.FirstChild; child != nil; child = child.Next {
		kind := directiveOf(child)
		switch {
		case inRegion && kind == directiveEnd:
			inRegion = false
		case inRegion:
			child.SetFlag(mdast.ExtIgnored)
			count++
		case kind == directiveStart:
			inRegion = true
		case kind == directiveNext:
			skipNext = true
			continue
		case skipNext:
			child.SetFlag(mdast.ExtIgnored)
			count++
		}
		skipNext = false
	}

	return count
}

func directiveOf(node *mdast.Node) directive {
	if node.Kind != mdast.NodeHTMLBlock {
		return directiveNone
	}

	match := ignoreDirective.FindStringSubmatch(strings.TrimSpace(string(node.Text())))
	if match == nil {
		return directiveNone
	}

	switch match[1] {
	case "-start":
		return directiveStart
	case "-end":
		return directiveEnd
	default:
		return directiveNext
	}
}
