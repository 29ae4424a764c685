package format

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// maxOrderedNumber is the largest number a list marker can hold.
const maxOrderedNumber = 999_999_999

// maxMarkerPadding is the widest gap between a marker and the item content
// before the content turns into indented code.
const maxMarkerPadding = 4

var bullets = []string{"-", "*", "+"}

// list writes its items one below the other; items of a loose list are
// separated by a blank line.
func (f *Formatter) list(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	if offset != ctx.BlockIndent() || node.FirstChild == nil {
		return layout.None()
	}

	sep := itemSeparator(node)
	indent := layout.Indent(ctx.BlockIndent())

	var b strings.Builder
	for item := node.FirstChild; item != nil; item = item.Next {
		if item != node.FirstChild {
			b.WriteString(sep)
			b.WriteString(indent)
		}
		text, ok := f.Rewrite(item, ctx, width, offset).Get()
		if !ok {
			return layout.None()
		}
		b.WriteString(text)
	}

	return layout.Some(b.String())
}

// listItem writes the item marker followed by the item's blocks. The content
// starts at the smallest number of indent units that clears the marker. The
// blocks are laid out without indentation of their own, against the columns
// right of the content column, and indented afterwards.
func (f *Formatter) listItem(node *mdast.Node, ctx layout.Context, width, offset int) layout.Result {
	if offset != ctx.BlockIndent() {
		return layout.None()
	}

	marker := f.itemMarker(node, ctx)
	unit := ctx.IndentUnit()
	if marker == "" || unit <= 0 {
		return layout.None()
	}
	if node.FirstChild == nil {
		return layout.Some(marker)
	}

	markerWidth := layout.Width(marker)
	levels := (markerWidth + unit) / unit
	child := ctx
	for range levels {
		child = child.Nested()
	}

	column := child.BlockIndent()
	padding := column - offset - markerWidth
	if padding < 1 || padding > maxMarkerPadding {
		return layout.None()
	}

	inner := ctx.Detached()
	region := offset + width - column
	sep := "\n"
	if node.Parent != nil {
		sep = itemSeparator(node.Parent)
	}

	var b strings.Builder
	for block := node.FirstChild; block != nil; block = block.Next {
		blockWidth := region
		if block.Next == nil {
			// The item's last line carries the content column.
			blockWidth = min(region, width-column)
		}
		text, ok := f.Rewrite(block, inner, blockWidth, 0).Get()
		if !ok {
			return layout.None()
		}

		if block != node.FirstChild {
			b.WriteString(sep)
		}
		b.WriteString(text)
	}

	content := indentBlock(b.String(), layout.Indent(column))
	if content == "" {
		return layout.Some(marker)
	}
	if strings.HasPrefix(content, "\n") {
		return layout.Some(marker + content)
	}
	return layout.Some(marker + layout.Indent(padding) + content)
}

func itemSeparator(list *mdast.Node) string {
	if list.Block != nil && list.Block.List != nil && !list.Block.List.Tight {
		return "\n\n"
	}
	return "\n"
}

// itemMarker returns the marker written before item, or "" when item does not
// belong to a list.
func (f *Formatter) itemMarker(item *mdast.Node, ctx layout.Context) string {
	list := item.Parent
	if list == nil || list.Kind != mdast.NodeList || list.Block == nil || list.Block.List == nil {
		return ""
	}

	attrs := list.Block.List
	if !attrs.Ordered {
		return f.bullet(list)
	}

	delimiter := "."
	if attrs.Delimiter == ")" {
		delimiter = ")"
	}

	index := 0
	for prev := item.Prev; prev != nil; prev = prev.Prev {
		index++
	}

	number := attrs.StartNumber + index
	switch f.cfg.OrderedStyle {
	case config.OrderedOne:
		number = attrs.StartNumber
	case config.OrderedPreserve:
		if n, ok := sourceNumber(item, ctx); ok {
			number = n
		}
	case config.OrderedAscending:
	}

	if number < 0 || number > maxOrderedNumber {
		return ""
	}
	return strconv.Itoa(number) + delimiter
}

// bullet returns the bullet of an unordered list. A list directly after
// another unordered list must use a different bullet or the two would merge.
func (f *Formatter) bullet(list *mdast.Node) string {
	want := string(f.cfg.Bullet)
	if !isBullet(want) {
		want = list.Block.List.BulletMarker
	}
	if !isBullet(want) {
		want = bullets[0]
	}

	prev := list.Prev
	if prev == nil || prev.Kind != mdast.NodeList || prev.Block == nil ||
		prev.Block.List == nil || prev.Block.List.Ordered {
		return want
	}

	taken := f.bullet(prev)
	if taken != want {
		return want
	}
	for _, alt := range bullets {
		if alt != taken {
			return alt
		}
	}
	return want
}

func isBullet(s string) bool {
	return s == "-" || s == "*" || s == "+"
}

var listMarkerToken = regexp.MustCompile(`^(?:[-+*]|(\d{1,9})[.)])$`)

// sourceNumber reads the number item was written with. The first line of an
// item may also hold the markers of enclosing items, so the marker is picked
// by the number of enclosing items that start on the same line.
func sourceNumber(item *mdast.Node, ctx layout.Context) (int, bool) {
	file := item.File
	if file == nil {
		return 0, false
	}

	lineIdx := file.LineIndex(item.Span.Start)
	depth := 0
	for parent := item.Parent; parent != nil; parent = parent.Parent {
		if parent.Kind == mdast.NodeListItem && parent.File != nil &&
			file.LineIndex(parent.Span.Start) == lineIdx {
			depth++
		}
	}

	line := ctx.Snippet(file.LineSpan(lineIdx))
	for _, token := range strings.Fields(line) {
		token = strings.TrimLeft(token, ">")
		if token == "" {
			continue
		}
		match := listMarkerToken.FindStringSubmatch(token)
		if match == nil {
			return 0, false
		}
		if depth > 0 {
			depth--
			continue
		}
		if match[1] == "" {
			return 0, false
		}
		n, err := strconv.Atoi(match[1])
		return n, err == nil
	}

	return 0, false
}
