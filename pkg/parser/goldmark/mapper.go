package goldmark

import (
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree.
type mapper struct {
	content []byte
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

// mapChildren recursively maps all children of a goldmark node to mdast nodes.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		mdNode := m.mapNode(child)
		if mdNode == nil {
			continue
		}
		mdast.AppendChild(parent, mdNode)

		// Line breaks live on goldmark text nodes; mdast keeps them as
		// siblings so the text itself is never lost.
		if textNode, ok := child.(*ast.Text); ok {
			if brk := m.mapLineBreak(textNode); brk != nil {
				mdast.AppendChild(parent, brk)
			}
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
// It returns nil for nodes that carry no content of their own.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	var node *mdast.Node

	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Document:
		node = mdast.NewNode(mdast.NodeDocument)
		m.mapChildren(gmNode, node)

	case *ast.Heading:
		node = m.mapHeading(gmn)

	case *ast.Paragraph, *ast.TextBlock:
		node = m.mapParagraph(gmNode)

	case *ast.List:
		node = m.mapList(gmn)

	case *ast.ListItem:
		node = mdast.NewNode(mdast.NodeListItem)
		m.mapChildren(gmNode, node)

	case *ast.Blockquote:
		node = mdast.NewNode(mdast.NodeBlockquote)
		m.mapChildren(gmNode, node)

	case *ast.FencedCodeBlock:
		node = m.mapFencedCodeBlock(gmn)

	case *ast.CodeBlock:
		node = m.mapIndentedCodeBlock(gmn)

	case *ast.ThematicBreak:
		node = mdast.NewNode(mdast.NodeThematicBreak)

	case *ast.HTMLBlock:
		node = m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		node = m.mapText(gmn)

	case *ast.Emphasis:
		node = m.mapEmphasis(gmn)

	case *ast.CodeSpan:
		node = m.mapCodeSpan(gmn)

	case *ast.Link:
		node = m.mapLink(gmn.Destination, gmn.Title, mdast.NodeLink, gmn)

	case *ast.Image:
		node = m.mapLink(gmn.Destination, gmn.Title, mdast.NodeImage, gmn)

	case *ast.AutoLink:
		node = m.mapAutoLink(gmn)

	case *ast.RawHTML:
		node = m.mapRawHTML(gmn)

	case *ast.String:
		node = mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}

	// GFM extension nodes.
	case *east.Strikethrough:
		node = mdast.NewNode(mdast.NodeStrikethrough)
		m.mapChildren(gmn, node)

	case *east.TaskCheckBox:
		node = mdast.NewNode(mdast.NodeTaskCheckbox)
		node.Inline = &mdast.InlineAttrs{Checked: gmn.IsChecked}

	case *east.Table:
		node = m.mapTable(gmn)

	default:
		// Unknown constructs are kept byte for byte.
		node = mdast.NewNode(mdast.NodeRaw)
		node.SetFlag(mdast.ExtVerbatim)
		if gmNode.Type() == ast.TypeBlock {
			m.appendLines(node, gmNode.Lines())
		}
	}

	return node
}

// mapParagraph converts paragraphs and the text blocks of tight list items.
// A paragraph whose lines were all consumed by link reference definitions
// has nothing left to map.
func (m *mapper) mapParagraph(gmNode ast.Node) *mdast.Node {
	if gmNode.Lines().Len() == 0 {
		return nil
	}

	node := mdast.NewNode(mdast.NodeParagraph)
	m.appendLines(node, gmNode.Lines())
	m.mapChildren(gmNode, node)
	return node
}

// mapHeading converts a goldmark Heading to an mdast node.
func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = &mdast.BlockAttrs{HeadingLevel: h.Level}
	m.appendLines(node, h.Lines())
	node.Block.Setext = m.isSetext(h)
	m.mapChildren(h, node)
	return node
}

// isSetext reports whether a heading was written with an underline. ATX
// content is always preceded by '#' markers on its own line.
func (m *mapper) isSetext(h *ast.Heading) bool {
	lines := h.Lines()
	if lines.Len() == 0 {
		return false
	}

	pos := lines.At(0).Start
	for pos > 0 && (m.content[pos-1] == ' ' || m.content[pos-1] == '\t') {
		pos--
	}
	return pos == 0 || m.content[pos-1] != '#'
}

// mapList converts a goldmark List to an mdast node.
func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	listAttrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}

	// goldmark stores the bullet character, or the delimiter of an ordered
	// list, in Marker.
	if list.IsOrdered() {
		listAttrs.Delimiter = string(list.Marker)
	} else {
		listAttrs.BulletMarker = string(list.Marker)
	}

	node.Block = &mdast.BlockAttrs{List: listAttrs}
	m.mapChildren(list, node)
	return node
}

// mapFencedCodeBlock converts a goldmark FencedCodeBlock to an mdast node.
// The fence style is read from the opening line once spans are known.
func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.content))
	}

	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
		FenceChar:   '`',
		FenceLength: 3,
		Info:        info,
	}}
	m.appendLines(node, codeBlock.Lines())
	return node
}

// mapIndentedCodeBlock converts a goldmark indented CodeBlock to an mdast node.
func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{
		Indented: true,
		Closed:   true,
	}}
	m.appendLines(node, codeBlock.Lines())
	return node
}

// mapHTMLBlock converts an HTML block, including its closing line.
func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)
	m.appendLines(node, block.Lines())
	if block.HasClosure() {
		mdast.AppendSegment(node, toSegment(block.ClosureLine))
	}
	return node
}

// mapText converts a goldmark Text node to an mdast node.
func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	node := mdast.NewNode(mdast.NodeText)
	node.Inline = &mdast.InlineAttrs{Text: textNode.Value(m.content)}
	node.Span = mdast.SourceRange{Start: textNode.Segment.Start, End: textNode.Segment.Stop}
	return node
}

// mapLineBreak returns the break that follows a text node, if any. The break
// is placed at the end of the text so consumers can match it to a line.
func (m *mapper) mapLineBreak(textNode *ast.Text) *mdast.Node {
	var kind mdast.NodeKind
	switch {
	case textNode.HardLineBreak():
		kind = mdast.NodeHardBreak
	case textNode.SoftLineBreak():
		kind = mdast.NodeSoftBreak
	default:
		return nil
	}

	node := mdast.NewNode(kind)
	end := textNode.Segment.Stop
	node.Span = mdast.SourceRange{Start: end, End: end}
	return node
}

// mapEmphasis converts a goldmark Emphasis node to an mdast node.
func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	var node *mdast.Node

	if emphasis.Level == 2 {
		node = mdast.NewNode(mdast.NodeStrong)
		node.Inline = &mdast.InlineAttrs{EmphasisLevel: 2}
	} else {
		node = mdast.NewNode(mdast.NodeEmphasis)
		node.Inline = &mdast.InlineAttrs{EmphasisLevel: 1}
	}

	m.mapChildren(emphasis, node)
	return node
}

// mapCodeSpan converts a goldmark CodeSpan to an mdast node.
func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var (
		content []byte
		span    mdast.SourceRange
		first   = true
	)
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		textNode, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		content = append(content, textNode.Value(m.content)...)
		seg := mdast.SourceRange{Start: textNode.Segment.Start, End: textNode.Segment.Stop}
		if first {
			span = seg
			first = false
		} else {
			span = span.Union(seg)
		}
	}

	node.Inline = &mdast.InlineAttrs{Text: content}
	node.Span = span
	return node
}

// mapLink converts a goldmark Link or Image to an mdast node.
func (m *mapper) mapLink(destination, title []byte, kind mdast.NodeKind, gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination: string(destination),
		Title:       string(title),
	}}
	m.mapChildren(gmNode, node)
	return node
}

// mapAutoLink converts a goldmark AutoLink to an mdast node.
func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeAutoLink)
	node.Inline = &mdast.InlineAttrs{
		Text: al.Label(m.content),
		Link: &mdast.LinkAttrs{Destination: string(al.URL(m.content))},
	}
	return node
}

// mapRawHTML converts inline HTML, keeping the range it occupies.
func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLInline)

	segs := raw.Segments
	if segs.Len() > 0 {
		node.Span = mdast.SourceRange{Start: segs.At(0).Start, End: segs.At(segs.Len() - 1).Stop}
	}
	node.Inline = &mdast.InlineAttrs{Text: segs.Value(m.content)}
	return node
}

// mapTable converts a GFM table. Cells keep their source ranges; their
// inline content is not mapped.
func (m *mapper) mapTable(table *east.Table) *mdast.Node {
	node := mdast.NewNode(mdast.NodeTable)

	attrs := &mdast.TableAttrs{}
	for _, alignment := range table.Alignments {
		attrs.Alignments = append(attrs.Alignments, toAlignment(alignment))
	}

	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cells := m.tableCells(row, len(attrs.Alignments))
		if _, isHeader := row.(*east.TableHeader); isHeader {
			attrs.Header = cells
			continue
		}
		attrs.Rows = append(attrs.Rows, cells)
	}

	node.Block = &mdast.BlockAttrs{Table: attrs}
	return node
}

// emptyCell stands for a table cell with no content.
var emptyCell = mdast.Segment{SourceRange: mdast.SourceRange{Start: -1, End: -1}}

// tableCells collects the cells of one row, padded to the column count.
func (m *mapper) tableCells(row ast.Node, columns int) []mdast.Segment {
	cells := make([]mdast.Segment, 0, columns)
	for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
		seg := emptyCell
		if lines := cell.Lines(); lines.Len() > 0 {
			if first := lines.At(0); first.Len() > 0 {
				seg = toSegment(first)
			}
		}
		cells = append(cells, seg)
	}
	for len(cells) < columns {
		cells = append(cells, emptyCell)
	}
	return cells
}

// appendLines copies goldmark line segments onto a leaf block.
func (m *mapper) appendLines(node *mdast.Node, lines *text.Segments) {
	for i := range lines.Len() {
		mdast.AppendSegment(node, toSegment(lines.At(i)))
	}
}

func toSegment(seg text.Segment) mdast.Segment {
	return mdast.Segment{
		SourceRange: mdast.SourceRange{Start: seg.Start, End: seg.Stop},
		Padding:     seg.Padding,
	}
}

func toAlignment(alignment east.Alignment) mdast.Alignment {
	switch alignment {
	case east.AlignLeft:
		return mdast.AlignLeft
	case east.AlignCenter:
		return mdast.AlignCenter
	case east.AlignRight:
		return mdast.AlignRight
	case east.AlignNone:
		return mdast.AlignNone
	default:
		return mdast.AlignNone
	}
}
