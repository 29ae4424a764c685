package mdast

import "strconv"

// NodeKind classifies the type of an AST node.
//
// The set of kinds is closed: every consumer dispatches on Kind with an
// exhaustive switch, and adding a kind means teaching every such switch about
// it.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock
	NodeTable
	NodeLinkDefinition
	NodeFrontMatter

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeStrikethrough
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeAutoLink
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline
	NodeTaskCheckbox

	// Fallback for content that is kept byte for byte.
	NodeRaw

	nodeKindCount
)

var nodeKindNames = [nodeKindCount]string{
	NodeDocument:       "Document",
	NodeParagraph:      "Paragraph",
	NodeHeading:        "Heading",
	NodeList:           "List",
	NodeListItem:       "ListItem",
	NodeBlockquote:     "Blockquote",
	NodeCodeBlock:      "CodeBlock",
	NodeThematicBreak:  "ThematicBreak",
	NodeHTMLBlock:      "HTMLBlock",
	NodeTable:          "Table",
	NodeLinkDefinition: "LinkDefinition",
	NodeFrontMatter:    "FrontMatter",
	NodeText:           "Text",
	NodeEmphasis:       "Emphasis",
	NodeStrong:         "Strong",
	NodeStrikethrough:  "Strikethrough",
	NodeCodeSpan:       "CodeSpan",
	NodeLink:           "Link",
	NodeImage:          "Image",
	NodeAutoLink:       "AutoLink",
	NodeSoftBreak:      "SoftBreak",
	NodeHardBreak:      "HardBreak",
	NodeHTMLInline:     "HTMLInline",
	NodeTaskCheckbox:   "TaskCheckbox",
	NodeRaw:            "Raw",
}

func (k NodeKind) String() string {
	if k < nodeKindCount {
		return nodeKindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Extension flags stored in Node.Ext.
const (
	// ExtVerbatim marks a block whose original text must be kept unchanged.
	ExtVerbatim = "verbatim"

	// ExtIgnored marks a block excluded by an ignore directive.
	ExtIgnored = "ignored"
)

// Node is one construct of a parsed document. Children form a doubly linked
// list; use the functions in tree.go to keep the links consistent.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// Span is the node's extent in the source. For block nodes it is line
	// aligned: it starts at the beginning of the first line (container
	// prefixes included) and ends before the newline of the last line.
	Span SourceRange

	// Segments holds the content lines of leaf blocks with container prefixes
	// removed: paragraph and heading text, code and HTML lines, table cells.
	Segments []Segment

	File *FileSnapshot

	Block  *BlockAttrs
	Inline *InlineAttrs

	// Ext holds flags set after parsing, such as ExtVerbatim.
	Ext map[string]any
}

// Segment is one content line of a leaf block.
type Segment struct {
	SourceRange

	// Padding is the number of spaces that precede the bytes of the range,
	// produced when a tab was only partially consumed by indentation.
	Padding int
}

// IsBlock reports whether the node is a block. The document counts as one.
func (n *Node) IsBlock() bool {
	switch n.Kind {
	case NodeDocument, NodeParagraph, NodeHeading, NodeList, NodeListItem,
		NodeBlockquote, NodeCodeBlock, NodeThematicBreak, NodeHTMLBlock,
		NodeTable, NodeLinkDefinition, NodeFrontMatter, NodeRaw:
		return true
	default:
		return false
	}
}

// IsInline reports whether the node lives inside a paragraph or heading.
func (n *Node) IsInline() bool {
	switch n.Kind {
	case NodeText, NodeEmphasis, NodeStrong, NodeStrikethrough, NodeCodeSpan,
		NodeLink, NodeImage, NodeAutoLink, NodeSoftBreak, NodeHardBreak,
		NodeHTMLInline, NodeTaskCheckbox:
		return true
	default:
		return false
	}
}

// IsContainer reports whether the node holds block children.
func (n *Node) IsContainer() bool {
	switch n.Kind {
	case NodeDocument, NodeList, NodeListItem, NodeBlockquote:
		return true
	default:
		return false
	}
}

// Flag reports whether the boolean extension attribute key is set.
func (n *Node) Flag(key string) bool {
	if n.Ext == nil {
		return false
	}
	set, _ := n.Ext[key].(bool)
	return set
}

// SetFlag sets the boolean extension attribute key.
func (n *Node) SetFlag(key string) {
	if n.Ext == nil {
		n.Ext = make(map[string]any)
	}
	n.Ext[key] = true
}

// Depth counts the node's ancestors; top-level blocks have depth 1.
func (n *Node) Depth() int {
	depth := 0
	for parent := n.Parent; parent != nil; parent = parent.Parent {
		depth++
	}
	return depth
}
