package mdast

// BlockAttrs carries the construct-specific data of a block node. Only the
// field matching the node's Kind is set.
type BlockAttrs struct {
	// HeadingLevel is 1 through 6.
	HeadingLevel int

	// Setext records a heading written as text over an underline. The
	// formatter always writes ATX headings; the flag only feeds diagnostics.
	Setext bool

	List           *ListAttrs
	CodeBlock      *CodeBlockAttrs
	Table          *TableAttrs
	LinkDefinition *LinkDefinitionAttrs
}

// ListAttrs describes a list as it was written.
type ListAttrs struct {
	Ordered bool

	// BulletMarker is "-", "+" or "*" for bullet lists.
	BulletMarker string

	// StartNumber and Delimiter ("." or ")") describe ordered lists.
	StartNumber int
	Delimiter   string

	// Tight lists have no blank line between or inside their items.
	Tight bool
}

// CodeBlockAttrs describes a fenced or indented code block.
type CodeBlockAttrs struct {
	// FenceChar is '`' or '~'; zero for indented blocks.
	FenceChar   byte
	FenceLength int

	// Info is the trimmed info string after the opening fence.
	Info string

	Indented bool

	// Closed is false when a fence ran to the end of its container.
	Closed bool
}

// Alignment of a table column, read from the delimiter row.
type Alignment uint8

const (
	AlignNone Alignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableAttrs holds a GFM table cell by cell.
type TableAttrs struct {
	// Alignments has one entry per column.
	Alignments []Alignment

	Header []Segment

	// Rows is padded so every row has Columns cells; padding cells are empty
	// segments.
	Rows [][]Segment
}

// Columns returns the number of columns.
func (t *TableAttrs) Columns() int {
	return len(t.Alignments)
}

// LinkDefinitionAttrs holds the parsed parts of "[label]: destination title".
type LinkDefinitionAttrs struct {
	Label       string
	Destination string
	Title       string
}

// InlineAttrs carries the construct-specific data of an inline node.
type InlineAttrs struct {
	// Text is the literal content of text, code spans, raw HTML and
	// autolinks.
	Text []byte

	// Link is set for links, images and autolinks.
	Link *LinkAttrs

	// EmphasisLevel is 1 for emphasis and 2 for strong.
	EmphasisLevel int

	// Checked is the state of a task checkbox.
	Checked bool
}

// LinkAttrs holds a link destination and its optional title.
type LinkAttrs struct {
	Destination string
	Title       string
}
