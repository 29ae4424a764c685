package mdast

// NewNode returns a detached node of the given kind.
func NewNode(kind NodeKind) *Node {
	return &Node{Kind: kind}
}

// NewDocument returns an empty document root.
func NewDocument() *Node {
	return &Node{Kind: NodeDocument}
}

// AppendChild makes child the last child of parent, detaching it from any
// previous parent first.
func AppendChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	attach(parent, parent.LastChild, nil, child)
}

// PrependChild makes child the first child of parent.
func PrependChild(parent, child *Node) {
	if parent == nil || child == nil {
		return
	}
	attach(parent, nil, parent.FirstChild, child)
}

// InsertBefore places node immediately before sibling. It does nothing when
// sibling is detached.
func InsertBefore(sibling, node *Node) {
	if sibling == nil || node == nil || sibling.Parent == nil || sibling == node {
		return
	}
	Detach(node)
	attach(sibling.Parent, sibling.Prev, sibling, node)
}

// Detach removes node from its parent. A detached node keeps its children.
func Detach(node *Node) {
	parent := node.Parent
	if parent == nil {
		return
	}
	if node.Prev == nil {
		parent.FirstChild = node.Next
	} else {
		node.Prev.Next = node.Next
	}
	if node.Next == nil {
		parent.LastChild = node.Prev
	} else {
		node.Next.Prev = node.Prev
	}
	node.Parent, node.Prev, node.Next = nil, nil, nil
}

// attach links node between prev and next under parent. Either neighbour may
// be nil at the ends of the child list.
func attach(parent, prev, next, node *Node) {
	if node.Parent != nil {
		// prev and next were read before node moved; recompute them if
		// node was one of them.
		if prev == node {
			prev = node.Prev
		}
		if next == node {
			next = node.Next
		}
		Detach(node)
	}

	node.Parent, node.Prev, node.Next = parent, prev, next
	if prev == nil {
		parent.FirstChild = node
	} else {
		prev.Next = node
	}
	if next == nil {
		parent.LastChild = node
	} else {
		next.Prev = node
	}
}

// AppendSegment adds a content line to a leaf block and widens the block's
// span to cover it.
func AppendSegment(node *Node, seg Segment) {
	if node == nil {
		return
	}
	if len(node.Segments) == 0 && node.Span.IsEmpty() {
		node.Span = seg.SourceRange
	} else {
		node.Span = node.Span.Union(seg.SourceRange)
	}
	node.Segments = append(node.Segments, seg)
}

// SetFile points every node under root at file.
func SetFile(root *Node, file *FileSnapshot) {
	for node := range All(root) {
		node.File = file
	}
}
