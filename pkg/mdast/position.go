package mdast

import "github.com/yaklabco/gomdfmt/pkg/layout"

// SourceRange is a half-open byte range of a FileSnapshot's content.
type SourceRange = layout.Span

// HasSpan reports whether the node is tied to bytes of its file. Only the
// document may have an empty span.
func (n *Node) HasSpan() bool {
	if n.File == nil || !n.Span.Valid(len(n.File.Content)) {
		return false
	}
	return n.Kind == NodeDocument || !n.Span.IsEmpty()
}

// Text returns the source bytes covered by the node, or nil for nodes
// without a span.
func (n *Node) Text() []byte {
	if !n.HasSpan() {
		return nil
	}
	return n.File.Content[n.Span.Start:n.Span.End]
}
