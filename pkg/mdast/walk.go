package mdast

import "iter"

// Walk calls visit for root and every descendant in document order and
// stops at the first error, which it returns.
func Walk(root *Node, visit func(*Node) error) error {
	var err error
	for node := range All(root) {
		if err = visit(node); err != nil {
			break
		}
	}
	return err
}

// All yields root and its descendants in document order. The walk is
// iterative, so deeply nested input cannot exhaust the stack.
func All(root *Node) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node := root; node != nil; node = following(node, root) {
			if !yield(node) {
				return
			}
		}
	}
}

// following returns the node after n in a pre-order walk of root, or nil
// once the walk is done.
func following(n, root *Node) *Node {
	if n.FirstChild != nil {
		return n.FirstChild
	}
	for ; n != root; n = n.Parent {
		if n.Next != nil {
			return n.Next
		}
	}
	return nil
}

// Blocks yields the block nodes under root, root included.
func Blocks(root *Node) iter.Seq[*Node] {
	return matching(root, (*Node).IsBlock)
}

// Inlines yields the inline nodes under root.
func Inlines(root *Node) iter.Seq[*Node] {
	return matching(root, (*Node).IsInline)
}

// FindByKind collects the nodes of the given kind under root.
func FindByKind(root *Node, kind NodeKind) []*Node {
	var found []*Node
	for node := range matching(root, func(n *Node) bool { return n.Kind == kind }) {
		found = append(found, node)
	}
	return found
}

func matching(root *Node, keep func(*Node) bool) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for node := range All(root) {
			if keep(node) && !yield(node) {
				return
			}
		}
	}
}
