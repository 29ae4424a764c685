package goldmark

import (
	"bytes"

	"github.com/yuin/goldmark/parser"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// referenceFunc parses a fragment and returns its link reference definitions.
type referenceFunc func(fragment []byte) []parser.Reference

// recoverer accounts for source lines that no mapped block covers.
//
// goldmark consumes link reference definitions without leaving a node behind,
// so top-level runs of such lines come back as LinkDefinition nodes. Any
// other unclaimed top-level text becomes a Raw node, and a container holding
// an unclaimed line is flagged verbatim so it is reproduced unchanged.
type recoverer struct {
	file       *mdast.FileSnapshot
	references referenceFunc
}

func newRecoverer(file *mdast.FileSnapshot, references referenceFunc) *recoverer {
	return &recoverer{file: file, references: references}
}

// lineRun is an inclusive range of 0-based line indexes.
type lineRun struct {
	first, last int
}

// recover inserts nodes for unclaimed top-level lines and flags containers
// that hold unclaimed lines.
func (r *recoverer) recover(root *mdast.Node) {
	for _, run := range r.unclaimedRuns(root) {
		// Indented or quoted lines right after a container were consumed
		// inside it.
		if prev := r.blockBefore(root, run); prev != nil && prev.IsContainer() && continuesContainer(r.line(run.first)) {
			prev.Span.End = r.runSpan(run).End
			prev.SetFlag(mdast.ExtVerbatim)
			continue
		}

		nodes := r.linkDefinitions(run)
		if nodes == nil {
			nodes = []*mdast.Node{r.rawNode(run)}
		}
		r.insert(root, nodes)
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if child.IsContainer() && r.hasStrayLines(child) {
			child.SetFlag(mdast.ExtVerbatim)
		}
	}
}

// unclaimedRuns returns the runs of non-blank lines outside every top-level
// block.
func (r *recoverer) unclaimedRuns(root *mdast.Node) []lineRun {
	lines := len(r.file.Lines)
	claimed := make([]bool, lines)
	for child := root.FirstChild; child != nil; child = child.Next {
		r.claim(claimed, child)
	}

	var runs []lineRun
	for line := 0; line < lines; line++ {
		if claimed[line] || isBlankLine(r.line(line)) {
			continue
		}
		run := lineRun{first: line, last: line}
		for run.last+1 < lines && !claimed[run.last+1] && !isBlankLine(r.line(run.last+1)) {
			run.last++
		}
		runs = append(runs, run)
		line = run.last
	}
	return runs
}

// blockBefore returns the last top-level block that ends before run.
func (r *recoverer) blockBefore(root *mdast.Node, run lineRun) *mdast.Node {
	start := r.file.Lines[run.first].StartOffset
	var prev *mdast.Node
	for child := root.FirstChild; child != nil && child.Span.End <= start; child = child.Next {
		prev = child
	}
	return prev
}

// continuesContainer reports whether a line is indented or quoted.
func continuesContainer(line []byte) bool {
	if len(line) == 0 {
		return false
	}
	return line[0] == ' ' || line[0] == '\t' || bytes.HasPrefix(bytes.TrimLeft(line, " "), []byte(">"))
}

// claim marks the lines covered by node.
func (r *recoverer) claim(claimed []bool, node *mdast.Node) {
	if !node.IsBlock() || !node.Span.Valid(len(r.file.Content)) || len(claimed) == 0 {
		return
	}
	first := r.file.LineIndex(node.Span.Start)
	last := r.file.LineIndex(node.Span.End)
	for line := first; line <= last; line++ {
		claimed[line] = true
	}
}

// linkDefinitions turns a run into one node per link reference definition.
// It returns nil when the run holds anything else.
func (r *recoverer) linkDefinitions(run lineRun) []*mdast.Node {
	span := r.runSpan(run)
	refs := r.references(r.file.Content[span.Start:span.End])
	if len(refs) == 0 {
		return nil
	}

	var starts []int
	for line := run.first; line <= run.last; line++ {
		if bytes.HasPrefix(bytes.TrimLeft(r.line(line), " "), []byte("[")) {
			starts = append(starts, line)
		}
	}
	if len(starts) != len(refs) || starts[0] != run.first {
		return nil
	}

	nodes := make([]*mdast.Node, 0, len(starts))
	for idx, start := range starts {
		end := run.last
		if idx+1 < len(starts) {
			end = starts[idx+1] - 1
		}

		ref := matchReference(refs, bytes.TrimLeft(r.line(start), " "))
		if ref == nil || !portableReference(ref) {
			return nil
		}

		node := mdast.NewNode(mdast.NodeLinkDefinition)
		node.Block = &mdast.BlockAttrs{LinkDefinition: &mdast.LinkDefinitionAttrs{
			Label:       string(ref.Label()),
			Destination: string(ref.Destination()),
			Title:       string(ref.Title()),
		}}
		node.Span = r.runSpan(lineRun{first: start, last: end})
		nodes = append(nodes, node)
	}
	return nodes
}

// matchReference finds the reference whose label opens line.
func matchReference(refs []parser.Reference, line []byte) parser.Reference {
	end := bytes.Index(line, []byte("]:"))
	if end < 1 {
		return nil
	}
	label := line[1:end]
	for _, ref := range refs {
		if bytes.Equal(ref.Label(), label) {
			return ref
		}
	}
	return nil
}

// portableReference reports whether a definition can be written back from its
// parts: a single-line title that at least one delimiter can enclose.
func portableReference(ref parser.Reference) bool {
	title := ref.Title()
	if bytes.ContainsAny(ref.Label(), "\r\n") || bytes.ContainsAny(title, "\r\n") {
		return false
	}
	return !(bytes.ContainsRune(title, '"') &&
		bytes.ContainsRune(title, '\'') &&
		bytes.ContainsAny(title, "()"))
}

// rawNode wraps a run in a node that is always reproduced as written.
func (r *recoverer) rawNode(run lineRun) *mdast.Node {
	node := mdast.NewNode(mdast.NodeRaw)
	node.Span = r.runSpan(run)
	node.SetFlag(mdast.ExtVerbatim)
	return node
}

// insert places nodes among the children of root in source order.
func (r *recoverer) insert(root *mdast.Node, nodes []*mdast.Node) {
	start := nodes[0].Span.Start
	for child := root.FirstChild; child != nil; child = child.Next {
		if child.Span.Start > start {
			for _, node := range nodes {
				mdast.InsertBefore(child, node)
			}
			return
		}
	}
	for _, node := range nodes {
		mdast.AppendChild(root, node)
	}
}

// hasStrayLines reports whether a container holds a line that is neither
// blank, a bare marker, nor part of a descendant leaf block.
func (r *recoverer) hasStrayLines(container *mdast.Node) bool {
	first := r.file.LineIndex(container.Span.Start)
	last := r.file.LineIndex(container.Span.End)

	claimed := make([]bool, len(r.file.Lines))
	for node := range mdast.Blocks(container) {
		if !node.IsContainer() {
			r.claim(claimed, node)
		}
	}

	return r.firstStray(claimed, first, last) >= 0
}

// firstStray returns the first unclaimed line with content in [first, last],
// or -1.
func (r *recoverer) firstStray(claimed []bool, first, last int) int {
	for line := first; line <= last; line++ {
		if claimed[line] {
			continue
		}
		content := r.line(line)
		if isContentBlank(content) || isMarkerOnly(content) {
			continue
		}
		return line
	}
	return -1
}

func (r *recoverer) runSpan(run lineRun) mdast.SourceRange {
	return mdast.SourceRange{
		Start: r.file.Lines[run.first].StartOffset,
		End:   r.file.Lines[run.last].NewlineStart,
	}
}

func (r *recoverer) line(idx int) []byte {
	return r.file.LineContent(idx + 1)
}
