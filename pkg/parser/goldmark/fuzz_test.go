package goldmark

import (
	"bytes"
	"context"
	"testing"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

var fuzzSeeds = []string{
	"",
	"plain text",
	"# Heading\n\nText *em* and **strong**.\n",
	"Title\n=====\n",
	"- a\n- b\n\n  continued\n",
	"3) three\n4) four\n",
	"> quote\nlazy\n",
	"```go\nfunc main() {}\n",
	"~~~\n```\n~~~\n",
	"    indented\n\tcode\n",
	"<div>\nhtml\n</div>\n",
	"[ref]: /url \"title\"\n\n---\n",
	"- a\n\n  [ref]: /x\n",
	"---\ntitle: x\n---\n# Doc\n",
	"line1\r\nline2\r\n",
	"- [x] done\n- [ ] todo\n",
	"| a | b |\n|---|:-:|\n| 1 |\n",
	"~~gone~~ https://example.com\n",
}

func addSeeds(f *testing.F) {
	f.Helper()
	for _, seed := range fuzzSeeds {
		f.Add([]byte(seed))
	}
}

// FuzzSpans checks the source map: every node points at the parsed
// snapshot, every block span is a valid snippet, and every non-blank line is
// covered by a top-level block.
func FuzzSpans(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, flavor := range []string{FlavorCommonMark, FlavorGFM} {
			snapshot, err := New(flavor).Parse(context.Background(), "fuzz.md", data)
			if err != nil {
				t.Fatalf("%s: Parse() error = %v", flavor, err)
			}
			if !bytes.Equal(snapshot.Content, data) {
				t.Fatalf("%s: snapshot content differs from input", flavor)
			}
			if snapshot.Root == nil || snapshot.Root.Kind != mdast.NodeDocument {
				t.Fatalf("%s: root is not a document", flavor)
			}

			for node := range mdast.All(snapshot.Root) {
				if node.File != snapshot {
					t.Fatalf("%s: %v is not tied to the snapshot", flavor, node.Kind)
				}
				if !node.IsBlock() {
					continue
				}
				if _, err := snapshot.Snippet(node.Span); err != nil {
					t.Fatalf("%s: %v: %v", flavor, node.Kind, err)
				}
			}

			covered := make([]bool, len(snapshot.Lines))
			for block := snapshot.Root.FirstChild; block != nil; block = block.Next {
				for idx := snapshot.LineIndex(block.Span.Start); idx <= snapshot.LineIndex(block.Span.End); idx++ {
					covered[idx] = true
				}
			}
			for idx, ok := range covered {
				if !ok && len(bytes.TrimSpace(snapshot.LineContent(idx+1))) > 0 {
					t.Fatalf("%s: line %d is not covered by any block", flavor, idx+1)
				}
			}
		}
	})
}

// FuzzTables checks that every GFM table row has at least one cell per
// column.
func FuzzTables(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		snapshot, err := New(FlavorGFM).Parse(context.Background(), "fuzz.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		for _, table := range mdast.FindByKind(snapshot.Root, mdast.NodeTable) {
			if table.Flag(mdast.ExtVerbatim) {
				continue
			}
			attrs := table.Block.Table
			if len(attrs.Header) < attrs.Columns() {
				t.Fatalf("header has %d cells, want %d", len(attrs.Header), attrs.Columns())
			}
			for i, row := range attrs.Rows {
				if len(row) < attrs.Columns() {
					t.Fatalf("row %d has %d cells, want %d", i, len(row), attrs.Columns())
				}
			}
		}
	})
}

// FuzzDeterministic checks that parsing the same input twice gives the same
// tree.
func FuzzDeterministic(f *testing.F) {
	addSeeds(f)

	f.Fuzz(func(t *testing.T, data []byte) {
		p := New(FlavorGFM)

		first, err := p.Parse(context.Background(), "a.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		second, err := p.Parse(context.Background(), "a.md", data)
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}

		if spans(first.Root) != spans(second.Root) {
			t.Fatalf("spans differ:\n%s\n%s", spans(first.Root), spans(second.Root))
		}
		if countNodes(first.Root) != countNodes(second.Root) {
			t.Fatalf("node counts differ: %d vs %d", countNodes(first.Root), countNodes(second.Root))
		}
	})
}
