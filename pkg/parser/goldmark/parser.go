// Package goldmark builds mdast trees with the goldmark parser. Block nodes
// get line-aligned spans into the original content, and source lines that
// goldmark drops (link reference definitions, front matter) come back as
// nodes of their own, so that the tree accounts for every byte.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gomdfmt/pkg/mdast"
)

// Supported flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser parses one flavor of Markdown. It holds no per-document state and
// may be shared between goroutines.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors fall back to CommonMark.
func New(flavor string) *Parser {
	var exts []goldmark.Extender
	if flavor == FlavorGFM {
		exts = append(exts, extension.GFM)
	} else {
		flavor = FlavorCommonMark
	}
	return &Parser{
		flavor: flavor,
		md:     goldmark.New(goldmark.WithExtensions(exts...)),
	}
}

// Flavor returns the flavor the parser was built for.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds the syntax tree of content. The snapshot keeps its own copy of
// content. The only error is cancellation of ctx.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	snapshot := mdast.NewFileSnapshot(path, bytes.Clone(content))

	// goldmark never sees the front matter: it is blanked out so offsets
	// into the masked source stay offsets into the original.
	source := snapshot.Content
	frontMatter, hasFrontMatter := findFrontMatter(snapshot)
	if hasFrontMatter {
		source = maskRange(snapshot.Content, frontMatter)
	}

	doc := p.md.Parser().Parse(text.NewReader(source), parser.WithContext(parser.NewContext()))
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	root := newMapper(source).mapDocument(doc)
	if hasFrontMatter {
		node := mdast.NewNode(mdast.NodeFrontMatter)
		node.Span = frontMatter
		mdast.PrependChild(root, node)
	}
	snapshot.Root = root

	newSpanAssigner(snapshot).assign(root)
	newRecoverer(snapshot, p.references).recover(root)
	mdast.SetFile(root, snapshot)

	return snapshot, nil
}

// references returns the link reference definitions goldmark finds when it
// parses fragment as a document of its own.
func (p *Parser) references(fragment []byte) []parser.Reference {
	pc := parser.NewContext()
	p.md.Parser().Parse(text.NewReader(fragment), parser.WithContext(pc))
	return pc.References()
}
