package format_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/config"
	"github.com/yaklabco/gomdfmt/pkg/format"
	"github.com/yaklabco/gomdfmt/pkg/layout"
	"github.com/yaklabco/gomdfmt/pkg/mdast"
	"github.com/yaklabco/gomdfmt/pkg/parser/goldmark"
)

// everyBlock holds one top-level block of every kind the parser produces.
const everyBlock = "---\ntitle: doc\n---\n\n" +
	"# A heading with several words in it\n\n" +
	"A paragraph with `a code span` and a [link](https://example.com/some/path \"Title\") that wraps.\n\n" +
	"- item one with a few words\n- item two\n  - nested item with more words than fit\n\n" +
	"1. first\n2. second\n\n   continued paragraph in the second item\n\n" +
	"> quoted text that goes on for a while\n>\n> - and a list inside\n\n" +
	"```go\nfunc main() {}\n```\n\n" +
	"    indented code\n\n" +
	"***\n\n" +
	"<div>\n<p>some html that is fairly long</p>\n</div>\n\n" +
	"| a | b |\n|---|:-:|\n| one | two |\n\n" +
	"[ref]: https://example.com/reference \"Reference title\"\n\n" +
	"[dup]: /x\n[dup]: /y\n"

func parse(t *testing.T, cfg *config.Config, content string) *mdast.FileSnapshot {
	t.Helper()

	snapshot, err := goldmark.New(string(cfg.Flavor)).Parse(context.Background(), "doc.md", []byte(content))
	require.NoError(t, err)
	return snapshot
}

func TestRewrite_EveryBlockHonoursContract(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.Flavor = config.FlavorGFM
	snapshot := parse(t, cfg, everyBlock)

	var kinds []mdast.NodeKind
	for block := snapshot.Root.FirstChild; block != nil; block = block.Next {
		kinds = append(kinds, block.Kind)
	}
	for _, kind := range []mdast.NodeKind{
		mdast.NodeFrontMatter, mdast.NodeHeading, mdast.NodeParagraph, mdast.NodeList,
		mdast.NodeBlockquote, mdast.NodeCodeBlock, mdast.NodeThematicBreak, mdast.NodeHTMLBlock,
		mdast.NodeTable, mdast.NodeLinkDefinition, mdast.NodeRaw,
	} {
		require.Contains(t, kinds, kind)
	}

	memo, err := layout.NewMemo(256)
	require.NoError(t, err)
	plain := format.NewFormatter(cfg, nil)
	cached := format.NewFormatter(cfg, memo)

	root := layout.NewContext(cfg, snapshot)
	contexts := []layout.Context{root, root.Nested(), root.Nested().Nested(), root.Overflow(3)}

	for block := snapshot.Root.FirstChild; block != nil; block = block.Next {
		for _, ctx := range contexts {
			for width := 0; width <= 60; width += 3 {
				for _, offset := range []int{ctx.BlockIndent(), ctx.BlockIndent() + 5} {
					first := plain.Rewrite(block, ctx, width, offset)
					second := plain.Rewrite(block, ctx, width, offset)
					assert.Equal(t, first, second, "%s width=%d offset=%d", block.Kind, width, offset)
					assert.Equal(t, first, cached.Rewrite(block, ctx, width, offset),
						"%s width=%d offset=%d", block.Kind, width, offset)

					if text, ok := first.Get(); ok {
						assert.NoError(t, layout.Check(text, ctx, width),
							"%s width=%d offset=%d indent=%d:\n%s", block.Kind, width, offset, ctx.BlockIndent(), text)
					}
				}
			}
		}
	}
}

func TestRewrite_SingleLineBlocksRespectWidth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		kind  mdast.NodeKind
	}{
		{"heading", "# A heading that is much wider than ten columns", mdast.NodeHeading},
		{"html block", `<div class="wide-html-block">x</div>`, mdast.NodeHTMLBlock},
		{"link definition", "[label]: https://example.com/a/long/destination", mdast.NodeLinkDefinition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := newConfig(80)
			snapshot := parse(t, cfg, tt.input+"\n")
			block := snapshot.Root.FirstChild
			require.NotNil(t, block)
			require.Equal(t, tt.kind, block.Kind)

			f := format.NewFormatter(cfg, nil)
			ctx := layout.NewContext(cfg, snapshot)

			assert.True(t, f.Rewrite(block, ctx, 10, 0).IsNone())

			text, ok := f.Rewrite(block, ctx, 80, 0).Get()
			require.True(t, ok)
			assert.Equal(t, tt.input, text)
		})
	}
}

func TestRewrite_ParagraphFill(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	f := format.NewFormatter(cfg, nil)

	snapshot := parse(t, cfg, "aaaa bbbb cccc dddd eeee\n")
	ctx := layout.NewContext(cfg, snapshot)
	paragraph := snapshot.Root.FirstChild

	// Interior lines run to offset + width; the last line is split to fit.
	text, ok := f.Rewrite(paragraph, ctx, 10, 10).Get()
	require.True(t, ok)
	assert.Equal(t, "aaaa bbbb\ncccc dddd\neeee", text)

	snapshot = parse(t, cfg, "aaaa `a long code span`\n")
	ctx = layout.NewContext(cfg, snapshot)
	assert.True(t, f.Rewrite(snapshot.Root.FirstChild, ctx, 10, 0).IsNone())
}

func TestRewrite_ListItemUsesFullRegion(t *testing.T) {
	t.Parallel()

	cfg := newConfig(80)
	cfg.TabSpaces = 4
	f := format.NewFormatter(cfg, nil)

	snapshot := parse(t, cfg, "- one two three four five\n")
	ctx := layout.NewContext(cfg, snapshot)

	text, ok := f.Rewrite(snapshot.Root.FirstChild, ctx, 16, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "-   one two\n    three four\n    five", text)
	for _, line := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, layout.Width(line), 16, "line %q", line)
	}
}

// brokenParser returns a tree whose paragraph points past the end of the
// content.
type brokenParser struct{}

func (brokenParser) Parse(_ context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	file := mdast.NewFileSnapshot(path, content)

	root := mdast.NewDocument()
	root.Span = mdast.SourceRange{Start: 0, End: len(content)}
	paragraph := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendSegment(paragraph, mdast.Segment{
		SourceRange: mdast.SourceRange{Start: 0, End: len(content) + 10},
	})
	mdast.AppendChild(root, paragraph)

	file.Root = root
	mdast.SetFile(root, file)
	return file, nil
}

func TestEngine_SpanDefectAborts(t *testing.T) {
	t.Parallel()

	engine := &format.Engine{Parser: brokenParser{}, Config: config.NewConfig()}

	result, err := engine.Format(context.Background(), "broken.md", []byte("some text\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, layout.ErrInternal)
	assert.NotErrorIs(t, err, format.ErrParseFailure)
	assert.Nil(t, result)
}
