package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/layout"
)

type testKind int

const (
	kindWord testKind = iota
	kindList
	kindBlock
)

// testNode is a tiny closed variant used to exercise the protocol: words,
// comma separated lists that wrap, and blocks that nest their children.
type testNode struct {
	kind     testKind
	text     string
	children []*testNode
}

func word(text string) *testNode {
	return &testNode{kind: kindWord, text: text}
}

func list(items ...string) *testNode {
	node := &testNode{kind: kindList}
	for _, item := range items {
		node.children = append(node.children, word(item))
	}
	return node
}

func block(name string, children ...*testNode) *testNode {
	return &testNode{kind: kindBlock, text: name, children: children}
}

func rewriteTestNode(node *testNode, ctx layout.Context, width, offset int) layout.Result {
	switch node.kind {
	case kindWord:
		if layout.Width(node.text) > width {
			return layout.None()
		}
		return layout.Some(node.text)

	case kindList:
		return layout.FirstFit(ctx, width, offset,
			func(_ layout.Context, _, _ int) layout.Result {
				parts := make([]string, 0, len(node.children))
				for _, child := range node.children {
					parts = append(parts, child.text)
				}
				return layout.Some(strings.Join(parts, ", "))
			},
			func(ctx layout.Context, width, _ int) layout.Result {
				overflow := ctx.Overflow(2)
				var builder strings.Builder
				for idx, child := range node.children {
					if idx > 0 {
						builder.WriteString(",\n" + overflow.ContinuationIndent())
					}
					text, ok := rewriteTestNode(child, overflow, width-layout.Width(overflow.ContinuationIndent()), 0).Get()
					if !ok {
						return layout.None()
					}
					builder.WriteString(text)
				}
				return layout.Some(builder.String())
			},
		)

	case kindBlock:
		nested := ctx.Nested()
		indent := nested.BlockIndent()

		var builder strings.Builder
		builder.WriteString(node.text + ":")
		for _, child := range node.children {
			text, ok := rewriteTestNode(child, nested, ctx.MaxWidth()-indent, indent).Get()
			if !ok {
				return layout.None()
			}
			builder.WriteString("\n" + layout.Indent(indent) + text)
		}

		out := builder.String()
		if !layout.Fits(out, width) {
			return layout.None()
		}
		return layout.Some(out)
	}

	return layout.None()
}

func TestRewrite_EndToEndTwoLevelNesting(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(4, 40, "")
	tree := block("outer", block("inner", word("alpha"), word("beta")))

	text, ok := rewriteTestNode(tree, ctx, ctx.MaxWidth(), 0).Get()
	require.True(t, ok)

	lines := strings.Split(text, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "outer:", lines[0])
	assert.Equal(t, "    inner:", lines[1])
	for _, line := range lines[2:] {
		assert.Equal(t, 8, layout.LeadingSpaces(line), "second level line %q", line)
	}
	assert.LessOrEqual(t, layout.LastLineWidth(text), ctx.MaxWidth())
	assert.NoError(t, layout.Check(text, ctx, ctx.MaxWidth()))
}

func TestRewrite_FailurePropagation(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "")
	wide := word(strings.Repeat("x", 40))

	assert.True(t, rewriteTestNode(wide, ctx, 10, 0).IsNone())
	assert.True(t, rewriteTestNode(wide, ctx, 40, 0).IsSome())

	narrow := newTestContext(2, 20, "")
	assert.True(t, rewriteTestNode(block("outer", wide), narrow, 20, 0).IsNone(),
		"a child without layout must fail its parent")
}

func TestRewrite_Determinism(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 30, "")
	tree := block("root", list("alpha", "beta", "gamma", "delta"), block("sub", word("epsilon")))

	for width := 0; width <= 40; width++ {
		for offset := 0; offset <= 6; offset += 3 {
			first := rewriteTestNode(tree, ctx, width, offset)
			second := rewriteTestNode(tree, ctx, width, offset)
			assert.Equal(t, first, second, "width=%d offset=%d", width, offset)
		}
	}
}

func TestRewrite_WidthRespect(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "")
	node := list("alpha", "beta", "gamma", "delta", "epsilon")

	for width := 0; width <= 60; width++ {
		text, ok := rewriteTestNode(node, ctx, width, 0).Get()
		if !ok {
			continue
		}
		assert.LessOrEqual(t, layout.LastLineWidth(text), width, "width=%d", width)
	}
}

func TestRewrite_FirstLineHasNoIndent(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "").Nested().Nested()
	node := list("alpha", "beta", "gamma")

	for _, width := range []int{12, 40} {
		text, ok := rewriteTestNode(node, ctx, width, 12).Get()
		require.True(t, ok)
		assert.Equal(t, 0, layout.LeadingSpaces(layout.FirstLine(text)))
	}
}

func TestFirstFit_PreferenceOrder(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "")
	node := list("alpha", "beta", "gamma")

	oneLine, ok := rewriteTestNode(node, ctx, 80, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "alpha, beta, gamma", oneLine)

	wrapped, ok := rewriteTestNode(node, ctx, 10, 0).Get()
	require.True(t, ok)
	assert.Equal(t, "alpha,\n  beta,\n  gamma", wrapped)

	assert.True(t, rewriteTestNode(node, ctx, 4, 0).IsNone())
}

func TestFirstFit_RejectsLayoutsThatDoNotFit(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "")
	tooWide := func(layout.Context, int, int) layout.Result { return layout.Some("0123456789") }
	fits := func(layout.Context, int, int) layout.Result { return layout.Some("ok") }

	assert.Equal(t, layout.Some("ok"), layout.FirstFit(ctx, 5, 0, tooWide, fits))
	assert.True(t, layout.FirstFit(ctx, 5, 0, tooWide).IsNone())
	assert.True(t, layout.FirstFit(ctx, -1, 0, fits).IsNone())
	assert.True(t, layout.FirstFit(ctx, 5, 0).IsNone())
}

func TestCheck(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "").Nested()

	require.NoError(t, layout.Check("first\n  second\n\n  third", ctx, 10))

	err := layout.Check("first\n  a line that is too long", ctx, 10)
	require.ErrorIs(t, err, layout.ErrContract)

	err = layout.Check("first\n second", ctx, 80)
	require.ErrorIs(t, err, layout.ErrContract)
	assert.Contains(t, err.Error(), "line 2")
}
