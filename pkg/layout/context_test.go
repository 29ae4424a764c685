package layout_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gomdfmt/pkg/layout"
)

type testConfig struct {
	indent int
	width  int
}

func (c *testConfig) IndentUnit() int { return c.indent }
func (c *testConfig) MaxWidth() int   { return c.width }

type testSource string

func (s testSource) Snippet(span layout.Span) (string, error) {
	if !span.Valid(len(s)) {
		return "", fmt.Errorf("%w: %s", layout.ErrSpanOutOfRange, span)
	}
	return string(s[span.Start:span.End]), nil
}

func newTestContext(indent, width int, src string) layout.Context {
	return layout.NewContext(&testConfig{indent: indent, width: width}, testSource(src))
}

func TestNewContext_StartsAtZero(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(4, 80, "")

	assert.Equal(t, 0, ctx.BlockIndent())
	assert.Equal(t, 0, ctx.OverflowIndent())
	assert.Equal(t, 4, ctx.IndentUnit())
	assert.Equal(t, 80, ctx.MaxWidth())
}

func TestContext_Nested(t *testing.T) {
	t.Parallel()

	for _, unit := range []int{1, 2, 3, 4, 8} {
		t.Run(fmt.Sprintf("unit=%d", unit), func(t *testing.T) {
			t.Parallel()

			root := newTestContext(unit, 80, "").Overflow(3)
			once := root.Nested()
			twice := once.Nested()

			assert.Equal(t, root.BlockIndent()+unit, once.BlockIndent())
			assert.Equal(t, root.BlockIndent()+2*unit, twice.BlockIndent())
			assert.Equal(t, root.OverflowIndent(), once.OverflowIndent())
			assert.Equal(t, root.OverflowIndent(), twice.OverflowIndent())
		})
	}
}

func TestContext_Overflow(t *testing.T) {
	t.Parallel()

	base := newTestContext(2, 80, "").Nested().Nested()

	for _, amount := range []int{0, 1, 4, 17} {
		derived := base.Overflow(amount)
		assert.Equal(t, base.BlockIndent(), derived.BlockIndent(), "overflow must keep block indent")
		assert.Equal(t, amount, derived.OverflowIndent())
	}
}

func TestContext_OverflowClampsNegative(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "").Overflow(-5)
	assert.Equal(t, 0, ctx.OverflowIndent())
}

func TestContext_DerivationsDoNotMutate(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(4, 80, "abc").Nested().Overflow(2)
	before := ctx

	_ = ctx.Nested()
	_ = ctx.Overflow(9)
	_ = ctx.Detached()

	assert.Equal(t, before, ctx)
	assert.Equal(t, 4, ctx.BlockIndent())
	assert.Equal(t, 2, ctx.OverflowIndent())
}

func TestContext_Detached(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(4, 80, "abc").Nested().Overflow(2).Detached()

	assert.Equal(t, 0, ctx.BlockIndent())
	assert.Equal(t, 0, ctx.OverflowIndent())
	assert.Equal(t, "abc", ctx.Snippet(layout.Span{Start: 0, End: 3}))
}

func TestContext_ContinuationIndent(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "").Nested().Overflow(3)
	assert.Equal(t, "     ", ctx.ContinuationIndent())
}

func TestContext_Snippet(t *testing.T) {
	t.Parallel()

	src := "héllo, wörld\nsecond line"
	ctx := newTestContext(2, 80, src)

	spans := []layout.Span{
		{Start: 0, End: 0},
		{Start: 0, End: len(src)},
		{Start: 7, End: 14},
		{Start: 14, End: len(src)},
	}
	for _, span := range spans {
		assert.Equal(t, src[span.Start:span.End], ctx.Snippet(span), "span %s", span)
	}
}

func TestContext_SnippetInvalidSpanPanics(t *testing.T) {
	t.Parallel()

	ctx := newTestContext(2, 80, "short")

	assert.PanicsWithError(t, "invalid span [3,99): span out of range: [3,99)", func() {
		ctx.Snippet(layout.Span{Start: 3, End: 99})
	})
}

func TestContext_SnippetWithoutSource(t *testing.T) {
	t.Parallel()

	ctx := layout.NewContext(&testConfig{indent: 2, width: 80}, nil)

	defer func() {
		recovered := recover()
		spanErr, ok := recovered.(*layout.SpanError)
		require.True(t, ok, "expected *layout.SpanError, got %T", recovered)
		assert.ErrorIs(t, spanErr, layout.ErrNoSource)
	}()

	ctx.Snippet(layout.Span{Start: 0, End: 1})
}
