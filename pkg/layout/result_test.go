package layout_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomdfmt/pkg/layout"
)

func TestResult_SomeAndNone(t *testing.T) {
	t.Parallel()

	some := layout.Some("text")
	text, ok := some.Get()
	assert.True(t, ok)
	assert.Equal(t, "text", text)
	assert.True(t, some.IsSome())
	assert.False(t, some.IsNone())
	assert.Equal(t, "text", some.Text())

	none := layout.None()
	_, ok = none.Get()
	assert.False(t, ok)
	assert.True(t, none.IsNone())
	assert.Panics(t, func() { _ = none.Text() })

	var zero layout.Result
	assert.True(t, zero.IsNone(), "zero value must be None")
}

func TestResult_EmptyTextIsStillSome(t *testing.T) {
	t.Parallel()

	assert.True(t, layout.Some("").IsSome())
}

func TestResult_Or(t *testing.T) {
	t.Parallel()

	assert.Equal(t, layout.Some("a"), layout.Some("a").Or(layout.Some("b")))
	assert.Equal(t, layout.Some("b"), layout.None().Or(layout.Some("b")))
	assert.True(t, layout.None().Or(layout.None()).IsNone())
}

func TestResult_OrElseIsLazy(t *testing.T) {
	t.Parallel()

	calls := 0
	fallback := func() layout.Result {
		calls++
		return layout.Some("fallback")
	}

	assert.Equal(t, layout.Some("first"), layout.Some("first").OrElse(fallback))
	assert.Equal(t, 0, calls)

	assert.Equal(t, layout.Some("fallback"), layout.None().OrElse(fallback))
	assert.Equal(t, 1, calls)
}

func TestResult_Map(t *testing.T) {
	t.Parallel()

	assert.Equal(t, layout.Some("ABC"), layout.Some("abc").Map(strings.ToUpper))
	assert.True(t, layout.None().Map(strings.ToUpper).IsNone())
}

func TestResult_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, `Some("a\nb")`, layout.Some("a\nb").String())
	assert.Equal(t, "None", layout.None().String())
}
