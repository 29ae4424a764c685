// Package layout implements the width-constrained layout protocol shared by
// every construct the formatter knows how to render.
//
// A construct renders itself through a RewriteFunc: given a Context, the width
// available to the last produced line and the number of columns already used on
// the first line, it returns either a complete layout or None. None is an
// ordinary outcome that callers answer by trying another layout; it is never an
// error. The only fatal condition in this package is a span that does not exist
// in the source, reported as a *SpanError panic and recovered by Guard.
package layout

// Config supplies the formatting knobs the layout core reads.
type Config interface {
	// IndentUnit is the number of columns added by one level of nesting.
	IndentUnit() int

	// MaxWidth is the configured maximum line width.
	MaxWidth() int
}

// SourceMap resolves spans of the original source to their exact text.
type SourceMap interface {
	Snippet(span Span) (string, error)
}

// Context carries the positional state of a single rewrite call.
//
// Context is a small value type. Derivations return new values and never touch
// the receiver, so a child can never affect its parent's state and contexts can
// be shared between goroutines freely.
type Context struct {
	blockIndent    int
	overflowIndent int
	config         Config
	source         SourceMap
}

// NewContext returns the root context with zero block and overflow indentation.
func NewContext(cfg Config, src SourceMap) Context {
	return Context{config: cfg, source: src}
}

// BlockIndent is the minimum indentation of every line after the first.
func (c Context) BlockIndent() int {
	return c.blockIndent
}

// OverflowIndent is the extra indentation of continuation lines.
func (c Context) OverflowIndent() int {
	return c.overflowIndent
}

// Config returns the configuration the context was created with.
//
//nolint:ireturn // Config is the boundary interface of this package
func (c Context) Config() Config {
	return c.config
}

// IndentUnit returns the configured indent unit, or 0 without a config.
func (c Context) IndentUnit() int {
	if c.config == nil {
		return 0
	}
	return max(c.config.IndentUnit(), 0)
}

// MaxWidth returns the configured maximum width, or 0 without a config.
func (c Context) MaxWidth() int {
	if c.config == nil {
		return 0
	}
	return max(c.config.MaxWidth(), 0)
}

// Nested derives the context for a new indented block: the block indent grows
// by exactly one indent unit and the overflow indent is kept.
func (c Context) Nested() Context {
	c.blockIndent += c.IndentUnit()
	return c
}

// Overflow derives the context for continuation lines that stay in the current
// block. The block indent is kept; the overflow indent becomes amount.
func (c Context) Overflow(amount int) Context {
	c.overflowIndent = max(amount, 0)
	return c
}

// Detached derives a context with no indentation at all. It is meant for
// constructs that prefix every line their children produce themselves.
func (c Context) Detached() Context {
	c.blockIndent = 0
	c.overflowIndent = 0
	return c
}

// ContinuationIndent returns the leading spaces of a continuation line.
func (c Context) ContinuationIndent() string {
	return Indent(c.blockIndent + c.overflowIndent)
}

// Snippet returns the original text covered by span.
//
// A span the source cannot resolve means the tree and the source disagree.
// That is an internal defect, so Snippet panics with a *SpanError instead of
// returning something a caller could mistake for a layout failure.
func (c Context) Snippet(span Span) string {
	if c.source == nil {
		panic(&SpanError{Span: span, Err: ErrNoSource})
	}

	text, err := c.source.Snippet(span)
	if err != nil {
		panic(&SpanError{Span: span, Err: err})
	}

	return text
}
