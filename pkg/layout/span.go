package layout

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks failures caused by the tree and the source drifting
	// out of sync. A run that hits one must abort.
	ErrInternal = errors.New("internal consistency error")

	// ErrNoSource is reported when a context without a SourceMap is asked for
	// source text.
	ErrNoSource = errors.New("no source map")

	// ErrSpanOutOfRange is returned by SourceMap implementations for spans
	// that fall outside the source.
	ErrSpanOutOfRange = errors.New("span out of range")
)

// Span is a half-open byte range [Start, End) of the original source.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Valid reports whether the span is well formed for a source of size bytes.
func (s Span) Valid(size int) bool {
	return s.Start >= 0 && s.Start <= s.End && s.End <= size
}

// Union returns the smallest span covering both s and other.
func (s Span) Union(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

func (s Span) String() string {
	return fmt.Sprintf("[%d,%d)", s.Start, s.End)
}

// SpanError is the panic value raised by Context.Snippet.
type SpanError struct {
	Span Span
	Err  error
}

func (e *SpanError) Error() string {
	return fmt.Sprintf("invalid span %s: %v", e.Span, e.Err)
}

func (e *SpanError) Unwrap() error {
	return e.Err
}

// Guard runs fn and turns a *SpanError panic raised inside it into an error
// wrapping ErrInternal. Any other panic is propagated unchanged.
//
// Guard belongs to drivers only. Rewrite functions must let span panics pass
// so that a defect aborts the whole run instead of triggering a fallback.
func Guard(fn func() error) (err error) {
	defer func() {
		recovered := recover()
		if recovered == nil {
			return
		}
		spanErr, ok := recovered.(*SpanError)
		if !ok {
			panic(recovered)
		}
		err = fmt.Errorf("%w: %w", ErrInternal, spanErr)
	}()

	return fn()
}
