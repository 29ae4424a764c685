package layout

import "strconv"

// Result is the outcome of a rewrite: either a complete layout (Some) or the
// statement that no layout fits the budget (None).
//
// The zero Result is None.
type Result struct {
	text string
	ok   bool
}

// Some wraps a successful layout.
func Some(text string) Result {
	return Result{text: text, ok: true}
}

// None reports that no layout respects the given width and offset.
func None() Result {
	return Result{}
}

// Get returns the layout and whether there is one.
func (r Result) Get() (string, bool) {
	return r.text, r.ok
}

// IsSome reports whether r holds a layout.
func (r Result) IsSome() bool {
	return r.ok
}

// IsNone reports whether r holds no layout.
func (r Result) IsNone() bool {
	return !r.ok
}

// Text returns the layout. It panics on None; use Get when both outcomes are
// possible.
func (r Result) Text() string {
	if !r.ok {
		panic("layout: Text called on None")
	}
	return r.text
}

// Or returns r if it holds a layout and alt otherwise.
func (r Result) Or(alt Result) Result {
	if r.ok {
		return r
	}
	return alt
}

// OrElse is the lazy form of Or: fn only runs when r is None.
func (r Result) OrElse(fn func() Result) Result {
	if r.ok {
		return r
	}
	return fn()
}

// Map transforms the layout of a Some result and leaves None untouched.
func (r Result) Map(fn func(string) string) Result {
	if !r.ok {
		return r
	}
	return Some(fn(r.text))
}

func (r Result) String() string {
	if !r.ok {
		return "None"
	}
	return "Some(" + strconv.Quote(r.text) + ")"
}
