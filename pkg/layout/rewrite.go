package layout

import (
	"errors"
	"fmt"
	"strings"
)

// ErrContract is wrapped by the errors Check returns.
var ErrContract = errors.New("layout contract violated")

// RewriteFunc renders one construct.
//
// width bounds only the last produced line. offset is the number of columns
// already used on the current line: the first line is emitted without any
// indentation of its own, and every later line starts with at least
// ctx.BlockIndent() columns. A RewriteFunc must be deterministic and must not
// mutate shared state.
type RewriteFunc func(ctx Context, width, offset int) Result

// FirstFit tries alternatives in order of preference and returns the first
// layout whose last line fits width. It returns None once every alternative
// has failed.
func FirstFit(ctx Context, width, offset int, alternatives ...RewriteFunc) Result {
	if width < 0 {
		return None()
	}

	for _, alternative := range alternatives {
		text, ok := alternative(ctx, width, offset).Get()
		if ok && Fits(text, width) {
			return Some(text)
		}
	}

	return None()
}

// Check verifies that text honours the rewrite contract for ctx and width: the
// last line fits and every later non-empty line carries the block indentation.
func Check(text string, ctx Context, width int) error {
	if !Fits(text, width) {
		return fmt.Errorf("%w: last line is %d columns wide, budget is %d",
			ErrContract, LastLineWidth(text), width)
	}

	lines := strings.Split(text, "\n")
	for idx, line := range lines[1:] {
		if line == "" {
			continue
		}
		if LeadingSpaces(line) < ctx.BlockIndent() {
			return fmt.Errorf("%w: line %d has %d columns of indentation, need %d",
				ErrContract, idx+2, LeadingSpaces(line), ctx.BlockIndent())
		}
	}

	return nil
}
