package layout

import (
	"fmt"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize is the number of layouts a Memo keeps by default.
const DefaultMemoSize = 4096

type memoKey struct {
	node           any
	blockIndent    int
	overflowIndent int
	width          int
	offset         int
}

// Memo caches rewrite results for one formatting run.
//
// Rewrites are pure functions of (node, context, width, offset), so a result
// computed once can be reused whenever a parent backtracks and asks again.
// The configuration and source map are constant over a run and are not part of
// the key; use a fresh Memo per document. A nil *Memo caches nothing.
type Memo struct {
	cache  *lru.Cache[memoKey, Result]
	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemo creates a memo holding at most size layouts.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}

	cache, err := lru.New[memoKey, Result](size)
	if err != nil {
		return nil, fmt.Errorf("create memo cache: %w", err)
	}

	return &Memo{cache: cache}, nil
}

// Do returns the cached result for node under the given inputs, computing it
// with fn on a miss. node must be comparable, typically a pointer.
func (m *Memo) Do(node any, ctx Context, width, offset int, fn RewriteFunc) Result {
	if m == nil {
		return fn(ctx, width, offset)
	}

	key := memoKey{
		node:           node,
		blockIndent:    ctx.BlockIndent(),
		overflowIndent: ctx.OverflowIndent(),
		width:          width,
		offset:         offset,
	}

	if result, ok := m.cache.Get(key); ok {
		m.hits.Add(1)
		return result
	}

	m.misses.Add(1)
	result := fn(ctx, width, offset)
	m.cache.Add(key, result)

	return result
}

// Stats returns the number of cache hits and misses so far.
func (m *Memo) Stats() (int64, int64) {
	if m == nil {
		return 0, 0
	}
	return m.hits.Load(), m.misses.Load()
}
