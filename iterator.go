package rex

import "github.com/zig-utils/zig-regex-sub002/meta"

// Iterator yields matches one at a time over a fixed haystack, resuming
// from where the previous match left off. Unlike FindAll, it never
// materializes the full match slice up front.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	cursor *meta.Cursor
}

// Iterate returns an Iterator over b.
func (r *Regex) Iterate(b []byte) *Iterator {
	return &Iterator{cursor: r.engine.NewCursor(b)}
}

// Next returns the next match, or (nil, false) once exhausted.
func (it *Iterator) Next() (*Match, bool) {
	m, ok := it.cursor.Next()
	if !ok {
		return nil, false
	}
	return &Match{inner: m}, true
}

// Match wraps a single iteration result, exposing both the overall match
// span and its capture groups.
type Match struct {
	inner *meta.MatchWithCaptures
}

// Start returns the inclusive start offset of the match.
func (m *Match) Start() int { return m.inner.Start() }

// End returns the exclusive end offset of the match.
func (m *Match) End() int { return m.inner.End() }

// Bytes returns the matched text.
func (m *Match) Bytes() []byte { return m.inner.Bytes() }

// Group returns the [start, end) bounds of capture group i, or nil if that
// group did not participate.
func (m *Match) Group(i int) []int { return m.inner.Group(i) }

// GroupBytes returns the bytes of capture group i, or nil if unset.
func (m *Match) GroupBytes(i int) []byte { return m.inner.GroupBytes(i) }
