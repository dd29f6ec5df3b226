// cursor.go implements Cursor: a stateful, resumable alternative to
// FindAll for callers who want one match at a time rather than a
// fully-materialized slice.

package meta

// Cursor is a resumable search over a fixed haystack: each call to Next
// advances past the previous match (applying the same empty-match
// skip-forward rule as FindAllSubmatch) and returns the next one.
//
// A Cursor is not safe for concurrent use; it holds mutable position
// state.
type Cursor struct {
	engine   *Engine
	haystack []byte
	pos      int
	done     bool
}

// NewCursor returns a Cursor that scans haystack from the beginning.
func (e *Engine) NewCursor(haystack []byte) *Cursor {
	return &Cursor{engine: e, haystack: haystack}
}

// Next returns the next match and true, or (nil, false) once the haystack
// is exhausted.
func (c *Cursor) Next() (*MatchWithCaptures, bool) {
	if c.done {
		return nil, false
	}
	m := c.engine.FindSubmatchAt(c.haystack, c.pos)
	if m == nil {
		c.done = true
		return nil, false
	}
	if m.End() > c.pos {
		c.pos = m.End()
	} else {
		c.pos = m.End() + 1
	}
	if c.pos > len(c.haystack) {
		c.done = true
	}
	return m, true
}
