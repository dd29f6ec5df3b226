// find_indices.go contains FindIndex methods returning raw (start, end)
// tuples or flat index slices, avoiding the *Match allocation Find incurs.

package meta

// FindIndex returns the (start, end, found) of the first match in
// haystack. This is the zero-allocation counterpart to Find.
func (e *Engine) FindIndex(haystack []byte) (start, end int, found bool) {
	return e.FindIndexAt(haystack, 0)
}

// FindIndexAt returns the (start, end, found) of the first match starting
// at or after at.
func (e *Engine) FindIndexAt(haystack []byte, at int) (start, end int, found bool) {
	m := e.FindSubmatchAt(haystack, at)
	if m == nil {
		return -1, -1, false
	}
	return m.Start(), m.End(), true
}

// FindSubmatchIndex returns a flat [start0, end0, start1, end1, ...] slice
// for the first match, or nil if none. An unmatched group contributes
// [-1, -1], matching the stdlib regexp.FindSubmatchIndex convention.
func (e *Engine) FindSubmatchIndex(haystack []byte) []int {
	return e.FindSubmatchIndexAt(haystack, 0)
}

// FindSubmatchIndexAt is FindSubmatchIndex starting the search at or after
// at.
func (e *Engine) FindSubmatchIndexAt(haystack []byte, at int) []int {
	m := e.FindSubmatchAt(haystack, at)
	if m == nil {
		return nil
	}
	out := make([]int, 2*len(m.Groups))
	for i, g := range m.Groups {
		if g == nil {
			out[2*i], out[2*i+1] = -1, -1
			continue
		}
		out[2*i], out[2*i+1] = g[0], g[1]
	}
	return out
}
