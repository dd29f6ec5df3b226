// findall.go contains FindAll, FindAllSubmatch, and Count: repeated,
// non-overlapping search over a haystack.

package meta

// FindAll returns all non-overlapping matches in haystack, in order. limit
// caps the number of matches returned; a negative limit means unbounded.
func (e *Engine) FindAll(haystack []byte, limit int) []*Match {
	all := e.FindAllSubmatch(haystack, limit)
	out := make([]*Match, len(all))
	for i, m := range all {
		out[i] = m.Match
	}
	return out
}

// FindAllSubmatch returns all non-overlapping matches with their capture
// groups, in order. limit caps the number of matches returned; a negative
// limit means unbounded.
//
// An empty match (start == end) advances the next search position by one
// byte rather than zero, the standard rule for preventing an infinite loop
// on patterns like `a*` against input with no `a`s.
func (e *Engine) FindAllSubmatch(haystack []byte, limit int) []*MatchWithCaptures {
	var out []*MatchWithCaptures
	pos := 0
	for limit < 0 || len(out) < limit {
		m := e.FindSubmatchAt(haystack, pos)
		if m == nil {
			break
		}
		out = append(out, m)
		if m.End() > pos {
			pos = m.End()
		} else {
			pos = m.End() + 1
		}
		if pos > len(haystack) {
			break
		}
	}
	return out
}

// Count returns the number of non-overlapping matches in haystack, without
// allocating Match values for each.
func (e *Engine) Count(haystack []byte) int {
	count := 0
	pos := 0
	for {
		start, end, found := e.FindIndexAt(haystack, pos)
		if !found {
			break
		}
		count++
		if end > pos {
			pos = end
		} else {
			pos = end + 1
		}
		if pos > len(haystack) {
			break
		}
		_ = start
	}
	return count
}
