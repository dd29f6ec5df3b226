// find.go implements Find/FindAt/FindSubmatch/FindSubmatchAt: single-match
// search returning *Match / *MatchWithCaptures.

package meta

import "github.com/zig-utils/zig-regex-sub002/prefilter"

// Find returns the first match in haystack, or nil if none.
func (e *Engine) Find(haystack []byte) *Match {
	m := e.FindSubmatch(haystack)
	if m == nil {
		return nil
	}
	return m.Match
}

// FindAt returns the first match starting at or after at, or nil if none.
func (e *Engine) FindAt(haystack []byte, at int) *Match {
	m := e.FindSubmatchAt(haystack, at)
	if m == nil {
		return nil
	}
	return m.Match
}

// FindSubmatch returns the first match and its capture groups, or nil.
func (e *Engine) FindSubmatch(haystack []byte) *MatchWithCaptures {
	return e.FindSubmatchAt(haystack, 0)
}

// FindSubmatchAt returns the first match starting at or after at, with
// capture groups, or nil if none.
func (e *Engine) FindSubmatchAt(haystack []byte, at int) *MatchWithCaptures {
	if at < 0 {
		at = 0
	}
	if at > len(haystack) {
		return nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	if e.prefilter != nil {
		return e.findWithPrefilter(state, haystack, at)
	}
	return e.findDirect(state, haystack, at)
}

// TryFindSubmatch is FindSubmatchAt's error-returning counterpart: it
// reports a *MatchError when the bounded backtracker exhausts its step
// budget instead of silently returning nil as a non-match. Patterns that
// never route to the backtracker (useBacktracker == false) never abort
// this way, since the Thompson simulator's running time is linear by
// construction.
func (e *Engine) TryFindSubmatch(haystack []byte, at int) (*MatchWithCaptures, error) {
	if at < 0 {
		at = 0
	}
	if at > len(haystack) {
		return nil, nil
	}

	state := e.getSearchState()
	defer e.putSearchState(state)

	if !e.useBacktracker {
		return e.findDirect(state, haystack, at), nil
	}

	e.stats.BacktrackerSearches++
	start, end, slots := state.backtracker.SearchWithCapturesFrom(haystack, at)
	if slots == nil {
		if state.backtracker.Exhausted() {
			return nil, &MatchError{Pattern: e.pattern, Err: errStepBudgetExceeded}
		}
		return nil, nil
	}
	return &MatchWithCaptures{Match: NewMatch(start, end, haystack), Groups: slotsToCaptures(slots)}, nil
}

// findDirect runs the selected engine directly over haystack, without a
// prefilter.
func (e *Engine) findDirect(state *SearchState, haystack []byte, at int) *MatchWithCaptures {
	if e.useBacktracker {
		e.stats.BacktrackerSearches++
		start, end, slots := state.backtracker.SearchWithCapturesFrom(haystack, at)
		if slots == nil {
			return nil
		}
		return &MatchWithCaptures{Match: NewMatch(start, end, haystack), Groups: slotsToCaptures(slots)}
	}

	e.stats.NFASearches++
	m := state.pikevm.SearchFromWithCaptures(haystack, at)
	if m == nil {
		return nil
	}
	return &MatchWithCaptures{Match: NewMatch(m.Start, m.End, haystack), Groups: m.Captures}
}

// findWithPrefilter scans prefilter candidates, verifying each with an
// anchored attempt at that exact position. A candidate that fails to
// verify simply advances the scan; this never changes which positions
// count as matches, only how fast non-matching regions are skipped.
func (e *Engine) findWithPrefilter(state *SearchState, haystack []byte, at int) *MatchWithCaptures {
	pos := at
	for {
		cand := e.prefilter.Find(haystack, pos)
		if cand < 0 {
			if tracked, ok := e.prefilter.(*prefilter.TrackedPrefilter); ok && !tracked.IsActive() {
				return e.findDirect(state, haystack, pos)
			}
			return nil
		}
		if e.useBacktracker {
			e.stats.BacktrackerSearches++
			end, slots, ok := state.backtracker.SearchAtWithCaptures(haystack, cand)
			if ok {
				e.stats.PrefilterHits++
				e.confirmPrefilterMatch()
				return &MatchWithCaptures{Match: NewMatch(cand, end, haystack), Groups: slotsToCaptures(slots)}
			}
		} else {
			e.stats.NFASearches++
			m := state.pikevm.SearchAtWithCaptures(haystack, cand)
			if m != nil {
				e.stats.PrefilterHits++
				e.confirmPrefilterMatch()
				return &MatchWithCaptures{Match: NewMatch(m.Start, m.End, haystack), Groups: m.Captures}
			}
		}
		e.stats.PrefilterMisses++
		pos = cand + 1
		if pos > len(haystack) {
			return nil
		}
	}
}

// confirmPrefilterMatch records a verified hit with the prefilter's
// effectiveness tracker, when one is wrapping it.
func (e *Engine) confirmPrefilterMatch() {
	if tracked, ok := e.prefilter.(*prefilter.TrackedPrefilter); ok {
		tracked.ConfirmMatch()
	}
}
