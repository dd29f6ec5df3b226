// ismatch.go contains IsMatch methods for boolean matching. These avoid
// capture-group bookkeeping entirely, so they are cheaper than Find when
// only membership is needed.

package meta

import "github.com/zig-utils/zig-regex-sub002/prefilter"

// IsMatch returns true if the pattern matches anywhere in haystack.
func (e *Engine) IsMatch(haystack []byte) bool {
	state := e.getSearchState()
	defer e.putSearchState(state)

	if e.prefilter != nil {
		return e.isMatchWithPrefilter(state, haystack)
	}

	if e.useBacktracker {
		e.stats.BacktrackerSearches++
		return state.backtracker.IsMatch(haystack)
	}

	e.stats.NFASearches++
	_, _, ok := state.pikevm.Search(haystack)
	return ok
}

// IsMatchAt returns true if the pattern matches beginning exactly at at.
func (e *Engine) IsMatchAt(haystack []byte, at int) bool {
	if at < 0 || at > len(haystack) {
		return false
	}
	state := e.getSearchState()
	defer e.putSearchState(state)

	if e.useBacktracker {
		e.stats.BacktrackerSearches++
		_, _, ok := state.backtracker.SearchAtWithCaptures(haystack, at)
		return ok
	}

	e.stats.NFASearches++
	_, _, ok := state.pikevm.SearchAt(haystack, at)
	return ok
}

func (e *Engine) isMatchWithPrefilter(state *SearchState, haystack []byte) bool {
	pos := 0
	for {
		cand := e.prefilter.Find(haystack, pos)
		if cand < 0 {
			if tracked, ok := e.prefilter.(*prefilter.TrackedPrefilter); ok && !tracked.IsActive() {
				if e.useBacktracker {
					e.stats.BacktrackerSearches++
					_, _, slots := state.backtracker.SearchWithCapturesFrom(haystack, pos)
					return slots != nil
				}
				e.stats.NFASearches++
				return state.pikevm.SearchFromWithCaptures(haystack, pos) != nil
			}
			return false
		}
		if e.useBacktracker {
			e.stats.BacktrackerSearches++
			if _, _, ok := state.backtracker.SearchAtWithCaptures(haystack, cand); ok {
				e.stats.PrefilterHits++
				e.confirmPrefilterMatch()
				return true
			}
		} else {
			e.stats.NFASearches++
			if _, _, ok := state.pikevm.SearchAt(haystack, cand); ok {
				e.stats.PrefilterHits++
				e.confirmPrefilterMatch()
				return true
			}
		}
		e.stats.PrefilterMisses++
		pos = cand + 1
		if pos > len(haystack) {
			return false
		}
	}
}
