package meta

import (
	"sync"

	"github.com/zig-utils/zig-regex-sub002/nfa"
)

// SearchState holds per-search mutable state, letting a single compiled
// Engine be used concurrently from multiple goroutines.
//
// Usage pattern:
//
//	state := engine.getSearchState()
//	defer engine.putSearchState(state)
//	// use state.pikevm / state.backtracker
//
// A SearchState itself is NOT thread-safe; each goroutine must use its own
// instance drawn from the pool.
type SearchState struct {
	// pikevm is a per-search Thompson-simulator instance. PikeVM carries
	// mutable thread queues and a visited set, so whole instances are
	// pooled rather than reset in place.
	pikevm *nfa.PikeVM

	// backtracker is a per-search bounded-backtracker instance, present
	// only when the engine's pattern needs it.
	backtracker *nfa.BoundedBacktracker
}

// newSearchState creates a SearchState wired to nfaEngine.
func newSearchState(nfaEngine *nfa.NFA, useBacktracker bool, stepBudget int) *SearchState {
	state := &SearchState{
		pikevm: nfa.NewPikeVM(nfaEngine),
	}
	if useBacktracker {
		bt := nfa.NewBoundedBacktracker(nfaEngine)
		if stepBudget > 0 {
			bt.SetStepBudget(stepBudget)
		}
		state.backtracker = bt
	}
	return state
}

// searchStatePool manages a pool of SearchState instances for concurrent
// reuse, following the stdlib regexp pattern of sync.Pool-backed scratch.
type searchStatePool struct {
	pool sync.Pool
}

func newSearchStatePool(nfaEngine *nfa.NFA, useBacktracker bool, stepBudget int) *searchStatePool {
	p := &searchStatePool{}
	p.pool = sync.Pool{
		New: func() any {
			return newSearchState(nfaEngine, useBacktracker, stepBudget)
		},
	}
	return p
}

func (p *searchStatePool) get() *SearchState {
	return p.pool.Get().(*SearchState)
}

func (p *searchStatePool) put(state *SearchState) {
	if state == nil {
		return
	}
	p.pool.Put(state)
}
