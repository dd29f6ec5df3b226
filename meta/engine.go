// engine.go contains the Engine struct definition and core API methods.

package meta

import (
	"github.com/zig-utils/zig-regex-sub002/nfa"
	"github.com/zig-utils/zig-regex-sub002/optimizer"
	"github.com/zig-utils/zig-regex-sub002/prefilter"
)

// Engine is the compiled form of a pattern: an NFA plus the optimization
// Record and prefilter the dispatcher uses to route and accelerate every
// search call.
//
// Compiled once via Compile/CompileWithConfig, an *Engine is safe for
// concurrent use: the nfa.NFA and prefilter.Prefilter are immutable after
// construction, and per-search mutable state (PikeVM thread queues, the
// backtracker's visited set) is drawn from a sync.Pool-backed
// searchStatePool.
type Engine struct {
	stats Stats

	pattern string
	nfa     *nfa.NFA
	record  optimizer.Record
	config  Config

	// useBacktracker is true when record.NeedsBacktracker or the compiled
	// NFA's NeedsBacktracker is set: the pattern uses lazy quantifiers,
	// backreferences, lookaround, atomic groups, or possessive quantifiers
	// the Thompson simulator cannot execute.
	useBacktracker bool

	prefilter prefilter.Prefilter

	statePool *searchStatePool
}

// Stats tracks execution statistics for performance analysis.
type Stats struct {
	// NFASearches counts Thompson-simulator (PikeVM) searches.
	NFASearches uint64

	// BacktrackerSearches counts bounded-backtracker searches.
	BacktrackerSearches uint64

	// PrefilterHits counts prefilter candidates that led to a confirmed
	// match.
	PrefilterHits uint64

	// PrefilterMisses counts prefilter candidates that did not confirm.
	PrefilterMisses uint64
}

// Stats returns a snapshot of execution statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// ResetStats resets execution statistics to zero.
func (e *Engine) ResetStats() {
	e.stats = Stats{}
}

// NumCaptures returns the number of capture groups in the pattern. Group 0
// is the entire match, groups 1+ are explicit captures.
func (e *Engine) NumCaptures() int {
	return e.nfa.CaptureCount()
}

// SubexpNames returns the names of capture groups in the pattern. Index 0
// is always "" (entire match); unnamed groups also map to "".
func (e *Engine) SubexpNames() []string {
	return e.nfa.SubexpNames()
}

// Pattern returns the original source pattern this Engine was compiled
// from.
func (e *Engine) Pattern() string {
	return e.pattern
}

// IsStartAnchored returns true if the pattern is anchored at the start
// (every match must begin at position 0).
func (e *Engine) IsStartAnchored() bool {
	return e.record.AnchoredStart
}

// CanMatchEmpty returns true if the pattern can match the empty string.
func (e *Engine) CanMatchEmpty() bool {
	return e.record.CanMatchEmpty
}

// getSearchState retrieves a SearchState from the pool. Caller must call
// putSearchState when done.
func (e *Engine) getSearchState() *SearchState {
	return e.statePool.get()
}

// putSearchState returns a SearchState to the pool.
func (e *Engine) putSearchState(state *SearchState) {
	e.statePool.put(state)
}
