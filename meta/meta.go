// Package meta implements the dispatcher: it compiles a pattern to an NFA
// plus an optimization Record, then routes every search call to whichever
// of the two execution engines the pattern requires.
//
// # Architecture
//
// Compilation runs the pattern through syntax.Parse, optimizer.Analyze,
// and nfa.NewCompiler to produce an *nfa.NFA and an optimizer.Record. The
// Record's NeedsBacktracker bit decides the engine for every search:
//
//   - false: the Thompson/Pike-VM simulator (nfa.PikeVM) — linear time,
//     handles literals, classes, greedy quantifiers, anchors, captures.
//   - true: the bounded backtracker (nfa.BoundedBacktracker) — the only
//     engine able to run lazy quantifiers, backreferences, lookaround,
//     atomic groups, and possessive quantifiers.
//
// A pattern never needs both: the two engines are never in competition
// for the same search, only dispatched between.
//
// When the Record yields a usable literal prefix or prefix set, a
// prefilter.Prefilter narrows candidate start positions before either
// engine runs; it is always a speed optimization; it never changes which
// positions are reported as matches.
//
// # Thread safety
//
// An *Engine is safe for concurrent use after Compile returns: the NFA and
// prefilter are immutable, and all per-search mutable state is pulled from
// a sync.Pool-backed searchStatePool.
package meta

import (
	"errors"
	"fmt"
)

// errNoMatch is not returned by any method: public search methods report a
// failed search as a nil *Match or false.
var errNoMatch = errors.New("meta: no match")

// MatchError reports that a search was aborted rather than run to
// completion or genuine failure — currently only raised when the bounded
// backtracker exhausts its configured step budget on a pathological
// pattern/input pair. It is never raised by the Thompson simulator, whose
// running time is linear in input length by construction.
type MatchError struct {
	Pattern string
	Err     error
}

func (e *MatchError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("meta: search aborted for pattern %q: %v", e.Pattern, e.Err)
	}
	return fmt.Sprintf("meta: search aborted: %v", e.Err)
}

func (e *MatchError) Unwrap() error { return e.Err }

// errStepBudgetExceeded is the Err wrapped by a MatchError raised when the
// bounded backtracker aborts a search on its configured step budget.
var errStepBudgetExceeded = errors.New("step budget exceeded")
