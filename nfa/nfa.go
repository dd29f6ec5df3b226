package nfa

import (
	"fmt"
)

// StateID uniquely identifies an NFA state.
// This is a 32-bit unsigned integer for compact representation.
type StateID uint32

// Special state constants
const (
	// InvalidState represents an invalid/uninitialized state ID
	InvalidState StateID = 0xFFFFFFFF

	// FailState represents a dead/failure state (no transitions)
	FailState StateID = 0xFFFFFFFE
)

// StateKind identifies the type of NFA state and determines which transitions are valid.
type StateKind uint8

const (
	// StateMatch represents a match state (accepting state)
	StateMatch StateKind = iota

	// StateByteRange represents a single byte or byte range transition [lo, hi]
	StateByteRange

	// StateSparse represents multiple byte transitions (character class)
	// e.g., [a-zA-Z0-9] would use this with a list of byte ranges
	StateSparse

	// StateSplit represents an epsilon transition to 2 states (alternation or quantifier)
	StateSplit

	// StateEpsilon represents an epsilon transition to 1 state
	// Used for sequencing without consuming input
	StateEpsilon

	// StateCapture represents a capture group boundary
	StateCapture

	// StateLook represents a zero-width assertion (^, $, \b, \B, \A, \z)
	StateLook

	// StateBackref represents a backreference to a previously captured group.
	// Only reachable from the bounded backtracker; the Thompson simulator
	// never emits or walks this state kind.
	StateBackref

	// StateLookStart marks the entry of a lookaround sub-match. The nested
	// fragment starting at lookEntry is matched independently (without advancing
	// the outer cursor on success) by the bounded backtracker only.
	StateLookStart

	// StateLookEnd marks the accepting state of a lookaround sub-pattern.
	StateLookEnd

	// StateAtomicStart marks the entry of an atomic group / possessive
	// quantifier. Once the inner alternative succeeds it may not be
	// re-entered on a later backtrack.
	StateAtomicStart

	// StateAtomicEnd marks the exit of an atomic group.
	StateAtomicEnd

	// StateFail represents a dead state (no valid transitions)
	StateFail
)

// String returns a human-readable representation of the StateKind
func (k StateKind) String() string {
	switch k {
	case StateMatch:
		return "Match"
	case StateByteRange:
		return "ByteRange"
	case StateSparse:
		return "Sparse"
	case StateSplit:
		return "Split"
	case StateEpsilon:
		return "Epsilon"
	case StateCapture:
		return "Capture"
	case StateLook:
		return "Look"
	case StateBackref:
		return "Backref"
	case StateLookStart:
		return "LookStart"
	case StateLookEnd:
		return "LookEnd"
	case StateAtomicStart:
		return "AtomicStart"
	case StateAtomicEnd:
		return "AtomicEnd"
	case StateFail:
		return "Fail"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Look enumerates the zero-width assertions a StateLook can carry.
type Look uint8

const (
	LookStartText    Look = iota // \A
	LookEndText                  // \z
	LookStartLine                // ^ in multiline mode
	LookEndLine                  // $ in multiline mode
	LookWordBoundary             // \b
	LookNotWordBoundary          // \B
)

func (l Look) String() string {
	switch l {
	case LookStartText:
		return "StartText"
	case LookEndText:
		return "EndText"
	case LookStartLine:
		return "StartLine"
	case LookEndLine:
		return "EndLine"
	case LookWordBoundary:
		return "WordBoundary"
	case LookNotWordBoundary:
		return "NotWordBoundary"
	default:
		return fmt.Sprintf("Look(%d)", l)
	}
}

// State represents a single NFA state with its transitions.
// The state's kind determines which fields are valid.
type State struct {
	id   StateID
	kind StateKind

	// For ByteRange: single byte or range [lo, hi]
	lo, hi byte
	next   StateID // target state for ByteRange/Epsilon/Capture/Look/LookEnd/AtomicEnd

	// For Sparse: multiple byte ranges with corresponding targets
	transitions []Transition

	// For Split: epsilon transitions to two states
	left, right       StateID
	isQuantifierSplit bool // true when this split implements a quantifier, not an alternation

	// For Capture: capture group index and whether this is opening/closing
	captureIndex uint32
	captureStart bool // true = opening boundary, false = closing boundary

	// For Look: assertion kind
	look Look

	// For Backref: target capture group and case-fold flag
	backrefIndex uint32
	backrefFold  bool

	// For LookStart: nested fragment entry, polarity and direction.
	lookEntry    StateID
	lookPositive bool
	lookBehind   bool
}

// Transition represents a byte range and target state for sparse transitions.
// Used in character classes like [a-zA-Z0-9].
type Transition struct {
	Lo   byte    // inclusive lower bound
	Hi   byte    // inclusive upper bound
	Next StateID // target state
}

// ID returns the state's unique identifier
func (s *State) ID() StateID { return s.id }

// Kind returns the state's type
func (s *State) Kind() StateKind { return s.kind }

// IsMatch returns true if this is a match state
func (s *State) IsMatch() bool { return s.kind == StateMatch }

// ByteRange returns the byte range for ByteRange states.
func (s *State) ByteRange() (lo, hi byte, next StateID) {
	if s.kind == StateByteRange {
		return s.lo, s.hi, s.next
	}
	return 0, 0, InvalidState
}

// Split returns the two target states for Split states.
func (s *State) Split() (left, right StateID) {
	if s.kind == StateSplit {
		return s.left, s.right
	}
	return InvalidState, InvalidState
}

// IsQuantifierSplit reports whether a Split state implements a quantifier
// (as opposed to an alternation). Quantifier splits never affect thread
// priority decisions made for alternation.
func (s *State) IsQuantifierSplit() bool { return s.isQuantifierSplit }

// Epsilon returns the target state for Epsilon states.
func (s *State) Epsilon() StateID {
	if s.kind == StateEpsilon {
		return s.next
	}
	return InvalidState
}

// Transitions returns the list of transitions for Sparse states.
func (s *State) Transitions() []Transition {
	if s.kind == StateSparse {
		return s.transitions
	}
	return nil
}

// Capture returns capture group info for Capture states.
func (s *State) Capture() (index uint32, isStart bool, next StateID) {
	if s.kind == StateCapture {
		return s.captureIndex, s.captureStart, s.next
	}
	return 0, false, InvalidState
}

// Look returns the assertion kind and continuation for Look states.
func (s *State) LookAssertion() (look Look, next StateID) {
	if s.kind == StateLook {
		return s.look, s.next
	}
	return 0, InvalidState
}

// Backref returns the referenced group index, case-fold flag, and continuation.
func (s *State) Backref() (index uint32, fold bool, next StateID) {
	if s.kind == StateBackref {
		return s.backrefIndex, s.backrefFold, s.next
	}
	return 0, false, InvalidState
}

// LookStart returns the nested-fragment entry, polarity, direction and the
// state to continue to if the assertion succeeds.
func (s *State) LookStart() (entry StateID, positive, behind bool, next StateID) {
	if s.kind == StateLookStart {
		return s.lookEntry, s.lookPositive, s.lookBehind, s.next
	}
	return InvalidState, false, false, InvalidState
}

// LookEnd returns the state a nested lookaround fragment transitions to once
// matched (conceptually a match state for the nested sub-search).
func (s *State) LookEnd() StateID {
	if s.kind == StateLookEnd {
		return s.next
	}
	return InvalidState
}

// AtomicStart returns the entry of the atomic group's inner fragment and the
// continuation once the inner alternative commits.
func (s *State) AtomicStart() (entry StateID) {
	if s.kind == StateAtomicStart {
		return s.next
	}
	return InvalidState
}

// AtomicEnd returns the continuation after an atomic group commits.
func (s *State) AtomicEnd() StateID {
	if s.kind == StateAtomicEnd {
		return s.next
	}
	return InvalidState
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	switch s.kind {
	case StateMatch:
		return fmt.Sprintf("State(%d, Match)", s.id)
	case StateByteRange:
		if s.lo == s.hi {
			return fmt.Sprintf("State(%d, ByteRange '%c' -> %d)", s.id, s.lo, s.next)
		}
		return fmt.Sprintf("State(%d, ByteRange ['%c'-'%c'] -> %d)", s.id, s.lo, s.hi, s.next)
	case StateSparse:
		return fmt.Sprintf("State(%d, Sparse %d transitions)", s.id, len(s.transitions))
	case StateSplit:
		return fmt.Sprintf("State(%d, Split -> [%d, %d])", s.id, s.left, s.right)
	case StateEpsilon:
		return fmt.Sprintf("State(%d, Epsilon -> %d)", s.id, s.next)
	case StateCapture:
		return fmt.Sprintf("State(%d, Capture(%d, start=%v) -> %d)", s.id, s.captureIndex, s.captureStart, s.next)
	case StateLook:
		return fmt.Sprintf("State(%d, Look(%s) -> %d)", s.id, s.look, s.next)
	case StateBackref:
		return fmt.Sprintf("State(%d, Backref(%d) -> %d)", s.id, s.backrefIndex, s.next)
	case StateLookStart:
		return fmt.Sprintf("State(%d, LookStart(entry=%d, positive=%v, behind=%v) -> %d)", s.id, s.lookEntry, s.lookPositive, s.lookBehind, s.next)
	case StateLookEnd:
		return fmt.Sprintf("State(%d, LookEnd -> %d)", s.id, s.next)
	case StateAtomicStart:
		return fmt.Sprintf("State(%d, AtomicStart -> %d)", s.id, s.next)
	case StateAtomicEnd:
		return fmt.Sprintf("State(%d, AtomicEnd -> %d)", s.id, s.next)
	case StateFail:
		return fmt.Sprintf("State(%d, Fail)", s.id)
	default:
		return fmt.Sprintf("State(%d, Unknown)", s.id)
	}
}

// NFA represents a compiled Thompson NFA over an Expr AST.
type NFA struct {
	states []State

	// startAnchored is the start state for anchored searches.
	startAnchored StateID

	// startUnanchored is the start state for unanchored searches
	// (points to a (?s:.)*? prefix splice for O(n) unanchored matching).
	startUnanchored StateID

	// anchored indicates the pattern is inherently anchored (^ prefix).
	anchored bool

	// needsBacktracker is true when the NFA contains backtracker-only
	// state kinds (lookaround, backreference, atomic group/possessive
	// quantifier) that the Thompson simulator cannot execute.
	needsBacktracker bool

	captureCount int
	captureNames []string
}

// StartAnchored returns the start state for anchored searches
func (n *NFA) StartAnchored() StateID { return n.startAnchored }

// StartUnanchored returns the start state for unanchored searches
func (n *NFA) StartUnanchored() StateID { return n.startUnanchored }

// IsAlwaysAnchored returns true if anchored and unanchored starts are the same.
func (n *NFA) IsAlwaysAnchored() bool { return n.startAnchored == n.startUnanchored }

// State returns the state with the given ID, or nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch returns true if the given state is a match state
func (n *NFA) IsMatch(id StateID) bool {
	if s := n.State(id); s != nil {
		return s.IsMatch()
	}
	return false
}

// States returns the total number of states in the NFA
func (n *NFA) States() int { return len(n.states) }

// IsAnchored returns true if the NFA requires anchored matching
func (n *NFA) IsAnchored() bool { return n.anchored }

// NeedsBacktracker returns true if this NFA contains state kinds only the
// bounded backtracker can execute (lookaround, backreference, atomic group).
func (n *NFA) NeedsBacktracker() bool { return n.needsBacktracker }

// CaptureCount returns the number of capture groups, including group 0
// (the entire match).
func (n *NFA) CaptureCount() int { return n.captureCount }

// SubexpNames returns the names of capture groups in the pattern.
// Index 0 is always "" (the entire match); matches stdlib regexp semantics.
func (n *NFA) SubexpNames() []string {
	if len(n.captureNames) == 0 {
		return make([]string, n.captureCount)
	}
	names := make([]string, len(n.captureNames))
	copy(names, n.captureNames)
	return names
}

// Iter returns an iterator over all states in the NFA
func (n *NFA) Iter() *StateIter {
	return &StateIter{nfa: n, pos: 0}
}

// StateIter is an iterator over NFA states
type StateIter struct {
	nfa *NFA
	pos int
}

// Next returns the next state in the iteration, or nil when exhausted.
func (it *StateIter) Next() *State {
	if it.pos >= len(it.nfa.states) {
		return nil
	}
	s := &it.nfa.states[it.pos]
	it.pos++
	return s
}

// HasNext returns true if there are more states to iterate
func (it *StateIter) HasNext() bool { return it.pos < len(it.nfa.states) }

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, startAnchored: %d, startUnanchored: %d, anchored: %v, needsBacktracker: %v}",
		len(n.states), n.startAnchored, n.startUnanchored, n.anchored, n.needsBacktracker)
}
