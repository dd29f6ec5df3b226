package nfa

import (
	"fmt"
)

// Builder constructs NFAs incrementally using a low-level API.
// This provides full control over NFA construction and is used by the Compiler.
type Builder struct {
	states          []State
	startAnchored   StateID
	startUnanchored StateID
	needsBacktracker bool
}

// NewBuilder creates a new NFA builder with default capacity
func NewBuilder() *Builder {
	return NewBuilderWithCapacity(16)
}

// NewBuilderWithCapacity creates a new NFA builder with specified initial capacity
func NewBuilderWithCapacity(capacity int) *Builder {
	return &Builder{
		states:          make([]State, 0, capacity),
		startAnchored:   InvalidState,
		startUnanchored: InvalidState,
	}
}

// AddMatch adds a match (accepting) state and returns its ID
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateMatch})
	return id
}

// AddByteRange adds a state that transitions on a single byte or byte range [lo, hi].
// For a single byte, set lo == hi.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateByteRange, lo: lo, hi: hi, next: next})
	return id
}

// AddSparse adds a state with multiple byte range transitions (character class).
// The transitions slice is copied to avoid aliasing issues.
func (b *Builder) AddSparse(transitions []Transition) StateID {
	id := StateID(len(b.states))
	trans := make([]Transition, len(transitions))
	copy(trans, transitions)
	b.states = append(b.states, State{id: id, kind: StateSparse, transitions: trans})
	return id
}

// AddSplit adds a state with epsilon transitions to two states (alternation).
// For quantifiers, use AddQuantifierSplit.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right})
	return id
}

// AddQuantifierSplit adds a split for quantifiers (*, +, ?, {n,m}).
// Left is the "continue/repeat" path, right is the "exit" path. The
// compiler uses it for greedy quantifiers only; lazy quantifiers are built
// with AddSplit(exit, body), which puts the exit path first.
func (b *Builder) AddQuantifierSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateSplit, left: left, right: right, isQuantifierSplit: true})
	return id
}

// AddEpsilon adds a state with a single epsilon transition (no input consumed)
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateEpsilon, next: next})
	return id
}

// AddFail adds a dead state with no transitions
func (b *Builder) AddFail() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateFail})
	return id
}

// AddCapture adds a capture boundary state.
func (b *Builder) AddCapture(captureIndex uint32, isStart bool, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateCapture, captureIndex: captureIndex, captureStart: isStart, next: next})
	return id
}

// AddLook adds a zero-width assertion state.
func (b *Builder) AddLook(look Look, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateLook, look: look, next: next})
	return id
}

// AddBackref adds a backreference state. Only the bounded backtracker can
// execute it; adding one to an NFA marks that NFA as needing the backtracker.
func (b *Builder) AddBackref(index uint32, fold bool, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateBackref, backrefIndex: index, backrefFold: fold, next: next})
	b.needsBacktracker = true
	return id
}

// AddLookStart adds the entry bracket of a lookaround assertion. entry is
// the start state of the nested sub-pattern fragment; next is where control
// resumes in the outer pattern once the nested match succeeds/fails per
// positive/behind semantics. Marks the NFA as needing the backtracker.
func (b *Builder) AddLookStart(entry StateID, positive, behind bool, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{
		id: id, kind: StateLookStart,
		lookEntry: entry, lookPositive: positive, lookBehind: behind, next: next,
	})
	b.needsBacktracker = true
	return id
}

// AddLookEnd adds the accepting state of a nested lookaround fragment.
func (b *Builder) AddLookEnd() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateLookEnd})
	return id
}

// AddAtomicStart adds the entry barrier of an atomic group / possessive
// quantifier. next is the entry of the inner fragment. Marks the NFA as
// needing the backtracker.
func (b *Builder) AddAtomicStart(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateAtomicStart, next: next})
	b.needsBacktracker = true
	return id
}

// AddAtomicEnd adds the commit barrier of an atomic group. next is where
// control resumes after the atomic group once its inner alternative wins.
func (b *Builder) AddAtomicEnd(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: StateAtomicEnd, next: next})
	return id
}

// Patch updates a state's target. Used during compilation to handle forward
// references (loops, alternations). Only valid for single-target kinds.
func (b *Builder) Patch(stateID, target StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	switch s.kind {
	case StateByteRange, StateEpsilon, StateCapture, StateLook, StateBackref, StateLookStart, StateAtomicStart, StateAtomicEnd:
		s.next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch state of kind %s", s.kind), StateID: stateID}
	}
}

// PatchSplit updates the left or right target of a Split state
func (b *Builder) PatchSplit(stateID StateID, left, right StateID) error {
	if int(stateID) >= len(b.states) {
		return &BuildError{Message: "state ID out of bounds", StateID: stateID}
	}
	s := &b.states[stateID]
	if s.kind != StateSplit {
		return &BuildError{Message: fmt.Sprintf("expected Split state, got %s", s.kind), StateID: stateID}
	}
	s.left = left
	s.right = right
	return nil
}

// SetStarts sets separate anchored and unanchored start states
func (b *Builder) SetStarts(anchored, unanchored StateID) {
	b.startAnchored = anchored
	b.startUnanchored = unanchored
}

// States returns the current number of states
func (b *Builder) States() int { return len(b.states) }

// Validate checks that the NFA is well-formed: start states set and in
// bounds, and every transition target points at a valid state.
func (b *Builder) Validate() error {
	if b.startAnchored == InvalidState {
		return &BuildError{Message: "anchored start state not set"}
	}
	if int(b.startAnchored) >= len(b.states) {
		return &BuildError{Message: "anchored start state out of bounds", StateID: b.startAnchored}
	}
	if b.startUnanchored == InvalidState {
		return &BuildError{Message: "unanchored start state not set"}
	}
	if int(b.startUnanchored) >= len(b.states) {
		return &BuildError{Message: "unanchored start state out of bounds", StateID: b.startUnanchored}
	}

	inBounds := func(id StateID) bool { return id == InvalidState || int(id) < len(b.states) }

	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case StateByteRange, StateEpsilon, StateCapture, StateLook, StateBackref, StateAtomicStart, StateAtomicEnd:
			if !inBounds(s.next) {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case StateLookStart:
			if !inBounds(s.next) || !inBounds(s.lookEntry) {
				return &BuildError{Message: "invalid lookaround target", StateID: id}
			}
		case StateSplit:
			if !inBounds(s.left) || !inBounds(s.right) {
				return &BuildError{Message: fmt.Sprintf("invalid split targets [%d, %d]", s.left, s.right), StateID: id}
			}
		case StateSparse:
			for j, t := range s.transitions {
				if !inBounds(t.Next) {
					return &BuildError{Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next), StateID: id}
				}
			}
		}
	}

	return nil
}

// Build finalizes and returns the constructed NFA.
func (b *Builder) Build(opts ...BuildOption) (*NFA, error) {
	n := &NFA{
		states:           b.states,
		startAnchored:    b.startAnchored,
		startUnanchored:  b.startUnanchored,
		anchored:         false,
		needsBacktracker: b.needsBacktracker,
	}

	for _, opt := range opts {
		opt(n)
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// BuildOption is a functional option for configuring the built NFA
type BuildOption func(*NFA)

// WithAnchored sets whether the NFA requires anchored matching
func WithAnchored(anchored bool) BuildOption {
	return func(n *NFA) { n.anchored = anchored }
}

// WithCaptureCount sets the number of capture groups in the NFA (including group 0)
func WithCaptureCount(count int) BuildOption {
	return func(n *NFA) { n.captureCount = count }
}

// WithCaptureNames sets the names of capture groups in the NFA.
func WithCaptureNames(names []string) BuildOption {
	return func(n *NFA) {
		if len(names) > 0 {
			n.captureNames = make([]string, len(names))
			copy(n.captureNames, names)
		}
	}
}

// WithNeedsBacktracker ORs needs into the NFA's needsBacktracker bit; it
// never clears a bit already set by backtracker-only state kinds.
func WithNeedsBacktracker(needs bool) BuildOption {
	return func(n *NFA) { n.needsBacktracker = n.needsBacktracker || needs }
}
