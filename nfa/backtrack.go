package nfa

// BoundedBacktracker implements a bounded backtracking regex matcher.
// It uses a bit vector to track visited (state, position) pairs, providing
// O(1) lookup with low constant overhead - faster than SparseSet for small
// inputs, and it is the only engine able to execute lazy quantifiers'
// sibling ordering combined with backreferences, lookaround, and atomic
// groups/possessive quantifiers (none of which the Thompson simulator can
// run).
//
// The meta dispatcher selects this engine when the pattern needs it (lazy
// quantifiers, backreferences, lookaround, atomic groups or possessive
// quantifiers). CanHandle reports whether (len(haystack)+1) * nfa.States()
// fits within maxVisitedSize (default 256KB of visited bits).
type BoundedBacktracker struct {
	nfa *NFA

	// visited is a bit vector tracking (state, position) pairs.
	// Layout: bit at index (state * (inputLen+1) + pos) indicates visited.
	visited []uint64

	// captures holds [start0, end0, start1, end1, ...] for the in-progress
	// search attempt. Values are restored on backtrack (save old, recurse,
	// restore on failure) rather than copied, since the recursive call
	// stack already gives the search its undo points.
	captures []int

	// steps counts recursive calls made during the CURRENT candidate start
	// position. Reset to 0 at the top of every startPos attempt, per the
	// rule that the step budget must not leak across start positions.
	steps int

	// stepBudget bounds steps per candidate start position. Zero means
	// unbounded (only safe for small, loop-free patterns; SetStepBudget
	// should be called with a real bound by the compiler otherwise).
	stepBudget int

	inputLen  int
	numStates int

	// maxVisitedSize limits memory usage (in bits). Default 256KB = 2M bits.
	maxVisitedSize int
}

// NewBoundedBacktracker creates a new bounded backtracker for the given NFA.
func NewBoundedBacktracker(n *NFA) *BoundedBacktracker {
	return &BoundedBacktracker{
		nfa:            n,
		numStates:      n.States(),
		maxVisitedSize: 256 * 1024 * 8,
		stepBudget:     1_000_000,
	}
}

// SetStepBudget overrides the per-start-position recursive step budget.
// Zero disables the check entirely.
func (b *BoundedBacktracker) SetStepBudget(n int) { b.stepBudget = n }

// CanHandle returns true if this engine can handle the given input size
// without exceeding its visited bit-vector memory bound.
func (b *BoundedBacktracker) CanHandle(haystackLen int) bool {
	bitsNeeded := b.numStates * (haystackLen + 1)
	return bitsNeeded <= b.maxVisitedSize
}

// reset prepares the backtracker for an entirely new haystack.
func (b *BoundedBacktracker) reset(haystackLen int) {
	b.inputLen = haystackLen

	bitsNeeded := b.numStates * (haystackLen + 1)
	wordsNeeded := (bitsNeeded + 63) / 64
	if cap(b.visited) >= wordsNeeded {
		b.visited = b.visited[:wordsNeeded]
	} else {
		b.visited = make([]uint64, wordsNeeded)
	}
	b.clearVisited()

	numSlots := b.nfa.CaptureCount() * 2
	if cap(b.captures) >= numSlots {
		b.captures = b.captures[:numSlots]
	} else {
		b.captures = make([]int, numSlots)
	}
	b.resetCaptures()
}

func (b *BoundedBacktracker) clearVisited() {
	for i := range b.visited {
		b.visited[i] = 0
	}
}

func (b *BoundedBacktracker) resetCaptures() {
	for i := range b.captures {
		b.captures[i] = -1
	}
}

// shouldVisit checks if (state, pos) has been visited and marks it if not.
// This is the hot path and must stay cheap.
func (b *BoundedBacktracker) shouldVisit(state StateID, pos int) bool {
	idx := int(state)*(b.inputLen+1) + pos
	word := idx / 64
	bit := uint64(1) << (idx % 64)
	if b.visited[word]&bit != 0 {
		return false
	}
	b.visited[word] |= bit
	return true
}

// tick charges one recursive step against the per-start-position budget.
// Returns false once the budget is exhausted, at which point the caller
// must fail the whole attempt (meta's TryFindSubmatch reports that as a
// *MatchError; the other meta search methods report no match).
func (b *BoundedBacktracker) tick() bool {
	if b.stepBudget <= 0 {
		return true
	}
	b.steps++
	return b.steps <= b.stepBudget
}

// Exhausted reports whether the most recent search aborted on its step
// budget rather than genuinely failing to match.
func (b *BoundedBacktracker) Exhausted() bool {
	return b.stepBudget > 0 && b.steps > b.stepBudget
}

// IsMatch returns true if the pattern matches anywhere in the haystack.
func (b *BoundedBacktracker) IsMatch(haystack []byte) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}
	b.reset(len(haystack))
	for startPos := 0; startPos <= len(haystack); startPos++ {
		b.steps = 0
		b.clearVisited()
		b.resetCaptures()
		if b.backtrack(haystack, startPos, b.nfa.StartAnchored()) {
			return true
		}
		if b.nfa.IsAlwaysAnchored() {
			break
		}
	}
	return false
}

// IsMatchAnchored returns true if the pattern matches at the start of haystack.
func (b *BoundedBacktracker) IsMatchAnchored(haystack []byte) bool {
	if !b.CanHandle(len(haystack)) {
		return false
	}
	b.reset(len(haystack))
	return b.backtrack(haystack, 0, b.nfa.StartAnchored())
}

// SearchAtWithCaptures attempts a match beginning exactly at position at
// (no scanning to later positions). Used to verify a prefilter candidate
// without re-trying every subsequent start position on failure.
func (b *BoundedBacktracker) SearchAtWithCaptures(haystack []byte, at int) (end int, captures []int, ok bool) {
	if !b.CanHandle(len(haystack)) || at < 0 || at > len(haystack) {
		return -1, nil, false
	}
	b.reset(len(haystack))
	b.steps = 0
	b.clearVisited()
	b.resetCaptures()

	e := b.backtrackFind(haystack, at, b.nfa.StartAnchored())
	if e < 0 {
		return -1, nil, false
	}
	out := make([]int, len(b.captures))
	copy(out, b.captures)
	out[0], out[1] = at, e
	return e, out, true
}

// Search finds the first match in the haystack.
// Returns (start, end, true) if found, (-1, -1, false) otherwise.
func (b *BoundedBacktracker) Search(haystack []byte) (int, int, bool) {
	start, end, captures := b.SearchWithCaptures(haystack)
	if captures == nil {
		return start, end, false
	}
	return start, end, true
}

// SearchWithCaptures finds the first match and its capture positions.
// Returns captures == nil when no match is found (or the budget was
// exhausted at every candidate start position).
func (b *BoundedBacktracker) SearchWithCaptures(haystack []byte) (start, end int, captures []int) {
	return b.SearchWithCapturesFrom(haystack, 0)
}

// SearchWithCapturesFrom finds the first match starting at or after from,
// trying successive candidate start positions against the same haystack so
// absolute-position anchors (\A, \z, ^ in non-multiline mode) are evaluated
// correctly regardless of where the scan begins. Used by FindAll-style
// callers to resume a search after a previous match.
func (b *BoundedBacktracker) SearchWithCapturesFrom(haystack []byte, from int) (start, end int, captures []int) {
	if !b.CanHandle(len(haystack)) {
		return -1, -1, nil
	}
	b.reset(len(haystack))
	if from < 0 {
		from = 0
	}

	for startPos := from; startPos <= len(haystack); startPos++ {
		// Step budget and visited state are both reset per candidate start
		// position: a pattern that fails to match starting at position k
		// must get a fresh budget to try starting at k+1.
		b.steps = 0
		b.clearVisited()
		b.resetCaptures()

		if e := b.backtrackFind(haystack, startPos, b.nfa.StartAnchored()); e >= 0 {
			out := make([]int, len(b.captures))
			copy(out, b.captures)
			out[0], out[1] = startPos, e
			return startPos, e, out
		}
		if b.nfa.IsAlwaysAnchored() {
			break
		}
	}
	return -1, -1, nil
}

// backtrack performs recursive backtracking search for IsMatch.
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrack(haystack []byte, pos int, state StateID) bool {
	if !b.tick() {
		return false
	}
	if state == InvalidState || int(state) >= b.numStates {
		return false
	}
	if !b.shouldVisit(state, pos) {
		return false
	}

	s := b.nfa.State(state)
	if s == nil {
		return false
	}

	switch s.Kind() {
	case StateMatch, StateLookEnd:
		return true

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			if c := haystack[pos]; c >= lo && c <= hi {
				return b.backtrack(haystack, pos+1, next)
			}
		}
		return false

	case StateSparse:
		if pos >= len(haystack) {
			return false
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrack(haystack, pos+1, tr.Next)
			}
		}
		return false

	case StateSplit:
		left, right := s.Split()
		return b.backtrack(haystack, pos, left) || b.backtrack(haystack, pos, right)

	case StateEpsilon:
		return b.backtrack(haystack, pos, s.Epsilon())

	case StateCapture:
		idx, isStart, next := s.Capture()
		return b.withCapture(idx, isStart, pos, func() bool { return b.backtrack(haystack, pos, next) })

	case StateLook:
		look, next := s.LookAssertion()
		if checkLookAssertion(look, haystack, pos) {
			return b.backtrack(haystack, pos, next)
		}
		return false

	case StateBackref:
		end, ok := b.matchBackref(haystack, pos, s)
		if !ok {
			return false
		}
		return b.backtrack(haystack, end, s.next)

	case StateLookStart:
		entry, positive, behind, next := s.LookStart()
		if b.lookAssert(haystack, pos, entry, behind) == positive {
			return b.backtrack(haystack, pos, next)
		}
		return false

	case StateAtomicStart:
		end := b.atomicCommit(haystack, pos, s)
		if end < 0 {
			return false
		}
		return b.backtrack(haystack, end, s.AtomicEnd())

	case StateFail:
		return false
	}

	return false
}

// backtrackFind performs recursive backtracking to find the match end
// position. Returns -1 if no match is found from (pos, state).
//
//nolint:gocyclo,cyclop // complexity is inherent to state machine dispatch
func (b *BoundedBacktracker) backtrackFind(haystack []byte, pos int, state StateID) int {
	if !b.tick() {
		return -1
	}
	if state == InvalidState || int(state) >= b.numStates {
		return -1
	}
	if !b.shouldVisit(state, pos) {
		return -1
	}

	s := b.nfa.State(state)
	if s == nil {
		return -1
	}

	switch s.Kind() {
	case StateMatch, StateLookEnd:
		return pos

	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			if c := haystack[pos]; c >= lo && c <= hi {
				return b.backtrackFind(haystack, pos+1, next)
			}
		}
		return -1

	case StateSparse:
		if pos >= len(haystack) {
			return -1
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrackFind(haystack, pos+1, tr.Next)
			}
		}
		return -1

	case StateSplit:
		left, right := s.Split()
		if end := b.backtrackFind(haystack, pos, left); end >= 0 {
			return end
		}
		return b.backtrackFind(haystack, pos, right)

	case StateEpsilon:
		return b.backtrackFind(haystack, pos, s.Epsilon())

	case StateCapture:
		idx, isStart, next := s.Capture()
		slot := int(idx) * 2
		if !isStart {
			slot++
		}
		old := b.captures[slot]
		b.captures[slot] = pos
		if end := b.backtrackFind(haystack, pos, next); end >= 0 {
			return end
		}
		b.captures[slot] = old
		return -1

	case StateLook:
		look, next := s.LookAssertion()
		if checkLookAssertion(look, haystack, pos) {
			return b.backtrackFind(haystack, pos, next)
		}
		return -1

	case StateBackref:
		end, ok := b.matchBackref(haystack, pos, s)
		if !ok {
			return -1
		}
		return b.backtrackFind(haystack, end, s.next)

	case StateLookStart:
		entry, positive, behind, next := s.LookStart()
		if b.lookAssert(haystack, pos, entry, behind) == positive {
			return b.backtrackFind(haystack, pos, next)
		}
		return -1

	case StateAtomicStart:
		end := b.atomicCommit(haystack, pos, s)
		if end < 0 {
			return -1
		}
		return b.backtrackFind(haystack, end, s.AtomicEnd())

	case StateFail:
		return -1
	}

	return -1
}

// withCapture saves a capture slot, runs fn, and restores the slot on
// failure so a sibling alternative sees a clean value. On success the new
// value is left in place, matching the push/pop discipline backreferences
// rely on (the group's latest successful binding must be visible to any
// backreference appearing after it in the pattern).
func (b *BoundedBacktracker) withCapture(idx uint32, isStart bool, pos int, fn func() bool) bool {
	slot := int(idx) * 2
	if !isStart {
		slot++
	}
	old := b.captures[slot]
	b.captures[slot] = pos
	if fn() {
		return true
	}
	b.captures[slot] = old
	return false
}

// matchBackref compares the bytes at pos against the text captured by the
// referenced group, honoring case folding. An unset (never-entered) group
// is treated as matching the empty string, consistent with Perl/PCRE.
func (b *BoundedBacktracker) matchBackref(haystack []byte, pos int, s *State) (end int, ok bool) {
	idx, fold, _ := s.Backref()
	slot := int(idx) * 2
	if slot+1 >= len(b.captures) {
		return pos, true
	}
	start, stop := b.captures[slot], b.captures[slot+1]
	if start < 0 || stop < 0 {
		return pos, true // unset group matches empty
	}
	want := haystack[start:stop]
	if pos+len(want) > len(haystack) {
		return 0, false
	}
	got := haystack[pos : pos+len(want)]
	if fold {
		if !asciiEqualFold(want, got) {
			return 0, false
		}
	} else {
		for i := range want {
			if want[i] != got[i] {
				return 0, false
			}
		}
	}
	return pos + len(want), true
}

func asciiEqualFold(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if asciiLower(a[i]) != asciiLower(b[i]) {
			return false
		}
	}
	return true
}

func asciiLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// lookAssert evaluates a lookaround assertion's nested fragment. Lookahead
// tries the fragment starting exactly at pos; lookbehind scans candidate
// start positions backward from pos and accepts if the fragment matches
// exactly up to pos (i.e. only fixed- or bounded-width lookbehind bodies
// are supported, the common case for this engine's scope).
func (b *BoundedBacktracker) lookAssert(haystack []byte, pos int, entry StateID, behind bool) bool {
	// Captures set by the nested match are discarded once it returns.
	saved := append([]int(nil), b.captures...)
	defer copy(b.captures, saved)
	if !behind {
		return b.backtrackFind(haystack, pos, entry) >= 0
	}
	for start := pos; start >= 0; start-- {
		if end := b.backtrackFind(haystack, start, entry); end == pos {
			return true
		}
	}
	return false
}

// atomicCommit resolves an atomic group / possessive quantifier: it finds
// the first successful path through the inner fragment up to its
// StateAtomicEnd barrier and commits to that position, without leaving the
// possibility of the caller backtracking into a different inner
// alternative later.
func (b *BoundedBacktracker) atomicCommit(haystack []byte, pos int, s *State) int {
	entry := s.AtomicStart()
	return b.backtrackUntil(haystack, pos, entry, StateAtomicEnd)
}

// backtrackUntil is like backtrackFind but treats reaching a state of kind
// stop as success (returning the position reached) instead of continuing
// through it. Used to find an atomic group's commit point independent of
// what follows the group in the pattern.
func (b *BoundedBacktracker) backtrackUntil(haystack []byte, pos int, state StateID, stop StateKind) int {
	if !b.tick() {
		return -1
	}
	if state == InvalidState || int(state) >= b.numStates {
		return -1
	}
	if !b.shouldVisit(state, pos) {
		return -1
	}
	s := b.nfa.State(state)
	if s == nil {
		return -1
	}
	if s.Kind() == stop {
		return pos
	}

	switch s.Kind() {
	case StateByteRange:
		lo, hi, next := s.ByteRange()
		if pos < len(haystack) {
			if c := haystack[pos]; c >= lo && c <= hi {
				return b.backtrackUntil(haystack, pos+1, next, stop)
			}
		}
		return -1

	case StateSparse:
		if pos >= len(haystack) {
			return -1
		}
		c := haystack[pos]
		for _, tr := range s.Transitions() {
			if c >= tr.Lo && c <= tr.Hi {
				return b.backtrackUntil(haystack, pos+1, tr.Next, stop)
			}
		}
		return -1

	case StateSplit:
		left, right := s.Split()
		if end := b.backtrackUntil(haystack, pos, left, stop); end >= 0 {
			return end
		}
		return b.backtrackUntil(haystack, pos, right, stop)

	case StateEpsilon:
		return b.backtrackUntil(haystack, pos, s.Epsilon(), stop)

	case StateCapture:
		idx, isStart, next := s.Capture()
		slot := int(idx) * 2
		if !isStart {
			slot++
		}
		old := b.captures[slot]
		b.captures[slot] = pos
		if end := b.backtrackUntil(haystack, pos, next, stop); end >= 0 {
			return end
		}
		b.captures[slot] = old
		return -1

	case StateLook:
		look, next := s.LookAssertion()
		if checkLookAssertion(look, haystack, pos) {
			return b.backtrackUntil(haystack, pos, next, stop)
		}
		return -1

	case StateLookStart:
		entry, positive, behind, next := s.LookStart()
		if b.lookAssert(haystack, pos, entry, behind) == positive {
			return b.backtrackUntil(haystack, pos, next, stop)
		}
		return -1

	case StateMatch, StateLookEnd:
		return pos

	default:
		return -1
	}
}
