// Package prefilter provides fast candidate filtering for regex search using
// extracted literal sequences.
//
// A prefilter is used to quickly reject positions in the haystack that cannot
// possibly match the full regex pattern. This provides dramatic speedup for
// patterns with literals, since a substring search can skip non-candidate
// positions entirely instead of stepping the full automaton byte by byte.
//
// The package automatically selects the optimal prefilter strategy based on
// extracted literals:
//   - Single byte → memchrPrefilter (bytes.IndexByte)
//   - Single substring → memmemPrefilter (bytes.Index)
//   - 9-64 literals → ahoCorasickPrefilter (multi-pattern automaton)
//   - Otherwise → no prefilter
//
// Example usage:
//
//	ast, _, _ := syntax.Parse("hello", syntax.Flags{})
//	extractor := literal.New(literal.DefaultConfig())
//	prefixes := extractor.ExtractPrefixes(ast)
//
//	builder := prefilter.NewBuilder(prefixes, nil)
//	pf := builder.Build()
//
//	haystack := []byte("foo hello bar world baz")
//	pos := pf.Find(haystack, 0)
//	// pos == 4 (position of "hello")
package prefilter

import (
	"bytes"

	"github.com/coregx/ahocorasick"
	"github.com/zig-utils/zig-regex-sub002/literal"
)

// Prefilter is used to quickly find candidate match positions before running
// the full regex engine.
//
// The prefilter scans the haystack for literals extracted from the regex
// pattern. When a literal is found, that position is returned as a
// candidate; the regex engine then verifies whether a full match exists
// there.
type Prefilter interface {
	// Find returns the index of the first candidate match starting at or
	// after 'start', or -1 if no candidate is found.
	Find(haystack []byte, start int) int

	// IsComplete returns true if a prefilter match guarantees a full regex
	// match, letting the caller skip verification.
	IsComplete() bool

	// LiteralLen returns the length of the matched literal when IsComplete()
	// is true; 0 otherwise.
	LiteralLen() int

	// HeapBytes returns the number of bytes of heap memory used by this
	// prefilter, for profiling and memory budgeting.
	HeapBytes() int
}

// MatchFinder is an optional interface for prefilters that can return the
// matched range directly, avoiding the need for NFA verification.
type MatchFinder interface {
	// FindMatch returns the start and end positions of the first match.
	// Returns (-1, -1) if not found. The matched bytes are haystack[start:end].
	FindMatch(haystack []byte, start int) (start2, end int)
}

// Builder constructs the optimal prefilter from extracted literals.
//
// Selection strategy (in order of preference):
//  1. Single byte literal → memchrPrefilter
//  2. Single substring literal → memmemPrefilter
//  3. 9-64 literals → ahoCorasickPrefilter
//  4. No suitable literals → nil (no prefilter)
type Builder struct {
	prefixes *literal.Seq
	suffixes *literal.Seq
}

// NewBuilder creates a new prefilter builder from extracted literal sequences.
//
// The builder prefers prefixes over suffixes because forward search is more
// natural. Either or both may be nil or empty.
func NewBuilder(prefixes, suffixes *literal.Seq) *Builder {
	return &Builder{
		prefixes: prefixes,
		suffixes: suffixes,
	}
}

// Build constructs the best prefilter for the given literals, or nil if none
// of the available strategies applies.
func (b *Builder) Build() Prefilter {
	return selectPrefilter(b.prefixes, b.suffixes)
}

// selectPrefilter chooses the best prefilter strategy based on literal
// sequences.
func selectPrefilter(prefixes, suffixes *literal.Seq) Prefilter {
	seq := prefixes
	if seq.IsEmpty() {
		seq = suffixes
	}
	if seq.IsEmpty() {
		return nil
	}

	if seq.Len() == 1 {
		lit := seq.Get(0)
		if len(lit.Bytes) == 0 {
			return nil
		}
		if len(lit.Bytes) == 1 {
			return newMemchrPrefilter(lit.Bytes[0], lit.Complete)
		}
		return newMemmemPrefilter(lit.Bytes, lit.Complete)
	}

	if seq.Len() >= 9 && seq.Len() <= 64 {
		if pf := newAhoCorasickPrefilter(seq); pf != nil {
			return pf
		}
	}

	// 2-8 literals, or sets Aho-Corasick declined to build: still worth a
	// linear scan via the shortest literal as a coarse candidate filter
	// when every literal shares that length exactly isn't known, so fall
	// back to no prefilter rather than guess.
	return nil
}

// minLen returns the minimum literal length in the sequence, or maxInt if
// empty.
func minLen(seq *literal.Seq) int {
	minLength := int(^uint(0) >> 1)
	for i := 0; i < seq.Len(); i++ {
		if l := len(seq.Get(i).Bytes); l < minLength {
			minLength = l
		}
	}
	return minLength
}

// memchrPrefilter searches for a single byte literal via bytes.IndexByte.
type memchrPrefilter struct {
	needle   byte
	complete bool
}

func newMemchrPrefilter(needle byte, complete bool) Prefilter {
	return &memchrPrefilter{needle: needle, complete: complete}
}

func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.IndexByte(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memchrPrefilter) IsComplete() bool { return p.complete }

func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}

func (p *memchrPrefilter) HeapBytes() int { return 0 }

// memmemPrefilter searches for a single substring literal via bytes.Index.
type memmemPrefilter struct {
	needle   []byte
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) Prefilter {
	needleCopy := make([]byte, len(needle))
	copy(needleCopy, needle)
	return &memmemPrefilter{needle: needleCopy, complete: complete}
}

func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := bytes.Index(haystack[start:], p.needle)
	if idx == -1 {
		return -1
	}
	return start + idx
}

func (p *memmemPrefilter) IsComplete() bool { return p.complete }

func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}

func (p *memmemPrefilter) HeapBytes() int { return len(p.needle) }

// ahoCorasickPrefilter wraps an ahocorasick.Automaton as a Prefilter, used
// for literal sets too large for a single memchr/memmem search but still
// small enough that automaton construction pays for itself.
type ahoCorasickPrefilter struct {
	automaton *ahocorasick.Automaton
	complete  bool
	litCount  int
}

// newAhoCorasickPrefilter builds an Aho-Corasick automaton over seq's
// literals. Returns nil if construction fails (the caller falls back to no
// prefilter rather than propagate a build error).
func newAhoCorasickPrefilter(seq *literal.Seq) Prefilter {
	builder := ahocorasick.NewBuilder()
	allComplete := true
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		builder.AddPattern(lit.Bytes)
		if !lit.Complete {
			allComplete = false
		}
	}
	automaton, err := builder.Build()
	if err != nil {
		return nil
	}
	return &ahoCorasickPrefilter{automaton: automaton, complete: allComplete, litCount: seq.Len()}
}

func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start > len(haystack) {
		return -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1
	}
	return m.Start
}

// FindMatch implements MatchFinder, returning the exact matched range so
// callers can skip NFA verification when IsComplete() is true.
func (p *ahoCorasickPrefilter) FindMatch(haystack []byte, start int) (int, int) {
	if start < 0 || start > len(haystack) {
		return -1, -1
	}
	m := p.automaton.Find(haystack, start)
	if m == nil {
		return -1, -1
	}
	return m.Start, m.End
}

func (p *ahoCorasickPrefilter) IsComplete() bool { return p.complete }

func (p *ahoCorasickPrefilter) LiteralLen() int { return 0 }

func (p *ahoCorasickPrefilter) HeapBytes() int { return p.litCount * 64 }
