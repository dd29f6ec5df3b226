// Package optimizer analyzes a parsed pattern AST and produces a Record of
// facts the dispatcher uses to pick an execution strategy and prefilter
// without re-walking the AST at search time.
package optimizer

import (
	"github.com/zig-utils/zig-regex-sub002/literal"
	"github.com/zig-utils/zig-regex-sub002/syntax"
)

// Record holds the facts the dispatcher needs about a compiled pattern.
type Record struct {
	// LiteralPrefix is the longest common prefix every match must begin
	// with, or "" if none could be derived.
	LiteralPrefix string

	// PrefixSeq holds the full set of alternative literal prefixes (e.g.
	// both "cat" and "dog" for `cat|dog`), feeding prefilter selection.
	PrefixSeq *literal.Seq

	// SuffixSeq holds the full set of alternative literal suffixes.
	SuffixSeq *literal.Seq

	// AnchoredStart is true if every match begins at position 0.
	AnchoredStart bool

	// MinLength is a lower bound on match length, 0 if unknown.
	MinLength int

	// MaxLength is an upper bound on match length, or -1 if unbounded.
	MaxLength int

	// NeedsBacktracker is true if the pattern uses a feature the Thompson
	// simulator cannot execute (lazy quantifiers, backreferences,
	// lookaround, atomic groups and possessive quantifiers).
	NeedsBacktracker bool

	// CanMatchEmpty is true if the pattern can match the empty string.
	CanMatchEmpty bool

	// DigitPrefixed is true if every match is forced to begin with an
	// ASCII digit (e.g. a digit-lead alternation like an IP-address
	// pattern, where the branches share no common literal but do share a
	// leading [0-9] class). Set unconditionally from the AST shape,
	// independent of whether literal extraction also produced a usable
	// prefix set: the dispatcher consults it only as a fallback once its
	// own literal-based prefilter is rejected, but the fact itself is
	// cheap to record regardless. Lets the dispatcher fall back to a
	// cheap digit scan instead of no prefilter at all.
	DigitPrefixed bool
}

// Analyze walks ast and produces its optimization Record, extracting
// literals under the given limits.
func Analyze(ast *syntax.Expr, extractorConfig literal.ExtractorConfig) Record {
	ex := literal.New(extractorConfig)
	prefixes := ex.ExtractPrefixes(ast)
	suffixes := ex.ExtractSuffixes(ast)

	rec := Record{
		PrefixSeq:        prefixes,
		SuffixSeq:        suffixes,
		AnchoredStart:    isAnchoredStart(ast, false),
		NeedsBacktracker: needsBacktracker(ast),
		CanMatchEmpty:    canMatchEmpty(ast),
	}
	if !prefixes.IsEmpty() {
		rec.LiteralPrefix = string(prefixes.LongestCommonPrefix())
	}
	// Computed regardless of whether literal extraction also succeeded:
	// the dispatcher only consults this when no literal-based prefilter
	// survives usableSeq's length filtering, but the AST-shape fact is
	// independent of that filtering and cheap to record either way.
	rec.DigitPrefixed = startsWithDigit(ast)
	rec.MinLength, rec.MaxLength = lengthBounds(ast)
	return rec
}

// startsWithDigit reports whether every match of e is forced to begin with
// an ASCII digit: either e's own leading atom is a [0-9] class or a digit
// literal, or e is an alternation all of whose branches are.
func startsWithDigit(e *syntax.Expr) bool {
	if e == nil {
		return false
	}
	if e.Kind == syntax.KindAlternate {
		if len(e.Children) == 0 {
			return false
		}
		for _, c := range e.Children {
			if !startsWithDigit(c) {
				return false
			}
		}
		return true
	}
	return leadingAtomIsDigitClass(e)
}

// leadingAtomIsDigitClass drills into e's first required atom (through
// concatenation, groups, and quantifiers with Min >= 1) and reports
// whether it is a digit literal or a non-negated class matching exactly
// the ASCII digits.
func leadingAtomIsDigitClass(e *syntax.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case syntax.KindLiteral:
		return e.Byte >= '0' && e.Byte <= '9'
	case syntax.KindClass:
		return !e.Negated && len(e.Ranges) == 1 && e.Ranges[0].Lo == '0' && e.Ranges[0].Hi == '9'
	case syntax.KindConcat:
		if len(e.Children) == 0 {
			return false
		}
		return leadingAtomIsDigitClass(e.Children[0])
	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupCapturing, syntax.GroupNonCapturing, syntax.GroupNamed:
			return leadingAtomIsDigitClass(e.Child)
		}
		return false
	case syntax.KindQuantifier:
		if e.Min < 1 {
			return false
		}
		return leadingAtomIsDigitClass(e.Child)
	default:
		return false
	}
}

// isAnchoredStart mirrors nfa.isPatternAnchored: true only if every match
// is forced to begin at position 0.
func isAnchoredStart(e *syntax.Expr, multiline bool) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case syntax.KindAnchor:
		return e.Anchor == syntax.AnchorStartText || (e.Anchor == syntax.AnchorStartLine && !multiline)
	case syntax.KindConcat:
		if len(e.Children) == 0 {
			return false
		}
		return isAnchoredStart(e.Children[0], multiline)
	case syntax.KindAlternate:
		for _, c := range e.Children {
			if !isAnchoredStart(c, multiline) {
				return false
			}
		}
		return len(e.Children) > 0
	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupCapturing, syntax.GroupNonCapturing, syntax.GroupNamed:
			return isAnchoredStart(e.Child, multiline)
		}
		return false
	default:
		return false
	}
}

// needsBacktracker reports whether any node in e's subtree requires
// lazy-quantifier, backreference, lookaround, atomic-group, or
// possessive-quantifier semantics the Thompson simulator cannot execute.
func needsBacktracker(e *syntax.Expr) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case syntax.KindBackref:
		return true
	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupAtomic, syntax.GroupLookahead, syntax.GroupLookbehind:
			return true
		}
		return needsBacktracker(e.Child)
	case syntax.KindQuantifier:
		if e.Greedy == syntax.Possessive || e.Greedy == syntax.Lazy {
			return true
		}
		return needsBacktracker(e.Child)
	case syntax.KindConcat, syntax.KindAlternate:
		for _, c := range e.Children {
			if needsBacktracker(c) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// canMatchEmpty reports whether e can match the empty string.
func canMatchEmpty(e *syntax.Expr) bool {
	if e == nil {
		return true
	}
	switch e.Kind {
	case syntax.KindEmpty, syntax.KindAnchor:
		return true
	case syntax.KindLiteral, syntax.KindAny, syntax.KindClass, syntax.KindBackref:
		return false
	case syntax.KindConcat:
		for _, c := range e.Children {
			if !canMatchEmpty(c) {
				return false
			}
		}
		return true
	case syntax.KindAlternate:
		for _, c := range e.Children {
			if canMatchEmpty(c) {
				return true
			}
		}
		return false
	case syntax.KindQuantifier:
		if e.Min == 0 {
			return true
		}
		return canMatchEmpty(e.Child)
	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupLookahead, syntax.GroupLookbehind:
			return true
		}
		return canMatchEmpty(e.Child)
	default:
		return true
	}
}

// lengthBounds returns (min, max) match length bounds for e. max is -1 if
// unbounded.
func lengthBounds(e *syntax.Expr) (min, max int) {
	if e == nil {
		return 0, 0
	}
	switch e.Kind {
	case syntax.KindEmpty, syntax.KindAnchor:
		return 0, 0
	case syntax.KindLiteral:
		return 1, 1
	case syntax.KindAny, syntax.KindClass:
		return 1, 1
	case syntax.KindBackref:
		return 0, -1
	case syntax.KindConcat:
		min, max = 0, 0
		for _, c := range e.Children {
			cMin, cMax := lengthBounds(c)
			min += cMin
			if max == -1 || cMax == -1 {
				max = -1
			} else {
				max += cMax
			}
		}
		return min, max
	case syntax.KindAlternate:
		if len(e.Children) == 0 {
			return 0, 0
		}
		min, max = lengthBounds(e.Children[0])
		for _, c := range e.Children[1:] {
			cMin, cMax := lengthBounds(c)
			if cMin < min {
				min = cMin
			}
			if max == -1 || cMax == -1 {
				max = -1
			} else if cMax > max {
				max = cMax
			}
		}
		return min, max
	case syntax.KindQuantifier:
		cMin, cMax := lengthBounds(e.Child)
		min = cMin * e.Min
		if e.Max == syntax.Infinite || cMax == -1 {
			if cMax == 0 {
				max = 0
			} else {
				max = -1
			}
		} else {
			max = cMax * e.Max
		}
		return min, max
	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupLookahead, syntax.GroupLookbehind:
			return 0, 0
		}
		return lengthBounds(e.Child)
	default:
		return 0, -1
	}
}
