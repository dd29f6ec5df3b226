// Package literal provides types and operations for extracting literal
// sequences from regex patterns for prefilter optimization.
package literal

import (
	"github.com/zig-utils/zig-regex-sub002/syntax"
)

// ExtractorConfig configures literal extraction limits.
//
// These limits prevent excessive extraction from complex patterns:
//   - MaxLiterals: prevents memory bloat from alternations like (a|b|c|d|...)
//   - MaxLiteralLen: prevents extracting very long literals that hurt cache locality
//   - MaxClassSize: prevents expanding large character classes like [a-z]
type ExtractorConfig struct {
	// MaxLiterals limits the maximum number of literals to extract.
	MaxLiterals int

	// MaxLiteralLen limits the maximum length of each extracted literal.
	MaxLiteralLen int

	// MaxClassSize limits the size of character classes to expand.
	// Classes like [abc] (3 chars) expand to ["a","b","c"]; classes larger
	// than MaxClassSize are treated as unconstrained.
	MaxClassSize int
}

// DefaultConfig returns the default extractor configuration.
func DefaultConfig() ExtractorConfig {
	return ExtractorConfig{
		MaxLiterals:   64,
		MaxLiteralLen: 64,
		MaxClassSize:  10,
	}
}

// Extractor extracts literal prefix/suffix sequences from a pattern AST.
//
// These literals enable fast prefiltering before running the full NFA: if
// every match must begin with one of a known small set of byte strings, a
// substring search can skip non-candidate positions entirely.
type Extractor struct {
	config ExtractorConfig
}

// New creates a new Extractor with the given configuration.
func New(config ExtractorConfig) *Extractor {
	return &Extractor{config: config}
}

// identitySeq is the extraction neutral element: a single empty, complete
// literal. Crossing any Seq with it leaves that Seq unchanged.
func identitySeq() *Seq {
	return NewSeq(NewLiteral([]byte{}, true))
}

// ExtractPrefixes returns the set of literal byte sequences every match of e
// must begin with. A returned Seq with Len()==0 means no useful prefix
// constraint could be derived (the caller should not prefilter on it).
func (ex *Extractor) ExtractPrefixes(e *syntax.Expr) *Seq {
	seq, _ := ex.extract(e, false)
	ex.finalize(seq)
	return seq
}

// ExtractSuffixes returns the set of literal byte sequences every match of e
// must end with.
func (ex *Extractor) ExtractSuffixes(e *syntax.Expr) *Seq {
	seq, _ := ex.extract(e, true)
	ex.finalize(seq)
	return seq
}

func (ex *Extractor) finalize(seq *Seq) {
	if seq.IsEmpty() {
		return
	}
	seq.KeepFirstBytes(ex.config.MaxLiteralLen)
	seq.Dedup()
	seq.Minimize()
	// Dropping some literals would leave matches no literal covers, so an
	// oversized set is discarded whole.
	if seq.Len() > ex.config.MaxLiterals {
		seq.literals = nil
	}
}

// extract walks e and returns the literal set it requires at its respective
// end (start if !fromRight, end if fromRight), plus whether that set is
// exact — i.e. whether extraction could, in principle, keep extending past
// e into a concatenation sibling. An empty, non-exact Seq means extraction
// gave up entirely at this node (e.g. `.`, a backreference, an unbounded
// class).
func (ex *Extractor) extract(e *syntax.Expr, fromRight bool) (*Seq, bool) {
	if e == nil {
		return identitySeq(), true
	}

	switch e.Kind {
	case syntax.KindEmpty, syntax.KindAnchor:
		return identitySeq(), true

	case syntax.KindLiteral:
		return NewSeq(NewLiteral([]byte{e.Byte}, true)), true

	case syntax.KindClass:
		return ex.extractClass(e)

	case syntax.KindAny:
		return NewSeq(), false

	case syntax.KindBackref:
		return NewSeq(), false

	case syntax.KindConcat:
		return ex.extractConcat(e.Children, fromRight)

	case syntax.KindAlternate:
		return ex.extractAlternate(e.Children, fromRight)

	case syntax.KindQuantifier:
		if e.Min == 0 {
			return NewSeq(), false
		}
		sub, exact := ex.extract(e.Child, fromRight)
		// A mandatory single copy constrains this end of the match, but
		// anything past it (further copies, or the rest of the pattern)
		// is no longer exactly known.
		return markInexact(sub), exact && e.Max == e.Min && e.Min == 1

	case syntax.KindGroup:
		switch e.GroupKind {
		case syntax.GroupLookahead, syntax.GroupLookbehind:
			return identitySeq(), true
		default:
			return ex.extract(e.Child, fromRight)
		}

	default:
		return NewSeq(), false
	}
}

func (ex *Extractor) extractClass(e *syntax.Expr) (*Seq, bool) {
	if e.Negated {
		return NewSeq(), false
	}
	count := 0
	for _, r := range e.Ranges {
		count += int(r.Hi) - int(r.Lo) + 1
	}
	if count == 0 || count > ex.config.MaxClassSize {
		return NewSeq(), false
	}
	lits := make([]Literal, 0, count)
	for _, r := range e.Ranges {
		for b := int(r.Lo); b <= int(r.Hi); b++ {
			lits = append(lits, NewLiteral([]byte{byte(b)}, true))
		}
	}
	return NewSeq(lits...), true
}

func (ex *Extractor) extractConcat(children []*syntax.Expr, fromRight bool) (*Seq, bool) {
	order := make([]*syntax.Expr, len(children))
	copy(order, children)
	if fromRight {
		for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	acc := identitySeq()
	exact := true
	for _, child := range order {
		sub, subExact := ex.extract(child, fromRight)
		if sub.IsEmpty() {
			// The match continues past what was extracted so far.
			markInexact(acc)
			exact = false
			break
		}
		if fromRight {
			sub.CrossForward(acc)
			acc = sub
		} else {
			acc.CrossForward(sub)
		}
		if acc.Len() > ex.config.MaxLiterals*4 {
			acc.KeepFirstBytes(ex.config.MaxLiteralLen)
			acc.Dedup()
		}
		if !subExact {
			exact = false
			break
		}
	}
	return acc, exact
}

func (ex *Extractor) extractAlternate(children []*syntax.Expr, fromRight bool) (*Seq, bool) {
	var lits []Literal
	exact := true
	for _, child := range children {
		sub, subExact := ex.extract(child, fromRight)
		if sub.IsEmpty() {
			return NewSeq(), false
		}
		for i := 0; i < sub.Len(); i++ {
			lits = append(lits, sub.Get(i))
		}
		if !subExact {
			exact = false
		}
	}
	return NewSeq(lits...), exact
}

// markInexact marks every literal in seq incomplete, since a quantified
// repetition means a match may contain more of the same content past what
// was extracted.
func markInexact(seq *Seq) *Seq {
	for i := 0; i < seq.Len(); i++ {
		lit := seq.Get(i)
		lit.Complete = false
		seq.literals[i] = lit
	}
	return seq
}
