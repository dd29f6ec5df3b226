package nfa

import (
	"errors"
	"fmt"

	"github.com/zig-utils/zig-regex-sub002/internal/conv"
	"github.com/zig-utils/zig-regex-sub002/syntax"
)

// CompilerConfig configures NFA compilation behavior.
type CompilerConfig struct {
	// Flags carries the pattern-independent matching flags (case folding,
	// multiline anchors, dot-matches-newline) down into construction.
	Flags syntax.Flags

	// Anchored forces the pattern to match only at the start of input,
	// regardless of whether the pattern itself begins with an anchor.
	Anchored bool

	// MaxRecursionDepth limits AST recursion during compilation to guard
	// against stack overflow on pathological input. Default: 1000.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns a compiler configuration with sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 1000}
}

// Compiler compiles this module's syntax.Expr AST into a Thompson NFA.
type Compiler struct {
	config       CompilerConfig
	builder      *Builder
	depth        int
	captureCount int
	captureNames []string
}

// NewCompiler creates a new NFA compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 1000
	}
	return &Compiler{config: config}
}

// NewDefaultCompiler creates a new NFA compiler with default configuration.
func NewDefaultCompiler() *Compiler {
	return NewCompiler(DefaultCompilerConfig())
}

// Compile parses pattern and compiles it into an NFA in one step.
func (c *Compiler) Compile(pattern string) (*NFA, error) {
	ast, captureCount, err := syntax.Parse(pattern, c.config.Flags)
	if err != nil {
		var pe *syntax.Error
		if errors.As(err, &pe) && pe.Code == syntax.ErrNestedQuantifier {
			// The parser catches the directly-adjacent-quantifier shape
			// (e.g. `a**`) before an AST even exists; route it through the
			// same StructureError taxonomy as the AST-shape nested-quantifier
			// check in CompileAST below, so callers only need one
			// errors.As(&StructureError{}) to catch both.
			return nil, &CompileError{Pattern: pattern, Err: &StructureError{
				Code:    StructureNestedQuantifier,
				Message: pe.Error(),
			}}
		}
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	nfa, err := c.CompileAST(ast, captureCount)
	if err != nil {
		if ce, ok := err.(*CompileError); ok {
			ce.Pattern = pattern
			return nil, ce
		}
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	return nfa, nil
}

// CompileAST compiles an already-parsed Expr AST into an NFA. captureCount
// is the highest capture group index in the AST (group 0, the whole match,
// is implicit and not counted).
func (c *Compiler) CompileAST(ast *syntax.Expr, captureCount int) (*NFA, error) {
	c.builder = NewBuilder()
	c.depth = 0
	c.captureCount = captureCount
	c.captureNames = syntax.GroupNames(ast, captureCount)

	patternStart, patternEnd, err := c.compile(ast)
	if err != nil {
		return nil, err
	}

	matchID := c.builder.AddMatch()
	if err := c.patchOrSplice(patternEnd, matchID); err != nil {
		return nil, &CompileError{Err: err}
	}

	anchoredStart := patternStart
	allAnchored := isPatternAnchored(ast, c.config.Flags.Multiline)

	var unanchoredStart StateID
	if c.config.Anchored || allAnchored {
		unanchoredStart = anchoredStart
	} else {
		unanchoredStart = c.compileUnanchoredPrefix(patternStart)
	}
	c.builder.SetStarts(anchoredStart, unanchoredStart)

	nfa, err := c.builder.Build(
		WithAnchored(c.config.Anchored || allAnchored),
		WithCaptureCount(c.captureCount+1),
		WithCaptureNames(c.captureNames),
	)
	if err != nil {
		return nil, &CompileError{Err: err}
	}
	return nfa, nil
}

// patchOrSplice patches end to target, falling back to an interposed
// epsilon when end is a kind Patch cannot retarget directly (e.g. a Split
// left dangling by an alternation join).
func (c *Compiler) patchOrSplice(end, target StateID) error {
	if err := c.builder.Patch(end, target); err != nil {
		epsilon := c.builder.AddEpsilon(target)
		return c.builder.Patch(end, epsilon)
	}
	return nil
}

// compile recursively compiles an Expr node, returning the (start, end)
// state pair of the resulting fragment. end must be patchable to continue
// the fragment (see patchOrSplice for kinds that aren't directly patchable).
func (c *Compiler) compile(e *syntax.Expr) (start, end StateID, err error) {
	c.depth++
	defer func() { c.depth-- }()
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, &CompileError{Err: ErrTooComplex}
	}

	switch e.Kind {
	case syntax.KindEmpty:
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	case syntax.KindLiteral:
		return c.compileLiteral(e.Byte)
	case syntax.KindAny:
		return c.compileAny()
	case syntax.KindClass:
		return c.compileClass(e)
	case syntax.KindConcat:
		return c.compileConcat(e.Children)
	case syntax.KindAlternate:
		return c.compileAlternate(e.Children)
	case syntax.KindQuantifier:
		return c.compileQuantifier(e)
	case syntax.KindGroup:
		return c.compileGroup(e)
	case syntax.KindAnchor:
		return c.compileAnchor(e)
	case syntax.KindBackref:
		return c.compileBackref(e)
	default:
		return InvalidState, InvalidState, &CompileError{Err: fmt.Errorf("unsupported AST node kind %v", e.Kind)}
	}
}

func (c *Compiler) compileLiteral(b byte) (start, end StateID, err error) {
	if c.config.Flags.CaseInsensitive && isASCIILetter(b) {
		upper := toUpperASCII(b)
		lower := toLowerASCII(b)
		if upper == lower {
			id := c.builder.AddByteRange(b, b, InvalidState)
			return id, id, nil
		}
		join := c.builder.AddEpsilon(InvalidState)
		up := c.builder.AddByteRange(upper, upper, join)
		lo := c.builder.AddByteRange(lower, lower, join)
		split := c.builder.AddSplit(up, lo)
		return split, join, nil
	}
	id := c.builder.AddByteRange(b, b, InvalidState)
	return id, id, nil
}

func isASCIILetter(b byte) bool { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

func toUpperASCII(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}

func toLowerASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// compileAny compiles `.`. Per the ASCII-only scope, a wildcard is just a
// one-byte transition; DotMatchesNewline decides whether 0x0A is included.
func (c *Compiler) compileAny() (start, end StateID, err error) {
	if c.config.Flags.DotMatchesNewline {
		id := c.builder.AddByteRange(0x00, 0xFF, InvalidState)
		return id, id, nil
	}
	target := c.builder.AddEpsilon(InvalidState)
	id := c.builder.AddSparse([]Transition{
		{Lo: 0x00, Hi: 0x09, Next: target},
		{Lo: 0x0B, Hi: 0xFF, Next: target},
	})
	return id, target, nil
}

func (c *Compiler) compileClass(e *syntax.Expr) (start, end StateID, err error) {
	ranges := e.Ranges
	if e.Negated {
		ranges = negateByteRanges(ranges)
	}
	if len(ranges) == 0 {
		start = c.builder.AddEpsilon(InvalidState)
		end = c.builder.AddEpsilon(InvalidState)
		return start, end, nil
	}
	if len(ranges) == 1 {
		id := c.builder.AddByteRange(ranges[0].Lo, ranges[0].Hi, InvalidState)
		return id, id, nil
	}
	target := c.builder.AddEpsilon(InvalidState)
	trans := make([]Transition, len(ranges))
	for i, r := range ranges {
		trans[i] = Transition{Lo: r.Lo, Hi: r.Hi, Next: target}
	}
	id := c.builder.AddSparse(trans)
	return id, target, nil
}

func negateByteRanges(ranges []syntax.ClassRange) []syntax.ClassRange {
	sorted := make([]syntax.ClassRange, len(ranges))
	copy(sorted, ranges)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Lo > sorted[j].Lo; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	var merged []syntax.ClassRange
	for _, r := range sorted {
		if len(merged) > 0 && int(r.Lo) <= int(merged[len(merged)-1].Hi)+1 {
			if r.Hi > merged[len(merged)-1].Hi {
				merged[len(merged)-1].Hi = r.Hi
			}
			continue
		}
		merged = append(merged, r)
	}
	var out []syntax.ClassRange
	next := 0
	for _, r := range merged {
		if int(r.Lo) > next {
			out = append(out, syntax.ClassRange{Lo: byte(next), Hi: r.Lo - 1})
		}
		if int(r.Hi)+1 > next {
			next = int(r.Hi) + 1
		}
	}
	if next <= 0xff {
		out = append(out, syntax.ClassRange{Lo: byte(next), Hi: 0xff})
	}
	return out
}

func (c *Compiler) compileConcat(items []*syntax.Expr) (start, end StateID, err error) {
	if len(items) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}
	start, end, err = c.compile(items[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, item := range items[1:] {
		nextStart, nextEnd, err := c.compile(item)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.patchOrSplice(end, nextStart); err != nil {
			return InvalidState, InvalidState, err
		}
		end = nextEnd
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(items []*syntax.Expr) (start, end StateID, err error) {
	starts := make([]StateID, 0, len(items))
	ends := make([]StateID, 0, len(items))
	for _, item := range items {
		s, e, err := c.compile(item)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		starts = append(starts, s)
		ends = append(ends, e)
	}
	split := c.buildSplitChain(starts)
	join := c.builder.AddEpsilon(InvalidState)
	for _, e := range ends {
		_ = c.patchOrSplice(e, join)
	}
	return split, join, nil
}

func (c *Compiler) buildSplitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	if len(targets) == 2 {
		return c.builder.AddSplit(targets[0], targets[1])
	}
	right := c.buildSplitChain(targets[1:])
	return c.builder.AddSplit(targets[0], right)
}

// compileQuantifier realizes min/max/greediness per the spec's construction
// table: {0,inf}=star, {1,inf}=plus, {0,1}=quest, bounded ranges unroll into
// mandatory copies plus optional tails. Possessive quantifiers wrap the
// greedy construction in an atomic barrier so the chosen repetition count
// can never be given back to a later backtrack.
func (c *Compiler) compileQuantifier(e *syntax.Expr) (start, end StateID, err error) {
	if e.Greedy == syntax.Possessive {
		atomic := &syntax.Expr{Kind: syntax.KindGroup, GroupKind: syntax.GroupAtomic, Child: &syntax.Expr{
			Kind: syntax.KindQuantifier, Child: e.Child, Min: e.Min, Max: e.Max, Greedy: syntax.Greedy,
		}}
		return c.compile(atomic)
	}

	if isNestedUnbounded(e) {
		return InvalidState, InvalidState, &StructureError{
			Code:    StructureNestedQuantifier,
			Message: "quantified group body is itself unboundedly repeatable, risking catastrophic backtracking",
		}
	}

	lazy := e.Greedy == syntax.Lazy

	switch {
	case e.Min == 0 && e.Max == syntax.Infinite:
		return c.compileStar(e.Child, lazy)
	case e.Min == 1 && e.Max == syntax.Infinite:
		return c.compilePlus(e.Child, lazy)
	case e.Min == 0 && e.Max == 1:
		return c.compileQuest(e.Child, lazy)
	case e.Max == syntax.Infinite:
		return c.compileRepeatMin(e.Child, e.Min, lazy)
	case e.Min == e.Max:
		return c.compileRepeatExact(e.Child, e.Min)
	default:
		return c.compileRepeatRange(e.Child, e.Min, e.Max, lazy)
	}
}

// isNestedUnbounded flags the classic ReDoS shape where an unboundedly
// repeated quantifier directly wraps a group whose own body is unboundedly
// repeated, e.g. (a+)+ or (a*)*.
func isNestedUnbounded(e *syntax.Expr) bool {
	if e.Max != syntax.Infinite {
		return false
	}
	child := e.Child
	for child != nil && child.Kind == syntax.KindGroup &&
		(child.GroupKind == syntax.GroupCapturing || child.GroupKind == syntax.GroupNonCapturing || child.GroupKind == syntax.GroupNamed) {
		child = child.Child
	}
	if child == nil {
		return false
	}
	if child.Kind == syntax.KindQuantifier && child.Max == syntax.Infinite {
		return true
	}
	return false
}

func (c *Compiler) compileStar(sub *syntax.Expr, lazy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	var split StateID
	if lazy {
		split = c.builder.AddSplit(end, subStart)
	} else {
		split = c.builder.AddQuantifierSplit(subStart, end)
	}
	if err := c.patchOrSplice(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compilePlus(sub *syntax.Expr, lazy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	var split StateID
	if lazy {
		split = c.builder.AddSplit(end, subStart)
	} else {
		split = c.builder.AddQuantifierSplit(subStart, end)
	}
	if err := c.patchOrSplice(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return subStart, end, nil
}

func (c *Compiler) compileQuest(sub *syntax.Expr, lazy bool) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	var split StateID
	if lazy {
		split = c.builder.AddSplit(end, subStart)
	} else {
		split = c.builder.AddQuantifierSplit(subStart, end)
	}
	if err := c.patchOrSplice(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compileRepeatExact(sub *syntax.Expr, n int) (start, end StateID, err error) {
	if n == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}
	items := make([]*syntax.Expr, n)
	for i := range items {
		items[i] = sub
	}
	return c.compileConcat(items)
}

func (c *Compiler) compileRepeatMin(sub *syntax.Expr, min int, lazy bool) (start, end StateID, err error) {
	if min == 0 {
		return c.compileStar(sub, lazy)
	}
	mandatory := make([]*syntax.Expr, min)
	for i := range mandatory {
		mandatory[i] = sub
	}
	tail := &syntax.Expr{Kind: syntax.KindQuantifier, Child: sub, Min: 0, Max: syntax.Infinite, Greedy: greedinessOf(lazy)}
	items := append(mandatory, tail)
	return c.compileConcat(items)
}

func (c *Compiler) compileRepeatRange(sub *syntax.Expr, min, max int, lazy bool) (start, end StateID, err error) {
	if min > max {
		return InvalidState, InvalidState, &CompileError{Err: fmt.Errorf("invalid repeat range {%d,%d}", min, max)}
	}
	var items []*syntax.Expr
	for i := 0; i < min; i++ {
		items = append(items, sub)
	}
	for i := 0; i < max-min; i++ {
		items = append(items, &syntax.Expr{Kind: syntax.KindQuantifier, Child: sub, Min: 0, Max: 1, Greedy: greedinessOf(lazy)})
	}
	if len(items) == 0 {
		id := c.builder.AddEpsilon(InvalidState)
		return id, id, nil
	}
	return c.compileConcat(items)
}

func greedinessOf(lazy bool) syntax.Greediness {
	if lazy {
		return syntax.Lazy
	}
	return syntax.Greedy
}

func (c *Compiler) compileGroup(e *syntax.Expr) (start, end StateID, err error) {
	switch e.GroupKind {
	case syntax.GroupCapturing, syntax.GroupNamed:
		subStart, subEnd, err := c.compile(e.Child)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		closeCap := c.builder.AddCapture(conv.IntToUint32(e.CaptureIndex), false, InvalidState)
		if err := c.patchOrSplice(subEnd, closeCap); err != nil {
			return InvalidState, InvalidState, err
		}
		openCap := c.builder.AddCapture(conv.IntToUint32(e.CaptureIndex), true, subStart)
		return openCap, closeCap, nil

	case syntax.GroupNonCapturing:
		return c.compile(e.Child)

	case syntax.GroupAtomic:
		subStart, subEnd, err := c.compile(e.Child)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		end = c.builder.AddAtomicEnd(InvalidState)
		if err := c.patchOrSplice(subEnd, end); err != nil {
			return InvalidState, InvalidState, err
		}
		start = c.builder.AddAtomicStart(subStart)
		return start, end, nil

	case syntax.GroupLookahead, syntax.GroupLookbehind:
		lookEnd := c.builder.AddLookEnd()
		subStart, subEnd, err := c.compile(e.Child)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.patchOrSplice(subEnd, lookEnd); err != nil {
			return InvalidState, InvalidState, err
		}
		behind := e.GroupKind == syntax.GroupLookbehind
		id := c.builder.AddLookStart(subStart, e.Positive, behind, InvalidState)
		return id, id, nil

	default:
		return InvalidState, InvalidState, &CompileError{Err: fmt.Errorf("unsupported group kind %v", e.GroupKind)}
	}
}

func (c *Compiler) compileAnchor(e *syntax.Expr) (start, end StateID, err error) {
	var look Look
	switch e.Anchor {
	case syntax.AnchorStartLine:
		if c.config.Flags.Multiline {
			look = LookStartLine
		} else {
			look = LookStartText
		}
	case syntax.AnchorEndLine:
		if c.config.Flags.Multiline {
			look = LookEndLine
		} else {
			look = LookEndText
		}
	case syntax.AnchorStartText:
		look = LookStartText
	case syntax.AnchorEndText:
		look = LookEndText
	case syntax.AnchorWordBoundary:
		look = LookWordBoundary
	case syntax.AnchorNotWordBoundary:
		look = LookNotWordBoundary
	default:
		return InvalidState, InvalidState, &CompileError{Err: fmt.Errorf("unsupported anchor kind %v", e.Anchor)}
	}
	id := c.builder.AddLook(look, InvalidState)
	return id, id, nil
}

func (c *Compiler) compileBackref(e *syntax.Expr) (start, end StateID, err error) {
	index := e.BackrefIndex
	if e.BackrefName != "" {
		found := -1
		for i, name := range c.captureNames {
			if name == e.BackrefName {
				found = i
				break
			}
		}
		if found < 0 {
			return InvalidState, InvalidState, &StructureError{
				Code:    StructureUnknownBackref,
				Message: fmt.Sprintf("backreference to undefined group name %q", e.BackrefName),
			}
		}
		index = found
	}
	if index <= 0 || index > c.captureCount {
		return InvalidState, InvalidState, &StructureError{
			Code:    StructureUnknownBackref,
			Message: fmt.Sprintf("backreference to undefined group %d", index),
		}
	}
	id := c.builder.AddBackref(conv.IntToUint32(index), c.config.Flags.CaseInsensitive, InvalidState)
	return id, id, nil
}

// compileUnanchoredPrefix splices a non-greedy (?s:.)*? loop ahead of
// patternStart so unanchored search can enter the pattern at any position
// while still reporting the correct leftmost start via thread priority.
func (c *Compiler) compileUnanchoredPrefix(patternStart StateID) StateID {
	anyByte := c.builder.AddByteRange(0x00, 0xFF, InvalidState)
	split := c.builder.AddSplit(patternStart, anyByte)
	if err := c.builder.Patch(anyByte, split); err != nil {
		return patternStart
	}
	return split
}

// isPatternAnchored reports whether e always requires matching to begin at
// position 0 (or, in multiline mode, cannot match anywhere input can't).
func isPatternAnchored(e *syntax.Expr, multiline bool) bool {
	switch e.Kind {
	case syntax.KindAnchor:
		return e.Anchor == syntax.AnchorStartText || (e.Anchor == syntax.AnchorStartLine && !multiline)
	case syntax.KindConcat:
		if len(e.Children) == 0 {
			return false
		}
		return isPatternAnchored(e.Children[0], multiline)
	case syntax.KindAlternate:
		for _, c := range e.Children {
			if !isPatternAnchored(c, multiline) {
				return false
			}
		}
		return len(e.Children) > 0
	case syntax.KindGroup:
		if e.GroupKind == syntax.GroupCapturing || e.GroupKind == syntax.GroupNonCapturing || e.GroupKind == syntax.GroupNamed {
			return isPatternAnchored(e.Child, multiline)
		}
		return false
	default:
		return false
	}
}
