// compile.go turns a pattern string into a compiled *Engine: parse, analyze,
// compile the NFA, and build whatever prefilter the analysis supports.

package meta

import (
	"errors"

	"github.com/zig-utils/zig-regex-sub002/literal"
	"github.com/zig-utils/zig-regex-sub002/nfa"
	"github.com/zig-utils/zig-regex-sub002/optimizer"
	"github.com/zig-utils/zig-regex-sub002/prefilter"
	"github.com/zig-utils/zig-regex-sub002/syntax"
)

// Compile parses pattern and builds an Engine using DefaultConfig() and
// flags.
func Compile(pattern string, flags syntax.Flags) (*Engine, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig parses pattern and builds an Engine under the given
// Config.
func CompileWithConfig(pattern string, flags syntax.Flags, config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	ast, captureCount, err := syntax.Parse(pattern, flags)
	if err != nil {
		var pe *syntax.Error
		if errors.As(err, &pe) && pe.Code == syntax.ErrNestedQuantifier {
			// Directly-adjacent quantifiers (e.g. `a**`) are caught by the
			// parser before an AST exists. Route them through the same
			// nfa.StructureError taxonomy as the AST-shape nested-quantifier
			// rejection in nfa.CompileAST, so a caller doing
			// errors.As(err, &structErr) catches both shapes uniformly.
			return nil, &CompileError{Pattern: pattern, Err: &nfa.StructureError{
				Code:    nfa.StructureNestedQuantifier,
				Message: pe.Error(),
			}}
		}
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	extractorConfig := literal.DefaultConfig()
	if config.MaxLiterals > 0 {
		extractorConfig.MaxLiterals = config.MaxLiterals
	}
	record := optimizer.Analyze(ast, extractorConfig)

	compiler := nfa.NewCompiler(nfa.CompilerConfig{
		Flags:             flags,
		MaxRecursionDepth: config.MaxRecursionDepth,
	})
	n, err := compiler.CompileAST(ast, captureCount)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}

	useBacktracker := record.NeedsBacktracker || n.NeedsBacktracker()

	e := &Engine{
		pattern:        pattern,
		nfa:            n,
		record:         record,
		config:         config,
		useBacktracker: useBacktracker,
	}

	if config.EnablePrefilter {
		e.prefilter = buildPrefilter(record, config)
	}

	e.statePool = newSearchStatePool(n, useBacktracker, config.StepBudget)
	return e, nil
}

// buildPrefilter constructs the dispatcher's prefilter from the analyzer's
// prefix literal set, honoring the configured minimum literal length.
//
// Only prefixes are used (not record.SuffixSeq): a prefix-literal
// candidate position is exactly the match's start position, which is what
// lets searchFrom verify a candidate with a single SearchAt call. A
// suffix-anchored prefilter would report the position of the suffix, not
// the match start, requiring a second reverse scan to recover the start —
// out of scope here; SuffixSeq remains available on Record for an
// anchored-end fast-reject path a future dispatcher could add.
func buildPrefilter(record optimizer.Record, config Config) prefilter.Prefilter {
	prefixes := usableSeq(record.PrefixSeq, config.MinLiteralLen)
	if prefixes == nil {
		if record.DigitPrefixed {
			return prefilter.NewDigitPrefilter()
		}
		return nil
	}
	pf := prefilter.NewBuilder(prefixes, nil).Build()
	if pf == nil {
		return nil
	}
	// Wrap with effectiveness tracking: a prefilter whose candidates rarely
	// pan out into real matches (e.g. a short literal shared by every
	// alternation branch but not actually discriminating) is disabled
	// after its warmup period rather than paying the scan cost forever.
	// findWithPrefilter/isMatchWithPrefilter fall back to a direct engine
	// scan once tracking disables it.
	return prefilter.WrapWithTracking(pf)
}

// usableSeq returns seq if it is non-empty and every literal in it meets
// minLen, or nil otherwise (a prefilter built from a too-short literal has
// too high a false-positive rate to be worth the scan).
func usableSeq(seq *literal.Seq, minLen int) *literal.Seq {
	if seq == nil || seq.IsEmpty() {
		return nil
	}
	for i := 0; i < seq.Len(); i++ {
		if len(seq.Get(i).Bytes) < minLen {
			return nil
		}
	}
	return seq
}

// CompileError wraps a pattern-compilation failure (parse or NFA-build
// error), letting callers errors.As against the original cause while still
// reporting which pattern failed.
type CompileError struct {
	Pattern string
	Err     error
}

func (e *CompileError) Error() string {
	return "meta: failed to compile pattern \"" + e.Pattern + "\": " + e.Err.Error()
}

func (e *CompileError) Unwrap() error { return e.Err }
