// Package rex provides a regular-expression engine with a two-engine
// execution core: a Thompson/Pike-VM simulator for linear-time matching,
// and a bounded backtracker for the handful of constructs (lazy quantifiers,
// backreferences, lookaround, atomic groups, possessive quantifiers) that
// require it.
//
// The public API loosely mirrors the standard library's regexp package
// where the semantics line up, to make migration easy, but capture-group
// and flag handling follow this module's own syntax package rather than
// RE2 syntax.
//
// Basic usage:
//
//	re, err := rex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	match := re.Find([]byte("hello 123 world"))
//	fmt.Println(string(match)) // "123"
//
// Flags:
//
//	re, err := rex.CompileWithFlags(`^foo$`, rex.Flags{Multiline: true})
package rex

import (
	"github.com/zig-utils/zig-regex-sub002/meta"
	"github.com/zig-utils/zig-regex-sub002/syntax"
)

// Flags controls pattern-independent matching behavior: case folding,
// multiline anchors, and dot-matches-newline. It is a thin alias over
// syntax.Flags so callers never need to import the syntax package directly
// for ordinary use.
type Flags = syntax.Flags

// Config controls compilation and search behavior beyond pattern syntax:
// prefilter use, literal-length thresholds, recursion depth, and the
// bounded backtracker's step budget.
type Config = meta.Config

// DefaultConfig returns the default compilation configuration.
func DefaultConfig() Config {
	return meta.DefaultConfig()
}

// Regex represents a compiled regular expression.
//
// A *Regex is safe for concurrent use from multiple goroutines: all
// mutable per-search state is pulled from an internal pool, and ResetStats
// is the only method that mutates shared state.
type Regex struct {
	engine *meta.Engine
}

// Compile compiles a pattern using default flags and configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, Flags{}, DefaultConfig())
}

// CompileWithFlags compiles a pattern with the given flags and default
// configuration.
func CompileWithFlags(pattern string, flags Flags) (*Regex, error) {
	return CompileWithConfig(pattern, flags, DefaultConfig())
}

// CompileWithConfig compiles a pattern with the given flags and a custom
// Config.
func CompileWithConfig(pattern string, flags Flags, config Config) (*Regex, error) {
	engine, err := meta.CompileWithConfig(pattern, flags, config)
	if err != nil {
		return nil, err
	}
	return &Regex{engine: engine}, nil
}

// MustCompile compiles a pattern and panics if it fails. Intended for
// patterns known to be valid at init time.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rex: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// MustCompileWithFlags is MustCompile with explicit flags.
func MustCompileWithFlags(pattern string, flags Flags) *Regex {
	re, err := CompileWithFlags(pattern, flags)
	if err != nil {
		panic("rex: CompileWithFlags(" + pattern + "): " + err.Error())
	}
	return re
}

// String returns the source pattern the Regex was compiled from.
func (r *Regex) String() string {
	return r.engine.Pattern()
}

// NumSubexp returns the number of capture groups, including group 0 (the
// whole match).
func (r *Regex) NumSubexp() int {
	return r.engine.NumCaptures()
}

// SubexpNames returns capture group names; index 0 and unnamed groups are
// "".
func (r *Regex) SubexpNames() []string {
	return r.engine.SubexpNames()
}

// Stats returns a snapshot of execution counters (engine dispatch counts,
// prefilter hit/miss counts) accumulated since compilation or the last
// ResetStats call.
func (r *Regex) Stats() meta.Stats {
	return r.engine.Stats()
}

// ResetStats zeroes the execution counters.
func (r *Regex) ResetStats() {
	r.engine.ResetStats()
}

// Match reports whether b contains a match anywhere.
func (r *Regex) Match(b []byte) bool {
	return r.engine.IsMatch(b)
}

// MatchString reports whether s contains a match anywhere.
func (r *Regex) MatchString(s string) bool {
	return r.engine.IsMatch([]byte(s))
}

// Find returns the leftmost match in b, or nil if none.
func (r *Regex) Find(b []byte) []byte {
	m := r.engine.Find(b)
	if m == nil {
		return nil
	}
	return m.Bytes()
}

// FindString returns the leftmost match in s, or "" if none.
func (r *Regex) FindString(s string) string {
	m := r.engine.Find([]byte(s))
	if m == nil {
		return ""
	}
	return m.String()
}

// FindIndex returns the [start, end) of the leftmost match in b, or nil.
func (r *Regex) FindIndex(b []byte) []int {
	start, end, ok := r.engine.FindIndex(b)
	if !ok {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex is FindIndex for strings.
func (r *Regex) FindStringIndex(s string) []int {
	return r.FindIndex([]byte(s))
}

// FindSubmatch returns the leftmost match plus its capture groups.
// Result[0] is the whole match; unmatched groups are nil.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	m := r.engine.FindSubmatch(b)
	if m == nil {
		return nil
	}
	out := make([][]byte, len(m.Groups))
	for i, g := range m.Groups {
		if g == nil {
			continue
		}
		out[i] = b[g[0]:g[1]]
	}
	return out
}

// FindStringSubmatch is FindSubmatch for strings.
func (r *Regex) FindStringSubmatch(s string) []string {
	b := []byte(s)
	groups := r.FindSubmatch(b)
	if groups == nil {
		return nil
	}
	out := make([]string, len(groups))
	for i, g := range groups {
		if g != nil {
			out[i] = string(g)
		}
	}
	return out
}

// FindSubmatchIndex returns a flat [start0, end0, start1, end1, ...] slice
// for the leftmost match, or nil. Unmatched groups contribute [-1, -1].
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	return r.engine.FindSubmatchIndex(b)
}

// FindStringSubmatchIndex is FindSubmatchIndex for strings.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	return r.engine.FindSubmatchIndex([]byte(s))
}

// FindAll returns all non-overlapping matches in b, in order. n < 0 means
// unlimited; n == 0 returns nil.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}
	matches := r.engine.FindAll(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		out[i] = m.Bytes()
	}
	return out
}

// FindAllString is FindAll for strings.
func (r *Regex) FindAllString(s string, n int) []string {
	matches := r.FindAll([]byte(s), n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(m)
	}
	return out
}

// FindAllSubmatch is FindAll with capture groups for every match.
func (r *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	if n == 0 {
		return nil
	}
	matches := r.engine.FindAllSubmatch(b, n)
	if len(matches) == 0 {
		return nil
	}
	out := make([][][]byte, len(matches))
	for i, m := range matches {
		groups := make([][]byte, len(m.Groups))
		for j, g := range m.Groups {
			if g != nil {
				groups[j] = b[g[0]:g[1]]
			}
		}
		out[i] = groups
	}
	return out
}

// Count returns the number of non-overlapping matches in b.
func (r *Regex) Count(b []byte) int {
	return r.engine.Count(b)
}
