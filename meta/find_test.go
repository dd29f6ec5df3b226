package meta

import (
	"errors"
	"testing"

	"github.com/zig-utils/zig-regex-sub002/syntax"
)

func TestFind_Basic(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := e.Find([]byte("abc123def"))
	if m == nil || m.String() != "123" {
		t.Fatalf("Find = %v, want \"123\"", m)
	}
}

func TestFind_NoMatch(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if m := e.Find([]byte("abcdef")); m != nil {
		t.Fatalf("Find = %v, want nil", m)
	}
}

func TestFindAt_StartsSearchPastPosition(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	haystack := []byte("1 22 333")
	m := e.FindAt(haystack, 2)
	if m == nil || m.String() != "22" {
		t.Fatalf("FindAt(2) = %v, want \"22\"", m)
	}
}

func TestFindSubmatch_Groups(t *testing.T) {
	e, err := Compile(`(\w+)@(\w+)`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := e.FindSubmatch([]byte("user@host"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if string(m.GroupBytes(1)) != "user" || string(m.GroupBytes(2)) != "host" {
		t.Errorf("groups = %q, %q, want user, host", m.GroupBytes(1), m.GroupBytes(2))
	}
}

func TestFindSubmatch_UnmatchedGroupIsNil(t *testing.T) {
	e, err := Compile(`(a)|(b)`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m := e.FindSubmatch([]byte("b"))
	if m == nil {
		t.Fatal("expected a match")
	}
	if m.Group(1) != nil {
		t.Errorf("group 1 = %v, want nil (unmatched)", m.Group(1))
	}
	if m.GroupBytes(2) == nil || string(m.GroupBytes(2)) != "b" {
		t.Errorf("group 2 = %q, want \"b\"", m.GroupBytes(2))
	}
}

func TestFind_WithPrefilterPath(t *testing.T) {
	// A long literal prefix on an alternation-free pattern builds a
	// memmem prefilter, exercising findWithPrefilter rather than
	// findDirect.
	e, err := Compile(`hello\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if e.prefilter == nil {
		t.Fatal("expected a prefilter to be built for a literal-prefixed pattern")
	}
	m := e.Find([]byte("xxx hello123 yyy"))
	if m == nil || m.String() != "hello123" {
		t.Fatalf("Find = %v, want \"hello123\"", m)
	}
	stats := e.Stats()
	if stats.PrefilterHits == 0 {
		t.Error("expected at least one PrefilterHit")
	}
}

func TestTryFindSubmatch_BacktrackerStepBudgetExceeded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StepBudget = 3
	// The lookahead routes the pattern to the backtracker; without it
	// (a|aa)*b would run on the PikeVM, which has no step budget.
	e, err := CompileWithConfig(`(a|aa)*b(?!c)`, syntax.Flags{}, cfg)
	if err != nil {
		t.Fatalf("CompileWithConfig: %v", err)
	}
	haystack := make([]byte, 40)
	for i := range haystack {
		haystack[i] = 'a'
	}
	_, err = e.TryFindSubmatch(haystack, 0)
	if err == nil {
		t.Fatal("expected a MatchError from step budget exhaustion")
	}
	var me *MatchError
	if !errors.As(err, &me) {
		t.Fatalf("err = %T, want *MatchError", err)
	}
	if !errors.Is(me.Unwrap(), errStepBudgetExceeded) {
		t.Errorf("Unwrap() = %v, want errStepBudgetExceeded", me.Unwrap())
	}
}

func TestTryFindSubmatch_NonBacktrackerNeverErrors(t *testing.T) {
	e, err := Compile(`a+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	m, err := e.TryFindSubmatch([]byte("aaa"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m == nil || m.String() != "aaa" {
		t.Fatalf("TryFindSubmatch = %v, want \"aaa\"", m)
	}
}

func TestFindIndex(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	start, end, found := e.FindIndex([]byte("ab12cd"))
	if !found || start != 2 || end != 4 {
		t.Fatalf("FindIndex = %d,%d,%v, want 2,4,true", start, end, found)
	}
	if _, _, found := e.FindIndex([]byte("abcd")); found {
		t.Error("expected no match")
	}
}

func TestFindSubmatchIndex_UnmatchedGroupIsMinusOne(t *testing.T) {
	e, err := Compile(`(a)|(b)`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	idx := e.FindSubmatchIndex([]byte("b"))
	if idx == nil {
		t.Fatal("expected a match")
	}
	// idx = [whole0,whole1, g1start,g1end, g2start,g2end]
	if idx[2] != -1 || idx[3] != -1 {
		t.Errorf("group 1 indices = %d,%d, want -1,-1", idx[2], idx[3])
	}
	if idx[4] == -1 {
		t.Error("group 2 should have matched")
	}
}
