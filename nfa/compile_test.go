package nfa

import (
	"errors"
	"testing"
)

func TestCompile_Basic(t *testing.T) {
	n := mustCompile(t, "abc")
	if n.States() == 0 {
		t.Fatal("expected at least one state")
	}
	if n.CaptureCount() != 1 {
		t.Errorf("CaptureCount() = %d, want 1 (whole match)", n.CaptureCount())
	}
}

func TestCompile_CaptureCountAndNames(t *testing.T) {
	n := mustCompile(t, `(?P<year>\d+)-(\d+)`)
	if n.CaptureCount() != 3 {
		t.Fatalf("CaptureCount() = %d, want 3", n.CaptureCount())
	}
	names := n.SubexpNames()
	if len(names) != 3 || names[0] != "" || names[1] != "year" || names[2] != "" {
		t.Errorf("SubexpNames() = %v", names)
	}
}

func TestCompile_NeedsBacktrackerForBackreference(t *testing.T) {
	n := mustCompile(t, `(\w)\1`)
	if !n.NeedsBacktracker() {
		t.Error("expected NeedsBacktracker() to be true for a backreference pattern")
	}
}

func TestCompile_NeedsBacktrackerFalseForPlainPattern(t *testing.T) {
	n := mustCompile(t, `\w+`)
	if n.NeedsBacktracker() {
		t.Error("expected NeedsBacktracker() to be false for a plain pattern")
	}
}

func TestCompile_RejectsNestedUnboundedQuantifier(t *testing.T) {
	_, err := NewDefaultCompiler().Compile(`(a+)+`)
	if err == nil {
		t.Fatal("expected a structural rejection for (a+)+")
	}
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *StructureError", err)
	}
	if se.Code != StructureNestedQuantifier {
		t.Errorf("Code = %v, want StructureNestedQuantifier", se.Code)
	}
}

func TestCompile_RejectsAdjacentQuantifiersAsStructureError(t *testing.T) {
	// a** is rejected by the parser itself, before an AST exists, but it
	// must surface through the same StructureError taxonomy as (a+)+ above
	// rather than a distinct syntax.Error, so a caller only ever needs one
	// errors.As(&StructureError{}) to catch both nested-quantifier shapes.
	_, err := NewDefaultCompiler().Compile(`a**`)
	if err == nil {
		t.Fatal("expected a structural rejection for a**")
	}
	var se *StructureError
	if !errors.As(err, &se) {
		t.Fatalf("err = %T, want *StructureError", err)
	}
	if se.Code != StructureNestedQuantifier {
		t.Errorf("Code = %v, want StructureNestedQuantifier", se.Code)
	}
}

func TestCompile_AllowsAlternationBodiedUnboundedQuantifier(t *testing.T) {
	// (a|aa)* is not flagged by the direct-child-only structural check,
	// even though it is a classic ReDoS shape; it uses no backtracker-only
	// feature, so the dispatcher runs it on the linear-time PikeVM.
	if _, err := NewDefaultCompiler().Compile(`(a|aa)*`); err != nil {
		t.Fatalf("Compile(%q): %v", `(a|aa)*`, err)
	}
}

func TestCompile_AnchoredPattern(t *testing.T) {
	n := mustCompile(t, `^abc`)
	if !n.IsAnchored() {
		t.Error("expected ^abc to be anchored")
	}
}

func TestCompile_StateIteration(t *testing.T) {
	n := mustCompile(t, "ab")
	count := 0
	it := n.Iter()
	for it.HasNext() {
		if s := it.Next(); s == nil {
			t.Fatal("Next() returned nil while HasNext() was true")
		}
		count++
	}
	if count != n.States() {
		t.Errorf("iterated %d states, want %d", count, n.States())
	}
}

func TestCompile_InvalidPatternSurfacesParseError(t *testing.T) {
	if _, err := NewDefaultCompiler().Compile("("); err == nil {
		t.Fatal("expected a parse error for unbalanced paren")
	}
}
