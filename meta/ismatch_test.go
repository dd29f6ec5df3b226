package meta

import (
	"testing"

	"github.com/zig-utils/zig-regex-sub002/syntax"
)

func TestIsMatch(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !e.IsMatch([]byte("abc123")) {
		t.Error("expected a match")
	}
	if e.IsMatch([]byte("abcdef")) {
		t.Error("expected no match")
	}
}

func TestIsMatch_WithPrefilter(t *testing.T) {
	e, err := Compile(`needle\d`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if e.prefilter == nil {
		t.Fatal("expected a prefilter for this pattern")
	}
	if !e.IsMatch([]byte("xxx needle5 xxx")) {
		t.Error("expected a match via prefilter path")
	}
	if e.IsMatch([]byte("no match here")) {
		t.Error("expected no match via prefilter path")
	}
}

func TestIsMatchAt(t *testing.T) {
	e, err := Compile(`foo`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if !e.IsMatchAt([]byte("xxfoo"), 2) {
		t.Error("expected a match beginning exactly at 2")
	}
	if e.IsMatchAt([]byte("xxfoo"), 1) {
		t.Error("expected no match beginning exactly at 1")
	}
}

func TestIsMatchAt_OutOfRange(t *testing.T) {
	e, err := Compile(`foo`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if e.IsMatchAt([]byte("foo"), 10) {
		t.Error("expected no match for an out-of-range position")
	}
}
