package meta

import (
	"testing"

	"github.com/zig-utils/zig-regex-sub002/syntax"
)

func TestFindAll_Basic(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches := e.FindAll([]byte("a1 b22 c333"), -1)
	if len(matches) != 3 {
		t.Fatalf("FindAll = %d matches, want 3", len(matches))
	}
	want := []string{"1", "22", "333"}
	for i, m := range matches {
		if m.String() != want[i] {
			t.Errorf("matches[%d] = %q, want %q", i, m.String(), want[i])
		}
	}
}

func TestFindAll_LimitRespected(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches := e.FindAll([]byte("a1 b22 c333"), 2)
	if len(matches) != 2 {
		t.Fatalf("FindAll with limit 2 = %d matches, want 2", len(matches))
	}
}

func TestFindAll_EmptyMatchSkipsForwardByOneByte(t *testing.T) {
	e, err := Compile(`a*`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches := e.FindAll([]byte("ab"), -1)
	// "a" at [0,1); since the next scan position (1) is not past the
	// match's own end, the empty match at 1 ("b" doesn't extend a run of
	// a's) and the empty match at 2 (end of string) both still surface.
	if len(matches) != 3 {
		t.Fatalf("FindAll(\"ab\") = %d matches, want 3: %v", len(matches), matches)
	}
	if matches[0].String() != "a" {
		t.Errorf("matches[0] = %q, want \"a\"", matches[0].String())
	}
	if !matches[1].IsEmpty() || matches[1].Start() != 1 {
		t.Errorf("matches[1] = %+v, want an empty match at 1", matches[1])
	}
	if !matches[2].IsEmpty() || matches[2].Start() != 2 {
		t.Errorf("matches[2] = %+v, want an empty match at 2", matches[2])
	}
}

func TestFindAllSubmatch_Groups(t *testing.T) {
	e, err := Compile(`(\w)=(\d)`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	matches := e.FindAllSubmatch([]byte("a=1 b=2"), -1)
	if len(matches) != 2 {
		t.Fatalf("FindAllSubmatch = %d matches, want 2", len(matches))
	}
	if string(matches[0].GroupBytes(1)) != "a" || string(matches[1].GroupBytes(1)) != "b" {
		t.Errorf("unexpected group captures: %v", matches)
	}
}

func TestCount(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if got := e.Count([]byte("a1 b22 c333 d")); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := e.Count([]byte("no digits here")); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}
