package meta

import (
	"testing"

	"github.com/zig-utils/zig-regex-sub002/syntax"
)

func TestCursor_Resumption(t *testing.T) {
	e, err := Compile(`\d+`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	c := e.NewCursor([]byte("a1 b22 c333"))

	var got []string
	for {
		m, ok := c.Next()
		if !ok {
			break
		}
		got = append(got, m.String())
	}
	want := []string{"1", "22", "333"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCursor_ExhaustedStaysDone(t *testing.T) {
	e, err := Compile(`x`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	c := e.NewCursor([]byte("no matches"))
	if _, ok := c.Next(); ok {
		t.Fatal("expected no match")
	}
	if _, ok := c.Next(); ok {
		t.Fatal("expected Next to keep returning false after exhaustion")
	}
}

func TestCursor_IndependentFromEngine(t *testing.T) {
	e, err := Compile(`a`, syntax.Flags{})
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	c1 := e.NewCursor([]byte("aaa"))
	c2 := e.NewCursor([]byte("aaa"))

	if _, ok := c1.Next(); !ok {
		t.Fatal("c1: expected a match")
	}
	if _, ok := c1.Next(); !ok {
		t.Fatal("c1: expected a second match")
	}
	// c2 has not advanced past its first match yet.
	m, ok := c2.Next()
	if !ok || m.Start() != 0 {
		t.Fatalf("c2.Next() = %+v, %v, want a match at 0", m, ok)
	}
}
