package prefilter

import (
	"testing"

	"github.com/zig-utils/zig-regex-sub002/literal"
)

func seqOf(lits ...string) *literal.Seq {
	out := make([]literal.Literal, len(lits))
	for i, s := range lits {
		out[i] = literal.NewLiteral([]byte(s), true)
	}
	return literal.NewSeq(out...)
}

func TestBuilder_SingleByte_UsesMemchr(t *testing.T) {
	pf := NewBuilder(seqOf("x"), nil).Build()
	if _, ok := pf.(*memchrPrefilter); !ok {
		t.Fatalf("got %T, want *memchrPrefilter", pf)
	}
	pos := pf.Find([]byte("abcxdef"), 0)
	if pos != 3 {
		t.Errorf("Find = %d, want 3", pos)
	}
}

func TestBuilder_SingleSubstring_UsesMemmem(t *testing.T) {
	pf := NewBuilder(seqOf("hello"), nil).Build()
	if _, ok := pf.(*memmemPrefilter); !ok {
		t.Fatalf("got %T, want *memmemPrefilter", pf)
	}
	pos := pf.Find([]byte("say hello there"), 0)
	if pos != 4 {
		t.Errorf("Find = %d, want 4", pos)
	}
}

func TestBuilder_LargeLiteralSet_UsesAhoCorasick(t *testing.T) {
	lits := make([]string, 10)
	for i := range lits {
		lits[i] = string(rune('a'+i)) + "needle"
	}
	pf := NewBuilder(seqOf(lits...), nil).Build()
	if _, ok := pf.(*ahoCorasickPrefilter); !ok {
		t.Fatalf("got %T, want *ahoCorasickPrefilter", pf)
	}
	pos := pf.Find([]byte("xxxcneedlexxx"), 0)
	if pos != 3 {
		t.Errorf("Find = %d, want 3", pos)
	}
}

func TestBuilder_MidRangeLiteralSet_NoPrefilter(t *testing.T) {
	pf := NewBuilder(seqOf("aa", "bb", "cc"), nil).Build()
	if pf != nil {
		t.Errorf("got %T, want nil (2-8 literal range intentionally unfilled)", pf)
	}
}

func TestBuilder_Empty_NoPrefilter(t *testing.T) {
	if pf := NewBuilder(nil, nil).Build(); pf != nil {
		t.Errorf("got %T, want nil", pf)
	}
}

func TestBuilder_PrefersPrefixesOverSuffixes(t *testing.T) {
	pf := NewBuilder(seqOf("pre"), seqOf("suf")).Build()
	mm, ok := pf.(*memmemPrefilter)
	if !ok {
		t.Fatalf("got %T, want *memmemPrefilter", pf)
	}
	if string(mm.needle) != "pre" {
		t.Errorf("needle = %q, want %q", mm.needle, "pre")
	}
}

func TestMemchrPrefilter_NoMatch(t *testing.T) {
	pf := NewBuilder(seqOf("z"), nil).Build()
	if pos := pf.Find([]byte("abc"), 0); pos != -1 {
		t.Errorf("Find = %d, want -1", pos)
	}
}

func TestMemmemPrefilter_ResumesFromStart(t *testing.T) {
	pf := NewBuilder(seqOf("ab"), nil).Build()
	haystack := []byte("ababab")
	if pos := pf.Find(haystack, 2); pos != 2 {
		t.Errorf("Find(2) = %d, want 2", pos)
	}
	if pos := pf.Find(haystack, 3); pos != 4 {
		t.Errorf("Find(3) = %d, want 4", pos)
	}
}

func TestDigitPrefilter_Find(t *testing.T) {
	pf := NewDigitPrefilter()
	pos := pf.Find([]byte("abc123"), 0)
	if pos != 3 {
		t.Errorf("Find = %d, want 3", pos)
	}
	if pos := pf.Find([]byte("abcdef"), 0); pos != -1 {
		t.Errorf("Find = %d, want -1", pos)
	}
}

func TestDigitPrefilter_NegativeStartClampsToZero(t *testing.T) {
	pf := NewDigitPrefilter()
	pos := pf.Find([]byte("1abc"), -5)
	if pos != 0 {
		t.Errorf("Find = %d, want 0", pos)
	}
}
