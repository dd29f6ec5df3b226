package literal

import (
	"bytes"
	"testing"
)

func lit(s string, complete bool) Literal {
	return NewLiteral([]byte(s), complete)
}

func TestSeq_LongestCommonPrefix(t *testing.T) {
	seq := NewSeq(lit("hello", true), lit("help", true), lit("hero", true))
	if got := string(seq.LongestCommonPrefix()); got != "he" {
		t.Errorf("LongestCommonPrefix = %q, want %q", got, "he")
	}

	none := NewSeq(lit("abc", true), lit("def", true))
	if got := none.LongestCommonPrefix(); len(got) != 0 {
		t.Errorf("LongestCommonPrefix = %q, want empty", got)
	}
}

func TestSeq_LongestCommonSuffix(t *testing.T) {
	seq := NewSeq(lit("cat", true), lit("bat", true), lit("rat", true))
	if got := string(seq.LongestCommonSuffix()); got != "at" {
		t.Errorf("LongestCommonSuffix = %q, want %q", got, "at")
	}
}

func TestSeq_Minimize(t *testing.T) {
	seq := NewSeq(lit("foobar", true), lit("foo", true))
	seq.Minimize()
	if seq.Len() != 1 || string(seq.Get(0).Bytes) != "foo" {
		t.Errorf("Minimize kept %d literals, want [\"foo\"]", seq.Len())
	}
}

func TestSeq_CrossForward(t *testing.T) {
	a := NewSeq(lit("foo", true), lit("bar", true))
	b := NewSeq(lit("1", true), lit("2", true))
	a.CrossForward(b)
	if a.Len() != 4 {
		t.Fatalf("CrossForward produced %d literals, want 4", a.Len())
	}
	want := map[string]bool{"foo1": true, "foo2": true, "bar1": true, "bar2": true}
	for i := 0; i < a.Len(); i++ {
		if !want[string(a.Get(i).Bytes)] {
			t.Errorf("unexpected literal %q", a.Get(i).Bytes)
		}
	}
}

func TestSeq_CrossForward_EmptySide(t *testing.T) {
	a := NewSeq(lit("foo", true))
	b := NewSeq()
	a.CrossForward(b)
	if !a.IsEmpty() {
		t.Errorf("CrossForward with empty side should empty the sequence, got len %d", a.Len())
	}
}

func TestSeq_KeepFirstBytes(t *testing.T) {
	seq := NewSeq(lit("hello", true), lit("hi", true))
	seq.KeepFirstBytes(3)
	if !bytes.Equal(seq.Get(0).Bytes, []byte("hel")) || seq.Get(0).Complete {
		t.Errorf("Get(0) = %+v, want truncated+incomplete", seq.Get(0))
	}
	if !bytes.Equal(seq.Get(1).Bytes, []byte("hi")) || !seq.Get(1).Complete {
		t.Errorf("Get(1) = %+v, want unchanged (already within limit)", seq.Get(1))
	}
}

func TestSeq_Dedup(t *testing.T) {
	seq := NewSeq(lit("a", true), lit("a", true), lit("b", true))
	seq.Dedup()
	if seq.Len() != 2 {
		t.Errorf("Dedup left %d literals, want 2", seq.Len())
	}
}

func TestSeq_LimitCount(t *testing.T) {
	seq := NewSeq(lit("aaa", true), lit("a", true), lit("aa", true))
	seq.LimitCount(2)
	if seq.Len() != 2 {
		t.Fatalf("LimitCount left %d literals, want 2", seq.Len())
	}
	if len(seq.Get(0).Bytes) > len(seq.Get(1).Bytes) {
		t.Errorf("LimitCount should keep the shortest literals first")
	}
}

func TestSeq_IsEmpty_NilSafe(t *testing.T) {
	var s *Seq
	if !s.IsEmpty() {
		t.Error("nil *Seq should report IsEmpty")
	}
	if s.Len() != 0 {
		t.Error("nil *Seq should report Len 0")
	}
}

func TestSeq_Clone_Independence(t *testing.T) {
	orig := NewSeq(lit("test", true))
	clone := orig.Clone()
	clone.Get(0).Bytes[0] = 'X'
	if orig.Get(0).Bytes[0] == 'X' {
		t.Error("Clone should deep-copy literal bytes")
	}
}
