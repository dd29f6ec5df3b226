package rex

import "testing"

func TestIterator_YieldsAllMatchesInOrder(t *testing.T) {
	re := MustCompile(`\d+`)
	it := re.Iterate([]byte("a1 b22 c333"))

	var got []string
	for {
		m, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, string(m.Bytes()))
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

func TestIterator_ExhaustedReturnsFalse(t *testing.T) {
	re := MustCompile(`x`)
	it := re.Iterate([]byte("no match"))
	if _, ok := it.Next(); ok {
		t.Fatal("expected no match")
	}
}

func TestIterator_ExposesCaptureGroups(t *testing.T) {
	re := MustCompile(`(\w)=(\d)`)
	it := re.Iterate([]byte("a=1 b=2"))

	m, ok := it.Next()
	if !ok {
		t.Fatal("expected a match")
	}
	if string(m.GroupBytes(1)) != "a" || string(m.GroupBytes(2)) != "1" {
		t.Errorf("groups = %q, %q, want a, 1", m.GroupBytes(1), m.GroupBytes(2))
	}
	if m.Start() != 0 || m.End() != 3 {
		t.Errorf("Start,End = %d,%d, want 0,3", m.Start(), m.End())
	}
}
