package rex

import "testing"

func TestReplace_FirstMatchOnly(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.Replace([]byte("a1 b2 c3"), []byte("X"))
	want := "aX b2 c3"
	if string(got) != want {
		t.Errorf("Replace = %q, want %q", got, want)
	}
}

func TestReplace_NoMatchReturnsCopy(t *testing.T) {
	re := MustCompile(`\d+`)
	src := []byte("no digits")
	got := re.Replace(src, []byte("X"))
	if string(got) != "no digits" {
		t.Errorf("Replace = %q, want unchanged copy", got)
	}
	got[0] = 'Z'
	if src[0] == 'Z' {
		t.Error("Replace must return an independent copy, not alias src")
	}
}

func TestReplaceAll_NumericGroupRefs(t *testing.T) {
	re := MustCompile(`(\w+)=(\d+)`)
	got := re.ReplaceAll([]byte("a=1 b=2"), []byte("$2:$1"))
	want := "1:a 2:b"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_NamedGroupRefs(t *testing.T) {
	re := MustCompile(`(?P<k>\w+)=(?P<v>\d+)`)
	got := re.ReplaceAll([]byte("a=1 b=2"), []byte("${v}:${k}"))
	want := "1:a 2:b"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_BareNamedGroupRef(t *testing.T) {
	re := MustCompile(`(?P<k>\w+)=\d+`)
	got := re.ReplaceAll([]byte("a=1 b=2"), []byte("$k"))
	want := "a b"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_EscapedDollar(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.ReplaceAll([]byte("cost 5"), []byte("$$$0"))
	want := "cost $5"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_UnmatchedGroupExpandsToNothing(t *testing.T) {
	re := MustCompile(`(a)|(b)`)
	got := re.ReplaceAll([]byte("ab"), []byte("[$1-$2]"))
	want := "[a-][-b]"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_UnknownGroupRefExpandsToNothing(t *testing.T) {
	re := MustCompile(`a`)
	got := re.ReplaceAll([]byte("a"), []byte("[$9]"))
	want := "[]"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAll_TrailingDollarLiteral(t *testing.T) {
	re := MustCompile(`a`)
	got := re.ReplaceAll([]byte("a"), []byte("x$"))
	want := "x$"
	if string(got) != want {
		t.Errorf("ReplaceAll = %q, want %q", got, want)
	}
}

func TestReplaceAllFunc(t *testing.T) {
	re := MustCompile(`\d+`)
	got := re.ReplaceAllFunc([]byte("a1 b22"), func(m []byte) []byte {
		return []byte("<" + string(m) + ">")
	})
	want := "a<1> b<22>"
	if string(got) != want {
		t.Errorf("ReplaceAllFunc = %q, want %q", got, want)
	}
}
