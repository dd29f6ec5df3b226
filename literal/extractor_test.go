package literal

import (
	"testing"

	"github.com/zig-utils/zig-regex-sub002/syntax"
)

func mustParse(t *testing.T, pattern string) *syntax.Expr {
	t.Helper()
	ast, _, err := syntax.Parse(pattern, syntax.Flags{})
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	return ast
}

func TestExtractPrefixes_Literal(t *testing.T) {
	ex := New(DefaultConfig())
	seq := ex.ExtractPrefixes(mustParse(t, "foobar"))
	if seq.Len() != 1 || string(seq.Get(0).Bytes) != "foobar" || !seq.Get(0).Complete {
		t.Fatalf("seq = %+v", seq)
	}
}

func TestExtractPrefixes_Alternation(t *testing.T) {
	ex := New(DefaultConfig())
	seq := ex.ExtractPrefixes(mustParse(t, "cat|dog"))
	if seq.Len() != 2 {
		t.Fatalf("seq.Len() = %d, want 2", seq.Len())
	}
	got := map[string]bool{}
	for i := 0; i < seq.Len(); i++ {
		got[string(seq.Get(i).Bytes)] = true
	}
	if !got["cat"] || !got["dog"] {
		t.Errorf("seq = %v, want {cat, dog}", got)
	}
}

func TestExtractPrefixes_ConcatWithWildcardGivesPrefixOnly(t *testing.T) {
	ex := New(DefaultConfig())
	seq := ex.ExtractPrefixes(mustParse(t, "foo.*bar"))
	if seq.IsEmpty() {
		t.Fatal("expected a prefix literal for foo.*bar")
	}
	if seq.Get(0).Complete {
		t.Errorf("prefix %q should be marked incomplete (match may extend beyond it)", seq.Get(0).Bytes)
	}
}

func TestExtractPrefixes_NoLiteral(t *testing.T) {
	ex := New(DefaultConfig())
	// \w spans 63 bytes, more than MaxClassSize, so it is not expanded.
	seq := ex.ExtractPrefixes(mustParse(t, `\w+`))
	if !seq.IsEmpty() {
		t.Errorf("expected no usable prefix literal for \\w+, got %+v", seq)
	}
}

func TestExtractSuffixes_Literal(t *testing.T) {
	ex := New(DefaultConfig())
	seq := ex.ExtractSuffixes(mustParse(t, "foobar"))
	if seq.Len() != 1 || string(seq.Get(0).Bytes) != "foobar" {
		t.Fatalf("seq = %+v", seq)
	}
}

func TestExtractPrefixes_RespectsMaxLiterals(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxLiterals = 2
	ex := New(cfg)
	seq := ex.ExtractPrefixes(mustParse(t, "a|b|c|d"))
	if seq.Len() > cfg.MaxLiterals && !seq.IsEmpty() {
		t.Errorf("seq.Len() = %d, want <= %d or empty fallback", seq.Len(), cfg.MaxLiterals)
	}
}
