package syntax

import "testing"

func TestShorthandClass(t *testing.T) {
	tests := []struct {
		letter   byte
		negated  bool
		ok       bool
		wantLen  int
	}{
		{'d', false, true, 1},
		{'D', true, true, 1},
		{'w', false, true, 4},
		{'W', true, true, 4},
		{'s', false, true, 3},
		{'S', true, true, 3},
		{'x', false, false, 0},
	}
	for _, tt := range tests {
		ranges, negated, ok := shorthandClass(tt.letter)
		if ok != tt.ok {
			t.Errorf("shorthandClass(%q) ok = %v, want %v", tt.letter, ok, tt.ok)
			continue
		}
		if !ok {
			continue
		}
		if negated != tt.negated {
			t.Errorf("shorthandClass(%q) negated = %v, want %v", tt.letter, negated, tt.negated)
		}
		if len(ranges) != tt.wantLen {
			t.Errorf("shorthandClass(%q) len(ranges) = %d, want %d", tt.letter, len(ranges), tt.wantLen)
		}
	}
}

func TestNormalizeRanges_MergesOverlapping(t *testing.T) {
	in := []ClassRange{{'a', 'f'}, {'d', 'k'}}
	out := normalizeRanges(in)
	if len(out) != 1 || out[0].Lo != 'a' || out[0].Hi != 'k' {
		t.Errorf("normalizeRanges(overlapping) = %+v, want [{a k}]", out)
	}
}

func TestNormalizeRanges_MergesAdjacent(t *testing.T) {
	// 'f'+1 == 'g', so these are adjacent and should merge into one range.
	in := []ClassRange{{'a', 'f'}, {'g', 'z'}}
	out := normalizeRanges(in)
	if len(out) != 1 || out[0].Lo != 'a' || out[0].Hi != 'z' {
		t.Errorf("normalizeRanges(adjacent) = %+v, want [{a z}]", out)
	}
}

func TestNormalizeRanges_KeepsDisjointRangesSeparate(t *testing.T) {
	in := []ClassRange{{'0', '9'}, {'a', 'z'}}
	out := normalizeRanges(in)
	if len(out) != 2 {
		t.Errorf("normalizeRanges(disjoint) = %+v, want 2 ranges", out)
	}
}

func TestNormalizeRanges_SortsUnorderedInput(t *testing.T) {
	in := []ClassRange{{'m', 'z'}, {'a', 'c'}}
	out := normalizeRanges(in)
	if len(out) != 2 || out[0].Lo != 'a' || out[1].Lo != 'm' {
		t.Errorf("normalizeRanges(unordered) = %+v, want sorted [{a c} {m z}]", out)
	}
}

func TestNormalizeRanges_ShortInputReturnedAsIs(t *testing.T) {
	in := []ClassRange{{'a', 'z'}}
	out := normalizeRanges(in)
	if len(out) != 1 || out[0] != in[0] {
		t.Errorf("normalizeRanges(single) = %+v, want %+v", out, in)
	}
}

func TestNegateRanges_DigitComplementCoversRestOfByteDomain(t *testing.T) {
	out := negateRanges(digitRanges)
	if len(out) != 2 {
		t.Fatalf("negateRanges(digitRanges) = %+v, want 2 ranges", out)
	}
	if out[0].Lo != 0 || out[0].Hi != '0'-1 {
		t.Errorf("first complement range = %+v, want [0, %d]", out[0], '0'-1)
	}
	if out[1].Lo != '9'+1 || out[1].Hi != 0xff {
		t.Errorf("second complement range = %+v, want [%d, 255]", out[1], '9'+1)
	}
}

func TestNegateRanges_EmptyInputCoversFullDomain(t *testing.T) {
	out := negateRanges(nil)
	if len(out) != 1 || out[0].Lo != 0 || out[0].Hi != 0xff {
		t.Errorf("negateRanges(nil) = %+v, want [0, 255]", out)
	}
}

func TestNegateRanges_FullDomainInputYieldsEmpty(t *testing.T) {
	out := negateRanges([]ClassRange{{0, 0xff}})
	if len(out) != 0 {
		t.Errorf("negateRanges(full domain) = %+v, want empty", out)
	}
}

func TestNegateRanges_IsInvolution(t *testing.T) {
	// Negating a class twice should recover ranges covering the same bytes
	// the original did (modulo normalization/merging).
	orig := normalizeRanges(wordRanges)
	twice := negateRanges(negateRanges(wordRanges))
	if len(orig) != len(twice) {
		t.Fatalf("double negation = %+v, want %+v", twice, orig)
	}
	for i := range orig {
		if orig[i] != twice[i] {
			t.Errorf("double negation[%d] = %+v, want %+v", i, twice[i], orig[i])
		}
	}
}

func TestFoldRanges_DigitsUnaffected(t *testing.T) {
	out := foldRanges(digitRanges)
	if len(out) != 1 || out[0] != digitRanges[0] {
		t.Errorf("foldRanges(digits) = %+v, want unchanged %+v", out, digitRanges)
	}
}

func TestFoldRanges_AddsCaseSwappedCounterpart(t *testing.T) {
	out := foldRanges([]ClassRange{{'a', 'c'}})
	if len(out) != 2 {
		t.Fatalf("foldRanges([a-c]) = %+v, want 2 ranges", out)
	}
	if out[0].Lo != 'a' || out[0].Hi != 'c' {
		t.Errorf("first range = %+v, want original [a-c]", out[0])
	}
	if out[1].Lo != 'A' || out[1].Hi != 'C' {
		t.Errorf("folded range = %+v, want [A-C]", out[1])
	}
}

func TestFoldRanges_PartialOverlapOnlyFoldsOverlap(t *testing.T) {
	// 'X'-'c' straddles the uppercase/lowercase boundary: only the 'X'-'Z'
	// part has a lowercase counterpart ('x'-'z'); the 'a'-'c' part already
	// is lowercase and gets no further folding from the lower-range pass,
	// but does get an uppercase counterpart from the upper-range pass.
	out := foldRanges([]ClassRange{{'X', 'c'}})
	if len(out) < 1 || out[0] != (ClassRange{'X', 'c'}) {
		t.Fatalf("first range = %+v, want original [X-c]", out[0])
	}
	foundUpper := false
	foundLower := false
	for _, r := range out[1:] {
		if r == (ClassRange{'A', 'C'}) {
			foundUpper = true
		}
		if r == (ClassRange{'x', 'z'}) {
			foundLower = true
		}
	}
	if !foundUpper || !foundLower {
		t.Errorf("foldRanges([X-c]) = %+v, want both an [A-C] and an [x-z] counterpart", out)
	}
}

func TestFoldRange_OutOfSpanReturnsNotOk(t *testing.T) {
	_, _, ok := foldRange('0', '9', 'A', 25, 'a'-'A')
	if ok {
		t.Error("foldRange should report ok=false when the input range doesn't overlap the fold span")
	}
}

func TestPosixClasses_DigitMatchesShorthand(t *testing.T) {
	got, ok := posixClasses["digit"]
	if !ok {
		t.Fatal(`posixClasses["digit"] missing`)
	}
	if len(got) != 1 || got[0] != digitRanges[0] {
		t.Errorf(`posixClasses["digit"] = %+v, want %+v`, got, digitRanges)
	}
}

func TestPosixClasses_AlnumCombinesAlphaAndDigit(t *testing.T) {
	got, ok := posixClasses["alnum"]
	if !ok {
		t.Fatal(`posixClasses["alnum"] missing`)
	}
	if len(got) != 3 {
		t.Errorf(`posixClasses["alnum"] = %+v, want 3 ranges`, got)
	}
}
