package rex

import (
	"reflect"
	"testing"
)

func TestSplit_Basic(t *testing.T) {
	re := MustCompile(`,`)
	got := re.SplitString("a,b,c", -1)
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_NoMatchReturnsWholeInput(t *testing.T) {
	re := MustCompile(`,`)
	got := re.SplitString("abc", -1)
	want := []string{"abc"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}

func TestSplit_ZeroLimitReturnsNil(t *testing.T) {
	re := MustCompile(`,`)
	if got := re.Split([]byte("a,b"), 0); got != nil {
		t.Errorf("Split with n=0 = %v, want nil", got)
	}
}

func TestSplit_LimitStopsEarlyWithRemainder(t *testing.T) {
	re := MustCompile(`,`)
	got := re.SplitString("a,b,c,d", 2)
	want := []string{"a", "b,c,d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split(n=2) = %v, want %v", got, want)
	}
}

func TestSplit_EmptyMatchSplitsBetweenBytes(t *testing.T) {
	re := MustCompile(`(?:)`)
	got := re.SplitString("abc", -1)
	// A zero-width match sits at every position 0..3. The leading piece is
	// suppressed because the first match ends at 0, and the trailing piece
	// is suppressed because the last match starts at len(src); matching
	// the standard library's regexp.Split convention.
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Split = %v, want %v", got, want)
	}
}
