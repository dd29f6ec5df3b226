package syntax

// ASCII-only shorthand classes (Non-goal: Unicode-aware classes).
var (
	digitRanges = []ClassRange{{'0', '9'}}
	wordRanges  = []ClassRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}
	spaceRanges = []ClassRange{{'\t', '\n'}, {'\f', '\r'}, {' ', ' '}}
)

// posixClasses maps POSIX class names (as used inside `[:name:]`) to their
// ASCII byte ranges.
var posixClasses = map[string][]ClassRange{
	"alpha":  {{'A', 'Z'}, {'a', 'z'}},
	"digit":  {{'0', '9'}},
	"alnum":  {{'0', '9'}, {'A', 'Z'}, {'a', 'z'}},
	"upper":  {{'A', 'Z'}},
	"lower":  {{'a', 'z'}},
	"space":  {{'\t', '\r'}, {' ', ' '}},
	"punct":  {{'!', '/'}, {':', '@'}, {'[', '`'}, {'{', '~'}},
	"cntrl":  {{0, 0x1f}, {0x7f, 0x7f}},
	"print":  {{' ', '~'}},
	"graph":  {{'!', '~'}},
	"blank":  {{'\t', '\t'}, {' ', ' '}},
	"xdigit": {{'0', '9'}, {'A', 'F'}, {'a', 'f'}},
}

// shorthandClass resolves an escaped shorthand letter (d, D, w, W, s, S) to
// its ASCII ranges and negation flag. ok is false for any other letter.
func shorthandClass(letter byte) (ranges []ClassRange, negated bool, ok bool) {
	switch letter {
	case 'd':
		return digitRanges, false, true
	case 'D':
		return digitRanges, true, true
	case 'w':
		return wordRanges, false, true
	case 'W':
		return wordRanges, true, true
	case 's':
		return spaceRanges, false, true
	case 'S':
		return spaceRanges, true, true
	default:
		return nil, false, false
	}
}

// foldRanges expands each range to include its ASCII case-swapped
// counterpart, used when CaseInsensitive is set so the NFA compiler never
// has to special-case folding at match time.
func foldRanges(ranges []ClassRange) []ClassRange {
	out := make([]ClassRange, 0, len(ranges)*2)
	out = append(out, ranges...)
	for _, r := range ranges {
		if lo, hi, ok := foldRange(r.Lo, r.Hi, 'A', 'Z', 'a'-'A'); ok {
			out = append(out, ClassRange{lo, hi})
		}
		if lo, hi, ok := foldRange(r.Lo, r.Hi, 'a', 'z', 'A'-'a'); ok {
			out = append(out, ClassRange{lo, hi})
		}
	}
	return out
}

// foldRange intersects [lo,hi] with [base, base+25] and shifts the overlap
// by delta, producing the case-swapped counterpart of that overlap.
func foldRange(lo, hi, base byte, span int, delta int) (nlo, nhi byte, ok bool) {
	end := base + 25
	if hi < base || lo > end {
		return 0, 0, false
	}
	l, h := lo, hi
	if l < base {
		l = base
	}
	if h > end {
		h = end
	}
	nlo = byte(int(l) + delta)
	nhi = byte(int(h) + delta)
	return nlo, nhi, true
}

// normalizeRanges sorts and merges overlapping/adjacent ranges so downstream
// consumers (the NFA compiler, literal extraction) can assume a canonical
// form.
func normalizeRanges(ranges []ClassRange) []ClassRange {
	if len(ranges) <= 1 {
		return ranges
	}
	sorted := make([]ClassRange, len(ranges))
	copy(sorted, ranges)
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j-1].Lo > sorted[j].Lo; j-- {
			sorted[j-1], sorted[j] = sorted[j], sorted[j-1]
		}
	}
	out := sorted[:1]
	for _, r := range sorted[1:] {
		last := &out[len(out)-1]
		if int(r.Lo) <= int(last.Hi)+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}

// negateRanges computes the complement of ranges over the full byte domain.
func negateRanges(ranges []ClassRange) []ClassRange {
	norm := normalizeRanges(ranges)
	var out []ClassRange
	next := 0
	for _, r := range norm {
		if int(r.Lo) > next {
			out = append(out, ClassRange{byte(next), r.Lo - 1})
		}
		if int(r.Hi)+1 > next {
			next = int(r.Hi) + 1
		}
	}
	if next <= 0xff {
		out = append(out, ClassRange{byte(next), 0xff})
	}
	return out
}
