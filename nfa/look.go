package nfa

// isWordByte reports whether b is an ASCII "word" byte for \b/\B purposes:
// letters, digits, and underscore. Non-goal: full Unicode word semantics.
func isWordByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

// checkLookAssertion evaluates a zero-width assertion at pos in haystack.
// Shared by both execution engines so anchor semantics never drift between
// the Thompson simulator and the bounded backtracker.
func checkLookAssertion(look Look, haystack []byte, pos int) bool {
	switch look {
	case LookStartText:
		return pos == 0
	case LookEndText:
		return pos == len(haystack)
	case LookStartLine:
		return pos == 0 || (pos > 0 && pos <= len(haystack) && haystack[pos-1] == '\n')
	case LookEndLine:
		return pos == len(haystack) || (pos < len(haystack) && haystack[pos] == '\n')
	case LookWordBoundary:
		before := pos > 0 && isWordByte(haystack[pos-1])
		after := pos < len(haystack) && isWordByte(haystack[pos])
		return before != after
	case LookNotWordBoundary:
		before := pos > 0 && isWordByte(haystack[pos-1])
		after := pos < len(haystack) && isWordByte(haystack[pos])
		return before == after
	default:
		return false
	}
}
