package syntax

// Flags control pattern-independent matching behavior (spec §6.2).
type Flags struct {
	// CaseInsensitive folds ASCII case in literal/class comparisons and
	// backreference equality.
	CaseInsensitive bool

	// Multiline makes ^ match at text start and after every newline, and $
	// match at text end and before every newline.
	Multiline bool

	// DotMatchesNewline makes `.` match any byte, including newline.
	DotMatchesNewline bool
}
