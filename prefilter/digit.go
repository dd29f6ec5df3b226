// Package prefilter provides fast candidate filtering for regex search.
//
// This file implements DigitPrefilter, a specialized prefilter for patterns
// that must start with an ASCII digit [0-9]. Used for IP address patterns
// and other digit-lead alternations where literal extraction fails.

package prefilter

// DigitPrefilter implements the Prefilter interface for patterns that must
// start with ASCII digits [0-9].
//
// It scans for the first ASCII digit to quickly skip large regions of
// non-digit text. Effective for:
//   - IP address patterns: `(?:25[0-5]|2[0-4][0-9]|...)`
//   - Numeric validators: `[1-9][0-9]*`
//   - Phone number patterns: `\d{3}-\d{3}-\d{4}`
//
// This prefilter is NOT complete: finding a digit is only a candidate
// position, the full regex must still be verified there.
type DigitPrefilter struct{}

// NewDigitPrefilter creates a prefilter for patterns that must start with
// digits.
func NewDigitPrefilter() *DigitPrefilter {
	return &DigitPrefilter{}
}

// Find returns the index of the first ASCII digit at or after 'start'.
// Returns -1 if no digit is found in the remaining haystack.
func (p *DigitPrefilter) Find(haystack []byte, start int) int {
	if start < 0 {
		start = 0
	}
	for i := start; i < len(haystack); i++ {
		if haystack[i] >= '0' && haystack[i] <= '9' {
			return i
		}
	}
	return -1
}

// IsComplete returns false because finding a digit is only a candidate
// position; the full pattern may still fail to match there.
func (p *DigitPrefilter) IsComplete() bool {
	return false
}

// LiteralLen returns 0 because DigitPrefilter doesn't match fixed-length
// literals.
func (p *DigitPrefilter) LiteralLen() int {
	return 0
}

// HeapBytes returns 0 because DigitPrefilter allocates nothing.
func (p *DigitPrefilter) HeapBytes() int {
	return 0
}
