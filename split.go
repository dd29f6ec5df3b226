package rex

// Split slices src into substrings separated by matches of the pattern,
// returning the substrings between (and around) those matches. n bounds
// the number of substrings returned (n < 0 for unlimited); when the bound
// is hit the final element holds the unsplit remainder of src.
//
// An empty-match separator splits between every byte, matching the
// standard library regexp.Split convention: a zero-width match exactly
// at the start suppresses the (empty) leading piece, and a zero-width
// match exactly at the end suppresses the (empty) trailing piece.
func (r *Regex) Split(src []byte, n int) [][]byte {
	if n == 0 {
		return nil
	}

	matches := r.engine.FindAll(src, -1)

	var out [][]byte
	beg, end := 0, 0
	for _, m := range matches {
		if n > 0 && len(out) >= n-1 {
			break
		}
		end = m.Start()
		if m.End() != 0 {
			out = append(out, src[beg:end])
		}
		beg = m.End()
	}
	if end != len(src) {
		out = append(out, src[beg:])
	}
	return out
}

// SplitString is Split for strings.
func (r *Regex) SplitString(src string, n int) []string {
	parts := r.Split([]byte(src), n)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = string(p)
	}
	return out
}
