package rex

import "bytes"

// Replace returns a copy of src with the first match replaced by the
// expansion of template. template may reference capture groups with `$k`
// (numeric, 0 is the whole match) or `$name` (named group); `$$` is a
// literal dollar sign. A group reference to a group that did not
// participate in the match expands to nothing.
func (r *Regex) Replace(src []byte, template []byte) []byte {
	m := r.engine.FindSubmatch(src)
	if m == nil {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}
	var buf bytes.Buffer
	buf.Write(src[:m.Start()])
	r.expandTemplate(&buf, template, src, m.Groups)
	buf.Write(src[m.End():])
	return buf.Bytes()
}

// ReplaceAll returns a copy of src with every non-overlapping match
// replaced by the expansion of template.
func (r *Regex) ReplaceAll(src []byte, template []byte) []byte {
	matches := r.engine.FindAllSubmatch(src, -1)
	if len(matches) == 0 {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}
	var buf bytes.Buffer
	pos := 0
	for _, m := range matches {
		buf.Write(src[pos:m.Start()])
		r.expandTemplate(&buf, template, src, m.Groups)
		pos = m.End()
	}
	buf.Write(src[pos:])
	return buf.Bytes()
}

// ReplaceAllFunc returns a copy of src where every non-overlapping match is
// replaced by the result of calling repl with the matched bytes. Unlike
// ReplaceAll, repl sees only the overall match; it does not receive
// capture groups.
func (r *Regex) ReplaceAllFunc(src []byte, repl func([]byte) []byte) []byte {
	matches := r.engine.FindAll(src, -1)
	if len(matches) == 0 {
		out := make([]byte, len(src))
		copy(out, src)
		return out
	}
	var buf bytes.Buffer
	pos := 0
	for _, m := range matches {
		buf.Write(src[pos:m.Start()])
		buf.Write(repl(m.Bytes()))
		pos = m.End()
	}
	buf.Write(src[pos:])
	return buf.Bytes()
}

// expandTemplate writes template to buf, substituting $k / $name group
// references against groups (indexed the same way as MatchWithCaptures.Groups).
func (r *Regex) expandTemplate(buf *bytes.Buffer, template []byte, src []byte, groups [][]int) {
	names := r.engine.SubexpNames()
	for i := 0; i < len(template); {
		c := template[i]
		if c != '$' || i == len(template)-1 {
			buf.WriteByte(c)
			i++
			continue
		}
		if template[i+1] == '$' {
			buf.WriteByte('$')
			i += 2
			continue
		}
		name, rest := scanGroupRef(template[i+1:])
		if name == "" {
			buf.WriteByte('$')
			i++
			continue
		}
		i = len(template) - len(rest)
		idx := resolveGroup(name, names)
		if idx < 0 || idx >= len(groups) || groups[idx] == nil {
			continue
		}
		g := groups[idx]
		buf.Write(src[g[0]:g[1]])
	}
}

// scanGroupRef consumes a `$k` or `$name` reference (braces optional:
// `${name}`) from the start of s, returning the reference text and the
// unconsumed remainder.
func scanGroupRef(s []byte) (ref string, rest []byte) {
	if len(s) == 0 {
		return "", s
	}
	if s[0] == '{' {
		end := bytes.IndexByte(s, '}')
		if end < 0 {
			return "", s
		}
		return string(s[1:end]), s[end+1:]
	}
	n := 0
	for n < len(s) && isGroupRefByte(s[n]) {
		n++
	}
	return string(s[:n]), s[n:]
}

func isGroupRefByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// resolveGroup maps a numeric or named reference to a group index, or -1
// if it names no group.
func resolveGroup(ref string, names []string) int {
	if ref == "" {
		return -1
	}
	allDigits := true
	for i := 0; i < len(ref); i++ {
		if ref[i] < '0' || ref[i] > '9' {
			allDigits = false
			break
		}
	}
	if allDigits {
		n := 0
		for i := 0; i < len(ref); i++ {
			n = n*10 + int(ref[i]-'0')
		}
		return n
	}
	for i, name := range names {
		if name == ref {
			return i
		}
	}
	return -1
}
