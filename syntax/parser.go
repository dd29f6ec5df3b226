package syntax

import "strconv"

// maxRecursionDepth bounds nested group/alternation depth so a pathological
// pattern fails fast with a parse error instead of overflowing the
// Go call stack.
const maxRecursionDepth = 1000

// parser implements the recursive-descent grammar of spec §4.1:
//
//	Alternation  = Concatenation ( '|' Concatenation )*
//	Concatenation = Quantified*
//	Quantified   = Primary Quantifier?
//	Primary      = Literal | '.' | Class | Group | Anchor | Backref
type parser struct {
	lex         *lexer
	pattern     string
	captures    int
	depth       int
	flags       Flags
}

// Parse compiles pattern text into an Expr AST under the given flags.
func Parse(pattern string, flags Flags) (*Expr, int, error) {
	if pattern == "" {
		return nil, 0, &Error{Pos: 0, Code: ErrEmptyPattern, Pattern: pattern}
	}
	p := &parser{lex: newLexer(pattern), pattern: pattern, flags: flags}
	root, err := p.parseAlternation()
	if err != nil {
		return nil, 0, err
	}
	if !p.lex.eof() {
		return nil, 0, &Error{Pos: p.lex.pos, Code: ErrUnmatchedParen, Pattern: pattern, Detail: "unexpected ')'"}
	}
	return root, p.captures, nil
}

func (p *parser) errf(code Code, detail string) error {
	return &Error{Pos: p.lex.pos, Code: code, Pattern: p.pattern, Detail: detail}
}

func (p *parser) parseAlternation() (*Expr, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxRecursionDepth {
		return nil, p.errf(ErrUnexpectedChar, "pattern nesting too deep")
	}

	first, err := p.parseConcat()
	if err != nil {
		return nil, err
	}
	branches := []*Expr{first}
	for p.lex.accept('|') {
		next, err := p.parseConcat()
		if err != nil {
			return nil, err
		}
		branches = append(branches, next)
	}
	if len(branches) == 1 {
		return branches[0], nil
	}
	return &Expr{Kind: KindAlternate, Children: branches}, nil
}

func (p *parser) parseConcat() (*Expr, error) {
	var items []*Expr
	for !p.lex.eof() && p.lex.peek() != '|' && p.lex.peek() != ')' {
		item, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	switch len(items) {
	case 0:
		return &Expr{Kind: KindEmpty}, nil
	case 1:
		return items[0], nil
	default:
		return &Expr{Kind: KindConcat, Children: items}, nil
	}
}

func (p *parser) parseQuantified() (*Expr, error) {
	start := p.lex.pos
	atom, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	min, max, ok, err := p.tryParseQuantifierRange()
	if err != nil {
		return nil, err
	}
	if !ok {
		return atom, nil
	}
	if !quantifiable(atom) {
		return nil, &Error{Pos: start, Code: ErrQuantifierNoOperand, Pattern: p.pattern}
	}

	greedy := Greedy
	switch {
	case p.lex.accept('?'):
		greedy = Lazy
	case p.lex.accept('+'):
		greedy = Possessive
	}

	q := &Expr{Kind: KindQuantifier, Pos: start, Child: atom, Min: min, Max: max, Greedy: greedy}

	if c := p.lex.peek(); c == '*' || c == '+' || c == '?' {
		return nil, p.errf(ErrNestedQuantifier, "quantifier cannot follow a quantifier directly")
	}
	if p.lex.hasPrefix("{") {
		if _, _, ok, _ := p.tryParseQuantifierRange(); ok {
			return nil, p.errf(ErrNestedQuantifier, "quantifier cannot follow a quantifier directly")
		}
	}
	return q, nil
}

func quantifiable(e *Expr) bool {
	return e.Kind != KindAnchor
}

// tryParseQuantifierRange consumes *, +, ?, or {m,n} at the cursor and
// returns the (min, max) it denotes. It does not consume lazy/possessive
// suffixes. ok is false, with the cursor unmoved, when no quantifier is
// present.
func (p *parser) tryParseQuantifierRange() (min, max int, ok bool, err error) {
	switch p.lex.peek() {
	case '*':
		p.lex.advance()
		return 0, Infinite, true, nil
	case '+':
		p.lex.advance()
		return 1, Infinite, true, nil
	case '?':
		p.lex.advance()
		return 0, 1, true, nil
	case '{':
		return p.tryParseBraceQuantifier()
	default:
		return 0, 0, false, nil
	}
}

// tryParseBraceQuantifier parses {m}, {m,}, or {m,n}. If the text at the
// cursor isn't a well-formed brace quantifier, it is treated as a literal
// '{' and the cursor is left unmoved.
func (p *parser) tryParseBraceQuantifier() (min, max int, ok bool, err error) {
	save := p.lex.pos
	p.lex.advance() // '{'

	minStr := p.scanDigits()
	if minStr == "" {
		p.lex.pos = save
		return 0, 0, false, nil
	}
	min, convErr := strconv.Atoi(minStr)
	if convErr != nil {
		p.lex.pos = save
		return 0, 0, false, nil
	}

	max = min
	if p.lex.accept(',') {
		maxStr := p.scanDigits()
		if maxStr == "" {
			max = Infinite
		} else {
			max, convErr = strconv.Atoi(maxStr)
			if convErr != nil {
				p.lex.pos = save
				return 0, 0, false, nil
			}
		}
	}

	if !p.lex.accept('}') {
		p.lex.pos = save
		return 0, 0, false, nil
	}
	if max != Infinite && max < min {
		return 0, 0, false, p.errf(ErrInvalidQuantifier, "max less than min")
	}
	return min, max, true, nil
}

func (p *parser) scanDigits() string {
	start := p.lex.pos
	for isDigit(p.lex.peek()) {
		p.lex.advance()
	}
	return string(p.lex.src[start:p.lex.pos])
}

func (p *parser) parsePrimary() (*Expr, error) {
	if p.lex.eof() {
		return nil, p.errf(ErrUnexpectedEOF, "")
	}
	pos := p.lex.pos
	switch c := p.lex.peek(); c {
	case '(':
		return p.parseGroup()
	case '[':
		return p.parseClass()
	case '.':
		p.lex.advance()
		return &Expr{Kind: KindAny, Pos: pos}, nil
	case '^':
		p.lex.advance()
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorStartLine}, nil
	case '$':
		p.lex.advance()
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorEndLine}, nil
	case '\\':
		return p.parseEscape()
	case '*', '+', '?':
		return nil, &Error{Pos: pos, Code: ErrQuantifierNoOperand, Pattern: p.pattern}
	case ')':
		return nil, p.errf(ErrUnmatchedParen, "unexpected ')'")
	default:
		p.lex.advance()
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: c}, nil
	}
}

func (p *parser) parseGroup() (*Expr, error) {
	pos := p.lex.pos
	p.lex.advance() // '('

	kind := GroupCapturing
	name := ""
	positive := true
	captureIndex := 0

	switch {
	case p.lex.hasPrefix("?:"):
		p.lex.skip(2)
		kind = GroupNonCapturing
	case p.lex.hasPrefix("?>"):
		p.lex.skip(2)
		kind = GroupAtomic
	case p.lex.hasPrefix("?="):
		p.lex.skip(2)
		kind = GroupLookahead
		positive = true
	case p.lex.hasPrefix("?!"):
		p.lex.skip(2)
		kind = GroupLookahead
		positive = false
	case p.lex.hasPrefix("?<="):
		p.lex.skip(3)
		kind = GroupLookbehind
		positive = true
	case p.lex.hasPrefix("?<!"):
		p.lex.skip(3)
		kind = GroupLookbehind
		positive = false
	case p.lex.hasPrefix("?P<") || p.lex.hasPrefix("?<"):
		skip := 3
		if p.lex.hasPrefix("?<") {
			skip = 2
		}
		p.lex.skip(skip)
		start := p.lex.pos
		for isNameByte(p.lex.peek()) {
			p.lex.advance()
		}
		if p.lex.pos == start {
			return nil, p.errf(ErrUnexpectedChar, "empty group name")
		}
		name = string(p.lex.src[start:p.lex.pos])
		if !p.lex.accept('>') {
			return nil, p.errf(ErrUnexpectedChar, "unterminated group name")
		}
		kind = GroupNamed
		p.captures++
		captureIndex = p.captures
	case p.lex.peek() == '?':
		return nil, p.errf(ErrUnexpectedChar, "unsupported group modifier")
	default:
		p.captures++
		captureIndex = p.captures
	}

	body, err := p.parseAlternation()
	if err != nil {
		return nil, err
	}
	if !p.lex.accept(')') {
		return nil, &Error{Pos: pos, Code: ErrUnmatchedParen, Pattern: p.pattern, Detail: "unterminated group"}
	}

	return &Expr{
		Kind:         KindGroup,
		Pos:          pos,
		Child:        body,
		GroupKind:    kind,
		CaptureIndex: captureIndex,
		Name:         name,
		Positive:     positive,
	}, nil
}

func (p *parser) parseEscape() (*Expr, error) {
	pos := p.lex.pos
	p.lex.advance() // backslash
	if p.lex.eof() {
		return nil, p.errf(ErrInvalidEscape, "trailing backslash")
	}
	c := p.lex.advance()

	if ranges, negated, ok := shorthandClass(c); ok {
		return &Expr{Kind: KindClass, Pos: pos, Ranges: ranges, Negated: negated}, nil
	}

	switch c {
	case 'A':
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorStartText}, nil
	case 'z', 'Z':
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorEndText}, nil
	case 'b':
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorWordBoundary}, nil
	case 'B':
		return &Expr{Kind: KindAnchor, Pos: pos, Anchor: AnchorNotWordBoundary}, nil
	case 'k':
		if p.lex.accept('<') {
			start := p.lex.pos
			for isNameByte(p.lex.peek()) {
				p.lex.advance()
			}
			name := string(p.lex.src[start:p.lex.pos])
			if name == "" || !p.lex.accept('>') {
				return nil, &Error{Pos: pos, Code: ErrInvalidBackref, Pattern: p.pattern, Detail: "malformed named backreference"}
			}
			return &Expr{Kind: KindBackref, Pos: pos, BackrefName: name}, nil
		}
		return nil, &Error{Pos: pos, Code: ErrInvalidBackref, Pattern: p.pattern, Detail: "expected '<' after \\k"}
	case 'n':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: '\n'}, nil
	case 't':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: '\t'}, nil
	case 'r':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: '\r'}, nil
	case 'f':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: '\f'}, nil
	case 'v':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: '\v'}, nil
	case '0':
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: 0}, nil
	case 'x':
		return p.parseHexEscape(pos)
	default:
		if isDigit(c) {
			start := p.lex.pos - 1
			for isDigit(p.lex.peek()) {
				p.lex.advance()
			}
			n, _ := strconv.Atoi(string(p.lex.src[start:p.lex.pos]))
			return &Expr{Kind: KindBackref, Pos: pos, BackrefIndex: n}, nil
		}
		// Any other escaped byte (including regex metacharacters) stands for
		// itself.
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: c}, nil
	}
}

func (p *parser) parseHexEscape(pos int) (*Expr, error) {
	if p.lex.accept('{') {
		start := p.lex.pos
		for p.lex.peek() != '}' && !p.lex.eof() {
			p.lex.advance()
		}
		hex := string(p.lex.src[start:p.lex.pos])
		if !p.lex.accept('}') {
			return nil, &Error{Pos: pos, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "unterminated \\x{...}"}
		}
		v, err := strconv.ParseUint(hex, 16, 8)
		if err != nil {
			return nil, &Error{Pos: pos, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "invalid \\x{...} (ASCII-only, must fit in one byte)"}
		}
		return &Expr{Kind: KindLiteral, Pos: pos, Byte: byte(v)}, nil
	}
	if p.lex.pos+2 > len(p.lex.src) {
		return nil, &Error{Pos: pos, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "incomplete \\xHH"}
	}
	hex := string(p.lex.src[p.lex.pos : p.lex.pos+2])
	v, err := strconv.ParseUint(hex, 16, 8)
	if err != nil {
		return nil, &Error{Pos: pos, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "invalid \\xHH"}
	}
	p.lex.skip(2)
	return &Expr{Kind: KindLiteral, Pos: pos, Byte: byte(v)}, nil
}

func (p *parser) parseClass() (*Expr, error) {
	pos := p.lex.pos
	p.lex.advance() // '['

	negated := false
	if p.lex.accept('^') {
		negated = true
	}

	var ranges []ClassRange
	first := true
	for {
		if p.lex.eof() {
			return nil, &Error{Pos: pos, Code: ErrUnmatchedBracket, Pattern: p.pattern, Detail: "unterminated class"}
		}
		if p.lex.peek() == ']' && !first {
			p.lex.advance()
			break
		}
		first = false

		if p.lex.hasPrefix("[:") {
			r, err := p.parsePosixClass()
			if err != nil {
				return nil, err
			}
			ranges = append(ranges, r...)
			continue
		}

		if p.lex.peek() == '\\' {
			save := p.lex.pos
			p.lex.advance()
			if p.lex.eof() {
				return nil, &Error{Pos: save, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "trailing backslash in class"}
			}
			esc := p.lex.advance()
			if shRanges, shNeg, ok := shorthandClass(esc); ok {
				if shNeg {
					ranges = append(ranges, negateRanges(shRanges)...)
				} else {
					ranges = append(ranges, shRanges...)
				}
				continue
			}
			p.lex.pos = save
		}

		lo, err := p.parseClassByte()
		if err != nil {
			return nil, err
		}
		if p.lex.peek() == '-' && p.lex.peekAt(1) != ']' && p.lex.peekAt(1) != 0 {
			p.lex.advance() // '-'
			hi, err := p.parseClassByte()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, &Error{Pos: pos, Code: ErrInvalidClass, Pattern: p.pattern, Detail: "range out of order"}
			}
			ranges = append(ranges, ClassRange{lo, hi})
		} else {
			ranges = append(ranges, ClassRange{lo, lo})
		}
	}

	if len(ranges) == 0 {
		return nil, &Error{Pos: pos, Code: ErrInvalidClass, Pattern: p.pattern, Detail: "empty class"}
	}

	if p.flags.CaseInsensitive {
		ranges = foldRanges(ranges)
	}
	ranges = normalizeRanges(ranges)
	return &Expr{Kind: KindClass, Pos: pos, Ranges: ranges, Negated: negated}, nil
}

func (p *parser) parseClassByte() (byte, error) {
	if p.lex.peek() == '\\' {
		pos := p.lex.pos
		p.lex.advance()
		if p.lex.eof() {
			return 0, &Error{Pos: pos, Code: ErrInvalidEscape, Pattern: p.pattern, Detail: "trailing backslash in class"}
		}
		c := p.lex.advance()
		switch c {
		case 'n':
			return '\n', nil
		case 't':
			return '\t', nil
		case 'r':
			return '\r', nil
		case 'f':
			return '\f', nil
		case 'v':
			return '\v', nil
		case '0':
			return 0, nil
		case 'x':
			e, err := p.parseHexEscape(pos)
			if err != nil {
				return 0, err
			}
			return e.Byte, nil
		default:
			return c, nil
		}
	}
	return p.lex.advance(), nil
}

func (p *parser) parsePosixClass() ([]ClassRange, error) {
	pos := p.lex.pos
	p.lex.skip(2) // "[:"
	neg := p.lex.accept('^')
	start := p.lex.pos
	for p.lex.peek() != ':' && !p.lex.eof() {
		p.lex.advance()
	}
	name := string(p.lex.src[start:p.lex.pos])
	if !p.lex.hasPrefix(":]") {
		return nil, &Error{Pos: pos, Code: ErrInvalidClass, Pattern: p.pattern, Detail: "unterminated POSIX class"}
	}
	p.lex.skip(2)
	ranges, ok := posixClasses[name]
	if !ok {
		return nil, &Error{Pos: pos, Code: ErrInvalidClass, Pattern: p.pattern, Detail: "unknown POSIX class [:" + name + ":]"}
	}
	if neg {
		return negateRanges(ranges), nil
	}
	return ranges, nil
}
