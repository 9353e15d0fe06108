package lexer

import (
	"strconv"
	"unicode/utf8"
)

// lexBasicString reads "..." with escapes
func (t *Tokenizer) lexBasicString(start Position) (Token, *Diagnostic) {
	t.c.advance() // consume opening quote

	for {
		r := t.c.peek(0)
		switch {
		case r == '"':
			t.c.advance()
			return t.emit(BasicString, start), nil
		case r == '\\':
			if t.c.peek(1) == '\n' || (t.c.peek(1) == '\r' && t.c.peek(2) == '\n') {
				return Token{}, t.fail(InvalidEscapeSequence, t.c.location(), 1,
					"line continuation is only allowed in multi-line strings")
			}
			if d := t.lexEscape(); d != nil {
				return Token{}, d
			}
			continue
		case r == eof || r == '\n' || (r == '\r' && t.c.peek(1) == '\n'):
			return Token{}, t.unterminated(start, `"`)
		}
		if d := t.checkContent(r, "string"); d != nil {
			return Token{}, d
		}
		t.c.advance()
	}
}

// lexLiteralString reads '...' verbatim
func (t *Tokenizer) lexLiteralString(start Position) (Token, *Diagnostic) {
	t.c.advance() // consume opening quote

	for {
		r := t.c.peek(0)
		switch {
		case r == '\'':
			t.c.advance()
			return t.emit(LiteralString, start), nil
		case r == eof || r == '\n' || (r == '\r' && t.c.peek(1) == '\n'):
			return Token{}, t.unterminated(start, "'")
		}
		if d := t.checkContent(r, "string"); d != nil {
			return Token{}, d
		}
		t.c.advance()
	}
}

// lexMultilineBasicString reads """...""" with escapes and line continuations
func (t *Tokenizer) lexMultilineBasicString(start Position) (Token, *Diagnostic) {
	t.c.advanceN(3) // consume opening delimiter

	for {
		r := t.c.peek(0)
		switch {
		case r == eof:
			return Token{}, t.unterminated(start, `"""`)
		case r == '"':
			if t.closeMultiline('"') {
				return t.emit(MultilineBasicString, start), nil
			}
			continue
		case r == '\\':
			if t.lineContinuation() {
				continue
			}
			if d := t.lexEscape(); d != nil {
				return Token{}, d
			}
			continue
		case r == '\n':
			t.c.advance()
			continue
		case r == '\r' && t.c.peek(1) == '\n':
			t.c.advanceN(2)
			continue
		}
		if d := t.checkContent(r, "string"); d != nil {
			return Token{}, d
		}
		t.c.advance()
	}
}

// lexMultilineLiteralString reads '''...''' verbatim
func (t *Tokenizer) lexMultilineLiteralString(start Position) (Token, *Diagnostic) {
	t.c.advanceN(3) // consume opening delimiter

	for {
		r := t.c.peek(0)
		switch {
		case r == eof:
			return Token{}, t.unterminated(start, "'''")
		case r == '\'':
			if t.closeMultiline('\'') {
				return t.emit(MultilineLiteralString, start), nil
			}
			continue
		case r == '\n':
			t.c.advance()
			continue
		case r == '\r' && t.c.peek(1) == '\n':
			t.c.advanceN(2)
			continue
		}
		if d := t.checkContent(r, "string"); d != nil {
			return Token{}, d
		}
		t.c.advance()
	}
}

// closeMultiline consumes a run of quote characters. A run of three or
// more closes the string; up to two quotes before the closing three are
// content. Returns true when the string closed.
func (t *Tokenizer) closeMultiline(quote byte) bool {
	n := 0
	for t.c.peekByte(n) == quote {
		n++
	}
	if n < 3 {
		t.c.advanceN(n)
		return false
	}
	t.c.advanceN(min(n, 5))
	return true
}

// lineContinuation consumes a backslash at the end of a line together with
// the line ending and all whitespace up to the next content. Returns false,
// consuming nothing, when the backslash is an ordinary escape.
func (t *Tokenizer) lineContinuation() bool {
	i := 1
	for t.c.peekByte(i) == ' ' || t.c.peekByte(i) == '\t' {
		i++
	}
	switch {
	case t.c.peekByte(i) == '\n':
		i++
	case t.c.peekByte(i) == '\r' && t.c.peekByte(i+1) == '\n':
		i += 2
	default:
		return false
	}
	t.c.advanceN(i) // backslash, trailing blanks, line ending are all ASCII

	for {
		switch {
		case is(&isSpace, t.c.peek(0)), t.c.peek(0) == '\n':
			t.c.advance()
		case t.c.peek(0) == '\r' && t.c.peek(1) == '\n':
			t.c.advanceN(2)
		default:
			return true
		}
	}
}

// lexEscape reads one escape sequence starting at the backslash
func (t *Tokenizer) lexEscape() *Diagnostic {
	at := t.c.location()
	t.c.advance() // consume '\'

	r := t.c.peek(0)
	switch r {
	case 'b', 't', 'n', 'f', 'r', '"', '\\':
		t.c.advance()
		return nil
	case 'u':
		return t.lexUnicodeEscape(at, 'u', 4)
	case 'U':
		return t.lexUnicodeEscape(at, 'U', 8)
	case eof:
		// The caller reports the string as unterminated
		return nil
	case badRune:
		return t.invalidUTF8()
	}

	return t.fail(InvalidEscapeSequence, at, 1+utf8.RuneLen(r),
		"%s is not a valid escape", strconv.Quote(`\`+string(r)))
}

// lexUnicodeEscape reads the hex digits of \uXXXX or \UXXXXXXXX
func (t *Tokenizer) lexUnicodeEscape(at Position, letter rune, digits int) *Diagnostic {
	t.c.advance() // consume 'u' or 'U'

	var value uint32
	for i := 0; i < digits; i++ {
		r := t.c.peek(0)
		if !is(&isHexDigit, r) {
			return t.fail(InvalidEscapeSequence, at, t.c.position()-at.Offset,
				`\%c needs exactly %d hex digits`, letter, digits)
		}
		value = value<<4 | hexValue(byte(r))
		t.c.advance()
	}

	if value > utf8.MaxRune || !utf8.ValidRune(rune(value)) {
		return t.fail(InvalidEscapeSequence, at, t.c.position()-at.Offset,
			"U+%04X is not a Unicode scalar value", value)
	}
	return nil
}

// unterminated reports a string that ran into a line ending or end of
// input; the span runs from the opening quote to where scanning stopped
func (t *Tokenizer) unterminated(start Position, delim string) *Diagnostic {
	return t.fail(UnterminatedString, start, t.c.position()-start.Offset,
		"missing closing %s", delim)
}
