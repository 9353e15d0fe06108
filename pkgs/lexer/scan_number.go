package lexer

// lexNumberOrDateTime picks between date-time and numeric grammar by
// looking for '-' or ':' at the fixed positions of YYYY-MM-DD and HH:MM
func (t *Tokenizer) lexNumberOrDateTime(start Position) (Token, *Diagnostic) {
	if t.looksLikeDate() {
		return t.lexDateTime(start)
	}
	if t.looksLikeTime() {
		return t.lexLocalTime(start)
	}
	return t.lexNumber(start)
}

func (t *Tokenizer) looksLikeDate() bool {
	for i := 0; i < 4; i++ {
		if !is(&isDigit, rune(t.c.peekByte(i))) {
			return false
		}
	}
	return t.c.peekByte(4) == '-'
}

func (t *Tokenizer) looksLikeTime() bool {
	return is(&isDigit, rune(t.c.peekByte(0))) &&
		is(&isDigit, rune(t.c.peekByte(1))) &&
		t.c.peekByte(2) == ':'
}

// digitBase describes one of the integer bases
type digitBase struct {
	name   string
	digits *[128]bool
}

var (
	decimalBase     = digitBase{"decimal", &isDigit}
	hexadecimalBase = digitBase{"hexadecimal", &isHexDigit}
	octalBase       = digitBase{"octal", &isOctDigit}
	binaryBase      = digitBase{"binary", &isBinDigit}
)

var prefixedBases = map[byte]digitBase{
	'x': hexadecimalBase,
	'o': octalBase,
	'b': binaryBase,
}

// lexNumber reads an integer or float:
//
//	[+-]? ( inf | nan | 0x.. | 0o.. | 0b.. | int ( .frac )? ( [eE] [+-]? exp )? )
func (t *Tokenizer) lexNumber(start Position) (Token, *Diagnostic) {
	signed := false
	if r := t.c.peek(0); r == '+' || r == '-' {
		t.c.advance()
		signed = true
	}

	r := t.c.peek(0)
	switch {
	case r == 'i' || r == 'n':
		if t.matchWord("inf") || t.matchWord("nan") {
			return t.finishNumber(Float, start)
		}
		return Token{}, t.fail(MalformedNumber, start, t.c.position()-start.Offset+1,
			"expected a digit, inf or nan")

	case r == '0' && prefixedBases[t.c.peekByte(1)].digits != nil:
		base := prefixedBases[t.c.peekByte(1)]
		if signed {
			return Token{}, t.fail(MalformedNumber, start, 1,
				"%s integers cannot carry a sign", base.name)
		}
		t.c.advanceN(2) // consume 0x, 0o or 0b
		if d := t.lexDigits(base); d != nil {
			return Token{}, d
		}
		return t.finishNumber(Integer, start)

	case !is(&isDigit, r):
		return Token{}, t.fail(MalformedNumber, t.c.location(), 1, "expected a digit")
	}

	intStart := t.c.location()
	if d := t.lexDigits(decimalBase); d != nil {
		return Token{}, d
	}
	if t.src[intStart.Offset] == '0' && t.c.position()-intStart.Offset > 1 {
		return Token{}, t.fail(MalformedNumber, intStart, t.c.position()-intStart.Offset,
			"leading zeros are not allowed")
	}

	kind := Integer
	if t.c.peek(0) == '.' {
		dot := t.c.location()
		t.c.advance()
		if !is(&isDigit, t.c.peek(0)) && t.c.peek(0) != '_' {
			return Token{}, t.fail(MalformedNumber, dot, 1, "fraction needs at least one digit")
		}
		if d := t.lexDigits(decimalBase); d != nil {
			return Token{}, d
		}
		kind = Float
	}

	if r := t.c.peek(0); r == 'e' || r == 'E' {
		marker := t.c.location()
		t.c.advance()
		if r := t.c.peek(0); r == '+' || r == '-' {
			t.c.advance()
		}
		if !is(&isDigit, t.c.peek(0)) && t.c.peek(0) != '_' {
			return Token{}, t.fail(MalformedNumber, marker, t.c.position()-marker.Offset,
				"exponent needs at least one digit")
		}
		if d := t.lexDigits(decimalBase); d != nil {
			return Token{}, d
		}
		kind = Float
	}

	return t.finishNumber(kind, start)
}

// lexDigits reads one or more digits of base with single underscores
// between them
func (t *Tokenizer) lexDigits(base digitBase) *Diagnostic {
	r := t.c.peek(0)
	if r == '_' {
		return t.fail(MalformedNumber, t.c.location(), 1, "digit separator must sit between two digits")
	}
	if !is(base.digits, r) {
		return t.fail(MalformedNumber, t.c.location(), 1, "expected a %s digit", base.name)
	}

	for {
		r := t.c.peek(0)
		switch {
		case is(base.digits, r):
			t.c.advance()
		case r == '_':
			if !is(base.digits, t.c.peek(1)) {
				return t.fail(MalformedNumber, t.c.location(), 1, "digit separator must sit between two digits")
			}
			t.c.advance()
		default:
			return nil
		}
	}
}

// finishNumber rejects numbers glued to further key characters, like
// 12ab, 1.2.3 or 0x1G
func (t *Tokenizer) finishNumber(kind TokenKind, start Position) (Token, *Diagnostic) {
	if r := t.c.peek(0); is(&isBareKeyChar, r) || r == '.' || r == '+' {
		return Token{}, t.fail(MalformedNumber, t.c.location(), 1, "unexpected %q in number", r)
	}
	return t.emit(kind, start), nil
}
