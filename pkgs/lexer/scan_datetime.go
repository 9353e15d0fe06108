package lexer

// Date-time shapes (RFC 3339 as profiled by TOML). Only digit counts and
// separators are checked; 2024-02-30 is a fine LocalDate here.
//
//	LocalDate       YYYY-MM-DD
//	LocalTime       HH:MM:SS[.frac]
//	LocalDateTime   LocalDate (T|t|' ') LocalTime
//	OffsetDateTime  LocalDateTime (Z|z|[+-]HH:MM)

// lexDateTime reads a LocalDate, LocalDateTime or OffsetDateTime
func (t *Tokenizer) lexDateTime(start Position) (Token, *Diagnostic) {
	if d := t.lexDate(); d != nil {
		return Token{}, d
	}

	kind := LocalDate
	sep := t.c.peekByte(0)
	if sep == 'T' || sep == 't' || (sep == ' ' && is(&isDigit, rune(t.c.peekByte(1)))) {
		t.c.advance()
		if d := t.lexTimeOfDay(); d != nil {
			return Token{}, d
		}
		kind = LocalDateTime

		hasOffset, d := t.lexOffset()
		if d != nil {
			return Token{}, d
		}
		if hasOffset {
			kind = OffsetDateTime
		}
	}

	return t.finishDateTime(kind, start)
}

// lexLocalTime reads a time of day with no date
func (t *Tokenizer) lexLocalTime(start Position) (Token, *Diagnostic) {
	if d := t.lexTimeOfDay(); d != nil {
		return Token{}, d
	}
	return t.finishDateTime(LocalTime, start)
}

func (t *Tokenizer) lexDate() *Diagnostic {
	return t.expectSequence(
		fixedDigits{4, "year"}, separator('-'),
		fixedDigits{2, "month"}, separator('-'),
		fixedDigits{2, "day"},
	)
}

func (t *Tokenizer) lexTimeOfDay() *Diagnostic {
	if d := t.expectSequence(
		fixedDigits{2, "hour"}, separator(':'),
		fixedDigits{2, "minute"}, separator(':'),
		fixedDigits{2, "second"},
	); d != nil {
		return d
	}

	if t.c.peek(0) != '.' {
		return nil
	}
	dot := t.c.location()
	t.c.advance()
	if !is(&isDigit, t.c.peek(0)) {
		return t.fail(MalformedDateTime, dot, 1, "fractional seconds need at least one digit")
	}
	for is(&isDigit, t.c.peek(0)) {
		t.c.advance()
	}
	return nil
}

// lexOffset reads Z, z or [+-]HH:MM; it reports whether one was present
func (t *Tokenizer) lexOffset() (bool, *Diagnostic) {
	switch t.c.peek(0) {
	case 'Z', 'z':
		t.c.advance()
		return true, nil
	case '+', '-':
		t.c.advance()
		return true, t.expectSequence(
			fixedDigits{2, "offset hour"}, separator(':'),
			fixedDigits{2, "offset minute"},
		)
	}
	return false, nil
}

// finishDateTime rejects date-times glued to further characters, like
// 2024-01-011 or 07:32:00Z (a local time cannot carry an offset)
func (t *Tokenizer) finishDateTime(kind TokenKind, start Position) (Token, *Diagnostic) {
	if r := t.c.peek(0); is(&isBareKeyChar, r) || r == ':' || r == '.' || r == '+' {
		return Token{}, t.fail(MalformedDateTime, t.c.location(), 1, "unexpected %q after %s", r, kindPhrase(kind))
	}
	return t.emit(kind, start), nil
}

func kindPhrase(kind TokenKind) string {
	switch kind {
	case LocalDate:
		return "local date"
	case LocalTime:
		return "local time"
	case LocalDateTime:
		return "local date-time"
	default:
		return "offset date-time"
	}
}

// shapePart is one element of a fixed date-time layout
type shapePart interface {
	expect(t *Tokenizer) *Diagnostic
}

type fixedDigits struct {
	count int
	name  string
}

func (f fixedDigits) expect(t *Tokenizer) *Diagnostic {
	for i := 0; i < f.count; i++ {
		if !is(&isDigit, t.c.peek(0)) {
			return t.fail(MalformedDateTime, t.c.location(), 1, "%s needs %d digits", f.name, f.count)
		}
		t.c.advance()
	}
	return nil
}

type separator byte

func (s separator) expect(t *Tokenizer) *Diagnostic {
	if t.c.peekByte(0) != byte(s) {
		return t.fail(MalformedDateTime, t.c.location(), 1, "expected '%c'", byte(s))
	}
	t.c.advance()
	return nil
}

func (t *Tokenizer) expectSequence(parts ...shapePart) *Diagnostic {
	for _, p := range parts {
		if d := p.expect(t); d != nil {
			return d
		}
	}
	return nil
}
