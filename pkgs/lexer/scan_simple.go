package lexer

import (
	"bytes"
	"unicode/utf8"
)

const byteOrderMark rune = 0xFEFF

// lexByteOrderMark reads a leading BOM as whitespace so spans still cover
// every byte of the source
func (t *Tokenizer) lexByteOrderMark(start Position) Token {
	t.c.advance()
	return t.emit(Whitespace, start)
}

// lexWhitespace reads a run of spaces and tabs
func (t *Tokenizer) lexWhitespace(start Position) Token {
	for is(&isSpace, t.c.peek(0)) {
		t.c.advance()
	}
	return t.emit(Whitespace, start)
}

// lexNewline reads \n or \r\n as one token
func (t *Tokenizer) lexNewline(start Position) Token {
	if t.c.peek(0) == '\r' {
		t.c.advance()
	}
	t.c.advance()
	return t.emit(Newline, start)
}

// lexPunctuation reads one of [ ] { } , . =
func (t *Tokenizer) lexPunctuation(start Position) Token {
	r := t.c.advance()
	return t.emit(punctuationFor[r], start)
}

// lexComment reads from # up to, but not including, the line ending
func (t *Tokenizer) lexComment(start Position) (Token, *Diagnostic) {
	t.c.advance() // consume '#'

	for {
		r := t.c.peek(0)
		switch {
		case r == eof || r == '\n':
			return t.emit(Comment, start), nil
		case r == '\r':
			if t.c.peek(1) == '\n' {
				return t.emit(Comment, start), nil
			}
			return Token{}, t.fail(InvalidControlCharacter, t.c.location(), 1,
				"carriage return must be followed by a line feed")
		}
		if d := t.checkContent(r, "comment"); d != nil {
			return Token{}, d
		}
		t.c.advance()
	}
}

// lexBareKey reads [A-Za-z0-9_-]+
func (t *Tokenizer) lexBareKey(start Position) Token {
	for is(&isBareKeyChar, t.c.peek(0)) {
		t.c.advance()
	}
	return t.emit(BareKey, start)
}

// lexValueWord reads a word in value position: true, false, inf or nan
func (t *Tokenizer) lexValueWord(start Position) (Token, *Diagnostic) {
	for is(&isBareKeyChar, t.c.peek(0)) {
		t.c.advance()
	}

	word := t.src[start.Offset:t.c.position()]
	switch string(word) {
	case "true", "false":
		return t.emit(Boolean, start), nil
	case "inf", "nan":
		return t.emit(Float, start), nil
	}
	return Token{}, t.fail(UnexpectedCharacter, start, len(word),
		"%q is not a valid value (strings must be quoted)", word)
}

// matchWord consumes word if the remaining input starts with it
func (t *Tokenizer) matchWord(word string) bool {
	if !bytes.HasPrefix(t.c.remaining(), []byte(word)) {
		return false
	}
	t.c.advanceN(len(word))
	return true
}

// invalidUTF8 reports the first byte of a bad sequence
func (t *Tokenizer) invalidUTF8() *Diagnostic {
	at := t.c.location()
	return t.fail(InvalidUtf8, at, 1, "byte 0x%02X does not start a valid UTF-8 sequence", t.src[at.Offset])
}

// unexpected reports a character no scanner accepts in the current mode
func (t *Tokenizer) unexpected() *Diagnostic {
	at := t.c.location()
	r, size := utf8.DecodeRune(t.src[at.Offset:])
	switch {
	case r == '\r':
		return t.fail(UnexpectedCharacter, at, size, "carriage return must be followed by a line feed")
	case t.modes.current == keyMode:
		return t.fail(UnexpectedCharacter, at, size, "%q cannot start a key", r)
	default:
		return t.fail(UnexpectedCharacter, at, size, "%q cannot start a value", r)
	}
}

// checkContent rejects bad UTF-8 and control characters inside strings
// and comments; tab is always allowed
func (t *Tokenizer) checkContent(r rune, where string) *Diagnostic {
	switch {
	case r == badRune:
		return t.invalidUTF8()
	case isControl(r):
		return t.fail(InvalidControlCharacter, t.c.location(), 1,
			"control character U+%04X is not allowed in a %s", r, where)
	}
	return nil
}
