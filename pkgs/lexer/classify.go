package lexer

// family is the scanner routine chosen for the next token
type family int

const (
	famEndOfInput family = iota
	famInvalidUTF8
	famUnexpected
	famWhitespace
	famNewline
	famComment
	famPunctuation
	famBasicString
	famMultilineBasicString
	famLiteralString
	famMultilineLiteralString
	famBareKey
	famValueWord
	famNumberOrDateTime
)

var familyNames = [...]string{
	famEndOfInput:             "end-of-input",
	famInvalidUTF8:            "invalid-utf8",
	famUnexpected:             "unexpected",
	famWhitespace:             "whitespace",
	famNewline:                "newline",
	famComment:                "comment",
	famPunctuation:            "punctuation",
	famBasicString:            "basic-string",
	famMultilineBasicString:   "multiline-basic-string",
	famLiteralString:          "literal-string",
	famMultilineLiteralString: "multiline-literal-string",
	famBareKey:                "bare-key",
	famValueWord:              "value-word",
	famNumberOrDateTime:       "number-or-datetime",
}

func (f family) String() string {
	if int(f) >= 0 && int(f) < len(familyNames) {
		return familyNames[f]
	}
	return "unknown"
}

// classify picks the scanner for the token starting with c0, given the
// two scalars after it and the lexical mode. It is pure.
func classify(c0, c1, c2 rune, m mode) family {
	switch {
	case c0 == eof:
		return famEndOfInput
	case c0 == badRune:
		return famInvalidUTF8
	case c0 == ' ' || c0 == '\t':
		return famWhitespace
	case c0 == '\n':
		return famNewline
	case c0 == '\r':
		if c1 == '\n' {
			return famNewline
		}
		return famUnexpected
	case c0 == '#':
		return famComment
	case c0 == '"':
		if c1 == '"' && c2 == '"' {
			return famMultilineBasicString
		}
		return famBasicString
	case c0 == '\'':
		if c1 == '\'' && c2 == '\'' {
			return famMultilineLiteralString
		}
		return famLiteralString
	case is(&isPunctuation, c0):
		return famPunctuation
	}

	if m == keyMode {
		if is(&isBareKeyChar, c0) {
			return famBareKey
		}
		return famUnexpected
	}

	switch {
	case is(&isDigit, c0), c0 == '+', c0 == '-':
		return famNumberOrDateTime
	case is(&isLetter, c0):
		return famValueWord
	}
	return famUnexpected
}
