package lexer

import (
	"bytes"
	"fmt"
)

// TokenKind represents the kind of a TOML token
type TokenKind int

const (
	// Structural tokens
	LeftBracket  TokenKind = iota // [
	RightBracket                  // ]
	LeftBrace                     // {
	RightBrace                    // }
	Comma                         // ,
	Dot                           // .
	Equals                        // =

	// Trivia
	Whitespace // run of spaces and tabs
	Newline    // \n or \r\n
	Comment    // # through end of line

	// Keys
	BareKey // [A-Za-z0-9_-]+ in key position

	// Strings
	BasicString            // "..."
	LiteralString          // '...'
	MultilineBasicString   // """..."""
	MultilineLiteralString // '''...'''

	// Scalars
	Integer        // 42, -17, 0xDEAD_BEEF, 0o755, 0b1101
	Float          // 3.14, 6e-23, inf, -nan
	Boolean        // true, false
	OffsetDateTime // 1979-05-27T07:32:00Z
	LocalDateTime  // 1979-05-27T07:32:00
	LocalDate      // 1979-05-27
	LocalTime      // 07:32:00

	EndOfInput
)

// Pre-computed token name lookup
var tokenNames = [...]string{
	LeftBracket:            "LeftBracket",
	RightBracket:           "RightBracket",
	LeftBrace:              "LeftBrace",
	RightBrace:             "RightBrace",
	Comma:                  "Comma",
	Dot:                    "Dot",
	Equals:                 "Equals",
	Whitespace:             "Whitespace",
	Newline:                "Newline",
	Comment:                "Comment",
	BareKey:                "BareKey",
	BasicString:            "BasicString",
	LiteralString:          "LiteralString",
	MultilineBasicString:   "MultilineBasicString",
	MultilineLiteralString: "MultilineLiteralString",
	Integer:                "Integer",
	Float:                  "Float",
	Boolean:                "Boolean",
	OffsetDateTime:         "OffsetDateTime",
	LocalDateTime:          "LocalDateTime",
	LocalDate:              "LocalDate",
	LocalTime:              "LocalTime",
	EndOfInput:             "EndOfInput",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenNames) {
		return tokenNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// HasText reports whether tokens of this kind carry a text slice.
// Punctuation, whitespace, newlines and end of input are fully described
// by their kind and span.
func (k TokenKind) HasText() bool {
	switch k {
	case LeftBracket, RightBracket, LeftBrace, RightBrace, Comma, Dot, Equals,
		Whitespace, Newline, EndOfInput:
		return false
	}
	return k >= LeftBracket && k < EndOfInput
}

// IsString reports whether the kind is one of the four string forms
func (k TokenKind) IsString() bool {
	return k >= BasicString && k <= MultilineLiteralString
}

// IsTrivia reports whether the kind carries no meaning for a parser
func (k TokenKind) IsTrivia() bool {
	return k == Whitespace || k == Newline || k == Comment
}

// TokenKinds returns every token kind in declaration order
func TokenKinds() []TokenKind {
	kinds := make([]TokenKind, 0, len(tokenNames))
	for i := range tokenNames {
		kinds = append(kinds, TokenKind(i))
	}
	return kinds
}

// ParseTokenKind returns the kind whose String() is name
func ParseTokenKind(name string) (TokenKind, bool) {
	for i, n := range tokenNames {
		if n == name {
			return TokenKind(i), true
		}
	}
	return 0, false
}

// Position represents a position in the source
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in Unicode scalar values
	Offset int // 0-based byte offset
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexeme of the source.
//
// Text borrows from the buffer given to New: it is never copied, and its
// capacity is capped so appending to it cannot clobber the source. The
// buffer must stay alive and unmodified for as long as any Token is used.
type Token struct {
	Kind     TokenKind
	Text     []byte // nil unless Kind.HasText()
	Offset   int    // byte offset of the first byte
	Length   int    // byte length of the lexeme
	Position Position
}

// End returns the byte offset one past the lexeme
func (t Token) End() int {
	return t.Offset + t.Length
}

// String returns the token text as a string (for testing and debugging)
func (t Token) String() string {
	return string(t.Text)
}

// Content returns the raw body of a string token: the delimiters are
// removed and, for multi-line strings, so is a newline immediately after
// the opening delimiter. Escapes and line continuations are left as written.
// Non-string tokens return their Text unchanged.
func (t Token) Content() []byte {
	switch t.Kind {
	case BasicString, LiteralString:
		if len(t.Text) < 2 {
			return nil
		}
		return t.Text[1 : len(t.Text)-1]
	case MultilineBasicString, MultilineLiteralString:
		if len(t.Text) < 6 {
			return nil
		}
		body := t.Text[3 : len(t.Text)-3]
		if bytes.HasPrefix(body, []byte("\r\n")) {
			return body[2:]
		}
		if bytes.HasPrefix(body, []byte("\n")) {
			return body[1:]
		}
		return body
	}
	return t.Text
}
