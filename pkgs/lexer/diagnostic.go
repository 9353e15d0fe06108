package lexer

import "fmt"

// ErrorKind classifies a lexical error
type ErrorKind int

const (
	UnterminatedString ErrorKind = iota
	InvalidEscapeSequence
	InvalidControlCharacter
	MalformedNumber
	MalformedDateTime
	UnexpectedCharacter
	InvalidUtf8
)

var errorKindNames = [...]string{
	UnterminatedString:      "UnterminatedString",
	InvalidEscapeSequence:   "InvalidEscapeSequence",
	InvalidControlCharacter: "InvalidControlCharacter",
	MalformedNumber:         "MalformedNumber",
	MalformedDateTime:       "MalformedDateTime",
	UnexpectedCharacter:     "UnexpectedCharacter",
	InvalidUtf8:             "InvalidUtf8",
}

var errorKindPhrases = [...]string{
	UnterminatedString:      "unterminated string",
	InvalidEscapeSequence:   "invalid escape sequence",
	InvalidControlCharacter: "invalid control character",
	MalformedNumber:         "malformed number",
	MalformedDateTime:       "malformed date-time",
	UnexpectedCharacter:     "unexpected character",
	InvalidUtf8:             "invalid UTF-8",
}

func (k ErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Describe returns a short lower-case phrase for messages
func (k ErrorKind) Describe() string {
	if int(k) >= 0 && int(k) < len(errorKindPhrases) {
		return errorKindPhrases[k]
	}
	return "lexical error"
}

// Diagnostic describes a lexical error. Offset is the first offending byte
// and Length (at least 1) the span that could not be tokenized.
type Diagnostic struct {
	Kind     ErrorKind
	Offset   int
	Length   int
	Context  string // optional detail, empty when the kind says it all
	Position Position
}

// Error implements the error interface
func (d *Diagnostic) Error() string {
	if d.Context != "" {
		return fmt.Sprintf("%s: %s: %s", d.Position, d.Kind.Describe(), d.Context)
	}
	return fmt.Sprintf("%s: %s", d.Position, d.Kind.Describe())
}

// End returns the byte offset one past the reported span
func (d *Diagnostic) End() int {
	return d.Offset + d.Length
}
