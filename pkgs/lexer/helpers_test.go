package lexer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// tokenExpectation represents an expected token for testing
type tokenExpectation struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

// tokenize drains a tokenizer over input
func tokenize(t *testing.T, input string, opts ...Option) ([]Token, *Diagnostic) {
	t.Helper()

	tz, err := New([]byte(input), opts...)
	require.NoError(t, err)

	tokens, err := tz.Tokens()
	if err != nil {
		d, ok := err.(*Diagnostic)
		require.True(t, ok, "expected *Diagnostic, got %T", err)
		return tokens, d
	}
	return tokens, nil
}

// assertTokens compares actual tokens with expected, providing clear error messages
func assertTokens(t *testing.T, name string, input string, expected []tokenExpectation) {
	t.Helper()

	tokens, d := tokenize(t, input)
	if d != nil {
		t.Fatalf("%s: unexpected diagnostic: %v", name, d)
	}

	var actual []tokenExpectation
	for _, token := range tokens {
		actual = append(actual, tokenExpectation{
			Kind:   token.Kind,
			Text:   token.String(),
			Line:   token.Position.Line,
			Column: token.Position.Column,
		})
	}

	if diff := cmp.Diff(expected, actual); diff != "" {
		t.Errorf("%s: token mismatch (-expected +actual):\n%s", name, diff)
	}
}

// significant drops trivia so tests can focus on the tokens a parser sees
func significant(tokens []Token) []Token {
	var out []Token
	for _, tok := range tokens {
		if !tok.Kind.IsTrivia() {
			out = append(out, tok)
		}
	}
	return out
}

func kindsOf(tokens []Token) []TokenKind {
	kinds := make([]TokenKind, len(tokens))
	for i, tok := range tokens {
		kinds[i] = tok.Kind
	}
	return kinds
}

// valuePrefix puts the scanned text in value position
const valuePrefix = "v = "

// valueResult is the outcome of scanning one value; offsets are relative
// to the start of the value
type valueResult struct {
	Kind   TokenKind
	Text   string
	Failed bool
	Err    ErrorKind
	At     int
	Length int
}

func scanValue(t *testing.T, value string) valueResult {
	t.Helper()

	tz, err := New([]byte(valuePrefix + value + "\n"))
	require.NoError(t, err)

	for {
		tok, err := tz.Next()
		if err != nil {
			d, ok := err.(*Diagnostic)
			require.True(t, ok, "expected *Diagnostic, got %T", err)
			return valueResult{Failed: true, Err: d.Kind, At: d.Offset - len(valuePrefix), Length: d.Length}
		}
		require.NotEqual(t, EndOfInput, tok.Kind, "no value token in %q", value)
		if tok.Offset >= len(valuePrefix) {
			return valueResult{Kind: tok.Kind, Text: string(tok.Text)}
		}
	}
}

func scanned(kind TokenKind, text string) valueResult {
	return valueResult{Kind: kind, Text: text}
}

func failed(kind ErrorKind, at, length int) valueResult {
	return valueResult{Failed: true, Err: kind, At: at, Length: length}
}

type valueCase struct {
	name  string
	input string
	want  valueResult
}

func runValueCases(t *testing.T, cases []valueCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := scanValue(t, tt.input)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("scanning %q (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
