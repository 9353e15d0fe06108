// Package lexer tokenizes TOML source text.
//
// A Tokenizer turns a UTF-8 buffer into a stream of position-tagged tokens
// without building a tree. Every byte of the input belongs to exactly one
// token, whitespace and comments included, so concatenating the token spans
// in order reproduces the source up to the first error.
//
// Lexical errors are reported as *Diagnostic values. The first diagnostic
// closes the tokenizer: every later call to Next returns it again.
//
// A Tokenizer is not safe for concurrent use. Any number of tokenizers may
// read the same source buffer at once since none of them writes to it.
package lexer

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"time"

	"github.com/aledsdavies/toto/core/invariant"
	"github.com/aledsdavies/toto/pkgs/errors"
)

type state int

const (
	stateOpen   state = iota
	stateClosed       // latched diagnostic or exhausted input
)

// Tokenizer is a pull-based TOML tokenizer over a borrowed source buffer
type Tokenizer struct {
	src      []byte
	c        cursor
	modes    modeTracker
	state    state
	latched  *Diagnostic
	released bool

	logger   *slog.Logger
	debug    bool
	observer Observer

	// Telemetry (nil when disabled)
	telemetryMode  TelemetryMode
	tokenTelemetry map[TokenKind]*TokenTelemetry
}

// New creates a tokenizer over source. The buffer is borrowed, not copied:
// it must outlive the tokenizer and every token it returns, and must not be
// modified meanwhile. An empty buffer is fine; a nil one is a usage error.
func New(source []byte, opts ...Option) (*Tokenizer, error) {
	if source == nil {
		return nil, errors.NewNullSourceError()
	}

	cfg := &config{}
	for _, opt := range opts {
		invariant.NotNil(opt, "option")
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	t := &Tokenizer{
		src:           source,
		c:             newCursor(source),
		modes:         newModeTracker(),
		logger:        cfg.logger,
		debug:         cfg.logger.Enabled(context.Background(), slog.LevelDebug),
		observer:      cfg.observer,
		telemetryMode: cfg.telemetry,
	}

	// Only allocate telemetry structures when needed
	if cfg.telemetry > TelemetryOff {
		t.tokenTelemetry = make(map[TokenKind]*TokenTelemetry)
	}

	return t, nil
}

// Next returns the next token or a lexical error, never both.
//
// After the last token it returns an EndOfInput token, and keeps returning
// EndOfInput on every further call. After a lexical error it returns that
// same *Diagnostic on every further call.
func (t *Tokenizer) Next() (Token, error) {
	invariant.Precondition(!t.released, "Next called on a closed tokenizer")

	if t.state == stateClosed {
		if t.latched != nil {
			return Token{}, t.latched
		}
		return t.endOfInput(), nil
	}

	var start time.Time
	timed := t.observer != nil || t.telemetryMode >= TelemetryTiming
	if timed {
		start = time.Now()
	}

	tok, d := t.lexToken()

	var elapsed time.Duration
	if timed {
		elapsed = time.Since(start)
	}

	if d != nil {
		t.state = stateClosed
		t.latched = d
		if t.debug {
			t.logger.Debug("diagnostic", "kind", d.Kind, "offset", d.Offset, "length", d.Length, "context", d.Context)
		}
		if t.observer != nil {
			t.observer.ObserveDiagnostic(d.Kind)
		}
		return Token{}, d
	}

	if tok.Kind == EndOfInput {
		t.state = stateClosed
	}
	t.modes.observe(tok.Kind)

	if t.debug {
		t.logger.Debug("token", "kind", tok.Kind, "offset", tok.Offset, "length", tok.Length,
			"line", tok.Position.Line, "column", tok.Position.Column, "mode", t.modes.current)
	}
	if t.telemetryMode > TelemetryOff {
		t.recordTokenTelemetry(tok.Kind, elapsed)
	}
	if t.observer != nil {
		t.observer.ObserveToken(tok.Kind, elapsed)
	}

	return tok, nil
}

// Tokens drains the tokenizer. On success the last token is EndOfInput;
// on failure it returns the tokens produced before the diagnostic.
func (t *Tokenizer) Tokens() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == EndOfInput {
			return tokens, nil
		}
	}
}

// All iterates over the remaining tokens. The sequence ends after
// EndOfInput or after yielding the diagnostic with a zero Token.
func (t *Tokenizer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := t.Next()
			if !yield(tok, err) || err != nil || tok.Kind == EndOfInput {
				return
			}
		}
	}
}

// Err returns the latched diagnostic, or nil if none has occurred
func (t *Tokenizer) Err() *Diagnostic {
	return t.latched
}

// Source returns the borrowed buffer the tokenizer reads
func (t *Tokenizer) Source() []byte {
	return t.src
}

// Close releases the tokenizer's bookkeeping. The source buffer is left
// untouched. The tokenizer must not be used afterwards.
func (t *Tokenizer) Close() {
	t.released = true
	t.src = nil
	t.c = cursor{}
	t.modes.reset()
	t.tokenTelemetry = nil
}

// lexToken performs the actual tokenization work
func (t *Tokenizer) lexToken() (Token, *Diagnostic) {
	start := t.c.location()

	if start.Offset == 0 && t.c.peek(0) == byteOrderMark {
		return t.lexByteOrderMark(start), nil
	}

	fam := classify(t.c.peek(0), t.c.peek(1), t.c.peek(2), t.modes.current)
	if t.debug {
		t.logger.Debug("classify", "family", fam, "line", start.Line, "column", start.Column, "mode", t.modes.current)
	}

	var (
		tok Token
		d   *Diagnostic
	)
	switch fam {
	case famEndOfInput:
		return t.endOfInput(), nil
	case famInvalidUTF8:
		return Token{}, t.invalidUTF8()
	case famUnexpected:
		return Token{}, t.unexpected()
	case famWhitespace:
		tok = t.lexWhitespace(start)
	case famNewline:
		tok = t.lexNewline(start)
	case famComment:
		tok, d = t.lexComment(start)
	case famPunctuation:
		tok = t.lexPunctuation(start)
	case famBasicString:
		tok, d = t.lexBasicString(start)
	case famMultilineBasicString:
		tok, d = t.lexMultilineBasicString(start)
	case famLiteralString:
		tok, d = t.lexLiteralString(start)
	case famMultilineLiteralString:
		tok, d = t.lexMultilineLiteralString(start)
	case famBareKey:
		tok = t.lexBareKey(start)
	case famValueWord:
		tok, d = t.lexValueWord(start)
	case famNumberOrDateTime:
		tok, d = t.lexNumberOrDateTime(start)
	default:
		panic(fmt.Sprintf("unhandled token family %s", fam))
	}
	if d != nil {
		return Token{}, d
	}

	invariant.Invariant(t.c.position() > start.Offset, "cursor must advance past %s at offset %d", fam, start.Offset)
	return tok, nil
}

// emit builds a token spanning from start to the cursor
func (t *Tokenizer) emit(kind TokenKind, start Position) Token {
	end := t.c.position()
	tok := Token{
		Kind:     kind,
		Offset:   start.Offset,
		Length:   end - start.Offset,
		Position: start,
	}
	if kind.HasText() {
		tok.Text = t.src[start.Offset:end:end]
	}

	invariant.Postcondition(tok.End() <= len(t.src), "token %s ends past the source", kind)
	return tok
}

func (t *Tokenizer) endOfInput() Token {
	return Token{
		Kind:     EndOfInput,
		Offset:   t.c.position(),
		Position: t.c.location(),
	}
}

// fail builds a diagnostic at the given location. The span is clamped to
// the source so it always covers at least one real byte.
func (t *Tokenizer) fail(kind ErrorKind, at Position, length int, format string, args ...interface{}) *Diagnostic {
	if at.Offset >= len(t.src) && len(t.src) > 0 {
		at = t.c.prev
	}
	if at.Offset+length > len(t.src) {
		length = len(t.src) - at.Offset
	}
	if length < 1 {
		length = 1
	}

	return &Diagnostic{
		Kind:     kind,
		Offset:   at.Offset,
		Length:   length,
		Context:  fmt.Sprintf(format, args...),
		Position: at,
	}
}
