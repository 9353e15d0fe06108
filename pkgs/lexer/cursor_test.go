package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorPeek(t *testing.T) {
	c := newCursor([]byte("aé日"))

	assert.Equal(t, 'a', c.peek(0))
	assert.Equal(t, 'é', c.peek(1))
	assert.Equal(t, '日', c.peek(2))
	assert.Equal(t, eof, c.peek(3))
	assert.Equal(t, 0, c.position(), "peek must not consume")
}

func TestCursorPeekOutOfRangePanics(t *testing.T) {
	c := newCursor([]byte("abc"))
	assert.Panics(t, func() { c.peek(maxLookahead + 1) })
	assert.Panics(t, func() { c.peek(-1) })
}

func TestCursorAdvanceTracksPosition(t *testing.T) {
	c := newCursor([]byte("aé\nb"))

	assert.Equal(t, 'a', c.advance())
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, c.location())

	assert.Equal(t, 'é', c.advance())
	assert.Equal(t, Position{Line: 1, Column: 3, Offset: 3}, c.location())
	assert.Equal(t, Position{Line: 1, Column: 2, Offset: 1}, c.prev)

	assert.Equal(t, '\n', c.advance())
	assert.Equal(t, Position{Line: 2, Column: 1, Offset: 4}, c.location())

	assert.Equal(t, 'b', c.advance())
	assert.Equal(t, eof, c.advance())
	assert.Equal(t, eof, c.advance())
	assert.Equal(t, Position{Line: 2, Column: 2, Offset: 5}, c.location())
	assert.Empty(t, c.remaining())
}

func TestCursorInvalidUTF8(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"stray continuation byte", "\x80"},
		{"truncated sequence", "\xe6\x97"},
		{"overlong encoding", "\xc0\xaf"},
		{"surrogate half", "\xed\xa0\x80"},
		{"beyond U+10FFFF", "\xf4\x90\x80\x80"},
		{"invalid lead byte", "\xff"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor([]byte("x" + tt.input))
			require.Equal(t, 'x', c.advance())

			assert.Equal(t, badRune, c.peek(0))
			assert.Equal(t, badRune, c.advance(), "advance reports the bad sequence")
			assert.Equal(t, 1, c.position(), "advance must not move past a bad sequence")
		})
	}
}

func TestCursorBadRuneHidesLookahead(t *testing.T) {
	c := newCursor([]byte("a\xffbc"))
	assert.Equal(t, badRune, c.peek(1))
	assert.Equal(t, badRune, c.peek(2))
}

func TestCursorPeekByte(t *testing.T) {
	c := newCursor([]byte("12:"))
	assert.Equal(t, byte('1'), c.peekByte(0))
	assert.Equal(t, byte(':'), c.peekByte(2))
	assert.Equal(t, byte(0), c.peekByte(3))
	assert.Equal(t, byte(0), c.peekByte(100))
}

func TestCursorAdvanceN(t *testing.T) {
	c := newCursor([]byte(`"""x`))
	c.advanceN(3)
	assert.Equal(t, 3, c.position())
	assert.Equal(t, []byte("x"), c.remaining())
}
