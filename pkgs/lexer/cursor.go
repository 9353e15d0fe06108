package lexer

import (
	"unicode/utf8"

	"github.com/aledsdavies/toto/core/invariant"
)

// Sentinel runes returned by the cursor instead of decoded characters
const (
	eof     rune = -1 // end of input
	badRune rune = -2 // invalid UTF-8 at this offset
)

// maxLookahead bounds peek; the classifier needs three scalars at most
const maxLookahead = 3

// cursor walks the source one Unicode scalar value at a time.
// It never panics on out-of-range access: peeking or advancing past the
// end yields eof, and an invalid UTF-8 sequence yields badRune without
// moving.
type cursor struct {
	src    []byte
	pos    int
	line   int
	column int
	prev   Position // location of the last consumed scalar
}

func newCursor(src []byte) cursor {
	return cursor{src: src, line: 1, column: 1}
}

// decodeAt decodes the scalar at byte offset off, strictly
func (c *cursor) decodeAt(off int) (rune, int) {
	if off >= len(c.src) {
		return eof, 0
	}
	b := c.src[off]
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, size := utf8.DecodeRune(c.src[off:])
	if r == utf8.RuneError && size == 1 {
		return badRune, 1
	}
	return r, size
}

// peek returns the scalar n positions ahead without consuming anything.
// A bad sequence on the way hides everything after it.
func (c *cursor) peek(n int) rune {
	invariant.InRange(n, 0, maxLookahead, "lookahead")

	off := c.pos
	for i := 0; ; i++ {
		r, size := c.decodeAt(off)
		if i == n || r == eof || r == badRune {
			return r
		}
		off += size
	}
}

// peekByte returns the raw byte n bytes ahead, or 0 past the end.
// Only used for ASCII shape checks where a multi-byte rune can never match.
func (c *cursor) peekByte(n int) byte {
	if c.pos+n >= len(c.src) {
		return 0
	}
	return c.src[c.pos+n]
}

// advance consumes one scalar and returns it
func (c *cursor) advance() rune {
	r, size := c.decodeAt(c.pos)
	if r == eof || r == badRune {
		return r
	}

	c.prev = c.location()
	c.pos += size
	if r == '\n' {
		c.line++
		c.column = 1
	} else {
		c.column++
	}
	return r
}

// advanceN consumes n scalars
func (c *cursor) advanceN(n int) {
	for i := 0; i < n; i++ {
		c.advance()
	}
}

// position returns the current byte offset
func (c *cursor) position() int {
	return c.pos
}

// remaining returns the unconsumed part of the source
func (c *cursor) remaining() []byte {
	return c.src[c.pos:]
}

// location returns the current line, column and offset
func (c *cursor) location() Position {
	return Position{Line: c.line, Column: c.column, Offset: c.pos}
}
