package diag

import (
	"fmt"
	"strings"

	"github.com/aledsdavies/toto/pkgs/errors"
)

// Debug excerpts for tooling that tracks offsets itself. Each returns the
// source line framed with a gutter and a marker line:
//
//	 1 | s = "abc
//	   |     ^~~~ unclosed

// Unclosed marks a delimiter opened at start and never closed: from start
// to the end of its line
func Unclosed(source []byte, start int) (string, error) {
	loc, err := Locate(source, start)
	if err != nil {
		return "", err
	}
	ex := newExcerpt(source, loc, loc.LineEnd-start)
	return frame(ex, '^', '~', "unclosed"), nil
}

// InvalidCharacter marks the single character at pos
func InvalidCharacter(source []byte, pos int) (string, error) {
	loc, err := Locate(source, pos)
	if err != nil {
		return "", err
	}
	ex := newExcerpt(source, loc, 1)
	return frame(ex, '^', '^', "invalid character"), nil
}

// InvalidPart marks a lexeme that starts at start and went wrong at pos:
// the valid prefix is underlined and pos gets the caret. A prefix that began
// on an earlier line is underlined from the start of pos's line.
func InvalidPart(source []byte, start, pos int) (string, error) {
	if start > pos {
		return "", errors.NewInvalidOffsetError(start, len(source)).
			WithContext("pos", pos)
	}
	loc, err := Locate(source, pos)
	if err != nil {
		return "", err
	}
	if start < 0 {
		return "", errors.NewInvalidOffsetError(start, len(source))
	}

	from := max(start, loc.LineStart)
	prefix := newExcerpt(source, Location{Offset: from, LineStart: loc.LineStart, LineEnd: loc.LineEnd}, pos-from)
	prefixPad, underline := prefix.marker('~', '~')
	if pos == from {
		underline = ""
	}

	at := newExcerpt(source, loc, 1)
	_, caret := at.marker('^', '^')
	return render(at, prefixPad+underline+caret, "invalid here"), nil
}

// frame renders an excerpt with its span marked
func frame(ex excerpt, head, tail rune, label string) string {
	pad, marks := ex.marker(head, tail)
	return render(ex, pad+marks, label)
}

func render(ex excerpt, marker, label string) string {
	gw := gutterWidth(ex.loc.Line)

	var b strings.Builder
	fmt.Fprintf(&b, "%*d | %s\n", gw, ex.loc.Line, ex.source())
	fmt.Fprintf(&b, "%s | %s %s\n", strings.Repeat(" ", gw), marker, label)
	return b.String()
}
