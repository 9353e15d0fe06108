package diag

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// excerpt is one source line with a marked byte span
type excerpt struct {
	loc  Location
	line []byte
	from int // span start, relative to the line
	to   int // span end (exclusive), relative to the line
}

// newExcerpt marks [offset, offset+length) on the line holding offset.
// The span is clamped to the line and always marks at least one cell.
func newExcerpt(source []byte, loc Location, length int) excerpt {
	line := loc.text(source)
	from := min(loc.Offset-loc.LineStart, len(line))
	to := min(from+max(length, 0), len(line))
	return excerpt{loc: loc, line: line, from: from, to: to}
}

// source renders the line with unprintable characters replaced
func (e excerpt) source() string {
	var b strings.Builder
	for i := 0; i < len(e.line); {
		r, size := utf8.DecodeRune(e.line[i:])
		b.WriteRune(printable(r))
		i += size
	}
	return b.String()
}

// marker renders the padding and marks that sit under the span. The span
// start gets head, the rest of it tail.
func (e excerpt) marker(head, tail rune) (pad, marks string) {
	var p strings.Builder
	for i := 0; i < e.from; {
		r, size := utf8.DecodeRune(e.line[i:])
		if r == '\t' {
			p.WriteByte('\t')
		} else {
			p.WriteString(strings.Repeat(" ", cells(printable(r))))
		}
		i += size
	}

	n := 0
	for i := e.from; i < e.to; {
		r, size := utf8.DecodeRune(e.line[i:])
		if r == '\t' {
			n++
		} else {
			n += cells(printable(r))
		}
		i += size
	}

	var m strings.Builder
	m.WriteRune(head)
	for i := 1; i < n; i++ {
		m.WriteRune(tail)
	}
	return p.String(), m.String()
}

// gutterWidth returns the width of the line-number column
func gutterWidth(line int) int {
	return max(2, len(fmt.Sprint(line)))
}

// printable maps characters that would garble a terminal to U+FFFD
func printable(r rune) rune {
	if r == utf8.RuneError || (r < 0x20 && r != '\t') || r == 0x7F {
		return utf8.RuneError
	}
	return r
}

// cells returns how many terminal columns r occupies
func cells(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}
