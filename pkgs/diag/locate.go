package diag

import (
	"bytes"
	"unicode/utf8"

	"github.com/aledsdavies/toto/pkgs/errors"
)

// Location is a byte offset resolved against its source line
type Location struct {
	Line      int // 1-based
	Column    int // 1-based, in Unicode scalar values
	Offset    int
	LineStart int // offset of the first byte of the line
	LineEnd   int // offset of the line terminator, or len(source)
}

// Locate resolves offset to a line and column. An offset equal to
// len(source) is valid and names the end of input.
func Locate(source []byte, offset int) (Location, error) {
	if offset < 0 || offset > len(source) {
		return Location{}, errors.NewInvalidOffsetError(offset, len(source))
	}

	start := bytes.LastIndexByte(source[:offset], '\n') + 1
	end := len(source)
	if i := bytes.IndexByte(source[start:], '\n'); i >= 0 {
		end = start + i
		if end > start && source[end-1] == '\r' {
			end--
		}
	}

	return Location{
		Line:      bytes.Count(source[:start], []byte{'\n'}) + 1,
		Column:    utf8.RuneCount(source[start:offset]) + 1,
		Offset:    offset,
		LineStart: start,
		LineEnd:   end,
	}, nil
}

// text returns the line without its terminator
func (l Location) text(source []byte) []byte {
	return source[l.LineStart:l.LineEnd]
}
