// Package diag renders lexical diagnostics against their source text.
package diag

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/aledsdavies/toto/pkgs/lexer"
)

// Explain renders the line holding the diagnostic, a caret line under the
// offending span and the error kind with its context:
//
//	n = 0x_1F
//	      ^
//	MalformedNumber: digit separator must sit between two digits
//
// The diagnostic must come from a tokenizer over the same source. If its
// offset lies outside source, only d.Error() is returned.
func Explain(d *lexer.Diagnostic, source []byte) string {
	loc, err := Locate(source, d.Offset)
	if err != nil {
		return d.Error()
	}

	ex := newExcerpt(source, loc, d.Length)
	pad, marks := ex.marker('^', '^')

	var b strings.Builder
	b.WriteString(ex.source())
	b.WriteByte('\n')
	b.WriteString(pad)
	b.WriteString(marks)
	b.WriteByte('\n')
	b.WriteString(d.Kind.String())
	if d.Context != "" {
		b.WriteString(": ")
		b.WriteString(d.Context)
	}
	return b.String()
}

// Formatter renders diagnostics in compiler style
type Formatter struct {
	Source   []byte
	Filename string // shown in the location line; empty for stdin
	Compact  bool   // one header line instead of the framed layout
	Color    bool
}

// Format renders d. The compact form is
//
//	config.toml:1:7: malformed number: digit separator must sit between two digits
//	 1 | n = 0x_1F
//	   |       ^
//
// and the detailed form frames the same excerpt:
//
//	Error: malformed number
//	  --> config.toml:1:7
//	   |
//	 1 | n = 0x_1F
//	   |       ^ digit separator must sit between two digits
//	   |
//	   = Suggestion: underscores must sit between two digits
func (f Formatter) Format(d *lexer.Diagnostic) string {
	p := newPalette(f.Color)

	loc, err := Locate(f.Source, d.Offset)
	if err != nil {
		return p.err(d.Error())
	}
	ex := newExcerpt(f.Source, loc, d.Length)
	pad, marks := ex.marker('^', '^')

	gw := gutterWidth(loc.Line)
	blank := p.gutter(strings.Repeat(" ", gw+1) + "|")
	numbered := p.gutter(fmt.Sprintf("%*d |", gw, loc.Line))

	var b strings.Builder
	if f.Compact {
		header := fmt.Sprintf("%s: %s", f.location(d), d.Kind.Describe())
		if d.Context != "" {
			header += ": " + d.Context
		}
		fmt.Fprintf(&b, "%s\n", p.err(header))
		fmt.Fprintf(&b, "%s %s\n", numbered, ex.source())
		fmt.Fprintf(&b, "%s %s%s\n", blank, pad, p.caret(marks))
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n", p.err("Error:"), p.bold(d.Kind.Describe()))
	fmt.Fprintf(&b, "%s %s\n", p.gutter(strings.Repeat(" ", gw)+"-->"), f.location(d))
	fmt.Fprintf(&b, "%s\n", blank)
	fmt.Fprintf(&b, "%s %s\n", numbered, ex.source())
	caretLine := pad + p.caret(marks)
	if d.Context != "" {
		caretLine += " " + p.caret(d.Context)
	}
	fmt.Fprintf(&b, "%s %s\n", blank, caretLine)

	if hint, ok := suggestions[d.Kind]; ok {
		fmt.Fprintf(&b, "%s\n", blank)
		fmt.Fprintf(&b, "%s = %s %s\n", strings.Repeat(" ", gw), p.bold("Suggestion:"), hint)
	}
	return b.String()
}

func (f Formatter) location(d *lexer.Diagnostic) string {
	if f.Filename == "" {
		return d.Position.String()
	}
	return f.Filename + ":" + d.Position.String()
}

// suggestions are generic fixes per error kind
var suggestions = map[lexer.ErrorKind]string{
	lexer.UnterminatedString:      "close the string on the same line, or use \"\"\" for text spanning lines",
	lexer.InvalidEscapeSequence:   `valid escapes are \b \t \n \f \r \" \\ \uXXXX and \UXXXXXXXX`,
	lexer.InvalidControlCharacter: "write control characters as escapes such as \\u0001",
	lexer.MalformedNumber:         "underscores must sit between two digits and leading zeros are not allowed",
	lexer.MalformedDateTime:       "use RFC 3339 shapes like 1979-05-27T07:32:00Z",
	lexer.UnexpectedCharacter:     "quote keys and string values that contain other characters",
	lexer.InvalidUtf8:             "save the file as UTF-8",
}

// palette applies colors when enabled
type palette struct {
	err, bold, gutter, caret func(a ...interface{}) string
}

func newPalette(enabled bool) palette {
	if !enabled {
		plain := func(a ...interface{}) string { return fmt.Sprint(a...) }
		return palette{err: plain, bold: plain, gutter: plain, caret: plain}
	}

	mk := func(attrs ...color.Attribute) func(a ...interface{}) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintFunc()
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		bold:   mk(color.Bold),
		gutter: mk(color.FgBlue, color.Bold),
		caret:  mk(color.FgRed),
	}
}
