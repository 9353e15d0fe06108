package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"

	"github.com/aledsdavies/toto/pkgs/errors"
	"github.com/aledsdavies/toto/pkgs/lexer"
)

// tokenRecord is the serialized shape of a token
type tokenRecord struct {
	Kind   string `json:"kind" yaml:"kind" cbor:"kind"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty" cbor:"text,omitempty"`
	Offset int    `json:"offset" yaml:"offset" cbor:"offset"`
	Length int    `json:"length" yaml:"length" cbor:"length"`
	Line   int    `json:"line" yaml:"line" cbor:"line"`
	Column int    `json:"column" yaml:"column" cbor:"column"`
}

func newTokenRecord(tok lexer.Token) tokenRecord {
	return tokenRecord{
		Kind:   tok.Kind.String(),
		Text:   string(tok.Text),
		Offset: tok.Offset,
		Length: tok.Length,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
	}
}

// encoder writes a batch of tokens
type encoder func(w io.Writer, records []tokenRecord) error

var formats = []string{"text", "json", "yaml", "cbor"}

func newEncoder(format string) (encoder, error) {
	switch format {
	case "text":
		return encodeText, nil
	case "json":
		return encodeJSON, nil
	case "yaml":
		return encodeYAML, nil
	case "cbor":
		return encodeCBOR, nil
	}
	return nil, errors.NewUnsupportedFormatError(format, formats)
}

// encodeText prints one token per line:
//
//	1:1     BareKey                 "key"
func encodeText(w io.Writer, records []tokenRecord) error {
	for _, r := range records {
		text := ""
		if r.Text != "" {
			text = strconv.Quote(r.Text)
		}
		pos := fmt.Sprintf("%d:%d", r.Line, r.Column)
		if _, err := fmt.Fprintf(w, "%-8s%-24s%s\n", pos, r.Kind, text); err != nil {
			return err
		}
	}
	return nil
}

func encodeJSON(w io.Writer, records []tokenRecord) error {
	if records == nil {
		records = []tokenRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

func encodeYAML(w io.Writer, records []tokenRecord) error {
	if records == nil {
		records = []tokenRecord{}
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(records); err != nil {
		return err
	}
	return enc.Close()
}

// encodeCBOR uses canonical encoding so identical input gives identical bytes
func encodeCBOR(w io.Writer, records []tokenRecord) error {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return err
	}
	if records == nil {
		records = []tokenRecord{}
	}
	return em.NewEncoder(w).Encode(records)
}
