package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type result struct {
	code int
	out  string
	err  string
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var out, errOut bytes.Buffer
	code := run(context.Background(), args, streams{
		in:  strings.NewReader(stdin),
		out: &out,
		err: &errOut,
	})
	return result{code: code, out: out.String(), err: errOut.String()}
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func row(pos, kind, text string) string {
	return fmt.Sprintf("%-8s%-24s%s", pos, kind, text)
}

func TestTextOutput(t *testing.T) {
	path := writeFile(t, "key = 1 # one\n")

	res := runCLI(t, "", path, "--no-trivia")
	require.Equal(t, ExitSuccess, res.code, res.err)

	want := []string{
		row("1:1", "BareKey", `"key"`),
		row("1:5", "Equals", ""),
		row("1:7", "Integer", `"1"`),
		row("1:9", "Comment", `"# one"`),
		row("2:1", "EndOfInput", ""),
	}
	got := strings.Split(strings.TrimSuffix(res.out, "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, res.err)
}

func TestStdinInput(t *testing.T) {
	for _, args := range [][]string{{"-f", "-"}, {}} {
		res := runCLI(t, "a = true", append(args, "--only", "Boolean")...)
		require.Equal(t, ExitSuccess, res.code, res.err)
		assert.Equal(t, row("1:5", "Boolean", `"true"`)+"\n", res.out)
	}
}

func TestStructuredFormats(t *testing.T) {
	want := []tokenRecord{
		{Kind: "BareKey", Text: "a", Offset: 0, Length: 1, Line: 1, Column: 1},
		{Kind: "Equals", Offset: 2, Length: 1, Line: 1, Column: 3},
		{Kind: "LocalDate", Text: "2024-02-30", Offset: 4, Length: 10, Line: 1, Column: 5},
		{Kind: "EndOfInput", Offset: 14, Line: 1, Column: 15},
	}

	decoders := map[string]func([]byte, any) error{
		"json": json.Unmarshal,
		"yaml": yaml.Unmarshal,
		"cbor": cbor.Unmarshal,
	}

	for format, decode := range decoders {
		t.Run(format, func(t *testing.T) {
			res := runCLI(t, "a = 2024-02-30", "-o", format, "--no-trivia")
			require.Equal(t, ExitSuccess, res.code, res.err)

			var got []tokenRecord
			require.NoError(t, decode([]byte(res.out), &got))
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("%s records mismatch (-want +got):\n%s", format, diff)
			}
		})
	}
}

func TestCBORIsDeterministic(t *testing.T) {
	first := runCLI(t, "a = [1, 'two']", "-o", "cbor")
	second := runCLI(t, "a = [1, 'two']", "-o", "cbor")
	require.Equal(t, ExitSuccess, first.code)
	assert.Equal(t, first.out, second.out)
}

func TestLexicalError(t *testing.T) {
	res := runCLI(t, "n = 0x_1F\n", "--no-trivia", "--no-color")
	assert.Equal(t, ExitLexicalError, res.code)

	assert.Equal(t, row("1:1", "BareKey", `"n"`)+"\n"+row("1:3", "Equals", "")+"\n", res.out)
	assert.Contains(t, res.err, "Error: malformed number")
	assert.Contains(t, res.err, "  --> <stdin>:1:7")
	assert.Contains(t, res.err, " 1 | n = 0x_1F")
	assert.NotContains(t, res.err, "Error: 1:7", "diagnostic must not be printed twice")
}

func TestCompactDiagnostic(t *testing.T) {
	path := writeFile(t, "s = \"open\n")

	res := runCLI(t, "", "--compact", path)
	assert.Equal(t, ExitLexicalError, res.code)
	assert.True(t, strings.HasPrefix(res.err, path+":1:5: unterminated string: missing closing \""), res.err)
}

func TestEmptyJSONIsArray(t *testing.T) {
	res := runCLI(t, "# nothing", "-o", "json", "--only", "Integer")
	require.Equal(t, ExitSuccess, res.code)
	assert.JSONEq(t, "[]", res.out)
}

func TestArgumentErrors(t *testing.T) {
	path := writeFile(t, "a = 1")

	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{"unsupported format", []string{path, "-o", "xml"}, "unsupported format 'xml'"},
		{"unknown kind", []string{path, "--only", "Integr"}, "did you mean 'Integer'?"},
		{"file twice", []string{path, "-f", path}, "not both"},
		{"watch stdin", []string{"-f", "-", "--watch"}, "--watch needs an input file"},
		{"too many args", []string{path, path}, "accepts at most 1 arg"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := runCLI(t, "", tt.args...)
			assert.Equal(t, ExitInvalidArguments, res.code)
			assert.Contains(t, res.err, tt.message)
		})
	}
}

func TestMissingFile(t *testing.T) {
	res := runCLI(t, "", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Equal(t, ExitIOError, res.code)
	assert.Contains(t, res.err, "failed to read")
}

func TestOnlyIsCaseInsensitive(t *testing.T) {
	res := runCLI(t, "a = 1\nb = 2", "--only", "integer,barekey")
	require.Equal(t, ExitSuccess, res.code, res.err)
	assert.Equal(t, 4, strings.Count(res.out, "\n"))
}

func TestStats(t *testing.T) {
	res := runCLI(t, "a = 1\nb = 2", "--stats", "--no-trivia")
	require.Equal(t, ExitSuccess, res.code)

	assert.Contains(t, res.err, `toto_tokens_total{kind="BareKey"} 2`)
	assert.Contains(t, res.err, `toto_tokens_total{kind="Whitespace"} 4`, "stats count tokens before filtering")
}

func TestStatsAfterLexicalError(t *testing.T) {
	res := runCLI(t, "a = 01", "--stats")
	assert.Equal(t, ExitLexicalError, res.code)
	assert.Contains(t, res.err, `toto_diagnostics_total{kind="MalformedNumber"} 1`)
}

func TestDebugTrace(t *testing.T) {
	res := runCLI(t, "a = 1", "--debug")
	require.Equal(t, ExitSuccess, res.code)

	assert.Contains(t, res.err, "read input")
	assert.Contains(t, res.err, "classify")
	assert.Contains(t, res.err, "BareKey")
}
