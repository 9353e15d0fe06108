package lexer

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// corpus covers every token kind and both line endings
var corpus = []string{
	"",
	"\n",
	"# only a comment",
	"\uFEFFtitle = \"TOML Example\"\n",
	`# This is a TOML document

title = "TOML Example"

[owner]
name = "Tom Preston-Werner"
dob = 1979-05-27T07:32:00-08:00

[database]
enabled = true
ports = [ 8000, 8001, 8002 ]
data = [ ["delta", "phi"], [3.14] ]
temp_targets = { cpu = 79.5, case = 72.0 }

[servers]

[servers.alpha]
ip = "10.0.0.1"
role = "frontend"

[[products]]
name = "Hammer"
sku = 738594937
`,
	"str = \"\"\"\r\nRoses are red\r\nViolets are blue\"\"\"\r\nlit = '''\r\nraw \\n'''\r\n",
	"int = [+99, -17, 0xDEADBEEF, 0o01234567, 0b11010110, 1_000]\nflt = [+1.0, -0.01, 5e+22, 1e06, -2E-2, inf, -nan]\n",
	"odt = 1979-05-27 07:32:00Z\nldt = 1979-05-27T00:32:00.999999\nld = 1979-05-27\nlt = 00:32:00.999999\n",
	"\"ʎǝʞ\" = \"value\"\n'quoted \"value\"' = \"ünï\"\ntrue.false.inf = nan\n",
	"a = [\n  1, # first\n  2,\n]\nb = { c = [ { d = 'e' } ] }\n",
}

func TestTokensPartitionSource(t *testing.T) {
	for _, input := range corpus {
		t.Run(firstLine(input), func(t *testing.T) {
			tokens, d := tokenize(t, input)
			require.Nil(t, d)

			var rebuilt bytes.Buffer
			next := 0
			for _, tok := range tokens {
				require.Equal(t, next, tok.Offset, "gap or overlap before %s", tok.Kind)
				rebuilt.WriteString(input[tok.Offset:tok.End()])
				next = tok.End()
			}
			assert.Equal(t, input, rebuilt.String())

			last := tokens[len(tokens)-1]
			assert.Equal(t, EndOfInput, last.Kind)
			assert.Equal(t, len(input), last.Offset)
			assert.Zero(t, last.Length)
		})
	}
}

func TestOnlyEndOfInputIsEmpty(t *testing.T) {
	for _, input := range corpus {
		tokens, d := tokenize(t, input)
		require.Nil(t, d)

		for _, tok := range tokens[:len(tokens)-1] {
			assert.Positive(t, tok.Length, "%s at %s", tok.Kind, tok.Position)
		}
	}
}

func TestTokenizingIsDeterministic(t *testing.T) {
	for _, input := range corpus {
		first, d1 := tokenize(t, input)
		second, d2 := tokenize(t, input)

		if diff := cmp.Diff(first, second); diff != "" {
			t.Errorf("two runs differ (-first +second):\n%s", diff)
		}
		assert.Equal(t, d1, d2)
	}
}

func TestPositionsMatchOffsets(t *testing.T) {
	for _, input := range corpus {
		tokens, d := tokenize(t, input)
		require.Nil(t, d)

		for _, tok := range tokens {
			want := positionOf([]byte(input), tok.Offset)
			assert.Equal(t, want, tok.Position, "%s", tok.Kind)
		}
	}
}

func TestDiagnosticPositionsMatchOffsets(t *testing.T) {
	inputs := []string{
		"a = 1\nb = \"x\\qy\"",
		"x = [1, 2,\n  3.]\n",
		"# é\n\ns = '''\nno end",
		"t = 2024-01-01T10:00\n",
		"é = 1",
		"k = 0b",
	}

	for _, input := range inputs {
		t.Run(firstLine(input), func(t *testing.T) {
			_, d := tokenize(t, input)
			require.NotNil(t, d)

			assert.Equal(t, positionOf([]byte(input), d.Offset), d.Position)
			assert.Less(t, d.Offset, len(input))
			assert.LessOrEqual(t, d.End(), len(input))
			assert.GreaterOrEqual(t, d.Length, 1)
		})
	}
}

// positionOf recomputes line and column from scratch
func positionOf(src []byte, offset int) Position {
	line, col := 1, 1
	for i := 0; i < offset; {
		r, size := utf8.DecodeRune(src[i:])
		if r == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i += size
	}
	return Position{Line: line, Column: col, Offset: offset}
}

func firstLine(s string) string {
	if i := bytes.IndexByte([]byte(s), '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return "empty"
	}
	return s
}
