package lexer

// ASCII character lookup tables for fast classification.
//
// Use inline bounds-checked lookups:
//
//	if r >= 0 && r < 128 && isDigit[r] { ... }
//
// Everything TOML gives meaning to outside strings and comments is ASCII,
// so runes >= 128 never match a table.
var (
	isSpace        [128]bool // space, tab
	isLetter       [128]bool // a-z, A-Z
	isDigit        [128]bool // 0-9
	isHexDigit     [128]bool // 0-9, a-f, A-F
	isOctDigit     [128]bool // 0-7
	isBinDigit     [128]bool // 0-1
	isBareKeyChar  [128]bool // A-Z, a-z, 0-9, _, -
	isPunctuation  [128]bool
	punctuationFor [128]TokenKind
)

func init() {
	for i := 0; i < 128; i++ {
		ch := byte(i)

		isSpace[i] = ch == ' ' || ch == '\t'
		isLetter[i] = ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
		isDigit[i] = '0' <= ch && ch <= '9'
		isHexDigit[i] = isDigit[i] || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
		isOctDigit[i] = '0' <= ch && ch <= '7'
		isBinDigit[i] = ch == '0' || ch == '1'
		isBareKeyChar[i] = isLetter[i] || isDigit[i] || ch == '_' || ch == '-'
	}

	for ch, kind := range map[byte]TokenKind{
		'[': LeftBracket,
		']': RightBracket,
		'{': LeftBrace,
		'}': RightBrace,
		',': Comma,
		'.': Dot,
		'=': Equals,
	} {
		isPunctuation[ch] = true
		punctuationFor[ch] = kind
	}
}

// is reports whether r is an ASCII rune in the given table
func is(table *[128]bool, r rune) bool {
	return r >= 0 && r < 128 && table[r]
}

// isControl reports whether r is a control character TOML forbids in
// strings and comments. Tab is allowed everywhere and is not included;
// line feed is, so callers must handle newlines first.
func isControl(r rune) bool {
	return (r >= 0 && r <= 0x08) || (r >= 0x0A && r <= 0x1F) || r == 0x7F
}

// hexValue returns the numeric value of an ASCII hex digit
func hexValue(ch byte) uint32 {
	switch {
	case '0' <= ch && ch <= '9':
		return uint32(ch - '0')
	case 'a' <= ch && ch <= 'f':
		return uint32(ch-'a') + 10
	default:
		return uint32(ch-'A') + 10
	}
}
