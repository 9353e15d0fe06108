package lexer

// mode decides how a bare run of characters is read: as a key or a value
type mode int

const (
	keyMode mode = iota
	valueMode
)

func (m mode) String() string {
	if m == valueMode {
		return "value"
	}
	return "key"
}

// container is an open bracket that changes the mode until it closes
type container int

const (
	tableHeader container = iota // [table] or [[array.of.tables]]
	array                        // [1, 2, 3]
	inlineTable                  // {a = 1}
)

// modeTracker follows the brackets just far enough to know whether the
// next token sits in key or value position. It never rejects input:
// unbalanced brackets are the parser's problem.
type modeTracker struct {
	current mode
	stack   []container
}

func newModeTracker() modeTracker {
	return modeTracker{current: keyMode, stack: make([]container, 0, 8)}
}

func (m *modeTracker) top() (container, bool) {
	if len(m.stack) == 0 {
		return 0, false
	}
	return m.stack[len(m.stack)-1], true
}

func (m *modeTracker) push(c container) {
	m.stack = append(m.stack, c)
}

func (m *modeTracker) pop() {
	if len(m.stack) > 0 {
		m.stack = m.stack[:len(m.stack)-1]
	}
}

// modeInside returns the mode a fresh element of the innermost container
// starts in
func (m *modeTracker) modeInside() mode {
	if c, ok := m.top(); ok && c == array {
		return valueMode
	}
	return keyMode
}

// observe updates the mode after a token has been emitted
func (m *modeTracker) observe(kind TokenKind) {
	switch kind {
	case Equals:
		m.current = valueMode
	case LeftBracket:
		if m.current == valueMode {
			m.push(array)
		} else {
			m.push(tableHeader)
		}
	case LeftBrace:
		m.push(inlineTable)
		m.current = keyMode
	case Comma:
		m.current = m.modeInside()
	case RightBracket, RightBrace:
		m.pop()
		m.current = m.modeInside()
	case Newline:
		switch c, ok := m.top(); {
		case ok && c == array:
			m.current = valueMode
		case ok && c == inlineTable:
			m.current = keyMode
		default:
			m.stack = m.stack[:0]
			m.current = keyMode
		}
	}
}

// reset drops all bookkeeping
func (m *modeTracker) reset() {
	m.current = keyMode
	m.stack = nil
}
