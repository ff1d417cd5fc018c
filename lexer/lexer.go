package lexer

import (
	"strings"
	"unicode/utf8"
)

// Lexer turns script source into tokens on demand. It knows nothing about
// the grammar: keywords, operator alternates like "and" and declared names
// are all plain Name tokens.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int

	// last is the position of the most recently consumed byte.
	last Position

	whitespace []Whitespace
	pending    []Token
	prev       Token
	continued  bool
}

func New(src string) *Lexer {
	return &Lexer{
		src:  src,
		line: 1,
	}
}

// Tokenize lexes src completely. The returned tokens do not include the
// EOF marker.
func Tokenize(src string) ([]Token, []Whitespace) {
	l := New(src)
	var tokens []Token
	for {
		tok := l.Next()
		if tok.Kind == EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return tokens, l.Whitespace()
}

func (l *Lexer) Source() string {
	return l.src
}

// Whitespace returns the records collected so far, in source order.
func (l *Lexer) Whitespace() []Whitespace {
	return l.whitespace
}

// Next returns the next token and advances. At the end of input it keeps
// returning a token of kind EOF.
func (l *Lexer) Next() Token {
	if len(l.pending) > 0 {
		tok := l.pending[0]
		l.pending = l.pending[1:]
		return tok
	}
	return l.scan()
}

// Peek returns the next token without advancing.
func (l *Lexer) Peek() Token {
	if len(l.pending) == 0 {
		l.pending = append(l.pending, l.scan())
	}
	return l.pending[0]
}

func (l *Lexer) position() Position {
	return Position{Line: l.line, Col: l.col}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.src) {
		return 0
	}
	return l.src[l.pos+n]
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.src)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	ch := l.src[l.pos]
	l.last = l.position()
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 0
	} else {
		l.col++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) record(start int) {
	l.whitespace = append(l.whitespace, Whitespace{
		Value: l.src[start:l.pos],
		Range: Range{start, l.pos - 1},
	})
}

func (l *Lexer) emit(kind Kind, value string, startOffset int, start Position) Token {
	tok := Token{
		Kind:  kind,
		Value: value,
		Range: Range{startOffset, l.pos - 1},
		Loc:   Location{Start: start, End: l.last},
	}
	if kind != Newline {
		l.continued = false
	}
	l.prev = tok
	return tok
}

// terminator builds a newline token that covers no source text.
func (l *Lexer) terminator(value string, offset int, at Position) Token {
	tok := Token{
		Kind:  Newline,
		Value: value,
		Range: Range{offset, offset},
		Loc:   Location{Start: at, End: at},
	}
	l.prev = tok
	return tok
}

func (l *Lexer) scan() Token {
	for {
		if l.atEnd() {
			at := l.position()
			return Token{Kind: EOF, Range: Range{l.pos, l.pos}, Loc: Location{Start: at, End: at}}
		}

		startOffset := l.pos
		start := l.position()
		ch := l.peek()

		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f' || ch == '\v':
			for c := l.peek(); c == ' ' || c == '\t' || c == '\r' || c == '\f' || c == '\v'; c = l.peek() {
				l.advance()
			}
			l.record(startOffset)

		case ch == '\n':
			l.advance()
			if l.continued {
				l.continued = false
				l.record(startOffset)
				continue
			}
			return l.emit(Newline, "\n", startOffset, start)

		case ch == '\\':
			l.advance()
			l.record(startOffset)
			l.continued = true

		case ch == '/' && l.peekN(1) == '/':
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			l.record(startOffset)
			if l.atEnd() {
				if l.continued {
					l.continued = false
					continue
				}
				return l.terminator("\n", l.pos, l.position())
			}

		case ch == '/' && l.peekN(1) == '*':
			if tok, ok := l.scanBlockComment(startOffset); ok {
				return tok
			}

		case isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))):
			return l.scanNumber(startOffset, start)

		case isLetter(ch):
			return l.scanName(startOffset, start)

		case ch == '\'' || ch == '"':
			return l.scanString(startOffset, start)

		case ch == '#' && isDigit(l.peekN(1)):
			l.advance()
			for isHexDigit(l.peek()) {
				l.advance()
			}
			return l.emit(ObjRef, l.src[startOffset:l.pos], startOffset, start)

		case ch == '.':
			return l.scanDots(startOffset, start)

		case ch == ';':
			l.advance()
			return l.emit(Newline, ";", startOffset, start)

		default:
			return l.scanOperator(startOffset, start)
		}
	}
}

// scanBlockComment skips a /* */ comment. A comment spanning lines acts as
// a single line break. After a continuation the first line break is
// swallowed, and a comment spanning three or more lines still leaves an
// empty terminator behind. An unterminated comment is dropped silently.
func (l *Lexer) scanBlockComment(startOffset int) (Token, bool) {
	l.advanceN(2)
	lines := 0
	for {
		if l.atEnd() {
			l.record(startOffset)
			return Token{}, false
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		if l.advance() == '\n' {
			lines++
		}
	}
	l.record(startOffset)

	if lines == 0 {
		return Token{}, false
	}
	if l.continued {
		l.continued = false
		if lines < 2 {
			return Token{}, false
		}
		return l.terminator("", l.pos-1, l.last), true
	}
	return l.terminator("\n", l.pos-1, l.last), true
}

// scanNumber accepts "5", "5.25", ".5" and "5." which is normalized to "5".
func (l *Lexer) scanNumber(startOffset int, start Position) Token {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' {
		next := l.peekN(1)
		switch {
		case isDigit(next):
			l.advance()
			for isDigit(l.peek()) {
				l.advance()
			}
		case next != '.' && !isLetter(next):
			l.advance()
			return l.emit(Number, l.src[startOffset:l.pos-1], startOffset, start)
		}
	}
	return l.emit(Number, l.src[startOffset:l.pos], startOffset, start)
}

func (l *Lexer) scanName(startOffset int, start Position) Token {
	for isLetterOrDigit(l.peek()) {
		l.advanceRune()
	}
	return l.emit(Name, l.src[startOffset:l.pos], startOffset, start)
}

// scanString reads a quoted string. Doubling the quote character embeds
// it; the other quote character is literal. A string left open at the end
// of input ends there.
func (l *Lexer) scanString(startOffset int, start Position) Token {
	quote := l.advance()
	var sb strings.Builder
	for !l.atEnd() {
		ch := l.peek()
		if ch == quote {
			if l.peekN(1) == quote {
				sb.WriteByte(quote)
				l.advanceN(2)
				continue
			}
			l.advance()
			break
		}
		sb.WriteByte(l.advance())
	}
	return l.emit(String, sb.String(), startOffset, start)
}

// scanDots folds an ambiguous run of periods next to a parenthesis or a
// comma into a single ellipsis, so "( .... )" and "( .. )" both declare a
// variadic parameter.
func (l *Lexer) scanDots(startOffset int, start Position) Token {
	n := 0
	for l.peekN(n) == '.' {
		n++
	}
	if n == 1 {
		l.advance()
		return l.emit(Operator, ".", startOffset, start)
	}
	if n == 3 || l.dotsAdjacentToParen(n) {
		l.advanceN(n)
		return l.emit(Operator, "...", startOffset, start)
	}
	l.advance()
	return l.emit(Operator, ".", startOffset, start)
}

func (l *Lexer) dotsAdjacentToParen(n int) bool {
	if l.prev.Kind == Operator && (l.prev.Value == "(" || l.prev.Value == ",") {
		return true
	}
	i := l.pos + n
	for i < len(l.src) && (l.src[i] == ' ' || l.src[i] == '\t') {
		i++
	}
	return i < len(l.src) && (l.src[i] == ')' || l.src[i] == ',')
}

func (l *Lexer) scanOperator(startOffset int, start Position) Token {
	rest := l.src[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, op) {
			l.advanceN(len(op))
			return l.emit(Operator, op, startOffset, start)
		}
	}
	l.advanceRune()
	return l.emit(Operator, l.src[startOffset:l.pos], startOffset, start)
}

func (l *Lexer) advanceRune() {
	_, size := utf8.DecodeRuneInString(l.src[l.pos:])
	if size <= 1 {
		l.advance()
		return
	}
	l.advanceN(size)
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isLetter(ch byte) bool {
	// Multi-byte runes are accepted in names as a whole.
	return ch >= utf8.RuneSelf || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isLetterOrDigit(ch byte) bool {
	return isLetter(ch) || isDigit(ch)
}
