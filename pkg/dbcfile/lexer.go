package dbcfile

import (
	"fmt"
	"strings"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokPunct
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of file"
	case tokIdent:
		return "identifier"
	case tokNumber:
		return "number"
	case tokString:
		return "string"
	case tokPunct:
		return "punctuation"
	default:
		return "unknown"
	}
}

type token struct {
	kind tokenKind
	text string
	line int
	col  int
}

func (t token) String() string {
	switch t.kind {
	case tokEOF:
		return t.kind.String()
	case tokString:
		return fmt.Sprintf("string %q", t.text)
	default:
		return fmt.Sprintf("%s %q", t.kind, t.text)
	}
}

const punctuation = ":;,|@()[]+-"

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// tokenize splits src into tokens. The last token is always tokEOF.
func tokenize(src string) ([]token, error) {
	l := &lexer{src: src, line: 1, col: 1}
	var toks []token
	for {
		t, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, t)
		if t.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) peekByte(off int) byte {
	if l.pos+off < len(l.src) {
		return l.src[l.pos+off]
	}
	return 0
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByte(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance()
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.src) {
		return token{kind: tokEOF, line: l.line, col: l.col}, nil
	}

	line, col := l.line, l.col
	c := l.src[l.pos]
	switch {
	case c == '"':
		return l.lexString(line, col)
	case isIdentStart(c):
		start := l.pos
		for l.pos < len(l.src) && isIdentPart(l.src[l.pos]) {
			l.advance()
		}
		return token{kind: tokIdent, text: l.src[start:l.pos], line: line, col: col}, nil
	case isDigit(c) || c == '.' && isDigit(l.peekByte(1)) || l.startsSignedNumber(c):
		return l.lexNumber(line, col), nil
	case strings.IndexByte(punctuation, c) >= 0:
		l.advance()
		return token{kind: tokPunct, text: string(c), line: line, col: col}, nil
	default:
		return token{}, &SyntaxError{Line: line, Col: col, Msg: fmt.Sprintf("unexpected character %q", c)}
	}
}

// startsSignedNumber reports whether a sign at the cursor belongs to a
// number. A sign followed by anything else is punctuation, as in "@1+".
func (l *lexer) startsSignedNumber(c byte) bool {
	if c != '-' && c != '+' {
		return false
	}
	n := l.peekByte(1)
	return isDigit(n) || n == '.' && isDigit(l.peekByte(2))
}

func (l *lexer) lexNumber(line, col int) token {
	start := l.pos
	if c := l.src[l.pos]; c == '-' || c == '+' {
		l.advance()
	}
	l.digits()
	if l.peekByte(0) == '.' {
		l.advance()
		l.digits()
	}
	if e := l.peekByte(0); e == 'e' || e == 'E' {
		n := l.peekByte(1)
		if isDigit(n) || (n == '-' || n == '+') && isDigit(l.peekByte(2)) {
			l.advance()
			if n == '-' || n == '+' {
				l.advance()
			}
			l.digits()
		}
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], line: line, col: col}
}

func (l *lexer) digits() {
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.advance()
	}
}

// lexString reads a double-quoted string. Strings may span lines; \" and \\
// are the only escapes.
func (l *lexer) lexString(line, col int) (token, error) {
	l.advance()
	var b strings.Builder
	for l.pos < len(l.src) {
		c := l.advance()
		switch {
		case c == '"':
			return token{kind: tokString, text: b.String(), line: line, col: col}, nil
		case c == '\\' && (l.peekByte(0) == '"' || l.peekByte(0) == '\\'):
			b.WriteByte(l.advance())
		default:
			b.WriteByte(c)
		}
	}
	return token{}, &SyntaxError{Line: line, Col: col, Msg: "unterminated string"}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
