// Package lexer turns source text into the token slice the parser consumes.
// It understands the C++ subset used around reflections and splices:
// identifiers, keywords, integer, character and string literals, and
// punctuators. Splice delimiters such as "[:" are deliberately left as two
// tokens.
package lexer

import (
	"errors"
	"fmt"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/token"
)

// Lexer scans one source buffer.
type Lexer struct {
	src  string
	pos  int
	line int
	col  int
	errs []error
}

// New returns a lexer over src.
func New(src string) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Tokenize scans src to the end. The result always ends with an EOF token.
// Invalid characters produce Unknown tokens and are reported in the error.
func Tokenize(src string) ([]token.Token, error) {
	l := New(src)
	var toks []token.Token
	for {
		t := l.Next()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, errors.Join(l.errs...)
}

func (l *Lexer) loc() ast.SourceLocation {
	return ast.SourceLocation{Offset: l.pos, Line: l.line, Column: l.col}
}

func (l *Lexer) peek(n int) byte {
	if l.pos+n < len(l.src) {
		return l.src[l.pos+n]
	}
	return 0
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n && l.pos < len(l.src); i++ {
		if l.src[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func (l *Lexer) skipSpaceAndComments() {
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			l.advance(1)
		case c == '/' && l.peek(1) == '/':
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.advance(1)
			}
		case c == '/' && l.peek(1) == '*':
			l.advance(2)
			for l.pos < len(l.src) && !(l.src[l.pos] == '*' && l.peek(1) == '/') {
				l.advance(1)
			}
			l.advance(2)
		default:
			return
		}
	}
}

// punctuators is ordered longest first.
var punctuators = []struct {
	text string
	kind token.Kind
}{
	{"...", token.Ellipsis},
	{"::", token.ColonColon},
	{"->", token.Arrow},
	{"&&", token.AmpAmp},
	{"||", token.PipePipe},
	{"==", token.EqualEqual},
	{"!=", token.ExclaimEqual},
	{"<=", token.LessEqual},
	{">=", token.GreaterEqual},
	{"(", token.LParen},
	{")", token.RParen},
	{"[", token.LSquare},
	{"]", token.RSquare},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{".", token.Period},
	{"&", token.Amp},
	{"*", token.Star},
	{"+", token.Plus},
	{"-", token.Minus},
	{"~", token.Tilde},
	{"!", token.Exclaim},
	{"/", token.Slash},
	{"%", token.Percent},
	{"<", token.Less},
	{">", token.Greater},
	{"=", token.Equal},
	{"^", token.Caret},
	{"|", token.Pipe},
	{"?", token.Question},
	{":", token.Colon},
	{";", token.Semi},
	{",", token.Comma},
	{"#", token.Hash},
}

// Next scans the next token.
func (l *Lexer) Next() token.Token {
	l.skipSpaceAndComments()
	start, startLoc := l.pos, l.loc()
	if l.pos >= len(l.src) {
		return token.Token{Kind: token.EOF, Loc: startLoc, EndLoc: startLoc}
	}

	c := l.src[l.pos]
	var kind token.Kind
	switch {
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentContinue(l.src[l.pos]) {
			l.advance(1)
		}
		kind = token.Lookup(l.src[start:l.pos])
	case isDigit(c):
		for l.pos < len(l.src) && (isIdentContinue(l.src[l.pos]) || l.src[l.pos] == '\'') {
			l.advance(1)
		}
		kind = token.NumericConstant
	case c == '"':
		kind = token.StringLiteral
		l.scanQuoted('"')
	case c == '\'':
		kind = token.CharConstant
		l.scanQuoted('\'')
	default:
		for _, p := range punctuators {
			if len(l.src)-l.pos >= len(p.text) && l.src[l.pos:l.pos+len(p.text)] == p.text {
				kind = p.kind
				l.advance(len(p.text))
				break
			}
		}
		if kind == token.Unknown {
			l.errs = append(l.errs, fmt.Errorf("%s: invalid character %q", startLoc, c))
			l.advance(1)
		}
	}
	return token.Token{Kind: kind, Text: l.src[start:l.pos], Loc: startLoc, EndLoc: l.loc()}
}

func (l *Lexer) scanQuoted(quote byte) {
	startLoc := l.loc()
	l.advance(1)
	for l.pos < len(l.src) {
		switch l.src[l.pos] {
		case '\\':
			l.advance(2)
			continue
		case quote:
			l.advance(1)
			return
		case '\n':
			l.errs = append(l.errs, fmt.Errorf("%s: missing terminating %c character", startLoc, quote))
			return
		}
		l.advance(1)
	}
	l.errs = append(l.errs, fmt.Errorf("%s: missing terminating %c character", startLoc, quote))
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentContinue(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
