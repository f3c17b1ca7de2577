// Package parser is a recursive-descent parser for the reflection and splice
// extensions of a C++ front end: "^operand", the reflection builtins,
// "[: r :]", "[# parts #]" and "...[< r >]". It covers the surrounding
// expression, type-id, nested-name-specifier and template-argument grammar
// only as far as splices interact with it.
//
// Alternatives that cannot be decided with fixed lookahead are parsed
// tentatively and reverted on failure. Successfully parsed splices are
// cached as annotation tokens in a side table keyed by their first raw
// token, so a replay after a revert reuses the cached result instead of
// reparsing and re-evaluating it.
package parser

import (
	"fmt"
	"log/slog"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

// Parser parses one token slice. It is not safe for concurrent use.
type Parser struct {
	toks    []token.Token
	pos     int
	annots  map[int]*annotation
	actions sema.Actions
	diags   *diag.Engine
	opts    Options
	logger  *slog.Logger

	tentativeDepth    int
	unevaluated       int
	greaterIsOperator bool
}

// New returns a parser over toks, which must end with an EOF token.
// Diagnostics from the parser go to diags, which should also be the sink of
// actions so that tentative parses hold both.
func New(toks []token.Token, actions sema.Actions, diags *diag.Engine, opts Options) (*Parser, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if len(toks) == 0 || toks[len(toks)-1].Kind != token.EOF {
		return nil, fmt.Errorf("token stream must end with %s", token.EOF)
	}
	if diags == nil {
		diags = diag.NewEngine(nil)
	}
	diags.SetErrorLimit(opts.ErrorLimit)
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{
		toks:              toks,
		annots:            make(map[int]*annotation),
		actions:           actions,
		diags:             diags,
		opts:              opts,
		logger:            logger,
		greaterIsOperator: true,
	}, nil
}

// Pos returns the index of the current raw token.
func (p *Parser) Pos() int { return p.pos }

// AtEOF reports whether all input has been consumed.
func (p *Parser) AtEOF() bool { return p.tok().Is(token.EOF) }

// Annotations returns the number of live annotation tokens.
func (p *Parser) Annotations() int { return len(p.annots) }

func (p *Parser) report(kind diag.Kind, loc ast.SourceLocation, args ...any) {
	p.diags.Report(diag.New(kind, loc, args...))
}

func quote(k token.Kind) string { return "'" + k.String() + "'" }

// tok returns the current token. An annotation covering the current raw
// token is returned in its place.
func (p *Parser) tok() token.Token {
	return p.tokenAt(p.pos)
}

func (p *Parser) tokenAt(i int) token.Token {
	if a := p.annotationAt(i); a != nil {
		return token.Token{
			Kind:       a.kind,
			Loc:        p.toks[i].Loc,
			EndLoc:     p.toks[a.end-1].EndLoc,
			Annotation: a,
		}
	}
	return p.toks[i]
}

// next returns the index of the token after the one at i.
func (p *Parser) next(i int) int {
	if a := p.annotationAt(i); a != nil {
		return a.end
	}
	if i < len(p.toks)-1 {
		return i + 1
	}
	return i
}

// peek returns the token n positions ahead of the current one.
func (p *Parser) peek(n int) token.Token {
	i := p.pos
	for ; n > 0; n-- {
		i = p.next(i)
	}
	return p.tokenAt(i)
}

// consume advances past the current token and returns it. An annotation
// consumed outside any tentative parse can never be replayed: it is dropped
// together with the annotations nested inside its range.
func (p *Parser) consume() token.Token {
	t := p.tok()
	p.pos = p.next(p.pos)
	if a, ok := t.Annotation.(*annotation); ok && p.tentativeDepth == 0 {
		for i := a.start; i < a.end; i++ {
			delete(p.annots, i)
		}
	}
	return t
}

// tryConsume consumes the current token if it has kind k.
func (p *Parser) tryConsume(k token.Kind) (token.Token, bool) {
	if p.tok().Is(k) {
		return p.consume(), true
	}
	return token.Token{}, false
}

// prevEnd returns the end location of the last consumed raw token.
func (p *Parser) prevEnd() ast.SourceLocation {
	if p.pos == 0 {
		return p.toks[0].Loc
	}
	return p.toks[p.pos-1].EndLoc
}

// expect consumes a token of kind k or reports err_expected.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if t, ok := p.tryConsume(k); ok {
		return t, true
	}
	p.report(diag.ErrExpected, p.tok().Loc, quote(k))
	return token.Token{}, false
}

// expectClose consumes the closing token matching open. On failure it
// reports the mismatch with a note at open and skips to the closer.
func (p *Parser) expectClose(open token.Token, close token.Kind) bool {
	if _, ok := p.tryConsume(close); ok {
		return true
	}
	p.report(diag.ErrExpected, p.tok().Loc, quote(close))
	p.report(diag.NoteMatching, open.Loc, quote(open.Kind))
	p.skipUntil(stopAtSemi, close)
	return false
}

type skipFlags int

const (
	stopAtSemi skipFlags = 1 << iota
	stopBeforeMatch
)

// skipUntil skips tokens until one of kinds, stepping over balanced
// parentheses, brackets and braces. The matching token is consumed unless
// stopBeforeMatch is set. It reports whether a match was found.
func (p *Parser) skipUntil(flags skipFlags, kinds ...token.Kind) bool {
	for {
		t := p.tok()
		if t.IsOneOf(kinds...) {
			if flags&stopBeforeMatch == 0 {
				p.consume()
			}
			return true
		}
		switch t.Kind {
		case token.EOF:
			return false
		case token.Semi:
			if flags&stopAtSemi != 0 {
				return false
			}
			p.consume()
		case token.LParen:
			p.consume()
			p.skipUntil(0, token.RParen)
		case token.LSquare:
			p.consume()
			p.skipUntil(0, token.RSquare)
		case token.LBrace:
			p.consume()
			p.skipUntil(0, token.RBrace)
		case token.RParen, token.RSquare, token.RBrace:
			// An unbalanced closer ends the enclosing construct.
			return false
		default:
			p.consume()
		}
	}
}

// withGreaterIsOperator sets whether '>' is an operator while fn runs.
func (p *Parser) withGreaterIsOperator(v bool, fn func()) {
	prev := p.greaterIsOperator
	p.greaterIsOperator = v
	defer func() { p.greaterIsOperator = prev }()
	fn()
}

// enterUnevaluated opens an unevaluated operand context.
func (p *Parser) enterUnevaluated() (exit func()) {
	p.unevaluated++
	p.actions.PushEvaluationContext(sema.Unevaluated)
	return func() {
		p.actions.PopEvaluationContext()
		p.unevaluated--
	}
}

// isIdentifierLike reports whether t can stand where an identifier can.
func isIdentifierLike(t token.Token) bool {
	return t.IsOneOf(token.Identifier, token.AnnotIdentifierSplice, token.AnnotInvalidIdentifierSplice)
}

// identifierOf returns the identifier spelled by t, which must be
// identifier-like. Dependent identifier splices have no name yet.
func identifierOf(t token.Token) sema.IdentifierInfo {
	if a, ok := t.Annotation.(*annotation); ok {
		return a.ident
	}
	return sema.IdentifierInfo{Name: t.Text, Loc: t.Loc}
}
