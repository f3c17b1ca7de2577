package parser

import (
	"strings"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

// atSplice reports whether a "[:" splice, raw or annotated, starts n tokens
// ahead.
func (p *Parser) atSplice(n int) bool {
	t := p.peek(n)
	if t.Is(token.AnnotReflectionSplice) {
		return true
	}
	return p.opts.Reflection && t.Is(token.LSquare) && p.peek(n+1).Is(token.Colon)
}

// atIdentifierSplice reports whether "[#" starts at the current token.
// "[#..." is not an identifier splice.
func (p *Parser) atIdentifierSplice() bool {
	return p.opts.Reflection &&
		p.tok().Is(token.LSquare) &&
		p.peek(1).Is(token.Hash) &&
		!p.peek(2).Is(token.Ellipsis)
}

// atPackSplice reports whether "...[<" starts at the current token.
func (p *Parser) atPackSplice() bool {
	return p.opts.Reflection &&
		p.tok().Is(token.Ellipsis) &&
		p.peek(1).Is(token.LSquare) &&
		p.peek(2).Is(token.Less)
}

// ParseReflectionSplice parses "[: r :]" and returns its operand. An
// annotated splice is consumed as is.
func (p *Parser) ParseReflectionSplice() (sema.ParsedSplice, bool) {
	if a := annotationOf(p.tok()); a != nil && a.kind == token.AnnotReflectionSplice {
		p.consume()
		return a.splice, true
	}
	open := p.consume()
	p.consume()

	var e sema.ExprResult
	p.withGreaterIsOperator(true, func() { e = p.parseConstantExpression() })
	if e.IsInvalid() {
		p.skipUntil(stopAtSemi, token.RSquare)
		return sema.ParsedSplice{}, false
	}
	if !p.tok().Is(token.Colon) || !p.peek(1).Is(token.RSquare) {
		p.report(diag.ErrExpectedEndOfSplice, p.tok().Loc)
		p.report(diag.NoteMatching, open.Loc, "'[:'")
		p.skipUntil(stopAtSemi, token.RSquare)
		return sema.ParsedSplice{}, false
	}
	p.consume()
	end := p.consume()
	return sema.ParsedSplice{Expr: e.Expr, Begin: open.Loc, End: end.EndLoc}, true
}

// tryAnnotateReflectionSplice replaces the splice at the current token
// with an annotation. It reports false after a diagnosed parse error.
func (p *Parser) tryAnnotateReflectionSplice() bool {
	if p.tok().Is(token.AnnotReflectionSplice) {
		return true
	}
	start := p.pos
	sp, ok := p.ParseReflectionSplice()
	if !ok {
		return false
	}
	p.annotate(start, token.AnnotReflectionSplice).splice = sp
	return true
}

// ParseExprSplice parses "[: r :]" as a primary expression.
func (p *Parser) ParseExprSplice() sema.ExprResult {
	if !p.tryAnnotateReflectionSplice() {
		return sema.ExprError()
	}
	a := annotationOf(p.consume())
	if a.expr != nil {
		return *a.expr
	}
	res := p.actions.ActOnCXXExprSpliceExpr(a.splice)
	if !res.IsInvalid() {
		a.expr = &res
	}
	return res
}

// parseMemberSplice parses ".[: r :]", "->[: r :]" and their
// "template [: r :] <args>" forms after base.
func (p *Parser) parseMemberSplice(base sema.ExprResult) sema.ExprResult {
	arrow := p.consume().Is(token.Arrow)
	_, templateKw := p.tryConsume(token.KwTemplate)
	sp, ok := p.ParseReflectionSplice()
	if !ok {
		return sema.ExprError()
	}
	var args []sema.ParsedTemplateArgument
	if templateKw {
		if !p.tok().Is(token.Less) {
			p.report(diag.ErrExpectedAfter, p.tok().Loc, "':]'", "'<'")
			return sema.ExprError()
		}
		if args, ok = p.parseTemplateArgumentList(); !ok {
			return sema.ExprError()
		}
	}
	if base.IsInvalid() {
		return sema.ExprError()
	}
	return p.actions.ActOnCXXMemberExprSpliceExpr(base.Expr, arrow, sp, templateKw, templateKw, args)
}

// parseTemplateSpliceID parses "template [: r :] <args>", or "[: r :] <args>"
// after typename, and annotates it as a template-id. It reports false after
// a diagnosed error.
func (p *Parser) parseTemplateSpliceID(ss *sema.ScopeSpec, templateKw bool) bool {
	start := p.pos
	loc := p.tok().Loc
	if templateKw {
		p.consume()
	}
	if !p.tryAnnotateReflectionSplice() {
		return false
	}
	if !p.peek(1).Is(token.Less) {
		p.consume()
		p.report(diag.ErrExpectedAfter, p.tok().Loc, "':]'", "'<'")
		return false
	}
	a := annotationOf(p.consume())
	if a.tmpl == nil {
		name, kind := p.actions.ActOnTemplateSplice(ss, a.splice)
		if kind == sema.TNKNonTemplate {
			return false
		}
		a.tmpl = &templateSplice{name: name, kind: kind}
	}
	args, ok := p.parseTemplateArgumentList()
	if !ok {
		return false
	}
	p.annotate(start, token.AnnotTemplateID).tid = &templateID{
		ss:   *ss,
		name: a.tmpl.name,
		kind: a.tmpl.kind,
		args: args,
		loc:  loc,
	}
	return true
}

// parseTypeSplice parses "[: r :]" in a type position.
func (p *Parser) parseTypeSplice() sema.TypeResult {
	if !p.tryAnnotateReflectionSplice() {
		return sema.TypeError()
	}
	a := annotationOf(p.consume())
	if a.typ != nil {
		return *a.typ
	}
	res := p.actions.ActOnTypeSplice(a.splice)
	if !res.IsInvalid() {
		a.typ = &res
	}
	return res
}

// parseTemplateArgumentSplice parses a splice forming a whole template
// argument. When the splice only begins a longer argument it is left
// annotated and handled is false.
func (p *Parser) parseTemplateArgumentSplice() (arg sema.ParsedTemplateArgument, handled bool) {
	if !p.tryAnnotateReflectionSplice() {
		return sema.ParsedTemplateArgument{}, true
	}
	if !p.peek(1).IsOneOf(token.Comma, token.Greater, token.Ellipsis) {
		return sema.ParsedTemplateArgument{}, false
	}
	a := annotationOf(p.consume())
	if a.arg != nil {
		return *a.arg, true
	}
	arg = p.actions.ActOnTemplateArgumentSplice(a.splice)
	if !arg.IsInvalid() {
		a.arg = &arg
	}
	return arg, true
}

// parsePackSpliceOperand parses "...[< r >]". The operand is parsed with
// '>' closing the splice rather than comparing.
func (p *Parser) parsePackSpliceOperand() (sema.ParsedSplice, bool) {
	open := p.consume()
	p.consume()
	p.consume()

	var e sema.ExprResult
	p.withGreaterIsOperator(false, func() { e = p.parseConstantExpression() })
	if e.IsInvalid() {
		p.skipUntil(stopAtSemi, token.RSquare)
		return sema.ParsedSplice{}, false
	}
	if !p.tok().Is(token.Greater) || !p.peek(1).Is(token.RSquare) {
		p.report(diag.ErrExpected, p.tok().Loc, "'>]'")
		p.report(diag.NoteMatching, open.Loc, "'...[<'")
		p.skipUntil(stopAtSemi, token.RSquare)
		return sema.ParsedSplice{}, false
	}
	p.consume()
	end := p.consume()
	return sema.ParsedSplice{Expr: e.Expr, Begin: open.Loc, End: end.EndLoc}, true
}

// ParsePackSplice parses "...[< r >]" as an expression.
func (p *Parser) ParsePackSplice() sema.ExprResult {
	sp, ok := p.parsePackSpliceOperand()
	if !ok {
		return sema.ExprError()
	}
	return p.actions.ActOnCXXPackSpliceExpr(sp)
}

func (p *Parser) parseTypePackSplice() sema.TypeResult {
	sp, ok := p.parsePackSpliceOperand()
	if !ok {
		return sema.TypeError()
	}
	return p.actions.ActOnTypePackSplice(sp)
}

type closer int

const (
	closeSquare closer = iota
	closePackSplice
)

// ConsumeAndStorePackSplice consumes "...[< r >]" without parsing it and
// returns its tokens. Nested "[" and "...[<" are balanced against "]" and
// ">]", so a '>' inside brackets does not end the splice.
func (p *Parser) ConsumeAndStorePackSplice() ([]token.Token, bool) {
	if !p.atPackSplice() {
		return nil, false
	}
	open := p.tok()
	var (
		toks  []token.Token
		stack []closer
	)
	for {
		t := p.tok()
		top := closer(-1)
		if n := len(stack); n > 0 {
			top = stack[n-1]
		}
		switch {
		case t.Is(token.EOF):
			p.report(diag.ErrUnterminatedPackSplice, open.Loc)
			return toks, false
		case p.atPackSplice():
			toks = append(toks, p.consume(), p.consume(), p.consume())
			stack = append(stack, closePackSplice)
			continue
		case top == closePackSplice && t.Is(token.Greater) && p.peek(1).Is(token.RSquare):
			toks = append(toks, p.consume(), p.consume())
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return toks, true
			}
			continue
		case t.Is(token.LSquare):
			stack = append(stack, closeSquare)
		case top == closeSquare && t.Is(token.RSquare):
			stack = stack[:len(stack)-1]
		}
		toks = append(toks, p.consume())
	}
}

// tryAnnotateIdentifierSplice replaces "[# parts #]" at the current token
// with an identifier annotation. Outside tentative parses a splice that
// fails still yields an annotation, carrying a unique placeholder name.
func (p *Parser) tryAnnotateIdentifierSplice() bool {
	if p.tok().IsOneOf(token.AnnotIdentifierSplice, token.AnnotInvalidIdentifierSplice) {
		return true
	}
	if !p.atIdentifierSplice() {
		return false
	}
	start := p.pos
	info := p.parseIdentifierSplice()
	kind := token.AnnotIdentifierSplice
	if info.Invalid {
		if p.tentativeDepth > 0 {
			// The diagnostics may be dropped by a revert; leave the raw
			// tokens so the committed parse reports them.
			p.pos = start
			return false
		}
		kind = token.AnnotInvalidIdentifierSplice
	}
	p.annotate(start, kind).ident = info
	return true
}

func (p *Parser) parseIdentifierSplice() sema.IdentifierInfo {
	open := p.consume()
	p.consume()

	var parts []ast.Expr
	ok := true
	p.withGreaterIsOperator(true, func() {
		for {
			e := p.parseConstantExpression()
			if e.IsInvalid() {
				ok = false
				return
			}
			parts = append(parts, e.Expr)
			if _, more := p.tryConsume(token.Comma); !more {
				return
			}
		}
	})
	if ok && (!p.tok().Is(token.Hash) || !p.peek(1).Is(token.RSquare)) {
		p.report(diag.ErrExpected, p.tok().Loc, "'#]'")
		p.report(diag.NoteMatching, open.Loc, "'[#'")
		ok = false
	}
	if !ok {
		p.skipUntil(stopAtSemi, token.RSquare)
		return p.actions.ActOnCXXInvalidIdentifierSplice(open.Loc)
	}
	p.consume()
	end := p.consume()
	info, valid := p.actions.ActOnCXXIdentifierSplice(parts, open.Loc, end.EndLoc)
	if !valid {
		return p.actions.ActOnCXXInvalidIdentifierSplice(open.Loc)
	}
	return info
}

// spelling returns the name an identifier stands for. A dependent
// identifier splice is spelled as written.
func spelling(info sema.IdentifierInfo) string {
	if !info.Dependent {
		return info.Name
	}
	var b strings.Builder
	b.WriteString("[# ")
	for i, part := range info.Parts {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(ast.Sprint(part, ast.PrintingPolicy{}))
	}
	b.WriteString(" #]")
	return b.String()
}
