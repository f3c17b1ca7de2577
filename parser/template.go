package parser

import (
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

// parseTemplateArgumentList parses "< args >" starting at '<'. Inside the
// list '>' closes the list instead of comparing.
func (p *Parser) parseTemplateArgumentList() ([]sema.ParsedTemplateArgument, bool) {
	open := p.consume()
	var args []sema.ParsedTemplateArgument
	ok := true
	p.withGreaterIsOperator(false, func() {
		if p.tok().Is(token.Greater) {
			return
		}
		for {
			arg := p.parseTemplateArgument()
			if arg.IsInvalid() {
				ok = false
				return
			}
			if t, ell := p.tryConsume(token.Ellipsis); ell {
				arg.EllipsisLoc = t.Loc
			}
			args = append(args, arg)
			if _, more := p.tryConsume(token.Comma); !more {
				return
			}
		}
	})
	if !ok {
		p.skipUntil(stopAtSemi, token.Greater)
		return nil, false
	}
	if _, closed := p.tryConsume(token.Greater); !closed {
		p.report(diag.ErrExpected, p.tok().Loc, "'>'")
		p.report(diag.NoteMatching, open.Loc, "'<'")
		p.skipUntil(stopAtSemi, token.Greater)
		return nil, false
	}
	return args, true
}

// parseTemplateArgument parses one template argument: a splice, a pack
// splice, a template name, a type-id or a constant expression, tried in
// that order.
func (p *Parser) parseTemplateArgument() sema.ParsedTemplateArgument {
	t := p.tok()
	if p.atSplice(0) {
		if arg, handled := p.parseTemplateArgumentSplice(); handled {
			return arg
		}
	}
	if p.atPackSplice() {
		if arg, handled := p.parsePackSpliceTemplateArgument(); handled {
			return arg
		}
	}
	if arg, ok := p.parseTemplateTemplateArgument(); ok {
		return arg
	}
	if p.isTypeID() {
		ty := p.ParseTypeID()
		if ty.IsInvalid() {
			return sema.ParsedTemplateArgument{}
		}
		return sema.ParsedTemplateArgument{Kind: sema.TypeArg, Type: ty.Type, Loc: t.Loc}
	}
	e := p.parseConstantExpression()
	if e.IsInvalid() {
		return sema.ParsedTemplateArgument{}
	}
	return sema.ParsedTemplateArgument{Kind: sema.NonTypeArg, Expr: e.Expr, Loc: t.Loc}
}

// parsePackSpliceTemplateArgument parses "...[< r >]" when it is the whole
// argument. The extent of the splice is found by skipping its balanced
// tokens before anything is parsed.
func (p *Parser) parsePackSpliceTemplateArgument() (sema.ParsedTemplateArgument, bool) {
	whole := p.lookahead(func() bool {
		restore := p.diags.Suppress()
		defer restore()
		if _, ok := p.ConsumeAndStorePackSplice(); !ok {
			return false
		}
		return p.tok().IsOneOf(token.Comma, token.Greater)
	})
	if !whole {
		return sema.ParsedTemplateArgument{}, false
	}
	sp, ok := p.parsePackSpliceOperand()
	if !ok {
		return sema.ParsedTemplateArgument{}, true
	}
	return p.actions.ActOnPackSpliceTemplateArgument(sp), true
}

// parseTemplateTemplateArgument parses a template name standing alone as
// an argument.
func (p *Parser) parseTemplateTemplateArgument() (sema.ParsedTemplateArgument, bool) {
	var arg sema.ParsedTemplateArgument
	ok := p.tryTentatively(func() bool {
		var ss sema.ScopeSpec
		if !p.parseOptionalScopeSpecifier(&ss) || ss.Invalid {
			return false
		}
		t := p.tok()
		if !isIdentifierLike(t) {
			return false
		}
		info := identifierOf(t)
		if info.Invalid || info.Dependent {
			return false
		}
		c := p.actions.ClassifyName(&ss, info.Name, t.Loc)
		if c.Kind != sema.NameTemplate {
			return false
		}
		p.consume()
		if !p.tok().IsOneOf(token.Comma, token.Greater, token.Ellipsis) {
			return false
		}
		arg = sema.ParsedTemplateArgument{Kind: sema.TemplateArg, Template: c.Template, Loc: t.Loc}
		return true
	})
	return arg, ok
}
