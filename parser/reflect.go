package parser

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/templatename"
	"github.com/broady/metacxx/token"
)

// ParseReflectExpr parses "^operand". The operand is an unevaluated
// context.
func (p *Parser) ParseReflectExpr() sema.ExprResult {
	caret := p.consume()
	exit := p.enterUnevaluated()
	operand := p.ParseReflectionOperand()
	exit()
	if operand.IsInvalid() {
		p.report(diag.ErrInvalidReflectionOperand, caret.Loc)
		return sema.ExprError()
	}
	return p.actions.ActOnCXXReflectExpr(caret.Loc, operand)
}

// ParseReflectionOperand parses the operand of '^'. The alternatives are
// tried in order: the global namespace, a template name, a namespace name,
// a type-id and finally an expression. Diagnostics from the alternatives
// are suppressed; an operand matching none of them is invalid.
func (p *Parser) ParseReflectionOperand() sema.ReflectionOperand {
	restore := p.diags.Suppress()
	defer restore()

	t := p.tok()
	if t.Is(token.ColonColon) {
		next := p.peek(1)
		if !isIdentifierLike(next) && !next.Is(token.KwTemplate) && !p.atSplice(1) && !(next.Is(token.LSquare) && p.peek(2).Is(token.Hash)) {
			p.consume()
			return p.actions.ActOnReflectedNamespace(&sema.ScopeSpec{}, t.Loc, nil)
		}
	}

	var operand sema.ReflectionOperand
	if p.tryTentatively(func() bool {
		var ok bool
		operand, ok = p.parseReflectedTemplateName()
		return ok
	}) {
		return operand
	}
	if p.tryTentatively(func() bool {
		var ok bool
		operand, ok = p.parseReflectedNamespaceName()
		return ok
	}) {
		return operand
	}

	if p.isTypeID() {
		loc := p.tok().Loc
		ty := p.ParseTypeID()
		if ty.IsInvalid() {
			return sema.InvalidOperand()
		}
		return p.actions.ActOnReflectedType(ty.Type, loc)
	}

	e := p.parseCastExpression()
	if e.IsInvalid() || e.Expr.Dependence()&ast.ExprError != 0 {
		return sema.InvalidOperand()
	}
	return p.actions.ActOnReflectedExpression(e.Expr)
}

// parseReflectedTemplateName parses a template name that is not followed by
// template arguments or anything else that would make it part of a larger
// construct.
func (p *Parser) parseReflectedTemplateName() (sema.ReflectionOperand, bool) {
	var ss sema.ScopeSpec
	if !p.parseOptionalScopeSpecifier(&ss) || ss.Invalid {
		return sema.ReflectionOperand{}, false
	}
	t := p.tok()
	var name templatename.Name
	switch {
	case t.Is(token.KwTemplate) && p.atSplice(1):
		p.consume()
		if !p.tryAnnotateReflectionSplice() {
			return sema.ReflectionOperand{}, false
		}
		a := annotationOf(p.consume())
		if a.tmpl == nil {
			n, kind := p.actions.ActOnTemplateSplice(&ss, a.splice)
			if kind == sema.TNKNonTemplate {
				return sema.ReflectionOperand{}, false
			}
			a.tmpl = &templateSplice{name: n, kind: kind}
		}
		name = a.tmpl.name

	case t.Is(token.KwTemplate) && ss.IsSet() && isIdentifierLike(p.peek(1)):
		p.consume()
		id := p.consume()
		info := identifierOf(id)
		if info.Invalid {
			return sema.ReflectionOperand{}, false
		}
		name, _ = p.actions.ActOnDependentTemplateName(&ss, spelling(info), id.Loc)

	case isIdentifierLike(t):
		info := identifierOf(t)
		if info.Invalid || info.Dependent {
			return sema.ReflectionOperand{}, false
		}
		c := p.actions.ClassifyName(&ss, info.Name, t.Loc)
		if c.Kind != sema.NameTemplate {
			return sema.ReflectionOperand{}, false
		}
		p.consume()
		name = c.Template

	default:
		return sema.ReflectionOperand{}, false
	}
	if p.tok().IsOneOf(token.Less, token.ColonColon, token.LParen, token.LSquare, token.Period, token.Arrow) {
		return sema.ReflectionOperand{}, false
	}
	return p.actions.ActOnReflectedTemplate(&ss, name, t.Loc), true
}

// parseReflectedNamespaceName parses a possibly qualified namespace name.
func (p *Parser) parseReflectedNamespaceName() (sema.ReflectionOperand, bool) {
	var ss sema.ScopeSpec
	if !p.parseOptionalScopeSpecifier(&ss) || ss.Invalid {
		return sema.ReflectionOperand{}, false
	}
	t := p.tok()
	if !isIdentifierLike(t) {
		return sema.ReflectionOperand{}, false
	}
	info := identifierOf(t)
	if info.Invalid || info.Dependent {
		return sema.ReflectionOperand{}, false
	}
	c := p.actions.ClassifyName(&ss, info.Name, t.Loc)
	if c.Kind != sema.NameNamespace {
		return sema.ReflectionOperand{}, false
	}
	p.consume()
	return p.actions.ActOnReflectedNamespace(&ss, t.Loc, c.Namespace), true
}

// parseBuiltin parses one of the reflection builtins. The pretty-print,
// dump, invalid-reflection and compiler-error forms take exactly one
// argument; the others take a list.
func (p *Parser) parseBuiltin() sema.ExprResult {
	kw := p.consume()
	open, ok := p.tryConsume(token.LParen)
	if !ok {
		p.report(diag.ErrExpectedLParenAfter, p.tok().Loc, kw.Kind.String())
		return sema.ExprError()
	}

	switch kw.Kind {
	case token.KwReflectPrettyPrint, token.KwReflectDump, token.KwInvalidReflection, token.KwCompilerError:
		var arg sema.ExprResult
		p.withGreaterIsOperator(true, func() { arg = p.parseConstantExpression() })
		if arg.IsInvalid() {
			p.skipUntil(stopAtSemi, token.RParen)
			return sema.ExprError()
		}
		rParen := p.tok().Loc
		if !p.expectClose(open, token.RParen) {
			return sema.ExprError()
		}
		switch kw.Kind {
		case token.KwReflectPrettyPrint:
			return p.actions.ActOnCXXReflectPrintReflection(kw.Loc, arg.Expr, rParen)
		case token.KwReflectDump:
			return p.actions.ActOnCXXReflectDumpReflection(kw.Loc, arg.Expr, rParen)
		case token.KwInvalidReflection:
			return p.actions.ActOnCXXInvalidReflectionExpr(kw.Loc, arg.Expr, rParen)
		default:
			return p.actions.ActOnCXXCompilerErrorExpr(kw.Loc, arg.Expr, rParen)
		}
	}

	args, ok := p.parseBuiltinArguments()
	if !ok {
		p.skipUntil(stopAtSemi, token.RParen)
		return sema.ExprError()
	}
	rParen := p.tok().Loc
	if !p.expectClose(open, token.RParen) {
		return sema.ExprError()
	}
	switch kw.Kind {
	case token.KwReflect:
		return p.actions.ActOnCXXReflectionReadQuery(kw.Loc, args, rParen)
	case token.KwReflectPrint:
		return p.actions.ActOnCXXReflectPrintLiteral(kw.Loc, args, rParen)
	default:
		return p.actions.ActOnCXXConcatenateExpr(kw.Loc, args, rParen)
	}
}

// parseBuiltinArguments parses a non-empty comma-separated list of constant
// expressions. An empty list reports err_expected_expression.
func (p *Parser) parseBuiltinArguments() ([]ast.Expr, bool) {
	var args []ast.Expr
	ok := true
	p.withGreaterIsOperator(true, func() {
		for {
			e := p.parseConstantExpression()
			if e.IsInvalid() {
				ok = false
				return
			}
			args = append(args, e.Expr)
			if _, more := p.tryConsume(token.Comma); !more {
				return
			}
		}
	})
	return args, ok
}

// skipBuiltinArguments skips a parenthesized argument list, if present.
func (p *Parser) skipBuiltinArguments() {
	if _, ok := p.tryConsume(token.LParen); ok {
		p.skipUntil(stopAtSemi, token.RParen)
	}
}
