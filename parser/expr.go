package parser

import (
	"strconv"
	"strings"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

type binaryOp struct {
	prec int
	op   ast.BinaryOpKind
}

var binaryOps = map[token.Kind]binaryOp{
	token.PipePipe:     {1, ast.BinaryLOr},
	token.AmpAmp:       {2, ast.BinaryLAnd},
	token.Pipe:         {3, ast.BinaryOr},
	token.Caret:        {4, ast.BinaryXor},
	token.Amp:          {5, ast.BinaryAnd},
	token.EqualEqual:   {6, ast.BinaryEQ},
	token.ExclaimEqual: {6, ast.BinaryNE},
	token.Less:         {7, ast.BinaryLT},
	token.Greater:      {7, ast.BinaryGT},
	token.LessEqual:    {7, ast.BinaryLE},
	token.GreaterEqual: {7, ast.BinaryGE},
	token.Plus:         {8, ast.BinaryAdd},
	token.Minus:        {8, ast.BinarySub},
	token.Star:         {9, ast.BinaryMul},
	token.Slash:        {9, ast.BinaryDiv},
	token.Percent:      {9, ast.BinaryRem},
}

var unaryOps = map[token.Kind]ast.UnaryOpKind{
	token.Plus:    ast.UnaryPlus,
	token.Minus:   ast.UnaryMinus,
	token.Exclaim: ast.UnaryNot,
	token.Tilde:   ast.UnaryBitNot,
}

// ParseExpression parses an assignment-free expression.
func (p *Parser) ParseExpression() sema.ExprResult {
	return p.parseConditional()
}

func (p *Parser) parseConstantExpression() sema.ExprResult {
	return p.parseConditional()
}

func (p *Parser) parseConditional() sema.ExprResult {
	cond := p.parseBinary(1)
	q, ok := p.tryConsume(token.Question)
	if !ok {
		return cond
	}
	var lhs sema.ExprResult
	p.withGreaterIsOperator(true, func() { lhs = p.ParseExpression() })
	if _, ok := p.expect(token.Colon); !ok {
		return sema.ExprError()
	}
	rhs := p.parseConditional()
	if cond.IsInvalid() || lhs.IsInvalid() || rhs.IsInvalid() {
		return sema.ExprError()
	}
	return sema.Owned(&ast.ConditionalOperator{
		ExprBase: ast.ExprBase{Loc: q.Loc},
		Cond:     cond.Expr,
		LHS:      lhs.Expr,
		RHS:      rhs.Expr,
	})
}

// parseBinary parses operators binding at least as tightly as minPrec.
func (p *Parser) parseBinary(minPrec int) sema.ExprResult {
	lhs := p.parseCastExpression()
	if lhs.IsInvalid() {
		return lhs
	}
	for {
		t := p.tok()
		info, ok := binaryOps[t.Kind]
		if !ok || info.prec < minPrec {
			return lhs
		}
		if t.Is(token.Greater) && !p.greaterIsOperator {
			return lhs
		}
		p.consume()
		rhs := p.parseBinary(info.prec + 1)
		if lhs.IsInvalid() || rhs.IsInvalid() {
			lhs = sema.ExprError()
			continue
		}
		lhs = sema.Owned(&ast.BinaryOperator{
			ExprBase: ast.ExprBase{Loc: t.Loc},
			Op:       info.op,
			LHS:      lhs.Expr,
			RHS:      rhs.Expr,
		})
	}
}

// parseCastExpression parses a unary expression, including "^operand".
func (p *Parser) parseCastExpression() sema.ExprResult {
	t := p.tok()
	if op, ok := unaryOps[t.Kind]; ok {
		p.consume()
		operand := p.parseCastExpression()
		if operand.IsInvalid() {
			return operand
		}
		return sema.Owned(&ast.UnaryOperator{ExprBase: ast.ExprBase{Loc: t.Loc}, Op: op, Operand: operand.Expr})
	}
	if t.Is(token.Caret) {
		if !p.opts.Reflection {
			p.report(diag.ErrReflectionLanguageDisabled, t.Loc)
			p.consume()
			p.parseCastExpression()
			return sema.ExprError()
		}
		return p.ParseReflectExpr()
	}
	lhs := p.parsePrimary()
	if lhs.IsInvalid() {
		return lhs
	}
	return p.parsePostfix(lhs)
}

// parsePostfix applies calls, subscripts and member accesses to lhs.
func (p *Parser) parsePostfix(lhs sema.ExprResult) sema.ExprResult {
	for {
		t := p.tok()
		switch {
		case t.Is(token.LParen):
			p.consume()
			args, ok := p.parseExpressionList(token.RParen)
			if !ok || !p.expectClose(t, token.RParen) || lhs.IsInvalid() {
				lhs = sema.ExprError()
				continue
			}
			lhs = sema.Owned(&ast.CallExpr{ExprBase: ast.ExprBase{Loc: t.Loc}, Callee: lhs.Expr, Args: args})

		case t.Is(token.LSquare) && !p.atSplice(0) && !p.peek(1).Is(token.Hash):
			p.consume()
			var idx sema.ExprResult
			p.withGreaterIsOperator(true, func() { idx = p.ParseExpression() })
			if !p.expectClose(t, token.RSquare) || lhs.IsInvalid() || idx.IsInvalid() {
				lhs = sema.ExprError()
				continue
			}
			lhs = sema.Owned(&ast.SubscriptExpr{ExprBase: ast.ExprBase{Loc: t.Loc}, Base: lhs.Expr, Index: idx.Expr})

		case t.IsOneOf(token.Period, token.Arrow):
			next := p.peek(1)
			if p.atSplice(1) || next.Is(token.KwTemplate) && p.atSplice(2) {
				lhs = p.parseMemberSplice(lhs)
				continue
			}
			p.consume()
			name, ok := p.expect(token.Identifier)
			if !ok || lhs.IsInvalid() {
				return sema.ExprError()
			}
			lhs = sema.Owned(&ast.MemberExpr{
				ExprBase: ast.ExprBase{Loc: name.Loc},
				Base:     lhs.Expr,
				Arrow:    t.Is(token.Arrow),
				Member:   name.Text,
			})

		default:
			return lhs
		}
	}
}

// parseExpressionList parses comma-separated expressions up to, but not
// including, close.
func (p *Parser) parseExpressionList(close token.Kind) ([]ast.Expr, bool) {
	var exprs []ast.Expr
	ok := true
	p.withGreaterIsOperator(true, func() {
		if p.tok().Is(close) {
			return
		}
		for {
			e := p.ParseExpression()
			if e.IsInvalid() {
				ok = false
			} else {
				exprs = append(exprs, e.Expr)
			}
			if _, more := p.tryConsume(token.Comma); !more {
				return
			}
		}
	})
	return exprs, ok
}

func (p *Parser) parsePrimary() sema.ExprResult {
	t := p.tok()
	loc := ast.ExprBase{Loc: t.Loc}
	switch t.Kind {
	case token.NumericConstant:
		p.consume()
		v, err := parseInteger(t.Text)
		if err != nil {
			p.report(diag.ErrExpectedExpression, t.Loc)
			return sema.ExprError()
		}
		return sema.Owned(&ast.IntegerLiteral{ExprBase: loc, Value: v, Text: t.Text})

	case token.CharConstant:
		p.consume()
		s, err := strconv.Unquote(t.Text)
		if err != nil || len(s) == 0 {
			p.report(diag.ErrExpectedExpression, t.Loc)
			return sema.ExprError()
		}
		return sema.Owned(&ast.IntegerLiteral{ExprBase: loc, Value: int64(s[0]), Text: t.Text})

	case token.StringLiteral:
		var b strings.Builder
		for p.tok().Is(token.StringLiteral) {
			s := p.consume()
			v, err := strconv.Unquote(s.Text)
			if err != nil {
				p.report(diag.ErrExpectedExpression, s.Loc)
				return sema.ExprError()
			}
			b.WriteString(v)
		}
		return sema.Owned(&ast.StringLiteral{ExprBase: loc, Value: b.String()})

	case token.KwTrue, token.KwFalse:
		p.consume()
		return sema.Owned(&ast.BoolLiteral{ExprBase: loc, Value: t.Is(token.KwTrue)})

	case token.KwNullptr:
		p.consume()
		return sema.Owned(&ast.NullPtrLiteral{ExprBase: loc})

	case token.LParen:
		p.consume()
		var inner sema.ExprResult
		p.withGreaterIsOperator(true, func() { inner = p.ParseExpression() })
		if !p.expectClose(t, token.RParen) || inner.IsInvalid() {
			return sema.ExprError()
		}
		return sema.Owned(&ast.ParenExpr{ExprBase: loc, Inner: inner.Expr})

	case token.KwReflect, token.KwReflectPrint, token.KwReflectPrettyPrint, token.KwReflectDump,
		token.KwInvalidReflection, token.KwCompilerError, token.KwConcatenate:
		if !p.opts.Reflection {
			p.report(diag.ErrReflectionLanguageDisabled, t.Loc)
			p.consume()
			p.skipBuiltinArguments()
			return sema.ExprError()
		}
		return p.parseBuiltin()
	}

	if p.atPackSplice() {
		return p.ParsePackSplice()
	}
	return p.parseIdExpression()
}

// parseIdExpression parses a possibly qualified name, template-id or
// splice in expression position.
func (p *Parser) parseIdExpression() sema.ExprResult {
	var ss sema.ScopeSpec
	if !p.parseOptionalScopeSpecifier(&ss) {
		return sema.ExprError()
	}
	t := p.tok()
	switch {
	case t.Is(token.KwTemplate) && p.atSplice(1):
		if !p.parseTemplateSpliceID(&ss, true) {
			return sema.ExprError()
		}
		a := p.consume()
		return p.templateIDExpr(annotationOf(a).tid)

	case t.Is(token.AnnotTemplateID):
		p.consume()
		return p.templateIDExpr(annotationOf(t).tid)

	case p.atSplice(0):
		return p.ParseExprSplice()

	case isIdentifierLike(t):
		info := identifierOf(t)
		switch {
		case info.Invalid:
			p.consume()
			return sema.Owned(&ast.RecoveryExpr{ExprBase: ast.ExprBase{Loc: t.Loc}})
		case info.Dependent:
			p.consume()
			return sema.Owned(&ast.UnresolvedLookupExpr{
				ExprBase:  ast.ExprBase{Loc: t.Loc},
				Qualifier: ss.Qualifier,
				Name:      ast.Identifier(spelling(info)),
			})
		}
		p.consume()
		return p.actions.ActOnIdExpression(&ss, info.Name, t.Loc)
	}
	if ss.IsSet() {
		if !ss.Invalid {
			p.report(diag.ErrExpected, t.Loc, "identifier")
		}
		return sema.ExprError()
	}
	p.report(diag.ErrExpectedExpression, t.Loc)
	return sema.ExprError()
}

// parseInteger converts a C++ integer literal, ignoring digit separators
// and suffixes.
func parseInteger(text string) (int64, error) {
	s := strings.ReplaceAll(text, "'", "")
	s = strings.TrimRight(s, "uUlL")
	return strconv.ParseInt(s, 0, 64)
}
