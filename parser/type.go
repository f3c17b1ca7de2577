package parser

import (
	"strings"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

// ParseTypeID parses a type-id: cv-qualifiers, a type specifier and an
// abstract declarator made of '*', '&' and "&&".
func (p *Parser) ParseTypeID() sema.TypeResult {
	var isConst, isVolatile bool
	for {
		if _, ok := p.tryConsume(token.KwConst); ok {
			isConst = true
		} else if _, ok := p.tryConsume(token.KwVolatile); ok {
			isVolatile = true
		} else {
			break
		}
	}
	res := p.parseTypeSpecifier()
	if res.IsInvalid() {
		return res
	}
	ty := res.Type
	for {
		switch t := p.tok(); t.Kind {
		case token.KwConst, token.KwVolatile:
			p.consume()
			if t.Is(token.KwConst) {
				isConst = true
			} else {
				isVolatile = true
			}
			continue
		}
		break
	}
	if isConst || isVolatile {
		ty = &ast.QualifiedType{Base: ty, Const: isConst, Volatile: isVolatile}
	}
	for {
		switch p.tok().Kind {
		case token.Star:
			p.consume()
			ty = &ast.PointerType{Pointee: ty}
		case token.Amp:
			p.consume()
			ty = &ast.ReferenceType{Pointee: ty}
		case token.AmpAmp:
			p.consume()
			ty = &ast.ReferenceType{Pointee: ty, RValue: true}
		default:
			return sema.TypeResult{Type: ty}
		}
	}
}

// parseTypeSpecifier parses the type named by a builtin keyword sequence,
// a splice, a pack splice, or a possibly qualified name or template-id.
func (p *Parser) parseTypeSpecifier() sema.TypeResult {
	t := p.tok()
	switch {
	case t.Kind.IsBuiltinType():
		var words []string
		for p.tok().Kind.IsBuiltinType() {
			words = append(words, p.consume().Kind.String())
		}
		return sema.TypeResult{Type: &ast.BuiltinType{Name: strings.Join(words, " ")}}

	case t.Is(token.AnnotTypeSplice):
		p.consume()
		return *annotationOf(t).typ

	case t.Is(token.KwTypename):
		if p.atSplice(1) {
			return p.parseTypenameSplice()
		}
		p.consume()

	case p.atSplice(0):
		return p.parseTypeSplice()

	case p.atPackSplice():
		return p.parseTypePackSplice()
	}

	var ss sema.ScopeSpec
	if !p.parseOptionalScopeSpecifier(&ss) {
		return sema.TypeError()
	}
	t = p.tok()
	switch {
	case t.Is(token.KwTemplate) && p.atSplice(1):
		if !p.parseTemplateSpliceID(&ss, true) {
			return sema.TypeError()
		}
		t = p.tok()
	case p.atSplice(0) && ss.IsEmpty():
		return p.parseTypeSplice()
	}
	switch {
	case t.Is(token.AnnotTemplateID):
		p.consume()
		return p.templateIDType(annotationOf(t).tid)
	case isIdentifierLike(t):
		p.consume()
		info := identifierOf(t)
		switch {
		case info.Invalid:
			return sema.TypeError()
		case info.Dependent:
			return sema.TypeResult{Type: &ast.DependentNameType{Qualifier: ss.Qualifier, Name: spelling(info)}}
		}
		if ss.Invalid {
			return sema.TypeError()
		}
		return p.actions.ActOnTypeName(&ss, info.Name, t.Loc)
	}
	if !ss.Invalid {
		p.report(diag.ErrExpectedType, t.Loc)
	}
	return sema.TypeError()
}

// parseTypenameSplice parses "typename [: r :]" and "typename [: r :] <args>".
// Inside a tentative parse the resolved type splice is annotated so that a
// replay does not evaluate it again.
func (p *Parser) parseTypenameSplice() sema.TypeResult {
	start := p.pos
	p.consume()
	if !p.tryAnnotateReflectionSplice() {
		return sema.TypeError()
	}
	if p.peek(1).Is(token.Less) {
		var ss sema.ScopeSpec
		if !p.parseTemplateSpliceID(&ss, false) {
			return sema.TypeError()
		}
		t := p.consume()
		return p.templateIDType(annotationOf(t).tid)
	}
	res := p.parseTypeSplice()
	if !res.IsInvalid() && p.tentativeDepth > 0 {
		p.annotate(start, token.AnnotTypeSplice).typ = &res
		p.consume()
	}
	return res
}

// isTypeID reports whether a type-id starts at the current token. Names are
// classified by looking them up; nothing is consumed.
func (p *Parser) isTypeID() bool {
	t := p.tok()
	switch {
	case t.Kind.IsBuiltinType(), t.IsOneOf(token.KwConst, token.KwVolatile, token.KwTypename, token.AnnotTypeSplice):
		return true
	case p.atSplice(0), p.atPackSplice():
		return false
	}
	return p.lookahead(func() bool {
		var ss sema.ScopeSpec
		if !p.parseOptionalScopeSpecifier(&ss) || ss.Invalid {
			return false
		}
		t := p.tok()
		if t.Is(token.KwTemplate) && p.atSplice(1) {
			if !p.parseTemplateSpliceID(&ss, true) {
				return false
			}
			t = p.tok()
		}
		switch {
		case t.Is(token.AnnotTemplateID):
			return annotationOf(t).tid.kind == sema.TNKTypeTemplate
		case isIdentifierLike(t):
			info := identifierOf(t)
			if info.Invalid || info.Dependent {
				return false
			}
			return p.actions.ClassifyName(&ss, info.Name, t.Loc).Kind == sema.NameType
		}
		return false
	})
}
