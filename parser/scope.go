package parser

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/token"
)

// parseOptionalScopeSpecifier parses a nested-name-specifier into ss, if
// one is present. Template-ids and splices examined on the way are left
// annotated when they turn out not to be followed by "::". It reports false
// after a diagnosed error.
func (p *Parser) parseOptionalScopeSpecifier(ss *sema.ScopeSpec) bool {
	if t := p.tok(); t.Is(token.ColonColon) {
		p.consume()
		p.actions.ActOnCXXGlobalScopeSpecifier(ss, t.Loc)
	}
	for {
		p.tryAnnotateIdentifierSplice()
		t := p.tok()
		switch {
		case t.Is(token.AnnotTemplateID):
			tid := annotationOf(t).tid
			if !p.peek(1).Is(token.ColonColon) || tid.kind != sema.TNKTypeTemplate && tid.kind != sema.TNKDependentTemplateName {
				return true
			}
			typ := p.templateIDType(tid)
			p.consume()
			cc := p.consume()
			if typ.IsInvalid() {
				ss.SetInvalid(ast.SourceRange{Begin: t.Loc, End: cc.Loc})
				return false
			}
			p.actions.ActOnCXXNestedNameSpecifierType(ss, typ.Type, t.Loc, cc.Loc)

		case t.Is(token.KwTemplate):
			if !ss.IsSet() {
				return true
			}
			if p.atSplice(1) {
				if !p.parseTemplateSpliceID(ss, true) {
					return false
				}
				continue
			}
			if !isIdentifierLike(p.peek(1)) || !p.peek(2).Is(token.Less) {
				return true
			}
			if !p.parseDependentTemplateID(ss) {
				return false
			}

		case p.atSplice(0):
			if ss.IsSet() {
				// A splice may begin a qualifier but cannot follow "::".
				p.report(diag.ErrExpected, t.Loc, "identifier")
				ss.SetInvalid(ast.SourceRange{Begin: ss.Range.Begin, End: t.Loc})
				if p.tryAnnotateReflectionSplice() {
					p.consume()
				}
				return false
			}
			if !p.tryAnnotateReflectionSplice() {
				return false
			}
			if !p.peek(1).Is(token.ColonColon) {
				return true
			}
			a := annotationOf(p.consume())
			cc := p.consume()
			if a.scope != nil {
				*ss = *a.scope
				continue
			}
			if !p.actions.ActOnCXXNestedNameSpecifierSplice(ss, a.splice, cc.Loc) {
				return false
			}
			scope := *ss
			a.scope = &scope

		case isIdentifierLike(t):
			info := identifierOf(t)
			next := p.peek(1)
			switch {
			case next.Is(token.ColonColon):
				p.consume()
				cc := p.consume()
				switch {
				case info.Invalid:
					ss.SetInvalid(ast.SourceRange{Begin: t.Loc, End: cc.Loc})
					return false
				case info.Dependent:
					p.actions.ActOnCXXDependentNestedNameSpecifier(ss, spelling(info), t.Loc, cc.Loc)
				default:
					if !p.actions.ActOnCXXNestedNameSpecifier(ss, info.Name, t.Loc, cc.Loc) {
						return false
					}
				}
			case next.Is(token.Less) && !info.Invalid && !info.Dependent:
				c := p.actions.ClassifyName(ss, info.Name, t.Loc)
				if c.Kind != sema.NameTemplate {
					return true
				}
				if !p.parseTemplateID(ss, c) {
					return false
				}
			default:
				return true
			}

		default:
			return true
		}
	}
}

// parseTemplateID parses "name <args>" for a name classified as a template
// and annotates it as a template-id.
func (p *Parser) parseTemplateID(ss *sema.ScopeSpec, c sema.Classification) bool {
	start := p.pos
	name := p.consume()
	args, ok := p.parseTemplateArgumentList()
	if !ok {
		return false
	}
	p.annotate(start, token.AnnotTemplateID).tid = &templateID{
		ss:   *ss,
		name: c.Template,
		kind: c.TemplateKind,
		args: args,
		loc:  name.Loc,
	}
	return true
}

// parseDependentTemplateID parses "template name <args>" after a dependent
// qualifier and annotates it as a template-id.
func (p *Parser) parseDependentTemplateID(ss *sema.ScopeSpec) bool {
	start := p.pos
	p.consume()
	t := p.consume()
	info := identifierOf(t)
	if info.Invalid {
		p.parseTemplateArgumentList()
		return false
	}
	name, kind := p.actions.ActOnDependentTemplateName(ss, spelling(info), t.Loc)
	args, ok := p.parseTemplateArgumentList()
	if !ok {
		return false
	}
	p.annotate(start, token.AnnotTemplateID).tid = &templateID{
		ss:   *ss,
		name: name,
		kind: kind,
		args: args,
		loc:  t.Loc,
	}
	return true
}

// templateIDType returns the type named by an annotated template-id.
func (p *Parser) templateIDType(tid *templateID) sema.TypeResult {
	if tid.typ != nil {
		return *tid.typ
	}
	res := p.actions.ActOnTemplateIdType(&tid.ss, tid.name, tid.kind, tid.args, tid.loc)
	if !res.IsInvalid() {
		tid.typ = &res
	}
	return res
}

// templateIDExpr returns the expression named by an annotated template-id.
func (p *Parser) templateIDExpr(tid *templateID) sema.ExprResult {
	if tid.expr != nil {
		return *tid.expr
	}
	res := p.actions.ActOnTemplateIdExpr(&tid.ss, tid.name, tid.kind, tid.args, tid.loc)
	if !res.IsInvalid() {
		tid.expr = &res
	}
	return res
}
