package parser

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/templatename"
	"github.com/broady/metacxx/token"
)

// annotation replaces the raw tokens [start, end) with a single token of
// kind. Besides the parsed construct it caches the semantic results computed
// for it, so replaying the token after a revert does not evaluate anything
// again. Only valid results are cached.
type annotation struct {
	kind        token.Kind
	start, end  int
	unevaluated bool

	splice sema.ParsedSplice
	ident  sema.IdentifierInfo
	tid    *templateID

	expr  *sema.ExprResult
	typ   *sema.TypeResult
	arg   *sema.ParsedTemplateArgument
	scope *sema.ScopeSpec
	tmpl  *templateSplice
}

// templateID is the payload of an annot_template_id token.
type templateID struct {
	ss   sema.ScopeSpec
	name templatename.Name
	kind sema.TemplateNameKind
	args []sema.ParsedTemplateArgument
	loc  ast.SourceLocation

	typ  *sema.TypeResult
	expr *sema.ExprResult
}

// templateSplice caches the resolution of "template [: r :]".
type templateSplice struct {
	name templatename.Name
	kind sema.TemplateNameKind
}

// annotationAt returns the annotation starting at raw index i. An
// annotation recorded in a different evaluation context is stale: it is
// evicted and the raw tokens are parsed again.
func (p *Parser) annotationAt(i int) *annotation {
	a := p.annots[i]
	if a == nil {
		return nil
	}
	if a.unevaluated != (p.unevaluated > 0) {
		delete(p.annots, i)
		p.logger.Debug("annotation evicted",
			"kind", a.kind.String(),
			"loc", p.toks[i].Loc.String())
		return nil
	}
	return a
}

// annotate records the tokens from start up to the current position as one
// annotation and rewinds to start, so the annotation is the current token.
func (p *Parser) annotate(start int, kind token.Kind) *annotation {
	a := &annotation{
		kind:        kind,
		start:       start,
		end:         p.pos,
		unevaluated: p.unevaluated > 0,
	}
	p.annots[start] = a
	p.pos = start
	p.logger.Debug("annotation created",
		"kind", kind.String(),
		"loc", p.toks[start].Loc.String(),
		"tokens", a.end-a.start)
	return a
}

// annotationOf returns the annotation carried by t, or nil.
func annotationOf(t token.Token) *annotation {
	a, _ := t.Annotation.(*annotation)
	return a
}
