// Package sema is the semantic-analysis side of splice and reflection
// parsing. Actions is the contract the parser drives; Sema is a reference
// implementation with its own symbol table and constant evaluator.
package sema

import (
	"io"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/templatename"
)

// Function is the constant-evaluation body of a declared function.
type Function func(args []Value) (Value, error)

// Sema resolves names, evaluates reflections and builds the nodes for
// splices. It is not safe for concurrent use.
type Sema struct {
	ast     *ast.Context
	names   *templatename.Context
	diags   diag.Sink
	members map[*ast.DeclContext]map[string][]ast.NamedDecl
	owners  map[*ast.DeclContext]ast.NamedDecl
	funcs   map[*ast.ValueDecl]Function
	current *ast.DeclContext
	evalCtx []EvaluationContext

	interceptor Interceptor
	evaluations int
	invalidIDs  int

	// Output receives the text of __reflect_print and friends.
	Output io.Writer
	// OnEvaluate, if set, observes every top-level constant evaluation.
	OnEvaluate func(e ast.Expr)
}

// New returns a Sema with an empty translation unit. Diagnostics go to sink,
// usually the parser's diag.Engine so that tentative parses can hold them.
func New(sink diag.Sink, interceptors ...Interceptor) *Sema {
	if sink == nil {
		sink = diag.Discard
	}
	c := ast.NewContext()
	s := &Sema{
		ast:         c,
		names:       templatename.NewContext(c),
		diags:       sink,
		members:     make(map[*ast.DeclContext]map[string][]ast.NamedDecl),
		owners:      make(map[*ast.DeclContext]ast.NamedDecl),
		funcs:       make(map[*ast.ValueDecl]Function),
		current:     c.TranslationUnit(),
		interceptor: chainInterceptors(interceptors),
		Output:      io.Discard,
	}
	s.declareQueries()
	return s
}

// AST returns the declaration arena.
func (s *Sema) AST() *ast.Context { return s.ast }

// Names returns the template name uniquing table.
func (s *Sema) Names() *templatename.Context { return s.names }

// Evaluations returns the number of top-level constant evaluations so far.
func (s *Sema) Evaluations() int { return s.evaluations }

// SetDiagnostics replaces the diagnostic sink.
func (s *Sema) SetDiagnostics(sink diag.Sink) { s.diags = sink }

func (s *Sema) report(kind diag.Kind, loc ast.SourceLocation, args ...any) {
	s.diags.Report(diag.New(kind, loc, args...))
}

// EnterContext makes dc the scope for unqualified lookup until the returned
// function is called.
func (s *Sema) EnterContext(dc *ast.DeclContext) (restore func()) {
	prev := s.current
	s.current = dc
	return func() { s.current = prev }
}

// PushEvaluationContext enters an expression evaluation context.
func (s *Sema) PushEvaluationContext(ctx EvaluationContext) {
	s.evalCtx = append(s.evalCtx, ctx)
}

// PopEvaluationContext leaves the innermost evaluation context.
func (s *Sema) PopEvaluationContext() {
	s.evalCtx = s.evalCtx[:len(s.evalCtx)-1]
}

func (s *Sema) isUnevaluated() bool {
	n := len(s.evalCtx)
	return n > 0 && s.evalCtx[n-1] == Unevaluated
}

func (s *Sema) scope(dc *ast.DeclContext) *ast.DeclContext {
	if dc == nil {
		return s.ast.TranslationUnit()
	}
	return dc
}

func (s *Sema) add(d ast.NamedDecl) {
	dc := d.DeclContext()
	m := s.members[dc]
	if m == nil {
		m = make(map[string][]ast.NamedDecl)
		s.members[dc] = m
	}
	m[d.Name()] = append(m[d.Name()], d)
}

// DeclareNamespace declares a namespace in parent (nil is the translation
// unit).
func (s *Sema) DeclareNamespace(parent *ast.DeclContext, name string) *ast.NamespaceDecl {
	d := s.ast.NewNamespace(s.scope(parent), name, ast.SourceLocation{})
	s.add(d)
	s.owners[d.Inner()] = d
	return d
}

// DeclareTemplate declares a template.
func (s *Sema) DeclareTemplate(parent *ast.DeclContext, kind ast.TemplateDeclKind, name string) *ast.TemplateDecl {
	d := s.ast.NewTemplate(s.scope(parent), kind, name, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareTemplateTemplateParm declares a template template parameter.
func (s *Sema) DeclareTemplateTemplateParm(parent *ast.DeclContext, name string, pack bool) *ast.TemplateDecl {
	d := s.ast.NewTemplateTemplateParm(s.scope(parent), name, 0, 0, pack, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareClass declares a class.
func (s *Sema) DeclareClass(parent *ast.DeclContext, name string) *ast.TypeDecl {
	d := s.ast.NewType(s.scope(parent), ast.ClassType, name, ast.SourceLocation{})
	s.add(d)
	s.owners[d.Inner()] = d
	return d
}

// DeclareTypeParm declares a template type parameter.
func (s *Sema) DeclareTypeParm(parent *ast.DeclContext, name string, pack bool) *ast.TypeDecl {
	d := s.ast.NewTemplateTypeParm(s.scope(parent), name, pack, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareVariable declares a variable with an optional constant initializer.
func (s *Sema) DeclareVariable(parent *ast.DeclContext, name string, typ ast.Type, init ast.Expr) *ast.ValueDecl {
	d := s.ast.NewValue(s.scope(parent), ast.VarDecl, name, typ, init, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareField declares a data member of class.
func (s *Sema) DeclareField(class *ast.TypeDecl, name string, typ ast.Type) *ast.ValueDecl {
	d := s.ast.NewValue(class.Inner(), ast.FieldDecl, name, typ, nil, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareFunction declares a function whose calls evaluate with fn.
func (s *Sema) DeclareFunction(parent *ast.DeclContext, name string, fn Function) *ast.ValueDecl {
	d := s.ast.NewValue(s.scope(parent), ast.FunctionDecl, name, nil, nil, ast.SourceLocation{})
	s.add(d)
	s.funcs[d] = fn
	return d
}

// DeclareValueParm declares a non-type template parameter.
func (s *Sema) DeclareValueParm(parent *ast.DeclContext, name string, pack bool) *ast.ValueDecl {
	d := s.ast.NewNonTypeTemplateParm(s.scope(parent), name, nil, pack, ast.SourceLocation{})
	s.add(d)
	return d
}

// DeclareEnumerator declares an enumerator with a value.
func (s *Sema) DeclareEnumerator(parent *ast.DeclContext, name string, value int64) *ast.ValueDecl {
	d := s.ast.NewValue(s.scope(parent), ast.EnumConstantDecl, name, &ast.BuiltinType{Name: "int"},
		&ast.IntegerLiteral{Value: value}, ast.SourceLocation{})
	s.add(d)
	return d
}

// lookupIn finds name declared directly in dc.
func (s *Sema) lookupIn(dc *ast.DeclContext, name string) []ast.NamedDecl {
	return s.members[dc][name]
}

// lookup finds name in the current scope or any enclosing one.
func (s *Sema) lookup(name string) []ast.NamedDecl {
	for dc := s.current; dc != nil; dc = dc.Parent {
		if decls := s.lookupIn(dc, name); len(decls) > 0 {
			return decls
		}
	}
	return nil
}

// ClassifyName looks name up, qualified by ss when it is set.
func (s *Sema) ClassifyName(ss *ScopeSpec, name string, loc ast.SourceLocation) Classification {
	var decls []ast.NamedDecl
	switch {
	case ss.Invalid:
		return Classification{}
	case ss.IsValid():
		if ss.Qualifier.IsDependent() {
			return Classification{Kind: NameDependent}
		}
		dc := ss.Qualifier.Context(s.ast.TranslationUnit())
		if dc == nil {
			return Classification{}
		}
		decls = s.lookupIn(dc, name)
	default:
		decls = s.lookup(name)
	}
	if len(decls) == 0 {
		return Classification{}
	}

	switch d := decls[0].(type) {
	case *ast.NamespaceDecl:
		return Classification{Kind: NameNamespace, Namespace: d}
	case *ast.TypeDecl:
		return Classification{Kind: NameType, Type: d}
	case *ast.ValueDecl:
		return Classification{Kind: NameValue, Value: d}
	case *ast.TemplateDecl:
		c := Classification{Kind: NameTemplate, TemplateKind: TemplateNameKindOf(d)}
		if len(decls) > 1 {
			c.Template = s.names.OverloadedTemplateName(decls)
			return c
		}
		if ss.IsValid() {
			c.Template = s.names.QualifiedTemplateName(ss.Qualifier, false, d)
		} else {
			c.Template = templatename.FromDecl(d)
		}
		return c
	}
	return Classification{}
}

// ActOnCXXGlobalScopeSpecifier starts ss with "::".
func (s *Sema) ActOnCXXGlobalScopeSpecifier(ss *ScopeSpec, ccLoc ast.SourceLocation) {
	ss.extend(ast.Global(), ccLoc, ccLoc)
}

// ActOnCXXNestedNameSpecifier appends "name::" to ss. It reports whether the
// name designates a scope.
func (s *Sema) ActOnCXXNestedNameSpecifier(ss *ScopeSpec, name string, loc, ccLoc ast.SourceLocation) bool {
	c := s.ClassifyName(ss, name, loc)
	switch c.Kind {
	case NameNamespace:
		ss.extend(ss.Qualifier.WithNamespace(c.Namespace), loc, ccLoc)
	case NameType:
		ss.extend(ss.Qualifier.WithType(&ast.TagType{Decl: c.Type}), loc, ccLoc)
	case NameDependent:
		ss.extend(ss.Qualifier.WithIdentifier(name), loc, ccLoc)
	default:
		s.report(diag.ErrUndeclaredQualifier, loc, name)
		ss.SetInvalid(ast.SourceRange{Begin: loc, End: ccLoc})
		return false
	}
	return true
}

// ActOnCXXDependentNestedNameSpecifier appends "name::" for a name that is
// known only after instantiation, such as a dependent identifier splice.
func (s *Sema) ActOnCXXDependentNestedNameSpecifier(ss *ScopeSpec, name string, loc, ccLoc ast.SourceLocation) {
	ss.extend(ss.Qualifier.WithIdentifier(name), loc, ccLoc)
}

// ActOnCXXNestedNameSpecifierType appends "T::" for a type named by a
// template-id.
func (s *Sema) ActOnCXXNestedNameSpecifierType(ss *ScopeSpec, t ast.Type, loc, ccLoc ast.SourceLocation) {
	ss.extend(ss.Qualifier.WithType(t), loc, ccLoc)
}

// ActOnIdExpression resolves an identifier in expression position.
func (s *Sema) ActOnIdExpression(ss *ScopeSpec, name string, loc ast.SourceLocation) ExprResult {
	c := s.ClassifyName(ss, name, loc)
	switch c.Kind {
	case NameValue:
		return Owned(&ast.DeclRefExpr{ExprBase: ast.ExprBase{Loc: loc}, Qualifier: ss.Qualifier, Decl: c.Value})
	case NameDependent:
		return Owned(&ast.UnresolvedLookupExpr{ExprBase: ast.ExprBase{Loc: loc}, Qualifier: ss.Qualifier, Name: ast.Identifier(name)})
	case NameUnknown:
		if !ss.Invalid {
			s.report(diag.ErrUndeclaredVarUse, loc, name)
		}
	default:
		s.report(diag.ErrExpectedExpression, loc)
	}
	return ExprError()
}

// ActOnDependentTemplateName names "ss::template name".
func (s *Sema) ActOnDependentTemplateName(ss *ScopeSpec, name string, loc ast.SourceLocation) (templatename.Name, TemplateNameKind) {
	return s.names.DependentTemplateName(ss.Qualifier, name), TNKDependentTemplateName
}

// ActOnTemplateIdType builds the type "tmpl<args>".
func (s *Sema) ActOnTemplateIdType(ss *ScopeSpec, tmpl templatename.Name, kind TemplateNameKind, args []ParsedTemplateArgument, loc ast.SourceLocation) TypeResult {
	switch kind {
	case TNKTypeTemplate, TNKDependentTemplateName:
		return TypeResult{Type: &TemplateSpecializationType{Template: tmpl, Args: args}}
	}
	s.report(diag.ErrExpectedType, loc)
	return TypeError()
}

// ActOnTemplateIdExpr builds the expression "tmpl<args>".
func (s *Sema) ActOnTemplateIdExpr(ss *ScopeSpec, tmpl templatename.Name, kind TemplateNameKind, args []ParsedTemplateArgument, loc ast.SourceLocation) ExprResult {
	if kind == TNKTypeTemplate {
		s.report(diag.ErrExpectedExpression, loc)
		return ExprError()
	}
	return Owned(&TemplateIDExpr{ExprBase: ast.ExprBase{Loc: loc}, Template: tmpl, Args: args})
}

// ActOnTypeName resolves a (possibly qualified) type name.
func (s *Sema) ActOnTypeName(ss *ScopeSpec, name string, loc ast.SourceLocation) TypeResult {
	c := s.ClassifyName(ss, name, loc)
	switch c.Kind {
	case NameType:
		return TypeResult{Type: &ast.TagType{Qualifier: ss.Qualifier, Decl: c.Type}}
	case NameDependent:
		return TypeResult{Type: &ast.DependentNameType{Qualifier: ss.Qualifier, Name: name}}
	}
	s.report(diag.ErrExpectedType, loc)
	return TypeError()
}
