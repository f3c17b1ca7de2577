package sema

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/templatename"
)

// spliced evaluates the reflection of a non-dependent splice. Invalid
// reflections and evaluation failures are diagnosed.
func (s *Sema) spliced(sp ParsedSplice) (Reflection, bool) {
	v, err := s.Evaluate(sp.Expr)
	if err != nil {
		s.diagnoseEvaluation(err, sp.Begin)
		return Reflection{}, false
	}
	if v.Kind != ValueReflection {
		s.report(diag.ErrNotConstantExpression, sp.Begin, v.String()+" is not a reflection")
		return Reflection{}, false
	}
	switch v.Refl.Kind {
	case ReflectionInvalid:
		s.report(diag.ErrInvalidReflection, sp.Begin, v.Refl.Message)
		return Reflection{}, false
	case ReflectionNull:
		s.report(diag.ErrInvalidReflection, sp.Begin, "null reflection")
		return Reflection{}, false
	}
	return v.Refl, true
}

func quoteSplice(sp ParsedSplice) string {
	return "[: " + ast.Sprint(sp.Expr, ast.PrintingPolicy{}) + " :]"
}

// ActOnCXXNestedNameSpecifierSplice appends "[: r :]::" to ss. The
// reflection must designate a namespace or a class.
func (s *Sema) ActOnCXXNestedNameSpecifierSplice(ss *ScopeSpec, sp ParsedSplice, ccLoc ast.SourceLocation) bool {
	return run(s, "ActOnCXXNestedNameSpecifierSplice", sp.Begin, func() (bool, bool) {
		if sp.IsDependent() {
			ss.extend(ss.Qualifier.WithSplice(sp.Expr), sp.Begin, ccLoc)
			return true, true
		}
		r, ok := s.spliced(sp)
		if ok {
			switch r.Kind {
			case ReflectionNamespace:
				if r.Namespace == nil {
					ss.extend(ast.Global(), sp.Begin, ccLoc)
				} else {
					ss.extend(ss.Qualifier.WithNamespace(r.Namespace), sp.Begin, ccLoc)
				}
				return true, true
			case ReflectionType:
				if t, isTag := r.Type.(*ast.TagType); isTag && t.Decl.Kind() == ast.ClassType {
					ss.extend(ss.Qualifier.WithType(r.Type), sp.Begin, ccLoc)
					return true, true
				}
			}
			s.report(diag.ErrSpliceNotScope, sp.Begin, quoteSplice(sp))
		}
		ss.SetInvalid(ast.SourceRange{Begin: sp.Begin, End: ccLoc})
		return false, false
	})
}

// ActOnCXXExprSpliceExpr builds "[: r :]" in expression position.
func (s *Sema) ActOnCXXExprSpliceExpr(sp ParsedSplice) ExprResult {
	return run(s, "ActOnCXXExprSpliceExpr", sp.Begin, func() (ExprResult, bool) {
		e := &ExprSpliceExpr{ExprBase: ast.ExprBase{Loc: sp.Begin}, Refl: sp.Expr, End: sp.End}
		if sp.IsDependent() {
			return Owned(e), true
		}
		r, ok := s.spliced(sp)
		if !ok {
			return ExprError(), false
		}
		switch r.Kind {
		case ReflectionDecl:
			e.Resolved = &ast.DeclRefExpr{ExprBase: ast.ExprBase{Loc: sp.Begin}, Decl: r.Decl}
		case ReflectionExpr:
			e.Resolved = r.Expr
		default:
			s.report(diag.ErrSpliceNotExpression, sp.Begin, quoteSplice(sp))
			return ExprError(), false
		}
		return Owned(e), true
	})
}

// ActOnCXXMemberExprSpliceExpr builds "base.[: r :]" and its arrow and
// template forms. A resolved member must be a field or a function.
func (s *Sema) ActOnCXXMemberExprSpliceExpr(base ast.Expr, arrow bool, sp ParsedSplice, templateKw, hasArgs bool, args []ParsedTemplateArgument) ExprResult {
	return run(s, "ActOnCXXMemberExprSpliceExpr", sp.Begin, func() (ExprResult, bool) {
		e := &MemberSpliceExpr{
			ExprBase:        ast.ExprBase{Loc: base.Location()},
			Base:            base,
			Arrow:           arrow,
			Refl:            sp.Expr,
			TemplateKeyword: templateKw,
			HasArgs:         hasArgs,
			Args:            args,
		}
		if sp.IsDependent() {
			return Owned(e), true
		}
		r, ok := s.spliced(sp)
		if !ok {
			return ExprError(), false
		}
		switch {
		case r.Kind == ReflectionDecl && (r.Decl.Kind() == ast.FieldDecl || r.Decl.Kind() == ast.FunctionDecl):
			e.Member = r.Decl
		case r.Kind == ReflectionTemplate && r.Template.AsTemplateDecl() != nil:
			e.Member = r.Template.AsTemplateDecl()
		default:
			s.report(diag.ErrSpliceNotExpression, sp.Begin, quoteSplice(sp))
			return ExprError(), false
		}
		return Owned(e), true
	})
}

// ActOnCXXPackSpliceExpr builds "...[< r >]". The pack is expanded at
// instantiation, so nothing is evaluated here.
func (s *Sema) ActOnCXXPackSpliceExpr(sp ParsedSplice) ExprResult {
	return run(s, "ActOnCXXPackSpliceExpr", sp.Begin, func() (ExprResult, bool) {
		return Owned(&PackSpliceExpr{ExprBase: ast.ExprBase{Loc: sp.Begin}, Refl: sp.Expr, End: sp.End}), true
	})
}

// ActOnTypeSplice resolves "typename [: r :]".
func (s *Sema) ActOnTypeSplice(sp ParsedSplice) TypeResult {
	return run(s, "ActOnTypeSplice", sp.Begin, func() (TypeResult, bool) {
		if sp.IsDependent() {
			return TypeResult{Type: &ast.SpliceType{Refl: sp.Expr}}, true
		}
		r, ok := s.spliced(sp)
		if !ok {
			return TypeError(), false
		}
		if r.Kind != ReflectionType {
			s.report(diag.ErrSpliceNotType, sp.Begin, quoteSplice(sp))
			return TypeError(), false
		}
		return TypeResult{Type: r.Type}, true
	})
}

// ActOnTypePackSplice builds "...[< r >]" in a type position.
func (s *Sema) ActOnTypePackSplice(sp ParsedSplice) TypeResult {
	return run(s, "ActOnTypePackSplice", sp.Begin, func() (TypeResult, bool) {
		return TypeResult{Type: &ast.PackSpliceType{Refl: sp.Expr}}, true
	})
}

// ActOnTemplateSplice resolves "template [: r :]". A non-dependent splice is
// resolved immediately and the designated template is stored in the uniqued
// name; a dependent one names an unresolved template.
func (s *Sema) ActOnTemplateSplice(ss *ScopeSpec, sp ParsedSplice) (templatename.Name, TemplateNameKind) {
	type result struct {
		name templatename.Name
		kind TemplateNameKind
	}
	r := run(s, "ActOnTemplateSplice", sp.Begin, func() (result, bool) {
		if sp.IsDependent() {
			return result{s.names.SplicedTemplateReflection(sp.Expr, nil), TNKDependentTemplateName}, true
		}
		refl, ok := s.spliced(sp)
		if !ok {
			return result{kind: TNKNonTemplate}, false
		}
		var d *ast.TemplateDecl
		if refl.Kind == ReflectionTemplate {
			d = refl.Template.AsTemplateDecl()
		}
		if d == nil {
			s.report(diag.ErrSpliceNotTemplate, sp.Begin, quoteSplice(sp))
			return result{kind: TNKNonTemplate}, false
		}
		return result{s.names.SplicedTemplateReflection(sp.Expr, d), TemplateNameKindOf(d)}, true
	})
	return r.name, r.kind
}

// ActOnTemplateArgumentSplice classifies "[: r :]" used as a template
// argument by what the reflection designates.
func (s *Sema) ActOnTemplateArgumentSplice(sp ParsedSplice) ParsedTemplateArgument {
	return run(s, "ActOnTemplateArgumentSplice", sp.Begin, func() (ParsedTemplateArgument, bool) {
		arg := ParsedTemplateArgument{Loc: sp.Begin}
		if sp.IsDependent() {
			arg.Kind, arg.Expr = SpliceArg, sp.Expr
			return arg, true
		}
		r, ok := s.spliced(sp)
		if !ok {
			return arg, false
		}
		switch r.Kind {
		case ReflectionType:
			arg.Kind, arg.Type = TypeArg, r.Type
		case ReflectionTemplate:
			arg.Kind, arg.Template = TemplateArg, r.Template
		case ReflectionDecl:
			arg.Kind, arg.Expr = NonTypeArg, &ast.DeclRefExpr{ExprBase: ast.ExprBase{Loc: sp.Begin}, Decl: r.Decl}
		case ReflectionExpr:
			arg.Kind, arg.Expr = NonTypeArg, r.Expr
		default:
			s.report(diag.ErrSpliceNotType, sp.Begin, quoteSplice(sp))
			return arg, false
		}
		return arg, true
	})
}

// ActOnPackSpliceTemplateArgument builds "...[< r >]" as a template
// argument.
func (s *Sema) ActOnPackSpliceTemplateArgument(sp ParsedSplice) ParsedTemplateArgument {
	return run(s, "ActOnPackSpliceTemplateArgument", sp.Begin, func() (ParsedTemplateArgument, bool) {
		return ParsedTemplateArgument{Kind: PackSpliceArg, Expr: sp.Expr, Loc: sp.Begin}, true
	})
}
