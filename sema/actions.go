package sema

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/templatename"
)

// ParsedSplice is the operand of one "[: r :]" or "...[< r >]" construct,
// with the locations of its opening and closing delimiters.
type ParsedSplice struct {
	Expr  ast.Expr
	Begin ast.SourceLocation
	End   ast.SourceLocation
}

// IsDependent reports whether the reflection can only be evaluated after
// instantiation.
func (p ParsedSplice) IsDependent() bool {
	return p.Expr.Dependence().IsValueDependent()
}

// Range returns the source range of the splice.
func (p ParsedSplice) Range() ast.SourceRange {
	return ast.SourceRange{Begin: p.Begin, End: p.End}
}

// Actions is the semantic-analysis surface the parser drives. Every action
// reports its own diagnostics; an invalid result means the failure has
// already been diagnosed.
type Actions interface {
	ClassifyName(ss *ScopeSpec, name string, loc ast.SourceLocation) Classification
	PushEvaluationContext(ctx EvaluationContext)
	PopEvaluationContext()

	ActOnCXXGlobalScopeSpecifier(ss *ScopeSpec, ccLoc ast.SourceLocation)
	ActOnCXXNestedNameSpecifier(ss *ScopeSpec, name string, loc, ccLoc ast.SourceLocation) bool
	ActOnCXXNestedNameSpecifierType(ss *ScopeSpec, t ast.Type, loc, ccLoc ast.SourceLocation)
	ActOnCXXDependentNestedNameSpecifier(ss *ScopeSpec, name string, loc, ccLoc ast.SourceLocation)
	ActOnCXXNestedNameSpecifierSplice(ss *ScopeSpec, sp ParsedSplice, ccLoc ast.SourceLocation) bool

	ActOnIdExpression(ss *ScopeSpec, name string, loc ast.SourceLocation) ExprResult
	ActOnTypeName(ss *ScopeSpec, name string, loc ast.SourceLocation) TypeResult
	ActOnDependentTemplateName(ss *ScopeSpec, name string, loc ast.SourceLocation) (templatename.Name, TemplateNameKind)
	ActOnTemplateIdType(ss *ScopeSpec, tmpl templatename.Name, kind TemplateNameKind, args []ParsedTemplateArgument, loc ast.SourceLocation) TypeResult
	ActOnTemplateIdExpr(ss *ScopeSpec, tmpl templatename.Name, kind TemplateNameKind, args []ParsedTemplateArgument, loc ast.SourceLocation) ExprResult

	ActOnReflectedNamespace(ss *ScopeSpec, loc ast.SourceLocation, ns *ast.NamespaceDecl) ReflectionOperand
	ActOnReflectedTemplate(ss *ScopeSpec, tmpl templatename.Name, loc ast.SourceLocation) ReflectionOperand
	ActOnReflectedType(t ast.Type, loc ast.SourceLocation) ReflectionOperand
	ActOnReflectedExpression(e ast.Expr) ReflectionOperand
	ActOnCXXReflectExpr(opLoc ast.SourceLocation, operand ReflectionOperand) ExprResult

	ActOnCXXReflectionReadQuery(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXReflectPrintLiteral(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXReflectPrintReflection(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXReflectDumpReflection(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXInvalidReflectionExpr(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXCompilerErrorExpr(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult
	ActOnCXXConcatenateExpr(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult

	ActOnCXXIdentifierSplice(parts []ast.Expr, begin, end ast.SourceLocation) (IdentifierInfo, bool)
	ActOnCXXInvalidIdentifierSplice(loc ast.SourceLocation) IdentifierInfo

	ActOnCXXExprSpliceExpr(sp ParsedSplice) ExprResult
	ActOnCXXMemberExprSpliceExpr(base ast.Expr, arrow bool, sp ParsedSplice, templateKw, hasArgs bool, args []ParsedTemplateArgument) ExprResult
	ActOnCXXPackSpliceExpr(sp ParsedSplice) ExprResult
	ActOnTypeSplice(sp ParsedSplice) TypeResult
	ActOnTypePackSplice(sp ParsedSplice) TypeResult
	ActOnTemplateSplice(ss *ScopeSpec, sp ParsedSplice) (templatename.Name, TemplateNameKind)
	ActOnTemplateArgumentSplice(sp ParsedSplice) ParsedTemplateArgument
	ActOnPackSpliceTemplateArgument(sp ParsedSplice) ParsedTemplateArgument
}

var _ Actions = (*Sema)(nil)
