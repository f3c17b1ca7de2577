package sema

import (
	"io"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/templatename"
)

// ReflectExpr is "^operand".
type ReflectExpr struct {
	ast.ExprBase
	Operand ReflectionOperand
}

func (e *ReflectExpr) Dependence() ast.ExprDependence { return e.Operand.Dependence() }

func (e *ReflectExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	io.WriteString(w, "^")
	e.Operand.Print(w, p)
}

// BuiltinCallExpr is a call of one of the reflection builtins.
type BuiltinCallExpr struct {
	ast.ExprBase
	Builtin string
	Args    []ast.Expr
}

func (e *BuiltinCallExpr) Dependence() ast.ExprDependence { return argsDependence(e.Args) }

func (e *BuiltinCallExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	io.WriteString(w, e.Builtin+"(")
	ast.PrintList(w, p, e.Args)
	io.WriteString(w, ")")
}

// ReflectionQueryExpr is "__reflect(query, args...)".
type ReflectionQueryExpr struct{ BuiltinCallExpr }

// ReflectPrintExpr is "__reflect_print(args...)" or, when Pretty is set,
// "__reflect_pretty_print(r)".
type ReflectPrintExpr struct {
	BuiltinCallExpr
	Pretty bool
}

// ReflectDumpExpr is "__reflect_dump(r)".
type ReflectDumpExpr struct{ BuiltinCallExpr }

// InvalidReflectionExpr is "__invalid_reflection(message)". It evaluates to
// an invalid reflection carrying the message.
type InvalidReflectionExpr struct{ BuiltinCallExpr }

// CompilerErrorExpr is "__compiler_error(message)".
type CompilerErrorExpr struct{ BuiltinCallExpr }

// ConcatenateExpr is "__concatenate(parts...)" with a dependent part.
type ConcatenateExpr struct{ BuiltinCallExpr }

// ExprSpliceExpr is "[: r :]" in expression position. Resolved is the
// expression the reflection designates once evaluated.
type ExprSpliceExpr struct {
	ast.ExprBase
	Refl     ast.Expr
	Resolved ast.Expr
	End      ast.SourceLocation
}

func (e *ExprSpliceExpr) Dependence() ast.ExprDependence {
	if e.Resolved != nil {
		return e.Resolved.Dependence()
	}
	return ast.ToExprDependence(ast.ToTypeDependence(e.Refl.Dependence()))
}

func (e *ExprSpliceExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	io.WriteString(w, "[: ")
	e.Refl.Print(w, p)
	io.WriteString(w, " :]")
}

// MemberSpliceExpr is "base.[: r :]" or "base->template [: r :]<args>".
type MemberSpliceExpr struct {
	ast.ExprBase
	Base            ast.Expr
	Arrow           bool
	Refl            ast.Expr
	Member          ast.NamedDecl
	TemplateKeyword bool
	HasArgs         bool
	Args            []ParsedTemplateArgument
}

func (e *MemberSpliceExpr) Dependence() ast.ExprDependence {
	d := e.Base.Dependence()
	if e.Member == nil {
		d |= ast.ToExprDependence(ast.ToTypeDependence(e.Refl.Dependence()))
	}
	for _, a := range e.Args {
		d |= a.Dependence()
	}
	return d
}

func (e *MemberSpliceExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	e.Base.Print(w, p)
	if e.Arrow {
		io.WriteString(w, "->")
	} else {
		io.WriteString(w, ".")
	}
	if e.TemplateKeyword {
		io.WriteString(w, "template ")
	}
	io.WriteString(w, "[: ")
	e.Refl.Print(w, p)
	io.WriteString(w, " :]")
	if e.HasArgs {
		printArgs(w, p, e.Args)
	}
}

// PackSpliceExpr is "...[< r >]".
type PackSpliceExpr struct {
	ast.ExprBase
	Refl ast.Expr
	End  ast.SourceLocation
}

func (e *PackSpliceExpr) Dependence() ast.ExprDependence {
	return e.Refl.Dependence() | ast.ExprUnexpandedPack | ast.ExprInstantiation
}

func (e *PackSpliceExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	io.WriteString(w, "...[< ")
	e.Refl.Print(w, p)
	io.WriteString(w, " >]")
}

// TemplateIDExpr names a function or variable template specialization.
type TemplateIDExpr struct {
	ast.ExprBase
	Template templatename.Name
	Args     []ParsedTemplateArgument
}

func (e *TemplateIDExpr) Dependence() ast.ExprDependence {
	d := templateNameToExpr(e.Template.Dependence())
	for _, a := range e.Args {
		d |= a.Dependence()
	}
	return d
}

func (e *TemplateIDExpr) Print(w io.Writer, p ast.PrintingPolicy) {
	e.Template.Print(w, p, false)
	printArgs(w, p, e.Args)
}

// TemplateSpecializationType is "Name<args>" naming a class or alias
// template specialization.
type TemplateSpecializationType struct {
	ast.TypeBase
	Template templatename.Name
	Args     []ParsedTemplateArgument
}

func (t *TemplateSpecializationType) Dependence() ast.TypeDependence {
	d := ast.ToTypeDependence(templateNameToExpr(t.Template.Dependence()))
	for _, a := range t.Args {
		d |= ast.ToTypeDependence(a.Dependence())
	}
	return d
}

func (t *TemplateSpecializationType) Print(w io.Writer, p ast.PrintingPolicy) {
	t.Template.Print(w, p, false)
	printArgs(w, p, t.Args)
}

func argsDependence(args []ast.Expr) ast.ExprDependence {
	var d ast.ExprDependence
	for _, a := range args {
		d |= a.Dependence()
	}
	return d
}
