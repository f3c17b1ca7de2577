// Package testfixtures provides a populated symbol environment for parser
// and sema tests and for the metacxx demo commands.
package testfixtures

import (
	"strings"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/templatename"
)

// Env names every declaration the fixture environment creates.
//
//	namespace std { template<class> class vector; }
//	namespace ns { constexpr int value = 42; namespace inner {} }
//	template<class> class ClassTemplate;
//	template<class> void fn_template();
//	template<class> int var_template;
//	template<class> concept Concept;
//	struct S { int x, get; };
//	constexpr int i = 1, n = 3;
//	constexpr const char *name = "foo";
//	constexpr auto r_int = ^int, r_vector = ^std::vector, r_ns = ^ns,
//	    r_S = ^S, r_x = ^S::x, r_i = ^i, r_value = ^ns::value;
//	constexpr auto r_bad = __invalid_reflection("bad");
//	consteval auto f() { return ^ClassTemplate; }
//	consteval auto g() { return ^r_i; }
//	consteval auto str(int) -> const char *;
//
// plus the template parameters T, Ts..., N, R, and TT, declared at
// namespace scope so that unqualified lookup finds them.
type Env struct {
	Sema *sema.Sema

	Std, NS, Inner *ast.NamespaceDecl

	Vector, ClassTemplate, FnTemplate, VarTemplate, Concept *ast.TemplateDecl

	S      *ast.TypeDecl
	X, Get *ast.ValueDecl

	I, N0, Name, Value *ast.ValueDecl

	RInt, RVector, RNS, RS, RX, RI, RValue, RBad *ast.ValueDecl

	F, G, Str *ast.ValueDecl

	T, Ts *ast.TypeDecl
	N, R  *ast.ValueDecl
	TT    *ast.TemplateDecl
}

// New declares the fixture environment in s.
func New(s *sema.Sema) *Env {
	e := &Env{Sema: s}
	intType := &ast.BuiltinType{Name: "int"}

	e.Std = s.DeclareNamespace(nil, "std")
	e.Vector = s.DeclareTemplate(e.Std.Inner(), ast.ClassTemplate, "vector")
	e.NS = s.DeclareNamespace(nil, "ns")
	e.Value = s.DeclareVariable(e.NS.Inner(), "value", intType, &ast.IntegerLiteral{Value: 42})
	e.Inner = s.DeclareNamespace(e.NS.Inner(), "inner")

	e.ClassTemplate = s.DeclareTemplate(nil, ast.ClassTemplate, "ClassTemplate")
	e.FnTemplate = s.DeclareTemplate(nil, ast.FunctionTemplate, "fn_template")
	e.VarTemplate = s.DeclareTemplate(nil, ast.VarTemplate, "var_template")
	e.Concept = s.DeclareTemplate(nil, ast.Concept, "Concept")

	e.S = s.DeclareClass(nil, "S")
	e.X = s.DeclareField(e.S, "x", intType)
	e.Get = s.DeclareField(e.S, "get", intType)

	e.I = s.DeclareVariable(nil, "i", intType, &ast.IntegerLiteral{Value: 1})
	e.N0 = s.DeclareVariable(nil, "n", intType, &ast.IntegerLiteral{Value: 3})
	e.Name = s.DeclareVariable(nil, "name", nil, &ast.StringLiteral{Value: "foo"})

	reflect := func(o sema.ReflectionOperand) ast.Expr {
		return &sema.ReflectExpr{Operand: o}
	}
	auto := &ast.BuiltinType{Name: "auto"}
	e.RInt = s.DeclareVariable(nil, "r_int", auto, reflect(sema.ReflectionOperand{Kind: sema.OperandType, Type: intType}))
	e.RVector = s.DeclareVariable(nil, "r_vector", auto, reflect(sema.ReflectionOperand{
		Kind:     sema.OperandTemplate,
		Template: templatename.FromDecl(e.Vector),
	}))
	e.RNS = s.DeclareVariable(nil, "r_ns", auto, reflect(sema.ReflectionOperand{Kind: sema.OperandNamespace, Namespace: e.NS}))
	e.RS = s.DeclareVariable(nil, "r_S", auto, reflect(sema.ReflectionOperand{Kind: sema.OperandType, Type: &ast.TagType{Decl: e.S}}))
	e.RX = s.DeclareVariable(nil, "r_x", auto, reflect(sema.ReflectionOperand{
		Kind: sema.OperandExpression,
		Expr: &ast.DeclRefExpr{Decl: e.X},
	}))
	e.RI = s.DeclareVariable(nil, "r_i", auto, reflect(sema.ReflectionOperand{
		Kind: sema.OperandExpression,
		Expr: &ast.DeclRefExpr{Decl: e.I},
	}))
	e.RValue = s.DeclareVariable(nil, "r_value", auto, reflect(sema.ReflectionOperand{
		Kind: sema.OperandExpression,
		Expr: &ast.DeclRefExpr{Decl: e.Value},
	}))
	e.RBad = s.DeclareVariable(nil, "r_bad", auto, &sema.InvalidReflectionExpr{BuiltinCallExpr: sema.BuiltinCallExpr{
		Builtin: "__invalid_reflection",
		Args:    []ast.Expr{&ast.StringLiteral{Value: "bad"}},
	}})

	classTemplate := e.ClassTemplate
	e.F = s.DeclareFunction(nil, "f", func([]sema.Value) (sema.Value, error) {
		return sema.ReflectionValue(sema.Reflection{
			Kind:     sema.ReflectionTemplate,
			Template: templatename.FromDecl(classTemplate),
		}), nil
	})
	ri := e.RI
	e.G = s.DeclareFunction(nil, "g", func([]sema.Value) (sema.Value, error) {
		return sema.ReflectionValue(sema.Reflection{Kind: sema.ReflectionDecl, Decl: ri}), nil
	})
	e.Str = s.DeclareFunction(nil, "str", func(args []sema.Value) (sema.Value, error) {
		var b strings.Builder
		for _, a := range args {
			b.WriteString(a.String())
		}
		return sema.StringValue(b.String()), nil
	})

	e.T = s.DeclareTypeParm(nil, "T", false)
	e.Ts = s.DeclareTypeParm(nil, "Ts", true)
	e.N = s.DeclareValueParm(nil, "N", false)
	e.R = s.DeclareValueParm(nil, "R", false)
	e.TT = s.DeclareTemplateTemplateParm(nil, "TT", false)
	return e
}
