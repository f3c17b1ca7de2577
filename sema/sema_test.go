package sema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/internal/testfixtures"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/templatename"
)

func setup(t *testing.T, interceptors ...sema.Interceptor) (*testfixtures.Env, *diag.Collector) {
	t.Helper()
	diags := &diag.Collector{}
	return testfixtures.New(sema.New(diags, interceptors...)), diags
}

func ref(d *ast.ValueDecl) ast.Expr { return &ast.DeclRefExpr{Decl: d} }

func lit(v int64) ast.Expr { return &ast.IntegerLiteral{Value: v} }

func str(s string) ast.Expr { return &ast.StringLiteral{Value: s} }

func splice(e ast.Expr) sema.ParsedSplice {
	return sema.ParsedSplice{Expr: e, Begin: ast.SourceLocation{Line: 1, Column: 1}}
}

func TestClassifyName(t *testing.T) {
	env, _ := setup(t)
	tests := []struct {
		name     string
		wantKind sema.NameKind
		wantTNK  sema.TemplateNameKind
	}{
		{"ClassTemplate", sema.NameTemplate, sema.TNKTypeTemplate},
		{"fn_template", sema.NameTemplate, sema.TNKFunctionTemplate},
		{"var_template", sema.NameTemplate, sema.TNKVarTemplate},
		{"Concept", sema.NameTemplate, sema.TNKConceptTemplate},
		{"TT", sema.NameTemplate, sema.TNKTypeTemplate},
		{"ns", sema.NameNamespace, sema.TNKNonTemplate},
		{"S", sema.NameType, sema.TNKNonTemplate},
		{"T", sema.NameType, sema.TNKNonTemplate},
		{"i", sema.NameValue, sema.TNKNonTemplate},
		{"missing", sema.NameUnknown, sema.TNKNonTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := env.Sema.ClassifyName(&sema.ScopeSpec{}, tt.name, ast.SourceLocation{})
			if c.Kind != tt.wantKind {
				t.Errorf("ClassifyName(%q).Kind = %v, want %v", tt.name, c.Kind, tt.wantKind)
			}
			if c.TemplateKind != tt.wantTNK {
				t.Errorf("ClassifyName(%q).TemplateKind = %v, want %v", tt.name, c.TemplateKind, tt.wantTNK)
			}
		})
	}
}

func TestQualifiedLookup(t *testing.T) {
	env, diags := setup(t)
	s := env.Sema
	loc := ast.SourceLocation{Line: 1, Column: 1}

	t.Run("namespace member", func(t *testing.T) {
		var ss sema.ScopeSpec
		if !s.ActOnCXXNestedNameSpecifier(&ss, "ns", loc, loc) {
			t.Fatal("ActOnCXXNestedNameSpecifier(ns) = false")
		}
		c := s.ClassifyName(&ss, "value", loc)
		if c.Value != env.Value {
			t.Errorf("ns::value resolved to %v, want %v", c.Value, env.Value)
		}
	})

	t.Run("qualified template", func(t *testing.T) {
		var ss sema.ScopeSpec
		s.ActOnCXXNestedNameSpecifier(&ss, "std", loc, loc)
		c := s.ClassifyName(&ss, "vector", loc)
		if got := c.Template.Kind(); got != templatename.QualifiedTemplate {
			t.Errorf("std::vector kind = %v, want QualifiedTemplate", got)
		}
		if got := c.Template.AsTemplateDecl(); got != env.Vector {
			t.Errorf("std::vector decl = %v, want %v", got, env.Vector)
		}
		if got := c.Template.String(); got != "std::vector" {
			t.Errorf("std::vector printed as %q", got)
		}
	})

	t.Run("dependent scope", func(t *testing.T) {
		var ss sema.ScopeSpec
		s.ActOnCXXNestedNameSpecifier(&ss, "T", loc, loc)
		if !ss.IsDependent() {
			t.Fatal("T:: is not dependent")
		}
		if c := s.ClassifyName(&ss, "type", loc); c.Kind != sema.NameDependent {
			t.Errorf("T::type kind = %v, want NameDependent", c.Kind)
		}
		tmpl, kind := s.ActOnDependentTemplateName(&ss, "rebind", loc)
		if kind != sema.TNKDependentTemplateName || !tmpl.IsDependent() {
			t.Errorf("T::template rebind = %v %v, want a dependent name", tmpl, kind)
		}
	})

	t.Run("undeclared qualifier", func(t *testing.T) {
		diags.Reset()
		var ss sema.ScopeSpec
		if s.ActOnCXXNestedNameSpecifier(&ss, "nope", loc, loc) {
			t.Error("ActOnCXXNestedNameSpecifier(nope) = true")
		}
		if !ss.Invalid {
			t.Error("scope spec not marked invalid")
		}
		if diff := cmp.Diff([]diag.Kind{diag.ErrUndeclaredQualifier}, diags.Kinds()); diff != "" {
			t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestEvaluate(t *testing.T) {
	env, _ := setup(t)
	bin := func(op ast.BinaryOpKind, l, r ast.Expr) ast.Expr {
		return &ast.BinaryOperator{Op: op, LHS: l, RHS: r}
	}
	tests := []struct {
		name string
		expr ast.Expr
		want string
	}{
		{"arithmetic", bin(ast.BinaryAdd, lit(1), bin(ast.BinaryMul, lit(2), lit(3))), "7"},
		{"variable", bin(ast.BinarySub, ref(env.N0), ref(env.I)), "2"},
		{"comparison", bin(ast.BinaryLT, ref(env.I), ref(env.N0)), "true"},
		{"string", ref(env.Name), "foo"},
		{"negate", &ast.UnaryOperator{Op: ast.UnaryMinus, Operand: lit(5)}, "-5"},
		{"not", &ast.UnaryOperator{Op: ast.UnaryNot, Operand: &ast.BoolLiteral{Value: false}}, "true"},
		{"conditional", &ast.ConditionalOperator{Cond: lit(0), LHS: lit(1), RHS: lit(2)}, "2"},
		{"reflection equality", bin(ast.BinaryEQ, ref(env.RInt), ref(env.RInt)), "true"},
		{"reflection inequality", bin(ast.BinaryNE, ref(env.RInt), ref(env.RS)), "true"},
		{"call", &ast.CallExpr{Callee: ref(env.F)}, "ClassTemplate"},
		{"reflect decl", ref(env.RX), "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := env.Sema.Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Evaluate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	env, _ := setup(t)
	tests := []struct {
		name string
		expr ast.Expr
		want error
	}{
		{"dependent", ref(env.N), sema.ErrDependent},
		{"division by zero", &ast.BinaryOperator{Op: ast.BinaryDiv, LHS: lit(1), RHS: lit(0)}, sema.ErrNotConstant},
		{"no initializer", ref(env.X), sema.ErrNotConstant},
		{"mixed comparison", &ast.BinaryOperator{Op: ast.BinaryEQ, LHS: lit(1), RHS: str("1")}, sema.ErrNotConstant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.Sema.Evaluate(tt.expr)
			if !errors.Is(err, tt.want) {
				t.Errorf("Evaluate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEvaluateHook(t *testing.T) {
	env, _ := setup(t)
	var seen []ast.Expr
	env.Sema.OnEvaluate = func(e ast.Expr) { seen = append(seen, e) }

	e := ref(env.I)
	env.Sema.Evaluate(e)
	env.Sema.Evaluate(e)
	if got := env.Sema.Evaluations(); got != 2 {
		t.Errorf("Evaluations() = %d, want 2", got)
	}
	if len(seen) != 2 || seen[0] != e {
		t.Errorf("OnEvaluate saw %v", seen)
	}
}

func TestReflectionQuery(t *testing.T) {
	env, _ := setup(t)
	s := env.Sema
	query := func(t *testing.T, q string, r *ast.ValueDecl) string {
		t.Helper()
		qs := s.ClassifyName(&sema.ScopeSpec{}, q, ast.SourceLocation{})
		res := s.ActOnCXXReflectionReadQuery(ast.SourceLocation{}, []ast.Expr{ref(qs.Value), ref(r)}, ast.SourceLocation{})
		if res.IsInvalid() {
			t.Fatalf("__reflect(%s, %s) is invalid", q, r.Name())
		}
		v, err := s.Evaluate(res.Expr)
		if err != nil {
			t.Fatalf("__reflect(%s, %s) error = %v", q, r.Name(), err)
		}
		return v.String()
	}

	tests := []struct {
		query string
		refl  *ast.ValueDecl
		want  string
	}{
		{"query_get_name", env.RVector, "vector"},
		{"query_get_name", env.RS, "S"},
		{"query_is_type", env.RInt, "true"},
		{"query_is_type", env.RNS, "false"},
		{"query_is_namespace", env.RNS, "true"},
		{"query_is_template", env.RVector, "true"},
		{"query_is_variable", env.RI, "true"},
		{"query_is_expression", env.RX, "true"},
		{"query_is_invalid", env.RBad, "true"},
		{"query_get_parent", env.RVector, "std"},
		{"query_get_parent", env.RValue, "ns"},
		{"query_get_parent", env.RNS, "::"},
		{"query_get_parent", env.RX, "S"},
		{"query_get_type", env.RI, "int"},
	}
	for _, tt := range tests {
		t.Run(tt.query+"/"+tt.refl.Name(), func(t *testing.T) {
			if got := query(t, tt.query, tt.refl); got != tt.want {
				t.Errorf("__reflect(%s, %s) = %q, want %q", tt.query, tt.refl.Name(), got, tt.want)
			}
		})
	}
}

func TestReflectionQueryArity(t *testing.T) {
	env, diags := setup(t)
	res := env.Sema.ActOnCXXReflectionReadQuery(ast.SourceLocation{}, []ast.Expr{lit(0)}, ast.SourceLocation{})
	if !res.IsInvalid() {
		t.Error("__reflect with one operand is valid")
	}
	if !diags.Has(diag.ErrReflectionQuery) {
		t.Errorf("diagnostics = %v, want %s", diags.Kinds(), diag.ErrReflectionQuery)
	}
}

func TestIdentifierSplice(t *testing.T) {
	tests := []struct {
		name      string
		parts     func(env *testfixtures.Env) []ast.Expr
		want      string
		dependent bool
		wantDiag  diag.Kind
	}{
		{
			name:  "string and int",
			parts: func(*testfixtures.Env) []ast.Expr { return []ast.Expr{str("foo_"), lit(1)} },
			want:  "foo_1",
		},
		{
			name:  "two strings",
			parts: func(*testfixtures.Env) []ast.Expr { return []ast.Expr{str("a"), str("b")} },
			want:  "ab",
		},
		{
			name:  "variable",
			parts: func(env *testfixtures.Env) []ast.Expr { return []ast.Expr{ref(env.Name), ref(env.N0)} },
			want:  "foo3",
		},
		{
			name:      "dependent",
			parts:     func(env *testfixtures.Env) []ast.Expr { return []ast.Expr{str("a"), ref(env.N)} },
			dependent: true,
		},
		{
			name:     "bool fragment",
			parts:    func(*testfixtures.Env) []ast.Expr { return []ast.Expr{&ast.BoolLiteral{Value: true}} },
			wantDiag: diag.ErrIdentifierSpliceFragment,
		},
		{
			name:     "keyword",
			parts:    func(*testfixtures.Env) []ast.Expr { return []ast.Expr{str("in"), str("t")} },
			wantDiag: diag.ErrInvalidIdentifierSplice,
		},
		{
			name:     "leading digit",
			parts:    func(*testfixtures.Env) []ast.Expr { return []ast.Expr{lit(1), str("x")} },
			wantDiag: diag.ErrInvalidIdentifierSplice,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, diags := setup(t)
			info, ok := env.Sema.ActOnCXXIdentifierSplice(tt.parts(env), ast.SourceLocation{}, ast.SourceLocation{})
			if tt.wantDiag != "" {
				if ok {
					t.Errorf("ActOnCXXIdentifierSplice() = %q, want failure", info.Name)
				}
				if diff := cmp.Diff([]diag.Kind{tt.wantDiag}, diags.Kinds()); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if !ok {
				t.Fatalf("ActOnCXXIdentifierSplice() failed: %v", diags.Diagnostics)
			}
			if info.Name != tt.want || info.Dependent != tt.dependent {
				t.Errorf("ActOnCXXIdentifierSplice() = {%q dependent=%v}, want {%q dependent=%v}",
					info.Name, info.Dependent, tt.want, tt.dependent)
			}
		})
	}
}

func TestInvalidIdentifierSpliceIsUnique(t *testing.T) {
	env, _ := setup(t)
	a := env.Sema.ActOnCXXInvalidIdentifierSplice(ast.SourceLocation{})
	b := env.Sema.ActOnCXXInvalidIdentifierSplice(ast.SourceLocation{})
	if !a.Invalid || !b.Invalid {
		t.Error("placeholder identifiers are not marked invalid")
	}
	if a.Name == b.Name {
		t.Errorf("placeholders share the name %q", a.Name)
	}
	if !strings.HasPrefix(a.Name, "__invalid_identifier_splice_") {
		t.Errorf("placeholder name = %q", a.Name)
	}
}

func TestTemplateSplice(t *testing.T) {
	env, diags := setup(t)
	s := env.Sema

	t.Run("resolved eagerly", func(t *testing.T) {
		name, kind := s.ActOnTemplateSplice(&sema.ScopeSpec{}, splice(ref(env.RVector)))
		if kind != sema.TNKTypeTemplate {
			t.Errorf("kind = %v, want TypeTemplate", kind)
		}
		if name.Kind() != templatename.SplicedTemplateReflection {
			t.Errorf("name kind = %v, want SplicedTemplateReflection", name.Kind())
		}
		if got := name.AsTemplateDecl(); got != env.Vector {
			t.Errorf("AsTemplateDecl() = %v, want std::vector", got)
		}
	})

	t.Run("uniqued", func(t *testing.T) {
		e := ref(env.RVector)
		a, _ := s.ActOnTemplateSplice(&sema.ScopeSpec{}, splice(e))
		b, _ := s.ActOnTemplateSplice(&sema.ScopeSpec{}, splice(e))
		if a != b {
			t.Error("splicing the same reflection twice produced distinct names")
		}
	})

	t.Run("dependent", func(t *testing.T) {
		name, kind := s.ActOnTemplateSplice(&sema.ScopeSpec{}, splice(ref(env.R)))
		if kind != sema.TNKDependentTemplateName {
			t.Errorf("kind = %v, want DependentTemplateName", kind)
		}
		if name.AsTemplateDecl() != nil {
			t.Error("dependent splice resolved to a declaration")
		}
		if !name.IsDependent() {
			t.Error("dependent splice is not dependent")
		}
	})

	t.Run("not a template", func(t *testing.T) {
		diags.Reset()
		name, kind := s.ActOnTemplateSplice(&sema.ScopeSpec{}, splice(ref(env.RInt)))
		if kind != sema.TNKNonTemplate || !name.IsNull() {
			t.Errorf("ActOnTemplateSplice(^int) = %v %v, want a null non-template", name, kind)
		}
		if !diags.Has(diag.ErrSpliceNotTemplate) {
			t.Errorf("diagnostics = %v, want %s", diags.Kinds(), diag.ErrSpliceNotTemplate)
		}
	})
}

func TestExprSplice(t *testing.T) {
	tests := []struct {
		name     string
		refl     func(env *testfixtures.Env) ast.Expr
		want     string
		wantDiag diag.Kind
	}{
		{name: "variable", refl: func(env *testfixtures.Env) ast.Expr { return ref(env.RI) }, want: "1"},
		{name: "qualified variable", refl: func(env *testfixtures.Env) ast.Expr { return ref(env.RValue) }, want: "42"},
		{name: "type", refl: func(env *testfixtures.Env) ast.Expr { return ref(env.RInt) }, wantDiag: diag.ErrSpliceNotExpression},
		{name: "invalid reflection", refl: func(env *testfixtures.Env) ast.Expr { return ref(env.RBad) }, wantDiag: diag.ErrInvalidReflection},
		{name: "not a reflection", refl: func(*testfixtures.Env) ast.Expr { return lit(3) }, wantDiag: diag.ErrNotConstantExpression},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, diags := setup(t)
			res := env.Sema.ActOnCXXExprSpliceExpr(splice(tt.refl(env)))
			if tt.wantDiag != "" {
				if !res.IsInvalid() {
					t.Error("ActOnCXXExprSpliceExpr() is valid, want failure")
				}
				if diff := cmp.Diff([]diag.Kind{tt.wantDiag}, diags.Kinds()); diff != "" {
					t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
				}
				return
			}
			if res.IsInvalid() {
				t.Fatalf("ActOnCXXExprSpliceExpr() failed: %v", diags.Diagnostics)
			}
			v, err := env.Sema.Evaluate(res.Expr)
			if err != nil {
				t.Fatalf("Evaluate() error = %v", err)
			}
			if got := v.String(); got != tt.want {
				t.Errorf("Evaluate([: r :]) = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDependentExprSplice(t *testing.T) {
	env, _ := setup(t)
	before := env.Sema.Evaluations()
	res := env.Sema.ActOnCXXExprSpliceExpr(splice(ref(env.R)))
	if res.IsInvalid() {
		t.Fatal("dependent splice failed")
	}
	if !res.Expr.Dependence().IsValueDependent() {
		t.Errorf("dependence = %v, want value dependent", res.Expr.Dependence())
	}
	if env.Sema.Evaluations() != before {
		t.Error("dependent splice was evaluated")
	}
}

func TestTypeSplice(t *testing.T) {
	env, diags := setup(t)
	s := env.Sema

	if res := s.ActOnTypeSplice(splice(ref(env.RS))); res.IsInvalid() || ast.Sprint(res.Type, ast.PrintingPolicy{}) != "S" {
		t.Errorf("ActOnTypeSplice(r_S) = %v", res)
	}
	res := s.ActOnTypeSplice(splice(ref(env.R)))
	if _, ok := res.Type.(*ast.SpliceType); !ok {
		t.Errorf("ActOnTypeSplice(R) = %T, want *ast.SpliceType", res.Type)
	}
	if res := s.ActOnTypeSplice(splice(ref(env.RI))); !res.IsInvalid() {
		t.Error("splicing a variable as a type succeeded")
	}
	if !diags.Has(diag.ErrSpliceNotType) {
		t.Errorf("diagnostics = %v, want %s", diags.Kinds(), diag.ErrSpliceNotType)
	}
	pack := s.ActOnTypePackSplice(splice(ref(env.R)))
	if pack.Type.Dependence()&ast.TypeUnexpandedPack == 0 {
		t.Error("type pack splice does not contain an unexpanded pack")
	}
}

func TestNestedNameSpecifierSplice(t *testing.T) {
	env, diags := setup(t)
	s := env.Sema

	var ss sema.ScopeSpec
	if !s.ActOnCXXNestedNameSpecifierSplice(&ss, splice(ref(env.RNS)), ast.SourceLocation{}) {
		t.Fatalf("[: r_ns :]:: failed: %v", diags.Diagnostics)
	}
	if c := s.ClassifyName(&ss, "value", ast.SourceLocation{}); c.Value != env.Value {
		t.Errorf("[: r_ns :]::value = %v, want ns::value", c.Value)
	}

	var dep sema.ScopeSpec
	s.ActOnCXXNestedNameSpecifierSplice(&dep, splice(ref(env.R)), ast.SourceLocation{})
	if !dep.IsDependent() {
		t.Error("[: R :]:: is not dependent")
	}

	var bad sema.ScopeSpec
	if s.ActOnCXXNestedNameSpecifierSplice(&bad, splice(ref(env.RI)), ast.SourceLocation{}) {
		t.Error("[: r_i :]:: succeeded")
	}
	if !bad.Invalid || !diags.Has(diag.ErrSpliceNotScope) {
		t.Errorf("invalid=%v diagnostics=%v", bad.Invalid, diags.Kinds())
	}
}

func TestTemplateArgumentSplice(t *testing.T) {
	env, _ := setup(t)
	tests := []struct {
		name string
		refl *ast.ValueDecl
		want sema.TemplateArgKind
	}{
		{"type", env.RInt, sema.TypeArg},
		{"template", env.RVector, sema.TemplateArg},
		{"value", env.RI, sema.NonTypeArg},
		{"dependent", env.R, sema.SpliceArg},
		{"namespace", env.RNS, sema.InvalidArg},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			arg := env.Sema.ActOnTemplateArgumentSplice(splice(ref(tt.refl)))
			if arg.Kind != tt.want {
				t.Errorf("ActOnTemplateArgumentSplice(%s).Kind = %v, want %v", tt.refl.Name(), arg.Kind, tt.want)
			}
		})
	}

	arg := env.Sema.ActOnPackSpliceTemplateArgument(splice(ref(env.R)))
	if arg.Kind != sema.PackSpliceArg || !arg.Dependence().ContainsUnexpandedPack() {
		t.Errorf("pack splice argument = %+v", arg)
	}
}

func TestBuiltins(t *testing.T) {
	env, diags := setup(t)
	s := env.Sema
	var out strings.Builder
	s.Output = &out
	loc := ast.SourceLocation{Line: 2, Column: 3}

	t.Run("concatenate folds", func(t *testing.T) {
		res := s.ActOnCXXConcatenateExpr(loc, []ast.Expr{ref(env.Name), lit(1)}, loc)
		lit, ok := res.Expr.(*ast.StringLiteral)
		if !ok || lit.Value != "foo1" {
			t.Errorf("__concatenate(name, 1) = %#v, want \"foo1\"", res.Expr)
		}
	})

	t.Run("concatenate dependent", func(t *testing.T) {
		res := s.ActOnCXXConcatenateExpr(loc, []ast.Expr{ref(env.N)}, loc)
		if _, ok := res.Expr.(*sema.ConcatenateExpr); !ok {
			t.Errorf("__concatenate(N) = %T, want *sema.ConcatenateExpr", res.Expr)
		}
	})

	t.Run("print", func(t *testing.T) {
		out.Reset()
		s.ActOnCXXReflectPrintLiteral(loc, []ast.Expr{str("x = "), ref(env.I)}, loc)
		s.ActOnCXXReflectPrintReflection(loc, ref(env.RVector), loc)
		s.ActOnCXXReflectDumpReflection(loc, ref(env.RInt), loc)
		want := "x = 1\nstd::vector\nReflection kind=type entity=int dependence=None\n"
		if diff := cmp.Diff(want, out.String()); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("print unevaluated", func(t *testing.T) {
		out.Reset()
		s.PushEvaluationContext(sema.Unevaluated)
		s.ActOnCXXReflectPrintLiteral(loc, []ast.Expr{str("hidden")}, loc)
		s.PopEvaluationContext()
		if out.Len() != 0 {
			t.Errorf("unevaluated print wrote %q", out.String())
		}
	})

	t.Run("compiler error", func(t *testing.T) {
		diags.Reset()
		res := s.ActOnCXXCompilerErrorExpr(loc, str("boom"), loc)
		if res.IsInvalid() {
			t.Error("__compiler_error is invalid")
		}
		want := []diag.Diagnostic{diag.New(diag.ErrUserDefined, loc, "boom")}
		if diff := cmp.Diff(want, diags.Diagnostics); diff != "" {
			t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("invalid reflection", func(t *testing.T) {
		res := s.ActOnCXXInvalidReflectionExpr(loc, str("nope"), loc)
		v, err := s.Evaluate(res.Expr)
		if err != nil {
			t.Fatalf("Evaluate() error = %v", err)
		}
		if v.Refl.Kind != sema.ReflectionInvalid || v.Refl.Message != "nope" {
			t.Errorf("__invalid_reflection(\"nope\") = %+v", v.Refl)
		}
	})
}

func TestReflectExprDependence(t *testing.T) {
	env, _ := setup(t)
	s := env.Sema
	tests := []struct {
		name    string
		operand sema.ReflectionOperand
		want    ast.ExprDependence
	}{
		{"global namespace", s.ActOnReflectedNamespace(nil, ast.SourceLocation{}, nil), ast.ExprNone},
		{"type", s.ActOnReflectedType(&ast.BuiltinType{Name: "int"}, ast.SourceLocation{}), ast.ExprNone},
		{"dependent type", s.ActOnReflectedType(&ast.TagType{Decl: env.T}, ast.SourceLocation{}), ast.ExprValueInstantiation},
		{"template", s.ActOnReflectedTemplate(nil, templatename.FromDecl(env.Vector), ast.SourceLocation{}), ast.ExprNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.ActOnCXXReflectExpr(ast.SourceLocation{}, tt.operand)
			if res.IsInvalid() {
				t.Fatal("ActOnCXXReflectExpr() failed")
			}
			if got := res.Expr.Dependence(); got != tt.want {
				t.Errorf("Dependence() = %v, want %v", got, tt.want)
			}
		})
	}

	if res := s.ActOnCXXReflectExpr(ast.SourceLocation{}, sema.InvalidOperand()); !res.IsInvalid() {
		t.Error("reflecting an invalid operand succeeded")
	}
}
