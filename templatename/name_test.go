package templatename

import (
	"bytes"
	"testing"

	"github.com/broady/metacxx/ast"
)

type fixture struct {
	ast   *ast.Context
	names *Context
	ns    *ast.NamespaceDecl
	vec   *ast.TemplateDecl
	list  *ast.TemplateDecl
	ttp   *ast.TemplateDecl
	pack  *ast.TemplateDecl
	typ   *ast.TypeDecl
}

func newFixture() *fixture {
	a := ast.NewContext()
	f := &fixture{ast: a, names: NewContext(a)}
	f.ns = a.NewNamespace(nil, "N", ast.SourceLocation{})
	f.vec = a.NewTemplate(f.ns.Inner(), ast.ClassTemplate, "vector", ast.SourceLocation{})
	f.list = a.NewTemplate(f.ns.Inner(), ast.ClassTemplate, "list", ast.SourceLocation{})
	f.ttp = a.NewTemplateTemplateParm(nil, "TT", 0, 0, false, ast.SourceLocation{})
	f.pack = a.NewTemplateTemplateParm(nil, "Ps", 0, 1, true, ast.SourceLocation{})
	f.typ = a.NewTemplateTypeParm(nil, "T", false, ast.SourceLocation{})
	return f
}

func (f *fixture) dependentQualifier() *ast.NestedNameSpecifier {
	return (*ast.NestedNameSpecifier)(nil).WithType(&ast.TagType{Decl: f.typ})
}

func TestKind(t *testing.T) {
	f := newFixture()
	valueParm := f.ast.NewNonTypeTemplateParm(nil, "r", nil, false, ast.SourceLocation{})
	refl := &ast.DeclRefExpr{Decl: valueParm}

	tests := []struct {
		name string
		n    Name
		want Kind
	}{
		{"decl", FromDecl(f.vec), Template},
		{"qualified", f.names.QualifiedTemplateName(ast.Global().WithNamespace(f.ns), false, f.vec), QualifiedTemplate},
		{"dependent", f.names.DependentTemplateName(f.dependentQualifier(), "apply"), DependentTemplate},
		{"overloaded", f.names.OverloadedTemplateName([]ast.NamedDecl{f.vec, f.list}), OverloadedTemplate},
		{"assumed", f.names.AssumedTemplateName(ast.Identifier("maybe")), AssumedTemplate},
		{"subst", f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.vec)), SubstTemplateTemplateParm},
		{"subst pack", f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument([]Argument{TemplateArg(FromDecl(f.vec))})), SubstTemplateTemplateParmPack},
		{"spliced", f.names.SplicedTemplateReflection(refl, nil), SplicedTemplateReflection},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if tt.n.IsNull() {
				t.Errorf("IsNull() = true for %v", tt.want)
			}
		})
	}
}

func TestNullName(t *testing.T) {
	var n Name
	if !n.IsNull() {
		t.Fatal("zero Name should be null")
	}
	if n.AsTemplateDecl() != nil {
		t.Error("AsTemplateDecl() on null name should be nil")
	}
	defer func() {
		if recover() == nil {
			t.Error("Kind() on null name should panic")
		}
	}()
	n.Kind()
}

func TestUniquing(t *testing.T) {
	f := newFixture()

	a := f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.vec))
	b := f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.vec))
	if a != b {
		t.Errorf("equal substitutions should be identical")
	}
	if a.OpaqueID() != b.OpaqueID() {
		t.Errorf("OpaqueID() differs for identical names")
	}
	c := f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.list))
	if a == c {
		t.Errorf("different replacements must not share storage")
	}
	if got := f.names.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}

	args := []Argument{TemplateArg(FromDecl(f.vec)), TemplateArg(FromDecl(f.list))}
	p1 := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(args))
	p2 := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(args))
	if p1 != p2 {
		t.Errorf("equal pack substitutions should be identical")
	}
	reversed := []Argument{args[1], args[0]}
	if p3 := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(reversed)); p3 == p1 {
		t.Errorf("argument order must be part of the identity")
	}

	q := ast.Global().WithNamespace(f.ns)
	if f.names.QualifiedTemplateName(q, false, f.vec) != f.names.QualifiedTemplateName(ast.Global().WithNamespace(f.ns), false, f.vec) {
		t.Errorf("structurally equal qualified names should be identical")
	}
	if f.names.QualifiedTemplateName(q, true, f.vec) == f.names.QualifiedTemplateName(q, false, f.vec) {
		t.Errorf("template keyword must be part of the identity")
	}
}

func TestUniquingCanonicalArguments(t *testing.T) {
	f := newFixture()
	redecl := f.ast.Redeclare(f.vec, f.ns.Inner(), false, ast.SourceLocation{})

	p1 := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument([]Argument{TemplateArg(FromDecl(f.vec))}))
	p2 := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument([]Argument{TemplateArg(FromDecl(redecl))}))
	if p1 != p2 {
		t.Errorf("redeclarations of the same template should profile identically")
	}
}

func TestAsTemplateDecl(t *testing.T) {
	f := newFixture()
	inner := f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.vec))
	outer := f.names.SubstTemplateTemplateParm(f.pack, inner)
	if got := outer.AsTemplateDecl(); got != f.vec {
		t.Errorf("AsTemplateDecl() should follow the substitution chain")
	}

	resolved := f.names.SplicedTemplateReflection(&ast.IntegerLiteral{Value: 1}, f.list)
	if got := resolved.AsTemplateDecl(); got != f.list {
		t.Errorf("AsTemplateDecl() of resolved splice = %v", got)
	}
	if got := f.names.DependentTemplateName(f.dependentQualifier(), "x").AsTemplateDecl(); got != nil {
		t.Errorf("dependent name has no declaration, got %v", got)
	}
}

func TestNameToSubstitute(t *testing.T) {
	f := newFixture()
	friend := f.ast.Redeclare(f.vec, f.ns.Inner(), true, ast.SourceLocation{})
	if got := FromDecl(friend).NameToSubstitute(); got != FromDecl(f.vec) {
		t.Errorf("NameToSubstitute() = %v, want the non-friend declaration", got.AsTemplateDecl())
	}

	later := f.ast.Redeclare(f.vec, f.ns.Inner(), false, ast.SourceLocation{})
	if got := FromDecl(f.vec).NameToSubstitute(); got != FromDecl(later) {
		t.Errorf("NameToSubstitute() should pick the most recent non-friend")
	}

	dep := f.names.DependentTemplateName(f.dependentQualifier(), "apply")
	if got := dep.NameToSubstitute(); got != dep {
		t.Errorf("names without a declaration substitute as written")
	}
}

func TestNameToSubstituteAllFriends(t *testing.T) {
	f := newFixture()
	first := f.ast.NewFriendTemplate(nil, ast.ClassTemplate, "OnlyFriends", ast.SourceLocation{})
	second := f.ast.Redeclare(first, nil, true, ast.SourceLocation{})
	defer func() {
		if recover() == nil {
			t.Error("NameToSubstitute() should panic when every declaration is a friend")
		}
	}()
	FromDecl(second).NameToSubstitute()
}

func TestDependence(t *testing.T) {
	f := newFixture()
	dependentNS := f.ast.NewNamespace(nil, "D", ast.SourceLocation{})
	dependentNS.Inner().Dependent = true
	inDependent := f.ast.NewTemplate(dependentNS.Inner(), ast.ClassTemplate, "Member", ast.SourceLocation{})

	valueParm := f.ast.NewNonTypeTemplateParm(nil, "r", nil, false, ast.SourceLocation{})
	packParm := f.ast.NewNonTypeTemplateParm(nil, "rs", nil, true, ast.SourceLocation{})

	tests := []struct {
		name string
		n    Name
		want ast.TemplateNameDependence
	}{
		{"plain", FromDecl(f.vec), ast.TemplateNameNone},
		{"template template parm", FromDecl(f.ttp), ast.TemplateNameDependentInstantiation},
		{"template template parm pack", FromDecl(f.pack), ast.TemplateNameDependentInstantiation | ast.TemplateNameUnexpandedPack},
		{"dependent context", FromDecl(inDependent), ast.TemplateNameDependentInstantiation},
		{"qualified", f.names.QualifiedTemplateName(ast.Global().WithNamespace(f.ns), false, f.vec), ast.TemplateNameNone},
		{"dependent", f.names.DependentTemplateName(f.dependentQualifier(), "apply"), ast.TemplateNameDependentInstantiation},
		{"assumed", f.names.AssumedTemplateName(ast.Identifier("g")), ast.TemplateNameDependentInstantiation},
		{"subst", f.names.SubstTemplateTemplateParm(f.ttp, FromDecl(f.vec)), ast.TemplateNameNone},
		{"subst pack", f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(nil)), ast.TemplateNameDependentInstantiation | ast.TemplateNameUnexpandedPack},
		{"spliced dependent", f.names.SplicedTemplateReflection(&ast.DeclRefExpr{Decl: valueParm}, nil), ast.TemplateNameDependentInstantiation},
		{"spliced pack", f.names.SplicedTemplateReflection(&ast.DeclRefExpr{Decl: packParm}, nil), ast.TemplateNameDependentInstantiation | ast.TemplateNameUnexpandedPack},
		{"spliced resolved", f.names.SplicedTemplateReflection(&ast.IntegerLiteral{Value: 7}, f.vec), ast.TemplateNameNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.n.Dependence(); got != tt.want {
				t.Errorf("Dependence() = %v, want %v", got, tt.want)
			}
			if got, want := tt.n.IsDependent(), tt.want&ast.TemplateNameDependent != 0; got != want {
				t.Errorf("IsDependent() = %v, want %v", got, want)
			}
			if got, want := tt.n.ContainsUnexpandedParameterPack(), tt.want&ast.TemplateNameUnexpandedPack != 0; got != want {
				t.Errorf("ContainsUnexpandedParameterPack() = %v, want %v", got, want)
			}
		})
	}
}

func TestDependenceOverloadSetPanics(t *testing.T) {
	f := newFixture()
	n := f.names.OverloadedTemplateName([]ast.NamedDecl{f.vec, f.list})
	defer func() {
		if recover() == nil {
			t.Error("Dependence() of an overload set should panic")
		}
	}()
	n.Dependence()
}

func TestPrint(t *testing.T) {
	f := newFixture()
	q := ast.Global().WithNamespace(f.ns)
	refl := &ast.DeclRefExpr{Decl: f.ast.NewNonTypeTemplateParm(nil, "r", nil, false, ast.SourceLocation{})}

	tests := []struct {
		name        string
		n           Name
		policy      ast.PrintingPolicy
		suppressNNS bool
		want        string
	}{
		{"decl", FromDecl(f.vec), ast.PrintingPolicy{}, false, "vector"},
		{"decl fully qualified", FromDecl(f.vec), ast.PrintingPolicy{FullyQualifiedName: true}, false, "N::vector"},
		{"decl suppress scope", FromDecl(f.vec), ast.PrintingPolicy{FullyQualifiedName: true, SuppressScope: true}, false, "vector"},
		{"qualified", f.names.QualifiedTemplateName(q, false, f.vec), ast.PrintingPolicy{}, false, "::N::vector"},
		{"qualified template keyword", f.names.QualifiedTemplateName(q, true, f.vec), ast.PrintingPolicy{}, false, "::N::template vector"},
		{"qualified suppressed", f.names.QualifiedTemplateName(q, false, f.vec), ast.PrintingPolicy{}, true, "vector"},
		{"dependent", f.names.DependentTemplateName(f.dependentQualifier(), "apply"), ast.PrintingPolicy{}, false, "T::template apply"},
		{"dependent suppressed", f.names.DependentTemplateName(f.dependentQualifier(), "apply"), ast.PrintingPolicy{}, true, "template apply"},
		{"dependent operator", f.names.DependentOperatorTemplateName(f.dependentQualifier(), ast.OOPlus), ast.PrintingPolicy{}, false, "T::template operator +"},
		{"overloaded", f.names.OverloadedTemplateName([]ast.NamedDecl{f.list, f.vec}), ast.PrintingPolicy{}, false, "list"},
		{"assumed", f.names.AssumedTemplateName(ast.Identifier("maybe")), ast.PrintingPolicy{}, false, "maybe"},
		{"subst", f.names.SubstTemplateTemplateParm(f.ttp, f.names.QualifiedTemplateName(q, false, f.vec)), ast.PrintingPolicy{}, false, "::N::vector"},
		{"subst suppressed", f.names.SubstTemplateTemplateParm(f.ttp, f.names.QualifiedTemplateName(q, false, f.vec)), ast.PrintingPolicy{}, true, "vector"},
		{"subst pack", f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(nil)), ast.PrintingPolicy{}, false, "Ps"},
		{"spliced", f.names.SplicedTemplateReflection(refl, nil), ast.PrintingPolicy{}, false, "r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.n.Print(&buf, tt.policy, tt.suppressNNS)
			if got := buf.String(); got != tt.want {
				t.Errorf("Print() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestQuotedAndDump(t *testing.T) {
	f := newFixture()
	n := FromDecl(f.vec)
	if got := n.Quoted(); got != "'vector'" {
		t.Errorf("Quoted() = %q", got)
	}
	var buf bytes.Buffer
	n.Dump(&buf)
	if got := buf.String(); got != "vector\n" {
		t.Errorf("Dump() = %q", got)
	}
	if got := (Name{}).String(); got != "<null>" {
		t.Errorf("String() of null = %q", got)
	}
}

func TestArgumentPack(t *testing.T) {
	f := newFixture()
	args := []Argument{TemplateArg(FromDecl(f.vec)), TemplateArg(FromDecl(f.list))}
	n := f.names.SubstTemplateTemplateParmPack(f.pack, PackArgument(args))
	s := n.AsSubstParamPack()
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	pack := s.ArgumentPack()
	if pack.Kind != PackArgumentKind {
		t.Fatalf("ArgumentPack().Kind = %v", pack.Kind)
	}
	for i, a := range pack.Pack {
		if a.Name != args[i].Name {
			t.Errorf("argument %d = %v, want %v", i, a.Name, args[i].Name)
		}
	}
	// Mutating the caller's slice must not affect stored arguments.
	args[0] = TemplateArg(FromDecl(f.ttp))
	if s.ArgumentPack().Pack[0].Name != FromDecl(f.vec) {
		t.Errorf("stored arguments must be copied")
	}
}

func TestProfilerDeterministic(t *testing.T) {
	p := NewProfiler()
	p.AddString("ab")
	p.AddString("c")
	k1 := p.Sum()
	p.AddString("a")
	p.AddString("bc")
	k2 := p.Sum()
	if k1 == k2 {
		t.Errorf("length prefixes should separate string boundaries")
	}
	p.AddString("ab")
	p.AddString("c")
	if k3 := p.Sum(); k3 != k1 {
		t.Errorf("Sum() should reset the profiler")
	}
}
