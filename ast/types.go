package ast

import (
	"io"
	"strings"
)

// Type is a C++ type as seen by reflection and splices.
type Type interface {
	Dependence() TypeDependence
	Print(w io.Writer, p PrintingPolicy)

	typeNode()
}

// Printer is anything that renders under a policy.
type Printer interface {
	Print(w io.Writer, p PrintingPolicy)
}

// Sprint renders x to a string.
func Sprint(x Printer, p PrintingPolicy) string {
	var b strings.Builder
	x.Print(&b, p)
	return b.String()
}

// TypeBase marks a type node. Type nodes outside this package embed it to
// satisfy Type.
type TypeBase struct{}

func (TypeBase) typeNode() {}

// BuiltinType is a fundamental type spelled with keywords, e.g. "unsigned int".
type BuiltinType struct {
	TypeBase
	Name string
}

func (t *BuiltinType) Dependence() TypeDependence          { return TypeNone }
func (t *BuiltinType) Print(w io.Writer, _ PrintingPolicy) { io.WriteString(w, t.Name) }

// TagType names a declared class, enum, typedef or template type parameter.
type TagType struct {
	TypeBase
	Qualifier *NestedNameSpecifier
	Decl      *TypeDecl
}

func (t *TagType) Dependence() TypeDependence {
	var d TypeDependence
	if t.Decl.IsDependent() {
		d = TypeDependentInstantiation
		if t.Decl.IsParameterPack() {
			d |= TypeUnexpandedPack
		}
	}
	if t.Qualifier != nil {
		d |= nnsToType(t.Qualifier.Dependence())
	}
	return d
}

func (t *TagType) Print(w io.Writer, p PrintingPolicy) {
	if t.Qualifier != nil {
		t.Qualifier.Print(w, p)
		io.WriteString(w, t.Decl.Name())
		return
	}
	io.WriteString(w, p.DeclName(t.Decl))
}

// DependentNameType is "typename Q::name" with a dependent qualifier.
type DependentNameType struct {
	TypeBase
	Qualifier *NestedNameSpecifier
	Name      string
}

func (t *DependentNameType) Dependence() TypeDependence {
	return TypeDependentInstantiation | nnsToType(t.Qualifier.Dependence())
}

func (t *DependentNameType) Print(w io.Writer, p PrintingPolicy) {
	io.WriteString(w, "typename ")
	t.Qualifier.Print(w, p)
	io.WriteString(w, t.Name)
}

// PointerType is "T *".
type PointerType struct {
	TypeBase
	Pointee Type
}

func (t *PointerType) Dependence() TypeDependence { return t.Pointee.Dependence() }

func (t *PointerType) Print(w io.Writer, p PrintingPolicy) {
	t.Pointee.Print(w, p)
	io.WriteString(w, " *")
}

// ReferenceType is "T &" or "T &&".
type ReferenceType struct {
	TypeBase
	Pointee Type
	RValue  bool
}

func (t *ReferenceType) Dependence() TypeDependence { return t.Pointee.Dependence() }

func (t *ReferenceType) Print(w io.Writer, p PrintingPolicy) {
	t.Pointee.Print(w, p)
	if t.RValue {
		io.WriteString(w, " &&")
	} else {
		io.WriteString(w, " &")
	}
}

// QualifiedType adds cv-qualifiers to a type.
type QualifiedType struct {
	TypeBase
	Base     Type
	Const    bool
	Volatile bool
}

func (t *QualifiedType) Dependence() TypeDependence { return t.Base.Dependence() }

func (t *QualifiedType) Print(w io.Writer, p PrintingPolicy) {
	if t.Const {
		io.WriteString(w, "const ")
	}
	if t.Volatile {
		io.WriteString(w, "volatile ")
	}
	t.Base.Print(w, p)
}

// SpliceType is "typename [: e :]" whose reflection has not been resolved.
type SpliceType struct {
	TypeBase
	Refl Expr
}

func (t *SpliceType) Dependence() TypeDependence {
	return ToTypeDependence(t.Refl.Dependence()) | TypeDependentInstantiation
}

func (t *SpliceType) Print(w io.Writer, p PrintingPolicy) {
	io.WriteString(w, "typename [: ")
	t.Refl.Print(w, p)
	io.WriteString(w, " :]")
}

// PackSpliceType is "...[< e >]" in a type position.
type PackSpliceType struct {
	TypeBase
	Refl Expr
}

func (t *PackSpliceType) Dependence() TypeDependence {
	return ToTypeDependence(t.Refl.Dependence()) | TypeUnexpandedPack | TypeDependentInstantiation
}

func (t *PackSpliceType) Print(w io.Writer, p PrintingPolicy) {
	io.WriteString(w, "...[< ")
	t.Refl.Print(w, p)
	io.WriteString(w, " >]")
}

func nnsToType(d NestedNameSpecifierDependence) TypeDependence {
	var r TypeDependence
	if d&NestedNameSpecifierUnexpandedPack != 0 {
		r |= TypeUnexpandedPack
	}
	if d&NestedNameSpecifierInstantiation != 0 {
		r |= TypeInstantiation
	}
	if d&NestedNameSpecifierDependent != 0 {
		r |= TypeDependent
	}
	if d&NestedNameSpecifierError != 0 {
		r |= TypeError
	}
	return r
}
