package ast

import "io"

// NestedNameSpecifierKind classifies one component of a scope qualifier.
type NestedNameSpecifierKind int

const (
	GlobalSpecifier NestedNameSpecifierKind = iota
	NamespaceSpecifier
	TypeSpecifier
	IdentifierSpecifier
	SpliceSpecifier
)

// NestedNameSpecifier is a scope qualifier such as "::a::B::". Each value is
// one component linked to its prefix.
type NestedNameSpecifier struct {
	Kind       NestedNameSpecifierKind
	Prefix     *NestedNameSpecifier
	Namespace  *NamespaceDecl
	Type       Type
	Identifier string
	Splice     Expr
}

// Global returns the "::" qualifier.
func Global() *NestedNameSpecifier {
	return &NestedNameSpecifier{Kind: GlobalSpecifier}
}

// WithNamespace appends a namespace component.
func (s *NestedNameSpecifier) WithNamespace(ns *NamespaceDecl) *NestedNameSpecifier {
	return &NestedNameSpecifier{Kind: NamespaceSpecifier, Prefix: s, Namespace: ns}
}

// WithType appends a type component.
func (s *NestedNameSpecifier) WithType(t Type) *NestedNameSpecifier {
	return &NestedNameSpecifier{Kind: TypeSpecifier, Prefix: s, Type: t}
}

// WithIdentifier appends a dependent identifier component.
func (s *NestedNameSpecifier) WithIdentifier(id string) *NestedNameSpecifier {
	return &NestedNameSpecifier{Kind: IdentifierSpecifier, Prefix: s, Identifier: id}
}

// WithSplice appends a "[: e :]" component.
func (s *NestedNameSpecifier) WithSplice(e Expr) *NestedNameSpecifier {
	return &NestedNameSpecifier{Kind: SpliceSpecifier, Prefix: s, Splice: e}
}

// Dependence returns the union of the dependence of all components.
func (s *NestedNameSpecifier) Dependence() NestedNameSpecifierDependence {
	var d NestedNameSpecifierDependence
	for c := s; c != nil; c = c.Prefix {
		switch c.Kind {
		case IdentifierSpecifier:
			// A bare identifier only appears after a dependent prefix.
			d |= NestedNameSpecifierDependentInstantiation
		case TypeSpecifier:
			d |= ToNestedNameSpecifierDependence(c.Type.Dependence())
		case SpliceSpecifier:
			d |= ToNestedNameSpecifierDependence(ToTypeDependence(c.Splice.Dependence()))
		}
	}
	return d
}

// IsDependent reports whether the qualifier cannot be resolved before
// instantiation.
func (s *NestedNameSpecifier) IsDependent() bool {
	return s.Dependence()&NestedNameSpecifierDependent != 0
}

// Context returns the scope the qualifier designates, or nil when it is
// dependent or does not name a scope.
func (s *NestedNameSpecifier) Context(tu *DeclContext) *DeclContext {
	switch s.Kind {
	case GlobalSpecifier:
		return tu
	case NamespaceSpecifier:
		return s.Namespace.Inner()
	case TypeSpecifier:
		if t, ok := s.Type.(*TagType); ok {
			return t.Decl.Inner()
		}
	}
	return nil
}

// Print writes the qualifier including the trailing "::".
func (s *NestedNameSpecifier) Print(w io.Writer, p PrintingPolicy) {
	if s.Prefix != nil {
		s.Prefix.Print(w, p)
	}
	switch s.Kind {
	case GlobalSpecifier:
		io.WriteString(w, "::")
		return
	case NamespaceSpecifier:
		io.WriteString(w, s.Namespace.Name())
	case TypeSpecifier:
		s.Type.Print(w, PrintingPolicy{})
	case IdentifierSpecifier:
		io.WriteString(w, s.Identifier)
	case SpliceSpecifier:
		io.WriteString(w, "[: ")
		s.Splice.Print(w, p)
		io.WriteString(w, " :]")
	}
	io.WriteString(w, "::")
}
