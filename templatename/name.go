package templatename

import (
	"github.com/broady/metacxx/ast"
)

// Name is a reference to a template. The zero value is the null name, which
// must not be asked for its kind, dependence or rendering.
//
// Names are compared with ==: a Context guarantees that structurally equal
// names share storage.
type Name struct {
	decl    *ast.TemplateDecl
	storage Storage
}

// FromDecl returns the name of a template declaration.
func FromDecl(d *ast.TemplateDecl) Name {
	return Name{decl: d}
}

// FromStorage wraps storage created by a Context.
func FromStorage(s Storage) Name {
	return Name{storage: s}
}

// IsNull reports whether n refers to nothing.
func (n Name) IsNull() bool {
	return n.decl == nil && n.storage == nil
}

// Storage returns the out-of-line representation, or nil for a plain
// declaration.
func (n Name) Storage() Storage { return n.storage }

// Kind returns which form n takes. The common forms are checked before the
// uncommon ones.
func (n Name) Kind() Kind {
	if n.decl != nil {
		return Template
	}
	switch s := n.storage.(type) {
	case *DependentName:
		return DependentTemplate
	case *QualifiedName:
		return QualifiedTemplate
	case uncommonStorage:
		return uncommonKind(s)
	case nil:
		panic("templatename: Kind of null name")
	default:
		panic("templatename: unknown storage")
	}
}

func uncommonKind(s uncommonStorage) Kind {
	switch s.(type) {
	case *OverloadSet:
		return OverloadedTemplate
	case *AssumedName:
		return AssumedTemplate
	case *SplicedReflection:
		return SplicedTemplateReflection
	case *SubstParam:
		return SubstTemplateTemplateParm
	default:
		return SubstTemplateTemplateParmPack
	}
}

// AsTemplateDecl returns the single template n refers to, or nil when n is
// dependent, an overload set, assumed or an unresolved splice.
func (n Name) AsTemplateDecl() *ast.TemplateDecl {
	if n.decl != nil {
		return n.decl
	}
	switch s := n.storage.(type) {
	case *QualifiedName:
		return s.decl
	case *SubstParam:
		return s.replacement.AsTemplateDecl()
	case *SplicedReflection:
		return s.designated
	}
	return nil
}

// AsOverloadSet returns the overload set, or nil.
func (n Name) AsOverloadSet() *OverloadSet {
	s, _ := n.storage.(*OverloadSet)
	return s
}

// AsAssumed returns the assumed name, or nil.
func (n Name) AsAssumed() *AssumedName {
	s, _ := n.storage.(*AssumedName)
	return s
}

// AsQualified returns the qualified name, or nil.
func (n Name) AsQualified() *QualifiedName {
	s, _ := n.storage.(*QualifiedName)
	return s
}

// AsDependent returns the dependent name, or nil.
func (n Name) AsDependent() *DependentName {
	s, _ := n.storage.(*DependentName)
	return s
}

// AsSubstParam returns the substituted parameter, or nil.
func (n Name) AsSubstParam() *SubstParam {
	s, _ := n.storage.(*SubstParam)
	return s
}

// AsSubstParamPack returns the substituted parameter pack, or nil.
func (n Name) AsSubstParamPack() *SubstParamPack {
	s, _ := n.storage.(*SubstParamPack)
	return s
}

// AsSplicedReflection returns the spliced reflection, or nil.
func (n Name) AsSplicedReflection() *SplicedReflection {
	s, _ := n.storage.(*SplicedReflection)
	return s
}

// NameToSubstitute returns the name to use when substituting n into an
// instantiation: the most recent redeclaration that is not a friend. Names
// without a template declaration are returned unchanged.
func (n Name) NameToSubstitute() Name {
	d := n.AsTemplateDecl()
	if d == nil {
		return n
	}
	d = d.MostRecentDecl()
	for d.IsFriend() {
		d = d.PreviousDecl()
		if d == nil {
			panic("templatename: all declarations of template are friends")
		}
	}
	return FromDecl(d)
}

// Dependence computes how n depends on template parameters. An overload
// set has no meaningful dependence and panics.
func (n Name) Dependence() ast.TemplateNameDependence {
	var d ast.TemplateNameDependence
	switch n.Kind() {
	case QualifiedTemplate:
		d |= ast.ToTemplateNameDependence(n.AsQualified().qualifier.Dependence())
	case DependentTemplate:
		if q := n.AsDependent().qualifier; q != nil {
			d |= ast.ToTemplateNameDependence(q.Dependence())
		}
	case SubstTemplateTemplateParmPack:
		d |= ast.TemplateNameUnexpandedPack
	case SplicedTemplateReflection:
		d |= n.AsSplicedReflection().Dependence()
	case OverloadedTemplate:
		panic("templatename: overloaded templates have no dependence")
	}

	decl := n.AsTemplateDecl()
	if decl == nil {
		return d | ast.TemplateNameDependentInstantiation
	}
	if decl.IsTemplateTemplateParm() {
		d |= ast.TemplateNameDependentInstantiation
		if decl.IsParameterPack() {
			d |= ast.TemplateNameUnexpandedPack
		}
	}
	// A declaration still being built may not have a context yet.
	if dc := decl.DeclContext(); dc != nil && dc.IsDependentContext() {
		d |= ast.TemplateNameDependentInstantiation
	}
	return d
}

// IsDependent reports whether n is dependent.
func (n Name) IsDependent() bool {
	return n.Dependence()&ast.TemplateNameDependent != 0
}

// IsInstantiationDependent reports whether n involves a template parameter.
func (n Name) IsInstantiationDependent() bool {
	return n.Dependence()&ast.TemplateNameInstantiation != 0
}

// ContainsUnexpandedParameterPack reports whether n names an unexpanded
// pack.
func (n Name) ContainsUnexpandedParameterPack() bool {
	return n.Dependence()&ast.TemplateNameUnexpandedPack != 0
}

// OpaqueID returns the identity of n. Equal names have equal IDs.
func (n Name) OpaqueID() uint64 {
	switch {
	case n.decl != nil:
		return uint64(n.decl.ID())
	case n.storage != nil:
		return uint64(n.storage.ID())
	}
	return 0
}
