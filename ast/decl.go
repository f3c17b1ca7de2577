package ast

import "strings"

// ID identifies an arena-owned entity. IDs are unique within a Context and
// never reused.
type ID uint64

// DeclContextKind classifies a declaration context.
type DeclContextKind int

const (
	TranslationUnitContext DeclContextKind = iota
	NamespaceContext
	ClassContext
	FunctionContext
)

// DeclContext is a scope that contains declarations.
type DeclContext struct {
	Kind   DeclContextKind
	Name   string
	Parent *DeclContext
	// Dependent marks contexts such as templated classes whose members
	// depend on template parameters.
	Dependent bool
}

// IsDependentContext reports whether this context or any enclosing context
// is dependent.
func (dc *DeclContext) IsDependentContext() bool {
	for c := dc; c != nil; c = c.Parent {
		if c.Dependent {
			return true
		}
	}
	return false
}

// IsTranslationUnit reports whether dc is the outermost scope.
func (dc *DeclContext) IsTranslationUnit() bool {
	return dc != nil && dc.Kind == TranslationUnitContext
}

// QualifiedPrefix renders the enclosing scopes as "a::b::". The translation
// unit contributes nothing.
func (dc *DeclContext) QualifiedPrefix() string {
	var names []string
	for c := dc; c != nil && c.Kind != TranslationUnitContext; c = c.Parent {
		names = append(names, c.Name)
	}
	var b strings.Builder
	for i := len(names) - 1; i >= 0; i-- {
		b.WriteString(names[i])
		b.WriteString("::")
	}
	return b.String()
}

// NamedDecl is any declaration with a name.
type NamedDecl interface {
	ID() ID
	Name() string
	DeclContext() *DeclContext
	Location() SourceLocation

	namedDecl()
}

type declBase struct {
	id   ID
	name string
	ctx  *DeclContext
	loc  SourceLocation
}

func (d *declBase) ID() ID                    { return d.id }
func (d *declBase) Name() string              { return d.name }
func (d *declBase) DeclContext() *DeclContext { return d.ctx }
func (d *declBase) Location() SourceLocation  { return d.loc }
func (d *declBase) namedDecl()                {}

// QualifiedName returns the name including all enclosing scopes.
func QualifiedName(d NamedDecl) string {
	return d.DeclContext().QualifiedPrefix() + d.Name()
}

// TemplateDeclKind classifies template declarations.
type TemplateDeclKind int

const (
	ClassTemplate TemplateDeclKind = iota
	FunctionTemplate
	VarTemplate
	AliasTemplate
	Concept
	TemplateTemplateParm
)

func (k TemplateDeclKind) String() string {
	switch k {
	case ClassTemplate:
		return "ClassTemplate"
	case FunctionTemplate:
		return "FunctionTemplate"
	case VarTemplate:
		return "VarTemplate"
	case AliasTemplate:
		return "AliasTemplate"
	case Concept:
		return "Concept"
	case TemplateTemplateParm:
		return "TemplateTemplateParm"
	default:
		return "Unknown"
	}
}

type redeclChain struct {
	first  *TemplateDecl
	latest *TemplateDecl
}

// TemplateDecl is a template declaration. Template template parameters are
// TemplateDecls of kind TemplateTemplateParm.
//
// Redeclarations of the same template share a chain; PreviousDecl walks it
// from newest to oldest.
type TemplateDecl struct {
	declBase
	kind   TemplateDeclKind
	friend bool
	pack   bool
	depth  int
	index  int
	prev   *TemplateDecl
	chain  *redeclChain
}

func (d *TemplateDecl) Kind() TemplateDeclKind { return d.kind }

// IsFriend reports whether this redeclaration is a friend declaration.
func (d *TemplateDecl) IsFriend() bool { return d.friend }

// IsTemplateTemplateParm reports whether d is a template template parameter.
func (d *TemplateDecl) IsTemplateTemplateParm() bool { return d.kind == TemplateTemplateParm }

// IsParameterPack reports whether d is a template template parameter pack.
func (d *TemplateDecl) IsParameterPack() bool { return d.pack }

// Depth and Index locate a template template parameter in its template
// parameter lists.
func (d *TemplateDecl) Depth() int { return d.depth }
func (d *TemplateDecl) Index() int { return d.index }

// PreviousDecl returns the redeclaration made before d, or nil.
func (d *TemplateDecl) PreviousDecl() *TemplateDecl { return d.prev }

// MostRecentDecl returns the newest redeclaration of d.
func (d *TemplateDecl) MostRecentDecl() *TemplateDecl { return d.chain.latest }

// CanonicalDecl returns the first declaration of d.
func (d *TemplateDecl) CanonicalDecl() *TemplateDecl { return d.chain.first }

// NamespaceDecl is a namespace. Inner is the scope it introduces.
type NamespaceDecl struct {
	declBase
	inner *DeclContext
}

// Inner returns the context introduced by the namespace.
func (d *NamespaceDecl) Inner() *DeclContext { return d.inner }

// TypeDeclKind classifies type declarations.
type TypeDeclKind int

const (
	ClassType TypeDeclKind = iota
	EnumType
	TypedefType
	TemplateTypeParm
)

// TypeDecl declares a named type. Template type parameters are dependent.
type TypeDecl struct {
	declBase
	kind  TypeDeclKind
	pack  bool
	inner *DeclContext
}

func (d *TypeDecl) Kind() TypeDeclKind { return d.kind }

// IsParameterPack reports whether d is a template type parameter pack.
func (d *TypeDecl) IsParameterPack() bool { return d.pack }

// Inner returns the member scope of a class, or nil.
func (d *TypeDecl) Inner() *DeclContext { return d.inner }

// IsDependent reports whether the declared type depends on a template
// parameter.
func (d *TypeDecl) IsDependent() bool {
	return d.kind == TemplateTypeParm || d.ctx.IsDependentContext()
}

// ValueDeclKind classifies value declarations.
type ValueDeclKind int

const (
	VarDecl ValueDeclKind = iota
	FunctionDecl
	EnumConstantDecl
	FieldDecl
	NonTypeTemplateParm
)

// ValueDecl declares a variable, function, enumerator, field or non-type
// template parameter. Init is the constant initializer, if any.
type ValueDecl struct {
	declBase
	kind ValueDeclKind
	Type Type
	Init Expr
	pack bool
}

func (d *ValueDecl) Kind() ValueDeclKind { return d.kind }

// IsParameterPack reports whether d is a non-type template parameter pack.
func (d *ValueDecl) IsParameterPack() bool { return d.pack }

// IsDependent reports whether references to d are value dependent.
func (d *ValueDecl) IsDependent() bool {
	return d.kind == NonTypeTemplateParm || d.ctx.IsDependentContext()
}
