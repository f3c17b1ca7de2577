package templatename

import (
	"github.com/broady/metacxx/ast"
)

// Storage is the out-of-line representation of a Name that is not a plain
// template declaration. Values are created and owned by a Context.
type Storage interface {
	// Kind returns the kind of name this storage represents.
	Kind() Kind

	// ID returns the identity assigned by the owning Context.
	ID() ast.ID

	// Ensure only types in this package can implement Storage.
	sealed()
}

// uncommonStorage groups the rarely used variants, which Name.Kind resolves
// after the common ones.
type uncommonStorage interface {
	Storage
	uncommon()
}

type storageBase struct {
	id ast.ID
}

func (s *storageBase) ID() ast.ID { return s.id }
func (s *storageBase) sealed()    {}

type uncommonBase struct {
	storageBase
}

func (uncommonBase) uncommon() {}

// QualifiedName is a template referenced through a qualifier, e.g.
// "std::template vector".
type QualifiedName struct {
	storageBase
	qualifier       *ast.NestedNameSpecifier
	templateKeyword bool
	decl            *ast.TemplateDecl
}

func (s *QualifiedName) Kind() Kind { return QualifiedTemplate }

// Qualifier returns the scope the template was named through.
func (s *QualifiedName) Qualifier() *ast.NestedNameSpecifier { return s.qualifier }

// HasTemplateKeyword reports whether the name was written with "template".
func (s *QualifiedName) HasTemplateKeyword() bool { return s.templateKeyword }

// Decl returns the template the name refers to.
func (s *QualifiedName) Decl() *ast.TemplateDecl { return s.decl }

// DependentName is "Q::template name" or "Q::template operator op" whose
// qualifier is dependent.
type DependentName struct {
	storageBase
	qualifier  *ast.NestedNameSpecifier
	identifier string
	operator   ast.OverloadedOperatorKind
}

func (s *DependentName) Kind() Kind { return DependentTemplate }

// Qualifier returns the dependent qualifier. It may be nil.
func (s *DependentName) Qualifier() *ast.NestedNameSpecifier { return s.qualifier }

// IsIdentifier reports whether the name is an identifier rather than an
// operator.
func (s *DependentName) IsIdentifier() bool { return s.operator == ast.OONone }

// Identifier returns the identifier. It is empty for operator names.
func (s *DependentName) Identifier() string { return s.identifier }

// Operator returns the operator. It is OONone for identifier names.
func (s *DependentName) Operator() ast.OverloadedOperatorKind { return s.operator }

// OverloadSet is an unresolved set of candidate templates. It must be
// resolved before the name is used in a way that needs its dependence.
type OverloadSet struct {
	uncommonBase
	candidates []ast.NamedDecl
}

func (s *OverloadSet) Kind() Kind { return OverloadedTemplate }

// Candidates returns the declarations in the set.
func (s *OverloadSet) Candidates() []ast.NamedDecl { return s.candidates }

// Len returns the number of candidates.
func (s *OverloadSet) Len() int { return len(s.candidates) }

// AssumedName is a name assumed to be a template because it was followed by
// '<' even though lookup found nothing.
type AssumedName struct {
	uncommonBase
	name ast.DeclarationName
}

func (s *AssumedName) Kind() Kind { return AssumedTemplate }

// DeclName returns the assumed name.
func (s *AssumedName) DeclName() ast.DeclarationName { return s.name }

// SubstParam records that a template template parameter was replaced by a
// template during instantiation.
type SubstParam struct {
	uncommonBase
	param       *ast.TemplateDecl
	replacement Name
}

func (s *SubstParam) Kind() Kind { return SubstTemplateTemplateParm }

// Parameter returns the replaced template template parameter.
func (s *SubstParam) Parameter() *ast.TemplateDecl { return s.param }

// Replacement returns the template substituted for the parameter.
func (s *SubstParam) Replacement() Name { return s.replacement }

// SubstParamPack records that a template template parameter pack was
// replaced by a pack of templates.
type SubstParamPack struct {
	uncommonBase
	param *ast.TemplateDecl
	args  []Argument
}

func (s *SubstParamPack) Kind() Kind { return SubstTemplateTemplateParmPack }

// ParameterPack returns the replaced parameter pack.
func (s *SubstParamPack) ParameterPack() *ast.TemplateDecl { return s.param }

// Len returns the number of arguments in the pack.
func (s *SubstParamPack) Len() int { return len(s.args) }

// ArgumentPack returns the substituted arguments as a pack argument.
func (s *SubstParamPack) ArgumentPack() Argument {
	return PackArgument(s.args)
}

// SplicedReflection is a template named by "[: r :]". Designated is set once
// the reflection has been evaluated.
type SplicedReflection struct {
	uncommonBase
	refl       ast.Expr
	designated *ast.TemplateDecl
}

func (s *SplicedReflection) Kind() Kind { return SplicedTemplateReflection }

// Reflection returns the spliced expression.
func (s *SplicedReflection) Reflection() ast.Expr { return s.refl }

// DesignatedTemplate returns the template the reflection evaluated to, or
// nil if it has not been resolved.
func (s *SplicedReflection) DesignatedTemplate() *ast.TemplateDecl { return s.designated }

// Dependence derives the name's dependence from the reflection expression by
// way of the type and nested-name-specifier layers.
func (s *SplicedReflection) Dependence() ast.TemplateNameDependence {
	return ast.ToTemplateNameDependence(
		ast.ToNestedNameSpecifierDependence(
			ast.ToTypeDependence(s.refl.Dependence())))
}

// IsDependent reports whether the reflection is dependent.
func (s *SplicedReflection) IsDependent() bool {
	return s.Dependence()&ast.TemplateNameDependent != 0
}
