// Package templatename models the names by which C++ templates are referred
// to: a plain declaration, a qualified or dependent name, an overload set,
// an assumed name, a substituted template template parameter (or pack) and
// a template spliced from a reflection.
//
// Name is a small comparable value. Every form other than a plain declaration
// lives in a Context, which uniques equal names so that identity comparison of
// two Names is structural equality.
package templatename

// Kind identifies which form a Name takes.
type Kind int

const (
	// Template is a single template declaration.
	Template Kind = iota
	// OverloadedTemplate is a set of function templates found by name lookup.
	OverloadedTemplate
	// AssumedTemplate is an unqualified name assumed to name a template
	// because it is followed by '<' and lookup found nothing.
	AssumedTemplate
	// QualifiedTemplate is a template referenced through a qualifier.
	QualifiedTemplate
	// DependentTemplate is a qualified name that cannot be resolved until
	// instantiation.
	DependentTemplate
	// SubstTemplateTemplateParm is a template template parameter that was
	// replaced during instantiation.
	SubstTemplateTemplateParm
	// SubstTemplateTemplateParmPack is a template template parameter pack
	// replaced by a pack of templates.
	SubstTemplateTemplateParmPack
	// SplicedTemplateReflection is a template named by splicing a reflection.
	SplicedTemplateReflection
)

func (k Kind) String() string {
	switch k {
	case Template:
		return "Template"
	case OverloadedTemplate:
		return "OverloadedTemplate"
	case AssumedTemplate:
		return "AssumedTemplate"
	case QualifiedTemplate:
		return "QualifiedTemplate"
	case DependentTemplate:
		return "DependentTemplate"
	case SubstTemplateTemplateParm:
		return "SubstTemplateTemplateParm"
	case SubstTemplateTemplateParmPack:
		return "SubstTemplateTemplateParmPack"
	case SplicedTemplateReflection:
		return "SplicedTemplateReflection"
	default:
		return "Unknown"
	}
}
