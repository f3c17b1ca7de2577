package ast

import "strings"

// ExprDependence describes how an expression depends on template parameters.
type ExprDependence uint8

const (
	ExprUnexpandedPack ExprDependence = 1 << iota
	ExprInstantiation
	ExprType
	ExprValue
	ExprError

	ExprNone      ExprDependence = 0
	ExprTypeValue                = ExprType | ExprValue
	// ExprTypeValueInstantiation is the dependence of a name that cannot be
	// resolved until instantiation.
	ExprTypeValueInstantiation = ExprType | ExprValue | ExprInstantiation
	ExprValueInstantiation     = ExprValue | ExprInstantiation
)

// IsValueDependent reports whether the value of the expression is dependent.
func (d ExprDependence) IsValueDependent() bool { return d&ExprValue != 0 }

// IsTypeDependent reports whether the type of the expression is dependent.
func (d ExprDependence) IsTypeDependent() bool { return d&ExprType != 0 }

// IsInstantiationDependent reports whether the expression mentions a
// template parameter in any way.
func (d ExprDependence) IsInstantiationDependent() bool { return d&ExprInstantiation != 0 }

// ContainsUnexpandedPack reports whether the expression names a parameter
// pack outside of an expansion.
func (d ExprDependence) ContainsUnexpandedPack() bool { return d&ExprUnexpandedPack != 0 }

func (d ExprDependence) String() string {
	return formatBits(uint8(d), []string{"UnexpandedPack", "Instantiation", "Type", "Value", "Error"})
}

// TypeDependence describes how a type depends on template parameters.
type TypeDependence uint8

const (
	TypeUnexpandedPack TypeDependence = 1 << iota
	TypeInstantiation
	TypeDependent
	TypeVariablyModified
	TypeError

	TypeNone                    TypeDependence = 0
	TypeDependentInstantiation                 = TypeDependent | TypeInstantiation
)

func (d TypeDependence) String() string {
	return formatBits(uint8(d), []string{"UnexpandedPack", "Instantiation", "Dependent", "VariablyModified", "Error"})
}

// NestedNameSpecifierDependence describes how a scope qualifier depends on
// template parameters.
type NestedNameSpecifierDependence uint8

const (
	NestedNameSpecifierUnexpandedPack NestedNameSpecifierDependence = 1 << iota
	NestedNameSpecifierInstantiation
	NestedNameSpecifierDependent
	NestedNameSpecifierError

	NestedNameSpecifierNone                   NestedNameSpecifierDependence = 0
	NestedNameSpecifierDependentInstantiation                               = NestedNameSpecifierDependent | NestedNameSpecifierInstantiation
)

func (d NestedNameSpecifierDependence) String() string {
	return formatBits(uint8(d), []string{"UnexpandedPack", "Instantiation", "Dependent", "Error"})
}

// TemplateNameDependence describes how a template name depends on template
// parameters.
type TemplateNameDependence uint8

const (
	TemplateNameUnexpandedPack TemplateNameDependence = 1 << iota
	TemplateNameInstantiation
	TemplateNameDependent
	TemplateNameError

	TemplateNameNone                   TemplateNameDependence = 0
	TemplateNameDependentInstantiation                        = TemplateNameDependent | TemplateNameInstantiation
)

func (d TemplateNameDependence) String() string {
	return formatBits(uint8(d), []string{"UnexpandedPack", "Instantiation", "Dependent", "Error"})
}

// ToTypeDependence reinterprets expression dependence as type dependence.
// A type- or value-dependent expression yields a dependent type.
func ToTypeDependence(d ExprDependence) TypeDependence {
	var r TypeDependence
	if d&ExprUnexpandedPack != 0 {
		r |= TypeUnexpandedPack
	}
	if d&ExprInstantiation != 0 {
		r |= TypeInstantiation
	}
	if d&ExprTypeValue != 0 {
		r |= TypeDependent
	}
	if d&ExprError != 0 {
		r |= TypeError
	}
	return r
}

// ToExprDependence reinterprets type dependence as the dependence of an
// expression of that type.
func ToExprDependence(d TypeDependence) ExprDependence {
	var r ExprDependence
	if d&TypeUnexpandedPack != 0 {
		r |= ExprUnexpandedPack
	}
	if d&TypeInstantiation != 0 {
		r |= ExprInstantiation
	}
	if d&TypeDependent != 0 {
		r |= ExprTypeValue
	}
	if d&TypeError != 0 {
		r |= ExprError
	}
	return r
}

// ToNestedNameSpecifierDependence reinterprets type dependence as the
// dependence of a qualifier naming that type. Variable modification is lost.
func ToNestedNameSpecifierDependence(d TypeDependence) NestedNameSpecifierDependence {
	var r NestedNameSpecifierDependence
	if d&TypeUnexpandedPack != 0 {
		r |= NestedNameSpecifierUnexpandedPack
	}
	if d&TypeInstantiation != 0 {
		r |= NestedNameSpecifierInstantiation
	}
	if d&TypeDependent != 0 {
		r |= NestedNameSpecifierDependent
	}
	if d&TypeError != 0 {
		r |= NestedNameSpecifierError
	}
	return r
}

// ToTemplateNameDependence reinterprets qualifier dependence as template
// name dependence.
func ToTemplateNameDependence(d NestedNameSpecifierDependence) TemplateNameDependence {
	var r TemplateNameDependence
	if d&NestedNameSpecifierUnexpandedPack != 0 {
		r |= TemplateNameUnexpandedPack
	}
	if d&NestedNameSpecifierInstantiation != 0 {
		r |= TemplateNameInstantiation
	}
	if d&NestedNameSpecifierDependent != 0 {
		r |= TemplateNameDependent
	}
	if d&NestedNameSpecifierError != 0 {
		r |= TemplateNameError
	}
	return r
}

func formatBits(v uint8, names []string) string {
	if v == 0 {
		return "None"
	}
	var parts []string
	for i, name := range names {
		if v&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	return strings.Join(parts, "|")
}
