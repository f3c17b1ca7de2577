package sema

import (
	"io"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/templatename"
)

// ExprResult is the outcome of an expression action. An invalid result
// carries no expression; the failure has already been diagnosed.
type ExprResult struct {
	Expr    ast.Expr
	Invalid bool
}

// Owned wraps a successfully built expression.
func Owned(e ast.Expr) ExprResult { return ExprResult{Expr: e} }

// ExprError is the invalid expression result.
func ExprError() ExprResult { return ExprResult{Invalid: true} }

// IsInvalid reports whether the action failed.
func (r ExprResult) IsInvalid() bool { return r.Invalid || r.Expr == nil }

// TypeResult is the outcome of a type action.
type TypeResult struct {
	Type    ast.Type
	Invalid bool
}

// TypeError is the invalid type result.
func TypeError() TypeResult { return TypeResult{Invalid: true} }

// IsInvalid reports whether the action failed.
func (r TypeResult) IsInvalid() bool { return r.Invalid || r.Type == nil }

// ScopeSpec is a parsed nested-name-specifier together with its source
// range. A spec that failed to parse is invalid but still set.
type ScopeSpec struct {
	Qualifier *ast.NestedNameSpecifier
	Range     ast.SourceRange
	Invalid   bool
}

// IsEmpty reports whether nothing was written.
func (s *ScopeSpec) IsEmpty() bool { return s.Qualifier == nil && !s.Invalid }

// IsSet reports whether a qualifier was written, valid or not.
func (s *ScopeSpec) IsSet() bool { return s.Qualifier != nil || s.Invalid }

// IsValid reports whether a well-formed qualifier was written.
func (s *ScopeSpec) IsValid() bool { return s.Qualifier != nil && !s.Invalid }

// IsDependent reports whether the qualifier is dependent.
func (s *ScopeSpec) IsDependent() bool { return s.IsValid() && s.Qualifier.IsDependent() }

// SetInvalid marks the spec as failed while keeping its range.
func (s *ScopeSpec) SetInvalid(r ast.SourceRange) {
	s.Invalid = true
	s.Range = r
}

func (s *ScopeSpec) extend(q *ast.NestedNameSpecifier, begin, end ast.SourceLocation) {
	if s.Qualifier == nil {
		s.Range.Begin = begin
	}
	s.Qualifier = q
	s.Range.End = end
}

// IdentifierInfo is the identifier produced by an identifier splice. Parts
// are kept when the identifier depends on template parameters.
type IdentifierInfo struct {
	Name      string
	Invalid   bool
	Dependent bool
	Parts     []ast.Expr
	Loc       ast.SourceLocation
}

// TemplateNameKind classifies a template name for the parser.
type TemplateNameKind int

const (
	TNKNonTemplate TemplateNameKind = iota
	TNKFunctionTemplate
	TNKVarTemplate
	TNKTypeTemplate
	TNKConceptTemplate
	TNKDependentTemplateName
	TNKUndeclaredTemplate
)

func (k TemplateNameKind) String() string {
	switch k {
	case TNKNonTemplate:
		return "NonTemplate"
	case TNKFunctionTemplate:
		return "FunctionTemplate"
	case TNKVarTemplate:
		return "VarTemplate"
	case TNKTypeTemplate:
		return "TypeTemplate"
	case TNKConceptTemplate:
		return "ConceptTemplate"
	case TNKDependentTemplateName:
		return "DependentTemplateName"
	case TNKUndeclaredTemplate:
		return "UndeclaredTemplate"
	default:
		return "Unknown"
	}
}

// TemplateNameKindOf derives the parser-facing kind of a template declaration.
func TemplateNameKindOf(d *ast.TemplateDecl) TemplateNameKind {
	switch d.Kind() {
	case ast.FunctionTemplate:
		return TNKFunctionTemplate
	case ast.VarTemplate:
		return TNKVarTemplate
	case ast.Concept:
		return TNKConceptTemplate
	default:
		return TNKTypeTemplate
	}
}

// TemplateArgKind classifies a parsed template argument.
type TemplateArgKind int

const (
	InvalidArg TemplateArgKind = iota
	TypeArg
	NonTypeArg
	TemplateArg
	// SpliceArg is a splice whose kind is known only after instantiation.
	SpliceArg
	PackSpliceArg
)

// ParsedTemplateArgument is one argument of a template-id.
type ParsedTemplateArgument struct {
	Kind        TemplateArgKind
	Type        ast.Type
	Expr        ast.Expr
	Template    templatename.Name
	Loc         ast.SourceLocation
	EllipsisLoc ast.SourceLocation
}

// IsInvalid reports whether the argument failed to parse.
func (a ParsedTemplateArgument) IsInvalid() bool { return a.Kind == InvalidArg }

// IsPackExpansion reports whether the argument was followed by "...".
func (a ParsedTemplateArgument) IsPackExpansion() bool { return a.EllipsisLoc.IsValid() }

// Print writes the argument as written.
func (a ParsedTemplateArgument) Print(w io.Writer, p ast.PrintingPolicy) {
	switch a.Kind {
	case TypeArg:
		a.Type.Print(w, p)
	case NonTypeArg:
		a.Expr.Print(w, p)
	case TemplateArg:
		a.Template.Print(w, p, false)
	case SpliceArg:
		io.WriteString(w, "[: ")
		a.Expr.Print(w, p)
		io.WriteString(w, " :]")
	case PackSpliceArg:
		io.WriteString(w, "...[< ")
		a.Expr.Print(w, p)
		io.WriteString(w, " >]")
	default:
		io.WriteString(w, "<invalid>")
	}
	if a.IsPackExpansion() {
		io.WriteString(w, "...")
	}
}

// Dependence returns the argument's dependence as an expression dependence.
func (a ParsedTemplateArgument) Dependence() ast.ExprDependence {
	var d ast.ExprDependence
	switch a.Kind {
	case TypeArg:
		d = ast.ToExprDependence(a.Type.Dependence())
	case NonTypeArg:
		d = a.Expr.Dependence()
	case TemplateArg:
		d = templateNameToExpr(a.Template.Dependence())
	case SpliceArg:
		d = a.Expr.Dependence() | ast.ExprTypeValueInstantiation
	case PackSpliceArg:
		d = a.Expr.Dependence() | ast.ExprUnexpandedPack | ast.ExprInstantiation
	case InvalidArg:
		d = ast.ExprError
	}
	if a.IsPackExpansion() {
		d &^= ast.ExprUnexpandedPack
	}
	return d
}

func printArgs(w io.Writer, p ast.PrintingPolicy, args []ParsedTemplateArgument) {
	io.WriteString(w, "<")
	for i, a := range args {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		a.Print(w, p)
	}
	io.WriteString(w, ">")
}

func templateNameToExpr(d ast.TemplateNameDependence) ast.ExprDependence {
	var r ast.ExprDependence
	if d&ast.TemplateNameUnexpandedPack != 0 {
		r |= ast.ExprUnexpandedPack
	}
	if d&ast.TemplateNameInstantiation != 0 {
		r |= ast.ExprInstantiation
	}
	if d&ast.TemplateNameDependent != 0 {
		r |= ast.ExprTypeValue
	}
	if d&ast.TemplateNameError != 0 {
		r |= ast.ExprError
	}
	return r
}

// OperandKind classifies what a reflection operand designates.
type OperandKind int

const (
	OperandInvalid OperandKind = iota
	OperandNamespace
	OperandTemplate
	OperandType
	OperandExpression
)

func (k OperandKind) String() string {
	switch k {
	case OperandInvalid:
		return "Invalid"
	case OperandNamespace:
		return "Namespace"
	case OperandTemplate:
		return "Template"
	case OperandType:
		return "Type"
	case OperandExpression:
		return "Expression"
	default:
		return "Unknown"
	}
}

// ReflectionOperand is the entity named by the operand of '^'. A namespace
// operand with a nil Namespace is the global namespace.
type ReflectionOperand struct {
	Kind      OperandKind
	Namespace *ast.NamespaceDecl
	Scope     *ast.NestedNameSpecifier
	Template  templatename.Name
	Type      ast.Type
	Expr      ast.Expr
	Loc       ast.SourceLocation
}

// InvalidOperand is the operand of a failed reflection.
func InvalidOperand() ReflectionOperand { return ReflectionOperand{} }

// IsInvalid reports whether no alternative matched.
func (o ReflectionOperand) IsInvalid() bool { return o.Kind == OperandInvalid }

// Print writes the operand as written.
func (o ReflectionOperand) Print(w io.Writer, p ast.PrintingPolicy) {
	switch o.Kind {
	case OperandNamespace:
		if o.Namespace == nil {
			io.WriteString(w, "::")
			return
		}
		if o.Scope != nil {
			o.Scope.Print(w, p)
			io.WriteString(w, o.Namespace.Name())
			return
		}
		io.WriteString(w, p.DeclName(o.Namespace))
	case OperandTemplate:
		o.Template.Print(w, p, false)
	case OperandType:
		o.Type.Print(w, p)
	case OperandExpression:
		o.Expr.Print(w, p)
	default:
		io.WriteString(w, "<invalid>")
	}
}

// Dependence returns the dependence a reflection of this operand has. Any
// dependence of the operand makes the reflection value dependent.
func (o ReflectionOperand) Dependence() ast.ExprDependence {
	var d ast.ExprDependence
	switch o.Kind {
	case OperandNamespace:
		if o.Scope != nil {
			d = ast.ToExprDependence(nnsToType(o.Scope.Dependence()))
		}
	case OperandTemplate:
		d = templateNameToExpr(o.Template.Dependence())
	case OperandType:
		d = ast.ToExprDependence(o.Type.Dependence())
	case OperandExpression:
		d = o.Expr.Dependence()
	case OperandInvalid:
		return ast.ExprError
	}
	if d&ast.ExprTypeValue != 0 {
		d = d&^ast.ExprType | ast.ExprValue
	}
	return d
}

func nnsToType(d ast.NestedNameSpecifierDependence) ast.TypeDependence {
	var r ast.TypeDependence
	if d&ast.NestedNameSpecifierUnexpandedPack != 0 {
		r |= ast.TypeUnexpandedPack
	}
	if d&ast.NestedNameSpecifierInstantiation != 0 {
		r |= ast.TypeInstantiation
	}
	if d&ast.NestedNameSpecifierDependent != 0 {
		r |= ast.TypeDependent
	}
	return r
}

// NameKind classifies what an identifier names.
type NameKind int

const (
	NameUnknown NameKind = iota
	NameNamespace
	NameType
	NameTemplate
	NameValue
	// NameDependent is a name looked up in a dependent scope.
	NameDependent
)

// Classification is the result of looking up an identifier for the parser.
type Classification struct {
	Kind         NameKind
	Namespace    *ast.NamespaceDecl
	Type         *ast.TypeDecl
	Template     templatename.Name
	TemplateKind TemplateNameKind
	Value        *ast.ValueDecl
}

// EvaluationContext is the kind of expression evaluation context.
type EvaluationContext int

const (
	PotentiallyEvaluated EvaluationContext = iota
	ConstantEvaluated
	Unevaluated
)
