package sema

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/templatename"
)

// ValueKind classifies a constant value.
type ValueKind int

const (
	ValueNone ValueKind = iota
	ValueInt
	ValueBool
	ValueString
	ValueReflection
)

func (k ValueKind) String() string {
	switch k {
	case ValueNone:
		return "none"
	case ValueInt:
		return "int"
	case ValueBool:
		return "bool"
	case ValueString:
		return "string"
	case ValueReflection:
		return "meta::info"
	default:
		return "Unknown"
	}
}

// Value is the result of constant evaluation.
type Value struct {
	Kind ValueKind
	Int  int64
	Bool bool
	Str  string
	Refl Reflection
}

func IntValue(v int64) Value             { return Value{Kind: ValueInt, Int: v} }
func BoolValue(v bool) Value             { return Value{Kind: ValueBool, Bool: v} }
func StringValue(v string) Value         { return Value{Kind: ValueString, Str: v} }
func ReflectionValue(r Reflection) Value { return Value{Kind: ValueReflection, Refl: r} }

func (v Value) String() string {
	switch v.Kind {
	case ValueInt:
		return strconv.FormatInt(v.Int, 10)
	case ValueBool:
		return strconv.FormatBool(v.Bool)
	case ValueString:
		return v.Str
	case ValueReflection:
		var b strings.Builder
		v.Refl.Print(&b, ast.PrintingPolicy{})
		return b.String()
	default:
		return "<none>"
	}
}

// ReflectionKind classifies the entity a reflection designates.
type ReflectionKind int

const (
	ReflectionNull ReflectionKind = iota
	ReflectionInvalid
	ReflectionNamespace
	ReflectionType
	ReflectionTemplate
	ReflectionDecl
	ReflectionExpr
)

func (k ReflectionKind) String() string {
	switch k {
	case ReflectionNull:
		return "null"
	case ReflectionInvalid:
		return "invalid"
	case ReflectionNamespace:
		return "namespace"
	case ReflectionType:
		return "type"
	case ReflectionTemplate:
		return "template"
	case ReflectionDecl:
		return "declaration"
	case ReflectionExpr:
		return "expression"
	default:
		return "Unknown"
	}
}

// Reflection is a reflected entity. A namespace reflection with a nil
// Namespace designates the global namespace.
type Reflection struct {
	Kind      ReflectionKind
	Namespace *ast.NamespaceDecl
	Type      ast.Type
	Template  templatename.Name
	Decl      *ast.ValueDecl
	Expr      ast.Expr
	Message   string
}

// Equal reports whether a and b designate the same entity.
func (r Reflection) Equal(o Reflection) bool {
	if r.Kind != o.Kind {
		return false
	}
	switch r.Kind {
	case ReflectionNamespace:
		return r.Namespace == o.Namespace
	case ReflectionType:
		return ast.Sprint(r.Type, ast.PrintingPolicy{FullyQualifiedName: true}) ==
			ast.Sprint(o.Type, ast.PrintingPolicy{FullyQualifiedName: true})
	case ReflectionTemplate:
		a, b := r.Template.AsTemplateDecl(), o.Template.AsTemplateDecl()
		if a == nil || b == nil {
			return r.Template == o.Template
		}
		return a.CanonicalDecl() == b.CanonicalDecl()
	case ReflectionDecl:
		return r.Decl == o.Decl
	case ReflectionExpr:
		return r.Expr == o.Expr
	case ReflectionInvalid:
		return r.Message == o.Message
	}
	return true
}

// Name returns the unqualified name of the designated entity, or "".
func (r Reflection) Name() string {
	switch r.Kind {
	case ReflectionNamespace:
		if r.Namespace != nil {
			return r.Namespace.Name()
		}
	case ReflectionType:
		switch t := r.Type.(type) {
		case *ast.TagType:
			return t.Decl.Name()
		case *ast.BuiltinType:
			return t.Name
		}
		return ast.Sprint(r.Type, ast.PrintingPolicy{})
	case ReflectionTemplate:
		if d := r.Template.AsTemplateDecl(); d != nil {
			return d.Name()
		}
		return r.Template.String()
	case ReflectionDecl:
		return r.Decl.Name()
	}
	return ""
}

// Print writes the reflected entity.
func (r Reflection) Print(w io.Writer, p ast.PrintingPolicy) {
	switch r.Kind {
	case ReflectionNamespace:
		if r.Namespace == nil {
			io.WriteString(w, "::")
		} else {
			io.WriteString(w, p.DeclName(r.Namespace))
		}
	case ReflectionType:
		r.Type.Print(w, p)
	case ReflectionTemplate:
		r.Template.Print(w, p, false)
	case ReflectionDecl:
		io.WriteString(w, p.DeclName(r.Decl))
	case ReflectionExpr:
		r.Expr.Print(w, p)
	case ReflectionInvalid:
		fmt.Fprintf(w, "<invalid reflection: %s>", r.Message)
	default:
		io.WriteString(w, "<null reflection>")
	}
}

// Dump writes a one-line description of the reflection.
func (r Reflection) Dump(w io.Writer) {
	fmt.Fprintf(w, "Reflection kind=%s", r.Kind)
	if r.Kind != ReflectionNull {
		io.WriteString(w, " entity=")
		r.Print(w, ast.PrintingPolicy{FullyQualifiedName: true})
	}
	switch r.Kind {
	case ReflectionTemplate:
		fmt.Fprintf(w, " name-kind=%s", r.Template.Kind())
	case ReflectionType:
		fmt.Fprintf(w, " dependence=%s", r.Type.Dependence())
	}
	io.WriteString(w, "\n")
}
