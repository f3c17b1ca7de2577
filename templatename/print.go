package templatename

import (
	"io"
	"strings"

	"github.com/broady/metacxx/ast"
)

// Print writes n as it would be spelled in source. With suppressNNS the
// qualifier of qualified and dependent names is omitted.
func (n Name) Print(w io.Writer, p ast.PrintingPolicy, suppressNNS bool) {
	switch n.Kind() {
	case Template:
		io.WriteString(w, p.DeclName(n.decl))
	case QualifiedTemplate:
		q := n.AsQualified()
		if !suppressNNS {
			q.qualifier.Print(w, p)
		}
		if q.templateKeyword {
			io.WriteString(w, "template ")
		}
		io.WriteString(w, q.decl.Name())
	case DependentTemplate:
		dn := n.AsDependent()
		if !suppressNNS && dn.qualifier != nil {
			dn.qualifier.Print(w, p)
		}
		io.WriteString(w, "template ")
		if dn.IsIdentifier() {
			io.WriteString(w, dn.identifier)
		} else {
			io.WriteString(w, "operator "+dn.operator.Spelling())
		}
	case SubstTemplateTemplateParm:
		n.AsSubstParam().replacement.Print(w, p, suppressNNS)
	case SubstTemplateTemplateParmPack:
		io.WriteString(w, p.DeclName(n.AsSubstParamPack().param))
	case AssumedTemplate:
		io.WriteString(w, n.AsAssumed().name.String())
	case SplicedTemplateReflection:
		n.AsSplicedReflection().refl.Print(w, p)
	case OverloadedTemplate:
		io.WriteString(w, n.AsOverloadSet().candidates[0].Name())
	}
}

// String renders n with the default policy.
func (n Name) String() string {
	if n.IsNull() {
		return "<null>"
	}
	var b strings.Builder
	n.Print(&b, ast.PrintingPolicy{}, false)
	return b.String()
}

// Quoted renders n in single quotes, the form used in diagnostic arguments.
func (n Name) Quoted() string {
	return "'" + n.String() + "'"
}

// Dump writes n with the default policy followed by a newline.
func (n Name) Dump(w io.Writer) {
	n.Print(w, ast.PrintingPolicy{}, false)
	io.WriteString(w, "\n")
}
