// Package names implements "metacxx names": it builds one template name of
// every storage variant and shows how each is printed, what it depends on
// and whether building it twice yields the same uniqued storage.
package names

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/internal/testfixtures"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/templatename"
)

type Cmd struct {
	FullyQualified bool `help:"Print declaration names fully qualified."`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	rows, stats := Describe(ast.PrintingPolicy{FullyQualifiedName: c.FullyQualified})
	logger.Debug("template names built",
		slog.Int("uniqued", stats.Uniqued),
		slog.Int("allocated", stats.Allocated))
	return Write(os.Stdout, rows)
}

// Row describes one template name.
type Row struct {
	Label      string
	Kind       templatename.Kind
	Text       string
	// Dependence is empty for overload sets, which have none.
	Dependence string
	ID         uint64
	// Uniqued is set when building the name again returned the same
	// storage.
	Uniqued bool
}

// Stats reports the size of the uniquing table after Describe.
type Stats struct {
	Uniqued, Allocated int
}

// Describe builds the demo names in a fresh environment.
func Describe(policy ast.PrintingPolicy) ([]Row, Stats) {
	s := sema.New(nil)
	env := testfixtures.New(s)
	ctx := s.Names()
	a := s.AST()

	pack := a.NewTemplateTemplateParm(nil, "Ps", 0, 1, true, ast.SourceLocation{})
	dependentQualifier := (*ast.NestedNameSpecifier)(nil).WithType(&ast.TagType{Decl: env.T})
	// Spliced names are keyed by the identity of the reflection expression.
	spliced := &ast.DeclRefExpr{Decl: env.RVector}
	splicedDependent := &ast.DeclRefExpr{Decl: env.R}

	builders := []struct {
		label string
		build func() templatename.Name
	}{
		{"declaration", func() templatename.Name { return templatename.FromDecl(env.ClassTemplate) }},
		{"overload set", func() templatename.Name {
			return ctx.OverloadedTemplateName([]ast.NamedDecl{env.FnTemplate, env.FnTemplate})
		}},
		{"assumed", func() templatename.Name { return ctx.AssumedTemplateName(ast.Identifier("assumed")) }},
		{"qualified", func() templatename.Name {
			return ctx.QualifiedTemplateName(ast.Global().WithNamespace(env.Std), false, env.Vector)
		}},
		{"dependent", func() templatename.Name { return ctx.DependentTemplateName(dependentQualifier, "apply") }},
		{"dependent operator", func() templatename.Name {
			op, _ := ast.OperatorBySpelling("+")
			return ctx.DependentOperatorTemplateName(dependentQualifier, op)
		}},
		{"substituted parameter", func() templatename.Name {
			return ctx.SubstTemplateTemplateParm(env.TT, templatename.FromDecl(env.Vector))
		}},
		{"substituted pack", func() templatename.Name {
			return ctx.SubstTemplateTemplateParmPack(pack, templatename.PackArgument([]templatename.Argument{
				templatename.TemplateArg(templatename.FromDecl(env.Vector)),
				templatename.TemplateArg(templatename.FromDecl(env.ClassTemplate)),
			}))
		}},
		{"spliced", func() templatename.Name {
			return ctx.SplicedTemplateReflection(spliced, env.Vector)
		}},
		{"spliced dependent", func() templatename.Name {
			return ctx.SplicedTemplateReflection(splicedDependent, nil)
		}},
	}

	rows := make([]Row, 0, len(builders))
	for _, b := range builders {
		n := b.build()
		row := Row{
			Label:   b.label,
			Kind:    n.Kind(),
			Text:    sprint(n, policy),
			ID:      n.OpaqueID(),
			Uniqued: b.build() == n,
		}
		if n.Kind() != templatename.OverloadedTemplate {
			row.Dependence = n.Dependence().String()
		}
		rows = append(rows, row)
	}
	return rows, Stats{Uniqued: ctx.Len(), Allocated: ctx.Allocated()}
}

func sprint(n templatename.Name, policy ast.PrintingPolicy) string {
	var b strings.Builder
	n.Print(&b, policy, false)
	return b.String()
}

// Write prints rows as an aligned table.
func Write(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "VARIANT\tKIND\tNAME\tDEPENDENCE\tID\tUNIQUED")
	for _, r := range rows {
		dep := r.Dependence
		if dep == "" {
			dep = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%#x\t%t\n", r.Label, r.Kind, r.Text, dep, r.ID, r.Uniqued)
	}
	return tw.Flush()
}
