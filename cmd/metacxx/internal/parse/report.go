// Package parse implements "metacxx parse": it parses ';'-separated items
// against the demo symbol environment and reports the results.
package parse

import (
	"bytes"
	"fmt"
	"log/slog"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/internal/testfixtures"
	"github.com/broady/metacxx/lexer"
	"github.com/broady/metacxx/parser"
	"github.com/broady/metacxx/sema"
)

// Report is the result of parsing one input.
type Report struct {
	Source      string       `json:"source"`
	Items       []Item       `json:"items"`
	Diagnostics []Diagnostic `json:"diagnostics"`
	Output      string       `json:"output,omitempty"`
	Stats       Stats        `json:"stats"`
}

// Item is one parsed top-level item.
type Item struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Dependence string `json:"dependence,omitempty"`
	Begin      string `json:"begin"`
	End        string `json:"end"`
}

// Diagnostic is a rendered diagnostic.
type Diagnostic struct {
	Kind     string `json:"kind"`
	Severity string `json:"severity"`
	Loc      string `json:"loc"`
	Message  string `json:"message"`
}

// Stats counts the work the parse did.
type Stats struct {
	Tokens        int `json:"tokens"`
	Evaluations   int `json:"evaluations"`
	TemplateNames int `json:"templateNames"`
}

// Run lexes and parses src. Diagnostics are collected into the report and
// also logged when logDiagnostics is set.
func Run(name, src string, opts parser.Options, policy ast.PrintingPolicy, logDiagnostics bool) (*Report, error) {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	collector := &diag.Collector{}
	var sink diag.Sink = collector
	if logDiagnostics {
		sink = diag.Tee(collector, diag.LogSink(logger.With("source", name)))
	}
	engine := diag.NewEngine(sink)
	s := sema.New(engine, sema.LoggingInterceptor(logger))
	var out bytes.Buffer
	s.Output = &out
	testfixtures.New(s)
	before := s.Evaluations()

	p, err := parser.New(toks, s, engine, opts)
	if err != nil {
		return nil, err
	}
	report := &Report{Source: name, Items: []Item{}, Diagnostics: []Diagnostic{}}
	for _, it := range p.ParseTranslationUnit() {
		item := Item{
			Kind:  it.Kind.String(),
			Text:  it.Print(policy),
			Begin: it.Range.Begin.String(),
			End:   it.Range.End.String(),
		}
		switch it.Kind {
		case parser.ItemExpr:
			item.Dependence = it.Expr.Dependence().String()
		case parser.ItemType:
			item.Dependence = it.Type.Dependence().String()
		}
		report.Items = append(report.Items, item)
	}
	for _, d := range collector.Diagnostics {
		report.Diagnostics = append(report.Diagnostics, Diagnostic{
			Kind:     string(d.Kind),
			Severity: d.Kind.Severity().String(),
			Loc:      d.Loc.String(),
			Message:  d.Message(),
		})
	}
	report.Output = out.String()
	report.Stats = Stats{
		Tokens:        len(toks),
		Evaluations:   s.Evaluations() - before,
		TemplateNames: s.Names().Len(),
	}
	return report, nil
}

// Failed reports whether any error was diagnosed.
func (r *Report) Failed() bool {
	for _, d := range r.Diagnostics {
		if sev := diag.Kind(d.Kind).Severity(); sev == diag.SeverityError || sev == diag.SeverityFatal {
			return true
		}
	}
	return false
}
