// Package diag defines parser and semantic diagnostics: a machine-readable
// kind, a location and positional arguments.
package diag

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/broady/metacxx/ast"
)

// Kind is a machine-readable diagnostic code. The prefix encodes severity.
type Kind string

const (
	ErrExpected                   Kind = "err_expected"
	ErrExpectedAfter              Kind = "err_expected_after"
	ErrExpectedLParenAfter        Kind = "err_expected_lparen_after"
	ErrExpectedEndOfSplice        Kind = "err_expected_end_of_splice"
	ErrExpectedExpression         Kind = "err_expected_expression"
	ErrExpectedType               Kind = "err_expected_type"
	ErrInvalidReflectionOperand   Kind = "err_invalid_reflection_operand"
	ErrUndeclaredVarUse           Kind = "err_undeclared_var_use"
	ErrUndeclaredQualifier        Kind = "err_undeclared_qualifier"
	ErrSpliceNotTemplate          Kind = "err_splice_not_template"
	ErrSpliceNotType              Kind = "err_splice_not_type"
	ErrSpliceNotExpression        Kind = "err_splice_not_expression"
	ErrSpliceNotScope             Kind = "err_splice_not_scope"
	ErrNotConstantExpression      Kind = "err_expr_not_cce"
	ErrIdentifierSpliceFragment   Kind = "err_identifier_splice_fragment"
	ErrInvalidIdentifierSplice    Kind = "err_invalid_identifier_splice"
	ErrUnterminatedPackSplice     Kind = "err_unterminated_pack_splice"
	ErrReflectionQuery            Kind = "err_reflection_query"
	ErrUserDefined                Kind = "err_user_defined_error"
	ErrInvalidReflection          Kind = "err_invalid_reflection"
	ErrReflectionLanguageDisabled Kind = "err_reflection_disabled"
	NoteMatching                  Kind = "note_matching"
	WarnReflectionPrint           Kind = "warn_reflection_print"
	FatalTooManyErrors            Kind = "fatal_too_many_errors"
)

var messages = map[Kind]string{
	ErrExpected:                   "expected %s",
	ErrExpectedAfter:              "expected %[2]s after %[1]s",
	ErrExpectedLParenAfter:        "expected '(' after '%s'",
	ErrExpectedEndOfSplice:        "expected end of splice",
	ErrExpectedExpression:         "expected expression",
	ErrExpectedType:               "expected a type",
	ErrInvalidReflectionOperand:   "invalid operand for reflection",
	ErrUndeclaredVarUse:           "use of undeclared identifier '%s'",
	ErrUndeclaredQualifier:        "'%s' is not a class, namespace, or enumeration",
	ErrSpliceNotTemplate:          "splice %s does not designate a template",
	ErrSpliceNotType:              "splice %s does not designate a type",
	ErrSpliceNotExpression:        "splice %s does not designate an expression",
	ErrSpliceNotScope:             "splice %s does not designate a namespace or class",
	ErrNotConstantExpression:      "expression is not a constant expression: %s",
	ErrIdentifierSpliceFragment:   "identifier splice operand must be a string or integer: %s",
	ErrInvalidIdentifierSplice:    "'%s' is not a valid identifier",
	ErrUnterminatedPackSplice:     "unterminated pack splice",
	ErrReflectionQuery:            "invalid reflection query: %s",
	ErrUserDefined:                "%s",
	ErrInvalidReflection:          "invalid reflection: %s",
	ErrReflectionLanguageDisabled: "reflection is not enabled",
	NoteMatching:                  "to match this %s",
	WarnReflectionPrint:           "%s",
	FatalTooManyErrors:            "too many errors emitted, stopping now",
}

// Severity is derived from the kind's prefix.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	case SeverityFatal:
		return "fatal error"
	default:
		return "Unknown"
	}
}

// Severity returns the severity implied by the code.
func (k Kind) Severity() Severity {
	switch {
	case strings.HasPrefix(string(k), "warn_"):
		return SeverityWarning
	case strings.HasPrefix(string(k), "note_"):
		return SeverityNote
	case strings.HasPrefix(string(k), "fatal_"):
		return SeverityFatal
	default:
		return SeverityError
	}
}

// Diagnostic is a single report.
type Diagnostic struct {
	Kind Kind               `json:"kind"`
	Loc  ast.SourceLocation `json:"loc"`
	Args []any              `json:"args,omitempty"`
}

// New creates a diagnostic.
func New(kind Kind, loc ast.SourceLocation, args ...any) Diagnostic {
	return Diagnostic{Kind: kind, Loc: loc, Args: args}
}

// WithArg returns a copy of d with arg appended.
func (d Diagnostic) WithArg(arg any) Diagnostic {
	args := make([]any, len(d.Args), len(d.Args)+1)
	copy(args, d.Args)
	return Diagnostic{Kind: d.Kind, Loc: d.Loc, Args: append(args, arg)}
}

// Message renders the diagnostic text without location.
func (d Diagnostic) Message() string {
	format, ok := messages[d.Kind]
	if !ok {
		return string(d.Kind)
	}
	if strings.Count(format, "%") == 0 {
		return format
	}
	return fmt.Sprintf(format, d.Args...)
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Kind.Severity(), d.Message())
}

// Sink receives diagnostics.
type Sink interface {
	Report(d Diagnostic)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(d Diagnostic)

func (f SinkFunc) Report(d Diagnostic) { f(d) }

// Discard drops every diagnostic.
var Discard Sink = SinkFunc(func(Diagnostic) {})

// Collector records diagnostics in order.
type Collector struct {
	Diagnostics []Diagnostic
}

func (c *Collector) Report(d Diagnostic) {
	c.Diagnostics = append(c.Diagnostics, d)
}

// Kinds returns the kinds of the collected diagnostics in order, or nil
// when nothing was collected.
func (c *Collector) Kinds() []Kind {
	var kinds []Kind
	for _, d := range c.Diagnostics {
		kinds = append(kinds, d.Kind)
	}
	return kinds
}

// Has reports whether a diagnostic of kind was collected.
func (c *Collector) Has(kind Kind) bool {
	for _, d := range c.Diagnostics {
		if d.Kind == kind {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error and fatal diagnostics.
func (c *Collector) ErrorCount() int {
	n := 0
	for _, d := range c.Diagnostics {
		if s := d.Kind.Severity(); s == SeverityError || s == SeverityFatal {
			n++
		}
	}
	return n
}

// Reset drops all collected diagnostics.
func (c *Collector) Reset() { c.Diagnostics = nil }

// LogSink writes each diagnostic to a structured logger.
func LogSink(logger *slog.Logger) Sink {
	if logger == nil {
		logger = slog.Default()
	}
	return SinkFunc(func(d Diagnostic) {
		level := slog.LevelError
		switch d.Kind.Severity() {
		case SeverityWarning:
			level = slog.LevelWarn
		case SeverityNote:
			level = slog.LevelInfo
		}
		logger.Log(context.Background(), level, d.Message(),
			slog.String("kind", string(d.Kind)),
			slog.String("loc", d.Loc.String()),
		)
	})
}

// Tee reports to every sink in order.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(d Diagnostic) {
		for _, s := range sinks {
			s.Report(d)
		}
	})
}
