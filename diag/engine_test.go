package diag

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/broady/metacxx/ast"
)

func TestEngineHoldReleaseDrop(t *testing.T) {
	var c Collector
	e := NewEngine(&c)

	e.Hold()
	e.Report(New(ErrExpected, ast.SourceLocation{}, "a"))
	e.Hold()
	e.Report(New(ErrExpected, ast.SourceLocation{}, "b"))
	e.Drop()
	if len(c.Diagnostics) != 0 {
		t.Fatalf("held diagnostics leaked: %v", c.Diagnostics)
	}
	e.Release()

	want := []Diagnostic{New(ErrExpected, ast.SourceLocation{}, "a")}
	if diff := cmp.Diff(want, c.Diagnostics); diff != "" {
		t.Errorf("delivered mismatch (-want +got):\n%s", diff)
	}
	if e.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", e.Depth())
	}
}

func TestEngineSuppress(t *testing.T) {
	var c Collector
	e := NewEngine(&c)
	restore := e.Suppress()
	e.Report(New(ErrExpectedExpression, ast.SourceLocation{}))
	if !e.Suppressed() {
		t.Error("Suppressed() = false inside Suppress")
	}
	restore()
	restore()
	if e.Suppressed() {
		t.Error("restore should be idempotent")
	}
	e.Report(New(ErrExpectedType, ast.SourceLocation{}))
	if diff := cmp.Diff([]Kind{ErrExpectedType}, c.Kinds()); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}
}

func TestEngineErrorLimit(t *testing.T) {
	var c Collector
	e := NewEngine(&c)
	e.SetErrorLimit(2)
	for i := 0; i < 4; i++ {
		e.Report(New(ErrExpectedExpression, ast.SourceLocation{}))
	}
	want := []Kind{ErrExpectedExpression, ErrExpectedExpression, FatalTooManyErrors}
	if diff := cmp.Diff(want, c.Kinds()); diff != "" {
		t.Errorf("Kinds() mismatch (-want +got):\n%s", diff)
	}
	if e.ErrorCount() != 2 {
		t.Errorf("ErrorCount() = %d, want 2", e.ErrorCount())
	}
}
