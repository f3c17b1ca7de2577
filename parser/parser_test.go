package parser

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/internal/testfixtures"
	"github.com/broady/metacxx/lexer"
	"github.com/broady/metacxx/sema"
	"github.com/broady/metacxx/testutil"
	"github.com/broady/metacxx/token"
)

type harness struct {
	p     *Parser
	sema  *sema.Sema
	env   *testfixtures.Env
	diags *diag.Collector
	out   *bytes.Buffer
}

func newHarness(t *testing.T, src string, opts ...func(*Options)) *harness {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	diags := &diag.Collector{}
	engine := diag.NewEngine(diags)
	s := sema.New(engine)
	out := &bytes.Buffer{}
	s.Output = out
	env := testfixtures.New(s)

	o := DefaultOptions()
	o.Logger = slog.New(slog.DiscardHandler)
	for _, fn := range opts {
		fn(&o)
	}
	p, err := New(toks, s, engine, o)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &harness{p: p, sema: s, env: env, diags: diags, out: out}
}

// summarize renders parsed items, diagnostics and printed output in the
// line format of testdata/parse.txtar.
func (h *harness) summarize(items []Item) []string {
	var lines []string
	for _, it := range items {
		switch it.Kind {
		case ItemExpr:
			lines = append(lines, "expr: "+it.Print(ast.PrintingPolicy{}))
		case ItemType:
			lines = append(lines, "type: "+it.Print(ast.PrintingPolicy{}))
		default:
			lines = append(lines, "invalid")
		}
	}
	for _, k := range h.diags.Kinds() {
		lines = append(lines, "diag: "+string(k))
	}
	for _, l := range testutil.Lines(h.out.String()) {
		lines = append(lines, "out: "+l)
	}
	return lines
}

func TestParseGolden(t *testing.T) {
	for _, c := range testutil.LoadCases(t, "testdata/parse.txtar") {
		t.Run(c.Name, func(t *testing.T) {
			h := newHarness(t, c.Files["input"])
			got := h.summarize(h.p.ParseTranslationUnit())
			testutil.Diff(t, "items", testutil.Lines(c.Section("want")), got)
			if !h.p.AtEOF() {
				t.Errorf("parser stopped at token %d, want EOF", h.p.Pos())
			}
		})
	}
}

func TestAnnotationReuse(t *testing.T) {
	// The template-name alternative fails on '<' after annotating the
	// template-id; the type-id alternative replays it.
	h := newHarness(t, "^ClassTemplate<[: r_int :]>;")
	before := h.sema.Evaluations()
	items := h.p.ParseTranslationUnit()

	if len(items) != 1 || items[0].Kind != ItemExpr {
		t.Fatalf("ParseTranslationUnit() = %v, want one expression", items)
	}
	if got, want := items[0].Print(ast.PrintingPolicy{}), "^ClassTemplate<int>"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
	if got := h.sema.Evaluations() - before; got != 1 {
		t.Errorf("splice evaluated %d times, want 1", got)
	}
	if len(h.diags.Diagnostics) != 0 {
		t.Errorf("diagnostics = %v, want none", h.diags.Kinds())
	}
}

func TestIdentifierSplice(t *testing.T) {
	tests := []struct {
		src         string
		wantName    string
		wantInvalid bool
		wantDiag    diag.Kind
	}{
		{src: `[# "foo_", 1 #]`, wantName: "foo_1"},
		{src: `[# "a", "b" #]`, wantName: "ab"},
		{src: `[# name, n #]`, wantName: "foo3"},
		{src: `[# r_int #]`, wantInvalid: true, wantDiag: diag.ErrIdentifierSpliceFragment},
		{src: `[# "int" #]`, wantInvalid: true, wantDiag: diag.ErrInvalidIdentifierSplice},
		{src: `[# "a" ]`, wantInvalid: true, wantDiag: diag.ErrExpected},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			h := newHarness(t, tt.src)
			if !h.p.tryAnnotateIdentifierSplice() {
				t.Fatalf("tryAnnotateIdentifierSplice() = false, want true")
			}
			info := identifierOf(h.p.tok())
			if info.Invalid != tt.wantInvalid {
				t.Errorf("Invalid = %v, want %v", info.Invalid, tt.wantInvalid)
			}
			if tt.wantInvalid {
				if !strings.HasPrefix(info.Name, "__invalid_identifier_splice_") {
					t.Errorf("Name = %q, want placeholder", info.Name)
				}
				if !h.diags.Has(tt.wantDiag) {
					t.Errorf("diagnostics = %v, want %s", h.diags.Kinds(), tt.wantDiag)
				}
				return
			}
			if info.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", info.Name, tt.wantName)
			}
		})
	}
}

func TestIdentifierSpliceNotAnnotatedTentatively(t *testing.T) {
	h := newHarness(t, `[# "1" #];`)
	ta, ok := h.p.beginTentative()
	if !ok {
		t.Fatal("beginTentative() failed")
	}
	if h.p.tryAnnotateIdentifierSplice() {
		t.Error("tryAnnotateIdentifierSplice() = true inside tentative parse, want false")
	}
	ta.Revert()
	if len(h.diags.Diagnostics) != 0 {
		t.Errorf("diagnostics after revert = %v, want none", h.diags.Kinds())
	}
	if !h.p.tok().Is(token.LSquare) {
		t.Errorf("tok() = %v, want raw '['", h.p.tok().Kind)
	}

	h.p.ParseTranslationUnit()
	testutil.Diff(t, "diagnostics", []diag.Kind{diag.ErrInvalidIdentifierSplice}, h.diags.Kinds())
}

func TestConsumeAndStorePackSplice(t *testing.T) {
	tests := []struct {
		src    string
		want   int
		wantOK bool
	}{
		{"...[< [: g() :] >]", 12, true},
		{"...[< x[ > ] >]", 9, true},
		{"...[< ...[< r >] >]", 11, true},
		{"...[< x", 4, false},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			h := newHarness(t, tt.src)
			toks, ok := h.p.ConsumeAndStorePackSplice()
			if ok != tt.wantOK {
				t.Fatalf("ConsumeAndStorePackSplice() ok = %v, want %v", ok, tt.wantOK)
			}
			if len(toks) != tt.want {
				t.Errorf("ConsumeAndStorePackSplice() stored %d tokens, want %d", len(toks), tt.want)
			}
			if !h.p.AtEOF() {
				t.Errorf("parser stopped at token %d, want EOF", h.p.Pos())
			}
			if got := h.diags.Has(diag.ErrUnterminatedPackSplice); got == tt.wantOK {
				t.Errorf("unterminated diagnostic reported = %v, want %v", got, !tt.wantOK)
			}
		})
	}
}

func TestConsumeAnnotation(t *testing.T) {
	h := newHarness(t, "[: r_int :];")
	if !h.p.tryAnnotateReflectionSplice() {
		t.Fatal("tryAnnotateReflectionSplice() = false")
	}
	if got := h.p.consume(); !got.Is(token.AnnotReflectionSplice) {
		t.Fatalf("consume() = %v, want annotation", got.Kind)
	}
	if !h.p.tok().Is(token.Semi) {
		t.Errorf("tok() = %v after consuming the annotation, want ';'", h.p.tok().Kind)
	}
	if n := h.p.Annotations(); n != 0 {
		t.Errorf("Annotations() = %d, want 0", n)
	}
}

func TestConsumeDropsNestedAnnotations(t *testing.T) {
	h := newHarness(t, "typename [: r_int :];")
	ok := h.p.lookahead(func() bool {
		return !h.p.parseTypenameSplice().IsInvalid()
	})
	if !ok {
		t.Fatal("parseTypenameSplice() failed")
	}
	if n := h.p.Annotations(); n != 2 {
		t.Fatalf("Annotations() = %d after the tentative parse, want 2", n)
	}
	if !h.p.tok().Is(token.AnnotTypeSplice) {
		t.Fatalf("tok() = %v, want type splice annotation", h.p.tok().Kind)
	}
	h.p.consume()
	if !h.p.tok().Is(token.Semi) {
		t.Errorf("tok() = %v, want ';'", h.p.tok().Kind)
	}
	if n := h.p.Annotations(); n != 0 {
		t.Errorf("Annotations() = %d, want 0", n)
	}
}

func TestAnnotationEvictedAcrossContexts(t *testing.T) {
	h := newHarness(t, "[: r_i :];")
	exit := h.p.enterUnevaluated()
	if !h.p.tryAnnotateReflectionSplice() {
		t.Fatal("tryAnnotateReflectionSplice() = false")
	}
	if !h.p.tok().Is(token.AnnotReflectionSplice) {
		t.Fatalf("tok() = %v, want annotation", h.p.tok().Kind)
	}
	exit()

	if !h.p.tok().Is(token.LSquare) {
		t.Errorf("tok() = %v in evaluated context, want raw '['", h.p.tok().Kind)
	}
	if n := h.p.Annotations(); n != 0 {
		t.Errorf("Annotations() = %d, want 0", n)
	}
}

func TestTentativeDepthLimit(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness(t, "^ClassTemplate<int>;", func(o *Options) {
		o.MaxTentativeDepth = 1
		o.Logger = slog.New(slog.NewTextHandler(&buf, nil))
	})
	items := h.p.ParseTranslationUnit()
	if len(items) != 1 {
		t.Fatalf("ParseTranslationUnit() returned %d items, want 1", len(items))
	}
	if got, want := items[0].Print(ast.PrintingPolicy{}), "^ClassTemplate<int>"; got != want {
		t.Errorf("Print() = %q, want %q", got, want)
	}
	if !strings.Contains(buf.String(), "tentative parse depth exceeded") {
		t.Errorf("log = %q, want depth warning", buf.String())
	}
}

func TestReflectionDisabled(t *testing.T) {
	off := func(o *Options) { o.Reflection = false }
	tests := []struct {
		src       string
		want      []string
		wantDiags []diag.Kind
	}{
		{"^i;", []string{"invalid"}, []diag.Kind{diag.ErrReflectionLanguageDisabled}},
		{"i ^ n;", []string{"expr: i ^ n"}, nil},
		{"__reflect_print(i);", []string{"invalid"}, []diag.Kind{diag.ErrReflectionLanguageDisabled}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			h := newHarness(t, tt.src, off)
			items := h.p.ParseTranslationUnit()
			var got []string
			for _, it := range items {
				if it.Kind == ItemInvalid {
					got = append(got, "invalid")
				} else {
					got = append(got, "expr: "+it.Print(ast.PrintingPolicy{}))
				}
			}
			testutil.Diff(t, "items", tt.want, got)
			testutil.Diff(t, "diagnostics", tt.wantDiags, h.diags.Kinds())
			if h.out.Len() != 0 {
				t.Errorf("output = %q, want none", h.out.String())
			}
		})
	}
}

func TestErrorLimit(t *testing.T) {
	h := newHarness(t, "a; b; c;", func(o *Options) { o.ErrorLimit = 2 })
	items := h.p.ParseTranslationUnit()
	if len(items) != 3 {
		t.Fatalf("ParseTranslationUnit() returned %d items, want 3", len(items))
	}
	want := []diag.Kind{diag.ErrUndeclaredVarUse, diag.ErrUndeclaredVarUse, diag.FatalTooManyErrors}
	testutil.Diff(t, "diagnostics", want, h.diags.Kinds())
}

func TestItemPrintInvalid(t *testing.T) {
	if got := (Item{}).Print(ast.PrintingPolicy{}); got != "<invalid>" {
		t.Errorf("Item{}.Print() = %q, want %q", got, "<invalid>")
	}
	if got := ItemKind(42).String(); got != "Unknown" {
		t.Errorf("ItemKind(42).String() = %q, want %q", got, "Unknown")
	}
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Options)
		wantFields map[string]string
	}{
		{"default", func(*Options) {}, nil},
		{"bad standard", func(o *Options) { o.Standard = "c++98" }, map[string]string{
			"Standard": "must be one of [c++17 c++20 c++2a c++23]",
		}},
		{"missing standard", func(o *Options) { o.Standard = "" }, map[string]string{
			"Standard": "required",
		}},
		{"depth", func(o *Options) { o.MaxTentativeDepth = 0; o.ErrorLimit = -1 }, map[string]string{
			"MaxTentativeDepth": "must be at least 1",
			"ErrorLimit":        "must be at least 0",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := DefaultOptions()
			tt.mutate(&o)
			err := o.Validate()
			if tt.wantFields == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			var oe *OptionsError
			if !errors.As(err, &oe) {
				t.Fatalf("Validate() = %v, want *OptionsError", err)
			}
			testutil.Diff(t, "fields", tt.wantFields, oe.Fields)
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	got, err := DecodeOptions(DefaultOptions(), []string{"std=c++17", "max_tentative_depth=8", "reflection=false"})
	if err != nil {
		t.Fatalf("DecodeOptions: %v", err)
	}
	if got.Standard != "c++17" || got.MaxTentativeDepth != 8 || got.Reflection {
		t.Errorf("DecodeOptions() = %+v", got)
	}
	if got.ErrorLimit != DefaultOptions().ErrorLimit {
		t.Errorf("ErrorLimit = %d, want default kept", got.ErrorLimit)
	}

	for _, pairs := range [][]string{
		{"std"},
		{"unknown=1"},
		{"max_tentative_depth=many"},
		{"std=c++03"},
	} {
		if _, err := DecodeOptions(DefaultOptions(), pairs); err == nil {
			t.Errorf("DecodeOptions(%q) = nil error, want error", pairs)
		}
	}
}

func TestNewErrors(t *testing.T) {
	s := sema.New(nil)
	if _, err := New([]token.Token{{Kind: token.Identifier, Text: "x"}}, s, nil, DefaultOptions()); err == nil {
		t.Error("New without EOF = nil error, want error")
	}
	bad := DefaultOptions()
	bad.Standard = "c89"
	if _, err := New([]token.Token{{Kind: token.EOF}}, s, nil, bad); err == nil {
		t.Error("New with invalid options = nil error, want error")
	}
}
