package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/tools/txtar"
)

func TestLoadCases(t *testing.T) {
	ar := &txtar.Archive{
		Comment: []byte("cases for the loader\n"),
		Files: []txtar.File{
			{Name: "first/input", Data: []byte("a;\n")},
			{Name: "second/input", Data: []byte("b;\n")},
			{Name: "first/want", Data: []byte("\n  expr: a\n\n")},
		},
	}
	path := filepath.Join(t.TempDir(), "cases.txtar")
	if err := os.WriteFile(path, txtar.Format(ar), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := LoadCases(t, path)
	if len(cases) != 2 {
		t.Fatalf("LoadCases() returned %d cases, want 2", len(cases))
	}
	if cases[0].Name != "first" || cases[1].Name != "second" {
		t.Errorf("LoadCases() names = %q, %q, want first, second", cases[0].Name, cases[1].Name)
	}
	if got := cases[0].Section("want"); got != "expr: a" {
		t.Errorf("Section(want) = %q, want %q", got, "expr: a")
	}
	if cases[1].Has("want") {
		t.Errorf("second.Has(want) = true, want false")
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"blank lines", "\n  \n", nil},
		{"trimmed", "  a \n\nb\n", []string{"a", "b"}},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			Diff(t, "Lines()", tt.want, Lines(tt.in))
		})
	}
}
