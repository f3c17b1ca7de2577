// Package testutil provides helpers for golden-file and table tests.
// It imports none of the packages it is used to test, so it can be used from
// any package's tests, including internal ones.
package testutil

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/tools/txtar"
)

// Case is one test case of a txtar archive.
type Case struct {
	Name  string
	Files map[string]string
}

// Section returns the named file of the case with surrounding whitespace
// trimmed, or "" when the case has no such file.
func (c Case) Section(name string) string {
	return strings.TrimSpace(c.Files[name])
}

// Has reports whether the case has the named file.
func (c Case) Has(name string) bool {
	_, ok := c.Files[name]
	return ok
}

// LoadCases reads the txtar archive at path. Files must be named
// "case/section"; they are grouped by case in archive order.
func LoadCases(t testing.TB, path string) []Case {
	t.Helper()
	ar, err := txtar.ParseFile(path)
	if err != nil {
		t.Fatalf("txtar.ParseFile(%q): %v", path, err)
	}
	return groupCases(t, path, ar)
}

// ParseCases is LoadCases for an archive held in memory.
func ParseCases(t testing.TB, name string, data []byte) []Case {
	t.Helper()
	return groupCases(t, name, txtar.Parse(data))
}

func groupCases(t testing.TB, name string, ar *txtar.Archive) []Case {
	t.Helper()
	var cases []Case
	index := make(map[string]int)
	for _, f := range ar.Files {
		caseName, section, ok := strings.Cut(f.Name, "/")
		if !ok || caseName == "" || section == "" {
			t.Fatalf("%s: file %q is not named case/section", name, f.Name)
		}
		i, seen := index[caseName]
		if !seen {
			i = len(cases)
			index[caseName] = i
			cases = append(cases, Case{Name: caseName, Files: make(map[string]string)})
		}
		cases[i].Files[section] = string(f.Data)
	}
	return cases
}

// Lines splits s into lines with surrounding whitespace trimmed, dropping
// empty ones. It returns nil when no line remains.
func Lines(s string) []string {
	var lines []string
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Diff fails t with a readable diff when got differs from want.
func Diff(t testing.TB, what string, want, got any, opts ...cmp.Option) {
	t.Helper()
	if diff := cmp.Diff(want, got, opts...); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", what, diff)
	}
}
