package tokens

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	if err := Dump(&buf, "<test>", "[: r :]", slog.New(slog.DiscardHandler)); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	want := []string{
		"1:1\t[\t\"[\"",
		"1:2\t:\t\":\"",
		"1:4\tidentifier\t\"r\"",
		"1:6\t:\t\":\"",
		"1:7\t]\t\"]\"",
		"1:8\teof\t\"\"",
	}
	got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Dump() mismatch (-want +got):\n%s", diff)
	}
}

func TestDumpLogsLexErrors(t *testing.T) {
	var out, log bytes.Buffer
	if err := Dump(&out, "<test>", "a @ b", slog.New(slog.NewTextHandler(&log, nil))); err != nil {
		t.Fatalf("Dump: %v", err)
	}
	if !strings.Contains(log.String(), "lexical errors") {
		t.Errorf("log = %q, want lexical error warning", log.String())
	}
	if n := strings.Count(out.String(), "\n"); n != 4 {
		t.Errorf("Dump() wrote %d lines, want 4", n)
	}
}
