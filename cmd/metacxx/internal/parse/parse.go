package parse

import (
	"errors"
	"log/slog"
	"os"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/cmd/metacxx/internal/cli"
)

// ErrDiagnosed is returned when the input parsed with errors. The report
// has already been written.
var ErrDiagnosed = errors.New("errors diagnosed")

type Cmd struct {
	cli.Source
	cli.ParserConfig

	Format         string `help:"Output format." enum:"text,json,cbor" default:"text" short:"f"`
	FullyQualified bool   `help:"Print declaration names fully qualified."`
	Color          string `help:"Highlight printed items." enum:"auto,always,never" default:"auto"`
}

func (c *Cmd) Run(logger *slog.Logger) error {
	name, src, err := c.Read(os.Stdin)
	if err != nil {
		return err
	}
	opts, err := c.Load(logger)
	if err != nil {
		return err
	}
	policy := ast.PrintingPolicy{FullyQualifiedName: c.FullyQualified}

	// Machine-readable output goes to stdout, so diagnostics are logged
	// for whoever watches stderr.
	report, err := Run(name, src, opts, policy, c.Format != FormatText)
	if err != nil {
		return err
	}
	if err := Encode(os.Stdout, report, c.Format, cli.NewHighlighter(c.Color, os.Stdout)); err != nil {
		return err
	}
	if report.Failed() {
		return ErrDiagnosed
	}
	return nil
}
