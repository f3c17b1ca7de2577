package main

import (
	"errors"
	"os"

	"github.com/alecthomas/kong"

	"github.com/broady/metacxx/cmd/metacxx/internal/cli"
	"github.com/broady/metacxx/cmd/metacxx/internal/names"
	"github.com/broady/metacxx/cmd/metacxx/internal/parse"
	"github.com/broady/metacxx/cmd/metacxx/internal/tokens"
)

type CLI struct {
	LogLevel string `help:"Log level (debug, info, warn, error)." default:"warn" name:"log-level"`

	Parse   parse.Cmd  `cmd:"" help:"Parse reflection expressions and type-ids."`
	Tokens  tokens.Cmd `cmd:"" help:"Dump the token stream of the input."`
	Names   names.Cmd  `cmd:"" help:"Show every template name variant and its uniquing."`
	Version VersionCmd `cmd:"" help:"Print version information."`
}

func main() {
	c := &CLI{}
	ctx := kong.Parse(c,
		kong.Name("metacxx"),
		kong.Description("Parser and template-name model for C++ reflection and splices."),
		kong.UsageOnError(),
	)
	logger, err := cli.NewLogger(os.Stderr, c.LogLevel)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(logger)
	if errors.Is(err, parse.ErrDiagnosed) {
		os.Exit(1)
	}
	ctx.FatalIfErrorf(err)
}
