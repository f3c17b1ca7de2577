// Package tokens implements "metacxx tokens".
package tokens

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/broady/metacxx/cmd/metacxx/internal/cli"
	"github.com/broady/metacxx/lexer"
)

type Cmd struct {
	cli.Source
}

func (c *Cmd) Run(logger *slog.Logger) error {
	name, src, err := c.Read(os.Stdin)
	if err != nil {
		return err
	}
	return Dump(os.Stdout, name, src, logger)
}

// Dump writes one line per token of src: location, kind and spelling.
// Lexical errors are logged and the dump continues.
func Dump(w io.Writer, name, src string, logger *slog.Logger) error {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		logger.Warn("lexical errors", slog.String("source", name), slog.Any("error", err))
	}
	for _, t := range toks {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%q\n", t.Loc, t.Kind, t.Text); err != nil {
			return err
		}
	}
	return nil
}
