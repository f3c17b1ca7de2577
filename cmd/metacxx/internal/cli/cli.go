// Package cli holds the plumbing shared by the metacxx commands: reading
// input, configuring logging, loading parser options and highlighting.
package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/broady/metacxx/parser"
)

// Source flags shared by the commands that read C++ input.
type Source struct {
	File string `arg:"" optional:"" help:"Input file ('-' for stdin)." type:"path"`
	Expr string `help:"Parse SRC instead of reading a file." short:"e" placeholder:"SRC"`
}

// Read returns the input name and text. With neither a file nor -e it
// reads stdin.
func (s Source) Read(stdin io.Reader) (name, src string, err error) {
	switch {
	case s.Expr != "" && s.File != "":
		return "", "", errors.New("give either a file or -e, not both")
	case s.Expr != "":
		return "<expr>", s.Expr, nil
	case s.File == "" || s.File == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(s.File)
	if err != nil {
		return "", "", fmt.Errorf("read input: %w", err)
	}
	return s.File, string(data), nil
}

// NewLogger returns a logger writing to w at level. Terminals get text
// output, anything else JSON.
func NewLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	options := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if isTerminal(w) {
		handler = slog.NewTextHandler(w, options)
	} else {
		handler = slog.NewJSONHandler(w, options)
	}
	return slog.New(handler), nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// ParserConfig selects parser options. The YAML file, when given, is
// applied first and the -o pairs on top of it.
type ParserConfig struct {
	Config  string   `help:"YAML file of parser options." type:"existingfile"`
	Options []string `help:"Parser option as key=value (reflection, std, max_tentative_depth, error_limit)." short:"o" placeholder:"KEY=VALUE"`
}

// Load returns the configured options, validated.
func (c ParserConfig) Load(logger *slog.Logger) (parser.Options, error) {
	opts := parser.DefaultOptions()
	if c.Config != "" {
		data, err := os.ReadFile(c.Config)
		if err != nil {
			return opts, fmt.Errorf("read config: %w", err)
		}
		if opts, err = DecodeYAML(opts, data); err != nil {
			return opts, fmt.Errorf("%s: %w", c.Config, err)
		}
	}
	opts, err := parser.DecodeOptions(opts, c.Options)
	if err != nil {
		return opts, err
	}
	opts.Logger = logger
	return opts, nil
}

// DecodeYAML overlays a YAML document onto base. Unknown keys are errors.
func DecodeYAML(base parser.Options, data []byte) (parser.Options, error) {
	opts := base
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return base, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Highlighter renders C++ snippets, with terminal colors when enabled.
type Highlighter struct {
	enabled bool
}

// NewHighlighter resolves mode against w.
func NewHighlighter(mode string, w io.Writer) Highlighter {
	switch mode {
	case ColorAlways:
		return Highlighter{enabled: true}
	case ColorAuto:
		return Highlighter{enabled: isTerminal(w)}
	default:
		return Highlighter{}
	}
}

// Code returns code, colored when the highlighter is enabled. Highlighting
// failures fall back to the plain text.
func (h Highlighter) Code(code string) string {
	if !h.enabled {
		return code
	}
	var b strings.Builder
	if err := quick.Highlight(&b, code, "cpp", "terminal256", "monokai"); err != nil {
		return code
	}
	return b.String()
}
