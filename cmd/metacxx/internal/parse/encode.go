package parse

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/broady/metacxx/cmd/metacxx/internal/cli"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCBOR = "cbor"
)

// encMode produces Core Deterministic Encoding: the same report always
// encodes to the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("parse: CBOR encoder initialization failed: " + err.Error())
	}
}

// Encode writes r to w in format.
func Encode(w io.Writer, r *Report, format string, hl cli.Highlighter) error {
	switch format {
	case FormatText:
		return writeText(w, r, hl)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case FormatCBOR:
		data, err := encMode.Marshal(r)
		if err != nil {
			return fmt.Errorf("encode cbor: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeText(w io.Writer, r *Report, hl cli.Highlighter) error {
	for _, it := range r.Items {
		text := it.Text
		if it.Kind != "Invalid" {
			text = hl.Code(text)
		}
		if it.Dependence != "" && it.Dependence != "None" {
			text += "  [" + it.Dependence + "]"
		}
		if _, err := fmt.Fprintf(w, "%s: %s: %s\n", it.Begin, it.Kind, text); err != nil {
			return err
		}
	}
	for _, d := range r.Diagnostics {
		if _, err := fmt.Fprintf(w, "%s:%s: %s: %s\n", r.Source, d.Loc, d.Severity, d.Message); err != nil {
			return err
		}
	}
	if r.Output != "" {
		if _, err := fmt.Fprintf(w, "--- output ---\n%s", r.Output); err != nil {
			return err
		}
	}
	return nil
}
