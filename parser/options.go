package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
)

var (
	validate      = validator.New()
	schemaDecoder = schema.NewDecoder()
)

func init() {
	schemaDecoder.IgnoreUnknownKeys(false)
}

// Options configures a Parser.
type Options struct {
	// Reflection enables the reflection and splice syntax. Without it "^"
	// is only the exclusive-or operator and splice introducers are not
	// recognized.
	Reflection bool `schema:"reflection" json:"reflection" yaml:"reflection"`
	// Standard is the language standard being parsed.
	Standard string `schema:"std" json:"std" yaml:"std" validate:"required,oneof=c++17 c++20 c++2a c++23"`
	// MaxTentativeDepth bounds nested tentative parses.
	MaxTentativeDepth int `schema:"max_tentative_depth" json:"maxTentativeDepth" yaml:"max_tentative_depth" validate:"gte=1,lte=1024"`
	// ErrorLimit stops reporting after this many errors. Zero means no limit.
	ErrorLimit int `schema:"error_limit" json:"errorLimit" yaml:"error_limit" validate:"gte=0"`

	Logger *slog.Logger `schema:"-" json:"-" yaml:"-"`
}

// DefaultOptions returns options with reflection enabled.
func DefaultOptions() Options {
	return Options{
		Reflection:        true,
		Standard:          "c++2a",
		MaxTentativeDepth: 64,
		ErrorLimit:        20,
	}
}

// OptionsError reports invalid options, one message per field.
type OptionsError struct {
	Fields map[string]string
}

func (e *OptionsError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, field+": "+msg)
	}
	slices.Sort(msgs)
	return "invalid parser options: " + strings.Join(msgs, "; ")
}

// Validate checks the options.
func (o Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return err
	}
	fields := make(map[string]string, len(valErrs))
	for _, ve := range valErrs {
		fields[ve.Field()] = formatValidationError(ve)
	}
	return &OptionsError{Fields: fields}
}

func formatValidationError(ve validator.FieldError) string {
	switch ve.Tag() {
	case "required":
		return "required"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", ve.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", ve.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", ve.Param())
	default:
		return fmt.Sprintf("failed on '%s' validation", ve.Tag())
	}
}

// DecodeOptions overlays "key=value" pairs onto base and validates the
// result. Keys are the schema names of the Options fields.
func DecodeOptions(base Options, pairs []string) (Options, error) {
	values := url.Values{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			return base, fmt.Errorf("option %q: expected key=value", pair)
		}
		values.Add(k, v)
	}
	opts := base
	if err := schemaDecoder.Decode(&opts, values); err != nil {
		return base, fmt.Errorf("decode options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return base, err
	}
	return opts, nil
}
