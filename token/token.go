// Package token defines the lexical tokens consumed by the parser, including
// the annotation tokens the parser substitutes for already parsed ranges.
package token

import "github.com/broady/metacxx/ast"

// Kind identifies a token.
type Kind int

const (
	Unknown Kind = iota
	EOF

	Identifier
	NumericConstant
	CharConstant
	StringLiteral

	// Punctuators.
	LParen
	RParen
	LSquare
	RSquare
	LBrace
	RBrace
	Period
	Ellipsis
	Arrow
	Amp
	AmpAmp
	Star
	Plus
	Minus
	Tilde
	Exclaim
	ExclaimEqual
	Slash
	Percent
	Less
	LessEqual
	Greater
	GreaterEqual
	EqualEqual
	Equal
	Caret
	Pipe
	PipePipe
	Question
	Colon
	ColonColon
	Semi
	Comma
	Hash

	// Keywords.
	KwTemplate
	KwTypename
	KwNamespace
	KwOperator
	KwConst
	KwVolatile
	KwVoid
	KwBool
	KwChar
	KwShort
	KwInt
	KwLong
	KwFloat
	KwDouble
	KwSigned
	KwUnsigned
	KwAuto
	KwTrue
	KwFalse
	KwNullptr
	KwReflect
	KwReflectPrint
	KwReflectPrettyPrint
	KwReflectDump
	KwInvalidReflection
	KwCompilerError
	KwConcatenate

	// Annotations replace a parsed token range with a single token.
	AnnotReflectionSplice
	AnnotTypeSplice
	AnnotIdentifierSplice
	AnnotInvalidIdentifierSplice
	AnnotTemplateID
)

var kindNames = map[Kind]string{
	Unknown:                      "unknown",
	EOF:                          "eof",
	Identifier:                   "identifier",
	NumericConstant:              "numeric_constant",
	CharConstant:                 "char_constant",
	StringLiteral:                "string_literal",
	LParen:                       "(",
	RParen:                       ")",
	LSquare:                      "[",
	RSquare:                      "]",
	LBrace:                       "{",
	RBrace:                       "}",
	Period:                       ".",
	Ellipsis:                     "...",
	Arrow:                        "->",
	Amp:                          "&",
	AmpAmp:                       "&&",
	Star:                         "*",
	Plus:                         "+",
	Minus:                        "-",
	Tilde:                        "~",
	Exclaim:                      "!",
	ExclaimEqual:                 "!=",
	Slash:                        "/",
	Percent:                      "%",
	Less:                         "<",
	LessEqual:                    "<=",
	Greater:                      ">",
	GreaterEqual:                 ">=",
	EqualEqual:                   "==",
	Equal:                        "=",
	Caret:                        "^",
	Pipe:                         "|",
	PipePipe:                     "||",
	Question:                     "?",
	Colon:                        ":",
	ColonColon:                   "::",
	Semi:                         ";",
	Comma:                        ",",
	Hash:                         "#",
	KwTemplate:                   "template",
	KwTypename:                   "typename",
	KwNamespace:                  "namespace",
	KwOperator:                   "operator",
	KwConst:                      "const",
	KwVolatile:                   "volatile",
	KwVoid:                       "void",
	KwBool:                       "bool",
	KwChar:                       "char",
	KwShort:                      "short",
	KwInt:                        "int",
	KwLong:                       "long",
	KwFloat:                      "float",
	KwDouble:                     "double",
	KwSigned:                     "signed",
	KwUnsigned:                   "unsigned",
	KwAuto:                       "auto",
	KwTrue:                       "true",
	KwFalse:                      "false",
	KwNullptr:                    "nullptr",
	KwReflect:                    "__reflect",
	KwReflectPrint:               "__reflect_print",
	KwReflectPrettyPrint:         "__reflect_pretty_print",
	KwReflectDump:                "__reflect_dump",
	KwInvalidReflection:          "__invalid_reflection",
	KwCompilerError:              "__compiler_error",
	KwConcatenate:                "__concatenate",
	AnnotReflectionSplice:        "annot_reflection_splice",
	AnnotTypeSplice:              "annot_type_splice",
	AnnotIdentifierSplice:        "annot_identifier_splice",
	AnnotInvalidIdentifierSplice: "annot_invalid_identifier_splice",
	AnnotTemplateID:              "annot_template_id",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "Unknown"
}

var keywords = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := KwTemplate; k <= KwConcatenate; k++ {
		m[kindNames[k]] = k
	}
	return m
}()

// Lookup returns the keyword kind for an identifier spelling, or Identifier.
func Lookup(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return Identifier
}

// IsKeyword reports whether k is a keyword.
func (k Kind) IsKeyword() bool { return k >= KwTemplate && k <= KwConcatenate }

// IsAnnotation reports whether k is an annotation.
func (k Kind) IsAnnotation() bool { return k >= AnnotReflectionSplice && k <= AnnotTemplateID }

// IsBuiltinType reports whether k spells part of a fundamental type.
func (k Kind) IsBuiltinType() bool { return k >= KwVoid && k <= KwAuto }

// Token is one lexical token. Annotation tokens carry the parser's cached
// result in Annotation and span Loc..EndLoc.
type Token struct {
	Kind       Kind
	Text       string
	Loc        ast.SourceLocation
	EndLoc     ast.SourceLocation
	Annotation any
}

// Is reports whether the token has kind k.
func (t Token) Is(k Kind) bool { return t.Kind == k }

// IsOneOf reports whether the token has any of the kinds.
func (t Token) IsOneOf(kinds ...Kind) bool {
	for _, k := range kinds {
		if t.Kind == k {
			return true
		}
	}
	return false
}

func (t Token) String() string {
	switch t.Kind {
	case Identifier, NumericConstant, CharConstant, StringLiteral:
		return t.Text
	}
	return t.Kind.String()
}
