// Package ast holds the long-lived syntax tree entities that template names,
// splices and reflections refer to: declarations, nested-name-specifiers,
// types and expressions, together with their dependence bits.
package ast

import "fmt"

// SourceLocation is a position in the input. The zero value is invalid.
type SourceLocation struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

// IsValid reports whether the location points into the input.
func (l SourceLocation) IsValid() bool { return l.Line > 0 }

func (l SourceLocation) String() string {
	if !l.IsValid() {
		return "<invalid loc>"
	}
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// SourceRange is an inclusive range of locations.
type SourceRange struct {
	Begin SourceLocation `json:"begin"`
	End   SourceLocation `json:"end"`
}

// IsValid reports whether both ends of the range are valid.
func (r SourceRange) IsValid() bool { return r.Begin.IsValid() && r.End.IsValid() }
