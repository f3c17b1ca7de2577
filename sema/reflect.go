package sema

import (
	"errors"
	"fmt"
	"io"

	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/templatename"
)

// ActOnReflectedNamespace builds the operand of "^ns" or, when ns is nil,
// of "^::".
func (s *Sema) ActOnReflectedNamespace(ss *ScopeSpec, loc ast.SourceLocation, ns *ast.NamespaceDecl) ReflectionOperand {
	o := ReflectionOperand{Kind: OperandNamespace, Namespace: ns, Loc: loc}
	if ss != nil && ss.IsValid() && ns != nil {
		o.Scope = ss.Qualifier
	}
	return o
}

// ActOnReflectedTemplate builds the operand of "^tmpl".
func (s *Sema) ActOnReflectedTemplate(ss *ScopeSpec, tmpl templatename.Name, loc ast.SourceLocation) ReflectionOperand {
	return ReflectionOperand{Kind: OperandTemplate, Template: tmpl, Loc: loc}
}

// ActOnReflectedType builds the operand of "^type-id".
func (s *Sema) ActOnReflectedType(t ast.Type, loc ast.SourceLocation) ReflectionOperand {
	return ReflectionOperand{Kind: OperandType, Type: t, Loc: loc}
}

// ActOnReflectedExpression builds the operand of "^expr".
func (s *Sema) ActOnReflectedExpression(e ast.Expr) ReflectionOperand {
	return ReflectionOperand{Kind: OperandExpression, Expr: e, Loc: e.Location()}
}

// ActOnCXXReflectExpr builds "^operand".
func (s *Sema) ActOnCXXReflectExpr(opLoc ast.SourceLocation, operand ReflectionOperand) ExprResult {
	return run(s, "ActOnCXXReflectExpr", opLoc, func() (ExprResult, bool) {
		if operand.IsInvalid() {
			return ExprError(), false
		}
		return Owned(&ReflectExpr{ExprBase: ast.ExprBase{Loc: opLoc}, Operand: operand}), true
	})
}

func builtin(name string, kwLoc ast.SourceLocation, args []ast.Expr) BuiltinCallExpr {
	return BuiltinCallExpr{ExprBase: ast.ExprBase{Loc: kwLoc}, Builtin: name, Args: args}
}

func anyValueDependent(args []ast.Expr) bool {
	for _, a := range args {
		if a.Dependence().IsValueDependent() {
			return true
		}
	}
	return false
}

// diagnoseEvaluation reports a failed constant evaluation. Dependent
// operands are not an error.
func (s *Sema) diagnoseEvaluation(err error, loc ast.SourceLocation) {
	if errors.Is(err, ErrDependent) {
		return
	}
	s.report(diag.ErrNotConstantExpression, loc, err.Error())
}

// ActOnCXXReflectionReadQuery builds "__reflect(query, r, args...)".
func (s *Sema) ActOnCXXReflectionReadQuery(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXReflectionReadQuery", kwLoc, func() (ExprResult, bool) {
		if len(args) < 2 {
			s.report(diag.ErrReflectionQuery, kwLoc, fmt.Sprintf("expected a query and a reflection, got %d operands", len(args)))
			return ExprError(), false
		}
		return Owned(&ReflectionQueryExpr{builtin("__reflect", kwLoc, args)}), true
	})
}

// ActOnCXXReflectPrintLiteral builds "__reflect_print(args...)" and writes
// the values to Output unless the call is dependent or unevaluated.
func (s *Sema) ActOnCXXReflectPrintLiteral(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXReflectPrintLiteral", kwLoc, func() (ExprResult, bool) {
		e := &ReflectPrintExpr{BuiltinCallExpr: builtin("__reflect_print", kwLoc, args)}
		if anyValueDependent(args) || s.isUnevaluated() {
			return Owned(e), true
		}
		for _, a := range args {
			v, err := s.Evaluate(a)
			if err != nil {
				s.diagnoseEvaluation(err, a.Location())
				return ExprError(), false
			}
			if v.Kind == ValueReflection {
				v.Refl.Print(s.Output, ast.PrintingPolicy{FullyQualifiedName: true})
			} else {
				io.WriteString(s.Output, v.String())
			}
		}
		io.WriteString(s.Output, "\n")
		return Owned(e), true
	})
}

func (s *Sema) reflectionOperand(name string, kwLoc ast.SourceLocation, arg ast.Expr) (Reflection, bool) {
	v, err := s.Evaluate(arg)
	if err != nil {
		s.diagnoseEvaluation(err, arg.Location())
		return Reflection{}, false
	}
	if v.Kind != ValueReflection {
		s.report(diag.ErrReflectionQuery, kwLoc, fmt.Sprintf("%s expects a reflection, got %s", name, v.Kind))
		return Reflection{}, false
	}
	return v.Refl, true
}

// ActOnCXXReflectPrintReflection builds "__reflect_pretty_print(r)".
func (s *Sema) ActOnCXXReflectPrintReflection(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXReflectPrintReflection", kwLoc, func() (ExprResult, bool) {
		e := &ReflectPrintExpr{BuiltinCallExpr: builtin("__reflect_pretty_print", kwLoc, []ast.Expr{arg}), Pretty: true}
		if arg.Dependence().IsValueDependent() || s.isUnevaluated() {
			return Owned(e), true
		}
		r, ok := s.reflectionOperand("__reflect_pretty_print", kwLoc, arg)
		if !ok {
			return ExprError(), false
		}
		r.Print(s.Output, ast.PrintingPolicy{FullyQualifiedName: true})
		io.WriteString(s.Output, "\n")
		return Owned(e), true
	})
}

// ActOnCXXReflectDumpReflection builds "__reflect_dump(r)".
func (s *Sema) ActOnCXXReflectDumpReflection(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXReflectDumpReflection", kwLoc, func() (ExprResult, bool) {
		e := &ReflectDumpExpr{builtin("__reflect_dump", kwLoc, []ast.Expr{arg})}
		if arg.Dependence().IsValueDependent() || s.isUnevaluated() {
			return Owned(e), true
		}
		r, ok := s.reflectionOperand("__reflect_dump", kwLoc, arg)
		if !ok {
			return ExprError(), false
		}
		r.Dump(s.Output)
		return Owned(e), true
	})
}

// ActOnCXXInvalidReflectionExpr builds "__invalid_reflection(message)".
func (s *Sema) ActOnCXXInvalidReflectionExpr(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXInvalidReflectionExpr", kwLoc, func() (ExprResult, bool) {
		return Owned(&InvalidReflectionExpr{builtin("__invalid_reflection", kwLoc, []ast.Expr{arg})}), true
	})
}

// ActOnCXXCompilerErrorExpr builds "__compiler_error(message)". A constant
// message is reported as a user-defined error.
func (s *Sema) ActOnCXXCompilerErrorExpr(kwLoc ast.SourceLocation, arg ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXCompilerErrorExpr", kwLoc, func() (ExprResult, bool) {
		e := &CompilerErrorExpr{builtin("__compiler_error", kwLoc, []ast.Expr{arg})}
		if arg.Dependence().IsValueDependent() || s.isUnevaluated() {
			return Owned(e), true
		}
		v, err := s.Evaluate(arg)
		if err != nil {
			s.diagnoseEvaluation(err, arg.Location())
			return ExprError(), false
		}
		s.report(diag.ErrUserDefined, kwLoc, v.String())
		return Owned(e), true
	})
}

// ActOnCXXConcatenateExpr builds "__concatenate(parts...)". Constant parts
// fold into a string literal.
func (s *Sema) ActOnCXXConcatenateExpr(kwLoc ast.SourceLocation, args []ast.Expr, rParen ast.SourceLocation) ExprResult {
	return run(s, "ActOnCXXConcatenateExpr", kwLoc, func() (ExprResult, bool) {
		e := &ConcatenateExpr{builtin("__concatenate", kwLoc, args)}
		if anyValueDependent(args) {
			return Owned(e), true
		}
		v, err := s.Evaluate(e)
		if err != nil {
			s.diagnoseEvaluation(err, kwLoc)
			return ExprError(), false
		}
		return Owned(&ast.StringLiteral{ExprBase: ast.ExprBase{Loc: kwLoc}, Value: v.Str}), true
	})
}

// ActOnCXXIdentifierSplice evaluates the fragments of "[# parts #]" and
// joins them into an identifier. Dependent fragments are kept for
// instantiation.
func (s *Sema) ActOnCXXIdentifierSplice(parts []ast.Expr, begin, end ast.SourceLocation) (IdentifierInfo, bool) {
	type result struct {
		info IdentifierInfo
		ok   bool
	}
	r := run(s, "ActOnCXXIdentifierSplice", begin, func() (result, bool) {
		if anyValueDependent(parts) {
			return result{IdentifierInfo{Dependent: true, Parts: parts, Loc: begin}, true}, true
		}
		var name string
		for _, p := range parts {
			v, err := s.Evaluate(p)
			if err != nil {
				s.diagnoseEvaluation(err, p.Location())
				return result{}, false
			}
			switch v.Kind {
			case ValueString, ValueInt:
				name += v.String()
			default:
				s.report(diag.ErrIdentifierSpliceFragment, p.Location(), v.Kind.String())
				return result{}, false
			}
		}
		if !isValidIdentifier(name) {
			s.report(diag.ErrInvalidIdentifierSplice, begin, name)
			return result{}, false
		}
		return result{IdentifierInfo{Name: name, Loc: begin}, true}, true
	})
	return r.info, r.ok
}

// ActOnCXXInvalidIdentifierSplice returns a unique placeholder identifier
// standing in for a splice that failed.
func (s *Sema) ActOnCXXInvalidIdentifierSplice(loc ast.SourceLocation) IdentifierInfo {
	s.invalidIDs++
	return IdentifierInfo{
		Name:    fmt.Sprintf("__invalid_identifier_splice_%d", s.invalidIDs),
		Invalid: true,
		Loc:     loc,
	}
}
