package sema

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/broady/metacxx/ast"
)

var (
	// ErrNotConstant is returned for expressions that cannot be folded.
	ErrNotConstant = errors.New("not a constant expression")
	// ErrDependent is returned for value-dependent expressions, whose value
	// is known only after instantiation.
	ErrDependent = errors.New("value-dependent expression")
)

// Reflection query selectors, declared as enumerators in the translation
// unit so that "__reflect(query_get_name, r)" resolves by ordinary lookup.
const (
	QueryIsInvalid int64 = iota
	QueryIsNamespace
	QueryIsType
	QueryIsTemplate
	QueryIsExpression
	QueryIsVariable
	QueryIsFunction
	QueryGetName
	QueryGetParent
	QueryGetType
)

var queryNames = [...]string{
	QueryIsInvalid:    "query_is_invalid",
	QueryIsNamespace:  "query_is_namespace",
	QueryIsType:       "query_is_type",
	QueryIsTemplate:   "query_is_template",
	QueryIsExpression: "query_is_expression",
	QueryIsVariable:   "query_is_variable",
	QueryIsFunction:   "query_is_function",
	QueryGetName:      "query_get_name",
	QueryGetParent:    "query_get_parent",
	QueryGetType:      "query_get_type",
}

func (s *Sema) declareQueries() {
	for i, name := range queryNames {
		s.DeclareEnumerator(nil, name, int64(i))
	}
}

// Evaluate folds e to a constant. Every call counts as one evaluation and is
// reported to OnEvaluate.
func (s *Sema) Evaluate(e ast.Expr) (Value, error) {
	s.evaluations++
	if s.OnEvaluate != nil {
		s.OnEvaluate(e)
	}
	if e.Dependence().IsValueDependent() {
		return Value{}, ErrDependent
	}
	return s.eval(e)
}

func (s *Sema) eval(e ast.Expr) (Value, error) {
	switch e := e.(type) {
	case *ast.IntegerLiteral:
		return IntValue(e.Value), nil
	case *ast.BoolLiteral:
		return BoolValue(e.Value), nil
	case *ast.StringLiteral:
		return StringValue(e.Value), nil
	case *ast.NullPtrLiteral:
		return ReflectionValue(Reflection{}), nil
	case *ast.ParenExpr:
		return s.eval(e.Inner)
	case *ast.UnaryOperator:
		return s.evalUnary(e)
	case *ast.BinaryOperator:
		return s.evalBinary(e)
	case *ast.ConditionalOperator:
		c, err := s.evalBool(e.Cond)
		if err != nil {
			return Value{}, err
		}
		if c {
			return s.eval(e.LHS)
		}
		return s.eval(e.RHS)
	case *ast.DeclRefExpr:
		if e.Decl.Init == nil {
			return Value{}, fmt.Errorf("%w: %s has no constant initializer", ErrNotConstant, e.Decl.Name())
		}
		return s.eval(e.Decl.Init)
	case *ast.CallExpr:
		return s.evalCall(e)
	case *ReflectExpr:
		return ReflectionValue(s.reflect(e.Operand)), nil
	case *ReflectionQueryExpr:
		return s.evalQuery(e)
	case *ConcatenateExpr:
		str, err := s.concatenate(e.Args)
		if err != nil {
			return Value{}, err
		}
		return StringValue(str), nil
	case *InvalidReflectionExpr:
		msg, err := s.eval(e.Args[0])
		if err != nil {
			return Value{}, err
		}
		return ReflectionValue(Reflection{Kind: ReflectionInvalid, Message: msg.String()}), nil
	case *ExprSpliceExpr:
		if e.Resolved != nil {
			return s.eval(e.Resolved)
		}
	}
	return Value{}, fmt.Errorf("%w: %s", ErrNotConstant, ast.Sprint(e, ast.PrintingPolicy{}))
}

func (s *Sema) evalInt(e ast.Expr) (int64, error) {
	v, err := s.eval(e)
	if err != nil {
		return 0, err
	}
	switch v.Kind {
	case ValueInt:
		return v.Int, nil
	case ValueBool:
		if v.Bool {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("%w: %s is not an integer", ErrNotConstant, v)
}

func (s *Sema) evalBool(e ast.Expr) (bool, error) {
	v, err := s.eval(e)
	if err != nil {
		return false, err
	}
	switch v.Kind {
	case ValueBool:
		return v.Bool, nil
	case ValueInt:
		return v.Int != 0, nil
	case ValueReflection:
		return v.Refl.Kind != ReflectionNull && v.Refl.Kind != ReflectionInvalid, nil
	}
	return false, fmt.Errorf("%w: %s is not a condition", ErrNotConstant, v)
}

func (s *Sema) evalUnary(e *ast.UnaryOperator) (Value, error) {
	if e.Op == ast.UnaryNot {
		b, err := s.evalBool(e.Operand)
		return BoolValue(!b), err
	}
	n, err := s.evalInt(e.Operand)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case ast.UnaryMinus:
		n = -n
	case ast.UnaryBitNot:
		n = ^n
	}
	return IntValue(n), nil
}

func (s *Sema) evalBinary(e *ast.BinaryOperator) (Value, error) {
	switch e.Op {
	case ast.BinaryLAnd, ast.BinaryLOr:
		l, err := s.evalBool(e.LHS)
		if err != nil {
			return Value{}, err
		}
		if l == (e.Op == ast.BinaryLOr) {
			return BoolValue(l), nil
		}
		r, err := s.evalBool(e.RHS)
		return BoolValue(r), err
	case ast.BinaryEQ, ast.BinaryNE:
		l, err := s.eval(e.LHS)
		if err != nil {
			return Value{}, err
		}
		r, err := s.eval(e.RHS)
		if err != nil {
			return Value{}, err
		}
		eq, err := valuesEqual(l, r)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(eq == (e.Op == ast.BinaryEQ)), nil
	}

	l, err := s.evalInt(e.LHS)
	if err != nil {
		return Value{}, err
	}
	r, err := s.evalInt(e.RHS)
	if err != nil {
		return Value{}, err
	}
	switch e.Op {
	case ast.BinaryMul:
		return IntValue(l * r), nil
	case ast.BinaryDiv, ast.BinaryRem:
		if r == 0 {
			return Value{}, fmt.Errorf("%w: division by zero", ErrNotConstant)
		}
		if e.Op == ast.BinaryDiv {
			return IntValue(l / r), nil
		}
		return IntValue(l % r), nil
	case ast.BinaryAdd:
		return IntValue(l + r), nil
	case ast.BinarySub:
		return IntValue(l - r), nil
	case ast.BinaryLT:
		return BoolValue(l < r), nil
	case ast.BinaryGT:
		return BoolValue(l > r), nil
	case ast.BinaryLE:
		return BoolValue(l <= r), nil
	case ast.BinaryGE:
		return BoolValue(l >= r), nil
	case ast.BinaryAnd:
		return IntValue(l & r), nil
	case ast.BinaryXor:
		return IntValue(l ^ r), nil
	case ast.BinaryOr:
		return IntValue(l | r), nil
	}
	return Value{}, fmt.Errorf("%w: operator %s", ErrNotConstant, e.Op)
}

func valuesEqual(l, r Value) (bool, error) {
	switch {
	case l.Kind == ValueReflection && r.Kind == ValueReflection:
		return l.Refl.Equal(r.Refl), nil
	case l.Kind == ValueString && r.Kind == ValueString:
		return l.Str == r.Str, nil
	case l.Kind == ValueBool && r.Kind == ValueBool:
		return l.Bool == r.Bool, nil
	case l.Kind == ValueInt && r.Kind == ValueInt:
		return l.Int == r.Int, nil
	}
	return false, fmt.Errorf("%w: cannot compare %s with %s", ErrNotConstant, l.Kind, r.Kind)
}

func (s *Sema) evalCall(e *ast.CallExpr) (Value, error) {
	ref, ok := e.Callee.(*ast.DeclRefExpr)
	if !ok {
		return Value{}, fmt.Errorf("%w: indirect call", ErrNotConstant)
	}
	fn, ok := s.funcs[ref.Decl]
	if !ok {
		return Value{}, fmt.Errorf("%w: %s is not constexpr", ErrNotConstant, ref.Decl.Name())
	}
	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := s.eval(a)
		if err != nil {
			return Value{}, err
		}
		args[i] = v
	}
	return fn(args)
}

// reflect turns a parsed operand into the reflection value it designates.
func (s *Sema) reflect(o ReflectionOperand) Reflection {
	switch o.Kind {
	case OperandNamespace:
		return Reflection{Kind: ReflectionNamespace, Namespace: o.Namespace}
	case OperandTemplate:
		return Reflection{Kind: ReflectionTemplate, Template: o.Template}
	case OperandType:
		return Reflection{Kind: ReflectionType, Type: o.Type}
	case OperandExpression:
		e := o.Expr
		for {
			p, ok := e.(*ast.ParenExpr)
			if !ok {
				break
			}
			e = p.Inner
		}
		if ref, ok := e.(*ast.DeclRefExpr); ok {
			return Reflection{Kind: ReflectionDecl, Decl: ref.Decl}
		}
		if sp, ok := e.(*ExprSpliceExpr); ok && sp.Resolved != nil {
			if v, err := s.eval(sp.Refl); err == nil && v.Kind == ValueReflection {
				return v.Refl
			}
		}
		return Reflection{Kind: ReflectionExpr, Expr: o.Expr}
	}
	return Reflection{Kind: ReflectionInvalid, Message: "invalid operand"}
}

func (s *Sema) evalReflection(e ast.Expr) (Reflection, error) {
	v, err := s.eval(e)
	if err != nil {
		return Reflection{}, err
	}
	if v.Kind != ValueReflection {
		return Reflection{}, fmt.Errorf("%w: %s is not a reflection", ErrNotConstant, v)
	}
	return v.Refl, nil
}

func (s *Sema) evalQuery(e *ReflectionQueryExpr) (Value, error) {
	q, err := s.evalInt(e.Args[0])
	if err != nil {
		return Value{}, err
	}
	r, err := s.evalReflection(e.Args[1])
	if err != nil {
		return Value{}, err
	}
	switch q {
	case QueryIsInvalid:
		return BoolValue(r.Kind == ReflectionInvalid), nil
	case QueryIsNamespace:
		return BoolValue(r.Kind == ReflectionNamespace), nil
	case QueryIsType:
		return BoolValue(r.Kind == ReflectionType), nil
	case QueryIsTemplate:
		return BoolValue(r.Kind == ReflectionTemplate), nil
	case QueryIsExpression:
		return BoolValue(r.Kind == ReflectionExpr || r.Kind == ReflectionDecl), nil
	case QueryIsVariable:
		return BoolValue(r.Kind == ReflectionDecl && r.Decl.Kind() == ast.VarDecl), nil
	case QueryIsFunction:
		return BoolValue(r.Kind == ReflectionDecl && r.Decl.Kind() == ast.FunctionDecl), nil
	case QueryGetName:
		return StringValue(r.Name()), nil
	case QueryGetParent:
		return s.parentOf(r)
	case QueryGetType:
		if r.Kind == ReflectionDecl && r.Decl.Type != nil {
			return ReflectionValue(Reflection{Kind: ReflectionType, Type: r.Decl.Type}), nil
		}
		return ReflectionValue(Reflection{Kind: ReflectionInvalid, Message: "entity has no type"}), nil
	}
	return Value{}, fmt.Errorf("%w: unknown query %d", ErrNotConstant, q)
}

func (s *Sema) parentOf(r Reflection) (Value, error) {
	var d ast.NamedDecl
	switch r.Kind {
	case ReflectionNamespace:
		if r.Namespace != nil {
			d = r.Namespace
		}
	case ReflectionType:
		if t, ok := r.Type.(*ast.TagType); ok {
			d = t.Decl
		}
	case ReflectionTemplate:
		if td := r.Template.AsTemplateDecl(); td != nil {
			d = td
		}
	case ReflectionDecl:
		d = r.Decl
	}
	if d == nil {
		return ReflectionValue(Reflection{Kind: ReflectionInvalid, Message: "entity has no parent"}), nil
	}
	dc := d.DeclContext()
	switch owner := s.owners[dc].(type) {
	case *ast.NamespaceDecl:
		return ReflectionValue(Reflection{Kind: ReflectionNamespace, Namespace: owner}), nil
	case *ast.TypeDecl:
		return ReflectionValue(Reflection{Kind: ReflectionType, Type: &ast.TagType{Decl: owner}}), nil
	}
	if dc.IsTranslationUnit() {
		return ReflectionValue(Reflection{Kind: ReflectionNamespace}), nil
	}
	return ReflectionValue(Reflection{Kind: ReflectionInvalid, Message: "entity has no parent"}), nil
}

// concatenate joins string and integer fragments.
func (s *Sema) concatenate(parts []ast.Expr) (string, error) {
	var b strings.Builder
	for _, p := range parts {
		v, err := s.eval(p)
		if err != nil {
			return "", err
		}
		switch v.Kind {
		case ValueString:
			b.WriteString(v.Str)
		case ValueInt:
			b.WriteString(strconv.FormatInt(v.Int, 10))
		default:
			return "", fmt.Errorf("%w: cannot concatenate %s", ErrNotConstant, v.Kind)
		}
	}
	return b.String(), nil
}
