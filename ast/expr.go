package ast

import (
	"io"
	"strconv"
)

// Expr is an expression node.
type Expr interface {
	Dependence() ExprDependence
	Location() SourceLocation
	Print(w io.Writer, p PrintingPolicy)

	exprNode()
}

// ExprBase carries the location of an expression. Node types outside this
// package embed it to satisfy Expr.
type ExprBase struct {
	Loc SourceLocation
}

func (e *ExprBase) Location() SourceLocation { return e.Loc }
func (e *ExprBase) exprNode()                {}

// IntegerLiteral is a decimal, hex or character constant.
type IntegerLiteral struct {
	ExprBase
	Value int64
	Text  string
}

func (e *IntegerLiteral) Dependence() ExprDependence { return ExprNone }

func (e *IntegerLiteral) Print(w io.Writer, _ PrintingPolicy) {
	if e.Text != "" {
		io.WriteString(w, e.Text)
		return
	}
	io.WriteString(w, strconv.FormatInt(e.Value, 10))
}

// StringLiteral is a (possibly concatenated) string literal.
type StringLiteral struct {
	ExprBase
	Value string
}

func (e *StringLiteral) Dependence() ExprDependence { return ExprNone }

func (e *StringLiteral) Print(w io.Writer, _ PrintingPolicy) {
	io.WriteString(w, strconv.Quote(e.Value))
}

// BoolLiteral is true or false.
type BoolLiteral struct {
	ExprBase
	Value bool
}

func (e *BoolLiteral) Dependence() ExprDependence { return ExprNone }

func (e *BoolLiteral) Print(w io.Writer, _ PrintingPolicy) {
	io.WriteString(w, strconv.FormatBool(e.Value))
}

// NullPtrLiteral is nullptr.
type NullPtrLiteral struct {
	ExprBase
}

func (e *NullPtrLiteral) Dependence() ExprDependence          { return ExprNone }
func (e *NullPtrLiteral) Print(w io.Writer, _ PrintingPolicy) { io.WriteString(w, "nullptr") }

// DeclRefExpr names a value declaration.
type DeclRefExpr struct {
	ExprBase
	Qualifier *NestedNameSpecifier
	Decl      *ValueDecl
}

func (e *DeclRefExpr) Dependence() ExprDependence {
	var d ExprDependence
	if e.Decl.IsDependent() {
		d = ExprValueInstantiation
		if e.Decl.Type != nil {
			d |= ToExprDependence(e.Decl.Type.Dependence())
		}
		if e.Decl.IsParameterPack() {
			d |= ExprUnexpandedPack
		}
	}
	if e.Qualifier != nil {
		d |= ToExprDependence(nnsToType(e.Qualifier.Dependence()))
	}
	return d
}

func (e *DeclRefExpr) Print(w io.Writer, p PrintingPolicy) {
	if e.Qualifier != nil {
		e.Qualifier.Print(w, p)
		io.WriteString(w, e.Decl.Name())
		return
	}
	io.WriteString(w, p.DeclName(e.Decl))
}

// UnresolvedLookupExpr is a name whose lookup waits for instantiation.
type UnresolvedLookupExpr struct {
	ExprBase
	Qualifier *NestedNameSpecifier
	Name      DeclarationName
}

func (e *UnresolvedLookupExpr) Dependence() ExprDependence {
	d := ExprTypeValueInstantiation
	if e.Qualifier != nil {
		d |= ToExprDependence(nnsToType(e.Qualifier.Dependence()))
	}
	return d
}

func (e *UnresolvedLookupExpr) Print(w io.Writer, p PrintingPolicy) {
	if e.Qualifier != nil {
		e.Qualifier.Print(w, p)
	}
	io.WriteString(w, e.Name.String())
}

// ParenExpr is "( e )".
type ParenExpr struct {
	ExprBase
	Inner Expr
}

func (e *ParenExpr) Dependence() ExprDependence { return e.Inner.Dependence() }

func (e *ParenExpr) Print(w io.Writer, p PrintingPolicy) {
	io.WriteString(w, "(")
	e.Inner.Print(w, p)
	io.WriteString(w, ")")
}

// UnaryOpKind is a prefix arithmetic or logical operator.
type UnaryOpKind int

const (
	UnaryPlus UnaryOpKind = iota
	UnaryMinus
	UnaryNot
	UnaryBitNot
)

var unarySpellings = [...]string{UnaryPlus: "+", UnaryMinus: "-", UnaryNot: "!", UnaryBitNot: "~"}

func (k UnaryOpKind) String() string { return unarySpellings[k] }

// UnaryOperator is a prefix operator applied to an operand.
type UnaryOperator struct {
	ExprBase
	Op      UnaryOpKind
	Operand Expr
}

func (e *UnaryOperator) Dependence() ExprDependence { return e.Operand.Dependence() }

func (e *UnaryOperator) Print(w io.Writer, p PrintingPolicy) {
	io.WriteString(w, e.Op.String())
	e.Operand.Print(w, p)
}

// BinaryOpKind is an infix operator.
type BinaryOpKind int

const (
	BinaryMul BinaryOpKind = iota
	BinaryDiv
	BinaryRem
	BinaryAdd
	BinarySub
	BinaryLT
	BinaryGT
	BinaryLE
	BinaryGE
	BinaryEQ
	BinaryNE
	BinaryAnd
	BinaryXor
	BinaryOr
	BinaryLAnd
	BinaryLOr
)

var binarySpellings = [...]string{
	BinaryMul:  "*",
	BinaryDiv:  "/",
	BinaryRem:  "%",
	BinaryAdd:  "+",
	BinarySub:  "-",
	BinaryLT:   "<",
	BinaryGT:   ">",
	BinaryLE:   "<=",
	BinaryGE:   ">=",
	BinaryEQ:   "==",
	BinaryNE:   "!=",
	BinaryAnd:  "&",
	BinaryXor:  "^",
	BinaryOr:   "|",
	BinaryLAnd: "&&",
	BinaryLOr:  "||",
}

func (k BinaryOpKind) String() string { return binarySpellings[k] }

// BinaryOperator is "lhs op rhs".
type BinaryOperator struct {
	ExprBase
	Op  BinaryOpKind
	LHS Expr
	RHS Expr
}

func (e *BinaryOperator) Dependence() ExprDependence {
	return e.LHS.Dependence() | e.RHS.Dependence()
}

func (e *BinaryOperator) Print(w io.Writer, p PrintingPolicy) {
	e.LHS.Print(w, p)
	io.WriteString(w, " "+e.Op.String()+" ")
	e.RHS.Print(w, p)
}

// ConditionalOperator is "cond ? lhs : rhs".
type ConditionalOperator struct {
	ExprBase
	Cond Expr
	LHS  Expr
	RHS  Expr
}

func (e *ConditionalOperator) Dependence() ExprDependence {
	return e.Cond.Dependence() | e.LHS.Dependence() | e.RHS.Dependence()
}

func (e *ConditionalOperator) Print(w io.Writer, p PrintingPolicy) {
	e.Cond.Print(w, p)
	io.WriteString(w, " ? ")
	e.LHS.Print(w, p)
	io.WriteString(w, " : ")
	e.RHS.Print(w, p)
}

// CallExpr is "callee(args...)".
type CallExpr struct {
	ExprBase
	Callee Expr
	Args   []Expr
}

func (e *CallExpr) Dependence() ExprDependence {
	d := e.Callee.Dependence()
	for _, a := range e.Args {
		d |= a.Dependence()
	}
	return d
}

func (e *CallExpr) Print(w io.Writer, p PrintingPolicy) {
	e.Callee.Print(w, p)
	io.WriteString(w, "(")
	PrintList(w, p, e.Args)
	io.WriteString(w, ")")
}

// MemberExpr is "base.member" or "base->member" with a named member.
type MemberExpr struct {
	ExprBase
	Base   Expr
	Arrow  bool
	Member string
}

func (e *MemberExpr) Dependence() ExprDependence { return e.Base.Dependence() }

func (e *MemberExpr) Print(w io.Writer, p PrintingPolicy) {
	e.Base.Print(w, p)
	if e.Arrow {
		io.WriteString(w, "->")
	} else {
		io.WriteString(w, ".")
	}
	io.WriteString(w, e.Member)
}

// SubscriptExpr is "base[index]".
type SubscriptExpr struct {
	ExprBase
	Base  Expr
	Index Expr
}

func (e *SubscriptExpr) Dependence() ExprDependence {
	return e.Base.Dependence() | e.Index.Dependence()
}

func (e *SubscriptExpr) Print(w io.Writer, p PrintingPolicy) {
	e.Base.Print(w, p)
	io.WriteString(w, "[")
	e.Index.Print(w, p)
	io.WriteString(w, "]")
}

// RecoveryExpr stands in for an expression that failed semantic analysis.
type RecoveryExpr struct {
	ExprBase
}

func (e *RecoveryExpr) Dependence() ExprDependence {
	return ExprError | ExprTypeValueInstantiation
}

func (e *RecoveryExpr) Print(w io.Writer, _ PrintingPolicy) {
	io.WriteString(w, "<recovery-expr>")
}

// PrintList writes exprs separated by ", ".
func PrintList(w io.Writer, p PrintingPolicy, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		e.Print(w, p)
	}
}
