package ast

// OverloadedOperatorKind identifies an overloadable operator.
type OverloadedOperatorKind int

const (
	OONone OverloadedOperatorKind = iota
	OONew
	OODelete
	OOArrayNew
	OOArrayDelete
	OOPlus
	OOMinus
	OOStar
	OOSlash
	OOPercent
	OOCaret
	OOAmp
	OOPipe
	OOTilde
	OOExclaim
	OOEqual
	OOLess
	OOGreater
	OOPlusEqual
	OOMinusEqual
	OOStarEqual
	OOSlashEqual
	OOPercentEqual
	OOCaretEqual
	OOAmpEqual
	OOPipeEqual
	OOLessLess
	OOGreaterGreater
	OOLessLessEqual
	OOGreaterGreaterEqual
	OOEqualEqual
	OOExclaimEqual
	OOLessEqual
	OOGreaterEqual
	OOSpaceship
	OOAmpAmp
	OOPipePipe
	OOPlusPlus
	OOMinusMinus
	OOComma
	OOArrowStar
	OOArrow
	OOCall
	OOSubscript
	OOCoawait
)

var operatorSpellings = [...]string{
	OONone:                "",
	OONew:                 "new",
	OODelete:              "delete",
	OOArrayNew:            "new[]",
	OOArrayDelete:         "delete[]",
	OOPlus:                "+",
	OOMinus:               "-",
	OOStar:                "*",
	OOSlash:               "/",
	OOPercent:             "%",
	OOCaret:               "^",
	OOAmp:                 "&",
	OOPipe:                "|",
	OOTilde:               "~",
	OOExclaim:             "!",
	OOEqual:               "=",
	OOLess:                "<",
	OOGreater:             ">",
	OOPlusEqual:           "+=",
	OOMinusEqual:          "-=",
	OOStarEqual:           "*=",
	OOSlashEqual:          "/=",
	OOPercentEqual:        "%=",
	OOCaretEqual:          "^=",
	OOAmpEqual:            "&=",
	OOPipeEqual:           "|=",
	OOLessLess:            "<<",
	OOGreaterGreater:      ">>",
	OOLessLessEqual:       "<<=",
	OOGreaterGreaterEqual: ">>=",
	OOEqualEqual:          "==",
	OOExclaimEqual:        "!=",
	OOLessEqual:           "<=",
	OOGreaterEqual:        ">=",
	OOSpaceship:           "<=>",
	OOAmpAmp:              "&&",
	OOPipePipe:            "||",
	OOPlusPlus:            "++",
	OOMinusMinus:          "--",
	OOComma:               ",",
	OOArrowStar:           "->*",
	OOArrow:               "->",
	OOCall:                "()",
	OOSubscript:           "[]",
	OOCoawait:             "co_await",
}

// Spelling returns the operator's source spelling, e.g. "+=" or "new[]".
func (k OverloadedOperatorKind) Spelling() string {
	if k < 0 || int(k) >= len(operatorSpellings) {
		return ""
	}
	return operatorSpellings[k]
}

// OperatorBySpelling returns the operator with the given spelling.
func OperatorBySpelling(s string) (OverloadedOperatorKind, bool) {
	for k, sp := range operatorSpellings {
		if k != int(OONone) && sp == s {
			return OverloadedOperatorKind(k), true
		}
	}
	return OONone, false
}

// DeclarationNameKind distinguishes identifier names from operator names.
type DeclarationNameKind int

const (
	IdentifierName DeclarationNameKind = iota
	OperatorName
)

// DeclarationName is the name a declaration is declared with.
type DeclarationName struct {
	Kind       DeclarationNameKind
	Identifier string
	Operator   OverloadedOperatorKind
}

// Identifier returns an identifier name.
func Identifier(s string) DeclarationName {
	return DeclarationName{Kind: IdentifierName, Identifier: s}
}

// Operator returns an operator-function name.
func Operator(op OverloadedOperatorKind) DeclarationName {
	return DeclarationName{Kind: OperatorName, Operator: op}
}

func (n DeclarationName) String() string {
	if n.Kind == OperatorName {
		sp := n.Operator.Spelling()
		if sp != "" && (sp[0] >= 'a' && sp[0] <= 'z') {
			return "operator " + sp
		}
		return "operator" + sp
	}
	return n.Identifier
}
