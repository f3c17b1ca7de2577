package parser

import (
	"github.com/broady/metacxx/ast"
	"github.com/broady/metacxx/diag"
	"github.com/broady/metacxx/token"
)

// ItemKind classifies a top-level item.
type ItemKind int

const (
	ItemInvalid ItemKind = iota
	ItemExpr
	ItemType
)

func (k ItemKind) String() string {
	switch k {
	case ItemInvalid:
		return "Invalid"
	case ItemExpr:
		return "Expr"
	case ItemType:
		return "Type"
	default:
		return "Unknown"
	}
}

// Item is one ';'-terminated expression or type-id.
type Item struct {
	Kind  ItemKind
	Expr  ast.Expr
	Type  ast.Type
	Range ast.SourceRange
}

// Print writes the parsed item.
func (it Item) Print(p ast.PrintingPolicy) string {
	switch it.Kind {
	case ItemExpr:
		return ast.Sprint(it.Expr, p)
	case ItemType:
		return ast.Sprint(it.Type, p)
	default:
		return "<invalid>"
	}
}

// ParseTopLevelItem parses a type-id or an expression followed by ';' or
// the end of input. After an error it skips to the next ';'.
func (p *Parser) ParseTopLevelItem() Item {
	begin := p.tok().Loc
	var item Item
	if p.isTypeID() {
		if res := p.ParseTypeID(); !res.IsInvalid() {
			item = Item{Kind: ItemType, Type: res.Type}
		}
	} else if res := p.ParseExpression(); !res.IsInvalid() {
		item = Item{Kind: ItemExpr, Expr: res.Expr}
	}
	item.Range = ast.SourceRange{Begin: begin, End: p.prevEnd()}

	switch t := p.tok(); {
	case t.Is(token.Semi):
		p.consume()
	case t.Is(token.EOF):
	default:
		if item.Kind != ItemInvalid {
			p.report(diag.ErrExpected, t.Loc, quote(token.Semi))
			item = Item{Range: item.Range}
		}
		if !p.skipUntil(0, token.Semi) && !p.AtEOF() {
			// Stray closer: drop it so parsing makes progress.
			p.consume()
		}
	}
	return item
}

// ParseTranslationUnit parses items until the end of input. Empty
// statements are skipped.
func (p *Parser) ParseTranslationUnit() []Item {
	var items []Item
	for !p.AtEOF() {
		if _, ok := p.tryConsume(token.Semi); ok {
			continue
		}
		items = append(items, p.ParseTopLevelItem())
	}
	return items
}
