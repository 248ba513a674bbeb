package ast

import (
	"bytes"
	"strconv"

	"github.com/drizzle-lingo/lingo/token"
	"github.com/shopspring/decimal"
)

// Int is an expression node that holds an integer literal.
type Int struct {
	ValuePos token.Position // position of the literal
	Literal  string         // the literal text (e.g., "42", "-7")
	Value    int64          // the parsed value
}

func (x *Int) exprNode() {}

func (x *Int) Pos() token.Position { return x.ValuePos }

func (x *Int) String() string {
	if x.Literal != "" {
		return x.Literal
	}
	return strconv.FormatInt(x.Value, 10)
}

// Decimal is an expression node that holds a decimal literal. The value keeps
// the exact precision written in the source.
type Decimal struct {
	ValuePos token.Position  // position of the literal
	Literal  string          // the literal text
	Value    decimal.Decimal // the exact value
}

func (x *Decimal) exprNode() {}

func (x *Decimal) Pos() token.Position { return x.ValuePos }

func (x *Decimal) String() string {
	if x.Literal != "" {
		return x.Literal
	}
	return x.Value.String()
}

// Symbol is an expression node for a "#name" literal. Symbols compare
// case-insensitively, so Name is always lower case.
type Symbol struct {
	Hash token.Position // position of "#"
	Name string         // lower-cased symbol name
}

func (x *Symbol) exprNode() {}

func (x *Symbol) Pos() token.Position { return x.Hash }

func (x *Symbol) String() string { return "#" + x.Name }

// String is an expression node that holds a double-quoted string literal.
// The language has no escape sequences; Value is the raw text between quotes.
type String struct {
	ValuePos token.Position // position of the opening quote
	Value    string         // raw contents
}

func (x *String) exprNode() {}

func (x *String) Pos() token.Position { return x.ValuePos }

func (x *String) String() string { return `"` + x.Value + `"` }

// Constant is an expression node for one of the named constants such as
// TRUE, VOID or RETURN.
type Constant struct {
	NamePos token.Position // position of the constant
	Name    string         // the constant word, upper case
}

func (x *Constant) exprNode() {}

func (x *Constant) Pos() token.Position { return x.NamePos }

func (x *Constant) String() string { return x.Name }

// List is an expression node for a linear list literal: [a, b, c].
type List struct {
	Lbrack token.Position // position of "["
	Items  []Expr         // elements in order
}

func (x *List) exprNode() {}

func (x *List) Pos() token.Position { return x.Lbrack }

func (x *List) String() string {
	return "[" + joinExprs(x.Items) + "]"
}

// Pair is one key/value entry of a property or parameter list.
type Pair struct {
	Key   Expr
	Value Expr
}

func (p Pair) String() string {
	return p.Key.String() + ": " + p.Value.String()
}

// PropList is an expression node for a property list literal: [#a: 1, #b: 2].
// Keys may repeat and the source order of pairs is preserved. The empty
// property list is written "[:]".
type PropList struct {
	Lbrack token.Position // position of "["
	Pairs  []Pair
}

func (x *PropList) exprNode() {}

func (x *PropList) Pos() token.Position { return x.Lbrack }

func (x *PropList) String() string {
	if len(x.Pairs) == 0 {
		return "[:]"
	}
	return "[" + joinPairs(x.Pairs) + "]"
}

// ParamList is an expression node for a parameter list literal: {a: 1}.
type ParamList struct {
	Lbrace token.Position // position of "{"
	Pairs  []Pair
}

func (x *ParamList) exprNode() {}

func (x *ParamList) Pos() token.Position { return x.Lbrace }

func (x *ParamList) String() string {
	return "{" + joinPairs(x.Pairs) + "}"
}

func joinPairs(pairs []Pair) string {
	var out bytes.Buffer
	for i, p := range pairs {
		if i > 0 {
			out.WriteString(", ")
		}
		out.WriteString(p.String())
	}
	return out.String()
}
