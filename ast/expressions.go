package ast

import (
	"bytes"

	"github.com/drizzle-lingo/lingo/token"
)

// Ident is an expression node that refers to a variable by name. It is also
// used for handler, parameter and loop variable names.
type Ident struct {
	NamePos token.Position // position of identifier
	Name    string         // identifier name
}

func (x *Ident) exprNode() {}

func (x *Ident) Pos() token.Position { return x.NamePos }

func (x *Ident) String() string { return x.Name }

// The is an expression node for a "the <name>" pseudo-variable.
type The struct {
	ThePos token.Position // position of "the"
	Name   string         // property name
}

func (x *The) exprNode() {}

func (x *The) Pos() token.Position { return x.ThePos }

func (x *The) String() string { return "the " + x.Name }

// Call is an expression node for a call of a global handler or builtin:
// "name(a, b)". Keyword functions such as "put x" are also represented as a
// Call with a single argument.
type Call struct {
	NamePos token.Position // position of the function name
	Name    string         // function name
	Args    []Expr         // arguments in order
}

func (x *Call) exprNode() {}

func (x *Call) Pos() token.Position { return x.NamePos }

func (x *Call) String() string {
	return x.Name + "(" + joinExprs(x.Args) + ")"
}

// MemberCall is an expression node for a method call on a receiver:
// "x.name(a, b)".
type MemberCall struct {
	X    Expr   // receiver
	Name string // method name
	Args []Expr // arguments in order
}

func (x *MemberCall) exprNode() {}

func (x *MemberCall) Pos() token.Position { return x.X.Pos() }

func (x *MemberCall) String() string {
	return x.X.String() + "." + x.Name + "(" + joinExprs(x.Args) + ")"
}

// Prop is an expression node for a property access: "x.name".
type Prop struct {
	X    Expr   // receiver
	Name string // property name
}

func (x *Prop) exprNode() {}

func (x *Prop) Pos() token.Position { return x.X.Pos() }

func (x *Prop) String() string { return x.X.String() + "." + x.Name }

// Index is an expression node for an index access: "x[i]".
type Index struct {
	X     Expr // receiver
	Index Expr // index expression
}

func (x *Index) exprNode() {}

func (x *Index) Pos() token.Position { return x.X.Pos() }

func (x *Index) String() string {
	return x.X.String() + "[" + x.Index.String() + "]"
}

// Unary is an operator expression where the operator precedes the operand.
type Unary struct {
	OpPos token.Position // position of operator
	Op    UnaryOp        // operator
	X     Expr           // operand
}

func (x *Unary) exprNode() {}

func (x *Unary) Pos() token.Position { return x.OpPos }

func (x *Unary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.Op.String())
	if x.Op == Not {
		out.WriteString(" ")
	}
	out.WriteString(x.X.String())
	out.WriteString(")")
	return out.String()
}

// Binary is an operator expression where the operator is between the operands.
type Binary struct {
	X     Expr           // left operand
	OpPos token.Position // position of operator
	Op    BinaryOp       // operator
	Y     Expr           // right operand
}

func (x *Binary) exprNode() {}

func (x *Binary) Pos() token.Position { return x.X.Pos() }

func (x *Binary) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(x.X.String())
	out.WriteString(" " + x.Op.String() + " ")
	out.WriteString(x.Y.String())
	out.WriteString(")")
	return out.String()
}

// UnaryOp identifies a prefix operator.
type UnaryOp int

const (
	Negate UnaryOp = iota // -
	Not                   // not
)

func (op UnaryOp) String() string {
	switch op {
	case Negate:
		return "-"
	case Not:
		return "not"
	}
	return "?"
}

// BinaryOp identifies an infix operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Multiply
	Divide
	And
	Or
	Mod
	Subtract
	ConcatSpace
	Concat
	LessThan
	LessThanOrEqual
	NotEqual
	GreaterThan
	GreaterThanOrEqual
	Contains
	Starts
	Equal
)

var binaryOpText = [...]string{
	Add:                "+",
	Multiply:           "*",
	Divide:             "/",
	And:                "and",
	Or:                 "or",
	Mod:                "mod",
	Subtract:           "-",
	ConcatSpace:        "&&",
	Concat:             "&",
	LessThan:           "<",
	LessThanOrEqual:    "<=",
	NotEqual:           "<>",
	GreaterThan:        ">",
	GreaterThanOrEqual: ">=",
	Contains:           "contains",
	Starts:             "starts",
	Equal:              "=",
}

func (op BinaryOp) String() string {
	if op < 0 || int(op) >= len(binaryOpText) {
		return "?"
	}
	return binaryOpText[op]
}

// Binary operator tiers, from tightest to loosest binding. Operators within a
// tier are left-associative. Note the product tier deliberately mixes
// arithmetic and logical operators: "1 + 2 * 3" groups as "(1 + 2) * 3".
const (
	TierProduct    = 2 // + * / and or mod
	TierSubtract   = 3 // -
	TierConcat     = 4 // && &
	TierComparison = 5 // <= <> < >= > contains starts =
)

// Tier returns the precedence tier of the operator.
func (op BinaryOp) Tier() int {
	switch op {
	case Add, Multiply, Divide, And, Or, Mod:
		return TierProduct
	case Subtract:
		return TierSubtract
	case ConcatSpace, Concat:
		return TierConcat
	}
	return TierComparison
}
