package parser

import "github.com/drizzle-lingo/lingo/ast"

// operator is the spelling of a binary operator. Word operators only match
// on a word boundary, so "order" is an identifier rather than "or" + "der".
type operator struct {
	text string
	op   ast.BinaryOp
	word bool
}

// Operators per tier, loosest tier last. Within a table the longer spelling
// of a shared prefix comes first ("&&" before "&", "<=" before "<").
var (
	productOps = []operator{
		{"+", ast.Add, false},
		{"*", ast.Multiply, false},
		{"/", ast.Divide, false},
		{"and", ast.And, true},
		{"or", ast.Or, true},
		{"mod", ast.Mod, true},
	}
	concatOps = []operator{
		{"&&", ast.ConcatSpace, false},
		{"&", ast.Concat, false},
	}
	comparisonOps = []operator{
		{"<=", ast.LessThanOrEqual, false},
		{"<>", ast.NotEqual, false},
		{"<", ast.LessThan, false},
		{">=", ast.GreaterThanOrEqual, false},
		{">", ast.GreaterThan, false},
		{"contains", ast.Contains, true},
		{"starts", ast.Starts, true},
	}
	equalOp = operator{"=", ast.Equal, false}
)

// matchOperator consumes a binary operator of the given tier. Equality is
// part of the comparison tier only in the full grammar.
func (p *Parser) matchOperator(tier int, full bool) (ast.BinaryOp, bool) {
	switch tier {
	case ast.TierProduct:
		return p.matchOps(productOps)
	case ast.TierSubtract:
		if p.atSubtract() {
			p.pos++
			p.skipSpace()
			return ast.Subtract, true
		}
	case ast.TierConcat:
		return p.matchOps(concatOps)
	case ast.TierComparison:
		if op, ok := p.matchOps(comparisonOps); ok {
			return op, true
		}
		if full {
			return p.matchOps([]operator{equalOp})
		}
	}
	return 0, false
}

func (p *Parser) matchOps(ops []operator) (ast.BinaryOp, bool) {
	for _, o := range ops {
		if o.word {
			if p.word(o.text) {
				return o.op, true
			}
		} else if p.text(o.text) {
			return o.op, true
		}
	}
	return 0, false
}

// atSubtract reports whether a "-" at the cursor is a subtraction. Two dashes
// start a comment, so "x--y" is "x" followed by a comment.
func (p *Parser) atSubtract() bool {
	if p.peek() != '-' {
		return false
	}
	return p.pos+1 >= len(p.src) || p.src[p.pos+1] != '-'
}

// atNegate reports whether a "-" at the cursor is a prefix negation. A minus
// written directly before digits belongs to the number literal.
func (p *Parser) atNegate() bool {
	if !p.atSubtract() {
		return false
	}
	return p.pos+1 >= len(p.src) || !isDigit(p.src[p.pos+1])
}
