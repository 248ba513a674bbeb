package parser

import (
	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/token"
)

// Expression parsing methods for the Parser.
// The grammar is layered by precedence tier:
//
//	comparison  <= <> < >= > contains starts (and = in the full grammar)
//	concat      && &
//	subtract    -
//	product     + * / and or mod
//	unary       - not
//	postfix     .name(args) .name [index]
//	primary
//
// Each binary tier is left-associative and parsed with a loop. Nested
// expressions always use the full grammar; only the outermost comparison
// tier of a restricted expression leaves "=" alone.

// parseExpr parses an expression. With full set, "=" is read as equality;
// otherwise it is left for the caller, as in the target of an assignment.
func (p *Parser) parseExpr(full bool) (ast.Expr, bool) {
	if !p.enter("expression") {
		return nil, false
	}
	start := p.pos
	x, ok := p.parseBinary(ast.TierComparison, full)
	if !ok {
		p.pos = start
	}
	p.leave("expression", ok)
	return x, ok
}

// parseBinary parses a left-associative chain of operators of one tier whose
// operands are expressions of the next tighter tier.
func (p *Parser) parseBinary(tier int, full bool) (ast.Expr, bool) {
	if tier < ast.TierProduct {
		return p.parseUnary()
	}
	x, ok := p.parseBinary(tier-1, full)
	if !ok {
		return nil, false
	}
	for {
		opPos := p.pos
		op, ok := p.matchOperator(tier, full)
		if !ok {
			return x, true
		}
		y, ok := p.parseBinary(tier-1, full)
		if !ok {
			return nil, false
		}
		x = &ast.Binary{X: x, OpPos: p.position(opPos), Op: op, Y: y}
	}
}

// parseUnary parses any number of prefix operators followed by a postfix
// expression. The operators are collected first and applied innermost last.
func (p *Parser) parseUnary() (ast.Expr, bool) {
	type prefix struct {
		pos int
		op  ast.UnaryOp
	}
	var ops []prefix
	for {
		if p.atNegate() {
			ops = append(ops, prefix{p.pos, ast.Negate})
			p.pos++
			p.skipSpace()
			continue
		}
		if at := p.pos; p.word("not") {
			ops = append(ops, prefix{at, ast.Not})
			continue
		}
		break
	}
	x, ok := p.parsePostfix()
	if !ok {
		return nil, false
	}
	for i := len(ops) - 1; i >= 0; i-- {
		x = &ast.Unary{OpPos: p.position(ops[i].pos), Op: ops[i].op, X: x}
	}
	return x, true
}

// parsePostfix parses a primary followed by any number of member calls,
// property accesses and index operations, applied left to right.
func (p *Parser) parsePostfix() (ast.Expr, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return nil, false
	}
	for {
		save := p.pos
		if p.char('.') {
			name, ok := p.expectIdent()
			if !ok {
				p.pos = save
				return x, true
			}
			afterName := p.pos
			if p.char('(') {
				if args, ok := p.parseExprList(')'); ok {
					x = &ast.MemberCall{X: x, Name: name.Name, Args: args}
					continue
				}
				p.pos = afterName
			}
			x = &ast.Prop{X: x, Name: name.Name}
			continue
		}
		if p.char('[') {
			index, ok := p.parseExpr(true)
			if !ok || !p.expectChar(']') {
				p.pos = save
				return x, true
			}
			x = &ast.Index{X: x, Index: index}
			continue
		}
		return x, true
	}
}

// parsePrimary tries each kind of primary term in order, backtracking after
// every failed attempt.
func (p *Parser) parsePrimary() (ast.Expr, bool) {
	start := p.pos
	alternatives := [...]func() (ast.Expr, bool){
		p.parseKeywordCall,
		p.parseGlobalCall,
		p.parseLiteral,
		p.parseThe,
		p.parseVariable,
		p.parseParens,
		p.parseBrackets,
		p.parseParamList,
	}
	for _, alt := range alternatives {
		if x, ok := alt(); ok {
			return x, true
		}
		p.pos = start
		if p.aborted() {
			return nil, false
		}
	}
	p.failFallback(start, "expression")
	return nil, false
}

// parseKeywordCall parses a call written without parentheses, such as
// "put x", into a Call of one argument.
func (p *Parser) parseKeywordCall() (ast.Expr, bool) {
	for _, name := range token.KeywordFunctions {
		pos := p.pos
		if !p.word(name) {
			continue
		}
		arg, ok := p.parseExpr(true)
		if !ok {
			return nil, false
		}
		return &ast.Call{NamePos: p.position(pos), Name: name, Args: []ast.Expr{arg}}, true
	}
	return nil, false
}

func (p *Parser) parseGlobalCall() (ast.Expr, bool) {
	name, ok := p.ident()
	if !ok || !p.char('(') {
		return nil, false
	}
	args, ok := p.parseExprList(')')
	if !ok {
		return nil, false
	}
	return &ast.Call{NamePos: name.NamePos, Name: name.Name, Args: args}, true
}

func (p *Parser) parseThe() (ast.Expr, bool) {
	pos := p.pos
	if !p.word("the") {
		return nil, false
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	return &ast.The{ThePos: p.position(pos), Name: name.Name}, true
}

func (p *Parser) parseVariable() (ast.Expr, bool) {
	id, ok := p.ident()
	if !ok {
		return nil, false
	}
	return id, true
}

func (p *Parser) parseParens() (ast.Expr, bool) {
	if !p.char('(') {
		return nil, false
	}
	x, ok := p.parseExpr(true)
	if !ok || !p.expectChar(')') {
		return nil, false
	}
	return x, true
}

// parseBrackets parses the bracketed literals: a property list such as
// [#a: 1] or the empty [:], and a linear list such as [1, 2] or the empty [].
// The first element decides which one it is, so the contents are read once.
func (p *Parser) parseBrackets() (ast.Expr, bool) {
	lbrack := p.position(p.pos)
	if !p.char('[') {
		return nil, false
	}
	if p.char(':') {
		if !p.expectChar(']') {
			return nil, false
		}
		return &ast.PropList{Lbrack: lbrack}, true
	}
	if p.char(']') {
		return &ast.List{Lbrack: lbrack}, true
	}

	first, ok := p.parseExpr(true)
	if !ok {
		return nil, false
	}
	if !p.char(':') {
		items := []ast.Expr{first}
		for p.char(',') {
			item, ok := p.parseExpr(true)
			if !ok {
				return nil, false
			}
			items = append(items, item)
		}
		if !p.expectChar(']') {
			return nil, false
		}
		return &ast.List{Lbrack: lbrack, Items: items}, true
	}

	value, ok := p.parseExpr(true)
	if !ok {
		return nil, false
	}
	pairs := []ast.Pair{{Key: first, Value: value}}
	for p.char(',') {
		pair, ok := p.parsePair()
		if !ok {
			return nil, false
		}
		pairs = append(pairs, pair)
	}
	if !p.expectChar(']') {
		return nil, false
	}
	return &ast.PropList{Lbrack: lbrack, Pairs: pairs}, true
}

func (p *Parser) parseParamList() (ast.Expr, bool) {
	lbrace := p.position(p.pos)
	if !p.char('{') {
		return nil, false
	}
	var pairs []ast.Pair
	if !p.char('}') {
		for {
			pair, ok := p.parsePair()
			if !ok {
				return nil, false
			}
			pairs = append(pairs, pair)
			if !p.char(',') {
				break
			}
		}
		if !p.expectChar('}') {
			return nil, false
		}
	}
	return &ast.ParamList{Lbrace: lbrace, Pairs: pairs}, true
}

func (p *Parser) parsePair() (ast.Pair, bool) {
	key, ok := p.parseExpr(true)
	if !ok || !p.expectChar(':') {
		return ast.Pair{}, false
	}
	value, ok := p.parseExpr(true)
	if !ok {
		return ast.Pair{}, false
	}
	return ast.Pair{Key: key, Value: value}, true
}

// parseExprList parses zero or more comma separated expressions followed by
// the closing character.
func (p *Parser) parseExprList(closing byte) ([]ast.Expr, bool) {
	var list []ast.Expr
	if p.char(closing) {
		return list, true
	}
	for {
		x, ok := p.parseExpr(true)
		if !ok {
			return nil, false
		}
		list = append(list, x)
		if !p.char(',') {
			break
		}
	}
	if !p.expectChar(closing) {
		return nil, false
	}
	return list, true
}

// parseLabels parses the label list of a case alternative: one or more comma
// separated expressions followed by ":".
func (p *Parser) parseLabels() ([]ast.Expr, bool) {
	labels, ok := p.parseExprList(':')
	if !ok || len(labels) == 0 {
		return nil, false
	}
	return labels, true
}
