package parser

import (
	"fmt"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
)

// Statement parsing methods for the Parser.
// Statement forms are tried in a fixed order and the first match wins:
// return, exit, case, repeat, if, assignment, global, bare expression.
// The keyword led forms commit once their keyword is read, so an error inside
// them is reported instead of falling through to the later forms.

func (p *Parser) parseStatement() (ast.Stmt, bool) {
	if !p.enter("statement") {
		return nil, false
	}
	start := p.pos
	stmt, ok := p.statement()
	if !ok {
		p.pos = start
	}
	p.leave("statement", ok)
	return stmt, ok
}

func (p *Parser) statement() (ast.Stmt, bool) {
	switch {
	case p.peekWord("return"):
		return p.parseReturn()
	case p.peekWord("exit"):
		return p.parseExit()
	case p.peekWord("case"):
		return p.parseCase()
	case p.peekWord("repeat"):
		return p.parseRepeat()
	case p.peekWord("if"):
		return p.parseIf()
	}

	start := p.pos
	if stmt, ok := p.parseAssign(); ok {
		return stmt, true
	}
	p.pos = start
	if p.aborted() {
		return nil, false
	}
	if p.peekWord("global") {
		g, ok := p.parseGlobal()
		if !ok {
			return nil, false
		}
		return g, true
	}
	x, ok := p.parseExpr(true)
	if !ok {
		return nil, false
	}
	return &ast.ExprStmt{X: x}, true
}

// parseBlock parses a run of statements, each followed by a line terminator.
// The block stops, without consuming it, at the first line that does not
// parse as a statement; that is how "end", "else" and case labels close it.
func (p *Parser) parseBlock(inCase bool) *ast.Block {
	p.skipLines()
	block := &ast.Block{From: p.position(p.pos)}
	if !p.enter("block") {
		return block
	}
	for !p.atEOF() && !p.cancelled() {
		if inCase && p.atCaseBoundary() {
			break
		}
		save := p.pos
		stmt, ok := p.parseStatement()
		if !ok || !p.stmtEnd(inCase) {
			p.pos = save
			break
		}
		block.Stmts = append(block.Stmts, stmt)
		p.skipLines()
	}
	p.leave("block", true)
	return block
}

func (p *Parser) parseReturn() (ast.Stmt, bool) {
	ret := &ast.Return{ReturnPos: p.position(p.pos)}
	p.word("return")
	if p.atLineEnd() || p.atClosingWord() {
		return ret, true
	}
	value, ok := p.parseExpr(true)
	if !ok {
		return nil, false
	}
	ret.Value = value
	return ret, true
}

func (p *Parser) parseExit() (ast.Stmt, bool) {
	pos := p.position(p.pos)
	p.word("exit")
	if p.word("repeat") {
		return &ast.ExitRepeat{ExitPos: pos}, true
	}
	return &ast.Exit{ExitPos: pos}, true
}

// parseIf parses an if statement with any number of "else if" arms. The arms
// are folded right to left into nested Ifs, each the only statement of the
// enclosing else block. A missing else becomes an empty block.
func (p *Parser) parseIf() (ast.Stmt, bool) {
	if !p.enter("if") {
		return nil, false
	}
	stmt, ok := p.ifStatement()
	p.leave("if", ok)
	return stmt, ok
}

func (p *Parser) ifStatement() (ast.Stmt, bool) {
	type arm struct {
		pos  int
		cond ast.Expr
		then *ast.Block
	}
	var arms []arm

	readArm := func() bool {
		pos := p.pos
		p.word("if")
		cond, ok := p.parseExpr(true)
		if !ok || !p.expectWord("then") {
			return false
		}
		arms = append(arms, arm{pos: pos, cond: cond, then: p.parseBlock(false)})
		return true
	}
	if !readArm() {
		return nil, false
	}

	var elseBlock *ast.Block
	for {
		save := p.pos
		p.skipLines()
		if !p.word("else") {
			p.pos = save
			break
		}
		if p.peekWord("if") {
			if !readArm() {
				return nil, false
			}
			continue
		}
		elseBlock = p.parseBlock(false)
		break
	}

	p.skipLines()
	endPos := p.position(p.pos)
	if !p.expectWord("end") || !p.expectWord("if") {
		return nil, false
	}

	if elseBlock == nil {
		elseBlock = &ast.Block{From: endPos}
	}
	for i := len(arms) - 1; i > 0; i-- {
		nested := &ast.If{IfPos: p.position(arms[i].pos), Cond: arms[i].cond, Then: arms[i].then, Else: elseBlock}
		elseBlock = &ast.Block{From: nested.IfPos, Stmts: []ast.Stmt{nested}}
	}
	return &ast.If{IfPos: p.position(arms[0].pos), Cond: arms[0].cond, Then: arms[0].then, Else: elseBlock}, true
}

// parseCase parses a case statement. Each alternative has one or more
// labels; its block ends where the next label, "otherwise:" or "end" begins.
func (p *Parser) parseCase() (ast.Stmt, bool) {
	if !p.enter("case") {
		return nil, false
	}
	stmt, ok := p.caseStatement()
	p.leave("case", ok)
	return stmt, ok
}

func (p *Parser) caseStatement() (ast.Stmt, bool) {
	stmt := &ast.Case{CasePos: p.position(p.pos)}
	p.word("case")
	subject, ok := p.parseExpr(true)
	if !ok || !p.expectWord("of") {
		return nil, false
	}
	stmt.Subject = subject

	for !p.aborted() {
		p.skipLines()
		if p.peekWord("end") || p.peekWord("otherwise") {
			break
		}
		save := p.pos
		labels, ok := p.parseLabels()
		if !ok {
			p.pos = save
			break
		}
		stmt.Alts = append(stmt.Alts, &ast.CaseAlt{Labels: labels, Body: p.parseBlock(true)})
	}

	if p.word("otherwise") {
		if !p.expectChar(':') {
			return nil, false
		}
		stmt.Otherwise = p.parseBlock(false)
	}

	p.skipLines()
	if !p.expectWord("end") || !p.expectWord("case") {
		return nil, false
	}
	return stmt, true
}

// parseRepeat parses the three loop forms. Both "with" forms share the
// "with <name>" prefix; the list form is recognised by "in", the counter form
// by "=".
func (p *Parser) parseRepeat() (ast.Stmt, bool) {
	if !p.enter("repeat") {
		return nil, false
	}
	stmt, ok := p.repeatStatement()
	p.leave("repeat", ok)
	return stmt, ok
}

func (p *Parser) repeatStatement() (ast.Stmt, bool) {
	pos := p.position(p.pos)
	p.word("repeat")

	var stmt ast.Stmt
	switch {
	case p.word("while"):
		cond, ok := p.parseExpr(true)
		if !ok {
			return nil, false
		}
		stmt = &ast.RepeatWhile{RepeatPos: pos, Cond: cond, Body: p.parseBlock(false)}

	case p.word("with"):
		v, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		switch {
		case p.word("in"):
			list, ok := p.parseExpr(true)
			if !ok {
				return nil, false
			}
			stmt = &ast.RepeatWithList{RepeatPos: pos, Var: v, List: list, Body: p.parseBlock(false)}
		case p.char('='):
			start, ok := p.parseExpr(false)
			if !ok || !p.expectWord("to") {
				return nil, false
			}
			end, ok := p.parseExpr(true)
			if !ok {
				return nil, false
			}
			stmt = &ast.RepeatWithCounter{RepeatPos: pos, Var: v, Start: start, End: end, Body: p.parseBlock(false)}
		default:
			p.fail(p.pos, "'in' or '='")
			return nil, false
		}

	default:
		p.fail(p.pos, "'while' or 'with'")
		return nil, false
	}

	p.skipLines()
	if !p.expectWord("end") || !p.expectWord("repeat") {
		return nil, false
	}
	return stmt, true
}

// parseAssign parses "<target> = <value>". The target is read with the
// restricted grammar so that "=" is left to separate it from the value.
func (p *Parser) parseAssign() (ast.Stmt, bool) {
	start := p.pos
	target, ok := p.parseExpr(false)
	if !ok || !p.char('=') {
		return nil, false
	}
	if !assignable(target) {
		p.abort(errors.E1005, start, "assignment target",
			fmt.Sprintf("cannot assign to %s", target))
		return nil, false
	}
	value, ok := p.parseExpr(true)
	if !ok {
		return nil, false
	}
	return &ast.Assign{Target: target, Value: value}, true
}

// assignable reports whether x may appear on the left of an assignment.
func assignable(x ast.Expr) bool {
	switch x.(type) {
	case *ast.Ident, *ast.The, *ast.Prop, *ast.Index:
		return true
	}
	return false
}

func (p *Parser) parseGlobal() (*ast.Global, bool) {
	g := &ast.Global{GlobalPos: p.position(p.pos)}
	if !p.word("global") {
		return nil, false
	}
	first, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	g.Names = append(g.Names, first)
	for p.char(',') {
		name, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		g.Names = append(g.Names, name)
	}
	return g, true
}
