package parser

import (
	"fmt"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
)

// parseScript parses top-level items until the input is exhausted. Items are
// separated by line terminators; blank and comment lines may appear anywhere
// between them.
func (p *Parser) parseScript() (*ast.Script, bool) {
	if !p.enter("script") {
		return nil, false
	}
	script := &ast.Script{}
	for !p.cancelled() {
		p.skipLines()
		if p.atEOF() {
			break
		}
		save := p.pos
		item, ok := p.parseTopLevel()
		if !ok || !p.endLine() {
			p.pos = save
			break
		}
		script.Items = append(script.Items, item)
	}
	p.skipLines()
	ok := p.atEOF() && !p.aborted()
	if !ok {
		p.failFallback(p.pos, "script")
	}
	p.leave("script", ok)
	if !ok {
		return nil, false
	}
	return script, true
}

func (p *Parser) parseTopLevel() (ast.TopLevel, bool) {
	if p.peekWord("global") {
		g, ok := p.parseGlobal()
		if !ok {
			return nil, false
		}
		return g, true
	}
	h, ok := p.parseHandler()
	if !ok {
		return nil, false
	}
	return h, true
}

// parseHandler parses "on name params" followed by the body and "end". The
// name may be repeated after "end", in which case it must match.
func (p *Parser) parseHandler() (*ast.Handler, bool) {
	if !p.enter("handler") {
		return nil, false
	}
	start := p.pos
	h, ok := p.handler()
	if !ok {
		p.pos = start
	}
	p.leave("handler", ok)
	return h, ok
}

func (p *Parser) handler() (*ast.Handler, bool) {
	h := &ast.Handler{On: p.position(p.pos)}
	if !p.word("on") {
		p.fail(p.pos, "handler definition")
		return nil, false
	}
	name, ok := p.expectIdent()
	if !ok {
		return nil, false
	}
	h.Name = name

	if p.char('(') {
		h.Params, ok = p.identList()
		if !ok || !p.expectChar(')') {
			return nil, false
		}
	} else if h.Params, ok = p.identList(); !ok {
		return nil, false
	}
	if !p.endLine() {
		return nil, false
	}

	h.Body = p.parseBlock(false)
	p.skipLines()
	if !p.expectWord("end") {
		return nil, false
	}
	closing := p.pos
	if end, ok := p.ident(); ok && !strings.EqualFold(end.Name, name.Name) {
		p.abort(errors.E1011, closing, "'"+name.Name+"'",
			fmt.Sprintf("handler %q is closed by \"end %s\"", name.Name, end.Name))
		return nil, false
	}
	return h, true
}
