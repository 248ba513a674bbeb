package parser

import (
	"strconv"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/token"
	"github.com/shopspring/decimal"
)

// Labels used when a specific literal shape was expected.
const (
	labelIdentifier = "identifier"
	labelInteger    = "integer in 64-bit range"
	labelQuote      = `'"'`
)

// parseLiteral matches a number, symbol, string or named constant.
func (p *Parser) parseLiteral() (ast.Expr, bool) {
	switch c := p.peek(); {
	case c == '-' || isDigit(c):
		return p.parseNumber()
	case c == '#':
		return p.parseSymbol()
	case c == '"':
		return p.parseString()
	}
	return p.parseConstant()
}

// parseNumber matches a decimal or, failing that, an integer. Both may carry
// a minus sign written directly before the digits.
func (p *Parser) parseNumber() (ast.Expr, bool) {
	start := p.pos
	i := start
	if i < len(p.src) && p.src[i] == '-' {
		i++
	}
	digits := i
	for i < len(p.src) && isDigit(p.src[i]) {
		i++
	}
	if i == digits {
		return nil, false
	}

	if i+1 < len(p.src) && p.src[i] == '.' && isDigit(p.src[i+1]) {
		i++
		for i < len(p.src) && isDigit(p.src[i]) {
			i++
		}
		lit := p.src[start:i]
		value, err := decimal.NewFromString(lit)
		if err != nil {
			p.fail(start, "decimal")
			return nil, false
		}
		p.pos = i
		p.skipSpace()
		return &ast.Decimal{ValuePos: p.position(start), Literal: lit, Value: value}, true
	}

	lit := p.src[start:i]
	value, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		p.fail(start, labelInteger)
		return nil, false
	}
	p.pos = i
	p.skipSpace()
	return &ast.Int{ValuePos: p.position(start), Literal: lit, Value: value}, true
}

// parseSymbol matches "#name". Symbols are case-insensitive, so the name is
// stored in lower case.
func (p *Parser) parseSymbol() (ast.Expr, bool) {
	start := p.pos
	if !p.strictChar('#') {
		return nil, false
	}
	id, ok := p.expectIdent()
	if !ok {
		p.pos = start
		return nil, false
	}
	return &ast.Symbol{Hash: p.position(start), Name: strings.ToLower(id.Name)}, true
}

// strictChar matches c without consuming the whitespace after it.
func (p *Parser) strictChar(c byte) bool {
	if p.atEOF() || p.src[p.pos] != c {
		return false
	}
	p.pos++
	return true
}

// parseString matches a double quoted string. There are no escapes, so the
// string runs to the next quote, across newlines if need be.
func (p *Parser) parseString() (ast.Expr, bool) {
	start := p.pos
	if !p.strictChar('"') {
		return nil, false
	}
	end := strings.IndexByte(p.src[p.pos:], '"')
	if end < 0 {
		p.fail(len(p.src), labelQuote)
		p.pos = start
		return nil, false
	}
	value := p.src[p.pos : p.pos+end]
	p.pos += end + 1
	p.skipSpace()
	return &ast.String{ValuePos: p.position(start), Value: value}, true
}

func (p *Parser) parseConstant() (ast.Expr, bool) {
	for _, name := range token.Constants {
		if p.peekWord(name) {
			pos := p.position(p.pos)
			p.word(name)
			return &ast.Constant{NamePos: pos, Name: name}, true
		}
	}
	return nil, false
}
