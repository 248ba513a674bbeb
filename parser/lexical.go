package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/token"
)

// Every token matcher below consumes the whitespace and line continuations
// that follow a successful match, so each rule starts on a clean token.

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r'
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func (p *Parser) atEOF() bool {
	return p.pos >= len(p.src)
}

func (p *Parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// skipSpace consumes insignificant whitespace and line continuations. A
// continuation is a backslash followed by optional whitespace and a newline;
// the indentation of the continued line is consumed with it.
func (p *Parser) skipSpace() {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if isSpace(c) {
			p.pos++
			continue
		}
		if c == '\\' {
			j := p.pos + 1
			for j < len(p.src) && isSpace(p.src[j]) {
				j++
			}
			if j < len(p.src) && p.src[j] == '\n' {
				p.pos = j + 1
				continue
			}
		}
		return
	}
}

func (p *Parser) atComment() bool {
	return strings.HasPrefix(p.src[p.pos:], "--")
}

// skipComment moves the cursor to the newline ending the current comment.
func (p *Parser) skipComment() {
	if i := strings.IndexByte(p.src[p.pos:], '\n'); i >= 0 {
		p.pos += i
	} else {
		p.pos = len(p.src)
	}
}

// skipLines skips blank lines, comment-only lines and the indentation of the
// next non-blank line.
func (p *Parser) skipLines() {
	for {
		p.skipSpace()
		if p.atComment() {
			p.skipComment()
		}
		if p.peek() != '\n' {
			return
		}
		p.pos++
	}
}

// endLine consumes a line terminator: optional whitespace, an optional
// comment and a newline. The end of the input also terminates a line.
func (p *Parser) endLine() bool {
	save := p.pos
	p.skipSpace()
	if p.atComment() {
		p.skipComment()
	}
	if p.atEOF() {
		return true
	}
	if p.peek() == '\n' {
		p.pos++
		return true
	}
	p.fail(p.pos, "end of line")
	p.pos = save
	return false
}

// atLineEnd reports whether nothing but a terminator follows on this line.
func (p *Parser) atLineEnd() bool {
	save := p.pos
	p.quiet++
	ok := p.endLine()
	p.quiet--
	p.pos = save
	return ok
}

// atClosingWord reports whether the cursor is on a word that closes the
// enclosing block. Blocks written on one line end this way, as in
// "if a then b = 1 end if".
func (p *Parser) atClosingWord() bool {
	return p.peekWord("end") || p.peekWord("else") || p.peekWord("otherwise")
}

// atCaseBoundary reports whether the cursor is at the start of something that
// ends a case alternative: "end", "otherwise:" or a new label list.
func (p *Parser) atCaseBoundary() bool {
	if p.peekWord("end") {
		return true
	}
	save := p.pos
	p.quiet++
	defer func() {
		p.quiet--
		p.pos = save
	}()
	if p.word("otherwise") {
		return p.char(':')
	}
	_, ok := p.parseLabels()
	return ok
}

// stmtEnd consumes what may follow a statement inside a block. A closing
// word, or a case label inside a case body, is accepted but not consumed.
func (p *Parser) stmtEnd(inCase bool) bool {
	if p.atClosingWord() {
		return true
	}
	if inCase && p.atCaseBoundary() {
		return true
	}
	return p.endLine()
}

func (p *Parser) char(c byte) bool {
	if p.atEOF() || p.src[p.pos] != c {
		return false
	}
	p.pos++
	p.skipSpace()
	return true
}

func (p *Parser) expectChar(c byte) bool {
	if p.char(c) {
		return true
	}
	p.fail(p.pos, "'"+string(c)+"'")
	return false
}

// text matches an operator spelled with symbols, such as "<=".
func (p *Parser) text(s string) bool {
	if !strings.HasPrefix(p.src[p.pos:], s) {
		return false
	}
	p.pos += len(s)
	p.skipSpace()
	return true
}

// peekWord reports whether the word w starts at the cursor and is not just
// the prefix of a longer identifier.
func (p *Parser) peekWord(w string) bool {
	if !strings.HasPrefix(p.src[p.pos:], w) {
		return false
	}
	end := p.pos + len(w)
	if end < len(p.src) {
		r, _ := utf8.DecodeRuneInString(p.src[end:])
		if token.IsIdentPart(r) {
			return false
		}
	}
	return true
}

func (p *Parser) word(w string) bool {
	if !p.peekWord(w) {
		return false
	}
	p.pos += len(w)
	p.skipSpace()
	return true
}

func (p *Parser) expectWord(w string) bool {
	if p.word(w) {
		return true
	}
	p.fail(p.pos, "'"+w+"'")
	return false
}

// scanIdent returns the end offset of the identifier-shaped word at the
// cursor, or -1 if there is none.
func (p *Parser) scanIdent() int {
	r, size := utf8.DecodeRuneInString(p.src[p.pos:])
	if size == 0 || !token.IsIdentStart(r) {
		return -1
	}
	end := p.pos + size
	for end < len(p.src) {
		r, size = utf8.DecodeRuneInString(p.src[end:])
		if !token.IsIdentPart(r) {
			break
		}
		end += size
	}
	return end
}

// ident matches an identifier. Reserved words are not identifiers.
func (p *Parser) ident() (*ast.Ident, bool) {
	end := p.scanIdent()
	if end < 0 {
		return nil, false
	}
	name := p.src[p.pos:end]
	if token.IsKeyword(name) {
		return nil, false
	}
	id := &ast.Ident{NamePos: p.position(p.pos), Name: name}
	p.pos = end
	p.skipSpace()
	return id, true
}

func (p *Parser) expectIdent() (*ast.Ident, bool) {
	id, ok := p.ident()
	if !ok {
		p.fail(p.pos, labelIdentifier)
	}
	return id, ok
}

// identList matches zero or more comma separated identifiers.
func (p *Parser) identList() ([]*ast.Ident, bool) {
	first, ok := p.ident()
	if !ok {
		return nil, true
	}
	list := []*ast.Ident{first}
	for p.char(',') {
		id, ok := p.expectIdent()
		if !ok {
			return nil, false
		}
		list = append(list, id)
	}
	return list, true
}
