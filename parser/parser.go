// Package parser turns Lingo source text into the syntax tree defined by
// package ast.
//
// The parser is a hand-written backtracking recursive descent parser that
// works directly on the source bytes. Every rule either succeeds and leaves
// the cursor after the text it consumed, or fails and leaves the cursor where
// it started. Failures remember the deepest position any attempt reached, so
// the reported error points at the most specific problem.
//
// A Parser is created with New and then used by calling one of Script,
// Statement or Expression. The package level ParseScript, ParseStatement and
// ParseExpression functions are shorthands for that.
package parser

import (
	"context"
	"fmt"
	"sort"
	"unicode/utf8"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
	"github.com/drizzle-lingo/lingo/token"
)

// DefaultMaxDepth is the default maximum nesting depth for parsing.
const DefaultMaxDepth = 500

// ParseScript parses a complete script. The whole input must be consumed.
func ParseScript(ctx context.Context, src string, options ...Option) (*ast.Script, error) {
	return New(src, options...).Script(ctx)
}

// ParseStatement parses a single statement at the start of src. Input after
// the statement is ignored.
func ParseStatement(ctx context.Context, src string, options ...Option) (ast.Stmt, error) {
	return New(src, options...).Statement(ctx)
}

// ParseExpression parses a single expression at the start of src. Input after
// the expression is ignored.
func ParseExpression(ctx context.Context, src string, options ...Option) (ast.Expr, error) {
	return New(src, options...).Expression(ctx)
}

// Option is a configuration function for a Parser.
type Option func(*Parser)

// WithFilename sets the file name reported in positions and errors.
func WithFilename(filename string) Option {
	return func(p *Parser) {
		p.filename = filename
	}
}

// WithMaxDepth sets the maximum nesting depth for the parser.
// This prevents stack overflow on deeply nested input.
// The default is 500.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		p.maxDepth = depth
	}
}

// WithTracer attaches a tracer that is notified whenever a grammar rule is
// entered and left.
func WithTracer(t Tracer) Option {
	return func(p *Parser) {
		p.tracer = t
	}
}

// Parser holds the state of a single parse. Parsers share nothing, so
// separate inputs may be parsed concurrently by separate Parsers.
type Parser struct {
	// the Context supplied in the entry point call
	ctx context.Context

	src   string
	pos   int   // cursor, a byte offset into src
	lines []int // byte offsets of line starts

	filename string
	maxDepth int
	depth    int
	tracer   Tracer

	// Deepest failure seen so far. At equal depth the latest one wins.
	failed    bool
	failPos   int
	failLabel string

	// quiet suppresses failure recording during lookahead.
	quiet int

	// Errors that end the parse immediately.
	fatal  *SyntaxError
	ctxErr error
}

// New returns a Parser for the given source text.
func New(src string, options ...Option) *Parser {
	p := &Parser{
		src:      src,
		maxDepth: DefaultMaxDepth,
		lines:    []int{0},
	}
	for _, opt := range options {
		opt(p)
	}
	if p.maxDepth <= 0 {
		p.maxDepth = DefaultMaxDepth
	}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			p.lines = append(p.lines, i+1)
		}
	}
	return p
}

// Script parses the whole input as a script.
func (p *Parser) Script(ctx context.Context) (*ast.Script, error) {
	p.reset(ctx)
	script, ok := p.parseScript()
	if err := p.result(ok); err != nil {
		return nil, err
	}
	return script, nil
}

// Statement parses one statement, skipping any blank or comment lines
// before it.
func (p *Parser) Statement(ctx context.Context) (ast.Stmt, error) {
	p.reset(ctx)
	p.skipLines()
	stmt, ok := p.parseStatement()
	if err := p.result(ok); err != nil {
		return nil, err
	}
	return stmt, nil
}

// Expression parses one expression using the full grammar, where "=" is
// read as equality.
func (p *Parser) Expression(ctx context.Context) (ast.Expr, error) {
	p.reset(ctx)
	p.skipSpace()
	expr, ok := p.parseExpr(true)
	if err := p.result(ok); err != nil {
		return nil, err
	}
	return expr, nil
}

// Offset returns the byte offset where the last parse stopped.
func (p *Parser) Offset() int {
	return p.pos
}

func (p *Parser) reset(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	p.ctx = ctx
	p.pos = 0
	p.depth = 0
	p.quiet = 0
	p.failed = false
	p.failPos = 0
	p.failLabel = ""
	p.fatal = nil
	p.ctxErr = nil
}

// result turns the outcome of a parse into the error returned to callers.
func (p *Parser) result(ok bool) error {
	switch {
	case p.ctxErr != nil:
		return p.ctxErr
	case p.fatal != nil:
		return p.fatal
	case !ok:
		if !p.failed {
			p.fail(p.pos, "script")
		}
		return p.newError(p.failPos, p.failLabel, "", "")
	}
	return nil
}

// fail records that the grammar expected label at offset pos.
func (p *Parser) fail(pos int, label string) {
	if p.quiet > 0 {
		return
	}
	if !p.failed || pos >= p.failPos {
		p.failed = true
		p.failPos = pos
		p.failLabel = label
	}
}

// failFallback records label only when no failure at or beyond pos is known.
func (p *Parser) failFallback(pos int, label string) {
	if !p.failed || pos > p.failPos {
		p.fail(pos, label)
	}
}

// abort stops the parse with an error that no alternative can recover from.
func (p *Parser) abort(code errors.ErrorCode, pos int, label, message string) {
	if p.fatal != nil {
		return
	}
	p.fatal = p.newError(pos, label, message, code)
}

func (p *Parser) aborted() bool {
	return p.fatal != nil || p.ctxErr != nil
}

// cancelled checks if the parsing context has been cancelled.
func (p *Parser) cancelled() bool {
	if p.ctxErr != nil {
		return true
	}
	select {
	case <-p.ctx.Done():
		p.ctxErr = p.ctx.Err()
		return true
	default:
		return false
	}
}

// enter is called at the start of every traced rule. It enforces the nesting
// limit and reports false when the rule must not run.
func (p *Parser) enter(rule string) bool {
	if p.aborted() {
		return false
	}
	if p.depth >= p.maxDepth {
		p.abort(errors.E1009, p.pos, "nesting depth",
			fmt.Sprintf("maximum nesting depth of %d exceeded", p.maxDepth))
		return false
	}
	p.depth++
	if p.tracer != nil {
		p.tracer.Enter(rule, p.position(p.pos))
	}
	return true
}

func (p *Parser) leave(rule string, ok bool) {
	p.depth--
	if p.tracer != nil {
		p.tracer.Leave(rule, p.position(p.pos), ok)
	}
}

// position converts a byte offset into a Position.
func (p *Parser) position(offset int) token.Position {
	line := sort.Search(len(p.lines), func(i int) bool { return p.lines[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	start := p.lines[line]
	if offset > len(p.src) {
		offset = len(p.src)
	}
	return token.Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(p.src[start:offset]),
		File:   p.filename,
	}
}

// lineText returns the text of the given 0-based line without its newline.
func (p *Parser) lineText(line int) string {
	if line < 0 || line >= len(p.lines) {
		return ""
	}
	start := p.lines[line]
	end := len(p.src)
	if line+1 < len(p.lines) {
		end = p.lines[line+1] - 1
	}
	if end > start && p.src[end-1] == '\r' {
		end--
	}
	return p.src[start:end]
}
