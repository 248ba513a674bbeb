package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/drizzle-lingo/lingo/errors"
	"github.com/drizzle-lingo/lingo/token"
)

// ErrorOpts is a struct that holds a variety of error data.
// All fields are optional, although Label or Message is recommended. When
// Message is empty it is built from Label and Found.
type ErrorOpts struct {
	Code       errors.ErrorCode
	Label      string
	Message    string
	Found      string
	Hint       string
	Position   token.Position
	SourceCode string
}

// SyntaxError is the single failure kind of the parser. It points at the
// deepest position the parser reached and names what it expected there.
type SyntaxError struct {
	Code       errors.ErrorCode
	Label      string         // what the grammar expected, e.g. "identifier"
	Message    string         // human readable description
	Found      string         // description of the input at Position
	Hint       string         // optional suggestion
	Position   token.Position // 0-indexed; use LineNumber/ColumnNumber
	SourceCode string         // the source line containing Position
}

// NewSyntaxError returns a new SyntaxError populated with the given error data.
func NewSyntaxError(opts ErrorOpts) *SyntaxError {
	msg := opts.Message
	if msg == "" {
		msg = "expected " + opts.Label
		if opts.Found != "" {
			msg += ", found " + opts.Found
		}
	}
	code := opts.Code
	if code == "" {
		code = errors.E1001
	}
	return &SyntaxError{
		Code:       code,
		Label:      opts.Label,
		Message:    msg,
		Found:      opts.Found,
		Hint:       opts.Hint,
		Position:   opts.Position,
		SourceCode: opts.SourceCode,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s: syntax error: %s", e.Position, e.Message)
}

// Line returns the 1-based line of the error.
func (e *SyntaxError) Line() int {
	return e.Position.LineNumber()
}

// Column returns the 1-based column of the error.
func (e *SyntaxError) Column() int {
	return e.Position.ColumnNumber()
}

func (e *SyntaxError) FriendlyErrorMessage() string {
	return errors.NewFormatter(false).Format(e.ToFormatted())
}

// ToFormatted converts the syntax error to a FormattedError for display.
func (e *SyntaxError) ToFormatted() *errors.FormattedError {
	line, col := e.Line(), e.Column()
	end := col
	if strings.HasPrefix(e.Found, "'") && len(e.Found) > 2 {
		end = col + utf8.RuneCountInString(e.Found) - 3
	}
	fe := &errors.FormattedError{
		Code:      e.Code,
		Kind:      "syntax error",
		Message:   e.Message,
		Filename:  e.Position.File,
		Line:      line,
		Column:    col,
		EndColumn: end,
		Hint:      e.Hint,
	}
	if e.SourceCode != "" || e.Position.IsValid() {
		fe.SourceLines = []errors.SourceLineEntry{
			{Number: line, Text: e.SourceCode, IsMain: true},
		}
	}
	return fe
}

// newError builds the SyntaxError for a failure at byte offset pos. Empty
// message and code are derived from the input found there.
func (p *Parser) newError(pos int, label, message string, code errors.ErrorCode) *SyntaxError {
	position := p.position(pos)
	found := p.describe(pos)
	if code == "" {
		code = classify(label, pos >= len(p.src))
	}
	return NewSyntaxError(ErrorOpts{
		Code:       code,
		Label:      label,
		Message:    message,
		Found:      found,
		Hint:       p.hint(pos, label),
		Position:   position,
		SourceCode: p.lineText(position.Line),
	})
}

func classify(label string, atEOF bool) errors.ErrorCode {
	switch {
	case label == labelInteger:
		return errors.E1008
	case atEOF:
		return errors.E1007
	case label == labelIdentifier:
		return errors.E1006
	case label == "script" || label == "handler definition":
		return errors.E1003
	}
	return errors.E1001
}

// describe names the input at offset pos for use in messages.
func (p *Parser) describe(pos int) string {
	if pos >= len(p.src) {
		return "end of input"
	}
	switch p.src[pos] {
	case '\n':
		return "end of line"
	case '\r':
		if pos+1 < len(p.src) && p.src[pos+1] == '\n' {
			return "end of line"
		}
	}
	if w := p.wordAt(pos); w != "" {
		return "'" + w + "'"
	}
	r, _ := utf8.DecodeRuneInString(p.src[pos:])
	return "'" + string(r) + "'"
}

// wordAt returns the identifier-shaped word or digit run starting at pos.
func (p *Parser) wordAt(pos int) string {
	save := p.pos
	defer func() { p.pos = save }()
	p.pos = pos
	if end := p.scanIdent(); end > 0 {
		return p.src[pos:end]
	}
	end := pos
	for end < len(p.src) && isDigit(p.src[end]) {
		end++
	}
	return p.src[pos:end]
}

// hint suggests a fix when the input looks like a misspelling of the
// expected keyword or a reserved word used as a name.
func (p *Parser) hint(pos int, label string) string {
	w := p.wordAt(pos)
	if w == "" {
		return ""
	}
	if label == labelIdentifier {
		if token.IsKeyword(w) {
			return fmt.Sprintf("'%s' is a reserved word and cannot be used as a name", w)
		}
		return ""
	}
	if !strings.HasPrefix(label, "'") {
		return ""
	}
	var candidates []string
	for _, part := range strings.Split(label, " or ") {
		candidates = append(candidates, strings.Trim(part, "'"))
	}
	return errors.FormatSuggestions(errors.SuggestSimilar(w, candidates))
}
