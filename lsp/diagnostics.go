// Package lsp converts parser and validator results into Language Server
// Protocol values, for editors that host a Lingo language server.
package lsp

import (
	"context"
	stderrors "errors"
	"net/url"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/parser"
	"github.com/drizzle-lingo/lingo/syntax"
	"github.com/drizzle-lingo/lingo/token"
	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
)

// Source is reported as the origin of every diagnostic.
const Source = "lingo"

// Diagnostics parses and validates text and returns its problems. A script
// that does not parse yields a single diagnostic.
func Diagnostics(ctx context.Context, uri protocol.DocumentURI, text string) []protocol.Diagnostic {
	_, diags, _ := analyze(ctx, uri, text)
	return diags
}

func analyze(ctx context.Context, uri protocol.DocumentURI, text string) (*ast.Script, []protocol.Diagnostic, error) {
	diags := []protocol.Diagnostic{}
	var opts []parser.Option
	if name := filename(uri); name != "" {
		opts = append(opts, parser.WithFilename(name))
	}
	script, err := parser.ParseScript(ctx, text, opts...)
	if err != nil {
		var synErr *parser.SyntaxError
		if stderrors.As(err, &synErr) {
			diags = append(diags, syntaxDiagnostic(synErr))
		}
		return nil, diags, err
	}

	var verrs *syntax.ValidationErrors
	if stderrors.As(syntax.Validate(script), &verrs) {
		lines := strings.Split(text, "\n")
		for _, verr := range verrs.Errors {
			diags = append(diags, validationDiagnostic(verr, lines))
		}
	}
	return script, diags, nil
}

// filename returns the path of a file URI, or "" for other schemes.
func filename(uri protocol.DocumentURI) string {
	u, err := url.Parse(string(uri))
	if err != nil || u.Scheme != "file" {
		return ""
	}
	return u.Path
}

func syntaxDiagnostic(err *parser.SyntaxError) protocol.Diagnostic {
	fe := err.ToFormatted()
	line := uint32(err.Position.Line)
	start := utf16Column(err.SourceCode, fe.Column-1)
	end := utf16Column(err.SourceCode, max(fe.EndColumn, fe.Column))
	msg := err.Message
	if err.Hint != "" {
		msg += "\nhint: " + err.Hint
	}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: line, Character: start},
			End:   protocol.Position{Line: line, Character: end},
		},
		Severity: protocol.SeverityError,
		Code:     string(err.Code),
		Source:   Source,
		Message:  msg,
	}
}

// validationDiagnostic underlines the word the validation error points at.
func validationDiagnostic(err syntax.ValidationError, lines []string) protocol.Diagnostic {
	pos := err.Position
	var text string
	if pos.Line < len(lines) {
		text = strings.TrimSuffix(lines[pos.Line], "\r")
	}
	return protocol.Diagnostic{
		Range:    wordRange(text, pos),
		Severity: protocol.SeverityError,
		Code:     string(err.Code),
		Source:   Source,
		Message:  err.Message,
	}
}

func wordRange(text string, pos token.Position) protocol.Range {
	runes := []rune(text)
	end := pos.Column
	for end < len(runes) && token.IsIdentPart(runes[end]) {
		end++
	}
	if end == pos.Column {
		end++
	}
	line := uint32(pos.Line)
	return protocol.Range{
		Start: protocol.Position{Line: line, Character: utf16Column(text, pos.Column)},
		End:   protocol.Position{Line: line, Character: utf16Column(text, end)},
	}
}

// utf16Column converts a rune column of line to UTF-16 code units. Columns
// past the end of the line count one unit each.
func utf16Column(line string, column int) uint32 {
	var n, i int
	for _, r := range line {
		if i == column {
			return uint32(n)
		}
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
		i++
	}
	return uint32(n + column - i)
}
