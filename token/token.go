// Package token defines source positions and the fixed word tables of the
// Lingo script language.
package token

import (
	"fmt"
	"unicode"
)

// Position points to a particular location in an input string.
type Position struct {
	Offset int    // byte offset within the input
	Line   int    // 0-indexed line number
	Column int    // 0-indexed column number, counted in runes
	File   string // filename
}

// LineNumber returns the 1-indexed line number for this position in the input.
func (p Position) LineNumber() int {
	return p.Line + 1
}

// ColumnNumber returns the 1-indexed column number for this position in the input.
func (p Position) ColumnNumber() int {
	return p.Column + 1
}

// IsValid returns true if this position has been set.
func (p Position) IsValid() bool {
	return p.File != "" || p.Line > 0 || p.Column > 0 || p.Offset > 0
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.LineNumber(), p.ColumnNumber())
	}
	return fmt.Sprintf("%d:%d", p.LineNumber(), p.ColumnNumber())
}

// NoPos is the zero value Position, representing an invalid/unset position.
var NoPos = Position{}

// Keywords are the reserved words. These never parse as identifiers, although
// they may appear inside longer identifiers ("endTime", "ifNeeded").
var Keywords = []string{
	"end",
	"on",
	"case",
	"if",
	"global",
	"menu",
	"repeat",
	"next",
	"else",
	"otherwise",
}

var keywords = toSet(Keywords)

// Constants are the named constant words. They are matched by exact,
// case-sensitive text.
var Constants = []string{
	"TRUE",
	"FALSE",
	"VOID",
	"EMPTY",
	"BACKSPACE",
	"ENTER",
	"QUOTE",
	"RETURN",
	"SPACE",
	"TAB",
	"PI",
}

var constants = toSet(Constants)

func toSet(words []string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// KeywordFunctions are words that act as a call of one argument written
// without parentheses, e.g. "put x".
var KeywordFunctions = []string{
	"put",
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool {
	return keywords[s]
}

// IsConstant reports whether s is one of the named constants.
func IsConstant(s string) bool {
	return constants[s]
}

// IsKeywordFunction reports whether s is a keyword function name.
func IsKeywordFunction(s string) bool {
	for _, k := range KeywordFunctions {
		if k == s {
			return true
		}
	}
	return false
}

// IsIdentStart reports whether r may begin an identifier.
func IsIdentStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

// IsIdentPart reports whether r may continue an identifier.
func IsIdentPart(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
