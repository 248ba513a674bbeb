package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorCode_Description(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "unexpected input"},
		{E1005, "invalid assignment target"},
		{E1009, "maximum nesting depth exceeded"},
		{E1011, "handler name mismatch"},
		{E2001, "exit repeat outside of a repeat loop"},
		{E2004, "global shadows parameter"},
		{ErrorCode("E9999"), "unknown error"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.Description())
		})
	}
}

func TestErrorCode_String(t *testing.T) {
	assert.Equal(t, "E1001", E1001.String())
	assert.Equal(t, "E2003", E2003.String())
}

func TestErrorCode_Category(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected string
	}{
		{E1001, "syntax"},
		{E1011, "syntax"},
		{E2001, "validation"},
		{E2004, "validation"},
		{ErrorCode("E"), "unknown"},
		{ErrorCode("E0001"), "unknown"},
		{ErrorCode("E3001"), "unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.code.Category())
		})
	}
}

func TestSuggestSimilar(t *testing.T) {
	keywords := []string{"then", "else", "end", "repeat", "otherwise", "while"}

	tests := []struct {
		name      string
		target    string
		wantCount int
		wantFirst string
	}{
		{"transposed letters", "tehn", 1, "then"},
		{"missing letter", "repat", 1, "repeat"},
		{"case insensitive", "OTHERWIZE", 1, "otherwise"},
		{"exact match excluded", "then", 0, ""},
		{"no close matches", "xyz", 0, ""},
		{"empty target", "", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suggestions := SuggestSimilar(tt.target, keywords)
			require.Len(t, suggestions, tt.wantCount)
			if tt.wantFirst != "" {
				assert.Equal(t, tt.wantFirst, suggestions[0].Value)
			}
		})
	}
}

func TestSuggestSimilar_ShortWordThreshold(t *testing.T) {
	suggestions := SuggestSimilar("ed", []string{"end", "on", "if"})
	require.Len(t, suggestions, 1)
	assert.Equal(t, "end", suggestions[0].Value)
}

func TestSuggestSimilar_MaxSuggestions(t *testing.T) {
	candidates := []string{"item1", "item2", "item3", "item4", "item5"}
	suggestions := SuggestSimilar("item", candidates)
	assert.Len(t, suggestions, MaxSuggestions)
	assert.Equal(t, "item1", suggestions[0].Value)
}

func TestFormatSuggestions(t *testing.T) {
	tests := []struct {
		name        string
		suggestions []Suggestion
		expected    string
	}{
		{"empty", nil, ""},
		{"single", []Suggestion{{Value: "then", Distance: 1}}, "did you mean 'then'?"},
		{
			"multiple",
			[]Suggestion{{Value: "end", Distance: 1}, {Value: "and", Distance: 1}},
			"did you mean one of: 'end', 'and'?",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatSuggestions(tt.suggestions))
		})
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"abc", "abcd", 1},
		{"kitten", "sitting", 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, levenshteinDistance(tt.a, tt.b))
		})
	}
}

func TestFormatter_Format(t *testing.T) {
	f := NewFormatter(false)

	result := f.Format(&FormattedError{
		Code:     E1001,
		Kind:     "syntax error",
		Message:  "expected 'then'",
		Filename: "movie.ls",
		Line:     3,
		Column:   9,
		SourceLines: []SourceLineEntry{
			{Number: 3, Text: "  if x > 1 thn", IsMain: true},
		},
	})

	assert.Contains(t, result, "syntax error[E1001]: expected 'then'")
	assert.Contains(t, result, "--> movie.ls:3:9")
	assert.Contains(t, result, " 3 |   if x > 1 thn")
	assert.Contains(t, result, "|         ^\n")
}

func TestFormatter_HintAndNote(t *testing.T) {
	f := NewFormatter(false)

	result := f.Format(&FormattedError{
		Message: "expected 'then'",
		Line:    1,
		Column:  1,
		Hint:    "did you mean 'then'?",
		Note:    "if statements need 'then' before the body",
	})
	assert.True(t, strings.HasPrefix(result, "error: "))
	assert.Contains(t, result, "= hint: did you mean 'then'?")
	assert.Contains(t, result, "= note: if statements need 'then' before the body")
}

func TestFormatter_NoLocation(t *testing.T) {
	f := NewFormatter(false)
	result := f.Format(&FormattedError{Message: "something went wrong"})
	assert.Equal(t, "error: something went wrong\n", result)
}

func TestFormatter_MultiCharUnderline(t *testing.T) {
	f := NewFormatter(false)
	result := f.Format(&FormattedError{
		Message:   "invalid assignment target",
		Line:      5,
		Column:    3,
		EndColumn: 7,
		SourceLines: []SourceLineEntry{
			{Number: 5, Text: "  f(x) = 1", IsMain: true},
		},
	})
	assert.Contains(t, result, "  ^^^^^\n")
}

func TestFormatter_LargeLineNumber(t *testing.T) {
	f := NewFormatter(false)
	result := f.Format(&FormattedError{
		Message: "test",
		Line:    1000,
		Column:  5,
		SourceLines: []SourceLineEntry{
			{Number: 1000, Text: "put x", IsMain: true},
		},
	})
	assert.Contains(t, result, "1000 | put x")
	assert.Contains(t, result, "    --> 1000:5")
}

func TestFormatter_FormatMultiple(t *testing.T) {
	f := NewFormatter(false)

	assert.Equal(t, "", f.FormatMultiple(nil))

	single := f.FormatMultiple([]*FormattedError{{Message: "test"}})
	assert.NotContains(t, single, "[1/1]")

	multiple := f.FormatMultiple([]*FormattedError{
		{Message: "first error"},
		{Message: "second error"},
	})
	assert.Contains(t, multiple, "error[1/2]: first error")
	assert.Contains(t, multiple, "error[2/2]: second error")
	assert.Contains(t, multiple, "found 2 errors")
}

func TestFormatter_WithColor(t *testing.T) {
	f := NewFormatter(true)
	result := f.Format(&FormattedError{Code: E1001, Message: "test error", Line: 1, Column: 1})
	assert.Contains(t, result, "\x1b[")
	assert.Contains(t, result, "test error")
}

type formattable struct{ msg string }

func (e formattable) Error() string { return e.msg }

func (e formattable) ToFormatted() *FormattedError {
	return &FormattedError{Kind: "syntax error", Message: e.msg}
}

func TestFormat(t *testing.T) {
	f := NewFormatter(false)
	assert.Equal(t, "syntax error: bad\n", Format(f, formattable{"bad"}))
	assert.Equal(t, "plain\n", Format(f, fmt.Errorf("plain")))
}
