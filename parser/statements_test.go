package parser

import (
	"context"
	"testing"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignments(t *testing.T) {
	tests := []struct {
		input    string
		target   string
		expected string
	}{
		{"x = 1", "x", "x = 1"},
		{"x = y = 1", "x", "x = (y = 1)"},
		{"total = total + n * 2", "total", "total = ((total + n) * 2)"},
		{"the itemDelimiter = \",\"", "the itemDelimiter", `the itemDelimiter = ","`},
		{"sprite.loc = [1, 2]", "sprite.loc", "sprite.loc = [1, 2]"},
		{"a.b.c = 3", "a.b.c", "a.b.c = 3"},
		{"list[i + 1] = VOID", "list[(i + 1)]", "list[(i + 1)] = VOID"},
		{"x=1", "x", "x = 1"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assign, ok := parseStmt(t, tt.input).(*ast.Assign)
			require.True(t, ok)
			assert.Equal(t, tt.target, assign.Target.String())
			assert.Equal(t, tt.expected, assign.String())
		})
	}
}

func TestInvalidAssignmentTarget(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"[1] = 2", "cannot assign to [1]"},
		{"f(x) = 2", "cannot assign to f(x)"},
		{"a.b(1) = 2", "cannot assign to a.b(1)"},
		{"1 = 2", "cannot assign to 1"},
		{"a + b = c", "cannot assign to (a + b)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseStatement(context.Background(), tt.input)
			synErr := syntaxErr(t, err)
			assert.Equal(t, errors.E1005, synErr.Code)
			assert.Equal(t, tt.message, synErr.Message)
			assert.Equal(t, 1, synErr.Column())
		})
	}
}

func TestExpressionStatements(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"f(1)", "f(1)"},
		{"put x", "put(x)"},
		{"sprite.move(1, 2)", "sprite.move(1, 2)"},
		{"x", "x"},
		{"a < b", "(a < b)"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			stmt, ok := parseStmt(t, tt.input).(*ast.ExprStmt)
			require.True(t, ok)
			assert.Equal(t, tt.expected, stmt.String())
		})
	}
}

func TestReturnStatement(t *testing.T) {
	ret, ok := parseStmt(t, "return").(*ast.Return)
	require.True(t, ok)
	assert.Nil(t, ret.Value)
	assert.Equal(t, "return", ret.String())

	ret, ok = parseStmt(t, "return -- done").(*ast.Return)
	require.True(t, ok)
	assert.Nil(t, ret.Value)

	ret, ok = parseStmt(t, "return x + 1").(*ast.Return)
	require.True(t, ok)
	assert.Equal(t, "(x + 1)", ret.Value.String())

	ret, ok = parseStmt(t, "return a = b").(*ast.Return)
	require.True(t, ok)
	assert.Equal(t, "(a = b)", ret.Value.String())

	// "returnValue" is an identifier, not a return statement.
	_, ok = parseStmt(t, "returnValue = 1").(*ast.Assign)
	assert.True(t, ok)
}

func TestExitStatements(t *testing.T) {
	_, ok := parseStmt(t, "exit").(*ast.Exit)
	assert.True(t, ok)

	_, ok = parseStmt(t, "exit repeat").(*ast.ExitRepeat)
	assert.True(t, ok)

	_, ok = parseStmt(t, "exit   repeat").(*ast.ExitRepeat)
	assert.True(t, ok)

	exit, ok := parseStmt(t, "exit repeater").(*ast.Exit)
	require.True(t, ok)
	assert.Equal(t, "exit", exit.String())
}

func TestGlobalStatement(t *testing.T) {
	g, ok := parseStmt(t, "global a, b,c").(*ast.Global)
	require.True(t, ok)
	require.Len(t, g.Names, 3)
	assert.Equal(t, "global a, b, c", g.String())
	assert.Equal(t, 12, g.Names[2].Pos().Column)

	_, err := ParseStatement(context.Background(), "global")
	synErr := syntaxErr(t, err)
	assert.Equal(t, labelIdentifier, synErr.Label)

	_, err = ParseStatement(context.Background(), "global a,")
	synErr = syntaxErr(t, err)
	assert.Equal(t, labelIdentifier, synErr.Label)
	assert.Equal(t, errors.E1007, synErr.Code)
}

func TestIfStatement(t *testing.T) {
	stmt := parseStmt(t, "if a > 1 then\n  b = 1\n  c = 2\nend if")
	ifStmt, ok := stmt.(*ast.If)
	require.True(t, ok)
	assert.Equal(t, "(a > 1)", ifStmt.Cond.String())
	assert.Equal(t, 2, ifStmt.Then.Len())
	require.NotNil(t, ifStmt.Else)
	assert.Equal(t, 0, ifStmt.Else.Len())
	assert.Equal(t, 4, ifStmt.Else.Pos().LineNumber())
	assert.Equal(t, "if (a > 1) then\n  b = 1\n  c = 2\nend if", ifStmt.String())
}

func TestIfElse(t *testing.T) {
	src := "if a then\n  x = 1\nelse\n  x = 2\n  y = 3\nend if"
	ifStmt, ok := parseStmt(t, src).(*ast.If)
	require.True(t, ok)
	assert.Equal(t, 1, ifStmt.Then.Len())
	assert.Equal(t, 2, ifStmt.Else.Len())
	_, isElseIf := ifStmt.ElseIf()
	assert.False(t, isElseIf)
}

func TestIfSingleLine(t *testing.T) {
	tests := []struct {
		input string
		then  int
		els   int
	}{
		{"if a then b = 1 end if", 1, 0},
		{"if a then\n  b = 1 end if", 1, 0},
		{"if a then b = 1\nelse c = 2\nend if", 1, 1},
		{"if a then return\nend if", 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ifStmt, ok := parseStmt(t, tt.input).(*ast.If)
			require.True(t, ok)
			assert.Equal(t, tt.then, ifStmt.Then.Len())
			assert.Equal(t, tt.els, ifStmt.Else.Len())
		})
	}
}

func TestElseIfChain(t *testing.T) {
	src := `if a then
  x = 1
else if b then
  x = 2
else if c then
  x = 3
else
  x = 4
end if`
	first, ok := parseStmt(t, src).(*ast.If)
	require.True(t, ok)
	assert.Equal(t, "a", first.Cond.String())

	second, ok := first.ElseIf()
	require.True(t, ok)
	assert.Equal(t, "b", second.Cond.String())
	assert.Equal(t, 3, second.Pos().LineNumber())
	assert.Equal(t, 6, second.Pos().ColumnNumber())

	third, ok := second.ElseIf()
	require.True(t, ok)
	assert.Equal(t, "c", third.Cond.String())
	assert.Equal(t, "x = 3", third.Then.Stmts[0].String())

	require.Equal(t, 1, third.Else.Len())
	assert.Equal(t, "x = 4", third.Else.Stmts[0].String())
	_, ok = third.ElseIf()
	assert.False(t, ok)
}

func TestElseIfWithoutElse(t *testing.T) {
	src := "if a then\n  x = 1\nelse if b then\n  x = 2\nend if"
	first, ok := parseStmt(t, src).(*ast.If)
	require.True(t, ok)
	second, ok := first.ElseIf()
	require.True(t, ok)
	assert.Equal(t, 0, second.Else.Len())
	assert.Equal(t, 5, second.Else.Pos().LineNumber())
}

func TestCaseStatement(t *testing.T) {
	src := `case x of
  1, 2: put "a"
  3:
    put "b"
    put "c"
  #sym, "str":
    nothing()
  otherwise: put "d"
end case`
	c, ok := parseStmt(t, src).(*ast.Case)
	require.True(t, ok)
	assert.Equal(t, "x", c.Subject.String())
	require.Len(t, c.Alts, 3)

	assert.Len(t, c.Alts[0].Labels, 2)
	assert.Equal(t, 1, c.Alts[0].Body.Len())
	assert.Equal(t, `put("a")`, c.Alts[0].Body.Stmts[0].String())

	assert.Len(t, c.Alts[1].Labels, 1)
	assert.Equal(t, 2, c.Alts[1].Body.Len())

	assert.Equal(t, `#sym`, c.Alts[2].Labels[0].String())
	assert.Equal(t, `"str"`, c.Alts[2].Labels[1].String())

	require.NotNil(t, c.Otherwise)
	assert.Equal(t, 1, c.Otherwise.Len())
}

func TestCaseWithoutOtherwise(t *testing.T) {
	c, ok := parseStmt(t, "case x of\n  1: y = 1\nend case").(*ast.Case)
	require.True(t, ok)
	assert.Len(t, c.Alts, 1)
	assert.Nil(t, c.Otherwise)

	c, ok = parseStmt(t, "case x of\nend case").(*ast.Case)
	require.True(t, ok)
	assert.Empty(t, c.Alts)
}

func TestCaseLabelsOnConsecutiveLines(t *testing.T) {
	src := "case x of\n  1:\n  2:\n    y = 2\nend case"
	c, ok := parseStmt(t, src).(*ast.Case)
	require.True(t, ok)
	require.Len(t, c.Alts, 2)
	assert.Equal(t, 0, c.Alts[0].Body.Len())
	assert.Equal(t, 1, c.Alts[1].Body.Len())
}

func TestRepeatWhile(t *testing.T) {
	loop, ok := parseStmt(t, "repeat while x < 10\n  x = x + 1\nend repeat").(*ast.RepeatWhile)
	require.True(t, ok)
	assert.Equal(t, "(x < 10)", loop.Cond.String())
	assert.Equal(t, 1, loop.Body.Len())
}

func TestRepeatWithList(t *testing.T) {
	loop, ok := parseStmt(t, "repeat with item in [1, 2]\nend repeat").(*ast.RepeatWithList)
	require.True(t, ok)
	assert.Equal(t, "item", loop.Var.Name)
	assert.Equal(t, "[1, 2]", loop.List.String())
	assert.Equal(t, 0, loop.Body.Len())
}

func TestRepeatWithCounter(t *testing.T) {
	loop, ok := parseStmt(t, "repeat with i = 1 to count(list)\n  put i\nend repeat").(*ast.RepeatWithCounter)
	require.True(t, ok)
	assert.Equal(t, "i", loop.Var.Name)
	assert.Equal(t, "1", loop.Start.String())
	assert.Equal(t, "count(list)", loop.End.String())

	// The end bound uses the full grammar.
	loop, ok = parseStmt(t, "repeat with i = a to b = c\nend repeat").(*ast.RepeatWithCounter)
	require.True(t, ok)
	assert.Equal(t, "(b = c)", loop.End.String())
}

func TestNestedLoopsWithExit(t *testing.T) {
	src := `repeat with i = 1 to 3
  repeat while TRUE
    if i > 2 then exit repeat
    end if
  end repeat
end repeat`
	outer, ok := parseStmt(t, src).(*ast.RepeatWithCounter)
	require.True(t, ok)
	inner, ok := outer.Body.Stmts[0].(*ast.RepeatWhile)
	require.True(t, ok)
	cond, ok := inner.Body.Stmts[0].(*ast.If)
	require.True(t, ok)
	_, ok = cond.Then.Stmts[0].(*ast.ExitRepeat)
	assert.True(t, ok)
}

func TestRepeatErrors(t *testing.T) {
	tests := []struct {
		input string
		label string
		code  errors.ErrorCode
	}{
		{"repeat with i", "'in' or '='", errors.E1007},
		{"repeat until x", "'while' or 'with'", errors.E1001},
		{"repeat with i = 1 2", "'to'", errors.E1001},
		{"repeat while x\n  y = 1\n", "'end'", errors.E1007},
		{"repeat while x\nend if", "'repeat'", errors.E1001},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseStatement(context.Background(), tt.input)
			synErr := syntaxErr(t, err)
			assert.Equal(t, tt.label, synErr.Label)
			assert.Equal(t, tt.code, synErr.Code)
		})
	}
}

func TestMisspelledKeyword(t *testing.T) {
	_, err := ParseStatement(context.Background(), "if x > 1 thn")
	synErr := syntaxErr(t, err)
	assert.Equal(t, "'then'", synErr.Label)
	assert.Equal(t, "'thn'", synErr.Found)
	assert.Equal(t, "expected 'then', found 'thn'", synErr.Message)
	assert.Equal(t, 10, synErr.Column())
	assert.Equal(t, "did you mean 'then'?", synErr.Hint)

	_, err = ParseStatement(context.Background(), "case x off\nend case")
	synErr = syntaxErr(t, err)
	assert.Equal(t, "'of'", synErr.Label)
	assert.Equal(t, "did you mean 'of'?", synErr.Hint)
}

func TestMissingOperand(t *testing.T) {
	_, err := ParseStatement(context.Background(), "x = \ny = 2")
	synErr := syntaxErr(t, err)
	assert.Equal(t, "expression", synErr.Label)
	assert.Equal(t, "end of line", synErr.Found)
	assert.Equal(t, "expected expression, found end of line", synErr.Message)
	assert.Equal(t, 5, synErr.Column())
}

func TestLineContinuation(t *testing.T) {
	plain := parseStmt(t, "x = 1 + 2 & \"s\"")
	continued := parseStmt(t, "x = 1 + \\\n    2 \\\n  & \"s\"")
	assert.Equal(t, plain.String(), continued.String())

	assign := continued.(*ast.Assign)
	bin := assign.Value.(*ast.Binary)
	assert.Equal(t, 3, bin.OpPos.LineNumber())
}

func TestStatementSkipsLeadingLines(t *testing.T) {
	stmt := parseStmt(t, "\n-- comment\n\n   x = 1")
	assert.Equal(t, 4, stmt.Pos().LineNumber())
	assert.Equal(t, 4, stmt.Pos().ColumnNumber())
}
