package parser

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const movieScript = `-- movie script
global gCount, gName

on startMovie
  gCount = 0
  repeat with i = 1 to 10
    gCount = gCount + i
  end repeat
end startMovie

on describe(item, level)
  case level of
    1, 2:
      put "low"
    3:
      put "high"
    otherwise:
      put "unknown"
  end case
  if item.name contains "x" then
    return #found
  else if level > 3 then
    return [#level: level, #name: item.name]
  end if
  return VOID
end describe
`

func parseScript(t *testing.T, src string) *ast.Script {
	t.Helper()
	script, err := ParseScript(context.Background(), src)
	require.NoError(t, err)
	return script
}

func parseStmt(t *testing.T, src string) ast.Stmt {
	t.Helper()
	stmt, err := ParseStatement(context.Background(), src)
	require.NoError(t, err)
	return stmt
}

func parseExpr(t *testing.T, src string) ast.Expr {
	t.Helper()
	expr, err := ParseExpression(context.Background(), src)
	require.NoError(t, err)
	return expr
}

func syntaxErr(t *testing.T, err error) *SyntaxError {
	t.Helper()
	require.Error(t, err)
	synErr, ok := err.(*SyntaxError)
	require.True(t, ok, "expected *SyntaxError, got %T", err)
	return synErr
}

func TestParseScript(t *testing.T) {
	script := parseScript(t, movieScript)
	require.Len(t, script.Items, 3)

	global, ok := script.Items[0].(*ast.Global)
	require.True(t, ok)
	assert.Equal(t, "global gCount, gName", global.String())

	handlers := script.Handlers()
	require.Len(t, handlers, 2)

	start := handlers[0]
	assert.Equal(t, "startMovie", start.Name.Name)
	assert.Empty(t, start.Params)
	require.Equal(t, 2, start.Body.Len())
	loop, ok := start.Body.Stmts[1].(*ast.RepeatWithCounter)
	require.True(t, ok)
	assert.Equal(t, "i", loop.Var.Name)
	assert.Equal(t, "1", loop.Start.String())
	assert.Equal(t, "10", loop.End.String())
	assert.Equal(t, "gCount = (gCount + i)", loop.Body.Stmts[0].String())

	describe := handlers[1]
	assert.Equal(t, []string{"item", "level"}, describe.ParamNames())
	require.Equal(t, 3, describe.Body.Len())

	caseStmt, ok := describe.Body.Stmts[0].(*ast.Case)
	require.True(t, ok)
	require.Len(t, caseStmt.Alts, 2)
	assert.Len(t, caseStmt.Alts[0].Labels, 2)
	require.NotNil(t, caseStmt.Otherwise)
	assert.Equal(t, `put("unknown")`, caseStmt.Otherwise.Stmts[0].String())

	ifStmt, ok := describe.Body.Stmts[1].(*ast.If)
	require.True(t, ok)
	assert.Equal(t, `(item.name contains "x")`, ifStmt.Cond.String())
	elseIf, ok := ifStmt.ElseIf()
	require.True(t, ok)
	assert.Equal(t, "(level > 3)", elseIf.Cond.String())
	assert.Equal(t, "return [#level: level, #name: item.name]", elseIf.Then.Stmts[0].String())
	assert.Equal(t, 0, elseIf.Else.Len())

	assert.Equal(t, "return VOID", describe.Body.Stmts[2].String())
}

func TestParseScriptPositions(t *testing.T) {
	script, err := ParseScript(context.Background(), movieScript, WithFilename("movie.ls"))
	require.NoError(t, err)

	global := script.Items[0].(*ast.Global)
	assert.Equal(t, "movie.ls:2:1", global.Pos().String())
	assert.Equal(t, "movie.ls:2:16", global.Names[1].Pos().String())

	describe := script.Handlers()[1]
	assert.Equal(t, 11, describe.Pos().LineNumber())
	assert.Equal(t, "movie.ls:12:3", describe.Body.Stmts[0].Pos().String())
	assert.Equal(t, "movie.ls:12:3", describe.Body.Pos().String())
}

func TestParseScriptEmpty(t *testing.T) {
	for _, src := range []string{"", "\n\n", "-- only a comment\n", "   \n\t-- x\n  "} {
		script := parseScript(t, src)
		assert.Empty(t, script.Items, "source %q", src)
	}
}

func TestParseScriptWithoutTrailingNewline(t *testing.T) {
	script := parseScript(t, "global a\non f\n  a = 1\nend f")
	require.Len(t, script.Items, 2)
}

func TestParseScriptCRLF(t *testing.T) {
	script := parseScript(t, "on f\r\n  a = 1\r\nend f\r\n")
	h := script.Handlers()[0]
	require.Equal(t, 1, h.Body.Len())
	assert.Equal(t, "a = 1", h.Body.Stmts[0].String())
}

func TestHandlerParams(t *testing.T) {
	tests := []struct {
		src    string
		params []string
	}{
		{"on f\nend f", []string{}},
		{"on f a\nend f", []string{"a"}},
		{"on f a, b, c\nend f", []string{"a", "b", "c"}},
		{"on f(a, b)\nend f", []string{"a", "b"}},
		{"on f()\nend f", []string{}},
		{"on f me, me\nend f", []string{"me", "me"}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			script := parseScript(t, tt.src)
			h := script.Handlers()[0]
			assert.Equal(t, "f", h.Name.Name)
			assert.Equal(t, tt.params, h.ParamNames())
		})
	}
}

func TestHandlerEndName(t *testing.T) {
	t.Run("omitted", func(t *testing.T) {
		parseScript(t, "on f\n  x = 1\nend\n")
	})
	t.Run("different case", func(t *testing.T) {
		parseScript(t, "on startMovie\nend startmovie\n")
	})
	t.Run("mismatch", func(t *testing.T) {
		_, err := ParseScript(context.Background(), "on foo\n  x = 1\nend bar\n")
		synErr := syntaxErr(t, err)
		assert.Equal(t, errors.E1011, synErr.Code)
		assert.Equal(t, 3, synErr.Line())
		assert.Equal(t, 5, synErr.Column())
		assert.Equal(t, `handler "foo" is closed by "end bar"`, synErr.Message)
	})
}

func TestParseScriptTrailingContent(t *testing.T) {
	_, err := ParseScript(context.Background(), "on f\nend f\nfoo\n")
	synErr := syntaxErr(t, err)
	assert.Equal(t, 3, synErr.Line())
	assert.Equal(t, 1, synErr.Column())
	assert.Equal(t, "handler definition", synErr.Label)
	assert.Equal(t, errors.E1003, synErr.Code)
}

func TestUnterminatedConstruct(t *testing.T) {
	t.Run("wrong closing word", func(t *testing.T) {
		src := "on f\n  if a then\n    b = 1\nend f\n"
		_, err := ParseScript(context.Background(), src)
		synErr := syntaxErr(t, err)
		assert.Equal(t, "'if'", synErr.Label)
		assert.Equal(t, 4, synErr.Line())
		assert.Equal(t, 5, synErr.Column())
	})
	t.Run("end of input", func(t *testing.T) {
		src := "on f\n  if a then\n    b = 1\n"
		_, err := ParseScript(context.Background(), src)
		synErr := syntaxErr(t, err)
		assert.Equal(t, "'end'", synErr.Label)
		assert.Equal(t, errors.E1007, synErr.Code)
		assert.Equal(t, "end of input", synErr.Found)
		assert.GreaterOrEqual(t, synErr.Line(), 2)
	})
}

func TestDeterminism(t *testing.T) {
	first := parseScript(t, movieScript)
	second := parseScript(t, movieScript)
	assert.Equal(t, first, second)
	assert.Equal(t, first.String(), second.String())
}

func TestParserReuse(t *testing.T) {
	p := New("x + 1")
	first, err := p.Expression(context.Background())
	require.NoError(t, err)
	second, err := p.Expression(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 5, p.Offset())
}

func TestPartialConsumption(t *testing.T) {
	p := New("a + b c d")
	expr, err := p.Expression(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "(a + b)", expr.String())
	assert.Equal(t, 6, p.Offset())

	stmt := parseStmt(t, "x = 1\ny = 2")
	assert.Equal(t, "x = 1", stmt.String())
}

func TestConcurrentParsers(t *testing.T) {
	var wg sync.WaitGroup
	results := make([]string, 16)
	errs := make([]error, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			script, err := ParseScript(context.Background(), movieScript)
			errs[i] = err
			if err == nil {
				results[i] = script.String()
			}
		}(i)
	}
	wg.Wait()
	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseScript(ctx, movieScript)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMaxDepth(t *testing.T) {
	nested := func(n int) string {
		return strings.Repeat("(", n) + "1" + strings.Repeat(")", n)
	}

	expr, err := ParseExpression(context.Background(), nested(100))
	require.NoError(t, err)
	assert.Equal(t, "1", expr.String())

	_, err = ParseExpression(context.Background(), nested(10), WithMaxDepth(5))
	synErr := syntaxErr(t, err)
	assert.Equal(t, errors.E1009, synErr.Code)
	assert.Equal(t, "maximum nesting depth of 5 exceeded", synErr.Message)

	_, err = ParseExpression(context.Background(), nested(DefaultMaxDepth+10))
	synErr = syntaxErr(t, err)
	assert.Equal(t, errors.E1009, synErr.Code)
}

func TestMaxDepthStatements(t *testing.T) {
	var b strings.Builder
	b.WriteString("on f\n")
	for i := 0; i < 50; i++ {
		b.WriteString("if a then\n")
	}
	for i := 0; i < 50; i++ {
		b.WriteString("end if\n")
	}
	b.WriteString("end f\n")

	_, err := ParseScript(context.Background(), b.String())
	require.NoError(t, err)

	_, err = ParseScript(context.Background(), b.String(), WithMaxDepth(40))
	assert.Equal(t, errors.E1009, syntaxErr(t, err).Code)
}

func ExampleParseExpression() {
	expr, err := ParseExpression(context.Background(), "1 + 2 * 3")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(expr)
	// Output: ((1 + 2) * 3)
}
