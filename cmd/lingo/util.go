package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	lingoerrors "github.com/drizzle-lingo/lingo/errors"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// Colors used by the tree printer and error output. They are enabled
// unconditionally here; palette decides whether to apply them.
var (
	red         = enabled(color.FgRed)
	green       = enabled(color.FgGreen)
	nodeColor   = enabled(color.FgHiCyan, color.Bold)
	valueColor  = enabled(color.FgYellow)
	mutedColor  = enabled(color.FgHiBlack)
	opColor     = enabled(color.FgMagenta)
	symbolColor = enabled(color.FgGreen)
)

func enabled(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

type palette struct {
	enabled bool
}

func (p palette) paint(c *color.Color, s string) string {
	if !p.enabled {
		return s
	}
	return c.Sprint(s)
}

// useColor reports whether output written to w should be colored.
func (a *app) useColor(w io.Writer) bool {
	if a.v.GetBool("no-color") || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printError writes err to the error output. Errors that carry source
// information are rendered as annotated blocks.
func (a *app) printError(err error) {
	useColor := a.useColor(a.errOut)
	var reported *reportedError
	if errors.As(err, &reported) {
		fmt.Fprintln(a.errOut, palette{useColor}.paint(red, reported.Error()))
		return
	}
	if _, ok := err.(lingoerrors.FormattableError); ok {
		fmt.Fprint(a.errOut, lingoerrors.Format(lingoerrors.NewFormatter(useColor), err))
		return
	}
	fmt.Fprintln(a.errOut, palette{useColor}.paint(red, err.Error()))
}

// reportedError is returned by commands that already printed the details of
// what went wrong; only its summary is shown again.
type reportedError struct {
	summary string
}

func (e *reportedError) Error() string {
	return e.summary
}

// readInput determines the source text of a command. There are three
// possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. path as args[0]
// It returns the source and a file name for positions, empty unless read
// from a file.
func (a *app) readInput(cmd *cobra.Command, args []string) (string, string, error) {
	codeSet := cmd.Flags().Changed("code")
	stdinSet, _ := cmd.Flags().GetBool("stdin")
	pathSupplied := len(args) > 0

	count := 0
	for _, set := range []bool{codeSet, stdinSet, pathSupplied} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", "", errors.New("no input provided")
	}

	switch {
	case stdinSet:
		data, err := io.ReadAll(a.in)
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	case pathSupplied:
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}
	code, _ := cmd.Flags().GetString("code")
	return code, "", nil
}

// sourceLine returns the 1-based line of src without its line terminator.
func sourceLine(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSuffix(lines[line-1], "\r")
}

func checkOutputFormat(format string) error {
	switch format {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown output format: %s", format)
}
