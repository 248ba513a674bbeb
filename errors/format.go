package errors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// Formatter renders FormattedError values as source annotated blocks.
type Formatter struct {
	// UseColor enables ANSI color codes in output.
	UseColor bool
}

// NewFormatter creates a new error formatter.
func NewFormatter(useColor bool) *Formatter {
	return &Formatter{UseColor: useColor}
}

// The formatter decides on colors itself, so these ignore color.NoColor.
var (
	colorError     = forced(color.FgRed)
	colorErrorBold = forced(color.FgHiRed, color.Bold)
	colorCode      = forced(color.FgHiBlack)
	colorLocation  = forced(color.FgCyan)
	colorGutter    = forced(color.FgHiBlack)
	colorCaret     = forced(color.FgHiRed, color.Bold)
	colorHint      = forced(color.FgHiYellow)
	colorNote      = forced(color.FgHiBlue)
)

func forced(attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	c.EnableColor()
	return c
}

// FormattedError represents an error ready for display.
type FormattedError struct {
	Code        ErrorCode
	Kind        string // "error", "syntax error", "warning"
	Message     string
	Filename    string
	Line        int // 1-based; 0 when unknown
	Column      int // 1-based; 0 when unknown
	EndColumn   int // last underlined column, for multi-character underlines
	SourceLines []SourceLineEntry
	Hint        string // "Did you mean?" suggestion
	Note        string // additional context
}

// SourceLineEntry represents a line of source code with its number.
type SourceLineEntry struct {
	Number int
	Text   string
	IsMain bool // the line the error points at
}

// Format formats the error as a string.
func (f *Formatter) Format(err *FormattedError) string {
	return f.FormatWithPrefix(err, "")
}

// FormatWithPrefix formats the error with an optional prefix like "1/5",
// shown in brackets when the error has no code.
func (f *Formatter) FormatWithPrefix(err *FormattedError, prefix string) string {
	var b strings.Builder

	width := 2
	if err.Line >= 100 {
		width = len(strconv.Itoa(err.Line))
	}

	f.writeHeader(&b, err, prefix)
	f.writeLocation(&b, err, width)
	f.writeSource(&b, err, width)
	if err.Hint != "" {
		f.writeAnnotation(&b, colorHint, "hint: ", err.Hint, width, true)
	}
	if err.Note != "" {
		f.writeAnnotation(&b, colorNote, "note: ", err.Note, width, false)
	}
	return b.String()
}

// paint applies c to s when colors are enabled.
func (f *Formatter) paint(c *color.Color, s string) string {
	if !f.UseColor {
		return s
	}
	return c.Sprint(s)
}

func (f *Formatter) writeHeader(b *strings.Builder, err *FormattedError, prefix string) {
	label := "error"
	if err.Kind != "" {
		label = err.Kind
	}
	b.WriteString(f.paint(colorErrorBold, label))
	if err.Code != "" {
		b.WriteString(f.paint(colorCode, "["+string(err.Code)+"]"))
	} else if prefix != "" {
		b.WriteString(f.paint(colorCode, "["+prefix+"]"))
	}
	b.WriteString(f.paint(colorError, ": "))
	b.WriteString(err.Message)
	b.WriteString("\n")
}

func (f *Formatter) writeLocation(b *strings.Builder, err *FormattedError, width int) {
	if err.Line == 0 && err.Filename == "" {
		return
	}
	loc := err.Filename
	if err.Line > 0 {
		if loc != "" {
			loc += ":"
		}
		loc += fmt.Sprintf("%d:%d", err.Line, err.Column)
	}
	b.WriteString(strings.Repeat(" ", width))
	b.WriteString(f.paint(colorLocation, "-->"))
	b.WriteString(" ")
	b.WriteString(f.paint(colorLocation, loc))
	b.WriteString("\n")
}

func (f *Formatter) writeSource(b *strings.Builder, err *FormattedError, width int) {
	if len(err.SourceLines) == 0 {
		return
	}
	padding := strings.Repeat(" ", width)
	b.WriteString(padding)
	b.WriteString(f.paint(colorGutter, " |"))
	b.WriteString("\n")

	for _, line := range err.SourceLines {
		b.WriteString(f.paint(colorGutter, fmt.Sprintf("%*d | ", width, line.Number)))
		b.WriteString(line.Text)
		b.WriteString("\n")

		if !line.IsMain || err.Column <= 0 {
			continue
		}
		b.WriteString(padding)
		b.WriteString(f.paint(colorGutter, " | "))
		b.WriteString(strings.Repeat(" ", err.Column-1))
		n := 1
		if err.EndColumn > err.Column {
			n = err.EndColumn - err.Column + 1
		}
		b.WriteString(f.paint(colorCaret, strings.Repeat("^", n)))
		b.WriteString("\n")
	}
}

func (f *Formatter) writeAnnotation(b *strings.Builder, c *color.Color, label, text string, width int, spacer bool) {
	padding := strings.Repeat(" ", width)
	if spacer {
		b.WriteString(padding)
		b.WriteString(f.paint(colorGutter, " |"))
		b.WriteString("\n")
	}
	b.WriteString(padding)
	b.WriteString(f.paint(colorGutter, " = "))
	b.WriteString(f.paint(c, label))
	b.WriteString(text)
	b.WriteString("\n")
}

// FormatMultiple formats multiple errors with consistent styling, numbering
// them and appending a summary line when there is more than one.
func (f *Formatter) FormatMultiple(errs []*FormattedError) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return f.Format(errs[0])
	}

	var b strings.Builder
	total := len(errs)
	for i, err := range errs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.FormatWithPrefix(err, fmt.Sprintf("%d/%d", i+1, total)))
	}
	b.WriteString("\n")
	b.WriteString(f.paint(colorErrorBold, fmt.Sprintf("found %d errors", total)))
	b.WriteString("\n")
	return b.String()
}
