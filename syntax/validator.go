// Package syntax holds the checks that run after parsing. The parser accepts
// some scripts that are well formed but still wrong, such as "exit repeat"
// outside of a loop; the validators here report those.
package syntax

import (
	"fmt"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
	"github.com/drizzle-lingo/lingo/token"
)

// ValidationError represents a rule violation in a parsed script.
type ValidationError struct {
	Code     errors.ErrorCode // E2xxx
	Message  string           // description of the violation
	Node     ast.Node         // the offending node
	Position token.Position   // source location
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	pos := e.Position
	if pos.File != "" {
		return fmt.Sprintf("%s at %s:%d:%d", e.Message, pos.File, pos.LineNumber(), pos.ColumnNumber())
	}
	return fmt.Sprintf("%s at line %d, column %d", e.Message, pos.LineNumber(), pos.ColumnNumber())
}

// ToFormatted converts the validation error to a FormattedError for display.
// The source lines are left for the caller to fill in.
func (e *ValidationError) ToFormatted() *errors.FormattedError {
	return &errors.FormattedError{
		Code:     e.Code,
		Kind:     "error",
		Message:  e.Message,
		Filename: e.Position.File,
		Line:     e.Position.LineNumber(),
		Column:   e.Position.ColumnNumber(),
		Note:     e.Code.Description(),
	}
}

// ValidationErrors wraps multiple validation errors.
type ValidationErrors struct {
	Errors []ValidationError
}

// NewValidationErrors creates a ValidationErrors from a slice of errors.
func NewValidationErrors(errs []ValidationError) *ValidationErrors {
	return &ValidationErrors{Errors: errs}
}

// Error implements the error interface.
func (e *ValidationErrors) Error() string {
	switch len(e.Errors) {
	case 0:
		return "no validation errors"
	case 1:
		return e.Errors[0].Error()
	default:
		var b strings.Builder
		fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
		for _, err := range e.Errors {
			fmt.Fprintf(&b, "  - %s\n", err.Error())
		}
		return b.String()
	}
}

// Unwrap returns the individual errors for errors.Is/As.
func (e *ValidationErrors) Unwrap() []error {
	out := make([]error, 0, len(e.Errors))
	for i := range e.Errors {
		out = append(out, &e.Errors[i])
	}
	return out
}

// Validator inspects a script and returns validation errors.
// Validators must not modify the script.
type Validator interface {
	// Validate checks the script and returns any validation errors.
	// Multiple errors may be returned to show all violations at once.
	Validate(script *ast.Script) []ValidationError
}

// ValidatorFunc is an adapter to use a function as a Validator.
type ValidatorFunc func(*ast.Script) []ValidationError

// Validate implements the Validator interface.
func (f ValidatorFunc) Validate(s *ast.Script) []ValidationError {
	return f(s)
}
