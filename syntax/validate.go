package syntax

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/errors"
)

// Built-in validators.
var (
	// ExitRepeatInLoop reports "exit repeat" written outside of a repeat body.
	ExitRepeatInLoop Validator = ValidatorFunc(checkExitRepeat)

	// UniqueParams reports handler parameters that repeat an earlier name.
	UniqueParams Validator = ValidatorFunc(checkUniqueParams)

	// UniqueHandlers reports handlers defined more than once in a script.
	UniqueHandlers Validator = ValidatorFunc(checkUniqueHandlers)

	// GlobalShadowsParam reports a global declaration inside a handler that
	// names one of the handler's parameters.
	GlobalShadowsParam Validator = ValidatorFunc(checkGlobalShadowsParam)
)

// Defaults returns the built-in validators in the order Validate runs them.
func Defaults() []Validator {
	return []Validator{ExitRepeatInLoop, UniqueParams, UniqueHandlers, GlobalShadowsParam}
}

// Validate runs the validators over the script, or all built-in validators
// when none are given. It returns nil, or a *ValidationErrors holding every
// violation in source order.
func Validate(script *ast.Script, validators ...Validator) error {
	if len(validators) == 0 {
		validators = Defaults()
	}
	var errs []ValidationError
	for _, v := range validators {
		errs = append(errs, v.Validate(script)...)
	}
	if len(errs) == 0 {
		return nil
	}
	slices.SortStableFunc(errs, func(a, b ValidationError) int {
		return cmp.Compare(a.Position.Offset, b.Position.Offset)
	})
	return NewValidationErrors(errs)
}

// Names are case-insensitive, as in the language itself.
func fold(name string) string {
	return strings.ToLower(name)
}

type loopVisitor struct {
	inLoop bool
	errs   *[]ValidationError
}

func (v loopVisitor) Visit(node ast.Node) ast.Visitor {
	switch node.(type) {
	case *ast.ExitRepeat:
		if !v.inLoop {
			*v.errs = append(*v.errs, ValidationError{
				Code:     errors.E2001,
				Message:  "exit repeat is only allowed inside a repeat loop",
				Node:     node,
				Position: node.Pos(),
			})
		}
	case *ast.RepeatWhile, *ast.RepeatWithList, *ast.RepeatWithCounter:
		return loopVisitor{inLoop: true, errs: v.errs}
	case *ast.Handler:
		return loopVisitor{errs: v.errs}
	}
	return v
}

func checkExitRepeat(script *ast.Script) []ValidationError {
	var errs []ValidationError
	ast.Walk(loopVisitor{errs: &errs}, script)
	return errs
}

func checkUniqueParams(script *ast.Script) []ValidationError {
	var errs []ValidationError
	for _, h := range script.Handlers() {
		seen := make(map[string]bool, len(h.Params))
		for _, param := range h.Params {
			key := fold(param.Name)
			if seen[key] {
				errs = append(errs, ValidationError{
					Code:     errors.E2002,
					Message:  fmt.Sprintf("duplicate parameter %q in handler %q", param.Name, h.Name.Name),
					Node:     param,
					Position: param.Pos(),
				})
				continue
			}
			seen[key] = true
		}
	}
	return errs
}

func checkUniqueHandlers(script *ast.Script) []ValidationError {
	var errs []ValidationError
	first := map[string]*ast.Handler{}
	for _, h := range script.Handlers() {
		key := fold(h.Name.Name)
		if prev, ok := first[key]; ok {
			errs = append(errs, ValidationError{
				Code: errors.E2003,
				Message: fmt.Sprintf("handler %q is already defined at line %d",
					h.Name.Name, prev.Pos().LineNumber()),
				Node:     h,
				Position: h.Name.Pos(),
			})
			continue
		}
		first[key] = h
	}
	return errs
}

func checkGlobalShadowsParam(script *ast.Script) []ValidationError {
	var errs []ValidationError
	for _, h := range script.Handlers() {
		if len(h.Params) == 0 {
			continue
		}
		params := make(map[string]bool, len(h.Params))
		for _, p := range h.Params {
			params[fold(p.Name)] = true
		}
		ast.Inspect(h.Body, func(n ast.Node) bool {
			g, ok := n.(*ast.Global)
			if !ok {
				return true
			}
			for _, name := range g.Names {
				if params[fold(name.Name)] {
					errs = append(errs, ValidationError{
						Code: errors.E2004,
						Message: fmt.Sprintf("global %q shadows a parameter of handler %q",
							name.Name, h.Name.Name),
						Node:     name,
						Position: name.Pos(),
					})
				}
			}
			return false
		})
	}
	return errs
}
