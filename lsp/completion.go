package lsp

import (
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/token"
	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
)

// Completions returns the words that can be completed in a script: the fixed
// vocabulary of the language followed by the names the script defines. The
// script may be nil.
func Completions(script *ast.Script) []protocol.CompletionItem {
	var items []protocol.CompletionItem
	for _, kw := range token.Keywords {
		items = append(items, protocol.CompletionItem{
			Label:  kw,
			Kind:   protocol.KeywordCompletion,
			Detail: "keyword",
		})
	}
	for _, c := range token.Constants {
		items = append(items, protocol.CompletionItem{
			Label:  c,
			Kind:   protocol.ConstantCompletion,
			Detail: "constant",
		})
	}
	for _, fn := range token.KeywordFunctions {
		items = append(items, protocol.CompletionItem{
			Label:      fn,
			Kind:       protocol.FunctionCompletion,
			Detail:     "keyword function",
			InsertText: fn + " ",
		})
	}
	if script == nil {
		return items
	}

	seen := map[string]bool{}
	add := func(item protocol.CompletionItem) {
		key := strings.ToLower(item.Label)
		if seen[key] {
			return
		}
		seen[key] = true
		items = append(items, item)
	}
	handlers := script.Handlers()
	for _, h := range handlers {
		add(protocol.CompletionItem{
			Label:      h.Name.Name,
			Kind:       protocol.FunctionCompletion,
			Detail:     strings.TrimSpace("on " + h.Name.Name + " " + strings.Join(h.ParamNames(), ", ")),
			InsertText: h.Name.Name + "()",
		})
	}
	for n := range ast.Preorder(script) {
		if g, ok := n.(*ast.Global); ok {
			for _, name := range g.Names {
				add(protocol.CompletionItem{
					Label:  name.Name,
					Kind:   protocol.VariableCompletion,
					Detail: "global",
				})
			}
		}
	}
	for _, h := range handlers {
		for _, p := range h.Params {
			add(protocol.CompletionItem{
				Label:  p.Name,
				Kind:   protocol.VariableCompletion,
				Detail: "parameter of " + h.Name.Name,
			})
		}
	}
	return items
}
