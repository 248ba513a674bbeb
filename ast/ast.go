// Package ast defines the abstract syntax tree representation of Lingo code.
//
// The node set is closed: every node type lives in this package and the Expr,
// Stmt and TopLevel interfaces are sealed with unexported marker methods.
// Consumers are expected to switch over the concrete types exhaustively.
// Nodes are built once by the parser and never modified afterwards.
package ast

import (
	"bytes"
	"strings"

	"github.com/drizzle-lingo/lingo/token"
)

// Node represents a portion of the syntax tree. All nodes have position
// information indicating where they appear in the source code.
type Node interface {
	// Pos returns the position of the first character belonging to the node.
	Pos() token.Position

	// String returns a human friendly representation of the Node. This should
	// be similar to the original source code, but not necessarily identical.
	String() string
}

// Expr represents an expression node. Expressions evaluate to a value
// and may be embedded within other expressions.
type Expr interface {
	Node
	exprNode()
}

// Stmt represents a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TopLevel represents an item that may appear at the top level of a script:
// a global declaration or a handler definition.
type TopLevel interface {
	Node
	topLevelNode()
}

// Script is the root node of a parsed source file.
type Script struct {
	Items []TopLevel // globals and handlers in source order
}

func (s *Script) Pos() token.Position {
	if len(s.Items) > 0 {
		return s.Items[0].Pos()
	}
	return token.NoPos
}

func (s *Script) String() string {
	parts := make([]string, 0, len(s.Items))
	for _, item := range s.Items {
		parts = append(parts, item.String())
	}
	return strings.Join(parts, "\n")
}

// Handlers returns the handler definitions of the script in source order.
func (s *Script) Handlers() []*Handler {
	var handlers []*Handler
	for _, item := range s.Items {
		if h, ok := item.(*Handler); ok {
			handlers = append(handlers, h)
		}
	}
	return handlers
}

// Handler is a named procedure definition: "on name a, b ... end name".
type Handler struct {
	On     token.Position // position of "on" keyword
	Name   *Ident         // handler name
	Params []*Ident       // parameters in source order; duplicates are kept
	Body   *Block         // handler body
}

func (h *Handler) topLevelNode() {}

func (h *Handler) Pos() token.Position { return h.On }

func (h *Handler) String() string {
	var out bytes.Buffer
	out.WriteString("on ")
	out.WriteString(h.Name.Name)
	if len(h.Params) > 0 {
		out.WriteString(" ")
		out.WriteString(joinIdents(h.Params))
	}
	out.WriteString("\n")
	out.WriteString(indent(h.Body.String()))
	out.WriteString("end ")
	out.WriteString(h.Name.Name)
	return out.String()
}

// ParamNames returns the parameter names of the handler.
func (h *Handler) ParamNames() []string {
	names := make([]string, 0, len(h.Params))
	for _, p := range h.Params {
		names = append(names, p.Name)
	}
	return names
}

// Global declares names as global in the enclosing scope. It appears both at
// the top level of a script and as a statement inside handlers.
type Global struct {
	GlobalPos token.Position // position of "global" keyword
	Names     []*Ident       // declared names in source order
}

func (g *Global) topLevelNode() {}
func (g *Global) stmtNode()     {}

func (g *Global) Pos() token.Position { return g.GlobalPos }

func (g *Global) String() string {
	return "global " + joinIdents(g.Names)
}

// Block is an ordered sequence of statements. A block never includes the line
// that terminates it.
type Block struct {
	From  token.Position // position where the block starts
	Stmts []Stmt
}

func (b *Block) Pos() token.Position { return b.From }

func (b *Block) String() string {
	var out bytes.Buffer
	for _, s := range b.Stmts {
		out.WriteString(s.String())
		out.WriteString("\n")
	}
	return out.String()
}

// Len returns the number of statements in the block.
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Stmts)
}

func joinIdents(idents []*Ident) string {
	names := make([]string, 0, len(idents))
	for _, id := range idents {
		names = append(names, id.Name)
	}
	return strings.Join(names, ", ")
}

func joinExprs(exprs []Expr) string {
	parts := make([]string, 0, len(exprs))
	for _, e := range exprs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, ", ")
}

func indent(s string) string {
	if s == "" {
		return ""
	}
	lines := strings.SplitAfter(s, "\n")
	var out bytes.Buffer
	for _, line := range lines {
		if line == "" {
			continue
		}
		out.WriteString("  ")
		out.WriteString(line)
	}
	return out.String()
}
