package ast

import "iter"

// Visitor defines the interface for AST traversal. If Visit returns nil,
// children of the node are not visited. Otherwise, the returned Visitor
// is used to visit children.
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Walk traverses an AST in depth-first order. It starts by calling
// v.Visit(node); if the returned visitor w is not nil, Walk is invoked
// recursively with visitor w for each of the non-nil children of node.
func Walk(v Visitor, node Node) {
	if v = v.Visit(node); v == nil {
		return
	}
	for _, child := range Children(node) {
		Walk(v, child)
	}
}

// Inspect traverses an AST in depth-first order. It calls f(node) for each
// node; if f returns true, Inspect invokes f recursively for each of the
// non-nil children of node.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Preorder returns an iterator over all the nodes of the AST rooted at node
// in depth-first preorder.
func Preorder(root Node) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		var visit func(Node) bool
		visit = func(n Node) bool {
			if !yield(n) {
				return false
			}
			for _, child := range Children(n) {
				if !visit(child) {
					return false
				}
			}
			return true
		}
		visit(root)
	}
}

// Children returns the direct children of node in source order. Optional
// children that are absent are omitted.
func Children(node Node) []Node {
	var out []Node
	add := func(n Node) {
		if n != nil {
			out = append(out, n)
		}
	}
	switch n := node.(type) {
	case *Script:
		for _, item := range n.Items {
			add(item)
		}
	case *Handler:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Body)
	case *Global:
		for _, name := range n.Names {
			add(name)
		}
	case *Block:
		for _, stmt := range n.Stmts {
			add(stmt)
		}

	// Statements
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *Return:
		if n.Value != nil {
			add(n.Value)
		}
	case *Exit, *ExitRepeat:
		// No children
	case *If:
		add(n.Cond)
		add(n.Then)
		if n.Else != nil {
			add(n.Else)
		}
	case *Case:
		add(n.Subject)
		for _, alt := range n.Alts {
			add(alt)
		}
		if n.Otherwise != nil {
			add(n.Otherwise)
		}
	case *CaseAlt:
		for _, label := range n.Labels {
			add(label)
		}
		add(n.Body)
	case *RepeatWhile:
		add(n.Cond)
		add(n.Body)
	case *RepeatWithList:
		add(n.Var)
		add(n.List)
		add(n.Body)
	case *RepeatWithCounter:
		add(n.Var)
		add(n.Start)
		add(n.End)
		add(n.Body)
	case *ExprStmt:
		add(n.X)

	// Expressions
	case *Int, *Decimal, *Symbol, *String, *Constant, *Ident, *The:
		// No children
	case *Call:
		for _, arg := range n.Args {
			add(arg)
		}
	case *MemberCall:
		add(n.X)
		for _, arg := range n.Args {
			add(arg)
		}
	case *Prop:
		add(n.X)
	case *Index:
		add(n.X)
		add(n.Index)
	case *Unary:
		add(n.X)
	case *Binary:
		add(n.X)
		add(n.Y)
	case *List:
		for _, item := range n.Items {
			add(item)
		}
	case *PropList:
		for _, pair := range n.Pairs {
			add(pair.Key)
			add(pair.Value)
		}
	case *ParamList:
		for _, pair := range n.Pairs {
			add(pair.Key)
			add(pair.Value)
		}
	}
	return out
}
