package main

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/drizzle-lingo/lingo/ast"
	"github.com/drizzle-lingo/lingo/parser"
	"github.com/hokaccha/go-prettyjson"
	"github.com/spf13/cobra"
)

func (a *app) astCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ast [file]",
		Short: "Print the syntax tree of a script",
		Example: `  lingo ast movie.ls
  lingo ast -c 'on f
  return 1
end f'
  cat movie.ls | lingo ast --stdin -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			if err := checkOutputFormat(format); err != nil {
				return err
			}
			src, filename, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			script, err := parser.ParseScript(cmd.Context(), src, a.parserOptions(filename)...)
			if err != nil {
				return err
			}
			if format == "json" {
				return a.printJSON(nodeToJSON(script))
			}
			printTree(a.out, script, palette{a.useColor(a.out)})
			return nil
		},
	}
	cmd.Flags().StringP("code", "c", "", "script source to parse")
	cmd.Flags().Bool("stdin", false, "read the script from stdin")
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}

// ASTNode represents a node in the JSON tree output.
type ASTNode struct {
	Type     string     `json:"type"`
	Value    any        `json:"value,omitempty"`
	Pos      string     `json:"pos"`
	Children []*ASTNode `json:"children,omitempty"`
}

func nodeToJSON(node ast.Node) *ASTNode {
	result := &ASTNode{
		Type:  nodeType(node),
		Value: nodeValue(node),
		Pos:   node.Pos().String(),
	}
	for _, child := range ast.Children(node) {
		result.Children = append(result.Children, nodeToJSON(child))
	}
	return result
}

func nodeType(node ast.Node) string {
	return reflect.TypeOf(node).Elem().Name()
}

// nodeValue returns the scalar carried by a node, if any. Decimals are
// returned as strings so that no precision is lost in JSON.
func nodeValue(node ast.Node) any {
	switch n := node.(type) {
	case *ast.Handler:
		return n.Name.Name
	case *ast.Ident:
		return n.Name
	case *ast.The:
		return n.Name
	case *ast.Int:
		return n.Value
	case *ast.Decimal:
		return n.Value.String()
	case *ast.Symbol:
		return "#" + n.Name
	case *ast.String:
		return n.Value
	case *ast.Constant:
		return n.Name
	case *ast.Call:
		return n.Name
	case *ast.MemberCall:
		return n.Name
	case *ast.Prop:
		return n.Name
	case *ast.Unary:
		return n.Op.String()
	case *ast.Binary:
		return n.Op.String()
	}
	return nil
}

func (a *app) printJSON(v any) error {
	if a.useColor(a.out) {
		data, err := prettyjson.Marshal(v)
		if err != nil {
			return err
		}
		fmt.Fprintln(a.out, string(data))
		return nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, string(data))
	return nil
}

// printTree writes one line per node, using box drawing connectors to show
// the nesting.
func printTree(w io.Writer, root ast.Node, p palette) {
	fmt.Fprintln(w, treeLabel(root, p))
	printChildren(w, ast.Children(root), "", p)
}

func printChildren(w io.Writer, children []ast.Node, prefix string, p palette) {
	for i, child := range children {
		last := i == len(children)-1
		connector, next := "├─ ", "│  "
		if last {
			connector, next = "└─ ", "   "
		}
		fmt.Fprintln(w, p.paint(mutedColor, prefix+connector)+treeLabel(child, p))
		printChildren(w, ast.Children(child), prefix+next, p)
	}
}

func treeLabel(node ast.Node, p palette) string {
	var b strings.Builder
	b.WriteString(p.paint(nodeColor, nodeType(node)))
	if value := nodeValue(node); value != nil {
		b.WriteString(" ")
		switch node.(type) {
		case *ast.Unary, *ast.Binary:
			b.WriteString(p.paint(opColor, fmt.Sprint(value)))
		case *ast.Symbol:
			b.WriteString(p.paint(symbolColor, fmt.Sprint(value)))
		case *ast.String:
			b.WriteString(p.paint(valueColor, fmt.Sprintf("%q", value)))
		default:
			b.WriteString(p.paint(valueColor, fmt.Sprint(value)))
		}
	}
	b.WriteString(" ")
	b.WriteString(p.paint(mutedColor, "@"+node.Pos().String()))
	return b.String()
}
