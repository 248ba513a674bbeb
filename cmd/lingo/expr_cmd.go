package main

import (
	"fmt"
	"strings"

	"github.com/drizzle-lingo/lingo/parser"
	"github.com/spf13/cobra"
)

func (a *app) exprCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expr <expression>...",
		Short: "Parse an expression and print it fully parenthesized",
		Example: `  lingo expr 1 + 2 * 3
  lingo expr -o json 'sprite(1).loc'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			if err := checkOutputFormat(format); err != nil {
				return err
			}
			src := strings.Join(args, " ")
			p := parser.New(src, a.parserOptions("")...)
			expr, err := p.Expression(cmd.Context())
			if err != nil {
				return err
			}
			if rest := strings.TrimSpace(src[p.Offset():]); rest != "" {
				a.logger.Warn().Str("rest", rest).Msg("ignoring input after expression")
			}
			if format == "json" {
				return a.printJSON(nodeToJSON(expr))
			}
			fmt.Fprintln(a.out, expr.String())
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}
