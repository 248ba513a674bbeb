package main

import (
	"path/filepath"

	"github.com/drizzle-lingo/lingo/lsp"
	"github.com/jdbaldry/go-language-server-protocol/lsp/protocol"
	"github.com/spf13/cobra"
)

func (a *app) diagnosticsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diagnostics [file]",
		Short: "Print the problems of a script as LSP diagnostics",
		Long: `diagnostics parses and validates a script and prints the result as a JSON
array of Language Server Protocol diagnostics. Positions are zero-based and
columns are counted in UTF-16 code units.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, filename, err := a.readInput(cmd, args)
			if err != nil {
				return err
			}
			uri := protocol.DocumentURI("untitled:stdin")
			if filename != "" {
				abs, err := filepath.Abs(filename)
				if err != nil {
					return err
				}
				uri = protocol.DocumentURI("file://" + filepath.ToSlash(abs))
			}
			diags := lsp.Diagnostics(cmd.Context(), uri, src)
			a.logger.Debug().Str("uri", string(uri)).Int("count", len(diags)).Msg("diagnostics")
			return a.printJSON(diags)
		},
	}
	cmd.Flags().StringP("code", "c", "", "script source to check")
	cmd.Flags().Bool("stdin", false, "read the script from stdin")
	return cmd
}
