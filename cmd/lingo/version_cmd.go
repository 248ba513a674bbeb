package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("output")
			if err := checkOutputFormat(format); err != nil {
				return err
			}
			if format == "json" {
				return a.printJSON(map[string]string{
					"version": version,
					"commit":  commit,
					"date":    date,
				})
			}
			fmt.Fprintf(a.out, "lingo %s (commit %s, built %s)\n", version, commit, date)
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "output format (text, json)")
	return cmd
}
