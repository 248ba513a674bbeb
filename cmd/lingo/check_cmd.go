package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"sync"
	"time"

	lingoerrors "github.com/drizzle-lingo/lingo/errors"
	"github.com/drizzle-lingo/lingo/parser"
	"github.com/drizzle-lingo/lingo/syntax"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
)

func (a *app) checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report syntax and validation errors in scripts",
		Long: `check parses every file and runs the script validators over the
result. Files are checked concurrently and reported in argument order.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noValidate, _ := cmd.Flags().GetBool("syntax-only")
			verbose, _ := cmd.Flags().GetBool("verbose")
			return a.check(cmd.Context(), args, !noValidate, verbose)
		},
	}
	cmd.Flags().Bool("syntax-only", false, "skip validation, report syntax errors only")
	cmd.Flags().BoolP("verbose", "v", false, "also list files without errors")
	return cmd
}

// checkResult holds the problems found in one file.
type checkResult struct {
	file string
	errs []*lingoerrors.FormattedError
	err  error
}

func (a *app) check(ctx context.Context, files []string, validate, verbose bool) error {
	results := make([]checkResult, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			results[i] = a.checkFile(ctx, file, validate)
			a.logger.Debug().
				Str("file", file).
				Int("problems", len(results[i].errs)).
				Dur("elapsed", time.Since(start)).
				Msg("checked")
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	p := palette{a.useColor(a.out)}
	f := lingoerrors.NewFormatter(p.enabled)
	var merr *multierror.Error
	for _, r := range results {
		if r.err == nil {
			if verbose {
				fmt.Fprintf(a.out, "%s %s\n", p.paint(green, "ok"), r.file)
			}
			continue
		}
		fmt.Fprint(a.out, f.FormatMultiple(r.errs))
		merr = multierror.Append(merr, r.err)
	}
	if merr == nil {
		return nil
	}
	merr.ErrorFormat = func(errs []error) string {
		return fmt.Sprintf("%d of %d files failed", len(errs), len(files))
	}
	return &reportedError{summary: merr.Error()}
}

func (a *app) checkFile(ctx context.Context, file string, validate bool) checkResult {
	result := checkResult{file: file}
	data, err := os.ReadFile(file)
	if err != nil {
		result.err = err
		result.errs = []*lingoerrors.FormattedError{{
			Kind:     "error",
			Message:  err.Error(),
			Filename: file,
		}}
		return result
	}
	src := string(data)

	script, err := parser.ParseScript(ctx, src, a.parserOptions(file)...)
	if err != nil {
		result.err = fmt.Errorf("%s: %w", file, err)
		var fe lingoerrors.FormattableError
		if stderrors.As(err, &fe) {
			result.errs = append(result.errs, fe.ToFormatted())
		} else {
			result.errs = append(result.errs, &lingoerrors.FormattedError{
				Kind:     "error",
				Message:  err.Error(),
				Filename: file,
			})
		}
		return result
	}
	if !validate {
		return result
	}

	err = syntax.Validate(script)
	var verrs *syntax.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return result
	}
	result.err = fmt.Errorf("%s: %w", file, err)
	for i := range verrs.Errors {
		fe := verrs.Errors[i].ToFormatted()
		if fe.Line > 0 {
			fe.SourceLines = []lingoerrors.SourceLineEntry{
				{Number: fe.Line, Text: sourceLine(src, fe.Line), IsMain: true},
			}
		}
		result.errs = append(result.errs, fe)
	}
	return result
}
