package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/drizzle-lingo/lingo/parser"
	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// defaultConfigName is looked up in the home directory when --config is not
// given. A missing default file is not an error.
const defaultConfigName = ".lingo.yaml"

// app carries the state shared by all commands of one invocation.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	v      *viper.Viper
	logger zerolog.Logger
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{
		in:     in,
		out:    out,
		errOut: errOut,
		v:      viper.New(),
		logger: zerolog.Nop(),
	}
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	a := newApp(in, out, errOut)
	root := a.rootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		a.printError(err)
		return 1
	}
	return 0
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lingo",
		Short:         "Parse and check Lingo scripts",
		Long:          "lingo parses Lingo scripts into a syntax tree, prints the tree and reports syntax errors.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/"+defaultConfigName+")")
	flags.Bool("no-color", false, "disable colored output")
	flags.Bool("trace", false, "log every grammar rule the parser enters and leaves")
	flags.Int("max-depth", parser.DefaultMaxDepth, "maximum nesting depth")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	for _, name := range []string{"config", "no-color", "trace", "max-depth", "log-level"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		a.astCmd(),
		a.exprCmd(),
		a.checkCmd(),
		a.diagnosticsCmd(),
		a.versionCmd(),
	)
	return root
}

// initConfig layers the configuration: flags override LINGO_* environment
// variables, which override the config file.
func (a *app) initConfig() error {
	a.v.SetEnvPrefix("lingo")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	explicit := a.v.GetString("config")
	path := explicit
	if path == "" {
		home, err := homedir.Dir()
		if err == nil {
			path = filepath.Join(home, defaultConfigName)
		}
	} else if expanded, err := homedir.Expand(path); err == nil {
		path = expanded
	}
	loaded := false
	if path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		err := a.v.ReadInConfig()
		var notExist *os.PathError
		switch {
		case err == nil:
			loaded = true
		case explicit != "" || !errors.As(err, &notExist):
			return fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q", a.v.GetString("log-level"))
	}
	if a.v.GetBool("trace") {
		level = zerolog.DebugLevel
	}
	a.logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        a.errOut,
		NoColor:    !a.useColor(a.errOut),
		TimeFormat: "15:04:05",
	}).Level(level).With().Timestamp().Logger()

	if loaded {
		a.logger.Debug().Str("file", path).Msg("config loaded")
	}
	return nil
}

// parserOptions returns the parser options selected by the configuration.
func (a *app) parserOptions(filename string) []parser.Option {
	opts := []parser.Option{parser.WithMaxDepth(a.v.GetInt("max-depth"))}
	if filename != "" {
		opts = append(opts, parser.WithFilename(filename))
	}
	if a.v.GetBool("trace") {
		opts = append(opts, parser.WithTracer(parser.NewLogTracer(a.logger)))
	}
	return opts
}
