// Package commands provides the cobra commands of the oasvariant CLI.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oasvariant/dialect"
	"github.com/erraggy/oasvariant/document"
	"github.com/erraggy/oasvariant/internal/cliutil"
	"github.com/erraggy/oasvariant/internal/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newConverter builds the OpenAPI 3 to 2.0 converter. Replaced in tests.
var newConverter = func(l document.Logger) dialect.Converter {
	return dialect.NewOASConverter(dialect.WithLogger(l))
}

// app holds the state shared by all commands of one invocation.
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string

	cfg    *config.Config
	logger document.Logger
}

// ExitError carries a process exit code other than 1.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }

func (e *ExitError) Unwrap() error { return e.Err }

// Execute runs the CLI with args and returns the process exit code.
func Execute(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(context.Background())
	if err == nil {
		return 0
	}
	cliutil.WriteError(stderr, err)
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}

// NewRootCommand returns the oasvariant command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "oasvariant",
		Short: "Derive the published variants of the AppVeyor OpenAPI document",
		Long: `oasvariant rewrites the AppVeyor REST API description into its published
variants: OpenAPI 3 and 2.0, v1 and v2 addressing, with and without
discriminated unions, plus the legacy appveyor-swagger names.

Example:
  oasvariant build openapi3-v1.yaml dist     # write every variant to dist/
  oasvariant flatten openapi3-v1.yaml -      # flatten one document to stdout
  oasvariant swagger < openapi2-v1-flat.json # rename to the legacy names`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		cliutil.Writef(cmd.OutOrStdout(), "usage: %s\n", cmd.UseLine())
	})

	flags := root.PersistentFlags()
	flags.StringVarP(&a.cfgFile, "config", "c", "", "config file (default: oasvariant.yaml if present)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: auto, text, json")

	for _, name := range passCommandNames {
		root.AddCommand(a.newPassCommand(name))
	}
	root.AddCommand(a.newBuildCommand())
	root.AddCommand(a.newMCPCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = a.verbose
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	a.logger = document.NewSlogAdapter(newSlogLogger(cmd.ErrOrStderr(), cfg.LogFormat, cfg.Verbose))
	return nil
}

// newSlogLogger returns a text logger on a terminal and a JSON logger
// otherwise, unless format forces one of them.
func newSlogLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelWarn}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if format == config.LogFormatAuto || format == "" {
		format = config.LogFormatJSON
		if isTerminal(w) {
			format = config.LogFormatText
		}
	}
	if format == config.LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
