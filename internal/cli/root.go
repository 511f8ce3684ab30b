// Package cli wires the profilegen commands: the root build command, split and
// init.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-profilegen/internal/config"
	"github.com/goliatone/go-profilegen/internal/ctxlog"
	"github.com/goliatone/go-profilegen/internal/i18n"
	"github.com/goliatone/go-profilegen/internal/logging"
	"github.com/goliatone/go-profilegen/internal/prompt"
	"github.com/goliatone/go-profilegen/pkg/generator"
)

// Options configures a command tree. Zero values fall back to the process
// streams, the survey prompt driver and a ".env" file in the working
// directory.
type Options struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Stdin    io.Reader
	Prompt   prompt.Driver
	EnvFiles []string
}

// globalFlags are shared by every command.
type globalFlags struct {
	lang      string
	logLevel  string
	logFormat string
}

// env is the per invocation state built once flags are parsed.
type env struct {
	cfg    *config.Config
	tr     *i18n.Translator
	logger *slog.Logger
	gen    *generator.Generator
	prompt prompt.Driver
	stdout io.Writer
	stderr io.Writer
}

// reportedError marks an error already shown to the operator in localized
// form so Execute does not print it a second time.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	opts = opts.withDefaults()
	globals := &globalFlags{}
	build := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "profilegen",
		Short: "Build a bilingual standalone profile page from YAML content",
		Long: `profilegen injects Chinese and English YAML content into the placeholders
of an HTML template and writes one self contained page.

Content is taken from --dir (zh.yaml and en.yaml), from a single --config file
or, when neither is given, from the bundled config/sample directory.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts, globals)
			if err != nil {
				return err
			}
			req, err := build.request()
			if err != nil {
				return err
			}
			return runBuild(cmd.Context(), e, req, &build.pageFlags)
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.SetIn(opts.Stdin)

	bindGlobalFlags(cmd.PersistentFlags(), globals)
	build.bind(cmd.Flags())

	cmd.AddCommand(newSplitCmd(opts, globals))
	cmd.AddCommand(newInitCmd(opts, globals))
	return cmd
}

// Execute runs the command tree with args and prints any error that was not
// already reported.
func Execute(ctx context.Context, args []string, opts Options) error {
	opts = opts.withDefaults()
	cmd := NewRootCmd(opts)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var reported *reportedError
	if !errors.As(err, &reported) {
		fmt.Fprintf(opts.Stderr, "Error: %v\n", err)
	}
	return err
}

func (o Options) withDefaults() Options {
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	return o
}

func bindGlobalFlags(flags *pflag.FlagSet, g *globalFlags) {
	flags.StringVar(&g.lang, "lang", "", "diagnostics language (zh|en); defaults to $"+config.EnvLang+" or the system locale")
	flags.StringVar(&g.logLevel, "log-level", "", "log level ("+strings.Join(logging.Levels, "|")+")")
	flags.StringVar(&g.logFormat, "log-format", "", "log format ("+strings.Join(logging.Formats, "|")+")")
}

// setup loads the environment configuration, applies flag overrides and builds
// the translator, logger and generator for one command run.
func setup(cmd *cobra.Command, opts Options, g *globalFlags) (*env, error) {
	cfg, err := config.Load(opts.EnvFiles...)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Lang = g.lang
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = g.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = g.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tr, err := i18n.NewTranslator(cfg.Lang)
	if err != nil {
		return nil, err
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, opts.Stderr)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(ctxlog.WithLogger(ctx, logger))

	var genOpts []generator.Option
	if cfg.Home != "" {
		genOpts = append(genOpts, generator.WithBaseDir(cfg.Home))
	}
	gen, err := generator.New(genOpts...)
	if err != nil {
		return nil, err
	}

	driver := opts.Prompt
	if driver == nil {
		driver = prompt.NewSurveyDriver()
	}

	logger.Debug("configuration loaded", "home", gen.BaseDir(), "lang", cfg.Lang, "log_level", cfg.LogLevel)
	return &env{
		cfg:    cfg,
		tr:     tr,
		logger: logger,
		gen:    gen,
		prompt: driver,
		stdout: opts.Stdout,
		stderr: opts.Stderr,
	}, nil
}

func (e *env) say(key string, data map[string]any) {
	fmt.Fprintln(e.stdout, e.tr.T(key, data))
}

func (e *env) warn(key string, data map[string]any) {
	fmt.Fprintln(e.stderr, e.tr.T(key, data))
}

// fail prints the localized form of err and marks it reported.
func (e *env) fail(key string, data map[string]any, err error) error {
	fmt.Fprintln(e.stderr, e.tr.T(key, data))
	return &reportedError{err: err}
}
