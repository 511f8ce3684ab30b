package cli

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/goliatone/go-profilegen/internal/diff"
	"github.com/goliatone/go-profilegen/internal/i18n"
	"github.com/goliatone/go-profilegen/internal/prompt"
	"github.com/goliatone/go-profilegen/pkg/generator"
	"github.com/goliatone/go-profilegen/pkg/inject"
)

// errAborted is returned when the operator declines to overwrite the output.
var errAborted = errors.New("cli: overwrite declined")

// pageFlags control how a page is produced and written. They are shared by the
// root command and split --build.
type pageFlags struct {
	output      string
	template    string
	sanitize    bool
	strict      bool
	dryRun      bool
	interactive bool
}

func (p *pageFlags) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&p.output, "output", "o", "", "output HTML file (default <home>/"+generator.DefaultOutputName+")")
	flags.StringVar(&p.template, "template", "", "template HTML file (default <home>/"+generator.DefaultTemplateName+")")
	flags.BoolVar(&p.sanitize, "sanitize", false, "strip HTML markup from every string value before injection")
	flags.BoolVar(&p.strict, "strict", false, "fail when content has no placeholder in the template")
	flags.BoolVar(&p.dryRun, "dry-run", false, "print a diff of the template and the generated page without writing it")
	flags.BoolVarP(&p.interactive, "interactive", "i", false, "ask before overwriting an existing output file")
}

// buildFlags are the root command flags.
type buildFlags struct {
	pageFlags
	dir    string
	config string
	locale string
}

func (b *buildFlags) bind(flags *pflag.FlagSet) {
	flags.StringVarP(&b.dir, "dir", "d", "", "config directory holding zh.yaml and en.yaml (takes precedence over --config)")
	flags.StringVarP(&b.config, "config", "c", "", "single config file; its locale is inferred from the path unless --locale is set")
	flags.StringVarP(&b.locale, "locale", "l", "", "locale of --config content (zh|en)")
	b.pageFlags.bind(flags)
}

func (b *buildFlags) request() (generator.Request, error) {
	req := b.pageFlags.request()
	req.Dir = b.dir
	req.Config = b.config
	if strings.TrimSpace(b.locale) != "" {
		locale, err := inject.ParseLocale(b.locale)
		if err != nil {
			return generator.Request{}, err
		}
		req.Locale = locale
	}
	return req, nil
}

func (p *pageFlags) request() generator.Request {
	return generator.Request{
		Output:   p.output,
		Template: p.template,
		Sanitize: p.sanitize,
		Strict:   p.strict,
	}
}

// runBuild generates the page for req, reports progress in the operator's
// language and writes the result unless this is a dry run.
func runBuild(ctx context.Context, e *env, req generator.Request, flags *pageFlags) error {
	res, err := e.gen.Generate(ctx, req)
	if err != nil {
		return e.reportBuildError(req.Mode(), err)
	}

	if res.IgnoredConfig != "" {
		e.warn(i18n.MsgWarnConfigIgnored, map[string]any{"Path": res.IgnoredConfig})
	}
	switch res.Mode {
	case generator.ModeDir:
		e.say(i18n.MsgUsingConfigDir, map[string]any{"Path": res.Source})
	case generator.ModeConfig:
		e.say(i18n.MsgUsingConfigFile, map[string]any{
			"Path":     res.Source,
			"Language": e.tr.LocaleName(res.Inputs[0].Locale.String()),
		})
	default:
		e.say(i18n.MsgUsingSampleDir, map[string]any{"Path": res.Source})
	}
	for _, locale := range res.Skipped {
		e.warn(i18n.MsgWarnPlaceholderMissing, map[string]any{"Language": e.tr.LocaleName(locale.String())})
	}

	if flags.dryRun {
		unified, err := diff.Unified(res.TemplatePath, res.OutputPath, res.Template, res.Output)
		if err != nil {
			return err
		}
		if err := diff.NewPrinter(e.stdout, isTerminal(e.stdout)).Print(unified); err != nil {
			return err
		}
		e.say(i18n.MsgDryRunNotWritten, map[string]any{"Path": res.OutputPath})
		return nil
	}

	if flags.interactive {
		ok, err := e.confirmOverwrite(ctx, res.OutputPath)
		if err != nil {
			return err
		}
		if !ok {
			return e.fail(i18n.MsgAborted, nil, errAborted)
		}
	}

	if err := e.gen.Write(ctx, res); err != nil {
		return e.fail(i18n.MsgErrProcess, map[string]any{"Error": err.Error()}, err)
	}

	switch res.Mode {
	case generator.ModeDir:
		e.say(i18n.MsgGeneratedFromDir, map[string]any{"Path": res.Source})
	case generator.ModeConfig:
		e.say(i18n.MsgGeneratedFromFile, map[string]any{"Path": res.Source})
	default:
		e.say(i18n.MsgGeneratedFromSamples, nil)
	}
	e.say(i18n.MsgOutputFile, map[string]any{"Path": res.OutputPath})
	return nil
}

// confirmOverwrite asks before replacing an existing file. A missing file needs
// no confirmation.
func (e *env) confirmOverwrite(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return true, nil
		}
		return false, err
	}
	ok, err := e.prompt.Confirm(ctx, prompt.ConfirmConfig{
		Message: e.tr.T(i18n.MsgConfirmOverwrite, map[string]any{"Path": path}),
	})
	if errors.Is(err, prompt.ErrAborted) {
		return false, e.fail(i18n.MsgAborted, nil, err)
	}
	return ok, err
}

// reportBuildError prints the localized diagnostic for a failed generation.
func (e *env) reportBuildError(mode generator.Mode, err error) error {
	var missing *generator.MissingFileError
	if errors.As(err, &missing) {
		switch missing.Role {
		case generator.RoleTemplate:
			return e.fail(i18n.MsgErrMissingTemplate, map[string]any{"Path": missing.Path}, err)
		case generator.RoleContent:
			if missing.Locale != "" {
				return e.fail(i18n.MsgErrMissingContent, map[string]any{
					"Path":     missing.Path,
					"Language": e.tr.LocaleName(missing.Locale.String()),
				}, err)
			}
		}
		return e.fail(i18n.MsgErrMissingInput, map[string]any{"Path": missing.Path}, err)
	}

	data := map[string]any{"Error": err.Error()}
	switch mode {
	case generator.ModeDir:
		return e.fail(i18n.MsgErrProcessDir, data, err)
	case generator.ModeConfig:
		return e.fail(i18n.MsgErrProcessFile, data, err)
	default:
		return e.fail(i18n.MsgErrProcess, data, err)
	}
}

func isTerminal(w any) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
