package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-profilegen/internal/ctxlog"
	"github.com/goliatone/go-profilegen/pkg/content"
	"github.com/goliatone/go-profilegen/pkg/inject"
)

// Default file layout under the base directory.
const (
	DefaultTemplateName = "template.html"
	DefaultOutputName   = "index.html"
	SampleDir           = "config/sample"
	ConfigRoot          = "config"
)

// contentFiles maps each locale to its file name in directory and sample mode.
var contentFiles = map[inject.Locale]string{
	inject.LocaleZH: "zh.yaml",
	inject.LocaleEN: "en.yaml",
}

// Option customises the generator configuration.
type Option func(*Generator)

// WithBaseDir overrides the install directory used to resolve relative
// content paths and the default template, sample and output locations.
func WithBaseDir(dir string) Option {
	return func(g *Generator) {
		g.baseDir = strings.TrimSpace(dir)
	}
}

// WithSanitizePolicy replaces the strict bluemonday policy applied when a
// request enables Sanitize.
func WithSanitizePolicy(policy *bluemonday.Policy) Option {
	return func(g *Generator) {
		g.policy = policy
	}
}

// Generator builds profile pages. The zero value is not usable; call New.
type Generator struct {
	baseDir string
	policy  *bluemonday.Policy
}

// New constructs a Generator. Without WithBaseDir the base directory is the
// directory holding the running executable.
func New(options ...Option) (*Generator, error) {
	g := &Generator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}

	if g.baseDir == "" {
		dir, err := executableDir()
		if err != nil {
			return nil, fmt.Errorf("generator: resolve install directory: %w", err)
		}
		g.baseDir = dir
	}
	abs, err := filepath.Abs(g.baseDir)
	if err != nil {
		return nil, fmt.Errorf("generator: base directory: %w", err)
	}
	g.baseDir = abs
	return g, nil
}

// BaseDir returns the directory relative inputs resolve against.
func (g *Generator) BaseDir() string {
	return g.baseDir
}

// Input is one loaded locale payload.
type Input struct {
	Locale  inject.Locale
	Path    string
	Payload *content.Payload
}

// Result is a generated page that has not been written yet.
type Result struct {
	Mode Mode
	// Source is the resolved directory (dir and sample mode) or file (config
	// mode) the content came from.
	Source       string
	TemplatePath string
	OutputPath   string
	Template     string
	Output       string
	Inputs       []Input
	Regions      []inject.Region
	// Skipped lists locales that had a payload but no placeholder.
	Skipped []inject.Locale
	// IgnoredConfig is set when Config lost to Dir.
	IgnoredConfig string
}

// Run generates the page and writes it.
func (g *Generator) Run(ctx context.Context, req Request) (Result, error) {
	res, err := g.Generate(ctx, req)
	if err != nil {
		return Result{}, err
	}
	if err := g.Write(ctx, res); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Generate reads the template and content for req and injects the payloads.
// It performs no writes.
func (g *Generator) Generate(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("generator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	logger := ctxlog.FromContext(ctx)

	res := Result{
		Mode:         req.Mode(),
		TemplatePath: g.templatePath(req),
		OutputPath:   g.outputPath(req),
	}
	if res.Mode == ModeDir && strings.TrimSpace(req.Config) != "" {
		res.IgnoredConfig = req.Config
		logger.Warn("config file ignored, directory mode takes precedence", "config", req.Config, "dir", req.Dir)
	}

	targets, err := g.targets(req, &res)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("resolved inputs", "mode", res.Mode, "source", res.Source, "template", res.TemplatePath)

	// Every content file must exist before anything is parsed.
	for _, target := range targets {
		if _, err := os.Stat(target.Path); err != nil {
			return Result{}, missingOr(err, RoleContent, target.Locale, target.Path)
		}
	}

	tpl, err := os.ReadFile(res.TemplatePath)
	if err != nil {
		return Result{}, missingOr(err, RoleTemplate, "", res.TemplatePath)
	}
	res.Template = string(tpl)

	payloads := make(map[inject.Locale]inject.Payload, len(targets))
	for _, target := range targets {
		payload, err := content.LoadFile(target.Path)
		if err != nil {
			return Result{}, missingOr(err, RoleContent, target.Locale, target.Path)
		}
		if req.Sanitize {
			payload = payload.Sanitize(g.policy)
		}
		target.Payload = payload
		res.Inputs = append(res.Inputs, target)
		payloads[target.Locale] = payload
		logger.Debug("loaded content", "locale", target.Locale, "path", target.Path, "keys", payload.Len())
	}

	var opts []inject.Option
	if req.Strict {
		opts = append(opts, inject.WithStrict())
	}
	injected, err := inject.Apply(res.Template, payloads, opts...)
	if err != nil {
		return Result{}, fmt.Errorf("generator: inject %s: %w", res.TemplatePath, err)
	}
	res.Output = injected.Output
	res.Regions = injected.Regions
	res.Skipped = injected.MissingPayload(payloads)
	for _, locale := range res.Skipped {
		logger.Warn("placeholder not found in template, content skipped", "locale", locale, "template", res.TemplatePath)
	}

	return res, nil
}

// Write stores res.Output at res.OutputPath, creating parent directories and
// replacing any existing file.
func (g *Generator) Write(ctx context.Context, res Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if res.OutputPath == "" {
		return errors.New("generator: output path is required")
	}
	if dir := filepath.Dir(res.OutputPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("generator: create output directory: %w", err)
		}
	}
	if err := os.WriteFile(res.OutputPath, []byte(res.Output), 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", res.OutputPath, err)
	}
	ctxlog.FromContext(ctx).Debug("page written", "output", res.OutputPath, "bytes", len(res.Output))
	return nil
}

func (g *Generator) targets(req Request, res *Result) ([]Input, error) {
	switch res.Mode {
	case ModeDir:
		res.Source = g.resolve(req.Dir)
		return localeTargets(res.Source), nil
	case ModeConfig:
		res.Source = g.resolve(req.Config)
		locale := req.Locale
		if locale == "" {
			locale = InferLocale(req.Config)
		}
		if !inject.Known(locale) {
			return nil, fmt.Errorf("generator: %w: %q", inject.ErrUnknownLocale, locale)
		}
		return []Input{{Locale: locale, Path: res.Source}}, nil
	default:
		res.Source = filepath.Join(g.baseDir, filepath.FromSlash(SampleDir))
		return localeTargets(res.Source), nil
	}
}

func localeTargets(dir string) []Input {
	locales := inject.Locales()
	out := make([]Input, 0, len(locales))
	for _, locale := range locales {
		out = append(out, Input{Locale: locale, Path: filepath.Join(dir, contentFiles[locale])})
	}
	return out
}

func (g *Generator) resolve(path string) string {
	path = strings.TrimSpace(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(g.baseDir, path)
}

func (g *Generator) templatePath(req Request) string {
	if tpl := strings.TrimSpace(req.Template); tpl != "" {
		return filepath.Clean(tpl)
	}
	return filepath.Join(g.baseDir, DefaultTemplateName)
}

func (g *Generator) outputPath(req Request) string {
	if out := strings.TrimSpace(req.Output); out != "" {
		return filepath.Clean(out)
	}
	return filepath.Join(g.baseDir, DefaultOutputName)
}

func missingOr(err error, role Role, locale inject.Locale, path string) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &MissingFileError{Role: role, Locale: locale, Path: path, Err: err}
	}
	return err
}

func executableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
