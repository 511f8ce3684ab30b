// Package config loads the environment driven defaults for the profilegen CLI.
// Command line flags override every value loaded here.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/language"

	"github.com/goliatone/go-profilegen/internal/logging"
)

// Environment variable names.
const (
	EnvHome      = "PROFILEGEN_HOME"
	EnvLang      = "PROFILEGEN_LANG"
	EnvLogLevel  = "PROFILEGEN_LOG_LEVEL"
	EnvLogFormat = "PROFILEGEN_LOG_FORMAT"
)

// Supported diagnostic languages.
const (
	LangEN = "en"
	LangZH = "zh"
)

type Config struct {
	// Home is the directory that relative content paths and default files
	// resolve against. Empty means the directory of the executable.
	Home      string
	Lang      string
	LogLevel  string
	LogFormat string
}

// Load reads optional .env files (default ".env"), then the process
// environment. Variables already present in the environment win over .env
// entries. The result is not validated: callers apply their overrides first
// and then call Validate.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", file, err)
		}
	}

	cfg := &Config{
		Home:      strings.TrimSpace(os.Getenv(EnvHome)),
		Lang:      strings.TrimSpace(os.Getenv(EnvLang)),
		LogLevel:  strings.TrimSpace(os.Getenv(EnvLogLevel)),
		LogFormat: strings.TrimSpace(os.Getenv(EnvLogFormat)),
	}
	if cfg.Lang == "" {
		cfg.Lang = DetectLanguage(os.Getenv("LC_ALL"), os.Getenv("LC_MESSAGES"), os.Getenv("LANG"))
	}
	return cfg, nil
}

// Validate normalises and checks every field.
func (c *Config) Validate() error {
	lang, err := NormalizeLanguage(c.Lang)
	if err != nil {
		return err
	}
	c.Lang = lang

	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %s: %w", EnvLogLevel, err)
	}

	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if !logging.ValidFormat(c.LogFormat) {
		return fmt.Errorf("config: %s must be one of %s, got %q", EnvLogFormat, strings.Join(logging.Formats, ", "), c.LogFormat)
	}
	c.LogFormat = strings.ToLower(c.LogFormat)

	if c.Home != "" {
		abs, err := filepath.Abs(c.Home)
		if err != nil {
			return fmt.Errorf("config: %s invalid (%q): %w", EnvHome, c.Home, err)
		}
		c.Home = abs
	}
	return nil
}

// NormalizeLanguage maps a BCP 47 tag or POSIX locale ("zh_CN.UTF-8") onto
// one of the supported diagnostic languages. Empty input means English.
func NormalizeLanguage(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return LangEN, nil
	}
	tag, err := parseTag(trimmed)
	if err != nil {
		return "", fmt.Errorf("config: unsupported language %q: %w", raw, err)
	}
	base, _ := tag.Base()
	switch base.String() {
	case LangZH:
		return LangZH, nil
	case LangEN:
		return LangEN, nil
	default:
		return "", fmt.Errorf("config: unsupported language %q (supported: %s, %s)", raw, LangZH, LangEN)
	}
}

// DetectLanguage returns the first supported language found in the given
// locale values, falling back to English.
func DetectLanguage(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) == "" {
			continue
		}
		if lang, err := NormalizeLanguage(value); err == nil {
			return lang
		}
	}
	return LangEN
}

func parseTag(raw string) (language.Tag, error) {
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	switch raw {
	case "C", "POSIX":
		return language.English, nil
	}
	return language.Parse(strings.ReplaceAll(raw, "_", "-"))
}
