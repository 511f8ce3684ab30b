package generator

import (
	"strings"

	"github.com/goliatone/go-profilegen/pkg/inject"
)

// Mode is the input mode of a request.
type Mode string

const (
	// ModeDir reads zh.yaml and en.yaml from a directory.
	ModeDir Mode = "dir"
	// ModeConfig reads a single file for one locale and resets the other.
	ModeConfig Mode = "config"
	// ModeSample reads the bundled sample configs from the install directory.
	ModeSample Mode = "sample"
)

// Request describes one page build.
type Request struct {
	// Dir selects directory mode. Relative paths resolve against the base
	// directory. Dir takes precedence over Config.
	Dir string

	// Config selects single file mode. Relative paths resolve against the base
	// directory.
	Config string

	// Locale forces the locale of Config instead of inferring it from the path.
	Locale inject.Locale

	// Output is the page destination. Empty means index.html in the base
	// directory; relative paths are relative to the working directory.
	Output string

	// Template overrides template.html in the base directory. Relative paths are
	// relative to the working directory.
	Template string

	// Sanitize strips markup from every string value before injection.
	Sanitize bool

	// Strict fails the build when a payload has no placeholder to go into.
	Strict bool
}

// Mode applies the precedence rule dir > config > sample.
func (r Request) Mode() Mode {
	switch {
	case strings.TrimSpace(r.Dir) != "":
		return ModeDir
	case strings.TrimSpace(r.Config) != "":
		return ModeConfig
	default:
		return ModeSample
	}
}

// InferLocale guesses the locale of a single config file from its path as the
// user typed it: a path mentioning "zh", "CN" or "中文" is Chinese content,
// anything else is English.
func InferLocale(path string) inject.Locale {
	for _, hint := range []string{"zh", "CN", "中文"} {
		if strings.Contains(path, hint) {
			return inject.LocaleZH
		}
	}
	return inject.LocaleEN
}
