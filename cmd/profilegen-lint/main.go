package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"

	"github.com/goliatone/go-profilegen/pkg/content"
	"github.com/goliatone/go-profilegen/pkg/inject"
)

var contentFiles = map[inject.Locale]string{
	inject.LocaleZH: "zh.yaml",
	inject.LocaleEN: "en.yaml",
}

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr))
}

func run(args []string, errW io.Writer) int {
	flags := pflag.NewFlagSet("profilegen-lint", pflag.ContinueOnError)
	flags.SetOutput(errW)
	flags.Usage = func() {
		fmt.Fprintf(errW, "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(errW, "\nLint profile templates (.html), content files (.yaml) and config directories.\n")
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	paths := flags.Args()
	if len(paths) == 0 {
		paths = []string{"template.html", "config/sample"}
	}

	var violations []violation
	for _, path := range paths {
		linted, err := lintPath(path)
		if err != nil {
			fmt.Fprintf(errW, "lint %s: %v\n", path, err)
			return 1
		}
		violations = append(violations, linted...)
	}

	if len(violations) == 0 {
		return 0
	}
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
	for _, v := range violations {
		fmt.Fprintf(errW, "%s: %s -> %s\n", v.file, v.location, v.message)
	}
	return 1
}

func lintPath(path string) ([]violation, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return lintDir(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return lintTemplate(path)
	case ".yaml", ".yml":
		_, found, err := lintContent(path)
		return found, err
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func lintTemplate(path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	template := string(raw)

	res, err := inject.Apply(template, nil)
	if err != nil {
		return []violation{{file: path, location: "template", message: err.Error()}}, nil
	}

	var result []violation
	for _, locale := range res.Missing {
		result = append(result, violation{
			file:     path,
			location: "locale " + locale.String(),
			message:  "placeholder not found",
		})
	}
	for _, locale := range inject.Locales() {
		comment, _ := inject.Placeholder(locale)
		if n := strings.Count(template, comment); n > 1 {
			result = append(result, violation{
				file:     path,
				location: "locale " + locale.String(),
				message:  fmt.Sprintf("placeholder appears %d times, only the first is filled", n),
			})
		}
	}
	return result, nil
}

func lintContent(path string) (*content.Payload, []violation, error) {
	payload, err := content.LoadFile(path)
	if err != nil {
		var parseErr *content.ParseError
		if errors.As(err, &parseErr) {
			return nil, []violation{{file: path, location: "document", message: err.Error()}}, nil
		}
		return nil, nil, err
	}
	if payload.Len() == 0 {
		return payload, []violation{{file: path, location: "document", message: "content is empty"}}, nil
	}
	return payload, nil, nil
}

// lintDir checks a config directory: both locale files parse and share the
// same top level keys.
func lintDir(dir string) ([]violation, error) {
	var (
		result []violation
		keys   = make(map[inject.Locale]map[string]bool, len(contentFiles))
	)
	for _, locale := range inject.Locales() {
		path := filepath.Join(dir, contentFiles[locale])
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				result = append(result, violation{file: path, location: "locale " + locale.String(), message: "file does not exist"})
				continue
			}
			return nil, err
		}
		payload, found, err := lintContent(path)
		if err != nil {
			return nil, err
		}
		result = append(result, found...)
		if payload == nil {
			continue
		}
		var top map[string]any
		if err := payload.Decode(&top); err != nil {
			return nil, err
		}
		keys[locale] = make(map[string]bool, len(top))
		for key := range top {
			keys[locale][key] = true
		}
	}

	zh, en := keys[inject.LocaleZH], keys[inject.LocaleEN]
	if zh == nil || en == nil {
		return result, nil
	}
	for key := range zh {
		if !en[key] {
			result = append(result, violation{file: filepath.Join(dir, contentFiles[inject.LocaleEN]), location: "key " + key, message: "missing, present in zh.yaml"})
		}
	}
	for key := range en {
		if !zh[key] {
			result = append(result, violation{file: filepath.Join(dir, contentFiles[inject.LocaleZH]), location: "key " + key, message: "missing, present in en.yaml"})
		}
	}
	return result, nil
}
