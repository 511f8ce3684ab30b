package generator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/goliatone/go-profilegen/internal/ctxlog"
	"github.com/goliatone/go-profilegen/pkg/content"
	"github.com/goliatone/go-profilegen/pkg/inject"
)

// UnsplitFileName is used when a bundle cannot be split into locales.
const UnsplitFileName = "config.yaml"

var keyPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidKey reports whether key may name a config directory.
func ValidKey(key string) bool {
	return keyPattern.MatchString(key)
}

// SplitRequest stores a combined "zh --- en" document as a keyed config
// directory that directory mode can build from.
type SplitRequest struct {
	Key  string
	Data []byte
	// Root is the directory holding keyed config directories. Empty means
	// config/ under the base directory; relative paths resolve against it.
	Root string
}

// SplitResult reports what Split wrote.
type SplitResult struct {
	Dir string
	// Files maps each locale to its file. When the bundle could not be split
	// it is empty and Unsplit holds the single file written instead.
	Files   map[inject.Locale]string
	Unsplit string
	// Extra counts documents after the English one that were dropped.
	Extra int
}

// Split validates the key, splits the bundle and writes zh.yaml and en.yaml
// into <root>/<key>. Both documents must parse before either is written. A
// bundle with fewer than two documents is stored verbatim as config.yaml.
func (g *Generator) Split(ctx context.Context, req SplitRequest) (SplitResult, error) {
	if err := ctx.Err(); err != nil {
		return SplitResult{}, err
	}
	if !ValidKey(req.Key) {
		return SplitResult{}, fmt.Errorf("%w: %q", ErrInvalidKey, req.Key)
	}
	logger := ctxlog.FromContext(ctx)

	root := strings.TrimSpace(req.Root)
	if root == "" {
		root = ConfigRoot
	}
	dir := filepath.Join(g.resolve(root), req.Key)
	res := SplitResult{Dir: dir}

	bundle := content.SplitBundle(req.Data)
	zh, en, ok := bundle.Localized()
	if !ok {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return SplitResult{}, fmt.Errorf("generator: create %s: %w", dir, err)
		}
		res.Unsplit = filepath.Join(dir, UnsplitFileName)
		if err := writeDocument(res.Unsplit, []byte(strings.TrimSpace(string(req.Data)))); err != nil {
			return SplitResult{}, err
		}
		logger.Warn("content could not be split into locales", "key", req.Key, "file", res.Unsplit)
		return res, nil
	}

	docs := map[inject.Locale][]byte{
		inject.LocaleZH: zh,
		inject.LocaleEN: en,
	}
	for _, locale := range inject.Locales() {
		if _, err := content.Parse(docs[locale], fmt.Sprintf("%s (%s)", req.Key, contentFiles[locale])); err != nil {
			return SplitResult{}, err
		}
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SplitResult{}, fmt.Errorf("generator: create %s: %w", dir, err)
	}
	res.Files = make(map[inject.Locale]string, len(docs))
	for _, locale := range inject.Locales() {
		path := filepath.Join(dir, contentFiles[locale])
		if err := writeDocument(path, docs[locale]); err != nil {
			return SplitResult{}, err
		}
		res.Files[locale] = path
		logger.Debug("config saved", "locale", locale, "path", path)
	}

	res.Extra = bundle.Extra()
	if res.Extra > 0 {
		logger.Warn("extra documents ignored", "key", req.Key, "count", res.Extra)
	}
	return res, nil
}

func writeDocument(path string, data []byte) error {
	if len(data) > 0 && data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("generator: write %s: %w", path, err)
	}
	return nil
}
