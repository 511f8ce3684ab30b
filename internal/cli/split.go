package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-profilegen/internal/i18n"
	"github.com/goliatone/go-profilegen/pkg/generator"
	"github.com/goliatone/go-profilegen/pkg/inject"
)

type splitFlags struct {
	pageFlags
	key   string
	input string
	root  string
	build bool
}

func newSplitCmd(opts Options, globals *globalFlags) *cobra.Command {
	flags := &splitFlags{}

	cmd := &cobra.Command{
		Use:   "split --key KEY --input FILE",
		Short: "Split a combined zh --- en YAML document into a config directory",
		Long: `split stores a combined document, Chinese first and English second separated
by a "---" line, as <config-root>/<key>/zh.yaml and en.yaml. Content that cannot
be split is kept as <config-root>/<key>/config.yaml.

With --build the page is generated from the new directory right away, by
default into <home>/temp/<key>/<key>.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts, globals)
			if err != nil {
				return err
			}
			return runSplit(cmd, e, flags)
		},
	}

	set := cmd.Flags()
	set.StringVarP(&flags.key, "key", "k", "", "config directory name ([a-zA-Z0-9_-]+)")
	set.StringVarP(&flags.input, "input", "f", "", `combined YAML file, "-" reads stdin`)
	set.StringVar(&flags.root, "config-root", "", "directory holding keyed config directories (default <home>/"+generator.ConfigRoot+")")
	set.BoolVar(&flags.build, "build", false, "generate the page from the split content")
	flags.pageFlags.bind(set)
	_ = cmd.MarkFlagRequired("key")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runSplit(cmd *cobra.Command, e *env, flags *splitFlags) error {
	ctx := cmd.Context()

	if !generator.ValidKey(flags.key) {
		return e.fail(i18n.MsgErrInvalidKey, map[string]any{"Key": flags.key}, fmt.Errorf("%w: %q", generator.ErrInvalidKey, flags.key))
	}

	data, err := readInput(cmd.InOrStdin(), flags.input)
	if err != nil {
		var missing *generator.MissingFileError
		if errors.As(err, &missing) {
			return e.fail(i18n.MsgErrMissingInput, map[string]any{"Path": missing.Path}, err)
		}
		return err
	}

	res, err := e.gen.Split(ctx, generator.SplitRequest{Key: flags.key, Data: data, Root: flags.root})
	if err != nil {
		return e.fail(i18n.MsgErrProcess, map[string]any{"Error": err.Error()}, err)
	}

	req := flags.pageFlags.request()
	if res.Unsplit != "" {
		e.warn(i18n.MsgSplitUnsplit, map[string]any{"Path": res.Unsplit})
		// Locale comes from the input name as typed.
		req.Config = res.Unsplit
		req.Locale = generator.InferLocale(flags.input)
	} else {
		for _, locale := range inject.Locales() {
			e.say(i18n.MsgSplitSaved, map[string]any{
				"Language": e.tr.LocaleName(locale.String()),
				"Path":     res.Files[locale],
			})
		}
		req.Dir = res.Dir
	}
	if res.Extra > 0 {
		e.warn(i18n.MsgSplitExtra, map[string]any{"Count": res.Extra})
	}

	if !flags.build {
		return nil
	}
	if strings.TrimSpace(req.Output) == "" {
		req.Output = filepath.Join(e.gen.BaseDir(), "temp", flags.key, flags.key+".html")
	}
	return runBuild(ctx, e, req, &flags.pageFlags)
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("cli: read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &generator.MissingFileError{Role: generator.RoleBundle, Path: path, Err: err}
		}
		return nil, fmt.Errorf("cli: read %s: %w", path, err)
	}
	return data, nil
}
