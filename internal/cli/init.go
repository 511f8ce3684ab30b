package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-profilegen"
	"github.com/goliatone/go-profilegen/internal/ctxlog"
	"github.com/goliatone/go-profilegen/internal/i18n"
)

func newInitCmd(opts Options, globals *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Write the starter template and sample configs",
		Long: `init writes template.html and config/sample/{zh,en}.yaml into dir (default the
current directory). Existing files are kept unless --force is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := setup(cmd, opts, globals)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			res, err := profilegen.InstallStarter(dir, force)
			if err != nil {
				return err
			}

			for _, name := range res.Written {
				e.say(i18n.MsgInitWrote, map[string]any{"Path": filepath.Join(dir, filepath.FromSlash(name))})
			}
			for _, name := range res.Skipped {
				e.warn(i18n.MsgInitSkipped, map[string]any{"Path": filepath.Join(dir, filepath.FromSlash(name))})
			}
			ctxlog.FromContext(cmd.Context()).Debug("starter installed", "dir", dir, "written", len(res.Written), "skipped", len(res.Skipped))
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}
