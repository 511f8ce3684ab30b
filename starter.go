// Package profilegen ships the starter page template and sample content used by
// the init command and the generator's sample mode.
package profilegen

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// InstallResult lists the starter files written and the ones left alone
// because they already existed. Paths are slash separated and relative to the
// install directory.
type InstallResult struct {
	Written []string
	Skipped []string
}

// InstallStarter copies the starter files into dir. Existing files are kept
// unless force is set.
func InstallStarter(dir string, force bool) (InstallResult, error) {
	var res InstallResult
	fsys := StarterFS()

	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		target := filepath.Join(dir, filepath.FromSlash(name))
		if !force {
			if _, statErr := os.Stat(target); statErr == nil {
				res.Skipped = append(res.Skipped, name)
				return nil
			} else if !errors.Is(statErr, fs.ErrNotExist) {
				return statErr
			}
		}

		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(target, data, 0o644); err != nil {
			return err
		}
		res.Written = append(res.Written, name)
		return nil
	})
	if err != nil {
		return InstallResult{}, fmt.Errorf("profilegen: install starter files: %w", err)
	}
	return res, nil
}
