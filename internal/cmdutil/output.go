package cmdutil

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/fsutil"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/project"
)

// Fail reports summary through the reporter, logs the cause at debug level
// and wraps err with its exit code.
func Fail(rep output.Reporter, summary string, err error) error {
	rep.Error(summary)
	output.Debug("command failed", "summary", summary, "error", err)
	return oerrors.NewExitError(err)
}

// RequireProject checks that dir contains a Gradle settings descriptor.
func RequireProject(fsys afero.Fs, dir string) error {
	for _, name := range project.SettingsDescriptors {
		if fsutil.Exists(fsys, filepath.Join(dir, name)) {
			return nil
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	return oerrors.NewNotFoundError(
		"not an Android project",
		abs,
		fmt.Sprintf("expected %s; run from the project root or pass --project-dir",
			strings.Join(project.SettingsDescriptors, " or ")),
	)
}
