package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/gradle"
	"github.com/notscripter/compose-cli/internal/process"
)

// NewSyncCmd creates the sync command.
func NewSyncCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Refresh the project's Gradle dependencies",
		Long: `Run the Gradle wrapper with --refresh-dependencies in the project directory.

Examples:
  compose sync
  compose sync -C ./apps/my-app`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			if err := cmdutil.RequireProject(gc.FS, gc.ProjectDir); err != nil {
				return cmdutil.Fail(gc.Reporter, "Sync failed", err)
			}

			runner := process.WithProgress(gc.Runner, gc.Reporter, "Syncing project")
			w := gradle.NewWrapper(runner, gc.Config.Tools.Gradle, gc.ProjectDir)
			if err := w.Sync(c.Context()); err != nil {
				return cmdutil.Fail(gc.Reporter, "Sync failed", err)
			}
			return nil
		},
	}
}
