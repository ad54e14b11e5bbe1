package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/version"
)

// NewVersionCmd creates the version command.
func NewVersionCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show compose CLI version information.

Displays:
  - compose version, commit, build date and Go version
  - the adb and magick executables found in PATH`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			out := c.OutOrStdout()
			fmt.Fprintln(out, version.Get().String())

			tools := []version.Tool{
				{Name: "adb", Bin: gc.Config.Tools.Adb, VersionArgs: []string{"version"}},
				{Name: "magick", Bin: gc.Config.Tools.Magick, VersionArgs: []string{"-version"}},
			}
			fmt.Fprintln(out, "\nTools:")
			for _, t := range tools {
				info := version.DetectTool(c.Context(), gc.Runner, t)
				fmt.Fprintf(out, "  %-10s %s\n", info.Name+":", info.String())
				if !info.Found {
					output.Debug("tool not found", "tool", t.Name, "bin", t.Bin)
				}
			}
			return nil
		},
	}
}
