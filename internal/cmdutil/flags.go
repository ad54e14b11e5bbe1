// Package cmdutil provides shared command utilities for the compose commands.
// It centralizes flag groups, interactive prompting, project checks and
// failure reporting.
package cmdutil

import (
	"github.com/spf13/cobra"
)

// InitFlags holds the flags of `compose init`.
type InitFlags struct {
	Name     string
	Package  string
	Location string
	Template string
}

// AddTo registers the init flags on the given cobra command.
func (f *InitFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Name, "name", "n", "",
		"Project name")
	cmd.Flags().StringVarP(&f.Package, "package", "p", "",
		"Application id, e.g. com.example.myapp")
	cmd.Flags().StringVarP(&f.Location, "location", "l", "",
		"Directory to create (default: project name)")
	cmd.Flags().StringVarP(&f.Template, "template", "t", "",
		"Template name or path (default: from config)")
}

// RunFlags holds the flags of `compose run`.
type RunFlags struct {
	Device string
	Logcat bool
}

// AddTo registers the run flags on the given cobra command.
func (f *RunFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Device, "device", "d", "",
		"Device serial (required when more than one device is attached)")
	cmd.Flags().BoolVar(&f.Logcat, "logcat", false,
		"Stream colorized logcat after launching")
}

// LauncherFlags holds the flags of `compose launcher`.
type LauncherFlags struct {
	Foreground string
	Background string
}

// AddTo registers the launcher flags on the given cobra command.
func (f *LauncherFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Foreground, "foreground", "f", "",
		"Image path or hex color for the foreground layer")
	cmd.Flags().StringVarP(&f.Background, "background", "b", "",
		"Image path or hex color for the background layer")
}

// Arg returns args[i], or "" when there are fewer arguments.
func Arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}
