package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/adb"
	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/gradle"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/process"
	"github.com/notscripter/compose-cli/internal/project"
)

// NewRunCmd creates the run command.
func NewRunCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.RunFlags

	c := &cobra.Command{
		Use:   "run",
		Short: "Build, install and launch the app on a device",
		Long: `Build the debug apk, install it on a device and start its launcher activity.

With a single attached device no --device is needed. With --logcat the
device log is streamed, colorized by level, until interrupted.

Examples:
  compose run
  compose run -d emulator-5554 --logcat`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runRun(c, gc, flags)
		},
	}

	flags.AddTo(c)
	return c
}

func runRun(c *cobra.Command, gc *cmdtypes.GlobalConfig, flags cmdutil.RunFlags) error {
	ctx := c.Context()
	rep := gc.Reporter
	tools := gc.Config.Tools

	if err := cmdutil.RequireProject(gc.FS, gc.ProjectDir); err != nil {
		return cmdutil.Fail(rep, "Run failed", err)
	}
	if flags.Device != "" {
		if err := adb.ValidateDeviceID(flags.Device); err != nil {
			return cmdutil.Fail(rep, "Invalid device", err)
		}
	}

	appID, err := project.ApplicationID(gc.FS, gc.ProjectDir)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read application id", err)
	}

	devices, err := adb.NewClient(gc.Runner, tools.Adb).Devices(ctx)
	if err != nil {
		return cmdutil.Fail(rep, "Could not list devices", err)
	}
	device, err := adb.SelectDevice(devices, flags.Device)
	if err != nil {
		return cmdutil.Fail(rep, "No device to run on", err)
	}
	via := device.ID
	if device.Wireless() {
		via += ", wireless"
	}
	rep.Info(fmt.Sprintf("Using %s (%s)", output.StyleNoun.Render(device.Model), via))

	build := gradle.NewWrapper(process.WithProgress(gc.Runner, rep, "Building debug apk"), tools.Gradle, gc.ProjectDir)
	if err := build.AssembleDebug(ctx); err != nil {
		return cmdutil.Fail(rep, "Build failed", err)
	}

	install := adb.NewClient(process.WithProgress(gc.Runner, rep, "Installing "+appID), tools.Adb)
	if err := install.Install(ctx, device.ID, build.DebugAPK()); err != nil {
		return cmdutil.Fail(rep, "Install failed", err)
	}

	if err := launch(ctx, gc, device.ID, appID); err != nil {
		return err
	}

	if !flags.Logcat {
		return nil
	}
	rep.Info(output.StyleDim.Render("Streaming logcat, press Ctrl+C to stop"))
	out := c.OutOrStdout()
	err = adb.NewClient(gc.Runner, tools.Adb).Logcat(ctx, gc.Runner, device.ID, func(line string) {
		if s, ok := output.FormatLogcatLine(line); ok {
			fmt.Fprintln(out, s)
		}
	})
	if err != nil {
		return cmdutil.Fail(rep, "Logcat stopped", err)
	}
	return nil
}

// launch resolves the launcher activity after installation, so a first run
// on a fresh device finds it.
func launch(ctx context.Context, gc *cmdtypes.GlobalConfig, deviceID, appID string) error {
	client := adb.NewClient(gc.Runner, gc.Config.Tools.Adb)
	activity, err := client.MainActivity(ctx, deviceID, appID)
	if err != nil {
		return cmdutil.Fail(gc.Reporter, "Could not find launcher activity", err)
	}

	starter := adb.NewClient(process.WithProgress(gc.Runner, gc.Reporter, "Launching "+activity), gc.Config.Tools.Adb)
	if err := starter.Launch(ctx, deviceID, activity); err != nil {
		return cmdutil.Fail(gc.Reporter, "Launch failed", err)
	}
	return nil
}
