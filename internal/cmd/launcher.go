package cmd

import (
	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/config"
	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/launcher"
	"github.com/notscripter/compose-cli/internal/output"
)

// NewLauncherCmd creates the launcher command.
func NewLauncherCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.LauncherFlags

	c := &cobra.Command{
		Use:   "launcher [foreground] [background]",
		Short: "Generate adaptive launcher icons",
		Long: `Generate adaptive launcher icons for every mipmap density with ImageMagick.

Each layer is an image path or a hex color such as #3DDC84. The icons are
written to app/src/main/res, together with ic_launcher-playstore.png and,
when missing, mipmap-anydpi-v26/ic_launcher.xml.

Examples:
  compose launcher logo.png "#FFFFFF"
  compose launcher -f logo.png -b background.png`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runLauncher(c, gc, flags, args)
		},
	}

	flags.AddTo(c)
	return c
}

func runLauncher(c *cobra.Command, gc *cmdtypes.GlobalConfig, flags cmdutil.LauncherFlags, args []string) error {
	rep := gc.Reporter

	fg, err := config.Resolve("foreground", append([]config.Candidate{
		config.Value(config.SourceFlag, flags.Foreground),
		config.Value(config.SourceArg, cmdutil.Arg(args, 0)),
	}, cmdutil.InputCandidate(gc, "Foreground image", "logo.png")...)...)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read foreground", err)
	}

	bg, err := config.Resolve("background", append([]config.Candidate{
		config.Value(config.SourceFlag, flags.Background),
		config.Value(config.SourceArg, cmdutil.Arg(args, 1)),
	}, cmdutil.InputCandidate(gc, "Background image or color", "#FFFFFF")...)...)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read background", err)
	}
	config.LogResolvedValues(fg, bg)
	for _, v := range []config.ResolvedValue{fg, bg} {
		if !v.IsSet() {
			return cmdutil.Fail(rep, "Missing "+v.Key,
				oerrors.NewMalformedInputError(v.Key+" is required", v.Key, "pass an image path or a hex color such as #FFFFFF"))
		}
	}

	gen := launcher.NewGenerator(gc.FS, gc.Runner, gc.Config.Tools.Magick)
	title := "Generating launcher icons"

	var result *launcher.Result
	err = output.RunWithSpinner(c.Context(), func() error {
		var gErr error
		result, gErr = gen.Generate(c.Context(), gc.ProjectDir, launcher.Layers{
			Foreground: fg.Value,
			Background: bg.Value,
		})
		return gErr
	}, output.WithTitle(title))
	if err != nil {
		return cmdutil.Fail(rep, title, err)
	}

	rep.Success(title)
	if gc.Verbose {
		rep.Info(output.RenderTree("app/src/main", result.Files))
	}
	return nil
}
