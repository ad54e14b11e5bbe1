package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/config"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/project"
	"github.com/notscripter/compose-cli/internal/templates"
)

// NewInitCmd creates the init command.
func NewInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags cmdutil.InitFlags

	c := &cobra.Command{
		Use:   "init [name] [package] [location] [template]",
		Short: "Create a new project from a template",
		Long: `Create a new Android project from a template.

The template's project name and application id are replaced in every
source, build script and resource file, and the Kotlin/Java sources are
moved to the package directory of the new application id.

Each value is taken from its flag, then its positional argument, then
(for the template) the config file, and is prompted for on a terminal.
The location defaults to the project name.

Examples:
  # Prompt for everything
  compose init

  # Positional form
  compose init MyApp com.acme.myapp

  # Flags, with an explicit template and location
  compose init -n MyApp -p com.acme.myapp -l ./apps/my-app -t BottomNavigation`,
		Args: cobra.MaximumNArgs(4),
		RunE: func(c *cobra.Command, args []string) error {
			return runInit(c.Context(), gc, flags, args)
		},
	}

	flags.AddTo(c)
	return c
}

func runInit(ctx context.Context, gc *cmdtypes.GlobalConfig, flags cmdutil.InitFlags, args []string) error {
	rep := gc.Reporter
	registry := templates.NewRegistry(gc.FS, gc.TemplatesDir)

	name, err := config.Resolve("name", append([]config.Candidate{
		config.Value(config.SourceFlag, flags.Name),
		config.Value(config.SourceArg, cmdutil.Arg(args, 0)),
	}, cmdutil.InputCandidate(gc, "Project name", "MyApp")...)...)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read project name", err)
	}
	if err := project.ValidateName(name.Value); err != nil {
		return cmdutil.Fail(rep, "Missing project name", err)
	}

	pkg, err := config.Resolve("package", append([]config.Candidate{
		config.Value(config.SourceFlag, flags.Package),
		config.Value(config.SourceArg, cmdutil.Arg(args, 1)),
	}, cmdutil.InputCandidate(gc, "Package name", "com.example.myapp")...)...)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read package name", err)
	}
	if err := project.ValidateApplicationID(pkg.Value); err != nil {
		return cmdutil.Fail(rep, "Invalid package name", err)
	}

	location, err := config.Resolve("location",
		config.Value(config.SourceFlag, flags.Location),
		config.Value(config.SourceArg, cmdutil.Arg(args, 2)),
		config.Value(config.SourceDefault, name.Value),
	)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read location", err)
	}

	candidates := []config.Candidate{
		config.Value(config.SourceFlag, flags.Template),
		config.Value(config.SourceArg, cmdutil.Arg(args, 3)),
		config.Value(config.SourceConfig, gc.Config.DefaultTemplate),
	}
	candidates = append(candidates, cmdutil.SelectCandidate(gc, "Template", registry.Names)...)
	candidates = append(candidates, config.Value(config.SourceDefault, config.DefaultTemplate))
	tmplName, err := config.Resolve("template", candidates...)
	if err != nil {
		return cmdutil.Fail(rep, "Could not read template", err)
	}

	config.LogResolvedValues(name, pkg, location, tmplName)

	tmpl, err := registry.Resolve(tmplName.Value)
	if err != nil {
		return cmdutil.Fail(rep, "Unknown template", err)
	}

	materializer, err := templates.NewMaterializer(gc.FS, gc.Config.Rewrite.Include)
	if err != nil {
		return cmdutil.Fail(rep, "Invalid rewrite configuration", err)
	}

	var result *templates.Result
	err = output.RunWithSpinner(ctx, func() error {
		var mErr error
		result, mErr = materializer.Materialize(ctx, templates.Options{
			Template:    tmpl.Path,
			Target:      project.Identity{Name: name.Value, ID: pkg.Value},
			Destination: location.Value,
		})
		return mErr
	}, output.WithTitle(fmt.Sprintf("Creating %s from %s", name.Value, tmpl.Name)))
	if err != nil {
		return cmdutil.Fail(rep, fmt.Sprintf("Could not create %s", name.Value), err)
	}

	rep.Success(fmt.Sprintf("Created %s (%s) in %s",
		output.StyleNoun.Render(result.Name), result.ID, result.Destination))
	if gc.Verbose && len(result.Rewritten) > 0 {
		rep.Info(output.RenderTree(location.Value, result.Rewritten))
	}
	rep.Info(output.StyleDim.Render(fmt.Sprintf("Next: cd %s && compose run", location.Value)))
	return nil
}
