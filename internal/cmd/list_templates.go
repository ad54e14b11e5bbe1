package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/templates"
)

// NewListTemplatesCmd creates the list-templates command.
func NewListTemplatesCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:     "list-templates",
		Aliases: []string{"templates"},
		Short:   "List available project templates",
		Long: `List the templates in the templates directory.

The directory is taken from --templates-dir, COMPOSE_TEMPLATES_DIR, the
templatesDir config key, a templates directory next to the compose binary,
or $XDG_DATA_HOME/compose/templates, in that order.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			list, err := templates.NewRegistry(gc.FS, gc.TemplatesDir).List()
			if err != nil {
				return cmdutil.Fail(gc.Reporter, "Could not list templates", err)
			}
			if len(list) == 0 {
				gc.Reporter.Info(fmt.Sprintf("No templates found in %s", gc.TemplatesDir))
				return nil
			}

			tbl := output.NewTable("NAME", "DESCRIPTION")
			for _, t := range list {
				tbl.Row(t.Name, t.Description)
			}
			if output.IsTTY() {
				fmt.Fprintln(c.OutOrStdout(), tbl.String())
			} else {
				fmt.Fprint(c.OutOrStdout(), tbl.Plain())
			}
			return nil
		},
	}
}
