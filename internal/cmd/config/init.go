package config

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/config"
	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/fsutil"
)

const configHeader = `# compose CLI configuration
# Every key can be overridden with a COMPOSE_ environment variable,
# e.g. COMPOSE_TEMPLATES_DIR or COMPOSE_TOOLS_ADB.

`

// NewConfigInitCmd creates the config init command.
func NewConfigInitCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create a new configuration file",
		Long: `Create a new compose configuration file with default values.

The configuration file is created at $XDG_CONFIG_HOME/compose/config.yaml
by default. Use --config flag to specify a different location.

Examples:
  # Initialize configuration
  compose config init

  # Overwrite existing configuration
  compose config init --force`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			path, err := writeDefaultConfig(gc.FS, gc.ConfigPath, force)
			if err != nil {
				return cmdutil.Fail(gc.Reporter, "Could not create config file", err)
			}
			gc.Reporter.Success(fmt.Sprintf("Config file created: %s", path))
			return nil
		},
	}

	c.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config file")

	return c
}

func writeDefaultConfig(fsys afero.Fs, configFile string, force bool) (string, error) {
	if configFile == "" {
		configFile = config.DefaultConfigFile()
	}

	expandedPath, err := config.ExpandPath(configFile)
	if err != nil {
		return "", fmt.Errorf("expanding config path: %w", err)
	}

	if fsutil.Exists(fsys, expandedPath) && !force {
		return "", oerrors.NewAlreadyExistsError(
			"config file already exists", expandedPath, "use --force to overwrite")
	}

	if err := fsys.MkdirAll(filepath.Dir(expandedPath), 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	data = append([]byte(configHeader), data...)

	if err := afero.WriteFile(fsys, expandedPath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return expandedPath, nil
}
