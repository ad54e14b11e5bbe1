// Package cmd provides CLI command implementations.
package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	cmdconfig "github.com/notscripter/compose-cli/internal/cmd/config"
	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/cmdutil"
	"github.com/notscripter/compose-cli/internal/config"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/process"
)

// skipConfigAnnotation marks commands that must run even when the config
// file cannot be loaded.
const skipConfigAnnotation = "compose/skip-config"

type rootFlags struct {
	config       string
	templatesDir string
	projectDir   string
	verbose      bool
	timestamps   bool
}

// NewRootCmd creates the root command for the compose CLI.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(&cmdtypes.GlobalConfig{})
}

// NewRootCmdWith creates the root command around gc. Collaborators already
// set on gc are kept; the rest get their terminal defaults.
func NewRootCmdWith(gc *cmdtypes.GlobalConfig) *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:   "compose",
		Short: "Scaffold, build and run Jetpack Compose projects",
		Long: `compose creates Android/Jetpack Compose projects from templates and
drives the Gradle, ADB and ImageMagick workflows around them.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, args []string) error {
			return initializeGlobals(c, gc, &flags)
		},
	}

	rootCmd.PersistentFlags().StringVar(&flags.config, "config", "", "Path to config file (env: COMPOSE_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&flags.templatesDir, "templates-dir", "", "Templates directory (env: COMPOSE_TEMPLATES_DIR)")
	rootCmd.PersistentFlags().StringVarP(&flags.projectDir, "project-dir", "C", ".", "Android project directory")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&flags.timestamps, "timestamps", true, "Show timestamps in log output")

	configCmd := cmdconfig.NewConfigCmd(gc)
	for _, sub := range configCmd.Commands() {
		sub.Annotations = map[string]string{skipConfigAnnotation: "true"}
	}

	rootCmd.AddCommand(
		NewInitCmd(gc),
		NewSyncCmd(gc),
		NewRunCmd(gc),
		NewListTemplatesCmd(gc),
		NewLauncherCmd(gc),
		configCmd,
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals sets up logging, loads configuration and fills gc.
func initializeGlobals(c *cobra.Command, gc *cmdtypes.GlobalConfig, flags *rootFlags) error {
	if gc.FS == nil {
		gc.FS = afero.NewOsFs()
	}
	if gc.Runner == nil {
		gc.Runner = process.NewExecRunner()
	}
	if gc.Reporter == nil {
		gc.Reporter = output.NewTerminalReporter(c.OutOrStdout(), c.ErrOrStderr())
	}
	if gc.Prompter == nil {
		gc.Prompter = cmdutil.HuhPrompter{}
	}
	if gc.Interactive == nil {
		gc.Interactive = output.IsInteractive
	}
	gc.Verbose = flags.verbose
	gc.ProjectDir = flags.projectDir

	configPath, err := config.Resolve("config",
		config.Value(config.SourceFlag, flags.config),
		config.Env("COMPOSE_CONFIG"),
		config.Value(config.SourceDefault, config.DefaultConfigFile()),
	)
	if err != nil {
		return err
	}
	gc.ConfigPath = configPath.Value

	cfg, err := config.NewLoader().Load(gc.ConfigPath)
	if err != nil {
		if c.Annotations[skipConfigAnnotation] == "" {
			return fmt.Errorf("loading config %s: %w", gc.ConfigPath, err)
		}
		cfg = (*config.Config)(nil).WithDefaults()
	}
	gc.Config = cfg

	// Build LogConfig with precedence: flag > config > default(true)
	logCfg := output.LogConfig{Verbose: flags.verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(flags.timestamps)
	} else if cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	templatesDir, err := config.Resolve("templatesDir",
		config.Value(config.SourceFlag, flags.templatesDir),
		config.Env("COMPOSE_TEMPLATES_DIR"),
		config.Value(config.SourceConfig, cfg.TemplatesDir),
		config.Value(config.SourceDefault, config.ExecutableTemplatesDir()),
		config.Value(config.SourceDefault, config.DataTemplatesDir()),
	)
	if err != nil {
		return err
	}
	gc.TemplatesDir, err = config.ExpandPath(templatesDir.Value)
	if err != nil {
		return fmt.Errorf("expanding templates directory: %w", err)
	}

	config.LogResolvedValues(configPath, templatesDir)
	output.Debug("initializing CLI",
		"config", gc.ConfigPath,
		"templatesDir", gc.TemplatesDir,
		"projectDir", gc.ProjectDir,
	)

	return nil
}
