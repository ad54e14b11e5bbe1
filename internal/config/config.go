// Package config provides configuration loading and value resolution.
package config

// Default tool binaries. Gradle runs through the project's wrapper script.
const (
	DefaultGradle = "./gradlew"
	DefaultAdb    = "adb"
	DefaultMagick = "magick"

	// DefaultTemplate is used when no template is given, none is configured
	// and no prompt is possible.
	DefaultTemplate = "EmptyActivity"
)

// DefaultRewriteInclude is the allow-list of files whose content is subject
// to identifier substitution.
var DefaultRewriteInclude = []string{"**/*.kt", "**/*.kts", "**/*.java", "**/*.xml"}

// ToolsConfig names the external executables.
type ToolsConfig struct {
	// Gradle is the gradle wrapper, relative to the project directory.
	// Env: COMPOSE_TOOLS_GRADLE
	Gradle string `mapstructure:"gradle" yaml:"gradle"`

	// Adb is the android debug bridge binary.
	// Env: COMPOSE_TOOLS_ADB
	Adb string `mapstructure:"adb" yaml:"adb"`

	// Magick is the ImageMagick binary.
	// Env: COMPOSE_TOOLS_MAGICK
	Magick string `mapstructure:"magick" yaml:"magick"`
}

// RewriteConfig controls identifier substitution during init.
type RewriteConfig struct {
	// Include lists doublestar globs, relative to the project root.
	Include []string `mapstructure:"include" yaml:"include"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the compose CLI configuration, loaded from
// $XDG_CONFIG_HOME/compose/config.yaml.
type Config struct {
	// TemplatesDir is the directory holding one sub-directory per template.
	// Env: COMPOSE_TEMPLATES_DIR
	TemplatesDir string `mapstructure:"templatesDir" yaml:"templatesDir,omitempty"`

	// DefaultTemplate is offered when init is run without a template.
	DefaultTemplate string `mapstructure:"defaultTemplate" yaml:"defaultTemplate"`

	Rewrite RewriteConfig `mapstructure:"rewrite" yaml:"rewrite"`
	Tools   ToolsConfig   `mapstructure:"tools" yaml:"tools"`
	Log     LogConfig     `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `compose config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		DefaultTemplate: DefaultTemplate,
		Rewrite: RewriteConfig{
			Include: append([]string(nil), DefaultRewriteInclude...),
		},
		Tools: ToolsConfig{
			Gradle: DefaultGradle,
			Adb:    DefaultAdb,
			Magick: DefaultMagick,
		},
	}
}

// WithDefaults returns a copy of c with blank tool and rewrite settings
// filled from DefaultConfig. DefaultTemplate stays blank when unset so init
// can still prompt for a template.
func (c *Config) WithDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		c = &Config{}
	}

	out := *c
	if len(out.Rewrite.Include) == 0 {
		out.Rewrite.Include = d.Rewrite.Include
	}
	if out.Tools.Gradle == "" {
		out.Tools.Gradle = d.Tools.Gradle
	}
	if out.Tools.Adb == "" {
		out.Tools.Adb = d.Tools.Adb
	}
	if out.Tools.Magick == "" {
		out.Tools.Magick = d.Tools.Magick
	}
	return &out
}
