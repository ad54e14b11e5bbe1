package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for compose configuration.
const envPrefix = "COMPOSE"

// Loader handles loading and merging configuration from file and environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys must be known to viper for AutomaticEnv to apply during Unmarshal.
	d := DefaultConfig()
	v.SetDefault("rewrite.include", d.Rewrite.Include)
	v.SetDefault("tools.gradle", d.Tools.Gradle)
	v.SetDefault("tools.adb", d.Tools.Adb)
	v.SetDefault("tools.magick", d.Tools.Magick)
	v.SetDefault("templatesDir", "")
	v.SetDefault("defaultTemplate", "")

	_ = v.BindEnv("templatesDir", "COMPOSE_TEMPLATES_DIR")
	_ = v.BindEnv("defaultTemplate", "COMPOSE_DEFAULT_TEMPLATE")
	_ = v.BindEnv("log.timestamps", "COMPOSE_LOG_TIMESTAMPS")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, the default config file path is used.
// A missing file is not an error. Environment variables take precedence
// over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		configFile = DefaultConfigFile()
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = statFile(expandedPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}
