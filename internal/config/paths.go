package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// appName names the per-user config and data directories.
const appName = "compose"

var statFile = os.Stat

// DefaultConfigFile returns $XDG_CONFIG_HOME/compose/config.yaml.
func DefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.yaml")
}

// DataTemplatesDir returns $XDG_DATA_HOME/compose/templates.
func DataTemplatesDir() string {
	return filepath.Join(xdg.DataHome, appName, "templates")
}

// ExecutableTemplatesDir returns the templates directory shipped next to the
// running binary, or "" when it cannot be determined or does not exist.
func ExecutableTemplatesDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	dir := filepath.Join(filepath.Dir(exe), "templates")
	if info, err := statFile(dir); err != nil || !info.IsDir() {
		return ""
	}
	return dir
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username is not supported
	return path, nil
}
