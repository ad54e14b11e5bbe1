// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/spf13/afero"

	"github.com/notscripter/compose-cli/internal/config"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/process"
)

// Prompter asks the user for values interactively.
type Prompter interface {
	Input(title, placeholder string) (string, error)
	Select(title string, options []string) (string, error)
}

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor. Collaborators that are already set when the root command runs
// are kept, which is how tests inject fakes.
type GlobalConfig struct {
	// Config is the loaded configuration file merged with the environment.
	Config *config.Config

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// TemplatesDir is the resolved templates directory.
	TemplatesDir string

	// ProjectDir is the Android project the build commands operate on.
	ProjectDir string

	Verbose bool

	FS       afero.Fs
	Runner   process.StreamRunner
	Reporter output.Reporter
	Prompter Prompter

	// Interactive reports whether prompting is possible.
	Interactive func() bool
}

// CanPrompt reports whether a Prompter is set and the session is interactive.
func (g *GlobalConfig) CanPrompt() bool {
	return g.Prompter != nil && g.Interactive != nil && g.Interactive()
}
