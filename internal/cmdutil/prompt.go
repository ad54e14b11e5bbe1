package cmdutil

import (
	"github.com/charmbracelet/huh"

	"github.com/notscripter/compose-cli/internal/cmdtypes"
	"github.com/notscripter/compose-cli/internal/config"
)

// HuhPrompter prompts on the terminal with huh forms.
type HuhPrompter struct{}

// Input asks for a single line of text.
func (HuhPrompter) Input(title, placeholder string) (string, error) {
	var value string
	err := huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(&value).
		Run()
	return value, err
}

// Select asks the user to pick one of options.
func (HuhPrompter) Select(title string, options []string) (string, error) {
	var value string
	err := huh.NewSelect[string]().
		Title(title).
		Options(huh.NewOptions(options...)...).
		Value(&value).
		Run()
	return value, err
}

// InputCandidate returns a lazy prompt candidate, or nothing when the
// session cannot prompt.
func InputCandidate(gc *cmdtypes.GlobalConfig, title, placeholder string) []config.Candidate {
	if !gc.CanPrompt() {
		return nil
	}
	return []config.Candidate{config.Lazy(config.SourcePrompt, func() (string, error) {
		return gc.Prompter.Input(title, placeholder)
	})}
}

// SelectCandidate returns a lazy selection candidate over the options
// produced by list, or nothing when the session cannot prompt.
func SelectCandidate(gc *cmdtypes.GlobalConfig, title string, list func() ([]string, error)) []config.Candidate {
	if !gc.CanPrompt() {
		return nil
	}
	return []config.Candidate{config.Lazy(config.SourcePrompt, func() (string, error) {
		options, err := list()
		if err != nil || len(options) == 0 {
			return "", err
		}
		return gc.Prompter.Select(title, options)
	})}
}
