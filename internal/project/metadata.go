// Package project reads application metadata from Gradle build descriptors.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
)

// Descriptor keys.
const (
	KeyApplicationName = "rootProject.name"
	KeyApplicationID   = "applicationId"
)

// Descriptor candidates, relative to the project root. The first that exists wins.
var (
	SettingsDescriptors = []string{"settings.gradle.kts", "settings.gradle"}
	ModuleDescriptors   = []string{
		filepath.Join("app", "build.gradle.kts"),
		filepath.Join("app", "build.gradle"),
	}
)

// Identity is the pair that identifies an application.
type Identity struct {
	// Name is the human-readable project name (rootProject.name).
	Name string

	// ID is the reverse-domain application id (applicationId).
	ID string
}

// ReadIdentity reads the application name and id of the project at root.
func ReadIdentity(fsys afero.Fs, root string) (Identity, error) {
	name, err := ApplicationName(fsys, root)
	if err != nil {
		return Identity{}, err
	}
	id, err := ApplicationID(fsys, root)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Name: name, ID: id}, nil
}

// ApplicationName returns rootProject.name from the settings descriptor.
func ApplicationName(fsys afero.Fs, root string) (string, error) {
	file, err := findDescriptor(fsys, root, SettingsDescriptors)
	if err != nil {
		return "", err
	}
	return LookupKey(fsys, file, KeyApplicationName)
}

// ApplicationID returns applicationId from the app module descriptor.
func ApplicationID(fsys afero.Fs, root string) (string, error) {
	file, err := findDescriptor(fsys, root, ModuleDescriptors)
	if err != nil {
		return "", err
	}
	return LookupKey(fsys, file, KeyApplicationID)
}

// LookupKey returns the value assigned to key in file. Only the first line
// starting with key is considered; the value is everything after the first
// '=', trimmed, with one pair of surrounding double quotes removed. Spaces
// inside the quotes are kept.
func LookupKey(fsys afero.Fs, file, key string) (string, error) {
	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", oerrors.NewNotFoundError("build descriptor not found", file, "")
		}
		return "", fmt.Errorf("reading %s: %w", file, err)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, key) {
			continue
		}

		_, value, ok := strings.Cut(line, "=")
		value = unquote(strings.TrimSpace(value))
		if !ok || strings.TrimSpace(value) == "" {
			return "", &oerrors.DetailError{
				Type:     "malformed input",
				Message:  fmt.Sprintf("%s has no value", key),
				Location: file,
				Field:    key,
				Cause:    oerrors.ErrMalformedInput,
			}
		}
		return value, nil
	}

	return "", &oerrors.DetailError{
		Type:     "not found",
		Message:  fmt.Sprintf("%s is not declared", key),
		Location: file,
		Field:    key,
		Cause:    oerrors.ErrNotFound,
	}
}

func unquote(s string) string {
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		return s[1 : len(s)-1]
	}
	return s
}

func findDescriptor(fsys afero.Fs, root string, candidates []string) (string, error) {
	for _, c := range candidates {
		path := filepath.Join(root, c)
		ok, err := afero.Exists(fsys, path)
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", path, err)
		}
		if ok {
			return path, nil
		}
	}
	return "", oerrors.NewNotFoundError(
		"build descriptor not found",
		filepath.Join(root, candidates[0]),
		fmt.Sprintf("expected one of: %s", strings.Join(candidates, ", ")),
	)
}
