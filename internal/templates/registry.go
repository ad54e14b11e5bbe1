// Package templates lists project templates and materializes new projects
// from them.
package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/fsutil"
	"github.com/notscripter/compose-cli/internal/output"
)

// MetadataFile is the optional per-template description file.
const MetadataFile = "template.yaml"

// Template is one entry of the template registry.
type Template struct {
	Name        string `yaml:"-"`
	Path        string `yaml:"-"`
	Description string `yaml:"description"`
	URL         string `yaml:"url"`
}

// Registry enumerates the templates under a directory. Each sub-directory is
// a template.
type Registry struct {
	fs  afero.Fs
	dir string
}

// NewRegistry creates a registry rooted at dir.
func NewRegistry(fsys afero.Fs, dir string) *Registry {
	return &Registry{fs: fsys, dir: dir}
}

// Dir returns the templates directory.
func (r *Registry) Dir() string {
	return r.dir
}

// List returns all templates sorted by name.
func (r *Registry) List() ([]Template, error) {
	if !fsutil.IsDir(r.fs, r.dir) {
		return nil, oerrors.NewNotFoundError(
			"templates directory not found",
			r.dir,
			"set --templates-dir, COMPOSE_TEMPLATES_DIR or templatesDir in the config file",
		)
	}

	entries, err := afero.ReadDir(r.fs, r.dir)
	if err != nil {
		return nil, fmt.Errorf("reading templates directory: %w", err)
	}

	list := make([]Template, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		t, err := r.load(e.Name(), filepath.Join(r.dir, e.Name()))
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list, nil
}

// Names returns the names of all templates, sorted.
func (r *Registry) Names() ([]string, error) {
	list, err := r.List()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(list))
	for i, t := range list {
		names[i] = t.Name
	}
	return names, nil
}

// Resolve returns the template named nameOrPath. A value containing a path
// separator, or naming an existing directory outside the registry, is used
// as a template path directly.
func (r *Registry) Resolve(nameOrPath string) (Template, error) {
	if nameOrPath == "" {
		return Template{}, oerrors.NewMalformedInputError("template is required", "template", "")
	}

	candidate := filepath.Join(r.dir, nameOrPath)
	if !strings.ContainsAny(nameOrPath, `/\`) && fsutil.IsDir(r.fs, candidate) {
		return r.load(nameOrPath, candidate)
	}

	if fsutil.IsDir(r.fs, nameOrPath) {
		abs, err := filepath.Abs(nameOrPath)
		if err != nil {
			abs = nameOrPath
		}
		return r.load(filepath.Base(abs), abs)
	}

	hint := ""
	if names, err := r.Names(); err == nil && len(names) > 0 {
		hint = "available templates: " + strings.Join(names, ", ")
	}
	return Template{}, oerrors.NewNotFoundError(
		fmt.Sprintf("template %q not found", nameOrPath), r.dir, hint)
}

func (r *Registry) load(name, path string) (Template, error) {
	t := Template{}

	data, err := afero.ReadFile(r.fs, filepath.Join(path, MetadataFile))
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return Template{}, fmt.Errorf("reading %s: %w", MetadataFile, err)
	default:
		if err := yaml.Unmarshal(data, &t); err != nil {
			output.Debug("ignoring invalid template metadata", "template", name, "error", err)
			t = Template{}
		}
	}

	t.Name = name
	t.Path = path
	return t, nil
}
