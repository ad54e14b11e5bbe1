// Package relocate moves Kotlin/Java sources from one package directory to
// another across the source roots of an Android project.
package relocate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/notscripter/compose-cli/internal/fsutil"
	"github.com/notscripter/compose-cli/internal/output"
)

// SourceRoot is a named source directory relative to the project root.
type SourceRoot struct {
	Name string
	Dir  string
}

// DefaultSourceRoots are the source roots of a standard single-module project.
var DefaultSourceRoots = []SourceRoot{
	{Name: "main", Dir: filepath.Join("app", "src", "main", "java")},
	{Name: "test", Dir: filepath.Join("app", "src", "test", "java")},
	{Name: "androidTest", Dir: filepath.Join("app", "src", "androidTest", "java")},
}

// Result reports which source roots were relocated.
type Result struct {
	Relocated []string
	Skipped   []string
}

// Relocator moves package directories under a fixed set of source roots.
type Relocator struct {
	fs    afero.Fs
	roots []SourceRoot
}

// New creates a Relocator. A nil roots slice means DefaultSourceRoots.
func New(fsys afero.Fs, roots []SourceRoot) *Relocator {
	if roots == nil {
		roots = DefaultSourceRoots
	}
	return &Relocator{fs: fsys, roots: roots}
}

// PackagePath converts a dotted id into a relative directory path.
func PackagePath(id string) string {
	return strings.ReplaceAll(id, ".", string(filepath.Separator))
}

// Relocate moves the sources of package oldID to newID under every existing
// source root of projectRoot. The top-level directory of the old id is staged
// away first, so old and new paths sharing a prefix never collide. Sibling
// packages under that directory are restored, empty ones and links included.
func (r *Relocator) Relocate(projectRoot, oldID, newID string) (*Result, error) {
	result := &Result{}
	if oldID == newID {
		output.Debug("package unchanged, nothing to relocate", "id", oldID)
		return result, nil
	}

	top, _, _ := strings.Cut(oldID, ".")
	oldPath := PackagePath(oldID)
	newPath := PackagePath(newID)

	for _, sr := range r.roots {
		root := filepath.Join(projectRoot, sr.Dir)
		if !fsutil.IsDir(r.fs, root) {
			output.Debug("source root missing, skipping", "root", sr.Name)
			result.Skipped = append(result.Skipped, sr.Name)
			continue
		}
		if !fsutil.IsDir(r.fs, filepath.Join(root, oldPath)) {
			output.Debug("package directory missing, skipping", "root", sr.Name, "package", oldID)
			result.Skipped = append(result.Skipped, sr.Name)
			continue
		}

		if err := r.relocateRoot(root, top, oldPath, newPath); err != nil {
			return nil, fmt.Errorf("relocating %s sources: %w", sr.Name, err)
		}
		output.Debug("relocated sources", "root", sr.Name, "from", oldID, "to", newID)
		result.Relocated = append(result.Relocated, sr.Name)
	}

	return result, nil
}

func (r *Relocator) relocateRoot(root, top, oldPath, newPath string) error {
	staging, err := afero.TempDir(r.fs, root, ".relocate-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer r.fs.RemoveAll(staging) //nolint:errcheck

	if err := r.fs.Rename(filepath.Join(root, top), filepath.Join(staging, top)); err != nil {
		return fmt.Errorf("staging %s: %w", top, err)
	}
	if err := r.restoreSiblings(staging, root, top, oldPath); err != nil {
		return err
	}

	dest := filepath.Join(root, newPath)
	if err := r.fs.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dest, err)
	}

	if err := fsutil.CopyTree(r.fs, filepath.Join(staging, oldPath), dest); err != nil {
		return err
	}

	return r.fs.RemoveAll(staging)
}

// restoreSiblings copies every entry staged under top, except the old package
// subtree, back to root. Ancestors of the old package are only recreated when
// something else lives in them.
func (r *Relocator) restoreSiblings(staging, root, top, oldPath string) error {
	pkg := filepath.Join(staging, oldPath)
	return afero.Walk(r.fs, filepath.Join(staging, top), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if path == pkg {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(staging, path)
		if err != nil {
			return err
		}
		target := filepath.Join(root, rel)

		if info.IsDir() {
			if strings.HasPrefix(pkg, path+string(filepath.Separator)) {
				return nil
			}
			output.Debug("restoring sibling directory", "path", rel)
			if err := r.fs.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("restoring %s: %w", rel, err)
			}
			return nil
		}

		output.Debug("restoring sibling entry", "path", rel)
		return fsutil.CopyEntry(r.fs, path, target, info)
	})
}
