package templates

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/notscripter/compose-cli/internal/config"
	oerrors "github.com/notscripter/compose-cli/internal/errors"
	"github.com/notscripter/compose-cli/internal/fsutil"
	"github.com/notscripter/compose-cli/internal/output"
	"github.com/notscripter/compose-cli/internal/project"
	"github.com/notscripter/compose-cli/internal/relocate"
	"github.com/notscripter/compose-cli/internal/rewrite"
)

// Options configures Materialize.
type Options struct {
	// Template is the template directory.
	Template string

	// Target is the identity of the new project.
	Target project.Identity

	// Destination is the directory to create. It must not exist.
	Destination string
}

// Result describes a materialized project.
type Result struct {
	Name        string
	ID          string
	Destination string

	// Source is the identity found in the template.
	Source project.Identity

	// Rewritten lists files whose content changed, relative to the project.
	Rewritten []string

	// Relocated lists the source roots whose package directory moved.
	Relocated []string
}

// Materializer instantiates templates into new project directories.
type Materializer struct {
	fs        afero.Fs
	rewriter  *rewrite.Rewriter
	relocator *relocate.Relocator
}

// NewMaterializer creates a Materializer. A nil include list uses the
// default rewrite allow-list.
func NewMaterializer(fsys afero.Fs, include []string) (*Materializer, error) {
	if include == nil {
		include = config.DefaultRewriteInclude
	}
	rw, err := rewrite.New(fsys, include)
	if err != nil {
		return nil, err
	}
	return &Materializer{
		fs:        fsys,
		rewriter:  rw,
		relocator: relocate.New(fsys, nil),
	}, nil
}

// Materialize copies the template into a scratch directory, replaces the
// template identity with the target identity, relocates the source package
// and promotes the result to the destination. The destination is left
// untouched on any failure, and the scratch directory is always removed.
func (m *Materializer) Materialize(ctx context.Context, opts Options) (*Result, error) {
	if !fsutil.IsDir(m.fs, opts.Template) {
		return nil, oerrors.NewNotFoundError("template not found", opts.Template, "run 'compose list-templates' to see available templates")
	}

	dest, err := filepath.Abs(opts.Destination)
	if err != nil {
		return nil, fmt.Errorf("resolving destination: %w", err)
	}

	// The identity comes from the original template so a broken copy cannot
	// change what gets replaced.
	source, err := project.ReadIdentity(m.fs, opts.Template)
	if err != nil {
		return nil, err
	}
	output.Debug("template identity", "name", source.Name, "id", source.ID)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	scratch, err := afero.TempDir(m.fs, "", "compose-template-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer func() {
		if rmErr := m.fs.RemoveAll(scratch); rmErr != nil {
			output.Warn("could not remove scratch directory", "path", scratch, "error", rmErr)
		}
	}()

	if err := fsutil.CopyTree(m.fs, opts.Template, scratch); err != nil {
		return nil, fmt.Errorf("copying template: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rewritten, err := m.rewriter.Rewrite(scratch, []rewrite.Replacement{
		{From: source.ID, To: opts.Target.ID},
		{From: source.Name, To: opts.Target.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("rewriting identifiers: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	relocated, err := m.relocator.Relocate(scratch, source.ID, opts.Target.ID)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := m.promote(scratch, dest); err != nil {
		return nil, err
	}

	return &Result{
		Name:        opts.Target.Name,
		ID:          opts.Target.ID,
		Destination: dest,
		Source:      source,
		Rewritten:   rewritten.Modified,
		Relocated:   relocated.Relocated,
	}, nil
}

// promote copies scratch next to dest under a hidden name and renames it
// into place, so dest only appears once it is complete.
func (m *Materializer) promote(scratch, dest string) error {
	if fsutil.Exists(m.fs, dest) {
		return oerrors.NewAlreadyExistsError("directory already exists", dest, "choose another location or remove the directory")
	}

	parent := filepath.Dir(dest)
	if err := m.fs.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", parent, err)
	}

	staging, err := afero.TempDir(m.fs, parent, "."+filepath.Base(dest)+"-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	if err := m.fs.Chmod(staging, 0o755); err != nil {
		_ = m.fs.RemoveAll(staging)
		return fmt.Errorf("setting permissions on %s: %w", staging, err)
	}

	if err := fsutil.CopyTree(m.fs, scratch, staging); err != nil {
		_ = m.fs.RemoveAll(staging)
		return fmt.Errorf("copying project: %w", err)
	}

	if fsutil.Exists(m.fs, dest) {
		_ = m.fs.RemoveAll(staging)
		return oerrors.NewAlreadyExistsError("directory already exists", dest, "")
	}
	if err := m.fs.Rename(staging, dest); err != nil {
		_ = m.fs.RemoveAll(staging)
		return fmt.Errorf("moving project into place: %w", err)
	}
	return nil
}
