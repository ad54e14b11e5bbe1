// Package fsutil holds filesystem helpers shared by the scaffolding steps.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	oerrors "github.com/notscripter/compose-cli/internal/errors"
)

// CopyTree recursively copies src into dst, creating dst when needed.
// Existing files in dst are overwritten; file modes are preserved. Symlinks
// are recreated with the same target; anything else that is not a regular
// file or directory is rejected.
func CopyTree(fsys afero.Fs, src, dst string) error {
	info, err := lstat(fsys, src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if !info.IsDir() {
		return CopyEntry(fsys, src, dst, info)
	}

	return afero.Walk(fsys, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := fsys.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("creating directory %s: %w", target, err)
			}
			return nil
		}
		return CopyEntry(fsys, path, target, info)
	})
}

// CopyEntry copies a single non-directory entry described by info.
func CopyEntry(fsys afero.Fs, src, dst string, info os.FileInfo) error {
	switch {
	case info.Mode().IsRegular():
		return copyFile(fsys, src, dst, info.Mode())
	case info.Mode()&os.ModeSymlink != 0:
		return copySymlink(fsys, src, dst)
	default:
		return oerrors.NewMalformedInputError(
			fmt.Sprintf("%s is not a regular file, directory or symlink", src), src, "")
	}
}

func copySymlink(fsys afero.Fs, src, dst string) error {
	reader, canRead := fsys.(afero.LinkReader)
	linker, canLink := fsys.(afero.Linker)
	if !canRead || !canLink {
		return oerrors.NewMalformedInputError(
			fmt.Sprintf("cannot copy symlink %s: filesystem does not support links", src), src, "")
	}

	target, err := reader.ReadlinkIfPossible(src)
	if err != nil {
		return fmt.Errorf("reading link %s: %w", src, err)
	}
	if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(dst), err)
	}
	if _, err := lstat(fsys, dst); err == nil {
		if err := fsys.Remove(dst); err != nil {
			return fmt.Errorf("replacing %s: %w", dst, err)
		}
	}
	if err := linker.SymlinkIfPossible(target, dst); err != nil {
		return fmt.Errorf("linking %s: %w", dst, err)
	}
	return nil
}

// lstat does not follow a final symlink when the filesystem can tell links apart.
func lstat(fsys afero.Fs, path string) (os.FileInfo, error) {
	if l, ok := fsys.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return fsys.Stat(path)
}

func copyFile(fsys afero.Fs, src, dst string, mode os.FileMode) (err error) {
	in, err := fsys.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	if err := fsys.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", filepath.Dir(dst), err)
	}

	out, err := fsys.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode.Perm())
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", dst, cerr)
		}
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copying %s: %w", src, err)
	}
	// OpenFile keeps the old mode of an existing file.
	return fsys.Chmod(dst, mode.Perm())
}

// IsDir reports whether path exists and is a directory.
func IsDir(fsys afero.Fs, path string) bool {
	ok, err := afero.IsDir(fsys, path)
	return err == nil && ok
}

// Exists reports whether path exists.
func Exists(fsys afero.Fs, path string) bool {
	ok, err := afero.Exists(fsys, path)
	return err == nil && ok
}
