// Package rewrite substitutes identifiers in the text files of a project tree.
package rewrite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/notscripter/compose-cli/internal/output"
)

// Replacement is one literal substitution.
type Replacement struct {
	From string
	To   string
}

// Result summarizes a rewrite pass.
type Result struct {
	// Scanned is the number of files that matched the allow-list.
	Scanned int

	// Modified lists rewritten files, relative to the walk root, in walk order.
	Modified []string

	// Replacements is the total number of substitutions made.
	Replacements int
}

// Rewriter applies replacements to files matching an allow-list of globs.
type Rewriter struct {
	fs      afero.Fs
	include []string
}

// New creates a Rewriter. Patterns are doublestar globs matched against the
// slash-separated path relative to the walk root.
func New(fsys afero.Fs, include []string) (*Rewriter, error) {
	for _, p := range include {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid rewrite pattern %q", p)
		}
	}
	return &Rewriter{fs: fsys, include: include}, nil
}

// Matches reports whether the relative path is subject to substitution.
func (r *Rewriter) Matches(rel string) bool {
	rel = filepath.ToSlash(rel)
	for _, p := range r.include {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

// Rewrite walks root and applies replacements, in order, to every matching
// regular file. A file is written back only when its content changed.
// File names are never changed.
func (r *Rewriter) Rewrite(root string, replacements []Replacement) (*Result, error) {
	result := &Result{}

	err := afero.Walk(r.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		if !r.Matches(rel) {
			return nil
		}
		result.Scanned++

		data, err := afero.ReadFile(r.fs, path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}

		updated, n := Apply(string(data), replacements)
		if n == 0 || updated == string(data) {
			return nil
		}

		if err := afero.WriteFile(r.fs, path, []byte(updated), info.Mode().Perm()); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		result.Modified = append(result.Modified, rel)
		result.Replacements += n
		output.Debug("rewrote file", "path", rel, "replacements", n)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Apply performs every replacement on content in slice order. Later
// replacements see the output of earlier ones. Entries with an empty From
// are skipped. It returns the new content and the number of substitutions.
func Apply(content string, replacements []Replacement) (string, int) {
	total := 0
	for _, rep := range replacements {
		if rep.From == "" {
			continue
		}
		n := strings.Count(content, rep.From)
		if n == 0 {
			continue
		}
		content = strings.ReplaceAll(content, rep.From, rep.To)
		total += n
	}
	return content, total
}
