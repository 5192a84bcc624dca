// Package fs provides file system adapters for walking shader trees, fingerprinting
// tasks and checking whether outputs are stale.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.SourceWalker = (*Walker)(nil)

// Walker provides file walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root in lexical order, skipping VCS and
// shaderbuild state directories and any directory or file whose name matches
// one of the ignore patterns. Paths include root.
//
// A walk failure is yielded once with an empty path, after which iteration stops.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if skip, action := w.shouldSkip(d, ignores); skip {
				return action
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
		if err != nil {
			yield("", zerr.With(zerr.Wrap(err, domain.ErrInputWalkFailed.Error()), "root", root))
		}
	}
}

// shouldSkip reports whether d is excluded. The returned action is
// filepath.SkipDir for directories and nil for files.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()

	if d.IsDir() {
		switch name {
		case ".git", ".jj", domain.StateDirName:
			return true, filepath.SkipDir
		}
	}

	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
