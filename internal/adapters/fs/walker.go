// Package fs provides file system helpers for walking, copying and digesting package trees.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker yields the regular files below a directory in lexical order.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkFiles yields every file below root. VCS metadata directories are skipped.
// Walking stops at the first error, which is reported through errp when non-nil.
func (w *Walker) WalkFiles(root string, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if name := d.Name(); name == ".git" || name == ".jj" {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
		if errp != nil {
			*errp = err
		}
	}
}
