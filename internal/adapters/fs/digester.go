package fs

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Digester = (*Digester)(nil)

// Digester computes xxhash digests of files and directory trees.
type Digester struct {
	walker *Walker
}

// NewDigester creates a new Digester.
func NewDigester(walker *Walker) *Digester {
	return &Digester{walker: walker}
}

// FileHash returns the xxhash of a file's content.
func (d *Digester) FileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return h.Sum64(), nil
}

// Digest hashes the given paths in order. Files inside a directory are recorded by
// their slash-separated path relative to that directory, so a digest does not change
// when a tree is moved. Missing paths contribute only a marker.
func (d *Digester) Digest(paths ...string) (string, error) {
	h := xxhash.New()

	for _, root := range paths {
		info, err := os.Stat(root)
		if errors.Is(err, iofs.ErrNotExist) {
			_, _ = h.Write([]byte{0, 0})
			continue
		}
		if err != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDigestFailed, err.Error()), "path", root)
		}

		if !info.IsDir() {
			if err := d.hashFile(h, filepath.Base(root), root); err != nil {
				return "", err
			}
			_, _ = h.Write([]byte{0})
			continue
		}

		var walkErr error
		for file := range d.walker.WalkFiles(root, &walkErr) {
			rel, err := filepath.Rel(root, file)
			if err != nil {
				return "", zerr.With(zerr.Wrap(domain.ErrDigestFailed, err.Error()), "path", file)
			}
			if err := d.hashFile(h, filepath.ToSlash(rel), file); err != nil {
				return "", err
			}
		}
		if walkErr != nil {
			return "", zerr.With(zerr.Wrap(domain.ErrDigestFailed, walkErr.Error()), "path", root)
		}
		_, _ = h.Write([]byte{0})
	}

	return fmt.Sprintf("%016x", h.Sum64()), nil
}

func (d *Digester) hashFile(h *xxhash.Digest, name, path string) error {
	_, _ = h.WriteString(name)
	_, _ = h.Write([]byte{0})

	sum, err := d.FileHash(path)
	if err != nil {
		return zerr.Wrap(err, domain.ErrDigestFailed.Error())
	}
	if err := binary.Write(h, binary.LittleEndian, sum); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
