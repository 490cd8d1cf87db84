package fs

import (
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
)

// CopyFile copies the regular file src to dst, creating dst's parent directories.
// The file mode of src is preserved.
func CopyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return stagingError(err, src, dst)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	info, err := in.Stat()
	if err != nil {
		return stagingError(err, src, dst)
	}

	if err := os.MkdirAll(filepath.Dir(dst), domain.DirPerm); err != nil {
		return stagingError(err, src, dst)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm()) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return stagingError(err, src, dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return stagingError(err, src, dst)
	}
	if err := out.Close(); err != nil {
		return stagingError(err, src, dst)
	}
	return nil
}

// Copy copies src to dst. Directories are copied recursively.
func (w *Walker) Copy(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return stagingError(err, src, dst)
	}
	if !info.IsDir() {
		return CopyFile(src, dst)
	}

	if err := os.MkdirAll(dst, domain.DirPerm); err != nil {
		return stagingError(err, src, dst)
	}

	var walkErr error
	for file := range w.WalkFiles(src, &walkErr) {
		rel, err := filepath.Rel(src, file)
		if err != nil {
			return stagingError(err, file, dst)
		}
		if err := CopyFile(file, filepath.Join(dst, rel)); err != nil {
			return err
		}
	}
	if walkErr != nil {
		return stagingError(walkErr, src, dst)
	}
	return nil
}

func stagingError(cause error, src, dst string) error {
	err := zerr.Wrap(domain.ErrStagingFailed, cause.Error())
	err = zerr.With(err, "src", src)
	return zerr.With(err, "dst", dst)
}
