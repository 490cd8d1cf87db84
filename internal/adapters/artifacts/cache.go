// Package artifacts stages package sources and binaries into the on-disk artifact cache.
//
// Each package version owns a directory {root}/{id}/{version}:
//
//	tmp/    present while a write is in progress
//	src/    snapshot of the shared directory and depot.json
//	lib/    release and debug binaries
//	digest  xxhash digest of src/ and lib/
package artifacts

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactCache = (*Cache)(nil)

// Cache implements ports.ArtifactCache on the local file system.
type Cache struct {
	root     string
	loader   ports.ConfigLoader
	digester ports.Digester
	walker   *fs.Walker
	logger   ports.Logger
}

// NewCache creates a Cache rooted at root.
func NewCache(root string, loader ports.ConfigLoader, digester ports.Digester, logger ports.Logger) *Cache {
	return &Cache{
		root:     filepath.Clean(root),
		loader:   loader,
		digester: digester,
		walker:   fs.NewWalker(),
		logger:   logger,
	}
}

// EntryPath returns the directory of a package version. Ids that would leave the
// cache root are rejected.
func (c *Cache) EntryPath(id string, version *semver.Version) (string, error) {
	if err := domain.ValidatePackageID(id); err != nil {
		return "", err
	}
	return filepath.Join(c.root, id, version.String()), nil
}

// Add stages the package found in projectFolder into the cache. The shared directory
// and depot.json are copied into src/, the binary, when given, into lib/ under the
// package's binary name together with its debug_ sibling if one exists.
// A previous entry is replaced entirely. When the staged depot.json declares another
// version than pkg the snapshot is discarded and ErrVersionMismatch is returned.
func (c *Cache) Add(ctx context.Context, pkg *domain.SharedPackageConfig, projectFolder, binaryPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	id, version := pkg.ID(), pkg.Version()
	if version == nil {
		return zerr.With(zerr.Wrap(domain.ErrMissingPackageVersion, "cannot cache a package without a version"), "id", id)
	}
	if projectFolder == "" {
		return zerr.With(zerr.Wrap(domain.ErrStagingFailed, "a project folder is required"), "id", id)
	}

	base, err := c.EntryPath(id, version)
	if err != nil {
		return err
	}
	tmpPath := filepath.Join(base, domain.CacheTmpDirName)
	srcPath := filepath.Join(base, domain.CacheSrcDirName)
	libPath := filepath.Join(base, domain.CacheLibDirName)

	c.logger.Info(fmt.Sprintf("caching %s %s", id, version))

	if exists(tmpPath) {
		c.logger.Warn(fmt.Sprintf("removing interrupted cache write of %s %s", id, version))
		if err := os.RemoveAll(tmpPath); err != nil {
			return stagingError(err, tmpPath, "")
		}
	}
	if exists(srcPath) {
		if err := os.RemoveAll(srcPath); err != nil {
			return stagingError(err, srcPath, "")
		}
	}

	if err := os.MkdirAll(tmpPath, domain.DirPerm); err != nil {
		return stagingError(err, "", tmpPath)
	}
	if err := os.MkdirAll(srcPath, domain.DirPerm); err != nil {
		return stagingError(err, "", srcPath)
	}

	if err := c.stageSources(pkg, projectFolder, srcPath); err != nil {
		return err
	}
	if binaryPath != "" {
		if err := c.stageBinaries(pkg, binaryPath, libPath); err != nil {
			return err
		}
	}

	if err := c.checkVersion(pkg, srcPath); err != nil {
		_ = os.RemoveAll(srcPath)
		return err
	}

	digest, err := c.digester.Digest(srcPath, libPath)
	if err != nil {
		return err
	}
	digestPath := filepath.Join(base, domain.CacheDigestFileName)
	if err := fs.WriteFileAtomic(digestPath, []byte(digest+"\n"), domain.FilePerm); err != nil {
		return stagingError(err, "", digestPath)
	}

	if err := os.RemoveAll(tmpPath); err != nil {
		return stagingError(err, tmpPath, "")
	}
	return nil
}

func (c *Cache) stageSources(pkg *domain.SharedPackageConfig, projectFolder, srcPath string) error {
	if dir := pkg.Config.SharedDir; dir != "" {
		if err := c.walker.Copy(filepath.Join(projectFolder, dir), filepath.Join(srcPath, dir)); err != nil {
			return err
		}
	}
	return fs.CopyFile(
		filepath.Join(projectFolder, domain.PackageFileName),
		filepath.Join(srcPath, domain.PackageFileName),
	)
}

func (c *Cache) stageBinaries(pkg *domain.SharedPackageConfig, binaryPath, libPath string) error {
	if err := fs.CopyFile(binaryPath, filepath.Join(libPath, pkg.Config.BinaryName())); err != nil {
		return err
	}

	debugPath := filepath.Join(filepath.Dir(binaryPath), domain.DebugBinaryPrefix+filepath.Base(binaryPath))
	if !exists(debugPath) {
		return nil
	}
	return fs.CopyFile(debugPath, filepath.Join(libPath, pkg.Config.DebugBinaryName()))
}

func (c *Cache) checkVersion(pkg *domain.SharedPackageConfig, srcPath string) error {
	staged, err := c.loader.LoadPackage(filepath.Join(srcPath, domain.PackageFileName))
	if err != nil {
		return err
	}
	if staged.Info.Version.Equal(pkg.Version()) {
		return nil
	}

	mismatch := zerr.Wrap(domain.ErrVersionMismatch, "staged package declares another version")
	mismatch = zerr.With(mismatch, "id", pkg.ID())
	mismatch = zerr.With(mismatch, "expected", pkg.Version().String())
	return zerr.With(mismatch, "actual", staged.Info.Version.String())
}

// Verify recomputes the digest of a cache entry and compares it with the recorded one.
func (c *Cache) Verify(ctx context.Context, id string, version *semver.Version) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	base, err := c.EntryPath(id, version)
	if err != nil {
		return err
	}
	recorded, err := os.ReadFile(filepath.Join(base, domain.CacheDigestFileName)) //nolint:gosec // Path is derived from the cache root
	if errors.Is(err, iofs.ErrNotExist) {
		notFound := zerr.Wrap(domain.ErrArtifactNotFound, "cache entry has no digest")
		return zerr.With(zerr.With(notFound, "id", id), "version", version.String())
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrDigestFailed.Error()), "path", base)
	}

	if exists(filepath.Join(base, domain.CacheTmpDirName)) {
		interrupted := zerr.Wrap(domain.ErrDigestMismatch, "cache entry write was interrupted")
		return zerr.With(zerr.With(interrupted, "id", id), "version", version.String())
	}

	actual, err := c.digester.Digest(
		filepath.Join(base, domain.CacheSrcDirName),
		filepath.Join(base, domain.CacheLibDirName),
	)
	if err != nil {
		return err
	}

	expected := strings.TrimSpace(string(recorded))
	if actual != expected {
		mismatch := zerr.Wrap(domain.ErrDigestMismatch, "cache entry changed on disk")
		mismatch = zerr.With(mismatch, "id", id)
		mismatch = zerr.With(mismatch, "version", version.String())
		mismatch = zerr.With(mismatch, "expected", expected)
		return zerr.With(mismatch, "actual", actual)
	}
	return nil
}

// Remove deletes a single cache entry. The package directory is removed once empty.
func (c *Cache) Remove(id string, version *semver.Version) error {
	base, err := c.EntryPath(id, version)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(base); err != nil {
		return stagingError(err, base, "")
	}

	parent := filepath.Dir(base)
	if entries, err := os.ReadDir(parent); err == nil && len(entries) == 0 {
		_ = os.Remove(parent)
	}
	return nil
}

// Clean deletes the whole cache.
func (c *Cache) Clean() error {
	if err := os.RemoveAll(c.root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheCleanFailed.Error()), "path", c.root)
	}
	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func stagingError(cause error, src, dst string) error {
	err := zerr.Wrap(domain.ErrStagingFailed, cause.Error())
	if src != "" {
		err = zerr.With(err, "src", src)
	}
	if dst != "" {
		err = zerr.With(err, "dst", dst)
	}
	return err
}
