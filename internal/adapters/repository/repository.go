// Package repository persists the index of locally known package versions.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ArtifactRepository = (*Repository)(nil)

// document is the on-disk shape of the repository file.
type document struct {
	Artifacts map[string]map[string]domain.SharedPackageConfig `json:"artifacts"`
}

// Repository implements ports.ArtifactRepository backed by a single JSON document.
type Repository struct {
	path  string
	cache ports.ArtifactCache

	mu        sync.RWMutex
	artifacts map[string]map[string]domain.SharedPackageConfig
	lock      *fileLock
}

// Read opens the repository document at path. The parent directory is created when
// missing and an absent document yields an empty repository.
func Read(path string, cache ports.ArtifactCache) (*Repository, error) {
	r := &Repository{
		path:      path,
		cache:     cache,
		artifacts: make(map[string]map[string]domain.SharedPackageConfig),
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "path", path)
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Repository) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, iofs.ErrNotExist) {
		r.artifacts = make(map[string]map[string]domain.SharedPackageConfig)
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryReadFailed.Error()), "path", r.path)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRepositoryCorrupt, err.Error()), "path", r.path)
	}
	if doc.Artifacts == nil {
		doc.Artifacts = make(map[string]map[string]domain.SharedPackageConfig)
	}
	r.artifacts = doc.Artifacts
	return nil
}

// Lock takes the repository lock file and reloads the document so that the caller
// works on the latest state.
func (r *Repository) Lock(ctx context.Context) error {
	lockPath := filepath.Join(filepath.Dir(r.path), domain.RepositoryLockFileName)
	lock, err := acquire(ctx, lockPath)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.load(); err != nil {
		_ = lock.release()
		return err
	}
	r.lock = lock
	return nil
}

// Unlock releases the lock taken by Lock. It is a no-op when the lock is not held.
func (r *Repository) Unlock() error {
	r.mu.Lock()
	lock := r.lock
	r.lock = nil
	r.mu.Unlock()

	if lock == nil {
		return nil
	}
	return lock.release()
}

// Artifact returns the entry of id at version.
func (r *Repository) Artifact(id string, version *semver.Version) (*domain.SharedPackageConfig, bool) {
	if version == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.artifacts[r.key(id)]
	if !ok {
		return nil, false
	}
	pkg, ok := versions[version.String()]
	if !ok {
		return nil, false
	}
	return &pkg, true
}

// ArtifactsFor returns a copy of every entry of id keyed by version.
func (r *Repository) ArtifactsFor(id string) (map[string]domain.SharedPackageConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	versions, ok := r.artifacts[r.key(id)]
	if !ok {
		return nil, false
	}
	out := make(map[string]domain.SharedPackageConfig, len(versions))
	for v, pkg := range versions {
		out[v] = pkg
	}
	return out, true
}

// key returns the recorded spelling of id. Ids match case-insensitively and an exact
// match wins. The caller holds mu.
func (r *Repository) key(id string) string {
	if _, ok := r.artifacts[id]; ok {
		return id
	}
	for known := range r.artifacts {
		if strings.EqualFold(known, id) {
			return known
		}
	}
	return id
}

// IDs returns the known package ids sorted case-insensitively.
func (r *Repository) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.artifacts))
	for id := range r.artifacts {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return ids
}

// AddArtifact records pkg under its id and version. When a project folder or binary is
// given the package is staged through the artifact cache first, and a staging failure
// leaves the repository untouched.
func (r *Repository) AddArtifact(
	ctx context.Context,
	pkg *domain.SharedPackageConfig,
	projectFolder, binaryPath string,
) error {
	if pkg.Version() == nil {
		return zerr.With(zerr.Wrap(domain.ErrMissingPackageVersion, "cannot record artifact"), "id", pkg.ID())
	}

	if projectFolder != "" || binaryPath != "" {
		if err := r.cache.Add(ctx, pkg, projectFolder, binaryPath); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.key(pkg.ID())
	versions, ok := r.artifacts[id]
	if !ok {
		versions = make(map[string]domain.SharedPackageConfig)
		r.artifacts[id] = versions
	}
	versions[pkg.Version().String()] = *pkg
	return nil
}

// RemoveArtifact deletes an entry and reports whether it existed. An id without
// versions is dropped.
func (r *Repository) RemoveArtifact(id string, version *semver.Version) bool {
	if version == nil {
		return false
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id = r.key(id)
	versions, ok := r.artifacts[id]
	if !ok {
		return false
	}
	if _, ok := versions[version.String()]; !ok {
		return false
	}
	delete(versions, version.String())
	if len(versions) == 0 {
		delete(r.artifacts, id)
	}
	return true
}

// Clear drops every entry.
func (r *Repository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.artifacts = make(map[string]map[string]domain.SharedPackageConfig)
}

// Write persists the document atomically.
func (r *Repository) Write() error {
	r.mu.RLock()
	data, err := json.MarshalIndent(document{Artifacts: r.artifacts}, "", "  ")
	r.mu.RUnlock()
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryWriteFailed.Error()), "path", r.path)
	}

	if err := fs.WriteFileAtomic(r.path, append(data, '\n'), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrRepositoryWriteFailed.Error()), "path", r.path)
	}
	return nil
}
