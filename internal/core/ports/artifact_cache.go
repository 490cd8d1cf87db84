package ports

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
)

// ArtifactCache stores source snapshots and binaries of package versions on disk.
//
//go:generate mockgen -source=artifact_cache.go -destination=mocks/mock_artifact_cache.go -package=mocks
type ArtifactCache interface {
	// Add stages the package found in projectFolder, and the binary when given, into the cache.
	Add(ctx context.Context, pkg *domain.SharedPackageConfig, projectFolder, binaryPath string) error

	// Verify checks a cache entry against its recorded digest.
	Verify(ctx context.Context, id string, version *semver.Version) error

	// Remove deletes a single cache entry.
	Remove(id string, version *semver.Version) error

	// Clean deletes the whole cache.
	Clean() error
}
