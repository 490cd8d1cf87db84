package ports

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
)

// ArtifactRepository is the persisted index of locally known package versions.
//
//go:generate mockgen -source=repository.go -destination=mocks/mock_repository.go -package=mocks
type ArtifactRepository interface {
	// Lock takes the cross-process repository lock and reloads the document from disk.
	Lock(ctx context.Context) error

	// Unlock releases the lock taken by Lock.
	Unlock() error

	// Artifact returns the entry for id at version.
	Artifact(id string, version *semver.Version) (*domain.SharedPackageConfig, bool)

	// ArtifactsFor returns every entry of id keyed by version.
	ArtifactsFor(id string) (map[string]domain.SharedPackageConfig, bool)

	// IDs returns the known package ids in sorted order.
	IDs() []string

	// AddArtifact stages the package into the artifact cache when a project folder or binary
	// is given and records it in the repository.
	AddArtifact(ctx context.Context, pkg *domain.SharedPackageConfig, projectFolder, binaryPath string) error

	// RemoveArtifact deletes an entry and reports whether it existed.
	RemoveArtifact(id string, version *semver.Version) bool

	// Clear drops every entry.
	Clear()

	// Write persists the document.
	Write() error
}
