package ports

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
)

// VersionResolver answers which versions of a package exist and what each one contains.
//
//go:generate mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type VersionResolver interface {
	// Versions returns the available versions of a package, preferred first.
	Versions(ctx context.Context, id string) ([]*semver.Version, error)

	// SharedPackage returns the package config and resolved dependencies of a concrete version.
	SharedPackage(ctx context.Context, id string, version *semver.Version) (*domain.SharedPackageConfig, error)
}
