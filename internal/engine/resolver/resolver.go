// Package resolver answers version queries from the local repository first and the
// remote registry second.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

var _ ports.VersionResolver = (*Resolver)(nil)

// Resolver implements ports.VersionResolver over a remote resolver and the artifact
// repository. Packages fetched from the remote are recorded in the repository.
type Resolver struct {
	remote ports.VersionResolver
	repo   ports.ArtifactRepository
	logger ports.Logger
}

// New creates a Resolver.
func New(remote ports.VersionResolver, repo ports.ArtifactRepository, logger ports.Logger) *Resolver {
	return &Resolver{remote: remote, repo: repo, logger: logger}
}

// Versions returns the union of the remote and the locally recorded versions of id,
// newest first. When the remote fails and versions are known locally those are used.
func (r *Resolver) Versions(ctx context.Context, id string) ([]*semver.Version, error) {
	local := r.localVersions(id)

	remote, err := r.remote.Versions(ctx, id)
	if err != nil {
		if len(local) == 0 || errors.Is(err, context.Canceled) || errors.Is(err, domain.ErrPackageNotFound) {
			return nil, err
		}
		r.logger.Warn(fmt.Sprintf("registry unavailable for %s, using %d local versions", id, len(local)))
		return newestFirst(local), nil
	}

	seen := make(map[string]struct{}, len(remote)+len(local))
	merged := make([]*semver.Version, 0, len(remote)+len(local))
	for _, v := range slices.Concat(remote, local) {
		if _, ok := seen[v.String()]; ok {
			continue
		}
		seen[v.String()] = struct{}{}
		merged = append(merged, v)
	}
	return newestFirst(merged), nil
}

// SharedPackage returns the recorded entry of id at version, fetching and recording it
// when the repository has none.
func (r *Resolver) SharedPackage(
	ctx context.Context,
	id string,
	version *semver.Version,
) (*domain.SharedPackageConfig, error) {
	if pkg, ok := r.repo.Artifact(r.localID(id), version); ok {
		return pkg, nil
	}

	pkg, err := r.remote.SharedPackage(ctx, id, version)
	if err != nil {
		return nil, err
	}
	if err := pkg.CheckVersion(version); err != nil {
		return nil, err
	}
	if err := r.repo.AddArtifact(ctx, pkg, "", ""); err != nil {
		return nil, err
	}
	return pkg, nil
}

// localID returns the id under which the repository records id, matching case-insensitively.
func (r *Resolver) localID(id string) string {
	for _, known := range r.repo.IDs() {
		if strings.EqualFold(known, id) {
			return known
		}
	}
	return id
}

func (r *Resolver) localVersions(id string) []*semver.Version {
	entries, ok := r.repo.ArtifactsFor(r.localID(id))
	if !ok {
		return nil
	}

	versions := make([]*semver.Version, 0, len(entries))
	for raw := range entries {
		v, err := semver.NewVersion(raw)
		if err != nil {
			r.logger.Warn(fmt.Sprintf("ignoring invalid recorded version %s of %s", raw, id))
			continue
		}
		versions = append(versions, v)
	}
	return versions
}

func newestFirst(versions []*semver.Version) []*semver.Version {
	slices.SortStableFunc(versions, func(a, b *semver.Version) int {
		return b.Compare(a)
	})
	return versions
}
