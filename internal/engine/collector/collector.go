// Package collector computes the transitive dependency closure of a package.
package collector

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

// Resolution is the outcome of a collection pass: the closure and, for every closure
// entry, the package it resolved to.
type Resolution struct {
	Closure  *domain.Closure
	Packages map[domain.DependencyKey]*domain.SharedPackageConfig
}

// NewResolution returns an empty Resolution.
func NewResolution() *Resolution {
	return &Resolution{
		Closure:  domain.NewClosure(),
		Packages: make(map[domain.DependencyKey]*domain.SharedPackageConfig),
	}
}

// Package returns the resolved package of a closure entry.
func (r *Resolution) Package(dep domain.SharedDependency) (*domain.SharedPackageConfig, bool) {
	pkg, ok := r.Packages[dep.Key()]
	return pkg, ok
}

// Collector walks dependency graphs through a ports.VersionResolver.
type Collector struct {
	resolver ports.VersionResolver
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a Collector.
func New(resolver ports.VersionResolver, logger ports.Logger, tracer ports.Tracer) *Collector {
	return &Collector{resolver: resolver, logger: logger, tracer: tracer}
}

// CollectAll resolves every declared dependency of pkg into a fresh Resolution.
// Nothing is returned when any dependency fails.
func (c *Collector) CollectAll(ctx context.Context, pkg *domain.PackageConfig) (*Resolution, error) {
	ctx, span := c.tracer.Start(ctx, "collect "+pkg.Info.ID,
		ports.WithAttribute("dependencies", len(pkg.Dependencies)))
	defer span.End()

	res := NewResolution()
	for _, dep := range pkg.Dependencies {
		if err := c.Collect(ctx, dep, pkg.Info.ID, res); err != nil {
			span.RecordError(err)
			return nil, err
		}
	}
	span.SetAttribute("closure_size", res.Closure.Len())
	return res, nil
}

// Collect resolves dep and its public transitive dependencies into res on behalf of the
// package ownerID. A dependency on ownerID itself is skipped.
func (c *Collector) Collect(ctx context.Context, dep domain.Dependency, ownerID string, res *Resolution) error {
	return c.collect(ctx, dep, nil, ownerID, res, nil)
}

// collect resolves one dependency. pinned is set for restored entries of an already
// resolved package; stack holds the lower-cased ids currently being resolved.
func (c *Collector) collect(
	ctx context.Context,
	dep domain.Dependency,
	pinned *semver.Version,
	ownerID string,
	res *Resolution,
	stack []string,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dep.SameID(ownerID) {
		return nil
	}

	id := strings.ToLower(dep.ID)
	if slices.Contains(stack, id) {
		path := strings.Join(append(slices.Clone(stack), id), " -> ")
		return zerr.With(zerr.Wrap(domain.ErrDependencyCycle, "package depends on itself"), "path", path)
	}

	ctx, span := c.tracer.Start(ctx, "resolve "+dep.ID, ports.WithAttribute("range", dep.VersionRange.String()))
	defer span.End()

	pkg, requested, err := c.resolve(ctx, dep, pinned)
	if err == nil {
		err = pkg.CheckVersion(requested)
	}
	if err != nil {
		span.RecordError(err)
		return err
	}

	version := pkg.Version()
	span.SetAttribute("version", version.String())
	c.logger.Info(fmt.Sprintf("resolved %s %s", dep.ID, version))

	restored := pkg.PublicDependencies()
	public := *pkg
	public.RestoredDependencies = restored

	shared := domain.SharedDependency{Dependency: dep.Clone(), Version: version}
	if shared.Dependency.AdditionalData.ModLink == nil && pkg.Config.Info.AdditionalData.ModLink != nil {
		modLink := *pkg.Config.Info.AdditionalData.ModLink
		shared.Dependency.AdditionalData.ModLink = &modLink
	}

	inserted, err := res.Closure.Add(shared)
	if err != nil {
		span.RecordError(err)
		return err
	}
	if !inserted {
		return nil
	}
	res.Packages[shared.Key()] = &public

	stack = append(stack, id)
	for _, next := range restored {
		if err := c.collect(ctx, next.Dependency, next.Version, ownerID, res, stack); err != nil {
			return err
		}
	}
	return nil
}

// resolve fetches the package dep refers to and returns it with the version it was
// requested at. A pinned version is used as is when it satisfies the range; otherwise
// the first listed version in range is chosen.
func (c *Collector) resolve(
	ctx context.Context,
	dep domain.Dependency,
	pinned *semver.Version,
) (*domain.SharedPackageConfig, *semver.Version, error) {
	if pinned != nil {
		if !dep.VersionRange.Allows(pinned) {
			return nil, nil, unresolved(dep, zerr.With(
				zerr.Wrap(domain.ErrUnresolvedDependency, "restored version is outside the dependency range"),
				"version", pinned.String(),
			))
		}
		pkg, err := c.resolver.SharedPackage(ctx, dep.ID, pinned)
		return pkg, pinned, err
	}

	versions, err := c.resolver.Versions(ctx, dep.ID)
	if err != nil {
		return nil, nil, zerr.With(zerr.Wrap(err, "failed to list versions"), "id", dep.ID)
	}
	for _, v := range versions {
		if dep.VersionRange.Allows(v) {
			pkg, err := c.resolver.SharedPackage(ctx, dep.ID, v)
			return pkg, v, err
		}
	}
	return nil, nil, unresolved(dep, zerr.Wrap(domain.ErrUnresolvedDependency, "no available version matches"))
}

func unresolved(dep domain.Dependency, err error) error {
	return zerr.With(zerr.With(err, "id", dep.ID), "range", dep.VersionRange.String())
}
