// Package app implements the application layer for depot.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/depot/internal/adapters/config" //nolint:depguard // Settings persistence is wired in app layer
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/collector"
	"go.trai.ch/depot/internal/ui/output"
	"go.trai.ch/depot/internal/ui/style"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	loader    ports.ConfigLoader
	repo      ports.ArtifactRepository
	collector *collector.Collector
	cache     ports.ArtifactCache
	watcher   ports.Watcher
	logger    ports.Logger
	settings  *domain.Settings
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	repo ports.ArtifactRepository,
	coll *collector.Collector,
	cache ports.ArtifactCache,
	watcher ports.Watcher,
	log ports.Logger,
	settings *domain.Settings,
) *App {
	return &App{
		loader:    loader,
		repo:      repo,
		collector: coll,
		cache:     cache,
		watcher:   watcher,
		logger:    log,
		settings:  settings,
	}
}

// Restore resolves the dependencies declared in {dir}/depot.json and writes the
// result to {dir}/depot.shared.json. The repository is saved only after the whole
// closure resolved.
func (a *App) Restore(ctx context.Context, dir string) error {
	cfg, err := a.loader.LoadPackage(filepath.Join(dir, domain.PackageFileName))
	if err != nil {
		return err
	}

	if err := a.repo.Lock(ctx); err != nil {
		return err
	}
	defer a.unlock()

	res, err := a.collector.CollectAll(ctx, cfg)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "restore failed"), "package", cfg.Info.ID)
	}

	restored := res.Closure.Sorted()
	for i := range restored {
		if pkg, ok := res.Package(restored[i]); ok {
			restored[i].Dependency.AdditionalData.MergePackage(pkg.Config.Info.AdditionalData)
		}
	}

	shared := &domain.SharedPackageConfig{Config: *cfg, RestoredDependencies: restored}
	if err := a.loader.WriteShared(filepath.Join(dir, domain.SharedPackageFileName), shared); err != nil {
		return err
	}
	if err := a.repo.Write(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("restored %d dependencies for %s %s", len(restored), cfg.Info.ID, cfg.Info.Version))
	return nil
}

// Publish records the package in dir together with its resolved dependencies and
// stages its sources and binary into the artifact cache. binary may be empty for
// header-only packages.
func (a *App) Publish(ctx context.Context, dir, binary string) error {
	cfg, err := a.loader.LoadPackage(filepath.Join(dir, domain.PackageFileName))
	if err != nil {
		return err
	}

	var restored []domain.SharedDependency
	shared, err := a.loader.LoadShared(filepath.Join(dir, domain.SharedPackageFileName))
	switch {
	case err == nil:
		if !shared.Config.Info.Version.Equal(cfg.Info.Version) {
			a.logger.Warn(fmt.Sprintf(
				"%s was restored for %s %s, run restore again",
				domain.SharedPackageFileName, shared.ID(), shared.Version(),
			))
		}
		restored = shared.RestoredDependencies
	case errors.Is(err, iofs.ErrNotExist) && len(cfg.Dependencies) == 0:
		restored = []domain.SharedDependency{}
	default:
		return err
	}

	if err := a.repo.Lock(ctx); err != nil {
		return err
	}
	defer a.unlock()

	pkg := &domain.SharedPackageConfig{Config: *cfg, RestoredDependencies: restored}
	if err := a.repo.AddArtifact(ctx, pkg, dir, binary); err != nil {
		return err
	}
	if err := a.repo.Write(); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("published %s %s", pkg.ID(), pkg.Version()))
	return nil
}

// Watch publishes the package in dir and publishes it again whenever one of
// the files Publish stages changes. It returns when ctx is canceled. Failed
// republishes are logged and watching continues.
func (a *App) Watch(ctx context.Context, dir, binary string) error {
	if err := a.Publish(ctx, dir, binary); err != nil {
		return err
	}

	roots := []string{dir}
	if binary != "" && !within(dir, binary) {
		roots = append(roots, filepath.Dir(binary))
	}
	if err := a.watcher.Start(ctx, roots...); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to watch package"), "path", dir)
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	a.logger.Info(fmt.Sprintf("watching %s for changes", dir))
	for batch := range a.watcher.Changes() {
		if !a.affectsPackage(dir, binary, batch) {
			continue
		}
		if err := a.Publish(ctx, dir, binary); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			a.logger.Error(err)
		}
	}
	return nil
}

// affectsPackage reports whether any path in batch is part of what Publish
// stages. An unreadable manifest counts as a change so the error gets reported.
func (a *App) affectsPackage(dir, binary string, batch []string) bool {
	manifest := filepath.Join(dir, domain.PackageFileName)
	cfg, err := a.loader.LoadPackage(manifest)
	if err != nil {
		return true
	}
	shared := filepath.Join(dir, cfg.SharedDir)

	var binaries []string
	if binary != "" {
		debug := domain.DebugBinaryPrefix + filepath.Base(binary)
		binaries = []string{filepath.Clean(binary), filepath.Join(filepath.Dir(binary), debug)}
	}

	for _, path := range batch {
		path = filepath.Clean(path)
		switch {
		case path == manifest:
			return true
		case cfg.SharedDir != "" && within(shared, path):
			return true
		case slices.Contains(binaries, path):
			return true
		}
	}
	return false
}

// within reports whether path is parent or lies below it.
func within(parent, path string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// List prints the recorded versions of id, or of every package when id is empty.
func (a *App) List(_ context.Context, id string, w io.Writer) error {
	st := style.New(output.Renderer(w))

	ids := a.repo.IDs()
	if id != "" {
		entries, ok := a.repo.ArtifactsFor(id)
		if !ok {
			return zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "package is not recorded"), "id", id)
		}
		ids = []string{recordedID(entries, id)}
	}
	if len(ids) == 0 {
		_, _ = fmt.Fprintln(w, st.Muted.Render("no packages recorded"))
		return nil
	}

	for _, pkgID := range ids {
		entries, _ := a.repo.ArtifactsFor(pkgID)
		_, _ = fmt.Fprintln(w, st.Heading.Render(pkgID))

		for _, v := range sortedVersions(entries) {
			pkg := entries[v.Original()]
			deps := len(pkg.RestoredDependencies)
			noun := "dependencies"
			if deps == 1 {
				noun = "dependency"
			}
			_, _ = fmt.Fprintf(w, "  %s %s %s\n",
				st.Muted.Render(style.Bullet),
				st.Version.Render(v.String()),
				st.Muted.Render(fmt.Sprintf("(%d %s)", deps, noun)),
			)
		}
	}
	return nil
}

// Verify checks the cache entries of id against their digests. An empty version
// checks every recorded version.
func (a *App) Verify(ctx context.Context, id, version string) error {
	versions, err := a.versionsOf(id, version)
	if err != nil {
		return err
	}

	var errs error
	for _, r := range versions {
		if err := a.cache.Verify(ctx, r.id, r.version); err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		a.logger.Info(fmt.Sprintf("%s %s verified", r.id, r.version))
	}
	return errs
}

// Remove deletes a recorded package version from the repository and the cache.
func (a *App) Remove(ctx context.Context, id, version string) error {
	if err := a.repo.Lock(ctx); err != nil {
		return err
	}
	defer a.unlock()

	versions, err := a.versionsOf(id, version)
	if err != nil {
		return err
	}

	for _, r := range versions {
		a.repo.RemoveArtifact(r.id, r.version)
		if err := a.cache.Remove(r.id, r.version); err != nil {
			return err
		}
		a.logger.Info(fmt.Sprintf("removed %s %s", r.id, r.version))
	}
	return a.repo.Write()
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Cache      bool
	Repository bool
}

// Clean removes the artifact cache and/or the repository document based on the provided options.
func (a *App) Clean(ctx context.Context, options CleanOptions) error {
	var errs error

	if options.Cache {
		a.logger.Info("removing artifact cache...")
		if err := a.cache.Clean(); err != nil {
			errs = errors.Join(errs, err)
		} else {
			a.logger.Info("removed artifact cache")
		}
	}

	if options.Repository {
		if err := a.repo.Lock(ctx); err != nil {
			return errors.Join(errs, err)
		}
		defer a.unlock()

		a.logger.Info("removing repository entries...")
		a.repo.Clear()
		if err := a.repo.Write(); err != nil {
			errs = errors.Join(errs, err)
		} else {
			a.logger.Info("removed repository entries")
		}
	}

	return errs
}

// Settings returns the effective user settings.
func (a *App) Settings() domain.Settings {
	return *a.settings
}

// SetConfig updates one persisted setting. Known keys are cache, registry and timeout.
func (a *App) SetConfig(key, value string) error {
	next := *a.settings

	switch key {
	case "cache":
		next.CacheDir = value
	case "registry":
		next.Registry = value
	case "timeout":
		d, err := time.ParseDuration(value)
		if err != nil {
			return zerr.With(zerr.Wrap(domain.ErrSettingsParseFailed, err.Error()), "timeout", value)
		}
		next.Timeout = d
	default:
		return zerr.With(zerr.New("unknown setting"), "key", key)
	}

	if err := config.SaveSettings(&next); err != nil {
		return err
	}
	*a.settings = next
	a.logger.Info(fmt.Sprintf("set %s to %s", key, value))
	return nil
}

// recordedVersion is a repository entry addressed by the id it was recorded under.
type recordedVersion struct {
	id      string
	version *semver.Version
}

// versionsOf looks up the entries of id, newest first. Ids match case-insensitively and
// each entry keeps its recorded spelling, which also names its cache directory.
func (a *App) versionsOf(id, version string) ([]recordedVersion, error) {
	if version != "" {
		v, err := domain.ParseVersion(version)
		if err != nil {
			return nil, err
		}
		pkg, ok := a.repo.Artifact(id, v)
		if !ok {
			notFound := zerr.Wrap(domain.ErrArtifactNotFound, "package version is not recorded")
			return nil, zerr.With(zerr.With(notFound, "id", id), "version", version)
		}
		return []recordedVersion{{id: pkg.ID(), version: v}}, nil
	}

	entries, ok := a.repo.ArtifactsFor(id)
	if !ok {
		return nil, zerr.With(zerr.Wrap(domain.ErrArtifactNotFound, "package is not recorded"), "id", id)
	}
	versions := sortedVersions(entries)
	out := make([]recordedVersion, 0, len(versions))
	for _, v := range versions {
		entry := entries[v.Original()]
		out = append(out, recordedVersion{id: entry.ID(), version: v})
	}
	return out, nil
}

// recordedID returns the id spelling of the newest entry, or id when there is none.
func recordedID(entries map[string]domain.SharedPackageConfig, id string) string {
	if versions := sortedVersions(entries); len(versions) > 0 {
		newest := entries[versions[0].Original()]
		return newest.ID()
	}
	return id
}

func (a *App) unlock() {
	if err := a.repo.Unlock(); err != nil {
		a.logger.Warn(fmt.Sprintf("failed to release repository lock: %v", err))
	}
}

// sortedVersions returns the parseable version keys of entries, newest first.
func sortedVersions(entries map[string]domain.SharedPackageConfig) []*semver.Version {
	versions := make([]*semver.Version, 0, len(entries))
	for raw := range entries {
		if v, err := semver.NewVersion(raw); err == nil {
			versions = append(versions, v)
		}
	}
	slices.SortFunc(versions, func(x, y *semver.Version) int {
		return y.Compare(x)
	})
	return versions
}
