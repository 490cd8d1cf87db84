package collector_test

import (
	"context"
	"strings"
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/depot/internal/adapters/telemetry"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.trai.ch/depot/internal/engine/collector"
	"go.uber.org/mock/gomock"
)

func ptr[T any](v T) *T {
	return &v
}

// registry is an in-memory ports.VersionResolver. Versions are listed in publish order.
type registry struct {
	packages map[string][]*domain.SharedPackageConfig
	calls    int
}

func newRegistry(pkgs ...*domain.SharedPackageConfig) *registry {
	r := &registry{packages: make(map[string][]*domain.SharedPackageConfig)}
	for _, p := range pkgs {
		id := strings.ToLower(p.ID())
		r.packages[id] = append(r.packages[id], p)
	}
	return r
}

func (r *registry) Versions(_ context.Context, id string) ([]*semver.Version, error) {
	r.calls++
	pkgs, ok := r.packages[strings.ToLower(id)]
	if !ok {
		return nil, domain.ErrPackageNotFound
	}
	versions := make([]*semver.Version, 0, len(pkgs))
	for _, p := range pkgs {
		versions = append(versions, p.Version())
	}
	return versions, nil
}

func (r *registry) SharedPackage(_ context.Context, id string, version *semver.Version) (*domain.SharedPackageConfig, error) {
	r.calls++
	for _, p := range r.packages[strings.ToLower(id)] {
		if p.Version().Equal(version) {
			return p, nil
		}
	}
	return nil, domain.ErrPackageNotFound
}

func dep(id, rng string) domain.Dependency {
	return domain.Dependency{ID: id, VersionRange: domain.MustParseVersionRange(rng)}
}

func restored(d domain.Dependency, version string) domain.SharedDependency {
	return domain.SharedDependency{Dependency: d, Version: semver.MustParse(version)}
}

func pkg(id, version string, deps ...domain.SharedDependency) *domain.SharedPackageConfig {
	return &domain.SharedPackageConfig{
		Config: domain.PackageConfig{
			Info: domain.PackageInfo{ID: id, Name: id, Version: semver.MustParse(version)},
		},
		RestoredDependencies: deps,
	}
}

func root(id string, deps ...domain.Dependency) *domain.PackageConfig {
	return &domain.PackageConfig{
		Info:         domain.PackageInfo{ID: id, Name: id, Version: semver.MustParse("0.1.0")},
		Dependencies: deps,
	}
}

func newCollector(t *testing.T, reg *registry) *collector.Collector {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	return collector.New(reg, log, telemetry.NewNoopTracer())
}

func keys(res *collector.Resolution) []string {
	out := make([]string, 0, res.Closure.Len())
	for _, d := range res.Closure.Sorted() {
		out = append(out, d.Dependency.ID+"@"+d.Version.String())
	}
	return out
}

func TestCollect_SelfReference(t *testing.T) {
	reg := newRegistry(pkg("a", "1.0.0"))
	c := newCollector(t, reg)
	res := collector.NewResolution()

	require.NoError(t, c.Collect(context.Background(), dep("A", "*"), "a", res))

	assert.Zero(t, res.Closure.Len())
	assert.Zero(t, reg.calls)
}

func TestCollectAll_PicksFirstMatchingVersion(t *testing.T) {
	reg := newRegistry(
		pkg("b", "2.0.0"),
		pkg("b", "1.2.0"),
		pkg("b", "1.1.0"),
	)

	res, err := newCollector(t, reg).CollectAll(context.Background(), root("a", dep("b", "^1.0.0")))

	require.NoError(t, err)
	assert.Equal(t, []string{"b@1.2.0"}, keys(res))
}

func TestCollectAll_PrivateDependenciesStayWithTheirOwner(t *testing.T) {
	private := dep("c", "^2.0.0")
	private.AdditionalData.Private = ptr(true)

	reg := newRegistry(
		pkg("b", "1.2.0", restored(private, "2.0.0")),
		pkg("c", "2.0.0"),
	)
	c := newCollector(t, reg)

	consumer, err := c.CollectAll(context.Background(), root("a", dep("b", "^1.0.0")))
	require.NoError(t, err)
	assert.Equal(t, []string{"b@1.2.0"}, keys(consumer))

	owner, err := c.CollectAll(context.Background(), root("b", private))
	require.NoError(t, err)
	assert.Equal(t, []string{"c@2.0.0"}, keys(owner))
}

func TestCollectAll_ResolvedPackagesOmitPrivateDependencies(t *testing.T) {
	private := dep("c", "^2.0.0")
	private.AdditionalData.Private = ptr(true)
	b := pkg("b", "1.2.0", restored(private, "2.0.0"), restored(dep("d", "*"), "1.0.0"))

	reg := newRegistry(b, pkg("c", "2.0.0"), pkg("d", "1.0.0"))

	res, err := newCollector(t, reg).CollectAll(context.Background(), root("a", dep("b", "^1.0.0")))
	require.NoError(t, err)

	shared, ok := res.Closure.Lookup("b")
	require.True(t, ok)
	resolved, ok := res.Package(*shared)
	require.True(t, ok)
	assert.Equal(t, []domain.SharedDependency{restored(dep("d", "*"), "1.0.0")}, resolved.RestoredDependencies)

	assert.Len(t, b.RestoredDependencies, 2, "registry entry must not be modified")
}

// relabeled serves every config from the embedded registry with its version replaced.
type relabeled struct {
	*registry
	version *semver.Version
}

func (r relabeled) SharedPackage(ctx context.Context, id string, version *semver.Version) (*domain.SharedPackageConfig, error) {
	p, err := r.registry.SharedPackage(ctx, id, version)
	if err != nil {
		return nil, err
	}
	out := *p
	out.Config.Info.Version = r.version
	return &out, nil
}

func TestCollectAll_RejectsPackagesWithUnexpectedVersions(t *testing.T) {
	tests := []struct {
		name    string
		version *semver.Version
		wantErr error
	}{
		{name: "no version", version: nil, wantErr: domain.ErrMissingPackageVersion},
		{name: "other version", version: semver.MustParse("9.9.9"), wantErr: domain.ErrVersionMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			log := mocks.NewMockLogger(ctrl)
			reg := relabeled{registry: newRegistry(pkg("b", "1.0.0")), version: tt.version}

			res, err := collector.New(reg, log, telemetry.NewNoopTracer()).
				CollectAll(context.Background(), root("a", dep("b", "*")))

			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "package config")
			assert.Nil(t, res)
		})
	}
}

func TestCollectAll_Transitive(t *testing.T) {
	reg := newRegistry(
		pkg("b", "1.0.0", restored(dep("c", "^2.0.0"), "2.1.0")),
		pkg("c", "2.1.0", restored(dep("d", "~0.3.0"), "0.3.4")),
		pkg("d", "0.3.4"),
	)

	res, err := newCollector(t, reg).CollectAll(context.Background(), root("a", dep("b", "^1.0.0")))

	require.NoError(t, err)
	assert.Equal(t, []string{"b@1.0.0", "c@2.1.0", "d@0.3.4"}, keys(res))

	d, ok := res.Closure.Lookup("d")
	require.True(t, ok)
	resolved, ok := res.Package(*d)
	require.True(t, ok)
	assert.Equal(t, "d", resolved.ID())
}

func TestCollectAll_InheritsModLink(t *testing.T) {
	withOwn := dep("c", "*")
	withOwn.AdditionalData.ModLink = ptr("custom.mod")

	b := pkg("b", "1.0.0")
	b.Config.Info.AdditionalData.ModLink = ptr("b.mod")
	c := pkg("c", "1.0.0")
	c.Config.Info.AdditionalData.ModLink = ptr("c.mod")

	res, err := newCollector(t, newRegistry(b, c)).CollectAll(context.Background(), root("a", dep("b", "*"), withOwn))
	require.NoError(t, err)

	gotB, ok := res.Closure.Lookup("b")
	require.True(t, ok)
	assert.Equal(t, ptr("b.mod"), gotB.Dependency.AdditionalData.ModLink)

	gotC, ok := res.Closure.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, ptr("custom.mod"), gotC.Dependency.AdditionalData.ModLink)
}

func TestCollectAll_MergesDuplicateEntries(t *testing.T) {
	fromB := dep("d", "^1.0.0")
	fromB.AdditionalData.ExtraFiles = []string{"b.txt"}
	fromC := dep("d", "^1.0.0")
	fromC.AdditionalData.ExtraFiles = []string{"c.txt"}
	fromC.AdditionalData.Private = ptr(false)

	reg := newRegistry(
		pkg("b", "1.0.0", restored(fromB, "1.0.0")),
		pkg("c", "1.0.0", restored(fromC, "1.0.0")),
		pkg("d", "1.0.0", restored(dep("e", "*"), "1.0.0")),
		pkg("e", "1.0.0"),
	)

	res, err := newCollector(t, reg).CollectAll(context.Background(), root("a", dep("b", "*"), dep("c", "*")))
	require.NoError(t, err)

	assert.Equal(t, []string{"b@1.0.0", "c@1.0.0", "d@1.0.0", "e@1.0.0"}, keys(res))
	d, ok := res.Closure.Lookup("D")
	require.True(t, ok)
	assert.Equal(t, []string{"b.txt", "c.txt"}, d.Dependency.AdditionalData.ExtraFiles)
	assert.False(t, d.Dependency.AdditionalData.IsPrivate())
}

func TestCollectAll_Errors(t *testing.T) {
	tests := []struct {
		name    string
		reg     *registry
		pkg     *domain.PackageConfig
		wantErr error
	}{
		{
			name:    "no version in range",
			reg:     newRegistry(pkg("b", "1.0.0")),
			pkg:     root("a", dep("b", "^3.0.0")),
			wantErr: domain.ErrUnresolvedDependency,
		},
		{
			name:    "unknown package",
			reg:     newRegistry(),
			pkg:     root("a", dep("b", "*")),
			wantErr: domain.ErrPackageNotFound,
		},
		{
			name: "restored version outside its range",
			reg: newRegistry(
				pkg("b", "1.0.0", restored(dep("c", "^2.0.0"), "1.5.0")),
				pkg("c", "1.5.0"),
			),
			pkg:     root("a", dep("b", "*")),
			wantErr: domain.ErrUnresolvedDependency,
		},
		{
			name: "conflicting versions",
			reg: newRegistry(
				pkg("b", "1.0.0", restored(dep("d", "*"), "1.0.0")),
				pkg("c", "1.0.0", restored(dep("d", "*"), "2.0.0")),
				pkg("d", "1.0.0"),
				pkg("d", "2.0.0"),
			),
			pkg:     root("a", dep("b", "*"), dep("c", "*")),
			wantErr: domain.ErrVersionConflict,
		},
		{
			name: "cycle",
			reg: newRegistry(
				pkg("b", "1.0.0", restored(dep("c", "*"), "1.0.0")),
				pkg("c", "1.0.0", restored(dep("B", "*"), "1.0.0")),
			),
			pkg:     root("a", dep("b", "*")),
			wantErr: domain.ErrDependencyCycle,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newCollector(t, tt.reg).CollectAll(context.Background(), tt.pkg)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, res)
		})
	}
}

func TestCollectAll_DependencyOnRootIsSkipped(t *testing.T) {
	reg := newRegistry(pkg("b", "1.0.0", restored(dep("A", "*"), "0.1.0")))

	res, err := newCollector(t, reg).CollectAll(context.Background(), root("a", dep("b", "*")))

	require.NoError(t, err)
	assert.Equal(t, []string{"b@1.0.0"}, keys(res))
}

func TestCollectAll_Canceled(t *testing.T) {
	reg := newRegistry(pkg("b", "1.0.0"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newCollector(t, reg).CollectAll(ctx, root("a", dep("b", "*")))

	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, reg.calls)
}

func TestCollectAll_Spans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info("resolved b 1.0.0")
	log.EXPECT().Info("resolved c 2.0.0")

	reg := newRegistry(
		pkg("b", "1.0.0", restored(dep("c", "*"), "2.0.0")),
		pkg("c", "2.0.0"),
	)
	c := collector.New(reg, log, telemetry.NewOTelTracer(tp))

	_, err := c.CollectAll(context.Background(), root("a", dep("b", "*")))
	require.NoError(t, err)

	names := make([]string, 0, 3)
	for _, s := range rec.Ended() {
		names = append(names, s.Name())
	}
	assert.Equal(t, []string{"resolve c", "resolve b", "collect a"}, names)
}
