package domain

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// SharedDependency is a dependency pinned to the concrete version it resolved to.
type SharedDependency struct {
	Dependency Dependency      `json:"dependency"`
	Version    *semver.Version `json:"version"`
}

// Key returns the closure key of the dependency.
func (s *SharedDependency) Key() DependencyKey {
	return NewDependencyKey(s.Dependency.ID, s.Version)
}

// DependencyKey identifies an entry of a closure: a lower-cased package id and a version.
type DependencyKey struct {
	ID      string
	Version string
}

// NewDependencyKey builds the key for id at version v.
func NewDependencyKey(id string, v *semver.Version) DependencyKey {
	key := DependencyKey{ID: strings.ToLower(id)}
	if v != nil {
		key.Version = v.String()
	}
	return key
}

// Closure accumulates the transitive dependencies of a package.
// Each package id appears at most once.
type Closure struct {
	entries map[DependencyKey]*SharedDependency
	byID    map[string]DependencyKey
}

// NewClosure returns an empty closure.
func NewClosure() *Closure {
	return &Closure{
		entries: make(map[DependencyKey]*SharedDependency),
		byID:    make(map[string]DependencyKey),
	}
}

// Add inserts dep into the closure.
// When an entry with the same key exists its additional data is merged with dep's and
// Add reports false. When the same id is present at another version Add fails with
// ErrVersionConflict.
func (c *Closure) Add(dep SharedDependency) (bool, error) {
	key := dep.Key()

	if existing, ok := c.entries[key]; ok {
		existing.Dependency.AdditionalData.Merge(dep.Dependency.AdditionalData)
		return false, nil
	}

	if other, ok := c.byID[key.ID]; ok {
		err := zerr.Wrap(ErrVersionConflict, "dependency resolved to two versions")
		err = zerr.With(err, "id", dep.Dependency.ID)
		err = zerr.With(err, "existing", other.Version)
		return false, zerr.With(err, "incoming", key.Version)
	}

	c.entries[key] = &dep
	c.byID[key.ID] = key
	return true, nil
}

// Get returns the entry stored under key.
func (c *Closure) Get(key DependencyKey) (*SharedDependency, bool) {
	dep, ok := c.entries[key]
	return dep, ok
}

// Lookup returns the entry for a package id regardless of version.
func (c *Closure) Lookup(id string) (*SharedDependency, bool) {
	key, ok := c.byID[strings.ToLower(id)]
	if !ok {
		return nil, false
	}
	return c.Get(key)
}

// Len returns the number of entries.
func (c *Closure) Len() int {
	return len(c.entries)
}

// Sorted returns copies of the entries ordered by id, then version.
func (c *Closure) Sorted() []SharedDependency {
	out := make([]SharedDependency, 0, len(c.entries))
	for _, dep := range c.entries {
		out = append(out, *dep)
	}
	slices.SortFunc(out, func(a, b SharedDependency) int {
		if n := cmp.Compare(strings.ToLower(a.Dependency.ID), strings.ToLower(b.Dependency.ID)); n != 0 {
			return n
		}
		return a.Version.Compare(b.Version)
	})
	return out
}
