package domain

import (
	"path/filepath"
	"time"
)

const (
	// DefaultRegistryURL is the registry queried when no other is configured.
	DefaultRegistryURL = "https://packages.depot.dev/api/v1"

	// DefaultRegistryTimeout bounds a single registry request.
	DefaultRegistryTimeout = 30 * time.Second
)

// Settings holds the user-level configuration of depot.
type Settings struct {
	// CacheDir is the root of the artifact cache.
	CacheDir string
	// Registry is the base URL of the remote registry.
	Registry string
	// Timeout bounds each registry request.
	Timeout time.Duration
	// ConfigDir is the directory the settings were loaded from. It also holds the repository document.
	ConfigDir string
}

// DefaultSettings returns settings populated with the platform defaults.
func DefaultSettings() *Settings {
	return &Settings{
		CacheDir:  DefaultCacheDir(),
		Registry:  DefaultRegistryURL,
		Timeout:   DefaultRegistryTimeout,
		ConfigDir: DefaultConfigDir(),
	}
}

// RepositoryPath returns the location of the repository document.
func (s *Settings) RepositoryPath() string {
	return filepath.Join(s.ConfigDir, RepositoryFileName)
}
