package domain_test

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/depot/internal/core/domain"
)

func TestLayoutPaths(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG directories are only honoured on linux")
	}
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	assert.Equal(t, filepath.Join("/xdg/config", "depot"), domain.DefaultConfigDir())
	assert.Equal(t, filepath.Join("/xdg/cache", "depot"), domain.DefaultCacheDir())

	s := domain.DefaultSettings()
	assert.Equal(t, filepath.Join("/xdg/config", "depot", "depot.repository.json"), s.RepositoryPath())
	assert.Equal(t, domain.DefaultRegistryURL, s.Registry)
	assert.Equal(t, domain.DefaultRegistryTimeout, s.Timeout)
}
