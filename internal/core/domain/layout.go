package domain

import (
	"os"
	"path/filepath"
)

const (
	// AppDirName is the directory name used under the user config and cache directories.
	AppDirName = "depot"

	// PackageFileName is the name of a project's package config file.
	PackageFileName = "depot.json"

	// SharedPackageFileName is the name of the resolved package config written by restore.
	SharedPackageFileName = "depot.shared.json"

	// RepositoryFileName is the name of the repository document.
	RepositoryFileName = "depot.repository.json"

	// RepositoryLockFileName is the name of the advisory lock file guarding the repository.
	RepositoryLockFileName = "depot.repository.lock"

	// SettingsFileName is the name of the user settings file.
	SettingsFileName = "config.yaml"

	// CacheTmpDirName marks a cache entry whose write is in progress.
	CacheTmpDirName = "tmp"

	// CacheSrcDirName holds the source snapshot of a cache entry.
	CacheSrcDirName = "src"

	// CacheLibDirName holds the binaries of a cache entry.
	CacheLibDirName = "lib"

	// CacheDigestFileName holds the content digest of a cache entry.
	CacheDigestFileName = "digest"

	// DebugBinaryPrefix is prepended to a binary name to form its debug counterpart.
	DebugBinaryPrefix = "debug_"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// DefaultConfigDir returns the directory holding the settings file and the repository document.
// It honours XDG_CONFIG_HOME and falls back to ~/.config.
func DefaultConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, AppDirName)
}

// DefaultCacheDir returns the default artifact cache directory.
// It honours XDG_CACHE_HOME and falls back to ~/.cache.
func DefaultCacheDir() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, AppDirName)
}
