package domain

import "go.trai.ch/zerr"

var (
	// ErrUnresolvedDependency is returned when no available version satisfies a dependency's range.
	ErrUnresolvedDependency = zerr.New("no version satisfies the dependency range")

	// ErrVersionConflict is returned when one package id resolves to two different versions in a closure.
	ErrVersionConflict = zerr.New("conflicting versions for dependency")

	// ErrDependencyCycle is returned when a package transitively depends on itself.
	ErrDependencyCycle = zerr.New("dependency cycle detected")

	// ErrInvalidVersionRange is returned when a version range cannot be parsed.
	ErrInvalidVersionRange = zerr.New("invalid version range")

	// ErrInvalidVersion is returned when a version cannot be parsed.
	ErrInvalidVersion = zerr.New("invalid version")

	// ErrRepositoryCorrupt is returned when the repository document cannot be parsed.
	ErrRepositoryCorrupt = zerr.New("repository document is corrupt")

	// ErrRepositoryReadFailed is returned when the repository document cannot be read.
	ErrRepositoryReadFailed = zerr.New("failed to read repository")

	// ErrRepositoryWriteFailed is returned when the repository document cannot be written.
	ErrRepositoryWriteFailed = zerr.New("failed to write repository")

	// ErrRepositoryLockFailed is returned when the repository lock cannot be acquired or released.
	ErrRepositoryLockFailed = zerr.New("failed to lock repository")

	// ErrArtifactNotFound is returned when a package version has no repository entry.
	ErrArtifactNotFound = zerr.New("artifact not found")

	// ErrStagingFailed is returned when a file cannot be copied into the artifact cache.
	ErrStagingFailed = zerr.New("failed to stage artifact")

	// ErrVersionMismatch is returned when a staged or fetched package config declares an unexpected version.
	ErrVersionMismatch = zerr.New("package version does not match")

	// ErrDigestMismatch is returned when a cache entry no longer matches its recorded digest.
	ErrDigestMismatch = zerr.New("cache entry digest mismatch")

	// ErrDigestFailed is returned when the digest of a cache entry cannot be computed.
	ErrDigestFailed = zerr.New("failed to compute digest")

	// ErrCacheCleanFailed is returned when the artifact cache cannot be removed.
	ErrCacheCleanFailed = zerr.New("failed to clean artifact cache")

	// ErrRegistryRequestFailed is returned when the registry cannot be reached or answers with an error status.
	ErrRegistryRequestFailed = zerr.New("registry request failed")

	// ErrRegistryParseFailed is returned when a registry response cannot be decoded.
	ErrRegistryParseFailed = zerr.New("failed to parse registry response")

	// ErrPackageNotFound is returned when the registry does not know a package or version.
	ErrPackageNotFound = zerr.New("package not found")

	// ErrConfigReadFailed is returned when a package config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read package config")

	// ErrConfigParseFailed is returned when a package config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse package config")

	// ErrConfigWriteFailed is returned when a package config file cannot be written.
	ErrConfigWriteFailed = zerr.New("failed to write package config")

	// ErrMissingPackageID is returned when a package config has no id.
	ErrMissingPackageID = zerr.New("package config is missing an id")

	// ErrInvalidPackageID is returned when a package id cannot be used as a cache directory name.
	ErrInvalidPackageID = zerr.New("invalid package id")

	// ErrMissingPackageVersion is returned when a package config has no version.
	ErrMissingPackageVersion = zerr.New("package config is missing a version")

	// ErrSettingsReadFailed is returned when the settings file exists but cannot be read.
	ErrSettingsReadFailed = zerr.New("failed to read settings")

	// ErrSettingsParseFailed is returned when the settings file cannot be parsed.
	ErrSettingsParseFailed = zerr.New("failed to parse settings")
)
