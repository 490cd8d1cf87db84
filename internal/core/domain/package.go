package domain

import (
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// AdditionalPackageData holds package-level build and linking settings.
type AdditionalPackageData struct {
	HeadersOnly    *bool    `json:"headersOnly,omitempty"`
	StaticLinking  *bool    `json:"staticLinking,omitempty"`
	SoLink         *string  `json:"soLink,omitempty"`
	DebugSoLink    *string  `json:"debugSoLink,omitempty"`
	OverrideSoName *string  `json:"overrideSoName,omitempty"`
	ModLink        *string  `json:"modLink,omitempty"`
	BranchName     *string  `json:"branchName,omitempty"`
	ExtraFiles     []string `json:"extraFiles,omitempty"`
}

// ValidatePackageID reports whether id can name a directory below the artifact cache.
func ValidatePackageID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return zerr.With(zerr.Wrap(ErrInvalidPackageID, "package id must be a single path element"), "id", id)
	}
	return nil
}

// PackageInfo describes a package.
type PackageInfo struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	URL            string                `json:"url,omitempty"`
	Version        *semver.Version       `json:"version"`
	AdditionalData AdditionalPackageData `json:"additionalData"`
}

// PackageConfig is the content of a depot.json file.
type PackageConfig struct {
	SharedDir       string       `json:"sharedDir"`
	DependenciesDir string       `json:"dependenciesDir"`
	Info            PackageInfo  `json:"info"`
	Dependencies    []Dependency `json:"dependencies"`
}

// BinaryName returns the file name of the package's release binary.
func (p *PackageConfig) BinaryName() string {
	if name := p.Info.AdditionalData.OverrideSoName; name != nil && *name != "" {
		return *name
	}

	ext := ".so"
	if static := p.Info.AdditionalData.StaticLinking; static != nil && *static {
		ext = ".a"
	}

	version := ""
	if p.Info.Version != nil {
		version = strings.ReplaceAll(p.Info.Version.String(), ".", "_")
	}

	return "lib" + p.Info.ID + "_" + version + ext
}

// DebugBinaryName returns the file name of the package's debug binary.
func (p *PackageConfig) DebugBinaryName() string {
	return DebugBinaryPrefix + p.BinaryName()
}

// SharedPackageConfig is a package config together with its resolved dependency closure.
type SharedPackageConfig struct {
	Config               PackageConfig      `json:"config"`
	RestoredDependencies []SharedDependency `json:"restoredDependencies"`
}

// ID returns the package id.
func (s *SharedPackageConfig) ID() string {
	return s.Config.Info.ID
}

// Version returns the package version.
func (s *SharedPackageConfig) Version() *semver.Version {
	return s.Config.Info.Version
}

// CheckVersion verifies that the config declares a version equal to want. A nil want
// only requires a version to be present.
func (s *SharedPackageConfig) CheckVersion(want *semver.Version) error {
	got := s.Version()
	if got == nil {
		return zerr.With(zerr.Wrap(ErrMissingPackageVersion, "package config has no version"), "id", s.ID())
	}
	if want != nil && !got.Equal(want) {
		mismatch := zerr.Wrap(ErrVersionMismatch, "package config declares another version")
		mismatch = zerr.With(mismatch, "id", s.ID())
		mismatch = zerr.With(mismatch, "expected", want.String())
		return zerr.With(mismatch, "actual", got.String())
	}
	return nil
}

// PublicDependencies returns the restored dependencies that are not marked private.
func (s *SharedPackageConfig) PublicDependencies() []SharedDependency {
	return slices.DeleteFunc(slices.Clone(s.RestoredDependencies), func(d SharedDependency) bool {
		return d.Dependency.AdditionalData.IsPrivate()
	})
}
