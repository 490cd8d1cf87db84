package domain

import (
	"slices"
	"strings"
)

// Dependency is a declared requirement on another package.
type Dependency struct {
	// ID identifies the package. Comparison is case-insensitive.
	ID string `json:"id"`
	// VersionRange constrains the acceptable versions.
	VersionRange VersionRange `json:"versionRange"`
	// AdditionalData overrides how the dependency is consumed.
	AdditionalData AdditionalDependencyData `json:"additionalData"`
}

// SameID reports whether d refers to the package id, ignoring case.
func (d *Dependency) SameID(id string) bool {
	return strings.EqualFold(d.ID, id)
}

// Clone returns a deep copy of the dependency.
func (d *Dependency) Clone() Dependency {
	return Dependency{
		ID:             d.ID,
		VersionRange:   d.VersionRange,
		AdditionalData: d.AdditionalData.Clone(),
	}
}

// AdditionalDependencyData is a sparse overlay of per-dependency settings.
// A nil field means the value is inherited or defaulted.
type AdditionalDependencyData struct {
	LocalPath      *string  `json:"localPath,omitempty"`
	HeadersOnly    *bool    `json:"headersOnly,omitempty"`
	StaticLinking  *bool    `json:"staticLinking,omitempty"`
	UseRelease     *bool    `json:"useRelease,omitempty"`
	SoLink         *string  `json:"soLink,omitempty"`
	DebugSoLink    *string  `json:"debugSoLink,omitempty"`
	OverrideSoName *string  `json:"overrideSoName,omitempty"`
	ModLink        *string  `json:"modLink,omitempty"`
	BranchName     *string  `json:"branchName,omitempty"`
	ExtraFiles     []string `json:"extraFiles,omitempty"`
	// Private keeps the dependency out of the closures of consumers.
	Private *bool `json:"private,omitempty"`
}

// IsPrivate reports whether the dependency is marked private.
func (a *AdditionalDependencyData) IsPrivate() bool {
	return a.Private != nil && *a.Private
}

// Merge folds other into a. Branch name and local path keep a's value when present,
// extra files are concatenated (a's first), and the private flags are OR-ed.
// Every other field is left untouched.
func (a *AdditionalDependencyData) Merge(other AdditionalDependencyData) {
	if a.BranchName == nil {
		a.BranchName = clonePtr(other.BranchName)
	}

	switch {
	case a.ExtraFiles != nil && other.ExtraFiles != nil:
		merged := make([]string, 0, len(a.ExtraFiles)+len(other.ExtraFiles))
		merged = append(merged, a.ExtraFiles...)
		a.ExtraFiles = append(merged, other.ExtraFiles...)
	case a.ExtraFiles == nil && other.ExtraFiles != nil:
		a.ExtraFiles = slices.Clone(other.ExtraFiles)
	}

	if a.LocalPath == nil {
		a.LocalPath = clonePtr(other.LocalPath)
	}

	switch {
	case a.Private != nil && other.Private != nil:
		private := *a.Private || *other.Private
		a.Private = &private
	case a.Private == nil:
		a.Private = clonePtr(other.Private)
	}
}

// MergePackage applies the package-level settings of a resolved package.
// Static linking follows the package; the mod link is only filled when missing.
func (a *AdditionalDependencyData) MergePackage(pkg AdditionalPackageData) {
	if pkg.StaticLinking != nil {
		a.StaticLinking = clonePtr(pkg.StaticLinking)
	}
	if a.ModLink == nil {
		a.ModLink = clonePtr(pkg.ModLink)
	}
}

// Clone returns a deep copy.
func (a *AdditionalDependencyData) Clone() AdditionalDependencyData {
	return AdditionalDependencyData{
		LocalPath:      clonePtr(a.LocalPath),
		HeadersOnly:    clonePtr(a.HeadersOnly),
		StaticLinking:  clonePtr(a.StaticLinking),
		UseRelease:     clonePtr(a.UseRelease),
		SoLink:         clonePtr(a.SoLink),
		DebugSoLink:    clonePtr(a.DebugSoLink),
		OverrideSoName: clonePtr(a.OverrideSoName),
		ModLink:        clonePtr(a.ModLink),
		BranchName:     clonePtr(a.BranchName),
		ExtraFiles:     slices.Clone(a.ExtraFiles),
		Private:        clonePtr(a.Private),
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
