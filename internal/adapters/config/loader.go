// Package config reads and writes depot package configs and user settings.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"
	"go.trai.ch/depot/internal/adapters/fs"
	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for depot.json and depot.shared.json files.
// Comments and trailing commas are accepted on read.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// LoadPackage reads a depot.json file.
func (l *Loader) LoadPackage(path string) (*domain.PackageConfig, error) {
	var cfg domain.PackageConfig
	if err := readJSONC(path, &cfg); err != nil {
		return nil, err
	}
	if err := l.validate(path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadShared reads a depot.shared.json file.
func (l *Loader) LoadShared(path string) (*domain.SharedPackageConfig, error) {
	var shared domain.SharedPackageConfig
	if err := readJSONC(path, &shared); err != nil {
		return nil, err
	}
	if err := l.validate(path, &shared.Config); err != nil {
		return nil, err
	}
	return &shared, nil
}

// WriteShared writes cfg as indented JSON.
func (l *Loader) WriteShared(path string, cfg *domain.SharedPackageConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", path)
	}
	data = append(data, '\n')

	if err := fs.WriteFileAtomic(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigWriteFailed.Error()), "path", path)
	}
	return nil
}

func (l *Loader) validate(path string, cfg *domain.PackageConfig) error {
	if strings.TrimSpace(cfg.Info.ID) == "" {
		return zerr.With(zerr.Wrap(domain.ErrMissingPackageID, "invalid package config"), "path", path)
	}
	if err := domain.ValidatePackageID(cfg.Info.ID); err != nil {
		return zerr.With(err, "path", path)
	}
	if cfg.Info.Version == nil {
		err := zerr.Wrap(domain.ErrMissingPackageVersion, "invalid package config")
		return zerr.With(zerr.With(err, "path", path), "id", cfg.Info.ID)
	}

	seen := make(map[string]struct{}, len(cfg.Dependencies))
	for _, dep := range cfg.Dependencies {
		key := strings.ToLower(dep.ID)
		if _, ok := seen[key]; ok && l.Logger != nil {
			l.Logger.Warn(fmt.Sprintf("%s declares %s more than once", cfg.Info.ID, dep.ID))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func readJSONC(path string, v any) error {
	//nolint:gosec // Path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	if err := json.Unmarshal(jsonc.ToJSON(data), v); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return nil
}
