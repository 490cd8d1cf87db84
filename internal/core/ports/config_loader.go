package ports

import "go.trai.ch/depot/internal/core/domain"

// ConfigLoader reads and writes package config files.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadPackage reads a depot.json file.
	LoadPackage(path string) (*domain.PackageConfig, error)

	// LoadShared reads a depot.shared.json file.
	LoadShared(path string) (*domain.SharedPackageConfig, error)

	// WriteShared writes a depot.shared.json file.
	WriteShared(path string, cfg *domain.SharedPackageConfig) error
}
