package config

import (
	"errors"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the settings file.
const (
	ConfigDirEnv = "DEPOT_CONFIG_DIR"
	CacheDirEnv  = "DEPOT_CACHE_DIR"
	RegistryEnv  = "DEPOT_REGISTRY"
)

// settingsFile mirrors config.yaml. Absent keys keep their defaults.
type settingsFile struct {
	Cache    string `yaml:"cache"`
	Registry string `yaml:"registry"`
	Timeout  string `yaml:"timeout"`
}

// LoadSettings reads config.yaml from dir on top of the defaults and applies
// environment overrides. A missing file is not an error.
func LoadSettings(dir string) (*domain.Settings, error) {
	s := domain.DefaultSettings()
	s.ConfigDir = dir

	path := filepath.Join(dir, domain.SettingsFileName)
	//nolint:gosec // Path is derived from the config directory
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
	case err != nil:
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsReadFailed.Error()), "path", path)
	default:
		var file settingsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "path", path)
		}
		if err := apply(s, &file); err != nil {
			return nil, zerr.With(err, "path", path)
		}
	}

	if v := os.Getenv(CacheDirEnv); v != "" {
		s.CacheDir = v
	}
	if v := os.Getenv(RegistryEnv); v != "" {
		s.Registry = v
	}
	s.CacheDir = expandHome(s.CacheDir)
	s.Registry = strings.TrimRight(s.Registry, "/")

	return s, nil
}

// SettingsDir returns the directory settings are loaded from.
func SettingsDir() string {
	if v := os.Getenv(ConfigDirEnv); v != "" {
		return v
	}
	return domain.DefaultConfigDir()
}

// SaveSettings writes the persisted fields of s to config.yaml in s.ConfigDir.
func SaveSettings(s *domain.Settings) error {
	file := settingsFile{
		Cache:    s.CacheDir,
		Registry: s.Registry,
		Timeout:  s.Timeout.String(),
	}
	data, err := yaml.Marshal(&file)
	if err != nil {
		return zerr.Wrap(err, "failed to marshal settings")
	}

	path := filepath.Join(s.ConfigDir, domain.SettingsFileName)
	if err := os.MkdirAll(s.ConfigDir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create config directory"), "path", s.ConfigDir)
	}
	//nolint:gosec // Path is derived from the config directory
	if err := os.WriteFile(path, data, domain.PrivateFilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write settings"), "path", path)
	}
	return nil
}

func apply(s *domain.Settings, file *settingsFile) error {
	if file.Cache != "" {
		s.CacheDir = file.Cache
	}
	if file.Registry != "" {
		s.Registry = file.Registry
	}
	if file.Timeout != "" {
		d, err := time.ParseDuration(file.Timeout)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSettingsParseFailed.Error()), "timeout", file.Timeout)
		}
		s.Timeout = d
	}
	return nil
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
