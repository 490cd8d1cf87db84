// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/depot/internal/adapters/artifacts"
	_ "go.trai.ch/depot/internal/adapters/config"
	_ "go.trai.ch/depot/internal/adapters/fs"
	_ "go.trai.ch/depot/internal/adapters/logger"
	_ "go.trai.ch/depot/internal/adapters/registry"
	_ "go.trai.ch/depot/internal/adapters/repository"
	_ "go.trai.ch/depot/internal/adapters/telemetry"
	_ "go.trai.ch/depot/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/depot/internal/app"
	_ "go.trai.ch/depot/internal/engine/collector"
	_ "go.trai.ch/depot/internal/engine/resolver"
)
