// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/cargosync/internal/adapters/cargo"
	_ "go.trai.ch/cargosync/internal/adapters/checksum"
	_ "go.trai.ch/cargosync/internal/adapters/config"
	_ "go.trai.ch/cargosync/internal/adapters/logger"
	_ "go.trai.ch/cargosync/internal/adapters/manifest"
	// Register app nodes.
	_ "go.trai.ch/cargosync/internal/app"
)
