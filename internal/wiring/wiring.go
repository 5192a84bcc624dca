// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/shaderbuild/internal/adapters/cas"
	_ "go.trai.ch/shaderbuild/internal/adapters/config"
	_ "go.trai.ch/shaderbuild/internal/adapters/fs"
	_ "go.trai.ch/shaderbuild/internal/adapters/linear"
	_ "go.trai.ch/shaderbuild/internal/adapters/logger"
	_ "go.trai.ch/shaderbuild/internal/adapters/shell"
	_ "go.trai.ch/shaderbuild/internal/adapters/telemetry"
	_ "go.trai.ch/shaderbuild/internal/adapters/watcher"
	_ "go.trai.ch/shaderbuild/internal/adapters/wgsl"
	// Register app nodes.
	_ "go.trai.ch/shaderbuild/internal/app"
)
