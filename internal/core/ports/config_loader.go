package ports

import "go.trai.ch/shaderbuild/internal/core/domain"

// ConfigLoader defines the interface for loading the build configuration file.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. Relative paths inside the file are
	// resolved against the file's directory.
	//
	// A missing file yields nil, nil unless required is set.
	Load(path string, required bool) (*domain.BuildOptions, error)
}
