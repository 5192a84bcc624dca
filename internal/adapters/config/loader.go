// Package config provides the configuration loader for shaderbuild.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration schema version this loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration file at path.
func (l *Loader) Load(path string, required bool) (*domain.BuildOptions, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if !required {
				return nil, nil
			}
			return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, "config file does not exist"), "path", path)
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Shaderfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s: unknown config version %q, expected %q", path, file.Version, SupportedVersion))
	}

	dir := filepath.Dir(path)
	opts := &domain.BuildOptions{
		Tools: domain.Toolchain{
			Glslang:  resolveTool(dir, file.Tools.Glslang),
			Slangc:   resolveTool(dir, file.Tools.Slangc),
			SpirvVal: resolveTool(dir, file.Tools.SpirvVal),
		},
		Input:    resolvePath(dir, file.Input),
		Output:   resolvePath(dir, file.Output),
		Ignores:  file.Ignore,
		Parallel: file.Parallel,
		Binary:   file.Binary,
		Debug:    file.Debug,
	}
	for _, include := range file.Includes {
		opts.Includes = append(opts.Includes, resolvePath(dir, include))
	}

	return opts, nil
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}

// resolvePath joins relative paths onto the configuration directory.
func resolvePath(dir, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// resolveTool resolves tool paths like resolvePath but leaves bare command
// names alone so they are looked up in PATH.
func resolveTool(dir, path string) string {
	if filepath.Base(path) == path {
		return path
	}
	return resolvePath(dir, path)
}
