package domain

import "path/filepath"

const (
	// StateDirName is the directory inside the output directory holding shaderbuild state.
	StateDirName = ".shaderbuild"

	// StoreDirName is the name of the build stamp directory.
	StoreDirName = "store"

	// ConfigFileName is the default configuration file name.
	ConfigFileName = "shaderbuild.yaml"

	// SPIRVExt is the extension of compiled SPIR-V modules.
	SPIRVExt = ".spv"

	// HeaderExt is the extension of generated C headers.
	HeaderExt = ".h"

	// DepfileExt is the extension of compiler-written dependency files.
	DepfileExt = ".d"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the build stamp directory relative to the output directory.
// It joins .shaderbuild and store.
func DefaultStorePath() string {
	return filepath.Join(StateDirName, StoreDirName)
}

// ArtifactExt returns the extension of the primary artifact for the requested output mode.
func ArtifactExt(binary bool) string {
	if binary {
		return SPIRVExt
	}
	return HeaderExt
}
