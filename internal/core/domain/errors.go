package domain

import "go.trai.ch/zerr"

var (
	// ErrMissingTool is returned when a compiler path is not configured or cannot be found.
	ErrMissingTool = zerr.New("tool not found")

	// ErrMissingOutput is returned when no output directory is configured.
	ErrMissingOutput = zerr.New("output directory is required")

	// ErrVariantParse is returned when a shader's variant annotations are malformed.
	ErrVariantParse = zerr.New("invalid variant annotations")

	// ErrBuildFailed is returned when at least one task exited with a non-zero code.
	ErrBuildFailed = zerr.New("shader build failed")

	// ErrInterrupted is returned when the build was stopped by a signal.
	ErrInterrupted = zerr.New("shader build interrupted")

	// ErrCommandStart is returned when an external command could not be started.
	ErrCommandStart = zerr.New("failed to start command")

	// ErrInputWalkFailed is returned when the input directory cannot be walked.
	ErrInputWalkFailed = zerr.New("failed to walk input directory")

	// ErrOutputCreateFailed is returned when the output directory cannot be created.
	ErrOutputCreateFailed = zerr.New("failed to create output directory")

	// ErrToolStatFailed is returned when a compiler's modification time cannot be read.
	ErrToolStatFailed = zerr.New("failed to stat tool")

	// ErrStoreCreateFailed is returned when the build stamp directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create build stamp directory")

	// ErrStoreReadFailed is returned when a build stamp cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build stamp")

	// ErrStoreUnmarshalFailed is returned when a build stamp cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build stamp")

	// ErrStoreMarshalFailed is returned when a build stamp cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build stamp")

	// ErrStoreWriteFailed is returned when a build stamp cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build stamp")

	// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrCleanFailed is returned when build state or artifacts cannot be removed.
	ErrCleanFailed = zerr.New("failed to clean output directory")

	// ErrInvalidSPIRV is returned when a SPIR-V module is not a whole number of words.
	ErrInvalidSPIRV = zerr.New("SPIR-V size is not a multiple of 4 bytes")

	// ErrWGSLCompileFailed is returned when a WGSL source fails to compile.
	ErrWGSLCompileFailed = zerr.New("failed to compile WGSL")

	// ErrWatchFailed is returned when file watching cannot be started.
	ErrWatchFailed = zerr.New("failed to watch input directories")
)
