package shell

// Export private helpers for testing.
var (
	NormalizeExitCode = normalizeExitCode
	MergeEnvironment  = mergeEnvironment
)
