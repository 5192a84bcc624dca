package domain

import (
	"runtime"

	"go.trai.ch/zerr"
)

// Toolchain holds the paths of the external compilers.
type Toolchain struct {
	Glslang string
	Slangc  string
	// SpirvVal is accepted for compatibility with existing build scripts and is never invoked.
	SpirvVal string
	// Self is the shaderbuild executable, used for the embed and wgsl steps.
	Self string
}

// BuildOptions configures one build run.
type BuildOptions struct {
	Tools    Toolchain
	Input    string
	Includes []string
	Output   string
	// Ignores are file and directory name patterns skipped below Input.
	Ignores []string

	Force    bool
	Parallel bool
	// Binary selects raw SPIR-V artifacts instead of C headers.
	Binary bool
	Debug  bool

	Timings bool
	Verbose bool
}

// Validate checks that the options name everything a build needs.
func (o *BuildOptions) Validate() error {
	switch {
	case o.Tools.Glslang == "":
		return missingTool("glslang")
	case o.Tools.Slangc == "":
		return missingTool("slangc")
	case o.Tools.SpirvVal == "":
		return missingTool("spirvval")
	case o.Output == "":
		return ErrMissingOutput
	}
	return nil
}

// Workers returns the size of the worker pool.
func (o *BuildOptions) Workers() int {
	if o.Parallel {
		return max(runtime.NumCPU(), 1)
	}
	return 1
}

func missingTool(name string) error {
	return zerr.With(zerr.Wrap(ErrMissingTool, "--"+name+" is required"), "tool", name)
}
