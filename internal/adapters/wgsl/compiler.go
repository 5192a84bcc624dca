// Package wgsl compiles WGSL shaders to SPIR-V in process with naga.
package wgsl

import (
	"os"

	"github.com/gogpu/naga"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.WGSLCompiler = (*Compiler)(nil)

// Compiler implements ports.WGSLCompiler.
type Compiler struct {
	validate bool
}

// NewCompiler creates a Compiler that validates the IR before emitting SPIR-V.
func NewCompiler() *Compiler {
	return &Compiler{validate: naga.DefaultOptions().Validate}
}

// WithoutValidation skips IR validation.
func (c *Compiler) WithoutValidation() *Compiler {
	return &Compiler{validate: false}
}

// Compile translates WGSL source to a SPIR-V module. Debug adds names and line info.
func (c *Compiler) Compile(source []byte, debug bool) ([]byte, error) {
	opts := naga.DefaultOptions()
	opts.Debug = debug
	opts.Validate = c.validate

	spirv, err := naga.CompileWithOptions(string(source), opts)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWGSLCompileFailed.Error())
	}
	return spirv, nil
}

// CompileFile compiles the WGSL file at input and writes the module to output.
func CompileFile(c ports.WGSLCompiler, input, output string, debug bool) error {
	source, err := os.ReadFile(input) //nolint:gosec // path given on the command line
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read WGSL source"), "path", input)
	}

	spirv, err := c.Compile(source, debug)
	if err != nil {
		return zerr.With(err, "path", input)
	}

	if err := os.WriteFile(output, spirv, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write SPIR-V module"), "path", output)
	}
	return nil
}
