// Package embed converts SPIR-V modules into C headers holding a uint32_t array.
package embed

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

// WordsPerLine is the number of SPIR-V words written on each line of the array.
const WordsPerLine = 8

// WriteHeader writes spirv as `const uint32_t <name>[] = {...};`.
// The module must be a whole number of little-endian 32-bit words.
func WriteHeader(w io.Writer, spirv []byte, name string) error {
	if len(spirv)%4 != 0 {
		return zerr.With(zerr.Wrap(domain.ErrInvalidSPIRV, "cannot embed "+name), "size", len(spirv))
	}

	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintf(bw, "// Generated by shaderbuild. Do not edit.\n#pragma once\n\n#include <stdint.h>\n\n")
	_, _ = fmt.Fprintf(bw, "const uint32_t %s[] = {", name)

	words := len(spirv) / 4
	for i := range words {
		if i%WordsPerLine == 0 {
			_, _ = bw.WriteString("\n\t")
		} else {
			_, _ = bw.WriteString(" ")
		}
		_, _ = fmt.Fprintf(bw, "0x%08x,", binary.LittleEndian.Uint32(spirv[i*4:]))
	}
	_, _ = bw.WriteString("\n};\n")

	return bw.Flush()
}

// File reads the SPIR-V module at input and writes its header to output.
// The header is written to a temporary file and renamed into place.
func File(input, output, name string) error {
	spirv, err := os.ReadFile(input) //nolint:gosec // path given on the command line
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to read SPIR-V module"), "path", input)
	}

	tmp, err := os.CreateTemp(filepath.Dir(output), filepath.Base(output)+".*.tmp")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create header"), "path", output)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := WriteHeader(tmp, spirv, name); err != nil {
		_ = tmp.Close()
		return zerr.With(err, "path", input)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write header"), "path", output)
	}
	if err := os.Chmod(tmp.Name(), domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write header"), "path", output)
	}
	if err := os.Rename(tmp.Name(), output); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write header"), "path", output)
	}
	return nil
}
