// Package variant reads the variant annotations at the top of Slang shader sources.
//
// A source declares variants with
//
//	//!variant <name>[.<type>] [DEFINE[=VALUE]...]
//	//!>       [DEFINE[=VALUE]...]
//	//!end-variants
//
// where "//!>" continues the define list of the previous declaration.
package variant

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	declareMarker  = "//!variant"
	continueMarker = "//!>"
	endMarker      = "//!end-variants"

	maxLineSize = 1 << 20
)

// Result holds the variants of one source file.
type Result struct {
	Variants []domain.Variant
	// Warnings are "file:line: message" diagnostics for lines that resemble annotations.
	Warnings []string
}

// ParseFile parses the variant annotations of the source at path.
func ParseFile(path string) (*Result, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from walking the input directory
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open shader source"), "path", path)
	}
	defer func() { _ = f.Close() }()

	return Parse(f, path)
}

// Parse reads annotations from r. Path names the source in diagnostics and
// provides the shader type inherited by variants that do not declare one.
//
// Malformed annotations return an error wrapping domain.ErrVariantParse.
func Parse(r io.Reader, path string) (*Result, error) {
	withType := domain.ShaderName(path)
	inputType := filepath.Ext(withType)

	res := &Result{}
	ended := false
	lineno := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")

		switch {
		case hasMarker(line, declareMarker):
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return nil, parseError(path, lineno, "invalid shader variant specification")
			}
			name := fields[1]
			if filepath.Ext(name) == "" {
				if inputType == "" {
					return nil, parseError(path, lineno, "shader type not specified here or in the file name")
				}
				name += inputType
			}
			var defines []string
			if len(fields) > 2 {
				defines = fields[2:]
			}
			res.Variants = append(res.Variants, domain.Variant{Name: name, Defines: defines})

		case hasMarker(line, continueMarker):
			if len(res.Variants) == 0 {
				return nil, parseError(path, lineno, "variant continuation must follow a declaration")
			}
			last := &res.Variants[len(res.Variants)-1]
			last.Defines = append(last.Defines, strings.Fields(line)[1:]...)

		case hasMarker(line, endMarker):
			ended = true

		case (strings.HasPrefix(line, "//!") || strings.HasPrefix(line, "//>")) && len(res.Variants) > 0:
			res.Warnings = append(res.Warnings,
				fmt.Sprintf("%s:%d: this looks like a variant declaration but is not one", path, lineno))
		}

		if ended {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read shader source"), "path", path)
	}

	switch {
	case len(res.Variants) == 0:
		res.Variants = []domain.Variant{{Name: withType}}
	case !ended:
		return nil, parseError(path, lineno, "no !end-variants found in the file")
	}
	return res, nil
}

// hasMarker reports whether line starts with marker followed by whitespace or nothing.
func hasMarker(line, marker string) bool {
	rest, ok := strings.CutPrefix(line, marker)
	return ok && (rest == "" || rest[0] == ' ' || rest[0] == '\t')
}

func parseError(path string, line int, msg string) error {
	err := zerr.Wrap(domain.ErrVariantParse, fmt.Sprintf("%s:%d: %s", path, line, msg))
	err = zerr.With(err, "file", path)
	return zerr.With(err, "line", line)
}
