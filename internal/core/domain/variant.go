package domain

import (
	"path/filepath"
	"strings"
)

// Variant is one named compilation of a shader source.
type Variant struct {
	// Name is the output file name including the shader type suffix, e.g. "foo_a.comp".
	Name string
	// Defines are preprocessor definitions in NAME or NAME=VALUE form.
	Defines []string
}

// Fields returns the variant in list form: the name followed by its defines.
func (v Variant) Fields() []string {
	return append([]string{v.Name}, v.Defines...)
}

// Stem returns the variant name without its shader type suffix.
func (v Variant) Stem() string {
	return strings.TrimSuffix(v.Name, filepath.Ext(v.Name))
}

// UnitKind is the compiler family a shader source belongs to.
type UnitKind uint8

const (
	// KindUnknown marks files that are not shader sources.
	KindUnknown UnitKind = iota
	// KindGLSL is compiled by glslang, one task per file.
	KindGLSL
	// KindSlang is compiled by slangc, one task per variant.
	KindSlang
	// KindWGSL is compiled in process, one task per file.
	KindWGSL
)

func (k UnitKind) String() string {
	switch k {
	case KindGLSL:
		return "glsl"
	case KindSlang:
		return "slang"
	case KindWGSL:
		return "wgsl"
	default:
		return "unknown"
	}
}

var kindByExt = map[string]UnitKind{
	".comp":  KindGLSL,
	".vert":  KindGLSL,
	".geom":  KindGLSL,
	".frag":  KindGLSL,
	".rgen":  KindGLSL,
	".rchit": KindGLSL,
	".rahit": KindGLSL,
	".rmiss": KindGLSL,
	".rint":  KindGLSL,
	".slang": KindSlang,
	".wgsl":  KindWGSL,
}

// KindForFile classifies a path by its extension.
func KindForFile(path string) UnitKind {
	return kindByExt[filepath.Ext(path)]
}

// ShaderName strips the last extension from the base name: "foo.comp.slang" becomes "foo.comp".
func ShaderName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
