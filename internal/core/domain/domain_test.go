package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/shaderbuild/internal/core/domain"
)

func TestTask_DisplayName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		task domain.Task
		want string
	}{
		{
			name: "override wins",
			task: domain.Task{Name: "foo.slang (foo_a)", Inputs: []string{"src/foo.slang"}},
			want: "foo.slang (foo_a)",
		},
		{
			name: "first input",
			task: domain.Task{Inputs: []string{filepath.Join("src", "a.comp"), "b.glsl"}, Outputs: []string{"out/a.h"}},
			want: "a.comp",
		},
		{
			name: "first output",
			task: domain.Task{Outputs: []string{filepath.Join("out", "a.spv"), "out/a.d"}},
			want: "a.spv",
		},
		{
			name: "unknown",
			task: domain.Task{},
			want: domain.UnknownTaskName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.task.DisplayName())
		})
	}
}

func TestCommand_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "slangc", domain.Command{Args: []string{filepath.Join("tools", "slangc"), "-o", "x"}}.Name())
	assert.Empty(t, domain.Command{}.Name())
	assert.Equal(t, "glslang -V a.comp", domain.Command{Args: []string{"glslang", "-V", "a.comp"}}.String())
}

func TestResult_Failed(t *testing.T) {
	t.Parallel()

	assert.False(t, domain.Result{}.Failed())
	assert.True(t, domain.Result{ExitCode: -1073741819}.Failed())
}

func TestKindForFile(t *testing.T) {
	t.Parallel()

	tests := map[string]domain.UnitKind{
		"a.comp":        domain.KindGLSL,
		"a.rchit":       domain.KindGLSL,
		"a.rint":        domain.KindGLSL,
		"a.comp.slang":  domain.KindSlang,
		"a.wgsl":        domain.KindWGSL,
		"a.slangh":      domain.KindUnknown,
		"README.md":     domain.KindUnknown,
		"no_extension":  domain.KindUnknown,
		"dir/a.frag":    domain.KindGLSL,
		"dir.comp/a.md": domain.KindUnknown,
	}

	for path, want := range tests {
		assert.Equal(t, want, domain.KindForFile(path), path)
	}
}

func TestVariant(t *testing.T) {
	t.Parallel()

	v := domain.Variant{Name: "foo_a.comp", Defines: []string{"A=1", "B"}}
	assert.Equal(t, []string{"foo_a.comp", "A=1", "B"}, v.Fields())
	assert.Equal(t, "foo_a", v.Stem())
	assert.Equal(t, "foo.comp", domain.ShaderName(filepath.Join("src", "foo.comp.slang")))
}

func TestBuildOptions_Validate(t *testing.T) {
	t.Parallel()

	valid := domain.BuildOptions{
		Tools:  domain.Toolchain{Glslang: "glslang", Slangc: "slangc", SpirvVal: "spirv-val"},
		Output: "out",
	}
	assert.NoError(t, valid.Validate())

	noSlang := valid
	noSlang.Tools.Slangc = ""
	err := noSlang.Validate()
	assert.True(t, errors.Is(err, domain.ErrMissingTool))
	assert.Contains(t, err.Error(), "--slangc is required")

	noOutput := valid
	noOutput.Output = ""
	assert.ErrorIs(t, noOutput.Validate(), domain.ErrMissingOutput)
}

func TestBuildOptions_Workers(t *testing.T) {
	t.Parallel()

	opts := domain.BuildOptions{}
	assert.Equal(t, 1, opts.Workers())

	opts.Parallel = true
	assert.GreaterOrEqual(t, opts.Workers(), 1)
}

func TestLayout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, filepath.Join(".shaderbuild", "store"), domain.DefaultStorePath())
	assert.Equal(t, ".spv", domain.ArtifactExt(true))
	assert.Equal(t, ".h", domain.ArtifactExt(false))
}
