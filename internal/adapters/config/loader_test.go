package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shaderbuild/internal/adapters/config"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func createFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), domain.FilePerm))
	return path
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))

	dir := t.TempDir()
	absInclude := filepath.Join(t.TempDir(), "shared")
	path := createFile(t, dir, domain.ConfigFileName, `
version: "1"
tools:
  glslang: glslangValidator
  slangc: external/slang/bin/slangc
  spirvval: `+filepath.Join(dir, "bin", "spirv-val")+`
input: src/shaders
output: _build/shaders
includes:
  - src/shaders/include
  - `+absInclude+`
ignore:
  - third_party
  - "*.inc.slang"
parallel: true
binary: true
debug: true
`)

	opts, err := loader.Load(path, true)
	require.NoError(t, err)
	require.NotNil(t, opts)

	assert.Equal(t, domain.Toolchain{
		Glslang:  "glslangValidator",
		Slangc:   filepath.Join(dir, "external", "slang", "bin", "slangc"),
		SpirvVal: filepath.Join(dir, "bin", "spirv-val"),
	}, opts.Tools)
	assert.Equal(t, filepath.Join(dir, "src", "shaders"), opts.Input)
	assert.Equal(t, filepath.Join(dir, "_build", "shaders"), opts.Output)
	assert.Equal(t, []string{filepath.Join(dir, "src", "shaders", "include"), absInclude}, opts.Includes)
	assert.Equal(t, []string{"third_party", "*.inc.slang"}, opts.Ignores)
	assert.True(t, opts.Parallel)
	assert.True(t, opts.Binary)
	assert.True(t, opts.Debug)
	assert.False(t, opts.Force)
}

func TestLoader_Load_Empty(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	path := createFile(t, t.TempDir(), domain.ConfigFileName, "version: \"1\"\n")

	opts, err := loader.Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, &domain.BuildOptions{}, opts)
}

func TestLoader_Load_Missing(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	path := filepath.Join(t.TempDir(), domain.ConfigFileName)

	t.Run("optional", func(t *testing.T) {
		t.Parallel()
		opts, err := loader.Load(path, false)
		require.NoError(t, err)
		assert.Nil(t, opts)
	})

	t.Run("required", func(t *testing.T) {
		t.Parallel()
		opts, err := loader.Load(path, true)
		require.Error(t, err)
		assert.Nil(t, opts)
		assert.True(t, errors.Is(err, domain.ErrConfigNotFound))
	})
}

func TestLoader_Load_Invalid(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	loader := config.NewLoader(mocks.NewMockLogger(ctrl))
	path := createFile(t, t.TempDir(), domain.ConfigFileName, "includes: [unterminated\n")

	_, err := loader.Load(path, false)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrConfigParseFailed.Error())
}

func TestLoader_Load_UnknownVersion(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	loader := config.NewLoader(mockLogger)
	path := createFile(t, t.TempDir(), domain.ConfigFileName, "version: \"2\"\noutput: out\n")

	opts, err := loader.Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "out"), opts.Output)
}
