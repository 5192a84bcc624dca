package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shaderbuild/cmd/shaderbuild/commands"
	"go.trai.ch/shaderbuild/internal/app"
	"go.trai.ch/shaderbuild/internal/build"
	"go.trai.ch/shaderbuild/internal/core/domain"
)

type configCall struct {
	path     string
	required bool
}

type mockApp struct {
	config      *domain.BuildOptions
	configErr   error
	verbose     bool
	configCalls []configCall

	buildFunc   func(ctx context.Context, opts domain.BuildOptions) error
	watchFunc   func(ctx context.Context, opts domain.BuildOptions) error
	cleanFunc   func(ctx context.Context, opts app.CleanOptions) error
	embedFunc   func(ctx context.Context, input, output, name string) error
	compileFunc func(ctx context.Context, input, output string, debug bool) error
}

func (m *mockApp) SetVerbose(enable bool) {
	m.verbose = enable
}

func (m *mockApp) LoadConfig(path string, required bool) (*domain.BuildOptions, error) {
	m.configCalls = append(m.configCalls, configCall{path: path, required: required})
	if m.config == nil {
		return nil, m.configErr
	}
	cfg := *m.config
	return &cfg, m.configErr
}

func (m *mockApp) Build(ctx context.Context, opts domain.BuildOptions) error {
	if m.buildFunc != nil {
		return m.buildFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Watch(ctx context.Context, opts domain.BuildOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Clean(ctx context.Context, opts app.CleanOptions) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Embed(ctx context.Context, input, output, name string) error {
	if m.embedFunc != nil {
		return m.embedFunc(ctx, input, output, name)
	}
	return nil
}

func (m *mockApp) CompileWGSL(ctx context.Context, input, output string, debug bool) error {
	if m.compileFunc != nil {
		return m.compileFunc(ctx, input, output, debug)
	}
	return nil
}

func execute(t *testing.T, mock *mockApp, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(mock)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Build(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured domain.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts domain.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock,
			"--glslang", "/sdk/glslang",
			"--slangc", "/sdk/slangc",
			"--spirvval", "/sdk/spirv-val",
			"--input", "shaders",
			"-I", "shaders/include",
			"--include", "third_party",
			"--output", "build/shaders",
			"--ignore", "third_party",
			"--parallel", "--binary", "--debug", "--force", "--timings", "--verbose",
		)
		require.NoError(t, err)

		assert.Equal(t, domain.Toolchain{
			Glslang:  "/sdk/glslang",
			Slangc:   "/sdk/slangc",
			SpirvVal: "/sdk/spirv-val",
			Self:     captured.Tools.Self,
		}, captured.Tools)
		assert.NotEmpty(t, captured.Tools.Self)
		assert.Equal(t, "shaders", captured.Input)
		assert.Equal(t, []string{"shaders/include", "third_party"}, captured.Includes)
		assert.Equal(t, "build/shaders", captured.Output)
		assert.Equal(t, []string{"third_party"}, captured.Ignores)
		assert.True(t, captured.Parallel)
		assert.True(t, captured.Binary)
		assert.True(t, captured.Debug)
		assert.True(t, captured.Force)
		assert.True(t, captured.Timings)
		assert.True(t, mock.verbose)
		assert.Equal(t, []configCall{{path: domain.ConfigFileName, required: false}}, mock.configCalls)
	})

	t.Run("accepts single-dash long flags", func(t *testing.T) {
		var captured domain.BuildOptions
		mock := &mockApp{
			buildFunc: func(_ context.Context, opts domain.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "-glslang", "glslang", "-output=out", "-include", "inc", "-binary")
		require.NoError(t, err)
		assert.Equal(t, "glslang", captured.Tools.Glslang)
		assert.Equal(t, "out", captured.Output)
		assert.Equal(t, []string{"inc"}, captured.Includes)
		assert.True(t, captured.Binary)
		assert.Equal(t, ".", captured.Input)
	})

	t.Run("flags override the config file", func(t *testing.T) {
		var captured domain.BuildOptions
		mock := &mockApp{
			config: &domain.BuildOptions{
				Tools:    domain.Toolchain{Glslang: "/cfg/glslang", Slangc: "/cfg/slangc", SpirvVal: "/cfg/spirv-val"},
				Input:    "/cfg/shaders",
				Includes: []string{"/cfg/include"},
				Ignores:  []string{"vendor"},
				Output:   "/cfg/out",
				Parallel: true,
			},
			buildFunc: func(_ context.Context, opts domain.BuildOptions) error {
				captured = opts
				return nil
			},
		}

		_, err := execute(t, mock, "--config", "ci.yaml", "--output", "override", "--parallel=false")
		require.NoError(t, err)
		assert.Equal(t, []configCall{{path: "ci.yaml", required: true}}, mock.configCalls)
		assert.Equal(t, "/cfg/glslang", captured.Tools.Glslang)
		assert.Equal(t, "/cfg/shaders", captured.Input)
		assert.Equal(t, []string{"/cfg/include"}, captured.Includes)
		assert.Equal(t, []string{"vendor"}, captured.Ignores)
		assert.Equal(t, "override", captured.Output)
		assert.False(t, captured.Parallel)
	})

	t.Run("returns config errors", func(t *testing.T) {
		mock := &mockApp{
			configErr: domain.ErrConfigParseFailed,
			buildFunc: func(context.Context, domain.BuildOptions) error {
				panic("should not be called")
			},
		}

		_, err := execute(t, mock)
		require.ErrorIs(t, err, domain.ErrConfigParseFailed)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mock := &mockApp{
			buildFunc: func(context.Context, domain.BuildOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "--output", "out")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects positional arguments", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "shaders")
		require.Error(t, err)
	})
}

func TestCommands_Watch(t *testing.T) {
	var captured domain.BuildOptions
	mock := &mockApp{
		watchFunc: func(_ context.Context, opts domain.BuildOptions) error {
			captured = opts
			return nil
		},
		buildFunc: func(context.Context, domain.BuildOptions) error {
			panic("should not be called")
		},
	}

	_, err := execute(t, mock, "watch", "--output", "out", "-I", "inc")
	require.NoError(t, err)
	assert.Equal(t, "out", captured.Output)
	assert.Equal(t, []string{"inc"}, captured.Includes)
}

func TestCommands_Clean(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		config *domain.BuildOptions
		want   app.CleanOptions
	}{
		{
			name: "output flag",
			args: []string{"clean", "--output", "out"},
			want: app.CleanOptions{Output: "out"},
		},
		{
			name: "all artifacts",
			args: []string{"clean", "--output", "out", "--all"},
			want: app.CleanOptions{Output: "out", All: true},
		},
		{
			name:   "output from config",
			args:   []string{"clean", "-all"},
			config: &domain.BuildOptions{Output: "/cfg/out"},
			want:   app.CleanOptions{Output: "/cfg/out", All: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured app.CleanOptions
			mock := &mockApp{
				config: tt.config,
				cleanFunc: func(_ context.Context, opts app.CleanOptions) error {
					captured = opts
					return nil
				},
			}

			_, err := execute(t, mock, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, captured)
		})
	}
}

func TestCommands_Embed(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var got []string
		mock := &mockApp{
			embedFunc: func(_ context.Context, input, output, name string) error {
				got = []string{input, output, name}
				return nil
			},
		}

		_, err := execute(t, mock, "embed", "--input", "a.spv", "--output", "a.h", "--name", "a")
		require.NoError(t, err)
		assert.Equal(t, []string{"a.spv", "a.h", "a"}, got)
	})

	t.Run("requires every flag", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "embed", "--input", "a.spv")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "required flag(s)")
	})
}

func TestCommands_WGSL(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var (
			input, output string
			debug         bool
		)
		mock := &mockApp{
			compileFunc: func(_ context.Context, in, out string, dbg bool) error {
				input, output, debug = in, out, dbg
				return nil
			},
		}

		_, err := execute(t, mock, "wgsl", "--debug", "--output", "sky.spv", "sky.wgsl")
		require.NoError(t, err)
		assert.Equal(t, "sky.wgsl", input)
		assert.Equal(t, "sky.spv", output)
		assert.True(t, debug)
	})

	t.Run("requires a source", func(t *testing.T) {
		_, err := execute(t, &mockApp{}, "wgsl", "--output", "sky.spv")
		require.Error(t, err)
	})
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "shaderbuild version "+build.Version)
}

func TestNormalizeArgs(t *testing.T) {
	t.Parallel()

	got := commands.NormalizeArgs([]string{
		"-glslang", "/bin/glslang",
		"-output=out",
		"-I", "inc",
		"-Iother",
		"--binary",
		"-v",
		"-unknown",
		"--", "-debug",
	})
	assert.Equal(t, []string{
		"--glslang", "/bin/glslang",
		"--output=out",
		"-I", "inc",
		"-Iother",
		"--binary",
		"-v",
		"-unknown",
		"--", "-debug",
	}, got)
}
