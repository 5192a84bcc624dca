package commands

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/shaderbuild/internal/core/domain"
)

// legacyFlags are the long flags older build scripts pass with a single dash.
var legacyFlags = map[string]bool{
	"glslang":  true,
	"slangc":   true,
	"spirvval": true,
	"input":    true,
	"include":  true,
	"ignore":   true,
	"output":   true,
	"force":    true,
	"parallel": true,
	"binary":   true,
	"debug":    true,
	"timings":  true,
	"config":   true,
	"verbose":  true,
	"all":      true,
	"name":     true,
}

// NormalizeArgs rewrites single-dash long flags such as -glslang or
// -output=dir to their double-dash form. Arguments after "--" are kept as is.
func NormalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--") {
			name, _, _ := strings.Cut(arg[1:], "=")
			if legacyFlags[name] {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}

type buildFlags struct {
	glslang  string
	slangc   string
	spirvval string
	input    string
	includes []string
	ignores  []string
	output   string
	config   string

	force    bool
	parallel bool
	binary   bool
	debug    bool
	timings  bool
	verbose  bool
}

func (f *buildFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.glslang, "glslang", "", "Path to the glslang compiler")
	flags.StringVar(&f.slangc, "slangc", "", "Path to the slangc compiler")
	flags.StringVar(&f.spirvval, "spirvval", "", "Path to spirv-val")
	flags.StringVar(&f.input, "input", ".", "Directory searched recursively for shaders")
	flags.StringArrayVarP(&f.includes, "include", "I", nil, "Include directory passed to the compilers (repeatable)")
	flags.StringArrayVar(&f.ignores, "ignore", nil, "File or directory name pattern to skip (repeatable)")
	flags.StringVar(&f.output, "output", "", "Directory receiving the compiled shaders")
	flags.StringVarP(&f.config, "config", "c", domain.ConfigFileName, "Path to configuration file")
	flags.BoolVar(&f.force, "force", false, "Rebuild every shader regardless of timestamps")
	flags.BoolVar(&f.parallel, "parallel", false, "Build with one worker per CPU")
	flags.BoolVar(&f.binary, "binary", false, "Write raw SPIR-V instead of C headers")
	flags.BoolVar(&f.debug, "debug", false, "Emit debug information")
	flags.BoolVar(&f.timings, "timings", false, "Print the slowest shaders after the build")
	flags.BoolVarP(&f.verbose, "verbose", "v", false, "Log planned and skipped shaders")
}

// buildOptions merges the configuration file with the flags. Flags set on the
// command line take precedence over the file, which takes precedence over the
// flag defaults.
//
//nolint:cyclop // one override per flag
func (c *CLI) buildOptions(cmd *cobra.Command, f *buildFlags) (domain.BuildOptions, error) {
	c.app.SetVerbose(f.verbose)

	changed := cmd.Flags().Changed
	cfg, err := c.app.LoadConfig(f.config, changed("config"))
	if err != nil {
		return domain.BuildOptions{}, err
	}

	opts := domain.BuildOptions{}
	if cfg != nil {
		opts = *cfg
	}
	if opts.Input == "" || changed("input") {
		opts.Input = f.input
	}
	if changed("glslang") {
		opts.Tools.Glslang = f.glslang
	}
	if changed("slangc") {
		opts.Tools.Slangc = f.slangc
	}
	if changed("spirvval") {
		opts.Tools.SpirvVal = f.spirvval
	}
	if changed("include") {
		opts.Includes = f.includes
	}
	if changed("ignore") {
		opts.Ignores = f.ignores
	}
	if changed("output") {
		opts.Output = f.output
	}
	if changed("parallel") {
		opts.Parallel = f.parallel
	}
	if changed("binary") {
		opts.Binary = f.binary
	}
	if changed("debug") {
		opts.Debug = f.debug
	}
	opts.Force = f.force
	opts.Timings = f.timings
	opts.Verbose = f.verbose
	opts.Tools.Self = self()

	return opts, nil
}

// self returns the path of the running executable, used for the embed and wgsl steps.
func self() string {
	if path, err := os.Executable(); err == nil {
		return path
	}
	return os.Args[0]
}
