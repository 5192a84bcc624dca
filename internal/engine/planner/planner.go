// Package planner turns a shader source tree into the list of build tasks
// whose outputs are out of date.
package planner

import (
	"context"
	"path/filepath"
	"strings"

	"go.trai.ch/shaderbuild/internal/adapters/depfile"
	"go.trai.ch/shaderbuild/internal/adapters/variant"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
)

// SlangValidationEnv makes slangc validate the SPIR-V it emits.
const SlangValidationEnv = "SLANG_RUN_SPIRV_VALIDATION=1"

// Plan is the outcome of planning a build.
type Plan struct {
	// Tasks are the stale tasks in discovery order.
	Tasks []*domain.Task
	// UpToDate counts the tasks that were dropped because their outputs are current.
	UpToDate int
	// Warnings are "file:line: message" diagnostics from the variant parser.
	Warnings []string
}

// Names returns the display names of the planned tasks.
func (p *Plan) Names() []string {
	names := make([]string, 0, len(p.Tasks))
	for _, t := range p.Tasks {
		names = append(names, t.DisplayName())
	}
	return names
}

// Planner discovers shader sources and builds their tasks.
type Planner struct {
	walker  ports.SourceWalker
	checker ports.StalenessChecker
	logger  ports.Logger
}

// New creates a new Planner.
func New(walker ports.SourceWalker, checker ports.StalenessChecker, logger ports.Logger) *Planner {
	return &Planner{walker: walker, checker: checker, logger: logger}
}

// Plan walks opts.Input, skipping names matching opts.Ignores, and returns the
// tasks that need a build.
//
// A malformed variant annotation aborts planning with an error wrapping
// domain.ErrVariantParse before any task is returned.
func (p *Planner) Plan(ctx context.Context, opts *domain.BuildOptions) (*Plan, error) {
	plan := &Plan{}

	for path, err := range p.walker.WalkFiles(opts.Input, opts.Ignores) {
		if err != nil {
			return nil, err
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tasks, warnings, err := Tasks(path, opts)
		if err != nil {
			return nil, err
		}
		plan.Warnings = append(plan.Warnings, warnings...)

		for _, t := range tasks {
			if p.needsBuild(t) {
				plan.Tasks = append(plan.Tasks, t)
				continue
			}
			plan.UpToDate++
			p.logger.Debug("up to date: " + t.DisplayName())
		}
	}
	return plan, nil
}

// needsBuild treats an undecidable task as stale.
func (p *Planner) needsBuild(t *domain.Task) bool {
	stale, err := p.checker.NeedsBuild(t)
	if err != nil {
		p.logger.Warn("rebuilding " + t.DisplayName() + ": " + err.Error())
		return true
	}
	return stale
}

// Tasks returns the tasks compiling the source at path, along with any
// variant parser warnings. Files that are not shader sources yield nothing.
func Tasks(path string, opts *domain.BuildOptions) ([]*domain.Task, []string, error) {
	switch domain.KindForFile(path) {
	case domain.KindGLSL:
		return []*domain.Task{GLSLTask(path, opts)}, nil, nil

	case domain.KindSlang:
		res, err := variant.ParseFile(path)
		if err != nil {
			return nil, nil, err
		}
		tasks := make([]*domain.Task, 0, len(res.Variants))
		for _, v := range res.Variants {
			tasks = append(tasks, SlangTask(path, v, opts))
		}
		return tasks, res.Warnings, nil

	case domain.KindWGSL:
		return []*domain.Task{WGSLTask(path, opts)}, nil, nil

	default:
		return nil, nil, nil
	}
}

// GLSLTask compiles one GLSL stage with glslang. In header mode glslang writes
// the C array itself.
func GLSLTask(path string, opts *domain.BuildOptions) *domain.Task {
	stem := domain.ShaderName(path)
	artifact := filepath.Join(opts.Output, stem+domain.ArtifactExt(opts.Binary))
	dep := filepath.Join(opts.Output, stem+domain.DepfileExt)

	args := []string{opts.Tools.Glslang, "--quiet", "--target-env", "vulkan1.2", "-Os"}
	if opts.Debug {
		args = append(args, "-g")
	}
	args = append(args, includeFlags(opts.Includes)...)
	args = append(args, "-V")
	if !opts.Binary {
		args = append(args, "--vn", stem)
	}
	args = append(args, "-o", artifact, "--depfile", dep, path)

	return &domain.Task{
		Inputs:   depfile.Load(dep, artifact),
		Outputs:  []string{artifact, dep},
		Commands: []domain.Command{{Args: args}},
	}
}

// SlangTask compiles one variant of a Slang source. Header mode adds an embed step.
func SlangTask(path string, v domain.Variant, opts *domain.BuildOptions) *domain.Task {
	stem := v.Stem()
	spv := filepath.Join(opts.Output, stem+domain.SPIRVExt)
	dep := filepath.Join(opts.Output, stem+domain.DepfileExt)

	args := []string{
		opts.Tools.Slangc,
		"-entry", "main",
		"-target", "spirv",
		"-zero-initialize",
		"-emit-spirv-directly",
		"-verbose-paths",
	}
	args = append(args, includeFlags(opts.Includes)...)
	args = append(args, "-depfile", dep, path, "-D__SLANG__")
	for _, d := range v.Defines {
		args = append(args, "-D"+d)
	}
	args = append(args,
		"-matrix-layout-column-major",
		"-Wno-30081",
		"-fvk-use-scalar-layout",
		"-o", spv,
	)

	task := &domain.Task{
		Inputs:   depfile.Load(dep, spv),
		Outputs:  []string{spv, dep},
		Commands: []domain.Command{{Args: args, Env: []string{SlangValidationEnv}}},
	}

	fileStem := strings.TrimSuffix(domain.ShaderName(path), filepath.Ext(domain.ShaderName(path)))
	if stem != fileStem {
		task.Name = filepath.Base(path) + " (" + stem + ")"
	}

	if !opts.Binary {
		header := filepath.Join(opts.Output, stem+domain.HeaderExt)
		task.Outputs = append(task.Outputs, header)
		task.Commands = append(task.Commands, embedCommand(opts.Tools.Self, spv, header, stem))
	}
	return task
}

// WGSLTask compiles a WGSL source in process through the shaderbuild executable.
// The source is its only input since naga writes no depfile.
func WGSLTask(path string, opts *domain.BuildOptions) *domain.Task {
	stem := domain.ShaderName(path)
	spv := filepath.Join(opts.Output, stem+domain.SPIRVExt)

	args := []string{opts.Tools.Self, "wgsl"}
	if opts.Debug {
		args = append(args, "--debug")
	}
	args = append(args, "--output", spv, path)

	task := &domain.Task{
		Inputs:   []string{path},
		Outputs:  []string{spv},
		Commands: []domain.Command{{Args: args}},
	}

	if !opts.Binary {
		header := filepath.Join(opts.Output, stem+domain.HeaderExt)
		task.Outputs = append(task.Outputs, header)
		task.Commands = append(task.Commands, embedCommand(opts.Tools.Self, spv, header, stem))
	}
	return task
}

func embedCommand(self, spv, header, name string) domain.Command {
	return domain.Command{Args: []string{self, "embed", "--input", spv, "--output", header, "--name", name}}
}

func includeFlags(includes []string) []string {
	flags := make([]string, 0, len(includes))
	for _, inc := range includes {
		flags = append(flags, "-I"+inc)
	}
	return flags
}
