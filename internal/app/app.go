// Package app implements the application layer for shaderbuild.
package app

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.trai.ch/shaderbuild/internal/adapters/embed"
	"go.trai.ch/shaderbuild/internal/adapters/fs"
	"go.trai.ch/shaderbuild/internal/adapters/telemetry"
	"go.trai.ch/shaderbuild/internal/adapters/watcher"
	"go.trai.ch/shaderbuild/internal/adapters/wgsl"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/shaderbuild/internal/engine/planner"
	"go.trai.ch/shaderbuild/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// timingsLimit is the number of tasks listed by --timings.
const timingsLimit = 10

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     ports.Executor
	logger       ports.Logger
	store        ports.BuildInfoStore
	hasher       ports.Hasher
	walker       ports.SourceWalker
	reporter     ports.Reporter
	tracer       ports.Tracer
	bridge       *telemetry.Bridge
	compiler     ports.WGSLCompiler
	newWatcher   ports.WatcherFactory
	debounce     time.Duration
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	executor ports.Executor,
	log ports.Logger,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	walker ports.SourceWalker,
	reporter ports.Reporter,
	tracer ports.Tracer,
	bridge *telemetry.Bridge,
	compiler ports.WGSLCompiler,
	newWatcher ports.WatcherFactory,
) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		logger:       log,
		store:        store,
		hasher:       hasher,
		walker:       walker,
		reporter:     reporter,
		tracer:       tracer,
		bridge:       bridge,
		compiler:     compiler,
		newWatcher:   newWatcher,
		debounce:     watcher.DefaultDebounceWindow,
	}
}

// WithDebounce sets the quiet period watch mode waits for before rebuilding.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// SetVerbose toggles debug logging.
func (a *App) SetVerbose(enable bool) {
	a.logger.SetVerbose(enable)
}

// LoadConfig reads the configuration file at path. A missing file yields
// nil, nil unless required is set.
func (a *App) LoadConfig(path string, required bool) (*domain.BuildOptions, error) {
	return a.configLoader.Load(path, required)
}

// Build compiles every stale shader below opts.Input.
//
// The returned error wraps domain.ErrBuildFailed or domain.ErrInterrupted when
// the scheduler ran; the reporter has already printed the details then.
func (a *App) Build(ctx context.Context, opts domain.BuildOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(opts.Output, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrOutputCreateFailed.Error()), "output", opts.Output)
	}

	newestTool, err := fs.NewestToolTime(opts.Tools)
	if err != nil {
		return err
	}

	checker := fs.NewChecker(a.hasher, a.store, fs.CheckerOptions{
		Root:       opts.Output,
		Force:      opts.Force,
		NewestTool: newestTool,
	})

	plan, err := planner.New(a.walker, checker, a.logger).Plan(ctx, &opts)
	if err != nil {
		return err
	}
	for _, w := range plan.Warnings {
		a.logger.Warn(w)
	}

	a.reporter.OnPlan(plan.Names(), plan.UpToDate)
	if len(plan.Tasks) == 0 {
		return nil
	}
	for _, name := range plan.Names() {
		a.logger.Debug("planned: " + name)
	}

	a.bridge.Reset()
	sched := scheduler.NewScheduler(a.executor, a.store, a.hasher, a.reporter, a.tracer, a.logger)
	report, err := sched.Run(ctx, plan.Tasks, scheduler.Options{
		Parallelism: opts.Workers(),
		Root:        opts.Output,
	})

	a.reporter.OnSummary(report)
	if opts.Timings {
		a.reporter.OnTimings(a.bridge.Slowest(timingsLimit))
	}
	return err
}

// Watch builds once and then rebuilds whenever a file below the input or
// include directories changes. It returns nil when ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts domain.BuildOptions) error {
	if err := a.watchBuild(ctx, opts); err != nil {
		return err
	}

	w, err := a.newWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	roots := append([]string{opts.Input}, opts.Includes...)
	if err := w.Start(ctx, roots); err != nil {
		return err
	}
	a.logger.Info("watching " + strings.Join(roots, ", ") + " for changes")

	rebuild := make(chan []string, 1)
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
		}
	})
	defer debouncer.Stop()

	go func() {
		for event := range w.Events() {
			if !isOutput(event.Path, opts.Output) {
				debouncer.Add(event.Path)
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-rebuild:
			a.logger.Debug("changed: " + strings.Join(paths, ", "))
			if err := a.watchBuild(ctx, opts); err != nil {
				return err
			}
		}
	}
}

// watchBuild runs one build of a watch session. Build and planning failures
// are reported and the session goes on; only invalid options end it.
func (a *App) watchBuild(ctx context.Context, opts domain.BuildOptions) error {
	err := a.Build(ctx, opts)
	switch {
	case err == nil, ctx.Err() != nil, errors.Is(err, domain.ErrBuildFailed):
		return nil
	case errors.Is(err, domain.ErrMissingTool), errors.Is(err, domain.ErrMissingOutput):
		return err
	default:
		a.logger.Error(err)
		return nil
	}
}

// isOutput reports whether path lies inside the output directory, whose
// artifacts would otherwise retrigger the build that wrote them.
func isOutput(path, output string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absOutput, err := filepath.Abs(output)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absOutput, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Output string
	// All also removes the compiled artifacts and depfiles.
	All bool
}

// Clean removes the build stamps of an output directory and, with All, its artifacts.
func (a *App) Clean(_ context.Context, opts CleanOptions) error {
	if opts.Output == "" {
		return domain.ErrMissingOutput
	}

	a.logger.Info("removing build stamps...")
	if err := a.store.Reset(opts.Output); err != nil {
		return err
	}
	if !opts.All {
		return nil
	}

	entries, err := os.ReadDir(opts.Output)
	if errors.Is(err, iofs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "output", opts.Output)
	}

	var errs error
	removed := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case domain.SPIRVExt, domain.HeaderExt, domain.DepfileExt:
		default:
			continue
		}

		path := filepath.Join(opts.Output, entry.Name())
		if err := os.Remove(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			continue
		}
		removed++
	}

	if err := os.RemoveAll(filepath.Join(opts.Output, domain.StateDirName)); err != nil {
		errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "output", opts.Output))
	}

	a.logger.Info(fmt.Sprintf("removed %d artifact(s) from %s", removed, opts.Output))
	return errs
}

// Embed converts a SPIR-V module into a C header.
func (a *App) Embed(_ context.Context, input, output, name string) error {
	return embed.File(input, output, name)
}

// CompileWGSL compiles a WGSL source to SPIR-V.
func (a *App) CompileWGSL(_ context.Context, input, output string, debug bool) error {
	return wgsl.CompileFile(a.compiler, input, output, debug)
}
