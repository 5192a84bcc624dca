// Package scheduler runs shader build tasks on a fixed pool of workers.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Options configures one run.
type Options struct {
	// Parallelism is the number of workers. Values below one mean one.
	Parallelism int
	// Root is the output directory the build stamps belong to.
	Root string
}

// Scheduler drains a queue of tasks with a pool of workers and stops taking
// new tasks after the first failure.
type Scheduler struct {
	executor ports.Executor
	store    ports.BuildInfoStore
	hasher   ports.Hasher
	reporter ports.Reporter
	tracer   ports.Tracer
	logger   ports.Logger
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	executor ports.Executor,
	store ports.BuildInfoStore,
	hasher ports.Hasher,
	reporter ports.Reporter,
	tracer ports.Tracer,
	logger ports.Logger,
) *Scheduler {
	return &Scheduler{
		executor: executor,
		store:    store,
		hasher:   hasher,
		reporter: reporter,
		tracer:   tracer,
		logger:   logger,
	}
}

// runState is the bookkeeping shared by the workers of one run.
type runState struct {
	queue *Queue
	token *Token
	root  string

	mu     sync.Mutex
	report domain.Report
}

func (st *runState) complete(name string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.report.Completed = append(st.report.Completed, name)
}

func (st *runState) fail(f domain.Failure) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.report.Failed = append(st.report.Failed, f)
}

// Run builds tasks in queue order and returns once every worker has exited.
//
// Cancelling ctx sets the stop token: running compilers finish, queued tasks
// are left unstarted. The report is always returned. The error wraps
// domain.ErrBuildFailed when a task failed, domain.ErrInterrupted when ctx was
// cancelled, or the first error of a command that could not be started.
func (s *Scheduler) Run(ctx context.Context, tasks []*domain.Task, opts Options) (*domain.Report, error) {
	start := time.Now()
	st := &runState{
		queue: NewQueue(tasks),
		token: &Token{},
		root:  opts.Root,
	}

	var interrupted atomic.Bool
	onInterrupt := func() {
		interrupted.Store(true)
		st.token.Set()
	}
	if ctx.Err() != nil {
		onInterrupt()
	}
	stop := context.AfterFunc(ctx, onInterrupt)

	g := new(errgroup.Group)
	for range max(opts.Parallelism, 1) {
		g.Go(func() error {
			return s.worker(ctx, st)
		})
	}
	err := g.Wait()
	stop()

	report := &st.report
	report.NotStarted = st.queue.Remaining()
	report.Interrupted = interrupted.Load()
	report.Duration = time.Since(start)

	switch {
	case err != nil:
		return report, err
	case len(report.Failed) > 0:
		return report, zerr.With(zerr.Wrap(domain.ErrBuildFailed, "shader tasks exited with errors"),
			"failed", len(report.Failed))
	case report.Interrupted:
		return report, zerr.With(zerr.Wrap(domain.ErrInterrupted, "build stopped by interrupt"),
			"not_started", len(report.NotStarted))
	}
	return report, nil
}

func (s *Scheduler) worker(ctx context.Context, st *runState) error {
	for !st.token.IsSet() {
		task := st.queue.Pop()
		if task == nil {
			return nil
		}
		if err := s.build(ctx, st, task); err != nil {
			st.token.Set()
			return err
		}
	}
	return nil
}

// build runs one task. Only a command that could not be started is returned
// as an error; a non-zero exit is recorded in the report.
func (s *Scheduler) build(ctx context.Context, st *runState, task *domain.Task) error {
	name := task.DisplayName()
	ctx, span := s.tracer.Start(ctx, name)
	defer span.End()
	span.SetAttribute(ports.SpanKindKey, ports.SpanKindTask)

	s.logger.Debug("building " + name)

	res, err := s.executor.Execute(ctx, task)
	if err != nil {
		span.RecordError(err)
		return err
	}

	s.reporter.OnTaskDone(name, res)

	if res.Failed() {
		span.SetAttribute("exit_code", res.ExitCode)
		st.token.Set()
		st.fail(domain.Failure{Task: name, Command: res.LastCommand, ExitCode: res.ExitCode})
		return nil
	}

	st.complete(name)
	s.writeStamp(st.root, task)
	return nil
}

// writeStamp records the command fingerprint of a successful build. A stamp
// that cannot be written only costs a rebuild next time.
func (s *Scheduler) writeStamp(root string, task *domain.Task) {
	output := task.PrimaryOutput()
	if output == "" {
		return
	}

	info := domain.BuildInfo{
		TaskName:    output,
		CommandHash: s.hasher.HashCommands(task),
		Timestamp:   time.Now(),
	}
	if err := s.store.Put(root, info); err != nil {
		s.logger.Warn("could not record build stamp for " + task.DisplayName() + ": " + err.Error())
	}
}
