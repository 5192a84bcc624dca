package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
	"go.trai.ch/shaderbuild/internal/core/ports/mocks"
	"go.trai.ch/shaderbuild/internal/engine/scheduler"
	"go.uber.org/mock/gomock"
)

type schedulerTestMocks struct {
	executor *mocks.MockExecutor
	store    *mocks.MockBuildInfoStore
	hasher   *mocks.MockHasher
	reporter *mocks.MockReporter
	tracer   *mocks.MockTracer
	span     *mocks.MockSpan
	logger   *mocks.MockLogger
}

// setupSchedulerTest creates a scheduler and common mocks.
func setupSchedulerTest(t *testing.T) (*scheduler.Scheduler, schedulerTestMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := schedulerTestMocks{
		executor: mocks.NewMockExecutor(ctrl),
		store:    mocks.NewMockBuildInfoStore(ctrl),
		hasher:   mocks.NewMockHasher(ctrl),
		reporter: mocks.NewMockReporter(ctrl),
		tracer:   mocks.NewMockTracer(ctrl),
		span:     mocks.NewMockSpan(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
	}

	// Default optimistic mocks to reduce noise in specific tests.
	m.span.EXPECT().End().AnyTimes()
	m.span.EXPECT().RecordError(gomock.Any()).AnyTimes()
	m.span.EXPECT().SetAttribute(gomock.Any(), gomock.Any()).AnyTimes()
	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ string) (context.Context, ports.Span) {
			return ctx, m.span
		},
	).AnyTimes()
	m.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	m.hasher.EXPECT().HashCommands(gomock.Any()).Return("hash").AnyTimes()
	m.reporter.EXPECT().OnTaskDone(gomock.Any(), gomock.Any()).AnyTimes()

	s := scheduler.NewScheduler(m.executor, m.store, m.hasher, m.reporter, m.tracer, m.logger)
	return s, m
}

func newTasks(names ...string) []*domain.Task {
	tasks := make([]*domain.Task, 0, len(names))
	for _, name := range names {
		tasks = append(tasks, &domain.Task{
			Inputs:   []string{"src/" + name},
			Outputs:  []string{"out/" + name + ".spv", "out/" + name + ".d"},
			Commands: []domain.Command{{Args: []string{"glslang", "-V", "src/" + name}}},
		})
	}
	return tasks
}

// taskMatcher implements gomock.Matcher for domain.Task.
type taskMatcher struct {
	name string
}

func (m taskMatcher) Matches(x any) bool {
	t, ok := x.(*domain.Task)
	if !ok {
		return false
	}
	return t.DisplayName() == m.name
}

func (m taskMatcher) String() string {
	return "task name is " + m.name
}

func matchTask(name string) gomock.Matcher {
	return taskMatcher{name: name}
}

// after returns an executor stub that sleeps for d and then exits with code.
func after(d time.Duration, code int32) func(context.Context, *domain.Task) (domain.Result, error) {
	return func(_ context.Context, _ *domain.Task) (domain.Result, error) {
		time.Sleep(d)
		return domain.Result{ExitCode: code, LastCommand: "glslang"}, nil
	}
}

func TestScheduler_RunsInQueueOrder(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		var order []string
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, task *domain.Task) (domain.Result, error) {
				order = append(order, task.DisplayName())
				return domain.Result{LastCommand: "glslang"}, nil
			},
		).Times(3)
		var stamps []domain.BuildInfo
		m.store.EXPECT().Put("out", gomock.Any()).DoAndReturn(
			func(_ string, info domain.BuildInfo) error {
				stamps = append(stamps, info)
				return nil
			},
		).Times(3)
		start := time.Now()

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.frag", "c.vert"),
			scheduler.Options{Parallelism: 1, Root: "out"})
		require.NoError(t, err)

		assert.Equal(t, []string{"a.comp", "b.frag", "c.vert"}, order)
		assert.Equal(t, []string{"a.comp", "b.frag", "c.vert"}, report.Completed)
		assert.Empty(t, report.Failed)
		assert.Empty(t, report.NotStarted)
		assert.False(t, report.Interrupted)
		assert.True(t, report.OK())

		require.Len(t, stamps, 3)
		assert.Equal(t, "out/a.comp.spv", stamps[0].TaskName)
		assert.Equal(t, "hash", stamps[0].CommandHash)
		assert.True(t, stamps[0].Timestamp.Equal(start))
	})
}

func TestScheduler_EmptyQueue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, _ := setupSchedulerTest(t)

		report, err := s.Run(context.Background(), nil, scheduler.Options{Parallelism: 8, Root: "out"})
		require.NoError(t, err)
		assert.Empty(t, report.Completed)
		assert.True(t, report.OK())
	})
}

func TestScheduler_SequentialFailureStopsQueue(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		m.executor.EXPECT().Execute(gomock.Any(), matchTask("a.comp")).Return(domain.Result{LastCommand: "glslang"}, nil)
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("b.comp")).
			Return(domain.Result{ExitCode: 2, Output: "ERROR: b.comp:3", LastCommand: "glslang"}, nil)
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("c.comp")).Times(0)
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("d.comp")).Times(0)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.comp", "c.comp", "d.comp"),
			scheduler.Options{Parallelism: 1, Root: "out"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrBuildFailed)

		assert.Equal(t, []string{"a.comp"}, report.Completed)
		assert.Equal(t, []domain.Failure{{Task: "b.comp", Command: "glslang", ExitCode: 2}}, report.Failed)
		assert.Equal(t, []string{"c.comp", "d.comp"}, report.NotStarted)
		assert.False(t, report.Interrupted)
	})
}

func TestScheduler_FailureReportsOutput(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		ctrl := gomock.NewController(t)
		executor := mocks.NewMockExecutor(ctrl)
		reporter := mocks.NewMockReporter(ctrl)
		tracer := mocks.NewMockTracer(ctrl)
		span := mocks.NewMockSpan(ctrl)
		logger := mocks.NewMockLogger(ctrl)
		logger.EXPECT().Debug(gomock.Any()).AnyTimes()

		res := domain.Result{ExitCode: -1073741819, LastCommand: "slangc"}
		tracer.EXPECT().Start(gomock.Any(), "a.comp").Return(context.Background(), span)
		span.EXPECT().SetAttribute(ports.SpanKindKey, ports.SpanKindTask)
		span.EXPECT().SetAttribute("exit_code", int32(-1073741819))
		span.EXPECT().End()
		executor.EXPECT().Execute(gomock.Any(), matchTask("a.comp")).Return(res, nil)
		reporter.EXPECT().OnTaskDone("a.comp", res)

		s := scheduler.NewScheduler(executor, mocks.NewMockBuildInfoStore(ctrl), mocks.NewMockHasher(ctrl),
			reporter, tracer, logger)
		report, err := s.Run(context.Background(), newTasks("a.comp"), scheduler.Options{Root: "out"})
		require.ErrorIs(t, err, domain.ErrBuildFailed)
		assert.Equal(t, int32(-1073741819), report.Failed[0].ExitCode)
	})
}

func TestScheduler_ParallelWorkers(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		var active, peak atomic.Int32
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, _ *domain.Task) (domain.Result, error) {
				n := active.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(time.Second)
				active.Add(-1)
				return domain.Result{}, nil
			},
		).Times(5)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(5)

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.comp", "c.comp", "d.comp", "e.comp"),
			scheduler.Options{Parallelism: 2, Root: "out"})
		require.NoError(t, err)

		assert.Equal(t, int32(2), peak.Load())
		assert.Len(t, report.Completed, 5)
		assert.Equal(t, 3*time.Second, report.Duration)
	})
}

func TestScheduler_ParallelFailureLetsRunningTasksFinish(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		m.executor.EXPECT().Execute(gomock.Any(), matchTask("a.comp")).DoAndReturn(after(time.Second, 1))
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("b.comp")).DoAndReturn(after(2*time.Second, 0))
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("c.comp")).Times(0)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.comp", "c.comp"),
			scheduler.Options{Parallelism: 2, Root: "out"})
		require.ErrorIs(t, err, domain.ErrBuildFailed)

		assert.Equal(t, []string{"b.comp"}, report.Completed)
		assert.Equal(t, []domain.Failure{{Task: "a.comp", Command: "glslang", ExitCode: 1}}, report.Failed)
		assert.Equal(t, []string{"c.comp"}, report.NotStarted)
		assert.Equal(t, 2*time.Second, report.Duration)
	})
}

func TestScheduler_Interrupt(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		m.executor.EXPECT().Execute(gomock.Any(), matchTask("a.comp")).DoAndReturn(after(time.Second, 0))
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("b.comp")).Times(0)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil).Times(1)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() {
			time.Sleep(500 * time.Millisecond)
			cancel()
		}()

		report, err := s.Run(ctx, newTasks("a.comp", "b.comp"), scheduler.Options{Parallelism: 1, Root: "out"})
		require.ErrorIs(t, err, domain.ErrInterrupted)

		assert.True(t, report.Interrupted)
		assert.Equal(t, []string{"a.comp"}, report.Completed)
		assert.Equal(t, []string{"b.comp"}, report.NotStarted)
		assert.False(t, report.OK())
	})
}

func TestScheduler_InterruptBeforeStart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)
		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Times(0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		report, err := s.Run(ctx, newTasks("a.comp"), scheduler.Options{Parallelism: 4, Root: "out"})
		require.ErrorIs(t, err, domain.ErrInterrupted)
		assert.Equal(t, []string{"a.comp"}, report.NotStarted)
	})
}

func TestScheduler_StartFailureStopsRun(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		startErr := errors.New("exec: \"glslang\": executable file not found in $PATH")
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("a.comp")).Return(domain.Result{}, startErr)
		m.executor.EXPECT().Execute(gomock.Any(), matchTask("b.comp")).Times(0)

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.comp"),
			scheduler.Options{Parallelism: 1, Root: "out"})
		require.ErrorIs(t, err, startErr)
		assert.NotErrorIs(t, err, domain.ErrBuildFailed)

		assert.Empty(t, report.Completed)
		assert.Empty(t, report.Failed)
		assert.Equal(t, []string{"b.comp"}, report.NotStarted)
	})
}

func TestScheduler_StampFailureIsNotFatal(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(domain.Result{}, nil).Times(2)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(domain.ErrStoreWriteFailed).Times(2)
		m.logger.EXPECT().Warn(gomock.Any()).Times(2)

		report, err := s.Run(context.Background(), newTasks("a.comp", "b.comp"),
			scheduler.Options{Parallelism: 1, Root: "out"})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.comp", "b.comp"}, report.Completed)
	})
}

func TestScheduler_NoStampWithoutOutputs(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		s, m := setupSchedulerTest(t)

		m.executor.EXPECT().Execute(gomock.Any(), gomock.Any()).Return(domain.Result{}, nil)
		m.store.EXPECT().Put(gomock.Any(), gomock.Any()).Times(0)

		task := &domain.Task{Name: "orphan", Commands: []domain.Command{{Args: []string{"true"}}}}
		_, err := s.Run(context.Background(), []*domain.Task{task}, scheduler.Options{Root: "out"})
		require.NoError(t, err)
	})
}
