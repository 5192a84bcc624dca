package ports

import "go.trai.ch/shaderbuild/internal/core/domain"

// Reporter prints build progress. Every method writes atomically so that
// concurrent workers never interleave their output.
//
//go:generate mockgen -source=reporter.go -destination=mocks/mock_reporter.go -package=mocks
type Reporter interface {
	// OnPlan is called once before the workers start.
	OnPlan(tasks []string, upToDate int)

	// OnTaskDone prints the command timings and the captured output of a finished task.
	OnTaskDone(name string, res domain.Result)

	// OnSummary prints the outcome of the run.
	OnSummary(report *domain.Report)

	// OnTimings prints the slowest tasks of the run.
	OnTimings(timings []domain.TaskTiming)
}
