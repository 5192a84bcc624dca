package domain

import "time"

// Failure describes a task whose command exited non-zero.
type Failure struct {
	Task     string
	Command  string
	ExitCode int32
}

// Report summarizes one scheduler run.
type Report struct {
	Completed  []string
	Failed     []Failure
	NotStarted []string
	// Interrupted is set when a signal stopped the run before the queue was drained.
	Interrupted bool
	Duration    time.Duration
}

// OK reports whether every queued task ran and succeeded.
func (r *Report) OK() bool {
	return len(r.Failed) == 0 && !r.Interrupted && len(r.NotStarted) == 0
}

// TaskTiming is the wall time a task spent building.
type TaskTiming struct {
	Name     string
	Duration time.Duration
}
