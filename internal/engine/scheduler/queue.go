package scheduler

import (
	"slices"
	"sync"
	"sync/atomic"

	"go.trai.ch/shaderbuild/internal/core/domain"
)

// Queue is a FIFO of tasks shared by all workers of a run.
// It is filled once and only ever drained.
type Queue struct {
	mu    sync.Mutex
	tasks []*domain.Task
}

// NewQueue returns a queue holding tasks in order.
func NewQueue(tasks []*domain.Task) *Queue {
	return &Queue{tasks: slices.Clone(tasks)}
}

// Pop removes and returns the next task, or nil when the queue is empty.
func (q *Queue) Pop() *domain.Task {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return nil
	}
	t := q.tasks[0]
	q.tasks[0] = nil
	q.tasks = q.tasks[1:]
	return t
}

// Remaining returns the display names of the tasks not yet handed out.
func (q *Queue) Remaining() []string {
	q.mu.Lock()
	defer q.mu.Unlock()

	names := make([]string, 0, len(q.tasks))
	for _, t := range q.tasks {
		names = append(names, t.DisplayName())
	}
	return names
}

// Token is a cooperative stop signal. Once set it stays set.
type Token struct {
	flag atomic.Bool
}

// Set asks every worker to stop before taking its next task.
func (t *Token) Set() {
	t.flag.Store(true)
}

// IsSet reports whether Set has been called.
func (t *Token) IsSet() bool {
	return t.flag.Load()
}
