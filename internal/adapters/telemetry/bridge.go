package telemetry

import (
	"cmp"
	"context"
	"slices"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/shaderbuild/internal/core/domain"
	"go.trai.ch/shaderbuild/internal/core/ports"
)

const (
	// KindKey is the span attribute distinguishing task spans from command spans.
	KindKey = ports.SpanKindKey
	// KindTask marks the span covering a whole task.
	KindTask = ports.SpanKindTask
	// KindCommand marks the span covering one external command.
	KindCommand = ports.SpanKindCommand
)

// Bridge implements sdktrace.SpanProcessor and collects the wall time of every
// finished task span.
type Bridge struct {
	mu      sync.Mutex
	timings []domain.TaskTiming
}

// NewBridge returns a new Bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// OnStart is called when a span starts.
func (b *Bridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd records task spans.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if !s.SpanContext().IsValid() || !isTask(s) {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.timings = append(b.timings, domain.TaskTiming{
		Name:     s.Name(),
		Duration: s.EndTime().Sub(s.StartTime()),
	})
}

func isTask(s sdktrace.ReadOnlySpan) bool {
	for _, attr := range s.Attributes() {
		if string(attr.Key) == KindKey {
			return attr.Value.AsString() == KindTask
		}
	}
	return false
}

// Slowest returns up to limit task timings, slowest first. A limit of zero or
// less returns all of them.
func (b *Bridge) Slowest(limit int) []domain.TaskTiming {
	b.mu.Lock()
	timings := slices.Clone(b.timings)
	b.mu.Unlock()

	slices.SortStableFunc(timings, func(a, b domain.TaskTiming) int {
		if c := cmp.Compare(b.Duration, a.Duration); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	if limit > 0 && len(timings) > limit {
		timings = timings[:limit]
	}
	return timings
}

// Reset forgets the collected timings.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.timings = nil
}

// ForceFlush does nothing.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
