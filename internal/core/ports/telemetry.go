package ports

import "context"

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

const (
	// SpanKindKey is the span attribute distinguishing task spans from command spans.
	SpanKindKey = "shaderbuild.kind"
	// SpanKindTask marks the span covering a whole task.
	SpanKindTask = "task"
	// SpanKindCommand marks the span covering one external command.
	SpanKindCommand = "command"
)

// Tracer is the entry point for creating spans.
type Tracer interface {
	// Start creates a new span.
	Start(ctx context.Context, name string) (context.Context, Span)
}

// Span represents a unit of work.
type Span interface {
	// End completes the span.
	End()
	// RecordError records an error for the span.
	RecordError(err error)
	// SetAttribute adds a key-value pair to the span.
	SetAttribute(key string, value any)
}
