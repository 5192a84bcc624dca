package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shaderbuild/internal/core/ports"
)

const (
	// BridgeNodeID is the unique identifier for the span bridge Graft node.
	BridgeNodeID graft.ID = "adapter.telemetry.bridge"
	// NodeID is the unique identifier for the tracer Graft node.
	NodeID graft.ID = "adapter.telemetry.tracer"
)

// TracerName is the instrumentation scope of every span shaderbuild creates.
const TracerName = "shaderbuild"

func init() {
	// The bridge owns the global tracer provider, so it is installed exactly
	// once per process and reset between builds.
	graft.Register(graft.Node[*Bridge]{
		ID:        BridgeNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Bridge, error) {
			bridge := NewBridge()
			Setup(bridge)
			return bridge, nil
		},
	})

	graft.Register(graft.Node[ports.Tracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{BridgeNodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			if _, err := graft.Dep[*Bridge](ctx); err != nil {
				return nil, err
			}
			return NewOTelTracer(TracerName), nil
		},
	})
}
