package wgsl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shaderbuild/internal/core/ports"
)

// NodeID is the unique identifier for the WGSL compiler Graft node.
const NodeID graft.ID = "adapter.wgsl_compiler"

func init() {
	graft.Register(graft.Node[ports.WGSLCompiler]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WGSLCompiler, error) {
			return NewCompiler(), nil
		},
	})
}
