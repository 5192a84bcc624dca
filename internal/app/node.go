package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/shaderbuild/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/linear"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/adapters/wgsl"      //nolint:depguard // Wired in app layer
	"go.trai.ch/shaderbuild/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

// Components holds what the command line needs from the dependency graph.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			shell.NodeID,
			logger.NodeID,
			cas.NodeID,
			fs.HasherNodeID,
			fs.WalkerNodeID,
			linear.NodeID,
			telemetry.NodeID,
			telemetry.BridgeNodeID,
			wgsl.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Logger: log}, nil
		},
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}
	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.BuildInfoStore](ctx)
	if err != nil {
		return nil, err
	}
	hasher, err := graft.Dep[ports.Hasher](ctx)
	if err != nil {
		return nil, err
	}
	walker, err := graft.Dep[ports.SourceWalker](ctx)
	if err != nil {
		return nil, err
	}
	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	bridge, err := graft.Dep[*telemetry.Bridge](ctx)
	if err != nil {
		return nil, err
	}
	compiler, err := graft.Dep[ports.WGSLCompiler](ctx)
	if err != nil {
		return nil, err
	}
	newWatcher, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, executor, log, store, hasher, walker, reporter, tracer, bridge, compiler, newWatcher), nil
}
