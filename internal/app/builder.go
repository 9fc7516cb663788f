package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargosync/internal/adapters/cargo"
	"go.trai.ch/cargosync/internal/adapters/checksum"
	"go.trai.ch/cargosync/internal/adapters/config"
	"go.trai.ch/cargosync/internal/adapters/logger"
	"go.trai.ch/cargosync/internal/adapters/manifest"
	"go.trai.ch/cargosync/internal/core/ports"
)

// NodeID is the unique identifier for the application components Graft node.
const NodeID graft.ID = "app.components"

// Components bundles the fully wired application with the pieces the CLI
// layer needs direct access to.
type Components struct {
	App    *App
	Logger ports.Logger
}

func init() {
	graft.Register(graft.Node[*Components]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			manifest.LoaderNodeID,
			manifest.EmitterNodeID,
			cargo.NodeID,
			checksum.NodeID,
			config.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			loader, err := graft.Dep[ports.ManifestLoader](ctx)
			if err != nil {
				return nil, err
			}
			emitter, err := graft.Dep[ports.WorkspaceEmitter](ctx)
			if err != nil {
				return nil, err
			}
			toolchain, err := graft.Dep[ports.Toolchain](ctx)
			if err != nil {
				return nil, err
			}
			guard, err := graft.Dep[ports.ChecksumGuard](ctx)
			if err != nil {
				return nil, err
			}
			policies, err := graft.Dep[ports.PolicyLoader](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{
				App:    New(loader, emitter, toolchain, guard, policies, log),
				Logger: log,
			}, nil
		},
	})
}
