package cargo

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargosync/internal/adapters/logger"
	"go.trai.ch/cargosync/internal/core/ports"
)

// NodeID is the unique identifier for the cargo toolchain Graft node.
const NodeID graft.ID = "adapter.toolchain"

func init() {
	graft.Register(graft.Node[ports.Toolchain]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Toolchain, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(log), nil
		},
	})
}
