package manifest

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargosync/internal/core/ports"
)

const (
	// LoaderNodeID is the unique identifier for the manifest loader Graft node.
	LoaderNodeID graft.ID = "adapter.manifest_loader"
	// EmitterNodeID is the unique identifier for the workspace emitter Graft node.
	EmitterNodeID graft.ID = "adapter.workspace_emitter"
)

func init() {
	graft.Register(graft.Node[ports.ManifestLoader]{
		ID:        LoaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ManifestLoader, error) {
			return NewLoader(), nil
		},
	})

	graft.Register(graft.Node[ports.WorkspaceEmitter]{
		ID:        EmitterNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.WorkspaceEmitter, error) {
			return NewEmitter(), nil
		},
	})
}
