package checksum

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/cargosync/internal/core/ports"
)

// NodeID is the unique identifier for the checksum guard Graft node.
const NodeID graft.ID = "adapter.checksum_guard"

func init() {
	graft.Register(graft.Node[ports.ChecksumGuard]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ChecksumGuard, error) {
			return NewGuard(), nil
		},
	})
}
