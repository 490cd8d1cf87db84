package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/logger"     //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/registry"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/repository" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/core/ports"
)

// NodeID is the unique identifier for the version resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[ports.VersionResolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{registry.NodeID, repository.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.VersionResolver, error) {
			remote, err := graft.Dep[*registry.Client](ctx)
			if err != nil {
				return nil, err
			}
			repo, err := graft.Dep[ports.ArtifactRepository](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(remote, repo, log), nil
		},
	})
}
