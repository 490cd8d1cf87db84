package collector

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/depot/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/depot/internal/core/ports"
	"go.trai.ch/depot/internal/engine/resolver"
)

// NodeID is the unique identifier for the dependency collector Graft node.
const NodeID graft.ID = "engine.collector"

func init() {
	graft.Register(graft.Node[*Collector]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{resolver.NodeID, logger.NodeID, telemetry.NodeID},
		Run: func(ctx context.Context) (*Collector, error) {
			res, err := graft.Dep[ports.VersionResolver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			return New(res, log, tracer), nil
		},
	})
}
