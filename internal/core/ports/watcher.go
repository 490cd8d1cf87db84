package ports

import (
	"context"
	"iter"
)

// Watcher reports file system changes below a set of directory trees.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Start begins watching the given roots recursively.
	Start(ctx context.Context, roots ...string) error
	// Stop stops the watcher and releases all resources. Changes ends afterwards.
	Stop() error
	// Changes yields batches of changed paths. Events arriving in quick
	// succession are coalesced into one batch.
	Changes() iter.Seq[[]string]
}
