//go:build unix

package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.trai.ch/depot/internal/adapters/repository"
	"go.trai.ch/depot/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestRepository_LockExcludesOtherHolders(t *testing.T) {
	ctrl := gomock.NewController(t)
	cache := mocks.NewMockArtifactCache(ctrl)
	path := repoPath(t)

	holder, err := repository.Read(path, cache)
	require.NoError(t, err)
	waiter, err := repository.Read(path, cache)
	require.NoError(t, err)

	require.NoError(t, holder.Lock(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, waiter.Lock(ctx), context.DeadlineExceeded)

	require.NoError(t, holder.Unlock())

	ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, waiter.Lock(ctx))
	require.NoError(t, waiter.Unlock())
}
