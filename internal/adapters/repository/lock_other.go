//go:build !unix

package repository

import "context"

// fileLock is a no-op where flock is unavailable.
type fileLock struct{}

func acquire(ctx context.Context, _ string) (*fileLock, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &fileLock{}, nil
}

func (l *fileLock) release() error {
	return nil
}
