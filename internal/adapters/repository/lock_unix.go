//go:build unix

package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sys/unix"
)

const lockPollInterval = 50 * time.Millisecond

// fileLock is an advisory flock on the repository lock file.
type fileLock struct {
	file *os.File
}

// acquire blocks until the exclusive lock on path is held or ctx is done.
func acquire(ctx context.Context, path string) (*fileLock, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, domain.FilePerm) //nolint:gosec // Path is derived from the repository location
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrRepositoryLockFailed, err.Error()), "path", path)
	}

	ticker := time.NewTicker(lockPollInterval)
	defer ticker.Stop()

	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			return &fileLock{file: f}, nil
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EINTR) {
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(domain.ErrRepositoryLockFailed, err.Error()), "path", path)
		}

		select {
		case <-ctx.Done():
			_ = f.Close()
			return nil, zerr.With(zerr.Wrap(ctx.Err(), domain.ErrRepositoryLockFailed.Error()), "path", path)
		case <-ticker.C:
		}
	}
}

func (l *fileLock) release() error {
	defer l.file.Close() //nolint:errcheck // Closing also drops the lock

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrRepositoryLockFailed, err.Error()), "path", l.file.Name())
	}
	return nil
}
