// Package lock provides an advisory, process-wide exclusive lock on a file.
package lock

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileLock is an exclusive lock held on a lock file.
type FileLock struct {
	file     *os.File
	released bool
}

// Acquire blocks until an exclusive lock on path is held, creating the lock
// file and its directory when needed.
func Acquire(path string) (*FileLock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("lock: mkdir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("lock: open %s: %w", path, err)
	}
	if err := lockFile(file); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("lock: %s: %w", path, err)
	}
	return &FileLock{file: file}, nil
}

// Release unlocks and closes the lock file. Calling it twice is a no-op.
func (l *FileLock) Release() error {
	if l.released {
		return nil
	}
	l.released = true

	if err := unlockFile(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	return l.file.Close()
}
