// Package filelock serializes flame processes that share one terminal and
// writes files atomically.
//
// Two processes drawing jobs panels into the same terminal corrupt each
// other's cursor bookkeeping, so the CLI can hold a TerminalLock for the
// lifetime of a run.
package filelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when the lock could not be taken before the
// context ended
var ErrLockTimeout = errors.New("terminal lock not acquired")

// pollInterval is how often a waiting Acquire retries the lock
const pollInterval = 100 * time.Millisecond

// TerminalLock is an exclusive advisory lock on a lock file
type TerminalLock struct {
	flock *flock.Flock
	path  string
}

// NewTerminalLock creates a lock backed by the file at path.
// The file is created on first acquisition.
func NewTerminalLock(path string) *TerminalLock {
	return &TerminalLock{
		flock: flock.New(path),
		path:  path,
	}
}

// Path returns the lock file path
func (tl *TerminalLock) Path() string {
	return tl.path
}

// Acquire blocks until the lock is held or ctx is done
func (tl *TerminalLock) Acquire(ctx context.Context) error {
	if err := tl.ensureDir(); err != nil {
		return err
	}
	locked, err := tl.flock.TryLockContext(ctx, pollInterval)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %w", ErrLockTimeout, tl.path, ctx.Err())
		}
		return fmt.Errorf("lock %s: %w", tl.path, err)
	}
	if !locked {
		return fmt.Errorf("%w: %s", ErrLockTimeout, tl.path)
	}
	return nil
}

// TryAcquire takes the lock without waiting. It returns false if another
// holder has it.
func (tl *TerminalLock) TryAcquire() (bool, error) {
	if err := tl.ensureDir(); err != nil {
		return false, err
	}
	acquired, err := tl.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("try lock %s: %w", tl.path, err)
	}
	return acquired, nil
}

// Release unlocks the file. Releasing an unheld lock is a no-op.
func (tl *TerminalLock) Release() error {
	if !tl.Held() {
		return nil
	}
	if err := tl.flock.Unlock(); err != nil {
		return fmt.Errorf("unlock %s: %w", tl.path, err)
	}
	return nil
}

// Held returns true if this process holds the lock
func (tl *TerminalLock) Held() bool {
	return tl.flock.Locked()
}

func (tl *TerminalLock) ensureDir() error {
	if err := os.MkdirAll(filepath.Dir(tl.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}
	return nil
}

// AtomicWrite writes data to path through a temp file in the same directory
// and a rename, so readers never observe a partial file.
func AtomicWrite(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".flame-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file to %s: %w", path, err)
	}
	return nil
}
