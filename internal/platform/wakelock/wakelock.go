// Package wakelock keeps the daemon awake while alarms ring and sleep timers
// run. The lock is a marker file that exists while at least one holder is
// active; power tooling on the host checks for it before suspending.
package wakelock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/oshokin/alarm-clock/internal/logger"
)

// markerPermissions is the permission of the marker file.
const markerPermissions = 0o600

// Lock is acquired by components that must not be interrupted by host sleep.
type Lock interface {
	// Acquire takes a hold tagged with tag. The returned release function is
	// safe to call more than once.
	Acquire(ctx context.Context, tag string) (release func(), err error)
}

// File is a reference-counted marker-file Lock.
type File struct {
	path string

	mu      sync.Mutex
	holders map[string]int
}

// NewFile returns a lock backed by the marker at path.
func NewFile(path string) *File {
	return &File{
		path:    filepath.Clean(path),
		holders: make(map[string]int),
	}
}

// Acquire creates the marker for the first holder and counts later ones.
func (f *File) Acquire(ctx context.Context, tag string) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.count() == 0 {
		contents := strconv.Itoa(os.Getpid()) + " " + time.Now().UTC().Format(time.RFC3339) + "\n"
		if err := os.WriteFile(f.path, []byte(contents), markerPermissions); err != nil {
			return func() {}, fmt.Errorf("create wake lock marker: %w", err)
		}
	}

	f.holders[tag]++

	logger.DebugKV(ctx, "Wake lock acquired", "tag", tag, "holders", f.count())

	var once sync.Once

	return func() {
		once.Do(func() { f.release(ctx, tag) })
	}, nil
}

// Held reports whether any holder is active.
func (f *File) Held() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.count() > 0
}

// Recover removes a marker left behind by a crashed daemon.
// It must run before the first Acquire.
func (f *File) Recover(ctx context.Context) error {
	info, err := os.Stat(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("stat wake lock marker: %w", err)
	}

	logger.InfoKV(ctx, "Removing stale wake lock marker", "path", f.path, "modified", info.ModTime())

	if err := os.Remove(f.path); err != nil {
		return fmt.Errorf("remove stale wake lock marker: %w", err)
	}

	return nil
}

func (f *File) release(ctx context.Context, tag string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.holders[tag]--
	if f.holders[tag] <= 0 {
		delete(f.holders, tag)
	}

	logger.DebugKV(ctx, "Wake lock released", "tag", tag, "holders", f.count())

	if f.count() > 0 {
		return
	}

	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.WarnKV(ctx, "Failed to remove wake lock marker", "path", f.path, "error", err)
	}
}

func (f *File) count() int {
	total := 0
	for _, n := range f.holders {
		total += n
	}

	return total
}
