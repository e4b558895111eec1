// Package runlock enforces one organize run per destination directory.
//
// Concurrent runs into the same destination would race on collision
// probing and duplicate detection, so each run takes an exclusive flock
// keyed by the destination path. Distinct destinations organize in
// parallel. Lock files live under the system temp directory and vanish
// on reboot along with any staleness.
package runlock

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/gofrs/flock"

	"shelve/internal/faults"
)

// Path returns the lock file guarding the given destination. The path is
// canonicalized first so the same destination, spelled any way, maps
// onto one lock.
func Path(dest string) (string, error) {
	absolute, err := filepath.Abs(filepath.Clean(dest))
	if err != nil {
		return "", fmt.Errorf("resolve destination for lock: %w", err)
	}
	name := fmt.Sprintf("%016x.lock", xxhash.Sum64String(absolute))
	return filepath.Join(os.TempDir(), "shelve", name), nil
}

// Acquire takes the destination lock and returns a release function that
// is safe to call more than once. A destination already being organized
// by another process yields a locked fault.
func Acquire(dest string) (func(), error) {
	path, err := Path(dest)
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "runlock", "resolve", "determine lock path", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, faults.Wrap(faults.ErrIO, "runlock", "prepare", "create lock directory", err)
	}

	lock := flock.New(path)
	ok, err := lock.TryLock()
	if err != nil {
		return nil, faults.Wrap(faults.ErrIO, "runlock", "acquire", "take destination lock", err)
	}
	if !ok {
		detail := fmt.Sprintf("another shelve run is organizing into this destination (lock %s)", path)
		return nil, faults.Wrap(faults.ErrLocked, "runlock", "acquire", detail, nil)
	}

	var once sync.Once
	release := func() {
		once.Do(func() {
			_ = lock.Unlock()
		})
	}
	return release, nil
}
