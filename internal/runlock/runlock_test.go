package runlock_test

import (
	"path/filepath"
	"testing"

	"shelve/internal/faults"
	"shelve/internal/runlock"
)

func TestAcquireReleaseCycle(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dest := t.TempDir()

	release, err := runlock.Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	release()

	release, err = runlock.Acquire(dest)
	if err != nil {
		t.Fatalf("reacquire after release failed: %v", err)
	}
	release()
}

func TestAcquireConflict(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dest := t.TempDir()

	release, err := runlock.Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	defer release()

	if _, err := runlock.Acquire(dest); err == nil {
		t.Fatal("expected second acquire to fail while lock is held")
	} else if !faults.IsLocked(err) {
		t.Fatalf("expected locked fault, got %v", err)
	}
}

func TestAcquireDistinctDestinations(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())

	first, err := runlock.Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("first Acquire returned error: %v", err)
	}
	defer first()

	second, err := runlock.Acquire(t.TempDir())
	if err != nil {
		t.Fatalf("second Acquire returned error: %v", err)
	}
	second()
}

func TestReleaseIdempotent(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	dest := t.TempDir()

	release, err := runlock.Acquire(dest)
	if err != nil {
		t.Fatalf("Acquire returned error: %v", err)
	}
	release()
	release()

	release, err = runlock.Acquire(dest)
	if err != nil {
		t.Fatalf("reacquire after double release failed: %v", err)
	}
	release()
}

func TestPathStableAcrossSpellings(t *testing.T) {
	dir := t.TempDir()
	plain := filepath.Join(dir, "sorted")
	// Assembled by hand so Join does not clean away the dot segment.
	dotted := plain + string(filepath.Separator) + "."

	a, err := runlock.Path(plain)
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	b, err := runlock.Path(dotted)
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical lock paths, got %q and %q", a, b)
	}

	other, err := runlock.Path(filepath.Join(dir, "other"))
	if err != nil {
		t.Fatalf("Path returned error: %v", err)
	}
	if other == a {
		t.Fatal("expected different destinations to map to different locks")
	}
}
