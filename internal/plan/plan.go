package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MiscSegment names the subfolder for files without an extension.
const MiscSegment = "MISC"

// DefaultMaxAttempts caps collision probing when the caller supplies no
// limit of its own.
const DefaultMaxAttempts = 10000

// RelativeDir builds the destination subdirectory for one file: the
// category, the run date when non-empty, then the uppercased extension
// with its dot stripped (or MISC when there is none).
func RelativeDir(category, date, ext string) string {
	segments := make([]string, 0, 3)
	segments = append(segments, category)
	if date != "" {
		segments = append(segments, date)
	}
	segments = append(segments, extSegment(ext))
	return filepath.Join(segments...)
}

func extSegment(ext string) string {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return MiscSegment
	}
	return strings.ToUpper(trimmed)
}

// Resolver hands out collision-free destination paths for one run. Probing
// consults the live filesystem plus every path reserved earlier in the same
// run, never a cache from a previous file, so two same-named sources landing
// in one folder enumerate " (1)", " (2)", ... without gaps.
type Resolver struct {
	maxAttempts int
	reserved    map[string]struct{}
}

// NewResolver returns a Resolver with an empty reservation set. A
// non-positive maxAttempts selects DefaultMaxAttempts.
func NewResolver(maxAttempts int) *Resolver {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Resolver{
		maxAttempts: maxAttempts,
		reserved:    make(map[string]struct{}),
	}
}

// Resolve returns destRoot/relativeDir/filename when that path is free, or
// the first "name (N).ext" variant that neither exists on disk nor has been
// reserved. It never creates directories; execution owns that.
func (r *Resolver) Resolve(destRoot, relativeDir, filename string) (string, error) {
	dir := filepath.Join(destRoot, relativeDir)

	candidate := filepath.Join(dir, filename)
	free, err := r.free(candidate)
	if err != nil {
		return "", err
	}
	if free {
		return candidate, nil
	}

	stem, ext := splitName(filename)
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, attempt, ext))
		free, err := r.free(candidate)
		if err != nil {
			return "", err
		}
		if free {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no available name for %s under %s after %d attempts", filename, dir, r.maxAttempts)
}

// Reserve marks a resolved path as taken for the remainder of the run.
// Callers reserve only when they commit a placement; skipped duplicates
// leave their candidate free for later files.
func (r *Resolver) Reserve(path string) {
	r.reserved[path] = struct{}{}
}

func (r *Resolver) free(path string) (bool, error) {
	if _, ok := r.reserved[path]; ok {
		return false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return true, nil
		}
		return false, fmt.Errorf("probe candidate path: %w", err)
	}
	return false, nil
}

// splitName separates a file name from its final suffix, keeping the
// original case. Names whose only dot leads them and names with a trailing
// dot have no suffix to carry across the disambiguator.
func splitName(filename string) (string, string) {
	i := strings.LastIndexByte(filename, '.')
	if i <= 0 || i == len(filename)-1 {
		return filename, ""
	}
	return filename[:i], filename[i:]
}
