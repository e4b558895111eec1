package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"golang.org/x/sys/unix"

	"shelve/internal/fileutil"
)

// lowSpaceBytes is the advisory threshold for the destination filesystem.
const lowSpaceBytes = 1 << 30

// CheckSource verifies the source directory exists and can be scanned.
// Move runs also need write access so relocated files can be unlinked.
func CheckSource(path string, needWrite bool) Result {
	const name = "Source directory"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured (set paths.source or pass --source)"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	if needWrite {
		mode |= unix.W_OK
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	detail := "read ok"
	if needWrite {
		detail = "read/write ok"
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, detail)}
}

// CheckDestination verifies the destination root either exists as a
// writable directory or can be created under its nearest existing
// ancestor.
func CheckDestination(path string) Result {
	const name = "Destination directory"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured (set paths.dest or pass --dest)"}
	}
	probe, existed := nearestExisting(path)
	info, err := os.Stat(probe)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat %s: %v)", path, probe, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %s is not a directory)", path, probe)}
	}
	if err := unix.Access(probe, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions on %s: %v)", path, probe, err)}
	}
	if existed {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created under %s)", path, probe)}
}

// CheckOverlap rejects layouts the organizer cannot run against: the
// source and destination being the same directory, or the source sitting
// inside the destination. A destination inside the source is permitted;
// the scan recognizes already shelved files and skips them.
func CheckOverlap(source, dest string) Result {
	const name = "Directory layout"
	if strings.TrimSpace(source) == "" || strings.TrimSpace(dest) == "" {
		return Result{Name: name, Detail: "source and destination must both be configured"}
	}
	if filepath.Clean(source) == filepath.Clean(dest) {
		return Result{Name: name, Detail: "source and destination are the same directory"}
	}
	if fileutil.Within(dest, source) {
		return Result{Name: name, Detail: fmt.Sprintf("source %s sits inside destination %s", source, dest)}
	}
	if fileutil.Within(source, dest) {
		return Result{Name: name, Passed: true, Detail: "destination inside source; shelved files are skipped on rescan"}
	}
	return Result{Name: name, Passed: true, Detail: "no overlap"}
}

// CheckLogDir verifies the log directory exists or can be created.
func CheckLogDir(path string) Result {
	const name = "Log directory"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "not configured"}
	}
	probe, existed := nearestExisting(path)
	if err := unix.Access(probe, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions on %s: %v)", path, probe, err)}
	}
	if existed {
		return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (write ok)", path)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFreeSpace reports available space on the destination filesystem.
// The check is advisory; a full disk still surfaces as transfer failures.
func CheckFreeSpace(path string) Result {
	const name = "Destination free space"
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Optional: true, Detail: "not configured"}
	}
	probe, _ := nearestExisting(path)
	var stat unix.Statfs_t
	if err := unix.Statfs(probe, &stat); err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("statfs %s: %v", probe, err)}
	}
	free := stat.Bavail * uint64(stat.Bsize)
	if free < lowSpaceBytes {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("only %s available on %s", humanize.IBytes(free), probe)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s available", humanize.IBytes(free))}
}

// nearestExisting walks up from path to the first component that exists.
// The boolean reports whether path itself exists.
func nearestExisting(path string) (string, bool) {
	current := filepath.Clean(path)
	if _, err := os.Stat(current); err == nil {
		return current, true
	}
	for {
		parent := filepath.Dir(current)
		if parent == current {
			return current, false
		}
		if _, err := os.Stat(parent); err == nil {
			return parent, false
		}
		current = parent
	}
}
