package logging

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// runLogPattern matches the per-run JSON log files CleanupRunLogs may prune.
const runLogPattern = "organize-*.log"

// RunLogName returns the file name of the JSON log for one organize run.
func RunLogName(runID string) string {
	return "organize-" + runID + ".log"
}

// OpenRunLog creates the per-run JSON log under logDir and returns a debug
// level handler writing to it, together with the closer for the underlying
// file. Callers tee the handler into their console logger.
func OpenRunLog(logDir, runID string) (slog.Handler, io.Closer, error) {
	logDir = strings.TrimSpace(logDir)
	if logDir == "" {
		return nil, nil, errors.New("log directory not configured")
	}
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, nil, err
	}

	path := filepath.Join(logDir, RunLogName(runID))
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, nil, err
	}

	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelDebug)
	return newJSONHandler(file, levelVar, false), file, nil
}

// CleanupRunLogs removes per-run logs older than retentionDays. A value of
// 0 disables pruning. Removal failures are logged and skipped.
func CleanupRunLogs(logger *slog.Logger, logDir string, retentionDays int) {
	if retentionDays <= 0 || strings.TrimSpace(logDir) == "" {
		return
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(logDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		matched, err := filepath.Match(runLogPattern, entry.Name())
		if err != nil || !matched {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		path := filepath.Join(logDir, entry.Name())
		if err := os.Remove(path); err != nil {
			if logger != nil {
				logger.Warn("run log prune failed", Args(String("path", path), Error(err))...)
			}
			continue
		}
		if logger != nil {
			logger.Debug("run log pruned", Args(String("path", path))...)
		}
	}
}
