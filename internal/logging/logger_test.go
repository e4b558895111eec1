package logging_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"shelve/internal/config"
	"shelve/internal/logging"
)

func fileLogger(t *testing.T, format, level string) (*slog.Logger, string) {
	t.Helper()
	logPath := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Format:      format,
		Level:       level,
		OutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, logPath
}

func TestNewFromConfigWritesSharedLog(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = t.TempDir()

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("shared log line")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, "shelve.log"))
	if err != nil {
		t.Fatalf("read shared log: %v", err)
	}
	if !strings.Contains(string(content), "shared log line") {
		t.Fatalf("shared log missing line, got %q", content)
	}
}

func TestConsoleOmitsCallerForInfo(t *testing.T) {
	logger, logPath := fileLogger(t, "console", "info")

	logger.Info("message without caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if strings.Contains(string(content), ".go:") {
		t.Fatalf("expected no caller information in info logs, got %q", content)
	}
}

func TestConsoleIncludesCallerForDebug(t *testing.T) {
	logger, logPath := fileLogger(t, "console", "debug")

	logger.Info("message with caller")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), ".go:") {
		t.Fatalf("expected caller information in debug logs, got %q", content)
	}
}

func TestConsoleHoistsComponentAndFormatsAttrs(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	base, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	logger := logging.NewComponentLogger(base, "organize")
	logger.Info("file placed",
		logging.String(logging.FieldAction, "move"),
		logging.String(logging.FieldDestPath, "/tmp/x dir/a.jpg"),
		logging.Int("count", 3),
	)

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	line := string(content)
	if !strings.Contains(line, " organize: file placed") {
		t.Fatalf("component prefix missing, got %q", line)
	}
	if !strings.Contains(line, "action=move") {
		t.Fatalf("attr missing, got %q", line)
	}
	if !strings.Contains(line, `dest_path="/tmp/x dir/a.jpg"`) {
		t.Fatalf("expected quoted value for spaced path, got %q", line)
	}
	if !strings.Contains(line, "count=3") {
		t.Fatalf("int attr missing, got %q", line)
	}
}

func TestJSONFormat(t *testing.T) {
	logger, logPath := fileLogger(t, "json", "info")

	logger.Info("json message", logging.String("k", "v"))

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(content))), &record); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, content)
	}
	if record["msg"] != "json message" || record["level"] != "info" || record["k"] != "v" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("missing ts key in %v", record)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected an error for an unsupported format")
	}
}

func TestWithContextAddsRunID(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "out.log")
	base, err := logging.New(logging.Options{Format: "console", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := logging.WithRunID(context.Background(), "run-123")
	logging.WithContext(ctx, base).Info("contextual line")

	content, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "run_id=run-123") {
		t.Fatalf("run id missing, got %q", content)
	}
}
