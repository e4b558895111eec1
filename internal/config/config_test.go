package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"shelve/internal/config"
	"shelve/internal/digest"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SHELVE_SOURCE", "")
	t.Setenv("SHELVE_DEST", "")

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "shelve", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	if cfg.Paths.Source != "" {
		t.Fatalf("expected empty source by default, got %q", cfg.Paths.Source)
	}
	if cfg.Organize.Copy {
		t.Fatal("expected move mode by default")
	}
	if cfg.Organize.Digest != "sha256" {
		t.Fatalf("unexpected digest default: %q", cfg.Organize.Digest)
	}
	if cfg.Organize.FallbackCategory != "Other" {
		t.Fatalf("unexpected fallback category: %q", cfg.Organize.FallbackCategory)
	}
	if cfg.Organize.MaxRenameAttempts != 10000 {
		t.Fatalf("unexpected rename attempt cap: %d", cfg.Organize.MaxRenameAttempts)
	}
	if cfg.Logging.Format != "console" {
		t.Fatalf("unexpected log format: %q", cfg.Logging.Format)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	info, err := os.Stat(cfg.Paths.LogDir)
	if err != nil {
		t.Fatalf("expected log dir %q to exist: %v", cfg.Paths.LogDir, err)
	}
	if !info.IsDir() {
		t.Fatalf("expected %q to be directory", cfg.Paths.LogDir)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "shelve.toml")

	type payload struct {
		Paths struct {
			Source string `toml:"source"`
			Dest   string `toml:"dest"`
			LogDir string `toml:"log_dir"`
		} `toml:"paths"`
		Organize struct {
			Copy   bool   `toml:"copy"`
			Digest string `toml:"digest"`
		} `toml:"organize"`
		Logging struct {
			Format string `toml:"format"`
		} `toml:"logging"`
		Categories map[string]string `toml:"categories"`
	}
	custom := payload{}
	custom.Paths.Source = "~/inbox"
	custom.Paths.Dest = filepath.Join(tempDir, "sorted")
	custom.Paths.LogDir = filepath.Join(tempDir, "logs")
	custom.Organize.Copy = true
	custom.Organize.Digest = "XXH64"
	custom.Logging.Format = "JSON"
	custom.Categories = map[string]string{"HEIC": "images"}
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.Source != filepath.Join(tempHome, "inbox") {
		t.Fatalf("expected tilde expansion, got %q", cfg.Paths.Source)
	}
	if !cfg.Organize.Copy {
		t.Fatal("expected copy mode from file")
	}
	if cfg.Organize.Digest != "xxh64" {
		t.Fatalf("expected lowercased digest, got %q", cfg.Organize.Digest)
	}
	if cfg.DigestAlgorithm() != digest.XXH64 {
		t.Fatalf("unexpected digest algorithm: %q", cfg.DigestAlgorithm())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected lowercased log format, got %q", cfg.Logging.Format)
	}
	table := cfg.CategoryTable()
	if table[".heic"] != "Images" {
		t.Fatalf("expected canonicalized override, got %q", table[".heic"])
	}
	if table[".pdf"] != "Documents" {
		t.Fatalf("expected built-in entry to survive merge, got %q", table[".pdf"])
	}
}

func TestEnvFallbacksFillSourceAndDest(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("SHELVE_SOURCE", filepath.Join(tempDir, "inbox"))
	t.Setenv("SHELVE_DEST", filepath.Join(tempDir, "sorted"))

	cfg, _, exists, err := config.Load(filepath.Join(tempDir, "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Paths.Source != filepath.Join(tempDir, "inbox") {
		t.Fatalf("expected source from env, got %q", cfg.Paths.Source)
	}
	if cfg.Paths.Dest != filepath.Join(tempDir, "sorted") {
		t.Fatalf("expected dest from env, got %q", cfg.Paths.Dest)
	}
}

func TestConfigFileWinsOverEnvPaths(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "shelve.toml")

	type payload struct {
		Paths struct {
			Source string `toml:"source"`
		} `toml:"paths"`
	}
	custom := payload{}
	custom.Paths.Source = filepath.Join(tempDir, "from-file")
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	t.Setenv("SHELVE_SOURCE", filepath.Join(tempDir, "from-env"))

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Source != filepath.Join(tempDir, "from-file") {
		t.Fatalf("expected configured source to win, got %q", cfg.Paths.Source)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[organize]") {
		t.Fatalf("sample config missing organize section: %s", contents)
	}

	// Validate it decodes
	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Organize.Digest != "sha256" {
		t.Fatalf("unexpected sample digest: %q", cfg.Organize.Digest)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected sample log level: %q", cfg.Logging.Level)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate, got %v", err)
	}

	cfg = config.Default()
	cfg.Organize.Digest = "md5"
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "organize.digest") {
		t.Fatalf("expected digest error, got %v", err)
	}

	cfg = config.Default()
	cfg.Organize.MaxRenameAttempts = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for non-positive rename attempts")
	}

	cfg = config.Default()
	cfg.Organize.FallbackCategory = "   "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank fallback category")
	}

	cfg = config.Default()
	cfg.Categories = map[string]string{".tar.gz": "Archives"}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "single suffix") {
		t.Fatalf("expected multi-suffix error, got %v", err)
	}

	cfg = config.Default()
	cfg.Categories = map[string]string{"heic": "  "}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for blank category name")
	}

	cfg = config.Default()
	cfg.Categories = map[string]string{".": "Images"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for bare dot extension")
	}
}
