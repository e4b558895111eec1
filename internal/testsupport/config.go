package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"shelve/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// The source directory exists afterwards; the destination is left for the
// organizer to create.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Source = filepath.Join(base, "inbox")
	cfgVal.Paths.Dest = filepath.Join(base, "sorted")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := os.MkdirAll(builder.cfg.Paths.Source, 0o755); err != nil {
		t.Fatalf("mkdir source dir: %v", err)
	}

	return builder.cfg
}

// WithCopyMode switches the generated config to copy instead of move.
func WithCopyMode() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Copy = true
	}
}

// WithByDate enables the dated layer in destination paths.
func WithByDate() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.ByDate = true
	}
}

// WithSkipDuplicates enables content-hash duplicate skipping.
func WithSkipDuplicates() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.SkipDuplicates = true
	}
}

// WithSniffing enables content sniffing for unknown extensions.
func WithSniffing() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.SniffContent = true
	}
}

// WithCategories replaces the category overrides on the test config.
func WithCategories(overrides map[string]string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Categories = overrides
	}
}

// WithDigest selects the duplicate-detection hash.
func WithDigest(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Organize.Digest = name
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.Source)
}
