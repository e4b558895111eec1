package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"shelve/internal/classify"
	"shelve/internal/digest"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	Source string `toml:"source"`
	Dest   string `toml:"dest"`
	LogDir string `toml:"log_dir"`
}

// Organize contains behaviour settings for organize runs.
type Organize struct {
	Copy              bool   `toml:"copy"`
	ByDate            bool   `toml:"by_date"`
	SkipDuplicates    bool   `toml:"skip_duplicates"`
	SniffContent      bool   `toml:"sniff_content"`
	Digest            string `toml:"digest"`
	FallbackCategory  string `toml:"fallback_category"`
	MaxRenameAttempts int    `toml:"max_rename_attempts"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for shelve.
//
// Configuration sections by concern:
//   - Paths: source, destination, and log directories
//   - Organize: transfer mode, date folders, duplicate handling, naming
//   - Logging: log format, level, and retention
//   - Categories: extension table overrides merged over the built-ins
type Config struct {
	Paths      Paths             `toml:"paths"`
	Organize   Organize          `toml:"organize"`
	Logging    Logging           `toml:"logging"`
	Categories map[string]string `toml:"categories"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/shelve/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/shelve/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("shelve.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories shelve writes to on its own
// behalf. Source and destination stay untouched until an organize run
// needs them.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// CategoryTable returns the built-in extension table with [categories]
// overrides merged in. Override keys may omit the leading dot.
func (c *Config) CategoryTable() classify.Table {
	return classify.Merge(classify.DefaultTable(), c.Categories)
}

// FallbackLabel returns the destination folder name used for extensions
// missing from the category table.
func (c *Config) FallbackLabel() string {
	return classify.CanonicalLabel(c.Organize.FallbackCategory)
}

// DigestAlgorithm returns the content hash used for duplicate detection.
// Validate guarantees the configured value parses.
func (c *Config) DigestAlgorithm() digest.Algorithm {
	algorithm, err := digest.Parse(c.Organize.Digest)
	if err != nil {
		return digest.SHA256
	}
	return algorithm
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
