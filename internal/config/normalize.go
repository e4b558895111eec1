package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeOrganize()
	c.normalizeLogging()
	c.normalizeCategories()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	c.Paths.Source = strings.TrimSpace(c.Paths.Source)
	if c.Paths.Source == "" {
		if value, ok := os.LookupEnv("SHELVE_SOURCE"); ok {
			c.Paths.Source = strings.TrimSpace(value)
		}
	}
	if c.Paths.Source != "" {
		if c.Paths.Source, err = expandPath(c.Paths.Source); err != nil {
			return fmt.Errorf("paths.source: %w", err)
		}
	}
	c.Paths.Dest = strings.TrimSpace(c.Paths.Dest)
	if c.Paths.Dest == "" {
		if value, ok := os.LookupEnv("SHELVE_DEST"); ok {
			c.Paths.Dest = strings.TrimSpace(value)
		}
	}
	if c.Paths.Dest != "" {
		if c.Paths.Dest, err = expandPath(c.Paths.Dest); err != nil {
			return fmt.Errorf("paths.dest: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeOrganize() {
	c.Organize.Digest = strings.ToLower(strings.TrimSpace(c.Organize.Digest))
	if c.Organize.Digest == "" {
		c.Organize.Digest = defaultDigest
	}
	c.Organize.FallbackCategory = strings.TrimSpace(c.Organize.FallbackCategory)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}

// normalizeCategories trims whitespace only. Keys keep their configured
// spelling so Validate can point at the exact entry; Merge canonicalizes
// when the table is built.
func (c *Config) normalizeCategories() {
	if len(c.Categories) == 0 {
		return
	}
	cleaned := make(map[string]string, len(c.Categories))
	for key, label := range c.Categories {
		cleaned[strings.TrimSpace(key)] = strings.TrimSpace(label)
	}
	c.Categories = cleaned
}
