package config

import (
	"errors"
	"fmt"
	"strings"

	"shelve/internal/classify"
	"shelve/internal/digest"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateCategories(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateOrganize() error {
	if _, err := digest.Parse(c.Organize.Digest); err != nil {
		return fmt.Errorf("organize.digest must be %q or %q", digest.SHA256, digest.XXH64)
	}
	if strings.TrimSpace(c.Organize.FallbackCategory) == "" {
		return errors.New("organize.fallback_category must be set")
	}
	if c.Organize.MaxRenameAttempts <= 0 {
		return errors.New("organize.max_rename_attempts must be positive")
	}
	return nil
}

func (c *Config) validateCategories() error {
	for key, label := range c.Categories {
		ext := classify.NormalizeExt(key)
		if len(ext) < 2 {
			return fmt.Errorf("categories: %q must name a suffix such as \".heic\"", key)
		}
		if strings.Contains(ext[1:], ".") {
			return fmt.Errorf("categories: %q must carry a single suffix", key)
		}
		if strings.TrimSpace(label) == "" {
			return fmt.Errorf("categories: %q needs a category name", key)
		}
	}
	return nil
}
