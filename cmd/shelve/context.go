package main

import (
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"shelve/internal/config"
	"shelve/internal/faults"
	"shelve/internal/logging"
)

// commandContext shares lazily resolved configuration between commands, so
// one invocation loads the config file exactly once no matter how many
// helpers consult it.
type commandContext struct {
	configFlag    *string
	logFormatFlag *string
	verboseFlag   *bool

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logFormatFlag *string, verboseFlag *bool) *commandContext {
	return &commandContext{
		configFlag:    configFlag,
		logFormatFlag: logFormatFlag,
		verboseFlag:   verboseFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolvedPath, exists, err := config.Load(path)
		if err != nil {
			c.configErr = faults.Wrap(faults.ErrConfiguration, "config", "load", "", err)
			return
		}
		c.applyGlobalFlags(cfg)
		c.config = cfg
		c.configPath = resolvedPath
		c.configSeen = exists
	})
	return c.config, c.configErr
}

// applyGlobalFlags folds the persistent logging flags over the loaded
// configuration. An explicit flag always wins over the file value.
func (c *commandContext) applyGlobalFlags(cfg *config.Config) {
	if c.logFormatFlag != nil {
		if format := strings.TrimSpace(*c.logFormatFlag); format != "" {
			cfg.Logging.Format = format
		}
	}
	if c.verboseFlag != nil && *c.verboseFlag {
		cfg.Logging.Level = "debug"
	}
}

func (c *commandContext) configValue() *config.Config {
	cfg, _ := c.ensureConfig()
	return cfg
}

// newLogger builds the console logger commands run with, honouring the
// resolved logging section and the persistent flags.
func (c *commandContext) newLogger() (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg)
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
