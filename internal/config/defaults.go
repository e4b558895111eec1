package config

import "shelve/internal/classify"

const (
	defaultLogDir            = "~/.local/share/shelve/logs"
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
	defaultLogRetentionDays  = 30
	defaultDigest            = "sha256"
	defaultMaxRenameAttempts = 10000
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Organize: Organize{
			Digest:            defaultDigest,
			FallbackCategory:  classify.FallbackCategory,
			MaxRenameAttempts: defaultMaxRenameAttempts,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
