package preflight

import (
	"strings"

	"shelve/internal/config"
	"shelve/internal/faults"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string
	Passed   bool
	Optional bool
	Detail   string
}

// RunAll executes every preflight check against the configured paths.
// Callers that accept flag overrides merge them into cfg first.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	// Move runs unlink from the source, so they need write access there.
	needWrite := !cfg.Organize.Copy
	results = append(results, CheckSource(cfg.Paths.Source, needWrite))
	results = append(results, CheckDestination(cfg.Paths.Dest))
	results = append(results, CheckOverlap(cfg.Paths.Source, cfg.Paths.Dest))
	results = append(results, CheckLogDir(cfg.Paths.LogDir))
	results = append(results, CheckFreeSpace(cfg.Paths.Dest))

	return results
}

// Verify runs the required checks and converts the first failure into a
// validation fault. Advisory checks never block a run; the doctor command
// renders RunAll so they stay visible.
func Verify(cfg *config.Config) error {
	for _, result := range RunAll(cfg) {
		if result.Passed || result.Optional {
			continue
		}
		return faults.Wrap(faults.ErrValidation, "preflight", strings.ToLower(result.Name), result.Detail, nil)
	}
	return nil
}
