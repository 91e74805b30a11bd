package preflight

import (
	"vimdl/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	// FreeBytes is the space available in a passing directory, when known.
	FreeBytes uint64
}

// RunAll executes the directory checks that apply to cfg. Directories for
// disabled features are skipped.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectory("Work directory", cfg.Paths.WorkDir)}

	if cfg.History.Enabled {
		results = append(results, CheckDirectory("State directory", cfg.Paths.StateDir))
	}
	if cfg.Logging.File {
		results = append(results, CheckDirectory("Log directory", cfg.Paths.LogDir))
	}
	return results
}
