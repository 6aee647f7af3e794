package config

import "fmt"

var validDirections = map[string]bool{
	"LR": true, "RL": true, "TD": true, "TB": true, "BT": true,
}

// Validate rejects configurations that would produce broken runs.
func Validate(cfg *Config) error {
	if cfg.Analysis.Workers < 0 {
		return fmt.Errorf("analysis.workers must be >= 0, got %d", cfg.Analysis.Workers)
	}
	if cfg.Diagram.MaxNodes < 0 {
		return fmt.Errorf("diagram.max_nodes must be >= 0, got %d", cfg.Diagram.MaxNodes)
	}
	if cfg.Diagram.Direction != "" && !validDirections[cfg.Diagram.Direction] {
		return fmt.Errorf("diagram.direction must be one of LR, RL, TD, TB, BT, got %q", cfg.Diagram.Direction)
	}
	return nil
}
