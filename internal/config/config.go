// Package config loads sightline configuration from .sightline/config.yml
// with environment variable overrides.
package config

import (
	"github.com/sightline-dev/sightline/internal/analyzer"
	"github.com/sightline-dev/sightline/internal/diagram"
)

// Config is the complete sightline configuration.
type Config struct {
	Paths    PathsConfig    `yaml:"paths" mapstructure:"paths"`
	Analysis AnalysisConfig `yaml:"analysis" mapstructure:"analysis"`
	Diagram  DiagramConfig  `yaml:"diagram" mapstructure:"diagram"`
	Storage  StorageConfig  `yaml:"storage" mapstructure:"storage"`
}

// PathsConfig defines which files are excluded from analysis.
type PathsConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns to skip
}

// AnalysisConfig tunes the batch parser.
type AnalysisConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"` // 0 means GOMAXPROCS
}

// DiagramConfig holds default projection options.
type DiagramConfig struct {
	Direction        string `yaml:"direction" mapstructure:"direction"`
	IncludeExternal  bool   `yaml:"include_external" mapstructure:"include_external"`
	MaxNodes         int    `yaml:"max_nodes" mapstructure:"max_nodes"`
	GroupByDirectory bool   `yaml:"group_by_directory" mapstructure:"group_by_directory"`
}

// StorageConfig defines where snapshots are persisted.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path" mapstructure:"database_path"` // empty means .sightline/snapshots.db
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	opts := diagram.DefaultOptions()
	return &Config{
		Paths: PathsConfig{
			Ignore: analyzer.DefaultIgnorePatterns,
		},
		Analysis: AnalysisConfig{
			Workers: 0,
		},
		Diagram: DiagramConfig{
			Direction:        opts.Direction,
			IncludeExternal:  opts.IncludeExternal,
			MaxNodes:         opts.MaxNodes,
			GroupByDirectory: opts.GroupByDirectory,
		},
		Storage: StorageConfig{
			DatabasePath: "",
		},
	}
}

// DiagramOptions converts the config section to projection options.
func (c *Config) DiagramOptions() diagram.Options {
	return diagram.Options{
		Direction:        c.Diagram.Direction,
		IncludeExternal:  c.Diagram.IncludeExternal,
		MaxNodes:         c.Diagram.MaxNodes,
		GroupByDirectory: c.Diagram.GroupByDirectory,
	}
}
