package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader for the given project root.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (SIGHTLINE_*)
// 2. Config file (.sightline/config.yml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".sightline")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("SIGHTLINE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("analysis.workers")
	v.BindEnv("diagram.direction")
	v.BindEnv("diagram.include_external")
	v.BindEnv("diagram.max_nodes")
	v.BindEnv("diagram.group_by_directory")
	v.BindEnv("storage.database_path")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - defaults + env vars apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("analysis.workers", defaults.Analysis.Workers)
	v.SetDefault("diagram.direction", defaults.Diagram.Direction)
	v.SetDefault("diagram.include_external", defaults.Diagram.IncludeExternal)
	v.SetDefault("diagram.max_nodes", defaults.Diagram.MaxNodes)
	v.SetDefault("diagram.group_by_directory", defaults.Diagram.GroupByDirectory)
	v.SetDefault("storage.database_path", defaults.Storage.DatabasePath)
}

// DatabasePath resolves the snapshot database location for a project root.
func DatabasePath(cfg *Config, rootDir string) string {
	if cfg.Storage.DatabasePath != "" {
		return cfg.Storage.DatabasePath
	}
	return filepath.Join(rootDir, ".sightline", "snapshots.db")
}
