// Package config holds runtime tunables for directory walks and glob
// expansion. Defaults are overridden by a ConfigOverride, typically loaded
// from a YAML or JSON file; unset override fields leave the default alone.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/brettbedarf/pathwalk/internal/util"
	"gopkg.in/yaml.v3"
)

// Default configuration constants. See [Config] for field descriptions.
const (
	// DefaultVerbosity is the CLI verbosity between 1 (error) and 5 (trace)
	DefaultVerbosity = 3

	// DefaultMaxDepth places no limit on recursive traversal depth
	DefaultMaxDepth = 0

	// DefaultFilesOnly keeps directories in glob results
	DefaultFilesOnly = false

	// DefaultStatCache leaves status memoization off; every query re-stats
	DefaultStatCache = false
)

// Config contains runtime configuration values for walks and expansion.
type Config struct {
	LogLvl    util.LogLevel // Internal log level derived from CLI verbosity (Default info)
	MaxDepth  int           // Maximum number of directory levels a recursive walk may open; 0 is unlimited (Default 0)
	FilesOnly bool          // Whether glob expansion drops directories from its results (Default false)
	StatCache bool          // Whether an Expander shares a stat cache across expansions (Default false)
}

// ConfigOverride uses pointer fields to distinguish between unset and zero
// values when loading partial configuration. See [Config] for field
// descriptions.
type ConfigOverride struct {
	Verbose   *int  `yaml:"verbose,omitempty" json:"verbose,omitempty"`
	MaxDepth  *int  `yaml:"max_depth,omitempty" json:"max_depth,omitempty"`
	FilesOnly *bool `yaml:"files_only,omitempty" json:"files_only,omitempty"`
	StatCache *bool `yaml:"stat_cache,omitempty" json:"stat_cache,omitempty"`
}

// NewConfig creates a Config from defaults with override applied on top.
// A nil override yields pure defaults.
func NewConfig(override *ConfigOverride) *Config {
	cfg := &Config{
		LogLvl:    verboseToLevel(DefaultVerbosity),
		MaxDepth:  DefaultMaxDepth,
		FilesOnly: DefaultFilesOnly,
		StatCache: DefaultStatCache,
	}
	if override != nil {
		cfg.Merge(override)
	}
	return cfg
}

// Merge applies non-nil values from override onto this Config.
func (c *Config) Merge(override *ConfigOverride) {
	if override.Verbose != nil {
		c.LogLvl = verboseToLevel(*override.Verbose)
	}
	if override.MaxDepth != nil {
		c.MaxDepth = *override.MaxDepth
	}
	if override.FilesOnly != nil {
		c.FilesOnly = *override.FilesOnly
	}
	if override.StatCache != nil {
		c.StatCache = *override.StatCache
	}
}

// verboseToLevel maps CLI verbosity 1..5 onto internal log levels, clamping
// out-of-range values.
func verboseToLevel(verbose int) util.LogLevel {
	if verbose < 1 {
		verbose = 1
	}
	if verbose > 5 {
		verbose = 5
	}
	levels := [5]util.LogLevel{
		util.ErrorLevel, util.WarnLevel, util.InfoLevel,
		util.DebugLevel, util.TraceLevel,
	}
	return levels[verbose-1]
}

// LoadConfigOverrideFile loads configuration overrides from a file without
// merging. Supports both YAML (.yaml, .yml) and JSON (.json) formats.
func LoadConfigOverrideFile(path string) (*ConfigOverride, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var override ConfigOverride

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(data, &override); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown config file extension: %s", path)
	}

	return &override, nil
}

// NewConfigFromFile creates a new Config by merging file overrides with
// defaults.
func NewConfigFromFile(path string) (*Config, error) {
	override, err := LoadConfigOverrideFile(path)
	if err != nil {
		return nil, err
	}
	return NewConfig(override), nil
}
