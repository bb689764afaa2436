// Package config loads planner tunables from an optional YAML file, a
// .env file, and the process environment, in that order of increasing
// precedence.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the knobs a Planner needs that don't belong in a task
// file: the default action duration, search limits, and heuristic choice.
// NewWithConfig reads the heuristic, node budget, deadline and cache
// directory; DefaultDuration is loaded but not passed to task compilation,
// which always uses compile.DefaultOptions().
type Config struct {
	DefaultDuration  float64       `mapstructure:"default_duration"`
	NodeBudget       int           `mapstructure:"node_budget"`
	Deadline         time.Duration `mapstructure:"deadline"`
	DefaultHeuristic string        `mapstructure:"default_heuristic"`
	// CacheDir, if non-empty, is the path to a BadgerDB directory used to
	// memoize compiled tasks across Load calls. Empty disables the cache.
	CacheDir string `mapstructure:"cache_dir"`
}

// Default returns the planner's built-in tunables.
func Default() Config {
	return Config{
		DefaultDuration:  1.0,
		NodeBudget:       0,
		Deadline:         0,
		DefaultHeuristic: "maxrelaxed",
		CacheDir:         "",
	}
}

// Load reads configFile (if non-empty) as YAML, loads a sibling .env file
// if present, then overlays TEMPORALPLAN_-prefixed environment variables,
// falling back to Default() for anything unset.
func Load(configFile string) (Config, error) {
	cfg := Default()

	if configFile != "" {
		_ = godotenv.Load(filepath.Join(filepath.Dir(configFile), ".env"))
	} else {
		_ = godotenv.Load(".env")
	}

	vp := viper.New()
	vp.SetEnvPrefix("temporalplan")
	vp.AutomaticEnv()
	vp.SetDefault("default_duration", cfg.DefaultDuration)
	vp.SetDefault("node_budget", cfg.NodeBudget)
	vp.SetDefault("deadline", cfg.Deadline)
	vp.SetDefault("default_heuristic", cfg.DefaultHeuristic)
	vp.SetDefault("cache_dir", cfg.CacheDir)

	if configFile != "" {
		vp.SetConfigFile(configFile)
		vp.SetConfigType("yaml")
		vp.AddConfigPath(filepath.Dir(configFile))
		if err := vp.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
	}

	if err := vp.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return cfg, nil
}
