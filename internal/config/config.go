// Package config loads depsort settings from .depsort.yaml, the
// environment (DEPSORT_ prefix), and built-in defaults, in that
// precedence order.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all tool settings.
type Config struct {
	// Include/Exclude are doublestar globs over root-relative paths.
	Include []string `mapstructure:"include" yaml:"include"`
	Exclude []string `mapstructure:"exclude" yaml:"exclude"`

	// Extra directories merged into layout detection.
	SourceDirs []string `mapstructure:"source_dirs" yaml:"source_dirs"`
	TestDirs   []string `mapstructure:"test_dirs" yaml:"test_dirs"`
	BuildDirs  []string `mapstructure:"build_dirs" yaml:"build_dirs"`

	// Extraction cache.
	CacheEnabled bool   `mapstructure:"cache" yaml:"cache"`
	CachePath    string `mapstructure:"cache_path" yaml:"cache_path"`

	// Concurrency bound for file reads; 0 means NumCPU.
	Concurrency int `mapstructure:"concurrency" yaml:"concurrency"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Include:      []string{},
		Exclude:      []string{},
		CacheEnabled: true,
		CachePath:    filepath.Join(".depsort", "cache.db"),
	}
}

// Load reads configuration for a project root. cfgFile overrides the
// default lookup (.depsort.yaml in the root). A missing config file is
// not an error; a malformed one is.
func Load(root, cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".depsort")
		v.SetConfigType("yaml")
		v.AddConfigPath(root)
	}
	v.SetEnvPrefix("DEPSORT")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("include", d.Include)
	v.SetDefault("exclude", d.Exclude)
	v.SetDefault("cache", d.CacheEnabled)
	v.SetDefault("cache_path", d.CachePath)
	v.SetDefault("concurrency", d.Concurrency)
}
