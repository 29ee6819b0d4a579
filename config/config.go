// Package config loads markergen configuration: a markergen.toml file,
// MARKERGEN_* environment overrides, and defaults, resolved through Viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/gubacsiaronmate/markergen/errors"
)

// Config is the resolved markergen configuration.
type Config struct {
	// Generate controls the generation pass.
	Generate GenerateConfig `mapstructure:"generate"`

	// Cache controls the DependencyRecord cache.
	Cache CacheConfig `mapstructure:"cache"`

	// Watch controls watch mode.
	Watch WatchConfig `mapstructure:"watch"`
}

// GenerateConfig controls output naming and fan-out.
type GenerateConfig struct {
	// OutputRoot is the directory artifacts are written under.
	OutputRoot string `mapstructure:"output_root"`

	// Suffix is the generated-unit suffix in identifiers and file names.
	Suffix string `mapstructure:"suffix"`

	// Extension is the generated-file extension.
	Extension string `mapstructure:"extension"`

	// Workers is the parallel extraction/synthesis fan-out.
	Workers int `mapstructure:"workers"`

	// Packages are the default package patterns when the command line
	// names none.
	Packages []string `mapstructure:"packages"`
}

// CacheConfig controls incremental-cache persistence.
type CacheConfig struct {
	// Path is where the cache file lives.
	Path string `mapstructure:"path"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// DebounceMs collapses rapid file-change bursts into one pass.
	DebounceMs int `mapstructure:"debounce_ms"`
}

// DefaultConfigName is the config file base name searched for.
const DefaultConfigName = "markergen"

var globalConfig *Config

// Load reads the markergen configuration, searching the working directory
// for markergen.toml. The result is memoized for the process lifetime.
func Load() (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	v := viper.New()
	v.SetConfigName(DefaultConfigName)
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("MARKERGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults and env cover everything.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	globalConfig = &cfg
	return globalConfig, nil
}

// LoadFromFile loads configuration from a specific file path, bypassing
// the search path and the memoized global.
func LoadFromFile(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal config file %s", configPath)
	}
	return &cfg, nil
}

// Reset clears the memoized config. Used by tests.
func Reset() {
	globalConfig = nil
}

// WriteDefault writes a markergen.toml populated with defaults to dir,
// refusing to overwrite an existing file.
func WriteDefault(dir string) (string, error) {
	path := filepath.Join(dir, DefaultConfigName+".toml")
	if _, err := os.Stat(path); err == nil {
		return "", errors.Newf("config file already exists at %s", path)
	}

	v := viper.New()
	v.SetConfigType("toml")
	SetDefaults(v)
	if err := v.WriteConfigAs(path); err != nil {
		return "", errors.Wrapf(err, "failed to write config to %s", path)
	}
	return path, nil
}
