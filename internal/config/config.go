// Package config provides configuration management for distcheck using Viper.
package config

import (
	"github.com/spf13/viper"

	"github.com/thoreinstein/distcheck/internal/errors"
	"github.com/thoreinstein/distcheck/internal/paths"
	"github.com/thoreinstein/distcheck/pkg/fileutil"
)

// EnvPrefix prefixes environment variable overrides, e.g. DISTCHECK_STRICT.
const EnvPrefix = "DISTCHECK"

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version     int    `mapstructure:"version" yaml:"version"`
	Strict      bool   `mapstructure:"strict" yaml:"strict"`
	Format      string `mapstructure:"format" yaml:"format"`
	MaxFileSize int64  `mapstructure:"max_file_size" yaml:"max_file_size"`
	Color       string `mapstructure:"color" yaml:"color"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Version:     1,
		Format:      "text",
		MaxFileSize: fileutil.DefaultMaxFileSize,
		Color:       ColorAuto,
	}
}

// Init initializes Viper with default configuration.
// Call this once at application startup before accessing config values.
func Init() {
	// Config file settings
	viper.SetConfigName(paths.ConfigFileName)
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".") // Current directory
	viper.AddConfigPath(paths.ConfigDir())

	// Environment variable support
	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	def := Default()
	viper.SetDefault("version", def.Version)
	viper.SetDefault("strict", def.Strict)
	viper.SetDefault("format", def.Format)
	viper.SetDefault("max_file_size", def.MaxFileSize)
	viper.SetDefault("color", def.Color)
}

// Load reads the configuration file.
// If path is provided, it reads from that specific file.
// If path is empty, it searches in the default locations and falls back to
// defaults when no file exists. Every failure is marked with
// errors.ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Wrap(errors.Join(errs...), "validating config"), errors.ErrInvalidConfig)
	}

	return &cfg, nil
}

// Used returns the configuration file viper loaded, or "" if defaults are in effect.
func Used() string {
	return viper.ConfigFileUsed()
}
