// Package config loads swatch-mcp settings from defaults, an optional config
// file, SWATCH_* environment variables and command-line flags.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/ironsheep/swatchkit/internal/imaging"
	"github.com/ironsheep/swatchkit/internal/logger"
)

// EnvPrefix is prepended to every key to form its environment variable, so
// cache_size is read from SWATCH_CACHE_SIZE.
const EnvPrefix = "SWATCH"

// Configuration keys.
const (
	KeyLogLevel    = "log_level"
	KeyLogFile     = "log_file"
	KeyCacheSize   = "cache_size"
	KeySampleSize  = "sample_size"
	KeyPaletteSize = "palette_size"
)

// Config is the resolved configuration.
type Config struct {
	LogLevel    string `mapstructure:"log_level"`
	LogFile     string `mapstructure:"log_file"`
	CacheSize   int    `mapstructure:"cache_size"`
	SampleSize  int    `mapstructure:"sample_size"`
	PaletteSize int    `mapstructure:"palette_size"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel:    "info",
		CacheSize:   imaging.DefaultAnalysisCacheSize,
		SampleSize:  imaging.DefaultSampleSize,
		PaletteSize: imaging.DefaultPaletteSize,
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// SWATCH_* environment variables. Callers bind flags to it before Load.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFile, d.LogFile)
	v.SetDefault(KeyCacheSize, d.CacheSize)
	v.SetDefault(KeySampleSize, d.SampleSize)
	v.SetDefault(KeyPaletteSize, d.PaletteSize)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load resolves the configuration from v. A non-empty file is read first;
// its format follows the extension (yaml, toml, json). Precedence is
// flag > environment > file > default.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%s: %w", KeyLogLevel, err)
	}
	if c.CacheSize < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyCacheSize, c.CacheSize)
	}
	if c.SampleSize < 0 {
		return fmt.Errorf("%s must not be negative, got %d", KeySampleSize, c.SampleSize)
	}
	if c.PaletteSize < 1 {
		return fmt.Errorf("%s must be at least 1, got %d", KeyPaletteSize, c.PaletteSize)
	}
	return nil
}
