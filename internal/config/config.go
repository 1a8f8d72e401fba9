// Package config resolves pystarter settings from flags, environment
// variables, an optional .env file and an optional YAML config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. PYSTARTER_ADDR.
const EnvPrefix = "PYSTARTER"

// Config keys.
const (
	KeyAddr          = "addr"
	KeyLayoutFile    = "layout_file"
	KeyTheme         = "theme"
	KeyVariant       = "variant"
	KeyCacheSize     = "cache_size"
	KeyLogLevel      = "log_level"
	KeyRenderer      = "renderer"
	KeyShutdownGrace = "shutdown_grace"
)

// Config is the resolved runtime configuration.
type Config struct {
	Addr          string        `mapstructure:"addr"`
	LayoutFile    string        `mapstructure:"layout_file"`
	Theme         string        `mapstructure:"theme"`
	Variant       string        `mapstructure:"variant"`
	CacheSize     int           `mapstructure:"cache_size"`
	LogLevel      string        `mapstructure:"log_level"`
	Renderer      string        `mapstructure:"renderer"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

// SetDefaults registers the built-in value for every key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyAddr, ":8080")
	v.SetDefault(KeyLayoutFile, "")
	v.SetDefault(KeyTheme, "pystarter")
	v.SetDefault(KeyVariant, "")
	v.SetDefault(KeyCacheSize, 256)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyRenderer, "vanilla")
	v.SetDefault(KeyShutdownGrace, 5*time.Second)
}

// DefaultDir is ~/.config/pystarter.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: home directory: %w", err)
	}
	return filepath.Join(home, ".config", "pystarter"), nil
}

// Init prepares v: .env files are loaded into the process environment
// (existing variables win), the config file is located, env overrides are
// enabled and defaults are set. A missing default config file is not an
// error; a missing explicit cfgFile is.
func Init(v *viper.Viper, cfgFile string, envFiles ...string) error {
	if err := loadDotEnv(envFiles...); err != nil {
		return err
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		dir, err := DefaultDir()
		if err != nil {
			return err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
	}
	return nil
}

func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		// .env in the working directory is optional.
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("config: load env files: %w", err)
	}
	return nil
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Addr = strings.TrimSpace(cfg.Addr)
	cfg.Renderer = strings.TrimSpace(cfg.Renderer)
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: %s is required", KeyAddr)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("config: %s must not be negative, got %d", KeyCacheSize, c.CacheSize)
	}
	if c.ShutdownGrace < 0 {
		return fmt.Errorf("config: %s must not be negative, got %s", KeyShutdownGrace, c.ShutdownGrace)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %s: %w", KeyLogLevel, err)
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}
