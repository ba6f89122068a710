// Package config holds the tunables for the cursor saver and loads them from
// flags, an optional YAML file and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/vedantwpatil/Akemito/internal/logging"
)

const (
	// LocalFileName is checked in the working directory before the user config dir.
	LocalFileName = ".akemito.yaml"
	appDirName    = "akemito"
)

type Config struct {
	Tracking TrackingConfig `mapstructure:"tracking"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type TrackingConfig struct {
	DwellThreshold time.Duration `mapstructure:"dwell_threshold"` // Stillness needed before a spot can be saved
	SampleInterval time.Duration `mapstructure:"sample_interval"` // Pointer polling period
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "text" or "json"
}

func NewConfig() *Config {
	return &Config{
		Tracking: TrackingConfig{
			DwellThreshold: time.Second,
			SampleInterval: 50 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Validate rejects settings the tracker cannot work with.
func (c *Config) Validate() error {
	if c.Tracking.DwellThreshold <= 0 {
		return fmt.Errorf("tracking.dwell_threshold must be positive, got %s", c.Tracking.DwellThreshold)
	}
	if c.Tracking.SampleInterval <= 0 {
		return fmt.Errorf("tracking.sample_interval must be positive, got %s", c.Tracking.SampleInterval)
	}
	// At least one still sample has to fit inside a dwell.
	if c.Tracking.SampleInterval >= c.Tracking.DwellThreshold {
		return fmt.Errorf("tracking.sample_interval (%s) must be shorter than tracking.dwell_threshold (%s)",
			c.Tracking.SampleInterval, c.Tracking.DwellThreshold)
	}
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	if !logging.ValidFormat(c.Logging.Format) {
		return fmt.Errorf("logging.format: unsupported format %q", c.Logging.Format)
	}
	return nil
}

// SetDefaults registers every default with v so flags and files only need to
// override what they change.
func SetDefaults(v *viper.Viper) {
	defaults := NewConfig()
	v.SetDefault("tracking.dwell_threshold", defaults.Tracking.DwellThreshold)
	v.SetDefault("tracking.sample_interval", defaults.Tracking.SampleInterval)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.format", defaults.Logging.Format)
}

// UserDir returns the per-user config directory, e.g. ~/.config/akemito.
func UserDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, appDirName), nil
}

// Load resolves the config file and decodes it over the defaults.
// An explicit path must exist. Without one, ./.akemito.yaml and then
// <user config dir>/akemito/config.yaml are tried; finding neither is fine.
func Load(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	switch {
	case path != "":
		v.SetConfigFile(path)
	case fileExists(LocalFileName):
		v.SetConfigFile(LocalFileName)
	default:
		if dir, err := UserDir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	return decode(v)
}

// Watch calls onChange with the re-validated config each time the file in use
// is written. Invalid edits go to onError and the previous config stays in
// effect. Reports whether a watch was installed; without a loaded file there
// is nothing to watch.
func Watch(v *viper.Viper, onChange func(*Config), onError func(error)) bool {
	if v.ConfigFileUsed() == "" {
		return false
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("reloading %s: %w", e.Name, err))
			}
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
	return true
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
