package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	CacheFile string `koanf:"cache_file"` // resume-position document path
	StateFile string `koanf:"state_file"` // shell-state database path

	VolumeStep float64 `koanf:"volume_step"` // 0-1 range, default 0.07

	SeekStepSeconds      int `koanf:"seek_step_seconds"`       // default 5
	SeekStepLargeSeconds int `koanf:"seek_step_large_seconds"` // default 60

	Notifications *bool  `koanf:"notifications"` // desktop notifications (default: true)
	LogLevel      string `koanf:"log_level"`     // logrus level, default "info"
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try config files in order of priority (last wins)
	for _, path := range getConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	if cfg.CacheFile != "" {
		cfg.CacheFile = expandPath(cfg.CacheFile)
	}
	if cfg.StateFile != "" {
		cfg.StateFile = expandPath(cfg.StateFile)
	}

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/tide/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "tide", "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// ResolveCacheFile returns the resume-cache path, defaulting to the XDG
// cache dir when unset.
func (c *Config) ResolveCacheFile() (string, error) {
	if c.CacheFile != "" {
		return c.CacheFile, nil
	}
	return xdg.CacheFile(filepath.Join("tide", "positions.json"))
}

// ResolveStateFile returns the shell-state database path, defaulting to
// the XDG data dir when unset.
func (c *Config) ResolveStateFile() (string, error) {
	if c.StateFile != "" {
		return c.StateFile, nil
	}
	return xdg.DataFile(filepath.Join("tide", "tide.db"))
}

// GetVolumeStep returns the volume step with the default applied.
func (c *Config) GetVolumeStep() float64 {
	if c.VolumeStep <= 0 || c.VolumeStep > 1 {
		return 0.07
	}
	return c.VolumeStep
}

// GetSeekStep returns the small seek step with the default applied.
func (c *Config) GetSeekStep() time.Duration {
	if c.SeekStepSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.SeekStepSeconds) * time.Second
}

// GetSeekStepLarge returns the large seek step with the default applied.
func (c *Config) GetSeekStepLarge() time.Duration {
	if c.SeekStepLargeSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.SeekStepLargeSeconds) * time.Second
}

// NotificationsEnabled returns whether desktop notifications are on
// (default: true).
func (c *Config) NotificationsEnabled() bool {
	return c.Notifications == nil || *c.Notifications
}

// GetLogLevel returns the log level with the default applied.
func (c *Config) GetLogLevel() string {
	if c.LogLevel == "" {
		return "info"
	}
	return c.LogLevel
}
