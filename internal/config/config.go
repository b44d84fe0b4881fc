// Package config handles the reader's configuration file.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration.
type Config struct {
	Version int           `toml:"version"`
	Site    SiteConfig    `toml:"site"`
	Feed    FeedConfig    `toml:"feed"`
	Refresh RefreshConfig `toml:"refresh"`
}

type SiteConfig struct {
	// BaseURL is the wp/v2 REST root, e.g.
	// "https://ribaund.com/wp-json/wp/v2".
	BaseURL string `toml:"base_url"`
}

type FeedConfig struct {
	PostsPerPage  int `toml:"posts_per_page"`
	SearchDelayMS int `toml:"search_delay_ms"`
}

type RefreshConfig struct {
	IntervalMinutes int    `toml:"interval_minutes"`
	Timezone        string `toml:"timezone"`
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Version: 1,
		Site: SiteConfig{
			BaseURL: "https://ribaund.com/wp-json/wp/v2",
		},
		Feed: FeedConfig{
			PostsPerPage:  15,
			SearchDelayMS: 500,
		},
		Refresh: RefreshConfig{
			IntervalMinutes: 30,
			Timezone:        "Local",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "ribaund"), nil
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns where local state (the favorites database) lives.
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// DBPath returns the full path to the SQLite database.
func DBPath() (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "reader.db"), nil
}

// Load reads config from disk. A missing file yields the defaults.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(c)
}
