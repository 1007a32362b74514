// Package config handles TOML-based configuration loading and validation.
// TOML is parsed as data only, no code execution is possible.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"portal/internal/httputil"
)

const appName = "portal"

// Form factors accepted by FormFactor.
const (
	FormFactorAuto    = "auto"
	FormFactorDesktop = "desktop"
	FormFactorCompact = "compact"
)

// Config holds all application configuration.
type Config struct {
	APIBase    string            `toml:"api_base"`
	Player     string            `toml:"player"`
	FormFactor string            `toml:"form_factor"`
	VideoIndex string            `toml:"video_index"` // Optional HTML page listing episode videos
	History    bool              `toml:"history"`
	CacheTTL   string            `toml:"cache_ttl"` // Go duration; "0" disables the page cache
	Debug      bool              `toml:"debug"`
	Videos     map[string]string `toml:"videos"` // Episode code or season -> video URL
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		APIBase:    "https://rickandmortyapi.com",
		Player:     "mpv",
		FormFactor: FormFactorAuto,
		History:    true,
		CacheTTL:   "24h",
		Debug:      false,
	}
}

func xdgDir(env string, fallback ...string) (string, error) {
	if dir := os.Getenv(env); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(append(append([]string{home}, fallback...), appName)...), nil
}

// ConfigPath returns the path to the config file.
func ConfigPath() (string, error) {
	dir, err := xdgDir("XDG_CONFIG_HOME", ".config")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file and merges with defaults.
// If the config file doesn't exist, defaults are returned.
func Load() (*Config, error) {
	cfg := Default()

	path, err := ConfigPath()
	if err != nil {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks config values are within acceptable bounds.
func (c *Config) Validate() error {
	validPlayers := map[string]bool{
		"mpv": true, "vlc": true, "iina": true, "celluloid": true,
	}
	if !validPlayers[strings.ToLower(c.Player)] {
		return fmt.Errorf("unsupported player %q (valid: mpv, vlc, iina, celluloid)", c.Player)
	}

	switch strings.ToLower(c.FormFactor) {
	case FormFactorAuto, FormFactorDesktop, FormFactorCompact:
	default:
		return fmt.Errorf("unsupported form factor %q (valid: auto, desktop, compact)", c.FormFactor)
	}

	if c.APIBase == "" {
		return fmt.Errorf("api_base cannot be empty")
	}
	if err := httputil.ValidateURL(c.APIBase); err != nil {
		return fmt.Errorf("api_base: %w", err)
	}

	if c.VideoIndex != "" {
		if err := httputil.ValidateURL(c.VideoIndex); err != nil {
			return fmt.Errorf("video_index: %w", err)
		}
	}

	if _, err := c.CacheLifetime(); err != nil {
		return err
	}

	return nil
}

// CacheLifetime parses CacheTTL. Zero means caching is disabled.
func (c *Config) CacheLifetime() (time.Duration, error) {
	if c.CacheTTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, fmt.Errorf("invalid cache_ttl %q: %w", c.CacheTTL, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("cache_ttl cannot be negative")
	}
	return d, nil
}

// HistoryPath returns the path to the history database.
func HistoryPath() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "history.db"), nil
}

// CachePath returns the path to the episode page cache.
func CachePath() (string, error) {
	dir, err := xdgDir("XDG_CACHE_HOME", ".cache")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pages.json"), nil
}

// LogPath returns the path to the log file.
func LogPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "portal.log"), nil
}
