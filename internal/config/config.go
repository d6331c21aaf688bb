// Package config loads zenfolio settings from ~/.zenfolio/config.json and
// ZENFOLIO_* environment variables via Viper.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DirName is the per-user configuration directory under $HOME
	DirName = ".zenfolio"

	// FileName is the configuration file inside DirName
	FileName = "config.json"

	DefaultAPIURL       = "https://api.vercel.com"
	DefaultLimit        = 100
	DefaultSnapshotPath = "scripts/vercel-projects.snapshot.json"
)

// Config represents the application configuration
type Config struct {
	// Deployments API base URL
	APIURL string `mapstructure:"api_url" json:"api_url"`

	// Projects requested per page (1..100)
	Limit int `mapstructure:"limit" json:"limit"`

	// Optional team scope
	TeamID string `mapstructure:"team_id" json:"team_id,omitempty"`

	// Seconds before a request is abandoned; 0 disables the deadline
	TimeoutSeconds int `mapstructure:"timeout_seconds" json:"timeout_seconds,omitempty"`

	// Where `sync` writes the normalized snapshot
	SnapshotPath string `mapstructure:"snapshot_path" json:"snapshot_path"`

	// Development logging
	Debug bool `mapstructure:"debug" json:"debug,omitempty"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		APIURL:       DefaultAPIURL,
		Limit:        DefaultLimit,
		SnapshotPath: DefaultSnapshotPath,
	}
}

// GetGlobalConfigDir returns ~/.zenfolio
func GetGlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("error getting home directory: %w", err)
	}
	return filepath.Join(home, DirName), nil
}

// GetGlobalConfigPath returns ~/.zenfolio/config.json
func GetGlobalConfigPath() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, FileName), nil
}

// Load reads the configuration file at path, if it exists, and applies
// ZENFOLIO_* environment overrides on top of the defaults.
func Load(path string) (*Config, error) {
	return load(path, true)
}

// LoadFile reads only the defaults and the file at path, ignoring the
// environment. Use it when the result is written back with Save.
func LoadFile(path string) (*Config, error) {
	return load(path, false)
}

func load(path string, withEnv bool) (*Config, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("ZENFOLIO")
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}
	setDefaults(v)

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("json")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("stat config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGlobalConfig loads ~/.zenfolio/config.json
func LoadGlobalConfig() (*Config, error) {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return nil, err
	}
	return Load(path)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("limit", DefaultLimit)
	v.SetDefault("team_id", "")
	v.SetDefault("timeout_seconds", 0)
	v.SetDefault("snapshot_path", DefaultSnapshotPath)
	v.SetDefault("debug", false)
}

// Validate enforces required values and the API's limits
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("api_url must be an absolute URL, got %q", c.APIURL)
	}
	if c.Limit < 1 || c.Limit > 100 {
		return fmt.Errorf("limit must be between 1 and 100, got %d", c.Limit)
	}
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("timeout_seconds must be >= 0")
	}
	if c.SnapshotPath == "" {
		return fmt.Errorf("snapshot_path must be set")
	}
	return nil
}

// Save saves the configuration to the given file path
func (c *Config) Save(path string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}

// SaveGlobalConfig saves to ~/.zenfolio/config.json
func SaveGlobalConfig(c *Config) error {
	path, err := GetGlobalConfigPath()
	if err != nil {
		return err
	}
	return c.Save(path)
}
