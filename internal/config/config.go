// Package config loads the huectl configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Bridge  HueConfig   `yaml:"bridge"`
	Cache   CacheConfig `yaml:"cache"`
	Log     LogConfig   `yaml:"log"`
	Palette string      `yaml:"palette"` // Color palette file (default: <confdir>/colors.json)
}

// HueConfig contains Hue bridge connection settings
type HueConfig struct {
	Address   string   `yaml:"address"`    // Bridge host; empty means discover
	Token     string   `yaml:"token"`      // API token; overrides token_file
	TokenFile string   `yaml:"token_file"` // Token file path (default: <confdir>/token)
	Timeout   Duration `yaml:"timeout"`    // HTTP timeout for bridge API requests
}

// CacheConfig contains the discovery/inventory cache settings
type CacheConfig struct {
	Path      string   `yaml:"path"`       // SQLite file (default: <confdir>/cache.sqlite)
	BridgeTTL Duration `yaml:"bridge_ttl"` // How long a discovered address stays valid
	LightsTTL Duration `yaml:"lights_ttl"` // How long a light inventory snapshot stays valid
}

// LogConfig contains logging settings
type LogConfig struct {
	Level   string `yaml:"level"`
	Colors  bool   `yaml:"colors"`
	UseJSON bool   `yaml:"json"`
}

// Duration is a wrapper around time.Duration for YAML unmarshalling
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// Dir returns the per-user configuration directory.
func Dir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "huectl")
	}
	return ".huectl"
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// Load reads and parses the configuration file. A missing file is not an
// error; every setting has a default.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// Fall through to defaults only.
	case err != nil:
		return nil, err
	default:
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Bridge.Timeout == 0 {
		cfg.Bridge.Timeout = Duration(10 * time.Second)
	}
	if cfg.Bridge.TokenFile == "" {
		cfg.Bridge.TokenFile = filepath.Join(Dir(), "token")
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(Dir(), "cache.sqlite")
	}
	if cfg.Cache.BridgeTTL == 0 {
		cfg.Cache.BridgeTTL = Duration(7 * 24 * time.Hour)
	}
	if cfg.Cache.LightsTTL == 0 {
		cfg.Cache.LightsTTL = Duration(10 * time.Second)
	}
	if cfg.Palette == "" {
		cfg.Palette = filepath.Join(Dir(), "colors.json")
	}

	return &cfg, nil
}

// ResolveToken returns the bridge API token, preferring the inline config
// value over the token file.
func (c *Config) ResolveToken() (string, error) {
	if c.Bridge.Token != "" {
		return c.Bridge.Token, nil
	}

	data, err := os.ReadFile(c.Bridge.TokenFile)
	if err != nil {
		return "", fmt.Errorf("no bridge token configured (run 'huectl register' or set bridge.token): %w", err)
	}

	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("token file %s is empty", c.Bridge.TokenFile)
	}
	return token, nil
}

// SaveToken writes the bridge API token to the token file.
func (c *Config) SaveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(c.Bridge.TokenFile), 0o755); err != nil {
		return err
	}
	return os.WriteFile(c.Bridge.TokenFile, []byte(token+"\n"), 0o600)
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}
func expandEnvVars(input string) string {
	re := regexp.MustCompile(`\$\{([^}:]+)(?::([^}]*))?\}`)

	return re.ReplaceAllStringFunc(input, func(match string) string {
		parts := re.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultVal := ""
		if len(parts) >= 3 {
			defaultVal = parts[2]
		}

		if val := os.Getenv(varName); val != "" {
			return val
		}
		return defaultVal
	})
}
