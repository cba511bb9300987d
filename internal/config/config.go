// Package config loads flame settings from a YAML file and merges CLI flags
// over them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harrison/flame/internal/models"
	"github.com/harrison/flame/internal/palette"
	"github.com/harrison/flame/internal/terminal"
	"gopkg.in/yaml.v3"
)

// Config represents flame configuration options
type Config struct {
	// Disabled suppresses all output
	Disabled bool `yaml:"disabled"`

	// Clear wipes the screen once at startup
	Clear bool `yaml:"clear"`

	// Mode is the output mode: auto, interactive or plain
	Mode string `yaml:"mode"`

	// UUID prefixes every line with a per-process identifier
	UUID bool `yaml:"uuid"`

	// RetryLimit is the total number of attempts per job
	RetryLimit int `yaml:"retry_limit"`

	// BaseRetryDelay is the wait after the first failed attempt
	BaseRetryDelay time.Duration `yaml:"base_retry_delay"`

	// RefreshInterval is how often the jobs panel redraws
	RefreshInterval time.Duration `yaml:"refresh_interval"`

	// Pallet overrides part colors, e.g. {"INFO": "cyan"}
	Pallet map[string]string `yaml:"pallet"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Disabled:        false,
		Clear:           false,
		Mode:            "auto",
		UUID:            false,
		RetryLimit:      3,
		BaseRetryDelay:  time.Second,
		RefreshInterval: 300 * time.Millisecond,
		Pallet:          map[string]string{},
	}
}

// LoadConfig loads configuration from path, merged over the defaults.
// A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Durations arrive as strings ("1s", "250ms")
	type yamlConfig struct {
		Disabled        *bool             `yaml:"disabled"`
		Clear           *bool             `yaml:"clear"`
		Mode            string            `yaml:"mode"`
		UUID            *bool             `yaml:"uuid"`
		RetryLimit      *int              `yaml:"retry_limit"`
		BaseRetryDelay  string            `yaml:"base_retry_delay"`
		RefreshInterval string            `yaml:"refresh_interval"`
		Pallet          map[string]string `yaml:"pallet"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.Disabled != nil {
		cfg.Disabled = *yamlCfg.Disabled
	}
	if yamlCfg.Clear != nil {
		cfg.Clear = *yamlCfg.Clear
	}
	if yamlCfg.Mode != "" {
		cfg.Mode = yamlCfg.Mode
	}
	if yamlCfg.UUID != nil {
		cfg.UUID = *yamlCfg.UUID
	}
	if yamlCfg.RetryLimit != nil {
		cfg.RetryLimit = *yamlCfg.RetryLimit
	}
	if yamlCfg.BaseRetryDelay != "" {
		d, err := time.ParseDuration(yamlCfg.BaseRetryDelay)
		if err != nil {
			return nil, fmt.Errorf("invalid base_retry_delay format %q: %w", yamlCfg.BaseRetryDelay, err)
		}
		cfg.BaseRetryDelay = d
	}
	if yamlCfg.RefreshInterval != "" {
		d, err := time.ParseDuration(yamlCfg.RefreshInterval)
		if err != nil {
			return nil, fmt.Errorf("invalid refresh_interval format %q: %w", yamlCfg.RefreshInterval, err)
		}
		cfg.RefreshInterval = d
	}
	for part, name := range yamlCfg.Pallet {
		cfg.Pallet[part] = name
	}

	return cfg, nil
}

// LoadConfigFromDir loads <dir>/config.yaml
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, "config.yaml"))
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values.
func (c *Config) MergeWithFlags(retryLimit *int, baseDelay *time.Duration, mode *string, disabled *bool, clear *bool) {
	if retryLimit != nil {
		c.RetryLimit = *retryLimit
	}
	if baseDelay != nil {
		c.BaseRetryDelay = *baseDelay
	}
	if mode != nil {
		c.Mode = *mode
	}
	if disabled != nil {
		c.Disabled = *disabled
	}
	if clear != nil {
		c.Clear = *clear
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.RetryLimit < 1 {
		return fmt.Errorf("retry_limit must be >= 1, got %d", c.RetryLimit)
	}
	if c.BaseRetryDelay <= 0 {
		return fmt.Errorf("base_retry_delay must be > 0, got %v", c.BaseRetryDelay)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be > 0, got %v", c.RefreshInterval)
	}

	switch c.Mode {
	case "auto", "interactive", "plain":
	default:
		return fmt.Errorf("invalid mode %q, must be one of: auto, interactive, plain", c.Mode)
	}

	for part := range c.Pallet {
		if !models.LogPart(part).IsKnown() {
			return fmt.Errorf("pallet: unknown part %q", part)
		}
	}
	if err := palette.Merge(c.PalletOverrides()).Validate(); err != nil {
		return fmt.Errorf("pallet: %w", err)
	}

	return nil
}

// OutputMode returns the parsed output mode
func (c *Config) OutputMode() terminal.Mode {
	return terminal.ParseMode(c.Mode)
}

// PalletOverrides returns the pallet overrides keyed by part
func (c *Config) PalletOverrides() map[models.LogPart]string {
	out := make(map[models.LogPart]string, len(c.Pallet))
	for part, name := range c.Pallet {
		out[models.LogPart(part)] = name
	}
	return out
}
