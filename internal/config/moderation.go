package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvModerationAPIKey  = "HUSTINGS_MODERATION_API_KEY"
	EnvModerationModel   = "HUSTINGS_MODERATION_MODEL"
	EnvModerationTimeout = "HUSTINGS_MODERATION_TIMEOUT"
)

// ModerationConfig holds content classifier parameters. An empty APIKey
// leaves the moderation gate unconfigured, which is valid: the gate fails
// open and all content is allowed.
type ModerationConfig struct {
	APIKey  string `toml:"api_key"`
	Model   string `toml:"model"`
	Timeout string `toml:"timeout"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (c *ModerationConfig) TimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}

// Configured reports whether the classifier has credentials.
func (c *ModerationConfig) Configured() bool {
	return c.APIKey != ""
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ModerationConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ModerationConfig) Merge(overlay *ModerationConfig) {
	if overlay.APIKey != "" {
		c.APIKey = overlay.APIKey
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Timeout != "" {
		c.Timeout = overlay.Timeout
	}
}

func (c *ModerationConfig) loadDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.Timeout == "" {
		c.Timeout = "15s"
	}
}

func (c *ModerationConfig) loadEnv() {
	if v := os.Getenv(EnvModerationAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv(EnvModerationModel); v != "" {
		c.Model = v
	}
	if v := os.Getenv(EnvModerationTimeout); v != "" {
		c.Timeout = v
	}
}

func (c *ModerationConfig) validate() error {
	if _, err := time.ParseDuration(c.Timeout); err != nil {
		return fmt.Errorf("invalid timeout: %w", err)
	}
	return nil
}
