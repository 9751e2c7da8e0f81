package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvAuthProviderURL     = "HUSTINGS_AUTH_PROVIDER_URL"
	EnvAuthJWTSecret       = "HUSTINGS_AUTH_JWT_SECRET"
	EnvAuthRequestTimeout  = "HUSTINGS_AUTH_REQUEST_TIMEOUT"
	EnvAuthMaxAttempts     = "HUSTINGS_AUTH_MAX_ATTEMPTS"
	EnvAuthLockoutDuration = "HUSTINGS_AUTH_LOCKOUT_DURATION"
)

// AuthConfig holds identity provider and rate limiting parameters.
type AuthConfig struct {
	ProviderURL     string `toml:"provider_url"`
	JWTSecret       string `toml:"jwt_secret"`
	RequestTimeout  string `toml:"request_timeout"`
	MaxAttempts     int    `toml:"max_attempts"`
	LockoutDuration string `toml:"lockout_duration"`
}

// RequestTimeoutDuration returns RequestTimeout as a time.Duration.
func (c *AuthConfig) RequestTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.RequestTimeout)
	return d
}

// LockoutDurationValue returns LockoutDuration as a time.Duration.
func (c *AuthConfig) LockoutDurationValue() time.Duration {
	d, _ := time.ParseDuration(c.LockoutDuration)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *AuthConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AuthConfig) Merge(overlay *AuthConfig) {
	if overlay.ProviderURL != "" {
		c.ProviderURL = overlay.ProviderURL
	}
	if overlay.JWTSecret != "" {
		c.JWTSecret = overlay.JWTSecret
	}
	if overlay.RequestTimeout != "" {
		c.RequestTimeout = overlay.RequestTimeout
	}
	if overlay.MaxAttempts != 0 {
		c.MaxAttempts = overlay.MaxAttempts
	}
	if overlay.LockoutDuration != "" {
		c.LockoutDuration = overlay.LockoutDuration
	}
}

func (c *AuthConfig) loadDefaults() {
	if c.RequestTimeout == "" {
		c.RequestTimeout = "10s"
	}
	if c.MaxAttempts == 0 {
		c.MaxAttempts = 5
	}
	if c.LockoutDuration == "" {
		c.LockoutDuration = "5m"
	}
}

func (c *AuthConfig) loadEnv() {
	if v := os.Getenv(EnvAuthProviderURL); v != "" {
		c.ProviderURL = v
	}
	if v := os.Getenv(EnvAuthJWTSecret); v != "" {
		c.JWTSecret = v
	}
	if v := os.Getenv(EnvAuthRequestTimeout); v != "" {
		c.RequestTimeout = v
	}
	if v := os.Getenv(EnvAuthMaxAttempts); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.MaxAttempts = n
		}
	}
	if v := os.Getenv(EnvAuthLockoutDuration); v != "" {
		c.LockoutDuration = v
	}
}

func (c *AuthConfig) validate() error {
	if c.ProviderURL == "" {
		return fmt.Errorf("provider_url required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret required")
	}
	if _, err := time.ParseDuration(c.RequestTimeout); err != nil {
		return fmt.Errorf("invalid request_timeout: %w", err)
	}
	if _, err := time.ParseDuration(c.LockoutDuration); err != nil {
		return fmt.Errorf("invalid lockout_duration: %w", err)
	}
	return nil
}
