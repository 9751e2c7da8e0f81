package storage

import (
	"fmt"
	"os"
	"strings"
)

// Config holds Azure Blob Storage connection parameters.
type Config struct {
	Buckets          []string `toml:"buckets"`
	ConnectionString string   `toml:"connection_string"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	Buckets          string
	ConnectionString string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if len(overlay.Buckets) > 0 {
		c.Buckets = overlay.Buckets
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
}

func (c *Config) loadDefaults() {
	if len(c.Buckets) == 0 {
		c.Buckets = []string{"candidate-portraits", "candidate-resumes"}
	}
}

func (c *Config) loadEnv(env *Env) {
	if env.Buckets != "" {
		if v := os.Getenv(env.Buckets); v != "" {
			buckets := make([]string, 0)
			for _, b := range strings.Split(v, ",") {
				if b = strings.TrimSpace(b); b != "" {
					buckets = append(buckets, b)
				}
			}
			if len(buckets) > 0 {
				c.Buckets = buckets
			}
		}
	}
	if env.ConnectionString != "" {
		if v := os.Getenv(env.ConnectionString); v != "" {
			c.ConnectionString = v
		}
	}
}

func (c *Config) validate() error {
	if len(c.Buckets) == 0 {
		return fmt.Errorf("buckets required")
	}
	if c.ConnectionString == "" {
		return fmt.Errorf("connection_string required")
	}
	return nil
}
