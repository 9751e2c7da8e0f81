package config

import (
	"fmt"
	"os"

	"github.com/societyfixer/hustings/pkg/formatting"
	"github.com/societyfixer/hustings/pkg/middleware"
	"github.com/societyfixer/hustings/pkg/openapi"
	"github.com/societyfixer/hustings/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "HUSTINGS_CORS_ENABLED",
	Origins:          "HUSTINGS_CORS_ORIGINS",
	AllowedMethods:   "HUSTINGS_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "HUSTINGS_CORS_ALLOWED_HEADERS",
	AllowCredentials: "HUSTINGS_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "HUSTINGS_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "HUSTINGS_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "HUSTINGS_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "HUSTINGS_OPENAPI_TITLE",
	Description: "HUSTINGS_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and upload settings.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	PublicBaseURL string                `toml:"public_base_url"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	Pagination    pagination.Config     `toml:"pagination"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes parses MaxUploadSize, falling back to 2MB.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 2 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS, pagination, and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.PublicBaseURL != "" {
		c.PublicBaseURL = overlay.PublicBaseURL
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.PublicBaseURL == "" {
		c.PublicBaseURL = "http://localhost:8080"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "2MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("HUSTINGS_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("HUSTINGS_API_PUBLIC_BASE_URL"); v != "" {
		c.PublicBaseURL = v
	}
	if v := os.Getenv("HUSTINGS_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}
