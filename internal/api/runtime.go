package api

import (
	"github.com/societyfixer/hustings/internal/config"
	"github.com/societyfixer/hustings/internal/infrastructure"
	"github.com/societyfixer/hustings/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Auth       config.AuthConfig
	Moderation config.ModerationConfig
	API        config.APIConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Auth:       cfg.Auth,
		Moderation: cfg.Moderation,
		API:        cfg.API,
	}
}
