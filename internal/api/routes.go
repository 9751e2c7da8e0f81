package api

import (
	"net/http"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/internal/config"
	"github.com/societyfixer/hustings/internal/notifications"
	"github.com/societyfixer/hustings/internal/uploads"
	"github.com/societyfixer/hustings/pkg/openapi"
	"github.com/societyfixer/hustings/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	authHandler := auth.NewHandler(
		domain.AuthClient,
		domain.Limiter,
		domain.Sessions,
		runtime.Logger,
	)

	notificationsHandler := notifications.NewHandler(
		domain.Notifications,
		domain.Sessions,
		runtime.Logger,
	)

	uploadsHandler := uploads.NewHandler(
		runtime.Storage,
		domain.Sessions,
		runtime.Logger,
		cfg.API.PublicBaseURL,
		cfg.API.MaxUploadSizeBytes(),
	)

	routes.Register(
		mux,
		domain.Campaigns.Handler(domain.Sessions).Routes(),
		authHandler.Routes(),
		notificationsHandler.Routes(),
		uploadsHandler.Routes(),
	)

	spec := buildSpec(cfg)
	specBytes, err := openapi.MarshalJSON(spec)
	if err != nil {
		return err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	return nil
}
