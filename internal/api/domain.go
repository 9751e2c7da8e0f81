package api

import (
	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/internal/campaigns"
	"github.com/societyfixer/hustings/internal/moderation"
	"github.com/societyfixer/hustings/internal/notifications"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Campaigns     campaigns.System
	Gate          *moderation.Gate
	Notifications *notifications.Queue
	AuthClient    *auth.Client
	Limiter       *auth.Limiter
	Sessions      *auth.Middleware
}

// NewDomain creates all domain systems from the API runtime. The moderation
// classifier is optional: without credentials the gate fails open.
func NewDomain(runtime *Runtime) (*Domain, error) {
	classifier, err := moderation.NewGeminiClassifier(
		runtime.Lifecycle.Context(),
		&runtime.Moderation,
	)
	if err != nil {
		return nil, err
	}

	var gate *moderation.Gate
	if classifier != nil {
		gate = moderation.NewGate(classifier, runtime.Logger)
	} else {
		gate = moderation.NewGate(nil, runtime.Logger)
	}

	sessions := auth.NewMiddleware(
		auth.NewVerifier(runtime.Auth.JWTSecret),
		runtime.Logger,
	)

	campaignsSystem := campaigns.New(
		runtime.Database.Connection(),
		runtime.Storage,
		gate,
		runtime.Logger,
		runtime.Pagination,
	)

	return &Domain{
		Campaigns:     campaignsSystem,
		Gate:          gate,
		Notifications: notifications.NewQueue(),
		AuthClient:    auth.NewClient(&runtime.Auth),
		Limiter:       auth.NewLimiter(runtime.Auth.MaxAttempts, runtime.Auth.LockoutDurationValue()),
		Sessions:      sessions,
	}, nil
}
