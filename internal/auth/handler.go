package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/societyfixer/hustings/pkg/handlers"
	"github.com/societyfixer/hustings/pkg/routes"
)

// Handler provides HTTP endpoints for credential operations.
type Handler struct {
	client   *Client
	limiter  *Limiter
	sessions *Middleware
	logger   *slog.Logger
}

// NewHandler creates a Handler over the provider client, sign-in rate
// limiter, and session middleware.
func NewHandler(client *Client, limiter *Limiter, sessions *Middleware, logger *slog.Logger) *Handler {
	return &Handler{
		client:   client,
		limiter:  limiter,
		sessions: sessions,
		logger:   logger.With("handler", "auth"),
	}
}

// Routes returns the route group definition for auth endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/auth",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/signup", Handler: h.SignUp},
			{Method: "POST", Pattern: "/signin", Handler: h.SignIn},
			{Method: "POST", Pattern: "/signout", Handler: h.SignOut},
			{Method: "POST", Pattern: "/refresh", Handler: h.Refresh},
			{Method: "POST", Pattern: "/recover", Handler: h.Recover},
			{Method: "PUT", Pattern: "/password", Handler: h.UpdatePassword},
			{Method: "GET", Pattern: "/session", Handler: h.sessions.Require(h.Session)},
		},
	}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUp registers a new account with the identity provider. Failed
// registrations count toward the same per-account lockout as sign-ins.
func (h *Handler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	key := limiterKey("signup", req.Email)
	if allowed, remaining := h.limiter.Allow(key); !allowed {
		err := fmt.Errorf("%w (retry in %s)", ErrLockedOut, remaining.Round(time.Second))
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrLockedOut), err)
		return
	}

	bundle, err := h.client.SignUp(r.Context(), req.Email, req.Password)
	if err != nil {
		h.limiter.Failure(key)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.limiter.Success(key)
	handlers.RespondJSON(w, http.StatusCreated, bundle)
}

// SignIn exchanges credentials for a session, enforcing the failed-attempt
// lockout per account.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	key := limiterKey("signin", req.Email)
	if allowed, remaining := h.limiter.Allow(key); !allowed {
		err := fmt.Errorf("%w (retry in %s)", ErrLockedOut, remaining.Round(time.Second))
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrLockedOut), err)
		return
	}

	bundle, err := h.client.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.limiter.Failure(key)
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	h.limiter.Success(key)
	handlers.RespondJSON(w, http.StatusOK, bundle)
}

// SignOut revokes the session behind the bearer token.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthorized)
		return
	}

	if err := h.client.SignOut(r.Context(), token); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Refresh exchanges a refresh token for a new session.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("refresh_token required"))
		return
	}

	bundle, err := h.client.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, bundle)
}

// Recover asks the provider to send a password recovery email. Responds
// identically whether or not the account exists. Every request counts as an
// attempt, capping how many recovery emails one account can trigger.
func (h *Handler) Recover(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("email required"))
		return
	}

	key := limiterKey("recover", req.Email)
	if allowed, remaining := h.limiter.Allow(key); !allowed {
		err := fmt.Errorf("%w (retry in %s)", ErrLockedOut, remaining.Round(time.Second))
		handlers.RespondError(w, h.logger, MapHTTPStatus(ErrLockedOut), err)
		return
	}
	h.limiter.Failure(key)

	if err := h.client.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Warn("password reset request failed", "error", err)
	}

	handlers.RespondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}

// UpdatePassword sets a new password for the authenticated account.
func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, ErrUnauthorized)
		return
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Password == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("password required"))
		return
	}

	if err := h.client.UpdatePassword(r.Context(), token, req.Password); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Session returns the verified session snapshot for the bearer token.
func (h *Handler) Session(w http.ResponseWriter, r *http.Request) {
	session, _ := SessionFrom(r.Context())
	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("email and password required"))
		return req, false
	}
	return req, true
}

func limiterKey(form, email string) string {
	return form + ":" + strings.ToLower(strings.TrimSpace(email))
}

func bearerToken(r *http.Request) string {
	token, _ := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	return token
}
