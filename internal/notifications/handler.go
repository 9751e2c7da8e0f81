package notifications

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/societyfixer/hustings/internal/auth"
	"github.com/societyfixer/hustings/pkg/handlers"
	"github.com/societyfixer/hustings/pkg/routes"
)

// Handler provides HTTP endpoints for the notification queue.
type Handler struct {
	queue    *Queue
	sessions *auth.Middleware
	logger   *slog.Logger
}

// NewHandler creates a Handler over the given queue and session middleware.
func NewHandler(queue *Queue, sessions *auth.Middleware, logger *slog.Logger) *Handler {
	return &Handler{
		queue:    queue,
		sessions: sessions,
		logger:   logger.With("handler", "notifications"),
	}
}

// Routes returns the route group definition for notification endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/notifications",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.sessions.Require(h.List)},
			{Method: "POST", Pattern: "", Handler: h.sessions.Require(h.Enqueue)},
			{Method: "POST", Pattern: "/drain", Handler: h.sessions.Require(h.Drain)},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.sessions.Require(h.Dismiss)},
		},
	}
}

// List returns the authenticated user's pending notifications.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFrom(r.Context())
	handlers.RespondJSON(w, http.StatusOK, h.queue.List(session.UserID))
}

type enqueueRequest struct {
	Message    string `json:"message"`
	Type       string `json:"type"`
	DurationMs *int   `json:"duration,omitempty"`
}

// Enqueue appends a notification for the authenticated user.
func (h *Handler) Enqueue(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFrom(r.Context())

	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Message == "" {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("message required"))
		return
	}
	if !ValidType(req.Type) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("unknown notification type %q", req.Type))
		return
	}

	id := h.queue.Enqueue(session.UserID, req.Message, req.Type, req.DurationMs)
	handlers.RespondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// Drain returns and clears all pending notifications for the authenticated user.
func (h *Handler) Drain(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFrom(r.Context())

	drained := h.queue.Drain(session.UserID)
	if drained == nil {
		drained = []Notification{}
	}
	handlers.RespondJSON(w, http.StatusOK, drained)
}

// Dismiss removes one notification by id.
func (h *Handler) Dismiss(w http.ResponseWriter, r *http.Request) {
	session, _ := auth.SessionFrom(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid notification id"))
		return
	}

	if !h.queue.Dismiss(session.UserID, id) {
		handlers.RespondError(w, h.logger, http.StatusNotFound, fmt.Errorf("notification not found"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
