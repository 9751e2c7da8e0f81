package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/societyfixer/hustings/pkg/handlers"
)

type contextKey struct{}

var sessionKey contextKey

// SessionFrom returns the verified session injected by the middleware, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok
}

// Middleware verifies bearer tokens and injects session snapshots into
// request contexts.
type Middleware struct {
	verifier *Verifier
	logger   *slog.Logger
}

// NewMiddleware creates session middleware over the given verifier.
func NewMiddleware(verifier *Verifier, logger *slog.Logger) *Middleware {
	return &Middleware{
		verifier: verifier,
		logger:   logger.With("system", "auth"),
	}
}

// Require rejects requests without a valid bearer token. The verified
// session is available to next via SessionFrom.
func (m *Middleware) Require(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := m.sessionFromRequest(r)
		if err != nil {
			handlers.RespondError(w, m.logger, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, session)))
	}
}

// Optional injects a session when a valid bearer token is present and passes
// the request through unchanged otherwise.
func (m *Middleware) Optional(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, err := m.sessionFromRequest(r); err == nil {
			r = r.WithContext(context.WithValue(r.Context(), sessionKey, session))
		}
		next(w, r)
	}
}

func (m *Middleware) sessionFromRequest(r *http.Request) (*Session, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, ErrUnauthorized
	}
	return m.verifier.Verify(token)
}
