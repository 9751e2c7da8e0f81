package auth

import (
	"errors"
	"net/http"
)

// Domain errors for authentication operations.
var (
	ErrInvalidToken       = errors.New("invalid session token")
	ErrUnauthorized       = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrLockedOut          = errors.New("too many failed attempts, try again later")
	ErrProvider           = errors.New("identity provider request failed")
)

// MapHTTPStatus maps auth domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrLockedOut) {
		return http.StatusTooManyRequests
	}
	if errors.Is(err, ErrProvider) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
