package campaigns

import (
	"errors"
	"net/http"

	"github.com/societyfixer/hustings/internal/moderation"
)

// Domain errors for campaign operations.
var (
	ErrNotFound  = errors.New("campaign not found")
	ErrDuplicate = errors.New("campaign already exists")
	ErrForbidden = errors.New("campaign does not belong to the authenticated user")
	ErrInvalid   = errors.New("invalid campaign")
)

// MapHTTPStatus maps campaign domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	if errors.Is(err, moderation.ErrRejected) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}
