package uploads

import (
	"errors"
	"net/http"
)

// Domain errors for upload operations.
var (
	ErrFileTooLarge  = errors.New("file exceeds maximum upload size")
	ErrInvalidFile   = errors.New("invalid file")
	ErrUnknownBucket = errors.New("unknown upload bucket")
)

// MapHTTPStatus maps upload domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, ErrInvalidFile) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrUnknownBucket) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
