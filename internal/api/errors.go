package api

import (
	"errors"
	"net/http"

	"github.com/pmorris/tasktrack-api/internal/api/shared"
	"github.com/pmorris/tasktrack-api/internal/domain"
	"github.com/pmorris/tasktrack-api/internal/store"
)

// ErrUnsupportedMediaType is returned when a JSON endpoint receives a
// request without an application/json body.
var ErrUnsupportedMediaType = errors.New("unsupported media type")

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This keeps the failure surface
// exhaustive and prevents leaking internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Wrong request media type
	case errors.Is(err, ErrUnsupportedMediaType):
		return http.StatusUnsupportedMediaType

	// Caller input errors
	case errors.Is(err, domain.ErrMissingRequiredFields),
		errors.Is(err, domain.ErrInvalidDueDate),
		errors.Is(err, domain.ErrMissingStatus),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing error message
// based on the error type. Raw driver and query errors never reach the
// client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, ErrUnsupportedMediaType):
		return "Content-Type must be application/json"

	case errors.Is(err, domain.ErrMissingRequiredFields):
		return "title and due_date are required"

	case errors.Is(err, domain.ErrInvalidDueDate):
		return "Invalid due_date format, use YYYY-MM-DD"

	case errors.Is(err, domain.ErrMissingStatus):
		return "status is required"

	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	case store.IsNotFoundError(err):
		return "Task not found"

	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err through the tables above and writes the JSON
// error response, logging the full error alongside the sanitized
// message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
