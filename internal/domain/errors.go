// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when caller input fails validation.
	// This is often wrapped with a more specific error.
	ErrValidation = errors.New("validation failed")

	// ErrMissingRequiredFields is returned when a create or full-update
	// request omits the title or the due date.
	ErrMissingRequiredFields = errors.New("title and due_date are required")

	// ErrInvalidDueDate is returned when a due date is not a valid
	// YYYY-MM-DD calendar date.
	ErrInvalidDueDate = errors.New("invalid due_date format")

	// ErrMissingStatus is returned when a status update omits the status.
	ErrMissingStatus = errors.New("status is required")
)
