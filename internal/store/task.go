package store

import (
	"context"

	"github.com/pmorris/tasktrack-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
type TaskStore interface {
	// List retrieves every task, ordered by due date ascending.
	// Returns an empty slice when the table is empty.
	List(ctx context.Context) ([]domain.Task, error)

	// Create saves a new task and fills in the store-assigned ID.
	// The insert returns the created row directly, so the task passed
	// in reflects exactly what was persisted.
	Create(ctx context.Context, task *domain.Task) error

	// Update replaces every mutable field of the task identified by
	// task.ID and refreshes the struct from the stored row.
	// Returns ErrTaskNotFound if the task does not exist.
	Update(ctx context.Context, task *domain.Task) error

	// UpdateStatus changes only the status column and returns the full
	// updated row.
	// Returns ErrTaskNotFound if the task does not exist.
	UpdateStatus(ctx context.Context, id int64, status string) (*domain.Task, error)

	// Delete removes the task with the given ID.
	// Returns ErrTaskNotFound if the task does not exist.
	Delete(ctx context.Context, id int64) error
}
