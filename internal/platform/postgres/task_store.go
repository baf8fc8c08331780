package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/pmorris/tasktrack-api/internal/domain"
	"github.com/pmorris/tasktrack-api/internal/platform/logger"
	"github.com/pmorris/tasktrack-api/internal/store"
)

// taskColumns is the column list shared by every task query so row
// scanning stays in one shape.
const taskColumns = "id, title, description, due_date, status, priority"

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a pooled database handle that should
// be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	// Validate inputs
	if db == nil {
		panic("db cannot be nil")
	}

	// Use provided logger or create default
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// rowScanner abstracts *sql.Row and *sql.Rows for scanTask.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one task row. The due_date column is nullable; a NULL
// scans to the zero time, which the domain treats as "no due date".
func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		t   domain.Task
		due sql.NullTime
	)
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &due, &t.Status, &t.Priority); err != nil {
		return nil, err
	}
	if due.Valid {
		t.DueDate = due.Time
	}
	return &t, nil
}

// dueDateArg converts a domain due date into a nullable SQL argument.
func dueDateArg(t *domain.Task) any {
	if !t.HasDueDate() {
		return nil
	}
	return t.DueDate
}

// List implements store.TaskStore.List
// It retrieves every task ordered by due date ascending; NULL dates and
// ties fall back to the engine's stable default order.
func (s *PostgresTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY due_date ASC`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list tasks", slog.String("error", err.Error()))
		return nil, store.NewStoreError("task", "list", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	tasks := []domain.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", err)
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("task", "list", err)
	}

	return tasks, nil
}

// Create implements store.TaskStore.Create
// The insert returns the generated row in the same statement, so the
// assigned ID is read without a follow-up select.
func (s *PostgresTaskStore) Create(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO tasks (title, description, due_date, status, priority)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + taskColumns
	row := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		dueDateArg(task),
		task.Status,
		task.Priority,
	)

	created, err := scanTask(row)
	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return store.NewStoreError("task", "create", MapError(err))
	}

	*task = *created
	log.Info("task created", slog.Int64("task_id", task.ID))
	return nil
}

// Update implements store.TaskStore.Update
// It replaces every mutable field of the row identified by task.ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(ctx context.Context, task *domain.Task) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, priority = $5
		WHERE id = $6
		RETURNING ` + taskColumns
	row := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		dueDateArg(task),
		task.Status,
		task.Priority,
		task.ID,
	)

	updated, err := scanTask(row)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			log.Debug("task not found during update", slog.Int64("task_id", task.ID))
			return mapped
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return store.NewStoreError("task", "update", MapError(err))
	}

	*task = *updated
	log.Info("task updated", slog.Int64("task_id", task.ID))
	return nil
}

// UpdateStatus implements store.TaskStore.UpdateStatus
// It changes only the status column and returns the full updated row.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE tasks
		SET status = $1
		WHERE id = $2
		RETURNING ` + taskColumns
	row := s.db.QueryRowContext(ctx, query, status, id)

	updated, err := scanTask(row)
	if err != nil {
		if mapped := MapError(err); store.IsNotFoundError(mapped) {
			log.Debug("task not found during status update", slog.Int64("task_id", id))
			return nil, mapped
		}
		log.Error("failed to update task status",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, store.NewStoreError("task", "update_status", MapError(err))
	}

	log.Info("task status updated",
		slog.Int64("task_id", id),
		slog.String("status", status))
	return updated, nil
}

// Delete implements store.TaskStore.Delete
// It removes the task with the given ID.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return store.NewStoreError("task", "delete", MapError(err))
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return store.NewStoreError("task", "delete", err)
	}
	if affected == 0 {
		log.Debug("task not found during delete", slog.Int64("task_id", id))
		return store.ErrTaskNotFound
	}

	log.Info("task deleted", slog.Int64("task_id", id))
	return nil
}
