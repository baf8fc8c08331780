// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pmorris/tasktrack-api/internal/api/shared"
	"github.com/pmorris/tasktrack-api/internal/domain"
	"github.com/pmorris/tasktrack-api/internal/platform/logger"
	"github.com/pmorris/tasktrack-api/internal/store"
)

// TaskResponse represents the response data for a task.
// DueDate is the YYYY-MM-DD date string, or null for a row without one.
type TaskResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
}

// taskEnvelope wraps a single task, matching the wire shape
// {"task": {...}}.
type taskEnvelope struct {
	Task TaskResponse `json:"task"`
}

// taskListEnvelope wraps the full task list, matching the wire shape
// {"tasks": [...]}.
type taskListEnvelope struct {
	Tasks []TaskResponse `json:"tasks"`
}

// CreateTaskRequest represents the request body for creating a task.
// Status and priority default to "Pending" and "Medium" when omitted.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"    validate:"required"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// UpdateTaskRequest represents the request body for a full task update.
// Unlike create, omitted status/priority are written as empty strings
// rather than defaulted.
type UpdateTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"    validate:"required"`
	Status      string `json:"status"`
	Priority    string `json:"priority"`
}

// UpdateTaskStatusRequest represents the request body for a status-only
// update.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// TaskHandler handles task-related HTTP requests.
type TaskHandler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskStore store.TaskStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
// It returns every task ordered by due date ascending.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	response := taskListEnvelope{Tasks: make([]TaskResponse, 0, len(tasks))}
	for i := range tasks {
		response.Tasks = append(response.Tasks, taskToResponse(&tasks[i]))
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, response)
}

// CreateTask handles POST /tasks requests.
// Validation order: media type, body shape, required fields, then the
// date format. Defaults are applied for omitted status/priority.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !shared.IsJSONRequest(r) {
		HandleAPIError(w, r, ErrUnsupportedMediaType)
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleAPIError(w, r, domain.ErrMissingRequiredFields)
		return
	}

	dueDate, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task := domain.NewTask(req.Title, req.Description, dueDate, req.Status, req.Priority)
	if err := h.taskStore.Create(r.Context(), task); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task created", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskEnvelope{Task: taskToResponse(task)})
}

// UpdateTask handles PUT /tasks/{id} requests.
// It replaces all five mutable fields; omitted status/priority become
// empty strings, matching full-replace semantics.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !shared.IsJSONRequest(r) {
		HandleAPIError(w, r, ErrUnsupportedMediaType)
		return
	}

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleAPIError(w, r, domain.ErrMissingRequiredFields)
		return
	}

	dueDate, err := domain.ParseDueDate(req.DueDate)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task := &domain.Task{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		Status:      req.Status,
		Priority:    req.Priority,
	}
	if err := h.taskStore.Update(r.Context(), task); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task updated", slog.Int64("task_id", task.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, taskEnvelope{Task: taskToResponse(task)})
}

// UpdateTaskStatus handles PATCH /tasks/{id}/status requests.
// Only the status column changes; the response carries the full
// updated row.
func (h *TaskHandler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if !shared.IsJSONRequest(r) {
		HandleAPIError(w, r, ErrUnsupportedMediaType)
		return
	}

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateTaskStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		HandleAPIError(w, r, domain.ErrMissingStatus)
		return
	}

	task, err := h.taskStore.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task status updated",
		slog.Int64("task_id", id),
		slog.String("status", req.Status))
	shared.RespondWithJSON(w, r, http.StatusOK, taskEnvelope{Task: taskToResponse(task)})
}

// DeleteTask handles DELETE /tasks/{id} requests.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := getPathTaskID(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("task deleted", slog.Int64("task_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{Message: "Task deleted"})
}

// getPathTaskID extracts the numeric task ID from the URL path.
// IDs are positive serials, so anything that does not parse to one
// cannot name an existing task and maps to not-found.
func getPathTaskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, store.ErrTaskNotFound
	}
	return id, nil
}

// taskToResponse converts a domain.Task to a TaskResponse.
func taskToResponse(task *domain.Task) TaskResponse {
	var dueDate *string
	if task.HasDueDate() {
		formatted := task.FormattedDueDate()
		dueDate = &formatted
	}

	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     dueDate,
		Status:      task.Status,
		Priority:    task.Priority,
	}
}
