// Package web serves the server-rendered HTML interface: the task list
// index page and the form-submission endpoints that redirect back to it.
package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/pmorris/tasktrack-api/internal/api"
	"github.com/pmorris/tasktrack-api/internal/domain"
	"github.com/pmorris/tasktrack-api/internal/platform/logger"
	"github.com/pmorris/tasktrack-api/internal/store"
)

//go:embed templates/index.html
var templateFS embed.FS

// taskView is the template-facing projection of a task.
type taskView struct {
	ID          int64
	Title       string
	Description string
	DueDate     string
	Status      string
	Priority    string
}

// Handler serves the HTML form interface. Mutations redirect back to
// the index page; failures fall back to a JSON error body.
type Handler struct {
	taskStore store.TaskStore
	logger    *slog.Logger
	tmpl      *template.Template
}

// NewHandler creates a new web Handler with the embedded index template.
func NewHandler(taskStore store.TaskStore, logger *slog.Logger) *Handler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for web Handler")
	}

	return &Handler{
		taskStore: taskStore,
		logger:    logger.With(slog.String("component", "web_handler")),
		tmpl:      template.Must(template.ParseFS(templateFS, "templates/index.html")),
	}
}

// Index handles GET / requests.
// It re-reads the full task list and renders the index page with a
// creation form. Every mutation triggers a full page reload through
// the redirect back here.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	tasks, err := h.taskStore.List(r.Context())
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	views := make([]taskView, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		views = append(views, taskView{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			DueDate:     t.FormattedDueDate(),
			Status:      t.Status,
			Priority:    t.Priority,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.Execute(w, map[string]any{"Tasks": views}); err != nil {
		log.Error("failed to render index page", slog.String("error", err.Error()))
	}
}

// CreateTask handles POST /web/tasks form submissions.
// Same semantics as the JSON create endpoint, but input arrives
// form-encoded and success redirects to the index page.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	title := r.PostFormValue("title")
	description := r.PostFormValue("description")
	rawDueDate := r.PostFormValue("due_date")
	status := r.PostFormValue("status")
	priority := r.PostFormValue("priority")

	if title == "" || rawDueDate == "" {
		api.HandleAPIError(w, r, domain.ErrMissingRequiredFields)
		return
	}

	dueDate, err := domain.ParseDueDate(rawDueDate)
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	task := domain.NewTask(title, description, dueDate, status, priority)
	if err := h.taskStore.Create(r.Context(), task); err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// UpdateTaskStatus handles POST /web/tasks/{id}/status form submissions.
func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	status := r.PostFormValue("status")
	if status == "" {
		api.HandleAPIError(w, r, domain.ErrMissingStatus)
		return
	}

	if _, err := h.taskStore.UpdateStatus(r.Context(), id, status); err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// DeleteTask handles POST /web/tasks/{id}/delete form submissions.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := getPathTaskID(r)
	if err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	if err := h.taskStore.Delete(r.Context(), id); err != nil {
		api.HandleAPIError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getPathTaskID extracts the numeric task ID from the URL path.
func getPathTaskID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		return 0, store.ErrTaskNotFound
	}
	return id, nil
}
