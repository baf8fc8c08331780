package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pmorris/tasktrack-api/internal/domain"
	"github.com/pmorris/tasktrack-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockTaskStore is a mock implementation of store.TaskStore for testing
type MockTaskStore struct {
	ListFn         func(ctx context.Context) ([]domain.Task, error)
	CreateFn       func(ctx context.Context, task *domain.Task) error
	UpdateFn       func(ctx context.Context, task *domain.Task) error
	UpdateStatusFn func(ctx context.Context, id int64, status string) (*domain.Task, error)
	DeleteFn       func(ctx context.Context, id int64) error
}

func (m *MockTaskStore) List(ctx context.Context) ([]domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id int64, status string) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil, nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

// newTestRouter mounts the handler on a chi router so path parameters
// resolve the same way they do in production.
func newTestRouter(taskStore store.TaskStore) http.Handler {
	h := NewTaskHandler(taskStore, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Put("/tasks/{id}", h.UpdateTask)
	r.Delete("/tasks/{id}", h.DeleteTask)
	r.Patch("/tasks/{id}/status", h.UpdateTaskStatus)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Error
}

func TestTaskHandler_ListTasks(t *testing.T) {
	due := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	t.Run("returns_tasks_in_store_order", func(t *testing.T) {
		mock := &MockTaskStore{
			ListFn: func(ctx context.Context) ([]domain.Task, error) {
				return []domain.Task{
					{ID: 1, Title: "First", DueDate: due, Status: "Pending", Priority: "Medium"},
					{ID: 2, Title: "Second", DueDate: due.AddDate(0, 1, 0), Status: "Done", Priority: "High"},
				}, nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodGet, "/tasks", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Tasks []TaskResponse `json:"tasks"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Tasks, 2)
		assert.Equal(t, int64(1), body.Tasks[0].ID)
		require.NotNil(t, body.Tasks[0].DueDate)
		assert.Equal(t, "2025-01-01", *body.Tasks[0].DueDate)
		assert.Equal(t, "Done", body.Tasks[1].Status)
	})

	t.Run("empty_table_yields_empty_array", func(t *testing.T) {
		mock := &MockTaskStore{
			ListFn: func(ctx context.Context) ([]domain.Task, error) {
				return []domain.Task{}, nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodGet, "/tasks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"tasks":[]}`, w.Body.String())
	})

	t.Run("null_due_date_serializes_as_null", func(t *testing.T) {
		mock := &MockTaskStore{
			ListFn: func(ctx context.Context) ([]domain.Task, error) {
				return []domain.Task{{ID: 3, Title: "Undated", Status: "Pending", Priority: "Medium"}}, nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodGet, "/tasks", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"due_date":null`)
	})

	t.Run("store_failure_maps_to_500", func(t *testing.T) {
		mock := &MockTaskStore{
			ListFn: func(ctx context.Context) ([]domain.Task, error) {
				return nil, store.NewStoreError("task", "list", errors.New("connection refused"))
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodGet, "/tasks", nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestTaskHandler_CreateTask(t *testing.T) {
	t.Run("applies_defaults_and_returns_created_row", func(t *testing.T) {
		mock := &MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error {
				task.ID = 42
				return nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPost, "/tasks",
			map[string]string{"title": "Buy milk", "due_date": "2025-01-01"})
		require.Equal(t, http.StatusCreated, w.Code)

		var body struct {
			Task TaskResponse `json:"task"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(42), body.Task.ID)
		assert.Equal(t, "Buy milk", body.Task.Title)
		assert.Equal(t, "", body.Task.Description)
		assert.Equal(t, "Pending", body.Task.Status)
		assert.Equal(t, "Medium", body.Task.Priority)
		require.NotNil(t, body.Task.DueDate)
		assert.Equal(t, "2025-01-01", *body.Task.DueDate)
	})

	t.Run("explicit_status_and_priority_kept", func(t *testing.T) {
		var created *domain.Task
		mock := &MockTaskStore{
			CreateFn: func(ctx context.Context, task *domain.Task) error {
				task.ID = 7
				created = task
				return nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPost, "/tasks", map[string]string{
			"title":    "Ship release",
			"due_date": "2025-03-15",
			"status":   "In-Progress",
			"priority": "High",
		})
		require.Equal(t, http.StatusCreated, w.Code)
		require.NotNil(t, created)
		assert.Equal(t, "In-Progress", created.Status)
		assert.Equal(t, "High", created.Priority)
	})

	t.Run("missing_due_date_rejected", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&MockTaskStore{}), http.MethodPost, "/tasks",
			map[string]string{"title": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title and due_date are required", decodeError(t, w))
	})

	t.Run("missing_title_rejected", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&MockTaskStore{}), http.MethodPost, "/tasks",
			map[string]string{"due_date": "2025-01-01"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "title and due_date are required", decodeError(t, w))
	})

	t.Run("invalid_due_date_rejected", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&MockTaskStore{}), http.MethodPost, "/tasks",
			map[string]string{"title": "x", "due_date": "tomorrow"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid due_date format, use YYYY-MM-DD", decodeError(t, w))
	})

	t.Run("non_json_content_type_rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tasks",
			bytes.NewReader([]byte(`title=Buy milk`)))
		req.Header.Set("Content-Type", "text/plain")

		w := httptest.NewRecorder()
		newTestRouter(&MockTaskStore{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
		assert.Equal(t, "Content-Type must be application/json", decodeError(t, w))
	})

	t.Run("malformed_body_rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/tasks",
			bytes.NewReader([]byte(`{"title":`)))
		req.Header.Set("Content-Type", "application/json")

		w := httptest.NewRecorder()
		newTestRouter(&MockTaskStore{}).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid request format", decodeError(t, w))
	})
}

func TestTaskHandler_UpdateTask(t *testing.T) {
	t.Run("replaces_all_fields_without_defaulting", func(t *testing.T) {
		var updated *domain.Task
		mock := &MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error {
				updated = task
				return nil
			},
		}

		// status and priority omitted: written as empty strings, not defaults
		w := doJSON(t, newTestRouter(mock), http.MethodPut, "/tasks/5",
			map[string]string{"title": "Renamed", "due_date": "2025-06-01"})
		require.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, updated)
		assert.Equal(t, int64(5), updated.ID)
		assert.Equal(t, "", updated.Status)
		assert.Equal(t, "", updated.Priority)
	})

	t.Run("missing_task_maps_to_404", func(t *testing.T) {
		mock := &MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error {
				return store.ErrTaskNotFound
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPut, "/tasks/9999",
			map[string]string{"title": "x", "due_date": "2025-01-01"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", decodeError(t, w))
	})

	t.Run("non_numeric_id_maps_to_404", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&MockTaskStore{}), http.MethodPut, "/tasks/abc",
			map[string]string{"title": "x", "due_date": "2025-01-01"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("validation_runs_before_existence_check", func(t *testing.T) {
		storeCalled := false
		mock := &MockTaskStore{
			UpdateFn: func(ctx context.Context, task *domain.Task) error {
				storeCalled = true
				return nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPut, "/tasks/5",
			map[string]string{"title": "x"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.False(t, storeCalled, "store must not be reached when input is invalid")
	})
}

func TestTaskHandler_UpdateTaskStatus(t *testing.T) {
	t.Run("updates_status_and_returns_full_row", func(t *testing.T) {
		due := time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)
		mock := &MockTaskStore{
			UpdateStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				return &domain.Task{
					ID: id, Title: "Buy milk", DueDate: due,
					Status: status, Priority: "Medium",
				}, nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPatch, "/tasks/7/status",
			map[string]string{"status": "Done"})
		require.Equal(t, http.StatusOK, w.Code)

		var body struct {
			Task TaskResponse `json:"task"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, int64(7), body.Task.ID)
		assert.Equal(t, "Done", body.Task.Status)
		assert.Equal(t, "Buy milk", body.Task.Title)
	})

	t.Run("missing_status_rejected", func(t *testing.T) {
		w := doJSON(t, newTestRouter(&MockTaskStore{}), http.MethodPatch, "/tasks/7/status",
			map[string]string{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "status is required", decodeError(t, w))
	})

	t.Run("missing_task_maps_to_404", func(t *testing.T) {
		mock := &MockTaskStore{
			UpdateStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPatch, "/tasks/9999/status",
			map[string]string{"status": "Done"})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", decodeError(t, w))
	})

	t.Run("no_transition_graph_enforced", func(t *testing.T) {
		// Nothing prevents moving a task back from Done to Pending.
		var gotStatus string
		mock := &MockTaskStore{
			UpdateStatusFn: func(ctx context.Context, id int64, status string) (*domain.Task, error) {
				gotStatus = status
				return &domain.Task{ID: id, Title: "t", Status: status, Priority: "Medium"}, nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodPatch, "/tasks/1/status",
			map[string]string{"status": "Pending"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Pending", gotStatus)
	})
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	t.Run("returns_confirmation_message", func(t *testing.T) {
		var deletedID int64
		mock := &MockTaskStore{
			DeleteFn: func(ctx context.Context, id int64) error {
				deletedID = id
				return nil
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodDelete, "/tasks/11", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(11), deletedID)
		assert.JSONEq(t, `{"message":"Task deleted"}`, w.Body.String())
	})

	t.Run("missing_task_maps_to_404", func(t *testing.T) {
		mock := &MockTaskStore{
			DeleteFn: func(ctx context.Context, id int64) error {
				return store.ErrTaskNotFound
			},
		}

		w := doJSON(t, newTestRouter(mock), http.MethodDelete, "/tasks/9999", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Task not found", decodeError(t, w))
	})
}
