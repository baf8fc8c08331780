package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pmorris/tasktrack-api/internal/api"
	apimiddleware "github.com/pmorris/tasktrack-api/internal/api/middleware"
	"github.com/pmorris/tasktrack-api/internal/web"
)

// setupRouter configures the chi router with middleware and routes for
// both the JSON API and the server-rendered form interface.
func (app *application) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.Trace)
	r.Use(apimiddleware.Metrics)

	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Put("/{id}", taskHandler.UpdateTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
		r.Patch("/{id}/status", taskHandler.UpdateTaskStatus)
	})

	webHandler := web.NewHandler(app.taskStore, app.logger)

	r.Get("/", webHandler.Index)
	r.Route("/web/tasks", func(r chi.Router) {
		r.Post("/", webHandler.CreateTask)
		r.Post("/{id}/status", webHandler.UpdateTaskStatus)
		r.Post("/{id}/delete", webHandler.DeleteTask)
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return r
}
