package api

import "net/http"

// NewRouter registers the task routes and wraps them in the standard middleware
func NewRouter(h *Handler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/tasks", h.Create)
	mux.HandleFunc("POST /api/v1/tasks/{$}", h.Create)
	mux.HandleFunc("GET /api/v1/tasks", h.List)
	mux.HandleFunc("GET /api/v1/tasks/{$}", h.List)
	mux.HandleFunc("GET /api/v1/tasks/{id}", h.Get)
	mux.HandleFunc("PUT /api/v1/tasks/{id}", h.Update)
	mux.HandleFunc("DELETE /api/v1/tasks/{id}", h.Delete)
	mux.HandleFunc("GET /healthz", h.Health)

	return chain(mux,
		WithMetrics(h.metrics),
		WithLogging(h.logger),
		WithRecover(h.logger, h.metrics),
	)
}
