package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/thenoetrevino/tasktrack/internal/models"
	"github.com/thenoetrevino/tasktrack/internal/services/task"
	"github.com/thenoetrevino/tasktrack/internal/types"
)

// maxListLimit caps the page size a client may request
const maxListLimit = 1000

// healthTimeout bounds the database ping in /healthz
const healthTimeout = 2 * time.Second

// Pinger reports whether the backing store is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler serves the task endpoints
type Handler struct {
	tasks   task.Service
	db      Pinger
	metrics *Metrics
	logger  *slog.Logger
}

// NewHandler creates a handler. A nil db skips the store check in /healthz;
// nil metrics and logger get fresh defaults.
func NewHandler(tasks task.Service, db Pinger, metrics *Metrics, logger *slog.Logger) *Handler {
	if metrics == nil {
		metrics = NewMetrics()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		tasks:   tasks,
		db:      db,
		metrics: metrics,
		logger:  logger.With("component", "api"),
	}
}

// Metrics returns the counters updated by this handler and its middleware
func (h *Handler) Metrics() *Metrics {
	return h.metrics
}

// POST /api/v1/tasks
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeBody(w, r, createTaskSchema)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req := task.CreateTaskRequest{Title: doc["title"].(string)}
	if desc, ok := doc["description"].(string); ok {
		req.Description = &desc
	}

	created, err := h.tasks.CreateTask(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	h.metrics.IncTasksCreated()
	w.Header().Set("Location", "/api/v1/tasks/"+created.ID.String())
	writeJSON(w, http.StatusCreated, toTaskResponse(created))
}

// GET /api/v1/tasks/{id}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseTaskID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, task.ErrInvalidTaskID)
		return
	}

	found, err := h.tasks.GetTask(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(found))
}

// GET /api/v1/tasks?limit=&offset=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset, err := parsePage(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	tasks, err := h.tasks.ListTasks(r.Context(), limit, offset)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponses(tasks))
}

// PUT /api/v1/tasks/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseTaskID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, task.ErrInvalidTaskID)
		return
	}

	doc, err := decodeBody(w, r, updateTaskSchema)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	req := task.UpdateTaskRequest{TaskID: id}
	if title, ok := nonEmptyString(doc, "title"); ok {
		req.Title = &title
	}
	if status, ok := nonEmptyString(doc, "status"); ok {
		s := models.Status(status)
		req.Status = &s
	}
	if raw, present := doc["description"]; present {
		if raw == nil {
			req.ClearDescription = true
		} else if desc, ok := nonEmptyString(doc, "description"); ok {
			req.Description = &desc
		}
	}

	updated, err := h.tasks.UpdateTask(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toTaskResponse(updated))
}

// DELETE /api/v1/tasks/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := types.ParseTaskID(r.PathValue("id"))
	if err != nil {
		h.fail(w, r, task.ErrInvalidTaskID)
		return
	}

	deleted, err := h.tasks.DeleteTask(r.Context(), id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if !deleted {
		h.fail(w, r, task.ErrTaskNotFound)
		return
	}

	h.metrics.IncTasksDeleted()
	writeJSON(w, http.StatusOK, DeleteResponse{Deleted: true})
}

// GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok", Metrics: h.metrics.Snapshot()}
	if h.db == nil {
		resp.Database = "unchecked"
		writeJSON(w, http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.WarnContext(ctx, "health check: database unreachable", "error", err)
		resp.Status = "unavailable"
		resp.Database = "unreachable"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// fail writes err as a JSON error. Store failures are logged and hidden from the client.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	switch status {
	case http.StatusInternalServerError:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, status, "internal server error")
		return
	case http.StatusNotFound:
		h.logger.DebugContext(r.Context(), "not found", "path", r.URL.Path)
	}
	writeError(w, status, err.Error())
}

// parsePage reads limit and offset query parameters. Absent values are 0,
// which the repository turns into its defaults.
func parsePage(r *http.Request) (limit, offset int, err error) {
	q := r.URL.Query()

	if raw := q.Get("limit"); raw != "" {
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxListLimit {
			return 0, 0, errInvalidLimit
		}
	}

	if raw := q.Get("offset"); raw != "" {
		offset, err = strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return 0, 0, errInvalidOffset
		}
	}

	return limit, offset, nil
}
