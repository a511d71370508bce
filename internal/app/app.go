package app

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/thenoetrevino/tasktrack/internal/api"
	"github.com/thenoetrevino/tasktrack/internal/database"
	taskservice "github.com/thenoetrevino/tasktrack/internal/services/task"
)

// App holds all application services and provides dependency injection.
// The store handle is owned by the caller; App never closes it.
type App struct {
	db      *sql.DB
	driver  string
	logger  *slog.Logger
	metrics *api.Metrics

	// Repository layer (direct database access)
	repo database.TaskRepository

	// Service layer (business logic)
	TaskService taskservice.Service

	handler http.Handler
}

// Option configures an App
type Option func(*App)

// WithLogger sets the logger handed to every layer
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics shares a metrics instance with the caller
func WithMetrics(m *api.Metrics) Option {
	return func(a *App) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithRepository replaces the SQL repository, e.g. with a test double
func WithRepository(repo database.TaskRepository) Option {
	return func(a *App) {
		a.repo = repo
	}
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(db *sql.DB, driver string, opts ...Option) *App {
	a := &App{
		db:      db,
		driver:  driver,
		logger:  slog.Default(),
		metrics: api.NewMetrics(),
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.repo == nil {
		a.repo = database.NewTaskRepo(db, driver)
	}
	a.TaskService = taskservice.NewService(a.repo, a.logger)

	var pinger api.Pinger
	if db != nil {
		pinger = db
	}
	a.handler = api.NewRouter(api.NewHandler(a.TaskService, pinger, a.metrics, a.logger))
	return a
}

// Handler returns the HTTP handler serving the task API
func (a *App) Handler() http.Handler {
	return a.handler
}

// Metrics returns the request and task counters
func (a *App) Metrics() *api.Metrics {
	return a.metrics
}

// Migrate brings the store schema up to date
func (a *App) Migrate(ctx context.Context) error {
	return database.Migrate(ctx, a.db, a.driver)
}
