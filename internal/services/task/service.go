package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tasktrack/internal/database"
	"github.com/thenoetrevino/tasktrack/internal/models"
	"github.com/thenoetrevino/tasktrack/internal/types"
)

// Service defines all task-related business operations.
// It is the only entry point to the repository, so rules added here apply
// to every caller.
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID types.TaskID) (*models.Task, error)
	ListTasks(ctx context.Context, limit, offset int) ([]*models.Task, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error)
	DeleteTask(ctx context.Context, taskID types.TaskID) (bool, error)
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Title       string
	Description *string // Optional: nil means no description
}

// UpdateTaskRequest encapsulates all data needed to update a task
// Fields with pointers are optional - nil means don't update.
// ClearDescription sets the description to NULL and wins over Description.
type UpdateTaskRequest struct {
	TaskID           types.TaskID
	Title            *string
	Description      *string
	ClearDescription bool
	Status           *models.Status
}

// service implements Service interface
type service struct {
	repo   database.TaskRepository
	logger *slog.Logger
}

// NewService creates a new task service. A nil logger falls back to slog.Default().
func NewService(repo database.TaskRepository, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{
		repo:   repo,
		logger: logger.With("component", "task_service"),
	}
}

// CreateTask handles task creation with validation and business rules.
// The status always starts at models.DefaultStatus.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateTitle(req.Title); err != nil {
		return nil, err
	}

	task, err := s.repo.Create(ctx, req.Title, req.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.DebugContext(ctx, "task created", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// GetTask retrieves a single task
func (s *service) GetTask(ctx context.Context, taskID types.TaskID) (*models.Task, error) {
	task, err := s.repo.Get(ctx, taskID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return task, nil
}

// ListTasks returns a page of tasks. Limit and offset defaults are applied by the repository.
func (s *service) ListTasks(ctx context.Context, limit, offset int) ([]*models.Task, error) {
	tasks, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// UpdateTask applies a partial update and returns the task as stored
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) (*models.Task, error) {
	var update models.TaskUpdate

	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return nil, err
		}
		title := *req.Title
		update.Title = &title
	}

	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		status := *req.Status
		update.Status = &status
	}

	switch {
	case req.ClearDescription:
		update.SetDescription = true
	case req.Description != nil:
		update.SetDescription = true
		update.Description = req.Description
	}

	task, err := s.repo.Update(ctx, req.TaskID, update)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.DebugContext(ctx, "task updated", "task_id", task.ID, "status", task.Status)
	return task, nil
}

// DeleteTask permanently removes a task.
// Returns false without an error when there was nothing to delete.
func (s *service) DeleteTask(ctx context.Context, taskID types.TaskID) (bool, error) {
	deleted, err := s.repo.Delete(ctx, taskID)
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}

	if deleted {
		s.logger.DebugContext(ctx, "task deleted", "task_id", taskID)
	}
	return deleted, nil
}

// validateTitle rejects blank and overlong titles. The title itself is stored as given.
func validateTitle(title string) error {
	if models.NormalizeTitle(title) == "" {
		return ErrEmptyTitle
	}
	if models.TitleLength(title) > models.MaxTitleLength {
		return ErrTitleTooLong
	}
	return nil
}
