package database

import (
	"context"

	"github.com/thenoetrevino/tasktrack/internal/models"
	"github.com/thenoetrevino/tasktrack/internal/types"
)

// TaskReader defines read operations for tasks.
type TaskReader interface {
	Get(ctx context.Context, id types.TaskID) (*models.Task, error)
	List(ctx context.Context, limit, offset int) ([]*models.Task, error)
}

// TaskWriter defines write operations for tasks.
type TaskWriter interface {
	Create(ctx context.Context, title string, description *string) (*models.Task, error)
	Update(ctx context.Context, id types.TaskID, update models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id types.TaskID) (bool, error)
}

// TaskRepository combines all task-related operations.
type TaskRepository interface {
	TaskReader
	TaskWriter
}
