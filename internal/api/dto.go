package api

import (
	"time"

	"github.com/thenoetrevino/tasktrack/internal/models"
)

// TaskResponse is the wire form of a task
type TaskResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeleteResponse confirms a removal
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// HealthResponse is served by /healthz
type HealthResponse struct {
	Status   string          `json:"status"`
	Database string          `json:"database"`
	Metrics  MetricsSnapshot `json:"metrics"`
}

func toTaskResponse(t *models.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID.String(),
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status.String(),
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
	}
}

func toTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskResponse(t))
	}
	return out
}
