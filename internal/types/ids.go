package types

import (
	"fmt"

	"github.com/google/uuid"
)

// TaskID identifies a unique task. It is stored as the canonical
// 36-character UUID string in every supported database.
type TaskID = uuid.UUID

// NilTaskID is the zero value. It is never assigned to a task, so lookups by it find nothing.
var NilTaskID = uuid.Nil

// NewTaskID generates a random (version 4) task ID
func NewTaskID() TaskID {
	return uuid.New()
}

// ParseTaskID parses the textual form of a task ID
func ParseTaskID(s string) (TaskID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return NilTaskID, fmt.Errorf("invalid task id %q: %w", s, err)
	}
	return id, nil
}
