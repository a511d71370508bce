package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyTitle    = errors.New("task title cannot be empty")
	ErrTitleTooLong  = errors.New("task title cannot exceed 255 characters")
	ErrInvalidTaskID = errors.New("invalid task ID")
	ErrInvalidStatus = errors.New("invalid task status: must be one of CREATED, IN_PROGRESS, DONE")

	// Business logic errors
	ErrTaskNotFound = errors.New("task not found")
)
